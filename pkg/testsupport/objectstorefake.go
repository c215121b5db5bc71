package testsupport

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/weberc2/mfs/pkg/types"
)

// ObjectStoreFake is an in-memory object store keyed by `{bucket, key}`.
type ObjectStoreFake map[[2]string][]byte

func (osf ObjectStoreFake) PutObject(
	bucket string,
	key string,
	data io.ReadSeeker,
) error {
	var b bytes.Buffer
	if _, err := io.Copy(&b, data); err != nil {
		return err
	}
	osf[[2]string{bucket, key}] = b.Bytes()
	return nil
}

func (osf ObjectStoreFake) GetObject(
	bucket string,
	key string,
) (io.ReadCloser, error) {
	data, found := osf[[2]string{bucket, key}]
	if !found {
		return nil, &types.ObjectNotFoundErr{Bucket: bucket, Key: key}
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}
