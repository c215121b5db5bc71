package objectstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/weberc2/mfs/pkg/types"
)

// FileObjectStore keeps objects as files on the host filesystem. The bucket
// is a directory (empty means the working directory) and the key is a path
// relative to it.
type FileObjectStore struct{}

func (fos FileObjectStore) PutObject(
	bucket string,
	key string,
	data io.ReadSeeker,
) error {
	path := filepath.Join(bucket, key)
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing object `%s`: %w", path, err)
	}

	// the rename is what publishes the object, so a failure anywhere before
	// it leaves any existing object untouched
	if err := func() error {
		if _, err := io.Copy(tmp, data); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmp.Name(), path)
	}(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing object `%s`: %w", path, err)
	}
	return nil
}

func (fos FileObjectStore) GetObject(
	bucket string,
	key string,
) (io.ReadCloser, error) {
	path := filepath.Join(bucket, key)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &types.ObjectNotFoundErr{Bucket: bucket, Key: key}
		}
		return nil, fmt.Errorf("reading object `%s`: %w", path, err)
	}
	return f, nil
}
