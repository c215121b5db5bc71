package objectstore

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weberc2/mfs/pkg/testsupport"
	"github.com/weberc2/mfs/pkg/types"
)

func TestRouterRoute(t *testing.T) {
	s3 := testsupport.ObjectStoreFake{}
	router := Router{S3: s3}

	type testCase struct {
		name   string
		path   string
		label  string
		bucket string
		key    string
		gzip   bool
		err    bool
	}

	testCases := []testCase{{
		name: "host file",
		path: "disk.img",
		key:  "disk.img",
	}, {
		name: "compressed host file",
		path: "/tmp/disk.img.gz",
		key:  "/tmp/disk.img.gz",
		gzip: true,
	}, {
		name:   "s3 object",
		path:   "s3://images/team/disk.img",
		bucket: "images",
		key:    "team/disk.img",
	}, {
		name:   "s3 bucket defaults key to label",
		path:   "s3://images/",
		label:  "backups",
		bucket: "images",
		key:    "backups.img",
	}, {
		name: "s3 bucket without label",
		path: "s3://images",
		err:  true,
	}, {
		name: "s3 without bucket",
		path: "s3:///disk.img",
		err:  true,
	}, {
		name: "empty",
		path: "",
		err:  true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := router.Route(tc.path, tc.label)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.bucket, loc.Bucket)
			require.Equal(t, tc.key, loc.Key)
			_, isGzip := loc.Store.(*GzipObjectStore)
			require.Equal(t, tc.gzip, isGzip)
		})
	}
}

func TestRouterS3Disabled(t *testing.T) {
	router := Router{}
	_, err := router.Route("s3://images/disk.img", "")
	require.Error(t, err)
}

func TestFileObjectStore(t *testing.T) {
	dir := t.TempDir()
	store := FileObjectStore{}

	_, err := store.GetObject(dir, "missing.img")
	var notFound *types.ObjectNotFoundErr
	require.True(t, errors.As(err, &notFound))

	require.NoError(t, store.PutObject(dir, "disk.img", strings.NewReader("one")))
	require.NoError(t, store.PutObject(dir, "disk.img", strings.NewReader("two")))

	body, err := store.GetObject(dir, "disk.img")
	require.NoError(t, err)
	defer body.Close()
	data, err := ioutil.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))

	matches, err := filepath.Glob(filepath.Join(dir, "disk.img.*"))
	require.NoError(t, err)
	require.Empty(t, matches)
}
