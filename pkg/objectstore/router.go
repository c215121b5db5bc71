package objectstore

import (
	"fmt"
	"strings"

	"github.com/weberc2/mfs/pkg/types"
)

const s3Scheme = "s3://"

// Location is where an image path resolves to.
type Location struct {
	Store  types.ObjectStore
	Bucket string
	Key    string
}

func (l *Location) String() string {
	if l.Bucket == "" {
		return l.Key
	}
	return l.Bucket + "/" + l.Key
}

// Router maps image paths onto object stores. `s3://bucket/key` paths go to
// `S3` and anything else is a host file path. A `.gz` suffix compresses the
// image at rest.
type Router struct {
	Files types.ObjectStore

	// S3 is nil when S3 support is disabled.
	S3 types.ObjectStore

	GzipLevel int
}

// Route resolves `path`. For `s3://bucket/` paths with no key, the key
// defaults to `<label>.img`.
func (r *Router) Route(path, label string) (Location, error) {
	var loc Location
	if strings.HasPrefix(path, s3Scheme) {
		if r.S3 == nil {
			return Location{}, fmt.Errorf(
				"routing `%s`: S3 support is disabled",
				path,
			)
		}
		bucket, key, _ := strings.Cut(strings.TrimPrefix(path, s3Scheme), "/")
		if bucket == "" {
			return Location{}, fmt.Errorf("routing `%s`: missing bucket", path)
		}
		if key == "" {
			if label == "" {
				return Location{}, fmt.Errorf(
					"routing `%s`: missing key and no label to derive it from",
					path,
				)
			}
			key = label + ".img"
		}
		loc = Location{Store: r.S3, Bucket: bucket, Key: key}
	} else {
		if path == "" {
			return Location{}, fmt.Errorf("routing image: empty path")
		}
		files := r.Files
		if files == nil {
			files = FileObjectStore{}
		}
		loc = Location{Store: files, Key: path}
	}

	if strings.HasSuffix(loc.Key, ".gz") {
		loc.Store = &GzipObjectStore{ObjectStore: loc.Store, Level: r.GzipLevel}
	}
	return loc, nil
}
