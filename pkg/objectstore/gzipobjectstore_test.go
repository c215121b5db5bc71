package objectstore

import (
	"compress/gzip"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/weberc2/mfs/pkg/testsupport"
)

func TestGzipObjectStore(t *testing.T) {
	fake := testsupport.ObjectStoreFake{}
	objectStore := GzipObjectStore{ObjectStore: fake, Level: gzip.BestSpeed}
	data := strings.Repeat("my-data", 100)
	if err := objectStore.PutObject(
		"my-bucket",
		"my-key",
		strings.NewReader(data),
	); err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}

	if stored := fake[[2]string{"my-bucket", "my-key"}]; len(stored) >= len(data) {
		t.Fatalf(
			"wanted compressed object smaller than `%d`; found `%d`",
			len(data),
			len(stored),
		)
	}

	body, err := objectStore.GetObject("my-bucket", "my-key")
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	defer body.Close()

	found, err := ioutil.ReadAll(body)
	if err != nil {
		t.Fatalf("Unexpected err: %v", err)
	}
	if string(found) != data {
		t.Fatalf("wanted '%s'; found '%s'", data, found)
	}
}
