package image

import (
	"bytes"
	"fmt"
	"io/ioutil"

	log "github.com/sirupsen/logrus"

	. "github.com/weberc2/mfs/pkg/types"
)

// Save serializes the image and writes it to its path, replacing whatever is
// there.
func (img *Image) Save() error {
	if !img.open {
		return fmt.Errorf("saving image: %w", NoImageOpenErr)
	}
	loc, err := img.Router.Route(img.Path, img.Label)
	if err != nil {
		return fmt.Errorf("saving image: %w", err)
	}

	img.encodeMetadata()
	if err := loc.Store.PutObject(
		loc.Bucket,
		loc.Key,
		bytes.NewReader(img.Volume.Bytes()),
	); err != nil {
		return fmt.Errorf("saving image to `%s`: %w", loc.String(), err)
	}

	log.WithField("id", img.ID).Infof("saved image `%s`", img.Path)
	return nil
}

// Open loads the image at `path`. The image is left closed if anything about
// it fails validation.
func (img *Image) Open(path string) error {
	if img.open {
		return fmt.Errorf("opening image `%s`: %w", path, ImageAlreadyOpenErr)
	}

	data, err := img.fetch(path)
	if err != nil {
		return fmt.Errorf(
			"opening image `%s`: %v: %w",
			path,
			err,
			ImageNotFoundErr,
		)
	}

	loaded, err := decodeImage(data)
	if err != nil {
		return fmt.Errorf("opening image `%s`: %w", path, err)
	}
	loaded.Path = path
	loaded.Router = img.Router
	loaded.Clock = img.Clock
	loaded.open = true
	*img = loaded

	log.WithField("id", img.ID).Infof(
		"opened image `%s` (label `%s`)",
		path,
		img.Label,
	)
	return nil
}

func (img *Image) fetch(path string) ([]byte, error) {
	loc, err := img.Router.Route(path, "")
	if err != nil {
		return nil, err
	}
	body, err := loc.Store.GetObject(loc.Bucket, loc.Key)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := body.Close(); err != nil {
			log.Errorf("closing image `%s`: %v", path, err)
		}
	}()
	return ioutil.ReadAll(body)
}
