package file

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// Retrieve writes the content of `name` to the host file `outputPath`,
// replacing it. An empty `outputPath` means `name` in the working
// directory.
func Retrieve(img *image.Image, name, outputPath string) (err error) {
	if err := img.RequireOpen(); err != nil {
		return fmt.Errorf("retrieving `%s`: %w", name, err)
	}
	_, inode, err := lookup(img, name)
	if err != nil {
		return fmt.Errorf("retrieving file: %w", err)
	}
	if outputPath == "" {
		outputPath = name
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf(
			"retrieving `%s` to `%s`: %v: %w",
			name,
			outputPath,
			err,
			OutputOpenFailedErr,
		)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("retrieving `%s`: closing output: %w", name, closeErr)
		}
	}()

	blockSize := img.Geometry.BlockSize
	buf := make([]byte, blockSize)
	for i, b := range inode.Blocks {
		p := buf[:blockLen(inode.Size, blockSize, i)]
		if err := img.BlockVolume(b).ReadAt(0, p); err != nil {
			return fmt.Errorf("retrieving `%s`: %w", name, err)
		}
		if _, err := f.Write(p); err != nil {
			return fmt.Errorf("retrieving `%s` to `%s`: %w", name, outputPath, err)
		}
	}

	log.WithField("file", name).Debugf(
		"retrieved `%d` bytes to `%s`",
		inode.Size,
		outputPath,
	)
	return nil
}
