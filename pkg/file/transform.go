package file

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/image"
)

// ToggleCipher XORs every content byte of `name` with `key`. Applying it
// twice with the same key restores the original content, so it serves as
// both encrypt and decrypt.
func ToggleCipher(img *image.Image, name string, key byte) error {
	if err := img.RequireOpen(); err != nil {
		return fmt.Errorf("ciphering `%s`: %w", name, err)
	}
	_, inode, err := lookup(img, name)
	if err != nil {
		return fmt.Errorf("ciphering file: %w", err)
	}

	blockSize := img.Geometry.BlockSize
	buf := make([]byte, blockSize)
	for i, b := range inode.Blocks {
		p := buf[:blockLen(inode.Size, blockSize, i)]
		volume := img.BlockVolume(b)
		if err := volume.ReadAt(0, p); err != nil {
			return fmt.Errorf("ciphering `%s`: %w", name, err)
		}
		for j := range p {
			p[j] ^= key
		}
		if err := volume.WriteAt(0, p); err != nil {
			return fmt.Errorf("ciphering `%s`: %w", name, err)
		}
	}

	log.WithField("file", name).Debugf("toggled cipher over `%d` bytes", inode.Size)
	return nil
}
