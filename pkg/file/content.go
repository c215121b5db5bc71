package file

import (
	"fmt"

	"github.com/weberc2/mfs/pkg/image"
	"github.com/weberc2/mfs/pkg/math"

	. "github.com/weberc2/mfs/pkg/types"
)

// readContent fills `p` with file content starting at byte `start`. The
// caller bounds-checks against the file size.
func readContent(img *image.Image, inode *Inode, start Byte, p []byte) error {
	blockSize := img.Geometry.BlockSize
	end := start + Byte(len(p))
	for pos := start; pos < end; {
		index := pos / blockSize
		offset := pos % blockSize
		n := math.Min(blockSize-offset, end-pos)
		if err := img.BlockVolume(inode.Blocks[index]).ReadAt(
			offset,
			p[pos-start:pos-start+n],
		); err != nil {
			return fmt.Errorf(
				"reading block `%d` of inode `%d`: %w",
				index,
				inode.Ino,
				err,
			)
		}
		pos += n
	}
	return nil
}

// blockLen is the number of content bytes held by the `index`th block of a
// file of `size` bytes.
func blockLen(size, blockSize Byte, index int) Byte {
	return math.Min(blockSize, size-Byte(index)*blockSize)
}
