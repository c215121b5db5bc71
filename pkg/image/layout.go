package image

import (
	"fmt"
	stdmath "math"

	"github.com/weberc2/mfs/pkg/encode"
	"github.com/weberc2/mfs/pkg/math"

	. "github.com/weberc2/mfs/pkg/types"
)

// Region is a block-aligned span of the image holding one kind of metadata.
type Region struct {
	Start Block
	Size  Byte
}

// Blocks is the number of whole blocks the region occupies.
func (r Region) Blocks(blockSize Byte) Block {
	return Block(math.DivRoundUp(r.Size, blockSize))
}

// Layout locates each metadata region. Regions follow one another in the
// order header, directory, inode bitmap, inode table, block bitmap; each
// starts on a block boundary.
type Layout struct {
	Header      Region
	Directory   Region
	InodeBitmap Region
	InodeTable  Region
	BlockBitmap Region

	// End is the first block past the metadata.
	End Block
}

func NewLayout(g *Geometry) Layout {
	var layout Layout
	next := Block(0)
	place := func(size Byte) Region {
		r := Region{Start: next, Size: size}
		next += r.Blocks(g.BlockSize)
		return r
	}
	layout.Header = place(encode.HeaderSize)
	layout.Directory = place(Byte(g.InodeCount) * encode.DirEntrySize)
	layout.InodeBitmap = place(math.DivRoundUp(Byte(g.InodeCount), 8))
	layout.InodeTable = place(
		Byte(g.InodeCount) * encode.InodeSize(g.BlocksPerFile),
	)
	layout.BlockBitmap = place(math.DivRoundUp(Byte(g.BlockCount), 8))
	layout.End = next
	return layout
}

// Offset is the byte offset of the region within the image.
func (r Region) Offset(blockSize Byte) Byte {
	return Byte(r.Start) * blockSize
}

// ValidateGeometry checks that `g` is internally consistent, that its fields
// fit their on-disk encodings, and that the metadata it implies ends at or
// before the first data block.
func ValidateGeometry(g *Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.BlockSize > stdmath.MaxUint32 || g.InodeCount > stdmath.MaxUint32 {
		return fmt.Errorf(
			"validating geometry: field exceeds 32 bits: %w",
			InvalidGeometryErr,
		)
	}
	if g.BlocksPerFile > MaxBlockCount {
		return fmt.Errorf(
			"validating geometry: blocks per file `%d` above maximum `%d`: %w",
			g.BlocksPerFile,
			MaxBlockCount,
			InvalidGeometryErr,
		)
	}
	if layout := NewLayout(g); layout.End > g.FirstDataBlock {
		return fmt.Errorf(
			"validating geometry: metadata needs `%d` blocks but first data "+
				"block is `%d`: %w",
			layout.End,
			g.FirstDataBlock,
			InvalidGeometryErr,
		)
	}
	return nil
}
