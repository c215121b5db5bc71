package types

import "fmt"

// Geometry fixes the dimensions of an image.
type Geometry struct {
	BlockSize      Byte  `json:"blockSize"`
	BlockCount     Block `json:"blockCount"`
	FirstDataBlock Block `json:"firstDataBlock"`
	InodeCount     Ino   `json:"inodeCount"`
	BlocksPerFile  Block `json:"blocksPerFile"`
	MaxFileSize    Byte  `json:"maxFileSize"`
}

// DefaultGeometry is 64 MiB of 1 KiB blocks, the first 1001 of which are
// reserved for metadata, with room for 256 files of up to 1 MiB each.
var DefaultGeometry = Geometry{
	BlockSize:      1024,
	BlockCount:     65536,
	FirstDataBlock: 1001,
	InodeCount:     256,
	BlocksPerFile:  1024,
	MaxFileSize:    1048576,
}

// MinBlockSize is the smallest block size that can hold an image header.
const MinBlockSize Byte = 256

// Validate checks the geometry's internal consistency. It does not know about
// the metadata layout; see `image.ValidateGeometry` for that.
func (g *Geometry) Validate() error {
	if reason := func() string {
		if g.BlockSize < MinBlockSize {
			return fmt.Sprintf("block size `%d` below minimum `%d`", g.BlockSize, MinBlockSize)
		}
		if g.BlockCount > MaxBlockCount {
			return fmt.Sprintf("block count `%d` above maximum `%d`", g.BlockCount, MaxBlockCount)
		}
		if g.FirstDataBlock < 1 || g.FirstDataBlock >= g.BlockCount {
			return fmt.Sprintf("first data block `%d` outside `[1, %d)`", g.FirstDataBlock, g.BlockCount)
		}
		if g.InodeCount < 1 {
			return "inode count must be positive"
		}
		if g.BlocksPerFile < 1 {
			return "blocks per file must be positive"
		}
		if g.MaxFileSize < 1 {
			return "max file size must be positive"
		}
		return ""
	}(); reason != "" {
		return fmt.Errorf("validating geometry: %s: %w", reason, InvalidGeometryErr)
	}
	return nil
}

// ImageSize is the exact length of a serialized image.
func (g *Geometry) ImageSize() Byte { return g.BlockSize * Byte(g.BlockCount) }

// DataBlocks is the number of blocks available for file content.
func (g *Geometry) DataBlocks() Block { return g.BlockCount - g.FirstDataBlock }

// BlockOffset is the byte offset of `b` within the block store.
func (g *Geometry) BlockOffset(b Block) Byte { return Byte(b) * g.BlockSize }

// IsDataBlock reports whether `b` lies in the allocatable range.
func (g *Geometry) IsDataBlock(b Block) bool {
	return b >= g.FirstDataBlock && b < g.BlockCount
}
