package types

// Byte is a count of bytes or a byte offset within an image.
type Byte int64

// Block identifies a block within an image's block store.
type Block uint64

const (
	// BlockNil marks an unused block slot. Every allocatable block id is at
	// or above the geometry's first data block, which is never zero, so
	// BlockNil cannot collide with a real block.
	BlockNil Block = 0

	// BlockPointerSize is the on-disk width of a block id.
	BlockPointerSize Byte = 2

	// MaxBlockCount is the largest block count addressable by a
	// `BlockPointerSize` block id.
	MaxBlockCount Block = 1 << (8 * BlockPointerSize)
)
