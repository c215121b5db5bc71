package alloc

import (
	"fmt"

	. "github.com/weberc2/mfs/pkg/types"
)

// BlockAllocator hands out data blocks. Only blocks in
// `[FirstDataBlock, BlockCount)` are ever returned; metadata blocks below the
// boundary are never allocated, freed or reserved through it.
type BlockAllocator struct {
	bitmap Bitmap
	first  Block
	count  Block
}

func NewBlockAllocator(geometry *Geometry) BlockAllocator {
	return LoadBlockAllocator(geometry, nil)
}

// LoadBlockAllocator restores an allocator from its packed bitmap.
func LoadBlockAllocator(geometry *Geometry, packed []byte) BlockAllocator {
	bm := Load(uint64(geometry.BlockCount), packed)
	bm.SetScanStart(uint64(geometry.FirstDataBlock))
	return BlockAllocator{
		bitmap: bm,
		first:  geometry.FirstDataBlock,
		count:  geometry.BlockCount,
	}
}

func (ba *BlockAllocator) Alloc() (Block, error) {
	if b, ok := ba.bitmap.Alloc(); ok {
		return Block(b), nil
	}
	return BlockNil, fmt.Errorf("allocating block: %w", BlockExhaustedErr)
}

func (ba *BlockAllocator) Free(b Block) error {
	if err := ba.check(b); err != nil {
		return fmt.Errorf("freeing block `%d`: %w", b, err)
	}
	if ba.bitmap.IsFree(uint64(b)) {
		return fmt.Errorf("freeing block `%d`: double free: %w", b, LogicErr)
	}
	ba.bitmap.Free(uint64(b))
	return nil
}

func (ba *BlockAllocator) Reserve(b Block) error {
	if err := ba.check(b); err != nil {
		return fmt.Errorf("reserving block `%d`: %w", b, err)
	}
	if !ba.bitmap.IsFree(uint64(b)) {
		return fmt.Errorf(
			"reserving block `%d`: already allocated: %w",
			b,
			LogicErr,
		)
	}
	ba.bitmap.Reserve(uint64(b))
	return nil
}

// IsFree reports whether `b` is a data block that is currently unallocated.
func (ba *BlockAllocator) IsFree(b Block) bool {
	return ba.check(b) == nil && ba.bitmap.IsFree(uint64(b))
}

// FreeCount counts the unallocated data blocks.
func (ba *BlockAllocator) FreeCount() Block {
	return Block(ba.bitmap.CountFree(uint64(ba.first), uint64(ba.count)))
}

func (ba *BlockAllocator) Bytes() []byte { return ba.bitmap.Bytes() }

func (ba *BlockAllocator) check(b Block) error {
	if b < ba.first || b >= ba.count {
		return fmt.Errorf(
			"block outside data range `[%d, %d)`: %w",
			ba.first,
			ba.count,
			LogicErr,
		)
	}
	return nil
}
