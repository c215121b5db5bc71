package alloc

import (
	"fmt"

	. "github.com/weberc2/mfs/pkg/types"
)

type InoAllocator struct {
	bitmap Bitmap
}

func NewInoAllocator(count Ino) InoAllocator {
	return LoadInoAllocator(count, nil)
}

func LoadInoAllocator(count Ino, packed []byte) InoAllocator {
	return InoAllocator{bitmap: Load(uint64(count), packed)}
}

func (ia *InoAllocator) Alloc() (Ino, error) {
	if ino, ok := ia.bitmap.Alloc(); ok {
		return Ino(ino) + InoFirst, nil
	}
	return InoNil, fmt.Errorf("allocating inode: %w", InodeExhaustedErr)
}

// HasFree reports whether `Alloc` would succeed.
func (ia *InoAllocator) HasFree() bool {
	_, ok := ia.bitmap.FirstFree(0)
	return ok
}

func (ia *InoAllocator) Free(ino Ino) error {
	if err := ia.check(ino); err != nil {
		return fmt.Errorf("freeing inode `%d`: %w", ino, err)
	}
	if ia.bitmap.IsFree(uint64(ino - InoFirst)) {
		return fmt.Errorf("freeing inode `%d`: double free: %w", ino, LogicErr)
	}
	ia.bitmap.Free(uint64(ino - InoFirst))
	return nil
}

func (ia *InoAllocator) Reserve(ino Ino) error {
	if err := ia.check(ino); err != nil {
		return fmt.Errorf("reserving inode `%d`: %w", ino, err)
	}
	if !ia.bitmap.IsFree(uint64(ino - InoFirst)) {
		return fmt.Errorf(
			"reserving inode `%d`: already allocated: %w",
			ino,
			LogicErr,
		)
	}
	ia.bitmap.Reserve(uint64(ino - InoFirst))
	return nil
}

func (ia *InoAllocator) IsFree(ino Ino) bool {
	return ia.check(ino) == nil && ia.bitmap.IsFree(uint64(ino-InoFirst))
}

// UsedCount counts the allocated inodes.
func (ia *InoAllocator) UsedCount() Ino {
	return Ino(ia.bitmap.Len() - ia.bitmap.CountFree(0, ia.bitmap.Len()))
}

func (ia *InoAllocator) Bytes() []byte { return ia.bitmap.Bytes() }

func (ia *InoAllocator) check(ino Ino) error {
	if ino < InoFirst || uint64(ino-InoFirst) >= ia.bitmap.Len() {
		return fmt.Errorf("inode outside table: %w", LogicErr)
	}
	return nil
}
