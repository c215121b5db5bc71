package encode

import (
	"fmt"

	. "github.com/weberc2/mfs/pkg/types"
)

// InodeSize is the on-disk size of an inode whose block list holds up to
// `blocksPerFile` pointers.
func InodeSize(blocksPerFile Block) Byte {
	return inodeBlocksStart + Byte(blocksPerFile)*BlockPointerSize
}

// EncodeInode writes `inode` into `p`, which must be exactly
// `InodeSize(blocksPerFile)` bytes. Unused block slots are written as
// `BlockNil`.
func EncodeInode(inode *Inode, p []byte) {
	putBool(p, inodeInUseStart, inode.InUse)
	putU8(p, inodeAttributeStart, uint8(inode.Attribute))
	putU8(p, inodeHourStart, inode.Created.Hour)
	putU8(p, inodeMinuteStart, inode.Created.Minute)
	putU8(p, inodeSecondStart, inode.Created.Second)
	for i := Byte(inodeSecondEnd); i < inodeSizeStart; i++ {
		p[i] = 0
	}
	putU64(p, inodeSizeStart, uint64(inode.Size))

	slots := (Byte(len(p)) - inodeBlocksStart) / BlockPointerSize
	for i := Byte(0); i < slots; i++ {
		b := BlockNil
		if i < Byte(len(inode.Blocks)) {
			b = inode.Blocks[i]
		}
		putBlock(p, inodeBlocksStart+i*BlockPointerSize, b)
	}
}

// DecodeInode reads an inode from `p`. Block pointers are read up to the
// first `BlockNil`; a non-nil pointer after a nil one is rejected.
func DecodeInode(inode *Inode, p []byte) error {
	var blocks []Block
	slots := (Byte(len(p)) - inodeBlocksStart) / BlockPointerSize
	for i := Byte(0); i < slots; i++ {
		b := getBlock(p, inodeBlocksStart+i*BlockPointerSize)
		if b == BlockNil {
			for j := i + 1; j < slots; j++ {
				if getBlock(p, inodeBlocksStart+j*BlockPointerSize) != BlockNil {
					return fmt.Errorf(
						"decoding inode `%d`: block slot `%d` follows an "+
							"empty slot: %w",
						inode.Ino,
						j,
						CorruptImageErr,
					)
				}
			}
			break
		}
		blocks = append(blocks, b)
	}

	inode.InUse = getBool(p, inodeInUseStart)
	inode.Attribute = Attribute(getU8(p, inodeAttributeStart))
	inode.Created = Timestamp{
		Hour:   getU8(p, inodeHourStart),
		Minute: getU8(p, inodeMinuteStart),
		Second: getU8(p, inodeSecondStart),
	}
	inode.Size = Byte(getU64(p, inodeSizeStart))
	inode.Blocks = blocks
	return nil
}

const (
	inodeInUseStart = 0
	inodeInUseEnd   = inodeInUseStart + 1

	inodeAttributeStart = inodeInUseEnd
	inodeAttributeEnd   = inodeAttributeStart + 1

	inodeHourStart = inodeAttributeEnd
	inodeHourEnd   = inodeHourStart + 1

	inodeMinuteStart = inodeHourEnd
	inodeMinuteEnd   = inodeMinuteStart + 1

	inodeSecondStart = inodeMinuteEnd
	inodeSecondEnd   = inodeSecondStart + 1

	inodeSizeStart Byte = 8
	inodeSizeEnd        = inodeSizeStart + 8

	inodeBlocksStart = inodeSizeEnd
)
