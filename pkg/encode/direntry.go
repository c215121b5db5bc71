package encode

import (
	. "github.com/weberc2/mfs/pkg/types"
)

// DirEntrySize is the fixed on-disk size of a directory entry.
const DirEntrySize Byte = 80

func EncodeDirEntry(entry *DirEntry, b *[DirEntrySize]byte) {
	*b = [DirEntrySize]byte{}
	p := b[:]
	// the last name byte stays NUL
	putString(p, dirEntryNameStart, dirEntryNameSize-1, entry.Name)
	putBool(p, dirEntryInUseStart, entry.InUse)
	putIno(p, dirEntryInoStart, entry.Ino)
	putU32(p, dirEntryDeletedSeqStart, entry.DeletedSeq)
}

func DecodeDirEntry(entry *DirEntry, b *[DirEntrySize]byte) {
	p := b[:]
	entry.Name = getString(p, dirEntryNameStart, dirEntryNameSize)
	entry.InUse = getBool(p, dirEntryInUseStart)
	entry.Ino = getIno(p, dirEntryInoStart)
	entry.DeletedSeq = getU32(p, dirEntryDeletedSeqStart)
}

const (
	dirEntryNameStart = 0
	dirEntryNameSize  = MaxNameLen + 1
	dirEntryNameEnd   = dirEntryNameStart + dirEntryNameSize

	dirEntryInUseStart = dirEntryNameEnd
	dirEntryInUseEnd   = dirEntryInUseStart + 1

	// 3 bytes of padding keep the inode number 4-byte aligned
	dirEntryInoStart = dirEntryInUseEnd + 3
	dirEntryInoEnd   = dirEntryInoStart + 4

	dirEntryDeletedSeqStart = dirEntryInoEnd
	dirEntryDeletedSeqEnd   = dirEntryDeletedSeqStart + 4
)

var _ = [DirEntrySize - dirEntryDeletedSeqEnd]struct{}{}
