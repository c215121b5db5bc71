package types

import (
	"fmt"
	"time"
)

// Ino is a 1-based inode number. `InoNil` is reserved to mean "no inode".
type Ino uint64

const (
	InoNil   Ino = 0
	InoFirst Ino = 1
)

// Index returns the zero-based position of the inode in the inode table.
func (ino Ino) Index() int { return int(ino - InoFirst) }

// InoFromIndex is the inverse of `Ino.Index`.
func InoFromIndex(i int) Ino { return Ino(i) + InoFirst }

type Inode struct {
	Ino       Ino
	InUse     bool
	Attribute Attribute
	Size      Byte
	Created   Timestamp
	Blocks    []Block
}

// Reset returns the inode to its freshly-created state, keeping its number.
func (inode *Inode) Reset() {
	*inode = Inode{Ino: inode.Ino}
}

// Clone returns a deep copy of the inode.
func (inode *Inode) Clone() Inode {
	out := *inode
	out.Blocks = append([]Block(nil), inode.Blocks...)
	return out
}

// Attribute is the per-file attribute bitmask.
type Attribute uint8

const (
	AttributeNone     Attribute = 0
	AttributeHidden   Attribute = 0x1
	AttributeReadOnly Attribute = 0x2
)

func (attr Attribute) Hidden() bool   { return attr&AttributeHidden != 0 }
func (attr Attribute) ReadOnly() bool { return attr&AttributeReadOnly != 0 }

// String renders the attribute as its 8-bit pattern, most significant bit
// first.
func (attr Attribute) String() string { return fmt.Sprintf("%08b", uint8(attr)) }

// Timestamp is the wall-clock time of day at which a file was inserted.
type Timestamp struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", ts.Hour, ts.Minute, ts.Second)
}
