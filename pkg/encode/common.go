package encode

import (
	"bytes"
	"encoding/binary"

	. "github.com/weberc2/mfs/pkg/types"
)

func putBlock(b []byte, start Byte, u Block) {
	putU16(b, start, uint16(u))
}

func getBlock(b []byte, start Byte) Block {
	return Block(getU16(b, start))
}

func putIno(b []byte, start Byte, u Ino) {
	putU32(b, start, uint32(u))
}

func getIno(b []byte, start Byte) Ino {
	return Ino(getU32(b, start))
}

func putU64(b []byte, start Byte, u uint64) {
	binary.LittleEndian.PutUint64(b[start:start+8], u)
}

func getU64(b []byte, start Byte) uint64 {
	return binary.LittleEndian.Uint64(b[start : start+8])
}

func putU32(b []byte, start Byte, u uint32) {
	binary.LittleEndian.PutUint32(b[start:start+4], u)
}

func getU32(b []byte, start Byte) uint32 {
	return binary.LittleEndian.Uint32(b[start : start+4])
}

func putU16(b []byte, start Byte, u uint16) {
	binary.LittleEndian.PutUint16(b[start:start+2], u)
}

func getU16(b []byte, start Byte) uint16 {
	return binary.LittleEndian.Uint16(b[start : start+2])
}

func putU8(b []byte, start Byte, u uint8) {
	b[start] = u
}

func getU8(b []byte, start Byte) uint8 {
	return b[start]
}

func putBool(b []byte, start Byte, v bool) {
	if v {
		b[start] = 1
		return
	}
	b[start] = 0
}

func getBool(b []byte, start Byte) bool {
	return b[start] != 0
}

// putString writes `s` into the fixed-width field `[start, start+size)`,
// zero-filling the remainder. `s` is truncated if it doesn't fit.
func putString(b []byte, start, size Byte, s string) {
	field := b[start : start+size]
	n := copy(field, s)
	for i := range field[n:] {
		field[n+i] = 0
	}
}

// getString reads a NUL-terminated string from a fixed-width field.
func getString(b []byte, start, size Byte) string {
	field := b[start : start+size]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}
