package alloc

import (
	"github.com/weberc2/mfs/pkg/math"
)

const bitsPerByte = 8

// Bitmap tracks allocation over `size` slots; a high bit means the slot is
// allocated. Slots are packed most significant bit first.
type Bitmap struct {
	bytes []byte
	size  uint64
	start uint64
}

func New(size uint64) Bitmap {
	return Bitmap{
		bytes: make([]byte, math.DivRoundUp(size, bitsPerByte)),
		size:  size,
	}
}

// Load builds a bitmap over `size` slots from its packed representation.
func Load(size uint64, packed []byte) Bitmap {
	bm := New(size)
	copy(bm.bytes, packed)
	return bm
}

// Alloc claims the first free slot at or above the bitmap's scan start.
func (bm *Bitmap) Alloc() (uint64, bool) {
	i, ok := bm.FirstFree(bm.start)
	if !ok {
		return 0, false
	}
	bm.Reserve(i)
	return i, true
}

// SetScanStart restricts `Alloc` to slots at or above `start`.
func (bm *Bitmap) SetScanStart(start uint64) { bm.start = start }

// FirstFree returns the first free slot at or above `from`.
func (bm *Bitmap) FirstFree(from uint64) (uint64, bool) {
	i := from
	for i < bm.size {
		// skip whole bytes when we're byte-aligned and the byte is full
		if i%bitsPerByte == 0 && bm.bytes[i/bitsPerByte] == 0xff {
			i += bitsPerByte
			continue
		}
		if bm.IsFree(i) {
			return i, true
		}
		i++
	}
	return 0, false
}

func (bm *Bitmap) Free(value uint64) {
	b := &bm.bytes[value/bitsPerByte]
	*b = byteSetLow(*b, uint8(value%bitsPerByte))
}

func (bm *Bitmap) Reserve(value uint64) {
	b := &bm.bytes[value/bitsPerByte]
	*b = byteSetHigh(*b, uint8(value%bitsPerByte))
}

func (bm *Bitmap) IsFree(value uint64) bool {
	return byteIsZero(bm.bytes[value/bitsPerByte], uint8(value%bitsPerByte))
}

// CountFree counts the free slots in `[from, to)`.
func (bm *Bitmap) CountFree(from, to uint64) uint64 {
	var n uint64
	for i := from; i < to && i < bm.size; i++ {
		if bm.IsFree(i) {
			n++
		}
	}
	return n
}

func (bm *Bitmap) Len() uint64 { return bm.size }

func (bm *Bitmap) Bytes() []byte { return bm.bytes }

func byteIsZero(byt byte, bit uint8) bool {
	return byt&(0b1000_0000>>bit) == 0
}

func byteSetHigh(byt byte, bit uint8) byte {
	return byt | (0b1000_0000 >> bit)
}

func byteSetLow(byt byte, bit uint8) byte {
	return byt & ^(0b1000_0000 >> bit)
}
