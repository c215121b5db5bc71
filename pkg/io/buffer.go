package io

import (
	"fmt"
	"io"

	. "github.com/weberc2/mfs/pkg/types"
)

// Buffer is an in-memory Volume of fixed length. Reads and writes that do
// not fit entirely inside the buffer fail without touching it.
type Buffer struct {
	data []byte
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) ReadAt(offset Byte, p []byte) error {
	if err := b.check(offset, p); err != nil {
		return fmt.Errorf(
			"reading `%d` bytes from buffer at offset `%d`: %w",
			len(p),
			offset,
			err,
		)
	}
	copy(p, b.data[offset:])
	return nil
}

func (b *Buffer) WriteAt(offset Byte, p []byte) error {
	if err := b.check(offset, p); err != nil {
		return fmt.Errorf(
			"writing `%d` bytes to buffer at offset `%d`: %w",
			len(p),
			offset,
			err,
		)
	}
	copy(b.data[offset:], p)
	return nil
}

func (b *Buffer) check(offset Byte, p []byte) error {
	if offset < 0 || offset+Byte(len(p)) > Byte(len(b.data)) {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// Zero clears `[offset, offset+size)`.
func (b *Buffer) Zero(offset, size Byte) {
	region := b.data[offset : offset+size]
	for i := range region {
		region[i] = 0
	}
}

func (b *Buffer) Bytes() []byte { return b.data }
