package io

import (
	"fmt"

	. "github.com/weberc2/mfs/pkg/types"
)

// OffsetVolume exposes a window of another volume starting at a fixed
// offset, e.g. a single block or a metadata region.
type OffsetVolume struct {
	inner  Volume
	offset Byte
	size   Byte
}

func NewOffsetVolume(inner Volume, offset, size Byte) *OffsetVolume {
	return &OffsetVolume{inner: inner, offset: offset, size: size}
}

func (v *OffsetVolume) ReadAt(offset Byte, b []byte) error {
	if offset < 0 || offset+Byte(len(b)) > v.size {
		return fmt.Errorf(
			"reading `%d` bytes at offset `%d` of `%d`-byte window: %w",
			len(b),
			offset,
			v.size,
			RangeOutOfBoundsErr,
		)
	}
	if err := v.inner.ReadAt(offset+v.offset, b); err != nil {
		return fmt.Errorf(
			"reading additional offset `%d` from base offset `%d` (total "+
				"offset `%d` bytes): %w",
			offset,
			v.offset,
			offset+v.offset,
			err,
		)
	}
	return nil
}

func (v *OffsetVolume) WriteAt(offset Byte, b []byte) error {
	if offset < 0 || offset+Byte(len(b)) > v.size {
		return fmt.Errorf(
			"writing `%d` bytes at offset `%d` of `%d`-byte window: %w",
			len(b),
			offset,
			v.size,
			RangeOutOfBoundsErr,
		)
	}
	if err := v.inner.WriteAt(offset+v.offset, b); err != nil {
		return fmt.Errorf(
			"writing additional offset `%d` from base offset `%d` (total "+
				"offset `%d` bytes): %w",
			offset,
			v.offset,
			offset+v.offset,
			err,
		)
	}
	return nil
}

func (v *OffsetVolume) Size() Byte { return v.size }
