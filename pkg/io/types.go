package io

import (
	. "github.com/weberc2/mfs/pkg/types"
)

type ReadAt interface {
	ReadAt(offset Byte, b []byte) error
}

type WriteAt interface {
	WriteAt(offset Byte, p []byte) error
}

// Volume is a fixed-size, randomly addressable byte region.
type Volume interface {
	ReadAt
	WriteAt
}
