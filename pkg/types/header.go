package types

import "github.com/google/uuid"

const (
	// ImageMagic identifies an image file.
	ImageMagic = "MFSIMAGE"

	// ImageVersion is the on-disk format version this package reads and
	// writes.
	ImageVersion uint32 = 1

	// MaxLabelLen is the longest volume label a header can hold.
	MaxLabelLen = 32

	ChecksumSize = 32
)

// Header is the self-describing record at the start of every image.
type Header struct {
	Geometry  Geometry
	ID        uuid.UUID
	Label     string
	DeleteSeq uint32
	Checksum  [ChecksumSize]byte
}
