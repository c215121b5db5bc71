package encode

import (
	"fmt"

	. "github.com/weberc2/mfs/pkg/types"
)

// HeaderSize is the number of bytes at the start of block 0 reserved for
// the image header.
const HeaderSize Byte = 128

func EncodeHeader(h *Header, b *[HeaderSize]byte) {
	*b = [HeaderSize]byte{}
	p := b[:]
	putString(p, headerMagicStart, headerMagicSize, ImageMagic)
	putU32(p, headerVersionStart, ImageVersion)
	putU32(p, headerBlockSizeStart, uint32(h.Geometry.BlockSize))
	putU32(p, headerBlockCountStart, uint32(h.Geometry.BlockCount))
	putU32(p, headerFirstDataBlockStart, uint32(h.Geometry.FirstDataBlock))
	putU32(p, headerInodeCountStart, uint32(h.Geometry.InodeCount))
	putU32(p, headerBlocksPerFileStart, uint32(h.Geometry.BlocksPerFile))
	putU64(p, headerMaxFileSizeStart, uint64(h.Geometry.MaxFileSize))
	copy(p[headerIDStart:headerIDEnd], h.ID[:])
	putString(p, headerLabelStart, headerLabelSize, h.Label)
	putU32(p, headerDeleteSeqStart, h.DeleteSeq)
	copy(p[headerChecksumStart:headerChecksumEnd], h.Checksum[:])
}

// DecodeHeader parses a header, rejecting foreign or unsupported images.
// The geometry is returned as found; callers validate it.
func DecodeHeader(h *Header, b *[HeaderSize]byte) error {
	p := b[:]
	if magic := string(p[headerMagicStart:headerMagicEnd]); magic != ImageMagic {
		return fmt.Errorf(
			"decoding header: bad magic `%q`: %w",
			magic,
			CorruptImageErr,
		)
	}
	if version := getU32(p, headerVersionStart); version != ImageVersion {
		return fmt.Errorf(
			"decoding header: unsupported version `%d`: %w",
			version,
			CorruptImageErr,
		)
	}

	h.Geometry = Geometry{
		BlockSize:      Byte(getU32(p, headerBlockSizeStart)),
		BlockCount:     Block(getU32(p, headerBlockCountStart)),
		FirstDataBlock: Block(getU32(p, headerFirstDataBlockStart)),
		InodeCount:     Ino(getU32(p, headerInodeCountStart)),
		BlocksPerFile:  Block(getU32(p, headerBlocksPerFileStart)),
		MaxFileSize:    Byte(getU64(p, headerMaxFileSizeStart)),
	}
	copy(h.ID[:], p[headerIDStart:headerIDEnd])
	h.Label = getString(p, headerLabelStart, headerLabelSize)
	h.DeleteSeq = getU32(p, headerDeleteSeqStart)
	copy(h.Checksum[:], p[headerChecksumStart:headerChecksumEnd])
	return nil
}

// HeaderChecksumRange is the byte range of the checksum within the header.
// It is zeroed while the checksum is computed.
func HeaderChecksumRange() (start, end Byte) {
	return headerChecksumStart, headerChecksumEnd
}

const (
	headerMagicStart = 0
	headerMagicSize  = Byte(len(ImageMagic))
	headerMagicEnd   = headerMagicStart + headerMagicSize

	headerVersionStart = headerMagicEnd
	headerVersionEnd   = headerVersionStart + 4

	headerBlockSizeStart = headerVersionEnd
	headerBlockSizeEnd   = headerBlockSizeStart + 4

	headerBlockCountStart = headerBlockSizeEnd
	headerBlockCountEnd   = headerBlockCountStart + 4

	headerFirstDataBlockStart = headerBlockCountEnd
	headerFirstDataBlockEnd   = headerFirstDataBlockStart + 4

	headerInodeCountStart = headerFirstDataBlockEnd
	headerInodeCountEnd   = headerInodeCountStart + 4

	headerBlocksPerFileStart = headerInodeCountEnd
	headerBlocksPerFileEnd   = headerBlocksPerFileStart + 4

	headerMaxFileSizeStart = headerBlocksPerFileEnd
	headerMaxFileSizeEnd   = headerMaxFileSizeStart + 8

	headerIDStart = headerMaxFileSizeEnd
	headerIDSize  = 16
	headerIDEnd   = headerIDStart + headerIDSize

	headerLabelStart = headerIDEnd
	headerLabelSize  = MaxLabelLen
	headerLabelEnd   = headerLabelStart + headerLabelSize

	headerDeleteSeqStart = headerLabelEnd
	headerDeleteSeqEnd   = headerDeleteSeqStart + 4

	headerChecksumStart = headerDeleteSeqEnd
	headerChecksumSize  = ChecksumSize
	headerChecksumEnd   = headerChecksumStart + headerChecksumSize
)

// compile-time assertion that the fields fit in the reserved header space
var _ = [HeaderSize - headerChecksumEnd]struct{}{}
