package image

import (
	"fmt"

	"github.com/weberc2/mfs/pkg/alloc"
	"github.com/weberc2/mfs/pkg/encode"
	"github.com/weberc2/mfs/pkg/io"
	"golang.org/x/crypto/blake2b"

	. "github.com/weberc2/mfs/pkg/types"
)

// encodeMetadata serializes the typed metadata into its regions of the block
// store and stamps the header checksum.
func (img *Image) encodeMetadata() {
	blockSize := img.Geometry.BlockSize
	layout := &img.Layout
	img.Volume.Zero(0, Byte(layout.End)*blockSize)
	data := img.Volume.Bytes()

	header := Header{
		Geometry:  img.Geometry,
		ID:        img.ID,
		Label:     img.Label,
		DeleteSeq: img.DeleteSeq,
	}
	encode.EncodeHeader(
		&header,
		(*[encode.HeaderSize]byte)(region(data, layout.Header, blockSize)),
	)

	dir := region(data, layout.Directory, blockSize)
	for i := range img.Directory {
		start := Byte(i) * encode.DirEntrySize
		encode.EncodeDirEntry(
			&img.Directory[i],
			(*[encode.DirEntrySize]byte)(dir[start:start+encode.DirEntrySize]),
		)
	}

	copy(region(data, layout.InodeBitmap, blockSize), img.Inos.Bytes())

	table := region(data, layout.InodeTable, blockSize)
	inodeSize := encode.InodeSize(img.Geometry.BlocksPerFile)
	for i := range img.Inodes {
		start := Byte(i) * inodeSize
		encode.EncodeInode(&img.Inodes[i], table[start:start+inodeSize])
	}

	copy(region(data, layout.BlockBitmap, blockSize), img.Blocks.Bytes())

	sum := checksum(data)
	start, end := encode.HeaderChecksumRange()
	copy(data[start:end], sum[:])
}

// decodeImage parses and validates a serialized image. The returned image
// takes ownership of `data` as its block store.
func decodeImage(data []byte) (Image, error) {
	if Byte(len(data)) < encode.HeaderSize {
		return Image{}, corrupt(
			"image is `%d` bytes; shorter than its header",
			len(data),
		)
	}

	var header Header
	if err := encode.DecodeHeader(
		&header,
		(*[encode.HeaderSize]byte)(data[:encode.HeaderSize]),
	); err != nil {
		return Image{}, fmt.Errorf("decoding image: %w", err)
	}

	g := header.Geometry
	if err := ValidateGeometry(&g); err != nil {
		return Image{}, corrupt("%v", err)
	}
	if size := Byte(len(data)); size != g.ImageSize() {
		return Image{}, corrupt(
			"image is `%d` bytes; geometry requires `%d`",
			size,
			g.ImageSize(),
		)
	}
	if sum := checksum(data); sum != header.Checksum {
		return Image{}, corrupt("checksum mismatch")
	}

	var img Image
	img.reset(&g)
	img.ID = header.ID
	img.Label = header.Label
	img.DeleteSeq = header.DeleteSeq

	blockSize := g.BlockSize
	layout := &img.Layout

	dir := region(data, layout.Directory, blockSize)
	for i := range img.Directory {
		start := Byte(i) * encode.DirEntrySize
		encode.DecodeDirEntry(
			&img.Directory[i],
			(*[encode.DirEntrySize]byte)(dir[start:start+encode.DirEntrySize]),
		)
	}

	img.Inos = alloc.LoadInoAllocator(
		g.InodeCount,
		region(data, layout.InodeBitmap, blockSize),
	)

	table := region(data, layout.InodeTable, blockSize)
	inodeSize := encode.InodeSize(g.BlocksPerFile)
	for i := range img.Inodes {
		start := Byte(i) * inodeSize
		if err := encode.DecodeInode(
			&img.Inodes[i],
			table[start:start+inodeSize],
		); err != nil {
			return Image{}, fmt.Errorf("decoding image: %w", err)
		}
	}

	img.Blocks = alloc.LoadBlockAllocator(
		&g,
		region(data, layout.BlockBitmap, blockSize),
	)

	if err := img.checkConsistency(); err != nil {
		return Image{}, err
	}

	img.Volume = io.NewBuffer(data)
	return img, nil
}

func region(data []byte, r Region, blockSize Byte) []byte {
	offset := r.Offset(blockSize)
	return data[offset : offset+r.Size]
}

// checksum hashes the whole image with the header's checksum field zeroed.
// `data` is restored before returning.
func checksum(data []byte) [ChecksumSize]byte {
	start, end := encode.HeaderChecksumRange()
	var stored [ChecksumSize]byte
	copy(stored[:], data[start:end])
	for i := start; i < end; i++ {
		data[i] = 0
	}
	sum := blake2b.Sum256(data)
	copy(data[start:end], stored[:])
	return sum
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf(
		"decoding image: %s: %w",
		fmt.Sprintf(format, args...),
		CorruptImageErr,
	)
}
