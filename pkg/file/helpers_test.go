package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// 248 data blocks of 256 bytes; 16 blocks per file
var testGeometry = Geometry{
	BlockSize:      256,
	BlockCount:     256,
	FirstDataBlock: 8,
	InodeCount:     8,
	BlocksPerFile:  16,
	MaxFileSize:    4096,
}

func newImage(t *testing.T, g Geometry) *image.Image {
	img := image.New(nil)
	img.Clock = func() time.Time {
		return time.Date(2024, 3, 1, 13, 37, 42, 0, time.Local)
	}
	require.NoError(t, img.Create(
		filepath.Join(t.TempDir(), "a.img"),
		&image.Params{Geometry: g},
	))
	return img
}

func writeSource(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func pattern(size int, seed byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*7) + seed
	}
	return data
}

func insert(t *testing.T, img *image.Image, name string, data []byte) {
	require.NoError(t, Insert(img, writeSource(t, name, data)))
}

func retrieve(t *testing.T, img *image.Image, name string) []byte {
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Retrieve(img, name, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return data
}

// snapshot captures everything an operation could mutate.
type snapshot struct {
	Directory []DirEntry
	Inodes    []Inode
	Blocks    []byte
	Inos      []byte
	Volume    []byte
	DeleteSeq uint32
	FreeBytes Byte
}

func takeSnapshot(img *image.Image) snapshot {
	inodes := make([]Inode, len(img.Inodes))
	for i := range img.Inodes {
		inodes[i] = img.Inodes[i].Clone()
	}
	return snapshot{
		Directory: append([]DirEntry(nil), img.Directory...),
		Inodes:    inodes,
		Blocks:    append([]byte(nil), img.Blocks.Bytes()...),
		Inos:      append([]byte(nil), img.Inos.Bytes()...),
		Volume:    append([]byte(nil), img.Volume.Bytes()...),
		DeleteSeq: img.DeleteSeq,
		FreeBytes: img.FreeBytes(),
	}
}
