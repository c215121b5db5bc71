package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

func TestInsertRetrieveRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 255, 256, 257, 1000, 4096} {
		t.Run(fmt.Sprintf("%d bytes", size), func(t *testing.T) {
			img := newImage(t, testGeometry)
			data := pattern(size, byte(size))
			insert(t, img, "f", data)
			require.Equal(t, data, retrieve(t, img, "f"))
		})
	}
}

func TestFreeBytesAfterCreate(t *testing.T) {
	img := newImage(t, testGeometry)
	free, err := FreeBytes(img)
	require.NoError(t, err)
	require.Equal(t, Byte(248*256), free)
}

func TestInsertDeleteRestoresFreeBytes(t *testing.T) {
	img := newImage(t, testGeometry)
	before := img.FreeBytes()

	insert(t, img, "f", pattern(1000, 1))
	require.Equal(t, before-4*256, img.FreeBytes())

	require.NoError(t, Delete(img, "f"))
	require.Equal(t, before, img.FreeBytes())
	require.True(t, img.Inos.IsFree(InoFirst))
}

func TestInsertPadsFinalBlock(t *testing.T) {
	img := newImage(t, testGeometry)
	insert(t, img, "junk", bytes.Repeat([]byte{0xff}, 256))
	require.NoError(t, Delete(img, "junk"))

	// the freed block still holds 0xff; a short file reusing it must not
	// inherit that residue
	insert(t, img, "short", []byte("abc"))
	_, inode, err := lookup(img, "short")
	require.NoError(t, err)
	block := make([]byte, 256)
	require.NoError(t, img.BlockVolume(inode.Blocks[0]).ReadAt(0, block))
	require.Equal(t, append([]byte("abc"), make([]byte, 253)...), block)
}

func TestToggleCipherTwice(t *testing.T) {
	for _, key := range []byte{0x00, 0x01, 0x5a, 0xff} {
		img := newImage(t, testGeometry)
		data := pattern(700, 3)
		insert(t, img, "secret", data)

		require.NoError(t, ToggleCipher(img, "secret", key))
		ciphered := retrieve(t, img, "secret")
		require.Len(t, ciphered, len(data))
		if key != 0 {
			require.NotEqual(t, data, ciphered)
		}
		for i := range data {
			require.Equal(t, data[i]^key, ciphered[i])
		}

		require.NoError(t, ToggleCipher(img, "secret", key))
		require.Equal(t, data, retrieve(t, img, "secret"))
	}
}

func TestUndeleteRestoresContent(t *testing.T) {
	img := newImage(t, testGeometry)
	data := pattern(1500, 9)
	insert(t, img, "f", data)
	free := img.FreeBytes()

	require.NoError(t, Delete(img, "f"))
	_, err := ReadRange(img, "f", 0, 1)
	require.ErrorIs(t, err, FileNotFoundErr)

	require.NoError(t, Undelete(img, "f"))
	require.Equal(t, free, img.FreeBytes())
	require.Equal(t, data, retrieve(t, img, "f"))

	files, err := List(img, ListOptions{})
	require.NoError(t, err)
	require.Len(t, files, 1)

	require.ErrorIs(t, Undelete(img, "f"), FileExistsErr)
	require.ErrorIs(t, Undelete(img, "nope"), FileNotFoundErr)
}

func TestUndeleteMostRecent(t *testing.T) {
	img := newImage(t, testGeometry)
	insert(t, img, "keep", pattern(256, 0))
	insert(t, img, "f", []byte("first"))
	require.NoError(t, Delete(img, "keep"))
	require.NoError(t, Delete(img, "f"))

	// the second "f" lands on keep's block, not the first f's
	insert(t, img, "f", []byte("second"))
	require.NoError(t, Delete(img, "f"))

	require.NoError(t, Undelete(img, "f"))
	require.Equal(t, []byte("second"), retrieve(t, img, "f"))
}

func TestUndeleteAfterReuse(t *testing.T) {
	img := newImage(t, testGeometry)
	insert(t, img, "old", pattern(300, 1))
	require.NoError(t, Delete(img, "old"))

	// reuses old's blocks
	insert(t, img, "new", pattern(300, 2))
	require.ErrorIs(t, Undelete(img, "old"), FileNotFoundErr)

	require.NoError(t, Delete(img, "new"))
	require.ErrorIs(t, Undelete(img, "old"), FileNotFoundErr)
	require.NoError(t, Undelete(img, "new"))
	require.Equal(t, pattern(300, 2), retrieve(t, img, "new"))
}

func TestInsertRejectsWithoutMutation(t *testing.T) {
	type testCase struct {
		name   string
		setup  func(t *testing.T, img *image.Image) string
		wanted error
	}

	testCases := []testCase{{
		name: "missing source",
		setup: func(t *testing.T, img *image.Image) string {
			return filepath.Join(t.TempDir(), "missing")
		},
		wanted: FileNotFoundErr,
	}, {
		name: "directory source",
		setup: func(t *testing.T, img *image.Image) string {
			return t.TempDir()
		},
		wanted: FileNotFoundErr,
	}, {
		name: "too large",
		setup: func(t *testing.T, img *image.Image) string {
			return writeSource(t, "big", make([]byte, 4097))
		},
		wanted: FileTooLargeErr,
	}, {
		name: "name too long",
		setup: func(t *testing.T, img *image.Image) string {
			return writeSource(t, strings.Repeat("n", 64), []byte("x"))
		},
		wanted: NameTooLongErr,
	}, {
		name: "duplicate name",
		setup: func(t *testing.T, img *image.Image) string {
			insert(t, img, "dup", []byte("one"))
			return writeSource(t, "dup", []byte("two"))
		},
		wanted: FileExistsErr,
	}, {
		name: "directory full",
		setup: func(t *testing.T, img *image.Image) string {
			for i := 0; i < 8; i++ {
				insert(t, img, string(rune('a'+i)), []byte{byte(i)})
			}
			return writeSource(t, "z", []byte("z"))
		},
		wanted: DirectoryFullErr,
	}, {
		name: "inodes exhausted",
		setup: func(t *testing.T, img *image.Image) string {
			for i := 0; i < 8; i++ {
				_, err := img.Inos.Alloc()
				require.NoError(t, err)
			}
			return writeSource(t, "z", []byte("z"))
		},
		wanted: InodeExhaustedErr,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := newImage(t, testGeometry)
			source := tc.setup(t, img)
			before := takeSnapshot(img)
			require.ErrorIs(t, Insert(img, source), tc.wanted)
			require.Equal(t, before, takeSnapshot(img))
		})
	}
}

func TestInsufficientSpace(t *testing.T) {
	// 24 data blocks
	g := testGeometry
	g.BlockCount = 32
	img := newImage(t, g)

	first := pattern(4000, 5)
	insert(t, img, "first", first)
	require.Equal(t, Byte(8*256), img.FreeBytes())

	before := takeSnapshot(img)
	err := Insert(img, writeSource(t, "second", pattern(3000, 6)))
	require.ErrorIs(t, err, InsufficientSpaceErr)
	require.Equal(t, before, takeSnapshot(img))
	require.Equal(t, first, retrieve(t, img, "first"))
}

func TestInsertRollsBackAtBlockLimit(t *testing.T) {
	// files may be 4096 bytes but only 4 blocks long
	g := testGeometry
	g.BlocksPerFile = 4
	img := newImage(t, g)

	victim := pattern(1000, 11)
	insert(t, img, "victim", victim)
	require.NoError(t, Delete(img, "victim"))

	before := takeSnapshot(img)
	err := Insert(img, writeSource(t, "big", pattern(2000, 12)))
	require.ErrorIs(t, err, PerFileBlockLimitExceededErr)
	require.Equal(t, before, takeSnapshot(img))

	// the failed insert reused and then restored the deleted file's blocks
	require.NoError(t, Undelete(img, "victim"))
	require.Equal(t, victim, retrieve(t, img, "victim"))
}

func TestHelloWorld(t *testing.T) {
	img := newImage(t, DefaultGeometry)
	dir := t.TempDir()
	source := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(source, []byte("hello world!"), 0644))
	require.NoError(t, Insert(img, source))

	files, err := List(img, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []FileInfo{{
		Name:    "hello.txt",
		Size:    12,
		Created: Timestamp{Hour: 13, Minute: 37, Second: 42},
	}}, files)

	out := filepath.Join(dir, "out.txt")
	require.NoError(t, Retrieve(img, "hello.txt", out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world!"), data)
}

func TestSurvivesSaveAndOpen(t *testing.T) {
	img := newImage(t, testGeometry)
	data := pattern(3000, 4)
	insert(t, img, "f", data)
	insert(t, img, "g", []byte("gone"))
	require.NoError(t, Delete(img, "g"))
	require.NoError(t, Attrib(img, "+r", "f"))
	path := img.Path

	require.NoError(t, img.Save())
	require.NoError(t, img.Close())
	require.NoError(t, img.Open(path))

	require.Equal(t, data, retrieve(t, img, "f"))
	require.ErrorIs(t, Delete(img, "f"), ReadOnlyViolationErr)
	require.NoError(t, Undelete(img, "g"))
	require.Equal(t, []byte("gone"), retrieve(t, img, "g"))
}

func TestDeleteReadOnly(t *testing.T) {
	img := newImage(t, testGeometry)
	insert(t, img, "f", []byte("data"))
	require.NoError(t, Attrib(img, "+r", "f"))

	before := takeSnapshot(img)
	require.ErrorIs(t, Delete(img, "f"), ReadOnlyViolationErr)
	require.Equal(t, before, takeSnapshot(img))

	require.NoError(t, Attrib(img, "-r", "f"))
	require.NoError(t, Delete(img, "f"))
	require.ErrorIs(t, Delete(img, "f"), FileNotFoundErr)
}

func TestNoImageOpen(t *testing.T) {
	img := image.New(nil)
	source := writeSource(t, "f", []byte("x"))

	_, err := List(img, ListOptions{})
	require.ErrorIs(t, err, NoImageOpenErr)
	_, err = FreeBytes(img)
	require.ErrorIs(t, err, NoImageOpenErr)
	_, err = ReadRange(img, "f", 0, 1)
	require.ErrorIs(t, err, NoImageOpenErr)
	_, err = Stat(img)
	require.ErrorIs(t, err, NoImageOpenErr)
	require.ErrorIs(t, Insert(img, source), NoImageOpenErr)
	require.ErrorIs(t, Delete(img, "f"), NoImageOpenErr)
	require.ErrorIs(t, Undelete(img, "f"), NoImageOpenErr)
	require.ErrorIs(t, Attrib(img, "+h", "f"), NoImageOpenErr)
	require.ErrorIs(t, ToggleCipher(img, "f", 1), NoImageOpenErr)
	require.ErrorIs(t, Retrieve(img, "f", ""), NoImageOpenErr)
}

func TestMissingFile(t *testing.T) {
	img := newImage(t, testGeometry)
	_, err := ReadRange(img, "f", 0, 0)
	require.ErrorIs(t, err, FileNotFoundErr)
	require.ErrorIs(t, Delete(img, "f"), FileNotFoundErr)
	require.ErrorIs(t, Attrib(img, "+h", "f"), FileNotFoundErr)
	require.ErrorIs(t, ToggleCipher(img, "f", 1), FileNotFoundErr)
	require.ErrorIs(t, Retrieve(img, "f", filepath.Join(t.TempDir(), "o")), FileNotFoundErr)
}
