package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/alloc"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// Insert copies the host file at `sourcePath` into the image under its base
// name. Either the whole file is stored or the image is left exactly as it
// was.
func Insert(img *image.Image, sourcePath string) error {
	if err := img.RequireOpen(); err != nil {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, err)
	}

	fi, err := os.Stat(sourcePath)
	if err != nil || !fi.Mode().IsRegular() {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, FileNotFoundErr)
	}

	name := filepath.Base(sourcePath)
	if err := ValidateName(name); err != nil {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, err)
	}
	if _, _, err := lookup(img, name); err == nil {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, FileExistsErr)
	}

	size := Byte(fi.Size())
	if size > img.Geometry.MaxFileSize {
		return fmt.Errorf(
			"inserting `%s`: size `%d` exceeds maximum `%d`: %w",
			sourcePath,
			size,
			img.Geometry.MaxFileSize,
			FileTooLargeErr,
		)
	}
	if free := img.FreeBytes(); size > free {
		return fmt.Errorf(
			"inserting `%s`: size `%d` exceeds free space `%d`: %w",
			sourcePath,
			size,
			free,
			InsufficientSpaceErr,
		)
	}
	slot, ok := freeSlot(img)
	if !ok {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, DirectoryFullErr)
	}
	if !img.Inos.HasFree() {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, InodeExhaustedErr)
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf(
			"inserting `%s`: %v: %w",
			sourcePath,
			err,
			FileNotFoundErr,
		)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("closing `%s`: %v", sourcePath, err)
		}
	}()

	ino, err := img.Inos.Alloc()
	if err != nil {
		return fmt.Errorf("inserting `%s`: %w", sourcePath, err)
	}

	in := ingest{img: img, inode: Inode{Ino: ino}}
	if err := in.copy(f, size); err != nil {
		in.rollback()
		return fmt.Errorf("inserting `%s`: %w", sourcePath, err)
	}

	// the new file now owns the inode and blocks; any deleted file that
	// still referenced them can no longer be recovered
	forget(img, ino)
	forgetOverwritten(img, in.inode.Blocks)

	inode := &img.Inodes[ino.Index()]
	*inode = in.inode
	inode.InUse = true
	inode.Size = size
	inode.Attribute = AttributeNone
	inode.Created = NewTimestamp(img.Now())
	img.Directory[slot] = DirEntry{Name: name, InUse: true, Ino: ino}

	log.WithField("file", name).Debugf(
		"inserted `%d` bytes in `%d` blocks at inode `%d`",
		size,
		len(inode.Blocks),
		ino,
	)
	return nil
}

// ingest tracks the resources claimed while copying a file in so that they
// can be released if the copy fails.
type ingest struct {
	img   *image.Image
	inode Inode

	// prior holds the bytes each claimed block held before it was
	// overwritten, parallel to `inode.Blocks`.
	prior [][]byte
}

func (in *ingest) copy(r io.Reader, size Byte) error {
	blockSize := in.img.Geometry.BlockSize
	chunk := make([]byte, blockSize)
	var total Byte
	for {
		// zero the chunk so a short final block is padded deterministically
		for i := range chunk {
			chunk[i] = 0
		}
		n, err := io.ReadFull(r, chunk)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("reading source: %w", err)
		}

		total += Byte(n)
		if total > size {
			return fmt.Errorf(
				"source grew past `%d` bytes while reading: %w",
				size,
				LogicErr,
			)
		}
		if err := in.append(chunk); err != nil {
			return err
		}
		if n < len(chunk) {
			break
		}
	}

	if total != size {
		return fmt.Errorf(
			"source shrank from `%d` to `%d` bytes while reading: %w",
			size,
			total,
			LogicErr,
		)
	}
	return nil
}

// append stores `chunk` in a newly allocated block at the end of the file.
func (in *ingest) append(chunk []byte) error {
	if _, err := alloc.NextBlockSlot(
		&in.inode,
		in.img.Geometry.BlocksPerFile,
	); err != nil {
		return err
	}
	b, err := in.img.Blocks.Alloc()
	if err != nil {
		return err
	}

	volume := in.img.BlockVolume(b)
	prior := make([]byte, len(chunk))
	if err := volume.ReadAt(0, prior); err != nil {
		in.release(b)
		return fmt.Errorf("saving block `%d`: %w", b, err)
	}
	if err := volume.WriteAt(0, chunk); err != nil {
		in.release(b)
		return fmt.Errorf("writing block `%d`: %w", b, err)
	}
	in.inode.Blocks = append(in.inode.Blocks, b)
	in.prior = append(in.prior, prior)
	return nil
}

// release frees a block that was allocated but never recorded in the inode.
func (in *ingest) release(b Block) {
	if err := in.img.Blocks.Free(b); err != nil {
		log.Errorf("releasing block `%d`: %v", b, err)
	}
}

// rollback releases every block and the inode claimed by the ingest and
// restores the blocks' previous content.
func (in *ingest) rollback() {
	for i := len(in.inode.Blocks) - 1; i >= 0; i-- {
		b := in.inode.Blocks[i]
		if err := in.img.BlockVolume(b).WriteAt(0, in.prior[i]); err != nil {
			log.Errorf("rolling back block `%d`: %v", b, err)
		}
		if err := in.img.Blocks.Free(b); err != nil {
			log.Errorf("rolling back block `%d`: %v", b, err)
		}
	}
	if err := in.img.Inos.Free(in.inode.Ino); err != nil {
		log.Errorf("rolling back inode `%d`: %v", in.inode.Ino, err)
	}
	in.inode.Blocks = nil
	in.prior = nil
}
