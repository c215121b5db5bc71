package file

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// Delete soft-deletes `name`: its blocks and inode are released but their
// contents and the directory entry are kept so that `Undelete` can bring the
// file back until they are reused.
func Delete(img *image.Image, name string) error {
	if err := img.RequireOpen(); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}
	entry, inode, err := lookup(img, name)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	if inode.Attribute.ReadOnly() {
		return fmt.Errorf("deleting `%s`: %w", name, ReadOnlyViolationErr)
	}

	// check everything before releasing anything so that an inconsistency
	// leaves the image untouched
	if img.Inos.IsFree(inode.Ino) {
		return fmt.Errorf(
			"deleting `%s`: inode `%d` already free: %w",
			name,
			inode.Ino,
			LogicErr,
		)
	}
	for _, b := range inode.Blocks {
		if img.Blocks.IsFree(b) {
			return fmt.Errorf(
				"deleting `%s`: block `%d` already free: %w",
				name,
				b,
				LogicErr,
			)
		}
	}

	for _, b := range inode.Blocks {
		if err := img.Blocks.Free(b); err != nil {
			return fmt.Errorf("deleting `%s`: %w", name, err)
		}
	}
	if err := img.Inos.Free(inode.Ino); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}

	inode.InUse = false
	entry.InUse = false
	img.DeleteSeq++
	entry.DeletedSeq = img.DeleteSeq

	log.WithField("file", name).Debugf(
		"deleted inode `%d` releasing `%d` blocks",
		inode.Ino,
		len(inode.Blocks),
	)
	return nil
}

// Undelete restores the most recently deleted file named `name`. Files whose
// inode or blocks have since been handed to another file are no longer
// recoverable.
func Undelete(img *image.Image, name string) error {
	if err := img.RequireOpen(); err != nil {
		return fmt.Errorf("undeleting `%s`: %w", name, err)
	}
	if _, _, err := lookup(img, name); err == nil {
		return fmt.Errorf("undeleting `%s`: %w", name, FileExistsErr)
	}

	var entry *DirEntry
	var inode *Inode
	for i := range img.Directory {
		candidate := &img.Directory[i]
		if candidate.Name != name || !candidate.Deleted() {
			continue
		}
		candidateInode, err := img.Inode(candidate.Ino)
		if err != nil || candidateInode.InUse {
			continue
		}
		if entry == nil || candidate.DeletedSeq > entry.DeletedSeq {
			entry, inode = candidate, candidateInode
		}
	}
	if entry == nil {
		return fmt.Errorf("undeleting `%s`: %w", name, FileNotFoundErr)
	}

	if !img.Inos.IsFree(inode.Ino) {
		return fmt.Errorf(
			"undeleting `%s`: inode `%d` in use: %w",
			name,
			inode.Ino,
			LogicErr,
		)
	}
	for _, b := range inode.Blocks {
		if !img.Blocks.IsFree(b) {
			return fmt.Errorf(
				"undeleting `%s`: block `%d` in use: %w",
				name,
				b,
				LogicErr,
			)
		}
	}

	for i, b := range inode.Blocks {
		if err := img.Blocks.Reserve(b); err != nil {
			freeBlocks(img, inode.Blocks[:i])
			return fmt.Errorf("undeleting `%s`: %w", name, err)
		}
	}
	if err := img.Inos.Reserve(inode.Ino); err != nil {
		freeBlocks(img, inode.Blocks)
		return fmt.Errorf("undeleting `%s`: %w", name, err)
	}

	inode.InUse = true
	entry.InUse = true
	entry.DeletedSeq = 0

	log.WithField("file", name).Debugf(
		"undeleted inode `%d` reclaiming `%d` blocks",
		inode.Ino,
		len(inode.Blocks),
	)
	return nil
}

// freeBlocks unwinds a partial undelete.
func freeBlocks(img *image.Image, blocks []Block) {
	for _, b := range blocks {
		if err := img.Blocks.Free(b); err != nil {
			log.Errorf("unwinding block `%d`: %v", b, err)
		}
	}
}
