package file

import (
	"fmt"
	"strings"

	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// lookup finds the first in-use directory entry named `name`.
func lookup(img *image.Image, name string) (*DirEntry, *Inode, error) {
	for i := range img.Directory {
		entry := &img.Directory[i]
		if entry.InUse && entry.Name == name {
			inode, err := img.Inode(entry.Ino)
			if err != nil {
				return nil, nil, fmt.Errorf("looking up `%s`: %w", name, err)
			}
			return entry, inode, nil
		}
	}
	return nil, nil, fmt.Errorf("looking up `%s`: %w", name, FileNotFoundErr)
}

// ValidateName checks that `name` can be stored in a directory entry.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("validating name `%s`: %w", name, InvalidNameErr)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf(
			"validating name `%s`: longer than `%d` bytes: %w",
			name,
			MaxNameLen,
			NameTooLongErr,
		)
	}
	return nil
}

// freeSlot picks the directory entry a new file should occupy. Entries that
// never held a file are preferred over those holding a deleted one, and
// among deleted ones the least recently deleted goes first.
func freeSlot(img *image.Image) (int, bool) {
	slot := -1
	for i := range img.Directory {
		entry := &img.Directory[i]
		if entry.InUse {
			continue
		}
		if !entry.Deleted() {
			return i, true
		}
		if slot < 0 || entry.DeletedSeq < img.Directory[slot].DeletedSeq {
			slot = i
		}
	}
	return slot, slot >= 0
}

// forget makes the deleted file held by inode `ino` unrecoverable. It is
// called when the inode or any of its blocks are handed to a new file.
func forget(img *image.Image, ino Ino) {
	for i := range img.Directory {
		entry := &img.Directory[i]
		if entry.Deleted() && entry.Ino == ino {
			*entry = DirEntry{}
		}
	}
	if inode, err := img.Inode(ino); err == nil && !inode.InUse {
		inode.Reset()
	}
}

// forgetOverwritten forgets every deleted file that references any of
// `blocks`.
func forgetOverwritten(img *image.Image, blocks []Block) {
	reused := make(map[Block]struct{}, len(blocks))
	for _, b := range blocks {
		reused[b] = struct{}{}
	}
	for i := range img.Inodes {
		inode := &img.Inodes[i]
		if inode.InUse {
			continue
		}
		for _, b := range inode.Blocks {
			if _, found := reused[b]; found {
				forget(img, inode.Ino)
				break
			}
		}
	}
}
