package image

import (
	"github.com/weberc2/mfs/pkg/math"

	. "github.com/weberc2/mfs/pkg/types"
)

// checkConsistency verifies the invariants that tie the directory, the inode
// table and the bitmaps together.
func (img *Image) checkConsistency() error {
	g := &img.Geometry
	owners := make(map[Block]Ino)
	for i := range img.Inodes {
		inode := &img.Inodes[i]
		if !inode.InUse {
			continue
		}
		if img.Inos.IsFree(inode.Ino) {
			return corrupt("in-use inode `%d` marked free", inode.Ino)
		}
		wanted := Block(math.DivRoundUp(inode.Size, g.BlockSize))
		if found := Block(len(inode.Blocks)); found != wanted {
			return corrupt(
				"inode `%d` of size `%d` has `%d` blocks; wanted `%d`",
				inode.Ino,
				inode.Size,
				found,
				wanted,
			)
		}
		for _, b := range inode.Blocks {
			if !g.IsDataBlock(b) {
				return corrupt(
					"inode `%d` references non-data block `%d`",
					inode.Ino,
					b,
				)
			}
			if img.Blocks.IsFree(b) {
				return corrupt(
					"inode `%d` references free block `%d`",
					inode.Ino,
					b,
				)
			}
			if owner, found := owners[b]; found {
				return corrupt(
					"block `%d` shared by inodes `%d` and `%d`",
					b,
					owner,
					inode.Ino,
				)
			}
			owners[b] = inode.Ino
		}
	}

	names := make(map[string]struct{})
	inos := make(map[Ino]struct{})
	for i := range img.Directory {
		entry := &img.Directory[i]
		if !entry.InUse {
			continue
		}
		inode, err := img.Inode(entry.Ino)
		if err != nil || !inode.InUse {
			return corrupt(
				"directory entry `%s` references free inode `%d`",
				entry.Name,
				entry.Ino,
			)
		}
		if _, found := names[entry.Name]; found {
			return corrupt("duplicate file name `%s`", entry.Name)
		}
		if _, found := inos[entry.Ino]; found {
			return corrupt("inode `%d` linked twice", entry.Ino)
		}
		names[entry.Name] = struct{}{}
		inos[entry.Ino] = struct{}{}
	}
	return nil
}
