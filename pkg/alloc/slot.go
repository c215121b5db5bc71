package alloc

import (
	"fmt"

	. "github.com/weberc2/mfs/pkg/types"
)

// NextBlockSlot returns the position in `inode.Blocks` that the next block
// of the file would occupy.
func NextBlockSlot(inode *Inode, blocksPerFile Block) (int, error) {
	if Block(len(inode.Blocks)) >= blocksPerFile {
		return 0, fmt.Errorf(
			"finding free block slot in inode `%d` (limit `%d`): %w",
			inode.Ino,
			blocksPerFile,
			PerFileBlockLimitExceededErr,
		)
	}
	return len(inode.Blocks), nil
}
