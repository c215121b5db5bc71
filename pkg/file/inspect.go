package file

import (
	"fmt"
	"io"

	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// ReadRange returns `n` bytes of `name` starting at byte `start`.
func ReadRange(img *image.Image, name string, start, n Byte) ([]byte, error) {
	if err := img.RequireOpen(); err != nil {
		return nil, fmt.Errorf("reading `%s`: %w", name, err)
	}
	_, inode, err := lookup(img, name)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if start < 0 || n < 0 || start > inode.Size || n > inode.Size-start {
		return nil, fmt.Errorf(
			"reading `%d` bytes at `%d` from `%s` (size `%d`): %w",
			n,
			start,
			name,
			inode.Size,
			RangeOutOfBoundsErr,
		)
	}
	data := make([]byte, n)
	if err := readContent(img, inode, start, data); err != nil {
		return nil, fmt.Errorf("reading `%s`: %w", name, err)
	}
	return data, nil
}

const hexPerLine = 16

// WriteHex prints `data` as two-digit hex bytes, sixteen to a line.
func WriteHex(w io.Writer, data []byte) error {
	for i, b := range data {
		sep := " "
		if (i+1)%hexPerLine == 0 || i == len(data)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%02x%s", b, sep); err != nil {
			return fmt.Errorf("writing hex: %w", err)
		}
	}
	return nil
}
