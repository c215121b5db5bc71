package file

import (
	"fmt"
	"io"

	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

type FileInfo struct {
	Name      string
	Size      Byte
	Created   Timestamp
	Attribute Attribute
}

type ListOptions struct {
	// ShowHidden includes files with the hidden attribute.
	ShowHidden bool

	// ShowAttributes includes every file and prints its attribute bits.
	ShowAttributes bool
}

// List returns the in-use files in directory order.
func List(img *image.Image, opts ListOptions) ([]FileInfo, error) {
	if err := img.RequireOpen(); err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	var files []FileInfo
	for i := range img.Directory {
		entry := &img.Directory[i]
		if !entry.InUse {
			continue
		}
		inode, err := img.Inode(entry.Ino)
		if err != nil {
			return nil, fmt.Errorf("listing files: %w", err)
		}
		if inode.Attribute.Hidden() && !opts.ShowHidden && !opts.ShowAttributes {
			continue
		}
		files = append(files, FileInfo{
			Name:      entry.Name,
			Size:      inode.Size,
			Created:   inode.Created,
			Attribute: inode.Attribute,
		})
	}
	return files, nil
}

// WriteListing prints one `name size hh:mm:ss` line per file.
func WriteListing(w io.Writer, files []FileInfo, opts ListOptions) error {
	if len(files) < 1 {
		_, err := fmt.Fprintln(w, "No file found")
		return err
	}
	for _, f := range files {
		var err error
		if opts.ShowAttributes {
			_, err = fmt.Fprintf(
				w,
				"%s %d %s %s\n",
				f.Name,
				f.Size,
				f.Created,
				f.Attribute,
			)
		} else {
			_, err = fmt.Fprintf(w, "%s %d %s\n", f.Name, f.Size, f.Created)
		}
		if err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
