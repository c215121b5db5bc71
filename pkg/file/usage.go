package file

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// FreeBytes is the space available to new files.
func FreeBytes(img *image.Image) (Byte, error) {
	if err := img.RequireOpen(); err != nil {
		return 0, fmt.Errorf("measuring free space: %w", err)
	}
	return img.FreeBytes(), nil
}

type Info struct {
	ID         uuid.UUID
	Label      string
	Path       string
	Geometry   Geometry
	FreeBytes  Byte
	UsedInodes Ino
	Files      int
}

func Stat(img *image.Image) (Info, error) {
	if err := img.RequireOpen(); err != nil {
		return Info{}, fmt.Errorf("describing image: %w", err)
	}
	var files int
	for i := range img.Directory {
		if img.Directory[i].InUse {
			files++
		}
	}
	return Info{
		ID:         img.ID,
		Label:      img.Label,
		Path:       img.Path,
		Geometry:   img.Geometry,
		FreeBytes:  img.FreeBytes(),
		UsedInodes: img.Inos.UsedCount(),
		Files:      files,
	}, nil
}

func WriteInfo(w io.Writer, info *Info) error {
	g := &info.Geometry
	if _, err := fmt.Fprintf(
		w,
		"id:               %s\n"+
			"label:            %s\n"+
			"path:             %s\n"+
			"block size:       %d\n"+
			"blocks:           %d\n"+
			"first data block: %d\n"+
			"inodes:           %d used of %d\n"+
			"blocks per file:  %d\n"+
			"max file size:    %d\n"+
			"files:            %d\n"+
			"free:             %d bytes\n",
		info.ID,
		info.Label,
		info.Path,
		g.BlockSize,
		g.BlockCount,
		g.FirstDataBlock,
		info.UsedInodes,
		g.InodeCount,
		g.BlocksPerFile,
		g.MaxFileSize,
		info.Files,
		info.FreeBytes,
	); err != nil {
		return fmt.Errorf("writing image info: %w", err)
	}
	return nil
}
