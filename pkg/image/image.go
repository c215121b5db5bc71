package image

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/alloc"
	"github.com/weberc2/mfs/pkg/io"
	"github.com/weberc2/mfs/pkg/objectstore"

	. "github.com/weberc2/mfs/pkg/types"
)

// Image is one filesystem instance: the block store plus the typed metadata
// records layered over it. Metadata is authoritative in its typed form and
// is only serialized into the block store by `Save`.
//
// An Image is not safe for concurrent use; callers serialize operations.
type Image struct {
	Geometry  Geometry
	Layout    Layout
	ID        uuid.UUID
	Label     string
	DeleteSeq uint32

	Volume    *io.Buffer
	Directory []DirEntry
	Inodes    []Inode
	Blocks    alloc.BlockAllocator
	Inos      alloc.InoAllocator

	// Path is where the image is saved to.
	Path string

	Router *objectstore.Router

	// Clock stamps inserted files. Defaults to `time.Now`.
	Clock func() time.Time

	open bool
}

type Params struct {
	Geometry Geometry
	Label    string
}

func New(router *objectstore.Router) *Image {
	if router == nil {
		router = &objectstore.Router{}
	}
	return &Image{Router: router, Clock: time.Now}
}

func (img *Image) IsOpen() bool { return img.open }

// RequireOpen returns `NoImageOpenErr` unless an image is open.
func (img *Image) RequireOpen() error {
	if !img.open {
		return NoImageOpenErr
	}
	return nil
}

// Create initializes a fresh, empty image associated with `path`. Nothing is
// written until `Save`.
func (img *Image) Create(path string, params *Params) error {
	if img.open {
		return fmt.Errorf("creating image `%s`: %w", path, ImageAlreadyOpenErr)
	}
	if err := ValidateGeometry(&params.Geometry); err != nil {
		return fmt.Errorf("creating image `%s`: %w", path, err)
	}

	label := NormalizeLabel(params.Label)
	if label == "" {
		label = NormalizeLabel(
			strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		)
	}
	if _, err := img.Router.Route(path, label); err != nil {
		return fmt.Errorf("creating image: %w", err)
	}

	g := params.Geometry
	img.reset(&g)
	img.ID = uuid.New()
	img.Label = label
	img.Volume = io.NewBuffer(make([]byte, g.ImageSize()))
	img.Path = path
	img.open = true

	log.WithField("id", img.ID).Infof(
		"created image `%s` (label `%s`, %d blocks of %d bytes)",
		path,
		label,
		g.BlockCount,
		g.BlockSize,
	)
	return nil
}

// reset installs empty metadata for geometry `g`.
func (img *Image) reset(g *Geometry) {
	img.Geometry = *g
	img.Layout = NewLayout(g)
	img.DeleteSeq = 0
	img.Directory = make([]DirEntry, g.InodeCount)
	img.Inodes = make([]Inode, g.InodeCount)
	for i := range img.Inodes {
		img.Inodes[i].Ino = InoFromIndex(i)
	}
	img.Blocks = alloc.NewBlockAllocator(g)
	img.Inos = alloc.NewInoAllocator(g.InodeCount)
}

// Close discards all in-memory state without saving.
func (img *Image) Close() error {
	if !img.open {
		return fmt.Errorf("closing image: %w", NoImageOpenErr)
	}
	path := img.Path
	*img = Image{Router: img.Router, Clock: img.Clock}
	log.Infof("closed image `%s`", path)
	return nil
}

// NormalizeLabel reduces `label` to a slug that fits the header.
func NormalizeLabel(label string) string {
	s := slug.Make(label)
	if len(s) > MaxLabelLen {
		s = strings.TrimRight(s[:MaxLabelLen], "-")
	}
	return s
}

// Inode returns the inode numbered `ino`.
func (img *Image) Inode(ino Ino) (*Inode, error) {
	if ino < InoFirst || ino.Index() >= len(img.Inodes) {
		return nil, fmt.Errorf("looking up inode `%d`: %w", ino, LogicErr)
	}
	return &img.Inodes[ino.Index()], nil
}

// BlockVolume is a window onto data block `b`.
func (img *Image) BlockVolume(b Block) *io.OffsetVolume {
	return io.NewOffsetVolume(
		img.Volume,
		img.Geometry.BlockOffset(b),
		img.Geometry.BlockSize,
	)
}

// FreeBytes is the space available for file content.
func (img *Image) FreeBytes() Byte {
	return Byte(img.Blocks.FreeCount()) * img.Geometry.BlockSize
}

// Now reads the image's clock.
func (img *Image) Now() time.Time {
	if img.Clock == nil {
		return time.Now()
	}
	return img.Clock()
}
