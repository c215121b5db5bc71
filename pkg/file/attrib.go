package file

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/weberc2/mfs/pkg/image"

	. "github.com/weberc2/mfs/pkg/types"
)

// ParseAttributeFlag maps an attrib flag onto the attribute it produces.
// Setting a bit replaces the whole mask and clearing either bit clears both;
// the two bits are never combined.
func ParseAttributeFlag(flag string) (Attribute, error) {
	switch flag {
	case "+h":
		return AttributeHidden, nil
	case "+r":
		return AttributeReadOnly, nil
	case "-h", "-r":
		return AttributeNone, nil
	}
	return AttributeNone, fmt.Errorf(
		"parsing attribute flag `%s`: %w",
		flag,
		InvalidAttributeErr,
	)
}

func Attrib(img *image.Image, flag, name string) error {
	if err := img.RequireOpen(); err != nil {
		return fmt.Errorf("setting attributes of `%s`: %w", name, err)
	}
	attr, err := ParseAttributeFlag(flag)
	if err != nil {
		return fmt.Errorf("setting attributes of `%s`: %w", name, err)
	}
	_, inode, err := lookup(img, name)
	if err != nil {
		return fmt.Errorf("setting attributes: %w", err)
	}
	inode.Attribute = attr
	log.WithField("file", name).Debugf("set attributes `%s`", attr)
	return nil
}
