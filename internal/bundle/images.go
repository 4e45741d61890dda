// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"errors"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"os"
	"path"

	"github.com/samber/oops"
)

// ImageSpec is the required size of an image pair: the low resolution
// variant is Width×Height and the @2x variant twice that.
type ImageSpec struct {
	Width  int
	Height int
	// Formats are the accepted extensions, in lookup order.
	Formats []string
}

var (
	anyImage = []string{".png", ".gif", ".jpg"}
	pngOnly  = []string{".png"}
)

// Required image sizes.
var (
	PluginIconSpec   = ImageSpec{Width: 256, Height: 256, Formats: anyImage}
	CategoryIconSpec = ImageSpec{Width: 28, Height: 28, Formats: pngOnly}
	ActionIconSpec   = ImageSpec{Width: 20, Height: 20, Formats: anyImage}
	KeyImageSpec     = ImageSpec{Width: 72, Height: 72, Formats: anyImage}
)

// imageChecker resolves extension-less image references under the
// compiled output tree. display turns a bundle-relative path into the
// source path shown in messages, since assets mirror the source layout.
type imageChecker struct {
	fsys    fs.FS
	display func(rel string) string
}

func newImageChecker(outDir, srcName string) *imageChecker {
	return &imageChecker{
		fsys:    os.DirFS(outDir),
		display: func(rel string) string { return path.Join(srcName, rel) },
	}
}

// exists reports whether rel is a regular file in the output tree.
func (c *imageChecker) exists(rel string) bool {
	info, err := fs.Stat(c.fsys, rel)
	return err == nil && !info.IsDir()
}

// check verifies that base exists in one accepted format, that its @2x
// twin exists in the same format, and that both have the exact sizes.
func (c *imageChecker) check(base string, spec ImageSpec) error {
	for _, ext := range spec.Formats {
		low := base + ext
		high := base + "@2x" + ext
		lowOK := c.exists(low)
		highOK := c.exists(high)
		if !lowOK && !highOK {
			continue
		}
		if !lowOK {
			return errMissingFile(c.display(low))
		}
		if !highOK {
			return errMissingFile(c.display(high))
		}
		if err := c.checkSize(low, spec.Width, spec.Height); err != nil {
			return err
		}
		return c.checkSize(high, spec.Width*2, spec.Height*2)
	}
	return errMissingFile(c.display(base + spec.Formats[0]))
}

func (c *imageChecker) checkSize(name string, width, height int) error {
	f, err := c.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errMissingFile(c.display(name))
		}
		return errFilesystem(c.display(name), err)
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return oops.Code(CodeInvalidImage).
			With("path", c.display(name)).
			Errorf("%s is not a readable image: %v", c.display(name), err)
	}
	if cfg.Width != width || cfg.Height != height {
		return oops.Code(CodeImageSize).
			With("path", c.display(name)).
			With("want", [2]int{width, height}).
			With("got", [2]int{cfg.Width, cfg.Height}).
			Errorf("expected %s to be %dx%d, got %dx%d",
				c.display(name), width, height, cfg.Width, cfg.Height)
	}
	return nil
}
