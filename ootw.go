/*
Package ootw converts the raw frame dumps captured from Out of the World into
PNG images.

For each dump two images are written alongside it; the full decoded image and
the visible, or logical, region of it.
*/
package ootw

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/ootw/frame"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	fallbackStem  = "output"
	fullSuffix    = "-full.png"
	logicalSuffix = "-logical.png"
	maxColors     = 256
)

// Converter converts frame dumps
type Converter struct {
	db     *FrameDB
	colors int
	logger *log.Logger
}

// New returns a Converter. If db is not empty every converted frame is
// recorded in the catalogue at that path. If colors is non-zero the images
// are reduced to a palette of at most that many colors.
func New(db string, colors int, logger *log.Logger) (*Converter, error) {
	if colors < 0 || colors > maxColors {
		return nil, fmt.Errorf("colors must be between 0 and %d", maxColors)
	}

	c := &Converter{
		colors: colors,
		logger: logger,
	}

	if db != "" {
		var err error
		if c.db, err = NewFrameDB(db); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Close releases the catalogue, if any
func (c *Converter) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Stem returns the file name of path without its extension, or "output"
// if there isn't one
func Stem(path string) string {
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return fallbackStem
	}
	// Like a dotfile, a name that is only an extension is kept whole
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return fallbackStem
	}
	return base
}

// OutputPaths returns the paths of the full and logical images written for
// the dump at path
func OutputPaths(path string) (string, string) {
	dir, stem := filepath.Dir(path), Stem(path)
	return filepath.Join(dir, stem+fullSuffix), filepath.Join(dir, stem+logicalSuffix)
}

func (c *Converter) quantize(m image.Image) image.Image {
	if c.colors == 0 {
		return m
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, c.colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

func (c *Converter) encode(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := png.Encode(b, c.quantize(m)); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeFile(file string, b []byte) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Convert decodes the frame dump in file and writes the full and logical
// images next to it
func (c *Converter) Convert(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	fr, err := frame.Decode(io.TeeReader(f, h))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	c.logger.Printf("Decoded \"%s\", %dx%d with logical area %dx%d, SHA-1 \"%s\"\n", file, fr.Footer.Width, fr.Footer.Height, fr.Footer.LogicalWidth, fr.Footer.LogicalHeight, sha)

	full, err := c.encode(fr.Full)
	if err != nil {
		return err
	}

	logical, err := c.encode(fr.Logical)
	if err != nil {
		return err
	}

	fullPath, logicalPath := OutputPaths(file)

	for _, o := range []struct {
		path string
		b    []byte
	}{
		{fullPath, full},
		{logicalPath, logical},
	} {
		if err := writeFile(o.path, o.b); err != nil {
			return err
		}
		c.logger.Printf("Wrote \"%s\"\n", o.path)
	}

	if c.db == nil {
		return nil
	}

	id, added, err := c.db.AddFrame(sha, fr.Footer, full, logical)
	if err != nil {
		return err
	}
	if added {
		c.logger.Printf("Catalogued \"%s\" as frame %d\n", file, id)
	} else {
		c.logger.Printf("\"%s\" already catalogued as frame %d\n", file, id)
	}

	return nil
}
