/*
Package frame implements a decoder and encoder for the raw frame dumps
written by Out of the World.

A dump is a stream of 24-bit RGB pixels followed by a 12 byte footer holding
the dimensions. The pixel stream is stored backwards, both the order of the
pixels and the order of the bytes within each pixel, so reading it from the
end yields red, green then blue. The pixels are grouped into 8 by 8 tiles
which are scrambled internally, and the assembled image is mirrored
left to right.

Only the upper-left part of the image described by the logical dimensions in
the footer is normally visible.
*/
package frame

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/ootw/metadata"
	"github.com/bodgit/ootw/tile"
	"github.com/disintegration/gift"
)

const pixelBytes = 3

var (
	// ErrMalformedInput is returned when the dump is truncated or the pixel
	// data is not made of whole pixels
	ErrMalformedInput = errors.New("frame: malformed input")
	// ErrInvalidDimensions is returned when the dimensions in the footer
	// cannot describe a valid image
	ErrInvalidDimensions = errors.New("frame: invalid dimensions")
)

// Frame is a decoded frame dump
type Frame struct {
	Footer metadata.Footer
	// Full is the whole decoded image
	Full *image.NRGBA
	// Logical is the visible region of Full
	Logical *image.NRGBA
}

func checkFooter(f metadata.Footer) error {
	switch {
	case f.Width == 0 || f.Height == 0 || f.Width%tile.Width != 0 || f.Height%tile.Height != 0:
		return fmt.Errorf("%w: %dx%d is not a multiple of %dx%d", ErrInvalidDimensions, f.Width, f.Height, tile.Width, tile.Height)
	case f.LogicalWidth == 0 || f.LogicalHeight == 0:
		return fmt.Errorf("%w: empty logical area", ErrInvalidDimensions)
	case f.LogicalWidth > f.Width || f.LogicalHeight > f.Height:
		return fmt.Errorf("%w: logical area %dx%d exceeds %dx%d", ErrInvalidDimensions, f.LogicalWidth, f.LogicalHeight, f.Width, f.Height)
	}
	return nil
}

func newFilter(filters ...gift.Filter) *gift.GIFT {
	g := gift.New(filters...)
	g.SetParallelization(false)
	return g
}

// Place every tile at its offset and mirror the result
func assemble(tiles []tile.Tile, width, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, t := range tiles {
		for x := 0; x < tile.Width; x++ {
			for y := 0; y < tile.Height; y++ {
				m.SetNRGBA(t.X+x, t.Y+y, t.Pixels[x][y].NRGBA())
			}
		}
	}

	return mirror(m)
}

func mirror(m image.Image) *image.NRGBA {
	g := newFilter(gift.FlipHorizontal())
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

func crop(m image.Image, r image.Rectangle) *image.NRGBA {
	g := newFilter(gift.Crop(r))
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}
