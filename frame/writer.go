package frame

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/bodgit/ootw/metadata"
	"github.com/bodgit/ootw/tile"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m image.Image, f metadata.Footer) error {
	// Undo the mirroring, the flip is its own inverse
	flipped := mirror(m)

	tiles := make([]tile.Tile, 0, int(f.Width/tile.Width)*int(f.Height/tile.Height))
	for ty := 0; ty < int(f.Height); ty += tile.Height {
		for tx := 0; tx < int(f.Width); tx += tile.Width {
			t := tile.Tile{X: tx, Y: ty}
			for x := 0; x < tile.Width; x++ {
				for y := 0; y < tile.Height; y++ {
					c := flipped.NRGBAAt(tx+x, ty+y)
					t.Pixels[x][y] = tile.Pack(c.R, c.G, c.B)
				}
			}
			t.Scramble()
			tiles = append(tiles, t)
		}
	}

	// The first color in the stream is the last pixel in the file
	colors := tile.Join(tiles)
	b := make([]byte, 0, len(colors)*pixelBytes)
	for i := len(colors) - 1; i >= 0; i-- {
		red, green, blue := colors[i].Components()
		b = append(b, blue, green, red)
	}

	if _, err := e.w.Write(b); err != nil {
		return err
	}

	footer, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = e.w.Write(footer)
	return err
}

// Encode writes the Image m to w as a frame dump. The bounds of m must be a
// multiple of the tile size and logical is the size of the visible area
// which must fit within m.
func Encode(w io.Writer, m image.Image, logical image.Point) error {
	b := m.Bounds()
	if b.Dx() > math.MaxUint16 || b.Dy() > math.MaxUint16 || logical.X < 0 || logical.Y < 0 || logical.X > math.MaxUint16 || logical.Y > math.MaxUint16 {
		return fmt.Errorf("%w: image is too large", ErrInvalidDimensions)
	}

	f := metadata.Footer{
		Width:         uint16(b.Dx()),
		Height:        uint16(b.Dy()),
		LogicalWidth:  uint16(logical.X),
		LogicalHeight: uint16(logical.Y),
	}
	if err := checkFooter(f); err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(m, f)
}
