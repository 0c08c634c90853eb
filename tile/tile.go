/*
Package tile implements the 8 by 8 pixel tiles that an Out of the World frame
dump is built from.

Pixels arrive as a flat stream of packed colors. Each tile consumes 64 of them
column by column and the pixels within the tile are then shuffled by a fixed
sequence of permutations to restore the original arrangement. The same
sequence run in reverse scrambles a tile back into dump order.
*/
package tile

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	// Width is the width of a tile in pixels
	Width = 8
	// Height is the height of a tile in pixels
	Height = Width
	// Pixels is the number of pixels in a tile
	Pixels = Width * Height
)

var (
	// ErrDimensions is returned when the image is not an exact grid of
	// whole tiles
	ErrDimensions = errors.New("tile: dimensions are not a multiple of the tile size")
	// ErrNotEnough is returned when there are too few colors to fill every
	// tile
	ErrNotEnough = errors.New("tile: not enough image data")
)

// Color is a 24-bit RGB value packed as 0x00RRGGBB. It implements the
// color.Color interface.
type Color uint32

// Pack returns the Color for the given components
func Pack(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Components returns the red, green and blue components of c
func (c Color) Components() (uint8, uint8, uint8) {
	return uint8(c >> 16 & 0xff), uint8(c >> 8 & 0xff), uint8(c & 0xff)
}

// NRGBA returns c as an opaque color.NRGBA
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Components()
	return color.NRGBA{r, g, b, 0xff}
}

// RGBA implements the color.Color interface
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return c.NRGBA().RGBA()
}

// Model converts any color.Color to a Color, discarding alpha
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B)
})

// Tile is a single 8 by 8 block of pixels
type Tile struct {
	// X and Y are the pixel offset of the upper-left corner of the tile
	X, Y int
	// Pixels is indexed by column then row
	Pixels [Width][Height]Color
}

// At returns the color at column x, row y within the tile
func (t *Tile) At(x, y int) Color {
	return t.Pixels[x][y]
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width%Width != 0 || height%Height != 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	return nil
}

// Split consumes colors into a grid of tiles covering width by height
// pixels. Tiles are returned left to right, top to bottom and each tile is
// filled column by column. Any colors beyond the last tile are ignored. The
// tiles are returned as they appear in the stream, call Unscramble on each
// to restore the pixel order.
func Split(colors []Color, width, height int) ([]Tile, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	tileX, tileY := width/Width, height/Height
	if len(colors)/Pixels < tileX*tileY {
		return nil, ErrNotEnough
	}

	tiles := make([]Tile, 0, tileX*tileY)

	i := 0
	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			t := Tile{
				X: tx * Width,
				Y: ty * Height,
			}
			for x := 0; x < Width; x++ {
				for y := 0; y < Height; y++ {
					t.Pixels[x][y] = colors[i]
					i++
				}
			}
			tiles = append(tiles, t)
		}
	}

	return tiles, nil
}

// Join is the inverse of Split, it flattens the tiles back into a stream of
// colors in the order Split would consume them.
func Join(tiles []Tile) []Color {
	colors := make([]Color, 0, len(tiles)*Pixels)
	for _, t := range tiles {
		for x := 0; x < Width; x++ {
			colors = append(colors, t.Pixels[x][:]...)
		}
	}
	return colors
}
