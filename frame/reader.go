package frame

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/bodgit/ootw/metadata"
	"github.com/bodgit/ootw/tile"
)

type decoder struct {
	footer metadata.Footer
	// Pixel data without the footer
	body   []byte
	colors []tile.Color
	frame  *Frame
}

func (d *decoder) readFooter(b []byte) error {
	f, err := metadata.Parse(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if err := checkFooter(f); err != nil {
		return err
	}
	d.footer = f
	d.body = b[:len(b)-metadata.Size]
	return nil
}

// Walk the body backwards one pixel at a time, each pixel is stored as
// blue, green, red
func (d *decoder) readPixels() error {
	if len(d.body) < pixelBytes || len(d.body)%pixelBytes != 0 {
		return fmt.Errorf("%w: %d bytes of pixel data is not a whole number of pixels", ErrMalformedInput, len(d.body))
	}

	// Computed in 64 bits, 65535 * 65535 * 3 overflows a 32-bit int
	want := uint64(d.footer.Width) * uint64(d.footer.Height) * pixelBytes
	if uint64(len(d.body)) < want {
		return fmt.Errorf("%w: %v, have %d bytes, need %d", ErrMalformedInput, tile.ErrNotEnough, len(d.body), want)
	}

	d.colors = make([]tile.Color, 0, len(d.body)/pixelBytes)
	for i := len(d.body) - 1; i > 0; i -= pixelBytes {
		d.colors = append(d.colors, tile.Pack(d.body[i], d.body[i-1], d.body[i-2]))
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	if err := d.readFooter(b); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		return err
	}

	width, height := int(d.footer.Width), int(d.footer.Height)

	tiles, err := tile.Split(d.colors, width, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	for i := range tiles {
		tiles[i].Unscramble()
	}

	full := assemble(tiles, width, height)

	d.frame = &Frame{
		Footer:  d.footer,
		Full:    full,
		Logical: crop(full, d.footer.Logical()),
	}

	return nil
}

// Decode reads a frame dump from r and returns both the full and the
// logical image.
func Decode(r io.Reader) (*Frame, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.frame, nil
}

// DecodeConfig returns the color model and dimensions of the full image
// without decoding the pixel data. As the dimensions are stored at the end,
// r is still read completely.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(d.footer.Width),
		Height:     int(d.footer.Height),
	}, nil
}
