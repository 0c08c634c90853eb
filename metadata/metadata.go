/*
Package metadata implements the fixed trailer appended to every Out of the
World frame dump.

The trailer is 12 bytes long; four bytes of unknown purpose followed by four
little-endian 16-bit values holding the full width and height of the dump and
the width and height of the visible, or logical, area.
*/
package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
)

// Size is the length in bytes of the footer
const Size = 12

// ErrShort is returned when there are fewer than Size bytes available
var ErrShort = errors.New("metadata: footer too short")

// Footer is the trailing record of a frame dump. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Footer struct {
	// Reserved is carried through untouched, its meaning is unknown
	Reserved      [4]byte
	Width         uint16
	Height        uint16
	LogicalWidth  uint16
	LogicalHeight uint16
}

// Full returns the rectangle covered by the whole dump
func (f Footer) Full() image.Rectangle {
	return image.Rect(0, 0, int(f.Width), int(f.Height))
}

// Logical returns the visible rectangle, anchored at the origin
func (f Footer) Logical() image.Rectangle {
	return image.Rect(0, 0, int(f.LogicalWidth), int(f.LogicalHeight))
}

// MarshalBinary encodes the footer into binary form and returns the result
func (f *Footer) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := binary.Write(b, binary.LittleEndian, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the footer from the first Size bytes of b
func (f *Footer) UnmarshalBinary(b []byte) error {
	if len(b) < Size {
		return ErrShort
	}
	return binary.Read(bytes.NewReader(b[:Size]), binary.LittleEndian, f)
}

// Parse decodes the footer from the last Size bytes of b
func Parse(b []byte) (Footer, error) {
	var f Footer
	if len(b) < Size {
		return f, ErrShort
	}
	if err := f.UnmarshalBinary(b[len(b)-Size:]); err != nil {
		return Footer{}, err
	}
	return f, nil
}
