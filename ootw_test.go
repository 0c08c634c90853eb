package ootw

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ootw/frame"
	"github.com/bodgit/ootw/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(ioutil.Discard, "", 0)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "ootw")
	require.Nil(t, err)
	return dir
}

func solidDump(c color.NRGBA) []byte {
	b := bytes.Repeat([]byte{c.B, c.G, c.R}, 64)
	f := metadata.Footer{Width: 8, Height: 8, LogicalWidth: 8, LogicalHeight: 8}
	footer, _ := f.MarshalBinary()
	return append(b, footer...)
}

func readPNG(t *testing.T, file string) image.Image {
	f, err := os.Open(file)
	require.Nil(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.Nil(t, err)
	return m
}

func TestStem(t *testing.T) {
	tables := map[string]string{
		"frame.bin":      "frame",
		"dir/frame.bin":  "frame",
		"archive.tar.gz": "archive.tar",
		"frame":          "frame",
		".hidden":        ".hidden",
		"frame.":         "frame",
		"":               "output",
		".":              "output",
		"..":             "output",
	}
	tables[string(os.PathSeparator)] = "output"

	for path, want := range tables {
		assert.Equal(t, want, Stem(path), "%q", path)
	}
}

func TestOutputPaths(t *testing.T) {
	full, logical := OutputPaths(filepath.Join("some", "dir", "frame.bin"))
	assert.Equal(t, filepath.Join("some", "dir", "frame-full.png"), full)
	assert.Equal(t, filepath.Join("some", "dir", "frame-logical.png"), logical)
}

func TestConvertSolid(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "solid.bin")
	want := color.NRGBA{0xc0, 0x80, 0x40, 0xff}
	require.Nil(t, ioutil.WriteFile(file, solidDump(want), 0644))

	c, err := New("", 0, discard)
	require.Nil(t, err)
	defer c.Close()

	require.Nil(t, c.Convert(file))

	for _, name := range []string{"solid-full.png", "solid-logical.png"} {
		m := readPNG(t, filepath.Join(dir, name))
		b := m.Bounds()
		assert.Equal(t, 8, b.Dx())
		assert.Equal(t, 8, b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				assert.Equal(t, want, color.NRGBAModel.Convert(m.At(x, y)))
			}
		}
	}
}

func TestConvertLogical(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "frame.dat")

	src := image.NewNRGBA(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 10), uint8(y * 15), 0x55, 0xff})
		}
	}

	b := new(bytes.Buffer)
	require.Nil(t, frame.Encode(b, src, image.Pt(20, 10)))
	require.Nil(t, ioutil.WriteFile(file, b.Bytes(), 0644))

	c, err := New("", 0, discard)
	require.Nil(t, err)
	defer c.Close()

	require.Nil(t, c.Convert(file))

	full := readPNG(t, filepath.Join(dir, "frame-full.png"))
	logical := readPNG(t, filepath.Join(dir, "frame-logical.png"))

	assert.Equal(t, image.Rect(0, 0, 24, 16), full.Bounds())
	assert.Equal(t, image.Rect(0, 0, 20, 10), logical.Bounds())

	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			assert.Equal(t, src.At(x, y), color.NRGBAModel.Convert(full.At(x, y)))
			if x < 20 && y < 10 {
				assert.Equal(t, src.At(x, y), color.NRGBAModel.Convert(logical.At(x, y)))
			}
		}
	}
}

func TestConvertColors(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "gradient.bin")

	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), uint8(x * y), 0xff})
		}
	}

	b := new(bytes.Buffer)
	require.Nil(t, frame.Encode(b, src, image.Pt(16, 16)))
	require.Nil(t, ioutil.WriteFile(file, b.Bytes(), 0644))

	c, err := New("", 16, discard)
	require.Nil(t, err)
	defer c.Close()

	require.Nil(t, c.Convert(file))

	for _, name := range []string{"gradient-full.png", "gradient-logical.png"} {
		m := readPNG(t, filepath.Join(dir, name))
		pm, ok := m.(*image.Paletted)
		require.True(t, ok)
		assert.True(t, len(pm.Palette) <= 16)
		assert.Equal(t, image.Rect(0, 0, 16, 16), pm.Bounds())
	}
}

func TestConvertCatalog(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "solid.bin")
	require.Nil(t, ioutil.WriteFile(file, solidDump(color.NRGBA{0x01, 0x02, 0x03, 0xff}), 0644))

	db := filepath.Join(dir, "frames.db")

	c, err := New(db, 0, discard)
	require.Nil(t, err)

	require.Nil(t, c.Convert(file))
	// Converting the same dump again reuses the entry
	require.Nil(t, c.Convert(file))
	require.Nil(t, c.Close())

	fdb, err := NewFrameDB(db)
	require.Nil(t, err)
	defer fdb.Close()

	var n int
	require.Nil(t, fdb.db.QueryRow("SELECT COUNT(*) FROM frame").Scan(&n))
	assert.Equal(t, 1, n)

	full, err := ioutil.ReadFile(filepath.Join(dir, "solid-full.png"))
	require.Nil(t, err)

	var sha string
	require.Nil(t, fdb.db.QueryRow("SELECT sha1 FROM frame").Scan(&sha))

	e, err := fdb.FindFrameBySHA1(sha)
	require.Nil(t, err)
	require.NotNil(t, e)
	assert.Equal(t, uint16(8), e.Footer.Width)
	assert.Equal(t, uint16(8), e.Footer.LogicalHeight)
	assert.Equal(t, full, e.Full)

	e, err = fdb.FindFrameBySHA1("0000")
	assert.Nil(t, err)
	assert.Nil(t, e)
}

func TestConvertErrors(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	c, err := New("", 0, discard)
	require.Nil(t, err)
	defer c.Close()

	err = c.Convert(filepath.Join(dir, "missing.bin"))
	var pathErr *os.PathError
	assert.True(t, errors.As(err, &pathErr))

	short := filepath.Join(dir, "short.bin")
	require.Nil(t, ioutil.WriteFile(short, []byte{1, 2, 3}, 0644))
	assert.True(t, errors.Is(c.Convert(short), frame.ErrMalformedInput))

	odd := filepath.Join(dir, "odd.bin")
	f := metadata.Footer{Width: 10, Height: 8, LogicalWidth: 8, LogicalHeight: 8}
	footer, _ := f.MarshalBinary()
	require.Nil(t, ioutil.WriteFile(odd, append(make([]byte, 10*8*3), footer...), 0644))
	assert.True(t, errors.Is(c.Convert(odd), frame.ErrInvalidDimensions))

	// Nothing is written for a dump that fails to decode
	_, err = os.Stat(filepath.Join(dir, "odd-full.png"))
	assert.True(t, os.IsNotExist(err))

	_, err = New("", -1, discard)
	assert.NotNil(t, err)
	_, err = New("", 257, discard)
	assert.NotNil(t, err)
}
