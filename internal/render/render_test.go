package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"cellcore/internal/core"
)

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, []uint8{0, 1, 2, 0, 0, 1}, 3))
	require.Equal(t, ".##\n..#\n", buf.String())
}

func TestPaletteClampsToLastEntry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Palette(&buf, []uint8{0, 1, 2, 9}, 2, []rune("ab")))
	require.Equal(t, "ab\nbb\n", buf.String())
}

func TestTextRejectsRaggedInput(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Text(&buf, []uint8{0, 1, 0}, 2), core.ErrPrecondition)
	require.ErrorIs(t, Text(&buf, nil, 0), core.ErrPrecondition)
	require.ErrorIs(t, Palette(&buf, []uint8{0}, 1, nil), core.ErrPrecondition)
}

func TestFillPaletteRGBA(t *testing.T) {
	cells := []uint8{0, 1, 5}
	buf := make([]byte, len(cells)*4)
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 10, G: 20, B: 30, A: 40}}

	fillPaletteRGBA(buf, cells, palette)
	require.Equal(t, []byte{1, 2, 3, 4, 10, 20, 30, 40, 10, 20, 30, 40}, buf)

	fillPaletteRGBA(buf, cells, nil)
	require.Equal(t, make([]byte, 12), buf)
}

func TestBinary(t *testing.T) {
	img, err := Binary([]uint8{0, 3}, core.Size{W: 2, H: 1}, color.White, color.Black)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 255, 255, 255, 255, 255}, img.Pix)

	_, err = Binary([]uint8{0}, core.Size{W: 2, H: 1}, color.White, color.Black)
	require.ErrorIs(t, err, core.ErrPrecondition)
}

func TestPNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, []uint8{0, 1, 2, 3}, core.Size{W: 2, H: 2}, DefaultPalette))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	r, g, b, _ := img.At(1, 0).RGBA()
	require.Equal(t, []uint32{240, 240, 240}, []uint32{r >> 8, g >> 8, b >> 8})
}
