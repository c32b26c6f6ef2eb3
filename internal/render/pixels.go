package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"cellcore/internal/core"
)

// DefaultPalette colours value 0 black, 1 white and 2-3 as sand tones.
var DefaultPalette = []color.RGBA{
	{0, 0, 0, 255},
	{240, 240, 240, 255},
	{214, 170, 92, 255},
	{168, 120, 60, 255},
}

// Image converts cells into an RGBA image. Cell values index palette,
// clamped to the last entry.
func Image(cells []uint8, size core.Size, palette []color.RGBA) (*image.RGBA, error) {
	if size.W <= 0 || size.H <= 0 || len(cells) != size.W*size.H {
		return nil, fmt.Errorf("%w: %d cells do not fill a %dx%d image", core.ErrPrecondition, len(cells), size.W, size.H)
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	fillPaletteRGBA(img.Pix, cells, palette)
	return img, nil
}

// Binary converts cells into a two colour image: on for every non-zero cell,
// off for the rest.
func Binary(cells []uint8, size core.Size, on, off color.Color) (*image.RGBA, error) {
	if size.W <= 0 || size.H <= 0 || len(cells) != size.W*size.H {
		return nil, fmt.Errorf("%w: %d cells do not fill a %dx%d image", core.ErrPrecondition, len(cells), size.W, size.H)
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	fillBinaryRGBA(img.Pix, cells, on, off)
	return img, nil
}

// PNG writes the cells as a PNG using palette.
func PNG(w io.Writer, cells []uint8, size core.Size, palette []color.RGBA) error {
	img, err := Image(cells, size, palette)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// fillBinaryRGBA converts binary cell data into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		copy(buf[i*4:i*4+4], []byte{col.R, col.G, col.B, col.A})
	}
}
