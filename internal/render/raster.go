package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Rasterize draws v onto a size×size canvas, stretching the symbol to fill
// it. When background is non-nil the canvas is filled with it first; the
// background shape is not painted otherwise, so a transparent symbol stays
// transparent.
func Rasterize(v *VectorImage, size int, foreground color.Color, background color.Color) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}
	n := v.ModuleCount()
	if n == 0 {
		return nil, fmt.Errorf("empty QR symbol")
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	if background != nil {
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	}

	fg := &image.Uniform{C: foreground}
	for y := 0; y < n; y++ {
		y0, y1 := y*size/n, (y+1)*size/n
		for x := 0; x < n; x++ {
			if !v.Dark(x, y) {
				continue
			}
			x0, x1 := x*size/n, (x+1)*size/n
			draw.Draw(canvas, image.Rect(x0, y0, x1, y1), fg, image.Point{}, draw.Over)
		}
	}

	return canvas, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
