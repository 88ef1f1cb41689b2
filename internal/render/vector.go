package render

import (
	"bytes"
	"fmt"
	"strconv"
)

// FillNone marks a shape as unpainted.
const FillNone = "none"

// Shape is one paintable element of a VectorImage.
type Shape struct {
	Fill string
}

// VectorImage is a QR symbol as two shapes: a background rectangle covering
// the whole canvas and a foreground path made of every dark module. Callers
// recolor the symbol by setting the shapes' Fill directly.
type VectorImage struct {
	Background Shape
	Foreground Shape

	// Width and Height are the SVG width/height attributes. Empty means
	// the natural pixel size.
	Width  string
	Height string

	// Scale is the module edge length in SVG units.
	Scale float64

	modules [][]bool
}

// ModuleCount is the number of modules per side, quiet zone included.
func (v *VectorImage) ModuleCount() int {
	return len(v.modules)
}

// Dark reports whether the module at (x, y) is dark.
func (v *VectorImage) Dark(x, y int) bool {
	return v.modules[y][x]
}

// Size is the natural edge length in SVG units.
func (v *VectorImage) Size() float64 {
	return float64(len(v.modules)) * v.Scale
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalSVG serializes the image as a standalone SVG document.
func (v *VectorImage) MarshalSVG() []byte {
	size := formatNum(v.Size())
	width, height := v.Width, v.Height
	if width == "" {
		width = size + "px"
	}
	if height == "" {
		height = size + "px"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg version="1.1" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" preserveAspectRatio="xMinYMin meet">`,
		width, height, size, size)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s" cx="0" cy="0"/>`, v.Background.Fill)

	b.WriteString(`<path d="`)
	s := formatNum(v.Scale)
	for y, row := range v.modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			fmt.Fprintf(&b, "M%s,%sh%sv%sh-%sz ",
				formatNum(float64(x)*v.Scale), formatNum(float64(y)*v.Scale), s, s, s)
		}
	}
	fmt.Fprintf(&b, `" stroke="transparent" fill="%s"/>`, v.Foreground.Fill)
	b.WriteString(`</svg>`)

	return b.Bytes()
}
