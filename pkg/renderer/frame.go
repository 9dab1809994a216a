package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Frame is a rendered image as row-major RGB bytes, three per pixel
type Frame struct {
	Name   string
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a black frame
func NewFrame(name string, width, height int) *Frame {
	return &Frame{
		Name:   name,
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// QuantizeColor clamps each channel to [0,255] and rounds to the nearest byte
func QuantizeColor(c core.Vec3) [3]byte {
	c = c.Clamp(0, 255)
	return [3]byte{
		byte(c.X + 0.5),
		byte(c.Y + 0.5),
		byte(c.Z + 0.5),
	}
}

// Set stores the quantized color of pixel (row, col)
func (f *Frame) Set(row, col int, c core.Vec3) {
	rgb := QuantizeColor(c)
	copy(f.Pix[f.offset(row, col):], rgb[:])
}

// At returns the stored bytes of pixel (row, col)
func (f *Frame) At(row, col int) [3]byte {
	i := f.offset(row, col)
	return [3]byte{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// Rows returns the slice of Pix holding rows [start, end)
func (f *Frame) Rows(start, end int) []byte {
	return f.Pix[start*f.Width*3 : end*f.Width*3]
}

func (f *Frame) offset(row, col int) int {
	return (row*f.Width + col) * 3
}

// RGBA converts the frame to an opaque image for the standard encoders
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			rgb := f.At(row, col)
			img.SetRGBA(col, row, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}
