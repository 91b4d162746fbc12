// Package netpbm reads and writes PPM images in the P3 (ASCII) and P6 (raw)
// encodings and applies per-pixel color transforms.
package netpbm

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

const (
	// MagicText tags ASCII pixel data.
	MagicText = "P3"
	// MagicBinary tags raw byte pixel data.
	MagicBinary = "P6"
	// DefaultMaxValue is the max color value of images not read from a file.
	DefaultMaxValue = 255

	unloadedMagic = "p3"
)

// Image is a PPM image: header fields plus its pixels in row-major order.
//
// An Image is not safe for concurrent use.
type Image struct {
	pixels        []Pixel
	width, height int
	maxValue      int
	magicNumber   string
}

// New returns an empty image with placeholder header values.
func New() *Image {
	return &Image{magicNumber: unloadedMagic, maxValue: DefaultMaxValue}
}

// NewImage returns an image of the given size holding a copy of pixels, which
// must contain exactly width*height entries in row-major order.
func NewImage(width, height int, pixels []Pixel) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, errors.Errorf("invalid dimensions %dx%d", width, height)
	}
	img := New()
	img.width, img.height = width, height
	if len(pixels) != width*height {
		return nil, dimensionMismatch(len(pixels), img.Header())
	}
	img.pixels = append([]Pixel(nil), pixels...)
	return img, nil
}

// FromImage converts any image to a P6 image with 8-bit channels. Alpha is
// dropped after conversion through color.RGBAModel.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	img := &Image{
		width:       b.Dx(),
		height:      b.Dy(),
		maxValue:    DefaultMaxValue,
		magicNumber: MagicBinary,
		pixels:      make([]Pixel, 0, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			img.pixels = append(img.pixels, NewPixel(c.R, c.G, c.B))
		}
	}
	return img
}

func newFromHeader(h Header, pixels []Pixel) *Image {
	return &Image{
		pixels:      pixels,
		width:       h.Width,
		height:      h.Height,
		maxValue:    h.MaxValue,
		magicNumber: h.MagicNumber,
	}
}

// Header returns the image's header fields.
func (img *Image) Header() Header {
	return Header{
		MagicNumber: img.magicNumber,
		Width:       img.width,
		Height:      img.height,
		MaxValue:    img.maxValue,
	}
}

// MagicNumber returns the format tag read from the file, or "p3" for an
// image that was never loaded.
func (img *Image) MagicNumber() string {
	return img.magicNumber
}

func (img *Image) Size() (int, int) {
	return img.width, img.height
}

func (img *Image) MaxValue() int {
	return img.maxValue
}

// Pixels returns a copy of the pixels in row-major order.
func (img *Image) Pixels() []Pixel {
	return append([]Pixel(nil), img.pixels...)
}

// PixelAt returns the pixel at column x of row y. It panics if the point is
// outside the image.
func (img *Image) PixelAt(x, y int) Pixel {
	return img.pixels[img.index(x, y)]
}

// SetPixel replaces the pixel at column x of row y. It panics if the point is
// outside the image.
func (img *Image) SetPixel(x, y int, p Pixel) {
	img.pixels[img.index(x, y)] = p
}

func (img *Image) index(x, y int) int {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic("Index out of bounds")
	}
	return y*img.width + x
}

// Invert replaces every pixel with its inverse.
func (img *Image) Invert() {
	img.mapPixels(Pixel.Invert)
}

// Greyscale replaces every pixel with its grey equivalent.
func (img *Image) Greyscale() {
	img.mapPixels(Pixel.Greyscale)
}

func (img *Image) mapPixels(fn func(Pixel) Pixel) {
	pixels := make([]Pixel, len(img.pixels))
	for i, p := range img.pixels {
		pixels[i] = fn(p)
	}
	img.pixels = pixels
}

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At implements image.Image. Points outside the image are transparent black.
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	p := img.pixels[y*img.width+x]
	return color.RGBA{R: p.r, G: p.g, B: p.b, A: 0xff}
}
