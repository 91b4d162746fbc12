package netpbm

import "fmt"

// Pixel is a 24-bit RGB color. The zero value is black.
type Pixel struct {
	r, g, b uint8
}

// NewPixel returns the pixel with the given channel values.
func NewPixel(r, g, b uint8) Pixel {
	return Pixel{r: r, g: g, b: b}
}

func (p Pixel) Red() uint8 {
	return p.r
}

func (p Pixel) Green() uint8 {
	return p.g
}

func (p Pixel) Blue() uint8 {
	return p.b
}

// String formats the channels as "R, G, B".
func (p Pixel) String() string {
	return fmt.Sprintf("%d, %d, %d", p.r, p.g, p.b)
}

// Invert returns the complement of every channel.
func (p Pixel) Invert() Pixel {
	return Pixel{r: ^p.r, g: ^p.g, b: ^p.b}
}

// Greyscale returns a pixel whose channels all hold the mean of p's channels,
// rounded down.
func (p Pixel) Greyscale() Pixel {
	grey := uint8((uint16(p.r) + uint16(p.g) + uint16(p.b)) / 3)
	return Pixel{r: grey, g: grey, b: grey}
}

func (p Pixel) Equal(other Pixel) bool {
	return p == other
}

// RGBA implements color.Color. Pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.r)
	r |= r << 8
	g = uint32(p.g)
	g |= g << 8
	b = uint32(p.b)
	b |= b << 8
	a = 0xffff
	return
}
