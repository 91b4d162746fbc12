package netpbm

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// maxPrealloc caps the pixel slice capacity reserved from an untrusted header.
const maxPrealloc = 1 << 20

// LoadText reads a PPM file whose pixel data is ASCII (P3).
func LoadText(path string, opts ...Option) (*Image, error) {
	return load(path, DecodeText, opts)
}

// LoadBinary reads a PPM file whose pixel data is raw bytes (P6).
func LoadBinary(path string, opts ...Option) (*Image, error) {
	return load(path, DecodeBinary, opts)
}

func load(path string, decode func(io.Reader, ...Option) (*Image, error), opts []Option) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	img, err := decode(file, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return img, nil
}

// DecodeText reads a P3 image from r.
func DecodeText(r io.Reader, opts ...Option) (*Image, error) {
	o := buildOptions(opts)
	lr := newLineReader(bufio.NewReader(r))

	h, err := readHeader(lr)
	if err != nil {
		return nil, err
	}
	o.logHeader(h, MagicText)

	pixels, err := readTextPixels(lr, o.triples, h.PixelCount())
	if err != nil {
		return nil, err
	}
	return o.finish(h, pixels)
}

// DecodeBinary reads a P6 image from r. Bytes after the last complete triple
// are ignored.
func DecodeBinary(r io.Reader, opts ...Option) (*Image, error) {
	o := buildOptions(opts)
	br := bufio.NewReader(r)

	h, err := readHeader(newLineReader(br))
	if err != nil {
		return nil, err
	}
	o.logHeader(h, MagicBinary)

	pixels, err := readBinaryPixels(br, h.PixelCount())
	if err != nil {
		return nil, err
	}
	return o.finish(h, pixels)
}

func (o options) logHeader(h Header, want string) {
	o.logger.Debugw("read header",
		"magic", h.MagicNumber, "width", h.Width, "height", h.Height, "max", h.MaxValue)
	if h.MagicNumber != want {
		o.logger.Warnw("magic number does not match decoder", "magic", h.MagicNumber, "decoder", want)
	}
}

func (o options) finish(h Header, pixels []Pixel) (*Image, error) {
	if len(pixels) != h.PixelCount() {
		return nil, dimensionMismatch(len(pixels), h)
	}
	o.logger.Debugw("decoded pixels", "magic", h.MagicNumber, "count", len(pixels))
	return newFromHeader(h, pixels), nil
}

func readTextPixels(lr *lineReader, policy TriplePolicy, want int) ([]Pixel, error) {
	pixels := make([]Pixel, 0, min(want, maxPrealloc))
	var (
		triple [3]uint8
		n      int
		last   string
	)
	for {
		line, err := lr.next()
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "read pixel data")
		}
		if text, ok := stripComment(line); ok {
			for _, token := range asciiFields(text) {
				v, perr := strconv.ParseUint(token, 10, 8)
				if perr != nil {
					return nil, invalidPixelToken(lr.line, token, numErrReason(perr))
				}
				triple[n] = uint8(v)
				last = token
				n++
				if n == len(triple) {
					pixels = append(pixels, NewPixel(triple[0], triple[1], triple[2]))
					n = 0
				}
			}
			if n != 0 && policy == TriplesPerLine {
				return nil, invalidPixelToken(lr.line, last, "incomplete triple at end of line")
			}
		}
		if err == io.EOF {
			break
		}
	}
	if n != 0 {
		return nil, invalidPixelToken(lr.line, last, "incomplete triple at end of data")
	}
	return pixels, nil
}

func readBinaryPixels(r io.Reader, want int) ([]Pixel, error) {
	pixels := make([]Pixel, 0, min(want, maxPrealloc))
	var triple [3]byte
	for {
		_, err := io.ReadFull(r, triple[:])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return pixels, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read pixel data")
		}
		pixels = append(pixels, NewPixel(triple[0], triple[1], triple[2]))
	}
}
