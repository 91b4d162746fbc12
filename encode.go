package netpbm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// SaveText writes the image to path as an ASCII (P3) PPM file.
func (img *Image) SaveText(path string, opts ...Option) error {
	return save(path, img.EncodeText, opts)
}

// SaveBinary writes the image to path as a raw (P6) PPM file.
func (img *Image) SaveBinary(path string, opts ...Option) error {
	return save(path, img.EncodeBinary, opts)
}

// save leaves whatever was written in place when encoding fails.
func save(path string, encode func(io.Writer, ...Option) error, opts []Option) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		err = multierr.Combine(err, errors.Wrapf(file.Close(), "close %s", path))
	}()

	if err := encode(file, opts...); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// EncodeText writes the image as P3. Pixels are written as "R G B  " and a line
// ends once it holds a full row of pixels or grows past the wrap limit.
func (img *Image) EncodeText(w io.Writer, opts ...Option) error {
	o := buildOptions(opts)
	bw := bufio.NewWriter(w)
	writeHeader(bw, MagicText, img)

	var (
		buf          []byte
		pixelsOnLine int
		lineLen      int
	)
	for _, p := range img.pixels {
		if pixelsOnLine > 0 && (pixelsOnLine == img.width || lineLen > o.lineWidth) {
			bw.WriteByte('\n')
			pixelsOnLine, lineLen = 0, 0
		}
		buf = appendTextPixel(buf[:0], p)
		bw.Write(buf)
		pixelsOnLine++
		lineLen += len(buf)
	}
	if pixelsOnLine > 0 {
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write P3 data")
	}
	o.logger.Debugw("encoded pixels", "magic", MagicText, "count", len(img.pixels))
	return nil
}

// EncodeBinary writes the image as P6, three bytes per pixel.
func (img *Image) EncodeBinary(w io.Writer, opts ...Option) error {
	o := buildOptions(opts)
	bw := bufio.NewWriter(w)
	writeHeader(bw, MagicBinary, img)

	for _, p := range img.pixels {
		bw.Write([]byte{p.r, p.g, p.b})
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write P6 data")
	}
	o.logger.Debugw("encoded pixels", "magic", MagicBinary, "count", len(img.pixels))
	return nil
}

// writeHeader ignores write errors; bufio.Writer keeps the first one and
// reports it from Flush.
func writeHeader(bw *bufio.Writer, magic string, img *Image) {
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, img.width, img.height, img.maxValue)
}

func appendTextPixel(buf []byte, p Pixel) []byte {
	buf = strconv.AppendUint(buf, uint64(p.r), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(p.g), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(p.b), 10)
	return append(buf, ' ', ' ')
}
