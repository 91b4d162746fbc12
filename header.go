package netpbm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Header holds the four metadata fields that precede PPM pixel data.
type Header struct {
	MagicNumber string
	Width       int
	Height      int
	MaxValue    int
}

// PixelCount is the number of pixels the header declares.
func (h Header) PixelCount() int {
	return h.Width * h.Height
}

type headerField int

const (
	fieldMagic headerField = iota
	fieldWidth
	fieldHeight
	fieldMaxValue
	fieldDone
)

func (f headerField) String() string {
	switch f {
	case fieldMagic:
		return "magic number"
	case fieldWidth:
		return "width"
	case fieldHeight:
		return "height"
	case fieldMaxValue:
		return "max value"
	}
	return "pixel data"
}

// headerBuilder assigns header tokens by position, whatever lines they are on.
type headerBuilder struct {
	next   headerField
	header Header
}

func (b *headerBuilder) add(token string) error {
	switch b.next {
	case fieldMagic:
		b.header.MagicNumber = token
	case fieldWidth, fieldHeight, fieldMaxValue:
		// 31 bits keeps width*height inside an int on 64-bit platforms.
		v, err := strconv.ParseUint(token, 10, 31)
		if err != nil {
			return invalidHeaderToken(b.next.String(), token, numErrReason(err))
		}
		switch b.next {
		case fieldWidth:
			b.header.Width = int(v)
		case fieldHeight:
			b.header.Height = int(v)
		default:
			b.header.MaxValue = int(v)
		}
	default:
		return invalidHeaderToken("", token, "unexpected token after max value")
	}
	b.next++
	return nil
}

func (b *headerBuilder) complete() bool {
	return b.next == fieldDone
}

func (b *headerBuilder) build() (Header, error) {
	if !b.complete() {
		return Header{}, truncatedError(b.next.String())
	}
	return b.header, nil
}

// lineReader reads a file line by line and remembers the current line number.
type lineReader struct {
	r    *bufio.Reader
	line int
}

func newLineReader(r *bufio.Reader) *lineReader {
	return &lineReader{r: r}
}

// next returns the next line, including its newline if it has one. At the end
// of input it returns the final unterminated line, if any, along with io.EOF.
func (lr *lineReader) next() (string, error) {
	line, err := lr.r.ReadString('\n')
	if line != "" {
		lr.line++
	}
	return line, err
}

// readHeader consumes lines until all four header fields are assigned. The
// reader is left at the first byte after the line holding the max value.
func readHeader(lr *lineReader) (Header, error) {
	var b headerBuilder
	for !b.complete() {
		line, err := lr.next()
		if err != nil && err != io.EOF {
			return Header{}, errors.Wrap(err, "read header")
		}
		if text, ok := stripComment(line); ok {
			for _, token := range asciiFields(text) {
				if err := b.add(token); err != nil {
					return Header{}, err
				}
			}
		}
		if err == io.EOF {
			break
		}
	}
	return b.build()
}

// stripComment cuts line at its first '#'. It reports false when nothing is
// left, meaning the line should be skipped.
func stripComment(line string) (string, bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
		if line == "" {
			return "", false
		}
	}
	return line, true
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func asciiFields(s string) []string {
	return strings.FieldsFunc(s, isASCIISpace)
}

func numErrReason(err error) string {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err.Error()
	}
	return err.Error()
}
