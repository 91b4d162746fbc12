package netpbm

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a FormatError.
type ErrorKind int

const (
	// Truncated means the input ended before the header was complete.
	Truncated ErrorKind = iota + 1
	// InvalidToken means a header field or channel value did not parse.
	InvalidToken
	// DimensionMismatch means the decoded pixel count differs from width*height.
	DimensionMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case InvalidToken:
		return "invalid token"
	case DimensionMismatch:
		return "dimension mismatch"
	}
	return "unknown"
}

// Sentinels matched by FormatError.Is, for use with errors.Is.
var (
	ErrTruncated         = errors.New("ppm: truncated header")
	ErrInvalidToken      = errors.New("ppm: invalid token")
	ErrDimensionMismatch = errors.New("ppm: pixel count does not match dimensions")
)

// FormatError reports a PPM file that does not follow the format. Only the
// fields relevant to Kind are set.
type FormatError struct {
	Kind ErrorKind

	// Field names the header field being parsed, empty for pixel data.
	Field string
	// Token is the offending text.
	Token string
	// Line is the 1-based line of the file holding Token, set for pixel data.
	Line int

	// Got and Want are the decoded and expected pixel counts.
	Got, Want int
	Header    Header

	// Reason holds any detail not covered by the fields above.
	Reason string
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case Truncated:
		if e.Field != "" {
			return fmt.Sprintf("ppm: malformed file, input ended before %s", e.Field)
		}
		return "ppm: malformed file, input ended before the header was complete"
	case InvalidToken:
		msg := fmt.Sprintf("ppm: invalid token %q", e.Token)
		if e.Field != "" {
			msg += " for " + e.Field
		}
		if e.Line > 0 {
			msg += fmt.Sprintf(" on line %d", e.Line)
		}
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
		return msg
	case DimensionMismatch:
		return fmt.Sprintf("ppm: got %d pixels, header %s %d %d %d expects %d",
			e.Got, e.Header.MagicNumber, e.Header.Width, e.Header.Height, e.Header.MaxValue, e.Want)
	}
	return "ppm: malformed file"
}

// Is reports whether target is the sentinel for e's kind.
func (e *FormatError) Is(target error) bool {
	switch e.Kind {
	case Truncated:
		return target == ErrTruncated
	case InvalidToken:
		return target == ErrInvalidToken
	case DimensionMismatch:
		return target == ErrDimensionMismatch
	}
	return false
}

func truncatedError(field string) error {
	return &FormatError{Kind: Truncated, Field: field}
}

func invalidHeaderToken(field, token, reason string) error {
	return &FormatError{Kind: InvalidToken, Field: field, Token: token, Reason: reason}
}

func invalidPixelToken(line int, token, reason string) error {
	return &FormatError{Kind: InvalidToken, Line: line, Token: token, Reason: reason}
}

func dimensionMismatch(got int, h Header) error {
	return &FormatError{Kind: DimensionMismatch, Got: got, Want: h.PixelCount(), Header: h}
}
