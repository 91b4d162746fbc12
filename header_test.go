package netpbm

import (
	"bufio"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func parseHeader(s string) (Header, *lineReader, error) {
	lr := newLineReader(bufio.NewReader(strings.NewReader(s)))
	h, err := readHeader(lr)
	return h, lr, err
}

func TestReadHeader(t *testing.T) {
	want := Header{MagicNumber: "P3", Width: 2, Height: 1, MaxValue: 255}

	for _, tc := range []struct {
		name  string
		input string
		lines int
	}{
		{"one field group per line", "P3\n2 1\n255\n", 3},
		{"single line", "P3 2 1 255\n", 1},
		{"one field per line", "P3\n2\n1\n255\n", 4},
		{"tabs and carriage returns", "P3\r\n2\t1\r\n255\r\n", 3},
		{"no final newline", "P3\n2 1\n255", 3},
		{"comment lines", "# made by hand\nP3\n#\n2 1\n255\n", 5},
		{"trailing comments", "P3 # tag\n2 1 # size\n255 # comment\n", 3},
		{"blank line", "P3\n\n2 1\n255\n", 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, lr, err := parseHeader(tc.input)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, h, test.ShouldResemble, want)
			test.That(t, lr.line, test.ShouldEqual, tc.lines)
		})
	}
}

func TestReadHeaderLeavesPixelData(t *testing.T) {
	_, lr, err := parseHeader("P6\n1 1\n255\n\n# \x00")
	test.That(t, err, test.ShouldBeNil)
	rest := make([]byte, 4)
	n, err := lr.r.Read(rest)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rest[:n], test.ShouldResemble, []byte("\n# \x00"))
}

func TestReadHeaderTruncated(t *testing.T) {
	for _, tc := range []struct {
		input string
		field string
	}{
		{"", "magic number"},
		{"# only a comment\n", "magic number"},
		{"P3\n", "width"},
		{"P3\n2", "height"},
		{"P3\n2 1\n", "max value"},
		{"P3\n2 1\n# 255\n", "max value"},
	} {
		_, _, err := parseHeader(tc.input)
		test.That(t, err, test.ShouldWrap, ErrTruncated)

		var fe *FormatError
		test.That(t, errors.As(err, &fe), test.ShouldBeTrue)
		test.That(t, fe.Kind, test.ShouldEqual, Truncated)
		test.That(t, fe.Field, test.ShouldEqual, tc.field)
		test.That(t, err.Error(), test.ShouldContainSubstring, "malformed file")
	}
}

func TestReadHeaderInvalidToken(t *testing.T) {
	for _, tc := range []struct {
		input string
		field string
		token string
	}{
		{"P3\nabc 1\n255\n", "width", "abc"},
		{"P3\n2 -1\n255\n", "height", "-1"},
		{"P3\n2 1\n25x\n", "max value", "25x"},
		{"P3\n2 1\n99999999999\n", "max value", "99999999999"},
		{"P3\n2 1 255 10\n", "", "10"},
	} {
		_, _, err := parseHeader(tc.input)
		test.That(t, err, test.ShouldWrap, ErrInvalidToken)

		var fe *FormatError
		test.That(t, errors.As(err, &fe), test.ShouldBeTrue)
		test.That(t, fe.Field, test.ShouldEqual, tc.field)
		test.That(t, fe.Token, test.ShouldEqual, tc.token)
	}
}

func TestStripComment(t *testing.T) {
	text, ok := stripComment("255 # comment\n")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, text, test.ShouldEqual, "255 ")

	_, ok = stripComment("# comment\n")
	test.That(t, ok, test.ShouldBeFalse)

	text, ok = stripComment("10 20 30\n")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, text, test.ShouldEqual, "10 20 30\n")
}

func TestAsciiFields(t *testing.T) {
	test.That(t, asciiFields(" 1\t2\r\n3\f4  "), test.ShouldResemble, []string{"1", "2", "3", "4"})
	test.That(t, asciiFields(" \n"), test.ShouldBeEmpty)
}
