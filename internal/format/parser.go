package format

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/bitgrid/internal/grid"
)

// HeaderLines is the number of leading lines skipped on read: the dimension
// comment, the declaration and the opening brace.
const HeaderLines = 3

// Document is a decoded grid file.
type Document struct {
	Grid *grid.Grid
	// BitString is the line found after the closing delimiter, if any.
	BitString string
}

// Consistent reports whether the recorded bit-string matches the row data.
// A file without a bit-string line is not consistent.
func (d *Document) Consistent() bool {
	return d.BitString != "" && d.BitString == d.Grid.BitString()
}

// Decode parses a grid file. On error no grid is returned. Lines have no
// length limit, so the bit-string of a large grid reads back.
func Decode(r io.Reader) (*Document, error) {
	lr := &lineReader{r: bufio.NewReader(r)}

	for lr.line < HeaderLines && lr.scan() {
	}

	var rows [][]bool
	closed := false
	for !closed && lr.scan() {
		row, end, err := parseLine(lr.text, lr.line)
		if err != nil {
			return nil, err
		}
		if row != nil {
			rows = append(rows, row)
		}
		closed = end
	}

	doc := &Document{}
	if closed {
		for lr.scan() {
			if s := strings.TrimSpace(lr.text); s != "" {
				doc.BitString = s
				break
			}
		}
	}
	if lr.err != nil {
		return nil, fmt.Errorf("format: read: %w", lr.err)
	}

	g, err := grid.FromRows(rows)
	if err != nil {
		return nil, err
	}
	doc.Grid = g
	return doc, nil
}

// lineReader yields lines without the trailing "\n" or "\r\n".
type lineReader struct {
	r    *bufio.Reader
	text string
	line int
	err  error
}

func (lr *lineReader) scan() bool {
	if lr.err != nil {
		return false
	}
	s, err := lr.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			lr.err = err
			return false
		}
		if s == "" {
			return false
		}
	}
	lr.line++
	s = strings.TrimSuffix(s, "\n")
	lr.text = strings.TrimSuffix(s, "\r")
	return true
}

// parseLine reads one line of the data section. It returns the row (nil for a
// blank or closing line) and whether the line closed the outer array.
func parseLine(text string, line int) ([]bool, bool, error) {
	lx := newLexer(text, line)

	t := lx.next()
	switch t.kind {
	case tokEOL:
		return nil, false, nil
	case tokRBrace:
		if err := expectEnd(lx); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	case tokLBrace:
	default:
		return nil, false, unexpected(t, "expected '{' to start a row")
	}

	var row []bool
	for {
		t = lx.next()
		if t.kind != tokNumber {
			return nil, false, unexpected(t, "expected cell value 0 or 1, found "+t.kind.String())
		}
		switch t.text {
		case "0":
			row = append(row, false)
		case "1":
			row = append(row, true)
		default:
			return nil, false, unexpected(t, "cell value must be 0 or 1")
		}

		t = lx.next()
		if t.kind == tokRBrace {
			break
		}
		if t.kind != tokComma {
			return nil, false, unexpected(t, "expected ',' or '}', found "+t.kind.String())
		}
	}

	t = lx.next()
	if t.kind == tokComma {
		t = lx.next()
	}
	if t.kind == tokRBrace {
		// last row carries the outer closing brace
		if err := expectEnd(lx); err != nil {
			return nil, false, err
		}
		return row, true, nil
	}
	if t.kind != tokEOL {
		return nil, false, unexpected(t, "unexpected text after row")
	}
	return row, false, nil
}

func expectEnd(lx *lexer) error {
	t := lx.next()
	if t.kind == tokSemicolon {
		t = lx.next()
	}
	if t.kind != tokEOL {
		return unexpected(t, "unexpected text after closing '}'")
	}
	return nil
}
