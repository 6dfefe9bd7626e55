package format

import (
	"errors"
	"fmt"
)

// ErrParse indicates a data row that is not a brace-delimited list of 0/1 digits.
var ErrParse = errors.New("format: parse error")

// ErrDeclaration is returned for a declaration that spans more than one line.
var ErrDeclaration = errors.New("format: declaration must be a single line")

type ParseError struct {
	Line int
	Col  int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("format: line %d, col %d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("format: line %d, col %d: %s (got %q)", e.Line, e.Col, e.Msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func unexpected(t token, msg string) *ParseError {
	return &ParseError{Line: t.line, Col: t.col, Text: t.text, Msg: msg}
}
