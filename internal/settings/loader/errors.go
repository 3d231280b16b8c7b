package loader

import (
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/termhive/termhive/internal/settings"
)

// ParseError is a fatal load failure with a position inside the offending
// source. Line and column are 1-based and computed from the byte offset the
// decoder reported.
type ParseError struct {
	Code   settings.LoadErrorCode
	Source string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Source, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadError converts the parse error into the code/message pair carried on a
// finalized settings object.
func (e *ParseError) LoadError() *settings.LoadError {
	return &settings.LoadError{Code: e.Code, Message: e.Error()}
}

// newParseError builds a positioned ParseError from a decoder failure,
// recovering the byte offset when the underlying error carries one.
func newParseError(source string, content []byte, err error) *ParseError {
	pe := &ParseError{
		Code:   settings.LoadErrorUnparseableJSON,
		Source: source,
		Err:    err,
	}
	var syntaxErr *gojson.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line, pe.Column = lineAndColumnFromOffset(content, syntaxErr.Offset)
	}
	return pe
}

// lineAndColumnFromOffset converts a byte offset into 1-based line and column
// numbers.
func lineAndColumnFromOffset(content []byte, offset int64) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(content)) {
		offset = int64(len(content))
	}
	line, column = 1, 1
	for _, b := range content[:offset] {
		if b == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
