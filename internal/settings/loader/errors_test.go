package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/termhive/termhive/internal/settings"
)

func TestLineAndColumnFromOffset(t *testing.T) {
	content := []byte("{\n  \"a\": 1,\n  \"b\" 2\n}")

	line, col := lineAndColumnFromOffset(content, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	// Offset of the '2' on the third line.
	line, col = lineAndColumnFromOffset(content, 18)
	assert.Equal(t, 3, line)
	assert.Equal(t, 7, col)

	// Offsets past the end clamp to the last position.
	line, _ = lineAndColumnFromOffset(content, 10_000)
	assert.Equal(t, 4, line)

	line, col = lineAndColumnFromOffset(content, -1)
	assert.Zero(t, line)
	assert.Zero(t, col)
}

func TestParseError_Error(t *testing.T) {
	inner := errors.New("unexpected token")
	pe := &ParseError{Code: 0, Source: "settings.json", Line: 3, Column: 7, Err: inner}

	assert.Equal(t, "settings.json:3:7: unexpected token", pe.Error())
	assert.ErrorIs(t, pe, inner)

	noPos := &ParseError{Source: "settings.json", Err: inner}
	assert.Equal(t, "settings.json: unexpected token", noPos.Error())
}

func TestParseError_LoadError(t *testing.T) {
	pe := &ParseError{
		Code:   settings.LoadErrorUnparseableJSON,
		Source: "settings.json",
		Line:   3,
		Column: 7,
		Err:    errors.New("unexpected token"),
	}

	le := pe.LoadError()
	assert.Equal(t, settings.LoadErrorUnparseableJSON, le.Code)
	assert.Equal(t, "settings.json:3:7: unexpected token", le.Message)
}
