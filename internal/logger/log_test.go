package logger

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPrinter struct {
	lines []string
}

func (p *capturingPrinter) Output(_ int, s string) error {
	p.lines = append(p.lines, s)
	return nil
}

func Test_PlainLogger_WritesPrefixedLines(t *testing.T) {
	p := new(capturingPrinter)
	lg := NewPlainLogger(p, true, true)

	lg.Successf("module %s migrated to version %d", "billing", 2)
	lg.Debugf("running step %d", 1)
	lg.Error(errors.New("boom"))

	require.Len(t, p.lines, 3)
	assert.Equal(t, "\nladder: module billing migrated to version 2", p.lines[0])
	assert.Equal(t, "\nladder debug: running step 1", p.lines[1])
	assert.Equal(t, "\nladder error: boom", p.lines[2])
}

func Test_PlainLogger_DebugAndSQLAreGated(t *testing.T) {
	p := new(capturingPrinter)
	lg := NewPlainLogger(p, false, false)

	lg.Debugf("hidden")
	lg.SQL("SELECT 1")
	lg.Successf("visible")

	require.Len(t, p.lines, 1)
	assert.Equal(t, "\nladder: visible", p.lines[0])
}

func Test_SQLEchoIncludesParameters(t *testing.T) {
	p := new(capturingPrinter)
	lg := NewPlainLogger(p, true, false)

	lg.SQL("SELECT * FROM migrations WHERE module = ?", "billing")

	require.Len(t, p.lines, 1)
	assert.Equal(t,
		"\nladder running sql: SELECT * FROM migrations WHERE module = ?"+
			"\nquery parameters: {\"billing\"}",
		p.lines[0],
	)
}

func Test_ColorLogger_StylesEveryLine(t *testing.T) {
	p := new(capturingPrinter)
	lg := NewColorLogger(p, true, true)

	lg.Successf("done")
	lg.Error(errors.New("boom"))
	lg.SQL("SELECT 1")

	require.Len(t, p.lines, 3)
	assert.Contains(t, p.lines[0], "\nladder: done")
	assert.Contains(t, p.lines[1], "\nladder error: boom")
	assert.Contains(t, p.lines[2], "\nladder running sql: SELECT 1")

	// colored output wraps the message in escape sequences
	for _, line := range p.lines {
		assert.Contains(t, line, "\x1b[")
	}
}
