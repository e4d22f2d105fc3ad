package logger

import (
	"bytes"
	"fmt"

	"github.com/logrusorgru/aurora/v3"
)

// Printer is the sink for log lines. *log.Logger satisfies it.
type Printer interface {
	Output(calldepth int, s string) error
}

type Logger interface {
	Successf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Error(err error)
	SQL(query string, args ...interface{})
}

type style func(msg string) string

type writer struct {
	printer Printer
	debug   bool
	sql     bool

	debugStyle   style
	successStyle style
	errorStyle   style
	sqlStyle     style
}

func (w *writer) Debugf(format string, args ...interface{}) {
	if w.debug {
		msg := fmt.Sprintf("\nladder debug: "+format, args...)
		_ = w.printer.Output(2, w.debugStyle(msg))
	}
}

func (w *writer) Successf(format string, args ...interface{}) {
	msg := fmt.Sprintf("\nladder: "+format, args...)
	_ = w.printer.Output(2, w.successStyle(msg))
}

func (w *writer) Error(err error) {
	msg := fmt.Sprintf("\nladder error: %s", err.Error())
	_ = w.printer.Output(2, w.errorStyle(msg))
}

func (w *writer) SQL(query string, args ...interface{}) {
	if w.sql {
		_ = w.printer.Output(2, w.sqlStyle(sqlLine(query, args)))
	}
}

type ColorLogger struct {
	writer
}

type PlainLogger struct {
	writer
}

var _ Logger = (*ColorLogger)(nil)
var _ Logger = (*PlainLogger)(nil)

func NewColorLogger(p Printer, sql, debug bool) *ColorLogger {
	return &ColorLogger{writer{
		printer:      p,
		sql:          sql,
		debug:        debug,
		debugStyle:   func(msg string) string { return aurora.Yellow(msg).String() },
		successStyle: func(msg string) string { return aurora.Green(msg).String() },
		errorStyle:   func(msg string) string { return aurora.Red(msg).String() },
		sqlStyle:     func(msg string) string { return aurora.Gray(15, msg).String() },
	}}
}

func NewPlainLogger(p Printer, sql, debug bool) *PlainLogger {
	plain := func(msg string) string { return msg }

	return &PlainLogger{writer{
		printer:      p,
		sql:          sql,
		debug:        debug,
		debugStyle:   plain,
		successStyle: plain,
		errorStyle:   plain,
		sqlStyle:     plain,
	}}
}

func sqlLine(query string, args []interface{}) string {
	var buf bytes.Buffer
	buf.WriteString("\nladder running sql: ")
	buf.WriteString(query)

	if len(args) > 0 {
		buf.WriteString("\nquery parameters: ")
		for i := range args {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(fmt.Sprintf("{%#v}", args[i]))
		}
	}

	return buf.String()
}
