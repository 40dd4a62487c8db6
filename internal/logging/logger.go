// Package logging prints progress and problems of a release run to the
// console, highlighting warnings and errors.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
)

// Logger writes one line per call. A nil *Logger discards everything.
type Logger struct {
	w io.Writer
}

// New returns a logger writing to w, or to stderr when w is nil.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{w: w}
}

// Printf writes a plain line.
func (l *Logger) Printf(format string, args ...any) {
	l.line(nil, "", format, args...)
}

// Infof is Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.line(nil, "", format, args...)
}

// Warnf writes a line prefixed with "warning:".
func (l *Logger) Warnf(format string, args ...any) {
	l.line(warnColor, "warning: ", format, args...)
}

// Errorf writes a line prefixed with "error:".
func (l *Logger) Errorf(format string, args ...any) {
	l.line(errColor, "error: ", format, args...)
}

// Successf writes a highlighted line.
func (l *Logger) Successf(format string, args ...any) {
	l.line(successColor, "", format, args...)
}

func (l *Logger) line(c *color.Color, prefix, format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	switch {
	case c != nil && prefix != "":
		prefix = c.Sprint(prefix)
	case c != nil:
		msg = c.Sprint(msg)
	}
	fmt.Fprintf(l.w, "%s%s\n", prefix, msg)
}
