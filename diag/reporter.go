package diag

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Reporter receives every error a run produces: lexical and syntax errors as
// [*Error] (or a [List] of them) and runtime errors as whatever error type the
// interpreter returns.
type Reporter interface {
	Report(err error)
}

// Console writes one line per error to an output stream.
// Syntax errors are tagged in red, runtime errors in magenta, when color is on.
type Console struct {
	w       io.Writer
	syntax  *color.Color
	runtime *color.Color
}

// NewConsole returns a Console writing to w. When useColor is false the
// output is plain text regardless of the terminal.
func NewConsole(w io.Writer, useColor bool) *Console {
	c := &Console{
		w:       w,
		syntax:  color.New(color.FgRed, color.Bold),
		runtime: color.New(color.FgMagenta, color.Bold),
	}
	if useColor {
		c.syntax.EnableColor()
		c.runtime.EnableColor()
	} else {
		c.syntax.DisableColor()
		c.runtime.DisableColor()
	}
	return c
}

// Report implements [Reporter].
func (c *Console) Report(err error) {
	if err == nil {
		return
	}
	var list List
	if errors.As(err, &list) {
		for _, e := range list {
			c.reportSyntax(e)
		}
		return
	}
	var se *Error
	if errors.As(err, &se) {
		c.reportSyntax(se)
		return
	}
	fmt.Fprintln(c.w, c.runtime.Sprint(err.Error()))
}

func (c *Console) reportSyntax(e *Error) {
	where := ""
	if e.Where != "" {
		where = " " + e.Where
	}
	fmt.Fprintf(c.w, "[line %d] %s%s: %s\n", e.Line, c.syntax.Sprint("Error"), where, e.Message)
}

// Collector keeps reported errors in memory. Lists are flattened so each
// syntax error is one entry. It is safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	errs []error
}

// Report implements [Reporter].
func (c *Collector) Report(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var list List
	if errors.As(err, &list) {
		for _, e := range list {
			c.errs = append(c.errs, e)
		}
		return
	}
	c.errs = append(c.errs, err)
}

// Errors returns a copy of everything reported so far.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Reset discards collected errors.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = nil
}
