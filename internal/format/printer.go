package format

import (
	"fmt"
	"io"
)

// The Printer interface is used to output structured text.
//
// Indent() starts a new line at an increased indentation level.
// Dedent() starts a new line at a decreased indentation level.
// NewLine() starts a new line at the current indentation level.
// PrintBytes() outputs bytes at the current position.
// Reset() returns to indentation level 0 on a fresh line, marking the
// end of a top-level value.
//
// The methods do not return an error because an output error is an
// exceptional case for which the only sensible outcome is to stop
// printing altogether.  Instead, implementations are expected to panic
// with a *PrinterError when they encounter an error.  A user of the
// Printer interface can use
//
//	func printingFunction(p Printer) (err error) {
//	    defer CatchPrinterError(&err)
//	    doSomePrinting(p)
//	    return nil
//	}
//
// to capture such errors.
type Printer interface {
	Indent()
	Dedent()
	NewLine()
	PrintBytes([]byte)
	Reset()
}

// CatchPrinterError captures panics caused by a Printer that encountered
// an error while attempting to send output.  See the Printer interface
// documentation for details.
func CatchPrinterError(err *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*PrinterError)
		if ok {
			*err = perr
		} else {
			panic(r)
		}
	}
}

// A PrinterError contains an error that occurred while a Printer
// implementation was sending some output.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer error: %s", e.Err)
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

// DefaultPrinter implements a Printer which uses an io.Writer to send
// output, using IndentSize spaces for each indent level.
// If IndentSize is negative, then NewLine() does nothing so all the
// output is on one single line.
// If IndentSize is 0, then there is no indentation but there are still
// new lines.
// If Flusher is non-nil, it is flushed at each Reset() so that output
// is delivered value by value.
type DefaultPrinter struct {
	io.Writer
	IndentSize  int
	Flusher     interface{ Flush() error }
	indentLevel int
}

var _ Printer = &DefaultPrinter{}

// NewLine outputs '\n' followed by a number of spaces corresponding to
// the current indentation level.
func (p *DefaultPrinter) NewLine() {
	if p.IndentSize < 0 {
		return
	}
	p.printBytes([]byte{'\n'})
	for i := p.IndentSize * p.indentLevel; i > 0; i-- {
		p.printBytes([]byte{' '})
	}
}

// Indent increments the indentation level and calls NewLine().
func (p *DefaultPrinter) Indent() {
	p.indentLevel++
	p.NewLine()
}

// Dedent decrements the indentation level and calls NewLine().
func (p *DefaultPrinter) Dedent() {
	p.indentLevel--
	p.NewLine()
}

// PrintBytes sends the given bytes verbatim to the printer's writer.
func (p *DefaultPrinter) PrintBytes(b []byte) {
	p.printBytes(b)
}

// Reset terminates the current top-level value with a newline and
// returns to indentation level 0.
func (p *DefaultPrinter) Reset() {
	p.indentLevel = 0
	p.printBytes([]byte{'\n'})
	if p.Flusher != nil {
		if err := p.Flusher.Flush(); err != nil {
			panic(wrapError(err))
		}
	}
}

func (p *DefaultPrinter) printBytes(b []byte) {
	_, err := p.Write(b)
	if err != nil {
		panic(wrapError(err))
	}
}

func wrapError(err error) *PrinterError {
	return &PrinterError{Err: err}
}
