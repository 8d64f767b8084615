// Package json implements the JSON text encoder consuming a token
// stream.
package json

import (
	"fmt"

	"github.com/arnodel/xmlstream/internal/format"
	"github.com/arnodel/xmlstream/token"
)

// An Encoder writes out the JSON values encoded in a token stream,
// using the given Printer instance for formatting and the optional
// Colorizer for terminal colors.
type Encoder struct {
	format.Printer
	*format.Colorizer
}

var _ token.StreamSink = &Encoder{}

// Consume writes out the stream.  It assumes the stream is well-formed,
// i.e. a valid encoding of a sequence of JSON values, and may panic if
// that is not the case.
//
// An error is returned if the Printer could not perform some writing
// operation, a typical example being a write to a closed pipe.
func (e *Encoder) Consume(stream <-chan token.Token) (err error) {
	defer format.CatchPrinterError(&err)
	var st encoderState
	for tok := range stream {
		e.write(&st, tok)
		if len(st.frames) == 0 && !st.afterKey {
			// A top-level value is complete.
			e.Printer.Reset()
		}
	}
	return nil
}

type encoderFrame struct {
	array bool
	items int
}

type encoderState struct {
	frames   []encoderFrame
	afterKey bool
}

func (e *Encoder) write(st *encoderState, tok token.Token) {
	switch v := tok.(type) {
	case *token.Scalar:
		if v.IsKey() {
			e.beginItem(st)
			e.Colorizer.PrintScalar(e.Printer, v)
			e.PrintBytes(keyValueSeparatorBytes)
			st.afterKey = true
			return
		}
		e.beginValue(st)
		e.Colorizer.PrintScalar(e.Printer, v)
	case *token.StartObject:
		e.beginValue(st)
		e.PrintBytes(openObjectBytes)
		st.frames = append(st.frames, encoderFrame{array: false})
	case *token.StartArray:
		e.beginValue(st)
		e.PrintBytes(openArrayBytes)
		st.frames = append(st.frames, encoderFrame{array: true})
	case *token.EndObject:
		e.end(st, false)
	case *token.EndArray:
		e.end(st, true)
	default:
		panic(fmt.Sprintf("invalid stream item: %#v", tok))
	}
}

// beginValue prints the separator a value in the current position
// requires, unless a key was just printed for it.
func (e *Encoder) beginValue(st *encoderState) {
	if st.afterKey {
		st.afterKey = false
		return
	}
	e.beginItem(st)
}

func (e *Encoder) beginItem(st *encoderState) {
	if len(st.frames) == 0 {
		return
	}
	top := &st.frames[len(st.frames)-1]
	if top.items == 0 {
		e.Indent()
	} else {
		e.PrintBytes(itemSeparatorBytes)
		e.NewLine()
	}
	top.items++
}

func (e *Encoder) end(st *encoderState, array bool) {
	if len(st.frames) == 0 {
		panic("end of collection at top level")
	}
	top := st.frames[len(st.frames)-1]
	if top.array != array {
		panic("mismatched start and end of collection")
	}
	st.frames = st.frames[:len(st.frames)-1]
	if top.items > 0 {
		e.Dedent()
	}
	if array {
		e.PrintBytes(closeArrayBytes)
	} else {
		e.PrintBytes(closeObjectBytes)
	}
}

var (
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(": ")
)
