// Package xml adapts an XML document into a token stream by feeding the
// stdlib XML tokenizer into a transcoder.
package xml

import (
	stdxml "encoding/xml"
	"io"

	"github.com/arnodel/xmlstream/token"
	"github.com/arnodel/xmlstream/transcode"
)

// A Decoder reads one XML document and streams the JSON value it
// transcodes to.
type Decoder struct {
	dec *stdxml.Decoder

	// Namespace is the instruction namespace consumed by the conversion.
	// Defaults to transcode.DefaultNamespace.
	Namespace string

	// OnDiagnostic receives recoverable anomaly reports with input byte
	// offsets.  Diagnostics are discarded when nil.
	OnDiagnostic transcode.DiagnosticFunc
}

var _ token.StreamSource = &Decoder{}

// NewDecoder sets up a new Decoder instance to read from the given
// input.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{
		dec:       stdxml.NewDecoder(in),
		Namespace: transcode.DefaultNamespace,
	}
}

// Produce transcodes the input document into the out stream.  It
// returns an error if the input is not well-formed XML; anomalies in
// the conversion itself only produce diagnostics.
func (d *Decoder) Produce(out chan<- token.Token) error {
	opts := []transcode.Option{
		transcode.WithNamespace(d.Namespace),
		transcode.WithLocator(d.dec.InputOffset),
	}
	if d.OnDiagnostic != nil {
		opts = append(opts, transcode.WithDiagnosticFunc(d.OnDiagnostic))
	}
	t := transcode.New(transcode.NewTokenSink(token.ChannelWriteStream(out)), opts...)

	if err := t.StartDocument(); err != nil {
		return err
	}
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return t.EndDocument()
		}
		if err != nil {
			return err
		}
		switch x := tok.(type) {
		case stdxml.StartElement:
			attrs := make([]transcode.Attr, len(x.Attr))
			for i, a := range x.Attr {
				attrs[i] = transcode.Attr{
					Space: a.Name.Space,
					Local: a.Name.Local,
					Value: a.Value,
				}
			}
			err = t.StartElement(x.Name.Space, x.Name.Local, attrs)
		case stdxml.EndElement:
			err = t.EndElement(x.Name.Space, x.Name.Local)
		case stdxml.CharData:
			err = t.Characters(string(x))
		default:
			// Comments, directives and processing instructions have no
			// JSON meaning.
		}
		if err != nil {
			return err
		}
	}
}
