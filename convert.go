package xmlstream

import (
	"bufio"
	"io"

	"github.com/arnodel/xmlstream/encoding/json"
	"github.com/arnodel/xmlstream/encoding/xml"
	"github.com/arnodel/xmlstream/internal/format"
	"github.com/arnodel/xmlstream/token"
	"github.com/arnodel/xmlstream/transcode"
)

// Options configures a conversion run by Convert.  The zero value is
// ready to use.
type Options struct {
	// Indent is the number of spaces per indentation level of the JSON
	// output.  Zero means two spaces.
	Indent int

	// Compact outputs the document on a single line.
	Compact bool

	// Namespace overrides the instruction namespace
	// (transcode.DefaultNamespace when empty).
	Namespace string

	// OnDiagnostic receives recoverable anomaly reports.  Diagnostics
	// are discarded when nil.
	OnDiagnostic transcode.DiagnosticFunc
}

// Convert transcodes one XML document read from in and writes the
// resulting JSON text to out.  It returns an error if the input is not
// well-formed XML or if out failed; conversion anomalies only produce
// diagnostics and a best-effort valid JSON document.
func Convert(in io.Reader, out io.Writer, opts Options) error {
	decoder := xml.NewDecoder(in)
	if opts.Namespace != "" {
		decoder.Namespace = opts.Namespace
	}
	decoder.OnDiagnostic = opts.OnDiagnostic

	indent := opts.Indent
	if indent == 0 {
		indent = 2
	}
	if opts.Compact {
		indent = -1
	}
	w := bufio.NewWriter(out)

	var produceErr error
	stream := token.StartStream(decoder, func(err error) {
		produceErr = err
	})
	encoder := &json.Encoder{
		Printer: &format.DefaultPrinter{Writer: w, IndentSize: indent},
	}
	if err := token.ConsumeStream(stream, encoder); err != nil {
		return err
	}
	if produceErr != nil {
		return produceErr
	}
	return w.Flush()
}
