package transcode

import "fmt"

// A Diagnostic reports a recoverable anomaly met during a conversion,
// e.g. an unknown instruction element or a value that could not be
// coerced to its declared type.  The conversion always continues after a
// diagnostic, falling back to output that keeps the document valid JSON.
type Diagnostic struct {
	Message string

	// Byte offset in the input where the anomaly was found, or -1 when
	// the event source provides no location information.
	Offset int64
}

func (d Diagnostic) String() string {
	if d.Offset < 0 {
		return d.Message
	}
	return fmt.Sprintf("%s (at byte %d)", d.Message, d.Offset)
}

// A DiagnosticFunc receives diagnostics as they are emitted.
type DiagnosticFunc func(Diagnostic)
