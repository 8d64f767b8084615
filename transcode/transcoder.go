package transcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultNamespace is the instruction namespace the Transcoder consumes
// unless configured otherwise.  Elements and attributes in this
// namespace direct the conversion and are never serialized as data.
const DefaultNamespace = "http://pageseeder.org/JSON"

// Namespaces whose attributes are never serialized as properties.
const (
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNamespace = "http://www.w3.org/2000/xmlns/"
)

var (
	// ErrNoDocument is returned when an event arrives before
	// StartDocument: the event source violated its contract.
	ErrNoDocument = errors.New("no document started")

	// ErrUnbalanced is returned when element starts and ends do not
	// match up, which cannot happen for a well-formed event sequence.
	ErrUnbalanced = errors.New("unbalanced element start and end events")
)

// A Transcoder converts one document's worth of element events into
// JSON construction events on a Sink.  It is single use and single
// threaded: one instance per document conversion.
//
// The expected event sequence is StartDocument, then a balanced series
// of StartElement / Characters / EndElement, then EndDocument.  Any
// recoverable anomaly in the element stream is reported through the
// diagnostic callback and recovered with a fallback that keeps the
// output valid JSON; only contract violations in the event sequence
// itself produce errors.
type Transcoder struct {
	sink    Sink
	stack   *Stack
	ns      string
	onDiag  DiagnosticFunc
	locate  func() int64
	buf     strings.Builder
	started bool
}

// An Option configures a Transcoder.
type Option func(*Transcoder)

// WithNamespace overrides the instruction namespace.
func WithNamespace(ns string) Option {
	return func(t *Transcoder) {
		t.ns = ns
	}
}

// WithDiagnosticFunc installs the callback receiving recoverable
// anomaly reports.  Without it diagnostics are discarded.
func WithDiagnosticFunc(fn DiagnosticFunc) Option {
	return func(t *Transcoder) {
		t.onDiag = fn
	}
}

// WithLocator installs a function reporting the current input byte
// offset, used to locate diagnostics.
func WithLocator(fn func() int64) Option {
	return func(t *Transcoder) {
		t.locate = fn
	}
}

// New returns a Transcoder emitting to sink.
func New(sink Sink, opts ...Option) *Transcoder {
	t := &Transcoder{
		sink: sink,
		ns:   DefaultNamespace,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.stack = NewStack(t.ns)
	return t
}

func (t *Transcoder) diagf(msg string, args ...any) {
	if t.onDiag == nil {
		return
	}
	offset := int64(-1)
	if t.locate != nil {
		offset = t.locate()
	}
	t.onDiag(Diagnostic{Message: fmt.Sprintf(msg, args...), Offset: offset})
}

// StartDocument installs the synthetic root frame.  No sink output.
func (t *Transcoder) StartDocument() error {
	if t.started {
		return ErrUnbalanced
	}
	t.stack.PushRoot()
	t.started = true
	return nil
}

// EndDocument pops the synthetic root and closes the sink.
func (t *Transcoder) EndDocument() error {
	if !t.started {
		return ErrNoDocument
	}
	if t.stack.Depth() != 1 {
		return ErrUnbalanced
	}
	t.stack.frames = t.stack.frames[:0]
	t.started = false
	return t.sink.Close()
}

// StartElement processes an element-start event.  attrs must be in
// document order, as it determines property emission order.
func (t *Transcoder) StartElement(space, local string, attrs []Attr) error {
	if !t.started {
		return ErrNoDocument
	}
	// Sticky suppression: nothing under an explicit null is serialized.
	if t.stack.Is(ContextNull) {
		t.diagf("ignoring element %s in null context", local)
		return t.stack.Push(ContextNull, attrs, t.stack.Name())
	}
	if space == t.ns {
		return t.startInstruction(local, attrs)
	}
	return t.startElement(local, attrs)
}

// startInstruction handles the array, object and null elements of the
// instruction namespace.
func (t *Transcoder) startInstruction(local string, attrs []Attr) error {
	name := attrValue(attrs, t.ns, "name")
	if name == "" && t.stack.Is(ContextObject) {
		t.diagf("missing name attribute on %s in object context, using element name", local)
		name = local
	}
	switch local {
	case "array":
		if t.stack.Is(ContextObject) {
			t.sink.OpenArray(name)
		} else {
			t.sink.OpenArray("")
		}
		return t.stack.Push(ContextArray, attrs, name)

	case "object":
		if t.stack.Is(ContextObject) {
			t.sink.OpenObject(name)
		} else {
			t.sink.OpenObject("")
		}
		if err := t.stack.Push(ContextObject, attrs, name); err != nil {
			return err
		}
		t.writeAttributes(attrs)
		return nil

	case "null":
		switch {
		case t.stack.Is(ContextRoot):
			// A bare null document is not acceptable output, substitute
			// an empty object.
			t.diagf("null is not allowed as document root, writing an empty object")
			t.sink.OpenObject("")
			t.sink.CloseCurrent()
		case t.stack.Is(ContextObject):
			t.sink.WriteNull(name)
		default:
			t.sink.WriteNull("")
		}
		return t.stack.Push(ContextNull, attrs, name)

	default:
		t.diagf("unknown instruction element %s", local)
		return t.stack.Push(ContextObject, attrs, name)
	}
}

// startElement handles an ordinary element: either it was declared a
// scalar property by its parent, or it opens a JSON object.
func (t *Transcoder) startElement(local string, attrs []Attr) error {
	name := attrValue(attrs, t.ns, "name")

	if typ := t.stack.TypeOf(local); typ != TypeDefault {
		if hasProperties(attrs, t.ns) {
			t.diagf("element %s is declared as a value but carries attributes", local)
		}
		if name == "" {
			name = local
		}
		// The value is unknown until the element ends: accumulate text.
		t.buf.Reset()
		return t.stack.PushValue(attrs, name, typ)
	}

	if t.stack.Is(ContextObject) {
		if name == "" {
			name = local
		}
		t.sink.OpenObject(name)
	} else {
		if name != "" {
			t.diagf("name attribute on %s is ignored in array or document position", local)
		}
		t.sink.OpenObject("")
	}
	if err := t.stack.Push(ContextObject, attrs, name); err != nil {
		return err
	}
	t.writeAttributes(attrs)
	return nil
}

// writeAttributes serializes the element's attributes as properties of
// the object that was just opened, in document order.  Types are
// resolved against the element's own type table, so the corresponding
// frame must already be pushed.
func (t *Transcoder) writeAttributes(attrs []Attr) {
	for _, a := range attrs {
		if !isProperty(a, t.ns) {
			continue
		}
		t.writeScalar(a.Local, a.Value, t.stack.TypeOf(a.Local))
	}
}

// Characters accumulates text while a scalar property is open.  Text in
// any other position carries no JSON meaning and is discarded.
func (t *Transcoder) Characters(text string) error {
	if !t.started {
		return ErrNoDocument
	}
	if t.stack.Is(ContextValue) {
		t.buf.WriteString(text)
	}
	return nil
}

// EndElement processes an element-end event.
func (t *Transcoder) EndElement(space, local string) error {
	if !t.started {
		return ErrNoDocument
	}
	was, err := t.stack.Pop()
	if err != nil {
		return err
	}
	switch {
	case was.Context == ContextNull:
		// Suppressed subtree, the null itself was written at the start.
	case space == t.ns:
		if local == "array" || local == "object" {
			t.sink.CloseCurrent()
		}
		// Closing an unknown instruction element is a no-op, matching
		// its inert open.
	case was.Context == ContextValue:
		key := ""
		if t.stack.Is(ContextObject) {
			key = was.Name
		}
		t.writeScalar(key, t.buf.String(), was.Type)
		t.buf.Reset()
	default:
		t.sink.CloseCurrent()
	}
	return nil
}

// writeScalar coerces text to the declared type and writes it, falling
// back to a string with a diagnostic when the text does not parse.  An
// empty key means array or document position.
func (t *Transcoder) writeScalar(key, text string, typ ScalarType) {
	switch typ {
	case TypeNumber:
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				t.diagf("cannot convert %q to a number", text)
				t.sink.WriteString(key, text)
				return
			}
			t.sink.WriteFloat(key, f)
		} else {
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				t.diagf("cannot convert %q to a number", text)
				t.sink.WriteString(key, text)
				return
			}
			t.sink.WriteInt(key, n)
		}
	case TypeBoolean:
		switch text {
		case "true":
			t.sink.WriteBool(key, true)
		case "false":
			t.sink.WriteBool(key, false)
		default:
			t.diagf("cannot convert %q to a boolean", text)
			t.sink.WriteString(key, text)
		}
	case TypeNull:
		// Any text content is discarded.
		t.sink.WriteNull(key)
	default:
		t.sink.WriteString(key, text)
	}
}

// attrValue returns the value of the (space, local) attribute, or "".
func attrValue(attrs []Attr, space, local string) string {
	for _, a := range attrs {
		if a.Space == space && a.Local == local {
			return a.Value
		}
	}
	return ""
}

// isProperty reports whether the attribute should be serialized as a
// property: instruction attributes, xml:* attributes and namespace
// declarations are not data.
func isProperty(a Attr, ns string) bool {
	switch a.Space {
	case ns, "xml", "xmlns", xmlNamespace, xmlnsNamespace:
		return false
	}
	return a.Local != "xmlns"
}

// hasProperties reports whether at least one attribute would be
// serialized as a property.
func hasProperties(attrs []Attr, ns string) bool {
	for _, a := range attrs {
		if isProperty(a, ns) {
			return true
		}
	}
	return false
}
