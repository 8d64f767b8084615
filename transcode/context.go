package transcode

import "strings"

// Context is the JSON role of a currently open XML element.
type Context uint8

const (
	// ContextRoot means nothing is open yet: the top of the document.
	ContextRoot Context = iota
	// ContextObject means a JSON object is open.
	ContextObject
	// ContextArray means a JSON array is open.
	ContextArray
	// ContextValue means the element is a scalar property accumulating
	// its text content.
	ContextValue
	// ContextNull means the element is an explicit null and all its
	// descendants are suppressed.
	ContextNull
)

func (c Context) String() string {
	switch c {
	case ContextRoot:
		return "root"
	case ContextObject:
		return "object"
	case ContextArray:
		return "array"
	case ContextValue:
		return "value"
	case ContextNull:
		return "null"
	}
	return "invalid"
}

// ScalarType is the declared interpretation of an element's text content
// or an attribute's value.
type ScalarType uint8

const (
	// TypeDefault means no declaration: an element becomes an object, an
	// attribute a plain string.
	TypeDefault ScalarType = iota
	TypeString
	TypeNumber
	TypeBoolean
	TypeNull
)

func (t ScalarType) String() string {
	switch t {
	case TypeDefault:
		return "default"
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeNull:
		return "null"
	}
	return "invalid"
}

// An Attr is one attribute of an element-start event, with its namespace
// resolved.
type Attr struct {
	Space string
	Local string
	Value string
}

// typeLists maps the four type-declaration attribute names to the type
// they declare, in increasing priority order.  A local name appearing in
// several lists resolves to the highest priority type:
// boolean > number > string > null.
var typeLists = []struct {
	local string
	typ   ScalarType
}{
	{"null", TypeNull},
	{"string", TypeString},
	{"number", TypeNumber},
	{"boolean", TypeBoolean},
}

// buildTypeTable reads the four space-separated type-declaration
// attributes in the instruction namespace ns and returns the resulting
// local name to type mapping.  Returns nil when no declaration is
// present, which TypeOf treats as an empty table.
func buildTypeTable(attrs []Attr, ns string) map[string]ScalarType {
	var table map[string]ScalarType
	for _, list := range typeLists {
		for _, a := range attrs {
			if a.Space != ns || a.Local != list.local {
				continue
			}
			for _, name := range strings.Fields(a.Value) {
				if table == nil {
					table = make(map[string]ScalarType)
				}
				table[name] = list.typ
			}
		}
	}
	return table
}

// A Frame is one stack entry representing one currently open XML
// element: its JSON role, the key to serialize it under when the parent
// is an object, the type declarations made by its attributes, and (for
// value frames) the scalar type it resolved to.
type Frame struct {
	Context Context
	Name    string
	Type    ScalarType
	types   map[string]ScalarType
}

// A Stack tracks the JSON role of every currently open XML element.  It
// is owned by a single Transcoder for the duration of one document
// conversion.  A synthetic root frame installed by PushRoot sits below
// the document element.
type Stack struct {
	ns     string
	frames []Frame
}

// NewStack returns an empty stack resolving type declarations from the
// instruction namespace ns.
func NewStack(ns string) *Stack {
	return &Stack{ns: ns}
}

// PushRoot installs the synthetic root frame.  It is called once, before
// any element.
func (s *Stack) PushRoot() {
	s.frames = append(s.frames, Frame{Context: ContextRoot})
}

// Push adds a frame for an element that just started, building its type
// table from the type-declaration attributes present on attrs.  It
// returns ErrNoDocument if PushRoot was not called first.
func (s *Stack) Push(ctx Context, attrs []Attr, name string) error {
	return s.push(ctx, attrs, name, TypeDefault)
}

// PushValue adds a frame for an element reclassified as a scalar
// property of the given type.
func (s *Stack) PushValue(attrs []Attr, name string, typ ScalarType) error {
	return s.push(ContextValue, attrs, name, typ)
}

func (s *Stack) push(ctx Context, attrs []Attr, name string, typ ScalarType) error {
	if len(s.frames) == 0 {
		return ErrNoDocument
	}
	s.frames = append(s.frames, Frame{
		Context: ctx,
		Name:    name,
		Type:    typ,
		types:   buildTypeTable(attrs, s.ns),
	})
	return nil
}

// Pop removes and returns the top frame.  It returns ErrUnbalanced if
// only the synthetic root remains, which means the event source
// delivered an element end without a matching start.
func (s *Stack) Pop() (Frame, error) {
	if len(s.frames) <= 1 {
		return Frame{}, ErrUnbalanced
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

// Context returns the top frame's context, or ContextRoot on an empty
// stack.
func (s *Stack) Context() Context {
	if len(s.frames) == 0 {
		return ContextRoot
	}
	return s.frames[len(s.frames)-1].Context
}

// Name returns the top frame's serialization key ("" means none).
func (s *Stack) Name() string {
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1].Name
}

// Is reports whether the top frame's context is c.
func (s *Stack) Is(c Context) bool {
	return s.Context() == c
}

// TypeOf resolves local in the top frame's type table.  Declarations are
// not inherited: each frame's table governs only that element's
// immediate attributes and children.
func (s *Stack) TypeOf(local string) ScalarType {
	if len(s.frames) == 0 {
		return TypeDefault
	}
	return s.frames[len(s.frames)-1].types[local]
}

// Depth returns the number of frames, including the synthetic root.
func (s *Stack) Depth() int {
	return len(s.frames)
}
