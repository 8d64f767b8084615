package token

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// A Token is an item in a stream that encodes a JSON value under
// construction.  For example, transcoding the XML document
//
//	<person id="123"><json:array json:name="tags">...</json:array></person>
//
// produces a stream of Token values of this shape (in pseudocode):
//
//	{            -> StartObject
//	"id":        -> Scalar("id", String, key)
//	"123",       -> Scalar("123", String)
//	"tags":      -> Scalar("tags", String, key)
//	[            -> StartArray
//	...
//	]            -> EndArray
//	}            -> EndObject
//
// Producing, transforming and consuming a stream of Token values can be
// done concurrently using channels of Token values.
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (emitted as '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (emitted as '}').
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (emitted as '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (emitted as ']').
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Scalar is the type used to represent all scalar JSON values, i.e.
// strings, numbers, booleans and null.  An object key is a Scalar of
// type String with the key flag set.
//
// The type is encoded in the TypeAndFlags field, while the Bytes field
// contains the literal representation of the value as it will appear in
// the output, e.g.
//   - the string "foo" is represented as []byte(`"foo"`)
//   - the number 123.5 is represented as []byte("123.5")
//   - the boolean true is represented as []byte("true")
type Scalar struct {
	Bytes        []byte
	TypeAndFlags uint8
}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func NewKey(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp) | KeyMask,
	}
}

func (s *Scalar) Type() ScalarType {
	return ScalarType(s.TypeAndFlags & TypeMask)
}

func (s *Scalar) IsKey() bool {
	return KeyMask&s.TypeAndFlags != 0
}

func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// ToString returns the Go string a String scalar represents.  It panics
// if the scalar is not a string.
func (s *Scalar) ToString() string {
	if s.Type() != String {
		panic("not a string scalar")
	}
	var str string
	if err := json.Unmarshal(s.Bytes, &str); err != nil {
		panic(err)
	}
	return str
}

var _ Token = &Scalar{}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null               = 0x0 // the type of JSON null
	Boolean            = 0x1 // a JSON boolean
	Number             = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

const (
	TypeMask = 0b011
	KeyMask  = 0b100
)

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)

var (
	TrueScalar  = NewScalar(Boolean, trueBytes)
	FalseScalar = NewScalar(Boolean, falseBytes)
	NullScalar  = NewScalar(Null, nullBytes)
)

// StringScalar returns a scalar holding the JSON encoding of s.
func StringScalar(s string) *Scalar {
	return NewScalar(String, encodeString(s))
}

// KeyScalar returns an object key scalar holding the JSON encoding of s.
func KeyScalar(s string) *Scalar {
	return NewKey(String, encodeString(s))
}

func encodeString(s string) []byte {
	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	// The output is not for HTML, keep '&', '<' and '>' readable.
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		panic(err)
	}
	encodedBytes := b.Bytes()
	// Remove the new line at the end
	return encodedBytes[:len(encodedBytes)-1]
}

// Float64Scalar returns a number scalar for x.  The literal always reads
// back as a floating point value: when the shortest representation of x
// carries no '.' or exponent, a ".0" suffix is added.
func Float64Scalar(x float64) *Scalar {
	repr := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(repr, ".eE") {
		repr += ".0"
	}
	return NewScalar(Number, []byte(repr))
}

func Int64Scalar(n int64) *Scalar {
	return NewScalar(Number, []byte(strconv.FormatInt(n, 10)))
}

func BoolScalar(b bool) *Scalar {
	if b {
		return TrueScalar
	}
	return FalseScalar
}
