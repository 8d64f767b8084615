package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arnodel/xmlstream/internal/format"
	"github.com/arnodel/xmlstream/token"
)

func encodeTokens(t *testing.T, toks []token.Token, indent int) string {
	t.Helper()
	var buf bytes.Buffer
	encoder := &Encoder{
		Printer: &format.DefaultPrinter{Writer: &buf, IndentSize: indent},
	}
	ch := make(chan token.Token)
	go func() {
		defer close(ch)
		for _, tok := range toks {
			ch <- tok
		}
	}()
	if err := encoder.Consume(ch); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return buf.String()
}

// TestEncoderSimpleValues tests encoding simple scalar values
func TestEncoderSimpleValues(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []token.Token
		expected string
	}{
		{
			name:     "true",
			tokens:   []token.Token{token.TrueScalar},
			expected: "true",
		},
		{
			name:     "null",
			tokens:   []token.Token{token.NullScalar},
			expected: "null",
		},
		{
			name:     "integer",
			tokens:   []token.Token{token.Int64Scalar(42)},
			expected: "42",
		},
		{
			name:     "float",
			tokens:   []token.Token{token.Float64Scalar(4)},
			expected: "4.0",
		},
		{
			name:     "string",
			tokens:   []token.Token{token.StringScalar("hello")},
			expected: `"hello"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := strings.TrimSpace(encodeTokens(t, tt.tokens, 2))
			if output != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, output)
			}
		})
	}
}

// TestEncoderCollections tests array and object encoding with indent
func TestEncoderCollections(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []token.Token
		expected string
	}{
		{
			name: "empty array",
			tokens: []token.Token{
				&token.StartArray{},
				&token.EndArray{},
			},
			expected: "[]",
		},
		{
			name: "empty object",
			tokens: []token.Token{
				&token.StartObject{},
				&token.EndObject{},
			},
			expected: "{}",
		},
		{
			name: "array with one element",
			tokens: []token.Token{
				&token.StartArray{},
				token.Int64Scalar(42),
				&token.EndArray{},
			},
			expected: "[\n  42\n]",
		},
		{
			name: "array with multiple elements",
			tokens: []token.Token{
				&token.StartArray{},
				token.Int64Scalar(1),
				token.Int64Scalar(2),
				token.Int64Scalar(3),
				&token.EndArray{},
			},
			expected: "[\n  1,\n  2,\n  3\n]",
		},
		{
			name: "object with properties",
			tokens: []token.Token{
				&token.StartObject{},
				token.KeyScalar("id"),
				token.Int64Scalar(1),
				token.KeyScalar("name"),
				token.StringScalar("x"),
				&token.EndObject{},
			},
			expected: "{\n  \"id\": 1,\n  \"name\": \"x\"\n}",
		},
		{
			name: "nested collections",
			tokens: []token.Token{
				&token.StartObject{},
				token.KeyScalar("items"),
				&token.StartArray{},
				&token.StartObject{},
				&token.EndObject{},
				&token.EndArray{},
				&token.EndObject{},
			},
			expected: "{\n  \"items\": [\n    {}\n  ]\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := strings.TrimSpace(encodeTokens(t, tt.tokens, 2))
			if output != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, output)
			}
		})
	}
}

// TestEncoderCompact tests single-line output (negative indent)
func TestEncoderCompact(t *testing.T) {
	tokens := []token.Token{
		&token.StartObject{},
		token.KeyScalar("a"),
		token.Int64Scalar(1),
		token.KeyScalar("b"),
		&token.StartArray{},
		token.TrueScalar,
		token.NullScalar,
		&token.EndArray{},
		&token.EndObject{},
	}
	output := strings.TrimSpace(encodeTokens(t, tokens, -1))
	expected := `{"a": 1,"b": [true,null]}`
	if output != expected {
		t.Errorf("expected %q, got %q", expected, output)
	}
}

// TestEncoderColors checks that a colorizer wraps scalars in its codes
func TestEncoderColors(t *testing.T) {
	var buf bytes.Buffer
	encoder := &Encoder{
		Printer: &format.DefaultPrinter{Writer: &buf, IndentSize: -1},
		Colorizer: &format.Colorizer{
			KeyColorCode:     []byte("<k>"),
			ScalarColorCodes: [4][]byte{[]byte("<n>"), []byte("<b>"), []byte("<d>"), []byte("<s>")},
			ResetCode:        []byte("<r>"),
		},
	}
	ch := make(chan token.Token)
	go func() {
		defer close(ch)
		ch <- &token.StartObject{}
		ch <- token.KeyScalar("x")
		ch <- token.TrueScalar
		ch <- &token.EndObject{}
	}()
	if err := encoder.Consume(ch); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := "{<k>\"x\"<r>: <b>true<r>}\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
