package xml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arnodel/xmlstream/encoding/json"
	"github.com/arnodel/xmlstream/internal/format"
	"github.com/arnodel/xmlstream/token"
	"github.com/arnodel/xmlstream/transcode"
)

const testNS = `xmlns:json="http://pageseeder.org/JSON"`

// convertString runs the whole decode-transcode-encode pipeline on one
// XML document and returns the single-line JSON output along with the
// diagnostics reported.
func convertString(t *testing.T, src string) (string, []transcode.Diagnostic) {
	t.Helper()
	decoder := NewDecoder(strings.NewReader(src))
	var diags []transcode.Diagnostic
	decoder.OnDiagnostic = func(d transcode.Diagnostic) {
		diags = append(diags, d)
	}
	stream := token.StartStream(decoder, func(err error) {
		t.Errorf("unexpected decode error: %s", err)
	})
	var buf bytes.Buffer
	encoder := &json.Encoder{
		Printer: &format.DefaultPrinter{Writer: &buf, IndentSize: -1},
	}
	if err := token.ConsumeStream(stream, encoder); err != nil {
		t.Fatalf("unexpected encode error: %s", err)
	}
	return strings.TrimSpace(buf.String()), diags
}

func TestConvertDocuments(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		expected  string
		diagCount int
	}{
		{
			name:     "empty element inside object",
			src:      `<root><x/></root>`,
			expected: `{"x": {}}`,
		},
		{
			name:     "attribute coercion",
			src:      `<p ` + testNS + ` json:number="n" json:boolean="b" n="3.5" b="true" s="x"/>`,
			expected: `{"n": 3.5,"b": true,"s": "x"}`,
		},
		{
			name:     "declared integer child",
			src:      `<r ` + testNS + ` json:number="count"><count>42</count></r>`,
			expected: `{"count": 42}`,
		},
		{
			name:     "declared float child keeps decimal point",
			src:      `<r ` + testNS + ` json:number="count"><count>4.0</count></r>`,
			expected: `{"count": 4.0}`,
		},
		{
			name: "boolean fallback keeps converting siblings",
			src: `<r ` + testNS + ` json:boolean="flag ok">` +
				`<flag>maybe</flag><ok>true</ok></r>`,
			expected:  `{"flag": "maybe","ok": true}`,
			diagCount: 1,
		},
		{
			name: "explicit null suppresses descendants",
			src: `<r ` + testNS + `><json:null json:name="nothing">` +
				`<a><b>text</b></a></json:null></r>`,
			expected:  `{"nothing": null}`,
			diagCount: 2,
		},
		{
			name:      "root null becomes empty object",
			src:       `<json:null ` + testNS + `/>`,
			expected:  `{}`,
			diagCount: 1,
		},
		{
			name: "explicit array of objects",
			src: `<json:array ` + testNS + `>` +
				`<item id="1"/><item id="2"/></json:array>`,
			expected: `[{"id": "1"},{"id": "2"}]`,
		},
		{
			name:     "named array inside object",
			src:      `<r ` + testNS + `><json:array json:name="tags"/></r>`,
			expected: `{"tags": []}`,
		},
		{
			name:     "name attribute overrides key",
			src:      `<r ` + testNS + `><x json:name="renamed"/></r>`,
			expected: `{"renamed": {}}`,
		},
		{
			name:     "whitespace between elements is ignored",
			src:      "<root>\n  <x/>\n  <y/>\n</root>",
			expected: `{"x": {},"y": {}}`,
		},
		{
			name: "declared string child accumulates text",
			src: `<r ` + testNS + ` json:string="title">` +
				`<title>Hello <![CDATA[& welcome]]></title></r>`,
			expected: `{"title": "Hello & welcome"}`,
		},
		{
			name:      "unknown instruction element is inert",
			src:       `<r ` + testNS + `><json:frob/></r>`,
			expected:  `{}`,
			diagCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, diags := convertString(t, tt.src)
			if output != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, output)
			}
			if len(diags) != tt.diagCount {
				t.Errorf("expected %d diagnostics, got %d: %v", tt.diagCount, len(diags), diags)
			}
		})
	}
}

func TestConvertIsRepeatable(t *testing.T) {
	src := `<r ` + testNS + ` json:number="n" id="x1">` +
		`<n>12</n><json:array json:name="tags"><t/></json:array></r>`
	first, _ := convertString(t, src)
	second, _ := convertString(t, src)
	if first != second {
		t.Errorf("two conversions of the same input differ:\n%s\n%s", first, second)
	}
}

func TestDiagnosticsCarryOffsets(t *testing.T) {
	src := `<r ` + testNS + ` json:boolean="flag"><flag>maybe</flag></r>`
	_, diags := convertString(t, src)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Offset <= 0 {
		t.Errorf("expected a positive byte offset, got %d", diags[0].Offset)
	}
}

func TestMalformedInputFails(t *testing.T) {
	decoder := NewDecoder(strings.NewReader(`<a><b></a>`))
	var produceErr error
	stream := token.StartStream(decoder, func(err error) {
		produceErr = err
	})
	for range stream {
	}
	if produceErr == nil {
		t.Error("expected an error for malformed XML")
	}
}

func TestCustomNamespace(t *testing.T) {
	decoder := NewDecoder(strings.NewReader(
		`<c:array xmlns:c="urn:custom"><x/></c:array>`))
	decoder.Namespace = "urn:custom"
	stream := token.StartStream(decoder, func(err error) {
		t.Errorf("unexpected error: %s", err)
	})
	var buf bytes.Buffer
	encoder := &json.Encoder{
		Printer: &format.DefaultPrinter{Writer: &buf, IndentSize: -1},
	}
	if err := token.ConsumeStream(stream, encoder); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := `[{}]`
	if got := strings.TrimSpace(buf.String()); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}
