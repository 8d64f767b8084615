// Package transform provides built-in token stream transformers.
package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/arnodel/xmlstream/token"
)

// KeyCase is a Transformer that rewrites all object keys to a given
// case style.  Values, including strings, pass through unchanged.
//
// E.g. with snake case:
//
//	{"firstName": "Ann", "home-address": {...}}
//
// becomes
//
//	{"first_name": "Ann", "home_address": {...}}
type KeyCase struct {
	Convert func(string) string
}

// NewKeyCase returns a KeyCase for one of the styles "snake", "camel",
// "pascal" or "kebab".
func NewKeyCase(style string) (*KeyCase, error) {
	var convert func(string) string
	switch style {
	case "snake":
		convert = strcase.ToSnake
	case "camel":
		convert = strcase.ToLowerCamel
	case "pascal":
		convert = strcase.ToCamel
	case "kebab":
		convert = strcase.ToKebab
	default:
		return nil, fmt.Errorf("unknown key case style: %q", style)
	}
	return &KeyCase{Convert: convert}, nil
}

// Transform implements the KeyCase transform.
func (k *KeyCase) Transform(in <-chan token.Token, out token.WriteStream) {
	for item := range in {
		if scalar, ok := item.(*token.Scalar); ok && scalar.IsKey() {
			out.Put(token.KeyScalar(k.Convert(scalar.ToString())))
			continue
		}
		out.Put(item)
	}
}
