package transform

import (
	"log"

	"github.com/arnodel/xmlstream/token"
)

// Trace logs all the stream items and doesn't send any items on.
// It's useful for debugging streams.
type Trace struct{}

// Transform implements the Trace transform.
func (t Trace) Transform(in <-chan token.Token, out token.WriteStream) {
	for item := range in {
		log.Printf("%s", item)
	}
}
