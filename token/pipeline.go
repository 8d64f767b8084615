package token

// A StreamTransformer transforms a token stream into another one.
// Use the TransformStream function to apply it.
type StreamTransformer interface {
	Transform(in <-chan Token, out WriteStream)
}

// A StreamSource produces a token stream, e.g. by transcoding an XML
// document.
type StreamSource interface {
	Produce(chan<- Token) error
}

// A StreamSink consumes a token stream, e.g. by writing it out as JSON
// text.
type StreamSink interface {
	Consume(<-chan Token) error
}

// TransformStream applies the transformer to the incoming token stream,
// returning a new token stream.  This returns immediately because the
// transformer runs in a goroutine.
func TransformStream(in <-chan Token, transformer StreamTransformer) <-chan Token {
	out := make(chan Token)
	w := ChannelWriteStream(out)
	go func() {
		defer close(out)
		transformer.Transform(in, w)
	}()
	return out
}

// StartStream uses the source to start producing tokens and returns the
// stream where they are delivered.  This returns immediately because the
// source runs in a goroutine.
//
// As a source can produce errors, a handleError function can be provided.
func StartStream(source StreamSource, handleError func(error)) <-chan Token {
	out := make(chan Token)
	go func() {
		defer close(out)
		err := source.Produce(out)
		if err != nil && handleError != nil {
			handleError(err)
		}
	}()
	return out
}

// ConsumeStream drains the incoming stream into the sink.
func ConsumeStream(in <-chan Token, sink StreamSink) error {
	return sink.Consume(in)
}
