package token

// A ReadStream is a source of tokens that can be read one at a time.
type ReadStream interface {
	Next() Token
}

// A WriteStream is a destination tokens can be sent to one at a time.
type WriteStream interface {
	Put(Token)
}

// ChannelReadStream adapts a token channel into a ReadStream.
type ChannelReadStream <-chan Token

var _ ReadStream = make(ChannelReadStream)

func (r ChannelReadStream) Next() Token {
	return <-r
}

// ChannelWriteStream adapts a token channel into a WriteStream.
type ChannelWriteStream chan<- Token

var _ WriteStream = make(ChannelWriteStream)

func (w ChannelWriteStream) Put(tok Token) {
	w <- tok
}

// SliceReadStream reads tokens from a slice, returning nil once it is
// exhausted.  Useful for testing consumers.
type SliceReadStream struct {
	toks []Token
}

var _ ReadStream = &SliceReadStream{}

func NewSliceReadStream(toks []Token) *SliceReadStream {
	return &SliceReadStream{toks: toks}
}

func (r *SliceReadStream) Next() (tok Token) {
	if len(r.toks) > 0 {
		tok = r.toks[0]
		r.toks = r.toks[1:]
	}
	return
}

// AccumulatorStream collects all tokens written to it.  Useful for
// testing producers.
type AccumulatorStream struct {
	toks []Token
}

var _ WriteStream = &AccumulatorStream{}

func NewAccumulatorStream() *AccumulatorStream {
	return &AccumulatorStream{}
}

func (w *AccumulatorStream) Put(tok Token) {
	w.toks = append(w.toks, tok)
}

func (w *AccumulatorStream) GetTokens() []Token {
	return w.toks
}
