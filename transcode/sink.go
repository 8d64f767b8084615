package transcode

import "github.com/arnodel/xmlstream/token"

// A Sink receives the JSON construction events emitted by a Transcoder.
// An empty key means the value is in array or document position; a
// non-empty key means it is an object property.
//
// Close is called exactly once, at the end of the document.
type Sink interface {
	OpenObject(key string)
	OpenArray(key string)
	CloseCurrent()
	WriteString(key, value string)
	WriteInt(key string, n int64)
	WriteFloat(key string, f float64)
	WriteBool(key string, b bool)
	WriteNull(key string)
	Close() error
}

// A TokenSink translates sink calls into a token stream, so that a
// conversion can feed the transform and encoding pipeline.
type TokenSink struct {
	out token.WriteStream

	// true for an open array, false for an open object
	open []bool
}

var _ Sink = &TokenSink{}

func NewTokenSink(out token.WriteStream) *TokenSink {
	return &TokenSink{out: out}
}

func (s *TokenSink) putKey(key string) {
	if key != "" {
		s.out.Put(token.KeyScalar(key))
	}
}

func (s *TokenSink) OpenObject(key string) {
	s.putKey(key)
	s.out.Put(&token.StartObject{})
	s.open = append(s.open, false)
}

func (s *TokenSink) OpenArray(key string) {
	s.putKey(key)
	s.out.Put(&token.StartArray{})
	s.open = append(s.open, true)
}

func (s *TokenSink) CloseCurrent() {
	if len(s.open) == 0 {
		panic("close without an open object or array")
	}
	isArray := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	if isArray {
		s.out.Put(&token.EndArray{})
	} else {
		s.out.Put(&token.EndObject{})
	}
}

func (s *TokenSink) WriteString(key, value string) {
	s.putKey(key)
	s.out.Put(token.StringScalar(value))
}

func (s *TokenSink) WriteInt(key string, n int64) {
	s.putKey(key)
	s.out.Put(token.Int64Scalar(n))
}

func (s *TokenSink) WriteFloat(key string, f float64) {
	s.putKey(key)
	s.out.Put(token.Float64Scalar(f))
}

func (s *TokenSink) WriteBool(key string, b bool) {
	s.putKey(key)
	s.out.Put(token.BoolScalar(b))
}

func (s *TokenSink) WriteNull(key string) {
	s.putKey(key)
	s.out.Put(token.NullScalar)
}

func (s *TokenSink) Close() error {
	return nil
}
