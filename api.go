// Package protocomb converts between native Go values and the Protocol
// Buffers binary wire format without code generation: callers hand-assemble
// a codec per field from the combinators in the codec package.
package protocomb

import (
	"github.com/protocomb/protocomb/codec"
)

// Marshal serializes a top-level message from field emitters. The result is
// not length-prefixed; embedded messages built with codec.Message are.
func Marshal(fields ...codec.Field) ([]byte, error) {
	return codec.MarshalMessage(fields...)
}

// Unmarshal decodes protobuf bytes against a hand-assembled message type.
// It is a total function over its input: every malformed buffer maps to an
// error, never a panic, and no partial result is returned.
func Unmarshal[M any](data []byte, mt *codec.MessageType[M]) (M, error) {
	return mt.Decode(data)
}
