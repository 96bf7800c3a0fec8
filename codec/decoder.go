package codec

import (
	"fmt"

	"github.com/protocomb/protocomb/wire"
)

// Decoder decodes a single value of type T from the wire. Every decoder
// accepts exactly one wire type; a field encoded under any other wire type
// is a hard decode failure, never a fallback to the default (mismatch is
// not absence).
type Decoder[T any] struct {
	wireType wire.WireType
	read     func(r *wire.Reader) (T, error)
}

// NewDecoder builds a decoder from a wire type and a read function. The
// scalar constructors in this package cover the protobuf primitive types;
// NewDecoder is the escape hatch for custom value decoders.
func NewDecoder[T any](wireType wire.WireType, read func(r *wire.Reader) (T, error)) Decoder[T] {
	return Decoder[T]{wireType: wireType, read: read}
}

// WireType returns the single wire type this decoder accepts.
func (d Decoder[T]) WireType() wire.WireType {
	return d.wireType
}

// Decode reads one value, after checking the wire type the field was
// actually encoded under.
func (d Decoder[T]) Decode(r *wire.Reader, wireType wire.WireType) (T, error) {
	var zero T
	if wireType == wire.WireStartGroup || wireType == wire.WireEndGroup {
		return zero, wire.ErrGroupNotSupported
	}
	if wireType != d.wireType {
		return zero, fmt.Errorf("%w: encoded as %s, decoder expects %s", ErrWireTypeMismatch, wireType, d.wireType)
	}
	return d.read(r)
}

// Map transforms the result of a decoder with f.
func Map[A, B any](d Decoder[A], f func(A) B) Decoder[B] {
	return Decoder[B]{
		wireType: d.wireType,
		read: func(r *wire.Reader) (B, error) {
			a, err := d.read(r)
			if err != nil {
				var zero B
				return zero, err
			}
			return f(a), nil
		},
	}
}

// Embedded returns a decoder for a nested message: a length-delimited
// region decoded with its own byte budget.
func Embedded[M any](mt *MessageType[M]) Decoder[M] {
	return Decoder[M]{
		wireType: wire.WireBytes,
		read: func(r *wire.Reader) (M, error) {
			data, err := r.ReadRawBytes()
			if err != nil {
				var zero M
				return zero, err
			}
			return mt.Decode(data)
		},
	}
}

// Lazy returns a decoder for a recursive message type. Construction of the
// message decoder is deferred until a concrete byte region is decoded, which
// breaks the self-reference cycle that an eager Embedded call would hit.
func Lazy[M any](build func() *MessageType[M]) Decoder[M] {
	return Decoder[M]{
		wireType: wire.WireBytes,
		read: func(r *wire.Reader) (M, error) {
			data, err := r.ReadRawBytes()
			if err != nil {
				var zero M
				return zero, err
			}
			return build().Decode(data)
		},
	}
}
