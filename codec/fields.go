package codec

import (
	"fmt"

	"github.com/protocomb/protocomb/wire"
)

// Builder combinators. These are free generic functions rather than methods
// because Go methods cannot introduce type parameters; each call registers a
// handler on the message type and returns it for chaining:
//
//	mt := codec.NewMessage[Person]()
//	codec.Required(mt, 1, codec.String(), func(p *Person, v string) { p.Name = v })
//	codec.Optional(mt, 2, codec.Int32(), 0, func(p *Person, v int32) { p.Age = v })

func scalarHandler[M, T any](dec Decoder[T], set func(*M, T)) fieldHandler[M] {
	return func(r *wire.Reader, wireType wire.WireType, m *M) error {
		v, err := dec.Decode(r, wireType)
		if err != nil {
			return err
		}
		set(m, v)
		return nil
	}
}

// Required registers a field that must occur at least once; decoding a
// message that never carries it fails with ErrMissingRequiredField.
func Required[M, T any](mt *MessageType[M], number wire.FieldNumber, dec Decoder[T], set func(*M, T)) *MessageType[M] {
	mt.register(number, scalarHandler(dec, set))
	mt.required = append(mt.required, number)
	return mt
}

// Optional registers a field that may be absent. def is applied to the
// fresh accumulator before decoding starts, so absence yields the default.
// A wire-type mismatch is still a hard failure: mismatch is not absence.
func Optional[M, T any](mt *MessageType[M], number wire.FieldNumber, dec Decoder[T], def T, set func(*M, T)) *MessageType[M] {
	mt.register(number, scalarHandler(dec, set))
	mt.defaults = append(mt.defaults, func(m *M) { set(m, def) })
	return mt
}

// Repeated registers a field that accumulates every occurrence. A
// non-length-delimited element type arriving under the bytes wire type is
// read in packed form: homogeneous values are decoded until the declared
// width is exhausted. Packed and expanded occurrences may be mixed on the
// wire and accumulate in order.
func Repeated[M, T any](mt *MessageType[M], number wire.FieldNumber, dec Decoder[T], add func(*M, T)) *MessageType[M] {
	mt.register(number, func(r *wire.Reader, wireType wire.WireType, m *M) error {
		if dec.wireType != wire.WireBytes && wireType == wire.WireBytes {
			packed, err := r.ReadRawBytes()
			if err != nil {
				return err
			}
			sub := wire.NewReader(packed)
			for !sub.Done() {
				v, err := dec.read(sub)
				if err != nil {
					return err
				}
				add(m, v)
			}
			return nil
		}

		v, err := dec.Decode(r, wireType)
		if err != nil {
			return err
		}
		add(m, v)
		return nil
	})
	return mt
}

// Mapped registers a map field: each occurrence is one key=1/value=2 entry
// sub-message. Entries fold through put in wire order, so a duplicate key
// keeps its last value. A missing key or value in an entry yields the zero
// value, matching proto3 default omission inside map entries.
func Mapped[M any, K comparable, V any](mt *MessageType[M], number wire.FieldNumber, keyDec Decoder[K], valDec Decoder[V], put func(*M, K, V)) *MessageType[M] {
	mt.register(number, func(r *wire.Reader, wireType wire.WireType, m *M) error {
		if wireType != wire.WireBytes {
			return fmt.Errorf("%w: map entry encoded as %s, expected %s", ErrWireTypeMismatch, wireType, wire.WireBytes)
		}

		entry, err := r.ReadRawBytes()
		if err != nil {
			return err
		}

		var k K
		var v V
		sub := wire.NewReader(entry)
		for !sub.Done() {
			entryNumber, entryType, err := sub.ReadTag()
			if err != nil {
				return err
			}
			switch entryNumber {
			case mapKeyNumber:
				k, err = keyDec.Decode(sub, entryType)
			case mapValueNumber:
				v, err = valDec.Decode(sub, entryType)
			default:
				err = sub.Skip(entryType)
			}
			if err != nil {
				return wrapWithField(err, entryNumber)
			}
		}

		put(m, k, v)
		return nil
	})
	return mt
}

// Alternative is one branch of a oneof group.
type Alternative[M any] struct {
	number  wire.FieldNumber
	handler fieldHandler[M]
}

// When builds a oneof branch: if number occurs on the wire, its value is
// decoded and folded through set.
func When[M, T any](number wire.FieldNumber, dec Decoder[T], set func(*M, T)) Alternative[M] {
	return Alternative[M]{number: number, handler: scalarHandler(dec, set)}
}

// OneOf registers a group of mutually exclusive fields. Each branch gets its
// own dispatch entry, so when several branches occur on the wire the last
// one encountered wins, the same fold order that resolves duplicate scalars.
// When none occur the accumulator keeps whatever the set functions never
// touched.
func OneOf[M any](mt *MessageType[M], alternatives ...Alternative[M]) *MessageType[M] {
	for _, alt := range alternatives {
		mt.register(alt.number, alt.handler)
	}
	return mt
}

// Unknown registers a sink for fields with no registered decoder. Without a
// sink unknown fields are skipped and lost on re-encode; with one, the raw
// chunks can be carried through the accumulator and re-emitted byte-for-byte
// with Raw.
func Unknown[M any](mt *MessageType[M], sink func(*M, wire.RawField)) *MessageType[M] {
	if mt.unknown != nil {
		panic("codec: unknown-field sink registered twice")
	}
	mt.unknown = sink
	return mt
}
