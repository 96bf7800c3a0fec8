package codec

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/protocomb/protocomb/wire"
)

// Encoder is a single wire value: it knows its wire type, its payload size
// (needed before the bytes are written, because a length prefix precedes a
// length-delimited payload) and how to append itself to a writer. The zero
// Encoder is the empty encoder: it contributes no bytes and its field is
// skipped entirely, which is how optional-absent, elided-default and missing
// oneof branches stay off the wire.
type Encoder struct {
	wireType wire.WireType
	size     int
	write    func(w *wire.Writer)
	err      error
}

// WireType returns the wire type the encoder produces.
func (e Encoder) WireType() wire.WireType {
	return e.wireType
}

// Size returns the payload size in bytes, excluding tag and length prefix.
func (e Encoder) Size() int {
	return e.size
}

// IsEmpty reports whether the encoder contributes no bytes at all.
func (e Encoder) IsEmpty() bool {
	return e.write == nil
}

// Empty returns the encoder for an absent value.
func Empty() Encoder {
	return Encoder{}
}

// OmitDefault elides v from the output when it equals def, implementing
// proto3 default-value omission for scalar fields.
func OmitDefault[T comparable](v, def T, enc func(T) Encoder) Encoder {
	if v == def {
		return Empty()
	}
	return enc(v)
}

// Field is the unit the message assembler works with: zero or more
// tag+payload pairs for one field number.
type Field struct {
	number wire.FieldNumber
	size   int
	write  func(w *wire.Writer)
	err    error
}

func errField(number wire.FieldNumber, err error) Field {
	return Field{number: number, err: fmt.Errorf("field %d: %w", number, err)}
}

// NewField emits one tag+payload pair, or nothing when the encoder is empty.
func NewField(number wire.FieldNumber, enc Encoder) Field {
	if err := wire.CheckEncodableFieldNumber(number); err != nil {
		return errField(number, err)
	}
	if enc.err != nil {
		return errField(number, enc.err)
	}
	if enc.IsEmpty() {
		return Field{number: number}
	}

	size := wire.TagSize(number) + enc.size
	if enc.wireType == wire.WireBytes {
		size = wire.TagSize(number) + wire.BytesSize(enc.size)
	}

	return Field{
		number: number,
		size:   size,
		write: func(w *wire.Writer) {
			w.AppendTag(number, enc.wireType)
			if enc.wireType == wire.WireBytes {
				w.AppendVarint(uint64(enc.size))
			}
			enc.write(w)
		},
	}
}

// RepeatedField emits a repeated field. When every element shares a
// non-length-delimited wire type the elements are packed: one tag, one
// length prefix, concatenated payloads. Length-delimited elements (strings,
// bytes, sub-messages) may not be packed and are emitted as separate
// tag+payload pairs. An empty slice emits nothing.
func RepeatedField(number wire.FieldNumber, elems []Encoder) Field {
	if err := wire.CheckEncodableFieldNumber(number); err != nil {
		return errField(number, err)
	}
	if len(elems) == 0 {
		return Field{number: number}
	}

	packable := true
	for _, e := range elems {
		if e.err != nil {
			return errField(number, e.err)
		}
		if e.IsEmpty() {
			return errField(number, fmt.Errorf("repeated element must not be empty"))
		}
		if e.wireType == wire.WireBytes || e.wireType != elems[0].wireType {
			packable = false
		}
	}

	if packable {
		var payload int
		for _, e := range elems {
			payload += e.size
		}
		return Field{
			number: number,
			size:   wire.TagSize(number) + wire.BytesSize(payload),
			write: func(w *wire.Writer) {
				w.AppendTag(number, wire.WireBytes)
				w.AppendVarint(uint64(payload))
				for _, e := range elems {
					e.write(w)
				}
			},
		}
	}

	var size int
	for _, e := range elems {
		size += wire.TagSize(number) + e.size
		if e.wireType == wire.WireBytes {
			size += wire.VarintSize(uint64(e.size))
		}
	}
	return Field{
		number: number,
		size:   size,
		write: func(w *wire.Writer) {
			for _, e := range elems {
				w.AppendTag(number, e.wireType)
				if e.wireType == wire.WireBytes {
					w.AppendVarint(uint64(e.size))
				}
				e.write(w)
			}
		},
	}
}

// MapField emits a map field as repeated key=1/value=2 entry sub-messages.
// Entries are rendered eagerly and sorted by their encoded bytes so output
// is deterministic despite Go's randomized map iteration.
func MapField[K comparable, V any](number wire.FieldNumber, m map[K]V, key func(K) Encoder, val func(V) Encoder) Field {
	if err := wire.CheckEncodableFieldNumber(number); err != nil {
		return errField(number, err)
	}
	if len(m) == 0 {
		return Field{number: number}
	}

	entries := make([][]byte, 0, len(m))
	for k, v := range m {
		entry := Message(
			NewField(mapKeyNumber, key(k)),
			NewField(mapValueNumber, val(v)),
		)
		if entry.err != nil {
			return errField(number, entry.err)
		}
		w := wire.NewWriter()
		entry.write(w)
		entries = append(entries, w.Bytes())
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i], entries[j]) < 0
	})

	var size int
	for _, entry := range entries {
		size += wire.TagSize(number) + wire.BytesSize(len(entry))
	}
	return Field{
		number: number,
		size:   size,
		write: func(w *wire.Writer) {
			for _, entry := range entries {
				w.AppendTag(number, wire.WireBytes)
				w.AppendBytes(entry)
			}
		},
	}
}

// Raw re-emits a preserved unknown field byte-for-byte: the original tag
// followed by the captured payload. Reserved field numbers are allowed here
// because the bytes came from a foreign buffer.
func Raw(f wire.RawField) Field {
	if err := wire.CheckFieldNumber(f.Number); err != nil {
		return errField(f.Number, err)
	}
	if !f.WireType.IsValid() || f.WireType == wire.WireEndGroup {
		return errField(f.Number, fmt.Errorf("%w: %d", wire.ErrInvalidWireType, f.WireType))
	}

	return Field{
		number: f.Number,
		size:   wire.TagSize(f.Number) + len(f.Data),
		write: func(w *wire.Writer) {
			w.AppendTag(f.Number, f.WireType)
			w.AppendRaw(f.Data)
		},
	}
}

// Message assembles fields into a single length-delimited encoder so
// messages nest. Fields are sorted by field number ascending; the sort is
// stable so multiple occurrences of one number (preserved raw fields,
// hand-expanded repeats) keep their relative order. Field order on the wire
// is not significant to protobuf, sorting just makes output byte-for-byte
// deterministic.
func Message(fields ...Field) Encoder {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].number < sorted[j].number
	})

	var size int
	for _, f := range sorted {
		if f.err != nil {
			return Encoder{err: f.err}
		}
		size += f.size
	}

	return Encoder{
		wireType: wire.WireBytes,
		size:     size,
		write: func(w *wire.Writer) {
			for _, f := range sorted {
				if f.write != nil {
					f.write(w)
				}
			}
		},
	}
}

// MarshalMessage serializes a top-level message. Unlike an embedded message
// the result carries no length prefix; the caller's buffer boundary is the
// byte budget.
func MarshalMessage(fields ...Field) ([]byte, error) {
	enc := Message(fields...)
	if enc.err != nil {
		return nil, enc.err
	}

	w := wire.NewWriter()
	enc.write(w)
	return w.Bytes(), nil
}
