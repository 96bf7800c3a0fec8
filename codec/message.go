package codec

import (
	"fmt"
	"sort"

	"github.com/protocomb/protocomb/wire"
)

// Map entries are two-field sub-messages fixed by the protobuf spec.
const (
	mapKeyNumber   wire.FieldNumber = 1
	mapValueNumber wire.FieldNumber = 2
)

// fieldHandler decodes one occurrence of a field into the accumulator.
type fieldHandler[M any] func(r *wire.Reader, wireType wire.WireType, m *M) error

// MessageType is the decode side of a message: a dispatch table from field
// number to handler, the set of required field numbers, and the defaults
// applied to a fresh accumulator before any bytes are read. It is built once
// with the combinators in fields.go and is immutable during Decode, so a
// MessageType is safe for concurrent use.
type MessageType[M any] struct {
	handlers map[wire.FieldNumber]fieldHandler[M]
	required []wire.FieldNumber
	defaults []func(*M)
	unknown  func(*M, wire.RawField)
}

// NewMessage creates an empty message type for accumulator M.
func NewMessage[M any]() *MessageType[M] {
	return &MessageType[M]{handlers: make(map[wire.FieldNumber]fieldHandler[M])}
}

// register wires a handler into the dispatch table. Registration mistakes
// are programmer errors in codec construction, not data errors, so they
// panic the way http.ServeMux does on duplicate patterns.
func (mt *MessageType[M]) register(number wire.FieldNumber, h fieldHandler[M]) {
	if err := wire.CheckEncodableFieldNumber(number); err != nil {
		panic(fmt.Sprintf("codec: register field %d: %v", number, err))
	}
	if _, dup := mt.handlers[number]; dup {
		panic(fmt.Sprintf("codec: field %d registered twice", number))
	}
	mt.handlers[number] = h
}

// Decode consumes data field by field: read a tag, dispatch by field number,
// fold the decoded value into the accumulator. Later occurrences of a field
// overwrite earlier ones because handlers run in wire order, which is what
// gives duplicate scalars and oneof branches last-writer-wins semantics.
// Unregistered field numbers are skipped by their self-describing width (or
// captured, when an Unknown sink is registered). When the budget is
// exhausted, decoding fails unless every required field was seen.
func (mt *MessageType[M]) Decode(data []byte) (M, error) {
	var m M
	for _, def := range mt.defaults {
		def(&m)
	}

	var pending map[wire.FieldNumber]struct{}
	if len(mt.required) > 0 {
		pending = make(map[wire.FieldNumber]struct{}, len(mt.required))
		for _, n := range mt.required {
			pending[n] = struct{}{}
		}
	}

	r := wire.NewReader(data)
	for !r.Done() {
		number, wireType, err := r.ReadTag()
		if err != nil {
			return m, err
		}

		h, ok := mt.handlers[number]
		if !ok {
			if mt.unknown != nil && wireType != wire.WireEndGroup {
				raw, err := r.ReadRaw(wireType)
				if err != nil {
					return m, wrapWithField(err, number)
				}
				mt.unknown(&m, wire.RawField{Number: number, WireType: wireType, Data: raw})
			} else if err := r.Skip(wireType); err != nil {
				return m, wrapWithField(err, number)
			}
			continue
		}

		if err := h(r, wireType, &m); err != nil {
			return m, wrapWithField(err, number)
		}
		delete(pending, number)
	}

	if len(pending) > 0 {
		missing := make([]int, 0, len(pending))
		for n := range pending {
			missing = append(missing, int(n))
		}
		sort.Ints(missing)
		return m, fmt.Errorf("%w: %v", ErrMissingRequiredField, missing)
	}

	return m, nil
}
