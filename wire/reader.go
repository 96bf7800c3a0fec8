package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader decodes wire-format primitives from an in-memory buffer. The buffer
// is never mutated; Reader only advances a cursor over it. A Reader is a
// single-use, single-goroutine value created per decode call.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Done reports whether the whole buffer has been consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// ReadVarint decodes a LEB128 varint from the current position.
func (r *Reader) ReadVarint() (uint64, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrUnexpectedEOF
	}

	var result uint64
	var shift uint

	for i := 0; i < 10; i++ { // Max 10 bytes for 64-bit varint
		if r.pos >= len(r.buf) {
			return 0, ErrUnexpectedEOF
		}

		b := r.buf[r.pos]
		r.pos++

		// The tenth byte may only carry the final bit of a 64-bit value.
		if shift == 63 && (b&0x7F) > 1 {
			return 0, ErrVarintOverflow
		}

		result |= uint64(b&0x7F) << shift

		if (b & 0x80) == 0 {
			return result, nil
		}

		shift += 7
	}

	return 0, ErrVarintTooLong
}

// ReadTag decodes a field tag, validating the field number range and the
// wire-type code. The width varint of a length-delimited field is read by
// ReadBytes/ReadRawBytes, not here.
func (r *Reader) ReadTag() (FieldNumber, WireType, error) {
	tag, err := r.ReadVarint()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode tag: %w", err)
	}

	if raw := tag >> 3; raw < uint64(MinFieldNumber) || raw > uint64(MaxFieldNumber) {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidFieldNumber, raw)
	}
	fieldNumber, wireType := ParseTag(Tag(tag))
	if !wireType.IsValid() {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidWireType, wireType)
	}

	return fieldNumber, wireType, nil
}

// ReadFixed32 decodes a 32-bit little-endian fixed-width value.
func (r *Reader) ReadFixed32() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, fmt.Errorf("%w: need 4 bytes for fixed32, have %d", ErrTruncated, r.Remaining())
	}

	value := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return value, nil
}

// ReadFixed64 decodes a 64-bit little-endian fixed-width value.
func (r *Reader) ReadFixed64() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, fmt.Errorf("%w: need 8 bytes for fixed64, have %d", ErrTruncated, r.Remaining())
	}

	value := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return value, nil
}

// ReadFloat32 decodes an IEEE-754 float from fixed32 data.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 decodes an IEEE-754 double from fixed64 data.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBytes decodes a length-delimited payload into a fresh slice that does
// not share the underlying buffer.
func (r *Reader) ReadBytes() ([]byte, error) {
	raw, err := r.ReadRawBytes()
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(raw))
	copy(data, raw)
	return data, nil
}

// ReadRawBytes decodes a length-delimited payload without copying; the
// returned slice shares the underlying buffer.
func (r *Reader) ReadRawBytes() ([]byte, error) {
	length, err := r.ReadVarint()
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytes length: %w", err)
	}

	if length > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, length, r.Remaining())
	}

	data := r.buf[r.pos : r.pos+int(length)]
	r.pos += int(length)
	return data, nil
}

// Skip advances past one value of the given wire type without decoding it.
// Legacy groups are skipped structurally: nested tags are consumed until the
// matching end-group marker so that framing stays intact.
func (r *Reader) Skip(wireType WireType) error {
	switch wireType {
	case WireVarint:
		for {
			if r.pos >= len(r.buf) {
				return ErrUnexpectedEOF
			}
			b := r.buf[r.pos]
			r.pos++
			if (b & 0x80) == 0 {
				return nil
			}
		}
	case WireFixed64:
		if r.pos+8 > len(r.buf) {
			return fmt.Errorf("%w: cannot skip fixed64", ErrTruncated)
		}
		r.pos += 8
		return nil
	case WireBytes:
		length, err := r.ReadVarint()
		if err != nil {
			return err
		}
		if length > uint64(r.Remaining()) {
			return fmt.Errorf("%w: cannot skip %d bytes, have %d", ErrTruncated, length, r.Remaining())
		}
		r.pos += int(length)
		return nil
	case WireStartGroup:
		return r.skipGroup()
	case WireEndGroup:
		return ErrUnbalancedGroup
	case WireFixed32:
		if r.pos+4 > len(r.buf) {
			return fmt.Errorf("%w: cannot skip fixed32", ErrTruncated)
		}
		r.pos += 4
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidWireType, wireType)
	}
}

// skipGroup consumes fields until the end-group marker that balances an
// already-consumed start-group tag.
func (r *Reader) skipGroup() error {
	for {
		_, wireType, err := r.ReadTag()
		if err != nil {
			return err
		}
		if wireType == WireEndGroup {
			return nil
		}
		if err := r.Skip(wireType); err != nil {
			return err
		}
	}
}

// ReadRaw skips one value of the given wire type and returns a copy of the
// bytes it occupied, width prefix included. Used for unknown-field capture.
func (r *Reader) ReadRaw(wireType WireType) ([]byte, error) {
	start := r.pos
	if err := r.Skip(wireType); err != nil {
		return nil, err
	}
	data := make([]byte, r.pos-start)
	copy(data, r.buf[start:r.pos])
	return data, nil
}
