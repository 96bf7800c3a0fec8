package wire

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint     WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64    WireType = 1 // fixed64, sfixed64, double
	WireBytes      WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireStartGroup WireType = 3 // legacy groups: skipped on decode, never encoded
	WireEndGroup   WireType = 4 // legacy groups: skipped on decode, never encoded
	WireFixed32    WireType = 5 // fixed32, sfixed32, float
)

// IsValid reports whether wt is one of the six wire-type codes.
func (wt WireType) IsValid() bool {
	return wt >= WireVarint && wt <= WireFixed32
}

// String returns the proto-spec name of the wire type.
func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireStartGroup:
		return "start_group"
	case WireEndGroup:
		return "end_group"
	case WireFixed32:
		return "fixed32"
	default:
		return "invalid"
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

// Field number bounds from the protobuf wire spec.
const (
	MinFieldNumber      FieldNumber = 1
	MaxFieldNumber      FieldNumber = 1<<29 - 1
	FirstReservedNumber FieldNumber = 19000
	LastReservedNumber  FieldNumber = 19999
)

// IsValid reports whether n is inside the wire-legal range 1..=536870911.
func (n FieldNumber) IsValid() bool {
	return n >= MinFieldNumber && n <= MaxFieldNumber
}

// IsReserved reports whether n falls in the range 19000..=19999 that the
// protobuf spec reserves for its own implementation.
func (n FieldNumber) IsReserved() bool {
	return n >= FirstReservedNumber && n <= LastReservedNumber
}

// CheckFieldNumber validates n for use on the wire. It is what decode
// enforces: range only, so foreign buffers that use reserved numbers can
// still be read.
func CheckFieldNumber(n FieldNumber) error {
	if !n.IsValid() {
		return ErrInvalidFieldNumber
	}
	return nil
}

// CheckEncodableFieldNumber validates n for fields this library produces:
// the wire-legal range minus the reserved block.
func CheckEncodableFieldNumber(n FieldNumber) error {
	if !n.IsValid() {
		return ErrInvalidFieldNumber
	}
	if n.IsReserved() {
		return ErrReservedFieldNumber
	}
	return nil
}

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// RawField is one undecoded occurrence of a field on the wire: the payload
// bytes exactly as they appeared after the tag (for length-delimited fields
// this includes the width prefix). Re-emitting tag+Data reproduces the
// original bytes, which is what unknown-field preservation relies on.
type RawField struct {
	Number   FieldNumber
	WireType WireType
	Data     []byte
}
