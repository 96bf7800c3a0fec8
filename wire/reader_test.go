package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestReadTag(t *testing.T) {
	tests := []struct {
		data       []byte
		wantNumber FieldNumber
		wantType   WireType
	}{
		{[]byte{0x08}, 1, WireVarint},
		{[]byte{0x11}, 2, WireFixed64},
		{[]byte{0x22}, 4, WireBytes},
		{[]byte{0x2D}, 5, WireFixed32},
		{[]byte{0x1B}, 3, WireStartGroup},
		{[]byte{0x1C}, 3, WireEndGroup},
	}

	for _, tt := range tests {
		number, wireType, err := NewReader(tt.data).ReadTag()
		if err != nil {
			t.Fatalf("ReadTag(% x) failed: %v", tt.data, err)
		}
		if number != tt.wantNumber || wireType != tt.wantType {
			t.Errorf("ReadTag(% x) = (%d, %s), want (%d, %s)",
				tt.data, number, wireType, tt.wantNumber, tt.wantType)
		}
	}
}

func TestReadTagMaxFieldNumber(t *testing.T) {
	w := NewWriter()
	w.AppendTag(MaxFieldNumber, WireVarint)

	number, wireType, err := NewReader(w.Bytes()).ReadTag()
	if err != nil {
		t.Fatalf("ReadTag failed: %v", err)
	}
	if number != MaxFieldNumber || wireType != WireVarint {
		t.Errorf("got (%d, %s), want (%d, varint)", number, wireType, MaxFieldNumber)
	}
}

func TestReadTagInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"field number zero", []byte{0x00}, ErrInvalidFieldNumber},
		{"field number above range", []byte{0x80, 0x80, 0x80, 0x80, 0x20}, ErrInvalidFieldNumber},
		{"wire type 6", []byte{0x0E}, ErrInvalidWireType},
		{"wire type 7", []byte{0x0F}, ErrInvalidWireType},
		{"truncated tag varint", []byte{0x80}, ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewReader(tt.data).ReadTag()
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadTag(% x) error = %v, want %v", tt.data, err, tt.want)
			}
		})
	}
}

func TestReadFixed(t *testing.T) {
	w := NewWriter()
	w.AppendFixed32(0xDEADBEEF)
	w.AppendFixed64(0x0123456789ABCDEF)
	w.AppendFloat32(3.5)
	w.AppendFloat64(-2.25)

	r := NewReader(w.Bytes())
	if v, err := r.ReadFixed32(); err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadFixed32 = (%x, %v), want deadbeef", v, err)
	}
	if v, err := r.ReadFixed64(); err != nil || v != 0x0123456789ABCDEF {
		t.Errorf("ReadFixed64 = (%x, %v), want 0123456789abcdef", v, err)
	}
	if v, err := r.ReadFloat32(); err != nil || v != 3.5 {
		t.Errorf("ReadFloat32 = (%v, %v), want 3.5", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != -2.25 {
		t.Errorf("ReadFloat64 = (%v, %v), want -2.25", v, err)
	}
	if !r.Done() {
		t.Errorf("%d trailing bytes", r.Remaining())
	}
}

func TestReadFixedLittleEndian(t *testing.T) {
	// 1 encoded as fixed32 must be 01 00 00 00.
	r := NewReader([]byte{0x01, 0x00, 0x00, 0x00})
	v, err := r.ReadFixed32()
	if err != nil || v != 1 {
		t.Fatalf("ReadFixed32 = (%d, %v), want 1", v, err)
	}

	// Double 1.0 is the IEEE-754 bits 3FF0000000000000, little-endian.
	r = NewReader([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F})
	d, err := r.ReadFloat64()
	if err != nil || d != 1.0 {
		t.Fatalf("ReadFloat64 = (%v, %v), want 1.0", d, err)
	}
	if math.Float64bits(d) != 0x3FF0000000000000 {
		t.Errorf("bits = %x", math.Float64bits(d))
	}
}

func TestReadFixedTruncated(t *testing.T) {
	if _, err := NewReader([]byte{0x01, 0x02, 0x03}).ReadFixed32(); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadFixed32 on 3 bytes: error = %v, want %v", err, ErrTruncated)
	}
	if _, err := NewReader([]byte{0x01}).ReadFixed64(); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadFixed64 on 1 byte: error = %v, want %v", err, ErrTruncated)
	}
}

func TestReadBytes(t *testing.T) {
	w := NewWriter()
	w.AppendBytes([]byte("hello"))
	w.AppendBytes(nil)

	r := NewReader(w.Bytes())
	data, err := r.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadBytes = %q, want %q", data, "hello")
	}

	empty, err := r.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes (empty) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ReadBytes (empty) = % x, want empty", empty)
	}
}

func TestReadBytesDoesNotShareBuffer(t *testing.T) {
	buf := []byte{0x03, 0x61, 0x62, 0x63}
	r := NewReader(buf)
	data, err := r.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}

	buf[1] = 'z'
	if string(data) != "abc" {
		t.Errorf("decoded bytes aliased the input buffer: %q", data)
	}
}

func TestReadBytesTruncated(t *testing.T) {
	// Declared width 5, only 3 bytes follow.
	r := NewReader([]byte{0x05, 0x61, 0x62, 0x63})
	if _, err := r.ReadBytes(); !errors.Is(err, ErrTruncated) {
		t.Errorf("error = %v, want %v", err, ErrTruncated)
	}
}

func TestSkip(t *testing.T) {
	w := NewWriter()
	w.AppendTag(1, WireVarint)
	w.AppendVarint(300)
	w.AppendTag(2, WireFixed64)
	w.AppendFixed64(42)
	w.AppendTag(3, WireBytes)
	w.AppendBytes([]byte("skip me"))
	w.AppendTag(4, WireFixed32)
	w.AppendFixed32(7)
	w.AppendTag(5, WireVarint)
	w.AppendVarint(99)

	r := NewReader(w.Bytes())
	for i := 0; i < 4; i++ {
		_, wireType, err := r.ReadTag()
		if err != nil {
			t.Fatalf("ReadTag %d failed: %v", i, err)
		}
		if err := r.Skip(wireType); err != nil {
			t.Fatalf("Skip %d failed: %v", i, err)
		}
	}

	number, _, err := r.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag after skips failed: %v", err)
	}
	if number != 5 {
		t.Errorf("landed on field %d after skips, want 5", number)
	}
	if v, _ := r.ReadVarint(); v != 99 {
		t.Errorf("value = %d, want 99", v)
	}
}

func TestSkipGroup(t *testing.T) {
	// Field 2 is a legacy group holding a varint field and a nested group.
	w := NewWriter()
	w.AppendTag(2, WireStartGroup)
	w.AppendTag(1, WireVarint)
	w.AppendVarint(5)
	w.AppendTag(3, WireStartGroup)
	w.AppendTag(4, WireBytes)
	w.AppendBytes([]byte("inner"))
	w.AppendTag(3, WireEndGroup)
	w.AppendTag(2, WireEndGroup)
	w.AppendTag(7, WireVarint)
	w.AppendVarint(1)

	r := NewReader(w.Bytes())
	_, wireType, err := r.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag failed: %v", err)
	}
	if err := r.Skip(wireType); err != nil {
		t.Fatalf("Skip group failed: %v", err)
	}

	number, _, err := r.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag after group failed: %v", err)
	}
	if number != 7 {
		t.Errorf("landed on field %d after group skip, want 7", number)
	}
}

func TestSkipGroupErrors(t *testing.T) {
	if err := NewReader(nil).Skip(WireEndGroup); !errors.Is(err, ErrUnbalancedGroup) {
		t.Errorf("Skip(end group) error = %v, want %v", err, ErrUnbalancedGroup)
	}

	// Start group with no matching end marker.
	w := NewWriter()
	w.AppendTag(1, WireVarint)
	w.AppendVarint(5)
	if err := NewReader(w.Bytes()).Skip(WireStartGroup); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Skip(unterminated group) error = %v, want %v", err, ErrUnexpectedEOF)
	}
}

func TestReadRaw(t *testing.T) {
	w := NewWriter()
	w.AppendBytes([]byte("payload"))
	encoded := w.Bytes()

	r := NewReader(encoded)
	raw, err := r.ReadRaw(WireBytes)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	// Raw capture keeps the width prefix so re-emitting reproduces the
	// original bytes.
	if !bytes.Equal(raw, encoded) {
		t.Errorf("ReadRaw = % x, want % x", raw, encoded)
	}
	if !r.Done() {
		t.Errorf("%d trailing bytes", r.Remaining())
	}
}

func TestFieldNumberValidation(t *testing.T) {
	if err := CheckFieldNumber(0); !errors.Is(err, ErrInvalidFieldNumber) {
		t.Errorf("CheckFieldNumber(0) = %v, want %v", err, ErrInvalidFieldNumber)
	}
	if err := CheckFieldNumber(MaxFieldNumber + 1); !errors.Is(err, ErrInvalidFieldNumber) {
		t.Errorf("CheckFieldNumber(max+1) = %v, want %v", err, ErrInvalidFieldNumber)
	}
	if err := CheckFieldNumber(19500); err != nil {
		t.Errorf("CheckFieldNumber(19500) = %v, decode must accept reserved numbers", err)
	}
	if err := CheckEncodableFieldNumber(19500); !errors.Is(err, ErrReservedFieldNumber) {
		t.Errorf("CheckEncodableFieldNumber(19500) = %v, want %v", err, ErrReservedFieldNumber)
	}
	if err := CheckEncodableFieldNumber(1); err != nil {
		t.Errorf("CheckEncodableFieldNumber(1) = %v, want nil", err)
	}
}
