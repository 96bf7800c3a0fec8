package codec

import (
	"github.com/protocomb/protocomb/wire"
)

// Scalar decoders and encoders for every protobuf primitive type. Each
// decoder is bound to the one wire type that type legally uses; each encoder
// value knows its wire type and payload size up front (length prefixes are
// written before payloads, so sizes must be known first).

// ===== VARINT SCALARS =====

// Int32 decodes a plain varint as int32 (sign-extended on the wire).
func Int32() Decoder[int32] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (int32, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return 0, err
		}
		return int32(v), nil
	})
}

// Int64 decodes a plain varint as int64.
func Int64() Decoder[int64] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (int64, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return 0, err
		}
		return int64(v), nil
	})
}

// Uint32 decodes a varint as uint32; the wire value is treated as unsigned
// magnitude.
func Uint32() Decoder[uint32] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (uint32, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	})
}

// Uint64 decodes a varint as uint64.
func Uint64() Decoder[uint64] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (uint64, error) {
		return r.ReadVarint()
	})
}

// Sint32 decodes a zigzag-encoded varint as int32.
func Sint32() Decoder[int32] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (int32, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return 0, err
		}
		return wire.DecodeZigZag32(v), nil
	})
}

// Sint64 decodes a zigzag-encoded varint as int64.
func Sint64() Decoder[int64] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (int64, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return 0, err
		}
		return wire.DecodeZigZag64(v), nil
	})
}

// Bool decodes a varint as bool: any non-zero value is true.
func Bool() Decoder[bool] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (bool, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return false, err
		}
		return v != 0, nil
	})
}

// Enum decodes a varint as a user enum type with int32 underlying.
func Enum[E ~int32]() Decoder[E] {
	return NewDecoder(wire.WireVarint, func(r *wire.Reader) (E, error) {
		v, err := r.ReadVarint()
		if err != nil {
			return 0, err
		}
		return E(v), nil
	})
}

// ===== FIXED-WIDTH SCALARS =====

// Fixed32 decodes a little-endian 32-bit value.
func Fixed32() Decoder[uint32] {
	return NewDecoder(wire.WireFixed32, func(r *wire.Reader) (uint32, error) {
		return r.ReadFixed32()
	})
}

// Fixed64 decodes a little-endian 64-bit value.
func Fixed64() Decoder[uint64] {
	return NewDecoder(wire.WireFixed64, func(r *wire.Reader) (uint64, error) {
		return r.ReadFixed64()
	})
}

// Sfixed32 decodes a little-endian signed 32-bit value.
func Sfixed32() Decoder[int32] {
	return NewDecoder(wire.WireFixed32, func(r *wire.Reader) (int32, error) {
		v, err := r.ReadFixed32()
		if err != nil {
			return 0, err
		}
		return int32(v), nil
	})
}

// Sfixed64 decodes a little-endian signed 64-bit value.
func Sfixed64() Decoder[int64] {
	return NewDecoder(wire.WireFixed64, func(r *wire.Reader) (int64, error) {
		v, err := r.ReadFixed64()
		if err != nil {
			return 0, err
		}
		return int64(v), nil
	})
}

// Float decodes an IEEE-754 float from fixed32 data.
func Float() Decoder[float32] {
	return NewDecoder(wire.WireFixed32, func(r *wire.Reader) (float32, error) {
		return r.ReadFloat32()
	})
}

// Double decodes an IEEE-754 double from fixed64 data.
func Double() Decoder[float64] {
	return NewDecoder(wire.WireFixed64, func(r *wire.Reader) (float64, error) {
		return r.ReadFloat64()
	})
}

// ===== LENGTH-DELIMITED SCALARS =====

// String decodes a length-delimited UTF-8 string.
func String() Decoder[string] {
	return NewDecoder(wire.WireBytes, func(r *wire.Reader) (string, error) {
		data, err := r.ReadRawBytes()
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
}

// Bytes decodes a length-delimited byte slice. The result does not share
// the input buffer.
func Bytes() Decoder[[]byte] {
	return NewDecoder(wire.WireBytes, func(r *wire.Reader) ([]byte, error) {
		return r.ReadBytes()
	})
}

// ===== SCALAR ENCODERS =====

func varintEncoder(v uint64) Encoder {
	return Encoder{
		wireType: wire.WireVarint,
		size:     wire.VarintSize(v),
		write:    func(w *wire.Writer) { w.AppendVarint(v) },
	}
}

// Int32Value encodes an int32 as a plain varint. Negative values sign-extend
// to ten bytes, matching the protobuf int32 encoding.
func Int32Value(v int32) Encoder {
	return varintEncoder(uint64(int64(v)))
}

// Int64Value encodes an int64 as a plain varint.
func Int64Value(v int64) Encoder {
	return varintEncoder(uint64(v))
}

// Uint32Value encodes a uint32 as a varint.
func Uint32Value(v uint32) Encoder {
	return varintEncoder(uint64(v))
}

// Uint64Value encodes a uint64 as a varint.
func Uint64Value(v uint64) Encoder {
	return varintEncoder(v)
}

// Sint32Value encodes an int32 with zigzag encoding.
func Sint32Value(v int32) Encoder {
	return varintEncoder(wire.EncodeZigZag32(v))
}

// Sint64Value encodes an int64 with zigzag encoding.
func Sint64Value(v int64) Encoder {
	return varintEncoder(wire.EncodeZigZag64(v))
}

// BoolValue encodes a bool as varint 0 or 1.
func BoolValue(v bool) Encoder {
	if v {
		return varintEncoder(1)
	}
	return varintEncoder(0)
}

// EnumValue encodes an enum value as a varint.
func EnumValue[E ~int32](v E) Encoder {
	return varintEncoder(uint64(int64(v)))
}

// Fixed32Value encodes a uint32 as little-endian fixed32.
func Fixed32Value(v uint32) Encoder {
	return Encoder{
		wireType: wire.WireFixed32,
		size:     4,
		write:    func(w *wire.Writer) { w.AppendFixed32(v) },
	}
}

// Fixed64Value encodes a uint64 as little-endian fixed64.
func Fixed64Value(v uint64) Encoder {
	return Encoder{
		wireType: wire.WireFixed64,
		size:     8,
		write:    func(w *wire.Writer) { w.AppendFixed64(v) },
	}
}

// Sfixed32Value encodes an int32 as little-endian fixed32.
func Sfixed32Value(v int32) Encoder {
	return Fixed32Value(uint32(v))
}

// Sfixed64Value encodes an int64 as little-endian fixed64.
func Sfixed64Value(v int64) Encoder {
	return Fixed64Value(uint64(v))
}

// FloatValue encodes an IEEE-754 float as fixed32.
func FloatValue(v float32) Encoder {
	return Encoder{
		wireType: wire.WireFixed32,
		size:     4,
		write:    func(w *wire.Writer) { w.AppendFloat32(v) },
	}
}

// DoubleValue encodes an IEEE-754 double as fixed64.
func DoubleValue(v float64) Encoder {
	return Encoder{
		wireType: wire.WireFixed64,
		size:     8,
		write:    func(w *wire.Writer) { w.AppendFloat64(v) },
	}
}

// StringValue encodes a string as length-delimited UTF-8 bytes.
func StringValue(s string) Encoder {
	return Encoder{
		wireType: wire.WireBytes,
		size:     len(s),
		write:    func(w *wire.Writer) { w.AppendRaw([]byte(s)) },
	}
}

// BytesValue encodes a byte slice as a length-delimited payload.
func BytesValue(data []byte) Encoder {
	return Encoder{
		wireType: wire.WireBytes,
		size:     len(data),
		write:    func(w *wire.Writer) { w.AppendRaw(data) },
	}
}
