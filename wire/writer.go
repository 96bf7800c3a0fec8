package wire

import (
	"encoding/binary"
	"math"
)

// Writer accumulates wire-format bytes. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// AppendVarint appends a uint64 as a LEB128 varint.
func (w *Writer) AppendVarint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// AppendTag appends a field tag.
func (w *Writer) AppendTag(fieldNumber FieldNumber, wireType WireType) {
	w.AppendVarint(uint64(MakeTag(fieldNumber, wireType)))
}

// AppendFixed32 appends a 32-bit value in little-endian order.
func (w *Writer) AppendFixed32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// AppendFixed64 appends a 64-bit value in little-endian order.
func (w *Writer) AppendFixed64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// AppendFloat32 appends an IEEE-754 float as fixed32.
func (w *Writer) AppendFloat32(v float32) {
	w.AppendFixed32(math.Float32bits(v))
}

// AppendFloat64 appends an IEEE-754 double as fixed64.
func (w *Writer) AppendFloat64(v float64) {
	w.AppendFixed64(math.Float64bits(v))
}

// AppendBytes appends a length-delimited payload: width varint, then data.
func (w *Writer) AppendBytes(data []byte) {
	w.AppendVarint(uint64(len(data)))
	w.buf = append(w.buf, data...)
}

// AppendRaw appends already-encoded bytes verbatim.
func (w *Writer) AppendRaw(data []byte) {
	w.buf = append(w.buf, data...)
}
