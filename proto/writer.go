package proto

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// Writer is the send-side accumulator buffer. Writers mirror
// Reader's readers; Frame and ConcatWithLength are the two terminal
// operations the transport uses to turn an accumulated body into wire
// bytes.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty send buffer.
func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, 0x01)
	} else {
		w.buf = append(w.buf, 0x00)
	}
}

func (w *Writer) Byte(v byte) { w.buf = append(w.buf, v) }

func (w *Writer) UnsignedShort(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Short(v int16) { w.UnsignedShort(uint16(v)) }

func (w *Writer) Int(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *Writer) Long(v int64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

func (w *Writer) Float(v float32) { w.Int(int32(math.Float32bits(v))) }

func (w *Writer) Double(v float64) { w.Long(int64(math.Float64bits(v))) }

// VarInt appends v's varint encoding.
func (w *Writer) VarInt(v int32) { w.buf = appendVarInt(w.buf, v) }

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }

// String appends a varint length-prefixed UTF-8 string.
func (w *Writer) String(s string) {
	w.VarInt(int32(len(s)))
	w.buf = append(w.buf, s...)
}

// ByteArray appends a varint length-prefixed byte array.
func (w *Writer) ByteArray(b []byte) {
	w.VarInt(int32(len(b)))
	w.buf = append(w.buf, b...)
}

// UUID appends 16 raw bytes.
func (w *Writer) UUID(u uuid.UUID) { w.buf = append(w.buf, u[:]...) }

// Position appends the packed 64-bit block position form.
func (w *Writer) Position(p BlockPos) { w.Long(int64(packPosition(p))) }

// Bytes returns the accumulated body without framing.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of accumulated bytes.
func (w *Writer) Len() int { return len(w.buf) }

// ConcatWithLength prepends the total body length as a varint.
func ConcatWithLength(body []byte) []byte {
	out := appendVarInt(make([]byte, 0, varIntLen(int32(len(body)))+len(body)), int32(len(body)))
	return append(out, body...)
}

// ConcatAndPrependVarInt prepends id's varint encoding to body, as used to
// build (id, body) ahead of the final length prefix.
func ConcatAndPrependVarInt(id int32, body []byte) []byte {
	out := appendVarInt(make([]byte, 0, varIntLen(id)+len(body)), id)
	return append(out, body...)
}

// Frame builds the full wire frame (length, id, body) for this writer's
// accumulated body under packetID.
func (w *Writer) Frame(packetID int32) []byte {
	return ConcatWithLength(ConcatAndPrependVarInt(packetID, w.buf))
}
