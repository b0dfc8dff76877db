package nbt

import (
	"encoding/binary"
	"math"
)

// encodeState accumulates encoded bytes.
type encodeState struct {
	buf []byte
}

func (e *encodeState) byte_(b byte)  { e.buf = append(e.buf, b) }
func (e *encodeState) u16(v uint16)  { e.buf = binary.BigEndian.AppendUint16(e.buf, v) }
func (e *encodeState) i32(v int32)   { e.buf = binary.BigEndian.AppendUint32(e.buf, uint32(v)) }
func (e *encodeState) i64(v int64)   { e.buf = binary.BigEndian.AppendUint64(e.buf, uint64(v)) }
func (e *encodeState) str(s string)  { e.u16(uint16(len(s))); e.buf = append(e.buf, s...) }
func (e *encodeState) raw(b []byte)  { e.buf = append(e.buf, b...) }

func (e *encodeState) payload(tag Tag) {
	switch v := tag.(type) {
	case Byte:
		e.byte_(byte(v))
	case Short:
		e.u16(uint16(v))
	case Int:
		e.i32(int32(v))
	case Long:
		e.i64(int64(v))
	case Float32:
		e.i32(int32(math.Float32bits(float32(v))))
	case Float64:
		e.i64(int64(math.Float64bits(float64(v))))
	case ByteArray:
		e.i32(int32(len(v)))
		e.raw(v)
	case String:
		e.str(string(v))
	case IntArray:
		e.i32(int32(len(v)))
		for _, x := range v {
			e.i32(x)
		}
	case LongArray:
		e.i32(int32(len(v)))
		for _, x := range v {
			e.i64(x)
		}
	case *List:
		e.byte_(byte(v.ElemType))
		e.i32(int32(len(v.Items)))
		for _, item := range v.Items {
			e.payload(item)
		}
	case *Compound:
		for _, k := range v.keys {
			child := v.values[k]
			e.byte_(byte(child.Type()))
			e.str(k)
			e.payload(child)
		}
		e.byte_(byte(TagEnd))
	}
}

// Encode serializes a named root compound: tag=10, name, payload..., 0.
func Encode(name string, root *Compound) []byte {
	e := &encodeState{}
	e.byte_(byte(TagCompound))
	e.str(name)
	e.payload(root)
	return e.buf
}

// EncodeNameless serializes the nameless-root variant (tag=10, payload..., 0)
// used by certain clientbound packets.
func EncodeNameless(root *Compound) []byte {
	e := &encodeState{}
	e.byte_(byte(TagCompound))
	e.payload(root)
	return e.buf
}
