package proto

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/google/uuid"
)

// Reader is the receive-side FIFO byte stream. It separates
// the raw, ever-growing receive queue from the current packet's
// end-boundary: Feed appends newly-arrived socket bytes, SetBoundary marks
// "the next packet ends L bytes from here", and ReadToEnd is subordinate to
// that boundary.
type Reader struct {
	buf      []byte
	boundary int // -1 = no boundary set
}

// NewReader wraps an existing byte slice as the initial queue contents.
func NewReader(initial []byte) *Reader {
	return &Reader{buf: append([]byte(nil), initial...), boundary: -1}
}

// Feed appends newly received bytes to the queue.
func (r *Reader) Feed(b []byte) {
	r.buf = append(r.buf, b...)
}

// Len reports how many unread bytes remain queued.
func (r *Reader) Len() int { return len(r.buf) }

func (r *Reader) consume(n int) []byte {
	out := r.buf[:n]
	r.buf = r.buf[n:]
	if r.boundary >= 0 {
		r.boundary -= n
	}
	return out
}

func (r *Reader) require(n int) error {
	if len(r.buf) < n {
		return ErrUnexpectedEnd
	}
	return nil
}

// Byte reads a single byte.
func (r *Reader) Byte() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	return r.consume(1)[0], nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// Bool reads a boolean (0x00/0x01).
func (r *Reader) Bool() (bool, error) {
	b, err := r.Byte()
	return b != 0, err
}

// UnsignedShort reads a big-endian uint16.
func (r *Reader) UnsignedShort() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.consume(2)), nil
}

// Short reads a big-endian signed int16.
func (r *Reader) Short() (int16, error) {
	v, err := r.UnsignedShort()
	return int16(v), err
}

// Int reads a big-endian signed int32.
func (r *Reader) Int() (int32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(r.consume(4))), nil
}

// Long reads a big-endian signed int64.
func (r *Reader) Long() (int64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(r.consume(8))), nil
}

// Float reads a big-endian IEEE-754 single-precision float.
func (r *Reader) Float() (float32, error) {
	v, err := r.Int()
	return math.Float32frombits(uint32(v)), err
}

// Double reads a big-endian IEEE-754 double-precision float.
func (r *Reader) Double() (float64, error) {
	v, err := r.Long()
	return math.Float64frombits(uint64(v)), err
}

// Read reads exactly n raw bytes.
func (r *Reader) Read(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.consume(n))
	return out, nil
}

// VarInt decodes a varint, failing with ErrMalformedVarInt past 5 bytes and
// ErrUnexpectedEnd if the buffer runs out first.
func (r *Reader) VarInt() (int32, error) {
	v, n, err := decodeVarInt(r.buf)
	if err == errNotEnoughBytes {
		return 0, ErrUnexpectedEnd
	}
	if err != nil {
		return 0, err
	}
	r.consume(n)
	return v, nil
}

// TryPeekVarInt decodes a varint from the front of the queue without
// consuming it. ok is false when the queue is currently a strict prefix of a
// valid varint (more bytes are needed); a malformed (6th-continuation)
// varint still returns an error.
func (r *Reader) TryPeekVarInt() (value int32, length int, ok bool, err error) {
	v, n, decErr := decodeVarInt(r.buf)
	if decErr == errNotEnoughBytes {
		return 0, 0, false, nil
	}
	if decErr != nil {
		return 0, 0, false, decErr
	}
	return v, n, true, nil
}

// String reads a varint length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	l, err := r.VarInt()
	if err != nil {
		return "", err
	}
	if l < 0 || l > 32767*4 {
		return "", ErrStringTooLong
	}
	b, err := r.Read(int(l))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ByteArray reads a varint length-prefixed byte array.
func (r *Reader) ByteArray() ([]byte, error) {
	l, err := r.VarInt()
	if err != nil {
		return nil, err
	}
	if l < 0 || l > 1<<20 {
		return nil, ErrStringTooLong
	}
	return r.Read(int(l))
}

// UUID reads 16 raw bytes as a UUID.
func (r *Reader) UUID() (uuid.UUID, error) {
	b, err := r.Read(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var u uuid.UUID
	copy(u[:], b)
	return u, nil
}

// Position decodes the packed 64-bit block position form.
func (r *Reader) Position() (BlockPos, error) {
	v, err := r.Long()
	if err != nil {
		return BlockPos{}, err
	}
	return unpackPosition(uint64(v)), nil
}

// SetBoundary records that the current packet's body ends n bytes from the
// current head. Used so ReadToEnd knows where "the rest of this packet" is
// without conflating it with bytes belonging to the next packet already in
// the receive queue.
func (r *Reader) SetBoundary(n int) { r.boundary = n }

// ReadToEnd consumes and returns every remaining byte up to the previously
// set boundary.
func (r *Reader) ReadToEnd() ([]byte, error) {
	if r.boundary < 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return r.Read(r.boundary)
}

// Remaining reports how many bytes remain before the current boundary.
func (r *Reader) Remaining() int { return r.boundary }
