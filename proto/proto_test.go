package proto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 127, 128, 255, 25565, math.MaxInt32, math.MinInt32, -2147483648}
	for _, v := range cases {
		w := NewWriter()
		w.VarInt(v)
		require.LessOrEqual(t, len(w.Bytes()), 5)
		require.GreaterOrEqual(t, len(w.Bytes()), 1)

		r := NewReader(w.Bytes())
		got, err := r.VarInt()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, 0, r.Len())
	}
}

func TestVarIntTooLong(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := r.VarInt()
	require.ErrorIs(t, err, ErrMalformedVarInt)
}

func TestTryPeekVarIntIncomplete(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80})
	_, _, ok, err := r.TryPeekVarInt()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPackedPositionRoundTrip(t *testing.T) {
	cases := []BlockPos{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: -1},
		{X: 33554431, Y: 2047, Z: 33554431},  // 2^25-1
		{X: -33554432, Y: -2048, Z: -33554432}, // -2^25
	}
	for _, p := range cases {
		w := NewWriter()
		w.Position(p)
		r := NewReader(w.Bytes())
		got, err := r.Position()
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.String("hello, minecraft")
	r := NewReader(w.Bytes())
	s, err := r.String()
	require.NoError(t, err)
	require.Equal(t, "hello, minecraft", s)
}

func TestShortUnexpectedEnd(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.Short()
	require.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestExtractFramePartial(t *testing.T) {
	w := NewWriter()
	w.String("abc")
	full := w.Frame(0x10)

	r := NewReader(full[:len(full)-1])
	_, ok, err := ExtractFrame(r)
	require.NoError(t, err)
	require.False(t, ok)

	r.Feed(full[len(full)-1:])
	frame, ok, err := ExtractFrame(r)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(0x10), frame.ID)
	s, err := frame.Body.String()
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}

func TestFloatDoubleRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Float(3.25)
	w.Double(-12.5)
	r := NewReader(w.Bytes())
	f, err := r.Float()
	require.NoError(t, err)
	require.Equal(t, float32(3.25), f)
	d, err := r.Double()
	require.NoError(t, err)
	require.Equal(t, -12.5, d)
}
