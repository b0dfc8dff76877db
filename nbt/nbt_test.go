package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	root := NewCompound()
	root.Set("byte", Byte(-5))
	root.Set("short", Short(1234))
	root.Set("int", Int(-70000))
	root.Set("long", Long(1<<40))
	root.Set("float", Float32(3.5))
	root.Set("double", Float64(-1.25))
	root.Set("string", String("minecraft:overworld"))
	root.Set("bytearray", ByteArray([]byte{1, 2, 3}))
	root.Set("intarray", IntArray([]int32{1, -2, 3}))
	root.Set("longarray", LongArray([]int64{1, -2, 3}))

	encoded := Encode("root", root)
	name, decoded, offset, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, "root", name)
	require.Equal(t, len(encoded), offset)

	for _, key := range root.Keys() {
		want, _ := root.Get(key)
		got, ok := decoded.Get(key)
		require.True(t, ok, key)
		require.Equal(t, want, got, key)
	}
}

func TestNestedCompoundAndList(t *testing.T) {
	inner := NewCompound()
	inner.Set("x", Int(1))
	inner.Set("y", Int(2))

	list := &List{ElemType: TagString, Items: []Tag{String("a"), String("b")}}

	root := NewCompound()
	root.Set("inner", inner)
	root.Set("list", list)

	encoded := Encode("", root)
	_, decoded, _, err := Decode(encoded)
	require.NoError(t, err)

	gotInner, ok := decoded.Get("inner")
	require.True(t, ok)
	require.Equal(t, inner, gotInner)

	gotList, ok := decoded.Get("list")
	require.True(t, ok)
	require.Equal(t, list, gotList)
}

func TestNamelessRootRoundTrip(t *testing.T) {
	root := NewCompound()
	root.Set("a", Int(42))
	encoded := EncodeNameless(root)
	decoded, offset, err := DecodeNameless(encoded)
	require.NoError(t, err)
	require.Equal(t, len(encoded), offset)
	v, ok := decoded.Get("a")
	require.True(t, ok)
	require.Equal(t, Int(42), v)
}

func TestUnknownTag(t *testing.T) {
	_, _, _, err := Decode([]byte{99, 0, 0})
	require.Error(t, err)
	var unk *ErrUnknownTag
	require.ErrorAs(t, err, &unk)
	require.Equal(t, byte(99), unk.Tag)
}

func TestInferListOfMixedTypes(t *testing.T) {
	_, err := Infer([]any{"a", int32(1)})
	require.ErrorIs(t, err, ErrListOfMixedTypes)
}

func TestInferCompoundDeterministic(t *testing.T) {
	v := map[string]any{"b": int32(2), "a": int32(1)}
	tag, err := Infer(v)
	require.NoError(t, err)
	c := tag.(*Compound)
	require.Equal(t, []string{"a", "b"}, c.Keys())
}
