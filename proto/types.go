package proto

import (
	"fmt"

	"github.com/google/uuid"
)

// BlockPos is a signed block-grid coordinate triple. Wire form packs
// x:26 | z:26 | y:12 into 64 bits.
type BlockPos struct {
	X, Y, Z int32
}

// Vector3 is a floating-point entity position.
type Vector3 struct {
	X, Y, Z float64
}

// packPosition encodes a BlockPos into the packed 64-bit wire form.
func packPosition(p BlockPos) uint64 {
	x := uint64(p.X) & 0x3FFFFFF
	z := uint64(p.Z) & 0x3FFFFFF
	y := uint64(p.Y) & 0xFFF
	return (x << 38) | (z << 12) | y
}

// unpackPosition decodes the packed 64-bit wire form, sign-extending each
// field.
func unpackPosition(v uint64) BlockPos {
	x := signExtend(int64(v>>38)&0x3FFFFFF, 26)
	z := signExtend(int64(v>>12)&0x3FFFFFF, 26)
	y := signExtend(int64(v)&0xFFF, 12)
	return BlockPos{X: int32(x), Y: int32(y), Z: int32(z)}
}

func signExtend(v int64, bits uint) int64 {
	shift := 64 - bits
	return (v << shift) >> shift
}

// Identifier is a namespace:name token pair, interned as a plain string and
// compared by value.
type Identifier string

// NewIdentifier joins a namespace and name with ':'.
func NewIdentifier(namespace, name string) Identifier {
	return Identifier(namespace + ":" + name)
}

func (id Identifier) String() string { return string(id) }

// UUIDHyphenated renders u in the canonical hyphenated hex form.
func UUIDHyphenated(u uuid.UUID) string { return u.String() }

// UUIDPlain renders u as 32 lowercase hex digits without hyphens, the form
// used by the session server's `id` field.
func UUIDPlain(u uuid.UUID) string {
	return fmt.Sprintf("%x", u[:])
}

// ParsePlainUUID parses a hyphen-less 32 hex digit UUID, as returned by
// Mojang's session server.
func ParsePlainUUID(s string) (uuid.UUID, error) {
	if len(s) != 32 {
		return uuid.UUID{}, fmt.Errorf("proto: plain uuid must be 32 hex chars, got %d", len(s))
	}
	hyphenated := s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32]
	return uuid.Parse(hyphenated)
}
