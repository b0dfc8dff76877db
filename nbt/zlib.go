package nbt

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// InflateZlib decompresses a zlib-wrapped NBT payload, as stored in region
// files. Grounded on the
// klauspost/compress dependency carried by go-theft-craft-server and
// ChickenIQ-VibeShitCraft in the retrieved pack.
func InflateZlib(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
