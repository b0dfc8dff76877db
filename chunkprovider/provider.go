// Package chunkprovider implements the pluggable ChunkProvider capability:
// a region-file loader and a superflat generator, both producing
// chunk.Chunk values for a (cx, cz) coordinate.
package chunkprovider

import "github.com/Penguin-Spy/quasar/chunk"

// Provider is the capability over {load(cx, cz) -> Chunk | absent}
//.
type Provider interface {
	// Load returns the chunk at (cx, cz), or ok=false if none exists.
	Load(cx, cz int32) (c *chunk.Chunk, ok bool, err error)
}
