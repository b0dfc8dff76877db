package dimension

import "fmt"

// ErrUnknownBlockState is returned by SetBlock when the registry cannot
// resolve the given identifier/state key.
type ErrUnknownBlockState struct {
	Query string
}

func (e *ErrUnknownBlockState) Error() string {
	return fmt.Sprintf("dimension: unknown block state %q", e.Query)
}

// ErrNoChunk is returned by SetBlock when the covering chunk is absent
// (ungenerated, or outside the provider's coverage).
type ErrNoChunk struct {
	CX, CZ int32
}

func (e *ErrNoChunk) Error() string {
	return fmt.Sprintf("dimension: no chunk at (%d, %d)", e.CX, e.CZ)
}
