package registry

import "fmt"

// ErrRegistryFrozen is returned by SetData and AddTag when called after
// Finalize. The load-phase methods (LoadStaticMap, LoadDataPackCategory,
// LoadTags, LoadBlockStates) return no error and do not check for it.
var ErrRegistryFrozen = fmt.Errorf("registry: frozen after finalize")

// ErrNotFinalized is returned by GetNetworkData/GetNetworkTags before
// Finalize has run.
var ErrNotFinalized = fmt.Errorf("registry: not finalized yet")

// ErrCircularTag is returned by Finalize's tag-flattening pass when a tag's
// reference chain cycles back to itself.
type ErrCircularTag struct {
	Category string
	Tag      string
}

func (e *ErrCircularTag) Error() string {
	return fmt.Sprintf("registry: circular tag reference in category %q, tag %q", e.Category, e.Tag)
}

// ErrUnknownCategory is returned when a category name was never declared by
// LoadStaticMap/LoadDataPackCategory.
type ErrUnknownCategory struct {
	Category string
}

func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("registry: unknown category %q", e.Category)
}
