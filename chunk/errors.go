package chunk

import "fmt"

// ErrPaletteOverflow is returned by SetBlock when a subchunk's palette would
// need more than 8 bits per entry to represent its distinct block states.
var ErrPaletteOverflow = fmt.Errorf("chunk: palette overflow (bits_per_entry would exceed 8)")

// ErrOutOfRange is returned for a block position outside the chunk's
// vertical extent.
type ErrOutOfRange struct {
	Y int32
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("chunk: y=%d is outside this chunk's vertical range", e.Y)
}
