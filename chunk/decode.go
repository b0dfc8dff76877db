package chunk

import "github.com/Penguin-Spy/quasar/proto"

// Decode parses a chunk's GetData() output (including its length prefix)
// back into palette/per-cell state, mirroring the exact layout GetData
// writes. It exists primarily to drive the wire-form round-trip property
//; it is not used on the hot path (the server
// never needs to decode its own chunk packets).
func Decode(framed []byte, height int, minSectionY int, plainsBiomeID int32) (*Chunk, error) {
	outer := proto.NewReader(framed)
	length, err := outer.VarInt()
	if err != nil {
		return nil, err
	}
	body, err := outer.Read(int(length))
	if err != nil {
		return nil, err
	}

	r := proto.NewReader(body)
	r.SetBoundary(len(body))

	c := &Chunk{
		sections:       make([]*Subchunk, height),
		verticalOffset: -minSectionY,
		plainsBiomeID:  plainsBiomeID,
	}

	for i := 0; i < height; i++ {
		if _, err := r.Short(); err != nil { // block count, unused
			return nil, err
		}
		bitsByte, err := r.Byte()
		if err != nil {
			return nil, err
		}
		bits := bitsByte

		var sub *Subchunk
		if bits == 0 {
			single, err := r.VarInt()
			if err != nil {
				return nil, err
			}
			sub = NewSingleValuedSubchunk(single)
		} else {
			count, err := r.VarInt()
			if err != nil {
				return nil, err
			}
			paletteLen := count - 1
			palette := make([]int32, paletteLen)
			contents := make(map[int32]int, paletteLen)
			for j := range palette {
				v, err := r.VarInt()
				if err != nil {
					return nil, err
				}
				palette[j] = v
				contents[v] = j
			}
			epl := entriesPerLong(bits)
			numLongs := (entriesPerSect + epl - 1) / epl
			data := make([]uint64, numLongs)
			for j := range data {
				v, err := r.Long()
				if err != nil {
					return nil, err
				}
				data[j] = uint64(v)
			}
			sub = &Subchunk{bitsPerEntry: bits, palette: palette, paletteContents: contents, data: data}
		}

		// Biome palette: byte(0), varint(biome id) — consume and discard.
		if _, err := r.Byte(); err != nil {
			return nil, err
		}
		if _, err := r.VarInt(); err != nil {
			return nil, err
		}

		c.sections[i] = sub
	}

	return c, nil
}
