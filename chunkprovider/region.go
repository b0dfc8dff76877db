// Package chunkprovider also holds the region-file (.mca) loader: a header
// of 1024 (offset, sector-count) entries followed by zlib-compressed NBT
// chunk payloads, read lazily and cached per open file. Grounded on
// go-theft-craft-server's and ChickenIQ-VibeShitCraft's use of
// github.com/klauspost/compress for exactly this stream, with the region
// math (sector addressing, chunk-local coordinate packing) matching the
// Anvil format.
package chunkprovider

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Penguin-Spy/quasar/chunk"
	"github.com/Penguin-Spy/quasar/nbt"
	"github.com/Penguin-Spy/quasar/registry"
)

const (
	regionHeaderBytes = 8192 // 1024 entries x 4 bytes offset/size + 1024 x 4 bytes timestamp
	sectorSize        = 4096
)

// RegionLoader reads chunks out of a directory of Anvil region files
// ("r.<X>.<Z>.mca"), resolving each section's palette through a Registry.
// The zero value is not usable; use NewRegionLoader.
type RegionLoader struct {
	dir      string
	registry *registry.Registry

	height        int
	minSectionY   int
	airState      int32
	plainsBiomeID int32

	mu    sync.Mutex
	files map[[2]int32]*os.File
}

// NewRegionLoader returns a loader serving chunks out of dir, resolving
// block-state names against reg. height/minSectionY/airState describe the
// Chunk shape to build, matching the dimension these chunks
// are loaded into.
func NewRegionLoader(dir string, reg *registry.Registry, height, minSectionY int, airState, plainsBiomeID int32) *RegionLoader {
	return &RegionLoader{
		dir:           dir,
		registry:      reg,
		height:        height,
		minSectionY:   minSectionY,
		airState:      airState,
		plainsBiomeID: plainsBiomeID,
		files:         make(map[[2]int32]*os.File),
	}
}

// Close releases every region file handle this loader has opened.
func (rl *RegionLoader) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	var firstErr error
	for k, f := range rl.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(rl.files, k)
	}
	return firstErr
}

// Load implements Provider by reading (cx, cz) out of its region file, or
// reporting ok=false when the region, the chunk entry, or a fully-generated
// status tag is absent.
func (rl *RegionLoader) Load(cx, cz int32) (*chunk.Chunk, bool, error) {
	regionX, regionZ := cx>>5, cz>>5

	f, ok, err := rl.regionFile(regionX, regionZ)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	localX, localZ := cx&31, cz&31
	headerIndex := int(localX) + int(localZ)*32

	var entry [4]byte
	if _, err := f.ReadAt(entry[:], int64(headerIndex*4)); err != nil {
		return nil, false, &ErrBadRegionHeader{Path: f.Name(), Reason: err.Error()}
	}
	offsetSectors := uint32(entry[0])<<16 | uint32(entry[1])<<8 | uint32(entry[2])
	sectorCount := entry[3]
	if offsetSectors == 0 && sectorCount == 0 {
		return nil, false, nil // chunk was never generated
	}

	var lengthBuf [5]byte
	if _, err := f.ReadAt(lengthBuf[:], int64(offsetSectors)*sectorSize); err != nil {
		return nil, false, &ErrBadRegionHeader{Path: f.Name(), Reason: err.Error()}
	}
	length := uint32(lengthBuf[0])<<24 | uint32(lengthBuf[1])<<16 | uint32(lengthBuf[2])<<8 | uint32(lengthBuf[3])
	compressionScheme := lengthBuf[4]
	if compressionScheme != 2 {
		return nil, false, &ErrUnsupportedCompression{Scheme: compressionScheme}
	}

	compressed := make([]byte, length-1)
	if _, err := f.ReadAt(compressed, int64(offsetSectors)*sectorSize+5); err != nil {
		return nil, false, &ErrBadRegionHeader{Path: f.Name(), Reason: err.Error()}
	}

	raw, err := nbt.InflateZlib(compressed)
	if err != nil {
		return nil, false, err
	}

	_, root, _, err := nbt.Decode(raw)
	if err != nil {
		return nil, false, err
	}

	c, err := rl.chunkFromNBT(root)
	if err != nil {
		if _, notFull := err.(*ErrNotFullyGenerated); notFull {
			return nil, false, nil
		}
		return nil, false, err
	}
	return c, true, nil
}

func (rl *RegionLoader) regionFile(regionX, regionZ int32) (*os.File, bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := [2]int32{regionX, regionZ}
	if f, ok := rl.files[key]; ok {
		return f, true, nil
	}

	path := filepath.Join(rl.dir, fmt.Sprintf("r.%d.%d.mca", regionX, regionZ))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, false, err
	}
	if info.Size() < regionHeaderBytes {
		f.Close()
		return nil, false, &ErrBadRegionHeader{Path: path, Reason: "shorter than the 8KiB header"}
	}

	rl.files[key] = f
	return f, true, nil
}

func (rl *RegionLoader) chunkFromNBT(root *nbt.Compound) (*chunk.Chunk, error) {
	status := ""
	if statusTag, ok := root.Get("Status"); ok {
		if s, ok := statusTag.(nbt.String); ok {
			status = string(s)
		}
	}
	if status != "minecraft:full" {
		return nil, &ErrNotFullyGenerated{Status: status}
	}

	sectionsData := make([]chunk.SectionData, rl.height)
	for i := range sectionsData {
		// Default every section to air so a chunk whose NBT omits an
		// all-air section (a common Anvil optimization) still resolves.
		sectionsData[i] = chunk.SectionData{Palette: []int32{rl.airState}}
	}

	sectionsTag, ok := root.Get("sections")
	if !ok {
		return chunk.NewFromData(sectionsData, rl.minSectionY, rl.plainsBiomeID), nil
	}
	list, ok := sectionsTag.(*nbt.List)
	if !ok {
		return chunk.NewFromData(sectionsData, rl.minSectionY, rl.plainsBiomeID), nil
	}

	for _, item := range list.Items {
		sec, ok := item.(*nbt.Compound)
		if !ok {
			continue
		}
		yTag, ok := sec.Get("Y")
		if !ok {
			continue
		}
		y, ok := yTag.(nbt.Byte)
		if !ok {
			continue
		}
		idx := int(y) - rl.minSectionY
		if idx < 0 || idx >= len(sectionsData) {
			continue
		}

		sd, err := rl.sectionDataFrom(sec)
		if err != nil {
			return nil, err
		}
		sectionsData[idx] = sd
	}

	return chunk.NewFromData(sectionsData, rl.minSectionY, rl.plainsBiomeID), nil
}

func (rl *RegionLoader) sectionDataFrom(sec *nbt.Compound) (chunk.SectionData, error) {
	blockStatesTag, ok := sec.Get("block_states")
	if !ok {
		return chunk.SectionData{Palette: []int32{rl.airState}}, nil
	}
	blockStates, ok := blockStatesTag.(*nbt.Compound)
	if !ok {
		return chunk.SectionData{Palette: []int32{rl.airState}}, nil
	}

	paletteTag, ok := blockStates.Get("palette")
	if !ok {
		return chunk.SectionData{Palette: []int32{rl.airState}}, nil
	}
	paletteList, ok := paletteTag.(*nbt.List)
	if !ok {
		return chunk.SectionData{Palette: []int32{rl.airState}}, nil
	}

	palette := make([]int32, 0, len(paletteList.Items))
	for _, item := range paletteList.Items {
		entry, ok := item.(*nbt.Compound)
		if !ok {
			continue
		}
		nameTag, ok := entry.Get("Name")
		if !ok {
			continue
		}
		name, ok := nameTag.(nbt.String)
		if !ok {
			continue
		}

		var props map[string]string
		if propsTag, ok := entry.Get("Properties"); ok {
			if propsCompound, ok := propsTag.(*nbt.Compound); ok {
				props = make(map[string]string, propsCompound.Len())
				for _, k := range propsCompound.Keys() {
					v, _ := propsCompound.Get(k)
					if s, ok := v.(nbt.String); ok {
						props[k] = string(s)
					}
				}
			}
		}

		key := registry.StateKey(string(name), props)
		id, ok := rl.registry.ResolveBlockState(key)
		if !ok {
			return chunk.SectionData{}, &ErrUnresolvedBlockState{Name: key}
		}
		palette = append(palette, id)
	}
	if len(palette) == 0 {
		palette = []int32{rl.airState}
	}

	var blockStatesPacked []uint64
	if dataTag, ok := blockStates.Get("data"); ok {
		if longArray, ok := dataTag.(nbt.LongArray); ok {
			blockStatesPacked = make([]uint64, len(longArray))
			for i, v := range longArray {
				blockStatesPacked[i] = uint64(v)
			}
		}
	}

	return chunk.SectionData{Palette: palette, BlockStates: blockStatesPacked}, nil
}
