package registry

import (
	"sort"
	"strconv"
	"strings"
)

// BlockStateDef describes one row of the block-state load table: a block
// identifier, whether this row is the block's default state, and its
// property=value pairs.
type BlockStateDef struct {
	Identifier string
	Default    bool
	Properties map[string]string
}

// StateKey computes "name[k1=v1,k2=v2,...]" with properties sorted
// lexicographically by key, or just "name" when there are no properties.
func StateKey(identifier string, properties map[string]string) string {
	if len(properties) == 0 {
		return identifier
	}
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(identifier)
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(properties[k])
	}
	b.WriteByte(']')
	return b.String()
}

// blockStateTable resolves three query forms: numeric network id, bare
// identifier (returns the default state), and a full state key.
type blockStateTable struct {
	idToKey             map[int32]string
	keyToID             map[string]int32
	defaultByIdentifier map[string]int32
	loaded              bool
}

func newBlockStateTable() *blockStateTable {
	return &blockStateTable{
		idToKey:             make(map[int32]string),
		keyToID:             make(map[string]int32),
		defaultByIdentifier: make(map[string]int32),
	}
}

// LoadBlockStates freezes the block-state table from an ordered list of
// rows; network ids are assigned 0-based in slice order.
func (r *Registry) LoadBlockStates(defs []BlockStateDef) {
	t := r.blockStates
	for i, def := range defs {
		id := int32(i)
		key := StateKey(def.Identifier, def.Properties)
		t.idToKey[id] = key
		t.keyToID[key] = id
		if def.Default {
			t.defaultByIdentifier[def.Identifier] = id
		}
	}
	t.loaded = true
}

// BlockStateByKey resolves a full state key ("name[k=v,...]") to its
// network id.
func (r *Registry) BlockStateByKey(key string) (int32, bool) {
	id, ok := r.blockStates.keyToID[key]
	return id, ok
}

// BlockStateDefault resolves a bare block identifier to its default state's
// network id.
func (r *Registry) BlockStateDefault(identifier string) (int32, bool) {
	id, ok := r.blockStates.defaultByIdentifier[identifier]
	return id, ok
}

// BlockStateKey resolves a network id back to its state key.
func (r *Registry) BlockStateKey(id int32) (string, bool) {
	key, ok := r.blockStates.idToKey[id]
	return key, ok
}

// ResolveBlockState resolves any of the three query forms: numeric network
// id, a bare identifier (returns the default state), or a full
// "name[k=v,...]" state key.
func (r *Registry) ResolveBlockState(query string) (int32, bool) {
	if id, ok := r.BlockStateByKey(query); ok {
		return id, ok
	}
	if n, err := strconv.ParseInt(query, 10, 32); err == nil {
		if _, ok := r.BlockStateKey(int32(n)); ok {
			return int32(n), true
		}
	}
	return r.BlockStateDefault(query)
}
