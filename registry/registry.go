// Package registry implements the process-wide, immutable-after-finalize
// identifier<->network-id maps, data-pack tables, and tag hierarchies.
// It is the authority other components query to turn identifiers into
// wire-ready network ids and pre-encoded packets.
package registry

import (
	"sort"

	"github.com/Penguin-Spy/quasar/nbt"
	"github.com/Penguin-Spy/quasar/proto"
)

// biMap is a frozen-after-load bidirectional identifier<->network-id map.
type biMap struct {
	idToName map[int32]string
	nameToID map[string]int32
}

func newBiMap() *biMap {
	return &biMap{idToName: make(map[int32]string), nameToID: make(map[string]int32)}
}

func (m *biMap) set(id int32, name string) {
	m.idToName[id] = name
	m.nameToID[name] = id
}

// dataCategory holds one data-pack category's entries across the load and
// embedding phases: insertion order plus each entry's payload (nil = the
// "default" sentinel).
type dataCategory struct {
	order   []string
	payload map[string]*nbt.Compound
}

func newDataCategory() *dataCategory {
	return &dataCategory{payload: make(map[string]*nbt.Compound)}
}

func (d *dataCategory) set(id string, payload *nbt.Compound) {
	if _, exists := d.payload[id]; !exists {
		d.order = append(d.order, id)
	}
	d.payload[id] = payload
}

// Registry is the process-wide registry. The zero value is not usable; use
// New.
type Registry struct {
	maps map[string]*biMap
	data map[string]*dataCategory
	tags map[string]map[string][]string // category -> tag name -> entries

	blockStates *blockStateTable

	frozen           bool
	networkDataOrder []string
	networkData      map[string][]byte
	networkTags      []byte
}

// New returns an empty registry ready for the load phase.
func New() *Registry {
	return &Registry{
		maps:        make(map[string]*biMap),
		data:        make(map[string]*dataCategory),
		tags:        make(map[string]map[string][]string),
		blockStates: newBlockStateTable(),
	}
}

// LoadStaticMap freezes a fixed identifier<->network-id map for a category
// with statically known client-side content (entity types, items, menus,
// potions, particles, sound events, ...). Network ids are assigned
// 0-based in slice order.
func (r *Registry) LoadStaticMap(category string, identifiers []string) {
	m := newBiMap()
	for i, name := range identifiers {
		m.set(int32(i), name)
	}
	r.maps[category] = m
}

// LookupStatic resolves an identifier to its static network id.
func (r *Registry) LookupStatic(category, identifier string) (int32, bool) {
	m, ok := r.maps[category]
	if !ok {
		return 0, false
	}
	id, ok := m.nameToID[identifier]
	return id, ok
}

// LoadDataPackCategory declares a data-pack category and seeds it with
// core-datapack entries, each defaulting to the "default" sentinel. An
// empty maps[category] entry is created too, so other code may hold
// references before Finalize assigns real network ids.
func (r *Registry) LoadDataPackCategory(category string, coreEntries []string) {
	dc := newDataCategory()
	for _, e := range coreEntries {
		dc.set(e, nil)
	}
	r.data[category] = dc
	if _, ok := r.maps[category]; !ok {
		r.maps[category] = newBiMap()
	}
}

// SetData adds or overwrites a data-pack entry during the embedding phase.
// payload == nil encodes the "default" sentinel. Fails with
// ErrRegistryFrozen after Finalize.
func (r *Registry) SetData(category, identifier string, payload *nbt.Compound) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	dc, ok := r.data[category]
	if !ok {
		dc = newDataCategory()
		r.data[category] = dc
	}
	dc.set(identifier, payload)
	return nil
}

// LoadTags declares a category's core-datapack tag tables.
func (r *Registry) LoadTags(category string, tags map[string][]string) {
	cat, ok := r.tags[category]
	if !ok {
		cat = make(map[string][]string)
		r.tags[category] = cat
	}
	for tag, entries := range tags {
		cat[tag] = append([]string(nil), entries...)
	}
}

// AddTag appends (or creates) entries on a tag during the embedding phase.
func (r *Registry) AddTag(category, tag string, entries []string) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	cat, ok := r.tags[category]
	if !ok {
		cat = make(map[string][]string)
		r.tags[category] = cat
	}
	cat[tag] = append(cat[tag], entries...)
	return nil
}

// Frozen reports whether Finalize has already run.
func (r *Registry) Frozen() bool { return r.frozen }

// Finalize performs the four-step finalization: assign data-pack network
// ids, pre-encode registry_data packets, flatten tags, pre-encode the
// update_tags packet. Calling it again is a no-op.
func (r *Registry) Finalize() error {
	if r.frozen {
		return nil
	}

	r.networkData = make(map[string][]byte)

	// Deterministic category order: sorted, so repeated runs are stable.
	categories := make([]string, 0, len(r.data))
	for cat := range r.data {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	r.networkDataOrder = categories

	for _, category := range categories {
		dc := r.data[category]
		m := newBiMap()
		for i, name := range dc.order {
			m.set(int32(i), name)
		}
		r.maps[category] = m
		r.networkData[category] = encodeRegistryDataPacket(category, dc)
	}

	if err := r.flattenAllTags(); err != nil {
		return err
	}
	r.networkTags = r.encodeUpdateTagsPacket(r.tags)

	r.frozen = true
	return nil
}

// encodeRegistryDataPacket builds one clientbound registry_data packet body:
// string(category), varint(count), per entry { string(id), bool(has_payload),
// [nbt payload] }.
func encodeRegistryDataPacket(category string, dc *dataCategory) []byte {
	w := proto.NewWriter()
	w.String(category)
	w.VarInt(int32(len(dc.order)))
	for _, id := range dc.order {
		w.String(id)
		payload := dc.payload[id]
		if payload == nil {
			w.Bool(false)
		} else {
			w.Bool(true)
			w.Raw(nbt.EncodeNameless(payload))
		}
	}
	return w.Bytes()
}

// GetNetworkData returns the ordered list of pre-encoded registry_data
// packet bodies. Fails with ErrNotFinalized before Finalize.
func (r *Registry) GetNetworkData() ([][]byte, error) {
	if !r.frozen {
		return nil, ErrNotFinalized
	}
	out := make([][]byte, 0, len(r.networkDataOrder))
	for _, cat := range r.networkDataOrder {
		out = append(out, r.networkData[cat])
	}
	return out, nil
}

// GetNetworkTags returns the single pre-encoded update_tags packet body.
// Fails with ErrNotFinalized before Finalize.
func (r *Registry) GetNetworkTags() ([]byte, error) {
	if !r.frozen {
		return nil, ErrNotFinalized
	}
	return r.networkTags, nil
}

// NetworkID resolves a finalized data-pack category identifier to its
// 0-based network id.
func (r *Registry) NetworkID(category, identifier string) (int32, bool) {
	m, ok := r.maps[category]
	if !ok {
		return 0, false
	}
	id, ok := m.nameToID[identifier]
	return id, ok
}

// Identifier resolves a finalized data-pack category network id back to its
// identifier.
func (r *Registry) Identifier(category string, networkID int32) (string, bool) {
	m, ok := r.maps[category]
	if !ok {
		return "", false
	}
	name, ok := m.idToName[networkID]
	return name, ok
}
