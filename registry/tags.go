package registry

import (
	"sort"
	"strings"

	"github.com/Penguin-Spy/quasar/proto"
)

// flattenAllTags replaces, in place, every "#other_tag" reference in each
// category's tag table with the flattened contents of the referenced tag in
// the same category. Cycles are detected per-walk with a visited set.
func (r *Registry) flattenAllTags() error {
	for category, cat := range r.tags {
		flattened := make(map[string][]string, len(cat))
		for tag := range cat {
			entries, err := r.flattenTag(category, cat, tag, make(map[string]bool))
			if err != nil {
				return err
			}
			flattened[tag] = entries
		}
		r.tags[category] = flattened
	}
	return nil
}

func (r *Registry) flattenTag(category string, cat map[string][]string, tag string, visited map[string]bool) ([]string, error) {
	if visited[tag] {
		return nil, &ErrCircularTag{Category: category, Tag: tag}
	}
	visited[tag] = true

	var out []string
	seen := make(map[string]bool)
	for _, entry := range cat[tag] {
		if strings.HasPrefix(entry, "#") {
			refTag := entry[1:]
			resolved, err := r.flattenTag(category, cat, refTag, visited)
			if err != nil {
				return nil, err
			}
			for _, e := range resolved {
				if !seen[e] {
					seen[e] = true
					out = append(out, e)
				}
			}
		} else if !seen[entry] {
			seen[entry] = true
			out = append(out, entry)
		}
	}

	delete(visited, tag)
	return out, nil
}

// encodeUpdateTagsPacket builds the single clientbound update_tags packet:
// varint(categories), per category { string(category), varint(tag_count),
// per tag { string(tag_id), varint(value_count), varint(network_id)... } }.
//
// Each flattened tag entry is resolved to its network id via the category's
// own finalized biMap (valid for block/item/entity_type tag categories,
// which share their category name with a maps[] entry); block identifiers
// resolve through the default block-state id when the category is "block".
func (r *Registry) encodeUpdateTagsPacket(tags map[string]map[string][]string) []byte {
	categories := make([]string, 0, len(tags))
	for category := range tags {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	w := proto.NewWriter()
	w.VarInt(int32(len(categories)))
	for _, category := range categories {
		tagNames := make([]string, 0, len(tags[category]))
		for name := range tags[category] {
			tagNames = append(tagNames, name)
		}
		sort.Strings(tagNames)

		w.String(category)
		w.VarInt(int32(len(tagNames)))
		for _, name := range tagNames {
			entries := tags[category][name]
			w.String(name)
			w.VarInt(int32(len(entries)))
			for _, entry := range entries {
				w.VarInt(r.resolveTagEntryNetworkID(category, entry))
			}
		}
	}
	return w.Bytes()
}

// resolveTagEntryNetworkID resolves a flattened tag entry identifier to a
// network id for wire encoding. Falls back to 0 for categories with no
// matching biMap (the entry is still meaningful to the embedder via
// GetTagEntries, just not independently network-addressable).
func (r *Registry) resolveTagEntryNetworkID(category, identifier string) int32 {
	if category == "block" || category == "minecraft:block" {
		if id, ok := r.blockStates.defaultByIdentifier[identifier]; ok {
			return id
		}
	}
	if id, ok := r.NetworkID(category, identifier); ok {
		return id
	}
	if id, ok := r.LookupStatic(category, identifier); ok {
		return id
	}
	return 0
}

// GetTagEntries returns a flattened tag's raw identifier list (post
// Finalize). Useful for embedders that need the identifiers themselves,
// not just their wire-encoded network ids.
func (r *Registry) GetTagEntries(category, tag string) ([]string, bool) {
	cat, ok := r.tags[category]
	if !ok {
		return nil, false
	}
	entries, ok := cat[tag]
	return entries, ok
}
