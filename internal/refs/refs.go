// Package refs provides the link-target resolver and the shared
// reference store consumed by the markup engine.
package refs

// TableResolver resolves link targets through a plain mapping of target
// name to reference id. It satisfies markup.LinkResolver.
type TableResolver map[string]string

// ResolveLink looks target up in the table. The origin of the snippet is
// not consulted; the table is global.
func (t TableResolver) ResolveLink(target, _ string) (string, bool) {
	id, ok := t[target]
	return id, ok
}

// MemoryStore is an append-only collector of resolved reference ids. It
// satisfies markup.RefStore. Ids are kept in insertion order, duplicates
// included.
type MemoryStore struct {
	ids []string
}

// StoreRef appends id to the store
func (s *MemoryStore) StoreRef(id string) {
	s.ids = append(s.ids, id)
}

// IDs returns the stored ids in insertion order
func (s *MemoryStore) IDs() []string {
	return s.ids
}
