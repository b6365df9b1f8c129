package catalog

import "inmueblesv-catalog/internal/models"

// Favorites is an insertion-ordered set of listing identifiers.
// All operations are copy-on-write: the receiver is never mutated, so
// a Favorites value can be shared freely across goroutines once built.
type Favorites struct {
	ids []string
}

// NewFavorites builds a favorite set from persisted identifiers,
// dropping duplicates while keeping first-seen order.
func NewFavorites(ids []string) Favorites {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return Favorites{ids: out}
}

// Contains reports membership of id.
func (f Favorites) Contains(id string) bool {
	for _, have := range f.ids {
		if have == id {
			return true
		}
	}
	return false
}

// Toggle returns a new set with id added if absent or removed if
// present. Toggling twice returns to the original membership.
func (f Favorites) Toggle(id string) Favorites {
	if f.Contains(id) {
		out := make([]string, 0, len(f.ids)-1)
		for _, have := range f.ids {
			if have != id {
				out = append(out, have)
			}
		}
		return Favorites{ids: out}
	}
	out := make([]string, len(f.ids), len(f.ids)+1)
	copy(out, f.ids)
	return Favorites{ids: append(out, id)}
}

// IDs returns the members in insertion order. The returned slice is a
// copy.
func (f Favorites) IDs() []string {
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

// Len returns the number of members.
func (f Favorites) Len() int {
	return len(f.ids)
}

// Select returns the records whose id is in the set, preserving record
// order. Stale identifiers of deleted records are silently skipped.
func (f Favorites) Select(records []models.Property) []models.Property {
	out := make([]models.Property, 0, len(f.ids))
	for _, r := range records {
		if f.Contains(r.ID) {
			out = append(out, r)
		}
	}
	return out
}
