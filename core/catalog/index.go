package catalog

import (
	"fmt"

	"pindb/core/site"
)

// Index holds the derived lookup structures for one resource kind.
//
// ByURL is keyed by canonical URL and maps to every resource that lists a
// mirror of it; one canonical URL may legitimately belong to several
// resources (a shared backglass image, for instance), so callers must
// handle the multi-match case.
//
// ByID is last-writer-wins on duplicate ids; duplicates are a data-quality
// defect surfaced by the audit path, not a fatal condition.
type Index[T Resource] struct {
	ByURL map[string][]T
	ByID  map[string]T
	All   []T
}

// Duplicate records a resource id that appeared more than once within a
// kind during index construction.
type Duplicate struct {
	Kind  Kind
	ID    string
	Count int
}

func buildIndex[T Resource](kind Kind, games []*Game, pick func(*Game) []T) (Index[T], []Duplicate, error) {
	idx := Index[T]{
		ByURL: make(map[string][]T),
		ByID:  make(map[string]T),
	}
	counts := make(map[string]int)

	for _, g := range games {
		for _, item := range pick(g) {
			idx.All = append(idx.All, item)

			id := item.ResourceID()
			idx.ByID[id] = item
			counts[id]++

			for _, u := range item.Common().URLs {
				canon, err := site.Canonical(u.URL)
				if err != nil {
					return idx, nil, fmt.Errorf("index %s %s: %w", kind, id, err)
				}
				idx.ByURL[canon] = append(idx.ByURL[canon], item)
			}
		}
	}

	var dups []Duplicate
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, Duplicate{Kind: kind, ID: id, Count: n})
		}
	}
	return idx, dups, nil
}

// KindIndex is the kind-erased view of an Index, letting callers operate
// generically across all thirteen resource kinds.
type KindIndex struct {
	ByURL map[string][]Resource
	ByID  map[string]Resource
	All   []Resource
}

// Lookup returns the resources indexed at the canonical form of rawURL.
func (k KindIndex) Lookup(rawURL string) ([]Resource, error) {
	canon, err := site.Canonical(rawURL)
	if err != nil {
		return nil, err
	}
	return k.ByURL[canon], nil
}

func erase[T Resource](idx Index[T]) KindIndex {
	out := KindIndex{
		ByURL: make(map[string][]Resource, len(idx.ByURL)),
		ByID:  make(map[string]Resource, len(idx.ByID)),
		All:   make([]Resource, 0, len(idx.All)),
	}
	for u, items := range idx.ByURL {
		rs := make([]Resource, len(items))
		for i, item := range items {
			rs[i] = item
		}
		out.ByURL[u] = rs
	}
	for id, item := range idx.ByID {
		out.ByID[id] = item
	}
	for _, item := range idx.All {
		out.All = append(out.All, item)
	}
	return out
}
