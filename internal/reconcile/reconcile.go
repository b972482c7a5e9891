// Package reconcile merges a client-submitted list of sub-items against a
// parent's persisted children. Matching is by identifier: matched children are
// patched in place, items without an identifier become new children, items
// referencing unknown identifiers are dropped. The merged list replaces the
// parent's children wholesale, so any persisted child omitted from the input
// is removed on save.
package reconcile

import "fmt"

// MatchFunc resolves one incoming request item against the parent's current
// children. It returns the child to keep (existing and patched, or newly
// constructed), nil to drop the item, or an error to abort the whole merge.
type MatchFunc[R any, C any] func(req R) (*C, error)

// Merge runs match over every incoming item in order and collects the
// survivors. The output ordering follows the incoming list, not the persisted
// one. A nil result drops the item silently; an error aborts everything, so a
// new child that fails validation fails the whole parent save atomically.
func Merge[R any, C any](incoming []R, match MatchFunc[R, C]) ([]C, error) {
	merged := make([]C, 0, len(incoming))
	for i, req := range incoming {
		child, err := match(req)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if child == nil {
			continue
		}
		merged = append(merged, *child)
	}
	return merged, nil
}
