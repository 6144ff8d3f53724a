package maps

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// StableSortedKeys returns the map's keys in ascending order, so iteration
// over map-derived data is identical on every node.
func StableSortedKeys[T constraints.Ordered, V any](m map[T]V) []T {
	keys := make([]T, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
