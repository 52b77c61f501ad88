package soccermarkets

import (
	"encoding/json"
	"fmt"
)

// HashLookup assigns stable, dense indices to distinct comparable items and
// supports O(1) lookup in both directions. It generalizes the name<->index
// bookkeeping that the teacher's simulator.go threaded through a map and a
// slice by hand (see getTeamIndex) into a reusable generic container, as
// brumby's hash_lookup.rs does for the original engine.
type HashLookup[T comparable] struct {
	itemToIndex map[T]int
	indexToItem []T
}

// NewHashLookup returns an empty lookup with capacity pre-reserved.
func NewHashLookup[T comparable](capacity int) HashLookup[T] {
	return HashLookup[T]{
		itemToIndex: make(map[T]int, capacity),
		indexToItem: make([]T, 0, capacity),
	}
}

// HashLookupFrom builds a lookup from a slice of distinct items, in order.
// It panics if the slice contains a duplicate.
func HashLookupFrom[T comparable](items []T) HashLookup[T] {
	hl := NewHashLookup[T](len(items))
	for _, item := range items {
		hl.Push(item)
	}
	return hl
}

// Push appends item, assigning it the next index. It panics if item is
// already present.
func (h *HashLookup[T]) Push(item T) int {
	if prev, ok := h.itemToIndex[item]; ok {
		panic(fmt.Sprintf("duplicate item at index %d, previously at %d", len(h.indexToItem), prev))
	}
	idx := len(h.indexToItem)
	h.itemToIndex[item] = idx
	h.indexToItem = append(h.indexToItem, item)
	return idx
}

// ItemAt returns the item at the given index. It panics if index is out of
// range.
func (h HashLookup[T]) ItemAt(index int) T {
	if index < 0 || index >= len(h.indexToItem) {
		panic(fmt.Sprintf("no item at index %d", index))
	}
	return h.indexToItem[index]
}

// IndexOf returns the index of item and whether it was found.
func (h HashLookup[T]) IndexOf(item T) (int, bool) {
	idx, ok := h.itemToIndex[item]
	return idx, ok
}

// Len returns the number of distinct items held.
func (h HashLookup[T]) Len() int {
	return len(h.indexToItem)
}

// IsEmpty reports whether the lookup holds no items.
func (h HashLookup[T]) IsEmpty() bool {
	return len(h.indexToItem) == 0
}

// Items returns the items in index order. The caller must not mutate it.
func (h HashLookup[T]) Items() []T {
	return h.indexToItem
}

// MarshalJSON encodes a lookup as its items, in index order: the index
// assignment itself is recoverable (and is reassigned) on decode, since only
// the ordered item list -- not the derived map -- needs to survive a
// round-trip through a Fit request or Price response file.
func (h HashLookup[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.indexToItem)
}

func (h *HashLookup[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*h = HashLookupFrom(items)
	return nil
}
