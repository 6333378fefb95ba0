package memengine

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// collection keeps records by id in insertion order.
type collection[T any] struct {
	byID  map[uuid.UUID]T
	order []uuid.UUID
}

func newCollection[T any]() collection[T] {
	return collection[T]{byID: make(map[uuid.UUID]T)}
}

func (c collection[T]) clone() collection[T] {
	return collection[T]{byID: maps.Clone(c.byID), order: slices.Clone(c.order)}
}

func (c collection[T]) get(id uuid.UUID) (T, bool) {
	record, ok := c.byID[id]
	return record, ok
}

func (c collection[T]) filter(keep func(T) bool) []T {
	records := make([]T, 0)

	for _, id := range c.order {
		if record := c.byID[id]; keep == nil || keep(record) {
			records = append(records, record)
		}
	}

	return records
}

func (c collection[T]) exists(match func(T) bool) bool {
	for _, record := range c.byID {
		if match(record) {
			return true
		}
	}

	return false
}

func (c *collection[T]) put(id uuid.UUID, record T) {
	if _, exists := c.byID[id]; !exists {
		c.order = append(c.order, id)
	}

	c.byID[id] = record
}

func (c *collection[T]) remove(id uuid.UUID) {
	if _, exists := c.byID[id]; !exists {
		return
	}

	delete(c.byID, id)
	c.order = slices.DeleteFunc(c.order, func(candidate uuid.UUID) bool { return candidate == id })
}

func (c *collection[T]) removeWhere(match func(T) bool) {
	for _, id := range slices.Clone(c.order) {
		if match(c.byID[id]) {
			c.remove(id)
		}
	}
}
