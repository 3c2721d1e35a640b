// Package collection provides id-indexed, append-only object collections
// and the typed handles used to reference their elements.
//
// A CollectionWithID assigns each inserted object a stable Idx handle.
// Handles are only meaningful relative to the collection instance that
// issued them; the type parameter makes mixing handles of different
// object types a compile error.
package collection

import (
	"fmt"
	"iter"
)

// Identified is the capability required of objects stored in a
// CollectionWithID: a stable external identifier.
type Identified interface {
	GetID() string
}

// Idx is an opaque, totally ordered handle to one element of one
// collection instance. The zero value refers to the first element of
// whatever collection it came from; never fabricate handles.
type Idx[T any] struct {
	v uint32
}

// ErrDuplicateID is returned when an object with an already-known
// external identifier is inserted into a collection.
type ErrDuplicateID struct {
	ID string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("identifier %q already exists", e.ID)
}

// CollectionWithID stores objects of one type and indexes them by their
// external identifier. Insertion order determines handle order.
type CollectionWithID[T Identified] struct {
	objects []T
	idToIdx map[string]Idx[T]
}

// NewCollectionWithID builds a collection from the given objects.
// It fails with *ErrDuplicateID if two objects share an identifier.
func NewCollectionWithID[T Identified](objects []T) (*CollectionWithID[T], error) {
	c := &CollectionWithID[T]{
		objects: make([]T, 0, len(objects)),
		idToIdx: make(map[string]Idx[T], len(objects)),
	}
	for _, obj := range objects {
		if _, err := c.Push(obj); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustCollectionWithID is like NewCollectionWithID but panics on error.
// Intended for tests and static data.
func MustCollectionWithID[T Identified](objects []T) *CollectionWithID[T] {
	c, err := NewCollectionWithID(objects)
	if err != nil {
		panic(err)
	}
	return c
}

// Push appends an object and returns its new handle.
// It fails with *ErrDuplicateID if the identifier is already present.
func (c *CollectionWithID[T]) Push(obj T) (Idx[T], error) {
	id := obj.GetID()
	if _, ok := c.idToIdx[id]; ok {
		return Idx[T]{}, &ErrDuplicateID{ID: id}
	}
	idx := Idx[T]{v: uint32(len(c.objects))}
	c.objects = append(c.objects, obj)
	if c.idToIdx == nil {
		c.idToIdx = make(map[string]Idx[T])
	}
	c.idToIdx[id] = idx
	return idx, nil
}

// Lookup returns the handle for the given external identifier.
func (c *CollectionWithID[T]) Lookup(id string) (Idx[T], bool) {
	idx, ok := c.idToIdx[id]
	return idx, ok
}

// Get dereferences a handle. The handle must come from this collection.
func (c *CollectionWithID[T]) Get(idx Idx[T]) T {
	return c.objects[idx.v]
}

// Len returns the number of objects in the collection.
func (c *CollectionWithID[T]) Len() int {
	return len(c.objects)
}

// All iterates over (handle, object) pairs in handle order.
func (c *CollectionWithID[T]) All() iter.Seq2[Idx[T], T] {
	return func(yield func(Idx[T], T) bool) {
		for i, obj := range c.objects {
			if !yield(Idx[T]{v: uint32(i)}, obj) {
				return
			}
		}
	}
}

// Idxs returns the set of all handles issued by this collection.
func (c *CollectionWithID[T]) Idxs() IdxSet[T] {
	s := NewIdxSet[T]()
	for i := range c.objects {
		s.Add(Idx[T]{v: uint32(i)})
	}
	return s
}
