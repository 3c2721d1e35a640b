package collection

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// IdxSet is a deduplicated set of handles of one collection type.
// It wraps a roaring bitmap, so iteration always runs in ascending
// handle order no matter the insertion order: two equal sets iterate
// identically.
//
// The zero value is not usable for writes; create sets with NewIdxSet.
// Like a Go map, an IdxSet passed by value shares its storage with the
// original.
type IdxSet[T any] struct {
	rb *roaring.Bitmap
}

// NewIdxSet creates a set containing the given handles.
func NewIdxSet[T any](idxs ...Idx[T]) IdxSet[T] {
	s := IdxSet[T]{rb: roaring.New()}
	for _, idx := range idxs {
		s.rb.Add(idx.v)
	}
	return s
}

// Add inserts a handle into the set. Adding a handle that is already
// present is a no-op.
func (s IdxSet[T]) Add(idx Idx[T]) {
	s.rb.Add(idx.v)
}

// Contains reports whether the handle is in the set.
func (s IdxSet[T]) Contains(idx Idx[T]) bool {
	return s.rb != nil && s.rb.Contains(idx.v)
}

// Len returns the number of handles in the set.
func (s IdxSet[T]) Len() int {
	if s.rb == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set contains no handles.
func (s IdxSet[T]) IsEmpty() bool {
	return s.rb == nil || s.rb.IsEmpty()
}

// UnionWith adds every handle of other to s.
func (s IdxSet[T]) UnionWith(other IdxSet[T]) {
	if other.rb == nil {
		return
	}
	s.rb.Or(other.rb)
}

// Union returns a new set holding every handle present in s or other.
// Neither input is modified.
func (s IdxSet[T]) Union(other IdxSet[T]) IdxSet[T] {
	out := s.Clone()
	out.UnionWith(other)
	return out
}

// Equal reports whether both sets contain exactly the same handles.
func (s IdxSet[T]) Equal(other IdxSet[T]) bool {
	if s.rb == nil || other.rb == nil {
		return s.Len() == other.Len()
	}
	return s.rb.Equals(other.rb)
}

// Clone returns a deep copy of the set.
func (s IdxSet[T]) Clone() IdxSet[T] {
	if s.rb == nil {
		return NewIdxSet[T]()
	}
	return IdxSet[T]{rb: s.rb.Clone()}
}

// All returns an iterator over the handles in ascending handle order.
func (s IdxSet[T]) All() iter.Seq[Idx[T]] {
	return func(yield func(Idx[T]) bool) {
		if s.rb == nil {
			return
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(Idx[T]{v: it.Next()}) {
				return
			}
		}
	}
}

// Slice returns the handles as a sorted slice.
func (s IdxSet[T]) Slice() []Idx[T] {
	if s.rb == nil {
		return nil
	}
	out := make([]Idx[T], 0, s.Len())
	for _, v := range s.rb.ToArray() {
		out = append(out, Idx[T]{v: v})
	}
	return out
}
