// Package relations implements directed relations between collections.
//
// A relation is a bipartite graph between a From handle domain and a To
// handle domain. OneToMany is built from two collections and a foreign
// key accessor; ManyToMany stores explicit forward and backward
// adjacency, and can be derived from existing relations through Chain
// and Sink composition. All relations are immutable once constructed
// and safe for concurrent readers.
package relations

import (
	"fmt"

	"github.com/hupe1980/transitgo/collection"
)

// Relation is the read-only contract implemented by OneToMany and
// ManyToMany.
type Relation[F, T any] interface {
	// From returns the set of From-handles with at least one association.
	From() collection.IdxSet[F]
	// Forward returns the union of the associations of the given
	// From-handles.
	Forward(from collection.IdxSet[F]) collection.IdxSet[T]
	// Backward returns the union of the associations of the given
	// To-handles, in the reverse direction.
	Backward(to collection.IdxSet[T]) collection.IdxSet[F]
}

// ErrUnresolvedRef is returned when a foreign key does not resolve
// during relation construction. No partial relation is ever produced.
type ErrUnresolvedRef struct {
	Relation string
	ID       string
}

func (e *ErrUnresolvedRef) Error() string {
	return fmt.Sprintf("indexing %s: id %q not found", e.Relation, e.ID)
}

// Corresponding projects an index set through an adjacency map,
// returning the union of the mapped sets of the input handles. Input
// handles absent from the map contribute nothing: at query time "no
// association" is a valid, silent outcome, unlike the unresolved
// foreign keys that fail relation construction.
func Corresponding[F, T any](m map[collection.Idx[F]]collection.IdxSet[T], from collection.IdxSet[F]) collection.IdxSet[T] {
	out := collection.NewIdxSet[T]()
	for idx := range from.All() {
		if s, ok := m[idx]; ok {
			out.UnionWith(s)
		}
	}
	return out
}

// OneToMany relates a "one" collection to a "many" collection where
// every many element references exactly one parent by id.
type OneToMany[O, M collection.Identified] struct {
	oneToMany map[collection.Idx[O]]collection.IdxSet[M]
	manyToOne map[collection.Idx[M]]collection.Idx[O]
}

// NewOneToMany indexes many against one. parentID reads the referenced
// parent id from a many element. If any foreign key does not resolve,
// construction fails with *ErrUnresolvedRef carrying name and the
// offending id.
func NewOneToMany[O, M collection.Identified](
	one *collection.CollectionWithID[O],
	many *collection.CollectionWithID[M],
	name string,
	parentID func(M) string,
) (*OneToMany[O, M], error) {
	oneToMany := make(map[collection.Idx[O]]collection.IdxSet[M])
	manyToOne := make(map[collection.Idx[M]]collection.Idx[O], many.Len())
	for manyIdx, obj := range many.All() {
		oneID := parentID(obj)
		oneIdx, ok := one.Lookup(oneID)
		if !ok {
			return nil, &ErrUnresolvedRef{Relation: name, ID: oneID}
		}
		manyToOne[manyIdx] = oneIdx
		s, ok := oneToMany[oneIdx]
		if !ok {
			s = collection.NewIdxSet[M]()
			oneToMany[oneIdx] = s
		}
		s.Add(manyIdx)
	}
	return &OneToMany[O, M]{oneToMany: oneToMany, manyToOne: manyToOne}, nil
}

// From returns the parents that have at least one child. Parents
// without children are absent from the adjacency and therefore from the
// result.
func (r *OneToMany[O, M]) From() collection.IdxSet[O] {
	out := collection.NewIdxSet[O]()
	for idx := range r.oneToMany {
		out.Add(idx)
	}
	return out
}

// Forward returns the union of the children of the given parents.
func (r *OneToMany[O, M]) Forward(from collection.IdxSet[O]) collection.IdxSet[M] {
	return Corresponding(r.oneToMany, from)
}

// Backward returns the parents of the given children. Distinct children
// under the same parent collapse into a single handle.
func (r *OneToMany[O, M]) Backward(to collection.IdxSet[M]) collection.IdxSet[O] {
	out := collection.NewIdxSet[O]()
	for idx := range to.All() {
		if oneIdx, ok := r.manyToOne[idx]; ok {
			out.Add(oneIdx)
		}
	}
	return out
}

// ManyToMany stores arbitrary-arity associations as mutually inverse
// forward and backward adjacency maps: v in forward[u] iff u in
// backward[v]. Both maps are always built together; no API mutates one
// without the other.
type ManyToMany[F, T any] struct {
	forward  map[collection.Idx[F]]collection.IdxSet[T]
	backward map[collection.Idx[T]]collection.IdxSet[F]
}

// FromForward builds a ManyToMany from a forward adjacency map, deriving
// backward as its exact inverse. The relation takes ownership of the
// map and its sets; the caller must not mutate them afterwards.
func FromForward[F, T any](forward map[collection.Idx[F]]collection.IdxSet[T]) *ManyToMany[F, T] {
	backward := make(map[collection.Idx[T]]collection.IdxSet[F])
	for fromIdx, tos := range forward {
		for toIdx := range tos.All() {
			s, ok := backward[toIdx]
			if !ok {
				s = collection.NewIdxSet[F]()
				backward[toIdx] = s
			}
			s.Add(fromIdx)
		}
	}
	return &ManyToMany[F, T]{forward: forward, backward: backward}
}

// Chain composes r1: From->Mid and r2: Mid->To into From->To by
// projecting each From-handle forward through both relations. Because
// projection distributes over union, projecting a multi-element set
// through the result equals the union of the singleton projections.
func Chain[F, M, T any](r1 Relation[F, M], r2 Relation[M, T]) *ManyToMany[F, T] {
	forward := make(map[collection.Idx[F]]collection.IdxSet[T])
	for idx := range r1.From().All() {
		mids := r1.Forward(collection.NewIdxSet(idx))
		forward[idx] = r2.Forward(mids)
	}
	return FromForward(forward)
}

// Sink composes r1: From->Mid and r2: To->Mid into From->To. Both
// inputs converge on the shared Mid domain: each From-handle is
// projected forward through r1, then backward through r2.
func Sink[F, M, T any](r1 Relation[F, M], r2 Relation[T, M]) *ManyToMany[F, T] {
	forward := make(map[collection.Idx[F]]collection.IdxSet[T])
	for idx := range r1.From().All() {
		mids := r1.Forward(collection.NewIdxSet(idx))
		forward[idx] = r2.Backward(mids)
	}
	return FromForward(forward)
}

// From returns the From-handles recorded in the forward adjacency.
func (r *ManyToMany[F, T]) From() collection.IdxSet[F] {
	out := collection.NewIdxSet[F]()
	for idx := range r.forward {
		out.Add(idx)
	}
	return out
}

// Forward returns the union of the forward associations of the given
// handles.
func (r *ManyToMany[F, T]) Forward(from collection.IdxSet[F]) collection.IdxSet[T] {
	return Corresponding(r.forward, from)
}

// Backward returns the union of the backward associations of the given
// handles.
func (r *ManyToMany[F, T]) Backward(to collection.IdxSet[T]) collection.IdxSet[F] {
	return Corresponding(r.backward, to)
}
