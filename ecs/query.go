package ecs

import "iter"

// Query caches the entities having a fixed set of component types. The cache
// is rebuilt by Execute only when the world's structure changed.
type Query struct {
	world       *World
	types       []ComponentType
	lastVersion uint64
	built       bool

	cachedEntities []*Entity
	cacheValid     bool
}

// NewQuery creates a Query over world for the given types.
func NewQuery(world *World, types ...ComponentType) *Query {
	return &Query{
		world: world,
		types: types,
	}
}

// Types returns the component types the query matches.
func (q *Query) Types() []ComponentType {
	return q.types
}

// Execute refreshes the cached entities for this frame.
// Called automatically by the Scheduler before each system runs.
func (q *Query) Execute() {
	if q.built && q.lastVersion == q.world.Version() {
		q.cacheValid = true
		return
	}

	q.cachedEntities = q.cachedEntities[:0]
	for e := range q.world.Entities() {
		if e.Has(q.types...) {
			q.cachedEntities = append(q.cachedEntities, e)
		}
	}

	q.lastVersion = q.world.Version()
	q.built = true
	q.cacheValid = true
}

// Entities returns the cached entities in spawn order. The slice is owned by
// the query and reused by later calls to Execute.
// Panics if Execute() has not been called.
func (q *Query) Entities() []*Entity {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}
	return q.cachedEntities
}

// Iter returns an iterator over the cached entities.
// Panics if Execute() has not been called.
func (q *Query) Iter() iter.Seq[*Entity] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(*Entity) bool) {
		for _, e := range q.cachedEntities {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of cached entities.
func (q *Query) Len() int {
	return len(q.cachedEntities)
}
