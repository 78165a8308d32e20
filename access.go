package recs

// R marks a component type for read-only access within an Access/Query.
type R[T Component] struct{}

// W marks a component type for read-write access within an Access/Query.
type W[T Component] struct{}

// With marks a component type as a required filter, with no accessor
// exposed for it: the query matches entities that carry it, but never
// reads or writes it.
type With[T Component] struct{}

// accessSpec is implemented by R[T], W[T] and With[T] so a fixed-arity
// AccessN can build its access/write masks generically over its slots.
type accessSpec interface {
	typeID() TypeID
	writes() bool
}

func (R[T]) typeID() TypeID    { return TypeOf[T]() }
func (R[T]) writes() bool      { return false }
func (W[T]) typeID() TypeID    { return TypeOf[T]() }
func (W[T]) writes() bool      { return true }
func (With[T]) typeID() TypeID { return TypeOf[T]() }
func (With[T]) writes() bool   { return false }

func buildMasks(specs ...accessSpec) (access, write ComponentMask) {
	for _, s := range specs {
		t := s.typeID()
		access.Set(t)
		if s.writes() {
			write.Set(t)
		}
	}
	return access, write
}

// queryIterator is the shared state-machine driving every QueryN: walk the
// cached archetype list for the access mask, then every chunk within each
// archetype, skipping empty slots (chunks are never shrunk, so some slots
// between 0 and MaxEntitiesPerChunk may be unoccupied at any time).
type queryIterator struct {
	archetypes []*Archetype
	archIdx    int
	chunkIdx   int
	slot       int
	chunk      *Chunk
	entity     EntityID
}

func newQueryIterator(archetypes []*Archetype) queryIterator {
	return queryIterator{archetypes: archetypes, archIdx: 0, chunkIdx: 0, slot: -1}
}

func (it *queryIterator) next() bool {
	for {
		if it.chunk != nil {
			it.slot++
			for it.slot < MaxEntitiesPerChunk {
				if it.chunk.ids[it.slot] != InvalidEntity {
					it.entity = it.chunk.ids[it.slot]
					return true
				}
				it.slot++
			}
		}
		// advance to the next chunk, possibly in the next archetype
		for it.archIdx < len(it.archetypes) {
			chunks := it.archetypes[it.archIdx].chunks
			if it.chunkIdx < len(chunks) {
				it.chunk = chunks[it.chunkIdx]
				it.chunkIdx++
				it.slot = -1
				break
			}
			it.archIdx++
			it.chunkIdx = 0
			it.chunk = nil
		}
		if it.chunk == nil {
			return false
		}
	}
}

// Access1 builds the access/write mask for a single-slot query and hands
// out Query1 instances over a World.
type Access1[A accessSpec] struct {
	access, write ComponentMask
}

// NewAccess1 computes the access mask for A once; the same Access1 value
// can drive any number of queries.
func NewAccess1[A accessSpec]() Access1[A] {
	var a A
	access, write := buildMasks(a)
	return Access1[A]{access: access, write: write}
}

func (a Access1[A]) Mask() ComponentMask      { return a.access }
func (a Access1[A]) WriteMask() ComponentMask { return a.write }

// Query returns an iterator over every entity in w matching a's mask.
func (a Access1[A]) Query(w *World) *Query1[A] {
	return &Query1[A]{it: newQueryIterator(w.archetypesMatching(a.access)), id: slotID[A]()}
}

// Query1 iterates entities matching a single-slot Access1.
type Query1[A accessSpec] struct {
	it queryIterator
	id TypeID
}

// Next advances to the next matching entity, returning false when
// exhausted.
func (q *Query1[A]) Next() bool { return q.it.next() }

// Entity returns the current entity.
func (q *Query1[A]) Entity() EntityID { return q.it.entity }

func slotID[A accessSpec]() TypeID {
	var a A
	return a.typeID()
}

// Access2 builds the access/write mask for a two-slot query.
type Access2[A, B accessSpec] struct {
	access, write ComponentMask
}

func NewAccess2[A, B accessSpec]() Access2[A, B] {
	var a A
	var b B
	access, write := buildMasks(a, b)
	return Access2[A, B]{access: access, write: write}
}

func (a Access2[A, B]) Mask() ComponentMask      { return a.access }
func (a Access2[A, B]) WriteMask() ComponentMask { return a.write }

func (a Access2[A, B]) Query(w *World) *Query2[A, B] {
	return &Query2[A, B]{it: newQueryIterator(w.archetypesMatching(a.access))}
}

// Query2 iterates entities matching a two-slot Access2.
type Query2[A, B accessSpec] struct {
	it queryIterator
}

func (q *Query2[A, B]) Next() bool     { return q.it.next() }
func (q *Query2[A, B]) Entity() EntityID { return q.it.entity }

// Access3 builds the access/write mask for a three-slot query.
type Access3[A, B, C accessSpec] struct {
	access, write ComponentMask
}

func NewAccess3[A, B, C accessSpec]() Access3[A, B, C] {
	var a A
	var b B
	var c C
	access, write := buildMasks(a, b, c)
	return Access3[A, B, C]{access: access, write: write}
}

func (a Access3[A, B, C]) Mask() ComponentMask      { return a.access }
func (a Access3[A, B, C]) WriteMask() ComponentMask { return a.write }

func (a Access3[A, B, C]) Query(w *World) *Query3[A, B, C] {
	return &Query3[A, B, C]{it: newQueryIterator(w.archetypesMatching(a.access))}
}

// Query3 iterates entities matching a three-slot Access3.
type Query3[A, B, C accessSpec] struct {
	it queryIterator
}

func (q *Query3[A, B, C]) Next() bool       { return q.it.next() }
func (q *Query3[A, B, C]) Entity() EntityID { return q.it.entity }

// Access4 builds the access/write mask for a four-slot query.
type Access4[A, B, C, D accessSpec] struct {
	access, write ComponentMask
}

func NewAccess4[A, B, C, D accessSpec]() Access4[A, B, C, D] {
	var a A
	var b B
	var c C
	var d D
	access, write := buildMasks(a, b, c, d)
	return Access4[A, B, C, D]{access: access, write: write}
}

func (a Access4[A, B, C, D]) Mask() ComponentMask      { return a.access }
func (a Access4[A, B, C, D]) WriteMask() ComponentMask { return a.write }

func (a Access4[A, B, C, D]) Query(w *World) *Query4[A, B, C, D] {
	return &Query4[A, B, C, D]{it: newQueryIterator(w.archetypesMatching(a.access))}
}

// Query4 iterates entities matching a four-slot Access4.
type Query4[A, B, C, D accessSpec] struct {
	it queryIterator
}

func (q *Query4[A, B, C, D]) Next() bool       { return q.it.next() }
func (q *Query4[A, B, C, D]) Entity() EntityID { return q.it.entity }

func componentAt[T Component](c *Chunk, slot int) *T {
	t := TypeOf[T]()
	return (*T)(c.componentPtr(t, slot))
}

// Get1 returns slot 1's value by copy, for a Query1[R[T]]. Returning by
// value rather than by pointer is what makes a R[T] slot read-only: there
// is no way to write back into chunk storage through the result.
func Get1[T Component](q *Query1[R[T]]) T {
	return *componentAt[T](q.it.chunk, q.it.slot)
}

// GetPtr1 returns a pointer into slot 1's storage, for a Query1[W[T]].
func GetPtr1[T Component](q *Query1[W[T]]) *T {
	return componentAt[T](q.it.chunk, q.it.slot)
}

// Get1Of2/GetPtr1Of2/Get2Of2/GetPtr2Of2 are the Query2 equivalents, one
// pair per slot position, for a Query2 whose other slot is a With filter
// (B and A name the filtered component type). Other read/write
// combinations of two slots are covered by Get2, GetPtr2 and Get1RW below.

func Get1Of2[T, B Component](q *Query2[R[T], With[B]]) T {
	return *componentAt[T](q.it.chunk, q.it.slot)
}

func GetPtr1Of2[T, B Component](q *Query2[W[T], With[B]]) *T {
	return componentAt[T](q.it.chunk, q.it.slot)
}

func Get2Of2[A, T Component](q *Query2[With[A], R[T]]) T {
	return *componentAt[T](q.it.chunk, q.it.slot)
}

func GetPtr2Of2[A, T Component](q *Query2[With[A], W[T]]) *T {
	return componentAt[T](q.it.chunk, q.it.slot)
}

// Get2 returns both slots of a Query2[R[T1], R[T2]] at once, the common
// case of a read-only two-component system.
func Get2[T1, T2 Component](q *Query2[R[T1], R[T2]]) (T1, T2) {
	return *componentAt[T1](q.it.chunk, q.it.slot), *componentAt[T2](q.it.chunk, q.it.slot)
}

// GetPtr2 returns both slots of a Query2[W[T1], W[T2]] for in-place
// mutation of both components.
func GetPtr2[T1, T2 Component](q *Query2[W[T1], W[T2]]) (*T1, *T2) {
	return componentAt[T1](q.it.chunk, q.it.slot), componentAt[T2](q.it.chunk, q.it.slot)
}

// Get1RW returns the read-only first slot and a pointer to the writable
// second slot of a Query2[R[T1], W[T2]], the common "read A, mutate B"
// shape.
func Get1RW[T1, T2 Component](q *Query2[R[T1], W[T2]]) (T1, *T2) {
	return *componentAt[T1](q.it.chunk, q.it.slot), componentAt[T2](q.it.chunk, q.it.slot)
}

// Higher-arity queries (Access3, Access4) are exposed primarily for
// building access/write masks for the scheduler's disjoint-write-mask
// check; reading or writing their components goes through the
// World-level GetComponent/AddComponent, keyed by q.Entity(), rather than
// through a chunk-local accessor for every slot-count/arity combination.
