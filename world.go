package recs

// directory is the entity-id table: for every index it tracks whether the
// slot is alive, what generation it currently carries, and where its
// components live.
type directory struct {
	generation []uint16
	alive      []bool
	ref        []ChunkEntityRef
	free       []uint64 // FIFO queue of recycled indices
}

func (d *directory) grow(to int) {
	for len(d.generation) < to {
		d.generation = append(d.generation, 0)
		d.alive = append(d.alive, false)
		d.ref = append(d.ref, ChunkEntityRef{})
	}
}

// World owns every Archetype, the entity directory, and the query-mask
// cache. It is not safe for concurrent mutation from multiple goroutines;
// a single World is meant to be driven by one Schedule.Execute at a time.
type World struct {
	dir        directory
	archetypes map[ComponentMask]*Archetype
	queryCache map[ComponentMask][]*Archetype
	archList   []*Archetype
}

// NewWorld creates an empty World and pre-registers the zero-component
// archetype, the home of every entity created with no components.
// initialCapacity pre-sizes the entity directory to avoid reallocating it
// on the first wave of AddEntity calls; it is not a hard limit.
func NewWorld(initialCapacity int) *World {
	w := &World{
		archetypes: make(map[ComponentMask]*Archetype),
		queryCache: make(map[ComponentMask][]*Archetype),
	}
	w.dir.generation = make([]uint16, 0, initialCapacity)
	w.dir.alive = make([]bool, 0, initialCapacity)
	w.dir.ref = make([]ChunkEntityRef, 0, initialCapacity)
	w.getOrCreateArchetype(ComponentMask{})
	return w
}

func (w *World) getOrCreateArchetype(mask ComponentMask) *Archetype {
	if a, ok := w.archetypes[mask]; ok {
		return a
	}
	a := newArchetype(mask)
	w.archetypes[mask] = a
	w.archList = append(w.archList, a)
	// Extend every cached query whose access mask this new archetype
	// satisfies. The cache is never flushed, only grown: every archetype
	// that has ever existed stays matched against every mask that has
	// ever been queried.
	for accessMask, archs := range w.queryCache {
		if mask.TestAll(accessMask) {
			w.queryCache[accessMask] = append(archs, a)
		}
	}
	return a
}

// archetypesMatching returns (and caches) the archetype list for
// accessMask, extending the cache with it if this is the first time
// accessMask has been queried.
func (w *World) archetypesMatching(accessMask ComponentMask) []*Archetype {
	if archs, ok := w.queryCache[accessMask]; ok {
		return archs
	}
	var archs []*Archetype
	for _, a := range w.archList {
		if a.mask.TestAll(accessMask) {
			archs = append(archs, a)
		}
	}
	w.queryCache[accessMask] = archs
	return archs
}

// AddEntity creates a new entity with no components and returns its id.
func (w *World) AddEntity() EntityID {
	index := w.allocIndex()
	gen := w.dir.generation[index]
	id := newEntityID(index, gen)
	a := w.getOrCreateArchetype(ComponentMask{})
	ref := a.Allocate(id)
	w.dir.alive[index] = true
	w.dir.ref[index] = ref
	return id
}

func (w *World) allocIndex() uint64 {
	if len(w.dir.free) > 0 {
		index := w.dir.free[0]
		w.dir.free = w.dir.free[1:]
		return index
	}
	index := uint64(len(w.dir.generation))
	assertThat(index <= MaxIndex, "recs: exceeded MaxIndex (%d) entities", MaxIndex)
	w.dir.grow(int(index) + 1)
	return index
}

// IsValid reports whether id refers to a currently-alive entity: its index
// is in range, the slot is alive, and the slot's current generation
// matches id's.
func (w *World) IsValid(id EntityID) bool {
	idx := id.Index()
	if idx >= uint64(len(w.dir.alive)) {
		return false
	}
	return w.dir.alive[idx] && w.dir.generation[idx] == id.Generation()
}

// RemoveEntity destroys id's entity. Passing an id that IsValid reports
// false for is a silent no-op, not an assertion failure: §7's one
// deliberately non-fatal path, since callers routinely hold onto ids past
// an entity's lifetime (e.g. after another system removed it this frame).
func (w *World) RemoveEntity(id EntityID) {
	if !w.IsValid(id) {
		return
	}
	idx := id.Index()
	a := w.archetypes[w.chunkMaskFor(idx)]
	a.Destroy(w.dir.ref[idx])
	w.dir.alive[idx] = false
	nextGen := w.dir.generation[idx] + 1
	if nextGen < MaxGeneration {
		w.dir.generation[idx] = nextGen
		w.dir.free = append(w.dir.free, idx)
	} else {
		// Slot has exhausted its generation space; never reissue it.
		w.dir.generation[idx] = MaxGeneration
	}
}

func (w *World) chunkMaskFor(idx uint64) ComponentMask {
	return w.dir.ref[idx].Chunk.mask
}

// GetEntity returns id's ChunkEntityRef. It asserts id is valid: callers
// are expected to have checked IsValid first if the id's liveness isn't
// already guaranteed by context.
func (w *World) GetEntity(id EntityID) ChunkEntityRef {
	assertThat(w.IsValid(id), "recs: GetEntity called with invalid entity %d", id)
	return w.dir.ref[id.Index()]
}

// GetEntities returns every archetype whose mask is a superset of mask
// (TestAll), along with that archetype's chunks, ready for a caller to
// walk without going through the typed Query layer.
func (w *World) GetEntities(mask ComponentMask) []*Archetype {
	return w.archetypesMatching(mask)
}

// HasComponent reports whether id currently carries a component of type T.
func HasComponent[T Component](w *World, id EntityID) bool {
	if !w.IsValid(id) {
		return false
	}
	t := TypeOf[T]()
	return w.dir.ref[id.Index()].Chunk.mask.Test(t)
}

// HasComponents reports whether id carries every component type set in
// mask.
func HasComponents(w *World, id EntityID, mask ComponentMask) bool {
	if !w.IsValid(id) {
		return false
	}
	return w.dir.ref[id.Index()].Chunk.mask.TestAll(mask)
}

// GetComponent returns a pointer to id's component of type T. It asserts
// the component is present; check HasComponent first if that isn't
// already known.
func GetComponent[T Component](w *World, id EntityID) *T {
	assertThat(w.IsValid(id), "recs: GetComponent called with invalid entity %d", id)
	t := TypeOf[T]()
	ref := w.dir.ref[id.Index()]
	assertThat(ref.Chunk.mask.Test(t), "recs: entity %d has no component of this type", id)
	return (*T)(ref.Chunk.componentPtr(t, ref.Slot))
}

// AddComponent attaches a T component to id, migrating it into the
// archetype for its current mask plus T's bit. If id already carries a T,
// its value is overwritten in place without any migration.
func AddComponent[T Component](w *World, id EntityID, value T) {
	assertThat(w.IsValid(id), "recs: AddComponent called with invalid entity %d", id)
	t := TypeOf[T]()
	idx := id.Index()
	ref := w.dir.ref[idx]
	if ref.Chunk.mask.Test(t) {
		*(*T)(ref.Chunk.componentPtr(t, ref.Slot)) = value
		return
	}
	newMask := maskWith(ref.Chunk.mask, t)
	newRef := w.migrate(id, ref, newMask)
	*(*T)(newRef.Chunk.componentPtr(t, newRef.Slot)) = value
}

// RemoveComponent detaches id's T component, migrating it into the
// archetype for its current mask minus T's bit. A no-op if id doesn't
// carry a T.
func RemoveComponent[T Component](w *World, id EntityID) {
	assertThat(w.IsValid(id), "recs: RemoveComponent called with invalid entity %d", id)
	t := TypeOf[T]()
	idx := id.Index()
	ref := w.dir.ref[idx]
	if !ref.Chunk.mask.Test(t) {
		return
	}
	newMask := maskWithout(ref.Chunk.mask, t)
	w.migrate(id, ref, newMask)
}

// migrate moves id from its current chunk slot to a (possibly new)
// archetype for newMask, copying every shared component column, and
// returns the new location.
func (w *World) migrate(id EntityID, old ChunkEntityRef, newMask ComponentMask) ChunkEntityRef {
	idx := id.Index()
	dest := w.getOrCreateArchetype(newMask)
	newRef := dest.Allocate(id)
	old.Chunk.copyComponentsInto(newRef.Chunk, old.Slot, newRef.Slot)

	srcArch := w.archetypes[old.Chunk.mask]
	srcArch.Destroy(old)

	w.dir.ref[idx] = newRef
	return newRef
}
