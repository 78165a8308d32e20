package recs

// Archetype owns every Chunk storing entities with exactly one
// ComponentMask. Chunks are appended as needed, and Destroy drops a chunk
// from the slice as soon as it becomes empty; emptied chunks are not kept
// for reuse. Chunks are held by pointer, so a *Chunk still holding an
// entity keeps its address when another chunk is dropped, but its position
// in Chunks() can change.
type Archetype struct {
	mask   ComponentMask
	chunks []*Chunk
	size   int
}

func newArchetype(mask ComponentMask) *Archetype {
	return &Archetype{mask: mask}
}

// Mask returns the archetype's component mask.
func (a *Archetype) Mask() ComponentMask {
	return a.mask
}

// Len returns the total number of entities across every chunk.
func (a *Archetype) Len() int {
	return a.size
}

// Chunks returns the archetype's chunk list. Callers must not retain the
// slice across a call to Allocate, which may append to it.
func (a *Archetype) Chunks() []*Chunk {
	return a.chunks
}

// Allocate claims a slot for id, appending a new chunk if every existing
// one is full.
func (a *Archetype) Allocate(id EntityID) ChunkEntityRef {
	var c *Chunk
	for _, candidate := range a.chunks {
		if !candidate.Full() {
			c = candidate
			break
		}
	}
	if c == nil {
		c = newChunk(a.mask)
		a.chunks = append(a.chunks, c)
	}
	slot := c.allocate(id)
	a.size++
	return ChunkEntityRef{Chunk: c, Slot: slot}
}

// Find scans every chunk for id and returns its slot, or ok=false if the
// archetype doesn't hold it. This is a linear O(chunks*MaxEntitiesPerChunk)
// scan, used only as a fallback when the caller doesn't already have a
// ChunkEntityRef cached (the World directory normally does).
func (a *Archetype) Find(id EntityID) (ref ChunkEntityRef, ok bool) {
	for _, c := range a.chunks {
		for slot, eid := range c.ids {
			if eid == id {
				return ChunkEntityRef{Chunk: c, Slot: slot}, true
			}
		}
	}
	return ChunkEntityRef{}, false
}

// Destroy releases ref's slot. If that empties the chunk, the chunk is
// dropped from the archetype: the last chunk is moved into its slice
// position and the slice shrinks by one, so the chunk slice never has a
// hole. The moved chunk's contents are untouched (only the slice position
// changes), so existing *Chunk references to it remain valid.
func (a *Archetype) Destroy(ref ChunkEntityRef) {
	c := ref.Chunk
	c.release(ref.Slot)
	a.size--
	if !c.Empty() {
		return
	}
	for i, candidate := range a.chunks {
		if candidate != c {
			continue
		}
		last := len(a.chunks) - 1
		a.chunks[i] = a.chunks[last]
		a.chunks = a.chunks[:last]
		return
	}
}
