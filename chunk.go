package recs

import "unsafe"

// MaxEntitiesPerChunk is the fixed number of entity slots a Chunk holds.
// Chunks are never resized; an Archetype grows by appending new chunks.
const MaxEntitiesPerChunk = 128

// Chunk is a column-major slab of component data for up to
// MaxEntitiesPerChunk entities that all share one Archetype's mask.
// Columns are packed into a single contiguous byte buffer, ordered by
// ascending type id (see ComponentMask.PopCountLeftOf), so that a
// column's offset can be recovered from the mask alone without storing a
// per-chunk offset table keyed by type id.
type Chunk struct {
	mask    ComponentMask
	ids     [MaxEntitiesPerChunk]EntityID
	data    []byte
	offsets []uintptr // offsets[i] corresponds to TypeIDs()[i]
	sizes   []uintptr
	free    []uint8 // stack of free slot indices, descending
	size    int     // number of occupied slots
}

func newChunk(mask ComponentMask) *Chunk {
	typeIDs := mask.TypeIDs()
	offsets := make([]uintptr, len(typeIDs))
	sizes := make([]uintptr, len(typeIDs))
	var total uintptr
	for i, t := range typeIDs {
		sz := SizeOf(t)
		sizes[i] = sz
		offsets[i] = total
		total += sz * MaxEntitiesPerChunk
	}
	free := make([]uint8, MaxEntitiesPerChunk)
	for i := range free {
		free[i] = uint8(MaxEntitiesPerChunk - 1 - i)
	}
	c := &Chunk{
		mask:    mask,
		data:    make([]byte, total),
		offsets: offsets,
		sizes:   sizes,
		free:    free,
	}
	for i := range c.ids {
		c.ids[i] = InvalidEntity
	}
	return c
}

// Full reports whether every slot in the chunk is occupied.
func (c *Chunk) Full() bool {
	return c.size == MaxEntitiesPerChunk
}

// Empty reports whether no slot in the chunk is occupied.
func (c *Chunk) Empty() bool {
	return c.size == 0
}

// allocate claims a free slot for id and returns its index.
func (c *Chunk) allocate(id EntityID) int {
	assertThat(len(c.free) > 0, "recs: allocate called on a full chunk")
	n := len(c.free) - 1
	slot := int(c.free[n])
	c.free = c.free[:n]
	c.ids[slot] = id
	c.size++
	return slot
}

// release frees slot back to the chunk's free list.
func (c *Chunk) release(slot int) {
	c.ids[slot] = InvalidEntity
	c.free = append(c.free, uint8(slot))
	c.size--
}

// columnIndex returns the position of t's column among TypeIDs(), or -1
// if t is not part of this chunk's mask.
func (c *Chunk) columnIndex(t TypeID) int {
	if !c.mask.Test(t) {
		return -1
	}
	return c.mask.PopCountLeftOf(int(t))
}

// componentPtr returns an unsafe pointer to the component of type t at
// slot. Callers must only call this for a t that c.mask.Test(t) is true
// for; use GetComponent/HasComponent at the World level to enforce that.
func (c *Chunk) componentPtr(t TypeID, slot int) unsafe.Pointer {
	col := c.columnIndex(t)
	assertThat(col >= 0, "recs: chunk does not carry component %d", t)
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.data)), c.offsets[col]+uintptr(slot)*c.sizes[col])
}

// copyComponentsInto copies every component column this chunk shares with
// dst, from srcSlot to dstSlot. Columns present in dst but absent here are
// left untouched (the caller is expected to initialize them separately).
func (c *Chunk) copyComponentsInto(dst *Chunk, srcSlot, dstSlot int) {
	for _, t := range c.mask.TypeIDs() {
		if !dst.mask.Test(t) {
			continue
		}
		sz := SizeOf(t)
		if sz == 0 {
			continue
		}
		src := c.componentPtr(t, srcSlot)
		dstPtr := dst.componentPtr(t, dstSlot)
		copy(unsafe.Slice((*byte)(dstPtr), sz), unsafe.Slice((*byte)(src), sz))
	}
}
