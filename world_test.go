package recs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPosition struct {
	X, Y float64
}

type testVelocity struct {
	X, Y float64
}

type testTag struct{}

func TestAddEntityIsValidRemoveEntity(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	assert.True(t, w.IsValid(id))

	w.RemoveEntity(id)
	assert.False(t, w.IsValid(id))
}

func TestRemoveEntityOnInvalidIDIsSilentNoOp(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	w.RemoveEntity(id)

	assert.NotPanics(t, func() {
		w.RemoveEntity(id)
		w.RemoveEntity(InvalidEntity)
	})
}

func TestAddComponentMigratesAndPreservesData(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()

	AddComponent(w, id, testPosition{X: 1, Y: 2})
	assert.True(t, HasComponent[testPosition](w, id))
	assert.False(t, HasComponent[testVelocity](w, id))

	AddComponent(w, id, testVelocity{X: 3, Y: 4})
	pos := GetComponent[testPosition](w, id)
	vel := GetComponent[testVelocity](w, id)
	require.NotNil(t, pos)
	require.NotNil(t, vel)
	assert.Equal(t, testPosition{X: 1, Y: 2}, *pos)
	assert.Equal(t, testVelocity{X: 3, Y: 4}, *vel)
}

func TestAddComponentOverwritesInPlaceWhenAlreadyPresent(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	AddComponent(w, id, testPosition{X: 1, Y: 1})
	AddComponent(w, id, testPosition{X: 9, Y: 9})
	assert.Equal(t, testPosition{X: 9, Y: 9}, *GetComponent[testPosition](w, id))
}

func TestRemoveComponentMigratesAway(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	AddComponent(w, id, testPosition{X: 1, Y: 2})
	AddComponent(w, id, testVelocity{X: 3, Y: 4})

	RemoveComponent[testVelocity](w, id)
	assert.False(t, HasComponent[testVelocity](w, id))
	assert.True(t, HasComponent[testPosition](w, id))
	assert.Equal(t, testPosition{X: 1, Y: 2}, *GetComponent[testPosition](w, id))
}

func TestRemoveComponentNotPresentIsNoOp(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	AddComponent(w, id, testPosition{X: 1, Y: 2})
	assert.NotPanics(t, func() {
		RemoveComponent[testVelocity](w, id)
	})
	assert.True(t, HasComponent[testPosition](w, id))
}

func TestGetEntityReturnsCurrentChunkRef(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	AddComponent(w, id, testPosition{X: 1, Y: 2})

	ref := w.GetEntity(id)
	require.NotNil(t, ref.Chunk)
	assert.Equal(t, id, ref.Chunk.ids[ref.Slot])

	AddComponent(w, id, testVelocity{X: 3, Y: 4})
	moved := w.GetEntity(id)
	assert.Equal(t, id, moved.Chunk.ids[moved.Slot])
}

func TestGetEntityPanicsOnInvalidID(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	w.RemoveEntity(id)

	assert.Panics(t, func() {
		w.GetEntity(id)
	})
}

func TestHasComponentsRequiresEveryBitInMask(t *testing.T) {
	w := NewWorld(16)
	id := w.AddEntity()
	AddComponent(w, id, testPosition{X: 1, Y: 2})

	var posOnly, posAndVel ComponentMask
	posOnly.Set(TypeOf[testPosition]())
	posAndVel.Set(TypeOf[testPosition]())
	posAndVel.Set(TypeOf[testVelocity]())

	assert.True(t, HasComponents(w, id, posOnly))
	assert.False(t, HasComponents(w, id, posAndVel))

	AddComponent(w, id, testVelocity{X: 3, Y: 4})
	assert.True(t, HasComponents(w, id, posAndVel))

	assert.False(t, HasComponents(w, InvalidEntity, posOnly))
}

func TestGetEntitiesTestAllSemantics(t *testing.T) {
	w := NewWorld(16)
	both := w.AddEntity()
	AddComponent(w, both, testPosition{})
	AddComponent(w, both, testVelocity{})

	onlyPos := w.AddEntity()
	AddComponent(w, onlyPos, testPosition{})

	var want ComponentMask
	want.Set(TypeOf[testPosition]())
	want.Set(TypeOf[testVelocity]())

	matches := w.GetEntities(want)
	total := 0
	for _, a := range matches {
		total += a.Len()
	}
	assert.Equal(t, 1, total)
}

func TestGetEntitiesExtendsAsNewArchetypesAppear(t *testing.T) {
	w := NewWorld(16)
	var want ComponentMask
	want.Set(TypeOf[testPosition]())

	assert.Empty(t, sumLen(w.GetEntities(want)))

	id := w.AddEntity()
	AddComponent(w, id, testPosition{})
	assert.Equal(t, 1, sumLen(w.GetEntities(want)))

	id2 := w.AddEntity()
	AddComponent(w, id2, testPosition{})
	AddComponent(w, id2, testVelocity{})
	assert.Equal(t, 2, sumLen(w.GetEntities(want)))
}

func sumLen(archs []*Archetype) int {
	n := 0
	for _, a := range archs {
		n += a.Len()
	}
	return n
}

func TestEntityGenerationBumpsOnReuse(t *testing.T) {
	w := NewWorld(16)
	first := w.AddEntity()
	w.RemoveEntity(first)
	second := w.AddEntity()

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first.Generation(), second.Generation())
	assert.False(t, w.IsValid(first))
	assert.True(t, w.IsValid(second))
}

func TestFreelistIsFIFO(t *testing.T) {
	w := NewWorld(16)
	a := w.AddEntity()
	b := w.AddEntity()
	w.RemoveEntity(a)
	w.RemoveEntity(b)

	next := w.AddEntity()
	assert.Equal(t, a.Index(), next.Index())
}

func TestExhaustedGenerationIsNeverReissued(t *testing.T) {
	w := NewWorld(4)
	id := w.AddEntity()
	w.dir.generation[id.Index()] = MaxGeneration - 1
	id = newEntityID(id.Index(), MaxGeneration-1)
	w.RemoveEntity(id)

	assert.Equal(t, uint16(MaxGeneration), w.dir.generation[id.Index()])
	assert.Empty(t, w.dir.free)
}

func TestEntityWithZeroSizedComponent(t *testing.T) {
	w := NewWorld(4)
	id := w.AddEntity()
	AddComponent(w, id, testTag{})
	assert.True(t, HasComponent[testTag](w, id))
}
