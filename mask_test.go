package recs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentMaskSetTestReset(t *testing.T) {
	var m ComponentMask
	assert.True(t, m.Empty())

	m.Set(3)
	m.Set(65)
	m.Set(500)
	assert.True(t, m.Test(3))
	assert.True(t, m.Test(65))
	assert.True(t, m.Test(500))
	assert.False(t, m.Test(4))
	assert.False(t, m.Empty())

	m.Reset(65)
	assert.False(t, m.Test(65))
}

func TestComponentMaskTestAllTestAny(t *testing.T) {
	var m ComponentMask
	m.Set(1)
	m.Set(2)
	m.Set(3)

	var required ComponentMask
	required.Set(1)
	required.Set(3)
	assert.True(t, m.TestAll(required))

	required.Set(9)
	assert.False(t, m.TestAll(required))
	assert.True(t, m.TestAny(required))

	var disjoint ComponentMask
	disjoint.Set(42)
	assert.False(t, m.TestAny(disjoint))
}

func TestComponentMaskPopCountLeftOf(t *testing.T) {
	var m ComponentMask
	for _, pos := range []TypeID{4, 154, 311, 456, 499, 500, 501, 700} {
		m.Set(pos)
	}

	require.Equal(t, 8, m.PopCount())
	assert.Equal(t, 5, m.PopCountLeftOf(500))
	assert.Equal(t, 0, m.PopCountLeftOf(0))
	assert.Equal(t, 8, m.PopCountLeftOf(900))
}

func TestComponentMaskTypeIDsAscending(t *testing.T) {
	var m ComponentMask
	m.Set(5)
	m.Set(50)
	m.Set(500)

	ids := m.TypeIDs()
	require.Len(t, ids, 3)
	assert.Equal(t, []TypeID{5, 50, 500}, ids)
}

func TestComponentMaskEqualAndHash(t *testing.T) {
	var a, b ComponentMask
	a.Set(10)
	a.Set(20)
	b.Set(20)
	b.Set(10)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b.Set(21)
	assert.False(t, a.Equal(b))
}

func TestComponentMaskLeadingTrailingCounts(t *testing.T) {
	var m ComponentMask
	m.Set(0)
	m.Set(1)
	m.Set(1022)
	m.Set(1023)

	assert.Equal(t, 2, m.CountLeadingOnes())
	assert.Equal(t, 2, m.CountTrailingOnes())
	assert.Equal(t, 0, m.CountLeadingZeros())
	assert.Equal(t, 0, m.CountTrailingZeros())

	var empty ComponentMask
	assert.Equal(t, MaxTypes, empty.CountLeadingZeros())
	assert.Equal(t, MaxTypes, empty.CountTrailingZeros())
}
