package recs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dagFixture wires up the D<-A, E<-A&B, F<-D&E, G<-E graph used across all
// three registration-order subtests below.
type dagFixture struct {
	order []string
	refs  map[string]SystemRef
}

func (f *dagFixture) record(name string) func(*World) {
	return func(*World) {
		f.order = append(f.order, name)
	}
}

func buildDAG(s *Scheduler, registerOrder []string) *dagFixture {
	f := &dagFixture{refs: make(map[string]SystemRef)}
	for _, name := range registerOrder {
		f.refs[name] = s.RegisterSystem(f.record(name))
	}
	s.ExecuteAfter(f.refs["D"], f.refs["A"])
	s.ExecuteAfter(f.refs["E"], f.refs["A"])
	s.ExecuteAfter(f.refs["E"], f.refs["B"])
	s.ExecuteAfter(f.refs["F"], f.refs["D"])
	s.ExecuteAfter(f.refs["F"], f.refs["E"])
	s.ExecuteAfter(f.refs["G"], f.refs["E"])
	return f
}

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func assertDAGOrder(t *testing.T, order []string) {
	require.Len(t, order, 7)
	assert.Less(t, indexOf(order, "A"), indexOf(order, "D"))
	assert.Less(t, indexOf(order, "A"), indexOf(order, "E"))
	assert.Less(t, indexOf(order, "B"), indexOf(order, "E"))
	assert.Less(t, indexOf(order, "D"), indexOf(order, "F"))
	assert.Less(t, indexOf(order, "E"), indexOf(order, "F"))
	assert.Less(t, indexOf(order, "E"), indexOf(order, "G"))
}

func TestScheduleRespectsExecuteAfterOrderedPush(t *testing.T) {
	s := &Scheduler{}
	f := buildDAG(s, []string{"A", "B", "C", "D", "E", "F", "G"})
	s.BuildSchedule().Execute(NewWorld(1))
	assertDAGOrder(t, f.order)
}

func TestScheduleRespectsExecuteAfterReversePush(t *testing.T) {
	s := &Scheduler{}
	f := buildDAG(s, []string{"G", "F", "E", "D", "C", "B", "A"})
	s.BuildSchedule().Execute(NewWorld(1))
	assertDAGOrder(t, f.order)
}

func TestScheduleRespectsExecuteAfterScrambledPush(t *testing.T) {
	s := &Scheduler{}
	f := buildDAG(s, []string{"D", "A", "G", "C", "F", "B", "E"})
	s.BuildSchedule().Execute(NewWorld(1))
	assertDAGOrder(t, f.order)
}

func TestExecuteAfterRejectsCycle(t *testing.T) {
	s := &Scheduler{}
	a := s.RegisterSystem(func(*World) {})
	b := s.RegisterSystem(func(*World) {})
	s.ExecuteAfter(b, a)

	assert.Panics(t, func() {
		s.ExecuteAfter(a, b)
	})
}

func TestBuildScheduleIsRegistrationOrderIndependent(t *testing.T) {
	s1 := &Scheduler{}
	f1 := buildDAG(s1, []string{"A", "B", "C", "D", "E", "F", "G"})
	s1.BuildSchedule().Execute(NewWorld(1))

	s2 := &Scheduler{}
	f2 := buildDAG(s2, []string{"G", "E", "F", "D", "C", "A", "B"})
	s2.BuildSchedule().Execute(NewWorld(1))

	assertDAGOrder(t, f1.order)
	assertDAGOrder(t, f2.order)
}
