package recs

// SystemRef is a handle to a registered system, returned by RegisterSystem
// so callers can wire up execute_after edges without re-naming systems.
type SystemRef int

type system struct {
	fn         func(*World)
	dependsOn  map[SystemRef]struct{}
	dependents []SystemRef
	access     ComponentMask
	write      ComponentMask
}

// Scheduler accumulates systems and their explicit execute_after edges,
// then compiles them into a Schedule with BuildSchedule. It holds no
// World reference: the same Scheduler can build schedules that run
// against different worlds.
type Scheduler struct {
	systems []system
}

// RegisterSystem adds fn to the scheduler with no declared component
// access. It can still participate in execute_after edges; it just
// can't be scheduled onto ParallelSchedule's concurrent tiers, since
// it has no access mask to check for disjointness against.
func (s *Scheduler) RegisterSystem(fn func(*World)) SystemRef {
	ref := SystemRef(len(s.systems))
	s.systems = append(s.systems, system{fn: fn, dependsOn: map[SystemRef]struct{}{}})
	return ref
}

// RegisterSystemWithAccess adds fn along with the access/write masks a
// ParallelSchedule uses to decide whether two systems may run
// concurrently.
func (s *Scheduler) RegisterSystemWithAccess(fn func(*World), access, write ComponentMask) SystemRef {
	ref := s.RegisterSystem(fn)
	s.systems[ref].access = access
	s.systems[ref].write = write
	return ref
}

// ExecuteAfter declares that the system ref must run after dep. Panics if
// this edge would create a cycle in the execute_after graph.
func (s *Scheduler) ExecuteAfter(ref, dep SystemRef) SystemRef {
	assertThat(s.dependsOnTransitively(dep, ref) == false, "recs: execute_after(%d, %d) would create a cycle", ref, dep)
	s.systems[ref].dependsOn[dep] = struct{}{}
	s.systems[dep].dependents = append(s.systems[dep].dependents, ref)
	return ref
}

// dependsOnTransitively reports whether start transitively depends on
// target, via a DFS over dependsOn edges.
func (s *Scheduler) dependsOnTransitively(start, target SystemRef) bool {
	visited := make(map[SystemRef]bool)
	var dfs func(SystemRef) bool
	dfs = func(cur SystemRef) bool {
		if cur == target {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		for dep := range s.systems[cur].dependsOn {
			if dfs(dep) {
				return true
			}
		}
		return false
	}
	return dfs(start)
}

// Schedule is the compiled execution order produced by BuildSchedule. It
// respects every execute_after edge whatever order the systems were
// registered in; the relative order of systems with no path between them
// depends on registration order. It never changes once built; run it as
// many times as needed with Execute.
type Schedule struct {
	order   []SystemRef
	systems []system
}

// BuildSchedule compiles every registered system and execute_after edge
// into a single linear order respecting all of them: a recursive
// post-order DFS over the dependents graph, started from every registered
// system in registration order (already-visited systems are skipped), with
// the resulting post-order reversed so dependencies precede their
// dependents.
func (s *Scheduler) BuildSchedule() *Schedule {
	visited := make([]bool, len(s.systems))
	var postOrder []SystemRef

	var visit func(SystemRef)
	visit = func(ref SystemRef) {
		if visited[ref] {
			return
		}
		visited[ref] = true
		for _, dependent := range s.systems[ref].dependents {
			visit(dependent)
		}
		postOrder = append(postOrder, ref)
	}

	for ref := range s.systems {
		visit(SystemRef(ref))
	}

	order := make([]SystemRef, len(postOrder))
	for i, ref := range postOrder {
		order[len(postOrder)-1-i] = ref
	}
	return &Schedule{order: order, systems: s.systems}
}

// Execute runs every system in the compiled order against w, serially.
func (s *Schedule) Execute(w *World) {
	for _, ref := range s.order {
		s.systems[ref].fn(w)
	}
}
