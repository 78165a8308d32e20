package recs

import (
	"reflect"
	"sync"
)

// MaxTypes is the largest number of distinct component types a single
// process can register. It matches the bit width of a ComponentMask.
const MaxTypes = 1024

// TypeID identifies a registered component type. Zero is a valid id,
// assigned to whichever type happens to register first.
type TypeID uint32

// Component is the constraint satisfied by anything storable in a World.
// Components are required to be trivially copyable and trivially
// destructible: no pointers to per-instance cleanup, no move-only state.
// Go has no way to express that constraint in the type system, so it is
// documented rather than enforced.
type Component interface{ any }

type typeRegistry struct {
	mu    sync.Mutex
	ids   map[reflect.Type]TypeID
	sizes [MaxTypes]uintptr
	next  uint32
}

var globalTypes typeRegistry

func init() {
	globalTypes.ids = make(map[reflect.Type]TypeID, 64)
}

// TypeOf returns the process-wide TypeID for T, assigning one on first use.
func TypeOf[T Component]() TypeID {
	rt := reflect.TypeFor[T]()
	globalTypes.mu.Lock()
	defer globalTypes.mu.Unlock()
	if id, ok := globalTypes.ids[rt]; ok {
		return id
	}
	assertThat(globalTypes.next < MaxTypes, "recs: exceeded maximum of %d component types registering %s", MaxTypes, rt)
	id := TypeID(globalTypes.next)
	globalTypes.next++
	globalTypes.ids[rt] = id
	globalTypes.sizes[id] = rt.Size()
	return id
}

// SizeOf returns the byte size of the component registered under id. It is
// only meaningful after the corresponding TypeOf call has run at least once.
func SizeOf(id TypeID) uintptr {
	return globalTypes.sizes[id]
}

