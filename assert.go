package recs

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// assertThat panics with a stack-trace-carrying error when cond is false.
// It exists for the programming-error invariants documented on each type;
// recoverable conditions (an invalid entity passed to RemoveEntity) never
// go through it.
func assertThat(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(eris.New(fmt.Sprintf(format, args...)))
}
