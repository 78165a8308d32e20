// Profiling:
// go build ./cmd/recsprofile
// go tool pprof -http=":8000" -nodefraction=0.001 ./recsprofile mem.pprof

package main

import (
	"github.com/pkg/profile"
	"github.com/ves-rs/recs"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	rounds := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	access := recs.NewAccess2[recs.R[velocity], recs.W[position]]()
	for range rounds {
		w := recs.NewWorld(numEntities)
		ids := make([]recs.EntityID, numEntities)
		for i := range ids {
			id := w.AddEntity()
			recs.AddComponent(w, id, position{})
			recs.AddComponent(w, id, velocity{X: 1, Y: 1})
			ids[i] = id
		}

		for range iters {
			q := access.Query(w)
			for q.Next() {
				vel, pos := recs.Get1RW(q)
				pos.X += vel.X
				pos.Y += vel.Y
			}
			for _, id := range ids {
				w.RemoveEntity(id)
			}
			for i := range ids {
				id := w.AddEntity()
				recs.AddComponent(w, id, position{})
				recs.AddComponent(w, id, velocity{X: 1, Y: 1})
				ids[i] = id
			}
		}
	}
}
