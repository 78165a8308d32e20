package recs

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelSchedule runs a compiled Schedule's systems concurrently within
// whatever the execute_after DAG already allows, instead of strictly one
// at a time. It is deliberately layered on top of Schedule rather than
// baked into it: spec.md's core scheduler has no concurrency story, this
// is the opt-in extension for systems that declared access/write masks.
type ParallelSchedule struct {
	schedule *Schedule
}

// NewParallelSchedule wraps an already-built Schedule.
func NewParallelSchedule(schedule *Schedule) *ParallelSchedule {
	return &ParallelSchedule{schedule: schedule}
}

// Execute runs every system in dependency order, batching consecutive
// systems from the schedule into the largest prefix that can run
// together: a system joins the current batch only if its access mask is
// disjoint from every write mask already in the batch, and vice versa, and
// it has no execute_after edge onto a system already in the batch. A
// system with an empty access mask (registered via RegisterSystem instead
// of RegisterSystemWithAccess) never joins a batch with anything else.
func (p *ParallelSchedule) Execute(ctx context.Context, w *World) error {
	order := p.schedule.order
	systems := p.schedule.systems
	i := 0
	for i < len(order) {
		batch := []SystemRef{order[i]}
		var batchWrite, batchAccess ComponentMask
		batchWrite = systems[order[i]].write
		batchAccess = systems[order[i]].access
		solo := systems[order[i]].access.Empty() && systems[order[i]].write.Empty()
		j := i + 1
		if !solo {
			for j < len(order) {
				cand := systems[order[j]]
				if cand.access.Empty() && cand.write.Empty() {
					break
				}
				if cand.write.TestAny(batchAccess) || cand.access.TestAny(batchWrite) {
					break
				}
				dependsOnBatch := false
				for _, ref := range batch {
					if _, ok := cand.dependsOn[ref]; ok {
						dependsOnBatch = true
						break
					}
				}
				if dependsOnBatch {
					break
				}
				batch = append(batch, order[j])
				batchWrite = batchWrite.Union(cand.write)
				batchAccess = batchAccess.Union(cand.access)
				j++
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, ref := range batch {
			ref := ref
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				systems[ref].fn(w)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		i = j
	}
	return nil
}
