/*
Package display drives the render loop.

A Display is the context of one render loop. It owns a layout tree, the
action center animating the views of the tree and the task queue of the
layout thread. Once per frame the layout thread calls Tick, which runs
queued tasks, solves layout, advances playing actions and flushes changed
views to a painter, in this order. Layout marks set by actions are
resolved in the next tick.

	d, err := display.New(root, dimen.V(800, 600), nil)
	...
	d.SetPainter(canvas)
	go d.Run(ctx)
	d.Post(func() { view.SetWidth(layout.Px(100)) })

Other goroutines must use Post to touch views or actions.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package display

import (
	"context"
	"time"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/motif/engine/action"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/motif/engine/loop"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'motif.display'.
func tracer() tracing.Trace {
	return tracing.Select("motif.display")
}

// Display is the context of a render loop.
type Display struct {
	regs    *parameters.Registers
	tree    *layout.Tree
	center  *action.Center
	tasks   *loop.Loop
	painter layout.Painter
	ticks   int
	last    Stats
}

// Stats reports the work done by a tick.
type Stats struct {
	Tick    int           // number of the tick, starting at 1
	Tasks   int           // tasks run
	Passes  int           // layout passes
	Playing int           // root actions playing after the tick
	Painted int           // views flushed
	Elapsed time.Duration // wall time spent
	Err     error         // layout error, if any
}

// New creates a display for a view tree with a viewport size. The root
// view must not belong to another display or tree. regs may be nil, in
// which case defaults are used.
func New(root layout.Element, viewport dimen.Vec2, regs *parameters.Registers) (*Display, error) {
	if root == nil {
		return nil, core.Error(core.EMISSING, "display needs a root view")
	}
	r := root.AsNode()
	if r.Tree() != nil {
		return nil, core.Error(core.EINVALID, "root view %v is owned by another display", r)
	}
	if r.Parent() != nil {
		return nil, core.Error(core.EINVALID, "root view %v has a parent", r)
	}
	if regs == nil {
		regs = parameters.NewRegisters()
	}
	tasks := loop.New()
	d := &Display{
		regs:   regs,
		tree:   layout.NewTree(root, viewport, regs),
		center: action.NewCenter(regs, tasks),
		tasks:  tasks,
	}
	tracer().Infof("display created with viewport %v", viewport)
	return d, nil
}

// Tree returns the layout tree.
func (d *Display) Tree() *layout.Tree { return d.tree }

// Center returns the action center.
func (d *Display) Center() *action.Center { return d.center }

// Tasks returns the task queue of the layout thread.
func (d *Display) Tasks() *loop.Loop { return d.tasks }

// Registers returns the engine parameters.
func (d *Display) Registers() *parameters.Registers { return d.regs }

// SetPainter sets the collaborator changed views are handed to. p may be
// nil.
func (d *Display) SetPainter(p layout.Painter) { d.painter = p }

// Post queues a task for the next tick. It is safe for concurrent use.
func (d *Display) Post(t loop.Task) bool { return d.tasks.Post(t) }

// Last returns the stats of the most recent tick.
func (d *Display) Last() Stats { return d.last }

// Tick runs one frame at time now. It must be called from the layout
// thread. Layout errors are traced and reported in the stats; the tick
// is completed regardless.
func (d *Display) Tick(now time.Time) Stats {
	start := time.Now()
	d.ticks++
	st := Stats{Tick: d.ticks}
	st.Tasks = d.tasks.RunPending()
	if d.tree.NeedsLayout() {
		if st.Err = d.tree.Solve(); st.Err != nil {
			tracer().Errorf("tick %d: %v", d.ticks, st.Err)
		}
		st.Passes = d.tree.Passes()
	}
	d.center.Advance(now)
	st.Playing = d.center.Len()
	st.Painted = d.tree.Flush(d.painter)
	st.Elapsed = time.Since(start)
	d.last = st
	return st
}

// Idle is true if a tick would have nothing to do.
func (d *Display) Idle() bool {
	return d.tasks.Len() == 0 && d.center.Len() == 0 && d.tree.Pending() == 0
}

// Run calls Tick every frame interval (parameter P_FRAMEINTERVAL) until
// ctx is done. The goroutine calling Run becomes the layout thread.
func (d *Display) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.regs.T(parameters.P_FRAMEINTERVAL))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			tracer().Infof("render loop stopped after %d ticks", d.ticks)
			return ctx.Err()
		case now := <-ticker.C:
			d.Tick(now)
		}
	}
}

// Close stops accepting tasks. Pending tasks are dropped.
func (d *Display) Close() {
	d.tasks.Close()
}
