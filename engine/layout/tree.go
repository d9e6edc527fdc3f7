package layout

import (
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/core/parameters"
)

// Tree is a view tree with a registry of nodes pending layout, sorted by
// depth. A tree is owned by a single layout thread.
type Tree struct {
	root    *Node
	levels  [][]*Node // registered nodes by level, slots of unregistered nodes are nil
	pending int       // number of registered nodes
	regs    *parameters.Registers
	passes  int // sweeps needed by the last Solve
	stalled int // nodes blocked in consecutive passes of the last Solve
}

// NewTree creates a tree for a root view of a given viewport size. The
// root must not have a parent. regs may be nil, in which case defaults are
// used.
func NewTree(root Element, viewport dimen.Vec2, regs *parameters.Registers) *Tree {
	if regs == nil {
		regs = parameters.NewRegisters()
	}
	t := &Tree{regs: regs}
	r := root.AsNode()
	core.Assert(r.parent == nil, "root view %s has a parent", r)
	t.root = r
	r.width, r.height = Px(viewport.X), Px(viewport.Y)
	r.setLevel(t, 1)
	return t
}

// Root returns the root view.
func (t *Tree) Root() *Node {
	return t.root
}

// SetViewport changes the size of the root view.
func (t *Tree) SetViewport(v dimen.Vec2) {
	t.root.SetSize(Px(v.X), Px(v.Y))
}

// Viewport returns the size of the root view.
func (t *Tree) Viewport() dimen.Vec2 {
	return dimen.V(t.root.width.Value, t.root.height.Value)
}

func (t *Tree) register(n *Node) {
	if n.level <= 0 {
		return
	}
	for len(t.levels) <= n.level {
		t.levels = append(t.levels, nil)
	}
	n.markIndex = len(t.levels[n.level])
	t.levels[n.level] = append(t.levels[n.level], n)
	t.pending++
}

func (t *Tree) unregister(n *Node) {
	if n.markIndex < 0 {
		return
	}
	if n.level < len(t.levels) && n.markIndex < len(t.levels[n.level]) &&
		t.levels[n.level][n.markIndex] == n {
		t.levels[n.level][n.markIndex] = nil
		t.pending--
	}
	n.markIndex = -1
}

// compact drops empty slots from the registry.
func (t *Tree) compact() {
	for l, nodes := range t.levels {
		k := 0
		for _, n := range nodes {
			if n != nil {
				n.markIndex = k
				nodes[k] = n
				k++
			}
		}
		for i := k; i < len(nodes); i++ {
			nodes[i] = nil
		}
		t.levels[l] = nodes[:k]
	}
}

// Pending returns the number of nodes registered for resolution.
func (t *Tree) Pending() int {
	return t.pending
}

// NeedsLayout is true if any registered node carries layout marks.
func (t *Tree) NeedsLayout() bool {
	for _, nodes := range t.levels {
		for _, n := range nodes {
			if n != nil && n.mark&MarkLayout != 0 {
				return true
			}
		}
	}
	return false
}

// Passes returns the number of sweeps the last call to Solve needed.
func (t *Tree) Passes() int {
	return t.passes
}

// Stalled returns the number of nodes which refused their reverse layout
// in two consecutive passes of the last call to Solve.
func (t *Tree) Stalled() int {
	return t.stalled
}

// Solve resolves all pending layout marks. Each pass is a forward sweep
// by ascending level followed by a reverse sweep by descending level.
// Nodes marked during a sweep are picked up by the same sweep if their
// level is still ahead, otherwise by the next pass.
//
// If marks are left after the maximum number of passes, the layout is
// inconsistent. This is reported as an assertion failure and an error.
// A node waiting for its parent in two consecutive passes is a logic
// failure as well. It is traced as an error once per Solve.
func (t *Tree) Solve() error {
	limit := t.regs.N(parameters.P_MAXLAYOUTPASSES)
	t.passes, t.stalled = 0, 0
	var waiting map[*Node]bool
	reported := make(map[*Node]bool)
	for t.NeedsLayout() {
		if t.passes >= limit {
			core.Assert(false, "layout did not settle after %d passes", limit)
			return core.Error(core.EINTERNAL, "layout did not settle after %d passes", limit)
		}
		t.passes++
		for l := 1; l < len(t.levels); l++ {
			for i := 0; i < len(t.levels[l]); i++ {
				if n := t.levels[l][i]; n != nil && n.mark&MarkLayout != 0 {
					n.self.LayoutForward(n.mark)
				}
			}
		}
		blocked := make(map[*Node]bool)
		for l := len(t.levels) - 1; l > 0; l-- {
			for i := 0; i < len(t.levels[l]); i++ {
				if n := t.levels[l][i]; n != nil && n.mark&MarkLayout != 0 {
					if !n.self.LayoutReverse(n.mark) {
						blocked[n] = true
					}
				}
			}
		}
		for n := range blocked {
			if waiting[n] && !reported[n] {
				reported[n] = true
				t.stalled++
				tracer().Errorf("layout pass %d: view %v is still waiting for its parent", t.passes, n)
			}
		}
		if len(blocked) > 0 {
			tracer().Debugf("layout pass %d: %d views waiting for their parent", t.passes, len(blocked))
		}
		waiting = blocked
		t.compact()
	}
	return nil
}

// --- Painting --------------------------------------------------------------

// Painter receives views whose geometry or render properties changed.
// Frames are border boxes in tree coordinates.
type Painter interface {
	Paint(v *Node, frame dimen.Rect)
}

// PainterFunc adapts a function to a Painter.
type PainterFunc func(v *Node, frame dimen.Rect)

// Paint calls f.
func (f PainterFunc) Paint(v *Node, frame dimen.Rect) {
	f(v, frame)
}

// Flush walks the paths of the tree leading to dirty views, computes world
// positions, clears render marks and hands changed visible views to the
// painter. p may be nil. Flush returns the number of changed views.
func (t *Tree) Flush(p Painter) int {
	return t.flush(t.root, dimen.Zero, false, true, p)
}

func (t *Tree) flush(n *Node, origin dimen.Vec2, force, shown bool, p Painter) int {
	count := 0
	shown = shown && n.visible
	moved := false
	if force || n.mark&MarkRender != 0 {
		world := origin.Add(n.offset).Add(n.margin.Lead())
		moved = force || world != n.world || n.mark&MarkTransform != 0
		n.world = world
		if shown && p != nil {
			p.Paint(n, n.Frame())
		}
		count++
		n.Unmark(MarkRender)
	}
	if n.childDirty || moved {
		inner := n.world.Add(n.padding.Lead())
		for c := n.first; c != nil; c = c.next {
			count += t.flush(c, inner, moved, shown, p)
		}
	}
	n.childDirty = false
	return count
}
