package layout

import "strings"

// Mark is a set of dirty flags of a node.
type Mark uint32

// Dirty flags. Layout flags are resolved by Tree.Solve, render flags by
// Tree.Flush.
const (
	MarkNone          Mark = 0
	MarkWidth         Mark = 1 << 0  // own width must be recomputed
	MarkHeight        Mark = 1 << 1  // own height must be recomputed
	MarkTypesetting   Mark = 1 << 2  // children must be arranged
	MarkTransform     Mark = 1 << 30 // world position or render properties changed
	MarkVisibleRegion Mark = 1 << 31 // size of the painted area changed

	MarkSize   = MarkWidth | MarkHeight
	MarkLayout = MarkWidth | MarkHeight | MarkTypesetting
	MarkRender = MarkTransform | MarkVisibleRegion
)

func (m Mark) String() string {
	if m == MarkNone {
		return "none"
	}
	var b strings.Builder
	for _, f := range []struct {
		bit  Mark
		name string
	}{
		{MarkWidth, "W"}, {MarkHeight, "H"}, {MarkTypesetting, "T"},
		{MarkTransform, "X"}, {MarkVisibleRegion, "V"},
	} {
		if m&f.bit != 0 {
			b.WriteString(f.name)
		}
	}
	return b.String()
}

// ChildChange tells a container what changed about one of its children.
type ChildChange uint32

// Child change notifications
const (
	ChildSize ChildChange = 1 << iota
	ChildVisible
	ChildAlign
	ChildWeight
	ChildText
)

// Mark ORs bits into the node's dirty flags and flags all ancestors as
// having a dirty descendant. Propagation stops at the first ancestor which
// is already flagged.
func (n *Node) Mark(bits Mark) {
	n.mark |= bits
	for p := n.parent; p != nil && !p.childDirty; p = p.parent {
		p.childDirty = true
	}
}

// MarkPre marks the node and registers it with its tree for the next
// layout pass. Nodes which are not part of a tree keep their flags and
// are registered when attached.
func (n *Node) MarkPre(bits Mark) {
	n.Mark(bits)
	if n.tree != nil && n.markIndex < 0 {
		n.tree.register(n)
	}
}

// Unmark clears bits from the node's dirty flags. A node is dropped from
// its tree's registry as soon as no flag is left.
func (n *Node) Unmark(bits Mark) {
	n.mark &^= bits
	if n.mark == MarkNone && n.markIndex >= 0 && n.tree != nil {
		n.tree.unregister(n)
	}
}

// Marks returns the pending dirty flags of the node.
func (n *Node) Marks() Mark {
	return n.mark
}

// HasDirtyChild is true if a descendant of n carries dirty flags which
// have not been flushed yet.
func (n *Node) HasDirtyChild() bool {
	return n.childDirty
}
