package layout

import (
	"image/color"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
)

// Layout is the contract every kind of node implements. The tree calls
// LayoutForward top-down and LayoutReverse bottom-up for each node with
// pending layout marks. Both return true if the node's own layout marks
// are resolved; a node returning false is visited again in the next sweep.
//
// LayoutLock is called by a container which has computed the layout size
// of a child. It returns the size the child accepted, which may differ
// from the proposal due to size limits.
type Layout interface {
	Element
	LayoutForward(m Mark) bool
	LayoutReverse(m Mark) bool
	LayoutLock(size dimen.Vec2) dimen.Vec2
	IsLockChildLayoutSize() bool
	OnChildLayoutChange(child *Node, change ChildChange)
	OnParentLayoutContentSizeChange(parent *Node, m Mark)
}

// Element is anything backed by a layout node.
type Element interface {
	AsNode() *Node
}

// ViewAction is an animation bound to a view. It is told when the view
// leaves its tree.
type ViewAction interface {
	DetachView(v *Node)
}

// Node is a view in a layout tree. Nodes are created as a Box, Flex or
// Flow and linked into a tree with Append, Prepend, Before and After.
//
// All properties are changed through setters, which mark the node or
// notify its parent. Geometry read from a node is authoritative only if
// the node carries no layout marks.
type Node struct {
	parent, first, last *Node
	prev, next          *Node
	self                Layout
	kind                Kind
	tree                *Tree
	level               int // depth in tree, 0 if detached
	mark                Mark
	markIndex           int // index in tree registry, -1 if unregistered
	childDirty          bool
	visible             bool

	width, height    BoxSize
	minSize, maxSize dimen.Vec2 // zero maximum means unbounded
	margin, padding  dimen.Insets
	content          dimen.Vec2 // content box
	size             dimen.Vec2 // layout box: content + padding + margin
	wrap             [2]bool    // size of axis depends on content
	measure          dimen.Vec2 // content measured by external collaborators
	intrinsic        dimen.Vec2 // natural content extent
	offset           dimen.Vec2 // margin box offset within parent content box
	weight           float32
	align            Align

	opacity   float32
	translate dimen.Vec2
	scale     dimen.Vec2
	rotate    float32
	color     color.RGBA
	world     dimen.Vec2 // border box origin, valid after Flush

	tag     string
	id      string
	classes []string
	action  ViewAction
}

func initNode(n *Node, self Layout, kind Kind) {
	n.self = self
	n.kind = kind
	n.tag = kind.String()
	n.markIndex = -1
	n.visible = true
	n.wrap = [2]bool{true, true}
	n.opacity = 1
	n.scale = dimen.V(1, 1)
	n.color = color.RGBA{A: 0xff}
	n.mark = MarkLayout | MarkRender
}

// AsNode returns n.
func (n *Node) AsNode() *Node {
	return n
}

// Layout returns the kind-specific layout of a node.
func (n *Node) Layout() Layout {
	return n.self
}

// Kind returns the layout kind of a node.
func (n *Node) Kind() Kind {
	return n.kind
}

// --- Tree structure --------------------------------------------------------

// Errors of tree manipulation.
var (
	ErrNoParent = core.Error(core.EMISSING, "view has no parent")
	ErrCycle    = core.Error(core.EINVALID, "view may not become its own descendant")
)

func (n *Node) checkChild(child *Node) error {
	if child == nil || child == n {
		return core.Error(core.EINVALID, "cannot link view to itself")
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return core.WrapError(ErrCycle, core.EINVALID, "cannot link view %s", child.tag)
		}
	}
	return nil
}

// Append links a child as the last child of n. If child already has a
// parent, it is moved.
func (n *Node) Append(e Element) error {
	child := e.AsNode()
	if err := n.checkChild(child); err != nil {
		return err
	}
	n.adopt(child)
	if n.last != nil {
		child.prev = n.last
		n.last.next = child
		n.last = child
	} else {
		n.first, n.last = child, child
	}
	n.adopted(child)
	return nil
}

// Prepend links a child as the first child of n.
func (n *Node) Prepend(e Element) error {
	child := e.AsNode()
	if err := n.checkChild(child); err != nil {
		return err
	}
	n.adopt(child)
	if n.first != nil {
		child.next = n.first
		n.first.prev = child
		n.first = child
	} else {
		n.first, n.last = child, child
	}
	n.adopted(child)
	return nil
}

// Before links a view as the previous sibling of n.
func (n *Node) Before(e Element) error {
	p := n.parent
	if p == nil {
		return core.WrapError(ErrNoParent, core.EMISSING, "cannot insert before %s", n.tag)
	}
	view := e.AsNode()
	if view == n {
		return nil
	}
	if err := p.checkChild(view); err != nil {
		return err
	}
	p.adopt(view)
	view.prev, view.next = n.prev, n
	if n.prev != nil {
		n.prev.next = view
	} else {
		p.first = view
	}
	n.prev = view
	p.adopted(view)
	return nil
}

// After links a view as the next sibling of n.
func (n *Node) After(e Element) error {
	p := n.parent
	if p == nil {
		return core.WrapError(ErrNoParent, core.EMISSING, "cannot insert after %s", n.tag)
	}
	view := e.AsNode()
	if view == n {
		return nil
	}
	if err := p.checkChild(view); err != nil {
		return err
	}
	p.adopt(view)
	view.prev, view.next = n, n.next
	if n.next != nil {
		n.next.prev = view
	} else {
		p.last = view
	}
	n.next = view
	p.adopted(view)
	return nil
}

// adopt unlinks child from its current siblings. A child coming from a
// different parent is notified away from that parent.
func (n *Node) adopt(child *Node) {
	old := child.parent
	child.unlink()
	if old != nil && old != n && child.visible {
		old.self.OnChildLayoutChange(child, ChildVisible)
	}
}

func (n *Node) adopted(child *Node) {
	moved := child.parent != n
	child.parent = n
	if moved || child.tree != n.tree {
		level := 0
		if n.level > 0 {
			level = n.level + 1
		}
		child.setLevel(n.tree, level)
	}
	if child.visible {
		n.self.OnChildLayoutChange(child, ChildVisible)
	}
}

func (n *Node) unlink() {
	p := n.parent
	if p == nil {
		return
	}
	if p.first == n {
		p.first = n.next
	} else if n.prev != nil {
		n.prev.next = n.next
	}
	if p.last == n {
		p.last = n.prev
	} else if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
}

// setLevel moves a subtree into tree t at depth level (0 = detached).
// Attached nodes are marked for a complete layout.
func (n *Node) setLevel(t *Tree, level int) {
	if n.markIndex >= 0 {
		n.tree.unregister(n)
	}
	n.tree, n.level = t, level
	if t != nil && level > 0 {
		n.MarkPre(MarkLayout | MarkRender)
	}
	for c := n.first; c != nil; c = c.next {
		l := 0
		if level > 0 {
			l = level + 1
		}
		c.setLevel(t, l)
	}
}

// Remove detaches n from its parent. The subtree loses its dirty marks,
// leaves the tree's registry and unbinds from any actions. Removing a
// node without parent is a no-op.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	n.unlink()
	n.parent = nil
	n.release()
	if n.visible {
		p.self.OnChildLayoutChange(n, ChildVisible)
	}
	tracer().Debugf("removed %s from %s", n, p)
}

func (n *Node) release() {
	if n.markIndex >= 0 && n.tree != nil {
		n.tree.unregister(n)
	}
	n.mark, n.childDirty = MarkNone, false
	n.tree, n.level = nil, 0
	if a := n.action; a != nil {
		n.action = nil
		a.DetachView(n)
	}
	for c := n.first; c != nil; c = c.next {
		c.release()
	}
}

// RemoveChildren detaches all children of n.
func (n *Node) RemoveChildren() {
	for n.first != nil {
		n.first.Remove()
	}
}

// IsChildOf checks if n is a descendant of view.
func (n *Node) IsChildOf(view *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == view {
			return true
		}
	}
	return false
}

// Parent returns the parent of n, or nil.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child of n, or nil.
func (n *Node) FirstChild() *Node { return n.first }

// LastChild returns the last child of n, or nil.
func (n *Node) LastChild() *Node { return n.last }

// NextSibling returns the next sibling of n, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// PrevSibling returns the previous sibling of n, or nil.
func (n *Node) PrevSibling() *Node { return n.prev }

// Level is the depth of n in its tree, starting with 1 for the root.
// Detached nodes have level 0.
func (n *Node) Level() int { return n.level }

// Tree returns the tree n is attached to, or nil.
func (n *Node) Tree() *Tree { return n.tree }

// Children returns the children of n in order.
func (n *Node) Children() []*Node {
	var ch []*Node
	for c := n.first; c != nil; c = c.next {
		ch = append(ch, c)
	}
	return ch
}

// Walk visits the subtree of n in document order. If fn returns false,
// the children of the visited node are skipped.
func (n *Node) Walk(fn func(v *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for c := n.first; c != nil; c = c.next {
		c.walk(fn, depth+1)
	}
}

// --- Action binding --------------------------------------------------------

// Action returns the action bound to n, or nil.
func (n *Node) Action() ViewAction {
	return n.action
}

// SetActionBinding stores the action bound to n and returns the previous
// one. It does not notify either action; binding is managed by the action
// side.
func (n *Node) SetActionBinding(a ViewAction) ViewAction {
	prev := n.action
	n.action = a
	return prev
}
