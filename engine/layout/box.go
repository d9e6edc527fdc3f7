package layout

import (
	"fmt"
	"strings"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
)

// SizeKind tells how a box size is computed.
type SizeKind int8

// Kinds of box sizes
const (
	SizeWrap  SizeKind = iota // size of content
	SizePixel                 // explicit value
	SizeMatch                 // parent content minus own padding and margin
	SizeRatio                 // fraction of parent content
	SizeMinus                 // parent content minus value
)

// BoxSize is the width or height setting of a box.
type BoxSize struct {
	Value float32
	Kind  SizeKind
}

// Predefined box sizes
var (
	Wrap  = BoxSize{}
	Match = BoxSize{Kind: SizeMatch}
)

// Px creates an explicit box size.
func Px(v float32) BoxSize { return BoxSize{v, SizePixel} }

// Ratio creates a box size relative to the parent.
func Ratio(f float32) BoxSize { return BoxSize{f, SizeRatio} }

// Minus creates a box size of the parent minus a value.
func Minus(v float32) BoxSize { return BoxSize{v, SizeMinus} }

func (s BoxSize) String() string {
	switch s.Kind {
	case SizePixel:
		return fmt.Sprintf("%gpx", s.Value)
	case SizeMatch:
		return "match"
	case SizeRatio:
		return fmt.Sprintf("%g%%", s.Value*100)
	case SizeMinus:
		return fmt.Sprintf("%g!", s.Value)
	}
	return "wrap"
}

// Lerp interpolates between two sizes of the same kind. Sizes of different
// kinds switch at t = 1.
func (s BoxSize) Lerp(to BoxSize, t float32) BoxSize {
	if s.Kind != to.Kind {
		if t < 1 {
			return s
		}
		return to
	}
	return BoxSize{s.Value + (to.Value-s.Value)*t, s.Kind}
}

// ParseBoxSize reads a box size. Accepted are `wrap` (or `auto`), `match`,
// pixel lengths (`20`, `20px`), ratios (`50%`) and differences to the
// parent (`20!`).
func ParseBoxSize(s string) (BoxSize, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "!") {
		v, u, err := dimen.ParseLength(strings.TrimSuffix(s, "!"))
		if err != nil || u != dimen.PX {
			return Wrap, core.Error(core.EINVALID, "illegal box size '%s'", s)
		}
		return Minus(v), nil
	}
	v, u, err := dimen.ParseLength(s)
	if err != nil {
		return Wrap, core.WrapError(err, core.EINVALID, "illegal box size '%s'", s)
	}
	switch u {
	case dimen.Auto:
		return Wrap, nil
	case dimen.Match:
		return Match, nil
	case dimen.Percent:
		return Ratio(v), nil
	}
	return Px(v), nil
}

// --- Sizing helpers shared by all kinds ------------------------------------

func (n *Node) sizeOf(a dimen.Axis) BoxSize {
	if a == dimen.X {
		return n.width
	}
	return n.height
}

func sizeMark(a dimen.Axis) Mark {
	if a == dimen.X {
		return MarkWidth
	}
	return MarkHeight
}

// decoration is the extent of margin and padding.
func (n *Node) decoration() dimen.Vec2 {
	return n.margin.Sum().Add(n.padding.Sum())
}

// limit applies the size limits of n to a content extent.
func (n *Node) limit(a dimen.Axis, v float32) float32 {
	if hi := n.maxSize.At(a); hi > 0 && v > hi {
		v = hi
	}
	if lo := n.minSize.At(a); v < lo {
		v = lo
	}
	return v
}

// parentContent returns the content size and wrap state of the parent.
// The root has a zero-sized parent of explicit size.
func (n *Node) parentContent() (dimen.Vec2, [2]bool) {
	if n.parent == nil {
		return dimen.Zero, [2]bool{}
	}
	return n.parent.content, n.parent.wrap
}

// contentFor computes the content extent along axis a for a parent with
// content size psize. Sizes relative to a wrapped parent inherit the wrap
// state and fall back to the natural extent of n.
func (n *Node) contentFor(a dimen.Axis, psize dimen.Vec2, pwrap [2]bool) (float32, bool) {
	bs := n.sizeOf(a)
	ps := psize.At(a)
	var v float32
	wrap := pwrap[a]
	switch bs.Kind {
	case SizePixel:
		v, wrap = bs.Value, false
	case SizeMatch:
		v = ps - n.decoration().At(a)
	case SizeRatio:
		v = ps * bs.Value
	case SizeMinus:
		v = ps - bs.Value
	default:
		wrap = true
	}
	if wrap {
		v = n.intrinsic.At(a)
	}
	return n.limit(a, dimen.Max(v, 0)), wrap
}

// rawSize is the layout size n would choose for itself within a parent
// of content size psize.
func (n *Node) rawSize(psize dimen.Vec2, pwrap [2]bool) dimen.Vec2 {
	w, _ := n.contentFor(dimen.X, psize, pwrap)
	h, _ := n.contentFor(dimen.Y, psize, pwrap)
	return dimen.V(w, h).Add(n.decoration())
}

// solveSizeForward recomputes the content size of n for the size marks
// in m, unless the parent has authority over it. It returns the marks for
// the axes whose content size changed.
func (n *Node) solveSizeForward(m Mark) Mark {
	if m&MarkSize == 0 {
		return MarkNone
	}
	change := MarkNone
	if p := n.parent; p == nil || !p.self.IsLockChildLayoutSize() {
		psize, pwrap := n.parentContent()
		for _, a := range []dimen.Axis{dimen.X, dimen.Y} {
			if m&sizeMark(a) == 0 {
				continue
			}
			v, wrap := n.contentFor(a, psize, pwrap)
			if v != n.content.At(a) || wrap != n.wrap[a] {
				n.content = n.content.With(a, v)
				n.wrap[a] = wrap
				change |= sizeMark(a)
			}
		}
		size := n.content.Add(n.decoration())
		if size != n.size {
			n.size = size
			n.notifyParent(ChildSize)
		}
	}
	n.Unmark(MarkSize)
	return change
}

// setContentSize sets a content size found by arranging children.
func (n *Node) setContentSize(v dimen.Vec2) {
	n.content = v
	n.size = v.Add(n.decoration())
	n.Mark(MarkVisibleRegion)
}

// setIntrinsic records the natural content extent of n. A parent which
// locks the size of n is asked to re-arrange if n wraps its content.
func (n *Node) setIntrinsic(v dimen.Vec2) {
	v = dimen.V(dimen.Max(v.X, n.measure.X), dimen.Max(v.Y, n.measure.Y))
	if v == n.intrinsic {
		return
	}
	n.intrinsic = v
	if p := n.parent; p != nil && p.self.IsLockChildLayoutSize() &&
		(n.width.Kind == SizeWrap || n.height.Kind == SizeWrap) {
		p.self.OnChildLayoutChange(n, ChildSize)
	}
}

// isReadyLayoutTypesetting is false while a parent which locks the size
// of n still has to arrange its children.
func (n *Node) isReadyLayoutTypesetting() bool {
	if p := n.parent; p != nil && p.self.IsLockChildLayoutSize() {
		return p.mark&MarkTypesetting == 0
	}
	return true
}

func (n *Node) notifyChildren(m Mark) {
	for c := n.first; c != nil; c = c.next {
		c.self.OnParentLayoutContentSizeChange(n, m)
	}
}

// lock forces the layout size of n. Content size is what remains after
// margin and padding, subject to the limits of n.
func (n *Node) lock(size dimen.Vec2) dimen.Vec2 {
	deco := n.decoration()
	old := n.content
	n.content = dimen.V(
		n.limit(dimen.X, dimen.Max(size.X-deco.X, 0)),
		n.limit(dimen.Y, dimen.Max(size.Y-deco.Y, 0)),
	)
	n.size = n.content.Add(deco)
	change := MarkNone
	if old.X != n.content.X || n.wrap[dimen.X] {
		change |= MarkWidth
	}
	if old.Y != n.content.Y || n.wrap[dimen.Y] {
		change |= MarkHeight
	}
	n.wrap = [2]bool{}
	if change != MarkNone {
		if !n.self.IsLockChildLayoutSize() {
			n.notifyChildren(change)
		}
		n.MarkPre(MarkTypesetting)
		n.Mark(MarkVisibleRegion)
	}
	n.Unmark(MarkSize)
	return n.size
}

// --- Box -------------------------------------------------------------------

// Box is a container placing each child at its own alignment.
type Box struct {
	Node
}

var _ Layout = &Box{}

// NewBox creates a box which wraps its content.
func NewBox() *Box {
	b := &Box{}
	initNode(&b.Node, b, KindBox)
	return b
}

// LayoutForward resolves explicit and parent-relative sizes.
func (b *Box) LayoutForward(m Mark) bool {
	if change := b.solveSizeForward(m); change != MarkNone {
		b.notifyChildren(change)
		b.MarkPre(MarkTypesetting)
		b.Mark(MarkVisibleRegion)
	}
	return b.mark&MarkLayout == 0
}

// LayoutReverse sizes wrapped dimensions from the children and places them.
func (b *Box) LayoutReverse(m Mark) bool {
	if m&MarkTypesetting != 0 {
		if !b.isReadyLayoutTypesetting() {
			return false
		}
		b.typesetBox()
		b.Unmark(MarkTypesetting)
	}
	return true
}

// LayoutLock forces the layout size of the box.
func (b *Box) LayoutLock(size dimen.Vec2) dimen.Vec2 {
	return b.lock(size)
}

// IsLockChildLayoutSize is false for boxes: children size themselves.
func (b *Box) IsLockChildLayoutSize() bool {
	return false
}

// OnChildLayoutChange re-arranges the box when a child changes.
func (b *Box) OnChildLayoutChange(child *Node, change ChildChange) {
	if change&(ChildSize|ChildVisible|ChildAlign|ChildText) != 0 {
		b.MarkPre(MarkTypesetting)
	}
}

// OnParentLayoutContentSizeChange re-computes sizes relative to the parent.
func (b *Box) OnParentLayoutContentSizeChange(parent *Node, m Mark) {
	b.MarkPre(m & MarkSize)
}
