package layout

import (
	"github.com/npillmayer/motif/core/dimen"
)

// Flex is a container distributing its children along a main axis.
//
// If the main axis size of a flex container is explicit (or locked by its
// parent), the container has authority over the sizes of its children: it
// computes them in the forward sweep and locks them. Otherwise children size
// themselves and the container stacks them in the reverse sweep.
type Flex struct {
	Box
	direction  Direction
	itemsAlign ItemsAlign
	crossAlign CrossAlign
	lockChild  bool
	lines      LineWrap // line breaking, used by Flow
	wrapAlign  WrapAlign
}

var _ Layout = &Flex{}

// NewFlex creates a row-oriented flex container.
func NewFlex() *Flex {
	f := &Flex{}
	initNode(&f.Node, f, KindFlex)
	return f
}

// Direction returns the main axis direction.
func (f *Flex) Direction() Direction { return f.direction }

// ItemsAlign returns the main axis distribution.
func (f *Flex) ItemsAlign() ItemsAlign { return f.itemsAlign }

// CrossAlign returns the default cross axis alignment.
func (f *Flex) CrossAlign() CrossAlign { return f.crossAlign }

// SetDirection sets the main axis direction.
func (f *Flex) SetDirection(d Direction) {
	if f.direction != d {
		f.direction = d
		f.MarkPre(MarkTypesetting)
	}
}

// SetItemsAlign sets the main axis distribution.
func (f *Flex) SetItemsAlign(a ItemsAlign) {
	if f.itemsAlign != a {
		f.itemsAlign = a
		f.MarkPre(MarkTypesetting)
	}
}

// SetCrossAlign sets the default cross axis alignment.
func (f *Flex) SetCrossAlign(a CrossAlign) {
	if f.crossAlign != a {
		f.crossAlign = a
		f.MarkPre(MarkTypesetting)
	}
}

func (f *Flex) mainAxis() (dimen.Axis, bool) {
	switch f.direction {
	case RowReverse:
		return dimen.X, true
	case Column:
		return dimen.Y, false
	case ColumnReverse:
		return dimen.Y, true
	}
	return dimen.X, false
}

// updateLockChild recomputes whether f has authority over the sizes of
// its children. It returns true if the state changed.
func (f *Flex) updateLockChild() bool {
	lock := false
	if f.lines == NoWrap {
		main, _ := f.mainAxis()
		if p := f.parent; p != nil && p.self.IsLockChildLayoutSize() {
			lock = true
		} else if !f.wrap[main] {
			lock = true // explicit main size, no line feed
		}
	}
	if f.lockChild != lock {
		f.lockChild = lock
		return true
	}
	return false
}

func (f *Flex) typeset() {
	main, reverse := f.mainAxis()
	switch {
	case f.lines != NoWrap:
		f.typesetWrap(main, reverse, f.itemsAlign, f.crossAlign, f.lines, f.wrapAlign)
	case f.lockChild:
		f.typesetFlex(main, reverse, f.itemsAlign, f.crossAlign)
	default:
		f.typesetAuto(main, reverse, f.crossAlign)
	}
}

// LayoutForward resolves the size of the container. If it has authority
// over its children, they are arranged and locked right away.
func (f *Flex) LayoutForward(m Mark) bool {
	if m&MarkLayout == 0 {
		return true
	}
	change := f.solveSizeForward(m)
	if f.updateLockChild() {
		change = MarkSize
	}
	if change != MarkNone {
		f.MarkPre(MarkTypesetting)
		f.Mark(MarkVisibleRegion)
	}
	if !f.lockChild {
		if change != MarkNone {
			f.notifyChildren(change)
		}
		return f.mark&MarkLayout == 0
	}
	if !f.isReadyLayoutTypesetting() {
		return false
	}
	if f.mark&MarkTypesetting != 0 {
		f.typeset()
		f.Unmark(MarkTypesetting)
	}
	return true
}

// LayoutReverse arranges children which have sized themselves.
func (f *Flex) LayoutReverse(m Mark) bool {
	if m&MarkTypesetting != 0 {
		if !f.isReadyLayoutTypesetting() {
			return false
		}
		f.typeset()
		f.Unmark(MarkTypesetting)
	}
	return true
}

// IsLockChildLayoutSize tells if f has authority over its children's sizes.
func (f *Flex) IsLockChildLayoutSize() bool {
	return f.lockChild
}

// OnChildLayoutChange re-arranges the container.
func (f *Flex) OnChildLayoutChange(child *Node, change ChildChange) {
	if change&(ChildSize|ChildAlign|ChildVisible|ChildWeight|ChildText) != 0 {
		f.MarkPre(MarkTypesetting)
	}
}

// --- Flow ------------------------------------------------------------------

// Flow is a flex container which may break its children into lines. As
// long as line breaking is off, it behaves like Flex.
type Flow struct {
	Flex
}

var _ Layout = &Flow{}

// NewFlow creates a row-oriented flow container with line breaking.
func NewFlow() *Flow {
	f := &Flow{}
	f.lines = WrapLines
	initNode(&f.Node, f, KindFlow)
	return f
}

// Wrap returns the line breaking mode.
func (f *Flow) Wrap() LineWrap { return f.lines }

// WrapAlign returns the distribution of lines.
func (f *Flow) WrapAlign() WrapAlign { return f.wrapAlign }

// SetWrap sets the line breaking mode. A flow which breaks lines never
// locks the sizes of its children.
func (f *Flow) SetWrap(w LineWrap) {
	if f.lines != w {
		f.lines = w
		f.MarkPre(MarkTypesetting)
	}
}

// SetWrapAlign sets the distribution of lines along the cross axis.
func (f *Flow) SetWrapAlign(a WrapAlign) {
	if f.wrapAlign != a {
		f.wrapAlign = a
		f.MarkPre(MarkTypesetting)
	}
}
