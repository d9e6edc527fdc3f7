package layout

import (
	"slices"

	"github.com/npillmayer/motif/core/dimen"
)

// parseAlign computes the leading offset and the spacing between count
// items for a main axis distribution of overflow. Reverse-rendered axes
// start at the far end.
func parseAlign(align ItemsAlign, reverse bool, overflow float32, count int) (offset, space float32) {
	if count <= 1 && align == ItemsSpaceBetween {
		align = ItemsStart
	}
	switch align {
	case ItemsStart:
		if reverse {
			offset = overflow
		}
	case ItemsCenter:
		offset = overflow / 2
	case ItemsEnd:
		if !reverse {
			offset = overflow
		}
	case ItemsSpaceBetween:
		if overflow > 0 {
			space = overflow / float32(count-1)
		} else if reverse {
			offset = overflow
		}
	case ItemsSpaceAround:
		if overflow > 0 && count > 0 {
			space = overflow / float32(count)
			offset = space / 2
		} else {
			offset = overflow / 2
		}
	case ItemsSpaceEvenly:
		if overflow > 0 {
			space = overflow / float32(count+1)
			offset = space
		} else {
			offset = overflow / 2
		}
	}
	return
}

func crossOffset(align CrossAlign, crossSize, size float32) float32 {
	switch align {
	case CrossCenter:
		return (crossSize - size) / 2
	case CrossEnd:
		return crossSize - size
	}
	return 0
}

// visibleChildren lists the children taking part in layout, in render
// order.
func (n *Node) visibleChildren(reverse bool) []*Node {
	var items []*Node
	if reverse {
		for c := n.last; c != nil; c = c.prev {
			if c.visible {
				items = append(items, c)
			}
		}
	} else {
		for c := n.first; c != nil; c = c.next {
			if c.visible {
				items = append(items, c)
			}
		}
	}
	return items
}

// resize sets the content size of n after arranging its children and
// tells the parent about a change.
func (n *Node) resize(v dimen.Vec2) {
	if v != n.content {
		n.setContentSize(v)
		n.notifyParent(ChildSize)
	}
}

// typesetBox places every child by its own alignment on both axes.
// Wrapped axes take the largest child extent.
func (n *Node) typesetBox() {
	items := n.visibleChildren(false)
	var ext dimen.Vec2
	for _, c := range items {
		ext = dimen.V(dimen.Max(ext.X, c.size.X), dimen.Max(ext.Y, c.size.Y))
	}
	n.setIntrinsic(ext)
	cs := n.content
	for _, a := range []dimen.Axis{dimen.X, dimen.Y} {
		if n.wrap[a] {
			cs = cs.With(a, n.limit(a, n.intrinsic.At(a)))
		}
	}
	n.resize(cs)
	for _, c := range items {
		ca := c.align.cross(CrossStart)
		c.setOffset(dimen.V(
			crossOffset(ca, n.content.X, c.size.X),
			crossOffset(ca, n.content.Y, c.size.Y),
		))
	}
}

// typesetFlex distributes children along an explicit main axis. Children
// are locked to their final size: raw size plus a share of the overflow
// proportional to their weight,
//
//	size = raw + overflow * (weight / weightTotal) * min(weightTotal, 1)
//
// A locked child may refuse the proposed size. Spacing is computed from the
// accepted sizes.
func (n *Node) typesetFlex(main dimen.Axis, reverse bool, items ItemsAlign, cross CrossAlign) {
	ca := main.Cross()
	crossWrap := n.wrap[ca]
	mainSize := n.content.At(main)
	crossSize := n.content.At(ca)
	children := n.visibleChildren(reverse)
	raws := make([]dimen.Vec2, len(children))
	var rawMain, maxCross, weightTotal float32
	for i, c := range children {
		raws[i] = c.rawSize(n.content, n.wrap)
		rawMain += raws[i].At(main)
		maxCross = dimen.Max(maxCross, raws[i].At(ca))
		weightTotal += c.weight
	}
	if crossWrap {
		crossSize = n.limit(ca, maxCross)
	}
	overflow := mainSize - rawMain
	if weightTotal > 0 {
		grow := overflow / weightTotal * dimen.Min(weightTotal, 1)
		total := float32(0)
		for i, c := range children {
			s := raws[i]
			s = s.With(main, s.At(main)+c.weight*grow)
			raws[i] = c.self.LayoutLock(s)
			total += raws[i].At(main)
		}
		overflow = mainSize - total
	}
	offset, space := parseAlign(items, reverse, overflow, len(children))
	for i, c := range children {
		if weightTotal == 0 {
			raws[i] = c.self.LayoutLock(raws[i])
		}
		s := raws[i]
		oc := crossOffset(c.align.cross(cross), crossSize, s.At(ca))
		c.setOffset(dimen.Along(main, offset, oc))
		offset += s.At(main) + space
	}
	n.setIntrinsic(dimen.Along(main, rawMain, maxCross))
	n.resize(n.content.With(ca, crossSize))
}

// typesetAuto stacks children along a wrapped main axis. Children keep
// their own sizes.
func (n *Node) typesetAuto(main dimen.Axis, reverse bool, cross CrossAlign) {
	ca := main.Cross()
	children := n.visibleChildren(reverse)
	var sumMain, maxCross float32
	for _, c := range children {
		sumMain += c.size.At(main)
		maxCross = dimen.Max(maxCross, c.size.At(ca))
	}
	n.setIntrinsic(dimen.Along(main, sumMain, maxCross))
	crossSize := n.content.At(ca)
	if n.wrap[ca] {
		crossSize = n.limit(ca, n.intrinsic.At(ca))
	}
	var offset float32
	for _, c := range children {
		oc := crossOffset(c.align.cross(cross), crossSize, c.size.At(ca))
		c.setOffset(dimen.Along(main, offset, oc))
		offset += c.size.At(main)
	}
	mainSize := n.limit(main, dimen.Max(offset, n.measure.At(main)))
	n.resize(dimen.Along(main, mainSize, crossSize))
}

type line struct {
	items       []*Node
	main, cross float32
}

// typesetWrap breaks children into lines along the main axis. A line is
// full when the next child would exceed the main size of the container.
// Lines are distributed along the cross axis by wrapAlign.
func (n *Node) typesetWrap(main dimen.Axis, reverse bool, items ItemsAlign, cross CrossAlign,
	mode LineWrap, wrapAlign WrapAlign) {
	//
	ca := main.Cross()
	limitMain := n.content.At(main)
	if n.wrap[main] {
		limitMain = dimen.Infinity
		if hi := n.maxSize.At(main); hi > 0 {
			limitMain = hi
		}
	}
	var lines []*line
	cur := &line{}
	var sumMain float32
	push := func() {
		if reverse {
			slices.Reverse(cur.items)
		}
		lines = append(lines, cur)
	}
	// lines break in document order, reversed axes reverse each line
	for _, c := range n.visibleChildren(false) {
		s := c.size
		if len(cur.items) > 0 && cur.main+s.At(main) > limitMain {
			push()
			cur = &line{}
		}
		cur.items = append(cur.items, c)
		cur.main += s.At(main)
		cur.cross = dimen.Max(cur.cross, s.At(ca))
		sumMain += s.At(main)
	}
	if len(cur.items) > 0 {
		push()
	}
	var totalCross, widest, maxCross float32
	for _, l := range lines {
		totalCross += l.cross
		widest = dimen.Max(widest, l.main)
		maxCross = dimen.Max(maxCross, l.cross)
	}
	n.setIntrinsic(dimen.Along(main, sumMain, maxCross))
	mainSize := n.content.At(main)
	if n.wrap[main] {
		mainSize = n.limit(main, dimen.Max(widest, n.measure.At(main)))
	}
	crossSize := n.content.At(ca)
	if n.wrap[ca] {
		crossSize = n.limit(ca, dimen.Max(totalCross, n.measure.At(ca)))
	}
	crossOverflow := crossSize - totalCross
	if wrapAlign == WrapStretch {
		if crossOverflow > 0 && len(lines) > 0 {
			add := crossOverflow / float32(len(lines))
			for _, l := range lines {
				l.cross += add
			}
			crossOverflow = 0
		}
		wrapAlign = WrapStart
	}
	wrapReverse := mode == WrapReverse
	lineOffset, lineSpace := parseAlign(ItemsAlign(wrapAlign), wrapReverse, crossOverflow, len(lines))
	for i := range lines {
		l := lines[i]
		if wrapReverse {
			l = lines[len(lines)-1-i]
		}
		offset, space := parseAlign(items, reverse, mainSize-l.main, len(l.items))
		for _, c := range l.items {
			oc := lineOffset + crossOffset(c.align.cross(cross), l.cross, c.size.At(ca))
			c.setOffset(dimen.Along(main, offset, oc))
			offset += c.size.At(main) + space
		}
		lineOffset += l.cross + lineSpace
	}
	n.resize(dimen.Along(main, mainSize, crossSize))
}
