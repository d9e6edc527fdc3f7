package layout

import (
	"testing"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowOf(t *testing.T, w, h float32, children ...*Box) (*Flex, *Tree) {
	f := NewFlex()
	for _, c := range children {
		require.NoError(t, f.Append(c))
	}
	return f, NewTree(f, dimen.V(w, h), nil)
}

func TestParseAlignTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	for _, x := range []struct {
		align         ItemsAlign
		reverse       bool
		overflow      float32
		count         int
		offset, space float32
	}{
		{ItemsStart, false, 50, 2, 0, 0},
		{ItemsStart, true, 50, 2, 50, 0},
		{ItemsCenter, false, 50, 2, 25, 0},
		{ItemsEnd, false, 50, 2, 50, 0},
		{ItemsEnd, true, 50, 2, 0, 0},
		{ItemsSpaceBetween, false, 50, 2, 0, 50},
		{ItemsSpaceBetween, false, -10, 2, 0, 0},
		{ItemsSpaceBetween, true, -10, 2, -10, 0},
		{ItemsSpaceBetween, false, 50, 1, 0, 0},
		{ItemsSpaceAround, false, 40, 2, 10, 20},
		{ItemsSpaceAround, false, -10, 2, -5, 0},
		{ItemsSpaceEvenly, false, 30, 2, 10, 10},
		{ItemsSpaceEvenly, false, -10, 2, -5, 0},
	} {
		offset, space := parseAlign(x.align, x.reverse, x.overflow, x.count)
		assert.InDelta(t, x.offset, offset, 1e-4, "offset for %s, reverse=%v, n=%d", x.align, x.reverse, x.count)
		assert.InDelta(t, x.space, space, 1e-4, "space for %s, reverse=%v, n=%d", x.align, x.reverse, x.count)
	}
}

func TestFlexSpaceBetween(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(30, 10), fixed(20, 10)
	f, tree := rowOf(t, 100, 50, a, b)
	f.SetItemsAlign(ItemsSpaceBetween)
	require.NoError(t, tree.Solve())
	assert.True(t, f.IsLockChildLayoutSize())
	assert.Equal(t, float32(0), a.Offset().X)
	assert.Equal(t, float32(80), b.Offset().X)
	assert.Equal(t, dimen.V(30, 10), a.LayoutSize(), "sizes are unchanged without weights")
	assert.Equal(t, dimen.V(20, 10), b.LayoutSize())
}

func TestFlexSpaceEvenly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(30, 10), fixed(20, 10)
	f, tree := rowOf(t, 100, 50, a, b)
	f.SetItemsAlign(ItemsSpaceEvenly)
	require.NoError(t, tree.Solve())
	assert.InDelta(t, 16.6667, a.Offset().X, 1e-3)
	assert.InDelta(t, 63.3333, b.Offset().X, 1e-3)
}

func TestFlexWeights(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(20, 10), fixed(30, 10)
	a.SetWeight(1)
	b.SetWeight(3)
	_, tree := rowOf(t, 100, 20, a, b)
	require.NoError(t, tree.Solve())
	assert.InDelta(t, 32.5, a.LayoutSize().X, 1e-4)
	assert.InDelta(t, 67.5, b.LayoutSize().X, 1e-4)
	assert.InDelta(t, 32.5, b.Offset().X, 1e-4)
	//
	b.SetWeight(0)
	a.SetWeight(0.5) // weight total < 1 leaves part of the overflow
	require.NoError(t, tree.Solve())
	assert.InDelta(t, 45, a.LayoutSize().X, 1e-4)
	assert.InDelta(t, 30, b.LayoutSize().X, 1e-4)
}

func TestFlexNoOverflowKeepsRawSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(60, 10), fixed(40, 10)
	a.SetWeight(2)
	b.SetWeight(7)
	_, tree := rowOf(t, 100, 20, a, b)
	require.NoError(t, tree.Solve())
	assert.Equal(t, float32(60), a.LayoutSize().X)
	assert.Equal(t, float32(40), b.LayoutSize().X)
}

func TestFlexLockRespectsLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(20, 10), fixed(30, 10)
	a.SetWeight(1)
	b.SetWeight(1)
	a.SetMaxSize(dimen.V(25, 0))
	f, tree := rowOf(t, 100, 20, a, b)
	f.SetItemsAlign(ItemsEnd)
	require.NoError(t, tree.Solve())
	assert.Equal(t, float32(25), a.LayoutSize().X, "lock is clamped by max width")
	assert.Equal(t, float32(55), b.LayoutSize().X)
	assert.Equal(t, float32(20), a.Offset().X, "spacing uses accepted sizes")
	assert.Equal(t, float32(45), b.Offset().X)
}

func TestFlexCrossAlign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b, c := fixed(10, 10), fixed(10, 20), fixed(10, 30)
	b.SetAlign(AlignEnd)
	f, tree := rowOf(t, 100, 40, a, b, c)
	f.SetCrossAlign(CrossCenter)
	require.NoError(t, tree.Solve())
	assert.Equal(t, dimen.V(0, 15), a.Offset())
	assert.Equal(t, dimen.V(10, 20), b.Offset())
	assert.Equal(t, dimen.V(20, 5), c.Offset())
}

func TestFlexColumnReverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(10, 30), fixed(10, 20)
	f, tree := rowOf(t, 50, 100, a, b)
	f.SetDirection(ColumnReverse)
	require.NoError(t, tree.Solve())
	assert.Equal(t, float32(70), a.Offset().Y, "first child ends at the bottom")
	assert.Equal(t, float32(50), b.Offset().Y)
}

func TestFlexAutoStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	root := NewBox()
	f := NewFlex()
	c1, c2 := fixed(30, 10), fixed(20, 25)
	c1.SetAlign(AlignCenter)
	require.NoError(t, f.Append(c1))
	require.NoError(t, f.Append(c2))
	require.NoError(t, root.Append(f))
	tree := NewTree(root, dimen.V(200, 100), nil)
	require.NoError(t, tree.Solve())
	assert.False(t, f.IsLockChildLayoutSize())
	assert.Equal(t, dimen.V(50, 25), f.ContentSize())
	assert.Equal(t, dimen.V(0, 7.5), c1.Offset())
	assert.Equal(t, dimen.V(30, 0), c2.Offset())
	//
	f.SetWidth(Px(120))
	require.NoError(t, tree.Solve())
	assert.True(t, f.IsLockChildLayoutSize(), "explicit main size locks children")
	assert.Equal(t, dimen.V(120, 25), f.ContentSize())
}

func TestFlexLockedWrapChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	inner := NewBox()
	require.NoError(t, inner.Append(fixed(40, 20)))
	b := fixed(10, 10)
	f := NewFlex()
	require.NoError(t, f.Append(inner))
	require.NoError(t, f.Append(b))
	tree := NewTree(f, dimen.V(100, 50), nil)
	require.NoError(t, tree.Solve())
	assert.Equal(t, dimen.V(40, 20), inner.LayoutSize())
	assert.Equal(t, float32(40), b.Offset().X)
	assert.True(t, tree.Passes() > 1, "intrinsic size of a locked child takes another pass")
}

func TestFlexChildResizeNotifiesParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b := fixed(30, 10), fixed(20, 10)
	f, tree := rowOf(t, 100, 50, a, b)
	require.NoError(t, tree.Solve())
	tree.Flush(nil)
	a.SetWidth(Px(45))
	assert.Zero(t, a.Marks()&MarkWidth, "locked child does not mark itself")
	assert.NotZero(t, f.Marks()&MarkTypesetting)
	require.NoError(t, tree.Solve())
	assert.Equal(t, float32(45), a.LayoutSize().X)
	assert.Equal(t, float32(45), b.Offset().X)
}

func TestFlexInvisibleChildSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	a, b, c := fixed(30, 10), fixed(20, 10), fixed(10, 10)
	_, tree := rowOf(t, 100, 50, a, b, c)
	b.SetVisible(false)
	require.NoError(t, tree.Solve())
	assert.Equal(t, float32(30), c.Offset().X)
}

func TestSolveGivesUp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	if core.Debug {
		t.Skip("assertions panic in debug builds")
	}
	regs := parameters.NewRegisters()
	regs.Push(parameters.P_MAXLAYOUTPASSES, 1)
	inner := NewBox()
	require.NoError(t, inner.Append(fixed(40, 20)))
	f := NewFlex()
	require.NoError(t, f.Append(inner))
	tree := NewTree(f, dimen.V(100, 50), regs)
	err := tree.Solve()
	assert.Error(t, err)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
}

// waitingBox never finishes its reverse layout.
type waitingBox struct {
	Box
}

func (w *waitingBox) LayoutReverse(m Mark) bool { return false }

func TestSolveReportsStalledViews(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.layout")
	defer teardown()
	//
	if core.Debug {
		t.Skip("assertions panic in debug builds")
	}
	w := &waitingBox{}
	initNode(&w.Node, w, KindBox)
	root := NewBox()
	require.NoError(t, root.Append(fixed(10, 10)))
	require.NoError(t, root.Append(w))
	tree := NewTree(root, dimen.V(100, 50), nil)
	err := tree.Solve()
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	assert.Equal(t, 1, tree.Stalled(), "only the waiting view is reported")
	assert.Greater(t, tree.Passes(), 1)
	//
	w.Remove()
	require.NoError(t, tree.Solve())
	assert.Equal(t, 0, tree.Stalled())
}
