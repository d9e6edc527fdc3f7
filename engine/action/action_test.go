package action

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

// fade creates a linear opacity animation from 0 to 1.
func fade(c *Center, d time.Duration) *Keyframe {
	k := NewKeyframe(c)
	k.Add(0, Linear).SetOpacity(0)
	k.Add(d, Linear).SetOpacity(1)
	return k
}

func bind(t *testing.T, a Animator) *layout.Box {
	v := layout.NewBox()
	require.NoError(t, SetViewAction(v, a))
	return v
}

// collect subscribes to the events of c.
func collect(c *Center) *[]Event {
	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })
	return &events
}

func TestSequenceDuration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	seq := NewSequence(c)
	seq.SetDelay(10 * ms)
	assert.Equal(t, 10*ms, seq.FullDuration())
	k1, k2, k3 := fade(c, 100*ms), fade(c, 50*ms), fade(c, 30*ms)
	require.NoError(t, seq.Append(k1))
	require.NoError(t, seq.Append(k2))
	assert.Equal(t, 160*ms, seq.FullDuration())
	assert.Equal(t, 150*ms, seq.Duration())
	require.NoError(t, seq.Insert(0, k3))
	assert.Equal(t, 190*ms, seq.FullDuration())
	assert.Same(t, &k3.Action, seq.At(0))
	assert.Same(t, &k1.Action, seq.At(1))
	removed := seq.RemoveChild(1)
	assert.Same(t, &k1.Action, removed)
	assert.Nil(t, k1.Parent())
	assert.Equal(t, 90*ms, seq.FullDuration())
	assert.Equal(t, 2, seq.Len())
	seq.Clear()
	assert.Equal(t, 10*ms, seq.FullDuration())
	assert.Equal(t, 0, seq.Len())
	assert.Nil(t, seq.At(0))
}

func TestSpawnDuration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	sp := NewSpawn(c)
	sp.SetDelay(10 * ms)
	k1, k2 := fade(c, 100*ms), fade(c, 50*ms)
	require.NoError(t, sp.Append(k1))
	require.NoError(t, sp.Append(k2))
	assert.Equal(t, 110*ms, sp.FullDuration())
	sp.RemoveChild(0) // the longest child
	assert.Equal(t, 60*ms, sp.FullDuration())
	require.NoError(t, sp.Insert(0, k1))
	assert.Equal(t, 110*ms, sp.FullDuration())
	sp.RemoveChild(1)
	assert.Equal(t, 110*ms, sp.FullDuration())
	sp.SetDelay(0)
	assert.Equal(t, 100*ms, sp.FullDuration())
}

func TestNestedDuration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	seq := NewSequence(c)
	sp := NewSpawn(c)
	k := NewKeyframe(c)
	require.NoError(t, sp.Append(k))
	require.NoError(t, seq.Append(sp))
	require.NoError(t, seq.Append(fade(c, 50*ms)))
	assert.Equal(t, 50*ms, seq.FullDuration())
	k.Add(0, Linear)
	k.Add(100*ms, Linear)
	assert.Equal(t, 100*ms, sp.FullDuration())
	assert.Equal(t, 150*ms, seq.FullDuration())
	k.SetDelay(20 * ms)
	assert.Equal(t, 120*ms, sp.FullDuration())
	assert.Equal(t, 170*ms, seq.FullDuration())
	k.Last().SetTime(60 * ms)
	assert.Equal(t, 80*ms, sp.FullDuration())
	assert.Equal(t, 130*ms, seq.FullDuration())
	k.Clear()
	assert.Equal(t, 20*ms, sp.FullDuration())
	assert.Equal(t, 70*ms, seq.FullDuration())
}

func TestIllegalChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	seq, other := NewSequence(c), NewSequence(c)
	k := fade(c, 100*ms)
	require.NoError(t, seq.Append(k))
	err := other.Append(k)
	assert.True(t, errors.Is(err, ErrIllegalChild))
	assert.Equal(t, core.EILLEGALCHILD, core.Code(err))
	assert.Same(t, &seq.Group, k.Parent())
	assert.Equal(t, 0, other.Len())
	assert.Equal(t, time.Duration(0), other.FullDuration())
	//
	withView := fade(c, 100*ms)
	defer runtime.KeepAlive(bind(t, withView))
	assert.ErrorIs(t, other.Append(withView), ErrIllegalChild)
	//
	assert.ErrorIs(t, seq.Append(seq), ErrIllegalChild)
	inner := NewSpawn(c)
	require.NoError(t, seq.Append(inner))
	assert.ErrorIs(t, inner.Append(seq), ErrIllegalChild)
	//
	foreign := fade(NewCenter(nil, nil), 10*ms)
	assert.ErrorIs(t, other.Append(foreign), ErrIllegalChild)
	assert.Equal(t, core.EINVALID, core.Code(other.Append(nil)))
}

func TestIllegalPlayingChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	k := fade(c, 100*ms)
	v := bind(t, k)
	k.Play()
	require.True(t, k.Playing())
	require.NoError(t, SetViewAction(v, nil))
	assert.False(t, k.Playing())
	k2 := fade(c, 100*ms)
	defer runtime.KeepAlive(bind(t, k2))
	k2.Play()
	assert.ErrorIs(t, NewSpawn(c).Append(k2), ErrIllegalChild)
}

func TestViewBinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	seq := NewSequence(c)
	child := fade(c, 100*ms)
	require.NoError(t, seq.Append(child))
	box := layout.NewBox()
	err := SetViewAction(box, child)
	assert.ErrorIs(t, err, ErrIllegalRoot)
	assert.Equal(t, core.EILLEGALROOT, core.Code(err))
	assert.Nil(t, ViewAction(box))
	//
	require.NoError(t, SetViewAction(box, seq))
	assert.Same(t, &seq.Action, ViewAction(box))
	flex := layout.NewFlex()
	err = SetViewAction(flex, seq)
	assert.ErrorIs(t, err, ErrIllegalViewType)
	assert.Equal(t, core.EVIEWTYPE, core.Code(err))
	assert.Nil(t, ViewAction(flex))
	box2 := layout.NewBox()
	require.NoError(t, SetViewAction(box2, seq))
	assert.Len(t, seq.Views(), 2)
	//
	other := fade(c, 50*ms)
	require.NoError(t, SetViewAction(box, other))
	assert.Same(t, &other.Action, ViewAction(box))
	assert.Len(t, seq.Views(), 1)
	require.NoError(t, SetViewAction(box, other)) // same binding
	assert.Len(t, other.Views(), 1)
	runtime.KeepAlive(box2)
}

func TestUnbindStopsAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	k := fade(c, 100*ms)
	v := bind(t, k)
	k.Play()
	assert.Equal(t, 1, c.Len())
	require.NoError(t, SetViewAction(v, nil))
	assert.Equal(t, 0, c.Len())
	assert.False(t, k.Playing())
	now := time.Now()
	c.Advance(now)
	c.Advance(now.Add(50 * ms))
	assert.Equal(t, float32(1), v.Opacity())
	assert.Equal(t, -1, k.Current())
}

func TestRemovedViewStopsAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	root := layout.NewBox()
	tree := layout.NewTree(root, dimen.V(100, 100), nil)
	require.NotNil(t, tree)
	v := layout.NewBox()
	require.NoError(t, root.Append(v))
	k := fade(c, 100*ms)
	require.NoError(t, SetViewAction(v, k))
	k.Play()
	require.True(t, k.Playing())
	v.Remove()
	assert.False(t, k.Playing())
	assert.Nil(t, ViewAction(v))
	assert.Empty(t, k.Views())
}

func TestPlayNeedsViews(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	seq := NewSequence(c)
	k := fade(c, 100*ms)
	require.NoError(t, seq.Append(k))
	k.Play()
	assert.False(t, seq.Playing())
	defer runtime.KeepAlive(bind(t, seq))
	k.Play() // plays the root
	assert.True(t, seq.Playing())
	assert.True(t, k.Playing())
	k.SetPlaying(false)
	assert.False(t, seq.Playing())
}

func TestKeyframeDelayThenLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	events := collect(c)
	k := fade(c, 200*ms)
	k.SetDelay(100 * ms)
	k.SetLoop(2)
	assert.Equal(t, 300*ms, k.FullDuration())
	assert.Equal(t, 200*ms, k.Duration())
	v := bind(t, k)
	k.Play()
	//
	rest := k.advance(100*ms, false, &k.Action)
	assert.Equal(t, time.Duration(0), rest)
	assert.Equal(t, 100*ms, k.DelayDone())
	assert.Equal(t, -1, k.Current())
	c.Tasks().RunPending()
	assert.Empty(t, *events)
	//
	rest = k.advance(250*ms, false, &k.Action)
	assert.Equal(t, time.Duration(0), rest)
	assert.Equal(t, 0, k.Current())
	assert.Equal(t, 50*ms, k.Time())
	assert.Equal(t, 1, k.LoopDone())
	assert.InDelta(t, 0.25, v.Opacity(), 1e-5)
	c.Tasks().RunPending()
	require.Len(t, *events, 4)
	kinds := []EventType{EventKeyframe, EventKeyframe, EventLoop, EventKeyframe}
	frames := []int{0, 1, 0, 0}
	delays := []time.Duration{250 * ms, 50 * ms, 50 * ms, 50 * ms}
	for i, e := range *events {
		assert.Equal(t, kinds[i], e.Type, "event #%d", i)
		assert.Equal(t, frames[i], e.Frame, "event #%d", i)
		assert.Equal(t, delays[i], e.Delay, "event #%d", i)
		assert.Same(t, v.AsNode(), e.View)
	}
}

func TestKeyframeEndIsPinned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	k := fade(c, 100*ms)
	v := bind(t, k)
	k.Play()
	assert.Equal(t, time.Duration(0), k.advance(100*ms, true, &k.Action))
	assert.Equal(t, 1, k.Current())
	assert.Equal(t, time.Duration(0), k.advance(0, false, &k.Action))
	assert.Equal(t, 1, k.Current())
	assert.Equal(t, float32(1), v.Opacity())
	assert.Equal(t, 0, k.LoopDone())
	assert.Equal(t, 10*ms, k.advance(10*ms, false, &k.Action))
	assert.Equal(t, 1, k.Current())
}

func TestKeyframeSpeed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	k := fade(c, 200*ms)
	defer runtime.KeepAlive(bind(t, k))
	k.Play()
	k.SetSpeed(2)
	k.advance(0, false, &k.Action)
	assert.Equal(t, time.Duration(0), k.advance(50*ms, false, &k.Action))
	assert.Equal(t, 100*ms, k.Time())
	assert.Equal(t, 25*ms, k.advance(75*ms, false, &k.Action)) // 50ms local time left over
	k.SetSpeed(100)
	assert.Equal(t, 10.0, k.Speed())
	k.SetSpeed(0)
	assert.Equal(t, 0.1, k.Speed())
}

func TestSequenceAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	seq := NewSequence(c)
	k1, k2 := fade(c, 100*ms), fade(c, 100*ms)
	require.NoError(t, seq.Append(k1))
	require.NoError(t, seq.Append(k2))
	defer runtime.KeepAlive(bind(t, seq))
	seq.Play()
	assert.Equal(t, time.Duration(0), seq.advance(0, false, &seq.Action))
	assert.Same(t, &k1.Action, seq.Current())
	assert.Equal(t, time.Duration(0), seq.advance(150*ms, false, &seq.Action))
	assert.Same(t, &k2.Action, seq.Current())
	assert.Equal(t, 1, k1.Current())
	assert.Equal(t, 50*ms, k2.Time())
	assert.Equal(t, 30*ms, seq.advance(80*ms, false, &seq.Action))
}

func TestSequenceLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	events := collect(c)
	seq := NewSequence(c)
	k1, k2 := fade(c, 100*ms), fade(c, 100*ms)
	require.NoError(t, seq.Append(k1))
	require.NoError(t, seq.Append(k2))
	seq.SetLoop(LoopForever)
	defer runtime.KeepAlive(bind(t, seq))
	seq.Play()
	seq.advance(0, false, &seq.Action)
	assert.Equal(t, time.Duration(0), seq.advance(250*ms, false, &seq.Action))
	assert.Same(t, &k1.Action, seq.Current())
	assert.Equal(t, 50*ms, k1.Time())
	assert.Equal(t, 0, seq.LoopDone()) // infinite loops are not counted
	c.Tasks().RunPending()
	loops := 0
	for _, e := range *events {
		if e.Type == EventLoop {
			assert.Same(t, &seq.Action, e.Action)
			loops++
		}
	}
	assert.Equal(t, 1, loops)
}

func TestSpawnLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	sp := NewSpawn(c)
	k1, k2 := fade(c, 100*ms), fade(c, 50*ms)
	require.NoError(t, sp.Append(k1))
	require.NoError(t, sp.Append(k2))
	sp.SetLoop(1)
	defer runtime.KeepAlive(bind(t, sp))
	sp.Play()
	sp.advance(0, false, &sp.Action)
	assert.Equal(t, time.Duration(0), sp.advance(120*ms, false, &sp.Action))
	assert.Equal(t, 1, sp.LoopDone())
	assert.Equal(t, 20*ms, k1.Time())
	assert.Equal(t, 20*ms, k2.Time())
	assert.Equal(t, 120*ms, sp.advance(200*ms, false, &sp.Action))
	assert.Equal(t, 1, sp.LoopDone())
}

func TestSeekIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	events := collect(c)
	seq := NewSequence(c)
	k1, k2 := fade(c, 100*ms), fade(c, 100*ms)
	require.NoError(t, seq.Append(k1))
	require.NoError(t, seq.Append(k2))
	seq.SetLoop(3)
	v := bind(t, seq)
	for i := 0; i < 2; i++ {
		seq.Seek(150 * ms)
		assert.Same(t, &k2.Action, seq.Current())
		assert.Equal(t, 0, k2.Current())
		assert.Equal(t, 50*ms, k2.Time())
		assert.Equal(t, 0, seq.LoopDone())
		assert.InDelta(t, 0.5, v.Opacity(), 1e-5)
	}
	k2.Seek(20 * ms) // relative to the child
	assert.Equal(t, 20*ms, k2.Time())
	assert.Same(t, &k2.Action, seq.Current())
	seq.Seek(time.Hour)
	assert.Same(t, &k2.Action, seq.Current())
	assert.Equal(t, 1, k2.Current())
	assert.Equal(t, float32(1), v.Opacity())
	seq.Seek(-time.Second)
	assert.Same(t, &k1.Action, seq.Current())
	assert.Equal(t, time.Duration(0), k1.Time())
	assert.False(t, seq.Playing())
	c.Tasks().RunPending()
	assert.Empty(t, *events)
}

func TestSeekPlayAndStop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	sp := NewSpawn(c)
	sp.SetDelay(50 * ms)
	k := fade(c, 100*ms)
	require.NoError(t, sp.Append(k))
	v := bind(t, sp)
	sp.SeekPlay(0)
	assert.True(t, sp.Playing())
	assert.Equal(t, 50*ms, sp.DelayDone())
	assert.Equal(t, float32(0), v.Opacity())
	sp.SeekStop(75 * ms)
	assert.False(t, sp.Playing())
	assert.Equal(t, 75*ms, k.Time())
	assert.InDelta(t, 0.75, v.Opacity(), 1e-5)
}

func TestFrameTime(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	k := NewKeyframe(c)
	f0 := k.Add(50*ms, Linear)
	assert.Equal(t, time.Duration(0), f0.Time())
	f1 := k.Add(100*ms, Linear)
	f2 := k.Add(80*ms, Linear) // earlier than last
	assert.Equal(t, 100*ms, f2.Time())
	f3 := k.Add(200*ms, Linear)
	assert.Equal(t, 200*ms, k.Duration())
	f0.SetTime(10 * ms)
	assert.Equal(t, time.Duration(0), f0.Time())
	f2.SetTime(300 * ms)
	assert.Equal(t, 200*ms, f2.Time())
	f1.SetTime(-1)
	assert.Equal(t, time.Duration(0), f1.Time())
	f3.SetTime(400 * ms)
	assert.Equal(t, 400*ms, k.Duration())
	assert.Equal(t, 4, k.Len())
	k.Clear()
	assert.Nil(t, f3.Host())
	assert.Equal(t, time.Duration(0), k.Duration())
}

func TestFrameProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	c := NewCenter(nil, nil)
	k := NewKeyframe(c)
	f0 := k.Add(0, EaseIn)
	f0.SetWidth(layout.Px(100))
	f0.SetAlign(layout.AlignStart)
	f1 := k.Add(100*ms, Linear)
	f1.SetWidth(layout.Px(200))
	f1.SetAlign(layout.AlignEnd)
	assert.True(t, k.HasProperty(PropWidth))
	assert.False(t, k.HasProperty(PropOpacity))
	assert.Equal(t, float32(1), f1.Opacity()) // default
	assert.Equal(t, layout.Px(200), f1.Width())
	v := bind(t, k)
	k.Seek(50 * ms)
	w := v.Width()
	assert.Equal(t, layout.SizePixel, w.Kind)
	assert.Greater(t, w.Value, float32(100))
	assert.Less(t, w.Value, float32(150)) // ease-in is slow at the start
	assert.Equal(t, layout.AlignStart, v.Align())
	k.Seek(100 * ms)
	assert.Equal(t, layout.AlignEnd, v.Align())
	//
	v.SetWidth(layout.Px(42))
	f0.Fetch(v.AsNode())
	assert.Equal(t, layout.Px(42), f0.Width())
	f0.Flush()
	assert.Equal(t, layout.Wrap, f0.Width())
}

func TestParseProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.action")
	defer teardown()
	//
	p, err := ParseProperty("layout-weight")
	assert.NoError(t, err)
	assert.Equal(t, PropWeight, p)
	_, err = ParseProperty("border")
	assert.Equal(t, core.EINVALID, core.Code(err))
}
