package display

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/motif/engine/action"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func TestNewChecksRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	root := layout.NewBox()
	_, err := New(root, dimen.V(100, 100), nil)
	require.NoError(t, err)
	_, err = New(root, dimen.V(100, 100), nil)
	assert.Equal(t, core.EINVALID, core.Code(err), "root is owned by first display")
	_, err = New(nil, dimen.V(100, 100), nil)
	assert.Equal(t, core.EMISSING, core.Code(err))
	child := layout.NewBox()
	require.NoError(t, layout.NewBox().Append(child))
	_, err = New(child, dimen.V(100, 100), nil)
	assert.Error(t, err)
}

func TestTickOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	root := layout.NewBox()
	view := layout.NewBox()
	require.NoError(t, root.Append(view))
	d, err := New(root, dimen.V(200, 100), nil)
	require.NoError(t, err)
	//
	k := action.NewKeyframe(d.Center())
	k.Add(0, action.Linear).SetWidth(layout.Px(10))
	k.Add(100*ms, action.Linear).SetWidth(layout.Px(30))
	require.NoError(t, action.SetViewAction(view, k))
	d.Post(k.Play)
	//
	t0 := time.Now()
	st := d.Tick(t0)
	assert.Equal(t, 1, st.Tasks)
	assert.Equal(t, 1, st.Playing)
	assert.NoError(t, st.Err)
	assert.Equal(t, float32(0), view.ContentSize().X, "action marks are solved in the next tick")
	d.Tick(t0.Add(50 * ms))
	assert.Equal(t, float32(10), view.ContentSize().X)
	st = d.Tick(t0.Add(200 * ms))
	assert.Equal(t, float32(20), view.ContentSize().X)
	assert.Equal(t, 0, st.Playing, "action finished")
	d.Tick(t0.Add(250 * ms))
	assert.Equal(t, float32(30), view.ContentSize().X)
	assert.True(t, d.Idle())
	assert.Equal(t, 4, d.Last().Tick)
}

func TestTickPaints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	root := layout.NewBox()
	d, err := New(root, dimen.V(10, 10), nil)
	require.NoError(t, err)
	var painted []*layout.Node
	d.SetPainter(layout.PainterFunc(func(v *layout.Node, frame dimen.Rect) {
		painted = append(painted, v)
	}))
	st := d.Tick(time.Now())
	assert.Equal(t, 1, st.Painted)
	require.Len(t, painted, 1)
	assert.Same(t, &root.Node, painted[0])
	st = d.Tick(time.Now())
	assert.Equal(t, 0, st.Painted)
}

func TestEventsArriveNextTick(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	root := layout.NewBox()
	d, err := New(root, dimen.V(10, 10), nil)
	require.NoError(t, err)
	k := action.NewKeyframe(d.Center())
	k.Add(0, action.Linear).SetOpacity(0)
	k.Add(40*ms, action.Linear).SetOpacity(1)
	require.NoError(t, action.SetViewAction(root, k))
	var frames []int
	d.Center().Subscribe(func(e action.Event) {
		if e.Type == action.EventKeyframe {
			frames = append(frames, e.Frame)
		}
	})
	k.Play()
	t0 := time.Now()
	d.Tick(t0)
	assert.Empty(t, frames, "events are queued")
	d.Tick(t0.Add(50 * ms))
	assert.Equal(t, []int{0}, frames)
	d.Tick(t0.Add(60 * ms))
	assert.Equal(t, []int{0, 1}, frames)
	runtime.KeepAlive(root)
}

func TestRunAndPost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	regs := parameters.NewRegisters()
	regs.Push(parameters.P_FRAMEINTERVAL, time.Millisecond)
	root := layout.NewBox()
	d, err := New(root, dimen.V(10, 10), regs)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.ErrorIs(t, d.Run(ctx), context.Canceled)
	}()
	done := make(chan float32)
	require.True(t, d.Post(func() {
		root.SetOpacity(0.5)
		done <- root.Opacity()
	}))
	select {
	case o := <-done:
		assert.Equal(t, float32(0.5), o)
	case <-time.After(5 * time.Second):
		t.Fatal("posted task did not run")
	}
	cancel()
	wg.Wait()
	d.Close()
	assert.False(t, d.Post(func() {}))
}
