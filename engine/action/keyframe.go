package action

import (
	"image/color"
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/motif/engine/layout"
)

// Keyframe is an action interpolating view properties between frames.
// Frames are kept sorted by time, the first frame is at time 0. The
// duration of a keyframe action is the time of its last frame.
type Keyframe struct {
	Action
	frames []*Frame
	props  *linkedhashmap.Map // Property -> track
	frame  int                // current frame, -1 before start
	time   time.Duration      // local time
}

// NewKeyframe creates a keyframe action without frames for a center.
func NewKeyframe(c *Center) *Keyframe {
	k := &Keyframe{props: linkedhashmap.New(), frame: -1}
	initAction(&k.Action, k, c)
	return k
}

// AsAction returns the action of k.
func (k *Keyframe) AsAction() *Action { return &k.Action }

// Len returns the number of frames.
func (k *Keyframe) Len() int { return len(k.frames) }

// Frame returns the frame at position i, or nil.
func (k *Keyframe) Frame(i int) *Frame {
	if i < 0 || i >= len(k.frames) {
		return nil
	}
	return k.frames[i]
}

// First returns the first frame, or nil.
func (k *Keyframe) First() *Frame { return k.Frame(0) }

// Last returns the last frame, or nil.
func (k *Keyframe) Last() *Frame { return k.Frame(len(k.frames) - 1) }

// Current returns the index of the current frame, or -1 if k has not
// started.
func (k *Keyframe) Current() int { return k.frame }

// Time returns the local time of k, not counting its delay.
func (k *Keyframe) Time() time.Duration { return k.time }

// HasProperty is true if a frame of k sets property p.
func (k *Keyframe) HasProperty(p Property) bool {
	_, ok := k.props.Get(p)
	return ok
}

// Add appends a frame at time t with an easing curve towards the next
// frame. The first frame is always at time 0. A frame earlier than the
// last one is moved to the time of the last one.
func (k *Keyframe) Add(t time.Duration, curve Curve) *Frame {
	if last := k.Last(); last != nil {
		if d := t - last.time; d > 0 {
			k.updateDuration(d)
		} else {
			t = last.time
		}
	} else {
		t = 0
	}
	f := &Frame{host: k, index: len(k.frames), time: t, curve: curve}
	k.frames = append(k.frames, f)
	it := k.props.Iterator()
	for it.Next() {
		it.Value().(track).addFrame()
	}
	return f
}

// Clear removes all frames and properties.
func (k *Keyframe) Clear() {
	for _, f := range k.frames {
		f.host = nil
	}
	k.frames = nil
	k.props.Clear()
	k.frame, k.time = -1, 0
	if k.full != k.delay {
		k.updateDuration(k.delay - k.full)
	}
}

func (k *Keyframe) bindKind(kind layout.Kind) {
	k.kind, k.bound = kind, true
}

func (k *Keyframe) apply(f int, root *Action) {
	views := root.liveViews()
	it := k.props.Iterator()
	for it.Next() {
		it.Value().(track).apply(f, views)
	}
}

func (k *Keyframe) blend(f1, f2 int, y float32, root *Action) {
	views := root.liveViews()
	it := k.props.Iterator()
	for it.Next() {
		it.Value().(track).blend(f1, f2, y, views)
	}
}

// ease computes the eased progress between frame f1 and the next frame
// at local time t.
func (k *Keyframe) ease(f1 int, t time.Duration) float32 {
	t1, t2 := k.frames[f1].time, k.frames[f1+1].time
	x := float64(t-t1) / float64(t2-t1)
	eps := 1e-3
	if k.center != nil {
		eps = k.center.regs.F(parameters.P_BEZIEREPSILON)
	}
	return float32(k.frames[f1].curve.Solve(x, eps))
}

func (k *Keyframe) advance(span time.Duration, restart bool, root *Action) time.Duration {
	span = k.scale(span)
	if k.frame < 0 || restart {
		if restart {
			k.delayDone, k.loopDone = 0, 0
			k.frame, k.time = -1, 0
		}
		var started bool
		if span, started = k.consumeDelay(span); !started {
			return 0
		}
		if len(k.frames) == 0 {
			core.Assert(k.full == k.delay, "keyframe action without frames has duration %v", k.full)
			return k.unscale(span)
		}
		k.frame, k.time = 0, 0
		k.apply(0, root)
		k.trigger(EventKeyframe, span, 0, root)
		if span == 0 {
			return 0
		}
		if len(k.frames) == 1 {
			return k.unscale(span)
		}
	}
	return k.unscale(k.step(span, root))
}

// step moves through the frames. It returns the time left over after the
// last frame, which is 0 while k is still running.
func (k *Keyframe) step(span time.Duration, root *Action) time.Duration {
	for {
		if f2 := k.frame + 1; f2 < len(k.frames) {
			if !root.isRootPlaying() {
				return 0
			}
			t := k.time + span
			t2 := k.frames[f2].time
			switch over := t - t2; {
			case over < 0:
				k.time = t
				k.blend(k.frame, f2, k.ease(k.frame, t), root)
				return 0
			case over == 0:
				k.time, k.frame = t, f2
				k.apply(f2, root)
				k.trigger(EventKeyframe, 0, f2, root)
				return 0
			default:
				span = over
				k.time, k.frame = t2, f2
				k.trigger(EventKeyframe, over, f2, root)
				if f2+1 < len(k.frames) {
					continue
				}
				if !k.loops() {
					k.apply(f2, root)
					return span
				}
			}
		} else if !k.loops() {
			return span
		}
		// at the last frame, looping
		if !k.nextLoop() {
			k.apply(k.frame, root)
			return span
		}
		k.frame, k.time = 0, 0
		k.trigger(EventLoop, span, 0, root)
		k.trigger(EventKeyframe, span, 0, root)
	}
}

func (k *Keyframe) seekBefore(t time.Duration, child *Action) {
	core.Assert(false, "keyframe action has no children")
}

func (k *Keyframe) seekTime(t time.Duration, root *Action) {
	if t < k.delay {
		k.delayDone = t
		k.frame, k.time = -1, 0
		return
	}
	k.delayDone = k.delay
	k.loopDone = 0
	t -= k.delay
	if len(k.frames) == 0 {
		return
	}
	f := 0
	for i, fr := range k.frames {
		if t < fr.time {
			break
		}
		f = i
	}
	k.frame = f
	k.time = min(t, k.full-k.delay)
	if f+1 < len(k.frames) {
		k.blend(f, f+1, k.ease(f, k.time), root)
	} else {
		k.apply(f, root)
	}
}

var _ behavior = &Keyframe{}

// --- Frames ----------------------------------------------------------------

// Frame is a point in time of a keyframe action, holding target values
// for properties and the easing curve towards the next frame. Properties
// set on any frame of an action are animated by all frames of the action.
type Frame struct {
	host  *Keyframe
	index int
	time  time.Duration
	curve Curve
}

// Host returns the keyframe action of f, or nil if f has been cleared.
func (f *Frame) Host() *Keyframe { return f.host }

// Index returns the position of f within its action.
func (f *Frame) Index() int { return f.index }

// Time returns the time of f.
func (f *Frame) Time() time.Duration { return f.time }

// SetTime moves f. Frames stay sorted: the time is clamped between the
// neighbouring frames. The first frame cannot be moved.
func (f *Frame) SetTime(t time.Duration) {
	k := f.host
	if k == nil || f.index == 0 || t == f.time {
		return
	}
	t = max(t, k.frames[f.index-1].time)
	if next := f.index + 1; next < len(k.frames) {
		t = min(t, k.frames[next].time)
		f.time = t
		return
	}
	d := t - f.time
	f.time = t
	k.updateDuration(d)
}

// Curve returns the easing curve towards the next frame.
func (f *Frame) Curve() Curve { return f.curve }

// SetCurve sets the easing curve towards the next frame.
func (f *Frame) SetCurve(c Curve) { f.curve = c }

// Fetch copies the current values of all animated properties from a view
// into f. If view is nil or of a different kind than the bound views, the
// first bound view is used.
func (f *Frame) Fetch(view *layout.Node) {
	k := f.host
	if k == nil {
		return
	}
	if view == nil || (k.bound && view.Kind() != k.kind) {
		views := k.Root().liveViews()
		if len(views) == 0 {
			return
		}
		view = views[0]
	}
	it := k.props.Iterator()
	for it.Next() {
		it.Value().(track).fetch(f.index, view)
	}
}

// Flush resets all properties of f to their default values.
func (f *Frame) Flush() {
	if f.host == nil {
		return
	}
	it := f.host.props.Iterator()
	for it.Next() {
		it.Value().(track).reset(f.index)
	}
}

// Width returns the width value of f.
func (f *Frame) Width() layout.BoxSize { return frameValue(f, PropWidth, widthAccess) }

// SetWidth sets the width value of f.
func (f *Frame) SetWidth(v layout.BoxSize) { setFrameValue(f, PropWidth, widthAccess, v) }

// Height returns the height value of f.
func (f *Frame) Height() layout.BoxSize { return frameValue(f, PropHeight, heightAccess) }

// SetHeight sets the height value of f.
func (f *Frame) SetHeight(v layout.BoxSize) { setFrameValue(f, PropHeight, heightAccess, v) }

func (f *Frame) Opacity() float32 { return frameValue(f, PropOpacity, opacityAccess) }
func (f *Frame) SetOpacity(v float32) { setFrameValue(f, PropOpacity, opacityAccess, v) }
func (f *Frame) Translate() dimen.Vec2 { return frameValue(f, PropTranslate, translateAccess) }
func (f *Frame) SetTranslate(v dimen.Vec2) { setFrameValue(f, PropTranslate, translateAccess, v) }
func (f *Frame) Scale() dimen.Vec2 { return frameValue(f, PropScale, scaleAccess) }
func (f *Frame) SetScale(v dimen.Vec2) { setFrameValue(f, PropScale, scaleAccess, v) }
func (f *Frame) Rotate() float32 { return frameValue(f, PropRotate, rotateAccess) }
func (f *Frame) SetRotate(deg float32) { setFrameValue(f, PropRotate, rotateAccess, deg) }
func (f *Frame) Color() color.RGBA { return frameValue(f, PropColor, colorAccess) }
func (f *Frame) SetColor(c color.RGBA) { setFrameValue(f, PropColor, colorAccess, c) }

// Weight returns the layout weight value of f.
func (f *Frame) Weight() float32 { return frameValue(f, PropWeight, weightAccess) }

// SetWeight sets the layout weight value of f.
func (f *Frame) SetWeight(w float32) { setFrameValue(f, PropWeight, weightAccess, w) }

// Align returns the layout alignment value of f. Alignment is not
// interpolated, it switches when the next frame is reached.
func (f *Frame) Align() layout.Align { return frameValue(f, PropAlign, alignAccess) }

// SetAlign sets the layout alignment value of f.
func (f *Frame) SetAlign(a layout.Align) { setFrameValue(f, PropAlign, alignAccess, a) }

// Visible returns the visibility value of f. Like alignment, visibility
// switches when the next frame is reached.
func (f *Frame) Visible() bool { return frameValue(f, PropVisible, visibleAccess) }

// SetVisible sets the visibility value of f.
func (f *Frame) SetVisible(v bool) { setFrameValue(f, PropVisible, visibleAccess, v) }
