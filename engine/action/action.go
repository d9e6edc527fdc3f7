package action

import (
	"time"
	"weak"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/motif/engine/layout"
)

// Animator is anything backed by an action.
type Animator interface {
	AsAction() *Action
}

// behavior is implemented by every kind of action.
type behavior interface {
	Animator
	// advance moves the action forward by span and returns the time it
	// did not consume. Times are in the caller's scale, i.e. not yet
	// multiplied by the action's speed.
	advance(span time.Duration, restart bool, root *Action) time.Duration
	// seekTime repositions the action to local time t, measured from the
	// start of its delay.
	seekTime(t time.Duration, root *Action)
	// seekBefore translates the time of a child into the time of the
	// receiving group.
	seekBefore(t time.Duration, child *Action)
	bindKind(k layout.Kind)
}

// Errors of structural operations on actions. Errors returned by
// operations wrap one of these and carry the matching core error code.
var (
	ErrIllegalChild    = core.Error(core.EILLEGALCHILD, "action cannot become a child")
	ErrIllegalViewType = core.Error(core.EVIEWTYPE, "action is bound to views of another kind")
	ErrIllegalRoot     = core.Error(core.EILLEGALROOT, "only root actions can be bound to views")
)

// LoopForever is a loop count which never runs out.
const LoopForever = -1

// Action is the state all kinds of actions share. Actions are created
// with NewKeyframe, NewSpawn or NewSequence.
//
// Time values of an action are measured in its own time scale, which
// runs at Speed() times the speed of its parent.
type Action struct {
	self       behavior
	center     *Center
	parent     *Group
	prev, next *Action            // siblings within parent
	views      *linkedhashset.Set // of weak.Pointer[layout.Node]
	kind       layout.Kind        // kind of bound views
	bound      bool               // kind is valid
	loop       int
	loopDone   int
	delay      time.Duration
	delayDone  time.Duration
	speed      float64
	full       time.Duration // duration including delay
}

func initAction(a *Action, self behavior, c *Center) {
	core.Assert(c != nil, "action created without center")
	a.self = self
	a.center = c
	a.views = linkedhashset.New()
	a.speed = 1
}

// AsAction returns a.
func (a *Action) AsAction() *Action {
	return a
}

// Center returns the center a has been created for.
func (a *Action) Center() *Center { return a.center }

// Parent returns the group a is a child of, or nil for a root action.
func (a *Action) Parent() *Group { return a.parent }

// Root returns the outermost ancestor of a.
func (a *Action) Root() *Action {
	r := a
	for r.parent != nil {
		r = &r.parent.Action
	}
	return r
}

// Loop returns the number of repetitions after the first run.
func (a *Action) Loop() int { return a.loop }

// SetLoop sets the number of repetitions after the first run. 0 plays
// once, LoopForever repeats until stopped.
func (a *Action) SetLoop(n int) {
	if n < 0 {
		n = LoopForever
	}
	a.loop = n
}

// LoopDone returns the number of repetitions done in the current run.
func (a *Action) LoopDone() int { return a.loopDone }

// Delay returns the time a waits before starting.
func (a *Action) Delay() time.Duration { return a.delay }

// DelayDone returns how much of the delay has passed.
func (a *Action) DelayDone() time.Duration { return a.delayDone }

// SetDelay sets the time a waits before starting. Negative delays are
// treated as 0.
func (a *Action) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if diff := d - a.delay; diff != 0 {
		a.delay = d
		a.updateDuration(diff)
	}
}

// Speed returns the speed factor of a.
func (a *Action) Speed() float64 { return a.speed }

// SetSpeed sets the speed factor of a, clamped to the range configured
// with the action's center (0.1 to 10 by default).
func (a *Action) SetSpeed(s float64) {
	lo, hi := 0.1, 10.0
	if a.center != nil {
		lo = a.center.regs.F(parameters.P_MINSPEED)
		hi = a.center.regs.F(parameters.P_MAXSPEED)
	}
	a.speed = min(max(s, lo), hi)
}

// Duration returns the duration of a without its delay.
func (a *Action) Duration() time.Duration { return a.full - a.delay }

// FullDuration returns the duration of a including its delay.
func (a *Action) FullDuration() time.Duration { return a.full }

// Playing is true if the root of a is registered with its center.
func (a *Action) Playing() bool {
	r := a.Root()
	return r.center != nil && r.center.isPlaying(r)
}

// Play starts playing the tree of actions a belongs to. Playing a child
// plays its root. Roots without bound views are not played.
func (a *Action) Play() {
	r := a.Root()
	if r.center == nil {
		return
	}
	if len(r.liveViews()) == 0 {
		tracer().Debugf("action without views not played")
		return
	}
	r.center.add(r)
}

// Stop stops playing the tree of actions a belongs to. The position of
// the actions is kept; use Seek to reposition.
func (a *Action) Stop() {
	r := a.Root()
	if r.center != nil {
		r.center.remove(r)
	}
}

// SetPlaying calls Play or Stop.
func (a *Action) SetPlaying(on bool) {
	if on {
		a.Play()
	} else {
		a.Stop()
	}
}

// Seek moves the tree of actions a belongs to, such that a is at time t
// of its own timeline, not counting its delay. Seeking does not fire
// events and does not start or stop playing, but property values are
// applied to the bound views.
func (a *Action) Seek(t time.Duration) {
	t += a.delay
	t = min(max(t, 0), a.full)
	if a.parent != nil {
		a.parent.self.seekBefore(t, a)
	} else {
		a.self.seekTime(t, a)
	}
}

// SeekPlay seeks to t and plays.
func (a *Action) SeekPlay(t time.Duration) {
	a.Seek(t)
	a.Play()
}

// SeekStop seeks to t and stops.
func (a *Action) SeekStop(t time.Duration) {
	a.Seek(t)
	a.Stop()
}

// --- Internals -------------------------------------------------------------

func (a *Action) scale(span time.Duration) time.Duration {
	if a.speed == 1 {
		return span
	}
	return time.Duration(float64(span) * a.speed)
}

func (a *Action) unscale(span time.Duration) time.Duration {
	if a.speed == 1 {
		return span
	}
	return time.Duration(float64(span) / a.speed)
}

// consumeDelay uses span to wait for the remaining delay. It returns the
// excess time and true if the delay is over, otherwise false.
func (a *Action) consumeDelay(span time.Duration) (time.Duration, bool) {
	if a.delay <= a.delayDone {
		return span, true
	}
	if wait := a.delay - a.delayDone; span <= wait {
		a.delayDone += span
		return 0, false
	}
	span -= a.delay - a.delayDone
	a.delayDone = a.delay
	return span, true
}

// loops is true if a may restart after reaching its end.
func (a *Action) loops() bool {
	return a.loop != 0 && a.full > a.delay
}

// nextLoop counts a repetition. It returns false if the loop budget is
// exhausted.
func (a *Action) nextLoop() bool {
	if a.loop > 0 {
		if a.loopDone >= a.loop {
			return false
		}
		a.loopDone++
	}
	return true
}

// updateDuration adds diff to the full duration of a and its ancestors.
// Sequence durations add up. A spawn takes the maximum of its children
// and recomputes it instead.
func (a *Action) updateDuration(diff time.Duration) {
	for x := a; diff != 0; {
		x.full += diff
		p := x.parent
		if p == nil {
			return
		}
		if s, ok := p.self.(*Spawn); ok {
			s.updateMax()
			return
		}
		x = &p.Action
	}
}

func (a *Action) isRootPlaying() bool {
	return a.center != nil && a.center.isPlaying(a)
}

func (a *Action) trigger(typ EventType, delay time.Duration, frame int, root *Action) {
	if a.center == nil {
		return
	}
	for _, v := range root.liveViews() {
		a.center.post(Event{
			Type:   typ,
			Action: a,
			View:   v,
			Delay:  delay,
			Frame:  frame,
			Loop:   a.loopDone,
		})
	}
}

// liveViews returns the bound views which are still alive, forgetting
// collected ones.
func (a *Action) liveViews() []*layout.Node {
	if a.views.Empty() {
		return nil
	}
	var live []*layout.Node
	var dead []interface{}
	it := a.views.Iterator()
	for it.Next() {
		w := it.Value().(weak.Pointer[layout.Node])
		if v := w.Value(); v != nil {
			live = append(live, v)
		} else {
			dead = append(dead, w)
		}
	}
	if len(dead) > 0 {
		a.views.Remove(dead...)
	}
	return live
}

// Views returns the views bound to a.
func (a *Action) Views() []*layout.Node {
	return a.liveViews()
}
