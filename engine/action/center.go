package action

import (
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/motif/engine/loop"
)

// EventType tells loop events from keyframe events.
type EventType int8

// Events fired by playing actions.
const (
	EventLoop EventType = iota
	EventKeyframe
)

func (t EventType) String() string {
	if t == EventLoop {
		return "action_loop"
	}
	return "action_keyframe"
}

// Event is fired by an action for each view bound to its root. Delay is
// the time by which the event is late within the tick that fired it.
type Event struct {
	Type   EventType
	Action *Action
	View   *layout.Node
	Delay  time.Duration
	Frame  int // frame index of keyframe events
	Loop   int // repetitions done by the firing action
}

// Handler receives action events.
type Handler func(Event)

type entry struct {
	kicked bool // initial state has been applied
}

// Center advances playing root actions. There is one center per render
// loop, and all its methods must be called from the layout thread.
type Center struct {
	regs     *parameters.Registers
	tasks    *loop.Loop
	roots    *linkedhashmap.Map // *Action -> *entry, in order of registration
	prev     time.Time
	handlers []Handler
}

// NewCenter creates a center. Events are posted to tasks. If regs is nil,
// default engine parameters are used; if tasks is nil, the center creates
// its own queue.
func NewCenter(regs *parameters.Registers, tasks *loop.Loop) *Center {
	if regs == nil {
		regs = parameters.NewRegisters()
	}
	if tasks == nil {
		tasks = loop.New()
	}
	return &Center{
		regs:  regs,
		tasks: tasks,
		roots: linkedhashmap.New(),
	}
}

// Tasks returns the queue events are posted to.
func (c *Center) Tasks() *loop.Loop { return c.tasks }

// Len returns the number of playing roots.
func (c *Center) Len() int { return c.roots.Size() }

// Roots returns the playing roots in order of registration.
func (c *Center) Roots() []*Action {
	roots := make([]*Action, 0, c.roots.Size())
	for _, k := range c.roots.Keys() {
		roots = append(roots, k.(*Action))
	}
	return roots
}

// Subscribe adds a handler for events of all actions of c.
func (c *Center) Subscribe(h Handler) {
	if h != nil {
		c.handlers = append(c.handlers, h)
	}
}

func (c *Center) isPlaying(a *Action) bool {
	_, ok := c.roots.Get(a)
	return ok
}

func (c *Center) add(a *Action) {
	if _, ok := c.roots.Get(a); !ok {
		c.roots.Put(a, &entry{})
		tracer().Debugf("action registered, %d playing", c.roots.Size())
	}
}

func (c *Center) remove(a *Action) {
	if _, ok := c.roots.Get(a); ok {
		c.roots.Remove(a)
		tracer().Debugf("action deregistered, %d playing", c.roots.Size())
	}
}

// Advance moves all playing roots forward to time now. The time span
// since the previous call is clamped to parameter P_MAXTICKSPAN. A root
// is advanced by 0 on its first tick, which applies its initial state.
// Roots which have finished or lost their views are deregistered.
func (c *Center) Advance(now time.Time) {
	var span time.Duration
	if !c.prev.IsZero() {
		span = min(max(now.Sub(c.prev), 0), c.regs.T(parameters.P_MAXTICKSPAN))
	}
	c.prev = now
	for _, k := range c.roots.Keys() {
		a := k.(*Action)
		v, ok := c.roots.Get(a)
		if !ok {
			continue // stopped during this tick
		}
		if len(a.liveViews()) == 0 {
			c.remove(a)
			continue
		}
		e := v.(*entry)
		if !e.kicked {
			e.kicked = true
			a.self.advance(0, false, a)
			continue
		}
		if rest := a.self.advance(span, false, a); rest > 0 {
			tracer().Debugf("action finished with %v left", rest)
			c.remove(a)
		}
	}
}

func (c *Center) post(e Event) {
	if len(c.handlers) == 0 {
		return
	}
	handlers := c.handlers
	c.tasks.Post(func() {
		for _, h := range handlers {
			h(e)
		}
	})
}
