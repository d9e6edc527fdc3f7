package action

import (
	"time"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/engine/layout"
)

// Group is an action with child actions. Spawn and Sequence are groups.
// A group owns its children: an action is a child of at most one group
// and is never a root at the same time.
type Group struct {
	Action
	first, last *Action
	n           int
	index       []*Action // valid iff len(index) == n
}

// grouping is the duration policy of a kind of group.
type grouping interface {
	added(c *Action)
	removed(c *Action)
	cleared()
}

// Len returns the number of children of g.
func (g *Group) Len() int { return g.n }

// At returns the child at position i, or nil.
func (g *Group) At(i int) *Action {
	if i < 0 || i >= g.n {
		return nil
	}
	if len(g.index) != g.n {
		g.index = g.index[:0]
		for c := g.first; c != nil; c = c.next {
			g.index = append(g.index, c)
		}
	}
	return g.index[i]
}

// Append adds an action as the last child of g.
func (g *Group) Append(a Animator) error {
	return g.Insert(g.n, a)
}

// Insert adds an action as child at position i. Positions past the end
// append.
//
// The action must not have a parent, must not be bound to views, must not
// be playing and must have been created for the same center as g. g must
// not be part of the action's subtree. Otherwise Insert fails with
// ErrIllegalChild and nothing is changed.
func (g *Group) Insert(i int, a Animator) error {
	if a == nil {
		return core.Error(core.EINVALID, "cannot insert nil action")
	}
	c := a.AsAction()
	if err := g.checkChild(c); err != nil {
		return err
	}
	var before *Action
	if i < g.n {
		before = g.At(max(i, 0))
	}
	g.link(c, before)
	c.parent = g
	if r := g.Root(); r.bound {
		c.self.bindKind(r.kind)
	}
	g.self.(grouping).added(c)
	return nil
}

func (g *Group) checkChild(c *Action) error {
	switch {
	case c.parent != nil:
		return core.WrapError(ErrIllegalChild, core.EILLEGALCHILD, "action already has a parent")
	case len(c.liveViews()) > 0:
		return core.WrapError(ErrIllegalChild, core.EILLEGALCHILD, "action is bound to views")
	case c.isRootPlaying():
		return core.WrapError(ErrIllegalChild, core.EILLEGALCHILD, "action is playing")
	case c.center != g.center:
		return core.WrapError(ErrIllegalChild, core.EILLEGALCHILD, "action belongs to another center")
	}
	for p := &g.Action; p != nil; {
		if p == c {
			return core.WrapError(ErrIllegalChild, core.EILLEGALCHILD, "action would contain itself")
		}
		if p.parent == nil {
			break
		}
		p = &p.parent.Action
	}
	return nil
}

func (g *Group) link(c, before *Action) {
	if before == nil {
		c.prev = g.last
		if g.last != nil {
			g.last.next = c
		} else {
			g.first = c
		}
		g.last = c
	} else {
		c.next = before
		c.prev = before.prev
		if before.prev != nil {
			before.prev.next = c
		} else {
			g.first = c
		}
		before.prev = c
	}
	g.n++
	g.index = g.index[:0]
}

func (g *Group) unlink(c *Action) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		g.first = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		g.last = c.prev
	}
	c.prev, c.next, c.parent = nil, nil, nil
	g.n--
	g.index = g.index[:0]
}

// RemoveChild removes the child at position i and returns it, or nil if
// there is no such child. The removed action becomes a root.
func (g *Group) RemoveChild(i int) *Action {
	c := g.At(i)
	if c == nil {
		return nil
	}
	g.unlink(c)
	g.self.(grouping).removed(c)
	return c
}

// Clear removes all children of g.
func (g *Group) Clear() {
	for g.first != nil {
		g.unlink(g.first)
	}
	g.self.(grouping).cleared()
	if g.full != g.delay {
		g.updateDuration(g.delay - g.full)
	}
}

func (g *Group) bindKind(k layout.Kind) {
	g.kind, g.bound = k, true
	for c := g.first; c != nil; c = c.next {
		c.self.bindKind(k)
	}
}

// --- Spawn -----------------------------------------------------------------

// Spawn is a group running its children in parallel. Its duration is
// the longest duration of its children plus its delay.
type Spawn struct {
	Group
}

// NewSpawn creates an empty spawn for a center.
func NewSpawn(c *Center) *Spawn {
	s := &Spawn{}
	initAction(&s.Action, s, c)
	return s
}

// AsAction returns the action of s.
func (s *Spawn) AsAction() *Action { return &s.Action }

func (s *Spawn) added(c *Action) {
	if d := c.full + s.delay; d > s.full {
		s.updateDuration(d - s.full)
	}
}

func (s *Spawn) removed(c *Action) {
	if c.full+s.delay == s.full {
		s.updateMax()
	}
}

func (s *Spawn) cleared() {}

// updateMax recomputes the duration of s from its children.
func (s *Spawn) updateMax() {
	var d time.Duration
	for c := s.first; c != nil; c = c.next {
		d = max(d, c.full)
	}
	d += s.delay
	if d != s.full {
		s.updateDuration(d - s.full)
	}
}

func (s *Spawn) advance(span time.Duration, restart bool, root *Action) time.Duration {
	span = s.scale(span)
	if restart {
		s.delayDone, s.loopDone = 0, 0
	}
	span, started := s.consumeDelay(span)
	if !started {
		return 0
	}
	for {
		surplus := span
		for c := s.first; c != nil; c = c.next {
			surplus = min(surplus, c.self.advance(span, restart, root))
		}
		if surplus == 0 || !s.loops() || !s.nextLoop() {
			return s.unscale(surplus)
		}
		restart = true
		span = surplus
		s.trigger(EventLoop, span, 0, root)
		if !root.isRootPlaying() {
			return 0
		}
	}
}

func (s *Spawn) seekBefore(t time.Duration, child *Action) {
	t += s.delay
	if s.parent != nil {
		s.parent.self.seekBefore(t, &s.Action)
	} else {
		s.seekTime(t, &s.Action)
	}
}

func (s *Spawn) seekTime(t time.Duration, root *Action) {
	if t < s.delay {
		s.delayDone = t
		return
	}
	s.delayDone = s.delay
	s.loopDone = 0
	t -= s.delay
	for c := s.first; c != nil; c = c.next {
		c.self.seekTime(t, root)
	}
}

// --- Sequence --------------------------------------------------------------

// Sequence is a group running its children one after the other. Its
// duration is the sum of the durations of its children plus its delay.
type Sequence struct {
	Group
	cur *Action // running child, nil if not started
}

// NewSequence creates an empty sequence for a center.
func NewSequence(c *Center) *Sequence {
	s := &Sequence{}
	initAction(&s.Action, s, c)
	return s
}

// AsAction returns the action of s.
func (s *Sequence) AsAction() *Action { return &s.Action }

// Current returns the running child of s, or nil if s has not started.
func (s *Sequence) Current() *Action { return s.cur }

func (s *Sequence) added(c *Action) {
	if c.full != 0 {
		s.updateDuration(c.full)
	}
}

func (s *Sequence) removed(c *Action) {
	if c == s.cur {
		s.cur = nil
	}
	if c.full != 0 {
		s.updateDuration(-c.full)
	}
}

func (s *Sequence) cleared() {
	s.cur = nil
}

func (s *Sequence) advance(span time.Duration, restart bool, root *Action) time.Duration {
	span = s.scale(span)
	if s.cur == nil || restart {
		if restart {
			s.delayDone, s.loopDone = 0, 0
			s.cur = nil
		}
		var started bool
		if span, started = s.consumeDelay(span); !started {
			return 0
		}
		if s.first == nil {
			return s.unscale(span)
		}
		restart = true
		s.cur = s.first
	}
	for {
		span = s.cur.self.advance(span, restart, root)
		if span == 0 {
			break
		}
		restart = true
		if s.cur.next != nil {
			s.cur = s.cur.next
			continue
		}
		if !s.loops() || !s.nextLoop() {
			break
		}
		s.trigger(EventLoop, span, 0, root)
		s.cur = s.first
		if !root.isRootPlaying() {
			return 0
		}
	}
	return s.unscale(span)
}

func (s *Sequence) seekBefore(t time.Duration, child *Action) {
	t += s.delay
	for c := s.first; c != nil && c != child; c = c.next {
		t += c.full
	}
	if s.parent != nil {
		s.parent.self.seekBefore(t, &s.Action)
	} else {
		s.seekTime(t, &s.Action)
	}
}

func (s *Sequence) seekTime(t time.Duration, root *Action) {
	if t < s.delay {
		s.delayDone = t
		s.cur = nil
		return
	}
	s.delayDone = s.delay
	s.loopDone = 0
	t -= s.delay
	var start time.Duration
	for c := s.first; c != nil; c = c.next {
		if end := start + c.full; end > t || c.next == nil {
			s.cur = c
			c.self.seekTime(t-start, root)
			return
		}
		start += c.full
	}
}

var _ behavior = &Spawn{}
var _ behavior = &Sequence{}
