package action

import (
	"weak"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/engine/layout"
)

// SetViewAction binds a to a view, replacing the view's previous action.
// The previous action loses the view and stops if it has no views left.
// A nil action unbinds the view.
//
// Only root actions can be bound, and all views bound to an action must
// be of the same kind. If a check fails, no binding is changed.
func SetViewAction(view layout.Element, a Animator) error {
	v := view.AsNode()
	var act *Action
	if a != nil {
		act = a.AsAction()
	}
	old := v.Action()
	if prev, ok := old.(*Action); ok && prev == act && act != nil {
		return nil
	}
	if act != nil {
		if err := act.checkView(v); err != nil {
			return err
		}
	}
	if old != nil {
		v.SetActionBinding(nil)
		old.DetachView(v)
	}
	if act != nil {
		act.addView(v)
		v.SetActionBinding(act)
	}
	return nil
}

// ViewAction returns the action bound to a view, or nil.
func ViewAction(view layout.Element) *Action {
	a, _ := view.AsNode().Action().(*Action)
	return a
}

func (a *Action) checkView(v *layout.Node) error {
	if a.parent != nil {
		return core.WrapError(ErrIllegalRoot, core.EILLEGALROOT,
			"cannot bind %s to a child action", v)
	}
	if live := a.liveViews(); len(live) > 0 && a.bound && a.kind != v.Kind() {
		return core.WrapError(ErrIllegalViewType, core.EVIEWTYPE,
			"cannot bind %s to an action animating %s views", v, a.kind)
	}
	return nil
}

func (a *Action) addView(v *layout.Node) {
	if len(a.liveViews()) == 0 {
		a.self.bindKind(v.Kind())
	}
	a.views.Add(weak.Make(v))
	tracer().Debugf("bound %s to action", v)
}

// DetachView removes a view from a. If no view is left, a stops. The
// view's own binding is not touched; use SetViewAction to unbind a view.
func (a *Action) DetachView(v *layout.Node) {
	a.views.Remove(weak.Make(v))
	if len(a.liveViews()) == 0 {
		a.Stop()
	}
}

var _ layout.ViewAction = &Action{}
