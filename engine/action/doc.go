/*
Package action animates views over time.

Actions form trees. A Keyframe holds a list of frames, each carrying
target values for view properties and an easing curve towards the next
frame. A Spawn runs its children in parallel, a Sequence runs them one
after the other. Every action may be delayed, sped up or slowed down,
and looped.

Only a root action, an action without a parent group, is bound to views
and played. Playing registers the root with a Center, which advances all
playing roots once per tick:

	center := action.NewCenter(nil, tasks)
	fade := action.NewKeyframe(center)
	fade.Add(0, action.Linear).SetOpacity(0)
	fade.Add(300*time.Millisecond, action.EaseOut).SetOpacity(1)
	action.SetViewAction(view, fade)
	fade.Play()
	...
	center.Advance(now)  // once per tick on the layout thread

Advancing writes property values to the bound views through their
setters, which dirty-mark the views for the next layout pass. Events
(loop, keyframe) are posted to the task queue of the center and are
delivered to subscribers after the tick.

Bound views are referenced weakly. A view removed from its tree unbinds
from its action, and an action without views stops playing.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package action

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'motif.action'.
func tracer() tracing.Trace {
	return tracing.Select("motif.action")
}
