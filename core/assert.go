package core

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// Assert checks an invariant of the engine. A violated invariant is a
// programming error: builds with tag 'motifdebug' panic, all other builds
// trace the violation and return false, leaving it to the caller to skip
// the illegal transition.
//
//	if !core.Assert(n.frameCount() > 0, "keyframe without frames") {
//	    return 0
//	}
func Assert(cond bool, format string, v ...interface{}) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, v...)
	if Debug {
		panic("assertion failed: " + msg)
	}
	tracing.Select("motif.core").Errorf("assertion failed: %s", msg)
	return false
}
