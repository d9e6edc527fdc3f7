//go:build motifdebug

package core

// Debug is set for builds with tag 'motifdebug'.
const Debug = true
