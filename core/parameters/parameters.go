/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"time"
)

// EngineParameter is a key into the engine registers.
type EngineParameter int

const (
	none              EngineParameter = iota
	P_MAXTICKSPAN     // upper bound of the time span of a single action tick
	P_FRAMEINTERVAL   // default interval between two render ticks
	P_MAXLAYOUTPASSES // number of forward/reverse sweeps before layout gives up
	P_BEZIEREPSILON   // precision for solving easing curves
	P_MINSPEED        // lower bound for action speed
	P_MAXSPEED        // upper bound for action speed
	P_STOPPER
)

var parameterNames = [...]string{"none", "maxtickspan", "frameinterval",
	"maxlayoutpasses", "beziereps", "minspeed", "maxspeed"}

func (p EngineParameter) String() string {
	if p < 0 || p >= P_STOPPER {
		return "illegal"
	}
	return parameterNames[p]
}

// Lookup finds a parameter by name, as used in configuration files and
// the command line.
func Lookup(name string) (EngineParameter, bool) {
	for i, n := range parameterNames {
		if i > 0 && n == name {
			return EngineParameter(i), true
		}
	}
	return none, false
}

// ParameterGroup holds values pushed within a group.
type ParameterGroup struct {
	params map[EngineParameter]interface{}
	level  int
	next   *ParameterGroup
}

// Registers is a register file for engine parameters. Values may be
// overridden temporarily within groups.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewRegisters creates a register file initialized with defaults.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_MAXTICKSPAN] = 200 * time.Millisecond // time.Duration
	p[P_FRAMEINTERVAL] = time.Second / 60     // time.Duration
	p[P_MAXLAYOUTPASSES] = 8                  // int
	p[P_BEZIEREPSILON] = 1e-3                 // float64
	p[P_MINSPEED] = 0.1                       // float64
	p[P_MAXSPEED] = 10.0                      // float64
}

// Begingroup opens a group. Values pushed after Begingroup will be dropped
// with the corresponding Endgroup.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes a group, dropping its values.
func (regs *Registers) Endgroup() {
	if regs.grouplevel > 0 {
		if regs.groups != nil && regs.groups.level == regs.grouplevel {
			regs.groups = regs.groups.next
		}
		regs.grouplevel--
	}
}

// Push sets a parameter value, either in the current group or globally.
func (regs *Registers) Push(key EngineParameter, value interface{}) {
	if regs.grouplevel > 0 {
		var g *ParameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &ParameterGroup{}
			g.params = make(map[EngineParameter]interface{})
			g.level = regs.grouplevel
			g.next = regs.groups
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the innermost value for a key.
func (regs *Registers) Get(key EngineParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of engine parameters")
	}
	var value interface{}
	if regs.grouplevel > 0 {
		for g := regs.groups; g != nil; g = g.next {
			value = g.params[key]
			if value != nil {
				break
			}
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

// N returns an integer parameter.
func (regs *Registers) N(key EngineParameter) int {
	return regs.Get(key).(int)
}

// F returns a float parameter.
func (regs *Registers) F(key EngineParameter) float64 {
	return regs.Get(key).(float64)
}

// T returns a duration parameter.
func (regs *Registers) T(key EngineParameter) time.Duration {
	return regs.Get(key).(time.Duration)
}
