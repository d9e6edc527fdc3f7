package action

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/motif/core"
)

// Curve is a cubic Bézier easing curve from (0,0) to (1,1) with two
// control points.
type Curve struct {
	x1, y1, x2, y2 float32
	ax, bx, cx     float64
	ay, by, cy     float64
	linear         bool
}

// Predefined easing curves.
var (
	Linear    = Bezier(0, 0, 1, 1)
	Ease      = Bezier(0.25, 0.1, 0.25, 1)
	EaseIn    = Bezier(0.42, 0, 1, 1)
	EaseOut   = Bezier(0, 0, 0.58, 1)
	EaseInOut = Bezier(0.42, 0, 0.58, 1)
)

// Bezier creates an easing curve with control points (x1,y1) and (x2,y2).
// x values are clamped to [0,1].
func Bezier(x1, y1, x2, y2 float32) Curve {
	x1 = min(max(x1, 0), 1)
	x2 = min(max(x2, 0), 1)
	c := Curve{x1: x1, y1: y1, x2: x2, y2: y2}
	c.linear = x1 == y1 && x2 == y2
	c.cx = 3 * float64(x1)
	c.bx = 3*float64(x2-x1) - c.cx
	c.ax = 1 - c.cx - c.bx
	c.cy = 3 * float64(y1)
	c.by = 3*float64(y2-y1) - c.cy
	c.ay = 1 - c.cy - c.by
	return c
}

// Points returns the control points of c.
func (c Curve) Points() (x1, y1, x2, y2 float32) {
	return c.x1, c.y1, c.x2, c.y2
}

func (c Curve) String() string {
	return fmt.Sprintf("cubic-bezier(%g,%g,%g,%g)", c.x1, c.y1, c.x2, c.y2)
}

func (c Curve) sampleX(t float64) float64 { return ((c.ax*t+c.bx)*t + c.cx) * t }
func (c Curve) sampleY(t float64) float64 { return ((c.ay*t+c.by)*t + c.cy) * t }
func (c Curve) slopeX(t float64) float64  { return (3*c.ax*t+2*c.bx)*t + c.cx }

// Solve returns the eased progress for progress x in [0,1], with
// precision eps.
func (c Curve) Solve(x, eps float64) float64 {
	if c.linear || x <= 0 || x >= 1 {
		return x
	}
	return c.sampleY(c.solveX(x, eps))
}

// solveX finds the curve parameter for x, with Newton's method first and
// bisection if that does not converge.
func (c Curve) solveX(x, eps float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		d := c.sampleX(t) - x
		if math.Abs(d) < eps {
			return t
		}
		slope := c.slopeX(t)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= d / slope
	}
	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 64 && lo < hi; i++ {
		v := c.sampleX(t)
		if math.Abs(v-x) < eps {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = lo + (hi-lo)/2
	}
	return t
}

var curveNames = map[string]Curve{
	"linear":      Linear,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// ParseCurve accepts the names of the predefined curves, in CSS notation
// ("ease-in-out"), and "cubic-bezier(x1,y1,x2,y2)".
func ParseCurve(s string) (Curve, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := curveNames[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "cubic-bezier(") && strings.HasSuffix(s, ")") {
		args := strings.Split(s[len("cubic-bezier("):len(s)-1], ",")
		if len(args) == 4 {
			var p [4]float32
			for i, a := range args {
				f, err := strconv.ParseFloat(strings.TrimSpace(a), 32)
				if err != nil {
					return Linear, core.WrapError(err, core.EINVALID, "illegal curve %q", s)
				}
				p[i] = float32(f)
			}
			return Bezier(p[0], p[1], p[2], p[3]), nil
		}
	}
	return Linear, core.Error(core.EINVALID, "illegal curve %q", s)
}
