package action

import (
	"image/color"
	"strings"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/engine/layout"
)

// Property names a view property a keyframe action can animate.
type Property int8

// Animated view properties.
const (
	PropWidth Property = iota
	PropHeight
	PropOpacity
	PropTranslate
	PropScale
	PropRotate
	PropColor
	PropWeight
	PropAlign
	PropVisible
)

var propertyNames = []string{"width", "height", "opacity", "translate", "scale",
	"rotate", "color", "layout_weight", "layout_align", "visible"}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "?"
	}
	return propertyNames[p]
}

// ParseProperty finds a property by name. Dashes may be used in place of
// underscores.
func ParseProperty(s string) (Property, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range propertyNames {
		if name == s {
			return Property(i), nil
		}
	}
	return PropWidth, core.Error(core.EINVALID, "unknown property %q", s)
}

// track holds the values of one property for all frames of a keyframe
// action.
type track interface {
	addFrame()
	fetch(i int, v *layout.Node)
	reset(i int)
	apply(i int, views []*layout.Node)
	blend(i, j int, y float32, views []*layout.Node)
}

// accessor reads and writes a property of type T on views.
type accessor[T any] struct {
	get  func(*layout.Node) T
	set  func(*layout.Node, T)
	lerp func(a, b T, y float32) T
	dflt T
}

type series[T any] struct {
	acc    *accessor[T]
	frames []T
}

func newSeries[T any](acc *accessor[T], n int) *series[T] {
	s := &series[T]{acc: acc, frames: make([]T, n)}
	for i := range s.frames {
		s.frames[i] = acc.dflt
	}
	return s
}

func (s *series[T]) addFrame() { s.frames = append(s.frames, s.acc.dflt) }
func (s *series[T]) reset(i int) { s.frames[i] = s.acc.dflt }
func (s *series[T]) value(i int) T { return s.frames[i] }
func (s *series[T]) put(i int, v T) { s.frames[i] = v }

func (s *series[T]) fetch(i int, v *layout.Node) {
	s.frames[i] = s.acc.get(v)
}

func (s *series[T]) apply(i int, views []*layout.Node) {
	for _, v := range views {
		s.acc.set(v, s.frames[i])
	}
}

func (s *series[T]) blend(i, j int, y float32, views []*layout.Node) {
	val := s.acc.lerp(s.frames[i], s.frames[j], y)
	for _, v := range views {
		s.acc.set(v, val)
	}
}

func lerp(a, b, y float32) float32 {
	return a - (a-b)*y
}

func step[T any](a, b T, y float32) T {
	if y >= 1 {
		return b
	}
	return a
}

func lerpColor(a, b color.RGBA, y float32) color.RGBA {
	ch := func(u, v uint8) uint8 {
		return uint8(dimen.Clamp(lerp(float32(u), float32(v), y)+0.5, 0, 255))
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

var (
	widthAccess = &accessor[layout.BoxSize]{
		get: (*layout.Node).Width, set: (*layout.Node).SetWidth,
		lerp: layout.BoxSize.Lerp, dflt: layout.Wrap,
	}
	heightAccess = &accessor[layout.BoxSize]{
		get: (*layout.Node).Height, set: (*layout.Node).SetHeight,
		lerp: layout.BoxSize.Lerp, dflt: layout.Wrap,
	}
	opacityAccess = &accessor[float32]{
		get: (*layout.Node).Opacity, set: (*layout.Node).SetOpacity,
		lerp: lerp, dflt: 1,
	}
	translateAccess = &accessor[dimen.Vec2]{
		get: (*layout.Node).Translate, set: (*layout.Node).SetTranslate,
		lerp: dimen.Vec2.Lerp,
	}
	scaleAccess = &accessor[dimen.Vec2]{
		get: (*layout.Node).Scale, set: (*layout.Node).SetScale,
		lerp: dimen.Vec2.Lerp, dflt: dimen.V(1, 1),
	}
	rotateAccess = &accessor[float32]{
		get: (*layout.Node).Rotate, set: (*layout.Node).SetRotate,
		lerp: lerp,
	}
	colorAccess = &accessor[color.RGBA]{
		get: (*layout.Node).Color, set: (*layout.Node).SetColor,
		lerp: lerpColor, dflt: color.RGBA{A: 0xff},
	}
	weightAccess = &accessor[float32]{
		get: (*layout.Node).Weight, set: (*layout.Node).SetWeight,
		lerp: lerp,
	}
	alignAccess = &accessor[layout.Align]{
		get: (*layout.Node).Align, set: (*layout.Node).SetAlign,
		lerp: step[layout.Align],
	}
	visibleAccess = &accessor[bool]{
		get: (*layout.Node).Visible, set: (*layout.Node).SetVisible,
		lerp: step[bool], dflt: true,
	}
)

func frameValue[T any](f *Frame, p Property, acc *accessor[T]) T {
	if f.host == nil {
		return acc.dflt
	}
	if t, ok := f.host.props.Get(p); ok {
		return t.(*series[T]).value(f.index)
	}
	return acc.dflt
}

func setFrameValue[T any](f *Frame, p Property, acc *accessor[T], v T) {
	if f.host == nil {
		return
	}
	t, ok := f.host.props.Get(p)
	if !ok {
		s := newSeries(acc, len(f.host.frames))
		f.host.props.Put(p, s)
		t = s
	}
	t.(*series[T]).put(f.index, v)
}
