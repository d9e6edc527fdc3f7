package style

import (
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/engine/layout"
	"golang.org/x/image/colornames"
)

// Property is the raw value of a CSS declaration.
type Property string

func (p Property) String() string {
	return string(p)
}

func (p Property) fields() []string {
	return strings.Fields(strings.ReplaceAll(string(p), ",", " "))
}

// BoxSize reads p as a view size, see layout.ParseBoxSize.
func (p Property) BoxSize() (layout.BoxSize, error) {
	return layout.ParseBoxSize(string(p))
}

// Length reads p as a pixel length.
func (p Property) Length() (float32, error) {
	v, u, err := dimen.ParseLength(strings.TrimSpace(string(p)))
	if err != nil || u != dimen.PX {
		return 0, core.Error(core.EINVALID, "illegal length '%s'", p)
	}
	return v, nil
}

// Float reads p as a number. A trailing `deg` is ignored.
func (p Property) Float() (float32, error) {
	s := strings.TrimSuffix(strings.TrimSpace(string(p)), "deg")
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "illegal number '%s'", p)
	}
	return float32(f), nil
}

// Vec2 reads p as one or two numbers. A single number is used for both
// components.
func (p Property) Vec2() (dimen.Vec2, error) {
	f := p.fields()
	if len(f) == 0 || len(f) > 2 {
		return dimen.Vec2{}, core.Error(core.EINVALID, "illegal vector '%s'", p)
	}
	x, err := Property(f[0]).Length()
	if err != nil {
		return dimen.Vec2{}, err
	}
	y := x
	if len(f) == 2 {
		if y, err = Property(f[1]).Length(); err != nil {
			return dimen.Vec2{}, err
		}
	}
	return dimen.V(x, y), nil
}

// Insets reads p with the CSS shorthand rules for margin and padding:
// one to four lengths, clockwise from top.
func (p Property) Insets() (dimen.Insets, error) {
	f := p.fields()
	if len(f) == 0 || len(f) > 4 {
		return dimen.Insets{}, core.Error(core.EINVALID, "illegal insets '%s'", p)
	}
	v := make([]float32, len(f))
	for i, s := range f {
		l, err := Property(s).Length()
		if err != nil {
			return dimen.Insets{}, err
		}
		v[i] = l
	}
	switch len(v) {
	case 1:
		return dimen.Uniform(v[0]), nil
	case 2:
		return dimen.Insets{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}, nil
	case 3:
		return dimen.Insets{Top: v[0], Right: v[1], Bottom: v[2], Left: v[1]}, nil
	}
	return dimen.Insets{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}, nil
}

// Color reads p as a color name or a hex color (#rgb, #rgba, #rrggbb,
// #rrggbbaa).
func (p Property) Color() (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if s == "transparent" {
		return color.RGBA{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, core.Error(core.EINVALID, "unknown color '%s'", p)
	}
	hex := s[1:]
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, core.Error(core.EINVALID, "illegal hex color '%s'", p)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, core.WrapError(err, core.EINVALID, "illegal hex color '%s'", p)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// Bool reads p as true/false, yes/no or visible/hidden.
func (p Property) Bool() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case "true", "yes", "visible", "1":
		return true, nil
	case "false", "no", "hidden", "collapse", "0":
		return false, nil
	}
	return false, core.Error(core.EINVALID, "illegal boolean '%s'", p)
}

// --- Setters ---------------------------------------------------------------

// setter applies a property to a view.
type setter func(n *layout.Node, p Property) error

func sizeSetter(set func(*layout.Node, layout.BoxSize)) setter {
	return func(n *layout.Node, p Property) error {
		s, err := p.BoxSize()
		if err == nil {
			set(n, s)
		}
		return err
	}
}

func limitSetter(get func(*layout.Node) dimen.Vec2, set func(*layout.Node, dimen.Vec2), a dimen.Axis) setter {
	return func(n *layout.Node, p Property) error {
		l, err := p.Length()
		if err == nil {
			set(n, get(n).With(a, l))
		}
		return err
	}
}

func insetsSetter(get func(*layout.Node) dimen.Insets, set func(*layout.Node, dimen.Insets), side int) setter {
	return func(n *layout.Node, p Property) error {
		if side < 0 {
			in, err := p.Insets()
			if err == nil {
				set(n, in)
			}
			return err
		}
		l, err := p.Length()
		if err != nil {
			return err
		}
		in := get(n)
		edges := [4]*float32{&in.Top, &in.Right, &in.Bottom, &in.Left}
		*edges[side] = l
		set(n, in)
		return nil
	}
}

func floatSetter(set func(*layout.Node, float32)) setter {
	return func(n *layout.Node, p Property) error {
		f, err := p.Float()
		if err == nil {
			set(n, f)
		}
		return err
	}
}

func vecSetter(set func(*layout.Node, dimen.Vec2)) setter {
	return func(n *layout.Node, p Property) error {
		v, err := p.Vec2()
		if err == nil {
			set(n, v)
		}
		return err
	}
}

func setScale(n *layout.Node, p Property) error {
	f := p.fields()
	if len(f) == 0 || len(f) > 2 {
		return core.Error(core.EINVALID, "illegal scale '%s'", p)
	}
	x, err := Property(f[0]).Float()
	if err != nil {
		return err
	}
	y := x
	if len(f) == 2 {
		if y, err = Property(f[1]).Float(); err != nil {
			return err
		}
	}
	n.SetScale(dimen.V(x, y))
	return nil
}

func setColor(n *layout.Node, p Property) error {
	c, err := p.Color()
	if err == nil {
		n.SetColor(c)
	}
	return err
}

func setVisible(n *layout.Node, p Property) error {
	v, err := p.Bool()
	if err == nil {
		n.SetVisible(v)
	}
	return err
}

func setAlign(n *layout.Node, p Property) error {
	a, err := layout.ParseAlign(string(p))
	if err != nil {
		return core.WrapError(err, core.EINVALID, "illegal alignment")
	}
	n.SetAlign(a)
	return nil
}

func setDisplay(n *layout.Node, p Property) error {
	// the kind of a view is fixed on creation, only `none` is left
	if strings.TrimSpace(string(p)) == "none" {
		n.SetVisible(false)
	}
	return nil
}

func flexSetter(set func(*layout.Flex, string) error) setter {
	return func(n *layout.Node, p Property) error {
		var f *layout.Flex
		switch l := n.Layout().(type) {
		case *layout.Flex:
			f = l
		case *layout.Flow:
			f = &l.Flex
		default:
			return core.Error(core.EINVALID, "property needs a flex container, is %s", n.Kind())
		}
		if err := set(f, string(p)); err != nil {
			return core.WrapError(err, core.EINVALID, "illegal value '%s'", p)
		}
		return nil
	}
}

func flowSetter(set func(*layout.Flow, string) error) setter {
	return func(n *layout.Node, p Property) error {
		f, ok := n.Layout().(*layout.Flow)
		if !ok {
			return core.Error(core.EINVALID, "property needs a flow container, is %s", n.Kind())
		}
		if err := set(f, string(p)); err != nil {
			return core.WrapError(err, core.EINVALID, "illegal value '%s'", p)
		}
		return nil
	}
}

var setters = map[string]setter{
	"width":          sizeSetter((*layout.Node).SetWidth),
	"height":         sizeSetter((*layout.Node).SetHeight),
	"min-width":      limitSetter((*layout.Node).MinSize, (*layout.Node).SetMinSize, dimen.X),
	"min-height":     limitSetter((*layout.Node).MinSize, (*layout.Node).SetMinSize, dimen.Y),
	"max-width":      limitSetter((*layout.Node).MaxSize, (*layout.Node).SetMaxSize, dimen.X),
	"max-height":     limitSetter((*layout.Node).MaxSize, (*layout.Node).SetMaxSize, dimen.Y),
	"margin":         insetsSetter((*layout.Node).Margin, (*layout.Node).SetMargin, -1),
	"margin-top":     insetsSetter((*layout.Node).Margin, (*layout.Node).SetMargin, 0),
	"margin-right":   insetsSetter((*layout.Node).Margin, (*layout.Node).SetMargin, 1),
	"margin-bottom":  insetsSetter((*layout.Node).Margin, (*layout.Node).SetMargin, 2),
	"margin-left":    insetsSetter((*layout.Node).Margin, (*layout.Node).SetMargin, 3),
	"padding":        insetsSetter((*layout.Node).Padding, (*layout.Node).SetPadding, -1),
	"padding-top":    insetsSetter((*layout.Node).Padding, (*layout.Node).SetPadding, 0),
	"padding-right":  insetsSetter((*layout.Node).Padding, (*layout.Node).SetPadding, 1),
	"padding-bottom": insetsSetter((*layout.Node).Padding, (*layout.Node).SetPadding, 2),
	"padding-left":   insetsSetter((*layout.Node).Padding, (*layout.Node).SetPadding, 3),
	"measure":        vecSetter((*layout.Node).SetMeasure),
	"layout-weight":  floatSetter((*layout.Node).SetWeight),
	"flex-grow":      floatSetter((*layout.Node).SetWeight),
	"layout-align":   setAlign,
	"align-self":     setAlign,
	"visible":        setVisible,
	"visibility":     setVisible,
	"display":        setDisplay,
	"opacity":        floatSetter((*layout.Node).SetOpacity),
	"translate":      vecSetter((*layout.Node).SetTranslate),
	"scale":          setScale,
	"rotate":         floatSetter((*layout.Node).SetRotate),
	"color":          setColor,
	"background":     setColor,
	"flex-direction": flexSetter(func(f *layout.Flex, s string) error {
		d, err := layout.ParseDirection(s)
		if err == nil {
			f.SetDirection(d)
		}
		return err
	}),
	"justify-content": flexSetter(func(f *layout.Flex, s string) error {
		a, err := layout.ParseItemsAlign(s)
		if err == nil {
			f.SetItemsAlign(a)
		}
		return err
	}),
	"align-items": flexSetter(func(f *layout.Flex, s string) error {
		a, err := layout.ParseCrossAlign(s)
		if err == nil {
			f.SetCrossAlign(a)
		}
		return err
	}),
	"flex-wrap": flowSetter(func(f *layout.Flow, s string) error {
		w, err := layout.ParseWrap(s)
		if err == nil {
			f.SetWrap(w)
		}
		return err
	}),
	"align-content": flowSetter(func(f *layout.Flow, s string) error {
		a, err := layout.ParseWrapAlign(s)
		if err == nil {
			f.SetWrapAlign(a)
		}
		return err
	}),
}

// Apply sets a property of a view by its CSS name. Underscores may be
// used in place of dashes.
func Apply(n *layout.Node, name string, p Property) error {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	set, ok := setters[name]
	if !ok {
		return core.Error(core.EMISSING, "unknown property '%s'", name)
	}
	if err := set(n, p); err != nil {
		return core.WrapError(err, core.Code(err), "%s: %s", name, p)
	}
	return nil
}

// Properties returns the names of all properties known to Apply.
func Properties() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func kindOf(display string) (layout.Kind, bool) {
	switch strings.TrimSpace(display) {
	case "box", "block":
		return layout.KindBox, true
	case "flex":
		return layout.KindFlex, true
	case "flow":
		return layout.KindFlow, true
	}
	return layout.KindBox, false
}
