package layout

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/motif/core/dimen"
)

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.id != "" {
		return fmt.Sprintf("%s#%s", n.tag, n.id)
	}
	return n.tag
}

// markSize requests a new size. If the parent has authority over the size
// of n, it is asked to re-arrange instead.
func (n *Node) markSize(bits Mark) {
	if p := n.parent; p != nil && p.self.IsLockChildLayoutSize() {
		p.self.OnChildLayoutChange(n, ChildSize)
		return
	}
	n.MarkPre(bits)
}

func (n *Node) notifyParent(change ChildChange) {
	if n.parent != nil {
		n.parent.self.OnChildLayoutChange(n, change)
	}
}

// --- Box properties --------------------------------------------------------

// Width returns the width setting of n.
func (n *Node) Width() BoxSize { return n.width }

// Height returns the height setting of n.
func (n *Node) Height() BoxSize { return n.height }

// SetWidth sets the width of the content box.
func (n *Node) SetWidth(w BoxSize) {
	if n.width != w {
		n.width = w
		n.markSize(MarkWidth)
	}
}

// SetHeight sets the height of the content box.
func (n *Node) SetHeight(h BoxSize) {
	if n.height != h {
		n.height = h
		n.markSize(MarkHeight)
	}
}

// SetSize sets width and height of the content box.
func (n *Node) SetSize(w, h BoxSize) {
	n.SetWidth(w)
	n.SetHeight(h)
}

// MinSize returns the lower limits of the content box.
func (n *Node) MinSize() dimen.Vec2 { return n.minSize }

// MaxSize returns the upper limits of the content box. Zero components
// are unbounded.
func (n *Node) MaxSize() dimen.Vec2 { return n.maxSize }

// SetMinSize sets lower limits for the content box.
func (n *Node) SetMinSize(v dimen.Vec2) {
	if n.minSize != v {
		n.minSize = v
		n.markSize(MarkSize)
	}
}

// SetMaxSize sets upper limits for the content box. Zero components are
// unbounded.
func (n *Node) SetMaxSize(v dimen.Vec2) {
	if n.maxSize != v {
		n.maxSize = v
		n.markSize(MarkSize)
	}
}

// Margin returns the margins of n.
func (n *Node) Margin() dimen.Insets { return n.margin }

// SetMargin sets the margins of n.
func (n *Node) SetMargin(m dimen.Insets) {
	if n.margin != m {
		lead := n.margin.Lead() != m.Lead()
		n.margin = m
		n.markSize(MarkSize)
		if lead {
			n.Mark(MarkTransform)
		}
	}
}

// Padding returns the paddings of n.
func (n *Node) Padding() dimen.Insets { return n.padding }

// SetPadding sets the paddings of n.
func (n *Node) SetPadding(p dimen.Insets) {
	if n.padding != p {
		lead := n.padding.Lead() != p.Lead()
		n.padding = p
		n.markSize(MarkSize)
		if lead {
			n.Mark(MarkTransform)
		}
	}
}

// Measure returns the content size reported by external collaborators.
func (n *Node) Measure() dimen.Vec2 { return n.measure }

// SetMeasure sets the size of content which is not made of child views,
// e.g. text or images. Wrapped dimensions grow to at least this size.
func (n *Node) SetMeasure(v dimen.Vec2) {
	if n.measure != v {
		n.measure = v
		n.MarkPre(MarkTypesetting)
		n.notifyParent(ChildText)
	}
}

// Weight returns the growth weight of n within a flex container.
func (n *Node) Weight() float32 { return n.weight }

// SetWeight sets the growth weight of n within a flex container.
func (n *Node) SetWeight(w float32) {
	if w < 0 {
		w = 0
	}
	if n.weight != w {
		n.weight = w
		n.notifyParent(ChildWeight)
	}
}

// Align returns the alignment of n within its parent.
func (n *Node) Align() Align { return n.align }

// SetAlign sets the alignment of n within its parent.
func (n *Node) SetAlign(a Align) {
	if n.align != a {
		n.align = a
		n.notifyParent(ChildAlign)
	}
}

// Visible tells if n takes part in layout and painting.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides n.
func (n *Node) SetVisible(v bool) {
	if n.visible != v {
		n.visible = v
		n.Mark(MarkVisibleRegion)
		n.notifyParent(ChildVisible)
	}
}

// --- Render properties -----------------------------------------------------

// Opacity returns the opacity of n.
func (n *Node) Opacity() float32 { return n.opacity }

// SetOpacity sets the opacity of n, clamped to [0…1].
func (n *Node) SetOpacity(o float32) {
	o = dimen.Clamp(o, 0, 1)
	if n.opacity != o {
		n.opacity = o
		n.Mark(MarkTransform)
	}
}

// Translate returns the render translation of n.
func (n *Node) Translate() dimen.Vec2 { return n.translate }

// SetTranslate sets a translation applied when painting n.
func (n *Node) SetTranslate(v dimen.Vec2) {
	if n.translate != v {
		n.translate = v
		n.Mark(MarkTransform)
	}
}

// Scale returns the render scale of n.
func (n *Node) Scale() dimen.Vec2 { return n.scale }

// SetScale sets a scale applied when painting n.
func (n *Node) SetScale(v dimen.Vec2) {
	if n.scale != v {
		n.scale = v
		n.Mark(MarkTransform)
	}
}

// Rotate returns the render rotation of n in degrees.
func (n *Node) Rotate() float32 { return n.rotate }

// SetRotate sets a rotation in degrees applied when painting n.
func (n *Node) SetRotate(deg float32) {
	if n.rotate != deg {
		n.rotate = deg
		n.Mark(MarkTransform)
	}
}

// Color returns the fill color of n.
func (n *Node) Color() color.RGBA { return n.color }

// SetColor sets the fill color of n.
func (n *Node) SetColor(c color.RGBA) {
	if n.color != c {
		n.color = c
		n.Mark(MarkTransform)
	}
}

// --- Identity --------------------------------------------------------------

// Tag returns the element name of n.
func (n *Node) Tag() string { return n.tag }

// SetTag sets the element name of n.
func (n *Node) SetTag(tag string) { n.tag = tag }

// ID returns the identifier of n.
func (n *Node) ID() string { return n.id }

// SetID sets the identifier of n.
func (n *Node) SetID(id string) { n.id = id }

// Classes returns the style classes of n.
func (n *Node) Classes() []string { return n.classes }

// SetClasses sets the style classes of n from a space separated list.
func (n *Node) SetClasses(cls string) { n.classes = strings.Fields(cls) }

// HasClass checks for a style class.
func (n *Node) HasClass(cls string) bool {
	for _, c := range n.classes {
		if c == cls {
			return true
		}
	}
	return false
}

// --- Geometry --------------------------------------------------------------

// ContentSize returns the size of the content box.
func (n *Node) ContentSize() dimen.Vec2 { return n.content }

// LayoutSize returns the size of the content box plus padding and margin.
func (n *Node) LayoutSize() dimen.Vec2 { return n.size }

// Intrinsic returns the natural content extent of n, as computed by the
// last arrangement.
func (n *Node) Intrinsic() dimen.Vec2 { return n.intrinsic }

// IsWrap tells if the size of n along an axis is determined by its content.
func (n *Node) IsWrap(a dimen.Axis) bool { return n.wrap[a] }

// Offset returns the offset of the margin box of n within the content box
// of its parent.
func (n *Node) Offset() dimen.Vec2 { return n.offset }

// World returns the origin of the border box of n in tree coordinates.
// It is valid after a flush.
func (n *Node) World() dimen.Vec2 { return n.world }

// Frame returns the border box of n in tree coordinates.
func (n *Node) Frame() dimen.Rect {
	return dimen.Rect{
		Origin: n.world,
		Size:   n.content.Add(n.padding.Sum()),
	}
}

func (n *Node) setOffset(v dimen.Vec2) {
	if n.offset != v {
		n.offset = v
		n.Mark(MarkTransform)
	}
}
