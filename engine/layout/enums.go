package layout

import (
	"strings"

	"github.com/npillmayer/motif/core"
)

// Kind is the layout kind of a node.
type Kind int8

// Layout kinds
const (
	KindBox Kind = iota
	KindFlex
	KindFlow
)

var kindNames = []string{"box", "flex", "flow"}

func (k Kind) String() string {
	return name(kindNames, int(k))
}

// Align is the alignment of a node within its parent.
// Auto defers to the parent's cross alignment.
type Align int8

// Node alignments
const (
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Direction is the main axis direction of a flex container.
type Direction int8

// Flex directions
const (
	Row Direction = iota
	RowReverse
	Column
	ColumnReverse
)

// ItemsAlign is the distribution of items along the main axis.
type ItemsAlign int8

// Main axis distributions
const (
	ItemsStart ItemsAlign = iota
	ItemsCenter
	ItemsEnd
	ItemsSpaceBetween
	ItemsSpaceAround
	ItemsSpaceEvenly
)

// CrossAlign is the default alignment of items on the cross axis.
type CrossAlign int8

// Cross axis alignments
const (
	CrossStart CrossAlign = iota
	CrossCenter
	CrossEnd
)

// LineWrap tells a flow container whether to break items into lines.
type LineWrap int8

// Line breaking modes
const (
	NoWrap LineWrap = iota
	WrapLines
	WrapReverse
)

// WrapAlign is the distribution of lines along the cross axis.
type WrapAlign int8

// Line distributions
const (
	WrapStart WrapAlign = iota
	WrapCenter
	WrapEnd
	WrapSpaceBetween
	WrapSpaceAround
	WrapSpaceEvenly
	WrapStretch
)

var (
	alignNames     = []string{"auto", "start", "center", "end"}
	directionNames = []string{"row", "row-reverse", "column", "column-reverse"}
	itemsNames     = []string{"start", "center", "end", "space-between", "space-around", "space-evenly"}
	crossNames     = []string{"start", "center", "end"}
	wrapNames      = []string{"nowrap", "wrap", "wrap-reverse"}
	wrapAlignNames = []string{"start", "center", "end", "space-between", "space-around", "space-evenly", "stretch"}
)

func (a Align) String() string      { return name(alignNames, int(a)) }
func (d Direction) String() string  { return name(directionNames, int(d)) }
func (a ItemsAlign) String() string { return name(itemsNames, int(a)) }
func (a CrossAlign) String() string { return name(crossNames, int(a)) }
func (w LineWrap) String() string   { return name(wrapNames, int(w)) }
func (a WrapAlign) String() string  { return name(wrapAlignNames, int(a)) }

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "?"
	}
	return names[i]
}

// cross maps a node alignment onto a cross axis alignment, falling back
// to the container default for AlignAuto.
func (a Align) cross(dflt CrossAlign) CrossAlign {
	if a == AlignAuto {
		return dflt
	}
	return CrossAlign(a - 1)
}

func lookup(names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "flex-")
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, core.Error(core.EINVALID, "unknown value '%s'", s)
}

// Parse functions return the first value of their enum together with
// an EINVALID error for unknown names.

// ParseAlign parses a node alignment; "left" and "top" are read as "start",
// "right" and "bottom" as "end".
func ParseAlign(s string) (Align, error) {
	switch s {
	case "left", "top":
		return AlignStart, nil
	case "right", "bottom":
		return AlignEnd, nil
	}
	i, err := lookup(alignNames, s)
	return Align(i), err
}

// ParseDirection parses a flex direction.
func ParseDirection(s string) (Direction, error) {
	i, err := lookup(directionNames, s)
	return Direction(i), err
}

// ParseItemsAlign parses a main axis distribution.
func ParseItemsAlign(s string) (ItemsAlign, error) {
	i, err := lookup(itemsNames, s)
	return ItemsAlign(i), err
}

// ParseCrossAlign parses a cross axis alignment.
func ParseCrossAlign(s string) (CrossAlign, error) {
	i, err := lookup(crossNames, s)
	return CrossAlign(i), err
}

// ParseWrap parses a line breaking mode.
func ParseWrap(s string) (LineWrap, error) {
	i, err := lookup(wrapNames, s)
	return LineWrap(i), err
}

// ParseWrapAlign parses a line distribution.
func ParseWrapAlign(s string) (WrapAlign, error) {
	i, err := lookup(wrapAlignNames, s)
	return WrapAlign(i), err
}
