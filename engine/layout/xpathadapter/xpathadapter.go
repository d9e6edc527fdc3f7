/*
Package xpathadapter lets XPath expressions query layout trees.

Views are presented as elements named by their tag. Each element carries
the attributes id and class (if set), kind, width and height (content
size), x and y (offset within the parent) and visible. A virtual document
node sits above the root view, so absolute paths start with the root's
tag:

	/flex/box[@id='ok']
	//box[@width > 100]

______________________________________________________________________

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package xpathadapter

import (
	"strconv"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'motif.layout'.
func tracer() tracing.Trace {
	return tracing.Select("motif.layout")
}

// NodeNavigator is an xpath.NodeNavigator for a layout tree.
type NodeNavigator struct {
	root, current *layout.Node // current is nil at the document node
	attrs         []attribute  // attributes of current
	attr          int          // attributes index
}

type attribute struct {
	key, value string
}

// NewNavigator creates a new xpath.NodeNavigator for a layout tree,
// positioned at the document node above root.
func NewNavigator(root *layout.Node) *NodeNavigator {
	return &NodeNavigator{
		root: root,
		attr: -1,
	}
}

// CurrentNode returns the view a navigator is positioned at, or nil for
// the document node.
func CurrentNode(nav xpath.NodeNavigator) (*layout.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, core.Error(core.EINVALID, "navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch {
	case nav.current == nil:
		return xpath.RootNode
	case nav.attr != -1:
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.current == nil {
		return ""
	}
	if nav.attr != -1 {
		return nav.attrs[nav.attr].key
	}
	return nav.current.Tag()
}

func (*NodeNavigator) Prefix() string {
	return ""
}

// Value is the value of an attribute, or the id of an element.
func (nav *NodeNavigator) Value() string {
	if nav.current == nil {
		return ""
	}
	if nav.attr != -1 {
		return nav.attrs[nav.attr].value
	}
	return nav.current.ID()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.moveTo(nil)
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	switch {
	case nav.current == nil:
		return false
	case nav.current == nav.root:
		nav.moveTo(nil)
	default:
		nav.moveTo(nav.current.Parent())
	}
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.current == nil {
		return false
	}
	if nav.attrs == nil {
		nav.attrs = attributes(nav.current)
	}
	if nav.attr >= len(nav.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if nav.current == nil {
		if nav.root == nil {
			return false
		}
		nav.moveTo(nav.root)
		return true
	}
	if child := nav.current.FirstChild(); child != nil {
		nav.moveTo(child)
		return true
	}
	return false
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || !nav.hasSiblings() || nav.current.PrevSibling() == nil {
		return false
	}
	nav.moveTo(nav.current.Parent().FirstChild())
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || !nav.hasSiblings() {
		return false
	}
	if next := nav.current.NextSibling(); next != nil {
		nav.moveTo(next)
		return true
	}
	return false
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || !nav.hasSiblings() {
		return false
	}
	if prev := nav.current.PrevSibling(); prev != nil {
		nav.moveTo(prev)
		return true
	}
	return false
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attrs = n.attrs
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// hasSiblings is false at the document node and at the root view, which
// is the only child of the document node.
func (nav *NodeNavigator) hasSiblings() bool {
	return nav.current != nil && nav.current != nav.root
}

func (nav *NodeNavigator) moveTo(n *layout.Node) {
	nav.current = n
	nav.attrs = nil
	nav.attr = -1
}

func attributes(n *layout.Node) []attribute {
	num := func(f float32) string {
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	attrs := make([]attribute, 0, 8)
	if n.ID() != "" {
		attrs = append(attrs, attribute{"id", n.ID()})
	}
	if cls := n.Classes(); len(cls) > 0 {
		attrs = append(attrs, attribute{"class", strings.Join(cls, " ")})
	}
	size, offset := n.ContentSize(), n.Offset()
	return append(attrs,
		attribute{"kind", n.Kind().String()},
		attribute{"width", num(size.X)},
		attribute{"height", num(size.Y)},
		attribute{"x", num(offset.X)},
		attribute{"y", num(offset.Y)},
		attribute{"visible", strconv.FormatBool(n.Visible())},
	)
}

// --- Queries ---------------------------------------------------------------

// Find returns all views of the tree below root selected by an XPath
// expression, in document order.
func Find(root *layout.Node, expr string) ([]*layout.Node, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "illegal xpath '%s'", expr)
	}
	var views []*layout.Node
	seen := make(map[*layout.Node]bool)
	iter := x.Select(NewNavigator(root))
	for iter.MoveNext() {
		v, err := CurrentNode(iter.Current())
		if err != nil {
			return nil, err
		}
		if v != nil && !seen[v] {
			seen[v] = true
			views = append(views, v)
		}
	}
	tracer().Debugf("xpath '%s' selects %d views", expr, len(views))
	return views, nil
}

// FindOne returns the first view selected by an XPath expression, or nil.
func FindOne(root *layout.Node, expr string) (*layout.Node, error) {
	views, err := Find(root, expr)
	if err != nil || len(views) == 0 {
		return nil, err
	}
	return views[0], nil
}

// Evaluate evaluates an XPath expression like count(//box). The result is
// a float64, string, bool or *xpath.NodeIterator.
func Evaluate(root *layout.Node, expr string) (interface{}, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "illegal xpath '%s'", expr)
	}
	return x.Evaluate(NewNavigator(root)), nil
}
