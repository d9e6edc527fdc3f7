package style

import (
	"io"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/engine/layout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a layout tree built from markup. It remembers the markup
// element of each view, which allows selecting views with CSS selectors.
type Document struct {
	root     *layout.Node
	markup   *html.Node
	views    map[*html.Node]*layout.Node
	elements map[*layout.Node]*html.Node
	ids      map[string]*layout.Node
	problems []error
}

// Root returns the root view.
func (doc *Document) Root() *layout.Node { return doc.root }

// Len returns the number of views.
func (doc *Document) Len() int { return len(doc.views) }

// ByID returns the view with an id, or nil.
func (doc *Document) ByID(id string) *layout.Node { return doc.ids[id] }

// Element returns the markup element a view has been built from.
func (doc *Document) Element(view *layout.Node) *html.Node { return doc.elements[view] }

// Problems returns the declarations which could not be applied. Styling
// does not stop at illegal values, the views keep their previous value.
func (doc *Document) Problems() []error { return doc.problems }

// Query returns all views matching a CSS selector, in document order.
func (doc *Document) Query(selector string) ([]*layout.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "illegal selector '%s'", selector)
	}
	var views []*layout.Node
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if v, ok := doc.views[h]; ok && sel.Match(h) {
			views = append(views, v)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.markup)
	return views, nil
}

// --- Building --------------------------------------------------------------

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// Build parses markup and creates a view for each element, styled by
// sheets and by <style> elements of the markup, in this order. The markup
// must have a single root element.
func Build(markup io.Reader, sheets ...*Stylesheet) (*Document, error) {
	nodes, err := html.ParseFragment(markup, bodyContext)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse markup")
	}
	var root *html.Node
	for _, n := range nodes {
		switch {
		case n.Type != html.ElementNode:
			continue
		case n.DataAtom == atom.Style:
			sheet, err := ParseStylesheet(text(n))
			if err != nil {
				return nil, err
			}
			sheets = append(sheets, sheet)
		case root != nil:
			return nil, core.Error(core.EINVALID, "markup has more than one root element")
		default:
			root = n
		}
	}
	if root == nil {
		return nil, core.Error(core.EMISSING, "markup has no root element")
	}
	if err := collectStyles(root, &sheets); err != nil {
		return nil, err
	}
	doc := &Document{
		markup:   root,
		views:    make(map[*html.Node]*layout.Node),
		elements: make(map[*layout.Node]*html.Node),
		ids:      make(map[string]*layout.Node),
	}
	b := builder{doc: doc, sheets: sheets}
	if doc.root, err = b.build(root, nil); err != nil {
		return nil, err
	}
	tracer().Infof("built %d views from markup, %d problems", len(doc.views), len(doc.problems))
	return doc, nil
}

// BuildString is Build for markup and CSS text.
func BuildString(markup string, stylesheets ...string) (*Document, error) {
	sheets := make([]*Stylesheet, 0, len(stylesheets))
	for _, s := range stylesheets {
		sheet, err := ParseStylesheet(s)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return Build(strings.NewReader(markup), sheets...)
}

// collectStyles moves nested <style> elements out of the markup into
// sheets.
func collectStyles(n *html.Node, sheets *[]*Stylesheet) error {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.DataAtom == atom.Style {
			sheet, err := ParseStylesheet(text(c))
			if err != nil {
				return err
			}
			*sheets = append(*sheets, sheet)
			n.RemoveChild(c)
		} else if err := collectStyles(c, sheets); err != nil {
			return err
		}
		c = next
	}
	return nil
}

func text(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

type builder struct {
	doc    *Document
	sheets []*Stylesheet
}

func (b *builder) build(h *html.Node, parent *layout.Node) (*layout.Node, error) {
	decls := b.cascade(h)
	kind := kindForTag(h.Data)
	for _, d := range decls {
		if d.name == "display" {
			if k, ok := kindOf(string(d.value)); ok {
				kind = k
			}
		}
	}
	view := newView(kind)
	view.SetTag(h.Data)
	for _, a := range h.Attr {
		switch a.Key {
		case "id":
			view.SetID(a.Val)
			b.doc.ids[a.Val] = view
		case "class":
			view.SetClasses(a.Val)
		case "hidden":
			view.SetVisible(false)
		}
	}
	if parent != nil {
		if err := parent.Append(view); err != nil {
			return nil, err
		}
	}
	b.doc.views[h] = view
	b.doc.elements[view] = h
	for _, d := range decls {
		if err := Apply(view, d.name, d.value); err != nil {
			tracer().Errorf("<%s>: %v", h.Data, err)
			b.doc.problems = append(b.doc.problems, err)
		}
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, err := b.build(c, view); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func kindForTag(tag string) layout.Kind {
	k, _ := kindOf(tag)
	return k
}

func newView(kind layout.Kind) *layout.Node {
	switch kind {
	case layout.KindFlex:
		return &layout.NewFlex().Node
	case layout.KindFlow:
		return &layout.NewFlow().Node
	}
	return &layout.NewBox().Node
}

// --- Cascade ---------------------------------------------------------------

type declaration struct {
	name      string
	value     Property
	important bool
	inline    bool
	spec      specificity
	order     int
}

func (d declaration) precedes(o declaration) bool {
	if d.important != o.important {
		return o.important
	}
	if d.inline != o.inline {
		return o.inline
	}
	if d.spec != o.spec {
		return d.spec.less(o.spec)
	}
	return d.order < o.order
}

// cascade returns the winning declaration for each property of an
// element, in cascade order.
func (b *builder) cascade(h *html.Node) []declaration {
	var all []declaration
	order := 0
	add := func(decls []*css.Declaration, spec specificity, inline bool) {
		for _, d := range decls {
			all = append(all, declaration{
				name:      strings.ReplaceAll(strings.ToLower(d.Property), "_", "-"),
				value:     Property(strings.TrimSpace(d.Value)),
				important: d.Important,
				inline:    inline,
				spec:      spec,
				order:     order,
			})
			order++
		}
	}
	for _, sheet := range b.sheets {
		for _, r := range sheet.matching(h) {
			add(r.decls, r.spec, false)
		}
	}
	for _, a := range h.Attr {
		if a.Key != "style" {
			continue
		}
		decls, err := parser.ParseDeclarations(a.Val)
		if err != nil {
			err = core.WrapError(err, core.EINVALID, "<%s>: illegal inline style", h.Data)
			tracer().Errorf("%v", err)
			b.doc.problems = append(b.doc.problems, err)
			continue
		}
		add(decls, specificity{}, true)
	}
	slices.SortStableFunc(all, func(x, y declaration) int {
		switch {
		case x.precedes(y):
			return -1
		case y.precedes(x):
			return 1
		}
		return 0
	})
	winner := make(map[string]int, len(all))
	for i, d := range all {
		winner[d.name] = i
	}
	decls := all[:0]
	for i, d := range all {
		if winner[d.name] == i {
			decls = append(decls, d)
		}
	}
	return decls
}
