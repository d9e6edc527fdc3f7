/*
Package layoutdebug draws layout trees with GraphViz.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layoutdebug

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	cnt      int
}

// maxNodes guards against erroneous cycles.
const maxNodes = 1000

// ToGraphViz creates a graphical representation of a layout tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
//
// Nodes with pending layout marks are drawn in salmon, hidden nodes in grey.
// If tracer is nil, the layout tracer is used.
func ToGraphViz(root *layout.Node, w io.Writer, tracer tracing.Trace) error {
	if tracer == nil {
		tracer = tracing.Select("motif.layout")
	}
	header, err := template.New("layoutTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("node").Funcs(
		template.FuncMap{
			"label": label,
			"fill":  fill,
			"color": func(n *layout.Node) string { return ColorString(n.Color()) },
		}).Parse(nodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*layout.Node]string, 256)
	if root != nil {
		if err = nodes(root, w, dict, &gparams, tracer); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func nodes(n *layout.Node, w io.Writer, dict map[*layout.Node]string, gparams *graphParamsType,
	tracer tracing.Trace) error {
	//
	gparams.cnt++
	if gparams.cnt == maxNodes {
		tracer.Errorf("layout tree has more than %d nodes, giving up", maxNodes)
		return nil
	}
	if err := node(n, w, dict, gparams); err != nil {
		return err
	}
	tracer.Debugf("node = %v", n)
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if err := nodes(child, w, dict, gparams, tracer); err != nil {
			return err
		}
		e := cedge{cnode{n, dict[n]}, cnode{child, dict[child]}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func node(n *layout.Node, w io.Writer, dict map[*layout.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	return gparams.NodeTmpl.Execute(w, &cnode{n, name})
}

// Helper structs
type cnode struct {
	N    *layout.Node
	Name string
}

type cedge struct {
	N1, N2 cnode
}

// ---------------------------------------------------------------------------

// Label returns a short description of a node: kind, tag and id, content
// size and pending marks.
func Label(n *layout.Node) string {
	if n == nil {
		return "<empty node>"
	}
	var b strings.Builder
	b.WriteString(n.Kind().String())
	if n.Tag() != n.Kind().String() {
		b.WriteString(" <" + n.Tag() + ">")
	}
	if n.ID() != "" {
		b.WriteString(" #" + n.ID())
	}
	sz := n.ContentSize()
	fmt.Fprintf(&b, "\\n%gx%g", sz.X, sz.Y)
	if m := n.Marks(); m != 0 {
		fmt.Fprintf(&b, "\\n%v", m)
	}
	return b.String()
}

func label(n *layout.Node) string {
	return "\"" + strings.ReplaceAll(Label(n), "\"", "'") + "\""
}

func fill(n *layout.Node) string {
	switch {
	case n.Marks()&layout.MarkLayout != 0:
		return "salmon"
	case !n.Visible():
		return "grey80"
	}
	return "lightblue3"
}

// ColorString returns a color in GraphViz notation.
func ColorString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const nodeTmpl = `{{ .Name }}	[ label={{ label .N }} shape=box style=filled fillcolor={{ fill .N }} color="{{ color .N }}" ] ;
`

const edgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
