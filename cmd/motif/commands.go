package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/motif/backend/snapshot"
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/parameters"
	"github.com/npillmayer/motif/engine/action"
	"github.com/npillmayer/motif/engine/display"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/motif/engine/layout/layoutdebug"
	"github.com/npillmayer/motif/engine/layout/xpathadapter"
	"github.com/npillmayer/motif/engine/style"
	"github.com/pterm/pterm"
)

type command struct {
	name    string
	args    string
	help    string
	minArgs int
	needDoc bool
	run     func(intp *Intp, args []string) (bool, error)
}

var commands []*command

func init() {
	commands = []*command{
		{name: "help", args: "[command]", help: "list commands", run: (*Intp).help},
		{name: "quit", help: "leave the shell", run: func(*Intp, []string) (bool, error) { return true, nil }},
		{name: "css", args: "file", help: "add a stylesheet for subsequent loads", minArgs: 1, run: (*Intp).css},
		{name: "load", args: "file", help: "build views from a markup file", minArgs: 1, run: (*Intp).loadCmd},
		{name: "parse", args: "markup…", help: "build views from inline markup", minArgs: 1, run: (*Intp).parse},
		{name: "solve", help: "resolve pending layout", needDoc: true, run: (*Intp).solve},
		{name: "tree", help: "print the view tree", needDoc: true, run: (*Intp).tree},
		{name: "find", args: "xpath…", help: "list views matching an XPath expression", minArgs: 1, needDoc: true, run: (*Intp).find},
		{name: "eval", args: "xpath…", help: "evaluate an XPath expression", minArgs: 1, needDoc: true, run: (*Intp).eval},
		{name: "select", args: "selector…", help: "list views matching a CSS selector", minArgs: 1, needDoc: true, run: (*Intp).selectCmd},
		{name: "set", args: "selector property value…", help: "set a property of views", minArgs: 3, needDoc: true, run: (*Intp).set},
		{name: "animate", args: "selector property from to ms [curve]", help: "play a keyframe action", minArgs: 5, needDoc: true, run: (*Intp).animate},
		{name: "tick", args: "[n] [ms]", help: "advance the clock by n frames", needDoc: true, run: (*Intp).tick},
		{name: "viewport", args: "width height", help: "resize the root view", minArgs: 2, needDoc: true, run: (*Intp).resize},
		{name: "dot", args: "file", help: "write the view tree as GraphViz DOT", minArgs: 1, needDoc: true, run: (*Intp).dot},
		{name: "png", args: "file", help: "write a snapshot of the views", minArgs: 1, needDoc: true, run: (*Intp).png},
	}
}

// lookup finds a command by name or by a unique prefix of its name.
func (intp *Intp) lookup(word string) (*command, error) {
	word = strings.ToLower(word)
	if n, ok := intp.cmds.Find(word); ok {
		return n.Meta().(*command), nil
	}
	matches := intp.cmds.PrefixSearch(word)
	switch len(matches) {
	case 0:
		return nil, core.Error(core.EMISSING, "unknown command '%s', try 'help'", word)
	case 1:
		n, _ := intp.cmds.Find(matches[0])
		return n.Meta().(*command), nil
	}
	sort.Strings(matches)
	return nil, core.Error(core.EINVALID, "'%s' is ambiguous: %s", word, strings.Join(matches, ", "))
}

func (intp *Intp) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		items = append(items, readline.PcItem(c.name))
	}
	return readline.NewPrefixCompleter(items...)
}

func (intp *Intp) help(args []string) (bool, error) {
	cmds := commands
	if len(args) > 0 {
		c, err := intp.lookup(args[0])
		if err != nil {
			return false, err
		}
		cmds = []*command{c}
	}
	data := pterm.TableData{{"Command", "Arguments", "Description"}}
	for _, c := range cmds {
		data = append(data, []string{c.name, c.args, c.help})
	}
	return false, pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Loading ---------------------------------------------------------------

func (intp *Intp) addStylesheet(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read stylesheet %s", path)
	}
	sheet, err := style.ParseStylesheet(string(data))
	if err != nil {
		return err
	}
	intp.sheets = append(intp.sheets, sheet)
	pterm.Info.Printfln("stylesheet %s has %d rules", path, sheet.Len())
	return nil
}

func (intp *Intp) css(args []string) (bool, error) {
	return false, intp.addStylesheet(args[0])
}

func (intp *Intp) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot open markup %s", path)
	}
	defer f.Close()
	doc, err := style.Build(f, intp.sheets...)
	if err != nil {
		return err
	}
	return intp.setDocument(doc)
}

func (intp *Intp) loadCmd(args []string) (bool, error) {
	return false, intp.load(args[0])
}

func (intp *Intp) parse(args []string) (bool, error) {
	doc, err := style.Build(strings.NewReader(strings.Join(args, " ")), intp.sheets...)
	if err != nil {
		return false, err
	}
	return false, intp.setDocument(doc)
}

// setDocument replaces the current views and starts a new display for
// them.
func (intp *Intp) setDocument(doc *style.Document) error {
	disp, err := display.New(doc.Root(), intp.viewport, nil)
	if err != nil {
		return err
	}
	if intp.disp != nil {
		intp.disp.Close()
	}
	intp.doc, intp.disp = doc, disp
	intp.canvas = snapshot.New(int(intp.viewport.X), int(intp.viewport.Y))
	intp.canvas.Labels = true
	disp.SetPainter(intp.canvas)
	disp.Center().Subscribe(func(e action.Event) {
		tracer().Infof("%v: view %v frame %d loop %d", e.Type, e.View, e.Frame, e.Loop)
	})
	for _, p := range doc.Problems() {
		pterm.Warning.Println(core.UserMessage(p))
	}
	pterm.Info.Printfln("%d views loaded", doc.Len())
	return nil
}

// --- Inspecting ------------------------------------------------------------

func (intp *Intp) solve(args []string) (bool, error) {
	tree := intp.disp.Tree()
	if err := tree.Solve(); err != nil {
		return false, err
	}
	n := tree.Flush(intp.canvas)
	pterm.Printfln("layout solved in %d passes, %d views changed", tree.Passes(), n)
	return false, nil
}

func describe(v *layout.Node) string {
	var b strings.Builder
	b.WriteString(v.Tag())
	if v.ID() != "" {
		b.WriteString("#" + v.ID())
	}
	if v.Tag() != v.Kind().String() {
		b.WriteString(" (" + v.Kind().String() + ")")
	}
	sz, w := v.ContentSize(), v.World()
	fmt.Fprintf(&b, " %gx%g at (%g,%g)", sz.X, sz.Y, w.X, w.Y)
	if !v.Visible() {
		b.WriteString(" hidden")
	}
	if m := v.Marks(); m != layout.MarkNone {
		fmt.Fprintf(&b, " [%v]", m)
	}
	return b.String()
}

func treeNode(v *layout.Node) pterm.TreeNode {
	node := pterm.TreeNode{Text: describe(v)}
	for c := v.FirstChild(); c != nil; c = c.NextSibling() {
		node.Children = append(node.Children, treeNode(c))
	}
	return node
}

func (intp *Intp) tree(args []string) (bool, error) {
	root := pterm.TreeNode{Children: []pterm.TreeNode{treeNode(intp.doc.Root())}}
	return false, pterm.DefaultTree.WithRoot(root).Render()
}

func listViews(views []*layout.Node) {
	if len(views) == 0 {
		pterm.Println("no views match")
		return
	}
	for _, v := range views {
		pterm.Println(describe(v))
	}
}

func (intp *Intp) find(args []string) (bool, error) {
	views, err := xpathadapter.Find(intp.doc.Root(), strings.Join(args, " "))
	if err != nil {
		return false, err
	}
	listViews(views)
	return false, nil
}

func (intp *Intp) eval(args []string) (bool, error) {
	r, err := xpathadapter.Evaluate(intp.doc.Root(), strings.Join(args, " "))
	if err != nil {
		return false, err
	}
	pterm.Printfln("%v", r)
	return false, nil
}

func (intp *Intp) selectCmd(args []string) (bool, error) {
	views, err := intp.doc.Query(strings.Join(args, " "))
	if err != nil {
		return false, err
	}
	listViews(views)
	return false, nil
}

// --- Changing --------------------------------------------------------------

func (intp *Intp) query(selector string) ([]*layout.Node, error) {
	views, err := intp.doc.Query(selector)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, core.Error(core.EMISSING, "no views match '%s'", selector)
	}
	return views, nil
}

func (intp *Intp) set(args []string) (bool, error) {
	views, err := intp.query(args[0])
	if err != nil {
		return false, err
	}
	value := style.Property(strings.Join(args[2:], " "))
	for _, v := range views {
		if err := style.Apply(v, args[1], value); err != nil {
			return false, err
		}
	}
	pterm.Printfln("%s set on %d views", args[1], len(views))
	return false, nil
}

func (intp *Intp) animate(args []string) (bool, error) {
	views, err := intp.query(args[0])
	if err != nil {
		return false, err
	}
	prop, err := action.ParseProperty(args[1])
	if err != nil {
		return false, err
	}
	ms, err := strconv.Atoi(args[4])
	if err != nil || ms <= 0 {
		return false, core.Error(core.EINVALID, "illegal duration '%s'", args[4])
	}
	curve := action.Linear
	if len(args) > 5 {
		if curve, err = action.ParseCurve(strings.Join(args[5:], "")); err != nil {
			return false, err
		}
	}
	k := action.NewKeyframe(intp.disp.Center())
	if err := setFrame(k.Add(0, curve), prop, style.Property(args[2])); err != nil {
		return false, err
	}
	if err := setFrame(k.Add(time.Duration(ms)*time.Millisecond, curve), prop, style.Property(args[3])); err != nil {
		return false, err
	}
	for _, v := range views {
		if err := action.SetViewAction(v, k); err != nil {
			return false, err
		}
	}
	k.Play()
	pterm.Printfln("animating %s of %d views for %dms", prop, len(views), ms)
	return false, nil
}

// setFrame puts a value for property p into a frame.
func setFrame(f *action.Frame, p action.Property, value style.Property) error {
	var err error
	switch p {
	case action.PropWidth, action.PropHeight:
		var sz layout.BoxSize
		if sz, err = value.BoxSize(); err == nil {
			if p == action.PropWidth {
				f.SetWidth(sz)
			} else {
				f.SetHeight(sz)
			}
		}
	case action.PropOpacity, action.PropRotate, action.PropWeight:
		var x float32
		if x, err = value.Float(); err == nil {
			switch p {
			case action.PropOpacity:
				f.SetOpacity(x)
			case action.PropRotate:
				f.SetRotate(x)
			default:
				f.SetWeight(x)
			}
		}
	case action.PropTranslate, action.PropScale:
		v, e := value.Vec2()
		if err = e; err == nil {
			if p == action.PropTranslate {
				f.SetTranslate(v)
			} else {
				f.SetScale(v)
			}
		}
	case action.PropColor:
		c, e := value.Color()
		if err = e; err == nil {
			f.SetColor(c)
		}
	case action.PropAlign:
		a, e := layout.ParseAlign(string(value))
		if err = e; err == nil {
			f.SetAlign(a)
		}
	case action.PropVisible:
		b, e := value.Bool()
		if err = e; err == nil {
			f.SetVisible(b)
		}
	}
	if err != nil {
		return core.WrapError(err, core.EINVALID, "illegal value '%s' for %s", value, p)
	}
	return nil
}

func (intp *Intp) tick(args []string) (bool, error) {
	n := 1
	step := intp.disp.Registers().T(parameters.P_FRAMEINTERVAL)
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return false, core.Error(core.EINVALID, "illegal tick count '%s'", args[0])
		}
	}
	if len(args) > 1 {
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms < 0 {
			return false, core.Error(core.EINVALID, "illegal frame interval '%s'", args[1])
		}
		step = time.Duration(ms) * time.Millisecond
	}
	var total display.Stats
	for i := 0; i < n; i++ {
		intp.clock = intp.clock.Add(step)
		st := intp.disp.Tick(intp.clock)
		total.Tasks += st.Tasks
		total.Passes += st.Passes
		total.Painted += st.Painted
		if st.Err != nil {
			return false, st.Err
		}
	}
	last := intp.disp.Last()
	pterm.Printfln("tick %d at %v: %d tasks, %d layout passes, %d views painted, %d actions playing",
		last.Tick, intp.clock.Sub(epoch), total.Tasks, total.Passes, total.Painted, last.Playing)
	return false, nil
}

func (intp *Intp) resize(args []string) (bool, error) {
	w, err1 := strconv.ParseFloat(args[0], 32)
	h, err2 := strconv.ParseFloat(args[1], 32)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return false, core.Error(core.EINVALID, "illegal viewport %s x %s", args[0], args[1])
	}
	intp.viewport.X, intp.viewport.Y = float32(w), float32(h)
	intp.disp.Tree().SetViewport(intp.viewport)
	intp.canvas = snapshot.New(int(w), int(h))
	intp.canvas.Labels = true
	intp.disp.SetPainter(intp.canvas)
	return false, nil
}

// --- Output ----------------------------------------------------------------

func (intp *Intp) dot(args []string) (bool, error) {
	f, err := os.Create(args[0])
	if err != nil {
		return false, core.WrapError(err, core.EINVALID, "cannot create %s", args[0])
	}
	defer f.Close()
	if err := layoutdebug.ToGraphViz(intp.doc.Root(), f, tracer()); err != nil {
		return false, err
	}
	pterm.Info.Printfln("view tree written to %s", args[0])
	return false, nil
}

func (intp *Intp) png(args []string) (bool, error) {
	intp.canvas.Render(intp.doc.Root())
	if err := intp.canvas.SavePNG(args[0]); err != nil {
		return false, err
	}
	pterm.Info.Printfln("snapshot written to %s", args[0])
	return false, nil
}
