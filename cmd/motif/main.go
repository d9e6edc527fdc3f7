/*
Command motif is an interactive shell for view trees.

It builds a view tree from markup and CSS, solves its layout and plays
actions on a virtual clock. Views are inspected as a tree, selected with
XPath or CSS selectors, and exported as GraphViz DOT or PNG snapshots.

	motif -markup page.html -css page.css -width 400 -height 300

Type "help" at the prompt for a list of commands. Commands may be
abbreviated to any unique prefix.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/derekparker/trie"
	"github.com/npillmayer/motif/backend/snapshot"
	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/engine/display"
	"github.com/npillmayer/motif/engine/style"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'motif.cli'
func tracer() tracing.Trace {
	return tracing.Select("motif.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	markup := flag.String("markup", "", "Markup file to load")
	css := flag.String("css", "", "Comma separated list of stylesheets")
	width := flag.Float64("width", 640, "Viewport width")
	height := flag.Float64("height", 480, "Viewport height")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.motif.cli":     *tlevel,
		"trace.motif.style":   *tlevel,
		"trace.motif.layout":  *tlevel,
		"trace.motif.action":  *tlevel,
		"trace.motif.display": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the motif view shell") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	intp := NewIntp(dimen.V(float32(*width), float32(*height)))
	if *css != "" {
		for _, name := range strings.Split(*css, ",") {
			if err := intp.addStylesheet(strings.TrimSpace(name)); err != nil {
				pterm.Error.Println(core.UserMessage(err))
				os.Exit(2)
			}
		}
	}
	if *markup != "" {
		if err := intp.load(*markup); err != nil {
			pterm.Error.Println(core.UserMessage(err))
			os.Exit(3)
		}
	}
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "motif > ",
		AutoComplete: intp.completer(),
	})
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	intp.repl = repl
	defer repl.Close()
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object. It holds the view tree currently loaded
// and a virtual clock for playing actions.
type Intp struct {
	repl     *readline.Instance
	cmds     *trie.Trie
	viewport dimen.Vec2
	sheets   []*style.Stylesheet
	doc      *style.Document
	disp     *display.Display
	canvas   *snapshot.Canvas
	clock    time.Time
}

// epoch is the start of the virtual clock. It must not be the zero time.
var epoch = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewIntp creates an interpreter for a viewport size.
func NewIntp(viewport dimen.Vec2) *Intp {
	intp := &Intp{viewport: viewport, clock: epoch}
	intp.cmds = trie.New()
	for _, c := range commands {
		intp.cmds.Add(c.name, c)
	}
	return intp
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if err != nil { // io.EOF
			break
		}
		quit, err := intp.Execute(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Debugf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Execute interprets one command line. It returns true if the user wants
// to quit.
func (intp *Intp) Execute(line string) (bool, error) {
	words := strings.Fields(line)
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return false, nil
	}
	cmd, err := intp.lookup(words[0])
	if err != nil {
		return false, err
	}
	if cmd.needDoc && intp.doc == nil {
		return false, core.Error(core.EMISSING, "no views loaded, use 'load' or 'parse' first")
	}
	args := words[1:]
	if len(args) < cmd.minArgs {
		return false, core.Error(core.EMISSING, "usage: %s %s", cmd.name, cmd.args)
	}
	tracer().Debugf("command %s %v", cmd.name, args)
	return cmd.run(intp, args)
}

// Script executes commands line by line from r. It stops at the first
// error or at a quit command.
func (intp *Intp) Script(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for i, line := range strings.Split(string(data), "\n") {
		quit, err := intp.Execute(line)
		if err != nil {
			return core.WrapError(err, core.Code(err), "line %d: %s", i+1, core.UserMessage(err))
		}
		if quit {
			break
		}
	}
	return nil
}
