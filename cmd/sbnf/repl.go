package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/sbnf/engine"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/pterm/pterm"
)

// repl is the interactive mode of sbnf.
type repl struct {
	g    *grammar.Grammar
	opts options
}

func newREPL(g *grammar.Grammar, opts options) *repl {
	return &repl{g: g, opts: opts}
}

func (r *repl) loop() error {
	rl, err := readline.New("sbnf> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	pterm.Info.Println("Welcome to SBNF, grammar " + r.g.Name)
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if quit := r.eval(line); quit {
			break
		}
	}
	println("Good bye!")
	return nil
}

// eval parses a line of input or executes a command. It returns true
// if the user wants to quit.
func (r *repl) eval(line string) bool {
	if strings.HasPrefix(line, ":") {
		return r.command(strings.Fields(line[1:]))
	}
	p := engine.NewParser(r.g, r.opts.parserOptions()...)
	ok, err := p.ParseString(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	if !ok {
		pterm.Error.Println(p.Diagnostics().Report())
		return false
	}
	p.Result().Dump()
	out, err := render(p.Result(), r.g, r.opts)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	fmt.Print(out)
	return false
}

func (r *repl) command(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "quit", "q":
		return true
	case "grammar":
		fmt.Print(r.g.String())
	case "xml":
		r.opts.xml = !r.opts.xml
		pterm.Info.Printf("XML output is %v\n", r.opts.xml)
	case "start":
		if len(args) < 2 {
			r.opts.start = ""
			pterm.Info.Println("start rule reset to " + r.g.Start().Name)
			return false
		}
		if _, ok := r.g.Rule(args[1]); !ok {
			pterm.Error.Printf("no rule %q in grammar\n", args[1])
			return false
		}
		r.opts.start = args[1]
	default:
		pterm.Error.Printf("unknown command :%s\n", args[0])
	}
	return false
}
