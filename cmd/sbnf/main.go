package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/sbnf/engine"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// options holds the settings from the command line.
type options struct {
	start  string
	xml    bool
	spans  bool
	jobs   int64
	trace  string
	noSkip bool
}

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	opts := options{}
	flag.StringVar(&opts.trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	flag.StringVar(&opts.start, "start", "", "Start rule (default from grammar)")
	flag.BoolVar(&opts.xml, "xml", false, "Print results as XML")
	flag.BoolVar(&opts.spans, "spans", false, "Include input spans in XML output")
	flag.BoolVar(&opts.noSkip, "noskip", false, "Do not skip leading whitespace")
	flag.Int64Var(&opts.jobs, "j", 4, "Number of input files parsed in parallel")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(opts.trace))
	for _, key := range []string{"sbnf.grammar", "sbnf.engine", "sbnf.result", "sbnf.markup"} {
		tracing.Select(key).SetTraceLevel(traceLevel(opts.trace))
	}
	if flag.NArg() < 1 {
		pterm.Error.Println("usage: sbnf [flags] grammar.sbnf [input …]")
		os.Exit(2)
	}
	g, err := loadGrammar(flag.Arg(0))
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().Infof("grammar %s has %d rules", g.Name, g.Size())
	g.Dump() // only visible in debug mode
	if flag.NArg() == 1 {
		if err := newREPL(g, opts).loop(); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
		return
	}
	if ok := parseFiles(context.Background(), g, flag.Args()[1:], opts); !ok {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadGrammar(filename string) (*grammar.Grammar, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	name := filename
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".sbnf")
	return grammar.Load(name, string(src))
}

func (opts options) parserOptions() []engine.Option {
	var popts []engine.Option
	if opts.start != "" {
		popts = append(popts, engine.StartAt(opts.start))
	}
	if opts.noSkip {
		popts = append(popts, engine.SkipLeading(false))
	}
	return popts
}

// outcome is the result of parsing one input file.
type outcome struct {
	filename string
	output   string
	failure  string
}

// parseFiles parses input files concurrently, with at most opts.jobs parsers
// running at a time. Grammars are immutable and shared between parsers.
// Outcomes are printed in the order of filenames.
func parseFiles(ctx context.Context, g *grammar.Grammar, filenames []string, opts options) bool {
	outcomes := make([]outcome, len(filenames))
	jobs := opts.jobs
	if jobs < 1 {
		jobs = 1
	}
	sem := semaphore.NewWeighted(jobs)
	group, ctx := errgroup.WithContext(ctx)
	for i, filename := range filenames {
		i, filename := i, filename
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			out, err := parseFile(g, filename, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	ok := true
	for _, out := range outcomes {
		pterm.Info.Println(out.filename)
		if out.failure != "" {
			ok = false
			pterm.Error.Println(out.failure)
			continue
		}
		fmt.Print(out.output)
	}
	return ok
}

func parseFile(g *grammar.Grammar, filename string, opts options) (outcome, error) {
	input, err := os.ReadFile(filename)
	if err != nil {
		return outcome{}, err
	}
	p := engine.NewParser(g, opts.parserOptions()...)
	ok, err := p.Parse(input)
	if err != nil {
		return outcome{}, err
	}
	out := outcome{filename: filename}
	if !ok {
		out.failure = p.Diagnostics().Report()
		return out, nil
	}
	tracer().Infof("%s: %d result entries", filename, p.Result().Len())
	out.output, err = render(p.Result(), g, opts)
	return out, err
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
