package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/knadh/koanf/providers/file"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"github.com/npillmayer/grammatch/grammar"
	"github.com/npillmayer/grammatch/match"
	"github.com/npillmayer/grammatch/ruletext"
)

// Exit codes
const (
	exitOK        = 0
	exitUsage     = 1
	exitLoadError = 2
	exitEvalError = 3
)

// replacements collects -replace flags.
type replacements []string

func (r *replacements) String() string {
	return strings.Join(*r, "; ")
}

func (r *replacements) Set(line string) error {
	*r = append(*r, line)
	return nil
}

type options struct {
	start       grammar.RuleID
	replace     replacements
	workers     int
	dump        bool
	verbose     bool
	interactive bool
}

func main() {
	initDisplay()
	opts := options{}
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	configf := flag.String("config", "", "Configuration file (NestedText)")
	start := flag.Int("start", 0, "Start rule")
	flag.Var(&opts.replace, "replace", "Replace a rule after loading, e.g. \"8: 42 | 42 8\"")
	flag.IntVar(&opts.workers, "workers", 0, "Number of lines checked in parallel")
	flag.BoolVar(&opts.dump, "dump", false, "Print the start rule as a tree")
	flag.BoolVar(&opts.verbose, "v", false, "Print the result for every line")
	flag.BoolVar(&opts.interactive, "i", false, "Check lines entered at the prompt")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: grammatch [flags] file...")
		flag.PrintDefaults()
		os.Exit(exitUsage)
	}
	if err := initConfig(*configf, *tlevel); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitUsage)
	}
	opts.start = grammar.RuleID(*start)
	if opts.workers == 0 {
		opts.workers = gconf.GetInt("workers")
	}
	exit := exitOK
	var last *match.Recognizer
	for _, path := range flag.Args() {
		rec, code := run(path, opts)
		if code > exit {
			exit = code
		}
		if rec != nil {
			last = rec
		}
	}
	if opts.interactive && last != nil {
		if err := interactive(last); err != nil {
			pterm.Error.Println(err.Error())
			exit = exitUsage
		}
	}
	os.Exit(exit)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// initConfig sets up the global configuration and tracing. A trace level
// given on the command line overrides the configured root level.
func initConfig(configFile string, tlevel string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, "grammatch", []string{"nt"})
	conf.InitDefaults()
	if configFile != "" {
		if err := conf.Koanf().Load(file.Provider(configFile), koanfadapter.Parser()); err != nil {
			return fmt.Errorf("configuration %s: %w", configFile, err)
		}
	}
	if tlevel != "" {
		conf.Set("tracelevel.root", tlevel)
		conf.Set("tracelevel.grammatch.cli", tlevel)
	}
	gconf.Initialize(conf)
	if err := trace2go.ConfigureRoot(conf, "tracelevel"); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if tlevel != "" {
		tracer().SetTraceLevel(tracing.TraceLevelFromString(tlevel))
	}
	return nil
}

// run loads a rule file and checks all of its candidate lines.
func run(path string, opts options) (*match.Recognizer, int) {
	src, err := load(path, opts)
	if err != nil {
		pterm.Error.Println(fmt.Sprintf("%s: %v", path, err))
		return nil, exitLoadError
	}
	src.Table.Dump()
	rec, err := match.NewRecognizer(src.Table, src.Start)
	if err != nil {
		pterm.Error.Println(fmt.Sprintf("%s: %v", path, err))
		return nil, exitLoadError
	}
	if opts.dump {
		pterm.Println(fmt.Sprintf("rule %d", src.Start))
		if err := pterm.DefaultTree.WithRoot(ruleTree(src.Table, src.Start)).Render(); err != nil {
			tracer().Errorf("cannot render rule tree: %v", err)
		}
	}
	report, err := match.Evaluate(context.Background(), rec, src.Candidates, opts.workers)
	if err != nil {
		pterm.Error.Println(fmt.Sprintf("%s: %v", path, err))
		return rec, exitEvalError
	}
	if opts.verbose {
		for i, line := range src.Candidates {
			pterm.Println(fmt.Sprintf("%5v  %s", report.Results[i], line))
		}
	}
	pterm.Info.Println(fmt.Sprintf("%s: %d of %d lines accepted", path, report.Accepted,
		len(src.Candidates)))
	return rec, exitOK
}

func load(path string, opts options) (*ruletext.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lopts := []ruletext.Option{ruletext.Start(opts.start), ruletext.Name(path)}
	for _, line := range opts.replace {
		lopts = append(lopts, ruletext.Override(line))
	}
	return ruletext.Load(f, lopts...)
}

// interactive checks lines entered by the user until EOF or ':quit'.
func interactive(rec *match.Recognizer) error {
	repl, err := readline.New("grammatch> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		switch line {
		case ":quit":
			return nil
		case ":dump":
			table := rec.Matcher().Table()
			pterm.DefaultTree.WithRoot(ruleTree(table, rec.Start())).Render()
			continue
		}
		d, err := rec.Derive(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		switch {
		case !d.Accepted:
			pterm.Info.Println("rejected")
		case rec.Pair() != nil:
			pterm.Info.Println(fmt.Sprintf("accepted: %d × %d, %d × %d",
				d.N(), rec.Pair().A, d.M(), rec.Pair().B))
		default:
			pterm.Info.Println("accepted")
		}
	}
	println("Good bye!")
	return nil
}
