package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/compiler"
	"github.com/npillmayer/kibt/library"
	"github.com/npillmayer/kibt/render"
	"github.com/npillmayer/kibt/vm"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

const help = `Usage: kibt [OPTION]... SOURCE...
Image scripting.
  -o, --output [x]  save output image to x (default=output.bmp)
      --one         outputs a single execution to standard out
  -d, --size [x] [y]
                    set canvas size to width=x and height=y
                    (default=64 64)
      --repl        start an interactive session
      --trace [l]   set trace level to l [Debug|Info|Error]
      --help        display this help and exit
      --version     display version information and exit
`

const version = `kibt (goreutils) 0.1
Copyright (C) 2025 Everyone, except Author.
License GLWT
Everyone is permitted to copy, distribute, modify, merge, sell, publish,
sublicense or whatever they want with this software but at their OWN RISK
<https://github.com/me-shaon/GLWTPL/blob/master/LICENSE>
`

// defaultOutput is the image file written if no --output is given.
const defaultOutput = "output.bmp"

// tracerKeys lists the tracers the --trace level applies to.
var tracerKeys = []string{
	"kibt.core", "kibt.lexer", "kibt.compiler", "kibt.vm",
	"kibt.library", "kibt.render", "kibt.cmd",
}

type config struct {
	help    bool
	version bool
	one     bool
	repl    bool
	output  string
	trace   string
	size    canvasSize
	sources []string
}

type canvasSize struct {
	w, h int
}

func (s *canvasSize) String() string {
	return fmt.Sprintf("%dx%d", s.w, s.h)
}

func (s *canvasSize) Set(v string) error {
	w, h, ok := strings.Cut(v, "x")
	if !ok {
		return errors.New("size: missing height parameter")
	}
	var err error
	if s.w, err = strconv.Atoi(w); err != nil || s.w <= 0 {
		return errors.New("size: unparsable width parameter")
	}
	if s.h, err = strconv.Atoi(h); err != nil || s.h <= 0 {
		return errors.New("size: unparsable height parameter")
	}
	return nil
}

// normalizeArgs rewrites the two-valued size option "-d W H" into a form
// package flag understands: "-size=WxH".
func normalizeArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-d", "--d", "-size", "--size":
			if i+1 >= len(args) {
				return nil, errors.New("size: missing width parameter")
			}
			if i+2 >= len(args) {
				return nil, errors.New("size: missing height parameter")
			}
			out = append(out, "-size="+args[i+1]+"x"+args[i+2])
			i += 2
		case "--":
			return append(out, args[i:]...), nil
		default:
			out = append(out, args[i])
		}
	}
	return out, nil
}

// parseArgs parses the command line. Options and sources may be mixed; every
// argument following "--" is a source.
func parseArgs(args []string) (*config, error) {
	cfg := &config{
		output: defaultOutput,
		trace:  "Error",
		size:   canvasSize{w: render.DefaultSize, h: render.DefaultSize},
	}
	fs := flag.NewFlagSet("kibt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.help, "help", false, "display this help and exit")
	fs.BoolVar(&cfg.version, "version", false, "display version information and exit")
	fs.BoolVar(&cfg.one, "one", false, "outputs a single execution to standard out")
	fs.BoolVar(&cfg.repl, "repl", false, "start an interactive session")
	fs.StringVar(&cfg.output, "output", defaultOutput, "save output image to file")
	fs.StringVar(&cfg.output, "o", defaultOutput, "save output image to file")
	fs.StringVar(&cfg.trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	fs.Var(&cfg.size, "size", "canvas size")
	fs.Var(&cfg.size, "d", "canvas size")
	rest, err := normalizeArgs(args)
	if err != nil {
		return nil, err
	}
	for len(rest) > 0 {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				cfg.help = true
				return cfg, nil
			}
			return nil, err
		}
		consumed := len(rest) - fs.NArg()
		if consumed > 0 && rest[consumed-1] == "--" {
			cfg.sources = append(cfg.sources, fs.Args()...)
			break
		}
		if fs.NArg() == 0 {
			break
		}
		cfg.sources = append(cfg.sources, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	return cfg, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args)
	if err != nil {
		return fail(stderr, err)
	}
	if cfg.help {
		fmt.Fprint(stdout, help)
		return 0
	}
	if cfg.version {
		fmt.Fprint(stdout, version)
		return 0
	}
	setupTracing(cfg.trace)
	if cfg.repl {
		return runREPL(cfg)
	}
	if len(cfg.sources) == 0 {
		return fail(stderr, errors.New("missing source"))
	}
	if cfg.one {
		err = runOne(context.Background(), cfg.sources, stdout)
	} else {
		err = runImage(context.Background(), cfg)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return 0
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "kibt: %v\n", err)
	fmt.Fprintln(stderr, "Try 'kibt --help' for more information.")
	return 1
}

func setupTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	for _, key := range tracerKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	tracer().Infof("Trace level is %s", level)
}

// runOne runs every source once against the standalone table and prints the
// results.
func runOne(ctx context.Context, sources []string, stdout io.Writer) error {
	lib := library.StandaloneTable[*library.Console]()
	console := &library.Console{Out: stdout}
	for _, src := range sources {
		v, err := evaluate(ctx, src, lib, console)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, kibt.Display(v))
	}
	return nil
}

func evaluate(ctx context.Context, src string, lib *kibt.Library[*library.Console],
	console *library.Console) (kibt.Value, error) {
	//
	code, err := compiler.Compile(src, lib)
	if err != nil {
		return nil, err
	}
	return vm.New(code, lib, console).Run(ctx)
}

// runImage renders all sources onto a canvas and saves it.
func runImage(ctx context.Context, cfg *config) error {
	canvas, err := render.NewCanvas(cfg.size.w, cfg.size.h)
	if err != nil {
		return err
	}
	r := render.NewRenderer()
	if err := r.Render(ctx, canvas, cfg.sources...); err != nil {
		return err
	}
	return canvas.SaveBMP(cfg.output)
}
