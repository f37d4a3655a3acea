// Package main provides the entry point for the Zircon compiler front end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/zircon-lang/zircon/internal/arena"
	"github.com/zircon-lang/zircon/internal/ast"
	"github.com/zircon-lang/zircon/internal/cli"
	"github.com/zircon-lang/zircon/internal/diagnostics"
	"github.com/zircon-lang/zircon/internal/lexer"
	"github.com/zircon-lang/zircon/internal/modules"
	"github.com/zircon-lang/zircon/internal/parser"
	"github.com/zircon-lang/zircon/internal/source"
	"github.com/zircon-lang/zircon/internal/watch"
)

type options struct {
	debugLexer bool
	parseAST   bool
	watchMode  bool

	modulePaths []string

	logger   *cli.Logger
	renderer *diagnostics.Renderer
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, string(os.PathListSeparator)) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		showHelp    = flag.Bool("help", false, "show help information")
		debugLexer  = flag.Bool("debug-lexer", false, "dump the token stream before parsing")
		parseAST    = flag.Bool("parse-ast", false, "print the parsed AST")
		watchMode   = flag.Bool("watch", false, "re-run on source file changes")
		verbose     = flag.Bool("verbose", false, "enable verbose logging")
		debugMode   = flag.Bool("debug", false, "enable debug logging")
		colorFlag   = flag.String("color", "auto", "diagnostic colors: auto|on|off")
		modulePaths stringList
	)
	flag.Var(&modulePaths, "module-path", "extra import search root (repeatable)")
	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		cli.PrintVersion(os.Stdout, "zircon-compiler")
		return
	}
	if *showHelp {
		showUsage()
		return
	}

	color, err := diagnostics.ParseColorPolicy(*colorFlag)
	if err != nil {
		cli.ExitWithError("%v", err)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		showUsage()
		os.Exit(1)
	}

	opts := &options{
		debugLexer:  *debugLexer,
		parseAST:    *parseAST,
		watchMode:   *watchMode,
		modulePaths: modulePaths,
		logger:      cli.NewLogger(*verbose, *debugMode),
		renderer:    diagnostics.NewRenderer(os.Stderr, color),
	}

	inputFile := args[0]
	if opts.watchMode {
		if err := watchLoop(opts, inputFile); err != nil {
			cli.ExitWithError("%v", err)
		}
		return
	}

	if err := compileFile(opts, inputFile); err != nil {
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("Zircon Compiler")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    zircon-compiler [OPTIONS] <INPUT_FILE>")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    --version        Show version information")
	fmt.Println("    --help           Show this help message")
	fmt.Println("    --debug-lexer    Dump the token stream before parsing")
	fmt.Println("    --parse-ast      Print the parsed AST")
	fmt.Println("    --watch          Re-run on source file changes")
	fmt.Println("    --module-path    Extra import search root (repeatable)")
	fmt.Println("    --color          Diagnostic colors: auto|on|off")
	fmt.Println("    --verbose        Enable verbose logging")
	fmt.Println("    --debug          Enable debug logging")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("    zircon-compiler hello.zr")
	fmt.Println("    zircon-compiler --parse-ast hello.zr")
	fmt.Println("    zircon-compiler --watch --parse-ast hello.zr")
}

// compileFile runs the front end over one file: manifest gate, lex, parse,
// import resolution, and the requested dumps. Faults are rendered to stderr
// and reported as a non-nil error.
func compileFile(opts *options, filename string) error {
	unit, err := source.Load(filename)
	if err != nil {
		opts.logger.Error("%v", err)
		return err
	}

	projectDir := filepath.Dir(filename)
	manifest, found, err := modules.FindManifest(projectDir)
	if err != nil {
		opts.logger.Error("%v", err)
		return err
	}
	if found {
		opts.logger.Debug("loaded manifest from %s", filepath.Join(projectDir, modules.ManifestName))
		if err := manifest.CheckCompiler(cli.Version); err != nil {
			opts.logger.Error("%v", err)
			return err
		}
	}

	opts.logger.Info("compiling %s", filepath.Base(filename))

	tokens, err := lexer.Tokenize(unit)
	if err != nil {
		renderError(opts, err, unit)
		return err
	}
	if opts.debugLexer {
		dumpTokens(unit, tokens)
	}

	pool := arena.NewArena()
	root, err := parser.Parse(unit, tokens, pool)
	if err != nil {
		renderError(opts, err, unit)
		return err
	}
	opts.logger.Debug("parsed %d top-level declaration(s), %d arena allocation(s)",
		len(root.Decls), pool.Allocations())

	resolver := modules.NewResolver(projectDir, manifest, opts.modulePaths)
	for _, decl := range root.Decls {
		use, ok := decl.(*ast.Use)
		if !ok {
			continue
		}
		resolved, err := resolver.Resolve(use.Path)
		if err != nil {
			d := diagnostics.New(unit.Path, use.Line, use.Column, "%v", err)
			renderError(opts, d, unit)
			return d
		}
		opts.logger.Debug("use %q -> %s", use.Path, resolved)
	}

	if opts.parseAST {
		ast.Fprint(os.Stdout, root)
	}
	return nil
}

// renderError renders positioned diagnostics with source context and falls
// back to a plain message for everything else.
func renderError(opts *options, err error, unit *source.Unit) {
	var d *diagnostics.Diagnostic
	if errors.As(err, &d) {
		opts.renderer.Render(d, unit)
		return
	}
	opts.logger.Error("%v", err)
}

func dumpTokens(unit *source.Unit, tokens []lexer.Token) {
	fmt.Println("Token stream:")
	fmt.Println(strings.Repeat("=", 50))
	for _, tok := range tokens {
		fmt.Printf("Token: %-15s | Value: %-20q | Position: %d:%d\n",
			tok.Kind, unit.Code[tok.Start:tok.End], tok.Line, tok.Column)
	}
	fmt.Println(strings.Repeat("=", 50))
}

// watchLoop compiles once, then recompiles after every change to the input
// file until interrupted.
func watchLoop(opts *options, filename string) error {
	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filename); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	compileFile(opts, filename)
	opts.logger.Info("watching %s", filename)

	err = w.Run(ctx, func(path string) {
		opts.logger.Info("%s changed, recompiling", filepath.Base(path))
		compileFile(opts, filename)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
