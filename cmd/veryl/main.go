// Command veryl is the CLI driver for the compiler front end: build, check,
// and fmt subcommands over a project's sources; build also reads the
// project's veryl.yaml manifest (spec.md §6).
// Grounded on the teacher's cmd/funxy/main.go (raw os.Args subcommand
// dispatch, no flag-parsing library) and cmd/lsp/main.go (the lsp
// subcommand launching a stdio server).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/veryl-lang/veryl-go/internal/analyzer"
	"github.com/veryl-lang/veryl-go/internal/cache"
	"github.com/veryl-lang/veryl-go/internal/config"
	"github.com/veryl-lang/veryl-go/internal/diagnostics"
	"github.com/veryl-lang/veryl-go/internal/formatter"
	"github.com/veryl-lang/veryl-go/internal/humanreport"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/logging"
	"github.com/veryl-lang/veryl-go/internal/lsp"
	"github.com/veryl-lang/veryl-go/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		os.Exit(runBuild(os.Args[2:]))
	case "check":
		os.Exit(runCheck(os.Args[2:]))
	case "fmt":
		os.Exit(runFmt(os.Args[2:]))
	case "lsp":
		runLSP()
	case "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: veryl <build|check|fmt|lsp> [args...]")
	fmt.Fprintln(os.Stderr, "  build            analyze sources and write the project file list")
	fmt.Fprintln(os.Stderr, "  check            parse and analyze sources without emitting output")
	fmt.Fprintln(os.Stderr, "  fmt [--check]    reformat sources in place, or verify they're already formatted")
	fmt.Fprintln(os.Stderr, "  lsp              run the language server over stdio")
}

// newRunID tags one lsp session's log lines for correlation when an
// editor restarts the server repeatedly within the same log file.
func newRunID() string { return uuid.New().String() }

func loadManifest() (*config.Config, error) {
	return config.Load("veryl.yaml")
}

func discoverSources(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var files []string
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".veryl" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// analyzeFile runs the parser and analyzer over one source file, returning
// its accumulated diagnostics. Parse errors short-circuit analysis, per
// spec.md §4.4 ("a syntax error in a file halts analysis of that file").
func analyzeFile(path string) (string, []*diagnostics.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(data)

	in := interner.New()
	p := parser.New(src, in)
	root := p.ParseVeryl()
	if errs := p.Errors(); len(errs) > 0 {
		return src, errs, nil
	}

	res := analyzer.New(in).Run(root)
	return src, res.Diagnostics, nil
}

func runCheck(args []string) int {
	files, err := discoverSources(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	start := time.Now()
	errCount := 0
	useColor := diagnostics.ShouldColor()

	for _, path := range files {
		src, diags, err := analyzeFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			errCount++
			continue
		}
		if len(diags) > 0 {
			fmt.Fprintln(os.Stderr, diagnostics.Render(diags, path, src, useColor))
			errCount += len(diags)
		}
	}

	fmt.Fprintln(os.Stderr, humanreport.Summary{
		FilesProcessed: len(files),
		Errors:         errCount,
		Elapsed:        time.Since(start),
	}.Line("checked"))

	if errCount > 0 {
		return 1
	}
	return 0
}

func runBuild(args []string) int {
	cfg, err := loadManifest()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	files, err := discoverSources(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	start := time.Now()
	errCount := 0
	useColor := diagnostics.ShouldColor()
	var outputs []string

	for _, path := range files {
		src, diags, err := analyzeFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			errCount++
			continue
		}
		if len(diags) > 0 {
			fmt.Fprintln(os.Stderr, diagnostics.Render(diags, path, src, useColor))
			errCount += len(diags)
			continue
		}
		outputs = append(outputs, path)
	}

	if errCount == 0 {
		if err := cfg.WriteFilelist(outputs); err != nil {
			fmt.Fprintf(os.Stderr, "error writing file list: %v\n", err)
			return 1
		}
	}

	fmt.Fprintln(os.Stderr, humanreport.Summary{
		FilesProcessed: len(files),
		Errors:         errCount,
		Elapsed:        time.Since(start),
	}.Line("built"))

	if errCount > 0 {
		return 1
	}
	return 0
}

func runFmt(args []string) int {
	checkOnly := false
	var files []string
	for _, a := range args {
		if a == "--check" {
			checkOnly = true
			continue
		}
		files = append(files, a)
	}

	sources, err := discoverSources(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	start := time.Now()
	errCount := 0
	unformatted := 0

	for _, path := range sources {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
			errCount++
			continue
		}
		out, err := formatter.Format(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error formatting %s: %v\n", path, err)
			errCount++
			continue
		}
		if out == string(data) {
			continue
		}
		unformatted++
		if checkOnly {
			fmt.Fprintf(os.Stderr, "would reformat %s\n", path)
			continue
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", path, err)
			errCount++
		}
	}

	verb := "formatted"
	if checkOnly {
		verb = "checked formatting of"
	}
	fmt.Fprintln(os.Stderr, humanreport.Summary{
		FilesProcessed: len(sources),
		Errors:         errCount,
		Elapsed:        time.Since(start),
	}.Line(verb))

	if checkOnly && unformatted > 0 {
		return 1
	}
	if errCount > 0 {
		return 1
	}
	return 0
}

func runLSP() {
	cacheDir, err := os.UserCacheDir()
	path := ":memory:"
	if err == nil {
		path = filepath.Join(cacheDir, "veryl-lsp.db")
	}
	c, err := cache.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: analysis cache unavailable (%v), running uncached\n", err)
		c = nil
	} else {
		defer c.Close()
	}

	logging.Default().Info("starting lsp session", logging.F("run_id", newRunID()))
	lsp.New(os.Stdout, c).Start()
}
