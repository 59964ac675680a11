package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mcncl/dsa/internal/analyzer"
	"github.com/mcncl/dsa/internal/config"
	"github.com/mcncl/dsa/internal/errors"
	"github.com/mcncl/dsa/internal/formatter"
	"github.com/mcncl/dsa/internal/generator"
	"github.com/mcncl/dsa/internal/harness"
	"github.com/mcncl/dsa/internal/models"
	"github.com/mcncl/dsa/internal/parser"
	"github.com/mcncl/dsa/internal/solutions"
)

// Version information
const (
	Version = "0.1.0"
)

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitFailures = 2
)

// CLI defines the command-line interface
type CLI struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .dsa.yml." type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Run  RunCmd  `cmd:"" default:"withargs" help:"Run a solution against a JSON fixture."`
	List ListCmd `cmd:"" help:"List registered solutions."`
	New  NewCmd  `cmd:"" help:"Write a solution stub whose signature is inferred from a fixture."`
}

// Context holds the runtime context passed to every command
type Context struct {
	Config *config.Config
	Logger *zap.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunCmd runs one solution against one fixture
type RunCmd struct {
	Fixture  string `arg:"" help:"Fixture file, or - to read it from stdin."`
	Solution string `help:"Registered solution name. Defaults to the fixture's base name." short:"s"`
	Strict   bool   `help:"Exit with status 2 when any case fails."`
	Colour   string `help:"Colour verdicts: auto, always or never." placeholder:"MODE"`
}

// ListCmd lists registered solutions
type ListCmd struct {
	Category string `arg:"" optional:"" help:"Only list this category."`
}

// NewCmd writes a solution stub
type NewCmd struct {
	Category string `arg:"" help:"Solution category, e.g. arrays."`
	Name     string `arg:"" help:"Solution name, e.g. two-sum."`
	Fixture  string `help:"Fixture to infer the signature from. Defaults to <tests_dir>/<category>/<Name>.json." type:"path"`
	Output   string `help:"File to write the stub to. Defaults to stub.dir, or stdout when that is unset." short:"o" type:"path"`
	Force    bool   `help:"Overwrite an existing output file." short:"f"`
}

// failuresError reports a strict run with failing cases.
type failuresError struct {
	summary harness.Summary
}

func (e *failuresError) Error() string {
	return fmt.Sprintf("%d of %d test cases failed", e.summary.Failed(), e.summary.Total)
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("dsa"),
		kong.Description("Run algorithm puzzle solutions against JSON fixtures."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": "dsa version " + Version},
	)
}

func main() {
	var cli CLI
	p, err := newParser(&cli, os.Stdout, os.Stderr)
	if err != nil {
		panic(err)
	}

	kctx, err := p.Parse(os.Args[1:])
	if err != nil {
		p.FatalIfErrorf(err)
	}

	os.Exit(run(kctx, &cli, os.Stdin, os.Stdout, os.Stderr))
}

// run loads configuration, builds the logger and executes the selected
// command, returning the process exit code.
func run(kctx *kong.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfigWithCLI(cli.Config, cli.Run.Colour, cli.Run.Strict, cli.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), err)))
		return exitError
	}

	logger, err := newLogger(cfg.Dev.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logger: %v\n", err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting", zap.String("command", kctx.Command()), zap.String("tests_dir", cfg.TestsDir))

	err = kctx.Run(&Context{
		Config: cfg,
		Logger: logger,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err == nil {
		return exitOK
	}

	var failures *failuresError
	if stderrors.As(err, &failures) {
		fmt.Fprintf(stderr, "%s\n", failures.Error())
		return exitFailures
	}

	logger.Debug("command failed", zap.Error(err))
	fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(stderr, "\nFor help, run: dsa --help\n")
	return exitError
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Run executes the run command
func (r *RunCmd) Run(ctx *Context) error {
	name := r.Solution
	if name == "" {
		if r.Fixture == "-" {
			return errors.NewConfigError("--solution is required when the fixture is read from stdin", errors.ErrUnknownSolution)
		}
		name = strings.TrimSuffix(filepath.Base(r.Fixture), filepath.Ext(r.Fixture))
	}

	solution, err := solutions.Lookup(name)
	if err != nil {
		return err
	}

	colour, _ := harness.ParseColourMode(ctx.Config.Colour)
	h, err := harness.New(solution.Fn,
		harness.WithLogger(ctx.Logger.With(zap.String("solution", solution.Name))),
		harness.WithOutput(ctx.Stdout),
		harness.WithColour(colour),
		harness.WithMaxInputWidth(ctx.Config.Trace.MaxInputWidth),
	)
	if err != nil {
		return err
	}

	if r.Fixture == "-" {
		doc, err := readStdin(ctx.Stdin)
		if err != nil {
			return err
		}
		err = h.LoadValue(doc)
	} else {
		err = h.Load(r.Fixture)
	}
	if err != nil {
		return err
	}

	summary, err := h.Run()
	if err != nil {
		return err
	}

	ctx.Logger.Debug("run finished",
		zap.String("solution", solution.Name),
		zap.Int("passed", summary.Passed),
		zap.Int("total", summary.Total),
	)
	if ctx.Config.Strict && summary.Failed() > 0 {
		return &failuresError{summary: summary}
	}
	return nil
}

// readStdin parses a fixture piped on stdin
func readStdin(stdin io.Reader) (models.Value, error) {
	if f, ok := stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return models.Value{}, errors.NewIOError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			return models.Value{}, errors.NewIOError("no fixture piped on stdin", errors.ErrEmptyInput)
		}
	}
	return parser.Parse(stdin)
}

// Run executes the list command
func (l *ListCmd) Run(ctx *Context) error {
	categories := solutions.Categories()
	if l.Category != "" {
		category := ctx.Config.ResolveCategory(l.Category)
		if len(solutions.InCategory(category)) == 0 {
			return errors.NewConfigError(
				fmt.Sprintf("unknown category %q, available: %s", l.Category, strings.Join(categories, ", ")),
				nil,
			)
		}
		categories = []string{category}
	}

	for _, category := range categories {
		if _, err := fmt.Fprintf(ctx.Stdout, "%s:\n", category); err != nil {
			return errors.NewOutputError("failed to write listing", err)
		}
		for _, s := range solutions.InCategory(category) {
			line := "  " + s.Name
			if _, err := os.Stat(s.Fixture(ctx.Config.TestsDir)); err != nil {
				line += " (no fixture)"
			}
			if _, err := fmt.Fprintln(ctx.Stdout, line); err != nil {
				return errors.NewOutputError("failed to write listing", err)
			}
		}
	}
	return nil
}

// Run executes the new command
func (n *NewCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	category := cfg.ResolveCategory(n.Category)
	name := cfg.SolutionName(n.Name)

	fixture := n.Fixture
	if fixture == "" {
		fixture = cfg.FixturePath(category, name)
	}

	doc, err := parser.ParseFile(fixture)
	if err != nil {
		return err
	}
	sig, err := analyzer.NewAnalyzerWithConfig(cfg).Infer(doc)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("signature inferred", zap.String("fixture", fixture), zap.Stringer("signature", sig))

	code, err := generator.GenerateStub(generator.StubSpec{
		Package:   cfg.Stub.Package,
		Category:  category,
		Name:      name,
		Signature: sig,
		Fixture:   filepath.ToSlash(fixture),
	})
	if err != nil {
		return errors.NewConfigError("failed to generate solution stub", err)
	}

	if cfg.Stub.Format {
		code, err = formatter.Format(code)
		if err != nil {
			return errors.NewOutputError("failed to format solution stub", err)
		}
	}

	output := n.Output
	if output == "" {
		output = cfg.StubPath(category, name)
	}
	return writeOutput(ctx, output, n.Force, code)
}

// writeOutput writes code to file or stdout
func writeOutput(ctx *Context, path string, force bool, code string) error {
	if path == "" {
		if _, err := fmt.Fprint(ctx.Stdout, code); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.NewOutputError(fmt.Sprintf("'%s' already exists, use --force to overwrite it", path), nil)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create directory for '%s'", path), err)
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	fmt.Fprintf(ctx.Stderr, "Solution stub written to %s\n", path)
	return nil
}
