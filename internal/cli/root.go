// Package cli wires configuration, enumeration, output and the TUI into
// the pdfscout command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/pdfscout/internal/config"
	"github.com/lumipallolabs/pdfscout/internal/core"
	"github.com/lumipallolabs/pdfscout/internal/detect"
	"github.com/lumipallolabs/pdfscout/internal/enumerator"
	"github.com/lumipallolabs/pdfscout/internal/logging"
	"github.com/lumipallolabs/pdfscout/internal/model"
	"github.com/lumipallolabs/pdfscout/internal/output"
	"github.com/lumipallolabs/pdfscout/internal/scanner"
	"github.com/lumipallolabs/pdfscout/internal/ui"
)

const longHelp = `pdfscout finds PDF documents under one or more root directories.

Roots come from the arguments, the config file (pdfscout.yaml) or
PDFSCOUT_ROOTS. Each PDF is printed once, even when roots overlap or
symlinks lead back into a tree that was already walked. Roots that do not
exist or are not readable directories are reported and the remaining
roots are still enumerated.

Exit Codes:
  0  - Success (also when no PDFs were found)
  1  - General error
  2  - Invalid configuration, flags or roots`

// flags holds command line values; settings only override the
// configuration when their flag was given
type flags struct {
	configPath     string
	detect         string
	followSymlinks bool
	oneFileSystem  bool
	maxDepth       int
	exclude        []string
	parallel       bool
	fastWalk       bool
	workers        int
	format         string
	canonical      bool
	stream         bool
	tui            bool
	verbose        bool
}

// NewRootCommand builds the pdfscout command tree
func NewRootCommand() *cobra.Command {
	var f flags
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:           "pdfscout [flags] [root...]",
		Short:         "Find PDF documents under directory trees",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (default ./"+config.FileName+" when present)")
	fs.StringVarP(&f.detect, "detect", "d", defaults.Detect, "PDF detection: extension, magic, content or strict")
	fs.BoolVar(&f.followSymlinks, "follow-symlinks", defaults.FollowSymlinks, "follow symbolic links")
	fs.BoolVar(&f.oneFileSystem, "one-file-system", defaults.OneFileSystem, "do not cross file system boundaries")
	fs.IntVar(&f.maxDepth, "max-depth", defaults.MaxDepth, "directory levels to read below each root, 0 for unlimited")
	fs.StringSliceVarP(&f.exclude, "exclude", "x", nil, "directory name patterns to skip (repeatable)")
	fs.BoolVarP(&f.parallel, "parallel", "p", defaults.Parallel, "scan roots concurrently")
	fs.BoolVar(&f.fastWalk, "fastwalk", defaults.FastWalk, "read directories of a root in parallel")
	fs.IntVarP(&f.workers, "workers", "w", defaults.Workers, "bound on parallel roots and directory readers")
	fs.StringVarP(&f.format, "format", "f", defaults.Format, "output format: plain, json or null")
	fs.BoolVar(&f.canonical, "canonical", defaults.Canonical, "print symlink-resolved paths")
	fs.BoolVar(&f.stream, "stream", false, "print each PDF as soon as it is found")
	fs.BoolVarP(&f.tui, "tui", "t", false, "browse results interactively")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress and print a summary")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	})

	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs the root command and prints the final error, if any
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCommand().ExecuteContext(ctx)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// resolveConfig merges defaults, config file, environment, flags and args
func resolveConfig(cmd *cobra.Command, args []string, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	changed := cmd.Flags().Changed
	if changed("detect") {
		cfg.Detect = f.detect
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = f.followSymlinks
	}
	if changed("one-file-system") {
		cfg.OneFileSystem = f.oneFileSystem
	}
	if changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if changed("fastwalk") {
		cfg.FastWalk = f.fastWalk
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("canonical") {
		cfg.Canonical = f.canonical
	}
	if len(args) > 0 {
		cfg.Roots = args
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// enumeratorOptions translates a validated config
func enumeratorOptions(cfg config.Config) (enumerator.Options, error) {
	mode, err := detect.ParseMode(cfg.Detect)
	if err != nil {
		return enumerator.Options{}, err
	}
	match, err := detect.ForMode(mode)
	if err != nil {
		return enumerator.Options{}, err
	}

	scan := scanner.DefaultOptions()
	scan.FollowSymlinks = cfg.FollowSymlinks
	scan.OneFileSystem = cfg.OneFileSystem
	scan.MaxDepth = cfg.MaxDepth
	scan.Exclude = cfg.Exclude

	return enumerator.Options{
		Match:    match,
		Scan:     scan,
		FastWalk: cfg.FastWalk,
		Parallel: cfg.Parallel,
		Workers:  cfg.Workers,
	}, nil
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	logging.SetVerbose(f.verbose)

	cfg, err := resolveConfig(cmd, args, f)
	if err != nil {
		return err
	}
	opts, err := enumeratorOptions(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if len(cfg.Roots) == 0 {
		logging.Log.Warn("no roots given")
	}

	if f.tui {
		return runTUI(cmd.Context(), cfg, opts)
	}

	enum, err := enumerator.New(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	out := cmd.OutOrStdout()
	color := false
	if file, ok := out.(*os.File); ok && cfg.Format == config.FormatPlain {
		color = output.ColorEnabled(file)
	}
	printer, err := output.New(out, cfg.Format, output.Options{Canonical: cfg.Canonical, Color: color})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if f.stream {
		return runStream(cmd, enum, cfg.Roots, printer, f.verbose)
	}
	return runCollect(cmd, enum, cfg.Roots, printer, f.verbose)
}

// runCollect enumerates every root, prints the entries and reports problems
func runCollect(cmd *cobra.Command, enum *enumerator.Enumerator, roots []string, printer output.Printer, verbose bool) error {
	res, enumErr := enum.Enumerate(cmd.Context(), roots)

	// Results for valid roots are written even when some roots failed
	for _, e := range res.Entries {
		if err := printer.Print(e); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := printer.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if enumErr != nil && !errors.Is(enumErr, enumerator.ErrNoValidRoots) {
		return enumErr
	}

	errOut := cmd.ErrOrStderr()
	problems := len(res.RootErrors) > 0 || len(res.Skipped) > 0
	if verbose || problems {
		color := false
		if file, ok := errOut.(*os.File); ok {
			color = output.ColorEnabled(file)
		}
		if err := output.Report(errOut, res, color); err != nil {
			return err
		}
	}

	if enumErr != nil {
		return &reportedError{err: enumErr}
	}
	if err := res.Err(); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

// runStream prints PDFs as they are found. Root errors are written to
// stderr when they occur and fail the run once the stream ends.
func runStream(cmd *cobra.Command, enum *enumerator.Enumerator, roots []string, printer output.Printer, verbose bool) error {
	errOut := cmd.ErrOrStderr()

	var (
		rootErrs []error
		printed  []model.Entry
	)
	for entry, err := range enum.Stream(cmd.Context(), roots) {
		if err != nil {
			var re *enumerator.RootError
			if !errors.As(err, &re) {
				printer.Close()
				return err
			}
			fmt.Fprintln(errOut, "error: "+re.Error())
			rootErrs = append(rootErrs, re)
			continue
		}
		if err := printer.Print(entry); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		printed = append(printed, entry)
	}
	if err := printer.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if verbose {
		fmt.Fprintf(errOut, "%d PDFs (%s)\n", len(printed), output.FormatSize(model.TotalSize(printed)))
	}

	switch {
	case len(rootErrs) == 0:
		return nil
	case len(roots) > 0 && len(rootErrs) == len(roots):
		return &reportedError{err: fmt.Errorf("%w: %w", enumerator.ErrNoValidRoots, errors.Join(rootErrs...))}
	default:
		return &reportedError{err: errors.Join(rootErrs...)}
	}
}

// runTUI shows the interactive browser
func runTUI(ctx context.Context, cfg config.Config, opts enumerator.Options) error {
	logging.Quiet()

	ctrl := core.NewController(cfg.Roots, opts)
	v, _, _ := resolveVersionInfo()
	p := tea.NewProgram(
		ui.NewApp(ctrl, v),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
