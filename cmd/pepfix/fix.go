package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pepfix/internal/cache"
	"pepfix/internal/config"
	"pepfix/internal/driver"
)

var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <source> [destination]",
		Short: "Fix whitespace and blank-line layout",
		Long: `Fix a source file and write the result to destination, or fix files and
directories in place with --overwrite. --check and --stdout never write.

With --overwrite every argument is a source; there is no destination. A
second argument that does not exist is rejected rather than created.`,
		Example: `  pepfix fix messy.py clean.py
  pepfix fix -o src/ tests/
  pepfix fix --check .`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFix,
	}
	addFixFlags(cmd)
	return cmd
}

func addFixFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("overwrite", "o", false, "rewrite sources in place (accepts files and directories)")
	cmd.Flags().Bool("check", false, "report files that would change without writing")
	cmd.Flags().Bool("stdout", false, "print fixed code to stdout instead of writing files")
	cmd.Flags().String("format", "text", "output format (text|short|json)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("cache", false, "skip files recorded as clean by earlier runs")
	cmd.Flags().Bool("comment-spacing", false, "insert a space after '#' in comments")
	cmd.Flags().Bool("nfc", false, "normalize lines to Unicode NFC")
	cmd.Flags().Bool("decorators", false, "keep decorators attached to the function below them")
	cmd.Flags().StringSlice("def-keyword", nil, "keywords that open a function definition (default: def)")
	cmd.Flags().BoolP("verbose", "v", false, "list every correction, not only warnings and errors")
}

type fixFlags struct {
	overwrite      bool
	check          bool
	stdout         bool
	format         string
	jobs           int
	ui             uiMode
	cache          bool
	verbose        bool
	quiet          bool
	timings        bool
	color          bool
	maxDiagnostics int
}

func runFix(cmd *cobra.Command, args []string) error {
	flags, err := readFixFlags(cmd)
	if err != nil {
		return err
	}
	if err := validateFixArgs(flags, args); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var results []driver.FixResult
	if !flags.overwrite && !flags.check && !flags.stdout {
		res := driver.FixFile(ctx, driver.FixRequest{
			Source:         args[0],
			Destination:    args[1],
			Options:        opts,
			MaxDiagnostics: flags.maxDiagnostics,
		})
		results = []driver.FixResult{res}
	} else {
		batch := batchOptions(cmd, flags, cfg, opts, errOut)
		if wantsProgressUI(flags) {
			results, err = runFixWithUI(ctx, "fixing", args, batch)
		} else {
			results, err = driver.FixPaths(ctx, args, batch)
		}
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}

	switch flags.format {
	case "json":
		if err := renderFixJSON(out, results, flags); err != nil {
			return err
		}
	case "short":
		renderFixShort(out, results)
	default:
		if flags.stdout {
			renderFixStdout(out, errOut, results)
		} else {
			renderFixText(out, errOut, results, flags)
		}
	}
	if flags.timings {
		printFixTimings(errOut, results)
	}

	sum := driver.Summarize(results)
	if sum.Failed > 0 {
		return fmt.Errorf("fix: failed to fix %d of %d files", sum.Failed, sum.Files)
	}
	if flags.check && sum.Changed > 0 {
		return errors.New("fix: changes required")
	}
	return nil
}

// batchOptions builds the FixPaths options; flags win over pepfix.toml.
func batchOptions(cmd *cobra.Command, flags fixFlags, cfg config.Config, opts driver.Options, errOut io.Writer) driver.FixOptions {
	batch := driver.FixOptions{
		Check:          flags.check,
		Stdout:         flags.stdout,
		Jobs:           flags.jobs,
		Extensions:     cfg.Run.Extensions,
		Options:        opts,
		MaxDiagnostics: flags.maxDiagnostics,
	}
	if !cmd.Flags().Changed("jobs") {
		batch.Jobs = cfg.Run.Jobs
	}
	useCache := cfg.Run.Cache
	if cmd.Flags().Changed("cache") {
		useCache = flags.cache
	}
	if useCache {
		diskCache, err := cache.Open("pepfix")
		if err != nil {
			fmt.Fprintf(errOut, "fix: cache disabled: %v\n", err)
		} else {
			batch.Cache = diskCache
		}
	}
	return batch
}

func readFixFlags(cmd *cobra.Command) (fixFlags, error) {
	var f fixFlags
	var err error
	fs := cmd.Flags()
	if f.overwrite, err = fs.GetBool("overwrite"); err != nil {
		return f, err
	}
	if f.check, err = fs.GetBool("check"); err != nil {
		return f, err
	}
	if f.stdout, err = fs.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.format, err = fs.GetString("format"); err != nil {
		return f, err
	}
	if f.jobs, err = fs.GetInt("jobs"); err != nil {
		return f, err
	}
	if f.cache, err = fs.GetBool("cache"); err != nil {
		return f, err
	}
	if f.verbose, err = fs.GetBool("verbose"); err != nil {
		return f, err
	}
	uiValue, err := fs.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}

	pf := cmd.Root().PersistentFlags()
	if f.quiet, err = pf.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = pf.GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	if f.color, err = colorEnabled(cmd); err != nil {
		return f, err
	}
	return f, nil
}

func validateFixArgs(f fixFlags, args []string) error {
	switch f.format {
	case "text", "short", "json":
	default:
		return fmt.Errorf("fix: unsupported output format %q", f.format)
	}
	if f.jobs < 0 {
		return fmt.Errorf("fix: --jobs must be >= 0")
	}
	if f.stdout && f.check {
		return fmt.Errorf("fix: --stdout cannot be used with --check")
	}
	if f.stdout && f.format != "text" {
		return fmt.Errorf("fix: --stdout is only supported with text output")
	}
	if f.overwrite && len(args) == 2 {
		if _, err := os.Stat(args[1]); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("fix: %s does not exist (--overwrite takes sources only, not a destination)", args[1])
		}
	}
	if f.overwrite || f.check || f.stdout {
		return nil
	}
	switch len(args) {
	case 1:
		return fmt.Errorf("fix: %w (pass a destination or --overwrite)", driver.ErrNoDestination)
	case 2:
		return nil
	default:
		return fmt.Errorf("fix: expected <source> <destination>, got %d paths (use --overwrite for batches)", len(args))
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	cfg, _, err := config.Resolve(explicit, wd)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// driverOptions merges pepfix.toml with the rule flags; flags win when set.
func driverOptions(cmd *cobra.Command, cfg config.Config) (driver.Options, error) {
	opts := driver.Options{
		CommentSpacing: cfg.Rules.CommentSpacing,
		UnicodeNFC:     cfg.Rules.UnicodeNFC,
		SkipDecorators: cfg.Rules.Decorators,
		Keywords:       cfg.Rules.DefKeywords,
	}
	fs := cmd.Flags()
	overrides := []struct {
		name string
		dst  *bool
	}{
		{"comment-spacing", &opts.CommentSpacing},
		{"nfc", &opts.UnicodeNFC},
		{"decorators", &opts.SkipDecorators},
	}
	for _, o := range overrides {
		if !fs.Changed(o.name) {
			continue
		}
		v, err := fs.GetBool(o.name)
		if err != nil {
			return opts, err
		}
		*o.dst = v
	}
	if fs.Changed("def-keyword") {
		keywords, err := fs.GetStringSlice("def-keyword")
		if err != nil {
			return opts, err
		}
		opts.Keywords = keywords
	}
	return opts, nil
}
