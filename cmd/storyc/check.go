package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"storyscript/internal/diag"
	"storyscript/internal/driver"
	"storyscript/internal/observ"
	"storyscript/internal/project"
	"storyscript/internal/source"
)

const (
	msgCheckOK     = "Parsing completed successfully!"
	msgCheckFailed = "Parsing failed with errors."
)

// progressMode — значение флага --ui для check <dir>.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

var progressModes = map[string]progressMode{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressOn,
	"off":  progressOff,
}

func readProgressMode(value string) (progressMode, error) {
	mode, ok := progressModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return progressAuto, fmt.Errorf("unknown progress view mode %q for --ui: want auto, on or off", value)
	}
	return mode, nil
}

// showProgress: в режиме auto прогресс рисуется, только если out — терминал.
func (m progressMode) showProgress(out *os.File) bool {
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return isTerminal(out)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.story|directory]",
		Short: "Parse StoryScript sources and report diagnostics",
		Long: `Check parses a file or every *.story file in a directory and reports all diagnostics.
Without a path the [check].entry of the nearest story.toml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|legacy|json|sarif|golden)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	cmd.Flags().Bool("drop-cache", false, "invalidate the disk cache before checking")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	return cmd
}

// checkConfig — итоговые настройки check после флагов и story.toml.
type checkConfig struct {
	path           string
	format         diagFormat
	maxDiagnostics int
	jobs           int
	useCache       bool
	dropCache      bool
	ui             progressMode
	quiet          bool
	timings        bool
}

func readCheckConfig(cmd *cobra.Command, args []string) (checkConfig, error) {
	var cfg checkConfig

	formatStr, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return cfg, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if cfg.format, err = readDiagFormat(formatStr); err != nil {
		return cfg, err
	}

	if cfg.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if cfg.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return cfg, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if cfg.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return cfg, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if cfg.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if cfg.useCache, err = cmd.Flags().GetBool("cache"); err != nil {
		return cfg, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if cfg.dropCache, err = cmd.Flags().GetBool("drop-cache"); err != nil {
		return cfg, fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return cfg, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if cfg.ui, err = readProgressMode(uiStr); err != nil {
		return cfg, err
	}

	if len(args) == 1 {
		cfg.path = args[0]
		return cfg, nil
	}

	// Без аргумента берём точку входа из story.toml
	manifest, ok, err := project.Discover(".")
	if err != nil {
		return cfg, err
	}
	if !ok {
		return cfg, fmt.Errorf("no path given and no %s found", project.ManifestName)
	}
	cfg.path = manifest.Entry
	// флаги командной строки важнее манифеста
	if manifest.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		cfg.maxDiagnostics = manifest.MaxDiagnostics
	}
	if manifest.Jobs > 0 && !cmd.Flags().Changed("jobs") {
		cfg.jobs = manifest.Jobs
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := readCheckConfig(cmd, args)
	if err != nil {
		return err
	}

	st, err := os.Stat(cfg.path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	timer := observ.NewTimer()
	doneParse := timer.Track("parse")

	var (
		fs      *source.FileSet
		results []*driver.ParseResult
	)
	if st.IsDir() {
		fs, results, err = checkDir(cmd, cfg)
	} else {
		var res *driver.ParseResult
		res, err = driver.Parse(cmd.Context(), cfg.path, cfg.maxDiagnostics)
		if res != nil {
			fs, results = res.FileSet, []*driver.ParseResult{res}
		}
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	doneParse(fmt.Sprintf("%d files", len(results)))

	failed := false
	bags := make([]*diag.Bag, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		bags = append(bags, r.Bag)
		failed = failed || r.Failed
	}
	bag := mergeBags(bags)

	out := cmd.OutOrStdout()
	doneReport := timer.Track("report")
	if err := writeDiagnostics(cmd, out, cfg.format, bag, fs, os.Args); err != nil {
		return err
	}
	doneReport(fmt.Sprintf("%d diagnostics", bag.Len()))
	if cfg.timings {
		if err := timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if !cfg.format.machineReadable() {
		if failed {
			fmt.Fprintln(cmd.ErrOrStderr(), msgCheckFailed)
		} else if !cfg.quiet {
			fmt.Fprintln(out, msgCheckOK)
		}
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

func checkDir(cmd *cobra.Command, cfg checkConfig) (*source.FileSet, []*driver.ParseResult, error) {
	opts := driver.DirOptions{
		MaxDiagnostics: cfg.maxDiagnostics,
		Jobs:           cfg.jobs,
	}
	if cfg.useCache || cfg.dropCache {
		cache, err := driver.OpenDiskCache("storyscript")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache: %w", err)
		}
		if cfg.dropCache {
			if err := cache.DropAll(); err != nil {
				return nil, nil, fmt.Errorf("failed to drop cache: %w", err)
			}
		}
		if cfg.useCache {
			opts.Cache = cache
		}
	}

	// TUI занимает stdout, поэтому с машинными форматами не используется
	if cfg.quiet || cfg.format.machineReadable() || !cfg.ui.showProgress(os.Stdout) {
		return driver.ParseDir(cmd.Context(), cfg.path, opts)
	}
	files, err := driver.ListSourceFiles(cfg.path)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return driver.ParseDir(cmd.Context(), cfg.path, opts)
	}
	return runParseDirWithUI(cmd.Context(), os.Stdout, "checking", cfg.path, files, opts)
}
