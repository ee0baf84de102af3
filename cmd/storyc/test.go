package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storyscript/internal/directive"
	"storyscript/internal/driver"
)

var errDirectivesFailed = errors.New("directive expectations not met")

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [flags] <file.story|directory> [path...]",
		Short: "Check `// expect-...` directives against the reported diagnostics",
		Long: `Parse the sources and match every "// expect-error: <text>" and
"// expect-code: <ID>" comment against the diagnostics on its line. Errors
without a matching directive fail the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTest,
	}
	cmd.Flags().StringSlice("filter", nil, "only run these directive namespaces (error,code)")
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
	filter, err := cmd.Flags().GetStringSlice("filter")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	var results []*driver.ParseResult
	for _, path := range args {
		st, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}
		if st.IsDir() {
			_, dirResults, err := driver.ParseDir(cmd.Context(), path, driver.DirOptions{MaxDiagnostics: maxDiagnostics})
			if err != nil {
				return fmt.Errorf("parsing failed: %w", err)
			}
			results = append(results, dirResults...)
			continue
		}
		res, err := driver.Parse(cmd.Context(), path, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		results = append(results, res)
	}

	registry := directive.NewRegistry()
	subjects := make([]directive.Subject, 0, len(results))
	loadFailed := false
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.File == nil {
			// файл не загрузился: директив нет, показываем причину
			loadFailed = true
			if err := printStderrDiagnostics(cmd, res.Bag, res.FileSet); err != nil {
				return err
			}
			continue
		}
		registry.CollectFromFile(res.File)
		subjects = append(subjects, directive.Subject{
			FileSet:     res.FileSet,
			File:        res.File,
			Diagnostics: res.Bag.Items(),
		})
	}

	cfg := directive.RunnerConfig{Filter: filter, Output: cmd.OutOrStdout()}
	if quiet {
		cfg.Output = nil
	}
	result := directive.NewRunner(registry, cfg).Run(subjects)
	if !result.OK() || loadFailed {
		return errDirectivesFailed
	}
	return nil
}
