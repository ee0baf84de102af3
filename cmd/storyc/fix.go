package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"storyscript/internal/diag"
	"storyscript/internal/driver"
	"storyscript/internal/fix"
	"storyscript/internal/source"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.story|directory>",
		Short: "Apply suggested fixes to a source file or directory",
		Long:  "Parse the sources, collect suggested fixes from the diagnostics and apply them according to the chosen strategy.",
		Args:  cobra.ExactArgs(1),
		RunE:  runFix,
	}
	cmd.Flags().Bool("all", false, "apply all available fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "report fixes without writing files")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	opts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var (
		fs      *source.FileSet
		results []*driver.ParseResult
	)
	if info.IsDir() {
		fs, results, err = driver.ParseDir(cmd.Context(), targetPath, driver.DirOptions{MaxDiagnostics: maxDiagnostics})
		if err != nil {
			return fmt.Errorf("fix: parse dir failed: %w", err)
		}
	} else {
		res, err := driver.Parse(cmd.Context(), targetPath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("fix: parse failed: %w", err)
		}
		fs, results = res.FileSet, []*driver.ParseResult{res}
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	res, applyErr := fix.Apply(fs, diagnostics, opts)
	return handleApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		if _, err := fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied)); err != nil {
			return err
		}
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			if _, err := fmt.Fprintf(out, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, location, item.EditCount); err != nil {
				return err
			}
		}
	}

	if len(res.FileChanges) > 0 {
		if _, err := fmt.Fprintln(out, "Updated files:"); err != nil {
			return err
		}
		for _, change := range res.FileChanges {
			if _, err := fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount); err != nil {
				return err
			}
		}
	}

	if len(res.Skipped) > 0 {
		if _, err := fmt.Fprintln(out, "Skipped fixes:"); err != nil {
			return err
		}
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			line := fmt.Sprintf("  [%s]: %s\n", id, skip.Reason)
			if skip.Title != "" {
				line = fmt.Sprintf("  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			}
			if _, err := io.WriteString(out, line); err != nil {
				return err
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(out, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	return nil
}
