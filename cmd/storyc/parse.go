package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"storyscript/internal/diagfmt"
	"storyscript/internal/driver"
	"storyscript/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.story|directory>",
		Short: "Parse a StoryScript file or directory and output the AST",
		Long:  `Parse analyzes a StoryScript source file or all *.story files in a directory and outputs their syntax trees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|yaml)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	// Проверяем, файл это или директория
	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	out := cmd.OutOrStdout()
	if !st.IsDir() {
		// Парсинг одного файла
		result, err := driver.Parse(cmd.Context(), filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := printStderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
		if err := writeAST(out, format, result, result.FileSet); err != nil {
			return err
		}
		if result.Failed {
			return errCheckFailed
		}
		return nil
	}

	// Парсинг директории
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	fs, results, err := driver.ParseDir(cmd.Context(), filePath, driver.DirOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	for _, r := range results {
		if err := printStderrDiagnostics(cmd, r.Bag, fs); err != nil {
			return err
		}
		failed = failed || r.Failed
	}

	switch format {
	case "json", "yaml":
		// один документ: путь -> дерево
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			name := displayName(r, fs)
			if r.Builder == nil {
				output[name] = nil
				continue
			}
			node, err := diagfmt.BuildASTOutput(r.Builder, r.Program, fs)
			if err != nil {
				return err
			}
			output[name] = &node
		}
		if format == "yaml" {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(output); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}
		} else {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return err
			}
		}
	default:
		for idx, r := range results {
			if !quiet {
				if _, err := fmt.Fprintf(out, "== %s ==\n", displayName(r, fs)); err != nil {
					return err
				}
			}
			if r.Builder != nil {
				if err := diagfmt.FormatASTTree(out, r.Builder, r.Program, fs); err != nil {
					return err
				}
			}
			if !quiet && idx < len(results)-1 {
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
		}
	}

	if failed {
		return errCheckFailed
	}
	return nil
}

func writeAST(out io.Writer, format string, r *driver.ParseResult, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(out, r.Builder, r.Program, fs)
	case "yaml":
		return diagfmt.FormatASTYAML(out, r.Builder, r.Program, fs)
	default:
		return diagfmt.FormatASTTree(out, r.Builder, r.Program, fs)
	}
}

func displayName(r *driver.ParseResult, fs *source.FileSet) string {
	if r.File == nil {
		return r.Path
	}
	return r.File.FormatPath("relative", fs.BaseDir())
}
