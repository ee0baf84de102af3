package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"storyscript/internal/diag"
	"storyscript/internal/diagfmt"
	"storyscript/internal/source"
	"storyscript/internal/version"
)

// diagFormat — формат вывода диагностик команды check.
type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatShort  diagFormat = "short"
	diagFormatLegacy diagFormat = "legacy"
	diagFormatJSON   diagFormat = "json"
	diagFormatSarif  diagFormat = "sarif"
	diagFormatGolden diagFormat = "golden"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(value); f {
	case diagFormatPretty, diagFormatShort, diagFormatLegacy, diagFormatJSON, diagFormatSarif, diagFormatGolden:
		return f, nil
	default:
		return "", fmt.Errorf("unknown diag format %q (expected pretty|short|legacy|json|sarif|golden)", value)
	}
}

// machineReadable: такие форматы пишут в stdout только сами диагностики,
// без сводки и прогресса.
func (f diagFormat) machineReadable() bool {
	return f == diagFormatJSON || f == diagFormatSarif || f == diagFormatGolden
}

// printStderrDiagnostics выводит диагностики tokenize/parse в stderr в pretty-формате.
func printStderrDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		ShowNotes: true,
		ShowFixes: true,
	})
	return nil
}

// mergeBags собирает диагностики всех файлов в один отсортированный Bag.
func mergeBags(bags []*diag.Bag) *diag.Bag {
	merged := diag.NewBag(math.MaxUint16)
	for _, b := range bags {
		if b != nil {
			merged.Merge(b)
		}
	}
	merged.Sort()
	return merged
}

// writeDiagnostics выводит диагностики в выбранном формате.
func writeDiagnostics(cmd *cobra.Command, w io.Writer, format diagFormat, bag *diag.Bag, fs *source.FileSet, args []string) error {
	switch format {
	case diagFormatPretty:
		useColor, err := colorEnabled(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
			ShowFixes: true,
		})
		return nil
	case diagFormatShort:
		return diagfmt.Short(w, bag, fs, diagfmt.PathModeAuto)
	case diagFormatLegacy:
		return diagfmt.Legacy(w, bag, fs)
	case diagFormatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case diagFormatSarif:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "storyc",
			ToolVersion:    version.Version,
			InvocationArgs: args,
		})
	case diagFormatGolden:
		if out := diag.FormatGoldenDiagnostics(bag.Items(), fs, true); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown diag format %q", format)
	}
}
