package directive

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

// RunnerConfig configures directive execution.
type RunnerConfig struct {
	// Filter limits execution to specific namespaces (empty = all).
	Filter []string

	// Output is where to write execution status.
	Output io.Writer
}

// Subject is one parsed file together with the diagnostics produced for it.
type Subject struct {
	FileSet     *source.FileSet
	File        *source.File
	Diagnostics []diag.Diagnostic
}

// RunResult contains the outcome of running directives.
type RunResult struct {
	Total      int
	Passed     int
	Failed     int
	Unexpected int // ошибки без соответствующей директивы
}

// OK reports whether every expectation matched and nothing unexpected showed up.
func (r RunResult) OK() bool {
	return r.Failed == 0 && r.Unexpected == 0
}

// Runner matches directive scenarios against diagnostics.
type Runner struct {
	config   RunnerConfig
	registry *Registry
}

// NewRunner creates a directive runner.
func NewRunner(registry *Registry, config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = io.Discard
	}
	return &Runner{
		config:   config,
		registry: registry,
	}
}

// Run checks all matching scenarios against subjects.
// Errors are reported as unexpected when the "error" namespace is active and
// no expect-error directive claims them.
func (r *Runner) Run(subjects []Subject) RunResult {
	scenarios := r.registry.FilterByNamespace(r.config.Filter)
	byFile := make(map[string][]Scenario, len(subjects))
	for _, sc := range scenarios {
		byFile[sc.SourceFile] = append(byFile[sc.SourceFile], sc)
	}
	checkUnexpected := len(r.config.Filter) == 0 || slices.Contains(r.config.Filter, NamespaceError)

	result := RunResult{Total: len(scenarios)}
	seen := make(map[string]bool, len(subjects))
	for _, subj := range subjects {
		if subj.File == nil {
			continue
		}
		path := subj.File.Path
		seen[path] = true
		claimed := make([]bool, len(subj.Diagnostics))

		for i := range byFile[path] {
			sc := &byFile[path][i]
			if reason, ok := r.match(sc, subj, claimed); ok {
				result.Passed++
				fmt.Fprintf(r.config.Output, "PASS %s expect-%s %q\n", sc.Location(), sc.Namespace, sc.Argument)
			} else {
				result.Failed++
				fmt.Fprintf(r.config.Output, "FAIL %s expect-%s %q (%s)\n", sc.Location(), sc.Namespace, sc.Argument, reason)
			}
		}

		if !checkUnexpected {
			continue
		}
		for i, d := range subj.Diagnostics {
			if claimed[i] || d.Severity != diag.SevError {
				continue
			}
			result.Unexpected++
			fmt.Fprintf(r.config.Output, "UNEXPECTED %s: %s %s\n",
				shortLocation(subj.FileSet, d.Primary), d.Code.ID(), d.Message)
		}
	}

	// директивы файлов, которые так и не разобрались
	for _, sc := range scenarios {
		if seen[sc.SourceFile] {
			continue
		}
		result.Failed++
		fmt.Fprintf(r.config.Output, "FAIL %s expect-%s %q (file was not checked)\n", sc.Location(), sc.Namespace, sc.Argument)
	}

	// Print summary
	fmt.Fprintln(r.config.Output)
	fmt.Fprintf(r.config.Output, "Directive summary: %d total, %d passed, %d failed, %d unexpected\n",
		result.Total, result.Passed, result.Failed, result.Unexpected)

	return result
}

// match ищет первую ещё не занятую диагностику на строке сценария.
func (r *Runner) match(sc *Scenario, subj Subject, claimed []bool) (reason string, ok bool) {
	var pred func(d diag.Diagnostic) bool
	switch sc.Namespace {
	case NamespaceError:
		pred = func(d diag.Diagnostic) bool {
			return d.Severity == diag.SevError && strings.Contains(d.Message, sc.Argument)
		}
	case NamespaceCode:
		pred = func(d diag.Diagnostic) bool {
			return d.Code.ID() == sc.Argument
		}
	default:
		return fmt.Sprintf("unknown directive expect-%s", sc.Namespace), false
	}
	if sc.Argument == "" {
		return "empty expectation", false
	}

	for i, d := range subj.Diagnostics {
		if claimed[i] || !pred(d) {
			continue
		}
		start, _ := subj.FileSet.Resolve(d.Primary)
		if start.Line != sc.Line {
			continue
		}
		claimed[i] = true
		return "", true
	}
	return "no matching diagnostic", false
}

func shortLocation(fs *source.FileSet, sp source.Span) string {
	loc := fs.Location(sp)
	return fmt.Sprintf("%s:%d:%d", filepath.Base(loc.File), loc.Line, loc.Col)
}
