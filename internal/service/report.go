package service

import (
	"fmt"
	"io"
	"os"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
)

// issuesOf concatenates one or more lists, tolerating nils, for report
// sections that combine document- and tag-level issues.
func issuesOf(lists ...*issue.List) *issue.List {
	out := issue.NewList()
	for _, l := range lists {
		out.AppendAll(l)
	}
	return out
}

// TextReportWriter renders a ProcessingResult as the textual artifact
// described in spec §6's "Persisted result" contract: detected issues
// grouped by type with a ✗ marker, applied fixes grouped by fix class with
// a ✓ marker, a one-line summary, and the final output path when one was
// produced.
type TextReportWriter struct {
	Path string
}

// WriteReport renders result to w.Path, creating or truncating the file.
func (w *TextReportWriter) WriteReport(result *doccontext.ProcessingResult) error {
	f, err := os.Create(w.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return RenderReport(f, result)
}

// RenderReport writes result's textual report to out, independent of any
// file handle — used directly by WriteReport and by tests.
func RenderReport(out io.Writer, result *doccontext.ProcessingResult) error {
	fmt.Fprintf(out, "run %s\n", result.RunID)

	all := issuesOf(result.OriginalDoc, result.OriginalTag)
	for _, g := range all.GroupByType() {
		fmt.Fprintf(out, "\n%s (%d)\n", g.Type, len(g.Issues))
		for _, i := range g.Issues {
			fmt.Fprintf(out, "  ✗ %s\n", i.String())
		}
	}

	applied := issuesOf(result.AppliedDoc, result.AppliedTag)
	for _, g := range applied.GroupByFixClass() {
		fmt.Fprintf(out, "\n%s fixed (%d)\n", g.Label, len(g.Issues))
		for _, i := range g.Issues {
			fmt.Fprintf(out, "  ✓ %s\n", i.String())
		}
	}

	remaining := len(issuesOf(result.RemainingDoc, result.RemainingTag).Items())
	fmt.Fprintf(out, "\n%d detected, %d fixed, %d remaining\n",
		len(all.Items()), len(applied.Items()), remaining)

	if result.TempOutputPath != "" {
		fmt.Fprintf(out, "output: %s\n", result.TempOutputPath)
	}
	return nil
}
