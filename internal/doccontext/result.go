package doccontext

import "github.com/boyechko/pdf-autoa11y-sub001/internal/issue"

// ProcessingResult is the record a CheckEngine run accumulates into
// DocContext and ProcessingService ultimately hands back to its caller
// (§4.8): detected tag-tree and document issues, the fixes applied among
// them, what's left after re-detection, and where the remediated output
// landed.
type ProcessingResult struct {
	OriginalTag  *issue.List
	AppliedTag   *issue.List
	RemainingTag *issue.List

	OriginalDoc  *issue.List
	AppliedDoc   *issue.List
	RemainingDoc *issue.List

	// TempOutputPath is the remediated document's location, set only by
	// the remediate phase. Empty for analyze/report or a DryRun.
	TempOutputPath string

	// RunID identifies this run in the text report and the CLI summary; log
	// lines do not carry it.
	RunID string
}

// AllIssues returns every issue this result has accumulated across tag and
// document checks, in (doc, tag) order, the same order the text report lists
// detected issues in.
func (r *ProcessingResult) AllIssues() []*issue.Issue {
	var out []*issue.Issue
	for _, l := range []*issue.List{r.OriginalDoc, r.OriginalTag} {
		if l != nil {
			out = append(out, l.Items()...)
		}
	}
	return out
}
