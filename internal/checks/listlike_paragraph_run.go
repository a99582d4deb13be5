package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// defaultIndentThreshold is the left-edge indent, in page-unit points, that
// marks a run of P siblings as a probable unlisted bullet list (§4.4, §9 open
// question: the correct behavior under mixed left margins, e.g. two-column
// layout, is not fully specified; this follows the stated algorithm as-is).
const defaultIndentThreshold = 10.0

// ListlikeParagraphRun detects a run of consecutive P elements indented by
// at least IndentThreshold relative to the nearest preceding non-run
// sibling, and wraps the run as L > LI > LBody > P, ... (§4.4).
// IndentThreshold is configurable (SPEC_FULL §A.2); the zero value falls
// back to defaultIndentThreshold so callers that construct this check
// directly, without going through config, keep the documented behavior.
type ListlikeParagraphRun struct {
	walker.Base
	IndentThreshold float64
}

func (c *ListlikeParagraphRun) Name() string { return "ListlikeParagraphRun" }

func (c *ListlikeParagraphRun) threshold() float64 {
	if c.IndentThreshold > 0 {
		return c.IndentThreshold
	}
	return defaultIndentThreshold
}

func (c *ListlikeParagraphRun) EnterElement(ctx *walker.Context) bool {
	threshold := c.threshold()
	kids := ctx.Children
	for i := 1; i < len(kids); {
		if kids[i].Role != "P" {
			i++
			continue
		}
		ref := kids[i-1]
		j := i
		for j < len(kids) && kids[j].Role == "P" && kids[j].LeftEdge-ref.LeftEdge >= threshold {
			j++
		}
		if j > i {
			run := append([]*structtree.StructNode(nil), kids[i:j]...)
			c.Issues().Append(issue.New(issue.TypeListlikeRun, issue.SeverityWarning,
				loc(ctx), "run of indented P siblings looks like an unlisted bullet list",
				fixes.NewWrapParagraphRunInList(ctx.Node, run)))
			i = j
		} else {
			i++
		}
	}
	return true
}
