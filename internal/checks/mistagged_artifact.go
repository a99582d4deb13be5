package checks

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// MistaggedArtifact detects structure elements that contribute no semantic
// content — their subtree is flagged by the decoder as recurring
// identically at the same position on every page, the signature of page
// headers and footers — and attaches a ConvertToArtifact fix (§4.4).
// RectTolerance is threaded into the attached ConvertToArtifact fix
// (SPEC_FULL §A.2); the zero value falls back to the fix's own default.
type MistaggedArtifact struct {
	walker.Base
	RectTolerance float64
}

func (c *MistaggedArtifact) Name() string { return "MistaggedArtifact" }

func (c *MistaggedArtifact) EnterElement(ctx *walker.Context) bool {
	if ctx.Node.RepeatsEveryPage {
		c.Issues().Append(issue.New(issue.TypeMistaggedArtifact, issue.SeverityWarning,
			loc(ctx), fmt.Sprintf("%s recurs identically on every page; likely decorative", ctx.Role),
			&fixes.ConvertToArtifact{Element: ctx.Node, RectTolerance: c.RectTolerance}))
		return false // no need to inspect inside a subtree already marked artifact
	}
	return true
}
