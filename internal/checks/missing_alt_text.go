package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// MissingAltText flags a Figure with neither alternate text nor extractable
// actual text (§4.4). Informational only; no automatic fix exists since
// alt text cannot be synthesized.
type MissingAltText struct {
	walker.Base
}

func (c *MissingAltText) Name() string { return "MissingAltText" }

func (c *MissingAltText) EnterElement(ctx *walker.Context) bool {
	if ctx.Role == "Figure" && ctx.Node.AltText == "" && !ctx.Node.HasText {
		c.Issues().Append(issue.New(issue.TypeMissingAltText, issue.SeverityInfo,
			loc(ctx), "Figure has no alternate text and no extractable text", nil))
	}
	return true
}
