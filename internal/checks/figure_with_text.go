package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// FigureWithText detects Figure elements whose marked content includes
// extractable text and attaches a role-change fix retagging them as P
// (§4.4): a Figure is for images, not text content.
type FigureWithText struct {
	walker.Base
}

func (c *FigureWithText) Name() string { return "FigureWithText" }

func (c *FigureWithText) EnterElement(ctx *walker.Context) bool {
	if ctx.Role == "Figure" && ctx.Node.HasText {
		c.Issues().Append(issue.New(issue.TypeFigureWithText, issue.SeverityWarning,
			loc(ctx), "Figure's marked content includes extractable text",
			&fixes.ChangeRole{Element: ctx.Node, From: "Figure", To: "P"}))
	}
	return true
}
