package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// ParagraphOfLinks detects a P whose structural children are all Link
// elements, two or more, and converts it to L > LI > LBody > Link, ...
// (§4.4).
type ParagraphOfLinks struct {
	walker.Base
}

func (c *ParagraphOfLinks) Name() string { return "ParagraphOfLinks" }

func (c *ParagraphOfLinks) EnterElement(ctx *walker.Context) bool {
	if ctx.Role != "P" || len(ctx.Children) < 2 {
		return true
	}
	for _, child := range ctx.Children {
		if child.Role != "Link" {
			return true
		}
	}
	c.Issues().Append(issue.New(issue.TypeParagraphOfLinks, issue.SeverityWarning,
		loc(ctx), "P's children are all Link elements",
		fixes.NewListifyParagraphOfLinks(ctx.Node, append([]*structtree.StructNode(nil), ctx.Children...))))
	return true
}
