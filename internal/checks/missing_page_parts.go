package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// MissingPageParts detects that Document's immediate children do not map
// one-to-one to physical pages via Part[page=k] wrappers, and attaches a
// SetupDocumentStructure fix (§4.4, a.k.a. PagePart). It depends on
// NeedlessNesting having already collapsed any redundant wrappers, so the
// children it inspects are the real content roots.
type MissingPageParts struct {
	walker.Base
}

func (c *MissingPageParts) Name() string { return "MissingPageParts" }

func (c *MissingPageParts) Prerequisites() []string { return []string{"NeedlessNesting"} }

func (c *MissingPageParts) EnterElement(ctx *walker.Context) bool {
	if ctx.Role != "Document" {
		return true
	}
	for _, child := range structtree.StructKids(ctx.Node) {
		if child.Role == "Part" && child.ExplicitPage != 0 {
			continue
		}
		page := 0
		if ctx.Doc != nil {
			page = ctx.Doc.PageNumberOf(child)
		}
		if page != 0 {
			c.Issues().Append(issue.New(issue.TypeMissingPageParts, issue.SeverityWarning,
				loc(ctx), "Document's children are not organized into per-page Part wrappers",
				&fixes.SetupDocumentStructure{Document: ctx.Node}))
			return true
		}
	}
	return true
}
