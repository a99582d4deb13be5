package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// EmptyElement flags a structure element with no MCR descendants and no
// struct children (§4.4). Warning only; nothing can be synthesized to fill
// it in automatically.
type EmptyElement struct {
	walker.Base
}

func (c *EmptyElement) Name() string { return "EmptyElement" }

func (c *EmptyElement) EnterElement(ctx *walker.Context) bool {
	empty := true
	for _, k := range structtree.AllKids(ctx.Node) {
		if k.Kind != structtree.OBJRNode {
			empty = false
			break
		}
	}
	if empty {
		c.Issues().Append(issue.New(issue.TypeEmptyElement, issue.SeverityWarning,
			loc(ctx), "element has no marked content and no structure children", nil))
	}
	return true
}
