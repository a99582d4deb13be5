package checks

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

var wrapperRoles = map[structtree.Role]bool{
	"Part": true, "Sect": true, "Art": true, "Div": true,
}

// NeedlessNesting detects a chain of wrapper roles (Part/Sect/Art/Div) where
// each link has exactly one structural child that is itself such a wrapper,
// and attaches a FlattenNesting fix collapsing the chain (§4.4). It must run
// before MissingPageParts, since SetupDocumentStructure assumes a
// non-redundant Document child shape.
type NeedlessNesting struct {
	walker.Base
	consumed map[*structtree.StructNode]bool
}

func (c *NeedlessNesting) Name() string { return "NeedlessNesting" }

func (c *NeedlessNesting) BeforeTraversal() {
	c.consumed = map[*structtree.StructNode]bool{}
}

func (c *NeedlessNesting) EnterElement(ctx *walker.Context) bool {
	if c.consumed[ctx.Node] || !wrapperRoles[ctx.Role] {
		return true
	}
	kids := structtree.StructKids(ctx.Node)
	if len(kids) != 1 || !wrapperRoles[kids[0].Role] {
		return true
	}

	chain := []*structtree.StructNode{ctx.Node}
	cur := ctx.Node
	for {
		curKids := structtree.StructKids(cur)
		if len(curKids) != 1 {
			break
		}
		next := curKids[0]
		if !wrapperRoles[next.Role] {
			break
		}
		chain = append(chain, next)
		c.consumed[next] = true
		cur = next
	}

	c.Issues().Append(issue.New(issue.TypeNeedlessNesting, issue.SeverityWarning,
		loc(ctx), fmt.Sprintf("%d-deep wrapper chain starting at %s can be flattened", len(chain), ctx.Role),
		&fixes.FlattenNesting{Chain: chain}))

	return true
}
