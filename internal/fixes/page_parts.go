package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// SetupDocumentStructure ensures Document > Part[page=k] wrappers exist for
// each page and moves every direct Document child to the Part matching its
// resolved page (§4.5, MissingPageParts' fix). Elements with no resolvable
// page are left as direct Document children.
type SetupDocumentStructure struct {
	Document *structtree.StructNode
}

func (f *SetupDocumentStructure) Target() *structtree.StructNode { return f.Document }

func (f *SetupDocumentStructure) Priority() int { return PriorityPageOrganize }

func (f *SetupDocumentStructure) GroupLabel() string { return "setup-document-structure" }

func (f *SetupDocumentStructure) Describe() string {
	return fmt.Sprintf("organize %s's children into per-page Part wrappers", f.Document.Role)
}

func (f *SetupDocumentStructure) DescribeCtx(issue.Context) string { return f.Describe() }

func (f *SetupDocumentStructure) Invalidates(issue.Fix) bool { return false }

// Apply is idempotent: a child already sitting under a Part with the right
// ExplicitPage is left untouched; a Part without the matching page is
// created on demand, one per distinct resolved page, in first-seen order.
func (f *SetupDocumentStructure) Apply(ctx issue.Context) error {
	children := structtree.StructKids(f.Document)

	parts := map[int]*structtree.StructNode{}
	var order []int
	var unresolved []*structtree.StructNode
	pageOf := map[*structtree.StructNode]int{}

	for _, c := range children {
		if c.Role == "Part" && c.ExplicitPage != 0 {
			if _, ok := parts[c.ExplicitPage]; !ok {
				parts[c.ExplicitPage] = c
				order = append(order, c.ExplicitPage)
			}
			continue
		}
		page := ctx.PageNumberOf(c)
		if page == 0 {
			unresolved = append(unresolved, c)
			continue
		}
		pageOf[c] = page
		if _, ok := parts[page]; !ok {
			part := structtree.NewElement("Part")
			part.ExplicitPage = page
			parts[page] = part
			order = append(order, page)
		}
	}

	for _, c := range children {
		if c.Role == "Part" && c.ExplicitPage != 0 {
			continue
		}
		page, ok := pageOf[c]
		if !ok {
			continue
		}
		structtree.AppendChild(parts[page], c)
	}

	newChildren := make([]*structtree.StructNode, 0, len(order)+len(unresolved))
	for _, page := range order {
		newChildren = append(newChildren, parts[page])
	}
	newChildren = append(newChildren, unresolved...)
	structtree.SetChildren(f.Document, newChildren)
	return nil
}
