package fixes

import (
	"fmt"
	"sort"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// targeted is implemented by fixes whose Invalidates check needs to compare
// against the structure-tree node another fix is aimed at.
type targeted interface {
	Target() *structtree.StructNode
}

// defaultRectTolerance is the overlap tolerance, in page-unit points, used
// for rect-equality annotation removal (SPEC_FULL §A.2's "MCID
// rect-equality tolerance").
const defaultRectTolerance = 0.5

// ConvertToArtifact detaches a subtree that contributes no semantic content
// (§4.5, MistaggedArtifact's fix): it rewrites the subtree's marked content
// to a bare artifact marker, drops any link annotations the subtree's OBJRs
// pointed at, and removes the subtree from the tree.
// ConvertToArtifact's RectTolerance governs the rect-equality fallback
// RemoveAnnotation uses when an annotation can't be matched by identity; the
// zero value falls back to defaultRectTolerance (SPEC_FULL §A.2).
type ConvertToArtifact struct {
	Element       *structtree.StructNode
	RectTolerance float64
}

func (f *ConvertToArtifact) tolerance() float64 {
	if f.RectTolerance > 0 {
		return f.RectTolerance
	}
	return defaultRectTolerance
}

func (f *ConvertToArtifact) Target() *structtree.StructNode { return f.Element }

func (f *ConvertToArtifact) Priority() int { return PriorityArtifacting }

func (f *ConvertToArtifact) GroupLabel() string { return "artifact" }

func (f *ConvertToArtifact) Describe() string {
	return fmt.Sprintf("convert %s subtree to artifact", f.Element.Role)
}

func (f *ConvertToArtifact) DescribeCtx(ctx issue.Context) string {
	page := ctx.PageNumberOf(f.Element)
	return fmt.Sprintf("convert %s subtree to artifact (page %d)", f.Element.Role, page)
}

// Invalidates reports true for any other fix whose target is a descendant
// of (or equal to) this fix's element: once the subtree is gone, nothing
// inside it can still be acted on.
func (f *ConvertToArtifact) Invalidates(other issue.Fix) bool {
	t, ok := other.(targeted)
	if !ok {
		return false
	}
	target := t.Target()
	return target == f.Element || structtree.IsDescendantOf(target, f.Element)
}

// Apply mutates the document and tree per §4.5 ConvertToArtifact steps a–e.
// It is idempotent: if the element is already detached, it no-ops.
func (f *ConvertToArtifact) Apply(ctx issue.Context) error {
	parent := f.Element.Parent()
	if parent == nil {
		// Already detached by an earlier application, or this node was
		// the root's direct child and has already been removed.
		return nil
	}

	mcidsByPage, annotIDsByPage := collectLeaves(f.Element, ctx)

	var pages []int
	for p := range mcidsByPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	for _, page := range pages {
		p := ctx.Document().Page(page)
		if p == nil {
			return fmt.Errorf("fix_failed: page %d not found while artifacting %s", page, f.Element.Role)
		}
		missing, err := p.RewriteMCIDToArtifact(mcidsByPage[page])
		if err != nil {
			return fmt.Errorf("fix_failed: rewriting page %d: %w", page, err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("fix_failed: could not locate MCID(s) %v on page %d; document left unmodified for that page", missing, page)
		}
		ctx.InvalidatePageBounds(page)
	}

	for page, annotIDs := range annotIDsByPage {
		p := ctx.Document().Page(page)
		if p == nil {
			continue
		}
		for _, id := range annotIDs {
			p.RemoveAnnotation(doccontainer.Annotation{ID: id}, f.tolerance())
		}
	}

	structtree.RemoveFromParent(f.Element, parent)
	return nil
}

// collectLeaves walks element's subtree and buckets MCR ids by page and
// OBJR annotation ids (for link annotations) by page.
func collectLeaves(element *structtree.StructNode, ctx issue.Context) (map[int][]int, map[int][]int) {
	mcids := map[int][]int{}
	annots := map[int][]int{}
	var walk func(n *structtree.StructNode)
	walk = func(n *structtree.StructNode) {
		for _, k := range structtree.AllKids(n) {
			switch k.Kind {
			case structtree.ElementNode:
				walk(k)
			case structtree.MCRNode:
				page := k.Page
				if page == 0 {
					page = ctx.PageNumberOf(n)
				}
				mcids[page] = append(mcids[page], k.MCID)
			case structtree.OBJRNode:
				page := ctx.PageNumberOf(n)
				annots[page] = append(annots[page], k.AnnotID)
			}
		}
	}
	walk(element)
	return mcids, annots
}
