package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// AttachSiblingMCR moves an MCR leaf from its current structural parent
// into Link, the empty-looking Link element it overlaps on the page
// (§4.4 EmptyLinkTag's fix, §4.6).
type AttachSiblingMCR struct {
	Link   *structtree.StructNode
	MCR    *structtree.StructNode
	Parent *structtree.StructNode // the MCR's current parent, for re-validation
}

func (f *AttachSiblingMCR) Target() *structtree.StructNode { return f.Link }

func (f *AttachSiblingMCR) Priority() int { return PriorityStructural }

func (f *AttachSiblingMCR) GroupLabel() string { return "attach-sibling-mcr" }

func (f *AttachSiblingMCR) Describe() string {
	return fmt.Sprintf("attach overlapping marked content (mcid %d) to empty Link", f.MCR.MCID)
}

func (f *AttachSiblingMCR) DescribeCtx(ctx issue.Context) string {
	return fmt.Sprintf("attach overlapping marked content (mcid %d) to empty Link (page %d)", f.MCR.MCID, ctx.PageNumberOf(f.Link))
}

func (f *AttachSiblingMCR) Invalidates(issue.Fix) bool { return false }

// Apply is idempotent: if the MCR is already a child of Link, it no-ops.
func (f *AttachSiblingMCR) Apply(issue.Context) error {
	for _, k := range structtree.AllKids(f.Link) {
		if k == f.MCR {
			return nil
		}
	}
	if f.MCR.Parent() != f.Parent {
		return fmt.Errorf("fix_failed: mcid %d is no longer under the expected parent", f.MCR.MCID)
	}
	structtree.RemoveFromParent(f.MCR, f.Parent)
	structtree.AppendChild(f.Link, f.MCR)
	return nil
}
