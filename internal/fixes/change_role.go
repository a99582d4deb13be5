package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// ChangeRole retags an element's role in place, e.g. a Figure found to carry
// extractable text being relabeled so it's treated as text content instead
// of an image (§4.4 FigureWithText's fix).
type ChangeRole struct {
	Element *structtree.StructNode
	From     structtree.Role
	To       structtree.Role
}

func (f *ChangeRole) Target() *structtree.StructNode { return f.Element }

func (f *ChangeRole) Priority() int { return PriorityCosmetic }

func (f *ChangeRole) GroupLabel() string { return "change-role" }

func (f *ChangeRole) Describe() string {
	return fmt.Sprintf("change role %s to %s", f.From, f.To)
}

func (f *ChangeRole) DescribeCtx(ctx issue.Context) string {
	return fmt.Sprintf("change role %s to %s (page %d)", f.From, f.To, ctx.PageNumberOf(f.Element))
}

func (f *ChangeRole) Invalidates(issue.Fix) bool { return false }

// Apply is idempotent: if the element's role is already To, it no-ops.
func (f *ChangeRole) Apply(issue.Context) error {
	if f.Element.Role == f.To {
		return nil
	}
	if f.Element.Role != f.From {
		return fmt.Errorf("fix_failed: expected role %s, found %s", f.From, f.Element.Role)
	}
	f.Element.Role = f.To
	return nil
}
