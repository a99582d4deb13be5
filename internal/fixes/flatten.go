package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// FlattenNesting collapses a chain A -> B -> ... -> X, where each link has
// exactly one structural child, by reparenting X's children directly under
// A and dropping the intermediate wrappers (§4.5, NeedlessNesting's fix).
// Chain holds the chain in outermost-to-innermost order; Chain[0] is A,
// Chain[len-1] is X.
type FlattenNesting struct {
	Chain []*structtree.StructNode
}

func (f *FlattenNesting) Target() *structtree.StructNode { return f.Chain[0] }

func (f *FlattenNesting) Priority() int { return PriorityFlatten }

func (f *FlattenNesting) GroupLabel() string { return "flatten-nesting" }

func (f *FlattenNesting) Describe() string {
	return fmt.Sprintf("flatten %d-deep %s wrapper chain", len(f.Chain), f.Chain[0].Role)
}

func (f *FlattenNesting) DescribeCtx(ctx issue.Context) string {
	page := ctx.PageNumberOf(f.Chain[0])
	return fmt.Sprintf("flatten %d-deep %s wrapper chain (page %d)", len(f.Chain), f.Chain[0].Role, page)
}

func (f *FlattenNesting) Invalidates(other issue.Fix) bool {
	t, ok := other.(targeted)
	if !ok {
		return false
	}
	target := t.Target()
	for _, n := range f.Chain[1:] {
		if target == n {
			return true
		}
	}
	return false
}

// Apply re-validates the chain before acting (§9 "stale wrappers"): each
// link must still have exactly the expected single structural child. If the
// chain has already been collapsed (len == 1, or the first link's kids
// already equal the last link's kids), it no-ops.
func (f *FlattenNesting) Apply(ctx issue.Context) error {
	if len(f.Chain) < 2 {
		return nil
	}
	a := f.Chain[0]
	x := f.Chain[len(f.Chain)-1]

	aKids, xKids := structtree.AllKids(a), structtree.AllKids(x)
	if len(aKids) == len(xKids) {
		same := true
		for i := range aKids {
			if aKids[i] != xKids[i] {
				same = false
				break
			}
		}
		if same {
			// Already collapsed by a prior Apply: A holds X's children.
			return nil
		}
	}
	for i := 0; i < len(f.Chain)-1; i++ {
		cur, next := f.Chain[i], f.Chain[i+1]
		curKids := structtree.StructKids(cur)
		if len(curKids) != 1 || curKids[0] != next {
			// The chain no longer matches what was observed; leave the
			// issue open rather than guessing.
			return fmt.Errorf("fix_failed: chain link %s -> %s no longer holds", cur.Role, next.Role)
		}
	}

	grandchildren := structtree.AllKids(x)
	structtree.SetChildren(a, grandchildren)
	return nil
}
