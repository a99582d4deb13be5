package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// singleChildFix is the shared shape of every §4.5 "single-child fix": it
// acts on one (parent, child) pair discovered by SchemaValidation's
// wrong_child handling.
type singleChildFix struct {
	kind   string
	Parent *structtree.StructNode
	Child  *structtree.StructNode
}

func (f *singleChildFix) Target() *structtree.StructNode { return f.Child }

func (f *singleChildFix) Priority() int { return PriorityStructural }

func (f *singleChildFix) GroupLabel() string { return f.kind }

func (f *singleChildFix) Describe() string {
	return fmt.Sprintf("%s (%s under %s)", f.kind, f.Child.Role, f.Parent.Role)
}

func (f *singleChildFix) DescribeCtx(ctx issue.Context) string {
	return fmt.Sprintf("%s (%s under %s, page %d)", f.kind, f.Child.Role, f.Parent.Role, ctx.PageNumberOf(f.Child))
}

func (f *singleChildFix) Invalidates(other issue.Fix) bool {
	t, ok := other.(targeted)
	return ok && t.Target() == f.Child
}

// childStillInPlace re-validates that child is still found among parent's
// structural kids before a fix acts on it (§9 "stale wrappers").
func childStillInPlace(parent, child *structtree.StructNode) bool {
	for _, k := range structtree.StructKids(parent) {
		if k == child {
			return true
		}
	}
	return false
}

// WrapInLI wraps child directly in a new LI, for L > {Div|P|Figure|Span|LBody}.
type WrapInLI struct{ singleChildFix }

// NewWrapInLI constructs the fix for an L whose direct child needs wrapping.
func NewWrapInLI(parent, child *structtree.StructNode) *WrapInLI {
	return &WrapInLI{singleChildFix{kind: "wrap-in-li", Parent: parent, Child: child}}
}

func (f *WrapInLI) Apply(issue.Context) error {
	if !childStillInPlace(f.Parent, f.Child) {
		return nil
	}
	li := structtree.NewElement("LI")
	replaceChildWithWrapper(f.Parent, f.Child, li)
	return nil
}

// WrapInLBody wraps child in a new LBody, for LI > {P|Div|Figure|Span} when
// no sibling LBody already exists.
type WrapInLBody struct{ singleChildFix }

func NewWrapInLBody(parent, child *structtree.StructNode) *WrapInLBody {
	return &WrapInLBody{singleChildFix{kind: "wrap-in-lbody", Parent: parent, Child: child}}
}

func (f *WrapInLBody) Apply(issue.Context) error {
	if !childStillInPlace(f.Parent, f.Child) {
		return nil
	}
	for _, k := range structtree.StructKids(f.Parent) {
		if k.Role == "LBody" {
			return nil // a sibling LBody appeared since detection; no-op
		}
	}
	lbody := structtree.NewElement("LBody")
	replaceChildWithWrapper(f.Parent, f.Child, lbody)
	return nil
}

// TreatLblFigureAsBullet converts Lbl > Figure into a single Lbl carrying
// ActualText "Bullet", dropping the inner Figure and the outer Lbl wrapper
// in favor of the Figure reborn as the Lbl itself.
type TreatLblFigureAsBullet struct{ singleChildFix }

func NewTreatLblFigureAsBullet(parent, child *structtree.StructNode) *TreatLblFigureAsBullet {
	return &TreatLblFigureAsBullet{singleChildFix{kind: "treat-lbl-figure-as-bullet", Parent: parent, Child: child}}
}

func (f *TreatLblFigureAsBullet) Apply(issue.Context) error {
	if !childStillInPlace(f.Parent, f.Child) {
		return nil
	}
	if f.Parent.Role == "Lbl" && f.Child.Role == "Figure" {
		f.Child.Role = "Lbl"
		f.Child.ActualText = "Bullet"
		grandparent := f.Parent.Parent()
		if grandparent != nil {
			swapChild(grandparent, f.Parent, f.Child)
		}
	}
	return nil
}

// ExtractLBodyToList promotes a P's LBody child to a new L > LI > LBody,
// replacing the P in its parent's child sequence (P > LBody).
type ExtractLBodyToList struct{ singleChildFix }

func NewExtractLBodyToList(parent, child *structtree.StructNode) *ExtractLBodyToList {
	return &ExtractLBodyToList{singleChildFix{kind: "extract-lbody-to-list", Parent: parent, Child: child}}
}

func (f *ExtractLBodyToList) Apply(issue.Context) error {
	if !childStillInPlace(f.Parent, f.Child) {
		return nil
	}
	grandparent := f.Parent.Parent()
	if grandparent == nil {
		return fmt.Errorf("fix_failed: %s has no parent to extract into", f.Parent.Role)
	}
	l := structtree.NewElement("L")
	li := structtree.NewElement("LI")
	structtree.AppendChild(l, li)
	structtree.MoveElement(f.Parent, f.Child, li)
	swapChild(grandparent, f.Parent, l)
	return nil
}

// ChangePToLblInLI retags a P sibling of an LBody inside an LI as a Lbl,
// for LI > {P, LBody} or LI > {LBody, P}.
type ChangePToLblInLI struct{ singleChildFix }

func NewChangePToLblInLI(parent, child *structtree.StructNode) *ChangePToLblInLI {
	return &ChangePToLblInLI{singleChildFix{kind: "change-p-to-lbl-in-li", Parent: parent, Child: child}}
}

func (f *ChangePToLblInLI) Apply(issue.Context) error {
	if !childStillInPlace(f.Parent, f.Child) {
		return nil
	}
	if f.Child.Role == "P" {
		f.Child.Role = "Lbl"
	}
	return nil
}

// replaceChildWithWrapper swaps child for wrapper in parent's kid sequence
// in place (preserving order of the other siblings), then appends child
// under wrapper.
func replaceChildWithWrapper(parent, child, wrapper *structtree.StructNode) {
	kids := structtree.StructKids(parent)
	newKids := make([]*structtree.StructNode, 0, len(kids))
	for _, k := range kids {
		if k == child {
			newKids = append(newKids, wrapper)
			continue
		}
		newKids = append(newKids, k)
	}
	structtree.SetChildren(parent, newKids)
	structtree.AppendChild(wrapper, child)
}
