package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// multiChildFix is the shared shape of every §4.5 "multi-child fix": it acts
// on an ordered run of a parent's children discovered by SchemaValidation's
// parent-scoped pass, which tries these before falling back to a
// single-child fix.
type multiChildFix struct {
	kind     string
	Parent   *structtree.StructNode
	Children []*structtree.StructNode
}

func (f *multiChildFix) Priority() int { return PriorityStructural }

func (f *multiChildFix) GroupLabel() string { return f.kind }

func (f *multiChildFix) Describe() string {
	return fmt.Sprintf("%s (%d children of %s)", f.kind, len(f.Children), f.Parent.Role)
}

func (f *multiChildFix) DescribeCtx(ctx issue.Context) string {
	page := 0
	if len(f.Children) > 0 {
		page = ctx.PageNumberOf(f.Children[0])
	}
	return fmt.Sprintf("%s (%d children of %s, page %d)", f.kind, len(f.Children), f.Parent.Role, page)
}

func (f *multiChildFix) Invalidates(other issue.Fix) bool {
	t, ok := other.(targeted)
	if !ok {
		return false
	}
	target := t.Target()
	for _, c := range f.Children {
		if c == target {
			return true
		}
	}
	return false
}

// childrenStillInPlace re-validates that every element of children still
// appears, contiguously and in order, among parent's structural kids.
func childrenStillInPlace(parent *structtree.StructNode, children []*structtree.StructNode) bool {
	kids := structtree.StructKids(parent)
	if len(children) == 0 {
		return false
	}
	start := -1
	for i, k := range kids {
		if k == children[0] {
			start = i
			break
		}
	}
	if start == -1 || start+len(children) > len(kids) {
		return false
	}
	for i, c := range children {
		if kids[start+i] != c {
			return false
		}
	}
	return true
}

// pairwiseWrapInLI wraps consecutive (lbl, body) pairs of children each in
// their own new LI, replacing the flat run in parent's child sequence.
func pairwiseWrapInLI(parent *structtree.StructNode, children []*structtree.StructNode) error {
	if len(children)%2 != 0 {
		return fmt.Errorf("fix_failed: odd number of children in pairwise wrap for %s", parent.Role)
	}
	kids := structtree.StructKids(parent)
	start := -1
	for i, k := range kids {
		if k == children[0] {
			start = i
			break
		}
	}
	if start == -1 {
		return fmt.Errorf("fix_failed: children run no longer present under %s", parent.Role)
	}

	var lis []*structtree.StructNode
	for i := 0; i < len(children); i += 2 {
		li := structtree.NewElement("LI")
		structtree.AppendChild(li, children[i])
		structtree.AppendChild(li, children[i+1])
		lis = append(lis, li)
	}

	newKids := make([]*structtree.StructNode, 0, len(kids)-len(children)+len(lis))
	newKids = append(newKids, kids[:start]...)
	newKids = append(newKids, lis...)
	newKids = append(newKids, kids[start+len(children):]...)
	structtree.SetChildren(parent, newKids)
	return nil
}

// WrapPairsOfLblPInLI wraps alternating Lbl, P runs each in a new LI
// (L > Lbl, P, Lbl, P, ...).
type WrapPairsOfLblPInLI struct{ multiChildFix }

func NewWrapPairsOfLblPInLI(parent *structtree.StructNode, children []*structtree.StructNode) *WrapPairsOfLblPInLI {
	return &WrapPairsOfLblPInLI{multiChildFix{kind: "wrap-pairs-lbl-p-in-li", Parent: parent, Children: children}}
}

func (f *WrapPairsOfLblPInLI) Apply(issue.Context) error {
	if !childrenStillInPlace(f.Parent, f.Children) {
		return nil
	}
	return pairwiseWrapInLI(f.Parent, f.Children)
}

// WrapPairsOfLblLBodyInLI wraps alternating Lbl, LBody runs each in a new LI
// (L > Lbl, LBody, Lbl, LBody, ...).
type WrapPairsOfLblLBodyInLI struct{ multiChildFix }

func NewWrapPairsOfLblLBodyInLI(parent *structtree.StructNode, children []*structtree.StructNode) *WrapPairsOfLblLBodyInLI {
	return &WrapPairsOfLblLBodyInLI{multiChildFix{kind: "wrap-pairs-lbl-lbody-in-li", Parent: parent, Children: children}}
}

func (f *WrapPairsOfLblLBodyInLI) Apply(issue.Context) error {
	if !childrenStillInPlace(f.Parent, f.Children) {
		return nil
	}
	return pairwiseWrapInLI(f.Parent, f.Children)
}

// ListifyParagraphOfLinks converts a P whose children are all Link elements
// (two or more, no non-struct siblings) into L > LI > LBody > Link, ...
type ListifyParagraphOfLinks struct{ multiChildFix }

func NewListifyParagraphOfLinks(parent *structtree.StructNode, children []*structtree.StructNode) *ListifyParagraphOfLinks {
	return &ListifyParagraphOfLinks{multiChildFix{kind: "listify-paragraph-of-links", Parent: parent, Children: children}}
}

func (f *ListifyParagraphOfLinks) Apply(issue.Context) error {
	grandparent := f.Parent.Parent()
	if grandparent == nil {
		return fmt.Errorf("fix_failed: %s has no parent", f.Parent.Role)
	}
	if !childrenStillInPlace(f.Parent, f.Children) {
		return nil
	}
	l := structtree.NewElement("L")
	for _, link := range f.Children {
		li := structtree.NewElement("LI")
		lbody := structtree.NewElement("LBody")
		structtree.MoveElement(f.Parent, link, lbody)
		structtree.AppendChild(li, lbody)
		structtree.AppendChild(l, li)
	}
	swapChild(grandparent, f.Parent, l)
	return nil
}

// swapChild replaces oldChild with newChild in parent's structural child
// sequence, in place, preserving the position and order of every other
// sibling.
func swapChild(parent, oldChild, newChild *structtree.StructNode) {
	kids := structtree.StructKids(parent)
	newKids := make([]*structtree.StructNode, 0, len(kids))
	for _, k := range kids {
		if k == oldChild {
			newKids = append(newKids, newChild)
			continue
		}
		newKids = append(newKids, k)
	}
	structtree.SetChildren(parent, newKids)
}

// WrapParagraphRunInList wraps a detected run of consecutive, similarly
// indented P elements as L > LI > LBody > P, one LI per paragraph, replacing
// the run in place among its siblings.
type WrapParagraphRunInList struct{ multiChildFix }

func NewWrapParagraphRunInList(parent *structtree.StructNode, children []*structtree.StructNode) *WrapParagraphRunInList {
	return &WrapParagraphRunInList{multiChildFix{kind: "wrap-paragraph-run-in-list", Parent: parent, Children: children}}
}

func (f *WrapParagraphRunInList) Apply(issue.Context) error {
	if !childrenStillInPlace(f.Parent, f.Children) {
		return nil
	}
	kids := structtree.StructKids(f.Parent)
	start := -1
	for i, k := range kids {
		if k == f.Children[0] {
			start = i
			break
		}
	}
	l := structtree.NewElement("L")
	for _, p := range f.Children {
		li := structtree.NewElement("LI")
		lbody := structtree.NewElement("LBody")
		structtree.AppendChild(lbody, p)
		structtree.AppendChild(li, lbody)
		structtree.AppendChild(l, li)
	}

	newKids := make([]*structtree.StructNode, 0, len(kids)-len(f.Children)+1)
	newKids = append(newKids, kids[:start]...)
	newKids = append(newKids, l)
	newKids = append(newKids, kids[start+len(f.Children):]...)
	structtree.SetChildren(f.Parent, newKids)
	return nil
}

// WrapBulletAlignedKidsInLBody wraps raw kids whose y-position matches the
// bullet's y inside a new LBody, for list items whose body content arrived
// as loose siblings rather than a single LBody wrapper.
type WrapBulletAlignedKidsInLBody struct{ multiChildFix }

func NewWrapBulletAlignedKidsInLBody(parent *structtree.StructNode, children []*structtree.StructNode) *WrapBulletAlignedKidsInLBody {
	return &WrapBulletAlignedKidsInLBody{multiChildFix{kind: "wrap-bullet-aligned-kids-in-lbody", Parent: parent, Children: children}}
}

func (f *WrapBulletAlignedKidsInLBody) Apply(issue.Context) error {
	if !childrenStillInPlace(f.Parent, f.Children) {
		return nil
	}
	lbody := structtree.NewElement("LBody")
	kids := structtree.StructKids(f.Parent)
	start := -1
	for i, k := range kids {
		if k == f.Children[0] {
			start = i
			break
		}
	}
	for _, c := range f.Children {
		structtree.AppendChild(lbody, c)
	}
	newKids := make([]*structtree.StructNode, 0, len(kids)-len(f.Children)+1)
	newKids = append(newKids, kids[:start]...)
	newKids = append(newKids, lbody)
	newKids = append(newKids, kids[start+len(f.Children):]...)
	structtree.SetChildren(f.Parent, newKids)
	return nil
}
