package fixes

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// WrapInDocument creates a Document element under the tree root and
// reparents every existing root structure child under it, when the root
// has no Document child already (§4.5). It is the first fix to run
// (PriorityDocumentSetup) since SetupDocumentStructure depends on a
// Document element existing.
type WrapInDocument struct {
	Tree *structtree.StructTree
}

func (f *WrapInDocument) Priority() int { return PriorityDocumentSetup }

func (f *WrapInDocument) GroupLabel() string { return "wrap-in-document" }

func (f *WrapInDocument) Describe() string { return "wrap root structure children in a Document element" }

func (f *WrapInDocument) DescribeCtx(issue.Context) string { return f.Describe() }

func (f *WrapInDocument) Invalidates(issue.Fix) bool { return false }

// Apply is idempotent: if the root already has a Document child, it no-ops.
func (f *WrapInDocument) Apply(issue.Context) error {
	root := f.Tree.Root
	for _, k := range structtree.StructKids(root) {
		if k.Role == "Document" {
			return nil
		}
	}
	existing := structtree.StructKids(root)
	doc := structtree.NewElement("Document")
	structtree.SetChildren(root, []*structtree.StructNode{doc})
	structtree.SetChildren(doc, existing)
	return nil
}
