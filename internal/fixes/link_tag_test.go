package fixes

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

func TestCreateLinkTagAddsOBJRAndMCR(t *testing.T) {
	doc := doccontainer.NewFakeDocument(1)
	doc.Pages[1].Annots = append(doc.Pages[1].Annots, doccontainer.Annotation{ID: 9, Kind: "Link"})
	tree := structtree.New()
	sect := structtree.NewElement("Sect")
	structtree.AppendChild(tree.Root, sect)
	doc.Tree = tree

	ctx := doccontext.New(doc, tree)
	f := &CreateLinkTag{Parent: sect, Page: 1, AnnotID: 9, MCID: 3, HasMCR: true}
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	kids := structtree.StructKids(sect)
	if len(kids) != 1 || kids[0].Role != "Link" {
		t.Fatalf("expected a new Link child, got %v", kids)
	}
	leaves := structtree.AllKids(kids[0])
	if len(leaves) != 2 || leaves[0].Kind != structtree.OBJRNode || leaves[0].AnnotID != 9 {
		t.Fatalf("expected Link's first leaf to be an OBJR targeting 9, got %v", leaves)
	}
	if leaves[1].Kind != structtree.MCRNode || leaves[1].MCID != 3 {
		t.Fatalf("expected Link's second leaf to be an MCR for mcid 3, got %v", leaves[1])
	}
}

func TestCreateLinkTagIsIdempotent(t *testing.T) {
	doc := doccontainer.NewFakeDocument(1)
	doc.Pages[1].Annots = append(doc.Pages[1].Annots, doccontainer.Annotation{ID: 9, Kind: "Link"})
	tree := structtree.New()
	sect := structtree.NewElement("Sect")
	structtree.AppendChild(tree.Root, sect)
	doc.Tree = tree
	ctx := doccontext.New(doc, tree)

	f := &CreateLinkTag{Parent: sect, Page: 1, AnnotID: 9, MCID: 3, HasMCR: true}
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("second Apply should no-op, got: %v", err)
	}
	if len(structtree.StructKids(sect)) != 1 {
		t.Fatalf("expected still only one Link child after re-apply")
	}
}

func TestCreateLinkTagFailsWhenAnnotationGone(t *testing.T) {
	doc := doccontainer.NewFakeDocument(1)
	tree := structtree.New()
	sect := structtree.NewElement("Sect")
	structtree.AppendChild(tree.Root, sect)
	doc.Tree = tree
	ctx := doccontext.New(doc, tree)

	f := &CreateLinkTag{Parent: sect, Page: 1, AnnotID: 42}
	if err := f.Apply(ctx); err == nil {
		t.Fatalf("expected fix_failed when annotation 42 is not present on the page")
	}
}
