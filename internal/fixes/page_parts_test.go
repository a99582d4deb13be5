package fixes

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

func TestSetupDocumentStructureGroupsByPage(t *testing.T) {
	doc := doccontainer.NewFakeDocument(2)
	tree := structtree.New()
	docNode := structtree.NewElement("Document")
	structtree.AppendChild(tree.Root, docNode)

	h1 := structtree.NewElement("H1")
	h1.ExplicitPage = 1
	p1 := structtree.NewElement("P")
	p1.ExplicitPage = 1
	p2 := structtree.NewElement("P")
	p2.ExplicitPage = 2
	unresolved := structtree.NewElement("Sect") // no resolvable page

	structtree.AppendChild(docNode, h1)
	structtree.AppendChild(docNode, p1)
	structtree.AppendChild(docNode, p2)
	structtree.AppendChild(docNode, unresolved)
	doc.Tree = tree

	ctx := doccontext.New(doc, tree)
	f := &SetupDocumentStructure{Document: docNode}
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	kids := structtree.StructKids(docNode)
	if len(kids) != 3 {
		t.Fatalf("expected 2 Parts + 1 unresolved child, got %d: %v", len(kids), kids)
	}
	part1, part2, tail := kids[0], kids[1], kids[2]
	if part1.Role != "Part" || part1.ExplicitPage != 1 {
		t.Fatalf("expected first child to be Part[page=1], got %+v", part1)
	}
	if part2.Role != "Part" || part2.ExplicitPage != 2 {
		t.Fatalf("expected second child to be Part[page=2], got %+v", part2)
	}
	if tail != unresolved {
		t.Fatalf("expected unresolved element to remain a direct Document child")
	}

	p1Kids := structtree.StructKids(part1)
	if len(p1Kids) != 2 || p1Kids[0] != h1 || p1Kids[1] != p1 {
		t.Fatalf("expected Part[1] to contain [h1, p1], got %v", p1Kids)
	}
	p2Kids := structtree.StructKids(part2)
	if len(p2Kids) != 1 || p2Kids[0] != p2 {
		t.Fatalf("expected Part[2] to contain [p2], got %v", p2Kids)
	}
}

func TestSetupDocumentStructureIsIdempotent(t *testing.T) {
	doc := doccontainer.NewFakeDocument(1)
	tree := structtree.New()
	docNode := structtree.NewElement("Document")
	structtree.AppendChild(tree.Root, docNode)
	p1 := structtree.NewElement("P")
	p1.ExplicitPage = 1
	structtree.AppendChild(docNode, p1)
	doc.Tree = tree

	ctx := doccontext.New(doc, tree)
	f := &SetupDocumentStructure{Document: docNode}
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	firstKids := structtree.StructKids(docNode)
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	secondKids := structtree.StructKids(docNode)
	if len(firstKids) != len(secondKids) || firstKids[0] != secondKids[0] {
		t.Fatalf("expected second Apply to be a no-op, got %v then %v", firstKids, secondKids)
	}
}
