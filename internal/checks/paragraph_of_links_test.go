package checks

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

func TestParagraphOfLinksListifies(t *testing.T) {
	sect := structtree.NewElement("Sect")
	p := structtree.NewElement("P")
	link1 := structtree.NewElement("Link")
	link2 := structtree.NewElement("Link")
	structtree.AppendChild(p, link1)
	structtree.AppendChild(p, link2)
	structtree.AppendChild(sect, p)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, sect)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)
	w, err := walker.New(tagschema.New(), nil, &ParagraphOfLinks{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := w.Run(tree, ctx)
	if issues.Len() != 1 {
		t.Fatalf("expected one paragraph_of_links issue, got %d", issues.Len())
	}
	if err := issues.Items()[0].Fix.Apply(ctx); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	kids := structtree.StructKids(sect)
	if len(kids) != 1 || kids[0].Role != "L" {
		t.Fatalf("expected sect's child replaced by an L, got %v", kids)
	}
	lis := structtree.StructKids(kids[0])
	if len(lis) != 2 {
		t.Fatalf("expected two LIs, got %d", len(lis))
	}
}

func TestParagraphOfLinksNoIssueForMixedChildren(t *testing.T) {
	sect := structtree.NewElement("Sect")
	p := structtree.NewElement("P")
	link1 := structtree.NewElement("Link")
	span := structtree.NewElement("Span")
	structtree.AppendChild(p, link1)
	structtree.AppendChild(p, span)
	structtree.AppendChild(sect, p)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, sect)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)
	w, err := walker.New(tagschema.New(), nil, &ParagraphOfLinks{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := w.Run(tree, ctx)
	if issues.Len() != 0 {
		t.Fatalf("expected no issue for mixed children, got %d", issues.Len())
	}
}
