package checks

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

func testSchema() *tagschema.Schema {
	s := tagschema.New()
	s.Rules["L"] = &tagschema.Rule{Role: "L", AllowedChildren: []structtree.Role{"LI"}}
	s.Rules["LI"] = &tagschema.Rule{Role: "LI", AllowedChildren: []structtree.Role{"Lbl", "LBody"}, RequiredChildren: []structtree.Role{"LBody"}}
	s.Rules["LBody"] = &tagschema.Rule{Role: "LBody"}
	s.Rules["Lbl"] = &tagschema.Rule{Role: "Lbl"}
	s.Rules["P"] = &tagschema.Rule{Role: "P"}
	return s
}

// TestSchemaValidationS1 reproduces spec scenario S1: L > P, P, P becomes
// L > LI > LBody > P for each, after applying the attached fix.
func TestSchemaValidationS1(t *testing.T) {
	l := structtree.NewElement("L")
	p1, p2, p3 := structtree.NewElement("P"), structtree.NewElement("P"), structtree.NewElement("P")
	structtree.AppendChild(l, p1)
	structtree.AppendChild(l, p2)
	structtree.AppendChild(l, p3)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, l)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)

	// Round 1: SchemaValidation sees L > P, P, P (no Lbl/P pairing to
	// recognize as a group) and wraps each P in its own LI.
	applyAllFixes(t, testSchema(), tree, ctx)
	// Round 2 (the engine's re-detect after a tag fix applied, §4.8 step
	// 7): LI > P is itself now disallowed, so WrapInLBody completes the
	// shape to LI > LBody > P.
	applyAllFixes(t, testSchema(), tree, ctx)

	kids := structtree.StructKids(l)
	if len(kids) != 3 {
		t.Fatalf("expected 3 LIs under L, got %d: %v", len(kids), kids)
	}
	for _, li := range kids {
		if li.Role != "LI" {
			t.Fatalf("expected LI wrapper, got %s", li.Role)
		}
		lbodyKids := structtree.StructKids(li)
		if len(lbodyKids) != 1 || lbodyKids[0].Role != "LBody" {
			t.Fatalf("expected LI to wrap a single LBody, got %v", lbodyKids)
		}
	}
}

// TestSchemaValidationS2 reproduces S2: LI > P becomes LI > LBody > P.
func TestSchemaValidationS2(t *testing.T) {
	li := structtree.NewElement("LI")
	p := structtree.NewElement("P")
	structtree.AppendChild(li, p)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, li)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)
	applyAllFixes(t, testSchema(), tree, ctx)

	kids := structtree.StructKids(li)
	if len(kids) != 1 || kids[0].Role != "LBody" {
		t.Fatalf("expected LI > LBody, got %v", kids)
	}
	lbodyKids := structtree.StructKids(kids[0])
	if len(lbodyKids) != 1 || lbodyKids[0] != p {
		t.Fatalf("expected LBody to wrap original P, got %v", lbodyKids)
	}
}

// TestSchemaValidationS3 reproduces S3: LI > Lbl triggers a missing-LBody
// wrong_child_count warning with no automatic fix.
func TestSchemaValidationS3(t *testing.T) {
	li := structtree.NewElement("LI")
	lbl := structtree.NewElement("Lbl")
	structtree.AppendChild(li, lbl)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, li)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)
	w, err := walker.New(testSchema(), nil, &SchemaValidation{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := w.Run(tree, ctx)

	found := false
	for _, iss := range issues.Items() {
		if iss.Type == "wrong_child_count" {
			found = true
			if iss.Fix != nil {
				t.Fatalf("expected no automatic fix for missing LBody")
			}
			if iss.Severity.String() != "warning" {
				t.Fatalf("expected warning severity, got %s", iss.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("expected a wrong_child_count issue for LI > Lbl missing LBody")
	}
}

// TestSchemaValidationChangesPToLblWhenLBodyAlreadyPresent reproduces §4.5's
// LI > {P, LBody} shape: since an LBody sibling already exists, the P can't
// be wrapped in a second LBody, so it's retagged Lbl instead.
func TestSchemaValidationChangesPToLblWhenLBodyAlreadyPresent(t *testing.T) {
	li := structtree.NewElement("LI")
	p := structtree.NewElement("P")
	lbody := structtree.NewElement("LBody")
	structtree.AppendChild(li, p)
	structtree.AppendChild(li, lbody)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, li)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)
	w, err := walker.New(testSchema(), nil, &SchemaValidation{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := w.Run(tree, ctx)

	found := false
	for _, iss := range issues.Items() {
		if iss.Type != "wrong_child" {
			continue
		}
		found = true
		if iss.Fix == nil {
			t.Fatalf("expected a ChangePToLblInLI fix")
		}
		if err := iss.Fix.Apply(ctx); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	if !found {
		t.Fatalf("expected a wrong_child issue for LI > {P, LBody}")
	}
	if p.Role != "Lbl" {
		t.Fatalf("expected P retagged Lbl, got %s", p.Role)
	}
}

// TestSchemaValidationS4 reproduces S4: L > Lbl, LBody, Lbl, LBody becomes
// L > LI(Lbl, LBody), LI(Lbl, LBody).
func TestSchemaValidationS4(t *testing.T) {
	l := structtree.NewElement("L")
	lbl1, lbody1 := structtree.NewElement("Lbl"), structtree.NewElement("LBody")
	lbl2, lbody2 := structtree.NewElement("Lbl"), structtree.NewElement("LBody")
	structtree.AppendChild(l, lbl1)
	structtree.AppendChild(l, lbody1)
	structtree.AppendChild(l, lbl2)
	structtree.AppendChild(l, lbody2)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, l)

	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)
	applyAllFixes(t, testSchema(), tree, ctx)

	kids := structtree.StructKids(l)
	if len(kids) != 2 || kids[0].Role != "LI" || kids[1].Role != "LI" {
		t.Fatalf("expected two LIs, got %v", kids)
	}
	li1Kids := structtree.StructKids(kids[0])
	if len(li1Kids) != 2 || li1Kids[0] != lbl1 || li1Kids[1] != lbody1 {
		t.Fatalf("expected first LI to wrap [lbl1, lbody1], got %v", li1Kids)
	}
}

// applyAllFixes runs one SchemaValidation pass over tree and applies every
// fix-carrying issue's fix, mirroring one round of CheckEngine's
// detect/apply cycle.
func applyAllFixes(t *testing.T, schema *tagschema.Schema, tree *structtree.StructTree, ctx *doccontext.DocContext) {
	t.Helper()
	w, err := walker.New(schema, nil, &SchemaValidation{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := w.Run(tree, ctx)
	for _, iss := range issues.Items() {
		if iss.Fix != nil {
			if err := iss.Fix.Apply(ctx); err != nil {
				t.Fatalf("Apply: %v", err)
			}
		}
	}
}
