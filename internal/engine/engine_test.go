package engine

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/checks"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

func listSchema() *tagschema.Schema {
	s := tagschema.New()
	s.Rules["L"] = &tagschema.Rule{Role: "L", AllowedChildren: []structtree.Role{"LI"}}
	s.Rules["LI"] = &tagschema.Rule{Role: "LI", AllowedChildren: []structtree.Role{"Lbl", "LBody"}, RequiredChildren: []structtree.Role{"LBody"}}
	s.Rules["LBody"] = &tagschema.Rule{Role: "LBody"}
	s.Rules["Lbl"] = &tagschema.Rule{Role: "Lbl"}
	s.Rules["P"] = &tagschema.Rule{Role: "P"}
	return s
}

func schemaValidationFactory() walker.Check { return &checks.SchemaValidation{} }

// TestEngineS1EndToEnd reproduces spec scenario S1 through the full engine:
// detect, apply, re-detect down to an empty remaining list.
func TestEngineS1EndToEnd(t *testing.T) {
	l := structtree.NewElement("L")
	p1, p2, p3 := structtree.NewElement("P"), structtree.NewElement("P"), structtree.NewElement("P")
	structtree.AppendChild(l, p1)
	structtree.AppendChild(l, p2)
	structtree.AppendChild(l, p3)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, l)
	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)

	e, err := New(listSchema(), nil, nil, schemaValidationFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	detected := e.DetectIssues(tree, ctx)
	e.ApplyFixes(ctx, detected)

	redetected := e.DetectIssues(tree, ctx)
	e.ApplyFixes(ctx, redetected)

	final := e.DetectIssues(tree, ctx)
	if final.Len() != 0 {
		t.Fatalf("expected no remaining issues after two rounds, got %d: %v", final.Len(), final.Items())
	}

	kids := structtree.StructKids(l)
	if len(kids) != 3 {
		t.Fatalf("expected 3 LIs under L, got %d", len(kids))
	}
	for _, li := range kids {
		if li.Role != "LI" {
			t.Fatalf("expected LI wrapper, got %s", li.Role)
		}
		lbodyKids := structtree.StructKids(li)
		if len(lbodyKids) != 1 || lbodyKids[0].Role != "LBody" {
			t.Fatalf("expected LI > LBody, got %v", lbodyKids)
		}
	}
}

// TestEnginePrerequisiteViolation confirms construction fails the same way
// walker.New does when a registered check's prerequisite is missing.
func TestEnginePrerequisiteViolation(t *testing.T) {
	missingPageParts := func() walker.Check { return &checks.MissingPageParts{} }
	_, err := New(listSchema(), nil, nil, missingPageParts)
	if err == nil {
		t.Fatalf("expected prerequisite_violation constructing engine without NeedlessNesting registered first")
	}
}

// TestApplyFixesSkipsInvalidatedFix reproduces §8 property 4: once a
// higher-priority fix (ConvertToArtifact) applies, a lower-priority fix
// targeting a node inside its subtree is marked skipped, not applied.
func TestApplyFixesSkipsInvalidatedFix(t *testing.T) {
	div := structtree.NewElement("Div")
	inner := structtree.NewElement("P")
	structtree.AppendChild(div, inner)
	tree := structtree.New()
	structtree.AppendChild(tree.Root, div)
	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)

	e, err := New(listSchema(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	artifactIssue := issue.New(issue.TypeMistaggedArtifact, issue.SeverityWarning, issue.Location{}, "artifact", &fixes.ConvertToArtifact{Element: div})
	wrapIssue := issue.New(issue.TypeWrongChild, issue.SeverityError, issue.Location{}, "wrap", fixes.NewWrapInLI(div, inner))

	resolved := e.ApplyFixes(ctx, issue.NewList(artifactIssue, wrapIssue))

	if artifactIssue.State() != issue.StateResolved {
		t.Fatalf("expected the artifact fix to resolve, got %s", artifactIssue.State())
	}
	if wrapIssue.State() != issue.StateResolved || wrapIssue.Note() != "skipped: superseded" {
		t.Fatalf("expected the wrap fix marked skipped: superseded, got state=%s note=%q", wrapIssue.State(), wrapIssue.Note())
	}
	if resolved.Len() != 2 {
		t.Fatalf("expected both issues in the resolved list, got %d", resolved.Len())
	}
	if div.Parent() != nil {
		t.Fatalf("expected div detached by the artifact fix")
	}
}

// TestApplyFixesMarksFailure confirms a fix returning an error is marked
// failed, not resolved, and does not abort processing the rest of the batch.
func TestApplyFixesMarksFailure(t *testing.T) {
	sect := structtree.NewElement("Sect")
	tree := structtree.New()
	structtree.AppendChild(tree.Root, sect)
	ctx := doccontext.New(doccontainer.NewFakeDocument(1), tree)

	e, err := New(listSchema(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	badFix := &fixes.CreateLinkTag{Parent: sect, Page: 1, AnnotID: 99}
	failing := issue.New(issue.TypeUnmarkedLink, issue.SeverityWarning, issue.Location{}, "unmarked", badFix)

	resolved := e.ApplyFixes(ctx, issue.NewList(failing))
	if failing.State() != issue.StateFailed {
		t.Fatalf("expected the fix to be marked failed, got %s", failing.State())
	}
	if resolved.Len() != 0 {
		t.Fatalf("expected no resolved issues, got %d", resolved.Len())
	}
}
