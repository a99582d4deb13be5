package walker

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
)

type recordingCheck struct {
	Base
	name     string
	prereqs  []string
	entered  []string
	left     []string
	skipRole structtree.Role
}

func (r *recordingCheck) Name() string               { return r.name }
func (r *recordingCheck) Prerequisites() []string     { return r.prereqs }
func (r *recordingCheck) EnterElement(ctx *Context) bool {
	r.entered = append(r.entered, ctx.Path)
	return ctx.Role != r.skipRole
}
func (r *recordingCheck) LeaveElement(ctx *Context) {
	r.left = append(r.left, ctx.Path)
}

func buildTree() *structtree.StructTree {
	tree := structtree.New()
	doc := structtree.NewElement("Document")
	part := structtree.NewElement("Part")
	sect := structtree.NewElement("Sect")
	structtree.AppendChild(doc, part)
	structtree.AppendChild(part, sect)
	structtree.AppendChild(tree.Root, doc)
	return tree
}

func TestWalkerPreOrderAndLeaveOnSkip(t *testing.T) {
	c := &recordingCheck{name: "rec", skipRole: "Part"}
	w, err := New(tagschema.New(), nil, c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Run(buildTree(), nil)

	wantEntered := []string{"/Document[1]", "/Document[1].Part[1]"}
	if len(c.entered) != len(wantEntered) {
		t.Fatalf("entered %v, want %v", c.entered, wantEntered)
	}
	for i := range wantEntered {
		if c.entered[i] != wantEntered[i] {
			t.Fatalf("entered[%d] = %q, want %q", i, c.entered[i], wantEntered[i])
		}
	}
	// LeaveElement must still be called on the skipped node.
	if len(c.left) != len(wantEntered) {
		t.Fatalf("left %v, want matching entered set (Sect should never be entered)", c.left)
	}
}

func TestPrerequisiteViolation(t *testing.T) {
	a := &recordingCheck{name: "A", prereqs: []string{"B"}}
	b := &recordingCheck{name: "B"}
	if _, err := New(tagschema.New(), nil, a, b); err == nil {
		t.Fatalf("expected prerequisite_violation when A (needs B) precedes B")
	}
	if _, err := New(tagschema.New(), nil, b, a); err != nil {
		t.Fatalf("B before A should satisfy prerequisites: %v", err)
	}
}

func TestVisitorPanicDoesNotAbortWalk(t *testing.T) {
	panicker := &panicCheck{}
	rec := &recordingCheck{name: "rec"}
	w, err := New(tagschema.New(), nil, panicker, rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Run(buildTree(), nil)
	if len(rec.entered) != 3 {
		t.Fatalf("expected the well-behaved visitor to see all 3 nodes despite the other panicking, got %v", rec.entered)
	}
}

type panicCheck struct{ Base }

func (p *panicCheck) Name() string           { return "panicker" }
func (p *panicCheck) EnterElement(*Context) bool {
	panic("boom")
}

func TestIssueListConcatenationPreservesRegistrationOrder(t *testing.T) {
	first := &issuingCheck{name: "first", typ: issue.TypeEmptyElement}
	second := &issuingCheck{name: "second", typ: issue.TypeWrongChild}
	w, err := New(tagschema.New(), nil, first, second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	issues := w.Run(buildTree(), nil)
	if issues.Len() != 2 {
		t.Fatalf("got %d issues, want 2", issues.Len())
	}
	if issues.Items()[0].Type != issue.TypeEmptyElement || issues.Items()[1].Type != issue.TypeWrongChild {
		t.Fatalf("issues not in registration order: %v", issues.Items())
	}
}

type issuingCheck struct {
	Base
	name string
	typ  issue.Type
}

func (c *issuingCheck) Name() string { return c.name }
func (c *issuingCheck) EnterElement(ctx *Context) bool {
	c.Issues().Append(issue.New(c.typ, issue.SeverityInfo, issue.Location{Path: ctx.Path}, "x", nil))
	return true
}
