package fixes

import (
	"testing"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

func TestChangeRoleRetags(t *testing.T) {
	fig := structtree.NewElement("Figure")
	f := &ChangeRole{Element: fig, From: "Figure", To: "P"}
	if err := f.Apply(nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fig.Role != "P" {
		t.Fatalf("expected role changed to P, got %s", fig.Role)
	}
	if err := f.Apply(nil); err != nil {
		t.Fatalf("second Apply should no-op, got: %v", err)
	}
}

func TestChangeRoleFailsOnUnexpectedRole(t *testing.T) {
	fig := structtree.NewElement("Figure")
	fig.Role = "Span"
	f := &ChangeRole{Element: fig, From: "Figure", To: "P"}
	if err := f.Apply(nil); err == nil {
		t.Fatalf("expected fix_failed when role no longer matches From")
	}
}
