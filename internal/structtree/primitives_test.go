package structtree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendChildNormalizesShape(t *testing.T) {
	l := NewElement("L")
	li1 := NewElement("LI")
	AppendChild(l, li1)
	if got, want := AllKids(l), []*StructNode{li1}; !cmp.Equal(got, want) {
		t.Fatalf("after first append: got %v, want %v", got, want)
	}
	if _, ok := GetKArray(l); ok {
		t.Fatalf("single child should not yet report as an array")
	}

	li2 := NewElement("LI")
	AppendChild(l, li2)
	arr, ok := GetKArray(l)
	if !ok {
		t.Fatalf("second append should normalize to an array")
	}
	if got, want := arr, []*StructNode{li1, li2}; !cmp.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if li1.Parent() != l || li2.Parent() != l {
		t.Fatalf("parent back-links not set")
	}
}

func TestMoveElementPreservesOrderAndReturnsFound(t *testing.T) {
	src := NewElement("L")
	dst := NewElement("L")
	a, b, c := NewElement("LI"), NewElement("LI"), NewElement("LI")
	AppendChild(src, a)
	AppendChild(src, b)
	AppendChild(src, c)

	if !MoveElement(src, b, dst) {
		t.Fatalf("MoveElement should report true when node was present")
	}
	if got, want := StructKids(src), []*StructNode{a, c}; !cmp.Equal(got, want) {
		t.Fatalf("source after move: got %v, want %v", got, want)
	}
	if got, want := StructKids(dst), []*StructNode{b}; !cmp.Equal(got, want) {
		t.Fatalf("dest after move: got %v, want %v", got, want)
	}
	if b.Parent() != dst {
		t.Fatalf("moved node's parent not updated")
	}
	if MoveElement(src, b, dst) {
		t.Fatalf("MoveElement should report false for a node no longer in source")
	}
}

func TestRemoveFromParentNoopWhenDetached(t *testing.T) {
	parent := NewElement("L")
	child := NewElement("LI")
	RemoveFromParent(child, parent) // no-op, child never added
	if len(AllKids(parent)) != 0 {
		t.Fatalf("expected no kids")
	}
}

func TestIsDescendantOf(t *testing.T) {
	root := NewElement("Document")
	part := NewElement("Part")
	sect := NewElement("Sect")
	AppendChild(root, part)
	AppendChild(part, sect)

	if !IsDescendantOf(sect, root) {
		t.Fatalf("sect should be a descendant of root")
	}
	if IsDescendantOf(root, sect) {
		t.Fatalf("root must not be a descendant of sect")
	}
	if IsDescendantOf(sect, sect) {
		t.Fatalf("a node is not its own proper descendant")
	}
}

func TestPageNumberOfResolvesFromDescendant(t *testing.T) {
	div := NewElement("Div")
	h1 := NewElement("H1")
	h1.ExplicitPage = 3
	AppendChild(div, h1)

	if got := PageNumberOf(div, nil); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}

	orphan := NewElement("Div")
	if got := PageNumberOf(orphan, func(*StructNode) int { return 7 }); got != 7 {
		t.Fatalf("fallback not used: got %d, want 7", got)
	}
	if got := PageNumberOf(orphan, nil); got != 0 {
		t.Fatalf("got %d, want 0 when unresolved", got)
	}
}

func TestIsSameElementByPointerNotValue(t *testing.T) {
	a := NewElement("P")
	b := NewElement("P")
	if IsSameElement(a, b) {
		t.Fatalf("two distinct nodes with equal fields must not be the same element")
	}
	if !IsSameElement(a, a) {
		t.Fatalf("a node is always the same element as itself")
	}
}
