package doccontainer

import (
	"fmt"
	"sort"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// FakePage is an in-memory Page used by tests and by the fake Document
// below. Content is modeled abstractly as a set of MCIDs each tagged either
// "Tag" (real content) or "Artifact"; RewriteMCIDToArtifact simply flips the
// tag, the same observable effect the real byte-level rewrite has.
type FakePage struct {
	Num     int
	Tags    map[int]string // mcid -> "Tag" or "Artifact"
	Bounds  map[int]Rect
	Annots  []Annotation
}

// NewFakePage returns an empty page numbered n.
func NewFakePage(n int) *FakePage {
	return &FakePage{Num: n, Tags: map[int]string{}, Bounds: map[int]Rect{}}
}

func (p *FakePage) Number() int                   { return p.Num }
func (p *FakePage) Annotations() []Annotation      { return p.Annots }
func (p *FakePage) ContentBounds() (map[int]Rect, error) {
	out := make(map[int]Rect, len(p.Bounds))
	for k, v := range p.Bounds {
		out[k] = v
	}
	return out, nil
}

// RemoveAnnotation matches by identity first, then by rect equality within
// tol, matching ConvertToArtifact's contract.
func (p *FakePage) RemoveAnnotation(ann Annotation, tol float64) bool {
	for i, a := range p.Annots {
		if a.ID == ann.ID {
			p.Annots = append(p.Annots[:i], p.Annots[i+1:]...)
			return true
		}
	}
	for i, a := range p.Annots {
		if a.Rect.Overlaps(ann.Rect, tol) && rectEqual(a.Rect, ann.Rect, tol) {
			p.Annots = append(p.Annots[:i], p.Annots[i+1:]...)
			return true
		}
	}
	return false
}

func rectEqual(a, b Rect, tol float64) bool {
	return abs(a.X0-b.X0) <= tol && abs(a.Y0-b.Y0) <= tol && abs(a.X1-b.X1) <= tol && abs(a.Y1-b.Y1) <= tol
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// RewriteMCIDToArtifact flips each present mcid's tag to "Artifact",
// returning any mcid not found on this page.
func (p *FakePage) RewriteMCIDToArtifact(mcids []int) ([]int, error) {
	var missing []int
	for _, id := range mcids {
		if _, ok := p.Tags[id]; !ok {
			missing = append(missing, id)
			continue
		}
	}
	if len(missing) > 0 {
		return missing, nil
	}
	for _, id := range mcids {
		p.Tags[id] = "Artifact"
	}
	return nil, nil
}

// FakeDocument is an in-memory Document implementing both Document and
// StructTreeSource, for use in tests across this module.
type FakeDocument struct {
	Pages        map[int]*FakePage
	Tree         *structtree.StructTree
	ObjPageIndex map[int]int
	IsEncrypted  bool
	closed       bool

	Lang             string
	StructuredTabs   map[int]bool // page -> whether /Tabs is "S"
	Marked           bool
	DeclaresPDFUA    bool
	UntaggedLinks    []LinkWithoutTag
	OrphanWidgets    []WidgetOutsideForm
	BadLigatures     []LigatureMapping
}

// NewFakeDocument returns an empty fake document with n pages pre-created.
func NewFakeDocument(n int) *FakeDocument {
	d := &FakeDocument{Pages: map[int]*FakePage{}, ObjPageIndex: map[int]int{}}
	for i := 1; i <= n; i++ {
		d.Pages[i] = NewFakePage(i)
	}
	return d
}

func (d *FakeDocument) Page(n int) Page {
	p, ok := d.Pages[n]
	if !ok {
		return nil
	}
	return p
}

func (d *FakeDocument) PageCount() int {
	return len(d.Pages)
}

func (d *FakeDocument) ObjectPage(objNum int) int {
	return d.ObjPageIndex[objNum]
}

func (d *FakeDocument) Encrypted() bool { return d.IsEncrypted }

func (d *FakeDocument) Close() error {
	if d.closed {
		return fmt.Errorf("already closed")
	}
	d.closed = true
	return nil
}

func (d *FakeDocument) StructTree() (*structtree.StructTree, bool) {
	return d.Tree, d.Tree != nil
}

func (d *FakeDocument) Language() string { return d.Lang }

func (d *FakeDocument) TabOrderIsStructure(page int) bool {
	if d.StructuredTabs == nil {
		return true
	}
	ok, set := d.StructuredTabs[page]
	if !set {
		return true
	}
	return ok
}

func (d *FakeDocument) MarkedDocument() bool             { return d.Marked }
func (d *FakeDocument) DeclaresPDFUAConformance() bool   { return d.DeclaresPDFUA }
func (d *FakeDocument) LinksWithoutTags() []LinkWithoutTag { return d.UntaggedLinks }
func (d *FakeDocument) WidgetsOutsideForm() []WidgetOutsideForm {
	return d.OrphanWidgets
}
func (d *FakeDocument) BadLigatureMappings() []LigatureMapping { return d.BadLigatures }

func (d *FakeDocument) RemapLigature(page int, font string, code rune, correctTo string) error {
	for i, m := range d.BadLigatures {
		if m.Page == page && m.FontName == font && m.Code == code {
			d.BadLigatures[i].MapsTo = correctTo
			d.BadLigatures[i].Correct = correctTo
			return nil
		}
	}
	return fmt.Errorf("no such ligature mapping: page %d font %q code %q", page, font, string(code))
}

// SortedPageNumbers returns d's page numbers in ascending order, a
// convenience used by tests that need deterministic iteration.
func (d *FakeDocument) SortedPageNumbers() []int {
	nums := make([]int, 0, len(d.Pages))
	for n := range d.Pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
