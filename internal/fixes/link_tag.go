package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// CreateLinkTag wraps an unmarked link annotation with a new Link structure
// element containing an OBJR to the annotation and an MCR for the
// underlying text span (§4.5). Parent is where the new Link element is
// appended; checks.UnmarkedLinks passes the structure tree's root.
type CreateLinkTag struct {
	Parent   *structtree.StructNode
	Page     int
	AnnotID  int
	MCID     int
	HasMCR   bool
}

func (f *CreateLinkTag) Priority() int { return PriorityLinkTag }

func (f *CreateLinkTag) GroupLabel() string { return "create-link-tag" }

func (f *CreateLinkTag) Describe() string {
	return fmt.Sprintf("tag unmarked link annotation %d on page %d", f.AnnotID, f.Page)
}

func (f *CreateLinkTag) DescribeCtx(issue.Context) string { return f.Describe() }

func (f *CreateLinkTag) Invalidates(issue.Fix) bool { return false }

// Apply is idempotent: if Parent already has a Link child whose OBJR
// targets this annotation, it no-ops.
func (f *CreateLinkTag) Apply(ctx issue.Context) error {
	for _, k := range structtree.StructKids(f.Parent) {
		if k.Role != "Link" {
			continue
		}
		for _, leaf := range structtree.AllKids(k) {
			if leaf.Kind == structtree.OBJRNode && leaf.AnnotID == f.AnnotID {
				return nil
			}
		}
	}

	p := ctx.Document().Page(f.Page)
	if p == nil {
		return fmt.Errorf("fix_failed: page %d not found for link annotation %d", f.Page, f.AnnotID)
	}
	found := false
	for _, a := range p.Annotations() {
		if a.ID == f.AnnotID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("fix_failed: annotation %d no longer present on page %d", f.AnnotID, f.Page)
	}

	link := structtree.NewElement("Link")
	structtree.AppendChild(link, structtree.NewOBJR(f.AnnotID))
	if f.HasMCR {
		structtree.AppendChild(link, structtree.NewMCR(f.Page, f.MCID))
	}
	structtree.AppendChild(f.Parent, link)
	return nil
}

// FromLinkWithoutTag builds the arguments a CreateLinkTag needs out of the
// doccontainer-reported unmarked link, for use by the document-level check
// that discovers these.
func FromLinkWithoutTag(parent *structtree.StructNode, l doccontainer.LinkWithoutTag) *CreateLinkTag {
	return &CreateLinkTag{
		Parent:  parent,
		Page:    l.Page,
		AnnotID: l.Annot.ID,
		MCID:    l.MCID,
		HasMCR:  l.HasMCR,
	}
}
