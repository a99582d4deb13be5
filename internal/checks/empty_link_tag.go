package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// defaultRectTolerance is the overlap tolerance, in page-unit points, used
// when comparing an annotation's rect against a candidate sibling MCR's
// bounds (SPEC_FULL §A.2's "MCID rect-equality tolerance").
const defaultRectTolerance = 0.5

// EmptyLinkTag detects a Link element with only an OBJR child and no
// marked-content, then looks for a sibling MCR whose bounding box overlaps
// the annotation's rect, attaching a fix that pulls it in (§4.4, §4.6).
// RectTolerance is configurable; the zero value falls back to
// defaultRectTolerance.
type EmptyLinkTag struct {
	walker.Base
	RectTolerance float64
}

func (c *EmptyLinkTag) Name() string { return "EmptyLinkTag" }

func (c *EmptyLinkTag) tolerance() float64 {
	if c.RectTolerance > 0 {
		return c.RectTolerance
	}
	return defaultRectTolerance
}

func (c *EmptyLinkTag) EnterElement(ctx *walker.Context) bool {
	if ctx.Role != "Link" || ctx.Doc == nil {
		return true
	}
	leaves := structtree.AllKids(ctx.Node)
	var objr *structtree.StructNode
	hasMCR := false
	for _, l := range leaves {
		switch l.Kind {
		case structtree.OBJRNode:
			objr = l
		case structtree.MCRNode:
			hasMCR = true
		}
	}
	if objr == nil || hasMCR {
		return true
	}

	page := ctx.Doc.PageNumberOf(ctx.Node)
	doc := ctx.Doc.Document()
	p := doc.Page(page)
	if p == nil {
		c.Issues().Append(issue.New(issue.TypeEmptyLinkTag, issue.SeverityWarning,
			loc(ctx), "Link has no marked content and its page could not be resolved", nil))
		return true
	}

	var annotRect *doccontainer.Rect
	for _, a := range p.Annotations() {
		if a.ID == objr.AnnotID {
			r := a.Rect
			annotRect = &r
			break
		}
	}
	if annotRect == nil {
		c.Issues().Append(issue.New(issue.TypeEmptyLinkTag, issue.SeverityWarning,
			loc(ctx), "Link has no marked content and its annotation could not be located", nil))
		return true
	}

	bounds, err := ctx.Doc.PageBounds(page)
	parent := ctx.Node.Parent()
	if err == nil && parent != nil {
		for _, sib := range structtree.AllKids(parent) {
			if sib == ctx.Node || sib.Kind != structtree.MCRNode {
				continue
			}
			if r, ok := bounds[sib.MCID]; ok && r.Overlaps(*annotRect, c.tolerance()) {
				c.Issues().Append(issue.New(issue.TypeEmptyLinkTag, issue.SeverityWarning,
					loc(ctx), "Link has no marked content; an overlapping sibling MCR was found",
					&fixes.AttachSiblingMCR{Link: ctx.Node, MCR: sib, Parent: parent}))
				return true
			}
		}
	}

	c.Issues().Append(issue.New(issue.TypeEmptyLinkTag, issue.SeverityWarning,
		loc(ctx), "Link has no marked content and no overlapping sibling MCR was found", nil))
	return true
}
