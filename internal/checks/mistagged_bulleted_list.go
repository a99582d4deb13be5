package checks

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// MistaggedBulletedList detects a Lbl whose only structural child is a
// Figure — a decorative-bullet image tagged as a caption rather than a
// list marker — and attaches the TreatLblFigureAsBullet fix (§4.4).
type MistaggedBulletedList struct {
	walker.Base
}

func (c *MistaggedBulletedList) Name() string { return "MistaggedBulletedList" }

func (c *MistaggedBulletedList) EnterElement(ctx *walker.Context) bool {
	if ctx.Role != "Lbl" {
		return true
	}
	kids := structtree.StructKids(ctx.Node)
	if len(kids) == 1 && kids[0].Role == "Figure" {
		c.Issues().Append(issue.New(issue.TypeMistaggedBullet, issue.SeverityWarning,
			loc(ctx), "Lbl wraps a decorative-bullet Figure",
			fixes.NewTreatLblFigureAsBullet(ctx.Node, kids[0])))
	}
	return true
}
