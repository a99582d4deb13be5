// Package checks implements the structure-tree visitors of §4.4: the
// cooperating walker.Check implementations that, driven by a single
// pre-order pass, inspect each structure element against the schema and
// emit issues — some carrying a candidate fixes.Fix.
package checks

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// SchemaValidation checks every element against the loaded schema: role
// membership, parent constraint, child cardinality, disallowed children
// (with a candidate fix), and the child-role sequence pattern.
type SchemaValidation struct {
	walker.Base
}

func (c *SchemaValidation) Name() string { return "SchemaValidation" }

func (c *SchemaValidation) EnterElement(ctx *walker.Context) bool {
	rule := ctx.Rule
	if rule == nil {
		c.Issues().Append(issue.New(issue.TypeUnknownRole, issue.SeverityWarning,
			loc(ctx), fmt.Sprintf("role %s is not defined in the schema", ctx.Role), nil))
		return true
	}

	if !rule.AllowsParent(ctx.ParentRole) {
		c.Issues().Append(issue.New(issue.TypeWrongParent, issue.SeverityError,
			loc(ctx), fmt.Sprintf("%s may not appear under %s", ctx.Role, ctx.ParentRole), nil))
	}

	n := len(ctx.ChildRoles)
	if rule.MinChildren > 0 && n < rule.MinChildren {
		c.Issues().Append(issue.New(issue.TypeWrongChildCount, issue.SeverityWarning,
			loc(ctx), fmt.Sprintf("%s has %d children, requires at least %d", ctx.Role, n, rule.MinChildren), nil))
	}
	if rule.MaxChildren > 0 && n > rule.MaxChildren {
		c.Issues().Append(issue.New(issue.TypeWrongChildCount, issue.SeverityWarning,
			loc(ctx), fmt.Sprintf("%s has %d children, allows at most %d", ctx.Role, n, rule.MaxChildren), nil))
	}
	for _, required := range rule.RequiredChildren {
		present := false
		for _, got := range ctx.ChildRoles {
			if got == required {
				present = true
				break
			}
		}
		if !present {
			c.Issues().Append(issue.New(issue.TypeWrongChildCount, issue.SeverityWarning,
				loc(ctx), fmt.Sprintf("%s is missing required child %s", ctx.Role, required), nil))
		}
	}

	c.checkDisallowedChildren(ctx, rule)

	if pattern, err := rule.Pattern(); err == nil && pattern != nil {
		if !pattern.FullMatch(ctx.ChildRoles) {
			c.Issues().Append(issue.New(issue.TypeWrongChildPattern, issue.SeverityWarning,
				loc(ctx), fmt.Sprintf("%s's children do not match pattern %q", ctx.Role, pattern.String()), nil))
		}
	}

	return true
}

func (c *SchemaValidation) checkDisallowedChildren(ctx *walker.Context, rule *tagschema.Rule) {
	var disallowed []*structtree.StructNode
	for _, child := range ctx.Children {
		if !rule.AllowsChild(structtree.MappedRole(child)) {
			disallowed = append(disallowed, child)
		}
	}
	if len(disallowed) == 0 {
		return
	}

	if mf := tryMultiChildFix(ctx.Node, disallowed); mf != nil {
		roles := make([]structtree.Role, len(disallowed))
		for i, d := range disallowed {
			roles[i] = d.Role
		}
		c.Issues().Append(issue.New(issue.TypeWrongChild, issue.SeverityError,
			loc(ctx), fmt.Sprintf("%s has disallowed children %v", ctx.Role, roles), mf))
		return
	}

	for _, child := range disallowed {
		var fix issue.Fix
		if sf := trySingleChildFix(ctx.Node, child); sf != nil {
			fix = sf
		}
		c.Issues().Append(issue.New(issue.TypeWrongChild, issue.SeverityError,
			Location(ctx.Node, child.Role, ctx.Path), fmt.Sprintf("%s is not allowed under %s", child.Role, ctx.Role), fix))
	}
}

// tryMultiChildFix recognizes the two alternating-pair shapes §4.5 names:
// L > Lbl,P,Lbl,P,... and L > Lbl,LBody,Lbl,LBody,...; and the
// all-Link-children-of-a-P shape. It returns nil if children doesn't match
// a recognized group shape.
func tryMultiChildFix(parent *structtree.StructNode, children []*structtree.StructNode) issue.Fix {
	if parent.Role == "L" && isAlternating(children, "Lbl", "P") {
		return fixes.NewWrapPairsOfLblPInLI(parent, children)
	}
	if parent.Role == "L" && isAlternating(children, "Lbl", "LBody") {
		return fixes.NewWrapPairsOfLblLBodyInLI(parent, children)
	}
	if parent.Role == "P" && len(children) >= 2 && allRole(children, "Link") && len(structtree.StructKids(parent)) == len(children) {
		return fixes.NewListifyParagraphOfLinks(parent, children)
	}
	return nil
}

func isAlternating(nodes []*structtree.StructNode, a, b structtree.Role) bool {
	if len(nodes) < 2 || len(nodes)%2 != 0 {
		return false
	}
	for i, n := range nodes {
		want := a
		if i%2 == 1 {
			want = b
		}
		if n.Role != want {
			return false
		}
	}
	return true
}

func allRole(nodes []*structtree.StructNode, role structtree.Role) bool {
	for _, n := range nodes {
		if n.Role != role {
			return false
		}
	}
	return true
}

// trySingleChildFix recognizes the §4.5 single-child shapes for one
// disallowed (parent, child) pair. Returns nil if none applies.
func trySingleChildFix(parent, child *structtree.StructNode) issue.Fix {
	switch parent.Role {
	case "L":
		switch child.Role {
		case "Div", "P", "Figure", "Span", "LBody":
			return fixes.NewWrapInLI(parent, child)
		}
	case "LI":
		switch child.Role {
		case "P", "Div", "Figure", "Span":
			hasLBody := false
			for _, k := range structtree.StructKids(parent) {
				if k.Role == "LBody" {
					hasLBody = true
				}
			}
			if !hasLBody {
				return fixes.NewWrapInLBody(parent, child)
			}
			if child.Role == "P" {
				return fixes.NewChangePToLblInLI(parent, child)
			}
		}
	case "Lbl":
		if child.Role == "Figure" {
			return fixes.NewTreatLblFigureAsBullet(parent, child)
		}
	case "P":
		if child.Role == "LBody" {
			return fixes.NewExtractLBodyToList(parent, child)
		}
	}
	return nil
}

// loc builds an issue.Location from a walker.Context pointing at ctx.Node
// itself (the element being validated).
func loc(ctx *walker.Context) issue.Location {
	page := 0
	if ctx.Doc != nil {
		page = ctx.Doc.PageNumberOf(ctx.Node)
	}
	return issue.Location{Node: ctx.Node, Role: ctx.Role, Page: page, Path: ctx.Path}
}

// Location builds an issue.Location for a child node using the parent's
// path as a prefix, since the walker only builds a Context per visited
// node and disallowed children are discovered from the parent's context.
func Location(parent *structtree.StructNode, childRole structtree.Role, parentPath string) issue.Location {
	return issue.Location{Node: parent, Role: childRole, Path: parentPath + "." + string(childRole)}
}
