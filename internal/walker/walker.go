package walker

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
)

// maxDepth bounds recursion the same way structtree's own walks are bounded
// (§9): beyond it, the walker logs a warning and skips the subtree.
const maxDepth = 64

// Walker performs the single depth-first, pre-order pass over structure
// elements described in §4.4. It is strictly single-threaded; visitors may
// rely on deterministic call order.
type Walker struct {
	checks []Check
	schema *tagschema.Schema
	log    *zap.Logger
}

// New validates checks' declared prerequisites against their registration
// order and returns a Walker. Construction fails with prerequisite_violation
// if any check's prerequisite is absent from, or ordered later than, itself.
func New(schema *tagschema.Schema, log *zap.Logger, checks ...Check) (*Walker, error) {
	if log == nil {
		log = zap.NewNop()
	}
	seen := map[string]bool{}
	for _, c := range checks {
		for _, prereq := range c.Prerequisites() {
			if !seen[prereq] {
				return nil, fmt.Errorf(
					"prerequisite_violation: %s requires %s, which is missing from or registered after it; "+
						"reorder registration so %s precedes %s, or remove one of them",
					c.Name(), prereq, prereq, c.Name())
			}
		}
		seen[c.Name()] = true
	}
	return &Walker{checks: checks, schema: schema, log: log}, nil
}

// Run executes one pre-order pass over tree, driving every registered
// check's lifecycle, and returns the concatenation of their issues in
// registration order.
func (w *Walker) Run(tree *structtree.StructTree, doc issue.Context) *issue.List {
	for _, c := range w.checks {
		c.BeforeTraversal()
	}

	idx := 0
	if tree != nil {
		w.walk(tree.Root, "", "", 0, &idx, doc)
	}

	for _, c := range w.checks {
		c.AfterTraversal()
	}

	result := issue.NewList()
	for _, c := range w.checks {
		result.AppendAll(c.GetIssues())
	}
	return result
}

func (w *Walker) walk(n *structtree.StructNode, parentRole structtree.Role, parentPath string, depth int, idx *int, doc issue.Context) {
	if n == nil {
		return
	}
	if depth > maxDepth {
		w.log.Warn("structure tree nesting exceeds bound, skipping subtree",
			zap.Int("max_depth", maxDepth), zap.String("path", parentPath))
		return
	}

	kids := structtree.StructKids(n)
	for i, child := range kids {
		*idx++
		role := structtree.MappedRole(child)
		sep := "."
		if parentPath == "" {
			sep = "/"
		}
		path := fmt.Sprintf("%s%s%s[%d]", parentPath, sep, role, i+1)

		childKids := structtree.StructKids(child)
		var childRoles []structtree.Role
		for _, ck := range childKids {
			childRoles = append(childRoles, structtree.MappedRole(ck))
		}

		cctx := &Context{
			Node:       child,
			Path:       path,
			Role:       role,
			Rule:       w.schema.RuleFor(role),
			ParentRole: parentRole,
			Children:   childKids,
			ChildRoles: childRoles,
			Depth:      depth,
			Index:      *idx,
			Doc:        doc,
		}

		descend := true
		for _, c := range w.checks {
			if !w.safeEnter(c, cctx) {
				descend = false
			}
		}

		if descend {
			w.walk(child, role, path, depth+1, idx, doc)
		}

		for _, c := range w.checks {
			w.safeLeave(c, cctx)
		}
	}
}

// safeEnter calls c.EnterElement, recovering any panic so that one visitor's
// internal error (§7 visitor_internal_error) neither aborts the walk nor
// affects other visitors on the same node. A recovered panic is treated as
// "do not skip children" (true), matching the policy that traversal
// continues.
func (w *Walker) safeEnter(c Check, ctx *Context) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			w.log.Warn("visitor_internal_error",
				zap.String("visitor", c.Name()), zap.String("path", ctx.Path),
				zap.Any("panic", r))
			ok = true
		}
	}()
	return c.EnterElement(ctx)
}

func (w *Walker) safeLeave(c Check, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Warn("visitor_internal_error",
				zap.String("visitor", c.Name()), zap.String("path", ctx.Path),
				zap.Any("panic", r))
		}
	}()
	c.LeaveElement(ctx)
}
