// Package walker implements the single depth-first StructTreeWalker pass of
// §4.4 that drives N cooperating StructTreeCheck visitors, plus the
// visitor interface and prerequisite-ordering validation.
package walker

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
)

// Context is the immutable per-node context the walker builds at each
// structure element (§4.4 StructTreeContext).
type Context struct {
	Node       *structtree.StructNode
	Path       string // e.g. "/Document[1].L[7].LI[9]"
	Role       structtree.Role
	Rule       *tagschema.Rule // schema rule for Role, if any
	ParentRole structtree.Role
	Children   []*structtree.StructNode // struct children only, in order
	ChildRoles []structtree.Role
	Depth      int // 0 at direct root kids
	Index      int // 1-based global pre-order traversal index
	Doc        issue.Context
}

// Check is the visitor interface every structure-tree check implements
// (§4.4). Name identifies the check for prerequisite validation and for
// StructTreeCheck base-derived checks' own bookkeeping; it should be stable
// and unique across a registered check set.
type Check interface {
	Name() string
	// Prerequisites names the checks that must already be registered
	// (earlier in the construction list) for this check to run.
	Prerequisites() []string
	BeforeTraversal()
	// EnterElement is called pre-order for each structure element. A false
	// return skips descending into this node's children (LeaveElement is
	// still called for every visitor).
	EnterElement(ctx *Context) bool
	LeaveElement(ctx *Context)
	AfterTraversal()
	// GetIssues returns this check's accumulated issues; called once after
	// AfterTraversal.
	GetIssues() *issue.List
}

// Base is an embeddable helper implementing the no-op parts of Check so
// concrete checks only need to override what they use, mirroring how the
// teacher's Node/Entry types provide small defaulted helpers rather than
// requiring every implementer to restate boilerplate.
type Base struct {
	issues *issue.List
}

// Issues returns (creating if needed) the check's accumulating issue list.
func (b *Base) Issues() *issue.List {
	if b.issues == nil {
		b.issues = issue.NewList()
	}
	return b.issues
}

// GetIssues implements Check.
func (b *Base) GetIssues() *issue.List { return b.Issues() }

// BeforeTraversal implements Check as a no-op.
func (b *Base) BeforeTraversal() {}

// AfterTraversal implements Check as a no-op.
func (b *Base) AfterTraversal() {}

// LeaveElement implements Check as a no-op.
func (b *Base) LeaveElement(ctx *Context) {}

// Prerequisites implements Check with no prerequisites by default.
func (b *Base) Prerequisites() []string { return nil }
