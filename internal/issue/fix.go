package issue

import (
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// Context is the minimal capability surface a Fix needs from the run's
// DocContext (§4.6) to apply itself: document access for annotation/content
// rewrites, page resolution, and the per-page MCID bounds cache. It is
// declared here, not in the doccontext package, so that issue has no
// dependency on doccontext; *doccontext.DocContext satisfies it implicitly.
type Context interface {
	// Document returns the open document handle fixes mutate.
	Document() doccontainer.Document
	// PageNumberOf resolves n's page the way structtree.PageNumberOf does,
	// using the context's cached object→page index as fallback.
	PageNumberOf(n *structtree.StructNode) int
	// PageBounds returns, memoized, a map from MCID to bounding rectangle
	// for the content on the given page.
	PageBounds(page int) (map[int]doccontainer.Rect, error)
	// InvalidatePageBounds drops any cached bounds for page, forcing a
	// recompute on next use. Fixes that rewrite a page's content stream
	// (ConvertToArtifact) must call this for every page they touch.
	InvalidatePageBounds(page int)
}

// Fix is the closed-set polymorphic interface every fix variant implements
// (§4.3, design note "Polymorphic fixes"). A tagged variant with dispatch in
// one place — here, one interface and one package of concrete types per
// §4.5 — is used in place of open inheritance.
type Fix interface {
	// Priority orders fix application; lower runs first, ties broken by
	// insertion order.
	Priority() int
	// Apply mutates the tree/document per the fix's contract. It must be
	// idempotent with respect to its own target shape (§8 property 3): a
	// second Apply on an already-fixed tree is a no-op.
	Apply(ctx Context) error
	// Describe renders a context-free summary, used when no Context is
	// available (e.g. before a run starts).
	Describe() string
	// DescribeCtx renders a summary that may include page/object numbers
	// by consulting ctx.
	DescribeCtx(ctx Context) string
	// Invalidates reports whether this fix, successfully applied, renders
	// other redundant (§8 property 4). The engine uses this to skip later
	// fixes without marking them failed.
	Invalidates(other Fix) bool
	// GroupLabel names the fix-class bucket used for summary rendering
	// (e.g. "artifact", "flatten-nesting", "wrap-in-li").
	GroupLabel() string
}
