// Package doccontext holds the per-document scratchpad described in §4.6:
// the object→page index, the lazily memoized per-page MCID bounds cache,
// and the accumulating ProcessingResult.
package doccontext

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// DocContext is per-run state for a single document. At most one DocContext
// is live per document at a time (§5): one document, one engine run, one
// traversal.
type DocContext struct {
	doc  doccontainer.Document
	tree *structtree.StructTree

	// objPageIndex maps a node (by identity) to the page its object
	// references resolve to: an OBJR to its target object's page, and an
	// element to the page of its first child that has an entry. It is built
	// once at construction by a post-order walk so inherited references are
	// resolved deepest-first.
	objPageIndex map[*structtree.StructNode]int

	// boundsCache memoizes per-page MCID→Rect maps, invalidated by
	// ConvertToArtifact for pages it rewrites.
	boundsCache map[int]map[int]doccontainer.Rect

	Result *ProcessingResult
}

// New builds a DocContext for doc and tree, computing the object→page index
// immediately.
func New(doc doccontainer.Document, tree *structtree.StructTree) *DocContext {
	ctx := &DocContext{
		doc:          doc,
		tree:         tree,
		objPageIndex: map[*structtree.StructNode]int{},
		boundsCache:  map[int]map[int]doccontainer.Rect{},
		Result:       &ProcessingResult{},
	}
	if tree != nil {
		ctx.buildObjectPageIndex(tree.Root, 0)
	}
	return ctx
}

// buildObjectPageIndex walks n's subtree post-order, resolving OBJR targets
// via the document's ObjectPage lookup and caching the result by node
// identity; each element inherits the entry of its first child that has one.
// Depth is bounded the same way structtree's own walks are (§9).
func (c *DocContext) buildObjectPageIndex(n *structtree.StructNode, depth int) {
	if n == nil || depth > 64 {
		return
	}
	for _, k := range structtree.AllKids(n) {
		c.buildObjectPageIndex(k, depth+1)
		if k.Kind == structtree.OBJRNode && c.doc != nil {
			if p := c.doc.ObjectPage(k.AnnotID); p != 0 {
				c.objPageIndex[k] = p
			}
		}
		if _, ok := c.objPageIndex[n]; !ok {
			if p := c.objPageIndex[k]; p != 0 {
				c.objPageIndex[n] = p
			}
		}
	}
}

// Document returns the open document handle (issue.Context).
func (c *DocContext) Document() doccontainer.Document { return c.doc }

// Tree returns the structure tree this context was built for.
func (c *DocContext) Tree() *structtree.StructTree { return c.tree }

// PageNumberOf resolves n's page per §4.1/§8 property 7, falling back to
// the cached object→page index when n (or its descendants) carry no
// explicit page.
func (c *DocContext) PageNumberOf(n *structtree.StructNode) int {
	return structtree.PageNumberOf(n, func(node *structtree.StructNode) int {
		return c.objPageIndex[node]
	})
}

// PageBounds returns the MCID→Rect map for page, computing and caching it on
// first use via the document's ContentBounds.
func (c *DocContext) PageBounds(page int) (map[int]doccontainer.Rect, error) {
	if b, ok := c.boundsCache[page]; ok {
		return b, nil
	}
	p := c.doc.Page(page)
	if p == nil {
		return nil, fmt.Errorf("no such page: %d", page)
	}
	bounds, err := p.ContentBounds()
	if err != nil {
		return nil, err
	}
	c.boundsCache[page] = bounds
	return bounds, nil
}

// InvalidatePageBounds drops page's cached bounds, if any, forcing a
// recompute on next use. Implementations may also simply drop the whole
// cache at the end of a fix phase (§4.6); this narrower per-page form is
// preferred here since it keeps unrelated pages' caches warm across fixes.
func (c *DocContext) InvalidatePageBounds(page int) {
	delete(c.boundsCache, page)
}

// DropAllPageBounds clears the entire bounds cache, the coarser alternative
// §4.6 also permits.
func (c *DocContext) DropAllPageBounds() {
	c.boundsCache = map[int]map[int]doccontainer.Rect{}
}
