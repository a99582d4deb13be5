package reportutil

import (
	"fmt"
	"io"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// DumpTree writes a one-line-per-node rendering of tree to out, starting at
// the synthetic root's children (depth 0), each node's line indented two
// spaces per depth level via reportutil.Writer. Leaf
// nodes (MCR/OBJR) render their target; detailed additionally prints each
// element's page hints and decoder hints (LeftEdge, RepeatsEveryPage).
func DumpTree(out io.Writer, tree *structtree.StructTree, detailed bool) {
	if tree == nil {
		fmt.Fprintln(out, "(no structure tree)")
		return
	}
	for _, k := range structtree.AllKids(tree.Root) {
		dumpNode(out, k, 0, detailed)
	}
}

func dumpNode(out io.Writer, n *structtree.StructNode, depth int, detailed bool) {
	if n == nil {
		return
	}
	w := NewWriter(out, indentFor(depth))
	fmt.Fprintln(w, describeNode(n, detailed))
	for _, k := range structtree.AllKids(n) {
		dumpNode(out, k, depth+1, detailed)
	}
}

func describeNode(n *structtree.StructNode, detailed bool) string {
	switch n.Kind {
	case structtree.MCRNode:
		return fmt.Sprintf("MCR(page=%d, mcid=%d)", n.Page, n.MCID)
	case structtree.OBJRNode:
		return fmt.Sprintf("OBJR(annot=%d)", n.AnnotID)
	default:
		if !detailed {
			return string(n.Role)
		}
		return fmt.Sprintf("%s (page=%d, leftEdge=%.1f, repeats=%v, alt=%q)",
			n.Role, n.ExplicitPage, n.LeftEdge, n.RepeatsEveryPage, n.AltText)
	}
}

func indentFor(depth int) string {
	out := make([]byte, depth*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
