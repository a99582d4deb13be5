package checks

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/fixes"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// DocumentCheck is the whole-document counterpart to Check (§4.4/§2's
// DocumentCheck set): it inspects the open document and/or tree as a whole,
// rather than one structure element at a time, and has no traversal
// lifecycle of its own.
type DocumentCheck interface {
	Name() string
	Run(tree *structtree.StructTree, ctx issue.Context) *issue.List
}

// docLoc builds a tree-less issue.Location for a document-level issue: no
// owning node, the page it concerns (0 if document-wide), and a synthetic
// path naming the check.
func docLoc(name string, page int) issue.Location {
	return issue.Location{Page: page, Path: fmt.Sprintf("/%s", name)}
}

// Language flags a document with no catalog /Lang value (§2).
type Language struct{}

func (Language) Name() string { return "Language" }

func (Language) Run(_ *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	if ctx.Document().Language() == "" {
		list.Append(issue.New(issue.TypeMissingLanguage, issue.SeverityWarning,
			docLoc("Language", 0), "document has no declared language", nil))
	}
	return list
}

// TabOrder flags every page whose /Tabs entry is not "S" (structure order),
// the PDF/UA-required tab order (§2).
type TabOrder struct{}

func (TabOrder) Name() string { return "TabOrder" }

func (TabOrder) Run(_ *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	doc := ctx.Document()
	for page := 1; page <= doc.PageCount(); page++ {
		if !doc.TabOrderIsStructure(page) {
			list.Append(issue.New(issue.TypeBadTabOrder, issue.SeverityWarning,
				docLoc("TabOrder", page), fmt.Sprintf("page %d's tab order is not structure order", page), nil))
		}
	}
	return list
}

// TaggedMarker flags a document whose catalog MarkInfo/Marked flag is unset,
// meaning assistive technology cannot assume the document is tagged at all
// (§2).
type TaggedMarker struct{}

func (TaggedMarker) Name() string { return "TaggedMarker" }

func (TaggedMarker) Run(_ *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	if !ctx.Document().MarkedDocument() {
		list.Append(issue.New(issue.TypeMissingTaggedMarker, issue.SeverityError,
			docLoc("TaggedMarker", 0), "document is not marked as tagged (MarkInfo/Marked)", nil))
	}
	return list
}

// StructTreePresence flags a document with no structure tree at all — §7's
// no_struct_tree, emitted as a document issue rather than an exception so
// the tag phase can be skipped without aborting the run.
type StructTreePresence struct{}

func (StructTreePresence) Name() string { return "StructTreePresence" }

func (StructTreePresence) Run(tree *structtree.StructTree, _ issue.Context) *issue.List {
	list := issue.NewList()
	if tree == nil || len(structtree.StructKids(tree.Root)) == 0 {
		list.Append(issue.New(issue.TypeNoStructTree, issue.SeverityError,
			docLoc("StructTreePresence", 0), "document has no structure tree", nil))
	}
	return list
}

// PDFUAConformance flags a document whose metadata does not declare PDF/UA
// conformance (§2).
type PDFUAConformance struct{}

func (PDFUAConformance) Name() string { return "PDFUAConformance" }

func (PDFUAConformance) Run(_ *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	if !ctx.Document().DeclaresPDFUAConformance() {
		list.Append(issue.New(issue.TypePDFUAConformance, issue.SeverityInfo,
			docLoc("PDFUAConformance", 0), "document does not declare PDF/UA conformance", nil))
	}
	return list
}

// UnmarkedLinks flags every link annotation with no owning Link structure
// element and attaches a CreateLinkTag fix, appending the new Link under the
// tree root (§2, §4.5 CreateLinkTag).
type UnmarkedLinks struct{}

func (UnmarkedLinks) Name() string { return "UnmarkedLinks" }

func (UnmarkedLinks) Run(tree *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	if tree == nil {
		return list
	}
	for _, l := range ctx.Document().LinksWithoutTags() {
		list.Append(issue.New(issue.TypeUnmarkedLink, issue.SeverityWarning,
			docLoc("UnmarkedLinks", l.Page),
			fmt.Sprintf("link annotation %d on page %d has no owning Link element", l.Annot.ID, l.Page),
			fixes.FromLinkWithoutTag(tree.Root, l)))
	}
	return list
}

// UnexpectedWidgets flags form-field widget annotations with no
// corresponding Form structure element (§2). No automatic fix exists: the
// correct structural home for a stray widget cannot be inferred.
type UnexpectedWidgets struct{}

func (UnexpectedWidgets) Name() string { return "UnexpectedWidgets" }

func (UnexpectedWidgets) Run(_ *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	for _, w := range ctx.Document().WidgetsOutsideForm() {
		list.Append(issue.New(issue.TypeUnexpectedWidget, issue.SeverityWarning,
			docLoc("UnexpectedWidgets", w.Page),
			fmt.Sprintf("widget annotation %d on page %d has no owning Form element", w.Annot.ID, w.Page), nil))
	}
	return list
}

// BadLigatures flags font codepoint mappings that decode a ligature glyph to
// something other than its canonical expansion, attaching a RemapLigatures
// fix whenever the correct expansion is known (§2, §4.5).
type BadLigatures struct{}

func (BadLigatures) Name() string { return "BadLigatures" }

func (BadLigatures) Run(_ *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	for _, m := range ctx.Document().BadLigatureMappings() {
		msg := fmt.Sprintf("font %s on page %d decodes %q incorrectly", m.FontName, m.Page, string(m.Code))
		correct := m.Correct
		if correct == "" {
			correct = ligatureExpansion(m.Code)
		}
		var fix issue.Fix
		if correct != "" {
			fix = &fixes.RemapLigatures{Page: m.Page, FontName: m.FontName, Code: m.Code, CorrectTo: correct}
		} else {
			msg += " (correct mapping unknown, flag for review)"
		}
		list.Append(issue.New(issue.TypeBadLigature, issue.SeverityWarning, docLoc("BadLigatures", m.Page), msg, fix))
	}
	return list
}

// ligatureExpansion derives a fallback expansion for a ligature codepoint the
// container library didn't already resolve, using Unicode compatibility
// decomposition (NFKD turns "ﬁ" into "fi", "ﬂ" into "fl", and so on). Returns
// "" if the rune has no multi-rune compatibility decomposition, i.e. it isn't
// a known ligature at all.
func ligatureExpansion(r rune) string {
	decomposed := norm.NFKD.String(string(r))
	if decomposed == string(r) {
		return ""
	}
	return decomposed
}

// MissingDocument flags a tree whose root has no Document child, attaching
// the WrapInDocument fix (§4.5, priority 10 — runs before page-part setup).
type MissingDocument struct{}

func (MissingDocument) Name() string { return "MissingDocument" }

func (MissingDocument) Run(tree *structtree.StructTree, _ issue.Context) *issue.List {
	list := issue.NewList()
	if tree == nil {
		return list
	}
	for _, k := range structtree.StructKids(tree.Root) {
		if k.Role == "Document" {
			return list
		}
	}
	if len(structtree.StructKids(tree.Root)) == 0 {
		return list // StructTreePresence already covers the no-tree case
	}
	list.Append(issue.New(issue.TypeMissingDocument, issue.SeverityError,
		docLoc("MissingDocument", 0), "tree root has no Document element",
		&fixes.WrapInDocument{Tree: tree}))
	return list
}

// Unpartitioned flags physical pages with no structural content reachable
// anywhere in the tree — distinct from MissingPageParts (§4.4), which
// reorganizes content that exists but isn't grouped into per-page Part
// wrappers. Informational only: content that was never tagged cannot be
// synthesized.
type Unpartitioned struct{}

func (Unpartitioned) Name() string { return "Unpartitioned" }

func (Unpartitioned) Run(tree *structtree.StructTree, ctx issue.Context) *issue.List {
	list := issue.NewList()
	if tree == nil {
		return list
	}
	covered := map[int]bool{}
	collectPages(tree.Root, 0, covered)

	doc := ctx.Document()
	for page := 1; page <= doc.PageCount(); page++ {
		if !covered[page] {
			list.Append(issue.New(issue.TypeUnpartitionedDoc, issue.SeverityInfo,
				docLoc("Unpartitioned", page), fmt.Sprintf("page %d has no structural content", page), nil))
		}
	}
	return list
}

// collectPages walks n's subtree, recording every page an MCR or explicitly
// paged element names, bounded the same way every other tree walk here is
// (§9).
func collectPages(n *structtree.StructNode, depth int, into map[int]bool) {
	if n == nil || depth > 64 {
		return
	}
	for _, k := range structtree.AllKids(n) {
		switch k.Kind {
		case structtree.MCRNode:
			if k.Page != 0 {
				into[k.Page] = true
			}
		case structtree.ElementNode:
			if k.ExplicitPage != 0 {
				into[k.ExplicitPage] = true
			}
			collectPages(k, depth+1, into)
		}
	}
}
