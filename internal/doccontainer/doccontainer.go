// Package doccontainer states the boundary contract of the external binary
// container library named in spec §6. The real parser/writer — decryption,
// byte-level BDC/BMC scanning, serialization — is out of scope per spec §1;
// this package fixes only the interface the engine needs against it, plus
// (in fakedoc.go) an in-memory test double used throughout this module's own
// tests. Production wiring supplies a real implementation elsewhere.
package doccontainer

import "github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"

// Rect is an axis-aligned bounding rectangle in page (user-space) units,
// used for the MCID bounds cache and the link-annotation overlap test in
// EmptyLinkTag.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Overlaps reports whether r and other overlap, allowing tol units of
// tolerance on each edge (ConvertToArtifact's 0.5-point rect-equality
// tolerance reuses this for a degenerate zero-area "equality" check).
func (r Rect) Overlaps(other Rect, tol float64) bool {
	return r.X0-tol <= other.X1 && other.X0-tol <= r.X1 &&
		r.Y0-tol <= other.Y1 && other.Y0-tol <= r.Y1
}

// Annotation is a page-level object such as a link annotation, identified by
// AnnotID (matching structtree.StructNode.AnnotID on an OBJR).
type Annotation struct {
	ID   int
	Rect Rect
	Kind string // e.g. "Link"
}

// Page is one page of the open document.
type Page interface {
	// Number is the page's 1-based page number.
	Number() int
	// Annotations returns the page's current annotation list.
	Annotations() []Annotation
	// RemoveAnnotation removes the annotation matching ann by identity,
	// equality, indirect reference, or rect equality with the given
	// tolerance (ConvertToArtifact's contract); returns whether one was
	// removed.
	RemoveAnnotation(ann Annotation, tol float64) bool
	// RewriteMCIDToArtifact locates the BDC operator for each MCID in
	// mcids on this page and replaces it with a bare "/Artifact BMC",
	// leaving all other bytes untouched. It returns the subset of mcids
	// it could not locate; a non-empty result means the page was left
	// unmodified (§4.5 ConvertToArtifact step c: abort-on-miss).
	RewriteMCIDToArtifact(mcids []int) (missing []int, err error)
	// ContentBounds returns, for every MCID that appears in this page's
	// content stream, the bounding rectangle of the marked operators. Used
	// to populate DocContext's per-page bounds cache.
	ContentBounds() (map[int]Rect, error)
}

// LinkWithoutTag names a link annotation on a page that has no owning Link
// structure element (no OBJR anywhere in the tree targets it).
type LinkWithoutTag struct {
	Page   int
	Annot  Annotation
	MCID   int // the marked content the link's visible text lives under, 0 if none found
	HasMCR bool
}

// WidgetOutsideForm names a form-field widget annotation found on a page
// that is not represented by a Form-kind structure element.
type WidgetOutsideForm struct {
	Page  int
	Annot Annotation
}

// LigatureMapping names one codepoint mapping a page's font declares for
// decoding marked content to Unicode, e.g. a private-use ligature glyph
// mapped to "fi" instead of being left unmapped or mapped to the wrong
// multi-character sequence.
type LigatureMapping struct {
	Page     int
	FontName string
	Code     rune
	MapsTo   string
	Correct  string // what the glyph should decode to; empty means "unknown, flag for review"
}

// Document is the open tagged document handle.
type Document interface {
	// Page returns the page numbered n, or nil if out of range.
	Page(n int) Page
	// PageCount returns the number of pages.
	PageCount() int
	// ObjectPage returns the page number containing the object (by object
	// number) denoted by n, if the container can resolve it directly
	// (e.g. an OBJR's target object), or 0 if not known.
	ObjectPage(objNum int) int
	// Encrypted reports whether the document was opened from an encrypted
	// input without a usable credential.
	Encrypted() bool
	// Close releases resources associated with the document.
	Close() error

	// Language returns the catalog/root /Lang value, or "" if unset.
	Language() string
	// TabOrderIsStructure reports whether page's /Tabs entry is "S"
	// (structure order), the PDF/UA-required value.
	TabOrderIsStructure(page int) bool
	// MarkedDocument reports the catalog MarkInfo/Marked flag.
	MarkedDocument() bool
	// DeclaresPDFUAConformance reports whether the document's metadata
	// declares PDF/UA conformance (XMP pdfuaid:part).
	DeclaresPDFUAConformance() bool
	// LinksWithoutTags returns every link annotation not referenced by any
	// Link structure element's OBJR.
	LinksWithoutTags() []LinkWithoutTag
	// WidgetsOutsideForm returns every widget annotation with no
	// corresponding Form structure element.
	WidgetsOutsideForm() []WidgetOutsideForm
	// BadLigatureMappings returns every font codepoint mapping that
	// decodes a ligature glyph to something other than its canonical
	// multi-character expansion.
	BadLigatureMappings() []LigatureMapping
	// RemapLigature replaces the codepoint mapping for (page, font, code)
	// so marked content decodes to correctTo instead.
	RemapLigature(page int, font string, code rune, correctTo string) error
}

// StructTreeSource is implemented by a Document able to hand back the
// decoded structure tree (§3) the engine operates on. Decoding itself — the
// byte-level parse — is out of scope; this method is the seam.
type StructTreeSource interface {
	StructTree() (*structtree.StructTree, bool)
}
