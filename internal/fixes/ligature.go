package fixes

import (
	"fmt"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
)

// RemapLigatures replaces a font's codepoint mapping so marked content
// decodes a ligature glyph to its canonical multi-character sequence
// (§4.5). It targets no structure-tree node; it is document-level only.
type RemapLigatures struct {
	Page     int
	FontName string
	Code     rune
	CorrectTo string
}

func (f *RemapLigatures) Priority() int { return PriorityLigature }

func (f *RemapLigatures) GroupLabel() string { return "remap-ligatures" }

func (f *RemapLigatures) Describe() string {
	return fmt.Sprintf("remap ligature %q in font %s (page %d) to %q", string(f.Code), f.FontName, f.Page, f.CorrectTo)
}

func (f *RemapLigatures) DescribeCtx(issue.Context) string { return f.Describe() }

func (f *RemapLigatures) Invalidates(issue.Fix) bool { return false }

func (f *RemapLigatures) Apply(ctx issue.Context) error {
	if err := ctx.Document().RemapLigature(f.Page, f.FontName, f.Code, f.CorrectTo); err != nil {
		return fmt.Errorf("fix_failed: %w", err)
	}
	return nil
}
