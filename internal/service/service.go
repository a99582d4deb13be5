// Package service implements ProcessingService (§4.8): the phase sequencing
// that turns an opened document into a ProcessingResult, wrapping CheckEngine
// with the I/O lifecycle spec §7 and §9 describe — temp-output cleanup on
// error, encrypted-input and no-struct-tree handling, scoped acquisition of
// the document model.
package service

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/checks"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/config"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontext"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/engine"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// Opener is the scoped-acquisition seam (§9 "Scoped acquisition") to the
// external container library named in spec §6: it opens path for access,
// using password if the input is encrypted, honoring readOnly, and returns
// a handle whose Close releases its resources. The real binary parser is
// out of scope; production wiring supplies this.
type Opener func(path, password string, readOnly bool) (doccontainer.Document, error)

// ReportWriter renders a ProcessingResult as the textual artifact named in
// spec §6's "Persisted result" contract.
type ReportWriter interface {
	WriteReport(result *doccontext.ProcessingResult) error
}

// ProcessingService sequences the phases of §4.8 over one document at a
// time (§5: one document, one DocContext, one CheckEngine run).
type ProcessingService struct {
	Engine *engine.CheckEngine
	Open   Opener
	Log    *zap.Logger

	docChecks []checks.DocumentCheck
}

// New builds a ProcessingService from the canonical check set (§4.4, §2),
// configured by cfg.
func New(schema *tagschema.Schema, cfg *config.EngineConfig, log *zap.Logger, open Opener) (*ProcessingService, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return NewWithChecks(schema, log, open, DefaultDocumentChecks(), DefaultStructFactories(cfg))
}

// NewWithChecks builds a ProcessingService from an explicit check set,
// letting a caller (cmd/pdfa11y's --skip-checks) narrow the canonical list
// before construction.
func NewWithChecks(schema *tagschema.Schema, log *zap.Logger, open Opener, docChecks []checks.DocumentCheck, structFactories []engine.StructCheckFactory) (*ProcessingService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e, err := engine.New(schema, log, docChecks, structFactories...)
	if err != nil {
		return nil, err
	}
	return &ProcessingService{Engine: e, Open: open, Log: log, docChecks: docChecks}, nil
}

// FilterStructFactories drops any factory whose check Name() is in skip.
func FilterStructFactories(factories []engine.StructCheckFactory, skip map[string]bool) []engine.StructCheckFactory {
	if len(skip) == 0 {
		return factories
	}
	var out []engine.StructCheckFactory
	for _, f := range factories {
		if !skip[f().Name()] {
			out = append(out, f)
		}
	}
	return out
}

// FilterDocumentChecks drops any check whose Name() is in skip.
func FilterDocumentChecks(docChecks []checks.DocumentCheck, skip map[string]bool) []checks.DocumentCheck {
	if len(skip) == 0 {
		return docChecks
	}
	var out []checks.DocumentCheck
	for _, c := range docChecks {
		if !skip[c.Name()] {
			out = append(out, c)
		}
	}
	return out
}

// DefaultStructFactories returns the structure-tree visitor set in an order
// satisfying every declared prerequisite (§8 property 8): NeedlessNesting
// before MissingPageParts, which depends on it.
func DefaultStructFactories(cfg *config.EngineConfig) []engine.StructCheckFactory {
	return []engine.StructCheckFactory{
		func() walker.Check { return &checks.SchemaValidation{} },
		func() walker.Check { return &checks.NeedlessNesting{} },
		func() walker.Check { return &checks.MissingPageParts{} },
		func() walker.Check { return &checks.EmptyElement{} },
		func() walker.Check { return &checks.EmptyLinkTag{RectTolerance: cfg.RectTolerance} },
		func() walker.Check { return &checks.MissingAltText{} },
		func() walker.Check { return &checks.FigureWithText{} },
		func() walker.Check { return &checks.MistaggedArtifact{RectTolerance: cfg.RectTolerance} },
		func() walker.Check { return &checks.MistaggedBulletedList{} },
		func() walker.Check { return &checks.ParagraphOfLinks{} },
		func() walker.Check { return &checks.ListlikeParagraphRun{IndentThreshold: cfg.IndentThreshold} },
	}
}

// DefaultDocumentChecks returns the whole-document check set of §2.
func DefaultDocumentChecks() []checks.DocumentCheck {
	return []checks.DocumentCheck{
		checks.Language{},
		checks.TabOrder{},
		checks.TaggedMarker{},
		checks.StructTreePresence{},
		checks.PDFUAConformance{},
		checks.UnmarkedLinks{},
		checks.UnexpectedWidgets{},
		checks.BadLigatures{},
		checks.MissingDocument{},
		checks.Unpartitioned{},
	}
}

// Analyze runs phases 2-4 of §4.8: build DocContext, detect document
// issues, detect structure-tree issues. No mutation occurs.
func (s *ProcessingService) Analyze(path, password string) (*doccontext.ProcessingResult, error) {
	doc, err := s.openReadOnly(path, password)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	dc := s.detect(doc)
	dc.Result.RunID = uuid.NewString()
	return dc.Result, nil
}

// Remediate runs all eight phases of §4.8. dryRun skips phase 1's
// write-mode open (SPEC_FULL §D): phases 2-6 still run, against a
// read-only handle, and TempOutputPath is left empty.
func (s *ProcessingService) Remediate(path, outputPath, password string, dryRun bool) (result *doccontext.ProcessingResult, err error) {
	var doc doccontainer.Document
	var tempPath string

	if dryRun {
		doc, err = s.openReadOnly(path, password)
		if err != nil {
			return nil, err
		}
	} else {
		doc, err = s.Open(path, password, false)
		if err != nil {
			if err == ErrEncryptedInput {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s", ErrInputUnreadable, err)
		}
		tempPath = outputPath
	}
	defer func() {
		doc.Close()
		if err != nil && tempPath != "" {
			_ = os.Remove(tempPath)
		}
	}()

	dc := s.detect(doc)
	_, hasTree := structTreeOf(doc)

	appliedTag := s.Engine.ApplyFixes(dc, dc.Result.OriginalTag)
	dc.Result.AppliedTag = appliedTag

	appliedDoc := s.Engine.ApplyFixes(dc, dc.Result.OriginalDoc)
	dc.Result.AppliedDoc = appliedDoc

	remainingTag := issue.NewList()
	if hasTree && appliedTag.Len() > 0 {
		remainingTag = s.Engine.RunStructTreeChecks(dc.Tree(), dc)
	}
	dc.Result.RemainingTag = remainingTag
	dc.Result.RemainingDoc = issue.NewList()

	if tempPath != "" {
		dc.Result.TempOutputPath = tempPath
	}
	dc.Result.RunID = uuid.NewString()
	return dc.Result, nil
}

// Report runs Analyze and additionally renders a textual artifact per
// spec §6's "Persisted result" contract, using w.
func (s *ProcessingService) Report(path, password string, w ReportWriter) (*doccontext.ProcessingResult, error) {
	result, err := s.Analyze(path, password)
	if err != nil {
		return nil, err
	}
	if w != nil {
		if err := w.WriteReport(result); err != nil {
			return result, fmt.Errorf("%w: %s", ErrOutputUnwritable, err)
		}
	}
	return result, nil
}

func (s *ProcessingService) openReadOnly(path, password string) (doccontainer.Document, error) {
	doc, err := s.Open(path, password, true)
	if err != nil {
		if err == ErrEncryptedInput {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrInputUnreadable, err)
	}
	return doc, nil
}

// detect runs the document- and structure-tree-level checks (phases 3-4)
// against a freshly built DocContext for doc, emitting a no_struct_tree
// document issue and skipping the tag phase per §4.8's failure handling
// when the document has no structure tree.
func (s *ProcessingService) detect(doc doccontainer.Document) *doccontext.DocContext {
	tree, hasTree := structTreeOf(doc)
	dc := doccontext.New(doc, tree)

	docIssues := issue.NewList()
	for _, check := range s.docChecks {
		docIssues.AppendAll(check.Run(tree, dc))
	}
	dc.Result.OriginalDoc = docIssues

	tagIssues := issue.NewList()
	if hasTree {
		tagIssues = s.Engine.RunStructTreeChecks(tree, dc)
	}
	dc.Result.OriginalTag = tagIssues
	return dc
}

// structTreeOf extracts the decoded structure tree via doccontainer's
// StructTreeSource seam, if the document implements it.
func structTreeOf(doc doccontainer.Document) (*structtree.StructTree, bool) {
	if src, ok := doc.(doccontainer.StructTreeSource); ok {
		return src.StructTree()
	}
	return nil, false
}
