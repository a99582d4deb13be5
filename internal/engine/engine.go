// Package engine implements CheckEngine (§4.7): the glue that instantiates
// structure-tree visitors per run, drives the walker, runs the whole-document
// checks, and applies the resulting fixes in priority order with invalidation
// bookkeeping.
package engine

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/checks"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/issue"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/walker"
)

// StructCheckFactory builds a fresh walker.Check instance. A factory, not a
// shared instance, is registered because each Check accumulates per-run
// state (its walker.Base issue list) that must not leak across runs.
type StructCheckFactory func() walker.Check

// CheckEngine glues the structure-tree walk and the document-level checks
// together for one document (§4.7). At most one engine operates on one
// document at a time (§5); nothing here is safe for concurrent use across
// documents sharing state beyond the immutable schema.
type CheckEngine struct {
	schema          *tagschema.Schema
	docChecks       []checks.DocumentCheck
	structFactories []StructCheckFactory
	log             *zap.Logger
}

// New validates structFactories' prerequisites (by instantiating one
// throwaway walker.Check set and delegating to walker.New) and returns a
// CheckEngine. Construction fails with the same prerequisite_violation error
// walker.New returns if prerequisites are missing or misordered.
func New(schema *tagschema.Schema, log *zap.Logger, docChecks []checks.DocumentCheck, structFactories ...StructCheckFactory) (*CheckEngine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	instances := make([]walker.Check, len(structFactories))
	for i, f := range structFactories {
		instances[i] = f()
	}
	if _, err := walker.New(schema, log, instances...); err != nil {
		return nil, err
	}
	return &CheckEngine{schema: schema, docChecks: docChecks, structFactories: structFactories, log: log}, nil
}

// DetectIssues runs one structure-tree walk (if any structure-tree checks
// are registered), then each document check in order, returning the
// concatenated IssueList (§4.7).
func (e *CheckEngine) DetectIssues(tree *structtree.StructTree, ctx issue.Context) *issue.List {
	result := issue.NewList()
	result.AppendAll(e.RunStructTreeChecks(tree, ctx))
	for _, dc := range e.docChecks {
		result.AppendAll(dc.Run(tree, ctx))
	}
	return result
}

// RunStructTreeChecks instantiates a fresh set of structure-tree checks from
// the registered factories and runs one walker pass, returning their
// concatenated issues. Exposed directly for tooling and tests (§4.7).
func (e *CheckEngine) RunStructTreeChecks(tree *structtree.StructTree, ctx issue.Context) *issue.List {
	if len(e.structFactories) == 0 {
		return issue.NewList()
	}
	instances := make([]walker.Check, len(e.structFactories))
	for i, f := range e.structFactories {
		instances[i] = f()
	}
	w, err := walker.New(e.schema, e.log, instances...)
	if err != nil {
		e.log.Warn("structure-tree check set failed to construct on rerun", zap.Error(err))
		return issue.NewList()
	}
	return w.Run(tree, ctx)
}

// RunSingleCheck runs one structure-tree check factory in isolation, bypassing
// the full registered set's prerequisite validation. Exposed for tooling and
// tests (§4.7) that want one visitor's output without constructing the whole
// engine; callers are responsible for satisfying that check's own
// prerequisites if it declares any.
func (e *CheckEngine) RunSingleCheck(tree *structtree.StructTree, ctx issue.Context, factory StructCheckFactory) (*issue.List, error) {
	w, err := walker.New(e.schema, e.log, factory())
	if err != nil {
		return nil, err
	}
	return w.Run(tree, ctx), nil
}

// ApplyFixes sorts issues carrying a fix by priority ascending (stable, ties
// broken by original order), then walks them: an issue whose fix is rendered
// redundant by an already-applied fix's Invalidates is marked resolved with
// a "skipped: superseded" note; otherwise Apply is called, marking the issue
// resolved on success or failed on error. Returns the resolved issues only
// (§4.7).
func (e *CheckEngine) ApplyFixes(ctx issue.Context, issues *issue.List) *issue.List {
	var withFix []*issue.Issue
	for _, i := range issues.Items() {
		if i.Fix != nil {
			withFix = append(withFix, i)
		}
	}
	sort.SliceStable(withFix, func(i, j int) bool {
		return withFix[i].Fix.Priority() < withFix[j].Fix.Priority()
	})

	var applied []issue.Fix
	resolved := issue.NewList()
	for _, i := range withFix {
		skip := false
		for _, done := range applied {
			if done.Invalidates(i.Fix) {
				skip = true
				break
			}
		}
		if skip {
			i.MarkResolved("skipped: superseded")
			resolved.Append(i)
			continue
		}
		if err := i.Fix.Apply(ctx); err != nil {
			i.MarkFailed(fmt.Sprintf("%s: %s", i.Fix.DescribeCtx(ctx), err))
			e.log.Warn("fix_failed", zap.String("type", string(i.Type)), zap.Error(err))
			continue
		}
		i.MarkResolved(i.Fix.DescribeCtx(ctx))
		applied = append(applied, i.Fix)
		resolved.Append(i)
	}
	return resolved
}
