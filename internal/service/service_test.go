package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/config"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/doccontainer"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
	"github.com/boyechko/pdf-autoa11y-sub001/internal/tagschema"
)

func newTestService(t *testing.T) *ProcessingService {
	t.Helper()
	s, err := New(tagschema.New(), config.DefaultConfig(), nil, nil)
	require.NoError(t, err)
	return s
}

func docWithTree(pages int, marked bool) *doccontainer.FakeDocument {
	d := doccontainer.NewFakeDocument(pages)
	d.Marked = marked
	d.DeclaresPDFUA = true
	tree := structtree.New()
	doc := structtree.NewElement("Document")
	part := structtree.NewElement("Part")
	p := structtree.NewElement("P")
	structtree.AppendChild(part, p)
	structtree.AppendChild(doc, part)
	structtree.AppendChild(tree.Root, doc)
	d.Tree = tree
	return d
}

func TestAnalyzeReportsNoStructTree(t *testing.T) {
	s := newTestService(t)
	fake := doccontainer.NewFakeDocument(1)
	fake.Marked = true
	fake.DeclaresPDFUA = true
	s.Open = func(path, password string, readOnly bool) (doccontainer.Document, error) {
		return fake, nil
	}

	result, err := s.Analyze("doc.pdf", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)

	found := false
	for _, i := range result.OriginalDoc.Items() {
		if i.Type == "no_struct_tree" {
			found = true
		}
	}
	require.True(t, found, "expected a no_struct_tree document issue when the tree is absent")
	require.Equal(t, 0, result.OriginalTag.Len(), "tag phase must be skipped without a structure tree")
}

func TestAnalyzeRunsStructureChecksWhenTreePresent(t *testing.T) {
	s := newTestService(t)
	fake := docWithTree(1, true)
	s.Open = func(path, password string, readOnly bool) (doccontainer.Document, error) {
		return fake, nil
	}

	result, err := s.Analyze("doc.pdf", "")
	require.NoError(t, err)
	for _, i := range result.OriginalDoc.Items() {
		require.NotEqual(t, "no_struct_tree", string(i.Type))
	}
}

func TestRemediatePropagatesEncryptedInput(t *testing.T) {
	s := newTestService(t)
	s.Open = func(path, password string, readOnly bool) (doccontainer.Document, error) {
		return nil, ErrEncryptedInput
	}

	_, err := s.Remediate("doc.pdf", "out.pdf", "", false)
	require.ErrorIs(t, err, ErrEncryptedInput)
}

func TestRemediateWrapsUnreadableInput(t *testing.T) {
	s := newTestService(t)
	s.Open = func(path, password string, readOnly bool) (doccontainer.Document, error) {
		return nil, errBoom
	}

	_, err := s.Remediate("doc.pdf", "out.pdf", "", false)
	require.ErrorIs(t, err, ErrInputUnreadable)
}

func TestRemediateSetsTempOutputPathOnSuccess(t *testing.T) {
	s := newTestService(t)
	fake := docWithTree(1, true)
	s.Open = func(path, password string, readOnly bool) (doccontainer.Document, error) {
		return fake, nil
	}

	result, err := s.Remediate("doc.pdf", "out.pdf", "", false)
	require.NoError(t, err)
	require.Equal(t, "out.pdf", result.TempOutputPath)
}

func TestRemediateDryRunLeavesTempOutputPathEmpty(t *testing.T) {
	s := newTestService(t)
	fake := docWithTree(1, true)
	s.Open = func(path, password string, readOnly bool) (doccontainer.Document, error) {
		return fake, nil
	}

	result, err := s.Remediate("doc.pdf", "out.pdf", "", true)
	require.NoError(t, err)
	require.Empty(t, result.TempOutputPath)
}

var errBoom = errBoomT{}

type errBoomT struct{}

func (errBoomT) Error() string { return "boom" }
