// Package fixes implements the concrete IssueFix variants of §4.5: the
// structural rewrites the engine applies to the structure tree and, where
// named, the underlying document (content streams, annotations, font
// mappings). Each variant is a small data-plus-behavior value implementing
// issue.Fix; there is no fix base class, per the "tagged variant with
// dispatch in one place" design note — the closed set lives in this package
// and the issue.Fix interface is the single dispatch point.
package fixes

// Priority constants, lower runs first (§4.3/§4.5). Ties are broken by
// insertion order by the engine, not here.
const (
	PriorityDocumentSetup  = 10
	PriorityArtifacting    = 12
	PriorityFlatten        = 15
	PriorityPageOrganize   = 18
	PriorityStructural     = 20
	PriorityLinkTag        = 22
	PriorityLigature       = 22
	PriorityCosmetic       = 30
)
