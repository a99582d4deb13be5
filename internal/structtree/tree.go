package structtree

// StructTree is a forest of structure elements under a synthetic root (§3).
// The root carries the document's global role-map: non-schema role names the
// document model used, mapped to schema roles. All checks and fixes operate
// on mapped roles only.
type StructTree struct {
	Root    *StructNode
	RoleMap map[string]Role
}

// New returns an empty StructTree with a synthetic, parentless root element.
func New() *StructTree {
	return &StructTree{
		Root:    &StructNode{Kind: ElementNode, Role: "#root"},
		RoleMap: map[string]Role{},
	}
}

// MappedRole returns the role rawName maps to under t's role-map, or
// rawName itself (as a Role) if it is not remapped. This is the single
// point at which raw document role names become the mapped roles all check
// and fix logic operates on.
func (t *StructTree) MappedRole(rawName string) Role {
	if t == nil {
		return Role(rawName)
	}
	if mapped, ok := t.RoleMap[rawName]; ok {
		return mapped
	}
	return Role(rawName)
}
