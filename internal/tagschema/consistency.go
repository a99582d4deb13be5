package tagschema

import (
	"fmt"
	"sort"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// ConsistencyWarning is one advisory finding from ValidateConsistency (§4.2).
// Warnings never fail schema loading; they are surfaced so a caller running
// with --strict (§SPEC_FULL E) can choose to promote them to an error.
type ConsistencyWarning struct {
	Role    structtree.Role
	Message string
}

func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Role, w.Message)
}

// ValidateConsistency checks s for the six classes of asymmetric or
// contradictory rule constraints named in §4.2 and returns them as
// warnings, in a deterministic role-sorted order. It never returns an error;
// loading always proceeds.
func (s *Schema) ValidateConsistency() []ConsistencyWarning {
	var roles []structtree.Role
	for role := range s.Rules {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	var warnings []ConsistencyWarning
	for _, role := range roles {
		r := s.Rules[role]
		warnings = append(warnings, s.checkRule(role, r)...)
	}
	return warnings
}

func (s *Schema) checkRule(role structtree.Role, r *Rule) []ConsistencyWarning {
	var out []ConsistencyWarning
	warn := func(format string, v ...interface{}) {
		out = append(out, ConsistencyWarning{Role: role, Message: fmt.Sprintf(format, v...)})
	}

	// 1. Asymmetric parent_must_be: child requires parent P but P does not
	// list child among its allowed_children.
	for _, parent := range r.ParentMustBe {
		pr := s.Rules[parent]
		if pr == nil {
			continue
		}
		if len(pr.AllowedChildren) > 0 && !pr.AllowsChild(role) {
			warn("requires parent %s, but %s does not allow %s as a child", parent, parent, role)
		}
	}

	// 2. Required child not in allowed children.
	if len(r.AllowedChildren) > 0 {
		for _, req := range r.RequiredChildren {
			if !r.AllowsChild(req) {
				warn("requires child %s but does not allow it", req)
			}
		}
	}

	// 3. min_children > max_children.
	if r.MaxChildren > 0 && r.MinChildren > r.MaxChildren {
		warn("min_children (%d) exceeds max_children (%d)", r.MinChildren, r.MaxChildren)
	}

	// 4. Required children count > max_children.
	if r.MaxChildren > 0 && len(r.RequiredChildren) > r.MaxChildren {
		warn("has %d required children but max_children is %d", len(r.RequiredChildren), r.MaxChildren)
	}

	// 5. min_children > 0 with empty allowed_children.
	if r.MinChildren > 0 && len(r.AllowedChildren) == 0 {
		warn("min_children is %d but allowed_children is empty", r.MinChildren)
	}

	// 6. required_children set with no allowed_children.
	if len(r.RequiredChildren) > 0 && len(r.AllowedChildren) == 0 {
		warn("required_children is set (%v) but allowed_children is empty", r.RequiredChildren)
	}

	return out
}
