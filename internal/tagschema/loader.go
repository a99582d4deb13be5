package tagschema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// ruleFile is the on-disk shape of a tagschema-*.yaml file (§6): a mapping
// role → rule, where rule may specify parent_must_be, allowed_children,
// required_children, min_children, max_children, and child_pattern.
type ruleFile struct {
	ParentMustBe     []string `yaml:"parent_must_be"`
	AllowedChildren  []string `yaml:"allowed_children"`
	RequiredChildren []string `yaml:"required_children"`
	MinChildren      int      `yaml:"min_children"`
	MaxChildren      int      `yaml:"max_children"`
	ChildPattern     string   `yaml:"child_pattern"`
}

func rolesOf(names []string) []structtree.Role {
	if len(names) == 0 {
		return nil
	}
	out := make([]structtree.Role, len(names))
	for i, n := range names {
		out[i] = structtree.Role(n)
	}
	return out
}

// Load reads a tagschema YAML file from path, populates missing roles, and
// returns the Schema plus any advisory consistency warnings. If strict is
// true, consistency warnings are joined into a non-nil error instead of
// being silently advisory (§SPEC_FULL E, the --strict decision).
func Load(path string, strict bool) (*Schema, []ConsistencyWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("schema_load_error: %w", err)
	}
	return LoadBytes(data, strict)
}

// LoadBytes parses raw YAML schema content, as Load does, without touching
// the filesystem. It is the seam tests and alternative loaders use.
func LoadBytes(data []byte, strict bool) (*Schema, []ConsistencyWarning, error) {
	var raw map[string]ruleFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("schema_load_error: %w", err)
	}

	s := New()
	for roleName, rf := range raw {
		role := structtree.Role(roleName)
		s.Rules[role] = &Rule{
			Role:             role,
			ParentMustBe:     rolesOf(rf.ParentMustBe),
			AllowedChildren:  rolesOf(rf.AllowedChildren),
			RequiredChildren: rolesOf(rf.RequiredChildren),
			MinChildren:      rf.MinChildren,
			MaxChildren:      rf.MaxChildren,
			ChildPattern:     rf.ChildPattern,
		}
	}
	s.PopulateMissingRoles()

	warnings := s.ValidateConsistency()
	if strict && len(warnings) > 0 {
		return s, warnings, fmt.Errorf("schema_load_error: %d consistency warning(s) rejected under --strict: %v", len(warnings), warnings)
	}
	return s, warnings, nil
}
