package issue

// List is an ordered sequence of issues with the grouping helpers named in
// §4.3: GetResolvedIssues, GetRemainingIssues, group-by-type, and
// group-by-fix-class.
type List struct {
	items []*Issue
}

// NewList returns a List wrapping items, preserving order.
func NewList(items ...*Issue) *List {
	return &List{items: items}
}

// Append adds issue to the end of the list.
func (l *List) Append(i *Issue) {
	l.items = append(l.items, i)
}

// AppendAll adds other's issues, in order, to the end of l.
func (l *List) AppendAll(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}

// Items returns the underlying slice, in insertion order. Callers must not
// mutate the slice directly; use Append.
func (l *List) Items() []*Issue {
	if l == nil {
		return nil
	}
	return l.items
}

// Len returns the number of issues in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// GetResolvedIssues returns the issues whose state is Resolved, in original
// order.
func (l *List) GetResolvedIssues() []*Issue {
	return l.filter(func(i *Issue) bool { return i.state == StateResolved })
}

// GetRemainingIssues returns the issues whose state is still Open (neither
// resolved, failed, nor skipped), in original order.
func (l *List) GetRemainingIssues() []*Issue {
	return l.filter(func(i *Issue) bool { return i.state == StateOpen })
}

// GetFailedIssues returns the issues whose state is Failed.
func (l *List) GetFailedIssues() []*Issue {
	return l.filter(func(i *Issue) bool { return i.state == StateFailed })
}

func (l *List) filter(pred func(*Issue) bool) []*Issue {
	var out []*Issue
	for _, i := range l.Items() {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}

// GroupByType buckets l's issues by Type, preserving each bucket's first-
// occurrence order and the order in which types were first seen (§5
// "issues within a grouped report are ordered by first occurrence").
func (l *List) GroupByType() []TypeGroup {
	order := map[Type]int{}
	var groups []TypeGroup
	for _, i := range l.Items() {
		idx, seen := order[i.Type]
		if !seen {
			idx = len(groups)
			order[i.Type] = idx
			groups = append(groups, TypeGroup{Type: i.Type})
		}
		groups[idx].Issues = append(groups[idx].Issues, i)
	}
	return groups
}

// TypeGroup is one bucket from GroupByType.
type TypeGroup struct {
	Type   Type
	Issues []*Issue
}

// GroupByFixClass buckets the issues that carry a fix by that fix's
// GroupLabel, in first-occurrence order. Issues with no fix are omitted.
func (l *List) GroupByFixClass() []FixGroup {
	order := map[string]int{}
	var groups []FixGroup
	for _, i := range l.Items() {
		if i.Fix == nil {
			continue
		}
		label := i.Fix.GroupLabel()
		idx, seen := order[label]
		if !seen {
			idx = len(groups)
			order[label] = idx
			groups = append(groups, FixGroup{Label: label})
		}
		groups[idx].Issues = append(groups[idx].Issues, i)
	}
	return groups
}

// FixGroup is one bucket from GroupByFixClass.
type FixGroup struct {
	Label  string
	Issues []*Issue
}
