package completion

import (
	"sort"
	"strings"
)

// Kind is the glyph a completion is shown with
type Kind string

const (
	KindKeyword    Kind = "keyword"
	KindIdentifier Kind = "field"
	KindFilter     Kind = "filter"
	KindMember     Kind = "member"
)

// Item represents a single completion suggestion
type Item struct {
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
}

// NewItems builds one item per label, all with the same kind, in the given order
func NewItems(kind Kind, labels ...string) []Item {
	items := make([]Item, 0, len(labels))
	for _, label := range labels {
		items = append(items, Item{Label: label, Kind: kind})
	}
	return items
}

// FromNames builds items from the keys of a name set, sorted so repeated calls agree
func FromNames[V any](names map[string]V, kind Kind) []Item {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, 0, len(names))
	for name := range names {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return NewItems(kind, keys...)
}

// VariableItems returns the variables known to ctx, the fallback used whenever nothing
// more specific applies
func VariableItems(ctx Context) []Item {
	if ctx == nil {
		return nil
	}
	return FromNames(ctx.Variables(), KindIdentifier)
}

// FilterItems returns the filters known to ctx, if it knows any
func FilterItems(ctx Context) []Item {
	fctx, ok := ctx.(FilterContext)
	if !ok {
		return nil
	}
	return FromNames(fctx.Filters(), KindFilter)
}

// MemberItems returns the attributes of the named variable, if ctx knows them
func MemberItems(ctx Context, name string) []Item {
	mctx, ok := ctx.(MemberContext)
	if !ok {
		return nil
	}
	members := mctx.Members(name)
	if len(members) == 0 {
		return nil
	}
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	return NewItems(KindMember, sorted...)
}

// WithPrefix keeps the items whose label starts with prefix
func WithPrefix(items []Item, prefix string) []Item {
	if prefix == "" {
		return items
	}
	var out []Item
	for _, item := range items {
		if strings.HasPrefix(item.Label, prefix) {
			out = append(out, item)
		}
	}
	return out
}

// Labels returns the label of every item, handy for display and tests
func Labels(items []Item) []string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return labels
}
