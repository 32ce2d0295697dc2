package report

import "sort"

// Remaining lists every item that is not yet satisfied, formatted by label.
//
// This is the one diff routine every category uses to build its "still needed"
// lists: items is the full catalog, satisfied reports whether the player has
// already met the goal for an item, and label renders an unmet item together
// with its specific deficiency.
//
// Postcondition: the result is strictly ascending under byte-wise string
// comparison and holds no duplicates. It is nil when nothing remains.
func Remaining[T any](items []T, satisfied func(T) bool, label func(T) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		if satisfied(it) {
			continue
		}
		l := label(it)
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
