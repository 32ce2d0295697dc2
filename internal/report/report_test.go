package report_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/checkup/internal/report"
)

func TestEvaluate_Satisfied(t *testing.T) {
	r := report.Evaluate(report.Achievement("Greenhorn", "Earn 15,000g", 15000), 15000)
	assert.True(t, r.Satisfied)
	assert.Equal(t, 0, r.Deficit)
}

func TestEvaluate_Unsatisfied(t *testing.T) {
	r := report.Evaluate(report.Achievement("Cowpoke", "Earn 50,000g", 50000), 15000)
	assert.False(t, r.Satisfied)
	assert.Equal(t, 35000, r.Deficit)
}

func TestProperty_Evaluate_Invariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		threshold := rapid.IntRange(0, 1_000_000).Draw(t, "threshold")
		progress := rapid.IntRange(0, 1_000_000).Draw(t, "progress")
		r := report.Evaluate(report.Milestone("m", threshold), progress)
		if r.Satisfied != (progress >= threshold) {
			t.Fatalf("satisfied=%v for progress=%d threshold=%d", r.Satisfied, progress, threshold)
		}
		if r.Satisfied && r.Deficit != 0 {
			t.Fatalf("satisfied result has deficit %d", r.Deficit)
		}
		if !r.Satisfied && r.Deficit != threshold-progress {
			t.Fatalf("deficit %d, want %d", r.Deficit, threshold-progress)
		}
	})
}

func TestRemaining_SortsAndFilters(t *testing.T) {
	items := []string{"Pike", "Carp", "Bream", "Angler"}
	got := report.Remaining(items,
		func(s string) bool { return s == "Carp" },
		func(s string) string { return s },
	)
	assert.Equal(t, []string{"Angler", "Bream", "Pike"}, got)
}

func TestRemaining_OrdinalOrder(t *testing.T) {
	got := report.Remaining([]string{"b", "B", "a", "A"},
		func(string) bool { return false },
		func(s string) string { return s },
	)
	assert.Equal(t, []string{"A", "B", "a", "b"}, got)
}

func TestRemaining_NilWhenComplete(t *testing.T) {
	got := report.Remaining([]int{1, 2}, func(int) bool { return true }, func(int) string { return "" })
	assert.Nil(t, got)
}

func TestProperty_Remaining_CompleteAndSorted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		items := make([]string, n)
		for i := range items {
			items[i] = rapid.StringMatching(`[A-Za-z ]{1,8}`).Draw(t, "item")
		}
		done := rapid.SliceOfN(rapid.Bool(), n, n).Draw(t, "done")
		satisfied := make(map[string]bool)
		for i, it := range items {
			if done[i] {
				satisfied[it] = true
			}
		}
		got := report.Remaining(items,
			func(s string) bool { return satisfied[s] },
			func(s string) string { return s },
		)
		if !sort.StringsAreSorted(got) {
			t.Fatalf("not sorted: %v", got)
		}
		for i := 1; i < len(got); i++ {
			if got[i] == got[i-1] {
				t.Fatalf("duplicate %q", got[i])
			}
		}
		inRemaining := make(map[string]bool, len(got))
		for _, g := range got {
			inRemaining[g] = true
			if satisfied[g] {
				t.Fatalf("%q is both satisfied and remaining", g)
			}
		}
		for _, it := range items {
			if !satisfied[it] && !inRemaining[it] {
				t.Fatalf("%q is neither satisfied nor remaining", it)
			}
		}
	})
}

func TestSection_Counts(t *testing.T) {
	s := report.NewSection(report.Money)
	s.AddResult(report.Evaluate(report.Achievement("a", "", 1), 1))
	s.AddResult(report.Evaluate(report.Achievement("b", "", 2), 1))
	s.AddResult(report.Evaluate(report.Milestone("m", 1), 1))
	sat, total := s.Counts()
	assert.Equal(t, 1, sat)
	assert.Equal(t, 2, total)
}

func TestSection_AddRemainingSkipsEmpty(t *testing.T) {
	s := report.NewSection(report.Fishing)
	s.AddRemaining("Fish left", nil)
	assert.Empty(t, s.Remaining)
}

func TestFactf(t *testing.T) {
	f := report.Factf("%d of %d fish", 3, 61)
	assert.Equal(t, "3 of 61 fish", f.Text)
	assert.Equal(t, []int{3, 61}, f.Values)
}

func TestCategory_OrderHeadings(t *testing.T) {
	require.Len(t, report.Order, 15)
	assert.Equal(t, report.Summary, report.Order[0])
	assert.Equal(t, report.Grandpa, report.Order[14])
	for _, c := range report.Order {
		assert.False(t, strings.Contains(c.Heading(), "_"), "heading for %q", c)
	}
}

func TestFull_Section(t *testing.T) {
	f := report.Full{Sections: []report.Section{report.NewSection(report.Quests)}}
	s, ok := f.Section(report.Quests)
	require.True(t, ok)
	assert.Equal(t, "Quests", s.Heading)
	_, ok = f.Section(report.Museum)
	assert.False(t, ok)
}
