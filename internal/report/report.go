// Package report defines the values a checkup produces: sections of facts,
// rule results and remaining-item lists, assembled in a fixed order.
//
// Report values carry plain text and a semantic Kind tag only; colours and
// markup belong to the renderer.
package report

import "fmt"

// Kind tags a rule for the renderer.
type Kind string

const (
	KindAchievement Kind = "achievement"
	KindMilestone   Kind = "milestone"
	KindPoints      Kind = "points"
)

// Rule is a goal compared against a progress value with ">=".
type Rule struct {
	Kind        Kind   `json:"kind" yaml:"kind"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description" yaml:"description"`
	Threshold   int    `json:"threshold" yaml:"threshold"`
}

// Achievement returns a named achievement rule.
func Achievement(name, description string, threshold int) Rule {
	return Rule{Kind: KindAchievement, Name: name, Description: description, Threshold: threshold}
}

// Milestone returns an unnamed milestone rule.
func Milestone(description string, threshold int) Rule {
	return Rule{Kind: KindMilestone, Description: description, Threshold: threshold}
}

// Result is a rule evaluated against progress.
//
// Invariant: Satisfied == (Progress >= Rule.Threshold); Deficit is
// Rule.Threshold-Progress when unsatisfied and 0 otherwise.
type Result struct {
	Rule      Rule   `json:"rule" yaml:"rule"`
	Progress  int    `json:"progress" yaml:"progress"`
	Satisfied bool   `json:"satisfied" yaml:"satisfied"`
	Deficit   int    `json:"deficit" yaml:"deficit"`
	Detail    string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Evaluate compares progress against rule.
func Evaluate(rule Rule, progress int) Result {
	r := Result{Rule: rule, Progress: progress}
	if progress >= rule.Threshold {
		r.Satisfied = true
		return r
	}
	r.Deficit = rule.Threshold - progress
	return r
}

// WithDetail returns a copy of r carrying a free-text deficit description.
func (r Result) WithDetail(format string, args ...interface{}) Result {
	r.Detail = fmt.Sprintf(format, args...)
	return r
}

// Fact is a summary line with the numbers it mentions.
type Fact struct {
	Text   string `json:"text" yaml:"text"`
	Values []int  `json:"values,omitempty" yaml:"values,omitempty"`
}

// Factf formats a fact; values are recorded alongside the text.
func Factf(format string, values ...int) Fact {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return Fact{Text: fmt.Sprintf(format, args...), Values: append([]int(nil), values...)}
}

// Group is a labelled list of items still needed.
//
// Invariant: Items is strictly ascending under byte-wise comparison.
type Group struct {
	Label string   `json:"label" yaml:"label"`
	Items []string `json:"items" yaml:"items"`
}

// Section is the computed result for one category.
type Section struct {
	Category  Category `json:"category" yaml:"category"`
	Heading   string   `json:"heading" yaml:"heading"`
	Facts     []Fact   `json:"facts,omitempty" yaml:"facts,omitempty"`
	Results   []Result `json:"results,omitempty" yaml:"results,omitempty"`
	Remaining []Group  `json:"remaining,omitempty" yaml:"remaining,omitempty"`
}

// NewSection starts a section with the category's heading.
func NewSection(c Category) Section {
	return Section{Category: c, Heading: c.Heading()}
}

// AddFact appends a fact.
func (s *Section) AddFact(f Fact) { s.Facts = append(s.Facts, f) }

// AddResult appends a result.
func (s *Section) AddResult(r Result) { s.Results = append(s.Results, r) }

// AddRemaining appends a remaining group when it has items.
func (s *Section) AddRemaining(label string, items []string) {
	if len(items) == 0 {
		return
	}
	s.Remaining = append(s.Remaining, Group{Label: label, Items: items})
}

// Counts returns the number of satisfied and total achievement results.
// Milestones and point lines are not counted.
func (s Section) Counts() (satisfied, total int) {
	for _, r := range s.Results {
		if r.Rule.Kind != KindAchievement {
			continue
		}
		total++
		if r.Satisfied {
			satisfied++
		}
	}
	return satisfied, total
}

// Full is the ordered list of sections for one save.
type Full struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section returns the section for c.
//
// Postcondition: ok is false when the report has no such section.
func (f Full) Section(c Category) (Section, bool) {
	for _, s := range f.Sections {
		if s.Category == c {
			return s, true
		}
	}
	return Section{}, false
}
