// Package evaluator maps a save snapshot through the per-category rule sets
// and assembles the completion report.
//
// Evaluators are pure: they read the snapshot and the immutable catalogs and
// return a report.Section. An Engine may be shared by concurrent callers as
// long as each snapshot is used by one caller at a time.
package evaluator

import (
	"github.com/cory-johannsen/checkup/internal/catalog"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// SectionSource contributes an extra section after the built-in ones.
type SectionSource interface {
	Section(s *save.Snapshot) report.Section
}

// Engine evaluates snapshots against a catalog set.
type Engine struct {
	cat    *catalog.Set
	extras []SectionSource
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog overrides the embedded catalog set.
func WithCatalog(cat *catalog.Set) Option {
	return func(e *Engine) { e.cat = cat }
}

// WithSections appends sections produced by src after Grandpa's evaluation.
func WithSections(src ...SectionSource) Option {
	return func(e *Engine) { e.extras = append(e.extras, src...) }
}

// New creates an Engine.
//
// Postcondition: Returns a non-nil Engine using catalog.Default() unless
// WithCatalog is given.
func New(opts ...Option) *Engine {
	e := &Engine{cat: catalog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Generate builds a snapshot of doc and assembles its report.
//
// Postcondition: Returns the full report, or an error wrapping
// save.ErrMalformedDocument with no partial report.
func (e *Engine) Generate(doc save.Node) (report.Full, error) {
	snap, err := save.NewSnapshot(doc)
	if err != nil {
		return report.Full{}, err
	}
	return e.Assemble(snap), nil
}

// Assemble runs every evaluator in presentation order.
//
// Postcondition: len(result.Sections) == len(report.Order) plus one per
// extra section source; sections follow report.Order.
func (e *Engine) Assemble(s *save.Snapshot) report.Full {
	evals := []func(*save.Snapshot) report.Section{
		e.summary,
		e.money,
		e.skills,
		e.quests,
		e.monsters,
		e.stardrops,
		e.family,
		e.social,
		e.cooking,
		e.crafting,
		e.fishing,
		e.shipping,
		e.cropShipping,
		e.museum,
		e.grandpa,
	}
	full := report.Full{Sections: make([]report.Section, 0, len(evals)+len(e.extras))}
	for _, ev := range evals {
		full.Sections = append(full.Sections, ev(s))
	}
	for _, src := range e.extras {
		full.Sections = append(full.Sections, src.Section(s))
	}
	return full
}

// Generate is Engine.Generate on an Engine built with opts.
func Generate(doc save.Node, opts ...Option) (report.Full, error) {
	return New(opts...).Generate(doc)
}
