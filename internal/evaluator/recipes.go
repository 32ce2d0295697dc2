package evaluator

import (
	"github.com/cory-johannsen/checkup/internal/catalog"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// canonicalNames translates the player's recipe spellings and keeps the count.
func canonicalNames(known map[string]int, aliases catalog.Aliases) map[string]int {
	out := make(map[string]int, len(known))
	for name, n := range known {
		c := aliases.Canonical(name)
		if cur, ok := out[c]; !ok || n > cur {
			out[c] = n
		}
	}
	return out
}

func (e *Engine) cooking(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Cooking)
	cat := e.cat.Cooking
	known := canonicalNames(s.CookingRecipesKnown(), e.cat.CookingAliases)
	cookedByID := s.RecipesCooked()

	knownIDs := make(map[string]bool, len(known))
	for name := range known {
		if id, ok := cat.IDByName(name); ok {
			knownIDs[id] = true
		}
	}

	entries := cat.Entries()
	isCooked := func(en catalog.Entry) bool {
		_, ok := cookedByID[en.ID]
		return ok
	}
	isKnown := func(en catalog.Entry) bool {
		return knownIDs[en.ID] || isCooked(en)
	}

	nKnown, nCooked := 0, 0
	for _, en := range entries {
		if isKnown(en) {
			nKnown++
		}
		if isCooked(en) {
			nCooked++
		}
	}
	sec.AddFact(report.Factf("Knows %d of %d recipes", nKnown, cat.Len()))
	sec.AddFact(report.Factf("Has cooked %d of %d recipes", nCooked, cat.Len()))

	for _, r := range []report.Rule{
		report.Achievement("Cook", "Cook 10 different recipes", 10),
		report.Achievement("Sous Chef", "Cook 25 different recipes", 25),
		report.Achievement("Gourmet Chef", "Cook every recipe", cat.Len()),
	} {
		sec.AddResult(report.Evaluate(r, nCooked))
	}

	name := func(en catalog.Entry) string { return en.Name }
	sec.AddRemaining("needs to be learned and cooked",
		report.Remaining(entries, func(en catalog.Entry) bool { return isKnown(en) }, name))
	sec.AddRemaining("needs to be cooked",
		report.Remaining(entries, func(en catalog.Entry) bool { return !isKnown(en) || isCooked(en) }, name))
	return sec
}

func (e *Engine) crafting(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Crafting)
	list := e.cat.Crafting
	known := canonicalNames(s.CraftingRecipesKnown(), e.cat.CraftingAliases)

	names := list.Names()
	isKnown := func(n string) bool {
		_, ok := known[n]
		return ok
	}
	isCrafted := func(n string) bool { return known[n] > 0 }

	nKnown, nCrafted := 0, 0
	for _, n := range names {
		if isKnown(n) {
			nKnown++
		}
		if isCrafted(n) {
			nCrafted++
		}
	}
	sec.AddFact(report.Factf("Knows %d of %d recipes", nKnown, list.Len()))
	sec.AddFact(report.Factf("Has crafted %d of %d recipes", nCrafted, list.Len()))

	for _, r := range []report.Rule{
		report.Achievement("D.I.Y.", "Craft 15 different items", 15),
		report.Achievement("Artisan", "Craft 30 different items", 30),
		report.Achievement("Craft Master", "Craft every item", list.Len()),
	} {
		sec.AddResult(report.Evaluate(r, nCrafted))
	}

	id := func(n string) string { return n }
	sec.AddRemaining("needs to be learned and crafted", report.Remaining(names, isKnown, id))
	sec.AddRemaining("needs to be crafted",
		report.Remaining(names, func(n string) bool { return !isKnown(n) || isCrafted(n) }, id))
	return sec
}
