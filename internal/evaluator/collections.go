package evaluator

import (
	"fmt"

	"github.com/cory-johannsen/checkup/internal/catalog"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

const (
	motherCatchTotal   = 100
	monocultureGoal    = 300
	polycultureEachMin = 15
)

func entryName(en catalog.Entry) string { return en.Name }

func (e *Engine) fishing(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Fishing)
	cat := e.cat.Fish
	caught := s.FishCaught()

	entries := cat.Entries()
	isCaught := func(en catalog.Entry) bool { return caught[en.ID] > 0 }
	species, total := 0, 0
	for _, en := range entries {
		if n := caught[en.ID]; n > 0 {
			species++
			total += n
		}
	}
	sec.AddFact(report.Factf("Has caught %d fish in total", total))
	sec.AddFact(report.Factf("Has caught %d of %d different fish", species, cat.Len()))

	sec.AddResult(report.Evaluate(report.Achievement("Mother Catch", "Catch 100 fish", motherCatchTotal), total))
	for _, r := range []report.Rule{
		report.Achievement("Fisherman", "Catch 10 different fish", 10),
		report.Achievement("Ol' Mariner", "Catch 24 different fish", 24),
		report.Achievement("Master Angler", "Catch every kind of fish", cat.Len()),
	} {
		sec.AddResult(report.Evaluate(r, species))
	}
	sec.AddRemaining("needs to be caught", report.Remaining(entries, isCaught, entryName))
	return sec
}

func (e *Engine) shipping(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Shipping)
	cat := e.cat.Shipping
	shipped := s.BasicShipped()

	entries := cat.Entries()
	isShipped := func(en catalog.Entry) bool { return shipped[en.ID] > 0 }
	n := 0
	for _, en := range entries {
		if isShipped(en) {
			n++
		}
	}
	sec.AddFact(report.Factf("Has shipped %d of %d items", n, cat.Len()))
	sec.AddResult(report.Evaluate(report.Achievement("Full Shipment", "Ship every item", cat.Len()), n))
	sec.AddRemaining("needs to be shipped", report.Remaining(entries, isShipped, entryName))
	return sec
}

func (e *Engine) cropShipping(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.CropShipping)
	poly := e.cat.Polyculture
	shipped := s.BasicShipped()

	// Monoculture counts every crop; Polyculture only the poly catalog.
	best, bestName := 0, ""
	for _, c := range []*catalog.Catalog{poly, e.cat.MonocultureBonus} {
		for _, en := range c.Entries() {
			n := shipped[en.ID]
			if n > best || (n == best && n > 0 && en.Name < bestName) {
				best, bestName = n, en.Name
			}
		}
	}
	if bestName != "" {
		sec.AddFact(report.Fact{
			Text:   fmt.Sprintf("Most shipped crop: %s (%d)", bestName, best),
			Values: []int{best},
		})
	}
	mono := report.Evaluate(report.Achievement("Monoculture", "Ship 300 of one crop", monocultureGoal), best)
	if !mono.Satisfied && bestName != "" {
		mono = mono.WithDetail("ship %d more %s", mono.Deficit, bestName)
	}
	sec.AddResult(mono)

	entries := poly.Entries()
	enough := func(en catalog.Entry) bool { return shipped[en.ID] >= polycultureEachMin }
	n := 0
	for _, en := range entries {
		if enough(en) {
			n++
		}
	}
	sec.AddFact(report.Factf("Has shipped 15 or more of %d of %d crops", n, poly.Len()))
	sec.AddResult(report.Evaluate(report.Achievement("Polyculture", "Ship 15 of each crop", poly.Len()), n))
	sec.AddRemaining("needs to be shipped", report.Remaining(entries, enough, func(en catalog.Entry) string {
		return fmt.Sprintf("%s (%d more)", en.Name, polycultureEachMin-shipped[en.ID])
	}))
	return sec
}

func (e *Engine) museum(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Museum)
	donated := s.MuseumDonations()

	type collection struct {
		noun  string
		cat   *catalog.Catalog
		found map[string]int
	}
	cols := []collection{
		{"artifacts", e.cat.Artifacts, s.ArchaeologyFound()},
		{"minerals", e.cat.Minerals, s.MineralsFound()},
	}

	totalDonated, totalItems := 0, 0
	var milestones []report.Result
	for _, c := range cols {
		entries := c.cat.Entries()
		isDonated := func(en catalog.Entry) bool { return donated[en.ID] }
		isFound := func(en catalog.Entry) bool {
			_, ok := c.found[en.ID]
			return ok || isDonated(en)
		}
		nFound, nDonated := 0, 0
		for _, en := range entries {
			if isFound(en) {
				nFound++
			}
			if isDonated(en) {
				nDonated++
			}
		}
		totalDonated += nDonated
		totalItems += c.cat.Len()
		sec.AddFact(report.Factf("Has found %d of %d "+c.noun, nFound, c.cat.Len()))
		sec.AddFact(report.Factf("Has donated %d of %d "+c.noun, nDonated, c.cat.Len()))
		milestones = append(milestones, report.Evaluate(report.Milestone("Find every one of the "+c.noun, c.cat.Len()), nFound))

		sec.AddRemaining(c.noun+" that need to be found and donated", report.Remaining(entries, isFound, entryName))
		sec.AddRemaining(c.noun+" that need to be donated",
			report.Remaining(entries, func(en catalog.Entry) bool { return !isFound(en) || isDonated(en) }, entryName))
	}

	sec.AddResult(report.Evaluate(report.Achievement("Treasure Trove", "Donate 40 different items to the museum", 40), totalDonated))
	sec.AddResult(report.Evaluate(report.Achievement("A Complete Collection", "Donate every item to the museum", totalItems), totalDonated))
	for _, m := range milestones {
		sec.AddResult(m)
	}
	return sec
}
