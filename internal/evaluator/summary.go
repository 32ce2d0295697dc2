package evaluator

import (
	"fmt"

	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

func (e *Engine) summary(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Summary)
	sec.AddFact(report.Fact{Text: fmt.Sprintf("%s of %s Farm", s.FarmerName(), s.FarmName())})

	if d := s.Date(); d.Year > 0 {
		sec.AddFact(report.Fact{
			Text:   fmt.Sprintf("Day %d of %s, Year %d", d.Day, d.Season, d.Year),
			Values: []int{d.Day, d.Year},
		})
	}

	minutes := int(s.MillisecondsPlayed() / 60000)
	sec.AddFact(report.Factf("Played for %d hours and %d minutes", minutes/60, minutes%60))
	sec.AddFact(report.Factf("Has %dg on hand", s.Money()))
	return sec
}
