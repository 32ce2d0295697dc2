package evaluator

import (
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

var moneyRules = []report.Rule{
	report.Achievement("Greenhorn", "Earn 15,000g", 15_000),
	report.Achievement("Cowpoke", "Earn 50,000g", 50_000),
	report.Achievement("Homesteader", "Earn 250,000g", 250_000),
	report.Achievement("Millionaire", "Earn 1,000,000g", 1_000_000),
	report.Achievement("Legend", "Earn 10,000,000g", 10_000_000),
}

func (e *Engine) money(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Money)
	earned := s.TotalMoneyEarned()
	sec.AddFact(report.Factf("Has earned a total of %dg", earned))
	for _, r := range moneyRules {
		sec.AddResult(report.Evaluate(r, earned))
	}
	return sec
}
