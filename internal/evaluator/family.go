package evaluator

import (
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// maxChildren is the number of children the farmhouse can hold.
const maxChildren = 2

var (
	houseRules = []report.Rule{
		report.Achievement("Moving Up", "Upgrade your house", 1),
		report.Achievement("Living Large", "Upgrade your house to the maximum size", 2),
		report.Milestone("Upgrade your house with a cellar", 3),
	}
	fullHouse = report.Achievement("Full House", "Get married and have two children", 1+maxChildren)
)

func (e *Engine) family(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Family)
	spouse := s.Spouse()
	kids := s.Children()

	if spouse != "" {
		sec.AddFact(report.Fact{Text: "Married to " + spouse})
	} else {
		sec.AddFact(report.Fact{Text: "Not married"})
	}
	sec.AddFact(report.Factf("Has %d children", len(kids)))
	level := s.HouseUpgradeLevel()
	sec.AddFact(report.Factf("House upgrade level %d", level))

	for _, r := range houseRules {
		sec.AddResult(report.Evaluate(r, level))
	}

	married := 0
	if spouse != "" {
		married = 1
	}
	children := len(kids)
	if children > maxChildren {
		children = maxChildren
	}
	res := report.Evaluate(fullHouse, married+children)
	switch {
	case res.Satisfied:
	case married == 0 && children == maxChildren:
		res = res.WithDetail("needs a spouse")
	case married == 0:
		res = res.WithDetail("needs a spouse and %d more children", maxChildren-children)
	default:
		res = res.WithDetail("needs %d more children", maxChildren-children)
	}
	sec.AddResult(res)
	return sec
}
