package evaluator

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

const (
	pointsPerHeart = 250
	fiveHearts     = 5 * pointsPerHeart
	tenHearts      = 10 * pointsPerHeart
)

var (
	fiveHeartRules = []report.Rule{
		report.Achievement("A New Friend", "Reach a 5-heart friend level with someone", 1),
		report.Achievement("Cliques", "Reach a 5-heart friend level with 4 people", 4),
		report.Achievement("Networking", "Reach a 5-heart friend level with 10 people", 10),
		report.Achievement("Popular", "Reach a 5-heart friend level with 20 people", 20),
	}
	tenHeartRules = []report.Rule{
		report.Achievement("Best Friends", "Reach a 10-heart friend level with someone", 1),
		report.Achievement("The Beloved Farmer", "Reach a 10-heart friend level with 8 people", 8),
	}
)

func (e *Engine) social(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Social)
	points := s.Friendship()

	names := make([]string, 0, len(points))
	for name := range points {
		names = append(names, name)
	}
	sort.Strings(names)

	five, ten := 0, 0
	for _, name := range names {
		p := points[name]
		if p >= fiveHearts {
			five++
		}
		if p >= tenHearts {
			ten++
		}
		sec.AddFact(report.Fact{
			Text:   fmt.Sprintf("%s: %d hearts (%d points)", name, p/pointsPerHeart, p),
			Values: []int{p / pointsPerHeart, p},
		})
	}
	sec.AddFact(report.Factf("%d relationships of 5 or more hearts", five))
	sec.AddFact(report.Factf("%d relationships of 10 or more hearts", ten))

	for _, r := range fiveHeartRules {
		sec.AddResult(report.Evaluate(r, five))
	}
	for _, r := range tenHeartRules {
		sec.AddResult(report.Evaluate(r, ten))
	}
	return sec
}
