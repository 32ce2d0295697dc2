package evaluator

import (
	"fmt"

	"github.com/cory-johannsen/checkup/internal/catalog"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// levelThresholds[i] is the experience needed for level i+1.
var levelThresholds = [...]int{100, 380, 770, 1300, 2150, 3300, 4800, 6900, 10000, 15000}

// masteredSkills are the skills with a level-10 achievement; Luck is not one.
var masteredSkills = []save.Skill{save.Farming, save.Fishing, save.Foraging, save.Mining, save.Combat}

const (
	maxLevel      = len(levelThresholds)
	maxExperience = 15000
	mineBottom    = 120
)

// SkillLevel converts experience to a skill level in [0, 10].
func SkillLevel(xp int) int {
	lvl := 0
	for _, t := range levelThresholds {
		if xp < t {
			break
		}
		lvl++
	}
	return lvl
}

func (e *Engine) skills(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Skills)
	xp := s.Experience()

	mastered := 0
	for _, sk := range masteredSkills {
		sec.AddFact(report.Fact{
			Text:   fmt.Sprintf("%s: level %d (%d xp)", sk, SkillLevel(xp[sk]), xp[sk]),
			Values: []int{SkillLevel(xp[sk]), xp[sk]},
		})
		if xp[sk] >= maxExperience {
			mastered++
		}
	}
	sec.AddFact(report.Factf("%d skills at level 10", mastered))

	sec.AddResult(report.Evaluate(report.Achievement("Singular Talent", "Reach level 10 in a skill", 1), mastered))
	sec.AddResult(report.Evaluate(report.Achievement("Master of the Five Ways", "Reach level 10 in every skill", len(masteredSkills)), mastered))

	sec.AddRemaining("needs to reach level 10", report.Remaining(masteredSkills,
		func(sk save.Skill) bool { return xp[sk] >= maxExperience },
		func(sk save.Skill) string { return fmt.Sprintf("%s (%d xp more)", sk, maxExperience-xp[sk]) }))
	return sec
}

func (e *Engine) quests(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Quests)
	n := s.QuestsCompleted()
	sec.AddFact(report.Factf("Has completed %d requests", n))
	sec.AddResult(report.Evaluate(report.Achievement("Gofer", "Complete 10 Help Wanted requests", 10), n))
	sec.AddResult(report.Evaluate(report.Achievement("A Big Help", "Complete 40 Help Wanted requests", 40), n))
	return sec
}

func (e *Engine) monsters(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Monsters)
	depth := s.DeepestMineLevel()
	if depth > mineBottom {
		sec.AddFact(report.Factf("Has reached the bottom of the mines and level %d of the Skull Cavern", depth-mineBottom))
	} else {
		sec.AddFact(report.Factf("Deepest mine level reached: %d", depth))
	}
	sec.AddResult(report.Evaluate(report.Achievement("The Bottom", "Reach the bottom of the mines", mineBottom), depth))

	kills := make(map[string]int)
	for monster, n := range s.MonstersKilled() {
		if cat, ok := e.cat.Monsters.CategoryOf(monster); ok {
			kills[cat] += n
		}
	}

	cats := e.cat.Monsters.Categories()
	met := 0
	for _, c := range cats {
		r := report.Evaluate(report.Milestone(fmt.Sprintf("Slay %d %s", c.Goal, c.Name), c.Goal), kills[c.Name])
		if r.Satisfied {
			met++
		}
		sec.AddResult(r)
	}
	sec.AddResult(report.Evaluate(report.Achievement("Protector of the Valley", "Complete every monster slaying goal", len(cats)), met))

	sec.AddRemaining("needs more kills", report.Remaining(cats,
		func(c catalog.MonsterCategory) bool { return kills[c.Name] >= c.Goal },
		func(c catalog.MonsterCategory) string { return fmt.Sprintf("%s (%d more)", c.Name, c.Goal-kills[c.Name]) }))
	return sec
}

func (e *Engine) stardrops(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Stardrops)
	mail := s.MailReceived()
	drops := e.cat.Stardrops()

	found := func(d catalog.Stardrop) bool { return mail[d.Flag] }
	n := 0
	for _, d := range drops {
		if found(d) {
			n++
		}
	}
	sec.AddFact(report.Factf("Has found %d of %d stardrops", n, len(drops)))
	sec.AddResult(report.Evaluate(report.Achievement("Mystery Of The Stardrops", "Find every stardrop", len(drops)), n))
	sec.AddRemaining("needs to be found", report.Remaining(drops, found,
		func(d catalog.Stardrop) string { return d.Source }))
	return sec
}
