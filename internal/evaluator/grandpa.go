package evaluator

import (
	"strings"

	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// MaxGrandpaScore is the highest total Grandpa's evaluation can award.
const MaxGrandpaScore = 21

const (
	grandpaFriendPoints = 1975
	grandpaPetPoints    = 999
	grandpaHouseLevel   = 2
)

// bracket awards points when a value reaches min. Bracket lists are ordered
// from the highest min down and only the first match is awarded.
type bracket struct {
	min    int
	points int
}

var (
	moneyBrackets = []bracket{
		{1_000_000, 7}, {500_000, 5}, {300_000, 4}, {200_000, 3}, {100_000, 2}, {50_000, 1},
	}
	friendBrackets = []bracket{{10, 2}, {5, 1}}
	levelBrackets  = []bracket{{25, 2}, {15, 1}}
	candleBrackets = []bracket{{12, 4}, {8, 3}, {4, 2}}
)

// award returns the points of the highest bracket v reaches and the next
// bracket above it, if any.
func award(bs []bracket, v int) (points int, next *bracket) {
	for i := range bs {
		if v >= bs[i].min {
			return bs[i].points, next
		}
		next = &bs[i]
	}
	return 0, next
}

func maxPoints(bs []bracket) int { return bs[0].points }

// Candles converts a Grandpa score into the number of candles lit.
//
// Postcondition: Returns a value in [1, 4], non-decreasing in score.
func Candles(score int) int {
	if n, _ := award(candleBrackets, score); n > 0 {
		return n
	}
	return 1
}

// GrandpaScore returns the total of the points results in a Grandpa section.
func GrandpaScore(sec report.Section) int {
	total := 0
	for _, r := range sec.Results {
		if r.Rule.Kind == report.KindPoints {
			total += r.Progress
		}
	}
	return total
}

func pointsRule(name, description string, max int) report.Rule {
	return report.Rule{Kind: report.KindPoints, Name: name, Description: description, Threshold: max}
}

func (e *Engine) grandpa(s *save.Snapshot) report.Section {
	sec := report.NewSection(report.Grandpa)
	gp := e.cat.Grandpa
	var results []report.Result

	// Lifetime earnings.
	earned := s.TotalMoneyEarned()
	pts, next := award(moneyBrackets, earned)
	r := report.Evaluate(pointsRule("Earnings", "Total money earned", maxPoints(moneyBrackets)), pts)
	if next != nil {
		r = r.WithDetail("earn %dg more for %d points", next.min-earned, next.points)
	}
	results = append(results, r)

	// Achievements, one point each.
	have := s.Achievements()
	var missing []string
	pts = 0
	for _, a := range gp.Achievements() {
		if have[a.ID] {
			pts++
		} else {
			missing = append(missing, a.Name)
		}
	}
	r = report.Evaluate(pointsRule("Achievements", "Achievements unlocked", len(gp.Achievements())), pts)
	if len(missing) > 0 {
		r = r.WithDetail("needs %s", strings.Join(missing, ", "))
	}
	results = append(results, r)

	// Community center.
	mail := s.MailReceived()
	missing = missing[:0]
	for _, room := range gp.CommunityRooms() {
		if !mail[room.ID] {
			missing = append(missing, room.Name)
		}
	}
	r = report.Evaluate(pointsRule("Community Center", "Community center restored and ceremony attended", 3), 0)
	switch {
	case s.EventsSeen()[gp.CeremonyEvent()]:
		r = report.Evaluate(r.Rule, 3)
	case len(missing) == 0:
		r = report.Evaluate(r.Rule, 1).WithDetail("attend the community center ceremony for 3 points")
	default:
		r = r.WithDetail("complete %s", strings.Join(missing, ", "))
	}
	results = append(results, r)

	results = append(results,
		flagPoints("Rusty Key", "Sewers unlocked", s.HasRustyKey(), "find the rusty key"),
		flagPoints("Skull Key", "Skull Cavern unlocked", s.HasSkullKey(), "find the skull key"),
	)

	// Marriage and house.
	married := s.Spouse() != ""
	house := s.HouseUpgradeLevel()
	r = report.Evaluate(pointsRule("Family", "Married with an upgraded house", 1), 0)
	switch {
	case married && house >= grandpaHouseLevel:
		r = report.Evaluate(r.Rule, 1)
	case !married && house < grandpaHouseLevel:
		r = r.WithDetail("get married and upgrade the house %d more times", grandpaHouseLevel-house)
	case !married:
		r = r.WithDetail("get married")
	default:
		r = r.WithDetail("upgrade the house %d more times", grandpaHouseLevel-house)
	}
	results = append(results, r)

	// Friendships of 8 or more hearts.
	friends := 0
	for _, p := range s.Friendship() {
		if p >= grandpaFriendPoints {
			friends++
		}
	}
	pts, next = award(friendBrackets, friends)
	r = report.Evaluate(pointsRule("Friendship", "Friends at 8 hearts", maxPoints(friendBrackets)), pts)
	if next != nil {
		r = r.WithDetail("befriend %d more people for %d points", next.min-friends, next.points)
	}
	results = append(results, r)

	// Player level.
	xp := s.Experience()
	sum := 0
	for _, v := range xp {
		sum += SkillLevel(v)
	}
	level := sum / 2
	pts, next = award(levelBrackets, level)
	r = report.Evaluate(pointsRule("Player Level", "Combined skill level", maxPoints(levelBrackets)), pts)
	if next != nil {
		r = r.WithDetail("gain %d more player levels for %d points", next.min-level, next.points)
	}
	results = append(results, r)

	// Pet friendship.
	pets := s.Pets()
	best := -1
	for _, p := range pets {
		if p.Friendship > best {
			best = p.Friendship
		}
	}
	r = report.Evaluate(pointsRule("Pet", "Pet friendship maxed", 1), 0)
	switch {
	case best >= grandpaPetPoints:
		r = report.Evaluate(r.Rule, 1)
	case len(pets) == 0:
		r = r.WithDetail("get a pet")
	default:
		r = r.WithDetail("raise pet friendship by %d", grandpaPetPoints-best)
	}
	results = append(results, r)

	score := 0
	for _, res := range results {
		score += res.Progress
	}
	sec.AddFact(report.Factf("Total score: %d of %d", score, MaxGrandpaScore))
	sec.AddFact(report.Factf("Candles lit: %d", Candles(score)))
	for _, res := range results {
		sec.AddResult(res)
	}
	return sec
}

func flagPoints(name, description string, ok bool, todo string) report.Result {
	r := report.Evaluate(pointsRule(name, description, 1), 0)
	if ok {
		return report.Evaluate(r.Rule, 1)
	}
	return r.WithDetail("%s", todo)
}
