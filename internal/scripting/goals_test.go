package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/checkup/internal/evaluator"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
	"github.com/cory-johannsen/checkup/internal/save/savetest"
	"github.com/cory-johannsen/checkup/internal/scripting"
)

func writeTempLua(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	return dir
}

func loadGoals(t testing.TB, files map[string]string) (*scripting.GoalSet, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	gs, err := scripting.LoadGoals(writeTempLua(t, files), 0, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(gs.Close)
	return gs, logs
}

func snapshot(t testing.TB, b *savetest.Builder) *save.Snapshot {
	t.Helper()
	s, err := save.NewSnapshot(b.Build())
	require.NoError(t, err)
	return s
}

func warnings(logs *observer.ObservedLogs) int {
	return logs.FilterLevelExact(zap.WarnLevel).Len()
}

func TestLoadGoals_EvaluatesGoals(t *testing.T) {
	gs, logs := loadGoals(t, map[string]string{
		"money.lua": `
			goal("Tycoon", "Earn 2,000,000g", 2000000, function(save)
				return save.total_money_earned
			end)
		`,
		"stardrops.lua": `
			goal("Pen Pal", "Receive 3 letters", 3, function(save)
				return checkup.count(save.mail)
			end)
		`,
	})
	goals := gs.Goals()
	require.Len(t, goals, 2)
	assert.Equal(t, "Tycoon", goals[0].Name)
	assert.Equal(t, "money.lua", goals[0].Script)
	assert.Equal(t, "Pen Pal", goals[1].Name)

	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill").
		TotalMoneyEarned(500000).
		Mail("a", "b", "c", "d")))

	assert.Equal(t, report.CustomGoals, sec.Category)
	require.Len(t, sec.Results, 2)
	assert.Equal(t, report.KindMilestone, sec.Results[0].Rule.Kind)
	assert.Equal(t, 1500000, sec.Results[0].Deficit)
	assert.True(t, sec.Results[1].Satisfied)
	assert.Equal(t, 4, sec.Results[1].Progress)
	assert.Equal(t, "1 of 2 custom goals met", sec.Facts[0].Text)
	assert.Equal(t, 0, warnings(logs))
}

func TestGoalSet_Helpers(t *testing.T) {
	gs, _ := loadGoals(t, map[string]string{
		"helpers.lua": `
			goal("Catches", "", 10, function(save) return checkup.sum(save.fish_caught) end)
			goal("Farming", "", 10, function(save) return checkup.level(save.experience.Farming) end)
			goal("First", "", 1, function(save)
				local k = checkup.keys(save.friendship)
				if k[1] == "Abigail" then return 1 end
				return 0
			end)
			goal("Pets", "", 1, function(save) return checkup.count(save.pets) end)
			goal("Pet love", "", 1000, function(save) return save.pets[1].friendship end)
			goal("Stable", "", 1, function(save) return checkup.count(save.horses) end)
		`,
	})
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill").
		FishCaught("128", 4).FishCaught("129", 6).
		Experience(15000).
		Friendship("Sam", 10).Friendship("Abigail", 20).
		Pet("Dog", "Rex", 700).
		Pet("Horse", "Bolt", 0)))

	progress := make(map[string]int)
	for _, r := range sec.Results {
		progress[r.Rule.Name] = r.Progress
	}
	assert.Equal(t, 10, progress["Catches"])
	assert.Equal(t, 10, progress["Farming"])
	assert.Equal(t, 1, progress["First"])
	assert.Equal(t, 1, progress["Pets"])
	assert.Equal(t, 700, progress["Pet love"])
	assert.Equal(t, 1, progress["Stable"])
}

func TestGoalSet_SaveIsReadOnly(t *testing.T) {
	gs, logs := loadGoals(t, map[string]string{
		"bad.lua": `
			goal("Cheat", "", 1, function(save)
				save.money = 1000000
				return save.money
			end)
			goal("Nested cheat", "", 1, function(save)
				save.mail.anything = true
				return 1
			end)
		`,
	})
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill")))
	for _, r := range sec.Results {
		assert.False(t, r.Satisfied, r.Rule.Name)
		assert.Equal(t, "goal script failed", r.Detail)
	}
	assert.Equal(t, 2, warnings(logs))
}

func TestGoalSet_CountIgnoresScriptMetatables(t *testing.T) {
	gs, logs := loadGoals(t, map[string]string{
		"meta.lua": `
			goal("Own", "", 1, function(save)
				return checkup.count(setmetatable({a = 1}, {__index = {b = 2, c = 3, d = 4}}))
			end)
			goal("Sum", "", 1, function(save)
				return checkup.sum(setmetatable({5}, {__index = {100}}))
			end)
			goal("Save view", "", 1, function(save) return checkup.count(save.pets) end)
		`,
	})
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill").Pet("Cat", "Tom", 0)))
	require.Len(t, sec.Results, 3)
	assert.Equal(t, 1, sec.Results[0].Progress)
	assert.Equal(t, 5, sec.Results[1].Progress)
	assert.Equal(t, 1, sec.Results[2].Progress)
	assert.Equal(t, 0, warnings(logs))
}

func TestGoalSet_RegistrationClosedAfterLoad(t *testing.T) {
	gs, logs := loadGoals(t, map[string]string{
		"late.lua": `
			goal("Late", "", 1, function(save)
				goal("Sneaky", "", 0, function(save) return 1 end)
				return 1
			end)
		`,
	})
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill")))
	require.Len(t, sec.Results, 1)
	assert.False(t, sec.Results[0].Satisfied)
	assert.Equal(t, "goal script failed", sec.Results[0].Detail)
	assert.Equal(t, 1, warnings(logs))

	goals := gs.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "Late", goals[0].Name)
}

func TestGoalSet_RuntimeErrorsAreIsolated(t *testing.T) {
	gs, logs := loadGoals(t, map[string]string{
		"goals.lua": `
			goal("Spin", "", 1, function(save) while true do end end)
			goal("Text", "", 1, function(save) return "lots" end)
			goal("Boom", "", 1, function(save) error("boom") end)
			goal("Fine", "", 1, function(save) return 1 end)
		`,
	})
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill")))
	require.Len(t, sec.Results, 4)
	assert.False(t, sec.Results[0].Satisfied)
	assert.False(t, sec.Results[1].Satisfied)
	assert.False(t, sec.Results[2].Satisfied)
	assert.True(t, sec.Results[3].Satisfied)
	assert.Equal(t, 3, warnings(logs))

	for _, e := range logs.FilterLevelExact(zap.WarnLevel).All() {
		assert.Equal(t, "goals.lua", e.ContextMap()["script"])
	}
}

func TestGoalSet_OutOfRangeResultFails(t *testing.T) {
	gs, logs := loadGoals(t, map[string]string{
		"big.lua": `
			goal("Huge", "", 10, function(save) return 1e300 end)
			goal("Tiny", "", 10, function(save) return -1e300 end)
			goal("Infinite", "", 10, function(save) return math.huge end)
			goal("Edge", "", 10, function(save) return 2147483647.5 end)
		`,
	})
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill")))
	require.Len(t, sec.Results, 4)
	for _, r := range sec.Results[:3] {
		assert.False(t, r.Satisfied, r.Rule.Name)
		assert.Equal(t, 0, r.Progress, r.Rule.Name)
		assert.Equal(t, 10, r.Deficit, r.Rule.Name)
		assert.Equal(t, "goal script failed", r.Detail, r.Rule.Name)
	}
	assert.True(t, sec.Results[3].Satisfied)
	assert.Equal(t, 2147483647, sec.Results[3].Progress)
	assert.Equal(t, 3, warnings(logs))
}

// Property: every evaluated goal keeps the result invariant, whatever number
// the script returns.
func TestPropertyGoalResultInvariant(t *testing.T) {
	gs, _ := loadGoals(t, map[string]string{
		"echo.lua": `goal("Echo", "", 100, function(save) return save.money * 1e12 - 5e14 end)`,
	})
	rapid.Check(t, func(rt *rapid.T) {
		money := rapid.IntRange(0, 1_000_000).Draw(rt, "money")
		sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill").Money(money)))
		r := sec.Results[0]
		if r.Satisfied != (r.Progress >= r.Rule.Threshold) {
			rt.Fatalf("satisfied=%v with progress %d", r.Satisfied, r.Progress)
		}
		if !r.Satisfied && r.Deficit <= 0 {
			rt.Fatalf("unsatisfied result has deficit %d", r.Deficit)
		}
	})
}

func TestLoadGoals_DuplicateName(t *testing.T) {
	dir := writeTempLua(t, map[string]string{
		"a.lua": `goal("Same", "", 1, function(save) return 1 end)`,
		"b.lua": `goal("Same", "", 2, function(save) return 2 end)`,
	})
	_, err := scripting.LoadGoals(dir, 0, zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrGoalScript)
	assert.Contains(t, err.Error(), "b.lua")
}

func TestLoadGoals_BadArguments(t *testing.T) {
	for name, src := range map[string]string{
		"empty name":  `goal("", "", 1, function(save) return 1 end)`,
		"negative":    `goal("n", "", -1, function(save) return 1 end)`,
		"no function": `goal("n", "", 1, 5)`,
	} {
		dir := writeTempLua(t, map[string]string{"g.lua": src})
		_, err := scripting.LoadGoals(dir, 0, zap.NewNop())
		assert.ErrorIs(t, err, scripting.ErrGoalScript, name)
	}
}

func TestLoadGoals_InvalidLua(t *testing.T) {
	dir := writeTempLua(t, map[string]string{"bad.lua": `this is not valid lua @@@@`})
	_, err := scripting.LoadGoals(dir, 0, zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrGoalScript)
}

func TestLoadGoals_MissingDir(t *testing.T) {
	_, err := scripting.LoadGoals(filepath.Join(t.TempDir(), "nope"), 0, zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrGoalScript)
}

func TestLoadGoals_LoadBudget(t *testing.T) {
	dir := writeTempLua(t, map[string]string{"spin.lua": `while true do end`})
	_, err := scripting.LoadGoals(dir, 50, zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrGoalScript)
}

func TestLoadGoals_IgnoresOtherFiles(t *testing.T) {
	gs, _ := loadGoals(t, map[string]string{
		"README.md": `not lua`,
		"a.lua":     `goal("A", "", 1, function(save) return 1 end)`,
	})
	assert.Len(t, gs.Goals(), 1)
}

func TestLoadGoals_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() {
		scripting.LoadGoals(t.TempDir(), 0, nil) //nolint:errcheck
	})
}

func TestGoalSet_Close(t *testing.T) {
	gs, _ := loadGoals(t, map[string]string{"a.lua": `goal("A", "", 1, function(save) return 1 end)`})
	gs.Close()
	sec := gs.Section(snapshot(t, savetest.New("Ann", "Hill")))
	assert.Empty(t, sec.Results)
	assert.Empty(t, gs.Goals())
}

func TestGoalSet_WiredIntoReport(t *testing.T) {
	gs, _ := loadGoals(t, map[string]string{
		"a.lua": `goal("Deep", "Reach floor 200", 200, function(save) return save.deepest_mine_level end)`,
	})
	full, err := evaluator.Generate(savetest.New("Ann", "Hill").DeepestMineLevel(220).Build(),
		evaluator.WithSections(gs))
	require.NoError(t, err)
	last := full.Sections[len(full.Sections)-1]
	assert.Equal(t, report.CustomGoals, last.Category)
	assert.Equal(t, "Custom Goals", last.Heading)
	assert.True(t, last.Results[0].Satisfied)
}

func TestGoalSet_ConcurrentSections(t *testing.T) {
	gs, _ := loadGoals(t, map[string]string{
		"a.lua": `goal("Quests", "", 5, function(save) return save.quests_completed end)`,
	})
	s := snapshot(t, savetest.New("Ann", "Hill").QuestsCompleted(7))

	const goroutines = 8
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			sec := gs.Section(s)
			assert.Equal(t, 7, sec.Results[0].Progress)
		}()
	}
	wg.Wait()
}
