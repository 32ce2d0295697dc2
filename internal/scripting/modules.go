package scripting

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/checkup/internal/evaluator"
	"github.com/cory-johannsen/checkup/internal/save"
)

// RegisterModules defines the goal() registration function and the checkup.*
// helper table in L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: goal and checkup globals are defined in L.
func (g *GoalSet) RegisterModules(L *lua.LState) {
	L.SetGlobal("goal", L.NewFunction(g.luaGoal))

	checkup := L.NewTable()
	L.SetField(checkup, "count", L.NewFunction(luaCount))
	L.SetField(checkup, "sum", L.NewFunction(luaSum))
	L.SetField(checkup, "keys", L.NewFunction(luaKeys))
	L.SetField(checkup, "level", L.NewFunction(luaLevel))
	L.SetGlobal("checkup", checkup)
}

// luaGoal implements goal(name, description, threshold, fn).
//
// Precondition: Called from a script's top level during LoadGoals.
func (g *GoalSet) luaGoal(L *lua.LState) int {
	name := L.CheckString(1)
	desc := L.CheckString(2)
	threshold := L.CheckInt(3)
	fn := L.CheckFunction(4)
	if g.loading == "" {
		L.RaiseError("goal() may only be called while scripts load")
		return 0
	}
	if name == "" {
		L.ArgError(1, "goal name must not be empty")
		return 0
	}
	if threshold < 0 {
		L.ArgError(3, "threshold must be >= 0")
		return 0
	}
	for _, existing := range g.goals {
		if existing.Name == name {
			L.RaiseError("goal %q already registered by %s", name, existing.Script)
			return 0
		}
	}
	g.goals = append(g.goals, Goal{Name: name, Description: desc, Threshold: threshold, Script: g.loading, fn: fn})
	return 0
}

// luaCount returns the number of entries in a table, looking through
// read-only save views.
func luaCount(L *lua.LState) int {
	n := 0
	tableOf(L, L.CheckAny(1)).ForEach(func(lua.LValue, lua.LValue) { n++ })
	L.Push(lua.LNumber(n))
	return 1
}

// luaSum returns the sum of the numeric values in a table.
func luaSum(L *lua.LState) int {
	var total lua.LNumber
	tableOf(L, L.CheckAny(1)).ForEach(func(_, v lua.LValue) {
		if n, ok := v.(lua.LNumber); ok {
			total += n
		}
	})
	L.Push(total)
	return 1
}

// luaKeys returns the string keys of a table as a sorted array.
func luaKeys(L *lua.LState) int {
	var keys []string
	tableOf(L, L.CheckAny(1)).ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})
	sort.Strings(keys)
	out := L.NewTable()
	for _, k := range keys {
		out.Append(lua.LString(k))
	}
	L.Push(out)
	return 1
}

// luaLevel converts experience to a skill level.
func luaLevel(L *lua.LState) int {
	L.Push(lua.LNumber(evaluator.SkillLevel(L.CheckInt(1))))
	return 1
}

// tableOf unwraps a read-only proxy to the table holding its data.
func tableOf(L *lua.LState, v lua.LValue) *lua.LTable {
	t, ok := v.(*lua.LTable)
	if !ok {
		L.ArgError(1, "table expected")
		return nil
	}
	if mt, ok := t.Metatable.(*lua.LTable); ok && mt.RawGet(readOnlyMark) == lua.LTrue {
		if inner, ok := mt.RawGetString("__index").(*lua.LTable); ok {
			return inner
		}
	}
	return t
}

// readOnlyMark keys the metatables built by readOnly. Scripts cannot reach
// the value, so a script's own __index chain is never mistaken for a proxy.
var readOnlyMark = &lua.LUserData{}

// readOnly wraps data in an empty proxy whose metatable forwards reads and
// rejects writes.
func readOnly(L *lua.LState, data *lua.LTable) *lua.LTable {
	proxy := L.NewTable()
	mt := L.NewTable()
	mt.RawSetString("__index", data)
	mt.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("save is read-only")
		return 0
	}))
	mt.RawSetString("__metatable", lua.LFalse)
	mt.RawSet(readOnlyMark, lua.LTrue)
	L.SetMetatable(proxy, mt)
	return proxy
}

func intMap(L *lua.LState, m map[string]int) *lua.LTable {
	t := L.NewTable()
	for k, v := range m {
		t.RawSetString(k, lua.LNumber(v))
	}
	return readOnly(L, t)
}

func boolSet(L *lua.LState, m map[string]bool) *lua.LTable {
	t := L.NewTable()
	for k, v := range m {
		if v {
			t.RawSetString(k, lua.LTrue)
		}
	}
	return readOnly(L, t)
}

func people(L *lua.LState, ps []save.Person) *lua.LTable {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
	t := L.NewTable()
	for _, p := range ps {
		row := L.NewTable()
		row.RawSetString("name", lua.LString(p.Name))
		row.RawSetString("location", lua.LString(p.Location))
		row.RawSetString("friendship", lua.LNumber(p.Friendship))
		t.Append(readOnly(L, row))
	}
	return readOnly(L, t)
}

// saveTable builds the read-only save view passed to goal functions.
//
// Postcondition: Every nested table rejects writes.
func saveTable(L *lua.LState, s *save.Snapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("farmer", lua.LString(s.FarmerName()))
	t.RawSetString("farm", lua.LString(s.FarmName()))
	t.RawSetString("spouse", lua.LString(s.Spouse()))
	t.RawSetString("money", lua.LNumber(s.Money()))
	t.RawSetString("total_money_earned", lua.LNumber(s.TotalMoneyEarned()))
	t.RawSetString("deepest_mine_level", lua.LNumber(s.DeepestMineLevel()))
	t.RawSetString("house_upgrade_level", lua.LNumber(s.HouseUpgradeLevel()))
	t.RawSetString("quests_completed", lua.LNumber(s.QuestsCompleted()))
	t.RawSetString("rusty_key", lua.LBool(s.HasRustyKey()))
	t.RawSetString("skull_key", lua.LBool(s.HasSkullKey()))

	d := s.Date()
	date := L.NewTable()
	date.RawSetString("year", lua.LNumber(d.Year))
	date.RawSetString("season", lua.LString(d.Season))
	date.RawSetString("day", lua.LNumber(d.Day))
	t.RawSetString("date", readOnly(L, date))

	xp := s.Experience()
	skills := L.NewTable()
	for i, v := range xp {
		skills.RawSetString(save.Skill(i).String(), lua.LNumber(v))
	}
	t.RawSetString("experience", readOnly(L, skills))

	t.RawSetString("friendship", intMap(L, s.Friendship()))
	t.RawSetString("cooking_known", intMap(L, s.CookingRecipesKnown()))
	t.RawSetString("recipes_cooked", intMap(L, s.RecipesCooked()))
	t.RawSetString("crafting_known", intMap(L, s.CraftingRecipesKnown()))
	t.RawSetString("fish_caught", intMap(L, s.FishCaught()))
	t.RawSetString("shipped", intMap(L, s.BasicShipped()))
	t.RawSetString("artifacts_found", intMap(L, s.ArchaeologyFound()))
	t.RawSetString("minerals_found", intMap(L, s.MineralsFound()))
	t.RawSetString("monsters_killed", intMap(L, s.MonstersKilled()))
	t.RawSetString("museum", boolSet(L, s.MuseumDonations()))
	t.RawSetString("mail", boolSet(L, s.MailReceived()))
	t.RawSetString("events", boolSet(L, s.EventsSeen()))
	t.RawSetString("achievements", boolSet(L, s.Achievements()))
	t.RawSetString("children", people(L, s.Children()))
	t.RawSetString("pets", people(L, s.Pets()))
	t.RawSetString("horses", people(L, s.Horses()))
	return readOnly(L, t)
}
