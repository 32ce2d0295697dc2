package scripting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// ErrGoalScript is wrapped by every error raised while loading goal scripts.
var ErrGoalScript = errors.New("goal script")

// Goal is one custom goal registered by a script.
type Goal struct {
	Name        string
	Description string
	Threshold   int
	// Script is the file that registered the goal.
	Script string

	fn *lua.LFunction
}

// GoalSet owns one sandboxed VM holding every registered goal.
//
// GoalSet is safe for concurrent Section calls; evaluations are serialized
// because an LState is single-threaded.
type GoalSet struct {
	mu        sync.Mutex
	L         *lua.LState
	cancel    func()
	goals     []Goal
	instLimit int
	logger    *zap.Logger

	loading string
}

// LoadGoals creates a sandboxed VM, registers the goal and checkup modules,
// then executes every *.lua file in dir in lexicographic order.
//
// Precondition: logger must be non-nil; dir must be a readable directory.
// Postcondition: Returns a GoalSet holding the registered goals in registration
// order, or an error wrapping ErrGoalScript.
func LoadGoals(dir string, instLimit int, logger *zap.Logger) (*GoalSet, error) {
	if logger == nil {
		panic("scripting.LoadGoals: logger must not be nil")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading script dir %q: %w", ErrGoalScript, dir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L, cancel := NewSandboxedState(instLimit)
	g := &GoalSet{L: L, cancel: cancel, instLimit: instLimit, logger: logger}
	g.RegisterModules(L)

	for _, path := range luaFiles {
		g.loading = filepath.Base(path)
		g.cancel()
		g.cancel = resetBudget(L, instLimit)
		if err := L.DoFile(path); err != nil {
			g.Close()
			return nil, fmt.Errorf("%w: loading %q: %w", ErrGoalScript, path, err)
		}
	}
	g.loading = ""
	logger.Debug("custom goals loaded",
		zap.String("dir", dir),
		zap.Int("scripts", len(luaFiles)),
		zap.Int("goals", len(g.goals)),
	)
	return g, nil
}

// Goals returns the registered goals in registration order.
func (g *GoalSet) Goals() []Goal {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Goal, len(g.goals))
	copy(out, g.goals)
	return out
}

// Section evaluates every goal against s and returns the Custom Goals section.
// A goal whose function errors, exceeds its budget, or returns a non-number or
// a number outside the int32 range is reported unsatisfied with zero progress and logged at Warn.
//
// Postcondition: Returns one milestone result per goal in registration order.
func (g *GoalSet) Section(s *save.Snapshot) report.Section {
	g.mu.Lock()
	defer g.mu.Unlock()

	sec := report.NewSection(report.CustomGoals)
	if g.L == nil {
		return sec
	}
	view := saveTable(g.L, s)
	met := 0
	for _, goal := range g.goals {
		rule := report.Rule{Kind: report.KindMilestone, Name: goal.Name, Description: goal.Description, Threshold: goal.Threshold}
		progress, err := g.call(goal, view)
		if err != nil {
			g.logger.Warn("custom goal failed",
				zap.String("goal", goal.Name),
				zap.String("script", goal.Script),
				zap.Error(err),
			)
			sec.AddResult(report.Evaluate(rule, 0).WithDetail("goal script failed"))
			continue
		}
		r := report.Evaluate(rule, progress)
		if r.Satisfied {
			met++
		}
		sec.AddResult(r)
	}
	sec.AddFact(report.Factf("%d of %d custom goals met", met, len(g.goals)))
	return sec
}

func (g *GoalSet) call(goal Goal, view lua.LValue) (int, error) {
	g.cancel()
	g.cancel = resetBudget(g.L, g.instLimit)
	if err := g.L.CallByParam(lua.P{Fn: goal.fn, NRet: 1, Protect: true}, view); err != nil {
		return 0, err
	}
	ret := g.L.Get(-1)
	g.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("returned %s, want number", ret.Type())
	}
	f := math.Floor(float64(n))
	if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("returned %v, outside the int32 range", float64(n))
	}
	return int(f), nil
}

// Close releases the VM. Section returns an empty section afterwards.
func (g *GoalSet) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.L == nil {
		return
	}
	if g.cancel != nil {
		g.cancel()
	}
	g.L.Close()
	g.L = nil
	g.goals = nil
}
