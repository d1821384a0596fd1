package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/procure/pkg/domain/entities"
)

// twoGroupModel: group 0 has vars 0,1; group 1 has var 2. One shared capacity
// constraint.
func twoGroupModel(capacity float64) (*Model, Objective) {
	m := &Model{
		NumVars: 3,
		Groups:  [][]int{{0, 1}, {2}},
		Linear: []Constraint{
			{
				Name:  "capacity",
				Terms: []Term{{Var: 0, Coef: 100}, {Var: 1, Coef: 90}, {Var: 2, Coef: 50}},
				Bound: capacity,
			},
		},
	}
	obj := Objective{
		VarCost:     []float64{100, 90, 50},
		SkipPenalty: []float64{1000, 1000},
	}
	return m, obj
}

func TestModel_Validate(t *testing.T) {
	m, obj := twoGroupModel(1000)
	require.NoError(t, m.Validate(obj))

	bad := Objective{VarCost: []float64{1}, SkipPenalty: []float64{1, 1}}
	assert.Error(t, m.Validate(bad))

	overlap := &Model{NumVars: 2, Groups: [][]int{{0, 1}, {1}}}
	assert.Error(t, overlap.Validate(Objective{
		VarCost: []float64{1, 1}, SkipPenalty: []float64{1, 1},
	}))

	orphan := &Model{NumVars: 2, Groups: [][]int{{0}}}
	assert.Error(t, orphan.Validate(Objective{
		VarCost: []float64{1, 1}, SkipPenalty: []float64{1},
	}))
}

func TestRegistry(t *testing.T) {
	for _, kind := range []Kind{KindCP, KindLPRound} {
		s, err := New(kind)
		require.NoError(t, err)
		assert.NotEmpty(t, s.Name())
	}
	_, err := New(Kind(99))
	assert.Error(t, err)

	kind, err := ParseKind("lpround")
	require.NoError(t, err)
	assert.Equal(t, KindLPRound, kind)
	_, err = ParseKind("simplex")
	assert.Error(t, err)
}

func TestCPSolver_PicksCheapestPerGroup(t *testing.T) {
	m, obj := twoGroupModel(1000)
	s, err := New(KindCP)
	require.NoError(t, err)

	sol, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusOptimal, sol.Status)
	assert.Equal(t, []bool{false, true, true}, sol.Assignment, "cheaper option per group wins")
	assert.InDelta(t, 140.0, sol.Objective, 1e-9)
	assert.Empty(t, Validate(m, sol.Assignment))
}

func TestCPSolver_BudgetForcesSkip(t *testing.T) {
	// Capacity fits only one selection; skipping group 0 (same penalty as
	// group 1) costs 1000 while its cheapest option costs 90, so the solver
	// keeps the purchase with the larger savings.
	m, obj := twoGroupModel(95)
	s, _ := New(KindCP)

	sol, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusOptimal, sol.Status)
	assert.Empty(t, Validate(m, sol.Assignment))
	// Exactly one variable selected, and it must be the one with the best
	// savings under the shared capacity: var 2 (savings 950) over var 1 (910).
	assert.Equal(t, []bool{false, false, true}, sol.Assignment)
	assert.InDelta(t, 1050.0, sol.Objective, 1e-9)
}

func TestCPSolver_InfeasibleModel(t *testing.T) {
	m, obj := twoGroupModel(1000)
	// A negative bound with an empty term list can never be satisfied.
	m.Linear = append(m.Linear, Constraint{Name: "impossible", Bound: -1})
	s, _ := New(KindCP)

	sol, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInfeasible, sol.Status)
}

func TestCPSolver_Deterministic(t *testing.T) {
	s, _ := New(KindCP)
	m, obj := twoGroupModel(95)

	first, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)
	second, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)

	assert.Equal(t, first.Objective, second.Objective)
	assert.Equal(t, first.Assignment, second.Assignment)
}

func TestLPSolver_RepairFlagsDegradedResult(t *testing.T) {
	// Both groups want their cheapest option, but capacity only fits one.
	// The fractional fill gives group with higher savings a full unit and the
	// other a fraction that rounds up, so repair must kick in.
	m := &Model{
		NumVars: 2,
		Groups:  [][]int{{0}, {1}},
		Linear: []Constraint{
			{
				Name:  "capacity",
				Terms: []Term{{Var: 0, Coef: 60}, {Var: 1, Coef: 60}},
				Bound: 100,
			},
		},
	}
	obj := Objective{
		VarCost:     []float64{60, 60},
		SkipPenalty: []float64{1000, 900},
	}

	s, err := New(KindLPRound)
	require.NoError(t, err)
	sol, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusFeasible, sol.Status, "lp backend never claims OPTIMAL")
	assert.True(t, sol.Repaired, "post-rounding violation must be repaired and reported")
	assert.Empty(t, Validate(m, sol.Assignment), "repaired solution must satisfy the original constraints")
	// The higher-savings group keeps its purchase.
	assert.Equal(t, []bool{true, false}, sol.Assignment)
}

func TestLPSolver_CleanRoundingNotFlagged(t *testing.T) {
	m, obj := twoGroupModel(1000)
	s, _ := New(KindLPRound)

	sol, err := s.Solve(context.Background(), m, obj, time.Second)
	require.NoError(t, err)
	assert.False(t, sol.Repaired)
	assert.Equal(t, []bool{false, true, true}, sol.Assignment)
	assert.Empty(t, Validate(m, sol.Assignment))
}

func TestObjectiveValue_CountsSkippedGroups(t *testing.T) {
	m, obj := twoGroupModel(1000)
	allSkip := make([]bool, 3)
	assert.InDelta(t, 2000.0, ObjectiveValue(m, obj, allSkip), 1e-9)

	assignment := []bool{true, false, false}
	assert.InDelta(t, 1100.0, ObjectiveValue(m, obj, assignment), 1e-9)
}
