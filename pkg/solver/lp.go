package solver

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/planwise/procure/pkg/domain/entities"
)

func init() {
	Register(KindLPRound, func() Solver { return &lpSolver{} })
}

// lpSolver solves a greedy fractional relaxation of the model and rounds the
// result to a boolean assignment. Rounding can overshoot constraints or land
// away from the true optimum, so every rounded solution is re-validated
// against the original model and repaired by dropping selections; anything
// that needed repair is flagged so callers can treat it as approximate. The
// backend never reports OPTIMAL.
type lpSolver struct{}

func (s *lpSolver) Name() string { return "lp-relaxation-rounding" }

// groupChoice is the relaxation's preferred variable within one group
type groupChoice struct {
	group   int
	varIdx  int
	savings float64 // penalty avoided minus cost, per full unit
	frac    float64
}

func (s *lpSolver) Solve(ctx context.Context, model *Model, obj Objective, timeLimit time.Duration) (*Solution, error) {
	if err := model.Validate(obj); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_ = timeLimit // the relaxation is a single greedy pass, far below any sane limit

	varTerms := buildVarTerms(model)

	// Relaxation: per group pick the variable with the best savings over
	// skipping, then fill fractionally in descending savings order under the
	// remaining linear capacity, fractional-knapsack style.
	choices := make([]groupChoice, 0, len(model.Groups))
	for g, vars := range model.Groups {
		best := groupChoice{group: g, varIdx: -1, savings: math.Inf(-1)}
		for _, v := range vars {
			savings := obj.SkipPenalty[g] - obj.VarCost[v]
			if savings > best.savings || (savings == best.savings && (best.varIdx < 0 || v < best.varIdx)) {
				best = groupChoice{group: g, varIdx: v, savings: savings}
			}
		}
		if best.varIdx >= 0 && best.savings > 0 {
			choices = append(choices, best)
		}
	}
	sort.Slice(choices, func(i, j int) bool {
		if choices[i].savings != choices[j].savings {
			return choices[i].savings > choices[j].savings
		}
		return choices[i].varIdx < choices[j].varIdx
	})

	remaining := make([]float64, len(model.Linear))
	for ci, c := range model.Linear {
		remaining[ci] = c.Bound
	}
	for i := range choices {
		frac := 1.0
		for _, t := range varTerms[choices[i].varIdx] {
			if t.coef <= 0 {
				continue
			}
			if avail := remaining[t.constraint] / t.coef; avail < frac {
				frac = avail
			}
		}
		if frac < 0 {
			frac = 0
		}
		choices[i].frac = frac
		for _, t := range varTerms[choices[i].varIdx] {
			remaining[t.constraint] -= t.coef * frac
		}
	}

	// Round to the nearest boolean assignment.
	assignment := make([]bool, model.NumVars)
	for _, ch := range choices {
		if ch.frac >= 0.5 {
			assignment[ch.varIdx] = true
		}
	}

	// Mandatory re-validation: rounding up can overshoot budgets. Repair by
	// dropping the least valuable selection touching a violated constraint
	// until the assignment satisfies the original model.
	repaired := false
	for violations := Validate(model, assignment); len(violations) > 0; violations = Validate(model, assignment) {
		dropped := s.dropWorst(model, obj, assignment, varTerms, violations)
		if !dropped {
			break
		}
		repaired = true
	}

	return &Solution{
		Status:     entities.StatusFeasible,
		Assignment: assignment,
		Objective:  ObjectiveValue(model, obj, assignment),
		SolverName: s.Name(),
		Repaired:   repaired,
	}, nil
}

// dropWorst unselects the selected variable with the smallest savings among
// those contributing to a violated constraint. Reports whether anything was
// dropped.
func (s *lpSolver) dropWorst(model *Model, obj Objective, assignment []bool, varTerms [][]varTerm, violations []Violation) bool {
	violated := make(map[string]bool, len(violations))
	for _, v := range violations {
		violated[v.Constraint] = true
	}

	groupOf := make(map[int]int, model.NumVars)
	for g, vars := range model.Groups {
		for _, v := range vars {
			groupOf[v] = g
		}
	}

	worst := -1
	worstSavings := math.Inf(1)
	for v := 0; v < model.NumVars; v++ {
		if !assignment[v] {
			continue
		}
		touches := false
		for _, t := range varTerms[v] {
			if violated[model.Linear[t.constraint].Name] && t.coef > 0 {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}
		savings := obj.SkipPenalty[groupOf[v]] - obj.VarCost[v]
		if savings < worstSavings || (savings == worstSavings && v > worst) {
			worst = v
			worstSavings = savings
		}
	}
	if worst < 0 {
		return false
	}
	assignment[worst] = false
	return true
}

func buildVarTerms(model *Model) [][]varTerm {
	varTerms := make([][]varTerm, model.NumVars)
	for ci, c := range model.Linear {
		for _, t := range c.Terms {
			varTerms[t.Var] = append(varTerms[t.Var], varTerm{constraint: ci, coef: t.Coef})
		}
	}
	return varTerms
}
