// Package solver provides a uniform interface over the optimization backends.
// Callers build a Model of boolean variables, at-most-one selection groups,
// and linear inequality constraints, then solve it under a time limit with any
// registered backend. The model is read-only during a solve, so several
// strategies may solve the same constraint set concurrently with different
// objectives.
package solver

import "fmt"

// Term is one coefficient of a sparse linear constraint
type Term struct {
	Var  int
	Coef float64
}

// Constraint is a linear inequality: sum(Coef_i * x_i) <= Bound
type Constraint struct {
	Name  string
	Terms []Term
	Bound float64
}

// Objective assigns a cost to each variable and a penalty to each group that
// ends up with no variable selected. Solvers minimize
//
//	sum(VarCost[i] * x[i]) + sum(SkipPenalty[g] for unselected groups g)
//
// The penalty term is what makes fulfillment attractive: skipping a group must
// cost more than any of its options, or a cost minimizer would buy nothing.
type Objective struct {
	VarCost     []float64
	SkipPenalty []float64
}

// Model is a complete boolean optimization problem
type Model struct {
	NumVars int
	// Groups lists variable indices per at-most-one selection group. Every
	// variable belongs to exactly one group.
	Groups [][]int
	Linear []Constraint
}

// Validate checks structural consistency of the model and objective
func (m *Model) Validate(obj Objective) error {
	if len(obj.VarCost) != m.NumVars {
		return fmt.Errorf("objective has %d variable costs, model has %d variables",
			len(obj.VarCost), m.NumVars)
	}
	if len(obj.SkipPenalty) != len(m.Groups) {
		return fmt.Errorf("objective has %d skip penalties, model has %d groups",
			len(obj.SkipPenalty), len(m.Groups))
	}
	seen := make([]bool, m.NumVars)
	for g, vars := range m.Groups {
		for _, v := range vars {
			if v < 0 || v >= m.NumVars {
				return fmt.Errorf("group %d references variable %d out of range", g, v)
			}
			if seen[v] {
				return fmt.Errorf("variable %d appears in more than one group", v)
			}
			seen[v] = true
		}
	}
	for i := range seen {
		if !seen[i] {
			return fmt.Errorf("variable %d belongs to no group", i)
		}
	}
	for _, c := range m.Linear {
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= m.NumVars {
				return fmt.Errorf("constraint %s references variable %d out of range", c.Name, t.Var)
			}
		}
	}
	return nil
}

// ObjectiveValue computes the objective for a complete assignment
func ObjectiveValue(m *Model, obj Objective, assignment []bool) float64 {
	total := 0.0
	for i, selected := range assignment {
		if selected {
			total += obj.VarCost[i]
		}
	}
	for g, vars := range m.Groups {
		chosen := false
		for _, v := range vars {
			if assignment[v] {
				chosen = true
				break
			}
		}
		if !chosen {
			total += obj.SkipPenalty[g]
		}
	}
	return total
}
