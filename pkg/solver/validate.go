package solver

import "fmt"

// Violation reports one constraint broken by an assignment
type Violation struct {
	Constraint string
	// Excess is how far the left-hand side overshoots the bound
	Excess float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s exceeded by %.4f", v.Constraint, v.Excess)
}

// feasibilityEps absorbs float accumulation noise when checking bounds
const feasibilityEps = 1e-6

// Validate checks a complete assignment against the model's group and linear
// constraints and returns all violations. Approximate backends must call this
// before reporting a solution, and the engine re-checks accepted solutions
// after any repricing.
func Validate(m *Model, assignment []bool) []Violation {
	var violations []Violation

	for g, vars := range m.Groups {
		count := 0
		for _, v := range vars {
			if assignment[v] {
				count++
			}
		}
		if count > 1 {
			violations = append(violations, Violation{
				Constraint: fmt.Sprintf("group[%d] at-most-one", g),
				Excess:     float64(count - 1),
			})
		}
	}

	for _, c := range m.Linear {
		lhs := 0.0
		for _, t := range c.Terms {
			if assignment[t.Var] {
				lhs += t.Coef
			}
		}
		if lhs > c.Bound+feasibilityEps {
			violations = append(violations, Violation{
				Constraint: c.Name,
				Excess:     lhs - c.Bound,
			})
		}
	}

	return violations
}
