package solver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/planwise/procure/pkg/domain/entities"
)

// Kind identifies a solver backend
type Kind int

const (
	// KindCP is the exact branch-and-bound backend. Anytime: on timeout it
	// returns the best incumbent with status FEASIBLE.
	KindCP Kind = iota
	// KindLPRound is the approximate relaxation-and-rounding backend. Its
	// solutions are re-validated and repaired, and always reported FEASIBLE.
	KindLPRound
)

// String method for Kind enum
func (k Kind) String() string {
	switch k {
	case KindCP:
		return "cp"
	case KindLPRound:
		return "lpround"
	default:
		return "Unknown"
	}
}

// ParseKind parses a solver kind from its textual form
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cp":
		return KindCP, nil
	case "lpround":
		return KindLPRound, nil
	default:
		return 0, fmt.Errorf("unknown solver kind: %q", s)
	}
}

// Solution is the result of one solve
type Solution struct {
	Status     entities.SolveStatus
	Assignment []bool
	Objective  float64
	// SolverName identifies the backend that produced the solution so callers
	// can make informed trust decisions.
	SolverName string
	// Repaired is set when the assignment required post-solve repair to
	// satisfy the constraints and is therefore approximate.
	Repaired bool
}

// Solver solves a boolean model under an objective and a wall-clock limit
type Solver interface {
	Name() string
	Solve(ctx context.Context, model *Model, obj Objective, timeLimit time.Duration) (*Solution, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Kind]func() Solver)
)

// Register installs a backend constructor for a kind. Backends register
// themselves in init; the last registration for a kind wins.
func Register(kind Kind, constructor func() Solver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = constructor
}

// New creates a solver of the given kind
func New(kind Kind) (Solver, error) {
	registryMu.RLock()
	constructor, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no solver registered for kind %s", kind)
	}
	return constructor(), nil
}
