package solver

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/planwise/procure/pkg/domain/entities"
)

func init() {
	Register(KindCP, func() Solver { return &cpSolver{} })
}

// cpSolver is an exact depth-first branch-and-bound search over the selection
// groups. Each group contributes either one of its variables or a skip. The
// search is anytime: the best incumbent found before the deadline is returned
// with status FEASIBLE; OPTIMAL is reported only when the tree was exhausted.
type cpSolver struct{}

func (s *cpSolver) Name() string { return "cp-branch-and-bound" }

// candidate is one branching choice within a group: a variable, or the skip
// branch (varIdx < 0) priced at the group's penalty
type candidate struct {
	varIdx int
	cost   float64
}

type cpSearch struct {
	model *Model
	obj   Objective

	// candidates per group, cheapest first
	candidates [][]candidate
	// suffixBound[g] = sum over groups >= g of the cheapest choice, a lower
	// bound on the remaining objective regardless of constraints
	suffixBound []float64
	// varTerms[v] lists (constraint, coef) pairs touching variable v
	varTerms [][]varTerm
	// prunable marks constraints whose coefficients are all nonnegative, so a
	// partial overshoot can never be undone by later selections
	prunable []bool
	deferred []int

	assignment []bool
	usage      []float64

	best       float64
	incumbent  []bool
	exhausted  bool
	deadline   time.Time
	hasLimit   bool
	nodeCount  int
	ctx        context.Context
	ctxStopped bool
}

type varTerm struct {
	constraint int
	coef       float64
}

const deadlineCheckInterval = 1024

func (s *cpSolver) Solve(ctx context.Context, model *Model, obj Objective, timeLimit time.Duration) (*Solution, error) {
	if err := model.Validate(obj); err != nil {
		return nil, err
	}

	search := &cpSearch{
		model:      model,
		obj:        obj,
		assignment: make([]bool, model.NumVars),
		usage:      make([]float64, len(model.Linear)),
		best:       math.Inf(1),
		ctx:        ctx,
	}
	if timeLimit > 0 {
		search.deadline = time.Now().Add(timeLimit)
		search.hasLimit = true
	}
	if dl, ok := ctx.Deadline(); ok && (!search.hasLimit || dl.Before(search.deadline)) {
		search.deadline = dl
		search.hasLimit = true
	}
	search.prepare()

	search.exhausted = search.dfs(0, 0)

	if search.incumbent == nil {
		return &Solution{
			Status:     entities.StatusInfeasible,
			Assignment: make([]bool, model.NumVars),
			Objective:  math.Inf(1),
			SolverName: s.Name(),
		}, nil
	}

	status := entities.StatusFeasible
	if search.exhausted {
		status = entities.StatusOptimal
	}
	return &Solution{
		Status:     status,
		Assignment: search.incumbent,
		Objective:  search.best,
		SolverName: s.Name(),
	}, nil
}

func (s *cpSearch) prepare() {
	m := s.model

	s.candidates = make([][]candidate, len(m.Groups))
	s.suffixBound = make([]float64, len(m.Groups)+1)
	for g, vars := range m.Groups {
		cands := make([]candidate, 0, len(vars)+1)
		for _, v := range vars {
			cands = append(cands, candidate{varIdx: v, cost: s.obj.VarCost[v]})
		}
		cands = append(cands, candidate{varIdx: -1, cost: s.obj.SkipPenalty[g]})
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].cost != cands[j].cost {
				return cands[i].cost < cands[j].cost
			}
			return cands[i].varIdx < cands[j].varIdx
		})
		s.candidates[g] = cands
	}
	for g := len(m.Groups) - 1; g >= 0; g-- {
		cheapest := math.Inf(1)
		for _, c := range s.candidates[g] {
			if c.cost < cheapest {
				cheapest = c.cost
			}
		}
		s.suffixBound[g] = s.suffixBound[g+1] + cheapest
	}

	s.varTerms = make([][]varTerm, m.NumVars)
	s.prunable = make([]bool, len(m.Linear))
	for ci, c := range m.Linear {
		s.prunable[ci] = true
		for _, t := range c.Terms {
			s.varTerms[t.Var] = append(s.varTerms[t.Var], varTerm{constraint: ci, coef: t.Coef})
			if t.Coef < 0 {
				s.prunable[ci] = false
			}
		}
		if !s.prunable[ci] {
			s.deferred = append(s.deferred, ci)
		}
	}
}

// dfs explores group g onward and reports whether the subtree was fully
// explored (false once the deadline fires)
func (s *cpSearch) dfs(g int, costSoFar float64) bool {
	s.nodeCount++
	if s.nodeCount%deadlineCheckInterval == 0 {
		if s.hasLimit && time.Now().After(s.deadline) {
			return false
		}
		select {
		case <-s.ctx.Done():
			s.ctxStopped = true
			return false
		default:
		}
	}
	if s.ctxStopped {
		return false
	}

	if g == len(s.model.Groups) {
		if !s.deferredFeasible() {
			return true
		}
		if costSoFar < s.best {
			s.best = costSoFar
			s.incumbent = append([]bool(nil), s.assignment...)
		}
		return true
	}

	if costSoFar+s.suffixBound[g] >= s.best {
		return true
	}

	complete := true
	for _, cand := range s.candidates[g] {
		if cand.varIdx < 0 {
			if !s.dfs(g+1, costSoFar+cand.cost) {
				complete = false
				break
			}
			continue
		}
		if !s.fits(cand.varIdx) {
			continue
		}
		s.place(cand.varIdx)
		ok := s.dfs(g+1, costSoFar+cand.cost)
		s.remove(cand.varIdx)
		if !ok {
			complete = false
			break
		}
	}
	return complete
}

// fits reports whether selecting v keeps all prunable constraints satisfied
func (s *cpSearch) fits(v int) bool {
	for _, t := range s.varTerms[v] {
		if !s.prunable[t.constraint] {
			continue
		}
		if s.usage[t.constraint]+t.coef > s.model.Linear[t.constraint].Bound+feasibilityEps {
			return false
		}
	}
	return true
}

func (s *cpSearch) place(v int) {
	s.assignment[v] = true
	for _, t := range s.varTerms[v] {
		s.usage[t.constraint] += t.coef
	}
}

func (s *cpSearch) remove(v int) {
	s.assignment[v] = false
	for _, t := range s.varTerms[v] {
		s.usage[t.constraint] -= t.coef
	}
}

// deferredFeasible re-checks constraints that could not prune mid-search
func (s *cpSearch) deferredFeasible() bool {
	for _, ci := range s.deferred {
		if s.usage[ci] > s.model.Linear[ci].Bound+feasibilityEps {
			return false
		}
	}
	return true
}
