package smt

import (
	"github.com/crillab/gophersat/solver"
)

// gophersatBackend wraps a gophersat solver. The solver is built from all
// the clauses known at the first call to Solve; clauses added afterwards are
// appended to it.
type gophersatBackend struct {
	nVars   int
	clauses [][]int
	solver  *solver.Solver
	unsat   bool
}

func newGophersatBackend() *gophersatBackend {
	return &gophersatBackend{}
}

func (b *gophersatBackend) AddVariable() int {
	b.nVars++
	b.solver = nil // rebuilt with the new variable on the next Solve
	return b.nVars
}

func (b *gophersatBackend) AddClause(clause []int) error {
	c := make([]int, len(clause))
	copy(c, clause)
	b.clauses = append(b.clauses, c)

	if b.solver != nil && !b.unsat {
		b.solver.AppendClause(solver.NewClause(toGophersatLits(c)))
	}
	return nil
}

func toGophersatLits(clause []int) []solver.Lit {
	lits := make([]solver.Lit, len(clause))
	for i, l := range clause {
		if l < 0 {
			lits[i] = solver.IntToVar(int32(-l)).SignedLit(true)
		} else {
			lits[i] = solver.IntToVar(int32(l)).SignedLit(false)
		}
	}
	return lits
}

func (b *gophersatBackend) Solve() (bool, error) {
	if b.unsat {
		return false, nil
	}
	if b.nVars == 0 {
		// Only empty clauses can be stated without variables.
		return len(b.clauses) == 0, nil
	}
	if b.solver == nil {
		// Tautologies make every variable known to the solver, including
		// the ones that do not appear in any clause.
		cnf := make([][]int, 0, len(b.clauses)+b.nVars)
		cnf = append(cnf, b.clauses...)
		for v := 1; v <= b.nVars; v++ {
			cnf = append(cnf, []int{v, -v})
		}
		b.solver = solver.New(solver.ParseSlice(cnf))
	}

	switch b.solver.Solve() {
	case solver.Sat:
		return true, nil
	case solver.Unsat:
		b.unsat = true
		return false, nil
	default:
		return false, ErrUnknown
	}
}

func (b *gophersatBackend) Model() []bool {
	model := make([]bool, b.nVars)
	if b.nVars > 0 {
		copy(model, b.solver.Model())
	}
	return model
}
