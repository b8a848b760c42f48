package smt

import (
	"github.com/samber/lo"

	"github.com/rhartert/yasmt/internal/sat"
)

type yassBackend struct {
	solver *sat.Solver
}

func newYassBackend(opts sat.Options) *yassBackend {
	return &yassBackend{solver: sat.NewSolver(opts)}
}

func (b *yassBackend) AddVariable() int {
	return b.solver.AddVariable() + 1
}

func (b *yassBackend) AddClause(clause []int) error {
	return b.solver.AddClause(lo.Map(clause, func(l int, _ int) sat.Literal {
		return sat.FromDIMACS(l)
	}))
}

func (b *yassBackend) Solve() (bool, error) {
	switch b.solver.Solve() {
	case sat.True:
		return true, nil
	case sat.False:
		return false, nil
	default:
		return false, ErrUnknown
	}
}

func (b *yassBackend) Model() []bool {
	return b.solver.Model()
}
