package smt

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniBackend struct {
	nVars  int
	solver *gini.Gini
	unsat  bool
}

func newGiniBackend() *giniBackend {
	return &giniBackend{solver: gini.New()}
}

func (b *giniBackend) AddVariable() int {
	b.nVars++
	return b.nVars
}

func (b *giniBackend) AddClause(clause []int) error {
	if len(clause) == 0 {
		b.unsat = true
		return nil
	}
	for _, l := range clause {
		if l < 0 {
			b.solver.Add(z.Var(-l).Neg())
		} else {
			b.solver.Add(z.Var(l).Pos())
		}
	}
	b.solver.Add(z.LitNull)
	return nil
}

func (b *giniBackend) Solve() (bool, error) {
	if b.unsat {
		return false, nil
	}
	switch b.solver.Solve() {
	case 1:
		return true, nil
	case -1:
		return false, nil
	default:
		return false, ErrUnknown
	}
}

func (b *giniBackend) Model() []bool {
	model := make([]bool, b.nVars)
	maxVar := b.solver.MaxVar()
	for v := 1; v <= b.nVars; v++ {
		if z.Var(v) <= maxVar {
			model[v-1] = b.solver.Value(z.Var(v).Pos())
		}
	}
	return model
}
