package smt

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rhartert/yasmt/internal/sat"
)

// Result is the outcome of Solver.Solve.
type Result struct {
	Satisfiable bool

	// Valuation satisfies the formula if Satisfiable is true.
	Valuation Valuation

	// Pairs is the number of distinct variable pairs of the formula, i.e.
	// the number of boolean variables given to the backend.
	Pairs int

	// Refinements is the number of inconsistent boolean models that were
	// blocked before a verdict was reached.
	Refinements int

	Elapsed time.Duration
}

// Solver decides formulas of the equality logic with a SAT backend.
type Solver struct {
	backend string
	options sat.Options
	logger  logrus.FieldLogger
}

// NewSolver returns a solver that uses the named backend. Options are given
// to the yass backend.
func NewSolver(backend string, opts sat.Options, logger logrus.FieldLogger) (*Solver, error) {
	if _, err := NewBackend(backend, opts); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Solver{
		backend: backend,
		options: opts,
		logger:  logger,
	}, nil
}

// Solve decides formula f. The boolean skeleton of f is solved repeatedly:
// each model that breaks the transitivity of equality is excluded with a
// clause built from the conflict found by Decide.
func (s *Solver) Solve(f *Formula) (*Result, error) {
	start := time.Now()

	kernel, skeleton := Abstract(f)
	backend, err := NewBackend(s.backend, s.options)
	if err != nil {
		return nil, err
	}
	for range kernel.Pairs {
		backend.AddVariable()
	}
	for _, c := range skeleton {
		if err := backend.AddClause(c); err != nil {
			return nil, fmt.Errorf("could not add clause %v: %w", c, err)
		}
	}

	logger := s.logger.WithField("backend", s.backend)
	logger.Debugf("skeleton: %d pairs, %d clauses", len(kernel.Pairs), len(skeleton))

	res := &Result{Pairs: len(kernel.Pairs)}
	for {
		ok, err := backend.Solve()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		vals := backend.Model()
		val, conflict := Decide(kernel, vals)
		if conflict == nil {
			res.Satisfiable = true
			res.Valuation = val
			break
		}

		block := make([]int, len(conflict))
		for i, p := range conflict {
			if vals[p] {
				block[i] = -(p + 1)
			} else {
				block[i] = p + 1
			}
		}
		res.Refinements++
		logger.WithField("refinement", res.Refinements).Debugf("blocking %v", block)

		if err := backend.AddClause(block); err != nil {
			return nil, fmt.Errorf("could not add blocking clause %v: %w", block, err)
		}
	}

	res.Elapsed = time.Since(start)
	logger.WithFields(logrus.Fields{
		"satisfiable": res.Satisfiable,
		"refinements": res.Refinements,
	}).Debugf("solved in %s", res.Elapsed)

	return res, nil
}
