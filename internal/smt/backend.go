package smt

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rhartert/yasmt/internal/sat"
)

// ErrUnknown is returned by a backend that stopped before reaching a verdict.
var ErrUnknown = errors.New("search stopped before reaching a verdict")

// Backend is an incremental SAT solver over DIMACS literals. Clauses can be
// added between calls to Solve.
type Backend interface {
	// AddVariable adds a new variable and returns its DIMACS index.
	// Variables are numbered from 1.
	AddVariable() int

	// AddClause adds a clause of non-zero DIMACS literals.
	AddClause(clause []int) error

	// Solve returns true if the clauses are satisfiable.
	Solve() (bool, error)

	// Model returns the value of each variable in the last model found by
	// Solve: Model()[v-1] is the value of variable v.
	Model() []bool
}

var backends = map[string]func(sat.Options) Backend{
	"yass":      func(opts sat.Options) Backend { return newYassBackend(opts) },
	"gophersat": func(sat.Options) Backend { return newGophersatBackend() },
	"gini":      func(sat.Options) Backend { return newGiniBackend() },
}

// DefaultBackend is the name of the backend used when none is specified.
const DefaultBackend = "yass"

// Backends returns the names of the available backends.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend returns a new instance of the named backend. The options only
// apply to the yass backend.
func NewBackend(name string, opts sat.Options) (Backend, error) {
	newFn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, Backends())
	}
	return newFn(opts), nil
}
