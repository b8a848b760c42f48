// Package smt decides the satisfiability of CNF formulas over equalities and
// disequalities between variables (the "equality logic"). Formulas are solved
// lazily: a SAT solver enumerates assignments of the formula's boolean
// skeleton and each assignment is checked against the transitivity of
// equality. Inconsistent assignments are blocked with a small explanation
// clause until a consistent one is found or the skeleton becomes unsat.
package smt

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Relation is the relation between the two variables of a literal.
type Relation uint8

const (
	Equal Relation = iota
	NotEqual
)

func (r Relation) String() string {
	if r == Equal {
		return "="
	}
	return "<>"
}

// Literal states that variables X and Y are equal or different. Variables
// are numbered from 1.
type Literal struct {
	Relation Relation
	X        int
	Y        int
}

// Valuation assigns a value to each variable of a formula: variable v takes
// value Valuation[v-1].
type Valuation []int

func (l Literal) Eval(val Valuation) bool {
	if l.Relation == Equal {
		return val[l.X-1] == val[l.Y-1]
	}
	return val[l.X-1] != val[l.Y-1]
}

func (l Literal) String() string {
	return fmt.Sprintf("%d%s%d", l.X, l.Relation, l.Y)
}

// Clause is a disjunction of literals. The empty clause is false.
type Clause []Literal

func (c Clause) Eval(val Valuation) bool {
	return lo.SomeBy(c, func(l Literal) bool { return l.Eval(val) })
}

func (c Clause) String() string {
	return strings.Join(lo.Map(c, func(l Literal, _ int) string { return l.String() }), " ")
}

// Formula is a conjunction of clauses over variables 1 to Variables.
type Formula struct {
	Variables int
	Clauses   []Clause
}

// Eval returns true if the valuation satisfies every clause of the formula.
func (f *Formula) Eval(val Valuation) bool {
	if len(val) < f.Variables {
		return false
	}
	return lo.EveryBy(f.Clauses, func(c Clause) bool { return c.Eval(val) })
}

// String returns the formula in the format read by ReadFormula.
func (f *Formula) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "p cnf %d %d\n", f.Variables, len(f.Clauses))
	for _, c := range f.Clauses {
		sb.WriteString(c.String())
		sb.WriteString(" \n")
	}
	return sb.String()
}
