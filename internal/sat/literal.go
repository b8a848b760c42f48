package sat

import "fmt"

// Literal represents a literal, which either represent a boolean variable or
// its negation. Variable v is encoded as 2*v and its negation as 2*v+1.
type Literal int

// PositiveLiteral returns the literal asserting variable varID.
func PositiveLiteral(varID int) Literal {
	return Literal(varID * 2)
}

// NegativeLiteral returns the literal asserting the negation of variable
// varID.
func NegativeLiteral(varID int) Literal {
	return PositiveLiteral(varID).Opposite()
}

// FromDIMACS converts a non-zero DIMACS literal (1-based, negative for a
// negation) into a Literal.
func FromDIMACS(l int) Literal {
	if l < 0 {
		return NegativeLiteral(-l - 1)
	}
	return PositiveLiteral(l - 1)
}

// DIMACS returns the DIMACS representation of the literal.
func (l Literal) DIMACS() int {
	if l.IsPositive() {
		return l.VarID() + 1
	}
	return -(l.VarID() + 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true if and only if the literal represent the value of
// its boolean variable (i.e. not its negation)
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
