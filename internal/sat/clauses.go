package sat

import (
	"strings"
)

type Clause struct {
	learnt   bool
	activity float64

	// The clause's literals. Contains at least two literals. The first two
	// literals are the watched ones and, if the clause is the reason of an
	// assignment, the first literal is the one it asserted.
	literals []Literal
}

// NewClause creates a clause from the given literals and attaches it to the
// solver's watch lists. Problem clauses are first normalized against the root
// level: duplicated and false literals are dropped, and tautologies or
// satisfied clauses are discarded (nil, true). A clause that cannot be
// satisfied yields (nil, false). Unit clauses are enqueued directly and no
// clause is created.
//
// The given slice is never retained.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}

		for i := size - 1; i >= 0; i-- {
			// If the opposite literal is in the clause, then the clause is
			// always true.
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true
			}

			// Remove the literal if it is already present.
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}

			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // clause is always true
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
	}

	switch size {
	case 0:
		// Empty clauses cannot be valid.
		return nil, false
	case 1:
		// Directly enqueue unit facts.
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := &Clause{
			learnt:   learnt,
			literals: make([]Literal, size),
		}
		copy(c.literals, tmpLiterals[:size])

		if learnt {
			// Watch the literal that was assigned last (i.e. the one with
			// the highest decision level) so that the clause is awaken as
			// soon as the solver backtracks over it.
			maxLevel := -1
			wl := -1
			for i := 1; i < len(c.literals); i++ {
				if level := s.level[c.literals[i].VarID()]; level > maxLevel {
					maxLevel = level
					wl = i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]

			s.BumpClaActivity(c)
			for _, l := range c.literals {
				s.BumpVarActivity(l)
			}
		}

		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])

		return c, true
	}
}

func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

// Remove detaches the clause from the solver's watch lists.
func (c *Clause) Remove(s *Solver) {
	s.Unwatch(c, c.literals[0].Opposite())
	s.Unwatch(c, c.literals[1].Opposite())
}

// Simplify returns true if the clause is satisfied at the root level.
// Otherwise, false literals are removed from the clause. Watched literals are
// never false at the root level after propagation so their position is kept.
func (c *Clause) Simplify(s *Solver) bool {
	for _, l := range c.literals {
		if s.LitValue(l) == True {
			return true
		}
	}
	j := 0
	for _, l := range c.literals {
		if s.LitValue(l) == Unknown {
			c.literals[j] = l
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// Propagate is called when literal l becomes true, which means that one of
// the clause's watched literals (l's opposite) is now false. It returns false
// if the clause is conflicting.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	// Make sure that the false literal is c.literals[1]. This simplifies the
	// rest of this function as c.literals[0] is always the literal to be
	// potentially enqueued (if all other literals are false).
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	// If c.literals[0] is True, then the clause is already true.
	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	// Look for a new literal to watch. If another literal set to true is found,
	// then the clause is already true.
	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1] = c.literals[i]
			c.literals[i] = opp
			s.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// The first literal must be true if all other literals are false.
	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// ExplainFailure returns the literals that made the clause conflicting, that
// is the opposite of all its literals.
func (c *Clause) ExplainFailure(s *Solver) []Literal {
	s.tmpReason = s.tmpReason[:0]
	for _, l := range c.literals {
		s.tmpReason = append(s.tmpReason, l.Opposite())
	}
	if c.learnt {
		s.BumpClaActivity(c)
	}
	return s.tmpReason
}

// ExplainAssign returns the literals that forced the clause to assert its
// first literal.
func (c *Clause) ExplainAssign(s *Solver) []Literal {
	s.tmpReason = s.tmpReason[:0]
	for _, l := range c.literals[1:] {
		s.tmpReason = append(s.tmpReason, l.Opposite())
	}
	if c.learnt {
		s.BumpClaActivity(c)
	}
	return s.tmpReason
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
