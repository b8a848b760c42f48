package convert

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Header is the content of a DIMACS problem line "p cnf <vars> <clauses>".
type Header struct {
	Format    string
	Variables int
	Clauses   int
}

// MaxVariables is the largest variable count accepted on a problem line. The
// pairs over the reduced variables are all materialized before shuffling.
const MaxVariables = 1 << 30

// ParseHeader parses a DIMACS problem line.
func ParseHeader(line string) (Header, error) {
	parts := strings.Fields(line)
	if len(parts) != 4 || parts[0] != "p" {
		return Header{}, fmt.Errorf("%w: want \"p cnf <variables> <clauses>\"", ErrBadHeader)
	}
	if parts[1] != "cnf" {
		return Header{}, fmt.Errorf("%w: format %q is not supported", ErrBadHeader, parts[1])
	}
	nVars, err := strconv.Atoi(parts[2])
	if err != nil || nVars < 0 {
		return Header{}, fmt.Errorf("%w: invalid variable count %q", ErrBadHeader, parts[2])
	}
	if nVars > MaxVariables {
		return Header{}, fmt.Errorf("%w: more than %d variables", ErrBadHeader, MaxVariables)
	}
	nClauses, err := strconv.Atoi(parts[3])
	if err != nil || nClauses < 0 {
		return Header{}, fmt.Errorf("%w: invalid clause count %q", ErrBadHeader, parts[3])
	}
	return Header{Format: parts[1], Variables: nVars, Clauses: nClauses}, nil
}

// Session holds the state built from the problem line and used to rewrite
// every clause line that follows it. It is never modified once created.
type Session struct {
	Header  Header
	Reduced int
	Mapping Mapping
}

// NewSession creates the session of the given header, drawing the variable
// mapping with rng.
func NewSession(h Header, rng *rand.Rand) (*Session, error) {
	m := ReducedVariables(h.Variables)
	mapping, err := NewMapping(h.Variables, m, rng)
	if err != nil {
		return nil, err
	}
	if len(mapping) != h.Variables {
		return nil, fmt.Errorf("%w: got %d pairs, want %d", ErrMappingSize, len(mapping), h.Variables)
	}
	return &Session{
		Header:  h,
		Reduced: m,
		Mapping: mapping,
	}, nil
}

// HeaderLine returns the problem line of the rewritten instance.
func (s *Session) HeaderLine() string {
	return fmt.Sprintf("p cnf %d %d", s.Reduced, s.Header.Clauses)
}

// RewriteLiteral returns the constraint encoding DIMACS literal x: "a=b" if
// x is the positive literal of a variable mapped to (a, b), "a<>b" if it is
// its negation, and "" for the clause terminator 0.
func (s *Session) RewriteLiteral(x int) (string, error) {
	if x == 0 {
		return "", nil
	}
	n := len(s.Mapping)
	if x > n || x < -n {
		return "", fmt.Errorf("%w: %d not in [1, %d]", ErrLiteralRange, x, n)
	}
	if x > 0 {
		p := s.Mapping[x-1]
		return strconv.Itoa(p.A) + "=" + strconv.Itoa(p.B), nil
	}
	p := s.Mapping[-x-1]
	return strconv.Itoa(p.A) + "<>" + strconv.Itoa(p.B), nil
}

// RewriteClause rewrites each literal of the clause line and joins them with
// a single space. As the terminator 0 is rewritten to the empty string, a
// well-formed clause line yields a line with a trailing space.
func (s *Session) RewriteClause(line string) (string, error) {
	tokens := strings.Fields(line)
	rewritten := make([]string, len(tokens))
	for i, tok := range tokens {
		x, err := strconv.Atoi(tok)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not an integer", ErrBadClause, tok)
		}
		if rewritten[i], err = s.RewriteLiteral(x); err != nil {
			return "", err
		}
	}
	return strings.Join(rewritten, " "), nil
}
