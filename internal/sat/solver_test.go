package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestSolver returns a solver with n variables and the given clauses in
// DIMACS notation.
func newTestSolver(t *testing.T, n int, clauses [][]int) *Solver {
	t.Helper()
	s := NewDefaultSolver()
	for i := 0; i < n; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		lits := make([]Literal, len(c))
		for i, l := range c {
			lits[i] = FromDIMACS(l)
		}
		if err := s.AddClause(lits); err != nil {
			t.Fatalf("AddClause(%v): want no error, got %s", c, err)
		}
	}
	return s
}

// satisfies returns true if model satisfies all the clauses.
func satisfies(model []bool, clauses [][]int) bool {
	for _, c := range clauses {
		sat := false
		for _, l := range c {
			if l > 0 && model[l-1] || l < 0 && !model[-l-1] {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// pigeonhole returns the clauses stating that n+1 pigeons fit in n holes.
// Variable p*n+h+1 is true if pigeon p sits in hole h.
func pigeonhole(n int) (int, [][]int) {
	v := func(p, h int) int { return p*n + h + 1 }
	clauses := [][]int{}
	for p := 0; p <= n; p++ {
		c := []int{}
		for h := 0; h < n; h++ {
			c = append(c, v(p, h))
		}
		clauses = append(clauses, c)
	}
	for h := 0; h < n; h++ {
		for p1 := 0; p1 <= n; p1++ {
			for p2 := p1 + 1; p2 <= n; p2++ {
				clauses = append(clauses, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}
	return (n + 1) * n, clauses
}

func TestSolve_sat(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3},
		{-1, 2},
		{-2, 3},
		{-3, -1},
		{1, -3, 4},
	}
	s := newTestSolver(t, 4, clauses)

	got := s.Solve()

	if got != True {
		t.Fatalf("Solve(): want %s, got %s", True, got)
	}
	if !satisfies(s.Model(), clauses) {
		t.Errorf("Solve(): model %v does not satisfy the clauses", s.Model())
	}
}

func TestSolve_unsatPigeonhole(t *testing.T) {
	n, clauses := pigeonhole(4)
	s := newTestSolver(t, n, clauses)

	got := s.Solve()

	if got != False {
		t.Errorf("Solve(): want %s, got %s", False, got)
	}
	if s.Model() != nil {
		t.Errorf("Model(): want nil, got %v", s.Model())
	}
}

func TestSolve_emptyClause(t *testing.T) {
	s := newTestSolver(t, 1, [][]int{{1}, {-1}})

	if got := s.Solve(); got != False {
		t.Errorf("Solve(): want %s, got %s", False, got)
	}
}

func TestSolve_noVariables(t *testing.T) {
	s := NewDefaultSolver()

	if got := s.Solve(); got != True {
		t.Errorf("Solve(): want %s, got %s", True, got)
	}
	if diff := cmp.Diff([]bool{}, s.Model()); diff != "" {
		t.Errorf("Model(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestSolve_maxConflicts(t *testing.T) {
	n, clauses := pigeonhole(7)
	opts := DefaultOptions
	opts.MaxConflicts = 1
	s := NewSolver(opts)
	for i := 0; i < n; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		lits := make([]Literal, len(c))
		for i, l := range c {
			lits[i] = FromDIMACS(l)
		}
		s.AddClause(lits)
	}

	if got := s.Solve(); got != Unknown {
		t.Errorf("Solve(): want %s, got %s", Unknown, got)
	}
}

// TestSolve_incremental enumerates all the models of a formula by blocking
// each model found with a new clause.
func TestSolve_incremental(t *testing.T) {
	// x1 xor x2, x3 free: 4 models.
	clauses := [][]int{{1, 2}, {-1, -2}}
	s := newTestSolver(t, 3, clauses)

	for s.Solve() == True {
		model := s.Model()
		if !satisfies(model, clauses) {
			t.Fatalf("Solve(): model %v does not satisfy the clauses", model)
		}
		block := make([]Literal, len(model))
		for i, b := range model {
			if b {
				block[i] = NegativeLiteral(i)
			} else {
				block[i] = PositiveLiteral(i)
			}
		}
		if err := s.AddClause(block); err != nil {
			t.Fatalf("AddClause(): want no error, got %s", err)
		}
	}

	want := map[string]bool{"100": true, "101": true, "010": true, "011": true}
	got := map[string]bool{}
	for _, m := range s.Models {
		key := ""
		for _, b := range m {
			if b {
				key += "1"
			} else {
				key += "0"
			}
		}
		got[key] = true
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Models: mismatch (+want, -got):\n%s", diff)
	}
}

func TestAddClause_unknownVariable(t *testing.T) {
	s := newTestSolver(t, 2, nil)

	if err := s.AddClause([]Literal{FromDIMACS(3)}); err == nil {
		t.Errorf("AddClause(): want error, got none")
	}
}

func TestLiteral_DIMACS(t *testing.T) {
	for _, l := range []int{1, -1, 2, -7, 42} {
		if got := FromDIMACS(l).DIMACS(); got != l {
			t.Errorf("FromDIMACS(%d).DIMACS(): want %d, got %d", l, l, got)
		}
	}
}
