package smt

// Pair is an unordered pair of variables, stored with X <= Y.
type Pair struct {
	X int
	Y int
}

func makePair(x, y int) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{X: x, Y: y}
}

// Kernel is the boolean abstraction of a formula: boolean variable i+1 of the
// skeleton stands for the equality between the variables of Pairs[i].
type Kernel struct {
	Variables int // number of variables of the formula
	Pairs     []Pair
	index     map[Pair]int
}

// Var returns the (1-based) skeleton variable of the given pair, or 0 if the
// pair does not appear in the formula.
func (k *Kernel) Var(p Pair) int {
	if i, ok := k.index[p]; ok {
		return i + 1
	}
	return 0
}

// Abstract returns the boolean skeleton of formula f in DIMACS notation. Pairs
// are numbered in order of first appearance. An equality is abstracted by the
// positive literal of its pair and a disequality by the negative one.
func Abstract(f *Formula) (*Kernel, [][]int) {
	k := &Kernel{
		Variables: f.Variables,
		index:     map[Pair]int{},
	}

	clauses := make([][]int, len(f.Clauses))
	for i, c := range f.Clauses {
		clause := make([]int, len(c))
		for j, l := range c {
			p := makePair(l.X, l.Y)
			id, ok := k.index[p]
			if !ok {
				id = len(k.Pairs)
				k.index[p] = id
				k.Pairs = append(k.Pairs, p)
			}
			if l.Relation == Equal {
				clause[j] = id + 1
			} else {
				clause[j] = -(id + 1)
			}
		}
		clauses[i] = clause
	}

	return k, clauses
}
