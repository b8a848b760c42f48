package convert

import (
	"fmt"
	"math"
	"math/rand/v2"

	mapset "github.com/deckarep/golang-set/v2"
)

// Pair is a pair of variable indices with 1 <= A < B.
type Pair struct {
	A int
	B int
}

func (p Pair) String() string {
	return fmt.Sprintf("%d,%d", p.A, p.B)
}

// Mapping assigns a distinct pair to each input variable: Mapping[k] is
// the pair of variable k+1.
type Mapping []Pair

// ReducedVariables returns the number of variables m used to encode n boolean
// variables, ceil(sqrt(2n)) + 1. There are then at least n pairs (a, b) with
// 1 <= a < b <= m, that is m*(m-1)/2 >= n.
func ReducedVariables(n int) int {
	return int(math.Ceil(math.Sqrt(2*float64(n)))) + 1
}

// PairUniverse returns all the m*(m-1)/2 pairs (a, b) with 1 <= a < b <= m,
// ordered by b and then by a.
func PairUniverse(m int) []Pair {
	if m < 2 {
		return []Pair{}
	}
	pairs := make([]Pair, 0, m*(m-1)/2)
	for i := 0; i < m; i++ {
		for j := 0; j < i; j++ {
			pairs = append(pairs, Pair{A: j + 1, B: i + 1})
		}
	}
	return pairs
}

// NewMapping draws n distinct pairs uniformly at random among the pairs over m
// variables. The universe of pairs is shuffled with rng and its first n
// pairs are assigned to variables 1 to n.
func NewMapping(n int, m int, rng *rand.Rand) (Mapping, error) {
	universe := PairUniverse(m)
	rng.Shuffle(len(universe), func(i, j int) {
		universe[i], universe[j] = universe[j], universe[i]
	})
	if len(universe) < n {
		return nil, fmt.Errorf("%w: %d pairs over %d variables, need %d", ErrMappingSize, len(universe), m, n)
	}
	return Mapping(universe[:n]), nil
}

// Validate returns an error if a pair is not ordered or if two variables
// share the same pair.
func (m Mapping) Validate() error {
	seen := mapset.NewThreadUnsafeSet[Pair]()
	for i, p := range m {
		if p.A < 1 || p.A >= p.B {
			return fmt.Errorf("variable %d: pair (%s) is not ordered", i+1, p)
		}
		if !seen.Add(p) {
			return fmt.Errorf("variable %d: pair (%s) is already assigned", i+1, p)
		}
	}
	return nil
}
