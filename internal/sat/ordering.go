package sat

import (
	"github.com/rhartert/yagh"
)

// VarOrder selects the next decision variable: the unassigned variable with
// the highest activity.
type VarOrder struct {
	size        int
	solver      *Solver
	phase       []LBool
	phaseSaving bool
	heap        *yagh.IntMap[float64]
}

func NewVarOrder(s *Solver, nVar int) *VarOrder {
	vo := &VarOrder{
		size:   nVar,
		solver: s,
		phase:  make([]LBool, nVar),
		heap:   yagh.New[float64](nVar),
	}

	vo.UpdateAll()
	return vo
}

// Update must be called when the activity of variable varID increases.
func (vo *VarOrder) Update(varID int) {
	if vo.heap.Contains(varID) {
		vo.heap.Put(varID, -vo.solver.activities[varID])
	}
}

func (vo *VarOrder) UpdateAll() {
	for i := 0; i < vo.size; i++ {
		vo.heap.Put(i, -vo.solver.activities[i])
	}
}

// Undo must be called when variable varID is unassigned.
func (vo *VarOrder) Undo(varID int) {
	if vo.phaseSaving {
		vo.phase[varID] = vo.solver.VarValue(varID)
	}
	vo.heap.Put(varID, -vo.solver.activities[varID])
}

// Select returns the decision literal on the unassigned variable with the
// highest activity. It panics if all variables are assigned.
func (vo *VarOrder) Select() Literal {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			panic("no unassigned variable to select")
		}
		if vo.solver.VarValue(next.Elem) != Unknown {
			continue // already assigned
		}

		if vo.phase[next.Elem] == True {
			return PositiveLiteral(next.Elem)
		}
		return NegativeLiteral(next.Elem)
	}
}
