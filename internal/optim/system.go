package optim

import (
	"fmt"
	"math"
	"slices"

	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/refcount"
	"github.com/roach88/tacs/internal/scalar"
)

// BlockInfo summarizes one constraint block of a System.
type BlockInfo struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Rows   int    `json:"rows"`
	NNZ    int    `json:"nnz"`
	Linear bool   `json:"linear"`
}

type block struct {
	con    SparseConstraints
	name   string
	offset int
	rows   int
}

// System composes design-variable owners and constraint blocks into one
// design vector and one CSR constraint system.
//
// A System takes a reference on every refcount.Object added to it and drops
// them in Close.
type System struct {
	env    *env.Env
	numDV  int
	owners []DesignVars
	blocks []block
	numCon int
	held   []refcount.Object
}

// NewSystem creates an empty System over a design vector of numDesignVars.
func NewSystem(e *env.Env, numDesignVars int) *System {
	return &System{env: e, numDV: numDesignVars}
}

// NumDesignVars returns the length of the design vector.
func (s *System) NumDesignVars() int {
	return s.numDV
}

// NumCon returns the total number of constraint rows.
func (s *System) NumCon() int {
	return s.numCon
}

// AddDesignVars registers the objects that implement DesignVars and
// returns how many were registered. Other objects are skipped.
func (s *System) AddDesignVars(objs ...any) int {
	n := 0
	for _, obj := range objs {
		if !HasDesignVars(obj) {
			continue
		}
		s.hold(obj)
		s.owners = append(s.owners, DesignVarsOf(obj))
		n++
	}
	return n
}

// AddConstraints appends c as the next block and returns its offset.
func (s *System) AddConstraints(c SparseConstraints) int {
	s.hold(c)
	b := block{
		con:    c,
		name:   nameOf(c),
		offset: s.numCon,
		rows:   c.NumCon(),
	}
	s.blocks = append(s.blocks, b)
	s.numCon += b.rows

	s.env.Logger.Debug("constraint block added",
		"block", b.name,
		"offset", b.offset,
		"rows", b.rows,
	)
	return b.offset
}

func (s *System) hold(obj any) {
	if o, ok := obj.(refcount.Object); ok {
		refcount.Incref(o)
		s.held = append(s.held, o)
	}
}

// Offsets returns the first row of every block, in insertion order.
func (s *System) Offsets() []int {
	out := make([]int, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b.offset
	}
	return out
}

// Blocks summarizes the constraint blocks.
func (s *System) Blocks() []BlockInfo {
	out := make([]BlockInfo, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = BlockInfo{
			Name:   b.name,
			Offset: b.offset,
			Rows:   b.rows,
			NNZ:    b.con.ConCSRSize(),
			Linear: b.con.IsLinear(),
		}
	}
	return out
}

// IsLinear reports whether every block is linear.
func (s *System) IsLinear() bool {
	for _, b := range s.blocks {
		if !b.con.IsLinear() {
			return false
		}
	}
	return true
}

// SetDesignVars hands x to every owner and every block.
func (s *System) SetDesignVars(x []scalar.Scalar) {
	for _, d := range s.owners {
		d.SetDesignVars(x)
	}
	for _, b := range s.blocks {
		b.con.SetDesignVars(x)
	}
}

// GetDesignVars collects the current design from every owner into x.
func (s *System) GetDesignVars(x []scalar.Scalar) {
	for _, d := range s.owners {
		d.GetDesignVars(x)
	}
	for _, b := range s.blocks {
		b.con.GetDesignVars(x)
	}
}

// GetDesignVarRange fills lb and ub. Entries no owner claims keep the
// values the caller put there.
func (s *System) GetDesignVarRange(lb, ub []scalar.Scalar) {
	for _, d := range s.owners {
		d.GetDesignVarRange(lb, ub)
	}
	for _, b := range s.blocks {
		b.con.GetDesignVarRange(lb, ub)
	}
}

// DesignVector returns a fresh design vector filled from the owners.
func (s *System) DesignVector() []scalar.Scalar {
	x := make([]scalar.Scalar, s.numDV)
	s.GetDesignVars(x)
	return x
}

// DesignBounds returns fresh bound vectors, unbounded where no owner claims
// the variable.
func (s *System) DesignBounds() (lb, ub []scalar.Scalar) {
	lb = make([]scalar.Scalar, s.numDV)
	ub = make([]scalar.Scalar, s.numDV)
	for i := range lb {
		lb[i] = scalar.FromReal(-Infinity)
		ub[i] = scalar.FromReal(Infinity)
	}
	s.GetDesignVarRange(lb, ub)
	return lb, ub
}

// Pattern assembles the structural CSR pattern of all blocks.
func (s *System) Pattern() (*CSR, error) {
	size := 0
	for _, b := range s.blocks {
		size += b.con.ConCSRSize()
	}
	m := &CSR{
		NumRows: s.numCon,
		NumCols: s.numDV,
		RowPtr:  make([]int, s.numCon+1),
		Cols:    make([]int, size),
	}

	for _, b := range s.blocks {
		n := b.con.AddConCSR(b.offset, m.RowPtr, m.Cols)
		if err := b.checkRows("AddConCSR", n); err != nil {
			return nil, err
		}
		got := m.RowPtr[b.offset+b.rows] - m.RowPtr[b.offset]
		if want := b.con.ConCSRSize(); got != want {
			return nil, &PatternError{
				Code:    ErrCodeCSRSize,
				Message: fmt.Sprintf("registered %d entries, ConCSRSize is %d", got, want),
				Block:   b.name,
				Offset:  b.offset,
				Row:     -1,
			}
		}
		for k := m.RowPtr[b.offset]; k < m.RowPtr[b.offset+b.rows]; k++ {
			if c := m.Cols[k]; c < 0 || c >= s.numDV {
				return nil, &PatternError{
					Code:    ErrCodeColumnRange,
					Message: fmt.Sprintf("column %d outside [0, %d)", c, s.numDV),
					Block:   b.name,
					Offset:  b.offset,
					Row:     m.rowOf(k),
				}
			}
		}
	}

	s.env.Logger.Debug("constraint pattern assembled",
		"rows", m.NumRows,
		"cols", m.NumCols,
		"nnz", m.NNZ(),
	)
	return m, nil
}

// ConRange fills lb and ub with the row bounds of every block.
func (s *System) ConRange(lb, ub []scalar.Scalar) error {
	if len(lb) < s.numCon || len(ub) < s.numCon {
		return lengthError("bounds", min(len(lb), len(ub)), s.numCon)
	}
	for _, b := range s.blocks {
		if err := b.checkRows("ConRange", b.con.ConRange(b.offset, lb, ub)); err != nil {
			return err
		}
	}
	return nil
}

// EvalCon fills con with the constraint values of every block.
func (s *System) EvalCon(con []scalar.Scalar) error {
	if len(con) < s.numCon {
		return lengthError("constraint vector", len(con), s.numCon)
	}
	for _, b := range s.blocks {
		if err := b.checkRows("EvalCon", b.con.EvalCon(b.offset, con)); err != nil {
			return err
		}
	}
	return nil
}

// EvalConDVSens fills m.Values with the Jacobian of every block. m must be
// the result of Pattern; Values is allocated when nil.
func (s *System) EvalConDVSens(m *CSR) error {
	if m.Values == nil {
		m.Values = make([]scalar.Scalar, len(m.Cols))
	}
	if len(m.Values) < len(m.Cols) {
		return lengthError("jacobian values", len(m.Values), len(m.Cols))
	}
	for _, b := range s.blocks {
		n := b.con.EvalConDVSens(b.offset, m.Values, m.RowPtr, m.Cols)
		if err := b.checkRows("EvalConDVSens", n); err != nil {
			return err
		}
	}
	return nil
}

// Jacobian assembles the pattern and fills it in one call.
func (s *System) Jacobian() (*CSR, error) {
	m, err := s.Pattern()
	if err != nil {
		return nil, err
	}
	if err := s.EvalConDVSens(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CheckPattern verifies, block by block, that EvalConDVSens fills exactly the
// entries AddConCSR registered: every registered slot is written, nothing
// outside the block's rows is written, and the structure is left intact.
func (s *System) CheckPattern() error {
	ref, err := s.Pattern()
	if err != nil {
		return err
	}
	again, err := s.Pattern()
	if err != nil {
		return err
	}
	if !ref.SamePattern(again) {
		return &PatternError{
			Code:    ErrCodeUnstable,
			Message: "two AddConCSR passes produced different patterns",
			Row:     -1,
		}
	}

	sentinel := scalar.FromReal(math.NaN())
	for _, b := range s.blocks {
		m := ref.Clone()
		m.Values = make([]scalar.Scalar, len(m.Cols))
		for k := range m.Values {
			m.Values[k] = sentinel
		}

		n := b.con.EvalConDVSens(b.offset, m.Values, m.RowPtr, m.Cols)
		if err := b.checkRows("EvalConDVSens", n); err != nil {
			return err
		}
		if !slices.Equal(m.RowPtr, ref.RowPtr) || !slices.Equal(m.Cols, ref.Cols) {
			return &PatternError{
				Code:    ErrCodeStructureModified,
				Message: "EvalConDVSens modified the row pointers or column indices",
				Block:   b.name,
				Offset:  b.offset,
				Row:     -1,
			}
		}

		lo, hi := ref.RowPtr[b.offset], ref.RowPtr[b.offset+b.rows]
		for k, v := range m.Values {
			written := !math.IsNaN(scalar.RealPart(v))
			switch {
			case k >= lo && k < hi && !written:
				return &PatternError{
					Code:    ErrCodeMissingEntry,
					Message: fmt.Sprintf("entry %d (column %d) not written", k, ref.Cols[k]),
					Block:   b.name,
					Offset:  b.offset,
					Row:     ref.rowOf(k),
				}
			case (k < lo || k >= hi) && written:
				return &PatternError{
					Code:    ErrCodeOutOfPattern,
					Message: fmt.Sprintf("entry %d (column %d) belongs to another block", k, ref.Cols[k]),
					Block:   b.name,
					Offset:  b.offset,
					Row:     ref.rowOf(k),
				}
			}
		}
	}
	return nil
}

// Close drops the references taken by AddDesignVars and AddConstraints.
func (s *System) Close() {
	for _, o := range s.held {
		name := o.ObjectName()
		if refcount.Decref(o) {
			s.env.Logger.Debug("object destroyed", "object", name)
		}
	}
	s.held = nil
	s.owners = nil
	s.blocks = nil
	s.numCon = 0
}

func (b block) checkRows(method string, n int) error {
	if n == b.rows {
		return nil
	}
	return &PatternError{
		Code:    ErrCodeRowCount,
		Message: fmt.Sprintf("%s returned %d rows, NumCon is %d", method, n, b.rows),
		Block:   b.name,
		Offset:  b.offset,
		Row:     -1,
	}
}
