package qfbv

import "fmt"

// Solver is the SMT solver façade (C6): it owns the CNF under construction,
// the fresh-literal counter, and the variable environment, and drives the
// bit-blaster and the SAT engine. The CNF and counter live for the duration
// of one Solver instance; nothing is freed until the Solver is discarded.
//
// A Solver is not safe for concurrent use; separate Solver instances share
// no state and may run on separate goroutines without coordination.
type Solver struct {
	cnf        CNF
	litCounter int
	variables  map[string]BitVector

	checked    bool
	assignment Assignment
	sat        bool
}

// NewSolver returns an empty solver with no declarations or assertions.
func NewSolver() *Solver {
	return &Solver{variables: make(map[string]BitVector)}
}

// nextLiteral mints one fresh literal. Minting is the only path to a new
// literal, which keeps the counter and the variable environment in sync.
func (s *Solver) nextLiteral() Literal {
	s.litCounter++
	return Lit(s.litCounter)
}

// nextLiterals mints n fresh literals in order.
func (s *Solver) nextLiterals(n int) BitVector {
	lits := make([]Literal, n)
	for i := range lits {
		lits[i] = s.nextLiteral()
	}
	return NewBitVector(lits)
}

// NewVariable declares a fresh bit-vector-valued variable of the given
// width (width 1 serves as Bool) and returns an Expression referring to it.
// A duplicate name is a caller-contract violation.
func (s *Solver) NewVariable(name string, width int) Expression {
	if width < 1 {
		panic(fmt.Sprintf("qfbv: variable %q declared with width %d (must be >= 1)", name, width))
	}
	if _, exists := s.variables[name]; exists {
		panic(fmt.Sprintf("qfbv: variable %q declared twice", name))
	}
	s.variables[name] = s.nextLiterals(width)
	return VariableRef{Name: name}
}

// Assert bit-blasts expr, which must produce a width-1 result, and adds the
// unit clause asserting its literal.
func (s *Solver) Assert(expr Expression) {
	val := s.transform(expr)
	if val.Len() != 1 {
		panic("qfbv: assert of a bit-vector expression wider than 1 bit")
	}
	s.cnf.AddClause([]Literal{val.AsBool()})
	s.checked = false
}

// AddClause adds a raw clause directly to the underlying CNF, bypassing the
// bit-blaster.
func (s *Solver) AddClause(lits []Literal) {
	s.cnf.AddClause(lits)
	s.checked = false
}

// Check runs the SAT engine over the asserted formula and caches the
// result for Model.
func (s *Solver) Check() bool {
	assignment, sat := Check(s.cnf)
	s.assignment = assignment
	s.sat = sat
	s.checked = true
	return sat
}

// Model returns, for each declared variable, its unsigned integer value
// under the truth assignment found by the most recent Check. Undetermined
// literals read as false. Model panics if Check has not been called or
// returned false.
func (s *Solver) Model() map[string]uint64 {
	if !s.checked || !s.sat {
		panic("qfbv: Model called without a satisfying Check")
	}
	model := make(map[string]uint64, len(s.variables))
	for name, bv := range s.variables {
		model[name] = bv.Int(s.assignment)
	}
	return model
}

// Formula returns the CNF accumulated so far, mainly for diagnostics.
func (s *Solver) Formula() CNF {
	return s.cnf
}

// Run declares every Declare statement and bit-blasts every Assert
// statement of problem into s, in order. It panics on a duplicate
// declaration or a reference to an undeclared name, per the caller-contract
// rules of NewVariable/transform.
func (s *Solver) Run(problem Problem) {
	for _, stmt := range problem {
		switch st := stmt.(type) {
		case Declare:
			width := st.Width
			if st.Kind == KindBool {
				width = 1
			}
			s.NewVariable(st.Name, width)
		case Assert:
			s.Assert(st.Expr)
		default:
			panic(fmt.Sprintf("qfbv: unknown statement type %T", stmt))
		}
	}
}
