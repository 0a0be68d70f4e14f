package qfbv

// Tseytin gate library: each function emits clauses into cnf that constrain
// a destination literal to equal a boolean function of source literals.
// Adding these clauses preserves satisfiability modulo the fresh destination
// literal. See https://en.wikipedia.org/wiki/Tseytin_transformation.

func tseytinNot(cnf *CNF, dst, src Literal) {
	cnf.AddClause([]Literal{dst.Neg(), src.Neg()})
	cnf.AddClause([]Literal{dst, src})
}

func tseytinAnd(cnf *CNF, dst, a, b Literal) {
	cnf.AddClause([]Literal{a.Neg(), b.Neg(), dst})
	cnf.AddClause([]Literal{a, dst.Neg()})
	cnf.AddClause([]Literal{b, dst.Neg()})
}

func tseytinOr(cnf *CNF, dst, a, b Literal) {
	cnf.AddClause([]Literal{a, b, dst.Neg()})
	cnf.AddClause([]Literal{a.Neg(), dst})
	cnf.AddClause([]Literal{b.Neg(), dst})
}

func tseytinXor(cnf *CNF, dst, a, b Literal) {
	cnf.AddClause([]Literal{a.Neg(), b.Neg(), dst.Neg()})
	cnf.AddClause([]Literal{a, b, dst.Neg()})
	cnf.AddClause([]Literal{a, b.Neg(), dst})
	cnf.AddClause([]Literal{a.Neg(), b, dst})
}

// tseytinOrMany constrains dst to equal the disjunction of an arbitrary
// number of source literals.
func tseytinOrMany(cnf *CNF, dst Literal, src []Literal) {
	clause := make([]Literal, 0, len(src)+1)
	clause = append(clause, src...)
	clause = append(clause, dst.Neg())
	cnf.AddClause(clause)

	for _, s := range src {
		cnf.AddClause([]Literal{s.Neg(), dst})
	}
}

// halfAdder constrains sum/carry to the single-bit sum and carry of a, b.
func halfAdder(cnf *CNF, sum, carry, a, b Literal) {
	tseytinXor(cnf, sum, a, b)
	tseytinAnd(cnf, carry, a, b)
}
