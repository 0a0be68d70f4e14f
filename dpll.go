package qfbv

// Assignment is a truth assignment from propositional variable id to
// boolean. It may be partial; readers should default an absent variable to
// false.
type Assignment map[int]bool

func (a Assignment) clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Value reports the truth value of v in the assignment, defaulting to false
// when v is unassigned.
func (a Assignment) Value(v int) bool {
	return a[v]
}

// Check decides satisfiability of cnf via DPLL: unit propagation (a single
// pass over a snapshot of the formula's unit clauses) interleaved with
// splitting on the first literal of the first remaining clause. Splitting
// tries the positive branch first, then the negative. It returns a
// satisfying assignment and true, or (nil, false) if the formula is
// unsatisfiable.
//
// cnf is not modified; the engine clones it before mutating, as required by
// a splitting step that must be able to try both branches.
func Check(cnf CNF) (Assignment, bool) {
	return check(cnf.Clone(), Assignment{})
}

func check(cnf CNF, assignment Assignment) (Assignment, bool) {
	applyUnitRule(&cnf, assignment)

	if cnf.IsConsistent() {
		return assignment, true
	}
	if cnf.HasEmptyClause() {
		return nil, false
	}
	return applySplittingRule(cnf, assignment)
}

// applyUnitRule collects the literals of every unit clause in one pass over
// the current formula and, for each, satisfies every clause containing it,
// strips its negation from every remaining clause, and records its forced
// value. This is a single pass, not a fixpoint: a unit clause that only
// appears after this pass's mutations is picked up on the next call to
// check (made by applySplittingRule's recursion), which supplies the
// fixpoint across levels.
func applyUnitRule(cnf *CNF, assignment Assignment) {
	for _, lit := range cnf.FindUnitLiterals() {
		cnf.RemoveClausesContaining(lit)
		cnf.StripLiteral(lit.Neg())
		assignment[lit.Var] = !lit.Negated
	}
}

// applySplittingRule picks the head literal of the first remaining clause
// and recurses on each branch, cloning the formula so that the negative
// branch starts from the pre-split state.
func applySplittingRule(cnf CNF, assignment Assignment) (Assignment, bool) {
	lit, ok := cnf.HeadLiteral()
	if !ok {
		// Defensive: unreachable once unit propagation and the empty/consistent
		// checks above have run, since a non-empty formula with no empty
		// clause always has a head literal.
		return nil, false
	}

	original := cnf.Clone()

	posCNF := cnf
	posCNF.AddClause([]Literal{lit})
	if result, ok := check(posCNF, assignment.clone()); ok {
		return result, true
	}

	negCNF := original
	negCNF.AddClause([]Literal{lit.Neg()})
	return check(negCNF, assignment.clone())
}
