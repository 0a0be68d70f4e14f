// Package qfbv implements a small SMT solver for the quantifier-free theory
// of booleans and fixed-width bit-vectors (QF_BV): a bit-blasting compiler
// down to propositional CNF via Tseytin encoding, a DPLL SAT engine over that
// CNF, and a model reconstructor that projects the resulting truth
// assignment back onto the declared variables.
package qfbv

import (
	"strconv"
	"strings"
)

// Literal is a propositional variable or its negation. Var is always >= 1;
// the value 0 is reserved for DIMACS clause termination and is never a valid
// Literal.Var.
type Literal struct {
	Var     int
	Negated bool
}

// Lit builds a Literal from a variable id.
func Lit(v int) Literal {
	if v <= 0 {
		panic("qfbv: literal variable must be >= 1")
	}
	return Literal{Var: v}
}

// Neg returns the negation of l.
func (l Literal) Neg() Literal {
	return Literal{Var: l.Var, Negated: !l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return "!x" + strconv.Itoa(l.Var)
	}
	return "x" + strconv.Itoa(l.Var)
}

// Clause is an unordered set of literals, represented as a slice. Duplicates
// are tolerated. An empty Clause denotes false.
type Clause []Literal

func (c Clause) has(lit Literal) bool {
	for _, l := range c {
		if l == lit {
			return true
		}
	}
	return false
}

func (c Clause) clone() Clause {
	out := make(Clause, len(c))
	copy(out, c)
	return out
}

func (c Clause) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return "(" + strings.Join(parts, " || ") + ")"
}

// CNF is a conjunction of clauses. An empty CNF denotes true.
type CNF struct {
	Clauses []Clause
}

// AddClause appends a clause to the formula. The literals are copied.
func (f *CNF) AddClause(lits []Literal) {
	f.Clauses = append(f.Clauses, Clause(lits).clone())
}

// RemoveClausesContaining drops every clause that contains lit: such a
// clause is already satisfied by lit.
func (f *CNF) RemoveClausesContaining(lit Literal) {
	kept := f.Clauses[:0]
	for _, c := range f.Clauses {
		if !c.has(lit) {
			kept = append(kept, c)
		}
	}
	f.Clauses = kept
}

// StripLiteral removes every occurrence of lit from every remaining clause:
// lit has been falsified, so it can no longer help satisfy any clause.
func (f *CNF) StripLiteral(lit Literal) {
	for i, c := range f.Clauses {
		if !c.has(lit) {
			continue
		}
		newClause := c[:0:0]
		for _, l := range c {
			if l != lit {
				newClause = append(newClause, l)
			}
		}
		f.Clauses[i] = newClause
	}
}

// IsConsistent reports whether every clause has been satisfied (the clause
// list is empty).
func (f *CNF) IsConsistent() bool {
	return len(f.Clauses) == 0
}

// HasEmptyClause reports whether some clause has been reduced to false.
func (f *CNF) HasEmptyClause() bool {
	for _, c := range f.Clauses {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

// FindUnitLiterals returns the literal of every clause of length 1, in
// clause order, as a snapshot of the current state (callers may go on to
// mutate the formula based on this list).
func (f *CNF) FindUnitLiterals() []Literal {
	var units []Literal
	for _, c := range f.Clauses {
		if len(c) == 1 {
			units = append(units, c[0])
		}
	}
	return units
}

// HeadLiteral returns the first literal of the first clause, for use as a
// DPLL splitting variable.
func (f *CNF) HeadLiteral() (Literal, bool) {
	if len(f.Clauses) == 0 || len(f.Clauses[0]) == 0 {
		return Literal{}, false
	}
	return f.Clauses[0][0], true
}

// Clone deep-copies the formula, as required before each DPLL split.
func (f *CNF) Clone() CNF {
	clauses := make([]Clause, len(f.Clauses))
	for i, c := range f.Clauses {
		clauses[i] = c.clone()
	}
	return CNF{Clauses: clauses}
}

// String pretty-prints the formula per §6.4: clauses joined by " && ", each
// wrapped in parens, literals joined by " || ".
func (f CNF) String() string {
	parts := make([]string, len(f.Clauses))
	for i, c := range f.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}
