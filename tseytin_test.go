package qfbv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// checkGate checks, for every assignment of the given variables, that
// gate(cnf) holds iff want(assignment) does, by forcing each input literal
// and asking the DPLL engine whether the gate's clauses are then consistent
// with dst being forced to both true and false.
func checkGate(t *testing.T, name string, gate func(cnf *CNF, dst, a, b Literal), want func(a, b bool) bool) {
	t.Helper()
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			var cnf CNF
			gate(&cnf, Lit(3), Lit(1), Lit(2))
			forceLiteral(&cnf, Lit(1), a)
			forceLiteral(&cnf, Lit(2), b)

			_, satTrue := Check(withForced(cnf, Lit(3), true))
			_, satFalse := Check(withForced(cnf, Lit(3), false))

			want := want(a, b)
			assert.Equalf(t, want, satTrue, "%s(%t,%t): dst=true should be %v", name, a, b, want)
			assert.Equalf(t, !want, satFalse, "%s(%t,%t): dst=false should be %v", name, a, b, want)
		}
	}
}

func forceLiteral(cnf *CNF, lit Literal, value bool) {
	if value {
		cnf.AddClause([]Literal{lit})
	} else {
		cnf.AddClause([]Literal{lit.Neg()})
	}
}

func withForced(cnf CNF, lit Literal, value bool) CNF {
	clone := cnf.Clone()
	forceLiteral(&clone, lit, value)
	return clone
}

func TestTseytinGates(t *testing.T) {
	checkGate(t, "and", tseytinAnd, func(a, b bool) bool { return a && b })
	checkGate(t, "or", tseytinOr, func(a, b bool) bool { return a || b })
	checkGate(t, "xor", tseytinXor, func(a, b bool) bool { return a != b })
}

func TestTseytinNot(t *testing.T) {
	for _, a := range []bool{false, true} {
		var cnf CNF
		tseytinNot(&cnf, Lit(2), Lit(1))
		forceLiteral(&cnf, Lit(1), a)

		_, satTrue := Check(withForced(cnf, Lit(2), true))
		_, satFalse := Check(withForced(cnf, Lit(2), false))
		assert.Equal(t, !a, satTrue)
		assert.Equal(t, a, satFalse)
	}
}

func TestTseytinOrMany(t *testing.T) {
	var cnf CNF
	tseytinOrMany(&cnf, Lit(4), []Literal{Lit(1), Lit(2), Lit(3)})

	// All sources false -> dst forced false only.
	allFalse := cnf.Clone()
	forceLiteral(&allFalse, Lit(1), false)
	forceLiteral(&allFalse, Lit(2), false)
	forceLiteral(&allFalse, Lit(3), false)
	_, sat := Check(withForced(allFalse, Lit(4), true))
	assert.False(t, sat)
	_, sat = Check(withForced(allFalse, Lit(4), false))
	assert.True(t, sat)

	// One source true -> dst forced true only.
	oneTrue := cnf.Clone()
	forceLiteral(&oneTrue, Lit(1), true)
	forceLiteral(&oneTrue, Lit(2), false)
	forceLiteral(&oneTrue, Lit(3), false)
	_, sat = Check(withForced(oneTrue, Lit(4), false))
	assert.False(t, sat)
	_, sat = Check(withForced(oneTrue, Lit(4), true))
	assert.True(t, sat)
}

func TestHalfAdder(t *testing.T) {
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			var cnf CNF
			halfAdder(&cnf, Lit(3), Lit(4), Lit(1), Lit(2))
			forceLiteral(&cnf, Lit(1), a)
			forceLiteral(&cnf, Lit(2), b)

			wantSum := a != b
			wantCarry := a && b

			_, sat := Check(withForced(withForced(cnf, Lit(3), wantSum), Lit(4), wantCarry))
			assert.True(t, sat, "half_adder(%t,%t) should allow sum=%t carry=%t", a, b, wantSum, wantCarry)

			_, sat = Check(withForced(withForced(cnf, Lit(3), !wantSum), Lit(4), wantCarry))
			assert.False(t, sat, "half_adder(%t,%t) must force sum=%t", a, b, wantSum)
		}
	}
}
