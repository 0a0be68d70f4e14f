package qfbv

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEmptyFormulaIsSat(t *testing.T) {
	assignment, sat := Check(CNF{})
	require.True(t, sat)
	assert.Empty(t, assignment)
}

func TestCheckContradictionIsUnsat(t *testing.T) {
	f := CNF{Clauses: []Clause{{Lit(1)}, {Lit(1).Neg()}}}
	_, sat := Check(f)
	assert.False(t, sat)
}

func TestCheckSingleUnitClauseIsSat(t *testing.T) {
	f := CNF{Clauses: []Clause{{Lit(1)}}}
	assignment, sat := Check(f)
	require.True(t, sat)
	assert.True(t, assignment.Value(1))
}

func TestCheckDoesNotMutateInput(t *testing.T) {
	f := CNF{Clauses: []Clause{{Lit(1), Lit(2)}, {Lit(1).Neg()}}}
	before := f.Clone()
	Check(f)
	assert.Equal(t, before, f)
}

// TestCheckSplittingOrderIsDeterministic pins down that the model found for
// a formula whose only clause is (x1 || x2) picks x1=true, matching the
// positive-branch-first splitting order.
func TestCheckSplittingOrderIsDeterministic(t *testing.T) {
	f := CNF{Clauses: []Clause{{Lit(1), Lit(2)}}}
	assignment, sat := Check(f)
	require.True(t, sat)
	if !assignment.Value(1) && !assignment.Value(2) {
		t.Fatalf("clause (x1 || x2) not satisfied by %v", assignment)
	}
	assert.True(t, assignment.Value(1), "splitting on x1 must try x1=true first")
}

func TestCheckRandomized(t *testing.T) {
	for _, tt := range []struct {
		numVars    int
		numClauses int
		numSeeds   int
	}{
		{2, 2, 10},
		{3, 10, 100},
		{5, 10, 200},
		{10, 20, 200},
	} {
		name := fmt.Sprintf("vars=%d,clauses=%d", tt.numVars, tt.numClauses)
		t.Run(name, func(t *testing.T) {
			for seed := 0; seed < tt.numSeeds; seed++ {
				f := makeRandomSatisfiable(int64(seed), tt.numVars, tt.numClauses)
				assignment, sat := Check(f)
				require.Truef(t, sat, "[seed=%d] got UNSAT for a formula built to be satisfiable:\n%s", seed, f.String())
				assert.Truef(t, solutionSatisfies(f, assignment), "[seed=%d] invalid solution %s for:\n%s", seed, pretty.Sprint(assignment), f.String())
			}
		})
	}
}

// solutionSatisfies reports whether assignment satisfies every clause of f,
// defaulting unassigned variables to false.
func solutionSatisfies(f CNF, assignment Assignment) bool {
clauseLoop:
	for _, c := range f.Clauses {
		for _, lit := range c {
			if assignment.Value(lit.Var) != lit.Negated {
				continue clauseLoop
			}
		}
		return false
	}
	return true
}

// makeRandomSatisfiable builds a random CNF over numVars variables and
// numClauses clauses that is satisfiable by construction: a random
// assignment is picked first, then each clause is built to contain at least
// one literal matching it.
func makeRandomSatisfiable(seed int64, numVars, numClauses int) CNF {
	rng := rand.New(rand.NewSource(seed))
	truth := make([]bool, numVars)
	for v := range truth {
		truth[v] = rng.Intn(2) == 1
	}

	f := CNF{Clauses: make([]Clause, numClauses)}
	for i := range f.Clauses {
		size := rng.Intn(numVars) + 1
		vars := rng.Perm(numVars)[:size]
		fixed := rng.Intn(size)
		clause := make(Clause, size)
		for j, v := range vars {
			lit := Literal{Var: v + 1}
			if j == fixed {
				lit.Negated = !truth[v]
			} else if rng.Intn(2) == 1 {
				lit.Negated = true
			}
			clause[j] = lit
		}
		f.Clauses[i] = clause
	}
	return f
}
