package qfbv

// BitVector is the runtime representation of a multi-bit value: an ordered
// tuple of literals of known length n >= 1. Bit ordering is big-endian by
// index: position 0 is the most significant bit, position n-1 is the least
// significant bit.
type BitVector struct {
	lits []Literal
}

// NewBitVector builds a BitVector from literals in MSB-first order.
func NewBitVector(lits []Literal) BitVector {
	if len(lits) == 0 {
		panic("qfbv: bit-vector must have at least one bit")
	}
	return BitVector{lits: lits}
}

// NewBoolBitVector builds a width-1 BitVector from a single literal.
func NewBoolBitVector(lit Literal) BitVector {
	return BitVector{lits: []Literal{lit}}
}

// Len returns the bit width.
func (b BitVector) Len() int {
	return len(b.lits)
}

// At returns the literal at bit index i (0 = MSB).
func (b BitVector) At(i int) Literal {
	return b.lits[i]
}

// AsBool returns the sole literal of a width-1 BitVector. It panics if the
// width is not 1.
func (b BitVector) AsBool() Literal {
	if len(b.lits) != 1 {
		panic("qfbv: AsBool on a bit-vector of width != 1")
	}
	return b.lits[0]
}

// Int reads the unsigned integer value of b under the given assignment,
// interpreting bits MSB-first: bit i contributes m[var(at(i))]<<(n-1-i).
// Every literal minted by the bit-blaster for a BitVector is a plain
// (non-negated) fresh variable, so only the variable's assignment matters.
func (b BitVector) Int(assignment Assignment) uint64 {
	var v uint64
	n := len(b.lits)
	for i, lit := range b.lits {
		if assignment.Value(lit.Var) {
			v |= 1 << uint(n-1-i)
		}
	}
	return v
}
