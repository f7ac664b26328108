package seqbuf

// BitRef is a handle to a single bit of a BitVector: a pointer to the
// storage word plus the bit's mask. Reads and writes go straight to the word,
// no bool is materialized in between.
//
// A BitRef is invalidated by any operation that reallocates its vector; it
// then keeps addressing the old buffer.
type BitRef[W Word] struct {
	word *W
	mask W
}

// Get reports whether the bit is set.
func (r BitRef[W]) Get() bool {
	return *r.word&r.mask != 0
}

// Set writes v to the bit.
func (r BitRef[W]) Set(v bool) BitRef[W] {
	if v {
		*r.word |= r.mask
	} else {
		*r.word &^= r.mask
	}
	return r
}

// Assign copies the value of other into the bit.
func (r BitRef[W]) Assign(other BitRef[W]) BitRef[W] {
	return r.Set(other.Get())
}

// Not returns the complement of the bit without modifying it.
func (r BitRef[W]) Not() bool {
	return !r.Get()
}

// And returns bit & v.
func (r BitRef[W]) And(v bool) bool {
	return r.Get() && v
}

// Or returns bit | v.
func (r BitRef[W]) Or(v bool) bool {
	return r.Get() || v
}

// Xor returns bit ^ v.
func (r BitRef[W]) Xor(v bool) bool {
	return r.Get() != v
}

// AndAssign sets bit &= v.
func (r BitRef[W]) AndAssign(v bool) BitRef[W] {
	if !v {
		*r.word &^= r.mask
	}
	return r
}

// OrAssign sets bit |= v.
func (r BitRef[W]) OrAssign(v bool) BitRef[W] {
	if v {
		*r.word |= r.mask
	}
	return r
}

// XorAssign sets bit ^= v.
func (r BitRef[W]) XorAssign(v bool) BitRef[W] {
	if v {
		*r.word ^= r.mask
	}
	return r
}

// Flip complements the bit.
func (r BitRef[W]) Flip() BitRef[W] {
	*r.word ^= r.mask
	return r
}

// String renders the bit as "1" or "0".
func (r BitRef[W]) String() string {
	if r.Get() {
		return "1"
	}
	return "0"
}
