package solver

import (
	"fmt"
	"math/bits"
	"strings"
)

// Domain is an immutable set of non-negative integers stored as a bitset.
// Every operation returns a new Domain; the receiver is never changed, which
// lets the search trail keep domains by value.
type Domain struct {
	words []uint64
	size  int
	min   int
	max   int
}

// NewDomain returns the interval [lo, hi]. It returns an empty domain when
// hi < lo and panics on a negative lo.
func NewDomain(lo, hi int) Domain {
	if lo < 0 {
		panic(fmt.Sprintf("solver: negative domain bound %d", lo))
	}
	if hi < lo {
		return Domain{}
	}
	words := make([]uint64, hi/64+1)
	for v := lo; v <= hi; v++ {
		words[v/64] |= 1 << (v % 64)
	}
	return newDomain(words)
}

// DomainOf returns the domain containing exactly the given values.
func DomainOf(values ...int) Domain {
	hi := -1
	for _, v := range values {
		if v < 0 {
			panic(fmt.Sprintf("solver: negative domain value %d", v))
		}
		hi = max(hi, v)
	}
	if hi < 0 {
		return Domain{}
	}
	words := make([]uint64, hi/64+1)
	for _, v := range values {
		words[v/64] |= 1 << (v % 64)
	}
	return newDomain(words)
}

func newDomain(words []uint64) Domain {
	d := Domain{words: words, min: -1, max: -1}
	for i, w := range words {
		if w == 0 {
			continue
		}
		d.size += bits.OnesCount64(w)
		if d.min < 0 {
			d.min = i*64 + bits.TrailingZeros64(w)
		}
		d.max = i*64 + 63 - bits.LeadingZeros64(w)
	}
	if d.size == 0 {
		return Domain{}
	}
	return d
}

// Size returns the number of values in the domain.
func (d Domain) Size() int { return d.size }

// Empty reports whether the domain has no values.
func (d Domain) Empty() bool { return d.size == 0 }

// IsFixed reports whether the domain holds exactly one value.
func (d Domain) IsFixed() bool { return d.size == 1 }

// Min returns the smallest value. It is -1 for an empty domain.
func (d Domain) Min() int {
	if d.size == 0 {
		return -1
	}
	return d.min
}

// Max returns the largest value. It is -1 for an empty domain.
func (d Domain) Max() int {
	if d.size == 0 {
		return -1
	}
	return d.max
}

// Contains reports whether v is in the domain.
func (d Domain) Contains(v int) bool {
	if v < 0 || v/64 >= len(d.words) {
		return false
	}
	return d.words[v/64]&(1<<(v%64)) != 0
}

// Values returns the domain's values in increasing order.
func (d Domain) Values() []int {
	out := make([]int, 0, d.size)
	for i, w := range d.words {
		for w != 0 {
			out = append(out, i*64+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return out
}

// RemoveBelow returns the domain without the values smaller than v.
func (d Domain) RemoveBelow(v int) Domain {
	if d.size == 0 || v <= d.min {
		return d
	}
	if v > d.max {
		return Domain{}
	}
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	for i := range words {
		lo := i * 64
		switch {
		case lo+63 < v:
			words[i] = 0
		case lo < v:
			words[i] &^= (1 << (v - lo)) - 1
		}
	}
	return newDomain(words)
}

// RemoveAbove returns the domain without the values larger than v.
func (d Domain) RemoveAbove(v int) Domain {
	if d.size == 0 || v >= d.max {
		return d
	}
	if v < d.min {
		return Domain{}
	}
	words := make([]uint64, v/64+1)
	copy(words, d.words)
	if r := v % 64; r < 63 {
		words[len(words)-1] &= (1 << (r + 1)) - 1
	}
	return newDomain(words)
}

// Remove returns the domain without v.
func (d Domain) Remove(v int) Domain {
	if !d.Contains(v) {
		return d
	}
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	words[v/64] &^= 1 << (v % 64)
	return newDomain(words)
}

// Fix returns the singleton {v} if v is in the domain, otherwise an empty
// domain.
func (d Domain) Fix(v int) Domain {
	if !d.Contains(v) {
		return Domain{}
	}
	return DomainOf(v)
}

// Equal reports whether both domains hold the same values.
func (d Domain) Equal(o Domain) bool {
	if d.size != o.size || d.min != o.min || d.max != o.max {
		return false
	}
	n := max(len(d.words), len(o.words))
	for i := range n {
		var a, b uint64
		if i < len(d.words) {
			a = d.words[i]
		}
		if i < len(o.words) {
			b = o.words[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// String formats the domain as "{}", "{3}", "[0..4]" or "{0,2,5}".
func (d Domain) String() string {
	switch {
	case d.size == 0:
		return "{}"
	case d.size == 1:
		return fmt.Sprintf("{%d}", d.min)
	case d.size == d.max-d.min+1:
		return fmt.Sprintf("[%d..%d]", d.min, d.max)
	}
	vals := d.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
