package perverse

import "fmt"

// Perversity is a function from stratum codimension to an integer bound. The
// classical perversities are monotone step functions satisfying p(0) = p(1) = 0
// and p(k) <= p(k+1) <= p(k)+1.
type Perversity struct {
	Name   string
	values map[int]int
}

// NewPerversity builds a perversity from explicit codimension values.
func NewPerversity(name string, values map[int]int) Perversity {
	copied := make(map[int]int, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Perversity{Name: name, values: copied}
}

// At evaluates the perversity at a codimension. Codimensions 0 and 1 default
// to zero; codimensions above the largest known value extend by the last
// known value.
func (p Perversity) At(codim int) int {
	if v, ok := p.values[codim]; ok {
		return v
	}
	if codim <= 1 {
		return 0
	}
	best, bestK, found := 0, -1, false
	for k, v := range p.values {
		if k <= codim && k > bestK {
			bestK, best, found = k, v, true
		}
	}
	if found {
		return best
	}
	return 0
}

// Validate checks the perversity axioms: zero at codimensions 0 and 1, and
// steps of 0 or 1 between consecutive known codimensions.
func (p Perversity) Validate() error {
	if v, ok := p.values[0]; ok && v != 0 {
		return fmt.Errorf("perversity %s: value at codimension 0 must be 0, got %d", p.Name, v)
	}
	if v, ok := p.values[1]; ok && v != 0 {
		return fmt.Errorf("perversity %s: value at codimension 1 must be 0, got %d", p.Name, v)
	}
	for k, v := range p.values {
		next, ok := p.values[k+1]
		if !ok {
			continue
		}
		if step := next - v; step < 0 || step > 1 {
			return fmt.Errorf("perversity %s: step from codimension %d to %d is %d, want 0 or 1", p.Name, k, k+1, step)
		}
	}
	return nil
}

func fromFormula(name string, maxCodim int, f func(k int) int) Perversity {
	values := make(map[int]int, maxCodim+1)
	for k := 0; k <= maxCodim; k++ {
		values[k] = f(k)
	}
	return Perversity{Name: name, values: values}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Middle returns the middle perversity m(k) = floor((k-2)/2), the one that
// yields Poincare duality.
func Middle(maxCodim int) Perversity {
	return fromFormula("middle", maxCodim, func(k int) int {
		return max(0, floorDiv(k-2, 2))
	})
}

// Lower returns the lower perversity floor((k-2)/2) - 1, clamped at zero.
func Lower(maxCodim int) Perversity {
	return fromFormula("lower", maxCodim, func(k int) int {
		return max(0, floorDiv(k-2, 2)-1)
	})
}

// Upper returns the upper perversity floor((k-1)/2).
func Upper(maxCodim int) Perversity {
	return fromFormula("upper", maxCodim, func(k int) int {
		return max(0, floorDiv(k-1, 2))
	})
}

// Zero returns the zero perversity, the most restrictive one.
func Zero(maxCodim int) Perversity {
	return fromFormula("zero", maxCodim, func(int) int { return 0 })
}

// Top returns the top perversity t(k) = k - 2 for k >= 2.
func Top(maxCodim int) Perversity {
	return fromFormula("top", maxCodim, func(k int) int {
		return max(0, k-2)
	})
}

// Complementary reports whether p + q equals the top perversity up to
// maxCodim, the pairing that underlies Poincare duality between perversities.
func Complementary(p, q Perversity, maxCodim int) bool {
	for k := 0; k <= maxCodim; k++ {
		if p.At(k)+q.At(k) != max(0, k-2) {
			return false
		}
	}
	return true
}
