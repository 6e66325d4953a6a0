// Package spectral advances a filtered, degree-indexed collection of terms
// through successive pages, applying supplied differentials and detecting
// convergence. Page history is append-only: earlier pages are never mutated
// once a later page has been derived from them.
package spectral

import (
	"sort"

	"stratinv/perverse"
	"stratinv/stratification"
)

// Bidegree is the (p, q) position of a term on a page.
type Bidegree struct {
	P int
	Q int
}

// Term is one entry of a page: a non-negative rank and optional generator
// labels. Generators beyond Rank are meaningless and trimmed on construction.
type Term struct {
	Rank       int
	Generators []string
}

// Page is one stage of a spectral sequence: a page number r >= 1 and the
// occupied terms. Pages are sealed once a successor has been derived.
type Page struct {
	number int
	terms  map[Bidegree]Term
}

// NewPage builds a page from its occupied terms. Zero-rank terms are dropped
// and generator lists trimmed to rank.
func NewPage(number int, terms map[Bidegree]Term) *Page {
	copied := make(map[Bidegree]Term, len(terms))
	for b, t := range terms {
		if t.Rank == 0 {
			continue
		}
		gens := t.Generators
		if len(gens) > t.Rank {
			gens = gens[:t.Rank]
		}
		owned := make([]string, len(gens))
		copy(owned, gens)
		copied[b] = Term{Rank: t.Rank, Generators: owned}
	}
	return &Page{number: number, terms: copied}
}

// Number returns the page number.
func (p *Page) Number() int { return p.number }

// Term returns the term at the given bidegree; absent terms have rank zero.
func (p *Page) Term(b Bidegree) Term {
	t, ok := p.terms[b]
	if !ok {
		return Term{}
	}
	gens := make([]string, len(t.Generators))
	copy(gens, t.Generators)
	return Term{Rank: t.Rank, Generators: gens}
}

// Occupied returns the bidegrees with nonzero rank in (p, q) order.
func (p *Page) Occupied() []Bidegree {
	out := make([]Bidegree, 0, len(p.terms))
	for b := range p.terms {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].P != out[j].P {
			return out[i].P < out[j].P
		}
		return out[i].Q < out[j].Q
	})
	return out
}

// TotalRank returns the sum of ranks over all occupied terms.
func (p *Page) TotalRank() int {
	total := 0
	for _, t := range p.terms {
		total += t.Rank
	}
	return total
}

// sameRanks reports whether two pages occupy the same bidegrees with the same
// ranks.
func sameRanks(a, b *Page) bool {
	if len(a.terms) != len(b.terms) {
		return false
	}
	for bd, t := range a.terms {
		if b.terms[bd].Rank != t.Rank {
			return false
		}
	}
	return true
}

// SeedFromStratification builds a first page from a stratification and a
// graded object: a cell of rank k at (degree i, stratum S) contributes k to
// the term at (p, q) = (dim S, i - dim S), with the stratum recorded as a
// generator label.
func SeedFromStratification(strat *stratification.Stratification, obj *perverse.GradedObject) *Page {
	terms := make(map[Bidegree]Term)
	for _, e := range obj.Entries() {
		st, ok := strat.Get(e.StratumID)
		if !ok {
			continue
		}
		b := Bidegree{P: st.Dimension, Q: e.Degree - st.Dimension}
		t := terms[b]
		t.Rank += e.Rank
		t.Generators = append(t.Generators, e.StratumID)
		terms[b] = t
	}
	return NewPage(1, terms)
}
