package perverse

import (
	"fmt"

	"stratinv/stratification"
)

// Violation pinpoints one cell that breaks a support bound or carries an
// invalid (negative) rank.
type Violation struct {
	Degree    int
	StratumID string
	Dim       int
	Bound     int
	Rank      int
	// Cosupport marks violations found on the dualized object.
	Cosupport bool
}

func (v Violation) String() string {
	side := "support"
	if v.Cosupport {
		side = "cosupport"
	}
	if v.Rank < 0 {
		return fmt.Sprintf("%s: stratum %q at degree %d has negative rank %d",
			side, v.StratumID, v.Degree, v.Rank)
	}
	return fmt.Sprintf("%s: stratum %q at degree %d has dimension %d, bound %d",
		side, v.StratumID, v.Degree, v.Dim, v.Bound)
}

// Report is the structured outcome of a support or cosupport scan. An empty
// violation list means the condition holds.
type Report struct {
	Violations []Violation
}

// OK reports whether the scan found no violations.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// Bound is the maximum support dimension allowed for a cell, derived from a
// perversity: a stratum of codimension c carrying nonzero rank at degree i may
// have dimension at most -i + p(c).
func Bound(p Perversity, codim, degree int) int {
	return -degree + p.At(codim)
}

// CheckSupport scans every occupied (degree, stratum) cell of obj against the
// support bound. Pure and deterministic; cells are visited in canonical order
// so the first violation is stable.
func CheckSupport(obj *GradedObject, strat *stratification.Stratification, p Perversity) Report {
	return scan(obj, strat, p, false)
}

// CheckCosupport dualizes obj and re-runs the support scan, realizing the
// cosupport condition.
func CheckCosupport(obj *GradedObject, strat *stratification.Stratification, p Perversity) Report {
	return scan(obj.Dual(strat), strat, p, true)
}

// IsPerverse reports whether obj satisfies both the support and the cosupport
// condition over strat for the perversity p.
func IsPerverse(obj *GradedObject, strat *stratification.Stratification, p Perversity) bool {
	return CheckSupport(obj, strat, p).OK() && CheckCosupport(obj, strat, p).OK()
}

// Check runs both scans and returns the combined report.
func Check(obj *GradedObject, strat *stratification.Stratification, p Perversity) Report {
	report := CheckSupport(obj, strat, p)
	report.Violations = append(report.Violations, CheckCosupport(obj, strat, p).Violations...)
	return report
}

func scan(obj *GradedObject, strat *stratification.Stratification, p Perversity, cosupport bool) Report {
	var report Report
	for _, degree := range obj.Degrees() {
		for _, id := range obj.Support(degree) {
			rank := obj.Rank(degree, id)
			if rank < 0 {
				// A rank is a non-negative integer; a negative one can
				// satisfy no bound.
				report.Violations = append(report.Violations, Violation{
					Degree: degree, StratumID: id, Rank: rank, Cosupport: cosupport,
				})
				continue
			}
			st, ok := strat.Get(id)
			if !ok {
				// A cell over an unknown stratum can satisfy no bound.
				report.Violations = append(report.Violations, Violation{
					Degree: degree, StratumID: id, Dim: -1, Bound: -1, Rank: rank, Cosupport: cosupport,
				})
				continue
			}
			codim := strat.AmbientDimension() - st.Dimension
			bound := Bound(p, codim, degree)
			if st.Dimension > bound {
				report.Violations = append(report.Violations, Violation{
					Degree:    degree,
					StratumID: id,
					Dim:       st.Dimension,
					Bound:     bound,
					Rank:      rank,
					Cosupport: cosupport,
				})
			}
		}
	}
	return report
}
