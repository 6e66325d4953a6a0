package spectral

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DifferentialKey identifies one differential: the page it lives on and its
// source and target bidegrees. On page r the differential has bidegree
// (r, 1-r).
type DifferentialKey struct {
	Page   int
	Source Bidegree
	Target Bidegree
}

// Map is a linear map supplied by the caller; the engine only consumes its
// rank. Ranks must be non-negative and no larger than the ranks of the
// source and target terms.
type Map interface {
	Rank() int
}

// RankMap is the minimal Map: a bare rank.
type RankMap int

// Rank returns the map's rank.
func (m RankMap) Rank() int { return int(m) }

// Resolver supplies differential maps on demand. The engine never derives
// differentials from first principles; it applies what the resolver returns.
// Returning false means the map is not available, which is fatal when both
// endpoints of the key are occupied.
type Resolver interface {
	Resolve(key DifferentialKey) (Map, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(key DifferentialKey) (Map, bool)

// Resolve calls the function.
func (f ResolverFunc) Resolve(key DifferentialKey) (Map, bool) { return f(key) }

// ZeroResolver resolves every differential to the zero map.
var ZeroResolver = ResolverFunc(func(DifferentialKey) (Map, bool) {
	return RankMap(0), true
})

// Status is the state of a sequence after an advance.
type Status int

const (
	// StatusRunning means the last advance produced a changed page.
	StatusRunning Status = iota
	// StatusConverged means no term changed rank between consecutive pages.
	// Terminal; further advances are idempotent.
	StatusConverged
	// StatusPageLimit means the configured page ceiling was reached without
	// convergence. Terminal and informative, not an error.
	StatusPageLimit
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusPageLimit:
		return "page-limit"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether the status ends the sequence.
func (s Status) Terminal() bool { return s != StatusRunning }

// ErrDifferentialMissing is returned when the resolver supplies no map for a
// differential whose source and target are both occupied.
var ErrDifferentialMissing = errors.New("spectral: differential resolution missing")

// InconsistentRankError reports a homology computation that produced a
// negative rank, which indicates a defect in the supplied differentials.
type InconsistentRankError struct {
	Bidegree Bidegree
	Page     int
	Rank     int
}

func (e *InconsistentRankError) Error() string {
	return fmt.Sprintf("spectral: inconsistent rank %d at (%d,%d) on page %d",
		e.Rank, e.Bidegree.P, e.Bidegree.Q, e.Page)
}

// Config bounds a sequence. MaxPages is the page-count ceiling; zero selects
// DefaultMaxPages.
type Config struct {
	MaxPages int
}

// DefaultMaxPages is the page ceiling used when Config leaves it zero.
const DefaultMaxPages = 64

// Sequence owns an append-only history of pages and advances them until
// convergence or the page ceiling. Not safe for concurrent use; within a
// single advance, per-term homology is computed in parallel.
type Sequence struct {
	mu       sync.Mutex
	pages    []*Page
	resolver Resolver
	maxPages int
	status   Status
}

// New starts a sequence from its first page. The page number must be at
// least 1 and every term rank non-negative; the occupied region is finite by
// construction, which is the boundedness that guarantees convergence is
// detectable.
func New(first *Page, resolver Resolver, cfg Config) (*Sequence, error) {
	if first == nil {
		return nil, errors.New("spectral: nil first page")
	}
	if first.number < 1 {
		return nil, fmt.Errorf("spectral: first page number %d, want >= 1", first.number)
	}
	if resolver == nil {
		return nil, errors.New("spectral: nil resolver")
	}
	for b, t := range first.terms {
		if t.Rank < 0 {
			return nil, &InconsistentRankError{Bidegree: b, Page: first.number, Rank: t.Rank}
		}
	}
	maxPages := cfg.MaxPages
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}
	if maxPages < 1 {
		return nil, fmt.Errorf("spectral: max pages %d, want >= 1", maxPages)
	}
	return &Sequence{
		pages:    []*Page{first},
		resolver: resolver,
		maxPages: maxPages,
		status:   StatusRunning,
	}, nil
}

// Current returns the latest page.
func (s *Sequence) Current() *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[len(s.pages)-1]
}

// Pages returns the page history in order.
func (s *Sequence) Pages() []*Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Status returns the sequence's current status.
func (s *Sequence) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Advance derives the next page from the current one. On a terminal sequence
// it is a no-op returning the terminal status with the term set unchanged.
func (s *Sequence) Advance() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return s.status, nil
	}

	current := s.pages[len(s.pages)-1]
	next, err := s.derive(current)
	if err != nil {
		return s.status, err
	}

	if sameRanks(current, next) {
		s.status = StatusConverged
		return s.status, nil
	}

	s.pages = append(s.pages, next)
	if len(s.pages) >= s.maxPages {
		s.status = StatusPageLimit
	}
	return s.status, nil
}

// Run advances until the sequence reaches a terminal status.
func (s *Sequence) Run() (Status, error) {
	for {
		status, err := s.Advance()
		if err != nil {
			return status, err
		}
		if status.Terminal() {
			return status, nil
		}
	}
}

// derive computes the homology page following current: at each occupied
// bidegree the next rank is the current rank minus the ranks of the outgoing
// and incoming differentials.
func (s *Sequence) derive(current *Page) (*Page, error) {
	r := current.number
	out := Bidegree{P: r, Q: 1 - r}

	occupied := current.Occupied()
	results := make([]Term, len(occupied))

	var eg errgroup.Group
	for i, b := range occupied {
		i, b := i, b
		eg.Go(func() error {
			term := current.terms[b]

			outgoing, err := s.differentialRank(current, b, Bidegree{P: b.P + out.P, Q: b.Q + out.Q})
			if err != nil {
				return err
			}
			incoming, err := s.differentialRank(current, Bidegree{P: b.P - out.P, Q: b.Q - out.Q}, b)
			if err != nil {
				return err
			}

			rank := term.Rank - outgoing - incoming
			if rank < 0 {
				return &InconsistentRankError{Bidegree: b, Page: r, Rank: rank}
			}
			gens := term.Generators
			if len(gens) > rank {
				gens = gens[:rank]
			}
			results[i] = Term{Rank: rank, Generators: gens}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	terms := make(map[Bidegree]Term, len(occupied))
	for i, b := range occupied {
		if results[i].Rank > 0 {
			terms[b] = results[i]
		}
	}
	return NewPage(r+1, terms), nil
}

// differentialRank resolves the differential from src to dst on the current
// page and returns its rank. Differentials with an unoccupied endpoint are
// zero without consulting the resolver.
func (s *Sequence) differentialRank(current *Page, src, dst Bidegree) (int, error) {
	if current.terms[src].Rank == 0 || current.terms[dst].Rank == 0 {
		return 0, nil
	}
	key := DifferentialKey{Page: current.number, Source: src, Target: dst}
	m, ok := s.resolver.Resolve(key)
	if !ok || m == nil {
		return 0, fmt.Errorf("%w: page %d, (%d,%d) -> (%d,%d)",
			ErrDifferentialMissing, key.Page, src.P, src.Q, dst.P, dst.Q)
	}
	rank := m.Rank()
	if rank < 0 {
		return 0, &InconsistentRankError{Bidegree: src, Page: current.number, Rank: rank}
	}
	if rank > min(current.terms[src].Rank, current.terms[dst].Rank) {
		return 0, &InconsistentRankError{Bidegree: src, Page: current.number, Rank: rank}
	}
	return rank, nil
}
