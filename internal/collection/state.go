// Package collection implements the planet collection game: which bodies have
// been discovered, the score, and the one-shot secret unlock.
//
// A State is owned by a single session and is not safe for concurrent use.
package collection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomz197/jardin/internal/celestial"
)

// PointsPerDiscovery is awarded once per newly discovered body.
const PointsPerDiscovery = 10

// ErrInvalidTarget is returned when an event names a body outside the catalog.
var ErrInvalidTarget = errors.New("collection: invalid target")

// Catalog is the part of the registry the game needs.
type Catalog interface {
	Get(id int) (celestial.Body, error)
	Size() int
}

// Phase is the coarse game progress.
type Phase int

const (
	PhaseEmpty          Phase = iota // Nothing discovered yet
	PhaseInProgress                  // Some, not all, discovered
	PhaseAllDiscovered               // Every body discovered, secret still hidden
	PhaseSecretUnlocked              // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseInProgress:
		return "in_progress"
	case PhaseAllDiscovered:
		return "all_discovered"
	case PhaseSecretUnlocked:
		return "secret_unlocked"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Progress is the derived view used by progress bars.
type Progress struct {
	Discovered     int
	Total          int
	SecretUnlocked bool
}

// State is the mutable session state.
type State struct {
	catalog        Catalog
	discovered     map[int]struct{}
	score          int
	secretUnlocked bool
	selected       int
	hasSelected    bool
	observers      []Observer
}

// New creates an empty game over the given catalog.
func New(catalog Catalog) *State {
	return &State{
		catalog:    catalog,
		discovered: make(map[int]struct{}, catalog.Size()),
	}
}

// Discover marks id as discovered and selects it. Re-discovering a body only
// re-selects it. Unknown ids return ErrInvalidTarget and leave state untouched.
func (s *State) Discover(id int) (Snapshot, error) {
	if _, err := s.catalog.Get(id); err != nil {
		return s.Snapshot(), fmt.Errorf("%w: body %d: %v", ErrInvalidTarget, id, err)
	}

	prev := s.Snapshot()
	if _, seen := s.discovered[id]; !seen {
		s.discovered[id] = struct{}{}
		s.score += PointsPerDiscovery
	}
	s.selected = id
	s.hasSelected = true

	return s.commit(prev), nil
}

// SelectNone closes the info panel. Discovery and score are unaffected.
func (s *State) SelectNone() Snapshot {
	prev := s.Snapshot()
	s.selected = 0
	s.hasSelected = false
	return s.commit(prev)
}

// AttemptSecretUnlock unlocks the secret once every body has been discovered.
// The returned bool is true only for the call that performed the transition.
func (s *State) AttemptSecretUnlock() (Snapshot, bool) {
	if s.secretUnlocked || len(s.discovered) < s.catalog.Size() {
		return s.Snapshot(), false
	}

	prev := s.Snapshot()
	s.secretUnlocked = true
	return s.commit(prev), true
}

// Progress reads counts directly from the discovered set and the catalog.
func (s *State) Progress() Progress {
	return Progress{
		Discovered:     len(s.discovered),
		Total:          s.catalog.Size(),
		SecretUnlocked: s.secretUnlocked,
	}
}

// Phase reports where the game is.
func (s *State) Phase() Phase {
	switch {
	case s.secretUnlocked:
		return PhaseSecretUnlocked
	case len(s.discovered) == 0:
		return PhaseEmpty
	case len(s.discovered) < s.catalog.Size():
		return PhaseInProgress
	default:
		return PhaseAllDiscovered
	}
}

// Score returns the accumulated score.
func (s *State) Score() int {
	return s.score
}

// Snapshot returns a copy of the current state for renderers.
func (s *State) Snapshot() Snapshot {
	ids := make([]int, 0, len(s.discovered))
	for id := range s.discovered {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	snap := Snapshot{
		DiscoveredIDs:  ids,
		Score:          s.score,
		SecretUnlocked: s.secretUnlocked,
		Total:          s.catalog.Size(),
	}
	if s.hasSelected {
		id := s.selected
		snap.SelectedID = &id
	}
	return snap
}

// commit notifies observers when the operation changed anything.
func (s *State) commit(prev Snapshot) Snapshot {
	next := s.Snapshot()
	if !prev.Equal(next) {
		for _, o := range s.observers {
			o.Observe(prev, next)
		}
	}
	return next
}
