package collection

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/tomz197/jardin/internal/celestial"
)

func newGame(t *testing.T) *State {
	t.Helper()
	return New(celestial.Default())
}

func checkScoreInvariant(t *testing.T, s *State) {
	t.Helper()
	snap := s.Snapshot()
	if snap.Score != PointsPerDiscovery*len(snap.DiscoveredIDs) {
		t.Fatalf("score %d != 10 * %d discovered", snap.Score, len(snap.DiscoveredIDs))
	}
	if s.Progress().Discovered != len(snap.DiscoveredIDs) {
		t.Fatalf("progress %d != discovered %d", s.Progress().Discovered, len(snap.DiscoveredIDs))
	}
}

func TestNewStateIsEmpty(t *testing.T) {
	s := newGame(t)

	snap := s.Snapshot()
	if snap.Score != 0 || snap.Discovered() != 0 || snap.SecretUnlocked || snap.SelectedID != nil {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}
	if s.Phase() != PhaseEmpty {
		t.Fatalf("expected PhaseEmpty, got %v", s.Phase())
	}
	if p := s.Progress(); p != (Progress{Discovered: 0, Total: 7}) {
		t.Fatalf("unexpected progress: %+v", p)
	}
}

func TestDiscoverAllThenUnlock(t *testing.T) {
	s := newGame(t)

	for _, id := range []int{4, 1, 7, 2, 6, 3, 5} {
		if _, err := s.Discover(id); err != nil {
			t.Fatalf("Discover(%d): %v", id, err)
		}
		checkScoreInvariant(t, s)
		if s.Phase() != PhaseAllDiscovered && s.Progress().Discovered == 7 {
			t.Fatalf("expected PhaseAllDiscovered after 7 discoveries, got %v", s.Phase())
		}
	}

	if s.Score() != 70 {
		t.Fatalf("expected score 70, got %d", s.Score())
	}
	if p := s.Progress(); p != (Progress{Discovered: 7, Total: 7, SecretUnlocked: false}) {
		t.Fatalf("unexpected progress: %+v", p)
	}

	snap, unlocked := s.AttemptSecretUnlock()
	if !unlocked || !snap.SecretUnlocked {
		t.Fatalf("expected unlock, got unlocked=%v snapshot=%+v", unlocked, snap)
	}
	if s.Phase() != PhaseSecretUnlocked {
		t.Fatalf("expected PhaseSecretUnlocked, got %v", s.Phase())
	}
}

func TestUnlockRejectedBeforeAllDiscovered(t *testing.T) {
	s := newGame(t)

	if _, unlocked := s.AttemptSecretUnlock(); unlocked {
		t.Fatal("unlocked with nothing discovered")
	}

	if _, err := s.Discover(3); err != nil {
		t.Fatal(err)
	}
	snap, unlocked := s.AttemptSecretUnlock()
	if unlocked || snap.SecretUnlocked {
		t.Fatalf("unlock accepted with 1 of 7 discovered: %+v", snap)
	}
	if s.Phase() != PhaseInProgress {
		t.Fatalf("expected PhaseInProgress, got %v", s.Phase())
	}
}

func TestDiscoverInvalidTarget(t *testing.T) {
	s := newGame(t)

	snap, err := s.Discover(99)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if snap.Discovered() != 0 || snap.Score != 0 || snap.SelectedID != nil {
		t.Fatalf("state changed on invalid target: %+v", snap)
	}
}

func TestDiscoverTwiceCountsOnce(t *testing.T) {
	s := newGame(t)

	first, _ := s.Discover(2)
	second, _ := s.Discover(2)

	if second.Score != 10 {
		t.Fatalf("expected score 10, got %d", second.Score)
	}
	if len(second.DiscoveredIDs) != 1 || second.DiscoveredIDs[0] != 2 {
		t.Fatalf("expected discovered {2}, got %v", second.DiscoveredIDs)
	}
	if !first.Equal(second) {
		t.Fatalf("second discover changed state: %+v -> %+v", first, second)
	}
}

func TestRediscoverReselects(t *testing.T) {
	s := newGame(t)

	s.Discover(2)
	s.SelectNone()
	snap, _ := s.Discover(2)

	if !snap.IsSelected(2) {
		t.Fatalf("expected body 2 selected, got %v", snap.SelectedID)
	}
	if snap.Score != 10 {
		t.Fatalf("re-selecting changed score to %d", snap.Score)
	}
}

func TestSelectNone(t *testing.T) {
	s := newGame(t)
	s.Discover(5)

	snap := s.SelectNone()
	if snap.SelectedID != nil {
		t.Fatalf("expected no selection, got %d", *snap.SelectedID)
	}
	if snap.Score != 10 || !snap.IsDiscovered(5) {
		t.Fatalf("SelectNone affected progress: %+v", snap)
	}
}

func TestUnlockIsMonotonic(t *testing.T) {
	s := newGame(t)
	for id := 1; id <= 7; id++ {
		s.Discover(id)
	}
	s.AttemptSecretUnlock()

	if _, again := s.AttemptSecretUnlock(); again {
		t.Fatal("second unlock reported a transition")
	}
	s.Discover(1)
	s.Discover(99)
	s.SelectNone()

	if !s.Snapshot().SecretUnlocked {
		t.Fatal("secret reverted to locked")
	}
	if s.Score() != 70 {
		t.Fatalf("score changed after unlock: %d", s.Score())
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		s := newGame(t)
		lastDiscovered := 0
		unlocked := false

		for step := 0; step < 40; step++ {
			switch rng.Intn(4) {
			case 0, 1:
				s.Discover(rng.Intn(10)) // 0, 8 and 9 are invalid
			case 2:
				s.AttemptSecretUnlock()
			case 3:
				s.SelectNone()
			}

			checkScoreInvariant(t, s)
			p := s.Progress()
			if p.Discovered < lastDiscovered {
				t.Fatalf("discovered count decreased %d -> %d", lastDiscovered, p.Discovered)
			}
			lastDiscovered = p.Discovered
			if p.SecretUnlocked && p.Discovered != p.Total {
				t.Fatalf("secret unlocked with %d/%d", p.Discovered, p.Total)
			}
			if unlocked && !p.SecretUnlocked {
				t.Fatal("secret reverted")
			}
			unlocked = p.SecretUnlocked
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newGame(t)
	s.Discover(1)

	snap := s.Snapshot()
	snap.DiscoveredIDs[0] = 6
	*snap.SelectedID = 6

	again := s.Snapshot()
	if again.DiscoveredIDs[0] != 1 || *again.SelectedID != 1 {
		t.Fatalf("snapshot aliasing leaked into state: %+v", again)
	}
}

func TestSnapshotFraction(t *testing.T) {
	s := newGame(t)
	s.Discover(1)
	s.Discover(2)

	if got := s.Snapshot().Fraction(); got != 2.0/7.0 {
		t.Fatalf("expected 2/7, got %v", got)
	}
	if (Snapshot{}).Fraction() != 0 {
		t.Fatal("empty snapshot should have zero fraction")
	}
}
