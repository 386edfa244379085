package collection

import (
	"errors"
	"testing"
)

func TestApplyRoutesEvents(t *testing.T) {
	s := newGame(t)

	snap, err := s.Apply(SelectBody(3))
	if err != nil || !snap.IsDiscovered(3) || !snap.IsSelected(3) {
		t.Fatalf("select body: snap=%+v err=%v", snap, err)
	}

	snap, err = s.Apply(Event{Kind: EventCentralBody})
	if err != nil || snap.SecretUnlocked {
		t.Fatalf("central body before completion: snap=%+v err=%v", snap, err)
	}

	snap, err = s.Apply(Event{Kind: EventClearSelection})
	if err != nil || snap.SelectedID != nil {
		t.Fatalf("clear selection: snap=%+v err=%v", snap, err)
	}

	if _, err := s.Apply(SelectBody(42)); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := s.Apply(Event{Kind: EventKind(9)}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("unknown kind: expected ErrInvalidTarget, got %v", err)
	}
}

func TestApplyUnlockAfterCompletion(t *testing.T) {
	s := newGame(t)
	for id := 1; id <= 7; id++ {
		s.Apply(SelectBody(id))
	}

	snap, err := s.Apply(Event{Kind: EventCentralBody})
	if err != nil || !snap.SecretUnlocked {
		t.Fatalf("expected unlock: snap=%+v err=%v", snap, err)
	}
}

func TestObserversSeeTransitions(t *testing.T) {
	s := newGame(t)

	var discovered []int
	reachedAll, unlocked, calls := 0, 0, 0
	s.Subscribe(ObserverFunc(func(prev, next Snapshot) {
		calls++
		if id, ok := NewlyDiscovered(prev, next); ok {
			discovered = append(discovered, id)
		}
		if ReachedAll(prev, next) {
			reachedAll++
		}
		if JustUnlocked(prev, next) {
			unlocked++
		}
	}))

	s.Discover(99) // invalid, no notification
	s.AttemptSecretUnlock()
	for id := 7; id >= 1; id-- {
		s.Discover(id)
	}
	s.Discover(7) // selection moves from 1 back to 7
	s.Discover(7) // no change at all
	s.AttemptSecretUnlock()
	s.AttemptSecretUnlock()

	if len(discovered) != 7 || discovered[0] != 7 || discovered[6] != 1 {
		t.Fatalf("unexpected discovery order %v", discovered)
	}
	if reachedAll != 1 || unlocked != 1 {
		t.Fatalf("reachedAll=%d unlocked=%d, want 1 and 1", reachedAll, unlocked)
	}
	if calls != 9 {
		t.Fatalf("expected 9 notifications, got %d", calls)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseSecretUnlocked.String() != "secret_unlocked" || Phase(12).String() != "phase(12)" {
		t.Fatal("unexpected phase names")
	}
	if EventCentralBody.String() != "central_body" {
		t.Fatal("unexpected event name")
	}
}
