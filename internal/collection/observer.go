package collection

// Observer is notified after every operation that changed the state.
// Observers must not call back into the State.
type Observer interface {
	Observe(prev, next Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(prev, next Snapshot)

// Observe calls f(prev, next).
func (f ObserverFunc) Observe(prev, next Snapshot) {
	f(prev, next)
}

// Subscribe registers o. Observers are called in registration order.
func (s *State) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// NewlyDiscovered returns the body that next discovered and prev did not.
func NewlyDiscovered(prev, next Snapshot) (int, bool) {
	if next.Discovered() <= prev.Discovered() {
		return 0, false
	}
	for _, id := range next.DiscoveredIDs {
		if !prev.IsDiscovered(id) {
			return id, true
		}
	}
	return 0, false
}

// ReachedAll reports the transition into all-discovered.
func ReachedAll(prev, next Snapshot) bool {
	return !prev.AllDiscovered() && next.AllDiscovered()
}

// JustUnlocked reports the secret-unlock transition.
func JustUnlocked(prev, next Snapshot) bool {
	return !prev.SecretUnlocked && next.SecretUnlocked
}
