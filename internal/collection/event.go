package collection

import "fmt"

// EventKind identifies what the render surface saw the pointer hit.
type EventKind int

const (
	EventSelectBody     EventKind = iota // A catalog body was clicked
	EventCentralBody                     // The sun was clicked
	EventClearSelection                  // The info panel was closed
)

func (k EventKind) String() string {
	switch k {
	case EventSelectBody:
		return "select_body"
	case EventCentralBody:
		return "central_body"
	case EventClearSelection:
		return "clear_selection"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a pointer event forwarded from a render surface.
type Event struct {
	Kind   EventKind
	BodyID int // Only for EventSelectBody
}

// SelectBody builds a body click event.
func SelectBody(id int) Event {
	return Event{Kind: EventSelectBody, BodyID: id}
}

// Apply routes an event to the matching operation.
func (s *State) Apply(ev Event) (Snapshot, error) {
	switch ev.Kind {
	case EventSelectBody:
		return s.Discover(ev.BodyID)
	case EventCentralBody:
		snap, _ := s.AttemptSecretUnlock()
		return snap, nil
	case EventClearSelection:
		return s.SelectNone(), nil
	default:
		return s.Snapshot(), fmt.Errorf("%w: unknown event kind %v", ErrInvalidTarget, ev.Kind)
	}
}
