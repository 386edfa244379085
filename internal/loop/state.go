package loop

import (
	"time"

	"github.com/tomz197/jardin/internal/input"
)

// Screen is the session's current view.
type Screen int

const (
	ScreenLanding  Screen = iota // Flower card
	ScreenSpace                  // Solar system game
	ScreenShutdown               // Server is shutting down
)

// SessionState holds per-session UI state. The game itself lives in a
// collection.State owned by the Client while the space screen is open.
type SessionState struct {
	Input         input.Input
	Screen        Screen
	Running       bool
	Phrase        string // Picked once per session
	ShowNote      bool
	delta         time.Duration
	hugTimer      time.Duration // Remaining hug banner time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool
	notice        string // Hub announcement
	noticeTimer   time.Duration
	prevLayout    layout
}

// NewSessionState creates a state on the landing screen.
func NewSessionState(phrase string) *SessionState {
	return &SessionState{
		Screen:  ScreenLanding,
		Running: true,
		Phrase:  phrase,
		prevLayout: layout{
			screen:   -1,
			selected: -1,
		},
	}
}

// Hugging reports whether the hug banner is showing.
func (s *SessionState) Hugging() bool {
	return s.hugTimer > 0
}

// layout captures everything that changes which static text is on screen.
// A change triggers a full clear so stale overlays do not persist.
type layout struct {
	screen   Screen
	inactive bool
	note     bool
	hugging  bool
	selected int // -1 when nothing is selected
	allFound bool
	unlocked bool
	notice   bool
	width    int
	height   int
}
