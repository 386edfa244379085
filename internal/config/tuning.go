package config

import "time"

// Game configuration constants.
// All tunable parameters are centralized here for easy adjustment.

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution; larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Scene
const (
	OrbitTilt         = 0.55  // Vertical squash of orbit ellipses
	OrbitMargin       = 4.0   // Logical units kept free around the outermost orbit
	SunRadius         = 1.5   // In catalog distance units
	SunSpinSpeed      = 0.001 // Radians per tick
	PlanetMinRadius   = 1.6   // Logical units, keeps tiny planets clickable
	PlanetSizeScale   = 2.6   // Logical units per unit of display size
	HoverScale        = 1.3
	HoverLerp         = 0.1
	PickSlack         = 1.5 // Extra logical units around a planet for clicks
	OrbitRingSegments = 64
)

// Landing card
const (
	HugDuration        = 1200 * time.Millisecond
	ConfettiDuration   = 3 * time.Second
	ConfettiPerFrame   = 2
	CelebrationBurst   = 18
	CompletionBurst    = 60
	UnlockBurstPerBody = 12
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 240 // Seconds
	InactivityDisconnectUser = 300 // Seconds
)
