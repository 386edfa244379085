// Package scene is the terminal render surface for the solar system: orbit
// animation, hover easing, pointer hit tests and drawing. It reads collection
// snapshots and never mutates game state.
package scene

import (
	"math"
	"time"

	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/collection"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/draw"
	"github.com/tomz197/jardin/internal/physics"
)

// TargetKind says what a pointer event hit.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetBody
	TargetSun
)

// Target is the result of a hit test.
type Target struct {
	Kind   TargetKind
	BodyID int
}

// Event converts a hit into a game event; misses yield ok=false.
func (t Target) Event() (collection.Event, bool) {
	switch t.Kind {
	case TargetBody:
		return collection.SelectBody(t.BodyID), true
	case TargetSun:
		return collection.Event{Kind: collection.EventCentralBody}, true
	default:
		return collection.Event{}, false
	}
}

// BodyView is a body's projected position for the current frame.
type BodyView struct {
	Body    celestial.Body
	X, Y    float64 // Logical coordinates
	Radius  float64 // Logical radius including hover scale
	Hovered bool
}

// Scene animates the catalog around a central sun.
type Scene struct {
	bodies   []celestial.Body
	angles   []float64
	scales   []float64 // Hover scale per body, eases toward 1 or HoverScale
	colors   []draw.RGB
	hovered  int // Index into bodies, -1 when none
	sunAngle float64

	centerX, centerY float64
	unit             float64 // Logical units per catalog distance unit
}

// New lays the catalog out in a view of the given logical size.
func New(reg *celestial.Registry, viewWidth, viewHeight float64) *Scene {
	bodies := reg.All()
	s := &Scene{
		bodies:  bodies,
		angles:  make([]float64, len(bodies)),
		scales:  make([]float64, len(bodies)),
		colors:  make([]draw.RGB, len(bodies)),
		hovered: -1,
		centerX: viewWidth / 2,
		centerY: viewHeight / 2,
	}

	halfW := viewWidth/2 - config.OrbitMargin
	halfH := (viewHeight/2 - config.OrbitMargin) / config.OrbitTilt
	s.unit = math.Min(halfW, halfH) / reg.MaxRadius()

	for i, b := range bodies {
		s.scales[i] = 1
		s.colors[i] = draw.ParseHex(b.Color)
		// Spread starting positions so planets do not line up
		s.angles[i] = float64(i) * 2.4
	}
	return s
}

// Tick advances orbits and hover easing by dt. Angular speeds are defined per
// 60 Hz tick, so dt is converted to fractional ticks.
func (s *Scene) Tick(dt time.Duration) {
	frames := dt.Seconds() * 60
	for i, b := range s.bodies {
		s.angles[i] = physics.WrapAngle(s.angles[i] + b.AngularSpeed*frames)
		target := 1.0
		if i == s.hovered {
			target = config.HoverScale
		}
		s.scales[i] = physics.LerpFrames(s.scales[i], target, config.HoverLerp, frames)
	}
	s.sunAngle = physics.WrapAngle(s.sunAngle + config.SunSpinSpeed*frames)
}

// Hover updates which body is under the pointer (logical coordinates).
func (s *Scene) Hover(x, y float64, valid bool) {
	s.hovered = -1
	if !valid {
		return
	}
	if t := s.Pick(x, y); t.Kind == TargetBody {
		for i, b := range s.bodies {
			if b.ID == t.BodyID {
				s.hovered = i
			}
		}
	}
}

// Hovered returns the hovered body id, if any.
func (s *Scene) Hovered() (int, bool) {
	if s.hovered < 0 {
		return 0, false
	}
	return s.bodies[s.hovered].ID, true
}

// Pick hit-tests a logical point. Bodies win over the sun; among bodies the
// nearest centre wins.
func (s *Scene) Pick(x, y float64) Target {
	best := -1
	bestDist := math.Inf(1)
	for i := range s.bodies {
		bx, by := s.position(i)
		r := s.radius(i) + config.PickSlack
		if !physics.PointInCircle(x, y, bx, by, r) {
			continue
		}
		if d := physics.DistanceSquared(x, y, bx, by); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return Target{Kind: TargetBody, BodyID: s.bodies[best].ID}
	}
	if physics.PointInCircle(x, y, s.centerX, s.centerY, s.sunRadius()+1) {
		return Target{Kind: TargetSun}
	}
	return Target{}
}

// Views returns every body's projected position for this frame.
func (s *Scene) Views() []BodyView {
	out := make([]BodyView, len(s.bodies))
	for i, b := range s.bodies {
		x, y := s.position(i)
		out[i] = BodyView{Body: b, X: x, Y: y, Radius: s.radius(i), Hovered: i == s.hovered}
	}
	return out
}

// View returns the projected position of one body.
func (s *Scene) View(id int) (BodyView, bool) {
	for i, b := range s.bodies {
		if b.ID == id {
			x, y := s.position(i)
			return BodyView{Body: b, X: x, Y: y, Radius: s.radius(i), Hovered: i == s.hovered}, true
		}
	}
	return BodyView{}, false
}

// Center returns the sun position.
func (s *Scene) Center() (x, y float64) {
	return s.centerX, s.centerY
}

// Color returns the display colour of a body.
func (s *Scene) Color(id int) draw.RGB {
	for i, b := range s.bodies {
		if b.ID == id {
			return s.colors[i]
		}
	}
	return draw.RGB{255, 255, 255}
}

func (s *Scene) position(i int) (x, y float64) {
	return physics.OrbitPosition(s.centerX, s.centerY, s.bodies[i].OrbitalRadius*s.unit, s.angles[i], config.OrbitTilt)
}

func (s *Scene) radius(i int) float64 {
	r := math.Max(config.PlanetMinRadius, s.bodies[i].DisplaySize*config.PlanetSizeScale)
	return r * s.scales[i]
}

func (s *Scene) sunRadius() float64 {
	return config.SunRadius * s.unit
}

var (
	orbitColor      = draw.RGB{70, 70, 90}
	orbitFoundColor = draw.RGB{150, 110, 130}
	sunColor        = draw.RGB{253, 184, 19}
	sunUnlockColor  = draw.RGB{255, 120, 150}
	sunSpotColor    = draw.RGB{230, 140, 10}
	selectionColor  = draw.RGB{255, 179, 193}
)

// Draw renders orbits, sun and planets for snap onto c.
func (s *Scene) Draw(c *draw.Canvas, snap collection.Snapshot) {
	for i, b := range s.bodies {
		r := b.OrbitalRadius * s.unit
		if snap.IsDiscovered(b.ID) {
			c.SetColor(orbitFoundColor)
		} else {
			c.SetColor(orbitColor)
		}
		c.DrawEllipse(s.centerX, s.centerY, r, r*config.OrbitTilt, config.OrbitRingSegments+i*8, true)
	}

	sun := sunColor
	if snap.SecretUnlocked {
		sun = sunUnlockColor
	}
	c.SetColor(sun)
	c.FillCircle(s.centerX, s.centerY, s.sunRadius())
	// A spot on the surface shows the sun's slow spin
	c.SetColor(sunSpotColor)
	c.FillCircle(s.centerX+math.Cos(s.sunAngle)*s.sunRadius()*0.5, s.centerY, s.sunRadius()*0.25)

	for i, b := range s.bodies {
		x, y := s.position(i)
		r := s.radius(i)
		col := s.colors[i]
		if !snap.IsDiscovered(b.ID) {
			col = col.Scale(0.45)
		}
		if i == s.hovered {
			col = col.Scale(1.3)
		}
		c.SetColor(col)
		c.FillCircle(x, y, r)

		if snap.IsSelected(b.ID) {
			c.SetColor(selectionColor)
			c.DrawEllipse(x, y, r+1.5, r+1.5, 24, false)
		}
	}
}
