package scene

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/jardin/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived confetti piece.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 60 Hz frame (1.0 = no drag)
	Gravity     float64 // Downward acceleration, logical units/s²
	Color       draw.RGB
}

// Emitter owns a set of live particles.
type Emitter struct {
	particles []*Particle
	rng       *rand.Rand
}

// NewEmitter creates an emitter. A nil rng uses a time-seeded source.
func NewEmitter(rng *rand.Rand) *Emitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Emitter{rng: rng}
}

func (e *Emitter) spawn(x, y, vx, vy, lifetime float64, color draw.RGB) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X: x, Y: y, VX: vx, VY: vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
		Color:       color,
	}
	e.particles = append(e.particles, p)
	return p
}

// Burst creates particles in a circular burst pattern.
func (e *Emitter) Burst(x, y float64, count int, speed, lifetime float64, colors []draw.RGB) {
	if len(colors) == 0 {
		return
	}
	for i := 0; i < count; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + e.rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + e.rng.Float64()*0.5)
		e.spawn(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, colors[e.rng.Intn(len(colors))])
	}
}

// Cannon fires count particles from (x, y) toward angle (radians, screen
// coordinates, so -π/2 is up) within spread, falling under gravity.
func (e *Emitter) Cannon(x, y, angle, spread, speed float64, count int, colors []draw.RGB) {
	if len(colors) == 0 {
		return
	}
	for i := 0; i < count; i++ {
		a := angle + (e.rng.Float64()-0.5)*spread
		spd := speed * (0.7 + e.rng.Float64()*0.6)
		p := e.spawn(x, y, math.Cos(a)*spd, math.Sin(a)*spd, 1.5+e.rng.Float64(), colors[e.rng.Intn(len(colors))])
		p.Drag = 0.97
		p.Gravity = 40
	}
}

// Update moves particles and drops the expired ones.
func (e *Emitter) Update(dt time.Duration) {
	sec := dt.Seconds()
	kept := e.particles[:0]
	for _, p := range e.particles {
		p.Lifetime -= sec
		if p.Lifetime <= 0 {
			particlePool.Put(p)
			continue
		}
		dragFactor := math.Pow(p.Drag, sec*60) // Normalize drag to ~60fps
		p.VX *= dragFactor
		p.VY = p.VY*dragFactor + p.Gravity*sec
		p.X += p.VX * sec
		p.Y += p.VY * sec
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept
}

// Draw renders live particles; pieces in the last quarter of their life are skipped.
func (e *Emitter) Draw(c *draw.Canvas) {
	for _, p := range e.particles {
		if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
			continue
		}
		c.SetColor(p.Color)
		c.SetFloat(p.X, p.Y)
	}
}

// Len returns the number of live particles.
func (e *Emitter) Len() int {
	return len(e.particles)
}

// Reset drops every particle.
func (e *Emitter) Reset() {
	for _, p := range e.particles {
		particlePool.Put(p)
	}
	clear(e.particles)
	e.particles = e.particles[:0]
}
