package scene

import (
	"math"
	"time"

	"github.com/tomz197/jardin/internal/collection"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/draw"
)

var (
	// Pink and gold confetti used by hugs and the final unlock.
	confettiColors = []draw.RGB{
		{255, 77, 109},
		{255, 143, 163},
		{255, 179, 193},
		{255, 215, 0},
		{255, 240, 245},
	}
	completionColors = []draw.RGB{
		{255, 215, 0},
		{255, 255, 255},
		{79, 208, 231},
		{255, 143, 163},
	}
)

// Celebration turns collection transitions into particle effects. It is a
// collection.Observer and must be driven from the session goroutine.
type Celebration struct {
	scene   *Scene
	emitter *Emitter
}

// NewCelebration creates effects for sc drawn with e.
func NewCelebration(sc *Scene, e *Emitter) *Celebration {
	return &Celebration{scene: sc, emitter: e}
}

// Observe implements collection.Observer.
func (c *Celebration) Observe(prev, next collection.Snapshot) {
	if id, ok := collection.NewlyDiscovered(prev, next); ok {
		if v, found := c.scene.View(id); found {
			col := c.scene.Color(id)
			c.emitter.Burst(v.X, v.Y, config.CelebrationBurst, 18, 0.9, []draw.RGB{col, col.Scale(1.4), {255, 255, 255}})
		}
	}
	if collection.ReachedAll(prev, next) {
		cx, cy := c.scene.Center()
		c.emitter.Burst(cx, cy, config.CompletionBurst, 30, 1.6, completionColors)
	}
	if collection.JustUnlocked(prev, next) {
		cx, cy := c.scene.Center()
		c.emitter.Burst(cx, cy, config.CompletionBurst, 40, 2.2, confettiColors)
		for _, v := range c.scene.Views() {
			c.emitter.Burst(v.X, v.Y, config.UnlockBurstPerBody, 12, 1.4, []draw.RGB{c.scene.Color(v.Body.ID), {255, 77, 109}})
		}
	}
}

// Confetti is the hug effect: two cannons firing inward from the bottom
// corners of the view for a fixed duration.
type Confetti struct {
	emitter   *Emitter
	width     float64
	height    float64
	remaining time.Duration
}

// NewConfetti creates a confetti effect over a view of the given size.
func NewConfetti(e *Emitter, width, height float64) *Confetti {
	return &Confetti{emitter: e, width: width, height: height}
}

// Start (re)starts the effect.
func (c *Confetti) Start() {
	c.remaining = config.ConfettiDuration
}

// Active reports whether cannons are still firing.
func (c *Confetti) Active() bool {
	return c.remaining > 0
}

// Update fires cannons for this frame. Particles are advanced by the emitter.
func (c *Confetti) Update(dt time.Duration) {
	if c.remaining <= 0 {
		return
	}
	c.remaining -= dt
	c.emitter.Cannon(0, c.height, -math.Pi/3, 0.9, 70, config.ConfettiPerFrame, confettiColors)
	c.emitter.Cannon(c.width, c.height, -2*math.Pi/3, 0.9, 70, config.ConfettiPerFrame, confettiColors)
}
