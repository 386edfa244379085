package scene

import (
	"math"
	"time"

	"github.com/tomz197/jardin/internal/draw"
	"github.com/tomz197/jardin/internal/physics"
)

const (
	stemGrowTime = 2200 * time.Millisecond
	leafPopTime  = 2500 * time.Millisecond
	bloomTime    = 2800 * time.Millisecond
	petalCount   = 8
)

var (
	petalColor  = draw.RGB{255, 77, 109}
	petalInner  = draw.RGB{255, 117, 143}
	centerColor = draw.RGB{255, 202, 58}
	stemColor   = draw.RGB{64, 145, 108}
	leafColor   = draw.RGB{45, 106, 79}
)

// Flower is the animated flower on the landing card: the stem grows, the
// leaves pop out, then the head blooms with a slight overshoot.
type Flower struct {
	age time.Duration
}

// Update advances the animation.
func (f *Flower) Update(dt time.Duration) {
	f.age += dt
}

// Reset replays the animation from the start.
func (f *Flower) Reset() {
	f.age = 0
}

// Bloomed reports whether the animation has finished.
func (f *Flower) Bloomed() bool {
	return f.age >= bloomTime
}

// Draw renders the flower with its head at (cx, cy). size is the petal
// length in logical units; hugging enlarges the head a little.
func (f *Flower) Draw(c *draw.Canvas, cx, cy, size float64, hugging bool) {
	grow := physics.EaseOutCubic(f.age.Seconds() / stemGrowTime.Seconds())
	if stemLen := size * 2.6 * grow; stemLen > 0 {
		c.SetColor(stemColor)
		c.DrawLine(draw.Point{X: cx, Y: cy}, draw.Point{X: cx, Y: cy + stemLen})
		c.DrawLine(draw.Point{X: cx + 1, Y: cy}, draw.Point{X: cx + 1, Y: cy + stemLen})
	}

	// Leaves appear in the last third of their animation
	leafT := (f.age.Seconds()/leafPopTime.Seconds() - 0.65) / 0.35
	if leaf := physics.EaseOutCubic(leafT); leaf > 0 {
		c.SetColor(leafColor)
		drawLeaf(c, cx, cy+size*1.2, -1, size*0.7*leaf)
		drawLeaf(c, cx+1, cy+size*1.9, 1, size*0.7*leaf)
	}

	bloom := physics.EaseOutBack(f.age.Seconds() / bloomTime.Seconds())
	if bloom <= 0 {
		return
	}
	if hugging {
		bloom *= 1.05
	}
	length := size * bloom
	spin := (1 - physics.Clamp01(f.age.Seconds()/bloomTime.Seconds())) * -math.Pi / 4
	for i := 0; i < petalCount; i++ {
		a := spin + float64(i)*2*math.Pi/petalCount
		drawPetal(c, cx, cy, a, length)
	}
	c.SetColor(centerColor)
	c.FillCircle(cx, cy, length*0.4)
}

// drawPetal fills a teardrop from the centre outward along angle a.
func drawPetal(c *draw.Canvas, cx, cy, a, length float64) {
	const steps = 10
	for s := 1; s <= steps; s++ {
		t := float64(s) / steps
		r := length * 0.32 * math.Sin(math.Pi*(0.15+0.7*t))
		if t < 0.5 {
			c.SetColor(petalInner)
		} else {
			c.SetColor(petalColor)
		}
		c.FillCircle(cx+math.Cos(a)*length*t, cy+math.Sin(a)*length*t, r)
	}
}

// drawLeaf draws a small leaf leaving the stem toward dir (-1 left, 1 right).
func drawLeaf(c *draw.Canvas, x, y, dir, length float64) {
	const steps = 6
	for s := 1; s <= steps; s++ {
		t := float64(s) / steps
		r := length * 0.25 * math.Sin(math.Pi*t)
		c.FillCircle(x+dir*length*t, y-length*0.4*t, r)
	}
}
