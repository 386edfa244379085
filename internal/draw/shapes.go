package draw

import "math"

// FillCircle fills a disc of logical radius r centred at (cx, cy).
// Pixels are tested in sub-pixel space, so the disc stays round when the
// horizontal and vertical scales differ.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.SetFloat(cx, cy)
		return
	}

	y0 := int(math.Floor(pcy - ry))
	y1 := int(math.Ceil(pcy + ry))
	x0 := int(math.Floor(pcx - rx))
	x1 := int(math.Ceil(pcx + rx))
	for y := y0; y <= y1; y++ {
		dy := (float64(y) - pcy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - pcx) / rx
			if dx*dx+dy*dy <= 1.0 {
				c.setPixel(x, y)
			}
		}
	}
}

// DrawEllipse outlines an axis-aligned ellipse using segments line segments.
// Every other segment is skipped when dashed is set.
func (c *Canvas) DrawEllipse(cx, cy, rx, ry float64, segments int, dashed bool) {
	if segments < 3 {
		segments = 3
	}
	prev := Point{X: cx + rx, Y: cy}
	for i := 1; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		next := Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
		if !dashed || i%2 == 0 {
			c.DrawLine(prev, next)
		}
		prev = next
	}
}
