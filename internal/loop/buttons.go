package loop

import (
	"github.com/tomz197/jardin/internal/draw"
	"github.com/tomz197/jardin/internal/input"
)

// action is what a button does when clicked.
type action int

const (
	actionNone action = iota
	actionHug
	actionNote
	actionSpace
	actionBack
	actionClose
)

// button is a clickable one-row label, in 1-based canvas coordinates.
type button struct {
	col, row int
	width    int
	action   action
}

func (b button) contains(col, row int) bool {
	return row == b.row && col >= b.col && col < b.col+b.width
}

// buttonSet collects the buttons drawn in a frame.
type buttonSet []button

// hit returns the action under (col, row), if any.
func (bs buttonSet) hit(col, row int) action {
	for _, b := range bs {
		if b.contains(col, row) {
			return b.action
		}
	}
	return actionNone
}

// drawButton writes a padded label centred on centerX and registers it.
func (c *Client) drawButton(centerX, row int, style, label string, a action) {
	text := "  " + label + "  "
	col := c.chunkWriter.WriteCentered(centerX, row, style, text)
	c.buttons = append(c.buttons, button{col: col, row: row, width: draw.TextWidth(text), action: a})
}

// canvasClick converts an absolute terminal click into canvas coordinates.
func (c *Client) canvasClick(click input.Click) (col, row int) {
	return click.Col - c.canvas.OffsetCol(), click.Row - c.canvas.OffsetRow()
}
