package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/jardin/internal/collection"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/draw"
	"github.com/tomz197/jardin/internal/greeting"
)

var (
	white = draw.RGB{255, 255, 255}

	styleTitle    = draw.ColorBold + draw.ColorPink
	stylePhrase   = draw.ColorItalic + draw.ColorLightPink
	styleMuted    = draw.ColorDim + draw.ColorLightPink
	styleHug      = draw.ColorBold + white.Foreground() + draw.RGB{255, 77, 109}.Background()
	styleNoteBtn  = draw.ColorLightPink
	styleSpaceBtn = draw.ColorBold + white.Foreground() + draw.RGB{120, 90, 220}.Background()
	styleBackBtn  = white.Foreground() + draw.RGB{60, 60, 90}.Background()
	styleBar      = draw.ColorPink
	styleSecret   = draw.ColorBold + draw.ColorGold
)

// currentLayout describes the static text that this frame will draw.
func (c *Client) currentLayout() layout {
	l := layout{
		screen:   c.state.Screen,
		inactive: c.state.isInactive,
		note:     c.state.ShowNote,
		hugging:  c.state.Hugging(),
		selected: -1,
		notice:   c.state.noticeTimer > 0,
		width:    c.canvas.TerminalWidth(),
		height:   c.canvas.TerminalHeight(),
	}
	if c.game != nil {
		snap := c.game.Snapshot()
		if snap.SelectedID != nil {
			l.selected = *snap.SelectedID
		}
		l.allFound = snap.AllDiscovered()
		l.unlocked = snap.SecretUnlocked
	}
	return l
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// Static overlays are not tracked by the canvas diff, so any layout
	// change clears the terminal.
	if l := c.currentLayout(); l != c.state.prevLayout {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevLayout = l
	}

	c.canvas.Clear()
	c.buttons = c.buttons[:0]

	switch c.state.Screen {
	case ScreenLanding:
		c.drawLandingCanvas()
	case ScreenSpace:
		c.scene.Draw(c.canvas, c.game.Snapshot())
	}
	c.emitter.Draw(c.canvas)

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenLanding:
		c.drawLanding(termWidth, termHeight)
	case ScreenSpace:
		c.drawSpaceHUD(termWidth, termHeight)
	}

	if c.state.noticeTimer > 0 {
		c.chunkWriter.WriteCentered(centerX, termHeight-1, styleMuted, c.state.notice)
	}
}

// flowerAnchor is the logical position and size of the landing flower.
func (c *Client) flowerAnchor() (x, y, size float64) {
	return config.ViewWidth / 2, config.ViewHeight * 0.3, config.ViewHeight * 0.09
}

// drawLandingCanvas draws the flower behind the card text.
func (c *Client) drawLandingCanvas() {
	x, y, size := c.flowerAnchor()
	c.flower.Draw(c.canvas, x, y, size, c.state.Hugging())
}

// drawLanding draws the greeting card text and buttons.
func (c *Client) drawLanding(termWidth, termHeight int) {
	cw := c.chunkWriter
	centerX := termWidth / 2

	cw.WriteCentered(centerX, 2, styleTitle, greeting.Title)
	cw.WriteCentered(centerX, 3, styleMuted, greeting.Subtitle)

	_, fy, size := c.flowerAnchor()
	_, row := c.canvas.LogicalToTerminal(0, fy+size*2.8)
	row = max(row, 6)

	lines := draw.Wrap(`"`+c.state.Phrase+`"`, min(termWidth-4, 48))
	for i, line := range lines {
		cw.WriteCentered(centerX, row+i, stylePhrase, line)
	}
	row += len(lines) + 1

	if c.state.Hugging() {
		cw.WriteCentered(centerX, row, styleTitle, greeting.HugBanner)
	}
	row++

	c.drawButton(centerX, row, styleHug, "♥ "+greeting.HugButton, actionHug)
	noteLabel := greeting.NoteButton
	if c.state.ShowNote {
		noteLabel = greeting.NoteCloseLabel
	}
	c.drawButton(centerX, row+2, styleNoteBtn, noteLabel, actionNote)
	c.drawButton(centerX, row+4, styleSpaceBtn, "» "+greeting.SpaceButton, actionSpace)
	row += 6

	if c.state.ShowNote {
		for i, line := range draw.Wrap(greeting.Note, min(termWidth-6, 60)) {
			if row+i >= termHeight-1 {
				break
			}
			cw.WriteStyledAt(centerX-min(termWidth-6, 60)/2, row+i, stylePhrase, line)
		}
	}

	cw.WriteCentered(centerX, termHeight, styleMuted, greeting.Footer)

	stats := c.hub.Stats()
	statsText := fmt.Sprintf("En línea: %-4d", stats.Online)
	cw.WriteStyledAt(termWidth-draw.TextWidth(statsText)-1, termHeight, draw.ColorGray, statsText)

	keys := "Enter abrazo · N nota · S espacio · Q salir"
	cw.WriteStyledAt(2, termHeight, draw.ColorGray, keys)
}

// drawSpaceHUD draws the score, progress, labels and panels.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawSpaceHUD(termWidth, termHeight int) {
	cw := c.chunkWriter
	snap := c.game.Snapshot()
	centerX := termWidth / 2

	cw.WriteStyledAt(2, 1, styleTitle, fmt.Sprintf("Puntos: %-5d", snap.Score))

	progress := fmt.Sprintf("Descubiertos: %d/%d", snap.Discovered(), snap.Total)
	cw.WriteAt(termWidth-draw.TextWidth(progress)-1, 1, progress)
	const barWidth = 20
	filled := int(snap.Fraction() * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	cw.WriteStyledAt(termWidth-barWidth-1, 2, styleBar, bar)

	c.drawButton(12, 3, styleBackBtn, "« "+greeting.BackButton, actionBack)

	c.drawBodyLabels(snap)

	switch {
	case snap.SecretUnlocked:
		c.drawSecret(termWidth, termHeight)
	case snap.SelectedID != nil:
		c.drawInfoPanel(*snap.SelectedID, termWidth, termHeight)
	case snap.AllDiscovered():
		cw.WriteCentered(centerX, termHeight, styleSecret, greeting.AllFoundHint)
	default:
		cw.WriteCentered(centerX, termHeight, draw.ColorGray, greeting.Instructions)
	}
}

// drawBodyLabels names the hovered and selected bodies below their planets.
// Marks the drawn cells dirty so the canvas cleans them up as planets move.
func (c *Client) drawBodyLabels(snap collection.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for _, v := range c.scene.Views() {
		if !v.Hovered && !snap.IsSelected(v.Body.ID) {
			continue
		}
		label := "?"
		if snap.IsDiscovered(v.Body.ID) {
			label = v.Body.Name
		}
		label = fmt.Sprintf("%d·%s", v.Body.ID, label)

		col, row := c.canvas.LogicalToTerminal(v.X, v.Y+v.Radius+2)
		width := draw.TextWidth(label)
		col -= width / 2
		if row < 1 || row > termHeight || col < 1 || col+width > termWidth {
			continue
		}
		c.chunkWriter.WriteStyledAt(col, row, c.scene.Color(v.Body.ID).Foreground(), label)
		c.canvas.MarkTextDirty(col, row, width)
	}
}

// drawInfoPanel shows the selected body's name and phrase at the bottom.
func (c *Client) drawInfoPanel(id, termWidth, termHeight int) {
	body, err := c.registry.Get(id)
	if err != nil {
		return
	}
	cw := c.chunkWriter
	width := min(termWidth-4, 56)
	left := (termWidth-width)/2 + 1
	lines := draw.Wrap(body.PayloadText, width-4)
	top := termHeight - len(lines) - 4

	c.drawBox(left, top, width, len(lines)+4)
	cw.WriteStyledAt(left+2, top+1, draw.ColorBold+draw.ParseHex(body.Color).Foreground(), body.Name)
	for i, line := range lines {
		cw.WriteStyledAt(left+2, top+2+i, stylePhrase, line)
	}
	c.drawButton(left+width-8, top+1, styleBackBtn, greeting.CloseButton, actionClose)
}

// drawSecret shows the unlocked message over the scene.
func (c *Client) drawSecret(termWidth, termHeight int) {
	cw := c.chunkWriter
	width := min(termWidth-4, 60)
	left := (termWidth-width)/2 + 1
	lines := draw.Wrap(c.registry.Secret(), width-6)
	height := len(lines) + 6
	top := max((termHeight-height)/2, 4)

	c.drawBox(left, top, width, height)
	centerX := left + width/2
	cw.WriteCentered(centerX, top+1, styleSecret, "✦ "+greeting.SecretTitle+" ✦")
	for i, line := range lines {
		cw.WriteCentered(centerX, top+3+i, stylePhrase, line)
	}
	c.drawButton(centerX, top+height-2, styleBackBtn, "« "+greeting.BackButton, actionBack)
}

// drawBox draws a filled rounded box so the scene does not show through.
func (c *Client) drawBox(left, top, width, height int) {
	cw := c.chunkWriter
	inner := strings.Repeat(" ", width-2)
	cw.WriteStyledAt(left, top, draw.ColorPink, "╭"+strings.Repeat("─", width-2)+"╮")
	for r := 1; r < height-1; r++ {
		cw.WriteStyledAt(left, top+r, draw.ColorPink, "│"+inner+"│")
	}
	cw.WriteStyledAt(left, top+height-1, draw.ColorPink, "╰"+strings.Repeat("─", width-2)+"╯")
	for r := 0; r < height; r++ {
		c.canvas.MarkTextDirty(left, top+r, width)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, styleTitle, "¿Sigues ahí?")

	msg := fmt.Sprintf(
		"Llevas un rato sin moverte. Te desconectaremos en %d segundos.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, "", msg)
	cw.WriteCentered(centerX, centerY+2, draw.ColorGray, "Pulsa cualquier tecla para seguir")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, styleTitle, "EL SERVIDOR SE ESTÁ APAGANDO")
	cw.WriteCentered(centerX, centerY-1, "", "El jardín se reinicia por mantenimiento.")
	cw.WriteCentered(centerX, centerY, "", "Vuelve a conectarte en un momento.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, "", fmt.Sprintf("Desconectando en %d segundos...", remaining))
	cw.WriteCentered(centerX, centerY+4, draw.ColorGray, "Pulsa Q para salir ahora")
}
