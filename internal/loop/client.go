// Package loop runs one terminal session: the landing card, the solar system
// game and the shutdown screen, in an input → update → draw cycle.
package loop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/jardin/internal/audio"
	"github.com/tomz197/jardin/internal/celestial"
	"github.com/tomz197/jardin/internal/collection"
	"github.com/tomz197/jardin/internal/config"
	"github.com/tomz197/jardin/internal/draw"
	"github.com/tomz197/jardin/internal/greeting"
	"github.com/tomz197/jardin/internal/hub"
	"github.com/tomz197/jardin/internal/input"
	"github.com/tomz197/jardin/internal/scene"
)

const noticeDuration = 4 * time.Second

// Client handles rendering and input for a single connection.
type Client struct {
	hub          hub.SessionHub
	handle       *hub.Handle
	state        *SessionState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	strict       bool

	registry *celestial.Registry
	game     *collection.State // Non-nil only on the space screen
	scene    *scene.Scene
	emitter  *scene.Emitter
	confetti *scene.Confetti
	flower   scene.Flower
	player   *audio.Player
	buttons  buttonSet
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Registry     *celestial.Registry // Defaults to the embedded catalog
	Logger       *log.Logger
	Strict       bool          // Invalid targets end the session instead of being ignored
	Player       *audio.Player // Nil plays nothing
	Rand         *rand.Rand
}

// NewClient creates a new client registered with the given hub.
func NewClient(h hub.SessionHub, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	registry := opts.Registry
	if registry == nil {
		registry = celestial.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == nil {
		player = audio.NewPlayer(0)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	emitter := scene.NewEmitter(rng)

	return &Client{
		hub:          h,
		handle:       h.Register(opts.Username),
		state:        NewSessionState(greeting.PickPhrase(rng)),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger.With("user", opts.Username),
		strict:       opts.Strict,
		registry:     registry,
		scene:        scene.New(registry, config.ViewWidth, config.ViewHeight),
		emitter:      emitter,
		confetti:     scene.NewConfetti(emitter, config.ViewWidth, config.ViewHeight),
		player:       player,
	}
}

// Run starts the client loop. Blocks until the client disconnects or the
// server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		c.player.StopMelody()
		c.hub.Unregister(c.handle.ID)
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
		draw.ClearScreen(c.writer)
	}()

	c.player.PlayMelody()
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processHubEvents()
		c.updateScreen()

		var err error
		switch c.state.Screen {
		case ScreenLanding:
			c.updateLanding()
		case ScreenSpace:
			err = c.updateSpace()
		case ScreenShutdown:
			c.updateShutdown()
		}
		if err != nil {
			return err
		}
		c.updateEffects()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Active() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processHubEvents handles events from the hub.
func (c *Client) processHubEvents() {
	for {
		select {
		case event, ok := <-c.handle.Events:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case hub.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case hub.EventSecretFound:
				c.state.notice = fmt.Sprintf("%s encontró su mensaje secreto", event.Username)
				c.state.noticeTimer = noticeDuration
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// clickedAction returns the first button clicked this frame.
func (c *Client) clickedAction() action {
	for _, click := range c.state.Input.Clicks {
		col, row := c.canvasClick(click)
		if a := c.buttons.hit(col, row); a != actionNone {
			return a
		}
	}
	return actionNone
}

// updateLanding handles the flower card.
func (c *Client) updateLanding() {
	in := c.state.Input
	a := c.clickedAction()
	switch {
	case a == actionHug || in.Enter || in.Space || in.Key('a'):
		c.hug()
	case a == actionNote || in.Key('n'):
		c.state.ShowNote = !c.state.ShowNote
	case a == actionSpace || in.Key('s'):
		c.enterSpace()
	}
}

// hug shows the banner and fires the confetti cannons.
func (c *Client) hug() {
	c.state.hugTimer = config.HugDuration
	c.confetti.Start()
}

// enterSpace starts a fresh game.
func (c *Client) enterSpace() {
	c.game = collection.New(c.registry)
	c.game.Subscribe(scene.NewCelebration(c.scene, c.emitter))
	c.game.Subscribe(c.player)
	c.game.Subscribe(collection.ObserverFunc(func(prev, next collection.Snapshot) {
		if collection.JustUnlocked(prev, next) {
			c.hub.RecordCompletion(c.handle.ID)
		}
	}))
	c.emitter.Reset()
	c.player.StopMelody()
	c.state.Screen = ScreenSpace
	c.logger.Debug("entered space")
}

// leaveSpace discards the game and returns to the landing card.
func (c *Client) leaveSpace() {
	c.game = nil
	c.emitter.Reset()
	c.flower.Reset()
	c.player.PlayMelody()
	c.state.Screen = ScreenLanding
}

// updateSpace routes clicks and keys to the game. Buttons are hit-tested
// before the scene.
func (c *Client) updateSpace() error {
	in := c.state.Input

	if in.Pointer.Valid {
		col, row := c.canvasClick(input.Click{Col: in.Pointer.Col, Row: in.Pointer.Row})
		x, y := c.canvas.TerminalToLogical(col, row)
		c.scene.Hover(x, y, true)
	} else {
		c.scene.Hover(0, 0, false)
	}

	for _, click := range in.Clicks {
		col, row := c.canvasClick(click)
		switch c.buttons.hit(col, row) {
		case actionBack:
			c.leaveSpace()
			return nil
		case actionClose:
			if err := c.apply(collection.Event{Kind: collection.EventClearSelection}); err != nil {
				return err
			}
			continue
		}
		x, y := c.canvas.TerminalToLogical(col, row)
		if ev, ok := c.scene.Pick(x, y).Event(); ok {
			if err := c.apply(ev); err != nil {
				return err
			}
		}
	}

	switch {
	case in.Key('v') || in.Backspace:
		c.leaveSpace()
	case in.Escape:
		return c.apply(collection.Event{Kind: collection.EventClearSelection})
	case in.Number == 0:
		return c.apply(collection.Event{Kind: collection.EventCentralBody})
	case in.Number > 0:
		return c.apply(collection.SelectBody(in.Number))
	}
	return nil
}

// apply feeds one event to the game. Invalid targets are logged and dropped
// unless the client is strict.
func (c *Client) apply(ev collection.Event) error {
	if _, err := c.game.Apply(ev); err != nil {
		if errors.Is(err, collection.ErrInvalidTarget) && !c.strict {
			c.logger.Warn("ignoring event", "kind", ev.Kind, "body", ev.BodyID, "err", err)
			return nil
		}
		return fmt.Errorf("apply %s: %w", ev.Kind, err)
	}
	return nil
}

// updateShutdown handles the shutdown screen countdown.
func (c *Client) updateShutdown() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// updateEffects advances animations shared by every screen.
func (c *Client) updateEffects() {
	dt := c.state.delta
	if c.state.hugTimer > 0 {
		c.state.hugTimer -= dt
	}
	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= dt
	}
	c.flower.Update(dt)
	c.scene.Tick(dt)
	c.confetti.Update(dt)
	c.emitter.Update(dt)
}
