// Package audio synthesises the greeting's sounds with beep: a looping
// landing melody and short cues for discoveries, completion and the secret.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/jardin/internal/collection"
)

const sampleRate = beep.SampleRate(44100)

// Pentatonic steps used to give each body its own chime pitch.
var pentatonic = []int{0, 2, 4, 7, 9, 12, 14, 16, 19}

var landingMelody = []Note{
	{Pitch: 3, Duration: 400 * time.Millisecond},
	{Pitch: 7, Duration: 400 * time.Millisecond},
	{Pitch: 10, Duration: 800 * time.Millisecond},
	{Pitch: 8, Duration: 400 * time.Millisecond},
	{Pitch: 7, Duration: 400 * time.Millisecond},
	{Pitch: 5, Duration: 800 * time.Millisecond},
	{Rest: true, Duration: 400 * time.Millisecond},
	{Pitch: 3, Duration: 400 * time.Millisecond},
	{Pitch: 5, Duration: 400 * time.Millisecond},
	{Pitch: 7, Duration: 400 * time.Millisecond},
	{Pitch: 3, Duration: 1200 * time.Millisecond},
	{Rest: true, Duration: 800 * time.Millisecond},
}

var arpeggio = []Note{
	{Pitch: 3, Duration: 120 * time.Millisecond},
	{Pitch: 7, Duration: 120 * time.Millisecond},
	{Pitch: 10, Duration: 120 * time.Millisecond},
	{Pitch: 15, Duration: 360 * time.Millisecond},
}

var fanfare = []Note{
	{Pitch: 3, Duration: 150 * time.Millisecond},
	{Pitch: 3, Duration: 150 * time.Millisecond},
	{Pitch: 3, Duration: 150 * time.Millisecond},
	{Pitch: 10, Duration: 450 * time.Millisecond},
	{Rest: true, Duration: 100 * time.Millisecond},
	{Pitch: 8, Duration: 150 * time.Millisecond},
	{Pitch: 10, Duration: 150 * time.Millisecond},
	{Pitch: 15, Duration: 900 * time.Millisecond},
}

// Player mixes the greeting's sounds. A Player that was never initialised,
// or whose initialisation failed, silently ignores every call.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	melody      *beep.Ctrl
	volume      float64
	initialized bool
}

// NewPlayer creates a player at the given linear volume (0..1).
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the audio device. Errors leave the player silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	if p.melody != nil {
		p.melody.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.melody = nil
	p.initialized = false
}

// Enabled reports whether sounds reach the device.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *Player) add(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume))
	speaker.Unlock()
}

// PlayMelody starts the landing melody; it is a no-op while already playing.
func (p *Player) PlayMelody() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.melody != nil && !p.melody.Paused {
		return
	}
	p.melody = &beep.Ctrl{Streamer: NewMelodyLoop(landingMelody, WaveTriangle, sampleRate)}
	p.add(newVolume(p.melody, 0.4))
}

// StopMelody stops the landing melody.
func (p *Player) StopMelody() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.melody == nil {
		return
	}
	speaker.Lock()
	p.melody.Paused = true
	speaker.Unlock()
	p.melody = nil
}

// Chime plays a short bell pitched by body id.
func (p *Player) Chime(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.add(chime(id))
}

// Arpeggio plays the all-discovered cue.
func (p *Player) Arpeggio() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.add(Sequence(arpeggio, WaveSine, sampleRate))
}

// Fanfare plays the secret-unlock cue.
func (p *Player) Fanfare() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.add(Sequence(fanfare, WaveTriangle, sampleRate))
}

// Observe implements collection.Observer.
func (p *Player) Observe(prev, next collection.Snapshot) {
	if id, ok := collection.NewlyDiscovered(prev, next); ok {
		p.Chime(id)
	}
	if collection.ReachedAll(prev, next) {
		p.Arpeggio()
	}
	if collection.JustUnlocked(prev, next) {
		p.Fanfare()
	}
}

// pending returns the number of streams still mixing.
func (p *Player) pending() int {
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

func chime(id int) beep.Streamer {
	n := len(pentatonic)
	step := pentatonic[((id-1)%n+n)%n]
	return Sequence([]Note{
		{Pitch: 15 + step, Duration: 90 * time.Millisecond},
		{Pitch: 27 + step, Duration: 260 * time.Millisecond},
	}, WaveSine, sampleRate)
}
