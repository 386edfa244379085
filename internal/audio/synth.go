package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSquare
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator that stops after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := waveAt(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveAt evaluates one period of wave at phase in [0, 1).
func waveAt(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Frequency returns the equal-tempered pitch semitones away from A4.
func Frequency(semitones int) float64 {
	return 440 * math.Pow(2, float64(semitones)/12)
}

// Note is one step of a sequence. A zero Pitch with Rest set is silence.
type Note struct {
	Pitch    int // Semitones from A4
	Duration time.Duration
	Rest     bool
}

// tone renders a single enveloped note with a soft octave overtone.
func tone(n Note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	if n.Rest {
		return beep.Silence(rate.N(n.Duration))
	}
	f := Frequency(n.Pitch)
	release := n.Duration / 2
	fund := NewEnvelope(NewOscillator(f, n.Duration, wave, rate), n.Duration, 8*time.Millisecond, release, rate)
	over := NewEnvelope(NewOscillator(2*f, n.Duration, WaveSine, rate), n.Duration, 8*time.Millisecond, release/2, rate)
	return beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.2))
}

// Sequence plays notes back to back.
func Sequence(notes []Note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = tone(n, wave, rate)
	}
	return beep.Seq(parts...)
}

// SequenceLength is the total duration of notes.
func SequenceLength(notes []Note) time.Duration {
	var d time.Duration
	for _, n := range notes {
		d += n.Duration
	}
	return d
}

// melodyLoop replays a note table forever. beep.Loop needs a seekable
// source, so the loop restarts the sequence itself.
type melodyLoop struct {
	notes   []Note
	wave    WaveType
	rate    beep.SampleRate
	current beep.Streamer
}

// NewMelodyLoop returns an endless streamer repeating notes.
func NewMelodyLoop(notes []Note, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &melodyLoop{notes: notes, wave: wave, rate: rate}
}

func (m *melodyLoop) Stream(samples [][2]float64) (n int, ok bool) {
	if SequenceLength(m.notes) <= 0 {
		return 0, false
	}
	for n < len(samples) {
		if m.current == nil {
			m.current = Sequence(m.notes, m.wave, m.rate)
		}
		k, more := m.current.Stream(samples[n:])
		n += k
		if !more || k == 0 {
			m.current = nil
		}
	}
	return n, true
}

func (m *melodyLoop) Err() error { return nil }
