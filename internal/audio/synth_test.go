package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/jardin/internal/collection"
)

// drain streams s to completion and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > 1.5 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	return total
}

func TestOscillatorStopsAfterDuration(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)
	if got := drain(t, osc, 1<<20); got != rate.N(100*time.Millisecond) {
		t.Fatalf("oscillator produced %d samples, want %d", got, rate.N(100*time.Millisecond))
	}
	if osc.Err() != nil {
		t.Fatalf("unexpected error: %v", osc.Err())
	}
}

func TestWaveShapesInRange(t *testing.T) {
	for _, w := range []WaveType{WaveSine, WaveTriangle, WaveSquare} {
		for i := 0; i < 100; i++ {
			v := waveAt(w, float64(i)/100)
			if v < -1 || v > 1 {
				t.Fatalf("wave %d at %d = %f", w, i, v)
			}
		}
	}
	if waveAt(WaveSquare, 0.25) != 1 || waveAt(WaveSquare, 0.75) != -1 {
		t.Fatal("square wave should flip at half period")
	}
}

func TestEnvelopeRampsIn(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // constant 1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(time.Second))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Fatalf("first sample = %f, want 0", buf[0][0])
	}
	if mid := buf[len(buf)/2][0]; mid != 1 {
		t.Fatalf("sustain sample = %f, want 1", mid)
	}
	if last := buf[len(buf)-1][0]; last > 0.01 {
		t.Fatalf("last sample = %f, want ~0", last)
	}
}

func TestFrequency(t *testing.T) {
	if Frequency(0) != 440 {
		t.Fatal("A4 should be 440 Hz")
	}
	if math.Abs(Frequency(12)-880) > 1e-9 {
		t.Fatalf("octave up = %f", Frequency(12))
	}
}

func TestSequenceLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	notes := []Note{
		{Pitch: 0, Duration: 50 * time.Millisecond},
		{Rest: true, Duration: 50 * time.Millisecond},
		{Pitch: 3, Duration: 100 * time.Millisecond},
	}
	if SequenceLength(notes) != 200*time.Millisecond {
		t.Fatalf("SequenceLength = %v", SequenceLength(notes))
	}
	got := drain(t, Sequence(notes, WaveSine, rate), 1<<20)
	if want := rate.N(200 * time.Millisecond); got != want {
		t.Fatalf("sequence produced %d samples, want %d", got, want)
	}
}

func TestMelodyLoopNeverDrains(t *testing.T) {
	rate := beep.SampleRate(8000)
	loop := NewMelodyLoop([]Note{{Pitch: 0, Duration: 10 * time.Millisecond}}, WaveSine, rate)
	limit := rate.N(time.Second)
	if got := drain(t, loop, limit); got < limit {
		t.Fatalf("loop drained after %d samples", got)
	}

	empty := NewMelodyLoop(nil, WaveSine, rate)
	if n, ok := empty.Stream(make([][2]float64, 16)); n != 0 || ok {
		t.Fatalf("empty loop = %d, %v", n, ok)
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(1)
	p.PlayMelody()
	p.Chime(1)
	p.Arpeggio()
	p.Fanfare()
	p.StopMelody()
	p.Cleanup()
	if p.Enabled() {
		t.Fatal("player should not be enabled")
	}
	if p.pending() != 0 {
		t.Fatalf("uninitialised player queued %d streams", p.pending())
	}
}

func TestObserveQueuesCues(t *testing.T) {
	p := NewPlayer(1)
	p.initialized = true // Mix without opening a device

	empty := collection.Snapshot{Total: 2}
	one := collection.Snapshot{DiscoveredIDs: []int{1}, Total: 2}
	all := collection.Snapshot{DiscoveredIDs: []int{1, 2}, Total: 2}
	unlocked := collection.Snapshot{DiscoveredIDs: []int{1, 2}, Total: 2, SecretUnlocked: true}

	p.Observe(empty, one)
	if p.pending() != 1 {
		t.Fatalf("discovery queued %d streams, want 1", p.pending())
	}
	p.Observe(one, all)
	if p.pending() != 3 {
		t.Fatalf("completion queued %d streams, want 3", p.pending())
	}
	p.Observe(all, unlocked)
	if p.pending() != 4 {
		t.Fatalf("unlock queued %d streams, want 4", p.pending())
	}

	p.PlayMelody()
	p.PlayMelody()
	if p.pending() != 5 {
		t.Fatalf("melody should start once, %d streams", p.pending())
	}
	p.Cleanup()
	if p.pending() != 0 {
		t.Fatal("cleanup should clear the mixer")
	}
}
