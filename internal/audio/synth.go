package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// sample returns the wave value at phase in [0, 1).
func (w Wave) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is a single pitch sweep from freq to endFreq over its duration.
type tone struct {
	freq    float64
	endFreq float64
	wave    Wave
	rate    beep.SampleRate
	total   int
	pos     int
	phase   float64
}

// newTone creates a tone. Equal freq and endFreq give a steady pitch.
func newTone(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate) *tone {
	return &tone{
		freq:    freq,
		endFreq: endFreq,
		wave:    wave,
		rate:    rate,
		total:   rate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.freq + (t.endFreq-t.freq)*progress

		v := t.wave.sample(t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	attack   int
	release  int
	total    int
	pos      int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.pos >= releaseStart {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at a linear gain. A gain of zero or less is silent;
// math.Log2(0) would be -Inf.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

// setGain changes the linear gain of an existing volume effect.
func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(gain)
	v.Silent = false
}

// note is one step of an sfx: a shaped tone.
type note struct {
	freq, endFreq float64
	dur           time.Duration
	wave          Wave
}

// sfxBank maps sound names to their note sequences.
var sfxBank = map[string][]note{
	"bounce": {
		{freq: 660, endFreq: 660, dur: 60 * time.Millisecond, wave: WaveSine},
	},
	"pop": {
		{freq: 880, endFreq: 440, dur: 90 * time.Millisecond, wave: WaveSquare},
	},
	"powerup": {
		{freq: 523.25, endFreq: 523.25, dur: 70 * time.Millisecond, wave: WaveTriangle},
		{freq: 659.25, endFreq: 659.25, dur: 70 * time.Millisecond, wave: WaveTriangle},
		{freq: 783.99, endFreq: 1046.5, dur: 140 * time.Millisecond, wave: WaveTriangle},
	},
	"gameover": {
		{freq: 392, endFreq: 392, dur: 250 * time.Millisecond, wave: WaveSaw},
		{freq: 311.13, endFreq: 311.13, dur: 250 * time.Millisecond, wave: WaveSaw},
		{freq: 261.63, endFreq: 130.81, dur: 600 * time.Millisecond, wave: WaveSaw},
	},
}

// sfxGain keeps raw waves below clipping once several overlap in the mixer.
const sfxGain = 0.35

// buildSfx renders a named effect as a finite streamer, or nil if unknown.
func buildSfx(name string, rate beep.SampleRate) beep.Streamer {
	notes, ok := sfxBank[name]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		t := newTone(n.freq, n.endFreq, n.dur, n.wave, rate)
		parts = append(parts, newEnvelope(t, n.dur, 5*time.Millisecond, n.dur/3, rate))
	}
	return newVolume(beep.Seq(parts...), sfxGain)
}
