package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// PlaylistLength is the number of background tracks, named bgm1..bgmN.
const PlaylistLength = 4

// TrackName returns the playlist name of track n, counted from 1.
func TrackName(n int) string {
	return fmt.Sprintf("bgm%d", n)
}

// trackNumber parses a playlist name. ok is false for other names.
func trackNumber(name string) (n int, ok bool) {
	if _, err := fmt.Sscanf(name, "bgm%d", &n); err != nil {
		return 0, false
	}
	return n, n >= 1 && n <= PlaylistLength
}

// nextTrack returns the track that follows n, wrapping after the last.
func nextTrack(n int) int {
	return n%PlaylistLength + 1
}

// melody describes one background track: a bass line and an arpeggio
// over it, repeated for a number of passes.
type melody struct {
	bass   []float64
	arp    []float64
	step   time.Duration // Length of one arpeggio note
	wave   Wave
	passes int
}

var tracks = map[string]melody{
	"bgm1": {
		bass:   []float64{110, 110, 87.31, 98},
		arp:    []float64{440, 523.25, 659.25, 523.25},
		step:   150 * time.Millisecond,
		wave:   WaveSquare,
		passes: 12,
	},
	"bgm2": {
		bass:   []float64{130.81, 98, 110, 87.31},
		arp:    []float64{523.25, 659.25, 783.99, 659.25},
		step:   130 * time.Millisecond,
		wave:   WaveTriangle,
		passes: 12,
	},
	"bgm3": {
		bass:   []float64{73.42, 73.42, 82.41, 98},
		arp:    []float64{293.66, 349.23, 440, 587.33},
		step:   170 * time.Millisecond,
		wave:   WaveSaw,
		passes: 10,
	},
	"bgm4": {
		bass:   []float64{82.41, 123.47, 110, 98},
		arp:    []float64{659.25, 493.88, 587.33, 493.88},
		step:   120 * time.Millisecond,
		wave:   WaveSquare,
		passes: 14,
	},
}

// melodyStreamer synthesizes a melody. With loop set it never ends.
type melodyStreamer struct {
	m        melody
	rate     beep.SampleRate
	stepLen  int
	barLen   int // Samples per bass note
	total    int // Samples until the end, ignored when looping
	loop     bool
	pos      int
	arpPhase float64
	bassPhs  float64
}

func newMelodyStreamer(m melody, rate beep.SampleRate, loop bool) *melodyStreamer {
	step := rate.N(m.step)
	bar := step * len(m.arp)
	return &melodyStreamer{
		m:       m,
		rate:    rate,
		stepLen: step,
		barLen:  bar,
		total:   bar * len(m.bass) * m.passes,
		loop:    loop,
	}
}

func (s *melodyStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	cycle := s.barLen * len(s.m.bass)
	for i := range samples {
		if !s.loop && s.pos >= s.total {
			return i, i > 0
		}
		inCycle := s.pos % cycle
		bass := s.m.bass[inCycle/s.barLen]
		arp := s.m.arp[(inCycle/s.stepLen)%len(s.m.arp)]

		// Short decay on every arpeggio note
		within := float64(inCycle%s.stepLen) / float64(s.stepLen)
		arpEnv := 1 - 0.7*within

		v := 0.18*arpEnv*s.m.wave.sample(s.arpPhase) + 0.22*WaveSine.sample(s.bassPhs)
		samples[i][0] = v
		samples[i][1] = v

		s.arpPhase += arp / float64(s.rate)
		s.arpPhase -= float64(int(s.arpPhase))
		s.bassPhs += bass / float64(s.rate)
		s.bassPhs -= float64(int(s.bassPhs))
		s.pos++
	}
	return len(samples), true
}

func (s *melodyStreamer) Err() error { return nil }

// buildTrack returns the streamer for a named track, or nil if unknown.
func buildTrack(name string, rate beep.SampleRate, loop bool) beep.Streamer {
	m, ok := tracks[name]
	if !ok {
		return nil
	}
	return newMelodyStreamer(m, rate, loop)
}
