package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamAll drains a finite streamer and returns its samples.
func streamAll(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for range 10000 {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer did not end")
	return nil
}

func TestToneLength(t *testing.T) {
	tn := newTone(440, 440, 100*time.Millisecond, WaveSine, testRate)
	samples := streamAll(t, tn)
	assert.Len(t, samples, testRate.N(100*time.Millisecond))
}

func TestWaveShapesStayInRange(t *testing.T) {
	for _, w := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveTriangle} {
		for i := range 100 {
			v := w.sample(float64(i) / 100)
			if v < -1 || v > 1 {
				t.Fatalf("wave %d out of range at phase %v: %v", w, float64(i)/100, v)
			}
		}
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	d := 50 * time.Millisecond
	tn := newTone(440, 440, d, WaveSquare, testRate)
	samples := streamAll(t, newEnvelope(tn, d, 10*time.Millisecond, 10*time.Millisecond, testRate))

	require.NotEmpty(t, samples)
	assert.Zero(t, samples[0][0])
	assert.InDelta(t, 0, samples[len(samples)-1][0], 0.02)
}

func TestSfxBank(t *testing.T) {
	for _, name := range []string{"bounce", "pop", "powerup", "gameover"} {
		t.Run(name, func(t *testing.T) {
			s := buildSfx(name, testRate)
			require.NotNil(t, s)

			peak := 0.0
			for _, smp := range streamAll(t, s) {
				peak = math.Max(peak, math.Abs(smp[0]))
			}
			assert.Greater(t, peak, 0.0)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}

	assert.Nil(t, buildSfx("missing", testRate))
}

func TestSetGain(t *testing.T) {
	v := newVolume(beep.Silence(10), 0.5)
	assert.Equal(t, -1.0, v.Volume)
	assert.False(t, v.Silent)

	setGain(v, 0)
	assert.True(t, v.Silent)
}

func TestTrackNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int
		ok   bool
	}{
		{"bgm1", 1, true},
		{"bgm4", 4, true},
		{"bgm5", 5, false},
		{"bgm0", 0, false},
		{"menu", 0, false},
	}

	for _, tc := range tests {
		n, ok := trackNumber(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		if tc.ok {
			assert.Equal(t, tc.n, n, tc.name)
		}
	}

	assert.Equal(t, 2, nextTrack(1))
	assert.Equal(t, 1, nextTrack(PlaylistLength))
	assert.Equal(t, "bgm3", TrackName(3))
}

func TestEveryPlaylistTrackExists(t *testing.T) {
	for n := 1; n <= PlaylistLength; n++ {
		assert.NotNil(t, buildTrack(TrackName(n), testRate, false), TrackName(n))
	}
}
