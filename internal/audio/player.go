// Package audio plays synthesized sound effects and background music through
// beep. Nothing is loaded from disk: every sound is generated from a note
// table. A Player that failed to start stays usable and simply plays nothing.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
)

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Clock supplies monotonic time for fades.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Sink is the output device the mixer is attached to. Lock and Unlock guard
// every change to streamers the device is currently pulling from.
type Sink interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerSink is the system speaker.
type speakerSink struct{}

func (speakerSink) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerSink) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerSink) Lock()                { speaker.Lock() }
func (speakerSink) Unlock()              { speaker.Unlock() }
func (speakerSink) Close()               { speaker.Clear() }

// Options configures a Player.
type Options struct {
	SfxVolume   float64 // 0..1
	MusicVolume float64 // 0..1
	SfxMuted    bool
	MusicMuted  bool

	SampleRate beep.SampleRate
	Clock      Clock
	Sink       Sink // Defaults to the system speaker
	Logger     *log.Logger
}

// fade is an in-progress music volume ramp.
type fade struct {
	from, to   float64
	start      time.Time
	duration   time.Duration
	onComplete func()
}

// Player mixes sound effects and one music track. All methods are safe for
// concurrent use; fades and playlist advance happen in Update.
type Player struct {
	mu sync.Mutex

	sink  Sink
	clock Clock
	log   *log.Logger
	rate  beep.SampleRate
	mixer *beep.Mixer

	started bool

	sfxVolume   float64
	musicVolume float64
	sfxMuted    bool
	musicMuted  bool

	music     *beep.Ctrl
	musicGain *effects.Volume
	track     string
	loop      bool
	playlist  bool    // Advance to the next bgm track when this one ends
	fadeLevel float64 // Fade multiplier on top of musicVolume
	fade      *fade

	// generation identifies the current track. The end-of-track callback
	// runs on the audio goroutine under the sink lock, so it only records
	// which generation finished.
	generation uint64
	ended      atomic.Uint64
}

var _ breakout.Audio = (*Player)(nil)

// New creates a Player. Call Start to open the output device.
func New(opts Options) *Player {
	p := &Player{
		sink:        opts.Sink,
		clock:       opts.Clock,
		log:         opts.Logger,
		rate:        opts.SampleRate,
		mixer:       &beep.Mixer{},
		sfxVolume:   clamp01(opts.SfxVolume),
		musicVolume: clamp01(opts.MusicVolume),
		sfxMuted:    opts.SfxMuted,
		musicMuted:  opts.MusicMuted,
		fadeLevel:   1,
	}
	if p.sink == nil {
		p.sink = speakerSink{}
	}
	if p.clock == nil {
		p.clock = systemClock{}
	}
	if p.log == nil {
		p.log = log.New(io.Discard)
	}
	if p.rate == 0 {
		p.rate = DefaultSampleRate
	}
	return p
}

// Start opens the output device and begins streaming the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := p.sink.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	p.sink.Play(p.mixer)
	p.started = true
	return nil
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.fade = nil
	p.stopLocked()
	p.sink.Lock()
	p.mixer.Clear()
	p.sink.Unlock()
	p.sink.Close()
	p.started = false
}

// PlaySfx plays a named sound effect once.
func (p *Player) PlaySfx(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.sfxMuted || p.sfxVolume <= 0 {
		return
	}
	s := buildSfx(name, p.rate)
	if s == nil {
		p.log.Warn("unknown sound effect", "name", name)
		return
	}
	v := newVolume(s, p.sfxVolume)

	p.sink.Lock()
	p.mixer.Add(v)
	p.sink.Unlock()
}

// PlayMusic replaces the current music. A non-looping bgm track advances
// through the playlist when it ends.
func (p *Player) PlayMusic(name string, loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.fade = nil
	p.fadeLevel = 1
	_, p.playlist = trackNumber(name)
	p.playLocked(name, loop)
}

func (p *Player) playLocked(name string, loop bool) {
	p.stopLocked()

	track := buildTrack(name, p.rate, loop)
	if track == nil {
		p.log.Warn("unknown music track", "name", name)
		return
	}

	p.generation++
	gen := p.generation
	var s beep.Streamer = track
	if !loop {
		s = beep.Seq(track, beep.Callback(func() {
			p.ended.Store(gen)
		}))
	}

	p.musicGain = newVolume(s, p.musicGainLocked())
	p.music = &beep.Ctrl{Streamer: p.musicGain}
	p.track = name
	p.loop = loop

	p.sink.Lock()
	p.mixer.Add(p.music)
	p.sink.Unlock()

	p.log.Debug("music started", "track", name, "loop", loop)
}

// StopMusic stops the current track and cancels any fade.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fade = nil
	p.stopLocked()
}

// stopLocked drops the current track. A running fade survives so that a
// playlist advance keeps fading.
func (p *Player) stopLocked() {
	if p.music != nil {
		// A Ctrl without a streamer reports drained, so the mixer drops it
		p.sink.Lock()
		p.music.Streamer = nil
		p.sink.Unlock()
	}
	p.music = nil
	p.musicGain = nil
	p.track = ""
	p.generation++
}

// EndPlaylist lets the current track finish without starting the next one.
func (p *Player) EndPlaylist() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playlist = false
}

// FadeMusic ramps the music volume to target over duration, measured on the
// Player's clock. onComplete runs from Update once the ramp finishes, or
// immediately when no music is playing.
func (p *Player) FadeMusic(target float64, duration time.Duration, onComplete func()) {
	p.mu.Lock()

	if p.music == nil {
		p.mu.Unlock()
		if onComplete != nil {
			onComplete()
		}
		return
	}

	target = clamp01(target)
	if duration <= 0 {
		p.fade = nil
		p.fadeLevel = target
		p.applyMusicGainLocked()
		p.mu.Unlock()
		if onComplete != nil {
			onComplete()
		}
		return
	}

	p.fade = &fade{
		from:       p.fadeLevel,
		to:         target,
		start:      p.clock.Now(),
		duration:   duration,
		onComplete: onComplete,
	}
	p.mu.Unlock()
}

// Update advances fades and the playlist. Call it once per frame.
func (p *Player) Update() {
	p.mu.Lock()

	var done func()
	finished := false

	if f := p.fade; f != nil {
		t := float64(p.clock.Now().Sub(f.start)) / float64(f.duration)
		if t >= 1 {
			p.fadeLevel = f.to
			p.fade = nil
			done = f.onComplete
			finished = true
		} else {
			p.fadeLevel = f.from + (f.to-f.from)*t
		}
		p.applyMusicGainLocked()
	}

	if p.music != nil && !p.loop && p.ended.Load() == p.generation {
		if n, ok := trackNumber(p.track); ok && p.playlist {
			p.playLocked(TrackName(nextTrack(n)), false)
		} else {
			p.stopLocked()
		}
	}

	p.mu.Unlock()

	// Callbacks may call back into the Player
	if finished && done != nil {
		done()
	}
}

func (p *Player) musicGainLocked() float64 {
	if p.musicMuted {
		return 0
	}
	return p.musicVolume * p.fadeLevel
}

func (p *Player) applyMusicGainLocked() {
	if p.musicGain == nil {
		return
	}
	p.sink.Lock()
	setGain(p.musicGain, p.musicGainLocked())
	p.sink.Unlock()
}

// SetSfxVolume sets the effect volume in [0, 1].
func (p *Player) SetSfxVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sfxVolume = clamp01(v)
}

// SetMusicVolume sets the music volume in [0, 1].
func (p *Player) SetMusicVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.musicVolume = clamp01(v)
	p.applyMusicGainLocked()
}

// SetSfxMuted mutes or unmutes sound effects.
func (p *Player) SetSfxMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sfxMuted = muted
}

// SetMusicMuted mutes or unmutes music without stopping it.
func (p *Player) SetMusicMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.musicMuted = muted
	p.applyMusicGainLocked()
}

// Levels is a snapshot of the Player's volume settings.
type Levels struct {
	SfxVolume   float64
	MusicVolume float64
	SfxMuted    bool
	MusicMuted  bool
}

// Levels returns the current volume settings.
func (p *Player) Levels() Levels {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Levels{
		SfxVolume:   p.sfxVolume,
		MusicVolume: p.musicVolume,
		SfxMuted:    p.sfxMuted,
		MusicMuted:  p.musicMuted,
	}
}

// CurrentTrack returns the playing track name, or "" when silent.
func (p *Player) CurrentTrack() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// FadeLevel returns the current fade multiplier in [0, 1].
func (p *Player) FadeLevel() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fadeLevel
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
