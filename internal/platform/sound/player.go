// Package sound plays the game's audio cues and background music through
// the system speaker.
package sound

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/joelgranik/game-of-zev/internal/games/zev"
)

const sampleRate = beep.SampleRate(44100)

// cues maps each effect event to its sound.
var cues = map[zev.SoundEvent]cue{
	zev.SoundMove:   {wave: WaveSquare, gain: 0.15, notes: []tone{{220, 30 * time.Millisecond}}},
	zev.SoundRotate: {wave: WaveSquare, gain: 0.15, notes: []tone{{440, 40 * time.Millisecond}}},
	zev.SoundDrop:   {wave: WaveSaw, gain: 0.3, notes: []tone{{110, 80 * time.Millisecond}}},
	zev.SoundClear: {wave: WaveSquare, gain: 0.25, notes: []tone{
		{523.25, 60 * time.Millisecond},
		{659.25, 60 * time.Millisecond},
		{783.99, 60 * time.Millisecond},
		{1046.50, 90 * time.Millisecond},
	}},
	zev.SoundGameOver: {wave: WaveSaw, gain: 0.3, notes: []tone{
		{392.00, 200 * time.Millisecond},
		{329.63, 200 * time.Millisecond},
		{261.63, 400 * time.Millisecond},
	}},
	zev.SoundTwist: {wave: WaveSine, gain: 0.35, notes: []tone{
		{880.00, 60 * time.Millisecond},
		{1318.51, 60 * time.Millisecond},
		{880.00, 60 * time.Millisecond},
	}},
	zev.SoundLevelUp: {wave: WaveSquare, gain: 0.25, notes: []tone{
		{523.25, 80 * time.Millisecond},
		{659.25, 80 * time.Millisecond},
		{783.99, 80 * time.Millisecond},
		{1046.50, 80 * time.Millisecond},
		{1318.51, 160 * time.Millisecond},
	}},
}

// Options configures a Player.
type Options struct {
	Volume  float64 // Master volume, 0..1
	Effects bool    // Play cue sounds
	Music   bool    // Play the background melody
	Logger  *log.Logger
}

// DefaultOptions enables everything at full volume.
func DefaultOptions() Options {
	return Options{Volume: 1, Effects: true, Music: true}
}

// Player implements zev.SoundPlayer on top of a beep mixer.
// Trigger only queues streamers, so it never waits for playback.
type Player struct {
	mu     sync.Mutex
	opts   Options
	rate   beep.SampleRate
	mixer  *beep.Mixer
	output beep.Streamer
	music  *beep.Ctrl
	device bool
	logger *log.Logger
}

func newPlayer(opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mixer := &beep.Mixer{}
	return &Player{
		opts:   opts,
		rate:   sampleRate,
		mixer:  mixer,
		output: withVolume(mixer, opts.Volume),
		logger: logger,
	}
}

// Open initializes the speaker and starts the mixer.
func Open(opts Options) (*Player, error) {
	p := newPlayer(opts)
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	speaker.Play(p.output)
	p.device = true
	p.logger.Debug("speaker ready", "rate", int(p.rate))
	return p, nil
}

// Trigger implements zev.SoundPlayer.
func (p *Player) Trigger(ev zev.SoundEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev {
	case zev.SoundMusicStart:
		p.startMusic()
	case zev.SoundMusicStop:
		p.stopMusic()
	default:
		if !p.opts.Effects {
			return
		}
		c, ok := cues[ev]
		if !ok {
			p.logger.Debug("no sound for event", "event", string(ev))
			return
		}
		p.add(c.streamer(p.rate))
	}
}

func (p *Player) startMusic() {
	if !p.opts.Music || p.music != nil {
		return
	}
	p.music = &beep.Ctrl{Streamer: melodyLoop(p.rate)}
	p.add(p.music)
}

func (p *Player) stopMusic() {
	if p.music == nil {
		return
	}
	p.locked(func() {
		// A Ctrl without a streamer drains, so the mixer drops it.
		p.music.Streamer = nil
	})
	p.music = nil
}

// MusicPlaying reports whether the melody is running.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil
}

// Pending returns the number of streamers still in the mixer.
func (p *Player) Pending() int {
	var n int
	p.locked(func() { n = p.mixer.Len() })
	return n
}

// Close silences everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopMusic()
	p.locked(p.mixer.Clear)
}

func (p *Player) add(s beep.Streamer) {
	p.locked(func() { p.mixer.Add(s) })
}

// locked runs fn while the speaker is not reading the mixer.
func (p *Player) locked(fn func()) {
	if p.device {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
