package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

// newOscillator returns a tone of the given length. Sine tones come from
// the beep generators, the other shapes are computed here.
func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	if wave == WaveSine {
		if sine, err := generators.SineTone(rate, freq); err == nil {
			return beep.Take(rate.N(d), sine)
		}
	}
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	att, rel := rate.N(attack), rate.N(release)
	// Short notes share their length between the two ramps.
	if att+rel > total {
		att, rel = total/3, total/3
	}
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		switch {
		case e.position >= e.total:
			vol = 0
		case e.attack > 0 && e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.release > 0 && e.position >= e.total-e.release:
			vol = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one note of a cue.
type tone struct {
	freq float64
	d    time.Duration
}

// cue is a short effect: notes played back to back in one wave shape.
type cue struct {
	wave  Wave
	gain  float64
	notes []tone
}

const noteGap = 10 * time.Millisecond

func (c cue) streamer(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*len(c.notes))
	for i, n := range c.notes {
		if i > 0 {
			parts = append(parts, beep.Silence(rate.N(noteGap)))
		}
		osc := newOscillator(n.freq, n.d, c.wave, rate)
		parts = append(parts, newEnvelope(osc, n.d, 5*time.Millisecond, n.d/2, rate))
	}
	return withVolume(beep.Seq(parts...), c.gain)
}

// length is the playing time of the cue.
func (c cue) length() time.Duration {
	var total time.Duration
	for i, n := range c.notes {
		if i > 0 {
			total += noteGap
		}
		total += n.d
	}
	return total
}
