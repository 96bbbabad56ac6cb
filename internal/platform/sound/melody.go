package sound

import (
	"time"

	"github.com/gopxl/beep"
)

// Note frequencies in Hz.
var noteFreq = map[string]float64{
	"A4": 440.00,
	"B4": 493.88,
	"C5": 523.25,
	"D5": 587.33,
	"E5": 659.25,
	"F5": 698.46,
	"G5": 783.99,
	"A5": 880.00,
}

// note is one melody step. An empty Name is a rest.
type note struct {
	Name  string
	Beats float64
}

const (
	tempo        = 100 // Beats per minute
	musicAttack  = 100 * time.Millisecond
	musicRelease = 150 * time.Millisecond
	musicGain    = 0.2
	restNote     = ""
)

// melody is the background loop.
var melody = []note{
	{"E5", .25}, {"B4", .125}, {"C5", .125}, {"D5", .25}, {"C5", .125}, {"B4", .125},
	{"A4", .25}, {"A4", .125}, {"C5", .125}, {"E5", .25}, {"D5", .125}, {"C5", .125},
	{"B4", .375}, {"C5", .125}, {"D5", .25}, {"E5", .25},
	{"C5", .25}, {"A4", .25}, {"A4", .25}, {restNote, .25},

	{"D5", .25}, {"F5", .125}, {"A5", .25}, {"G5", .125}, {"F5", .125},
	{"E5", .375}, {"C5", .125}, {"E5", .25}, {"D5", .125}, {"C5", .125},
	{"B4", .25}, {"B4", .125}, {"C5", .125}, {"D5", .25}, {"E5", .25},
	{"C5", .25}, {"A4", .25}, {"A4", .25}, {restNote, .25},
}

// beatDuration is the length of one beat at the melody tempo.
func beatDuration() time.Duration {
	return time.Minute / tempo
}

// duration is the playing time of n.
func (n note) duration() time.Duration {
	return time.Duration(n.Beats * float64(beatDuration()))
}

// melodyLength is the playing time of one pass through the melody.
func melodyLength() time.Duration {
	var total time.Duration
	for _, n := range melody {
		total += n.duration()
	}
	return total
}

// melodyPass renders one pass of the melody.
func melodyPass(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(melody))
	for _, n := range melody {
		d := n.duration()
		freq, ok := noteFreq[n.Name]
		if !ok {
			parts = append(parts, beep.Silence(rate.N(d)))
			continue
		}
		osc := newOscillator(freq, d, WaveSine, rate)
		parts = append(parts, newEnvelope(osc, d, musicAttack, musicRelease, rate))
	}
	return withVolume(beep.Seq(parts...), musicGain)
}

// melodyLoop repeats the melody until stopped.
func melodyLoop(rate beep.SampleRate) beep.Streamer {
	return beep.Iterate(func() beep.Streamer {
		return melodyPass(rate)
	})
}
