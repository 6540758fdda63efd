package viewer

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/labyrinth/constant"
)

// chime plays short sine tones as reload feedback. A nil chime is silent.
type chime struct {
	sampleRate beep.SampleRate
}

func newChime() (*chime, error) {
	sampleRate := beep.SampleRate(constant.ChimeSampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(constant.ChimeDuration*2)); err != nil {
		return nil, err
	}
	return &chime{sampleRate: sampleRate}, nil
}

func (c *chime) ok() {
	c.play(constant.ChimeOKFrequency)
}

func (c *chime) fail() {
	c.play(constant.ChimeFailFrequency)
}

func (c *chime) play(freq float64) {
	if c == nil {
		return
	}
	sine, err := generators.SineTone(c.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sampleRate.N(constant.ChimeDuration), sine))
}
