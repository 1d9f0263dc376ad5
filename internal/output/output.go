package output

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/go-audio/audio"

	"github.com/Danondso/sinetone/internal/config"
)

var (
	ErrAlreadyRunning = errors.New("output already running")
	ErrNotRunning     = errors.New("output not running")
)

// Renderer is the audio source driven by a Player. *oscillator.Engine
// implements it.
type Renderer interface {
	Configure(sampleRate float64)
	RenderBlock(buf []float32)
	RenderBuffer(buf *audio.Float32Buffer)
}

// Player owns an output stream and calls its Renderer once per audio period.
type Player interface {
	Start() error
	Stop() error
	SampleRate() float64
	DeviceName() string
	OutputLevel() float64
}

// New creates the Player selected by cfg.Backend. PortAudio must be
// initialized before a portaudio player is started.
func New(cfg *config.AudioConfig, r Renderer, logger *log.Logger) (Player, error) {
	switch cfg.Backend {
	case config.BackendPortAudio:
		return NewPortAudio(cfg, r, logger), nil
	case config.BackendSpeaker:
		return NewSpeaker(cfg, r, logger), nil
	default:
		return nil, fmt.Errorf("unknown audio backend: %s", cfg.Backend)
	}
}

// levelMeter holds the RMS of the last rendered block as atomic float64 bits.
type levelMeter struct {
	bits uint64
}

func (m *levelMeter) store(v float64) {
	atomic.StoreUint64(&m.bits, math.Float64bits(v))
}

func (m *levelMeter) load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&m.bits))
}

// ComputeRMS returns the root-mean-square of buf.
func ComputeRMS(buf []float32) float64 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, v := range buf {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(buf)))
}

// computeStereoRMS returns the RMS of the left channel; every channel
// carries the same tone.
func computeStereoRMS(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s[0] * s[0]
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func channelCount(requested, deviceMax int) int {
	channels := requested
	if deviceMax > 0 && channels > deviceMax {
		channels = deviceMax
	}
	if channels < 1 {
		channels = 1
	}
	return channels
}
