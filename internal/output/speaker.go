package output

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Danondso/sinetone/internal/config"
	"github.com/Danondso/sinetone/internal/oscillator"
)

const defaultSpeakerRate = 44100

// SpeakerPlayer plays the renderer through the beep speaker (oto).
type SpeakerPlayer struct {
	mu         sync.Mutex
	renderer   Renderer
	logger     *log.Logger
	sampleRate beep.SampleRate
	bufferSize int
	running    bool
	initOnce   sync.Once
	initErr    error
	level      levelMeter
}

// NewSpeaker creates a SpeakerPlayer. The speaker is initialized on the
// first Start.
func NewSpeaker(cfg *config.AudioConfig, r Renderer, logger *log.Logger) *SpeakerPlayer {
	rate := beep.SampleRate(defaultSpeakerRate)
	if cfg.SampleRate > 0 {
		rate = beep.SampleRate(cfg.SampleRate)
	}
	size := cfg.FramesPerBuffer
	if size <= 0 {
		size = rate.N(time.Second / 10)
	}
	return &SpeakerPlayer{
		renderer:   r,
		logger:     logger,
		sampleRate: rate,
		bufferSize: size,
	}
}

func (p *SpeakerPlayer) initSpeaker() error {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(p.sampleRate, p.bufferSize)
	})
	return p.initErr
}

// Start configures the renderer and begins playback.
func (p *SpeakerPlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}
	if err := p.initSpeaker(); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	p.renderer.Configure(float64(p.sampleRate))
	speaker.Play(&meteredStreamer{
		Streamer: oscillator.NewStreamer(p.renderer, p.bufferSize),
		level:    &p.level,
	})
	p.running = true
	if p.logger != nil {
		p.logger.Printf("stream started: speaker rate=%d buffer=%d", p.sampleRate, p.bufferSize)
	}
	return nil
}

// Stop silences the speaker. The device stays open for the next Start.
func (p *SpeakerPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrNotRunning
	}
	speaker.Clear()
	p.running = false
	p.level.store(0)
	if p.logger != nil {
		p.logger.Printf("stream stopped: speaker")
	}
	return nil
}

// SampleRate returns the speaker sample rate.
func (p *SpeakerPlayer) SampleRate() float64 {
	return float64(p.sampleRate)
}

// DeviceName returns the system sink description, or "speaker".
func (p *SpeakerPlayer) DeviceName() string {
	if desc := SinkDescription(); desc != "" {
		return desc
	}
	return "speaker"
}

// OutputLevel returns the RMS of the most recent block.
func (p *SpeakerPlayer) OutputLevel() float64 {
	return p.level.load()
}

// meteredStreamer records the RMS of every chunk it streams.
type meteredStreamer struct {
	beep.Streamer
	level *levelMeter
}

func (m *meteredStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.Streamer.Stream(samples)
	m.level.store(computeStereoRMS(samples[:n]))
	return n, ok
}
