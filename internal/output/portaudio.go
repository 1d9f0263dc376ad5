package output

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-audio/audio"
	"github.com/gordonklaus/portaudio"

	"github.com/Danondso/sinetone/internal/config"
)

// PortAudioPlayer plays the renderer through a PortAudio output stream.
// Call portaudio.Initialize() before Start.
type PortAudioPlayer struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	running    bool
	renderer   Renderer
	logger     *log.Logger
	deviceName string
	device     string
	sampleRate float64
	frames     int
	channels   int
	block      audio.Float32Buffer // reused by the callback
	level      levelMeter
}

// NewPortAudio creates a PortAudioPlayer. No device is opened until Start.
func NewPortAudio(cfg *config.AudioConfig, r Renderer, logger *log.Logger) *PortAudioPlayer {
	return &PortAudioPlayer{
		renderer:   r,
		logger:     logger,
		device:     cfg.Device,
		sampleRate: cfg.SampleRate,
		frames:     cfg.FramesPerBuffer,
		channels:   cfg.Channels,
	}
}

// Start opens the output device, configures the renderer with the
// negotiated sample rate and starts the stream.
func (p *PortAudioPlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}

	dev, err := findOutputDevice(p.device)
	if err != nil {
		return err
	}

	params := portaudio.HighLatencyParameters(nil, dev)
	params.Output.Channels = channelCount(p.channels, dev.MaxOutputChannels)
	if p.sampleRate > 0 {
		params.SampleRate = p.sampleRate
	}
	params.FramesPerBuffer = p.frames

	p.block = audio.Float32Buffer{
		Format: &audio.Format{
			NumChannels: params.Output.Channels,
			SampleRate:  int(params.SampleRate),
		},
	}

	stream, err := portaudio.OpenStream(params, p.processAudio)
	if err != nil {
		return fmt.Errorf("open stream on %s: %w", dev.Name, err)
	}

	rate := params.SampleRate
	if info := stream.Info(); info != nil && info.SampleRate > 0 {
		rate = info.SampleRate
	}
	p.renderer.Configure(rate)
	p.block.Format.SampleRate = int(rate)

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start stream: %w", err)
	}

	p.stream = stream
	p.running = true
	p.deviceName = dev.Name
	p.sampleRate = rate
	if p.logger != nil {
		p.logger.Printf("stream started: device=%q rate=%.0f channels=%d frames=%d",
			dev.Name, rate, params.Output.Channels, params.FramesPerBuffer)
	}
	return nil
}

// processAudio runs on the PortAudio callback thread.
func (p *PortAudioPlayer) processAudio(out []float32) {
	p.block.Data = out
	p.renderer.RenderBuffer(&p.block)
	p.level.store(ComputeRMS(out))
}

// Stop stops and closes the stream.
func (p *PortAudioPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrNotRunning
	}
	p.running = false

	stopErr := p.stream.Stop()
	closeErr := p.stream.Close()
	p.stream = nil
	p.level.store(0)
	if p.logger != nil {
		p.logger.Printf("stream stopped: device=%q", p.deviceName)
	}

	if stopErr != nil {
		return fmt.Errorf("stop stream: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close stream: %w", closeErr)
	}
	return nil
}

// SampleRate returns the negotiated sample rate once started, or the
// configured one before.
func (p *PortAudioPlayer) SampleRate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sampleRate
}

// DeviceName returns a descriptive name for the device being played to.
func (p *PortAudioPlayer) DeviceName() string {
	p.mu.Lock()
	name := p.deviceName
	p.mu.Unlock()
	if name == "" || strings.EqualFold(name, "default") || strings.EqualFold(name, "pulse") {
		if desc := SinkDescription(); desc != "" {
			return desc
		}
	}
	return name
}

// OutputLevel returns the RMS of the most recent block. Safe to call from
// any goroutine.
func (p *PortAudioPlayer) OutputLevel() float64 {
	return p.level.load()
}

func findOutputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		dev, err := portaudio.DefaultOutputDevice()
		if err != nil {
			return nil, fmt.Errorf("default output device: %w", err)
		}
		return dev, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	dev := matchDevice(devices, name)
	if dev == nil {
		return nil, fmt.Errorf("no output device matching %q", name)
	}
	return dev, nil
}

// matchDevice returns the first output-capable device whose name contains
// name, ignoring case. An exact match wins over a substring match.
func matchDevice(devices []*portaudio.DeviceInfo, name string) *portaudio.DeviceInfo {
	want := strings.ToLower(name)
	var partial *portaudio.DeviceInfo
	for _, d := range devices {
		if d == nil || d.MaxOutputChannels < 1 {
			continue
		}
		got := strings.ToLower(d.Name)
		if got == want {
			return d
		}
		if partial == nil && strings.Contains(got, want) {
			partial = d
		}
	}
	return partial
}
