package output

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"github.com/go-audio/audio"
	"github.com/gordonklaus/portaudio"

	"github.com/Danondso/sinetone/internal/config"
)

// fakeRenderer records calls and writes a constant value.
type fakeRenderer struct {
	rate   float64
	value  float32
	blocks int
}

func (f *fakeRenderer) Configure(sampleRate float64) { f.rate = sampleRate }

func (f *fakeRenderer) RenderBlock(buf []float32) {
	f.blocks++
	for i := range buf {
		buf[i] = f.value
	}
}

func (f *fakeRenderer) RenderBuffer(buf *audio.Float32Buffer) { f.RenderBlock(buf.Data) }

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.Default().Audio

	p, err := New(&cfg, &fakeRenderer{}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*PortAudioPlayer); !ok {
		t.Errorf("expected *PortAudioPlayer, got %T", p)
	}

	cfg.Backend = config.BackendSpeaker
	p, err = New(&cfg, &fakeRenderer{}, discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*SpeakerPlayer); !ok {
		t.Errorf("expected *SpeakerPlayer, got %T", p)
	}

	cfg.Backend = "jack"
	if _, err := New(&cfg, &fakeRenderer{}, discard()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestStopBeforeStart(t *testing.T) {
	cfg := config.Default().Audio
	pa := NewPortAudio(&cfg, &fakeRenderer{}, discard())
	if err := pa.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
	sp := NewSpeaker(&cfg, &fakeRenderer{}, discard())
	if err := sp.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}

func TestSpeakerDefaults(t *testing.T) {
	cfg := config.Default().Audio
	sp := NewSpeaker(&cfg, &fakeRenderer{}, discard())
	if sp.SampleRate() != defaultSpeakerRate {
		t.Errorf("expected %d, got %v", defaultSpeakerRate, sp.SampleRate())
	}
	if sp.bufferSize != defaultSpeakerRate/10 {
		t.Errorf("expected ~100ms buffer (%d), got %d", defaultSpeakerRate/10, sp.bufferSize)
	}

	cfg.SampleRate = 48000
	cfg.FramesPerBuffer = 256
	sp = NewSpeaker(&cfg, &fakeRenderer{}, discard())
	if sp.SampleRate() != 48000 || sp.bufferSize != 256 {
		t.Errorf("expected 48000/256, got %v/%d", sp.SampleRate(), sp.bufferSize)
	}
}

func TestPortAudioCallbackRendersAndMeters(t *testing.T) {
	cfg := config.Default().Audio
	r := &fakeRenderer{value: 0.5}
	p := NewPortAudio(&cfg, r, discard())
	p.block = audio.Float32Buffer{Format: &audio.Format{NumChannels: 2, SampleRate: 44100}}

	out := make([]float32, 64)
	p.processAudio(out)

	if r.blocks != 1 {
		t.Fatalf("expected one render, got %d", r.blocks)
	}
	for i, v := range out {
		if v != 0.5 {
			t.Fatalf("sample %d: expected 0.5, got %v", i, v)
		}
	}
	if math.Abs(p.OutputLevel()-0.5) > 1e-9 {
		t.Errorf("expected level 0.5, got %v", p.OutputLevel())
	}
}

func TestMeteredStreamer(t *testing.T) {
	var level levelMeter
	m := &meteredStreamer{Streamer: oscillatorStub{value: -0.25}, level: &level}
	samples := make([][2]float64, 32)
	n, ok := m.Stream(samples)
	if n != 32 || !ok {
		t.Fatalf("expected (32, true), got (%d, %v)", n, ok)
	}
	if math.Abs(level.load()-0.25) > 1e-9 {
		t.Errorf("expected level 0.25, got %v", level.load())
	}
}

type oscillatorStub struct{ value float64 }

func (s oscillatorStub) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{s.value, s.value}
	}
	return len(samples), true
}

func (oscillatorStub) Err() error { return nil }

func TestComputeRMS(t *testing.T) {
	if ComputeRMS(nil) != 0 {
		t.Error("expected 0 for empty buffer")
	}
	buf := make([]float32, 4410)
	for i := range buf {
		buf[i] = float32(math.Sin(2 * math.Pi * 441 * float64(i) / 44100))
	}
	want := 1 / math.Sqrt2
	if got := ComputeRMS(buf); math.Abs(got-want) > 1e-3 {
		t.Errorf("expected RMS %v, got %v", want, got)
	}
}

func TestChannelCount(t *testing.T) {
	cases := []struct{ requested, max, want int }{
		{2, 2, 2},
		{2, 1, 1},
		{6, 8, 6},
		{0, 2, 1},
		{2, 0, 2},
	}
	for _, c := range cases {
		if got := channelCount(c.requested, c.max); got != c.want {
			t.Errorf("channelCount(%d, %d): expected %d, got %d", c.requested, c.max, c.want, got)
		}
	}
}

func TestMatchDevice(t *testing.T) {
	devices := []*portaudio.DeviceInfo{
		{Name: "USB Mic", MaxInputChannels: 1},
		{Name: "USB Audio DAC", MaxOutputChannels: 2},
		{Name: "usb", MaxOutputChannels: 2},
		{Name: "HDMI 0", MaxOutputChannels: 8},
	}
	if d := matchDevice(devices, "usb"); d == nil || d.Name != "usb" {
		t.Errorf("expected exact match usb, got %+v", d)
	}
	if d := matchDevice(devices, "hdmi"); d == nil || d.Name != "HDMI 0" {
		t.Errorf("expected HDMI 0, got %+v", d)
	}
	if d := matchDevice(devices, "mic"); d != nil {
		t.Errorf("expected input-only device skipped, got %+v", d)
	}
	if d := matchDevice(devices, "dac"); d == nil || d.Name != "USB Audio DAC" {
		t.Errorf("expected USB Audio DAC, got %+v", d)
	}
}

func TestOutputDevices(t *testing.T) {
	api := &portaudio.HostApiInfo{Name: "ALSA"}
	def := &portaudio.DeviceInfo{Name: "default", MaxOutputChannels: 2, DefaultSampleRate: 48000, HostApi: api}
	infos := []*portaudio.DeviceInfo{
		{Name: "mic", MaxInputChannels: 2, HostApi: api},
		{Name: "hdmi", MaxOutputChannels: 8, DefaultSampleRate: 44100},
		def,
	}
	got := outputDevices(infos, def)
	if len(got) != 2 {
		t.Fatalf("expected 2 output devices, got %d", len(got))
	}
	if got[0].Name != "hdmi" || got[0].IsDefault || got[0].HostAPI != "" {
		t.Errorf("unexpected first device: %+v", got[0])
	}
	if got[1].Name != "default" || !got[1].IsDefault || got[1].HostAPI != "ALSA" || got[1].DefaultSampleRate != 48000 {
		t.Errorf("unexpected second device: %+v", got[1])
	}
}
