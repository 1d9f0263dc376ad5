package oscillator

import (
	"math"
	"sync/atomic"
)

const (
	// DefaultFrequency is the tone frequency in Hz before any slider moves.
	DefaultFrequency = 500.0
	// DefaultLevel is the linear output gain before any slider moves.
	DefaultLevel = 0.1
)

const twoPi = 2 * math.Pi

// Engine is a sine oscillator whose frequency and level glide linearly
// toward their targets over one rendered block.
//
// Targets may be written from any goroutine. Everything else belongs to the
// goroutine that calls Configure and the Render methods; those must not run
// concurrently with each other.
type Engine struct {
	sampleRate       float64
	currentAngle     float64
	angleDelta       float64
	currentFrequency float64
	currentLevel     float64
	wrapPhase        bool

	targetFrequency uint64 // atomic float64 bits
	targetLevel     uint64 // atomic float64 bits

	// published at the end of each block for readers outside the audio thread
	shownFrequency uint64
	shownLevel     uint64
	shownRate      uint64
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithFrequency sets the initial current and target frequency.
func WithFrequency(hz float64) Option {
	return func(e *Engine) { e.currentFrequency = hz }
}

// WithLevel sets the initial current and target level.
func WithLevel(gain float64) Option {
	return func(e *Engine) { e.currentLevel = gain }
}

// WithPhaseWrap folds the phase accumulator back into [0, 2π) after every
// block instead of letting it grow without bound.
func WithPhaseWrap(wrap bool) Option {
	return func(e *Engine) { e.wrapPhase = wrap }
}

// New creates an Engine. It produces silence until Configure is called
// with a positive sample rate.
func New(opts ...Option) *Engine {
	e := &Engine{
		currentFrequency: DefaultFrequency,
		currentLevel:     DefaultLevel,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetTargetFrequency(e.currentFrequency)
	e.SetTargetLevel(e.currentLevel)
	e.publish()
	return e
}

// Configure sets the sample rate and recomputes the phase increment from the
// current frequency. Call it before the first block and whenever the output
// device is (re)started.
func (e *Engine) Configure(sampleRate float64) {
	e.sampleRate = sampleRate
	if sampleRate > 0 {
		e.updateAngleDelta()
	} else {
		e.angleDelta = 0
	}
	atomic.StoreUint64(&e.shownRate, math.Float64bits(sampleRate))
}

// SetTargetFrequency stores the frequency the next block glides toward.
// The value is not validated.
func (e *Engine) SetTargetFrequency(hz float64) {
	atomic.StoreUint64(&e.targetFrequency, math.Float64bits(hz))
}

// SetTargetLevel stores the gain the next block ramps toward.
// The value is not validated.
func (e *Engine) SetTargetLevel(gain float64) {
	atomic.StoreUint64(&e.targetLevel, math.Float64bits(gain))
}

// TargetFrequency returns the most recently stored target frequency.
func (e *Engine) TargetFrequency() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.targetFrequency))
}

// TargetLevel returns the most recently stored target level.
func (e *Engine) TargetLevel() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.targetLevel))
}

// CurrentFrequency returns the frequency reached at the end of the last
// rendered block. Safe to call from any goroutine.
func (e *Engine) CurrentFrequency() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.shownFrequency))
}

// CurrentLevel returns the gain reached at the end of the last rendered
// block. Safe to call from any goroutine.
func (e *Engine) CurrentLevel() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.shownLevel))
}

// SampleRate returns the rate passed to the last Configure call.
func (e *Engine) SampleRate() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.shownRate))
}

func (e *Engine) updateAngleDelta() {
	cyclesPerSample := e.currentFrequency / e.sampleRate
	e.angleDelta = cyclesPerSample * twoPi
}

func (e *Engine) publish() {
	atomic.StoreUint64(&e.shownFrequency, math.Float64bits(e.currentFrequency))
	atomic.StoreUint64(&e.shownLevel, math.Float64bits(e.currentLevel))
}

// RenderBlock fills buf with the next len(buf) mono samples.
//
// Targets are sampled once at the start of the block, so a write that lands
// mid-block takes effect on the next one. It runs on the audio callback and
// must not lock, allocate or log.
func (e *Engine) RenderBlock(buf []float32) {
	n := len(buf)
	if n == 0 {
		return
	}
	if e.sampleRate <= 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	target := e.TargetFrequency()
	if target != e.currentFrequency {
		increment := (target - e.currentFrequency) / float64(n)
		for i := range buf {
			sample := math.Sin(e.currentAngle)
			e.currentFrequency += increment
			e.updateAngleDelta()
			e.currentAngle += e.angleDelta
			buf[i] = float32(sample)
		}
		e.currentFrequency = target
		e.updateAngleDelta()
	} else {
		for i := range buf {
			sample := math.Sin(e.currentAngle)
			e.currentAngle += e.angleDelta
			buf[i] = float32(sample)
		}
	}

	e.applyGainRamp(buf, e.currentLevel, e.TargetLevel())

	if e.wrapPhase {
		e.currentAngle = math.Mod(e.currentAngle, twoPi)
		if e.currentAngle < 0 {
			e.currentAngle += twoPi
		}
	}
	e.publish()
}

// applyGainRamp scales buf[i] by start + (end-start)*i/n and leaves end as
// the current level.
func (e *Engine) applyGainRamp(buf []float32, start, end float64) {
	if start == end {
		g := float32(end)
		for i := range buf {
			buf[i] *= g
		}
	} else {
		step := (end - start) / float64(len(buf))
		for i := range buf {
			buf[i] *= float32(start + step*float64(i))
		}
	}
	e.currentLevel = end
}

// RenderInterleaved renders len(buf)/channels frames and writes each sample
// to every channel of its frame. Trailing samples that do not make up a
// full frame are zeroed.
func (e *Engine) RenderInterleaved(buf []float32, channels int) {
	if channels < 1 {
		channels = 1
	}
	frames := len(buf) / channels
	for i := frames * channels; i < len(buf); i++ {
		buf[i] = 0
	}
	if frames == 0 {
		return
	}
	e.RenderBlock(buf[:frames])
	if channels == 1 {
		return
	}
	// Fan out back to front so no mono sample is overwritten before it is read.
	for f := frames - 1; f >= 0; f-- {
		v := buf[f]
		base := f * channels
		for c := 0; c < channels; c++ {
			buf[base+c] = v
		}
	}
}
