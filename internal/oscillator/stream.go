package oscillator

import (
	"github.com/go-audio/audio"
	"github.com/gopxl/beep"
)

// RenderBuffer fills an interleaved PCM buffer, using its format's channel
// count (mono when the format is missing).
func (e *Engine) RenderBuffer(buf *audio.Float32Buffer) {
	if buf == nil {
		return
	}
	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	e.RenderInterleaved(buf.Data, channels)
}

// BlockRenderer produces mono blocks. *Engine implements it.
type BlockRenderer interface {
	RenderBlock(buf []float32)
}

// Streamer adapts a BlockRenderer to beep.Streamer. Each Stream call is
// rendered as one block, split into chunks when it is larger than the
// scratch buffer.
type Streamer struct {
	renderer BlockRenderer
	scratch  []float32
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer allocates a Streamer whose scratch holds blockSize samples.
func NewStreamer(r BlockRenderer, blockSize int) *Streamer {
	if blockSize < 1 {
		blockSize = 512
	}
	return &Streamer{renderer: r, scratch: make([]float32, blockSize)}
}

// Stream renders len(samples) stereo frames. It never ends.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		chunk := s.scratch
		if rest := len(samples) - n; rest < len(chunk) {
			chunk = chunk[:rest]
		}
		s.renderer.RenderBlock(chunk)
		for i, v := range chunk {
			samples[n+i][0] = float64(v)
			samples[n+i][1] = float64(v)
		}
		n += len(chunk)
	}
	return n, true
}

// Err implements beep.Streamer.
func (*Streamer) Err() error {
	return nil
}
