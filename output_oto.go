//go:build !headless

package synth

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoSink drives a real-time stereo audio device via ebitengine/oto/v3,
// pulling interleaved signed-16-bit frames from an Engine on every Read.
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player

	engine *Engine

	mutex   sync.Mutex
	started bool
}

// NewOtoSink opens an oto context at sampleRate and wires it to engine.
// Apart from Close, which passes on the player's error, construction is
// the only place in this package that can return a non-nil error; the
// render path itself never fails.
func NewOtoSink(engine *Engine, sampleRate int) (*OtoSink, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready

	sink := &OtoSink{ctx: ctx, engine: engine}
	sink.player = ctx.NewPlayer(sink)
	return sink, nil
}

// Read implements io.Reader, filling p with interleaved little-endian
// signed-16-bit stereo frames rendered one sample at a time from the
// attached Engine.
func (s *OtoSink) Read(p []byte) (n int, err error) {
	frames := len(p) / 4
	for i := 0; i < frames; i++ {
		left, right := s.engine.Render()
		off := i * 4
		putInt16LE(p[off:], int16(left))
		putInt16LE(p[off+2:], int16(right))
	}
	return frames * 4, nil
}

func putInt16LE(p []byte, v int16) {
	p[0] = byte(v)
	p[1] = byte(v >> 8)
}

// Start begins playback.
func (s *OtoSink) Start() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.started {
		s.player.Play()
		s.started = true
	}
}

// Stop halts playback; the sink can be Start()ed again afterward.
func (s *OtoSink) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started {
		s.player.Pause()
		s.started = false
	}
}

// Close releases the underlying player and context.
func (s *OtoSink) Close() error {
	s.Stop()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.player.Close()
}
