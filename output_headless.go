//go:build headless

package synth

// OtoSink is the headless build's null-object stand-in for the real oto
// backend (output_oto.go): it still pulls samples from the engine but
// never opens a real audio device.
type OtoSink struct {
	engine *Engine
}

// NewOtoSink never fails in the headless build.
func NewOtoSink(engine *Engine, sampleRate int) (*OtoSink, error) {
	return &OtoSink{engine: engine}, nil
}

// Read drains the engine at the same rate the real sink would, discarding
// the rendered frames.
func (s *OtoSink) Read(p []byte) (n int, err error) {
	frames := len(p) / 4
	for i := 0; i < frames; i++ {
		s.engine.Render()
	}
	return frames * 4, nil
}

func (s *OtoSink) Start()       {}
func (s *OtoSink) Stop()        {}
func (s *OtoSink) Close() error { return nil }
