package chart

import "sync"

// Library draws a chart configuration into the surface with the given id.
type Library interface {
	Draw(surfaceID string, cfg Config) error
}

// LibraryFunc adapts a function to the Library interface.
type LibraryFunc func(surfaceID string, cfg Config) error

func (f LibraryFunc) Draw(surfaceID string, cfg Config) error {
	return f(surfaceID, cfg)
}

// Call is one recorded draw call.
type Call struct {
	Surface string `json:"surface"`
	Config  Config `json:"config"`
}

// Recorder is a Library that only records the calls it receives.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) Draw(surfaceID string, cfg Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Surface: surfaceID, Config: cfg})
	return nil
}

// Calls returns the recorded calls in draw order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}
