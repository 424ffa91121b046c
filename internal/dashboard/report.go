package dashboard

import "github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"

// Failure is one slot that could not be drawn.
type Failure struct {
	Slot model.Slot
	Err  error
}

// Report summarizes one initialization.
type Report struct {
	Drawn   []model.Slot
	Skipped []model.Slot
	// Failed is the slot whose failure stopped the sequence (or the last
	// failing slot with IsolateSlots).
	Failed   model.Slot
	Err      error
	Failures []Failure

	current model.Slot
}

// OK reports whether initialization finished without a failure.
func (r Report) OK() bool {
	return r.Err == nil
}

func (r *Report) merge(o Report) {
	r.Drawn = append(r.Drawn, o.Drawn...)
	r.Skipped = append(r.Skipped, o.Skipped...)
	r.Failures = append(r.Failures, o.Failures...)
	if o.Err != nil {
		r.Failed = o.Failed
		r.Err = o.Err
	}
}

// Summary is the JSON form of a Report.
type Summary struct {
	Drawn   []model.Slot `json:"drawn"`
	Skipped []model.Slot `json:"skipped"`
	Failed  model.Slot   `json:"failed,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func (r Report) Summary() Summary {
	s := Summary{
		Drawn:   r.Drawn,
		Skipped: r.Skipped,
		Failed:  r.Failed,
	}
	if s.Drawn == nil {
		s.Drawn = []model.Slot{}
	}
	if s.Skipped == nil {
		s.Skipped = []model.Slot{}
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}
