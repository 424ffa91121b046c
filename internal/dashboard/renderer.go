// Package dashboard turns the JSON payloads embedded in a page into charts.
//
// Initialization is one-shot. Every slot is decoded first, then each slot with
// at least one label is drawn in order. Any failure aborts the rest of the
// sequence, is written once to the diagnostic logger and is never returned to
// the caller; charts drawn before the failure stay drawn. Options.IsolateSlots
// switches to a per-slot boundary instead.
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/chart"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
)

var (
	ErrAlreadyInitialized = errors.New("dashboard already initialized")
	ErrSurfaceNotFound    = errors.New("rendering surface not found")
)

// Page is the document the dashboard reads payloads from and draws into.
type Page interface {
	// Text returns the text content of the element with the given id.
	Text(id string) (string, bool)
	// HasSurface reports whether a rendering surface with the given id exists.
	HasSurface(id string) bool
}

type Options struct {
	// IsolateSlots gives every slot its own failure boundary.
	IsolateSlots bool
}

// Renderer draws the five dashboard charts of one page.
type Renderer struct {
	log  zerolog.Logger
	opts Options

	mu          sync.Mutex
	initialized bool
}

func NewRenderer(log zerolog.Logger, opts Options) *Renderer {
	return &Renderer{log: log, opts: opts}
}

// Initialized reports whether Initialize has already run.
func (r *Renderer) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Initialize reads the payloads from page and draws their charts with lib.
// It never fails; the Report describes what happened.
func (r *Renderer) Initialize(page Page, lib chart.Library) Report {
	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		r.log.Warn().Msg("dashboard initialize called more than once; ignoring")
		return Report{Err: ErrAlreadyInitialized}
	}
	r.initialized = true
	r.mu.Unlock()

	var rep Report
	if r.opts.IsolateSlots {
		r.isolated(page, lib, &rep)
	} else {
		r.guard(&rep, func() error { return r.sequential(page, lib, &rep) })
	}
	return rep
}

// sequential decodes every slot, then draws them in order, stopping at the
// first error.
func (r *Renderer) sequential(page Page, lib chart.Library, rep *Report) error {
	payloads := make([]model.Payload, len(model.Slots))
	for i, slot := range model.Slots {
		rep.current = slot
		p, err := decode(page, slot)
		if err != nil {
			return err
		}
		payloads[i] = p
	}

	for i, slot := range model.Slots {
		rep.current = slot
		if err := r.draw(page, lib, slot, payloads[i], rep); err != nil {
			return err
		}
	}
	rep.current = ""
	return nil
}

func (r *Renderer) isolated(page Page, lib chart.Library, rep *Report) {
	for _, slot := range model.Slots {
		var slotRep Report
		r.guard(&slotRep, func() error {
			slotRep.current = slot
			p, err := decode(page, slot)
			if err != nil {
				return err
			}
			return r.draw(page, lib, slot, p, &slotRep)
		})
		rep.merge(slotRep)
	}
}

// guard runs fn inside the failure boundary. Errors and panics are logged and
// recorded on rep.
func (r *Renderer) guard(rep *Report, fn func() error) {
	defer func() {
		if v := recover(); v != nil {
			r.fail(rep, fmt.Errorf("panic: %v", v))
		}
	}()
	if err := fn(); err != nil {
		r.fail(rep, err)
	}
}

func (r *Renderer) fail(rep *Report, err error) {
	rep.Failed = rep.current
	rep.Err = err
	if rep.Failed != "" {
		rep.Failures = append(rep.Failures, Failure{Slot: rep.Failed, Err: err})
	}
	r.log.Error().
		Err(err).
		Str("slot", string(rep.Failed)).
		Msg("error initializing charts")
}

func (r *Renderer) draw(page Page, lib chart.Library, slot model.Slot, p model.Payload, rep *Report) error {
	if p.LabelCount() == 0 {
		rep.Skipped = append(rep.Skipped, slot)
		return nil
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", slot, err)
	}
	surface := slot.SurfaceID()
	if !page.HasSurface(surface) {
		return fmt.Errorf("%s: %w: #%s", slot, ErrSurfaceNotFound, surface)
	}
	cfg, err := chart.For(p)
	if err != nil {
		return fmt.Errorf("%s: %w", slot, err)
	}
	if err := lib.Draw(surface, cfg); err != nil {
		return fmt.Errorf("%s: %w", slot, err)
	}
	rep.Drawn = append(rep.Drawn, slot)
	r.log.Debug().
		Str("slot", string(slot)).
		Str("surface", surface).
		Int("labels", p.LabelCount()).
		Msg("chart drawn")
	return nil
}

// decode reads the slot's payload from page, substituting the slot default
// when the element is absent or empty.
func decode(page Page, slot model.Slot) (model.Payload, error) {
	text, ok := page.Text(slot.DataID())
	if !ok || text == "" {
		text = slot.DefaultPayload()
	}
	p, err := model.NewPayload(slot)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(text), p); err != nil {
		return nil, fmt.Errorf("parse %s payload: %w", slot, err)
	}
	return p, nil
}
