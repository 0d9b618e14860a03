package dispatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/elabmcp/internal/domain/catalog"
)

// Request is one incoming tool call.
type Request struct {
	Name      string
	Arguments map[string]any
}

// Result is the rendered outcome: exactly one text block, flagged when it
// describes a failure.
type Result struct {
	Text    string
	IsError bool
}

// Dispatcher routes tool requests to backend operations and renders the
// outcomes. A failed call never returns an error to the transport; it is
// normalized into an error-flagged Result instead.
type Dispatcher struct {
	backend Backend
	log     zerolog.Logger
}

// New builds a Dispatcher over the given backend.
func New(backend Backend, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{backend: backend, log: log}
}

// Handle executes one tool request. Unknown names and missing required
// arguments are rejected before any backend contact. A panic inside an
// operation is contained and reported as an internal error.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("tool", req.Name).Interface("panic", r).Msg("tool call panicked")
			result = d.fail(req.Name, normalize(fmt.Errorf("panic in tool %s: %v", req.Name, r)))
		}
	}()

	op, ok := operations[req.Name]
	if !ok {
		return d.fail(req.Name, NormalizedError{
			Kind:    KindInternal,
			Message: "unknown tool: " + req.Name,
		})
	}
	def, ok := catalog.ToolByName(req.Name)
	if !ok {
		return d.fail(req.Name, NormalizedError{
			Kind:    KindInternal,
			Message: "unknown tool: " + req.Name,
		})
	}

	a, err := newArgs(def, req.Arguments)
	if err != nil {
		return d.fail(req.Name, normalize(err))
	}

	text, err := op(ctx, d.backend, a)
	if err != nil {
		return d.fail(req.Name, normalize(err))
	}
	return Result{Text: text}
}

func (d *Dispatcher) fail(tool string, e NormalizedError) Result {
	event := d.log.Error().Str("tool", tool).Int("kind", int(e.Kind))
	if e.StatusCode != 0 {
		event = event.Int("status", e.StatusCode)
	}
	event.Msg(e.Message)
	return Result{Text: renderError(e), IsError: true}
}
