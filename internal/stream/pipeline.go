package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/born-ml/seqnet/internal/nn"
)

// State is the lifecycle state of a Pipeline.
type State int

// Pipeline states.
const (
	StateIdle State = iota
	StateRunning
)

// String returns a lowercase state name.
func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Stats counts what the pipeline has seen since it was created.
type Stats struct {
	Received        int64 // Messages fetched
	Processed       int64 // Messages that produced a Result
	DecodeErrors    int64 // Messages skipped because the payload did not decode
	DimensionErrors int64 // Messages skipped because the vector had the wrong width
	Resets          int64 // State resets, automatic and manual
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	mode       Mode
	resetEvery int
	sink       Sink
	logger     *slog.Logger
}

// WithMode selects stateless or stateful evaluation.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithResetEvery resets the model state after every n processed messages.
// Zero disables automatic resets. Only meaningful in ModeStateful.
func WithResetEvery(n int) Option {
	return func(o *options) {
		o.resetEvery = n
	}
}

// WithSink sets the function receiving results. The default sink logs each
// result at info level.
func WithSink(s Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Pipeline feeds messages from a Source through a Model.
//
// The pipeline is the single owner of the model while it runs: Run, Reset
// and Stats are serialized by an internal mutex, and the model must not be
// used elsewhere concurrently.
type Pipeline struct {
	model  Model
	source Source
	decode Decoder

	mode       Mode
	resetEvery int
	sink       Sink
	logger     *slog.Logger

	mu         sync.Mutex
	state      State
	stats      Stats
	sinceReset int
}

// New creates an idle pipeline.
func New(model Model, source Source, decode Decoder, opts ...Option) *Pipeline {
	o := &options{
		mode:   ModeStateless,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	p := &Pipeline{
		model:      model,
		source:     source,
		decode:     decode,
		mode:       o.mode,
		resetEvery: o.resetEvery,
		sink:       o.sink,
		logger:     o.logger,
	}
	if p.sink == nil {
		p.sink = p.logResult
	}
	return p
}

// Run processes messages until ctx is cancelled, the source reports
// io.EOF, or fetching or committing fails.
//
// Cancellation and io.EOF return nil. A message that fails to decode or
// has the wrong width is skipped; see the package documentation.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateRunning {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	p.state = StateRunning
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.state = StateIdle
		p.mu.Unlock()
	}()

	p.logger.Info("pipeline running", "mode", p.mode, "reset_every", p.resetEvery)

	var seq int64
	for {
		msg, err := p.source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				p.logger.Info("pipeline stopped", "reason", "context done")
				return nil
			}
			if errors.Is(err, io.EOF) {
				p.logger.Info("pipeline stopped", "reason", "source exhausted")
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		res, ok := p.process(msg, seq+1)
		if ok {
			seq++
			p.sink(ctx, res)
		}

		if err := p.source.Commit(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit %s: %w", msg, err)
		}
	}
}

// process decodes and evaluates one message. It reports false when the
// message was skipped.
func (p *Pipeline) process(msg Message, seq int64) (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Received++

	inputs, err := p.decode(msg.Value)
	if err != nil {
		p.stats.DecodeErrors++
		p.logger.Warn("skipping message", "error", &DecodeError{Message: msg, Err: err})
		return Result{}, false
	}

	var output []float64
	if p.mode == ModeStateful {
		output, err = p.model.StepChecked(inputs)
	} else {
		output, err = p.model.ForwardChecked(inputs)
	}
	if err != nil {
		var dimErr *nn.DimensionError
		if errors.As(err, &dimErr) {
			p.stats.DimensionErrors++
		}
		p.logger.Warn("skipping message", "message", msg.String(), "error", err)
		return Result{}, false
	}
	p.stats.Processed++

	if p.mode == ModeStateful && p.resetEvery > 0 {
		p.sinceReset++
		if p.sinceReset >= p.resetEvery {
			p.resetLocked()
		}
	}

	return Result{
		Message: msg,
		Input:   inputs,
		Output:  output,
		Mode:    p.mode,
		Seq:     seq,
	}, true
}

// Reset zeroes the model state. Use it between logically distinct
// sequences in ModeStateful.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

func (p *Pipeline) resetLocked() {
	p.model.ResetStates()
	p.sinceReset = 0
	p.stats.Resets++
}

// Stats returns a snapshot of the counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// State reports whether Run is in progress.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mode returns the evaluation mode.
func (p *Pipeline) Mode() Mode {
	return p.mode
}

func (p *Pipeline) logResult(ctx context.Context, res Result) {
	p.logger.InfoContext(ctx, "processed output",
		"message", res.Message.String(),
		"seq", res.Seq,
		"input", res.Input,
		"output", res.Output,
	)
}
