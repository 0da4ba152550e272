// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stream feeds a message stream through a network, one message at
// a time.
//
// Example:
//
//	p := stream.New(network, source, decode, stream.WithMode(stream.ModeStateful))
//	err := p.Run(ctx)
package stream

import (
	"log/slog"

	"github.com/born-ml/seqnet/internal/stream"
)

// Pipeline feeds messages from a Source through a Model.
type Pipeline = stream.Pipeline

// Source delivers messages one at a time.
type Source = stream.Source

// Message is one payload delivered by a Source.
type Message = stream.Message

// Decoder turns a payload into a feature vector.
type Decoder = stream.Decoder

// Model is the network interface driven by a Pipeline.
type Model = stream.Model

// Result is the outcome of processing one message.
type Result = stream.Result

// Sink receives every successful Result.
type Sink = stream.Sink

// Stats counts processed and skipped messages.
type Stats = stream.Stats

// Option configures a Pipeline.
type Option = stream.Option

// Mode selects stateless or stateful evaluation.
type Mode = stream.Mode

// DecodeError wraps a payload decoding failure.
type DecodeError = stream.DecodeError

// Evaluation modes.
const (
	ModeStateless = stream.ModeStateless
	ModeStateful  = stream.ModeStateful
)

// ErrAlreadyRunning is returned by Run when the pipeline is already running.
var ErrAlreadyRunning = stream.ErrAlreadyRunning

// New creates an idle pipeline.
func New(model Model, source Source, decode Decoder, opts ...Option) *Pipeline {
	return stream.New(model, source, decode, opts...)
}

// ParseMode parses "stateless" or "stateful".
func ParseMode(s string) (Mode, error) {
	return stream.ParseMode(s)
}

// WithMode selects stateless or stateful evaluation.
func WithMode(m Mode) Option {
	return stream.WithMode(m)
}

// WithResetEvery resets the model state after every n processed messages.
func WithResetEvery(n int) Option {
	return stream.WithResetEvery(n)
}

// WithSink sets the function receiving results.
func WithSink(s Sink) Option {
	return stream.WithSink(s)
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return stream.WithLogger(l)
}
