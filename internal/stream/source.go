package stream

import (
	"context"
	"fmt"
	"time"
)

// Message is one payload delivered by a Source.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
}

// String identifies the message by its position, for logs.
func (m Message) String() string {
	return fmt.Sprintf("%s/%d@%d", m.Topic, m.Partition, m.Offset)
}

// Source delivers messages one at a time.
//
// Fetch blocks until a message is available or ctx is done. Returning
// io.EOF signals that the source is exhausted. Commit marks messages as
// processed so they are not redelivered.
type Source interface {
	Fetch(ctx context.Context) (Message, error)
	Commit(ctx context.Context, msgs ...Message) error
}

// Decoder turns a payload into a feature vector.
type Decoder func(payload []byte) ([]float64, error)

// Model is the network interface the pipeline drives.
//
// *nn.Network implements it.
type Model interface {
	// ForwardChecked evaluates inputs without touching state.
	ForwardChecked(inputs []float64) ([]float64, error)

	// StepChecked advances the model state by one step.
	StepChecked(inputs []float64) ([]float64, error)

	// ResetStates zeroes all state.
	ResetStates()
}

// Result is the outcome of processing one message.
type Result struct {
	Message Message
	Input   []float64
	Output  []float64
	Mode    Mode
	Seq     int64 // 1-based count of processed messages since Run started
}

// Sink receives every successful Result, in message order.
type Sink func(ctx context.Context, res Result)
