// Package stream drives a network from a message source, one message at a
// time.
//
// A Pipeline pulls a message from a Source, decodes its payload into a
// feature vector, runs the vector through the model and hands the output to
// a Sink before committing the message and fetching the next one. Messages
// never overlap: each is fully processed before the next fetch.
//
// # Modes
//
// ModeStateless (the default) evaluates every message independently with
// Network.Forward. ModeStateful treats the stream itself as the sequence:
// every message is one Network.Step, so neuron state carries from message
// to message until Reset is called or WithResetEvery triggers.
//
// # Errors
//
// A payload that cannot be decoded, or that decodes to a vector of the
// wrong width, is logged, counted in Stats, committed and skipped. Only
// source failures (fetch or commit) end Run with an error. Cancelling the
// context passed to Run stops the loop and returns nil.
//
// Example:
//
//	p := stream.New(network, reader, kafka.DecodePayload,
//	    stream.WithMode(stream.ModeStateful),
//	    stream.WithLogger(logger),
//	)
//	if err := p.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package stream
