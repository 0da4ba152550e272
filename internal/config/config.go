// Package config loads the seqnet TOML configuration.
//
// The file keeps the consumer settings under the same dotted keys Kafka
// clients use (group.id, bootstrap.servers, ...), plus tables for the
// network, the pipeline and logging:
//
//	[group]
//	id = "seqnet"
//
//	[bootstrap]
//	servers = "localhost:9092"
//
//	[commit]
//	enable_auto_commit = true
//
//	[offset]
//	auto_offset_reset = "earliest"
//
//	[topic]
//	name = "features"
//
//	[network]
//	widths = [3, 5, 2]
//
//	[pipeline]
//	mode = "stateless"
//
//	[log]
//	level = "info"
//	format = "text"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/born-ml/seqnet/internal/kafka"
	"github.com/born-ml/seqnet/internal/stream"
)

// Config is the decoded configuration file.
type Config struct {
	Group     GroupConfig     `toml:"group"`
	Bootstrap BootstrapConfig `toml:"bootstrap"`
	Commit    CommitConfig    `toml:"commit"`
	Offset    OffsetConfig    `toml:"offset"`
	Topic     TopicConfig     `toml:"topic"`
	Network   NetworkConfig   `toml:"network"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	Log       LogConfig       `toml:"log"`
}

// GroupConfig holds group.id.
type GroupConfig struct {
	ID string `toml:"id"`
}

// BootstrapConfig holds bootstrap.servers, a comma separated broker list.
type BootstrapConfig struct {
	Servers string `toml:"servers"`
}

// CommitConfig holds commit.enable_auto_commit.
type CommitConfig struct {
	EnableAutoCommit bool `toml:"enable_auto_commit"`
}

// OffsetConfig holds offset.auto_offset_reset.
type OffsetConfig struct {
	AutoOffsetReset string `toml:"auto_offset_reset"`
}

// TopicConfig holds topic.name.
type TopicConfig struct {
	Name string `toml:"name"`
}

// NetworkConfig describes the network, either by widths (random weights)
// or by explicit layers. Layers wins when both are set.
type NetworkConfig struct {
	Widths []int         `toml:"widths"`
	Layers []LayerConfig `toml:"layers"`
}

// LayerConfig is one explicit layer.
type LayerConfig struct {
	Neurons []NeuronConfig `toml:"neurons"`
}

// NeuronConfig is one explicit neuron.
type NeuronConfig struct {
	Weights []float64 `toml:"weights"`
	Bias    float64   `toml:"bias"`
}

// PipelineConfig selects the evaluation mode.
type PipelineConfig struct {
	Mode       string `toml:"mode"`
	ResetEvery int    `toml:"reset_every"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ValidationError reports an invalid or missing setting.
type ValidationError struct {
	Key    string // Dotted key, e.g. "topic.name"
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Default returns the configuration used for keys absent from the file.
func Default() Config {
	return Config{
		Offset:   OffsetConfig{AutoOffsetReset: kafka.OffsetEarliest},
		Pipeline: PipelineConfig{Mode: stream.ModeStateless.String()},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads, decodes and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse config: unknown keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting the consumer and network need.
func (c *Config) Validate() error {
	if c.Group.ID == "" {
		return &ValidationError{Key: "group.id", Reason: "must be set"}
	}
	if len(c.Brokers()) == 0 {
		return &ValidationError{Key: "bootstrap.servers", Reason: "must list at least one broker"}
	}
	if c.Topic.Name == "" {
		return &ValidationError{Key: "topic.name", Reason: "must be set"}
	}
	switch c.Offset.AutoOffsetReset {
	case kafka.OffsetEarliest, kafka.OffsetLatest:
	default:
		return &ValidationError{
			Key:    "offset.auto_offset_reset",
			Reason: fmt.Sprintf("must be %q or %q, got %q", kafka.OffsetEarliest, kafka.OffsetLatest, c.Offset.AutoOffsetReset),
		}
	}
	if err := c.Network.Validate(); err != nil {
		return err
	}
	if _, err := stream.ParseMode(c.Pipeline.Mode); err != nil {
		return &ValidationError{Key: "pipeline.mode", Reason: err.Error()}
	}
	if c.Pipeline.ResetEvery < 0 {
		return &ValidationError{Key: "pipeline.reset_every", Reason: "must not be negative"}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return &ValidationError{Key: "log.level", Reason: err.Error()}
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return &ValidationError{Key: "log.format", Reason: fmt.Sprintf("must be \"text\" or \"json\", got %q", c.Log.Format)}
	}
	return nil
}

// Validate checks the network description without building it.
func (n *NetworkConfig) Validate() error {
	if len(n.Layers) > 0 {
		for i, l := range n.Layers {
			if len(l.Neurons) == 0 {
				return &ValidationError{Key: fmt.Sprintf("network.layers[%d]", i), Reason: "has no neurons"}
			}
		}
		return nil
	}
	if len(n.Widths) < 2 {
		return &ValidationError{Key: "network.widths", Reason: "needs an input and at least one layer width"}
	}
	for i, w := range n.Widths {
		if w <= 0 {
			return &ValidationError{Key: fmt.Sprintf("network.widths[%d]", i), Reason: "must be positive"}
		}
	}
	return nil
}

// Brokers splits bootstrap.servers on commas.
func (c *Config) Brokers() []string {
	var brokers []string
	for _, s := range strings.Split(c.Bootstrap.Servers, ",") {
		if s = strings.TrimSpace(s); s != "" {
			brokers = append(brokers, s)
		}
	}
	return brokers
}

// Kafka returns the reader settings.
func (c *Config) Kafka() kafka.Config {
	return kafka.Config{
		Brokers:         c.Brokers(),
		GroupID:         c.Group.ID,
		Topic:           c.Topic.Name,
		AutoOffsetReset: c.Offset.AutoOffsetReset,
		AutoCommit:      c.Commit.EnableAutoCommit,
	}
}

// PipelineOptions returns the pipeline options for mode and reset_every.
func (c *Config) PipelineOptions() ([]stream.Option, error) {
	mode, err := stream.ParseMode(c.Pipeline.Mode)
	if err != nil {
		return nil, err
	}
	return []stream.Option{
		stream.WithMode(mode),
		stream.WithResetEvery(c.Pipeline.ResetEvery),
	}, nil
}

// ParseWidths parses a whitespace or comma separated width list such as
// "3 5 2".
func ParseWidths(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	widths := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("width %d: %w", i, err)
		}
		widths[i] = n
	}
	return widths, nil
}
