package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/seqnet/internal/config"
	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/stream"
)

// infer reads a JSON array of vectors and prints one output vector per
// input as a JSON array.
//
//	echo '[[1,1,1],[1,1,1]]' | seqnet infer -config config.toml -mode stateful
func infer(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "TOML configuration holding the [network] table")
	widths := fs.String("widths", "", `layer widths for a randomly initialized network, e.g. "3 5 2"`)
	input := fs.String("input", "-", "JSON file with the input sequence, - for stdin")
	modeName := fs.String("mode", "stateful", "stateful (one sequence) or stateless (independent vectors)")
	strict := fs.Bool("strict", false, "reject vectors whose width differs from the network input width")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := stream.ParseMode(*modeName)
	if err != nil {
		return err
	}
	network, err := loadNetwork(*path, *widths)
	if err != nil {
		return err
	}
	seq, err := readSequence(*input, stdin)
	if err != nil {
		return err
	}

	outputs, err := evaluate(network, seq, mode, *strict)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	return enc.Encode(outputs)
}

func loadNetwork(path, widths string) (*nn.Network, error) {
	switch {
	case path != "" && widths != "":
		return nil, errors.New("-config and -widths are mutually exclusive")
	case path != "":
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		return config.BuildNetwork(cfg.Network)
	case widths != "":
		w, err := config.ParseWidths(widths)
		if err != nil {
			return nil, err
		}
		return nn.NewNetwork(w...)
	default:
		return nil, errors.New("one of -config or -widths is required")
	}
}

func readSequence(path string, stdin io.Reader) ([][]float64, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var seq [][]float64
	if err := json.NewDecoder(r).Decode(&seq); err != nil {
		return nil, fmt.Errorf("decode input sequence: %w", err)
	}
	return seq, nil
}

func evaluate(network *nn.Network, seq [][]float64, mode stream.Mode, strict bool) ([][]float64, error) {
	if !strict {
		if mode == stream.ModeStateful {
			return network.ForwardSequence(seq), nil
		}
		outputs := make([][]float64, len(seq))
		for i, x := range seq {
			outputs[i] = network.Forward(x)
		}
		return outputs, nil
	}

	outputs := make([][]float64, len(seq))
	for i, x := range seq {
		var err error
		if mode == stream.ModeStateful {
			outputs[i], err = network.StepChecked(x)
		} else {
			outputs[i], err = network.ForwardChecked(x)
		}
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
	}
	return outputs, nil
}
