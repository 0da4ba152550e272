package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[group]
id = "seqnet"

[bootstrap]
servers = "localhost:9092"

[topic]
name = "features"

[[network.layers]]
[[network.layers.neurons]]
weights = [0.5, 0.1, -0.2]
bias = 0.0
[[network.layers.neurons]]
weights = [0.3, -0.1, 0.4]
bias = 0.1
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decodeOutputs(t *testing.T, s string) [][]float64 {
	t.Helper()
	var out [][]float64
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "seqnet "+version+"\n", stdout)
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "train")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "train"`)

	code, _, _ = runCLI(t, "")
	assert.Equal(t, 2, code)
}

func TestInfer_Stateful(t *testing.T) {
	code, stdout, stderr := runCLI(t, "[[1,1,1],[1,1,1]]", "infer", "-config", writeConfig(t))
	require.Equal(t, 0, code, stderr)

	out := decodeOutputs(t, stdout)
	require.Len(t, out, 2)
	assert.InDeltaSlice(t, []float64{0.4, 0.7}, out[0], 1e-12)
	assert.InDeltaSlice(t, []float64{0.8, 1.4}, out[1], 1e-12)
}

func TestInfer_Stateless(t *testing.T) {
	code, stdout, stderr := runCLI(t, "[[1,1,1],[1,1,1]]", "infer", "-config", writeConfig(t), "-mode", "stateless")
	require.Equal(t, 0, code, stderr)

	out := decodeOutputs(t, stdout)
	require.Len(t, out, 2)
	assert.InDeltaSlice(t, []float64{0.4, 0.7}, out[1], 1e-12)
}

func TestInfer_InputFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "seq.json")
	require.NoError(t, os.WriteFile(input, []byte("[[0.5,-0.1,0.3]]"), 0o600))

	code, stdout, stderr := runCLI(t, "", "infer", "-widths", "3 5 2", "-input", input)
	require.Equal(t, 0, code, stderr)

	out := decodeOutputs(t, stdout)
	require.Len(t, out, 1)
	assert.Len(t, out[0], 2)
}

func TestInfer_Strict(t *testing.T) {
	code, _, stderr := runCLI(t, "[[1,1,1],[1,1]]", "infer", "-config", writeConfig(t), "-strict")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "vector 1")
	assert.Contains(t, stderr, "dimension mismatch")

	// Without -strict the short vector is truncated silently.
	code, stdout, stderr := runCLI(t, "[[1,1,1],[1,1]]", "infer", "-config", writeConfig(t))
	require.Equal(t, 0, code, stderr)
	assert.Len(t, decodeOutputs(t, stdout), 2)
}

func TestInfer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"no network", "[]", []string{"infer"}},
		{"both sources", "[]", []string{"infer", "-widths", "3 2", "-config", "x.toml"}},
		{"bad widths", "[]", []string{"infer", "-widths", "3"}},
		{"bad mode", "[]", []string{"infer", "-widths", "3 2", "-mode", "sideways"}},
		{"bad input", "{", []string{"infer", "-widths", "3 2"}},
		{"missing config", "[]", []string{"infer", "-config", "does-not-exist.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, 1, code)
		})
	}
}
