// Package main provides the seqnet CLI.
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "seqnet %s\n", version)
		return 0
	case "consume":
		err = consume(args[1:], stderr)
	case "infer":
		err = infer(args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "seqnet %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "seqnet %s - stateful feed-forward network over a feature stream\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  consume    Consume the configured Kafka topic and log network outputs")
	fmt.Fprintln(w, "  infer      Run a JSON sequence of vectors through the network")
	fmt.Fprintln(w, "  version    Show version")
}
