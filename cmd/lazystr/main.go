// Command lazystr builds a lazystr.Store from its arguments and prints it.
//
// The first argument is stored as is; each later argument is added with a
// Compress pass. With -i, the store is loaded from a snapshot first and every
// argument is a Compress pass.
//
//	lazystr [-codec name] [-o snapshot] [-i snapshot] [-expand] [-dump] [-v] text...
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andybalholm/lazystr"
)

func main() {
	var (
		codecName = flag.String("codec", "zstd", "codec for -o snapshots (none, snappy, s2, zstd, lz4, brotli, flate)")
		output    = flag.String("o", "", "write a snapshot to this file")
		input     = flag.String("i", "", "load a snapshot from this file")
		expand    = flag.Bool("expand", false, "print with run-length pairs expanded")
		dump      = flag.Bool("dump", false, "print the reconstruction steps instead of the text")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config{
		codec:  *codecName,
		output: *output,
		input:  *input,
		expand: *expand,
		dump:   *dump,
		args:   flag.Args(),
	}
	if err := run(cfg, os.Stdout, logger); err != nil {
		logger.Error("lazystr failed", "err", err)
		os.Exit(1)
	}
}

type config struct {
	codec  string
	output string
	input  string
	expand bool
	dump   bool
	args   []string
}

func run(cfg config, stdout io.Writer, logger *slog.Logger) error {
	codec, err := lazystr.ParseCodecType(cfg.codec)
	if err != nil {
		return err
	}

	store, passes, err := buildStore(cfg)
	if err != nil {
		return err
	}
	for _, p := range passes {
		store.Compress([]rune(p))
		logger.Debug("compress pass", "input_len", len([]rune(p)), "steps", len(store.Steps()))
	}

	logger.Info("store ready",
		"steps", len(store.Steps()),
		"encoded_length", store.EncodedLength(),
		"fingerprint", fmt.Sprintf("%016x", store.Fingerprint()),
	)

	if cfg.output != "" {
		data, err := lazystr.MarshalStore(store, lazystr.WithCodec(codec))
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.output, data, 0o644); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		logger.Info("snapshot written", "path", cfg.output, "codec", codec, "bytes", len(data))
	}

	switch {
	case cfg.dump:
		_, err = stdout.Write(append(lazystr.AppendText(nil, store), '\n'))
	case cfg.expand:
		var text []rune
		for r := range store.Expanded() {
			text = append(text, r)
		}
		_, err = fmt.Fprintln(stdout, string(text))
	default:
		_, err = fmt.Fprintln(stdout, store.String())
	}
	return err
}

// buildStore returns the starting store and the arguments still to be
// added as Compress passes.
func buildStore(cfg config) (*lazystr.Store[rune], []string, error) {
	if cfg.input != "" {
		data, err := os.ReadFile(cfg.input)
		if err != nil {
			return nil, nil, fmt.Errorf("reading snapshot: %w", err)
		}
		store, err := lazystr.UnmarshalStore[rune](data)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", cfg.input, err)
		}
		return store, cfg.args, nil
	}

	if len(cfg.args) == 0 {
		return lazystr.NewString(""), nil, nil
	}
	return lazystr.NewString(cfg.args[0]), cfg.args[1:], nil
}
