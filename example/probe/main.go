package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/deepch/mediaparser/format"
	"github.com/deepch/mediaparser/format/mkv/mkvio"
	"github.com/deepch/mediaparser/format/mp4/mp4io"
)

const envPrefix = "MEDIAPARSER_"

type optionFlags map[string]interface{}

func (o optionFlags) String() string {
	return fmt.Sprint(map[string]interface{}(o))
}

func (o optionFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("option %q is not key=value", v)
	}
	o[key] = value
	return nil
}

// envOptions reads MEDIAPARSER_CHUNK_SIZE style variables.
func envOptions(into optionFlags) {
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, envPrefix) || key == envPrefix+"DEBUG" {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if _, set := into[name]; !set {
			into[name] = value
		}
	}
}

func main() {
	opts := optionFlags{}
	flag.Var(opts, "o", "parser option key=value (chunk_size, max_leaf_size, skip_samples, parallel)")
	tree := flag.Bool("tree", false, "print the box or element tree")
	samples := flag.Bool("samples", false, "print every sample")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if os.Getenv(envPrefix+"DEBUG") != "" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	envOptions(opts)
	parserOpts, err := format.DecodeOptions(opts)
	if err != nil {
		log.Error("bad options", "error", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := format.ProbeFiles(ctx, flag.Args(), parserOpts, log)
	for i, res := range results {
		if res == nil {
			continue
		}
		fmt.Printf("%s: %s\n", flag.Arg(i), res.Kind)
		if *tree {
			for _, b := range res.Boxes {
				mp4io.FprintBox(os.Stdout, b)
			}
			for _, el := range res.Elements {
				mkvio.FprintElement(os.Stdout, el)
			}
		}
		for _, t := range res.Tracks {
			fmt.Printf("  %s duration=%s\n", t, t.Time(t.Duration))
			if !*samples {
				continue
			}
			for n, s := range t.Samples {
				fmt.Printf("    %d offset=%d size=%d dts=%d pts=%d key=%t\n", n, s.Offset, s.Size, s.DTS, s.PTS, s.KeyFrame)
			}
		}
	}
	if err != nil {
		log.Error("probe failed", "error", err)
		os.Exit(1)
	}
}
