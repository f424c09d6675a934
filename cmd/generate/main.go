package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"isorail.dev/internal/config"
	"isorail.dev/internal/generation"
	"isorail.dev/internal/logging"
	"isorail.dev/internal/services"
)

func main() {
	var (
		configFile = flag.String("config", "", "config file (default: config.yaml in . or data/)")
		seed       = flag.Int64("seed", 0, "world seed (default: map.seed from config)")
		cols       = flag.Int("cols", 0, "map columns (default: map.cols from config)")
		rows       = flag.Int("rows", 0, "map rows (default: map.rows from config)")
		format     = flag.String("format", "json", "output format: json or yaml")
		out        = flag.String("out", "", "output file (default: stdout)")
		preview    = flag.Bool("preview", false, "print the terrain and route to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: generate [flags]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Map.Seed = *seed
		case "cols":
			cfg.Map.Cols = *cols
		case "rows":
			cfg.Map.Rows = *rows
		}
	})

	opts := cfg.GenerationOptions(cfg.Map.Seed)
	opts.Logger = logger
	world, err := generation.Generate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	data, err := encode(services.WorldResponse(world), *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(data)
	} else {
		if dir := filepath.Dir(*out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := os.WriteFile(*out, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR writing file: %v\n", err)
			os.Exit(1)
		}
	}

	if *preview {
		for _, line := range previewLines(world) {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	fmt.Fprintf(os.Stderr, "Generated %dx%d world (seed %d): %d cities, route of %d points%s\n",
		world.Grid.Cols, world.Grid.Rows, world.Seed, len(world.Waypoints), world.Route.Len(), fallbackNote(world))
}

func fallbackNote(w *generation.World) string {
	if w.Route.Fallback {
		return " (fallback loop)"
	}
	return ""
}
