package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snipdoc/snipdoc/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		contentDir string
		outDir     string
		baseDir    string
		lookupData string
		language   string
		gitHub     string
		workers    int
		serve      bool
		addr       string
		watch      bool
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&contentDir, "content", "", "Directory of Markdown page sources (default \"content\")")
	flag.StringVar(&outDir, "out", "", "Directory to write rendered HTML (default \"public\")")
	flag.StringVar(&baseDir, "base", "", "Root directory example paths resolve against (default: parent of content)")
	flag.StringVar(&lookupData, "lookup.data", "", "YAML data file mapping dynPath keys to per-language example paths")
	flag.StringVar(&language, "lang", "", "Default language for dynPath resolution, e.g. 'python'")
	flag.StringVar(&gitHub, "github", "", "Default repository URL for view-source permalinks")
	flag.IntVar(&workers, "workers", 0, "Parallel page renders (0 uses GOMAXPROCS)")
	flag.BoolVar(&serve, "serve", false, "Serve the built output after building")
	flag.StringVar(&addr, "addr", "", "Preview server listen address (default \"127.0.0.1:8080\")")
	flag.BoolVar(&watch, "watch", false, "Rebuild when content changes (implies -serve)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		ContentDir: contentDir,
		OutDir:     outDir,
		BaseDir:    baseDir,
		LookupData: lookupData,
		Language:   language,
		GitHub:     gitHub,
		Workers:    workers,
		Serve:      serve || watch,
		Addr:       addr,
		Watch:      watch,
		Verbose:    verbose,
	}

	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("load config failed")
			os.Exit(2)
		}
		app.MergeFileConfigInto(&cfg, fc)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Every failure here is an authoring or configuration bug that must
		// block publication, so the exit code is always nonzero.
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	if cfg.Serve || cfg.Watch {
		return a.Serve(ctx)
	}
	return a.Build(ctx)
}
