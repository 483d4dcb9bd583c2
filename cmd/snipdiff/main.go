// snipdiff compares two built documentation trees on visible content. CI runs
// it against the base branch's output and the pull request's output so a
// review sees exactly which pages changed.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snipdoc/snipdoc/internal/diff"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		oldDir       string
		newDir       string
		failOnChange bool
		verbose      bool
	)

	flag.StringVar(&oldDir, "old", "", "Built output of the base branch")
	flag.StringVar(&newDir, "new", "", "Built output of the change under review")
	flag.BoolVar(&failOnChange, "fail-on-change", false, "Exit nonzero when content differs")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if oldDir == "" || newDir == "" {
		log.Error().Msg("both -old and -new are required")
		os.Exit(2)
	}

	report, err := diff.Trees(oldDir, newDir)
	if err != nil {
		log.Error().Err(err).Msg("diff failed")
		os.Exit(2)
	}

	report.WriteSummary(os.Stdout)
	if failOnChange && !report.Identical() {
		os.Exit(1)
	}
}
