package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brewin-lang/brewin/cas"
	"github.com/brewin-lang/brewin/suite"
)

var (
	jobsFlag    int
	detailsFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check SUITE...",
	Short: "Run test suites of Brewin programs",
	Args:  cobra.MinimumNArgs(1),
	Run:   checkCommand,
}

func init() {
	checkCmd.Flags().IntVar(&jobsFlag, "jobs", 0, "Cases to run in parallel (default: number of CPUs)")
	checkCmd.Flags().BoolVar(&detailsFlag, "details", false, "Show output of failing cases")
	checkCmd.Flags().StringVar(&cachePath, "cache", "", "SQLite database used to cache parsed programs")
}

func checkCommand(cmd *cobra.Command, args []string) {
	var suites []*suite.Suite
	for _, path := range args {
		s, err := suite.LoadSuiteFromFile(path)
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't load suite")
		}
		suites = append(suites, s)
	}

	loader, closeCache := newLoader(cachePath)
	defer closeCache()
	if loader.Cache == nil {
		loader.Cache = cas.NewParseCache(cas.NewMemoryCAS())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintln(os.Stderr, color.Cyan.Sprintf("Running %d suite(s)...", len(suites)))
	r := &suite.Runner{
		Suites:   suites,
		Jobs:     jobsFlag,
		Loader:   loader,
		Reporter: &suite.ColorReporter{Writer: os.Stderr},
	}
	rep, err := r.Run(ctx)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("Error while running suites")
	}
	suite.FormatReport(os.Stdout, rep, detailsFlag)
	if !rep.OK() {
		closeCache()
		os.Exit(1)
	}
}
