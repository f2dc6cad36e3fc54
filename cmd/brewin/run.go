package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brewin-lang/brewin"
	"github.com/brewin-lang/brewin/brewparse"
	"github.com/brewin-lang/brewin/cas"
	"github.com/brewin-lang/brewin/interp"
	"github.com/brewin-lang/brewin/vm"
)

var (
	langVersion string
	inputFile   string
	cachePath   string
	debugFlag   bool
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a Brewin program",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().StringVar(&langVersion, "version", "4", "Language version (1-4)")
	runCmd.Flags().StringVar(&inputFile, "input", "", "Read program input from this file instead of stdin")
	runCmd.Flags().StringVar(&cachePath, "cache", "", "SQLite database used to cache parsed programs")
	runCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print the loaded function and struct tables")
}

// newLoader returns a loader backed by the SQLite cache at path, or an
// uncached loader when path is empty. The returned func closes the cache.
func newLoader(path string) (*brewin.Loader, func()) {
	if path == "" {
		return &brewin.Loader{}, func() {}
	}
	store, err := cas.OpenSQLite(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't open parse cache")
	}
	pc := cas.NewParseCache(cas.NewLRUCache(store, 0))
	return &brewin.Loader{Cache: pc}, func() {
		hits, misses := pc.Stats()
		log.Debug().Int64("hits", hits).Int64("misses", misses).Msg("Parse cache")
		store.Close()
	}
}

func runCommand(cmd *cobra.Command, args []string) {
	v, err := vm.ParseVersion(langVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad --version")
	}
	loader, closeCache := newLoader(cachePath)
	prog, err := loader.LoadFile(args[0], v)
	closeCache()
	if err != nil {
		exitWithError(err)
	}
	if debugFlag {
		prog.DebugPrint(os.Stderr)
	}

	var in io.Reader = os.Stdin
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't open input file")
		}
		defer f.Close()
		in = f
	}

	if err := interp.Run(prog, interp.NewStreamConsole(in, os.Stdout)); err != nil {
		exitWithError(err)
	}
}

// exitWithError prints program errors as diagnostics and anything else
// through the logger.
func exitWithError(err error) {
	var verr *vm.Error
	var serr *brewparse.SyntaxError
	if errors.As(err, &verr) || errors.As(err, &serr) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Fatal().Err(err).Msg("Run failed")
}
