package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brewin-lang/brewin"
	"github.com/brewin-lang/brewin/vm"
)

var sexpFlag bool

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a Brewin program and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	Run:   parseCommand,
}

func init() {
	parseCmd.Flags().StringVar(&langVersion, "version", "4", "Language version (1-4)")
	parseCmd.Flags().BoolVar(&sexpFlag, "sexp", false, "Print the tree as an s-expression instead of YAML")
}

func parseCommand(cmd *cobra.Command, args []string) {
	v, err := vm.ParseVersion(langVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad --version")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't read program")
	}
	var loader brewin.Loader
	n, err := loader.Parse(string(src), v)
	if err != nil {
		exitWithError(err)
	}
	if sexpFlag {
		fmt.Println(n.String())
		return
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		log.Fatal().Err(err).Msg("Couldn't encode tree")
	}
	enc.Close()
}
