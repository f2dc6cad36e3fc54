package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of brewin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("brewin version 1.0.0 (language v1-v4)")
	},
}
