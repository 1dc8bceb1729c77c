package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wardenctl",
	Short: "Warden security facade utility",
	Long:  `A tool for exercising the warden security facade: authenticate tokens, inspect identities, and check permissions.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
