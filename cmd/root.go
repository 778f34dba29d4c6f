package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Math word problem web service",
	Long:  "MathQuest — HTTP API that generates math word problems with an LLM, grades answers, issues hints and worked solutions, and keeps a running score.",
	RunE: runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
