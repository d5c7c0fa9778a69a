// Package cli defines the trainingd command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trainingd",
	Short: "Developer training platform backend",
	Long:  "trainingd serves the learning paths, quizzes, code playground and user progress API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("addr", "", "HTTP listen address (overrides HTTP_ADDR env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to a YAML content catalog (overrides CONTENT_PATH env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
