package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "genius",
	Short: "GuestReview Genius - AI assistant service for vacation rental hosts",
	Long: `GuestReview Genius is an HTTP service that helps vacation rental hosts
respond to guest reviews and understand customer feedback.

It proxies an OpenAI-compatible completion API, providing:
  - Review-response chat grounded in host guidelines and playbooks
  - Feedback summarization with a freshness-bounded cache
  - Survey and feedback intake with persistent storage
  - Admin endpoints over the collected records`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "genius.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
