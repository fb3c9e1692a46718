package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"guestreview/genius/pkg/cli"
	"guestreview/genius/pkg/config"
	"guestreview/genius/pkg/storage"
)

var recordsFlags struct {
	output string
	limit  int
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect stored records",
	Long:  `Inspect surveys, feedback, and chat transcripts from the storage backend.`,
}

var recordsSurveysCmd = &cobra.Command{
	Use:   "surveys",
	Short: "List stored survey submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRecords(cmd.Context(), func(ctx context.Context, store storage.Store) (any, error) {
			return store.ListSurveys(ctx, recordsFlags.limit)
		})
	},
}

var recordsFeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "List stored feedback entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRecords(cmd.Context(), func(ctx context.Context, store storage.Store) (any, error) {
			return store.ListFeedback(ctx, recordsFlags.limit)
		})
	},
}

var recordsChatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List stored chat transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRecords(cmd.Context(), func(ctx context.Context, store storage.Store) (any, error) {
			return store.ListChats(ctx, recordsFlags.limit)
		})
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsSurveysCmd, recordsFeedbackCmd, recordsChatsCmd)

	recordsCmd.PersistentFlags().StringVarP(&recordsFlags.output, "output", "o", "text", "output format (text, json)")
	recordsCmd.PersistentFlags().IntVar(&recordsFlags.limit, "limit", storage.DefaultListLimit, "maximum records to list")
}

// listRecords opens the configured storage backend, runs the query,
// and prints the result in the requested format.
func listRecords(ctx context.Context, query func(context.Context, storage.Store) (any, error)) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	store, err := buildStorage(cfg)
	if err != nil {
		return cli.NewCommandError("records", err)
	}
	defer store.Close()

	records, err := query(ctx, store)
	if err != nil {
		return cli.NewCommandError("records", err)
	}

	formatter := cli.NewFormatter(cli.OutputFormat(recordsFlags.output))
	return formatter.FormatTo(os.Stdout, records)
}
