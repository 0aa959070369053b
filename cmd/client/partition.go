package main

import (
	"context"

	"github.com/spf13/cobra"

	"hmsv2/internal/client/app"
)

var partitionLocation string

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Manage partitions; values are joined with '/', e.g. 2024/01",
}

var partitionListCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "List partitions of a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.ListPartitions(ctx, args[0]) })
	},
}

var partitionGetCmd = &cobra.Command{
	Use:   "get <table> <values>",
	Short: "Show one partition",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.GetPartition(ctx, args[0], args[1]) })
	},
}

var partitionAddCmd = &cobra.Command{
	Use:   "add <table> <values>...",
	Short: "Add partitions over one stream",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error {
			return a.AddPartitions(ctx, args[0], partitionLocation, args[1:])
		})
	},
}

var partitionDropCmd = &cobra.Command{
	Use:   "drop <table> <values>...",
	Short: "Drop partitions; missing ones are skipped",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.DropPartitions(ctx, args[0], args[1:]) })
	},
}

func init() {
	partitionAddCmd.Flags().StringVar(&partitionLocation, "location", "", "location for the new partitions")
	partitionCmd.AddCommand(partitionListCmd, partitionGetCmd, partitionAddCmd, partitionDropCmd)
}
