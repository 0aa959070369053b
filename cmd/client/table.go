package main

import (
	"context"

	"github.com/spf13/cobra"

	"hmsv2/internal/client/app"
)

var (
	tableLocation      string
	tableColumns       []string
	tablePartitionKeys []string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage tables of the database given by --db",
}

var tableListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.ListTables(ctx) })
	},
}

var tableGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.GetTable(ctx, args[0]) })
	},
}

var tableCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error {
			return a.CreateTable(ctx, args[0], tableLocation, tableColumns, tablePartitionKeys)
		})
	},
}

var tableDropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Drop a table with all its partitions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.DropTable(ctx, args[0]) })
	},
}

func init() {
	tableCreateCmd.Flags().StringVar(&tableLocation, "location", "", "table location")
	tableCreateCmd.Flags().StringArrayVar(&tableColumns, "column", nil, "column as name:type, repeatable")
	tableCreateCmd.Flags().StringArrayVar(&tablePartitionKeys, "partition-key", nil, "partition key as name:type, repeatable")
	tableCmd.AddCommand(tableListCmd, tableGetCmd, tableCreateCmd, tableDropCmd)
}
