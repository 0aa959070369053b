package main

import (
	"context"

	"github.com/spf13/cobra"

	"hmsv2/internal/client/app"
)

var (
	dbPattern  string
	dbLocation string
	dbParams   map[string]string
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage databases",
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List databases in the namespace",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.ListDatabases(ctx, dbPattern) })
	},
}

var dbGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one database",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.GetDatabase(ctx, args[0]) })
	},
}

var dbCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a database",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error {
			return a.CreateDatabase(ctx, args[0], dbLocation, dbParams)
		})
	},
}

var dbAlterCmd = &cobra.Command{
	Use:   "alter <name>",
	Short: "Replace database parameters and optionally its location",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error {
			return a.AlterDatabase(ctx, args[0], dbLocation, dbParams)
		})
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Drop a database with all its tables and partitions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.DropDatabase(ctx, args[0]) })
	},
}

func init() {
	dbListCmd.Flags().StringVar(&dbPattern, "pattern", "", "glob over database names")
	for _, c := range []*cobra.Command{dbCreateCmd, dbAlterCmd} {
		c.Flags().StringVar(&dbLocation, "location", "", "database location")
		c.Flags().StringToStringVar(&dbParams, "param", nil, "parameter key=value, repeatable")
	}
	dbCmd.AddCommand(dbListCmd, dbGetCmd, dbCreateCmd, dbAlterCmd, dbDropCmd)
}
