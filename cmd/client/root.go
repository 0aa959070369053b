package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hmsv2/internal/client/app"
)

var version = "dev"

var (
	cfg        = app.DefaultConfig()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "hms",
	Short: "Metastore client",
	Long: `hms talks to the metastore server over gRPC.

Without a subcommand it fetches the database given by --db and lists
every database in the namespace.

Examples:
  hms -H localhost -P 10000 -d db1
  hms db list --pattern 'sales*'
  hms table create events --column ts:bigint --partition-key dt:string
  hms partition add events 2024-01-01 2024-01-02`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	Args:              cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func(ctx context.Context, a *app.App) error { return a.Demo(ctx) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hms version %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.Host, "host", "H", cfg.Host, "metastore host")
	flags.IntVarP(&cfg.Port, "port", "P", cfg.Port, "metastore port")
	flags.StringVarP(&cfg.DB, "db", "d", cfg.DB, "database name")
	flags.StringVarP(&cfg.Namespace, "namespace", "n", cfg.Namespace, "namespace")
	flags.StringVar(&cfg.Cookie, "cookie", "", "opaque cookie sent with each request")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-command deadline")
	flags.StringVar(&configPath, "config", "", "YAML config file; explicit flags override it")

	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig 读入 --config 文件，命令行上显式给出的参数优先。
func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return nil
	}
	fileCfg, err := app.LoadConfig(configPath, app.DefaultConfig())
	if err != nil {
		exitWithError("", err)
	}
	flags := cmd.Flags()
	if !flags.Changed("host") {
		cfg.Host = fileCfg.Host
	}
	if !flags.Changed("port") {
		cfg.Port = fileCfg.Port
	}
	if !flags.Changed("db") {
		cfg.DB = fileCfg.DB
	}
	if !flags.Changed("namespace") {
		cfg.Namespace = fileCfg.Namespace
	}
	if !flags.Changed("cookie") {
		cfg.Cookie = fileCfg.Cookie
	}
	if !flags.Changed("timeout") {
		cfg.Timeout = fileCfg.Timeout
	}
	return nil
}

func run(fn func(ctx context.Context, a *app.App) error) {
	if err := app.Run(context.Background(), cfg, os.Stdout, fn); err != nil {
		exitWithError("", err)
	}
}

// exitWithError 打印 "Error: ..." 到 stderr 并以 1 退出。
func exitWithError(msg string, err error) {
	if err != nil {
		if msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
