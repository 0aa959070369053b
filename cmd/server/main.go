package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"hmsv2/internal/server/app"
)

func main() {
	var cfg app.Config
	var configPath string
	flag.StringVar(&cfg.ListenAddr, "listen", app.DefaultListenAddr, "监听地址")
	flag.StringVar(&cfg.DBDriver, "db-driver", app.DefaultDBDriver, "数据库类型：sqlite 或 duckdb")
	flag.StringVar(&cfg.DBPath, "db", "", "数据库文件路径")
	flag.IntVar(&cfg.MaxConns, "max-conns", 0, "最大并发连接数，0 表示不限制")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", app.DefaultShutdownTimeout, "优雅退出的最长等待时间")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "日志级别")
	flag.StringVar(&configPath, "config", "", "YAML 配置文件，命令行参数优先")
	flag.Parse()

	if configPath != "" {
		fileCfg, err := app.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("加载配置失败：%v", err)
		}
		cfg = fileCfg.Merge(explicitFlags(cfg))
	}

	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			log.Fatalf("日志级别非法：%v", err)
		}
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server 运行失败：%v", err)
	}
}

// explicitFlags 只保留命令行上显式设置过的参数。
func explicitFlags(cfg app.Config) app.Config {
	var out app.Config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			out.ListenAddr = cfg.ListenAddr
		case "db-driver":
			out.DBDriver = cfg.DBDriver
		case "db":
			out.DBPath = cfg.DBPath
		case "max-conns":
			out.MaxConns = cfg.MaxConns
		case "shutdown-timeout":
			out.ShutdownTimeout = cfg.ShutdownTimeout
		case "log-level":
			out.LogLevel = cfg.LogLevel
		}
	})
	return out
}
