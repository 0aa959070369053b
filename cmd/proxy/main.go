package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"hmsv2/internal/proxy/app"
)

func main() {
	var cfg app.Config
	var configPath string
	flag.StringVar(&cfg.ListenAddr, "listen", app.DefaultListenAddr, "监听地址")
	flag.StringVar(&cfg.HMSAddr, "hms", app.DefaultHMSAddr, "metastore 服务地址")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", app.DefaultRequestTimeout, "单个请求的超时时间")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "日志级别")
	flag.StringVar(&configPath, "config", "", "YAML 配置文件，命令行参数优先")
	flag.Parse()

	if configPath != "" {
		fileCfg, err := app.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("加载配置失败：%v", err)
		}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["listen"] && fileCfg.ListenAddr != "" {
			cfg.ListenAddr = fileCfg.ListenAddr
		}
		if !set["hms"] && fileCfg.HMSAddr != "" {
			cfg.HMSAddr = fileCfg.HMSAddr
		}
		if !set["request-timeout"] && fileCfg.RequestTimeout > 0 {
			cfg.RequestTimeout = fileCfg.RequestTimeout
		}
		if !set["log-level"] && fileCfg.LogLevel != "" {
			cfg.LogLevel = fileCfg.LogLevel
		}
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("日志级别非法：%v", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := app.NewServer(cfg)
	if err != nil {
		log.Fatalf("proxy 初始化失败：%v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("proxy 监听：%s，转发到 %s", cfg.ListenAddr, cfg.HMSAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("proxy 运行失败：%v", err)
	}
}
