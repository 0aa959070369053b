package app

import (
	"context"
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"hmsv2/internal/server/service"
	"hmsv2/internal/server/storage"
	"hmsv2/internal/server/storage/duckdb"
	"hmsv2/internal/server/storage/sqlite"
	"hmsv2/pkg/metastore"
)

type Server struct {
	cfg        Config
	grpcServer *grpc.Server
	store      storage.Store
}

func NewServer(cfg Config) (*Server, error) {
	cfg.setDefaults()

	store, err := openStore(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryLogger),
		grpc.ChainStreamInterceptor(streamLogger),
	)
	metastore.RegisterMetastoreServer(grpcServer, service.New(store))

	return &Server{
		cfg:        cfg,
		grpcServer: grpcServer,
		store:      store,
	}, nil
}

func openStore(driver, path string) (storage.Store, error) {
	switch driver {
	case "sqlite":
		if path == "" {
			path = sqlite.DefaultPath
		}
		return sqlite.NewStore(path)
	case "duckdb":
		if path == "" {
			path = duckdb.DefaultPath
		}
		return duckdb.NewStore(path)
	default:
		return nil, fmt.Errorf("不支持的数据库类型：%s", driver)
	}
}

func (s *Server) Addr() string {
	return s.cfg.ListenAddr
}

func (s *Server) ListenAndServe() error {
	lis, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败：%w", s.cfg.ListenAddr, err)
	}
	return s.Serve(lis)
}

// Serve 在 lis 上提供服务，直到 Shutdown 被调用。
func (s *Server) Serve(lis net.Listener) error {
	if s.cfg.MaxConns > 0 {
		lis = netutil.LimitListener(lis, s.cfg.MaxConns)
	}
	return s.grpcServer.Serve(lis)
}

// Shutdown 先等待进行中的 RPC 结束；ctx 到期后强制关闭。最后关闭存储。
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("优雅退出超时，强制关闭连接")
		s.grpcServer.Stop()
		<-done
	}
	return s.store.Close()
}

// Run 启动服务并在 ctx 取消时按 ShutdownTimeout 退出。
func Run(ctx context.Context, cfg Config) error {
	srv, err := NewServer(cfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("server 监听：%s（%s）", srv.cfg.ListenAddr, srv.cfg.DBDriver)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
