package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hmsv2/internal/hmsclient"
	"hmsv2/internal/proxy/api"
)

type Server struct {
	httpServer *http.Server
	client     *hmsclient.Client
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.HMSAddr == "" {
		cfg.HMSAddr = DefaultHMSAddr
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	client, err := hmsclient.Dial(cfg.HMSAddr)
	if err != nil {
		return nil, err
	}

	return &Server{
		client: client,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(client, cfg.RequestTimeout),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func NewRouter(ms api.Metastore, timeout time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), requestTimeout(timeout))
	api.NewHandlers(ms).Register(router)
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"cookie":   c.GetHeader(api.CookieHeader),
			"duration": time.Since(start),
		}).Debug("http 请求")
	}
}

// requestTimeout 给每个请求的 context 加上截止时间，透传到 gRPC 调用。
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	_ = s.httpServer.Shutdown(ctx)
	return s.client.Close()
}
