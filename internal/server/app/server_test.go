package app

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hmsv2/internal/hmsclient"
	"hmsv2/pkg/model"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	dir := t.TempDir()
	srv, err := NewServer(Config{DBDriver: "sqlite", DBPath: filepath.Join(dir, "hms.sqlite"), MaxConns: 4})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(lis) }()

	c, err := hmsclient.Dial(lis.Addr().String())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := c.CreateDatabase(ctx, &model.CreateDatabaseRequest{
		Namespace: "ns1",
		Database:  &model.Database{Id: &model.Id{Name: "db1"}},
	}); err != nil {
		t.Fatalf("CreateDatabase failed: %v", err)
	}
	db, err := c.GetDatabase(ctx, &model.GetDatabaseRequest{Namespace: "ns1", Id: &model.Id{Name: "db1"}})
	if err != nil {
		t.Fatalf("GetDatabase failed: %v", err)
	}
	if db.Id.GetName() != "db1" {
		t.Errorf("Expected db1, got %+v", db)
	}
	_, err = c.GetDatabase(ctx, &model.GetDatabaseRequest{Namespace: "ns1", Id: &model.Id{Name: "db2"}})
	if status.Code(err) != codes.NotFound {
		t.Errorf("Expected NotFound, got %v", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := <-serveErr; err != nil {
		t.Errorf("Serve returned %v", err)
	}
}

func TestNewServer_UnknownDriver(t *testing.T) {
	if _, err := NewServer(Config{DBDriver: "mysql"}); err == nil {
		t.Fatal("Expected error for unknown driver")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	content := "listen: 0.0.0.0:9083\ndb_driver: duckdb\nmax_conns: 16\nshutdown_timeout: 3s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := Config{ListenAddr: "0.0.0.0:9083", DBDriver: "duckdb", MaxConns: 16, ShutdownTimeout: 3 * time.Second}
	if cfg != want {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
	}

	merged := cfg.Merge(Config{DBDriver: "sqlite", DBPath: "/tmp/x.sqlite"})
	if merged.DBDriver != "sqlite" || merged.DBPath != "/tmp/x.sqlite" || merged.ListenAddr != "0.0.0.0:9083" {
		t.Errorf("unexpected merge result: %+v", merged)
	}

	if err := os.WriteFile(path, []byte("listen_addr: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected error for unknown field")
	}
}
