package duckdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"golang.org/x/sync/errgroup"

	"hmsv2/internal/server/storage"
	"hmsv2/internal/server/storage/sqlstore"
	"hmsv2/pkg/model"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_hms.duckdb"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 16
	seqs := make([]uint64, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			db, err := s.CreateDatabase(gctx, "ns", &model.Database{
				Id: &model.Id{Name: fmt.Sprintf("db%d", i), Id: fmt.Sprintf("id-%d", i)},
			})
			if err != nil {
				return err
			}
			seqs[i] = db.SeqId
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent CreateDatabase failed: %v", err)
	}

	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for i, seq := range seqs {
		if seq != uint64(i+1) {
			t.Fatalf("Expected seq ids 1..%d, got %v", n, seqs)
		}
	}
	dbs, err := s.ListDatabases(ctx, "ns")
	if err != nil {
		t.Fatalf("ListDatabases failed: %v", err)
	}
	if len(dbs) != n {
		t.Fatalf("Expected %d databases, got %d", n, len(dbs))
	}
}

func TestStore_ConcurrentDuplicateCreates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			_, errs[i] = s.CreateDatabase(ctx, "ns", &model.Database{
				Id: &model.Id{Name: "same", Id: fmt.Sprintf("id-%d", i)},
			})
			return nil
		})
	}
	g.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, storage.ErrAlreadyExists):
			t.Errorf("Expected ErrAlreadyExists, got %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("Expected exactly one create to succeed, got %d", created)
	}
}

func TestStore_PartitionsAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.duckdb")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.Background()
	dbID := &model.Id{Name: "db1"}
	tableID := &model.Id{Name: "t1"}
	if _, err := s.CreateDatabase(ctx, "ns", &model.Database{Id: &model.Id{Name: "db1", Id: "db-id"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTable(ctx, "ns", dbID, &model.Table{Id: &model.Id{Name: "t1", Id: "t1-id"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddPartition(ctx, "ns", dbID, tableID, &model.Partition{Values: []string{"a"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	p, err := s.AddPartition(ctx, "ns", dbID, tableID, &model.Partition{Values: []string{"b"}})
	if err != nil {
		t.Fatalf("AddPartition failed: %v", err)
	}
	if p.SeqId != 2 {
		t.Errorf("Expected seq 2 after reopen, got %d", p.SeqId)
	}
}
