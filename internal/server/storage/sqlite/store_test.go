package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"golang.org/x/sync/errgroup"

	"hmsv2/internal/server/storage"
	"hmsv2/internal/server/storage/sqlstore"
	"hmsv2/pkg/model"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "test_hms_*.sqlite")
	if err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	s, err := NewStore(tmpFile.Name())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_DatabaseLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	db1, err := s.CreateDatabase(ctx, "ns1", &model.Database{
		Id:         &model.Id{Name: "db1", Id: "id-1"},
		Location:   "/warehouse/db1",
		Parameters: map[string]string{"owner": "hive"},
	})
	if err != nil {
		t.Fatalf("CreateDatabase failed: %v", err)
	}
	if db1.SeqId != 1 || db1.Id.Namespace != "ns1" {
		t.Errorf("unexpected database: %+v", db1)
	}

	if _, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db1", Id: "id-x"}}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}
	// Same name in another namespace is fine.
	if _, err := s.CreateDatabase(ctx, "ns2", &model.Database{Id: &model.Id{Name: "db1", Id: "id-y"}}); err != nil {
		t.Fatalf("CreateDatabase in ns2 failed: %v", err)
	}

	byName, err := s.GetDatabase(ctx, "ns1", &model.Id{Name: "db1"})
	if err != nil {
		t.Fatalf("GetDatabase by name failed: %v", err)
	}
	if byName.Location != "/warehouse/db1" || byName.Parameters["owner"] != "hive" {
		t.Errorf("unexpected database: %+v", byName)
	}
	byID, err := s.GetDatabase(ctx, "ns1", &model.Id{Id: "id-1"})
	if err != nil {
		t.Fatalf("GetDatabase by id failed: %v", err)
	}
	if byID.Id.Name != "db1" {
		t.Errorf("Expected db1, got %s", byID.Id.Name)
	}

	if _, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db2", Id: "id-2"}}); err != nil {
		t.Fatalf("CreateDatabase db2 failed: %v", err)
	}
	dbs, err := s.ListDatabases(ctx, "ns1")
	if err != nil {
		t.Fatalf("ListDatabases failed: %v", err)
	}
	if len(dbs) != 2 || dbs[0].Id.Name != "db1" || dbs[1].Id.Name != "db2" {
		t.Fatalf("unexpected list: %+v", dbs)
	}

	altered, err := s.UpdateDatabase(ctx, "ns1", &model.Id{Name: "db2"}, func(db *model.Database) error {
		db.Location = "/new"
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateDatabase failed: %v", err)
	}
	if altered.Location != "/new" {
		t.Errorf("Expected /new, got %s", altered.Location)
	}

	if err := s.DropDatabase(ctx, "ns1", &model.Id{Name: "db2"}); err != nil {
		t.Fatalf("DropDatabase failed: %v", err)
	}
	if _, err := s.GetDatabase(ctx, "ns1", &model.Id{Name: "db2"}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Sequence numbers are never reused.
	db3, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db3", Id: "id-3"}})
	if err != nil {
		t.Fatalf("CreateDatabase db3 failed: %v", err)
	}
	if db3.SeqId != 3 {
		t.Errorf("Expected seq 3, got %d", db3.SeqId)
	}
}

func TestStore_TablesAndPartitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db1", Id: "db-id"}}); err != nil {
		t.Fatalf("CreateDatabase failed: %v", err)
	}
	dbID := &model.Id{Name: "db1"}

	tbl, err := s.CreateTable(ctx, "ns1", dbID, &model.Table{
		Id:            &model.Id{Name: "events", Id: "tbl-id"},
		Columns:       []model.FieldSchema{{Name: "ts", Type: "bigint"}},
		PartitionKeys: []model.FieldSchema{{Name: "dt", Type: "string"}},
	})
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if tbl.DbId == nil || tbl.DbId.Id != "db-id" || tbl.SeqId != 1 {
		t.Errorf("unexpected table: %+v", tbl)
	}
	if _, err := s.CreateTable(ctx, "ns1", dbID, &model.Table{Id: &model.Id{Name: "events", Id: "other"}}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}
	if _, err := s.CreateTable(ctx, "ns1", &model.Id{Name: "missing"}, &model.Table{Id: &model.Id{Name: "t", Id: "t"}}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	tableID := &model.Id{Name: "events"}
	for _, dt := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if _, err := s.AddPartition(ctx, "ns1", dbID, tableID, &model.Partition{Values: []string{dt}}); err != nil {
			t.Fatalf("AddPartition %s failed: %v", dt, err)
		}
	}
	if _, err := s.AddPartition(ctx, "ns1", dbID, tableID, &model.Partition{Values: []string{"2024-01-01"}}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}

	p, err := s.GetPartition(ctx, "ns1", dbID, tableID, []string{"2024-01-02"})
	if err != nil {
		t.Fatalf("GetPartition failed: %v", err)
	}
	if p.SeqId != 2 {
		t.Errorf("Expected seq 2, got %d", p.SeqId)
	}

	n, err := s.DropPartitions(ctx, "ns1", dbID, tableID, [][]string{{"2024-01-01"}, {"nope"}, nil})
	if err != nil {
		t.Fatalf("DropPartitions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 dropped, got %d", n)
	}
	parts, err := s.ListPartitions(ctx, "ns1", dbID, tableID)
	if err != nil {
		t.Fatalf("ListPartitions failed: %v", err)
	}
	if len(parts) != 2 || parts[0].Values[0] != "2024-01-02" {
		t.Fatalf("unexpected partitions: %+v", parts)
	}

	tables, err := s.ListTables(ctx, "ns1", dbID)
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	// Dropping the database removes its tables and partitions.
	if err := s.DropDatabase(ctx, "ns1", dbID); err != nil {
		t.Fatalf("DropDatabase failed: %v", err)
	}
	if _, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db1", Id: "db-id-2"}}); err != nil {
		t.Fatalf("re-CreateDatabase failed: %v", err)
	}
	tables, err = s.ListTables(ctx, "ns1", dbID)
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Expected 0 tables, got %d", len(tables))
	}
}

func TestStore_DropTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dbID := &model.Id{Name: "db1"}
	if _, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db1", Id: "db-id"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTable(ctx, "ns1", dbID, &model.Table{Id: &model.Id{Name: "t1", Id: "t1-id"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddPartition(ctx, "ns1", dbID, &model.Id{Name: "t1"}, &model.Partition{Values: []string{"a"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.DropTable(ctx, "ns1", dbID, &model.Id{Id: "t1-id"}); err != nil {
		t.Fatalf("DropTable failed: %v", err)
	}
	if _, err := s.GetTable(ctx, "ns1", dbID, &model.Id{Name: "t1"}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := s.DropTable(ctx, "ns1", dbID, &model.Id{Name: "t1"}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second drop, got %v", err)
	}
}

func TestStore_ConcurrentAddPartitions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dbID := &model.Id{Name: "db1"}
	tableID := &model.Id{Name: "t1"}
	if _, err := s.CreateDatabase(ctx, "ns1", &model.Database{Id: &model.Id{Name: "db1", Id: "db-id"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTable(ctx, "ns1", dbID, &model.Table{Id: &model.Id{Name: "t1", Id: "t1-id"}}); err != nil {
		t.Fatal(err)
	}

	const n = 16
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			_, err := s.AddPartition(ctx, "ns1", dbID, tableID, &model.Partition{Values: []string{fmt.Sprintf("p%02d", i)}})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddPartition failed: %v", err)
	}
	parts, err := s.ListPartitions(ctx, "ns1", dbID, tableID)
	if err != nil {
		t.Fatalf("ListPartitions failed: %v", err)
	}
	if len(parts) != n || parts[n-1].SeqId != n {
		t.Fatalf("Expected %d partitions ending at seq %d, got %d", n, n, len(parts))
	}
}
