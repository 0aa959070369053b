// Package sqlstore 是 storage.Store 基于 database/sql 的实现，SQLite 与 DuckDB 共用。
//
// 每个对象一行：用于定位的列（namespace / id / name）单独建索引，
// 完整对象以 msgpack 编码后存进 payload 列。seq_id 来自 hms_sequences，删除后不会复用。
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"hmsv2/internal/server/storage"
	"hmsv2/pkg/model"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS hms_sequences (
	scope    VARCHAR PRIMARY KEY,
	next_val BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS hms_databases (
	namespace VARCHAR NOT NULL,
	id        VARCHAR NOT NULL,
	name      VARCHAR NOT NULL,
	seq_id    BIGINT NOT NULL,
	payload   BLOB NOT NULL,
	PRIMARY KEY (namespace, id),
	UNIQUE (namespace, name)
)`,
	`CREATE TABLE IF NOT EXISTS hms_tables (
	namespace VARCHAR NOT NULL,
	db_id     VARCHAR NOT NULL,
	id        VARCHAR NOT NULL,
	name      VARCHAR NOT NULL,
	seq_id    BIGINT NOT NULL,
	payload   BLOB NOT NULL,
	PRIMARY KEY (namespace, db_id, id),
	UNIQUE (namespace, db_id, name)
)`,
	`CREATE TABLE IF NOT EXISTS hms_partitions (
	namespace VARCHAR NOT NULL,
	db_id     VARCHAR NOT NULL,
	table_id  VARCHAR NOT NULL,
	part_name VARCHAR NOT NULL,
	seq_id    BIGINT NOT NULL,
	payload   BLOB NOT NULL,
	PRIMARY KEY (namespace, db_id, table_id, part_name)
)`,
}

type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// New 在已打开的连接上建表。失败时不关闭 db，由调用方处理。
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	for _, stmt := range ddl {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("建表失败：%w", err)
		}
	}
	return nil
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败：%w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("提交事务失败：%v：%w", err, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("提交事务失败：%w", err)
	}
	return nil
}

// isUniqueViolation 识别 SQLite 与 DuckDB 的主键/唯一约束冲突。
// 两个驱动都没有导出错误码，只能按消息匹配。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range []string{
		"UNIQUE constraint failed",
		"PRIMARY KEY or UNIQUE constraint",
		"Duplicate key",
		"duplicate key",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func nextSequence(ctx context.Context, q querier, scope string) (uint64, error) {
	if _, err := q.ExecContext(ctx, `
INSERT INTO hms_sequences (scope, next_val) VALUES (?, 1)
ON CONFLICT (scope) DO UPDATE SET next_val = next_val + 1;
`, scope); err != nil {
		return 0, fmt.Errorf("分配序号失败：%w", err)
	}
	var v int64
	if err := q.QueryRowContext(ctx, `SELECT next_val FROM hms_sequences WHERE scope = ?;`, scope).Scan(&v); err != nil {
		return 0, fmt.Errorf("读取序号失败：%w", err)
	}
	return uint64(v), nil
}

func dbScope(namespace string) string {
	return "db/" + namespace
}

func tableScope(namespace, dbID string) string {
	return "tbl/" + namespace + "/" + dbID
}

func partScope(namespace, dbID, tableID string) string {
	return "part/" + namespace + "/" + dbID + "/" + tableID
}

func label(id *model.Id) string {
	if id.GetName() != "" {
		return id.GetName()
	}
	return "#" + id.GetId()
}

func decode[T any](payload []byte) (*T, error) {
	out := new(T)
	if err := msgpack.Unmarshal(payload, out); err != nil {
		return nil, fmt.Errorf("解码对象失败：%w", err)
	}
	return out, nil
}

func scanPayloads[T any](rows *sql.Rows) ([]*T, error) {
	defer rows.Close()
	out := make([]*T, 0, 16)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("读取行失败：%w", err)
		}
		v, err := decode[T](payload)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历结果失败：%w", err)
	}
	return out, nil
}

// Databases

func getDatabase(ctx context.Context, q querier, namespace string, id *model.Id) (*model.Database, error) {
	if id.Empty() {
		return nil, fmt.Errorf("缺少 database 名称或 id")
	}
	var row *sql.Row
	if id.GetId() != "" {
		row = q.QueryRowContext(ctx, `SELECT payload FROM hms_databases WHERE namespace = ? AND id = ?;`, namespace, id.GetId())
	} else {
		row = q.QueryRowContext(ctx, `SELECT payload FROM hms_databases WHERE namespace = ? AND name = ?;`, namespace, id.GetName())
	}
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("database %s/%s：%w", namespace, label(id), storage.ErrNotFound)
		}
		return nil, fmt.Errorf("查询 database 失败：%w", err)
	}
	return decode[model.Database](payload)
}

func (s *Store) CreateDatabase(ctx context.Context, namespace string, db *model.Database) (*model.Database, error) {
	if db == nil || db.Id == nil || db.Id.Id == "" || db.Id.Name == "" {
		return nil, fmt.Errorf("database 缺少名称或 id")
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM hms_databases WHERE namespace = ? AND name = ?;`,
			namespace, db.Id.Name).Scan(&n); err != nil {
			return fmt.Errorf("查询 database 失败：%w", err)
		}
		if n > 0 {
			return fmt.Errorf("database %s/%s：%w", namespace, db.Id.Name, storage.ErrAlreadyExists)
		}
		seq, err := nextSequence(ctx, tx, dbScope(namespace))
		if err != nil {
			return err
		}
		db.SeqId = seq
		db.Id.Namespace = namespace
		payload, err := msgpack.Marshal(db)
		if err != nil {
			return fmt.Errorf("编码 database 失败：%w", err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO hms_databases (namespace, id, name, seq_id, payload) VALUES (?, ?, ?, ?, ?);
`, namespace, db.Id.Id, db.Id.Name, int64(seq), payload); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("database %s/%s：%w", namespace, db.Id.Name, storage.ErrAlreadyExists)
			}
			return fmt.Errorf("插入 database 失败：%w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (s *Store) GetDatabase(ctx context.Context, namespace string, id *model.Id) (*model.Database, error) {
	return getDatabase(ctx, s.db, namespace, id)
}

func (s *Store) ListDatabases(ctx context.Context, namespace string) ([]*model.Database, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT payload FROM hms_databases WHERE namespace = ? ORDER BY seq_id;
`, namespace)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	return scanPayloads[model.Database](rows)
}

func (s *Store) UpdateDatabase(ctx context.Context, namespace string, id *model.Id, update func(db *model.Database) error) (*model.Database, error) {
	var out *model.Database
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		db, err := getDatabase(ctx, tx, namespace, id)
		if err != nil {
			return err
		}
		if err := update(db); err != nil {
			return err
		}
		payload, err := msgpack.Marshal(db)
		if err != nil {
			return fmt.Errorf("编码 database 失败：%w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE hms_databases SET payload = ? WHERE namespace = ? AND id = ?;`,
			payload, namespace, db.Id.Id); err != nil {
			return fmt.Errorf("更新 database 失败：%w", err)
		}
		out = db
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DropDatabase(ctx context.Context, namespace string, id *model.Id) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		db, err := getDatabase(ctx, tx, namespace, id)
		if err != nil {
			return err
		}
		dbID := db.Id.Id
		stmts := []struct {
			query string
			args  []any
		}{
			{`DELETE FROM hms_partitions WHERE namespace = ? AND db_id = ?;`, []any{namespace, dbID}},
			{`DELETE FROM hms_tables WHERE namespace = ? AND db_id = ?;`, []any{namespace, dbID}},
			{`DELETE FROM hms_databases WHERE namespace = ? AND id = ?;`, []any{namespace, dbID}},
			{`DELETE FROM hms_sequences WHERE scope = ? OR scope LIKE ?;`,
				[]any{tableScope(namespace, dbID), "part/" + namespace + "/" + dbID + "/%"}},
		}
		for _, st := range stmts {
			if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
				return fmt.Errorf("删除 database 失败：%w", err)
			}
		}
		return nil
	})
}

// Tables

func getTable(ctx context.Context, q querier, namespace, dbID string, id *model.Id) (*model.Table, error) {
	if id.Empty() {
		return nil, fmt.Errorf("缺少 table 名称或 id")
	}
	var row *sql.Row
	if id.GetId() != "" {
		row = q.QueryRowContext(ctx, `SELECT payload FROM hms_tables WHERE namespace = ? AND db_id = ? AND id = ?;`,
			namespace, dbID, id.GetId())
	} else {
		row = q.QueryRowContext(ctx, `SELECT payload FROM hms_tables WHERE namespace = ? AND db_id = ? AND name = ?;`,
			namespace, dbID, id.GetName())
	}
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("table %s：%w", label(id), storage.ErrNotFound)
		}
		return nil, fmt.Errorf("查询 table 失败：%w", err)
	}
	return decode[model.Table](payload)
}

func (s *Store) CreateTable(ctx context.Context, namespace string, dbID *model.Id, table *model.Table) (*model.Table, error) {
	if table == nil || table.Id == nil || table.Id.Id == "" || table.Id.Name == "" {
		return nil, fmt.Errorf("table 缺少名称或 id")
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		db, err := getDatabase(ctx, tx, namespace, dbID)
		if err != nil {
			return err
		}
		var n int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM hms_tables WHERE namespace = ? AND db_id = ? AND name = ?;
`, namespace, db.Id.Id, table.Id.Name).Scan(&n); err != nil {
			return fmt.Errorf("查询 table 失败：%w", err)
		}
		if n > 0 {
			return fmt.Errorf("table %s.%s：%w", db.Id.Name, table.Id.Name, storage.ErrAlreadyExists)
		}
		seq, err := nextSequence(ctx, tx, tableScope(namespace, db.Id.Id))
		if err != nil {
			return err
		}
		table.SeqId = seq
		table.Id.Namespace = namespace
		table.DbId = &model.Id{Name: db.Id.Name, Namespace: namespace, Id: db.Id.Id}
		payload, err := msgpack.Marshal(table)
		if err != nil {
			return fmt.Errorf("编码 table 失败：%w", err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO hms_tables (namespace, db_id, id, name, seq_id, payload) VALUES (?, ?, ?, ?, ?, ?);
`, namespace, db.Id.Id, table.Id.Id, table.Id.Name, int64(seq), payload); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("table %s：%w", table.Id.Name, storage.ErrAlreadyExists)
			}
			return fmt.Errorf("插入 table 失败：%w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (s *Store) GetTable(ctx context.Context, namespace string, dbID *model.Id, id *model.Id) (*model.Table, error) {
	db, err := getDatabase(ctx, s.db, namespace, dbID)
	if err != nil {
		return nil, err
	}
	return getTable(ctx, s.db, namespace, db.Id.Id, id)
}

func (s *Store) ListTables(ctx context.Context, namespace string, dbID *model.Id) ([]*model.Table, error) {
	db, err := getDatabase(ctx, s.db, namespace, dbID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT payload FROM hms_tables WHERE namespace = ? AND db_id = ? ORDER BY seq_id;
`, namespace, db.Id.Id)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	return scanPayloads[model.Table](rows)
}

func (s *Store) DropTable(ctx context.Context, namespace string, dbID *model.Id, id *model.Id) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		db, err := getDatabase(ctx, tx, namespace, dbID)
		if err != nil {
			return err
		}
		t, err := getTable(ctx, tx, namespace, db.Id.Id, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
DELETE FROM hms_partitions WHERE namespace = ? AND db_id = ? AND table_id = ?;
`, namespace, db.Id.Id, t.Id.Id); err != nil {
			return fmt.Errorf("删除分区失败：%w", err)
		}
		if _, err := tx.ExecContext(ctx, `
DELETE FROM hms_tables WHERE namespace = ? AND db_id = ? AND id = ?;
`, namespace, db.Id.Id, t.Id.Id); err != nil {
			return fmt.Errorf("删除 table 失败：%w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM hms_sequences WHERE scope = ?;`,
			partScope(namespace, db.Id.Id, t.Id.Id)); err != nil {
			return fmt.Errorf("删除序号失败：%w", err)
		}
		return nil
	})
}

// Partitions

func resolveTable(ctx context.Context, q querier, namespace string, dbID, tableID *model.Id) (string, string, error) {
	db, err := getDatabase(ctx, q, namespace, dbID)
	if err != nil {
		return "", "", err
	}
	t, err := getTable(ctx, q, namespace, db.Id.Id, tableID)
	if err != nil {
		return "", "", err
	}
	return db.Id.Id, t.Id.Id, nil
}

func (s *Store) AddPartition(ctx context.Context, namespace string, dbID, tableID *model.Id, p *model.Partition) (*model.Partition, error) {
	if p == nil {
		return nil, fmt.Errorf("缺少分区数据")
	}
	name := model.PartitionName(p.Values)
	if name == "" {
		return nil, fmt.Errorf("缺少分区值")
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		dbKey, tableKey, err := resolveTable(ctx, tx, namespace, dbID, tableID)
		if err != nil {
			return err
		}
		var n int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM hms_partitions WHERE namespace = ? AND db_id = ? AND table_id = ? AND part_name = ?;
`, namespace, dbKey, tableKey, name).Scan(&n); err != nil {
			return fmt.Errorf("查询分区失败：%w", err)
		}
		if n > 0 {
			return fmt.Errorf("partition %s：%w", name, storage.ErrAlreadyExists)
		}
		seq, err := nextSequence(ctx, tx, partScope(namespace, dbKey, tableKey))
		if err != nil {
			return err
		}
		p.SeqId = seq
		payload, err := msgpack.Marshal(p)
		if err != nil {
			return fmt.Errorf("编码分区失败：%w", err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO hms_partitions (namespace, db_id, table_id, part_name, seq_id, payload) VALUES (?, ?, ?, ?, ?, ?);
`, namespace, dbKey, tableKey, name, int64(seq), payload); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("partition %s：%w", name, storage.ErrAlreadyExists)
			}
			return fmt.Errorf("插入分区失败：%w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) GetPartition(ctx context.Context, namespace string, dbID, tableID *model.Id, values []string) (*model.Partition, error) {
	name := model.PartitionName(values)
	if name == "" {
		return nil, fmt.Errorf("缺少分区值")
	}
	dbKey, tableKey, err := resolveTable(ctx, s.db, namespace, dbID, tableID)
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = s.db.QueryRowContext(ctx, `
SELECT payload FROM hms_partitions WHERE namespace = ? AND db_id = ? AND table_id = ? AND part_name = ?;
`, namespace, dbKey, tableKey, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("partition %s.%s/%s：%w", label(dbID), label(tableID), name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("查询分区失败：%w", err)
	}
	return decode[model.Partition](payload)
}

func (s *Store) ListPartitions(ctx context.Context, namespace string, dbID, tableID *model.Id) ([]*model.Partition, error) {
	dbKey, tableKey, err := resolveTable(ctx, s.db, namespace, dbID, tableID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT payload FROM hms_partitions WHERE namespace = ? AND db_id = ? AND table_id = ? ORDER BY seq_id;
`, namespace, dbKey, tableKey)
	if err != nil {
		return nil, fmt.Errorf("查询失败：%w", err)
	}
	return scanPayloads[model.Partition](rows)
}

func (s *Store) DropPartitions(ctx context.Context, namespace string, dbID, tableID *model.Id, values [][]string) (int, error) {
	dropped := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		dbKey, tableKey, err := resolveTable(ctx, tx, namespace, dbID, tableID)
		if err != nil {
			return err
		}
		for _, v := range values {
			name := model.PartitionName(v)
			if name == "" {
				continue
			}
			res, err := tx.ExecContext(ctx, `
DELETE FROM hms_partitions WHERE namespace = ? AND db_id = ? AND table_id = ? AND part_name = ?;
`, namespace, dbKey, tableKey, name)
			if err != nil {
				return fmt.Errorf("删除分区 %s 失败：%w", name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("读取删除行数失败：%w", err)
			}
			dropped += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return dropped, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
