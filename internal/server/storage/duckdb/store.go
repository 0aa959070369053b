package duckdb

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"hmsv2/internal/server/storage/sqlstore"
)

const DefaultPath = "./hms.duckdb"

func NewStore(path string) (*sqlstore.Store, error) {
	if path == "" {
		path = DefaultPath
	}
	// DuckDB 与 SQLite 共用 sqlstore 的 SQL。
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("打开 DuckDB 失败：%w", err)
	}
	// hms_sequences 的计数行在并发事务间会冲突，写入必须串行。
	db.SetMaxOpenConns(1)
	s, err := sqlstore.New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
