package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"hmsv2/internal/server/storage/sqlstore"
)

const DefaultPath = "./hms.sqlite"

func NewStore(path string) (*sqlstore.Store, error) {
	if path == "" {
		path = DefaultPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败：%w", err)
	}
	// SQLite 同一时刻只允许一个写事务，单连接可以避免 "database is locked"。
	db.SetMaxOpenConns(1)
	s, err := sqlstore.New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
