package storage

import (
	"context"
	"errors"

	"hmsv2/pkg/model"
)

var (
	ErrNotFound      = errors.New("对象不存在")
	ErrAlreadyExists = errors.New("对象已存在")
)

// Store 持久化 database / table / partition。
// database 与 table 的定位参数 *model.Id 可以只带 Name 或只带 Id，Id 优先。
type Store interface {
	CreateDatabase(ctx context.Context, namespace string, db *model.Database) (*model.Database, error)
	GetDatabase(ctx context.Context, namespace string, id *model.Id) (*model.Database, error)
	ListDatabases(ctx context.Context, namespace string) ([]*model.Database, error)
	UpdateDatabase(ctx context.Context, namespace string, id *model.Id, update func(db *model.Database) error) (*model.Database, error)
	DropDatabase(ctx context.Context, namespace string, id *model.Id) error

	CreateTable(ctx context.Context, namespace string, dbID *model.Id, table *model.Table) (*model.Table, error)
	GetTable(ctx context.Context, namespace string, dbID *model.Id, id *model.Id) (*model.Table, error)
	ListTables(ctx context.Context, namespace string, dbID *model.Id) ([]*model.Table, error)
	DropTable(ctx context.Context, namespace string, dbID *model.Id, id *model.Id) error

	AddPartition(ctx context.Context, namespace string, dbID, tableID *model.Id, p *model.Partition) (*model.Partition, error)
	GetPartition(ctx context.Context, namespace string, dbID, tableID *model.Id, values []string) (*model.Partition, error)
	ListPartitions(ctx context.Context, namespace string, dbID, tableID *model.Id) ([]*model.Partition, error)
	// DropPartitions 在同一个事务里删除多组分区值，返回实际删除的个数；不存在的分区直接跳过。
	DropPartitions(ctx context.Context, namespace string, dbID, tableID *model.Id, values [][]string) (int, error)

	Close() error
}
