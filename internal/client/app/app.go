package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"hmsv2/internal/hmsclient"
	"hmsv2/pkg/model"
)

// Metastore 是 App 用到的客户端方法，*hmsclient.Client 满足它。
type Metastore interface {
	CreateDatabase(ctx context.Context, req *model.CreateDatabaseRequest) (*model.Database, error)
	GetDatabase(ctx context.Context, req *model.GetDatabaseRequest) (*model.Database, error)
	ListDatabases(ctx context.Context, req *model.ListDatabasesRequest) ([]*model.Database, error)
	AlterDatabase(ctx context.Context, req *model.AlterDatabaseRequest) (*model.Database, error)
	DropDatabase(ctx context.Context, req *model.DropDatabaseRequest) error

	CreateTable(ctx context.Context, req *model.CreateTableRequest) (*model.Table, error)
	GetTable(ctx context.Context, req *model.GetTableRequest) (*model.Table, error)
	ListTables(ctx context.Context, req *model.ListTablesRequest) ([]*model.Table, error)
	DropTable(ctx context.Context, req *model.DropTableRequest) error

	AddPartitions(ctx context.Context, reqs []*model.AddPartitionRequest) ([]*model.AddPartitionResponse, error)
	GetPartition(ctx context.Context, req *model.GetPartitionRequest) (*model.Partition, error)
	ListPartitions(ctx context.Context, req *model.ListPartitionsRequest) ([]*model.Partition, error)
	DropPartitions(ctx context.Context, reqs []*model.DropPartitionRequest) error
}

var _ Metastore = (*hmsclient.Client)(nil)

type App struct {
	cfg Config
	ms  Metastore
	out io.Writer
}

func New(cfg Config, ms Metastore, out io.Writer) *App {
	return &App{cfg: cfg, ms: ms, out: out}
}

// Run 连接 cfg 指定的服务端，在超时约束下执行 fn。
func Run(ctx context.Context, cfg Config, out io.Writer, fn func(ctx context.Context, a *App) error) error {
	client, err := hmsclient.Dial(cfg.Addr())
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return fn(ctx, New(cfg, client, out))
}

func (a *App) dbID() *model.Id {
	return &model.Id{Name: a.cfg.DB, Namespace: a.cfg.Namespace}
}

// Demo 依次调用 GetDatabase 与 ListDatabases 并打印结果。
func (a *App) Demo(ctx context.Context) error {
	fmt.Fprintf(a.out, "host: %s\n", a.cfg.Host)
	fmt.Fprintf(a.out, "address: %s\n", a.cfg.Addr())

	db, err := a.ms.GetDatabase(ctx, &model.GetDatabaseRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    "c1",
		Id:        a.dbID(),
	})
	if err != nil {
		return fmt.Errorf("GetDatabase %s 失败：%w", a.cfg.DB, err)
	}
	fmt.Fprintf(a.out, "database %s:\n", a.cfg.DB)
	if err := a.printJSON(db); err != nil {
		return err
	}

	dbs, err := a.ms.ListDatabases(ctx, &model.ListDatabasesRequest{
		Namespace:   a.cfg.Namespace,
		Cookie:      "c2",
		NamePattern: "*",
	})
	if err != nil {
		return fmt.Errorf("ListDatabases 失败：%w", err)
	}
	names := make([]string, 0, len(dbs))
	for _, d := range dbs {
		if err := a.printJSON(d); err != nil {
			return err
		}
		names = append(names, d.Id.GetName())
	}
	fmt.Fprintf(a.out, "databases: %v\n", names)
	return nil
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化 JSON 失败：%w", err)
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

// Databases

func (a *App) ListDatabases(ctx context.Context, pattern string) error {
	dbs, err := a.ms.ListDatabases(ctx, &model.ListDatabasesRequest{
		Namespace:   a.cfg.Namespace,
		Cookie:      a.cfg.Cookie,
		NamePattern: pattern,
	})
	if err != nil {
		return err
	}
	a.renderDatabases(dbs)
	return nil
}

func (a *App) GetDatabase(ctx context.Context, name string) error {
	db, err := a.ms.GetDatabase(ctx, &model.GetDatabaseRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		Id:        &model.Id{Name: name},
	})
	if err != nil {
		return err
	}
	return a.printJSON(db)
}

func (a *App) CreateDatabase(ctx context.Context, name, location string, params map[string]string) error {
	db, err := a.ms.CreateDatabase(ctx, &model.CreateDatabaseRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		Database: &model.Database{
			Id:         &model.Id{Name: name},
			Location:   location,
			Parameters: params,
		},
	})
	if err != nil {
		return err
	}
	return a.printJSON(db)
}

func (a *App) AlterDatabase(ctx context.Context, name, location string, params map[string]string) error {
	db, err := a.ms.AlterDatabase(ctx, &model.AlterDatabaseRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		Id:        &model.Id{Name: name},
		Database:  &model.Database{Location: location, Parameters: params},
	})
	if err != nil {
		return err
	}
	return a.printJSON(db)
}

func (a *App) DropDatabase(ctx context.Context, name string) error {
	if err := a.ms.DropDatabase(ctx, &model.DropDatabaseRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		Id:        &model.Id{Name: name},
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "database %s dropped\n", name)
	return nil
}

// Tables

func (a *App) ListTables(ctx context.Context) error {
	tables, err := a.ms.ListTables(ctx, &model.ListTablesRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		DbId:      a.dbID(),
	})
	if err != nil {
		return err
	}
	a.renderTables(tables)
	return nil
}

func (a *App) GetTable(ctx context.Context, name string) error {
	t, err := a.ms.GetTable(ctx, &model.GetTableRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		DbId:      a.dbID(),
		Id:        &model.Id{Name: name},
	})
	if err != nil {
		return err
	}
	return a.printJSON(t)
}

// CreateTable 的 columns 与 partitionKeys 形如 "name:type"。
func (a *App) CreateTable(ctx context.Context, name, location string, columns, partitionKeys []string) error {
	cols, err := ParseFields(columns)
	if err != nil {
		return err
	}
	keys, err := ParseFields(partitionKeys)
	if err != nil {
		return err
	}
	t, err := a.ms.CreateTable(ctx, &model.CreateTableRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		DbId:      a.dbID(),
		Table: &model.Table{
			Id:            &model.Id{Name: name},
			Location:      location,
			Columns:       cols,
			PartitionKeys: keys,
		},
	})
	if err != nil {
		return err
	}
	return a.printJSON(t)
}

func (a *App) DropTable(ctx context.Context, name string) error {
	if err := a.ms.DropTable(ctx, &model.DropTableRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		DbId:      a.dbID(),
		Id:        &model.Id{Name: name},
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "table %s dropped\n", name)
	return nil
}

func ParseFields(specs []string) ([]model.FieldSchema, error) {
	var out []model.FieldSchema
	for _, s := range specs {
		name, typ, ok := strings.Cut(s, ":")
		if !ok || name == "" || typ == "" {
			return nil, fmt.Errorf("字段格式应为 name:type，实际为 %q", s)
		}
		out = append(out, model.FieldSchema{Name: name, Type: typ})
	}
	return out, nil
}

// Partitions，分区值用 "/" 连接，例如 "2024/01"。

func (a *App) ListPartitions(ctx context.Context, table string) error {
	parts, err := a.ms.ListPartitions(ctx, &model.ListPartitionsRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		DbId:      a.dbID(),
		TableId:   &model.Id{Name: table},
	})
	if err != nil {
		return err
	}
	a.renderPartitions(parts)
	return nil
}

func (a *App) GetPartition(ctx context.Context, table, name string) error {
	p, err := a.ms.GetPartition(ctx, &model.GetPartitionRequest{
		Namespace: a.cfg.Namespace,
		Cookie:    a.cfg.Cookie,
		DbId:      a.dbID(),
		TableId:   &model.Id{Name: table},
		Values:    model.ParsePartitionName(name),
	})
	if err != nil {
		return err
	}
	return a.printJSON(p)
}

// AddPartitions 逐个打印每个分区的结果；只要有一个失败就返回错误。
func (a *App) AddPartitions(ctx context.Context, table, location string, names []string) error {
	reqs := make([]*model.AddPartitionRequest, 0, len(names))
	for _, name := range names {
		reqs = append(reqs, &model.AddPartitionRequest{
			Namespace: a.cfg.Namespace,
			Cookie:    a.cfg.Cookie,
			DbId:      a.dbID(),
			TableId:   &model.Id{Name: table},
			Partition: &model.Partition{Values: model.ParsePartitionName(name), Location: location},
		})
	}
	results, err := a.ms.AddPartitions(ctx, reqs)
	if err != nil {
		return err
	}
	failed := 0
	for i, r := range results {
		if r == nil || r.Status == nil {
			continue
		}
		if r.Status.Status != model.StatusOK {
			failed++
			fmt.Fprintf(a.out, "%s: %s %s\n", names[i], r.Status.Status, r.Status.Error)
			continue
		}
		fmt.Fprintf(a.out, "%s: %s\n", names[i], r.Status.Status)
	}
	if failed > 0 {
		return fmt.Errorf("%d 个分区添加失败", failed)
	}
	return nil
}

func (a *App) DropPartitions(ctx context.Context, table string, names []string) error {
	reqs := make([]*model.DropPartitionRequest, 0, len(names))
	for _, name := range names {
		reqs = append(reqs, &model.DropPartitionRequest{
			Namespace: a.cfg.Namespace,
			Cookie:    a.cfg.Cookie,
			DbId:      a.dbID(),
			TableId:   &model.Id{Name: table},
			Values:    model.ParsePartitionName(name),
		})
	}
	if err := a.ms.DropPartitions(ctx, reqs); err != nil {
		return err
	}
	// 服务端跳过不存在的分区，不回传实际删除数。
	fmt.Fprintf(a.out, "drop requested for %d partitions of %s\n", len(names), table)
	return nil
}

func (a *App) newTable(header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(a.out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetRowLine(false)
	return t
}

func (a *App) renderDatabases(dbs []*model.Database) {
	t := a.newTable([]string{"Name", "Id", "Seq", "Location", "Parameters"})
	for _, db := range dbs {
		t.Append([]string{
			db.Id.GetName(),
			db.Id.GetId(),
			strconv.FormatUint(db.SeqId, 10),
			db.Location,
			formatParams(db.Parameters),
		})
	}
	t.Render()
}

func (a *App) renderTables(tables []*model.Table) {
	t := a.newTable([]string{"Name", "Id", "Seq", "Columns", "Partition Keys"})
	for _, tbl := range tables {
		t.Append([]string{
			tbl.Id.GetName(),
			tbl.Id.GetId(),
			strconv.FormatUint(tbl.SeqId, 10),
			strconv.Itoa(len(tbl.Columns)),
			formatFields(tbl.PartitionKeys),
		})
	}
	t.Render()
}

func (a *App) renderPartitions(parts []*model.Partition) {
	t := a.newTable([]string{"Name", "Seq", "Location", "Parameters"})
	for _, p := range parts {
		t.Append([]string{
			model.PartitionName(p.Values),
			strconv.FormatUint(p.SeqId, 10),
			p.Location,
			formatParams(p.Parameters),
		})
	}
	t.Render()
}

func formatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, ",")
}

func formatFields(fields []model.FieldSchema) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+":"+f.Type)
	}
	return strings.Join(parts, ",")
}
