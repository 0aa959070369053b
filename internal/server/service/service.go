// Package service 实现 metastore.MetastoreServer：参数校验、id 分配、字段裁剪，
// 并把 storage 的错误翻译成 gRPC 状态码。持久化全部委托给 storage.Store。
package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hmsv2/internal/server/storage"
	"hmsv2/pkg/metastore"
	"hmsv2/pkg/model"
)

type Service struct {
	metastore.UnimplementedMetastoreServer

	store storage.Store
	newID func() string
}

var _ metastore.MetastoreServer = (*Service)(nil)

func New(store storage.Store) *Service {
	return &Service{store: store, newID: newID}
}

// newID 生成按时间有序的唯一 id，便于按 id 排序时接近创建顺序。
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func okStatus() *model.RequestStatus {
	return &model.RequestStatus{Status: model.StatusOK}
}

func invalid(format string, args ...any) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

// toStatus 把 storage 层错误映射成 gRPC 状态；已经是 gRPC 状态的错误原样返回。
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, storage.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// reqLog 在 Info 级别记录一次请求，返回带同样字段的 entry 供后续使用。
func reqLog(method, namespace, cookie string) *log.Entry {
	entry := log.WithFields(log.Fields{
		"method":    method,
		"namespace": namespace,
		"cookie":    cookie,
	})
	entry.Info("收到请求")
	return entry
}

func requireNamespace(ns string) error {
	if ns == "" {
		return invalid("missing namespace")
	}
	return nil
}

// validateName 拒绝带 "/" 的名字，name_pattern 里 "*" 不跨越 "/"。
func validateName(name, what string) error {
	if name == "" {
		return invalid("missing %s name", what)
	}
	if strings.Contains(name, "/") {
		return invalid("%s name %q must not contain '/'", what, name)
	}
	return nil
}

func requireID(id *model.Id, what string) error {
	if id.Empty() {
		return invalid("missing %s name or id", what)
	}
	return nil
}

// Databases

func (s *Service) CreateDatabase(ctx context.Context, req *model.CreateDatabaseRequest) (*model.GetDatabaseResponse, error) {
	reqLog("CreateDatabase", req.Namespace, req.Cookie).Debug(req.Database)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if req.Database == nil || req.Database.Id == nil {
		return nil, invalid("missing database info")
	}
	if err := validateName(req.Database.Id.Name, "database"); err != nil {
		return nil, err
	}
	database := req.Database
	database.Id.Id = s.newID()

	db, err := s.store.CreateDatabase(ctx, req.Namespace, database)
	if err != nil {
		return nil, toStatus(err)
	}
	return &model.GetDatabaseResponse{Status: okStatus(), Database: db}, nil
}

func (s *Service) GetDatabase(ctx context.Context, req *model.GetDatabaseRequest) (*model.GetDatabaseResponse, error) {
	reqLog("GetDatabase", req.Namespace, req.Cookie).Debug(req.Id)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if err := requireID(req.Id, "database"); err != nil {
		return nil, err
	}
	db, err := s.store.GetDatabase(ctx, req.Namespace, req.Id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &model.GetDatabaseResponse{Status: okStatus(), Database: db}, nil
}

func (s *Service) ListDatabases(req *model.ListDatabasesRequest, stream metastore.Metastore_ListDatabasesServer) error {
	entry := reqLog("ListDatabases", req.Namespace, req.Cookie)
	if err := requireNamespace(req.Namespace); err != nil {
		return err
	}
	if req.NamePattern != "" && !doublestar.ValidatePattern(req.NamePattern) {
		return invalid("bad name pattern %q", req.NamePattern)
	}
	dbs, err := s.store.ListDatabases(stream.Context(), req.Namespace)
	if err != nil {
		return toStatus(err)
	}
	sent := 0
	for _, db := range dbs {
		if req.NamePattern != "" {
			if ok, _ := doublestar.Match(req.NamePattern, db.Id.GetName()); !ok {
				continue
			}
		}
		out := projectDatabase(db, req.Fields, req.ExcludeParams)
		if err := stream.Send(out); err != nil {
			entry.WithError(err).Warn("发送 database 失败")
			return err
		}
		sent++
	}
	entry.Debugf("sent %d databases", sent)
	return nil
}

// projectDatabase 按 fields 裁剪返回内容。namespace 与请求一致，不再回传。
func projectDatabase(db *model.Database, fields []string, excludeParams bool) *model.Database {
	if db.Id != nil {
		db.Id.Namespace = ""
	}
	if excludeParams {
		db.Parameters = nil
		db.SystemParameters = nil
	}
	if len(fields) == 0 {
		return db
	}
	out := &model.Database{}
	for _, name := range fields {
		switch name {
		case "id.name":
			if out.Id == nil {
				out.Id = &model.Id{Name: db.Id.GetName()}
			} else {
				out.Id.Name = db.Id.GetName()
			}
		case "id":
			out.Id = db.Id
		case "location":
			out.Location = db.Location
		case "parameters":
			out.Parameters = db.Parameters
			out.SystemParameters = db.SystemParameters
		}
	}
	return out
}

func (s *Service) AlterDatabase(ctx context.Context, req *model.AlterDatabaseRequest) (*model.GetDatabaseResponse, error) {
	reqLog("AlterDatabase", req.Namespace, req.Cookie).Debug(req.Id)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if req.Database == nil {
		return nil, invalid("missing database")
	}
	if err := requireID(req.Id, "database"); err != nil {
		return nil, err
	}
	src := req.Database
	db, err := s.store.UpdateDatabase(ctx, req.Namespace, req.Id, func(db *model.Database) error {
		db.Parameters = src.Parameters
		if src.SystemParameters != nil {
			db.SystemParameters = src.SystemParameters
		}
		if src.Location != "" {
			db.Location = src.Location
		}
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &model.GetDatabaseResponse{Status: okStatus(), Database: db}, nil
}

func (s *Service) DropDatabase(ctx context.Context, req *model.DropDatabaseRequest) (*model.RequestStatus, error) {
	reqLog("DropDatabase", req.Namespace, req.Cookie).Debug(req.Id)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if err := requireID(req.Id, "database"); err != nil {
		return nil, err
	}
	if err := s.store.DropDatabase(ctx, req.Namespace, req.Id); err != nil {
		return nil, toStatus(err)
	}
	return okStatus(), nil
}

// Tables

func (s *Service) CreateTable(ctx context.Context, req *model.CreateTableRequest) (*model.GetTableResponse, error) {
	reqLog("CreateTable", req.Namespace, req.Cookie).Debug(req.Table)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if err := requireID(req.DbId, "database"); err != nil {
		return nil, err
	}
	if req.Table == nil {
		return nil, invalid("missing table data")
	}
	if req.Table.Id == nil {
		return nil, invalid("missing table name")
	}
	if err := validateName(req.Table.Id.Name, "table"); err != nil {
		return nil, err
	}
	table := req.Table
	table.Id.Id = s.newID()

	t, err := s.store.CreateTable(ctx, req.Namespace, req.DbId, table)
	if err != nil {
		return nil, toStatus(err)
	}
	return &model.GetTableResponse{Status: okStatus(), Table: t}, nil
}

func (s *Service) GetTable(ctx context.Context, req *model.GetTableRequest) (*model.GetTableResponse, error) {
	reqLog("GetTable", req.Namespace, req.Cookie).Debug(req.Id)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if err := requireID(req.DbId, "database"); err != nil {
		return nil, err
	}
	if err := requireID(req.Id, "table"); err != nil {
		return nil, err
	}
	t, err := s.store.GetTable(ctx, req.Namespace, req.DbId, req.Id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &model.GetTableResponse{Status: okStatus(), Table: t}, nil
}

func (s *Service) ListTables(req *model.ListTablesRequest, stream metastore.Metastore_ListTablesServer) error {
	entry := reqLog("ListTables", req.Namespace, req.Cookie)
	if err := requireNamespace(req.Namespace); err != nil {
		return err
	}
	if err := requireID(req.DbId, "database"); err != nil {
		return err
	}
	tables, err := s.store.ListTables(stream.Context(), req.Namespace, req.DbId)
	if err != nil {
		return toStatus(err)
	}
	for _, t := range tables {
		if err := stream.Send(t); err != nil {
			entry.WithError(err).Warn("发送 table 失败")
			return err
		}
	}
	return nil
}

func (s *Service) DropTable(ctx context.Context, req *model.DropTableRequest) (*model.RequestStatus, error) {
	reqLog("DropTable", req.Namespace, req.Cookie).Debug(req.Id)
	if err := requireNamespace(req.Namespace); err != nil {
		return nil, err
	}
	if err := requireID(req.DbId, "database"); err != nil {
		return nil, err
	}
	if err := requireID(req.Id, "table"); err != nil {
		return nil, err
	}
	if err := s.store.DropTable(ctx, req.Namespace, req.DbId, req.Id); err != nil {
		return nil, toStatus(err)
	}
	return okStatus(), nil
}

// Partitions

func validatePartitionTarget(namespace string, dbID, tableID *model.Id) error {
	if err := requireNamespace(namespace); err != nil {
		return err
	}
	if err := requireID(dbID, "database"); err != nil {
		return err
	}
	return requireID(tableID, "table")
}

func (s *Service) addPartition(ctx context.Context, req *model.AddPartitionRequest) error {
	if err := validatePartitionTarget(req.Namespace, req.DbId, req.TableId); err != nil {
		return err
	}
	if req.Partition == nil {
		return invalid("missing partition data")
	}
	if model.PartitionName(req.Partition.Values) == "" {
		return invalid("missing partition values")
	}
	_, err := s.store.AddPartition(ctx, req.Namespace, req.DbId, req.TableId, req.Partition)
	return toStatus(err)
}

func (s *Service) AddPartition(ctx context.Context, req *model.AddPartitionRequest) (*model.AddPartitionResponse, error) {
	reqLog("AddPartition", req.Namespace, req.Cookie).Debug(req.Partition)
	if err := s.addPartition(ctx, req); err != nil {
		return nil, err
	}
	return &model.AddPartitionResponse{Status: okStatus(), Sequence: req.Sequence}, nil
}

// AddManyPartitions 每收到一个请求就回一个响应；单个分区失败写在响应里，流继续。
func (s *Service) AddManyPartitions(stream metastore.Metastore_AddManyPartitionsServer) error {
	var entry *log.Entry
	added := 0
	for {
		req, err := stream.Recv()
		if err != nil {
			if isEOF(err) {
				if entry == nil {
					entry = reqLog("AddManyPartitions", "", "")
				}
				entry.Debugf("added %d partitions", added)
				return nil
			}
			return err
		}
		if entry == nil {
			entry = reqLog("AddManyPartitions", req.Namespace, req.Cookie)
		}
		resp := &model.AddPartitionResponse{Status: okStatus(), Sequence: req.Sequence}
		if err := s.addPartition(stream.Context(), req); err != nil {
			entry.WithError(err).Warn("添加分区失败")
			resp.Status = &model.RequestStatus{Status: model.StatusError, Error: status.Convert(err).Message()}
		} else {
			added++
		}
		if err := stream.Send(resp); err != nil {
			return err
		}
	}
}

func (s *Service) GetPartition(ctx context.Context, req *model.GetPartitionRequest) (*model.GetPartitionResponse, error) {
	reqLog("GetPartition", req.Namespace, req.Cookie).Debug(req.Values)
	if err := validatePartitionTarget(req.Namespace, req.DbId, req.TableId); err != nil {
		return nil, err
	}
	if model.PartitionName(req.Values) == "" {
		return nil, invalid("missing partition values")
	}
	p, err := s.store.GetPartition(ctx, req.Namespace, req.DbId, req.TableId, req.Values)
	if err != nil {
		return nil, toStatus(err)
	}
	return &model.GetPartitionResponse{Status: okStatus(), Partition: p}, nil
}

func (s *Service) ListPartitions(req *model.ListPartitionsRequest, stream metastore.Metastore_ListPartitionsServer) error {
	entry := reqLog("ListPartitions", req.Namespace, req.Cookie)
	if err := validatePartitionTarget(req.Namespace, req.DbId, req.TableId); err != nil {
		return err
	}
	parts, err := s.store.ListPartitions(stream.Context(), req.Namespace, req.DbId, req.TableId)
	if err != nil {
		return toStatus(err)
	}
	for _, p := range parts {
		if err := stream.Send(projectPartition(p, req.Fields)); err != nil {
			entry.WithError(err).Warn("发送分区失败")
			return err
		}
	}
	return nil
}

func projectPartition(p *model.Partition, fields []string) *model.Partition {
	if len(fields) == 0 {
		return p
	}
	out := &model.Partition{}
	for _, name := range fields {
		switch name {
		case "location":
			out.Location = p.Location
		case "parameters":
			out.Parameters = p.Parameters
		case "values":
			out.Values = p.Values
		}
	}
	return out
}

func (s *Service) DropPartition(ctx context.Context, req *model.DropPartitionRequest) (*model.RequestStatus, error) {
	reqLog("DropPartition", req.Namespace, req.Cookie).Debug(req.Values)
	if err := validatePartitionTarget(req.Namespace, req.DbId, req.TableId); err != nil {
		return nil, err
	}
	name := model.PartitionName(req.Values)
	if name == "" {
		return nil, invalid("missing partition values")
	}
	n, err := s.store.DropPartitions(ctx, req.Namespace, req.DbId, req.TableId, [][]string{req.Values})
	if err != nil {
		return nil, toStatus(err)
	}
	if n == 0 {
		return nil, status.Errorf(codes.NotFound, "partition %s does not exist", name)
	}
	return okStatus(), nil
}

// DropPartitions 以第一个请求的 namespace/db/table 为准，收齐后一次性删除。
// 值为空的请求被跳过；不存在的分区不算错误。
func (s *Service) DropPartitions(stream metastore.Metastore_DropPartitionsServer) error {
	first, err := stream.Recv()
	if err != nil {
		if isEOF(err) {
			reqLog("DropPartitions", "", "")
			return stream.SendAndClose(okStatus())
		}
		return err
	}
	entry := reqLog("DropPartitions", first.Namespace, first.Cookie)
	if err := validatePartitionTarget(first.Namespace, first.DbId, first.TableId); err != nil {
		return err
	}

	values := [][]string{first.Values}
	for {
		req, err := stream.Recv()
		if err != nil {
			if isEOF(err) {
				break
			}
			return err
		}
		if model.PartitionName(req.Values) == "" {
			entry.Warn("请求缺少分区值，跳过")
			continue
		}
		values = append(values, req.Values)
	}

	n, err := s.store.DropPartitions(stream.Context(), first.Namespace, first.DbId, first.TableId, values)
	if err != nil {
		return toStatus(err)
	}
	entry.Debugf("dropped %d partitions", n)
	return stream.SendAndClose(okStatus())
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
