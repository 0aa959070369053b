// Package api 把 REST 请求翻译成 metastore RPC。
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hmsv2/internal/hmsclient"
	"hmsv2/pkg/model"
)

// CookieHeader 的值作为 cookie 透传给服务端，便于关联日志。
const CookieHeader = "X-Request-Id"

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

type Handlers struct {
	ms Metastore
}

func NewHandlers(ms Metastore) *Handlers {
	return &Handlers{ms: ms}
}

// Register 挂载 /api/v1 下的全部路由。
func (h *Handlers) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1/namespaces/:ns")
	{
		v1.GET("/databases", h.ListDatabases)
		v1.POST("/databases", h.CreateDatabase)
		v1.GET("/databases/:db", h.GetDatabase)
		v1.PATCH("/databases/:db", h.AlterDatabase)
		v1.DELETE("/databases/:db", h.DropDatabase)

		v1.GET("/databases/:db/tables", h.ListTables)
		v1.POST("/databases/:db/tables", h.CreateTable)
		v1.GET("/databases/:db/tables/:table", h.GetTable)
		v1.DELETE("/databases/:db/tables/:table", h.DropTable)

		v1.GET("/databases/:db/tables/:table/partitions", h.GetPartitions)
		v1.POST("/databases/:db/tables/:table/partitions", h.AddPartitions)
		v1.DELETE("/databases/:db/tables/:table/partitions", h.DropPartitions)
	}
}

// httpStatus 把 gRPC 状态码换成 HTTP 状态码。
func httpStatus(err error) int {
	var se *hmsclient.StatusError
	if errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch status.Code(err) {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error) {
	msg := err.Error()
	if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}
	c.JSON(httpStatus(err), gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dbID(c *gin.Context) *model.Id {
	return &model.Id{Name: c.Param("db"), Namespace: c.Param("ns")}
}

func tableID(c *gin.Context) *model.Id {
	return &model.Id{Name: c.Param("table")}
}

// Databases

func (h *Handlers) ListDatabases(c *gin.Context) {
	excludeParams := false
	if raw := c.Query("exclude_params"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "exclude_params 参数非法")
			return
		}
		excludeParams = v
	}
	dbs, err := h.ms.ListDatabases(c.Request.Context(), &model.ListDatabasesRequest{
		Namespace:     c.Param("ns"),
		Cookie:        c.GetHeader(CookieHeader),
		NamePattern:   c.Query("pattern"),
		Fields:        splitList(c.Query("fields")),
		ExcludeParams: excludeParams,
	})
	if err != nil {
		abort(c, err)
		return
	}
	if dbs == nil {
		dbs = []*model.Database{}
	}
	c.JSON(http.StatusOK, dbs)
}

func (h *Handlers) CreateDatabase(c *gin.Context) {
	var db model.Database
	if err := c.ShouldBindJSON(&db); err != nil {
		badRequest(c, "JSON 解析失败："+err.Error())
		return
	}
	created, err := h.ms.CreateDatabase(c.Request.Context(), &model.CreateDatabaseRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		Database:  &db,
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetDatabase(c *gin.Context) {
	db, err := h.ms.GetDatabase(c.Request.Context(), &model.GetDatabaseRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		Id:        dbID(c),
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, db)
}

func (h *Handlers) AlterDatabase(c *gin.Context) {
	var db model.Database
	if err := c.ShouldBindJSON(&db); err != nil {
		badRequest(c, "JSON 解析失败："+err.Error())
		return
	}
	altered, err := h.ms.AlterDatabase(c.Request.Context(), &model.AlterDatabaseRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		Id:        dbID(c),
		Database:  &db,
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, altered)
}

func (h *Handlers) DropDatabase(c *gin.Context) {
	if err := h.ms.DropDatabase(c.Request.Context(), &model.DropDatabaseRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		Id:        dbID(c),
	}); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Tables

func (h *Handlers) ListTables(c *gin.Context) {
	tables, err := h.ms.ListTables(c.Request.Context(), &model.ListTablesRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		DbId:      dbID(c),
	})
	if err != nil {
		abort(c, err)
		return
	}
	if tables == nil {
		tables = []*model.Table{}
	}
	c.JSON(http.StatusOK, tables)
}

func (h *Handlers) CreateTable(c *gin.Context) {
	var t model.Table
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, "JSON 解析失败："+err.Error())
		return
	}
	created, err := h.ms.CreateTable(c.Request.Context(), &model.CreateTableRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		DbId:      dbID(c),
		Table:     &t,
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetTable(c *gin.Context) {
	t, err := h.ms.GetTable(c.Request.Context(), &model.GetTableRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		DbId:      dbID(c),
		Id:        tableID(c),
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handlers) DropTable(c *gin.Context) {
	if err := h.ms.DropTable(c.Request.Context(), &model.DropTableRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		DbId:      dbID(c),
		Id:        tableID(c),
	}); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Partitions

// GetPartitions 带 values 参数时返回单个分区，否则列出全部。
func (h *Handlers) GetPartitions(c *gin.Context) {
	ctx := c.Request.Context()
	if name := c.Query("values"); name != "" {
		p, err := h.ms.GetPartition(ctx, &model.GetPartitionRequest{
			Namespace: c.Param("ns"),
			Cookie:    c.GetHeader(CookieHeader),
			DbId:      dbID(c),
			TableId:   tableID(c),
			Values:    model.ParsePartitionName(name),
		})
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
		return
	}

	parts, err := h.ms.ListPartitions(ctx, &model.ListPartitionsRequest{
		Namespace: c.Param("ns"),
		Cookie:    c.GetHeader(CookieHeader),
		DbId:      dbID(c),
		TableId:   tableID(c),
		Fields:    splitList(c.Query("fields")),
	})
	if err != nil {
		abort(c, err)
		return
	}
	if parts == nil {
		parts = []*model.Partition{}
	}
	c.JSON(http.StatusOK, parts)
}

// AddPartitions 接收分区数组，返回与之一一对应的状态。
func (h *Handlers) AddPartitions(c *gin.Context) {
	var parts []model.Partition
	if err := c.ShouldBindJSON(&parts); err != nil {
		badRequest(c, "JSON 解析失败："+err.Error())
		return
	}
	if len(parts) == 0 {
		badRequest(c, "分区列表不能为空")
		return
	}
	reqs := make([]*model.AddPartitionRequest, 0, len(parts))
	for i := range parts {
		reqs = append(reqs, &model.AddPartitionRequest{
			Namespace: c.Param("ns"),
			Cookie:    c.GetHeader(CookieHeader),
			DbId:      dbID(c),
			TableId:   tableID(c),
			Partition: &parts[i],
		})
	}
	results, err := h.ms.AddPartitions(c.Request.Context(), reqs)
	if err != nil {
		abort(c, err)
		return
	}
	out := make([]*model.RequestStatus, 0, len(results))
	for _, r := range results {
		if r == nil || r.Status == nil {
			out = append(out, &model.RequestStatus{Status: model.StatusError, Error: "no response"})
			continue
		}
		out = append(out, r.Status)
	}
	c.JSON(http.StatusOK, out)
}

// DropPartitions 的 values 参数可以重复，每个值对应一个分区。
func (h *Handlers) DropPartitions(c *gin.Context) {
	names := c.QueryArray("values")
	if len(names) == 0 {
		badRequest(c, "缺少 values 参数")
		return
	}
	reqs := make([]*model.DropPartitionRequest, 0, len(names))
	for _, name := range names {
		reqs = append(reqs, &model.DropPartitionRequest{
			Namespace: c.Param("ns"),
			Cookie:    c.GetHeader(CookieHeader),
			DbId:      dbID(c),
			TableId:   tableID(c),
			Values:    model.ParsePartitionName(name),
		})
	}
	if err := h.ms.DropPartitions(c.Request.Context(), reqs); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
