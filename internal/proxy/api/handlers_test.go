package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hmsv2/internal/hmsclient"
	"hmsv2/pkg/model"
)

type fakeMetastore struct {
	getDatabase    func(ctx context.Context, req *model.GetDatabaseRequest) (*model.Database, error)
	listDatabases  func(ctx context.Context, req *model.ListDatabasesRequest) ([]*model.Database, error)
	createDatabase func(ctx context.Context, req *model.CreateDatabaseRequest) (*model.Database, error)
	addPartitions  func(ctx context.Context, reqs []*model.AddPartitionRequest) ([]*model.AddPartitionResponse, error)
	dropPartitions func(ctx context.Context, reqs []*model.DropPartitionRequest) error
	getPartition   func(ctx context.Context, req *model.GetPartitionRequest) (*model.Partition, error)
	alterDatabase  func(ctx context.Context, req *model.AlterDatabaseRequest) (*model.Database, error)
	dropDatabase   func(ctx context.Context, req *model.DropDatabaseRequest) error
	createTable    func(ctx context.Context, req *model.CreateTableRequest) (*model.Table, error)
	getTable       func(ctx context.Context, req *model.GetTableRequest) (*model.Table, error)
	listTables     func(ctx context.Context, req *model.ListTablesRequest) ([]*model.Table, error)
	dropTable      func(ctx context.Context, req *model.DropTableRequest) error
	listPartitions func(ctx context.Context, req *model.ListPartitionsRequest) ([]*model.Partition, error)
}

var _ Metastore = (*fakeMetastore)(nil)

func (f *fakeMetastore) ListPartitions(ctx context.Context, req *model.ListPartitionsRequest) ([]*model.Partition, error) {
	return f.listPartitions(ctx, req)
}

func (f *fakeMetastore) AlterDatabase(ctx context.Context, req *model.AlterDatabaseRequest) (*model.Database, error) {
	return f.alterDatabase(ctx, req)
}

func (f *fakeMetastore) DropDatabase(ctx context.Context, req *model.DropDatabaseRequest) error {
	return f.dropDatabase(ctx, req)
}

func (f *fakeMetastore) CreateTable(ctx context.Context, req *model.CreateTableRequest) (*model.Table, error) {
	return f.createTable(ctx, req)
}

func (f *fakeMetastore) GetTable(ctx context.Context, req *model.GetTableRequest) (*model.Table, error) {
	return f.getTable(ctx, req)
}

func (f *fakeMetastore) ListTables(ctx context.Context, req *model.ListTablesRequest) ([]*model.Table, error) {
	return f.listTables(ctx, req)
}

func (f *fakeMetastore) DropTable(ctx context.Context, req *model.DropTableRequest) error {
	return f.dropTable(ctx, req)
}

func (f *fakeMetastore) GetDatabase(ctx context.Context, req *model.GetDatabaseRequest) (*model.Database, error) {
	return f.getDatabase(ctx, req)
}

func (f *fakeMetastore) ListDatabases(ctx context.Context, req *model.ListDatabasesRequest) ([]*model.Database, error) {
	return f.listDatabases(ctx, req)
}

func (f *fakeMetastore) CreateDatabase(ctx context.Context, req *model.CreateDatabaseRequest) (*model.Database, error) {
	return f.createDatabase(ctx, req)
}

func (f *fakeMetastore) AddPartitions(ctx context.Context, reqs []*model.AddPartitionRequest) ([]*model.AddPartitionResponse, error) {
	return f.addPartitions(ctx, reqs)
}

func (f *fakeMetastore) DropPartitions(ctx context.Context, reqs []*model.DropPartitionRequest) error {
	return f.dropPartitions(ctx, reqs)
}

func (f *fakeMetastore) GetPartition(ctx context.Context, req *model.GetPartitionRequest) (*model.Partition, error) {
	return f.getPartition(ctx, req)
}

func serve(ms Metastore, method, target, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandlers(ms).Register(r)
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(CookieHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetDatabase(t *testing.T) {
	handled := false
	ms := &fakeMetastore{
		getDatabase: func(ctx context.Context, req *model.GetDatabaseRequest) (*model.Database, error) {
			handled = true
			if req.Namespace != "ns1" || req.Id.Name != "db1" || req.Cookie != "req-1" {
				t.Fatalf("unexpected request: %+v", req)
			}
			return &model.Database{Id: &model.Id{Name: "db1", Id: "id-1"}, Location: "/w/db1"}, nil
		},
	}
	w := serve(ms, http.MethodGet, "/api/v1/namespaces/ns1/databases/db1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !handled {
		t.Fatalf("not handled")
	}
	var db model.Database
	if err := json.Unmarshal(w.Body.Bytes(), &db); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if db.Location != "/w/db1" || db.Id.Id != "id-1" {
		t.Fatalf("db=%+v", db)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{status.Error(codes.NotFound, "database db1 对象不存在"), http.StatusNotFound},
		{status.Error(codes.InvalidArgument, "missing namespace"), http.StatusBadRequest},
		{status.Error(codes.AlreadyExists, "exists"), http.StatusConflict},
		{status.Error(codes.Unavailable, "down"), http.StatusServiceUnavailable},
		{status.Error(codes.Internal, "boom"), http.StatusInternalServerError},
		{&hmsclient.StatusError{Message: "bad"}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		ms := &fakeMetastore{
			getDatabase: func(ctx context.Context, req *model.GetDatabaseRequest) (*model.Database, error) {
				return nil, tt.err
			},
		}
		w := serve(ms, http.MethodGet, "/api/v1/namespaces/ns1/databases/db1", "")
		if w.Code != tt.want {
			t.Errorf("%v: status=%d, want %d", tt.err, w.Code, tt.want)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Errorf("%v: missing error body: %s", tt.err, w.Body.String())
		}
	}
}

func TestListDatabases_Query(t *testing.T) {
	ms := &fakeMetastore{
		listDatabases: func(ctx context.Context, req *model.ListDatabasesRequest) ([]*model.Database, error) {
			if req.NamePattern != "s*" || !req.ExcludeParams {
				t.Fatalf("unexpected request: %+v", req)
			}
			if diff := cmp.Diff([]string{"id.name", "location"}, req.Fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
			return nil, nil
		},
	}
	w := serve(ms, http.MethodGet, "/api/v1/namespaces/ns1/databases?pattern=s*&fields=id.name,location&exclude_params=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("body=%s", w.Body.String())
	}

	w = serve(ms, http.MethodGet, "/api/v1/namespaces/ns1/databases?exclude_params=maybe", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestCreateDatabase(t *testing.T) {
	ms := &fakeMetastore{
		createDatabase: func(ctx context.Context, req *model.CreateDatabaseRequest) (*model.Database, error) {
			if req.Database.Id.GetName() != "sales" || req.Database.Parameters["owner"] != "hive" {
				t.Fatalf("unexpected request: %+v", req.Database)
			}
			return req.Database, nil
		},
	}
	w := serve(ms, http.MethodPost, "/api/v1/namespaces/ns1/databases", `{"id":{"name":"sales"},"parameters":{"owner":"hive"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = serve(ms, http.MethodPost, "/api/v1/namespaces/ns1/databases", `{bad json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPartitions(t *testing.T) {
	ms := &fakeMetastore{
		addPartitions: func(ctx context.Context, reqs []*model.AddPartitionRequest) ([]*model.AddPartitionResponse, error) {
			if len(reqs) != 2 || reqs[1].TableId.Name != "events" {
				t.Fatalf("unexpected requests: %+v", reqs)
			}
			return []*model.AddPartitionResponse{
				{Status: &model.RequestStatus{Status: model.StatusOK}, Sequence: 1},
				{Status: &model.RequestStatus{Status: model.StatusError, Error: "exists"}, Sequence: 2},
			}, nil
		},
		dropPartitions: func(ctx context.Context, reqs []*model.DropPartitionRequest) error {
			var got [][]string
			for _, r := range reqs {
				got = append(got, r.Values)
			}
			if diff := cmp.Diff([][]string{{"2024", "01"}, {"2024", "02"}}, got); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
			return nil
		},
		getPartition: func(ctx context.Context, req *model.GetPartitionRequest) (*model.Partition, error) {
			return &model.Partition{Values: req.Values}, nil
		},
		listPartitions: func(ctx context.Context, req *model.ListPartitionsRequest) ([]*model.Partition, error) {
			if diff := cmp.Diff([]string{"values"}, req.Fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
			return []*model.Partition{{Values: []string{"a"}}}, nil
		},
	}
	base := "/api/v1/namespaces/ns1/databases/db1/tables/events/partitions"

	w := serve(ms, http.MethodPost, base, `[{"values":["a"]},{"values":["b"]}]`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var statuses []model.RequestStatus
	if err := json.Unmarshal(w.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []model.RequestStatus{{Status: model.StatusOK}, {Status: model.StatusError, Error: "exists"}}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}

	w = serve(ms, http.MethodDelete, base+"?values=2024/01&values=2024/02", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	w = serve(ms, http.MethodDelete, base, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}

	w = serve(ms, http.MethodGet, base+"?fields=values", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var listed []model.Partition
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(listed) != 1 || listed[0].Values[0] != "a" {
		t.Errorf("partitions=%+v", listed)
	}

	w = serve(ms, http.MethodGet, base+"?values=2024/01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var p model.Partition
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"2024", "01"}, p.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestAlterAndDropDatabase(t *testing.T) {
	dropped := false
	ms := &fakeMetastore{
		alterDatabase: func(ctx context.Context, req *model.AlterDatabaseRequest) (*model.Database, error) {
			if req.Id.GetName() != "db1" || req.Namespace != "ns1" {
				t.Fatalf("unexpected request: %+v", req)
			}
			if req.Database.Location != "/new" || req.Database.Parameters["k"] != "v" {
				t.Fatalf("unexpected body: %+v", req.Database)
			}
			return &model.Database{Id: req.Id, Location: req.Database.Location, Parameters: req.Database.Parameters}, nil
		},
		dropDatabase: func(ctx context.Context, req *model.DropDatabaseRequest) error {
			dropped = true
			if req.Id.GetName() != "db1" || req.Cookie != "req-1" {
				t.Fatalf("unexpected request: %+v", req)
			}
			return nil
		},
	}
	base := "/api/v1/namespaces/ns1/databases/db1"

	w := serve(ms, http.MethodPatch, base, `{"location":"/new","parameters":{"k":"v"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var db model.Database
	if err := json.Unmarshal(w.Body.Bytes(), &db); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if db.Location != "/new" {
		t.Errorf("db=%+v", db)
	}

	w = serve(ms, http.MethodPatch, base, `[1,2]`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}

	w = serve(ms, http.MethodDelete, base, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if !dropped {
		t.Fatalf("not handled")
	}
}

func TestTables(t *testing.T) {
	var droppedTable string
	ms := &fakeMetastore{
		createTable: func(ctx context.Context, req *model.CreateTableRequest) (*model.Table, error) {
			if req.DbId.GetName() != "db1" {
				t.Fatalf("db=%+v", req.DbId)
			}
			want := []model.FieldSchema{{Name: "ts", Type: "bigint"}}
			if diff := cmp.Diff(want, req.Table.Columns); diff != "" {
				t.Fatalf("columns mismatch (-want +got):\n%s", diff)
			}
			return req.Table, nil
		},
		listTables: func(ctx context.Context, req *model.ListTablesRequest) ([]*model.Table, error) {
			if req.DbId.GetName() != "db1" {
				t.Fatalf("db=%+v", req.DbId)
			}
			return []*model.Table{{Id: &model.Id{Name: "events"}}, {Id: &model.Id{Name: "users"}}}, nil
		},
		getTable: func(ctx context.Context, req *model.GetTableRequest) (*model.Table, error) {
			if req.Id.GetName() == "missing" {
				return nil, status.Error(codes.NotFound, "table missing")
			}
			return &model.Table{Id: req.Id, DbId: req.DbId}, nil
		},
		dropTable: func(ctx context.Context, req *model.DropTableRequest) error {
			droppedTable = req.Id.GetName()
			return nil
		},
	}
	base := "/api/v1/namespaces/ns1/databases/db1/tables"

	w := serve(ms, http.MethodPost, base, `{"id":{"name":"events"},"columns":[{"name":"ts","type":"bigint"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = serve(ms, http.MethodPost, base, `{"columns":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}

	w = serve(ms, http.MethodGet, base, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var tables []model.Table
	if err := json.Unmarshal(w.Body.Bytes(), &tables); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tables) != 2 || tables[1].Id.GetName() != "users" {
		t.Fatalf("tables=%+v", tables)
	}

	w = serve(ms, http.MethodGet, base+"/events", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var tbl model.Table
	if err := json.Unmarshal(w.Body.Bytes(), &tbl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tbl.Id.GetName() != "events" || tbl.DbId.GetName() != "db1" {
		t.Errorf("table=%+v", tbl)
	}
	w = serve(ms, http.MethodGet, base+"/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}

	w = serve(ms, http.MethodDelete, base+"/events", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if droppedTable != "events" {
		t.Errorf("dropped=%q", droppedTable)
	}
}
