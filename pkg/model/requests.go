package model

type StatusCode int32

const (
	StatusOK    StatusCode = 0
	StatusError StatusCode = 1
)

func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type RequestStatus struct {
	Status StatusCode `msgpack:"status" json:"status"`
	Error  string     `msgpack:"error,omitempty" json:"error,omitempty"`
}

// 所有请求都带 Namespace 与 Cookie；Cookie 对服务端不透明，只用于日志关联。

type CreateDatabaseRequest struct {
	Namespace string    `msgpack:"namespace"`
	Cookie    string    `msgpack:"cookie,omitempty"`
	Database  *Database `msgpack:"database"`
}

type GetDatabaseRequest struct {
	Namespace string `msgpack:"namespace"`
	Cookie    string `msgpack:"cookie,omitempty"`
	Id        *Id    `msgpack:"id"`
}

type GetDatabaseResponse struct {
	Status   *RequestStatus `msgpack:"status,omitempty"`
	Database *Database      `msgpack:"database,omitempty"`
}

type ListDatabasesRequest struct {
	Namespace     string   `msgpack:"namespace"`
	Cookie        string   `msgpack:"cookie,omitempty"`
	NamePattern   string   `msgpack:"name_pattern,omitempty"`
	Fields        []string `msgpack:"fields,omitempty"`
	ExcludeParams bool     `msgpack:"exclude_params,omitempty"`
}

type AlterDatabaseRequest struct {
	Namespace string    `msgpack:"namespace"`
	Cookie    string    `msgpack:"cookie,omitempty"`
	Id        *Id       `msgpack:"id"`
	Database  *Database `msgpack:"database"`
}

type DropDatabaseRequest struct {
	Namespace string `msgpack:"namespace"`
	Cookie    string `msgpack:"cookie,omitempty"`
	Id        *Id    `msgpack:"id"`
}

type CreateTableRequest struct {
	Namespace string `msgpack:"namespace"`
	Cookie    string `msgpack:"cookie,omitempty"`
	DbId      *Id    `msgpack:"db_id"`
	Table     *Table `msgpack:"table"`
}

type GetTableRequest struct {
	Namespace string `msgpack:"namespace"`
	Cookie    string `msgpack:"cookie,omitempty"`
	DbId      *Id    `msgpack:"db_id"`
	Id        *Id    `msgpack:"id"`
}

type GetTableResponse struct {
	Status *RequestStatus `msgpack:"status,omitempty"`
	Table  *Table         `msgpack:"table,omitempty"`
}

type ListTablesRequest struct {
	Namespace string `msgpack:"namespace"`
	Cookie    string `msgpack:"cookie,omitempty"`
	DbId      *Id    `msgpack:"db_id"`
}

type DropTableRequest struct {
	Namespace string `msgpack:"namespace"`
	Cookie    string `msgpack:"cookie,omitempty"`
	DbId      *Id    `msgpack:"db_id"`
	Id        *Id    `msgpack:"id"`
}

type AddPartitionRequest struct {
	Namespace string     `msgpack:"namespace"`
	Cookie    string     `msgpack:"cookie,omitempty"`
	DbId      *Id        `msgpack:"db_id"`
	TableId   *Id        `msgpack:"table_id"`
	Partition *Partition `msgpack:"partition"`
	// Sequence 由调用方设置，响应原样带回，用于在批量流里对应请求。
	Sequence uint64 `msgpack:"sequence,omitempty"`
}

type AddPartitionResponse struct {
	Status   *RequestStatus `msgpack:"status,omitempty"`
	Sequence uint64         `msgpack:"sequence,omitempty"`
}

type GetPartitionRequest struct {
	Namespace string   `msgpack:"namespace"`
	Cookie    string   `msgpack:"cookie,omitempty"`
	DbId      *Id      `msgpack:"db_id"`
	TableId   *Id      `msgpack:"table_id"`
	Values    []string `msgpack:"values"`
}

type GetPartitionResponse struct {
	Status    *RequestStatus `msgpack:"status,omitempty"`
	Partition *Partition     `msgpack:"partition,omitempty"`
}

type ListPartitionsRequest struct {
	Namespace string   `msgpack:"namespace"`
	Cookie    string   `msgpack:"cookie,omitempty"`
	DbId      *Id      `msgpack:"db_id"`
	TableId   *Id      `msgpack:"table_id"`
	Fields    []string `msgpack:"fields,omitempty"`
}

type DropPartitionRequest struct {
	Namespace string   `msgpack:"namespace"`
	Cookie    string   `msgpack:"cookie,omitempty"`
	DbId      *Id      `msgpack:"db_id"`
	TableId   *Id      `msgpack:"table_id"`
	Values    []string `msgpack:"values"`
}
