package metastore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hmsv2/pkg/model"
)

const ServiceName = "hmsv2.Metastore"

const (
	MethodCreateDatabase    = "/" + ServiceName + "/CreateDatabase"
	MethodGetDatabase       = "/" + ServiceName + "/GetDatabase"
	MethodListDatabases     = "/" + ServiceName + "/ListDatabases"
	MethodAlterDatabase     = "/" + ServiceName + "/AlterDatabase"
	MethodDropDatabase      = "/" + ServiceName + "/DropDatabase"
	MethodCreateTable       = "/" + ServiceName + "/CreateTable"
	MethodGetTable          = "/" + ServiceName + "/GetTable"
	MethodListTables        = "/" + ServiceName + "/ListTables"
	MethodDropTable         = "/" + ServiceName + "/DropTable"
	MethodAddPartition      = "/" + ServiceName + "/AddPartition"
	MethodAddManyPartitions = "/" + ServiceName + "/AddManyPartitions"
	MethodGetPartition      = "/" + ServiceName + "/GetPartition"
	MethodListPartitions    = "/" + ServiceName + "/ListPartitions"
	MethodDropPartition     = "/" + ServiceName + "/DropPartition"
	MethodDropPartitions    = "/" + ServiceName + "/DropPartitions"
)

// MetastoreClient is the client API for the Metastore service.
type MetastoreClient interface {
	CreateDatabase(ctx context.Context, in *model.CreateDatabaseRequest, opts ...grpc.CallOption) (*model.GetDatabaseResponse, error)
	GetDatabase(ctx context.Context, in *model.GetDatabaseRequest, opts ...grpc.CallOption) (*model.GetDatabaseResponse, error)
	ListDatabases(ctx context.Context, in *model.ListDatabasesRequest, opts ...grpc.CallOption) (Metastore_ListDatabasesClient, error)
	AlterDatabase(ctx context.Context, in *model.AlterDatabaseRequest, opts ...grpc.CallOption) (*model.GetDatabaseResponse, error)
	DropDatabase(ctx context.Context, in *model.DropDatabaseRequest, opts ...grpc.CallOption) (*model.RequestStatus, error)
	CreateTable(ctx context.Context, in *model.CreateTableRequest, opts ...grpc.CallOption) (*model.GetTableResponse, error)
	GetTable(ctx context.Context, in *model.GetTableRequest, opts ...grpc.CallOption) (*model.GetTableResponse, error)
	ListTables(ctx context.Context, in *model.ListTablesRequest, opts ...grpc.CallOption) (Metastore_ListTablesClient, error)
	DropTable(ctx context.Context, in *model.DropTableRequest, opts ...grpc.CallOption) (*model.RequestStatus, error)
	AddPartition(ctx context.Context, in *model.AddPartitionRequest, opts ...grpc.CallOption) (*model.AddPartitionResponse, error)
	AddManyPartitions(ctx context.Context, opts ...grpc.CallOption) (Metastore_AddManyPartitionsClient, error)
	GetPartition(ctx context.Context, in *model.GetPartitionRequest, opts ...grpc.CallOption) (*model.GetPartitionResponse, error)
	ListPartitions(ctx context.Context, in *model.ListPartitionsRequest, opts ...grpc.CallOption) (Metastore_ListPartitionsClient, error)
	DropPartition(ctx context.Context, in *model.DropPartitionRequest, opts ...grpc.CallOption) (*model.RequestStatus, error)
	DropPartitions(ctx context.Context, opts ...grpc.CallOption) (Metastore_DropPartitionsClient, error)
}

type metastoreClient struct {
	cc grpc.ClientConnInterface
}

func NewMetastoreClient(cc grpc.ClientConnInterface) MetastoreClient {
	return &metastoreClient{cc}
}

func (c *metastoreClient) CreateDatabase(ctx context.Context, in *model.CreateDatabaseRequest, opts ...grpc.CallOption) (*model.GetDatabaseResponse, error) {
	out := new(model.GetDatabaseResponse)
	if err := c.cc.Invoke(ctx, MethodCreateDatabase, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) GetDatabase(ctx context.Context, in *model.GetDatabaseRequest, opts ...grpc.CallOption) (*model.GetDatabaseResponse, error) {
	out := new(model.GetDatabaseResponse)
	if err := c.cc.Invoke(ctx, MethodGetDatabase, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) ListDatabases(ctx context.Context, in *model.ListDatabasesRequest, opts ...grpc.CallOption) (Metastore_ListDatabasesClient, error) {
	stream, err := c.cc.NewStream(ctx, &Metastore_ServiceDesc.Streams[0], MethodListDatabases, opts...)
	if err != nil {
		return nil, err
	}
	x := &metastoreListDatabasesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type Metastore_ListDatabasesClient interface {
	Recv() (*model.Database, error)
	grpc.ClientStream
}

type metastoreListDatabasesClient struct {
	grpc.ClientStream
}

func (x *metastoreListDatabasesClient) Recv() (*model.Database, error) {
	m := new(model.Database)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *metastoreClient) AlterDatabase(ctx context.Context, in *model.AlterDatabaseRequest, opts ...grpc.CallOption) (*model.GetDatabaseResponse, error) {
	out := new(model.GetDatabaseResponse)
	if err := c.cc.Invoke(ctx, MethodAlterDatabase, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) DropDatabase(ctx context.Context, in *model.DropDatabaseRequest, opts ...grpc.CallOption) (*model.RequestStatus, error) {
	out := new(model.RequestStatus)
	if err := c.cc.Invoke(ctx, MethodDropDatabase, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) CreateTable(ctx context.Context, in *model.CreateTableRequest, opts ...grpc.CallOption) (*model.GetTableResponse, error) {
	out := new(model.GetTableResponse)
	if err := c.cc.Invoke(ctx, MethodCreateTable, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) GetTable(ctx context.Context, in *model.GetTableRequest, opts ...grpc.CallOption) (*model.GetTableResponse, error) {
	out := new(model.GetTableResponse)
	if err := c.cc.Invoke(ctx, MethodGetTable, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) ListTables(ctx context.Context, in *model.ListTablesRequest, opts ...grpc.CallOption) (Metastore_ListTablesClient, error) {
	stream, err := c.cc.NewStream(ctx, &Metastore_ServiceDesc.Streams[1], MethodListTables, opts...)
	if err != nil {
		return nil, err
	}
	x := &metastoreListTablesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type Metastore_ListTablesClient interface {
	Recv() (*model.Table, error)
	grpc.ClientStream
}

type metastoreListTablesClient struct {
	grpc.ClientStream
}

func (x *metastoreListTablesClient) Recv() (*model.Table, error) {
	m := new(model.Table)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *metastoreClient) DropTable(ctx context.Context, in *model.DropTableRequest, opts ...grpc.CallOption) (*model.RequestStatus, error) {
	out := new(model.RequestStatus)
	if err := c.cc.Invoke(ctx, MethodDropTable, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) AddPartition(ctx context.Context, in *model.AddPartitionRequest, opts ...grpc.CallOption) (*model.AddPartitionResponse, error) {
	out := new(model.AddPartitionResponse)
	if err := c.cc.Invoke(ctx, MethodAddPartition, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) AddManyPartitions(ctx context.Context, opts ...grpc.CallOption) (Metastore_AddManyPartitionsClient, error) {
	stream, err := c.cc.NewStream(ctx, &Metastore_ServiceDesc.Streams[2], MethodAddManyPartitions, opts...)
	if err != nil {
		return nil, err
	}
	return &metastoreAddManyPartitionsClient{stream}, nil
}

type Metastore_AddManyPartitionsClient interface {
	Send(*model.AddPartitionRequest) error
	Recv() (*model.AddPartitionResponse, error)
	grpc.ClientStream
}

type metastoreAddManyPartitionsClient struct {
	grpc.ClientStream
}

func (x *metastoreAddManyPartitionsClient) Send(m *model.AddPartitionRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *metastoreAddManyPartitionsClient) Recv() (*model.AddPartitionResponse, error) {
	m := new(model.AddPartitionResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *metastoreClient) GetPartition(ctx context.Context, in *model.GetPartitionRequest, opts ...grpc.CallOption) (*model.GetPartitionResponse, error) {
	out := new(model.GetPartitionResponse)
	if err := c.cc.Invoke(ctx, MethodGetPartition, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) ListPartitions(ctx context.Context, in *model.ListPartitionsRequest, opts ...grpc.CallOption) (Metastore_ListPartitionsClient, error) {
	stream, err := c.cc.NewStream(ctx, &Metastore_ServiceDesc.Streams[3], MethodListPartitions, opts...)
	if err != nil {
		return nil, err
	}
	x := &metastoreListPartitionsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type Metastore_ListPartitionsClient interface {
	Recv() (*model.Partition, error)
	grpc.ClientStream
}

type metastoreListPartitionsClient struct {
	grpc.ClientStream
}

func (x *metastoreListPartitionsClient) Recv() (*model.Partition, error) {
	m := new(model.Partition)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *metastoreClient) DropPartition(ctx context.Context, in *model.DropPartitionRequest, opts ...grpc.CallOption) (*model.RequestStatus, error) {
	out := new(model.RequestStatus)
	if err := c.cc.Invoke(ctx, MethodDropPartition, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *metastoreClient) DropPartitions(ctx context.Context, opts ...grpc.CallOption) (Metastore_DropPartitionsClient, error) {
	stream, err := c.cc.NewStream(ctx, &Metastore_ServiceDesc.Streams[4], MethodDropPartitions, opts...)
	if err != nil {
		return nil, err
	}
	return &metastoreDropPartitionsClient{stream}, nil
}

type Metastore_DropPartitionsClient interface {
	Send(*model.DropPartitionRequest) error
	CloseAndRecv() (*model.RequestStatus, error)
	grpc.ClientStream
}

type metastoreDropPartitionsClient struct {
	grpc.ClientStream
}

func (x *metastoreDropPartitionsClient) Send(m *model.DropPartitionRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *metastoreDropPartitionsClient) CloseAndRecv() (*model.RequestStatus, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(model.RequestStatus)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MetastoreServer is the server API for the Metastore service.
type MetastoreServer interface {
	CreateDatabase(context.Context, *model.CreateDatabaseRequest) (*model.GetDatabaseResponse, error)
	GetDatabase(context.Context, *model.GetDatabaseRequest) (*model.GetDatabaseResponse, error)
	ListDatabases(*model.ListDatabasesRequest, Metastore_ListDatabasesServer) error
	AlterDatabase(context.Context, *model.AlterDatabaseRequest) (*model.GetDatabaseResponse, error)
	DropDatabase(context.Context, *model.DropDatabaseRequest) (*model.RequestStatus, error)
	CreateTable(context.Context, *model.CreateTableRequest) (*model.GetTableResponse, error)
	GetTable(context.Context, *model.GetTableRequest) (*model.GetTableResponse, error)
	ListTables(*model.ListTablesRequest, Metastore_ListTablesServer) error
	DropTable(context.Context, *model.DropTableRequest) (*model.RequestStatus, error)
	AddPartition(context.Context, *model.AddPartitionRequest) (*model.AddPartitionResponse, error)
	AddManyPartitions(Metastore_AddManyPartitionsServer) error
	GetPartition(context.Context, *model.GetPartitionRequest) (*model.GetPartitionResponse, error)
	ListPartitions(*model.ListPartitionsRequest, Metastore_ListPartitionsServer) error
	DropPartition(context.Context, *model.DropPartitionRequest) (*model.RequestStatus, error)
	DropPartitions(Metastore_DropPartitionsServer) error
}

// UnimplementedMetastoreServer 可以嵌入到实现中，未覆盖的方法返回 Unimplemented。
type UnimplementedMetastoreServer struct{}

func (UnimplementedMetastoreServer) CreateDatabase(context.Context, *model.CreateDatabaseRequest) (*model.GetDatabaseResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateDatabase not implemented")
}
func (UnimplementedMetastoreServer) GetDatabase(context.Context, *model.GetDatabaseRequest) (*model.GetDatabaseResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDatabase not implemented")
}
func (UnimplementedMetastoreServer) ListDatabases(*model.ListDatabasesRequest, Metastore_ListDatabasesServer) error {
	return status.Errorf(codes.Unimplemented, "method ListDatabases not implemented")
}
func (UnimplementedMetastoreServer) AlterDatabase(context.Context, *model.AlterDatabaseRequest) (*model.GetDatabaseResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AlterDatabase not implemented")
}
func (UnimplementedMetastoreServer) DropDatabase(context.Context, *model.DropDatabaseRequest) (*model.RequestStatus, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DropDatabase not implemented")
}
func (UnimplementedMetastoreServer) CreateTable(context.Context, *model.CreateTableRequest) (*model.GetTableResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateTable not implemented")
}
func (UnimplementedMetastoreServer) GetTable(context.Context, *model.GetTableRequest) (*model.GetTableResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTable not implemented")
}
func (UnimplementedMetastoreServer) ListTables(*model.ListTablesRequest, Metastore_ListTablesServer) error {
	return status.Errorf(codes.Unimplemented, "method ListTables not implemented")
}
func (UnimplementedMetastoreServer) DropTable(context.Context, *model.DropTableRequest) (*model.RequestStatus, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DropTable not implemented")
}
func (UnimplementedMetastoreServer) AddPartition(context.Context, *model.AddPartitionRequest) (*model.AddPartitionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddPartition not implemented")
}
func (UnimplementedMetastoreServer) AddManyPartitions(Metastore_AddManyPartitionsServer) error {
	return status.Errorf(codes.Unimplemented, "method AddManyPartitions not implemented")
}
func (UnimplementedMetastoreServer) GetPartition(context.Context, *model.GetPartitionRequest) (*model.GetPartitionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPartition not implemented")
}
func (UnimplementedMetastoreServer) ListPartitions(*model.ListPartitionsRequest, Metastore_ListPartitionsServer) error {
	return status.Errorf(codes.Unimplemented, "method ListPartitions not implemented")
}
func (UnimplementedMetastoreServer) DropPartition(context.Context, *model.DropPartitionRequest) (*model.RequestStatus, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DropPartition not implemented")
}
func (UnimplementedMetastoreServer) DropPartitions(Metastore_DropPartitionsServer) error {
	return status.Errorf(codes.Unimplemented, "method DropPartitions not implemented")
}

func RegisterMetastoreServer(s grpc.ServiceRegistrar, srv MetastoreServer) {
	s.RegisterService(&Metastore_ServiceDesc, srv)
}

func _Metastore_CreateDatabase_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.CreateDatabaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).CreateDatabase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateDatabase}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).CreateDatabase(ctx, req.(*model.CreateDatabaseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_GetDatabase_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.GetDatabaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).GetDatabase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetDatabase}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).GetDatabase(ctx, req.(*model.GetDatabaseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_ListDatabases_Handler(srv any, stream grpc.ServerStream) error {
	m := new(model.ListDatabasesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MetastoreServer).ListDatabases(m, &metastoreListDatabasesServer{stream})
}

type Metastore_ListDatabasesServer interface {
	Send(*model.Database) error
	grpc.ServerStream
}

type metastoreListDatabasesServer struct {
	grpc.ServerStream
}

func (x *metastoreListDatabasesServer) Send(m *model.Database) error {
	return x.ServerStream.SendMsg(m)
}

func _Metastore_AlterDatabase_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.AlterDatabaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).AlterDatabase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAlterDatabase}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).AlterDatabase(ctx, req.(*model.AlterDatabaseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_DropDatabase_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.DropDatabaseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).DropDatabase(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDropDatabase}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).DropDatabase(ctx, req.(*model.DropDatabaseRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_CreateTable_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.CreateTableRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).CreateTable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateTable}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).CreateTable(ctx, req.(*model.CreateTableRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_GetTable_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.GetTableRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).GetTable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetTable}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).GetTable(ctx, req.(*model.GetTableRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_ListTables_Handler(srv any, stream grpc.ServerStream) error {
	m := new(model.ListTablesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MetastoreServer).ListTables(m, &metastoreListTablesServer{stream})
}

type Metastore_ListTablesServer interface {
	Send(*model.Table) error
	grpc.ServerStream
}

type metastoreListTablesServer struct {
	grpc.ServerStream
}

func (x *metastoreListTablesServer) Send(m *model.Table) error {
	return x.ServerStream.SendMsg(m)
}

func _Metastore_DropTable_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.DropTableRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).DropTable(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDropTable}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).DropTable(ctx, req.(*model.DropTableRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_AddPartition_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.AddPartitionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).AddPartition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAddPartition}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).AddPartition(ctx, req.(*model.AddPartitionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_AddManyPartitions_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(MetastoreServer).AddManyPartitions(&metastoreAddManyPartitionsServer{stream})
}

type Metastore_AddManyPartitionsServer interface {
	Send(*model.AddPartitionResponse) error
	Recv() (*model.AddPartitionRequest, error)
	grpc.ServerStream
}

type metastoreAddManyPartitionsServer struct {
	grpc.ServerStream
}

func (x *metastoreAddManyPartitionsServer) Send(m *model.AddPartitionResponse) error {
	return x.ServerStream.SendMsg(m)
}

func (x *metastoreAddManyPartitionsServer) Recv() (*model.AddPartitionRequest, error) {
	m := new(model.AddPartitionRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _Metastore_GetPartition_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.GetPartitionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).GetPartition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetPartition}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).GetPartition(ctx, req.(*model.GetPartitionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_ListPartitions_Handler(srv any, stream grpc.ServerStream) error {
	m := new(model.ListPartitionsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MetastoreServer).ListPartitions(m, &metastoreListPartitionsServer{stream})
}

type Metastore_ListPartitionsServer interface {
	Send(*model.Partition) error
	grpc.ServerStream
}

type metastoreListPartitionsServer struct {
	grpc.ServerStream
}

func (x *metastoreListPartitionsServer) Send(m *model.Partition) error {
	return x.ServerStream.SendMsg(m)
}

func _Metastore_DropPartition_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(model.DropPartitionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MetastoreServer).DropPartition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDropPartition}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MetastoreServer).DropPartition(ctx, req.(*model.DropPartitionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Metastore_DropPartitions_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(MetastoreServer).DropPartitions(&metastoreDropPartitionsServer{stream})
}

type Metastore_DropPartitionsServer interface {
	SendAndClose(*model.RequestStatus) error
	Recv() (*model.DropPartitionRequest, error)
	grpc.ServerStream
}

type metastoreDropPartitionsServer struct {
	grpc.ServerStream
}

func (x *metastoreDropPartitionsServer) SendAndClose(m *model.RequestStatus) error {
	return x.ServerStream.SendMsg(m)
}

func (x *metastoreDropPartitionsServer) Recv() (*model.DropPartitionRequest, error) {
	m := new(model.DropPartitionRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Metastore_ServiceDesc 是 Metastore 服务的 grpc.ServiceDesc。Streams 的顺序被客户端存根按下标引用。
var Metastore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MetastoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateDatabase", Handler: _Metastore_CreateDatabase_Handler},
		{MethodName: "GetDatabase", Handler: _Metastore_GetDatabase_Handler},
		{MethodName: "AlterDatabase", Handler: _Metastore_AlterDatabase_Handler},
		{MethodName: "DropDatabase", Handler: _Metastore_DropDatabase_Handler},
		{MethodName: "CreateTable", Handler: _Metastore_CreateTable_Handler},
		{MethodName: "GetTable", Handler: _Metastore_GetTable_Handler},
		{MethodName: "DropTable", Handler: _Metastore_DropTable_Handler},
		{MethodName: "AddPartition", Handler: _Metastore_AddPartition_Handler},
		{MethodName: "GetPartition", Handler: _Metastore_GetPartition_Handler},
		{MethodName: "DropPartition", Handler: _Metastore_DropPartition_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "ListDatabases", Handler: _Metastore_ListDatabases_Handler, ServerStreams: true},
		{StreamName: "ListTables", Handler: _Metastore_ListTables_Handler, ServerStreams: true},
		{StreamName: "AddManyPartitions", Handler: _Metastore_AddManyPartitions_Handler, ServerStreams: true, ClientStreams: true},
		{StreamName: "ListPartitions", Handler: _Metastore_ListPartitions_Handler, ServerStreams: true},
		{StreamName: "DropPartitions", Handler: _Metastore_DropPartitions_Handler, ClientStreams: true},
	},
}
