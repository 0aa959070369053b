// Package hmsclient 封装 metastore gRPC 客户端：建立连接、展开响应里的状态、
// 把服务端流收集成切片，并对只读调用做有限重试。
package hmsclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"hmsv2/pkg/metastore"
	"hmsv2/pkg/model"
)

type Client struct {
	rpc  metastore.MetastoreClient
	conn *grpc.ClientConn

	maxRetries int
	retryDelay time.Duration
}

// Dial 连接 addr（host:port）。grpc.NewClient 不会立即建连，第一次调用时才连接。
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := grpc.NewClient(addr, append(metastore.DialOptions(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("连接 metastore %s 失败：%w", addr, err)
	}
	c := New(metastore.NewMetastoreClient(conn))
	c.conn = conn
	return c, nil
}

func New(rpc metastore.MetastoreClient) *Client {
	return &Client{rpc: rpc, maxRetries: DefaultMaxRetries, retryDelay: DefaultRetryDelay}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// StatusError 表示服务端在响应体里返回了 STATUS_ERROR。
type StatusError struct {
	Message string
}

func (e *StatusError) Error() string {
	return "服务端返回错误：" + e.Message
}

func checkStatus(st *model.RequestStatus) error {
	if st == nil || st.Status == model.StatusOK {
		return nil
	}
	return &StatusError{Message: st.Error}
}

func collect[T any](recv func() (*T, error)) ([]*T, error) {
	var out []*T
	for {
		item, err := recv()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}

func (c *Client) CreateDatabase(ctx context.Context, req *model.CreateDatabaseRequest) (*model.Database, error) {
	resp, err := c.rpc.CreateDatabase(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Database, checkStatus(resp.Status)
}

func (c *Client) GetDatabase(ctx context.Context, req *model.GetDatabaseRequest) (*model.Database, error) {
	return retry(ctx, c.maxRetries, c.retryDelay, func() (*model.Database, error) {
		resp, err := c.rpc.GetDatabase(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Database, checkStatus(resp.Status)
	})
}

func (c *Client) ListDatabases(ctx context.Context, req *model.ListDatabasesRequest) ([]*model.Database, error) {
	return retry(ctx, c.maxRetries, c.retryDelay, func() ([]*model.Database, error) {
		stream, err := c.rpc.ListDatabases(ctx, req)
		if err != nil {
			return nil, err
		}
		return collect(stream.Recv)
	})
}

func (c *Client) AlterDatabase(ctx context.Context, req *model.AlterDatabaseRequest) (*model.Database, error) {
	resp, err := c.rpc.AlterDatabase(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Database, checkStatus(resp.Status)
}

func (c *Client) DropDatabase(ctx context.Context, req *model.DropDatabaseRequest) error {
	st, err := c.rpc.DropDatabase(ctx, req)
	if err != nil {
		return err
	}
	return checkStatus(st)
}

func (c *Client) CreateTable(ctx context.Context, req *model.CreateTableRequest) (*model.Table, error) {
	resp, err := c.rpc.CreateTable(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Table, checkStatus(resp.Status)
}

func (c *Client) GetTable(ctx context.Context, req *model.GetTableRequest) (*model.Table, error) {
	return retry(ctx, c.maxRetries, c.retryDelay, func() (*model.Table, error) {
		resp, err := c.rpc.GetTable(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Table, checkStatus(resp.Status)
	})
}

func (c *Client) ListTables(ctx context.Context, req *model.ListTablesRequest) ([]*model.Table, error) {
	return retry(ctx, c.maxRetries, c.retryDelay, func() ([]*model.Table, error) {
		stream, err := c.rpc.ListTables(ctx, req)
		if err != nil {
			return nil, err
		}
		return collect(stream.Recv)
	})
}

func (c *Client) DropTable(ctx context.Context, req *model.DropTableRequest) error {
	st, err := c.rpc.DropTable(ctx, req)
	if err != nil {
		return err
	}
	return checkStatus(st)
}

func (c *Client) AddPartition(ctx context.Context, req *model.AddPartitionRequest) error {
	resp, err := c.rpc.AddPartition(ctx, req)
	if err != nil {
		return err
	}
	return checkStatus(resp.Status)
}

// AddPartitions 通过双向流批量添加分区。请求按顺序编号（从 1 开始），
// 返回的结果与 reqs 一一对应；单个分区失败体现在对应结果的 Status 里。
func (c *Client) AddPartitions(ctx context.Context, reqs []*model.AddPartitionRequest) ([]*model.AddPartitionResponse, error) {
	stream, err := c.rpc.AddManyPartitions(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*model.AddPartitionResponse, len(reqs))
	g := new(errgroup.Group)
	g.Go(func() error {
		for i, req := range reqs {
			req.Sequence = uint64(i + 1)
			if err := stream.Send(req); err != nil {
				if errors.Is(err, io.EOF) {
					// 服务端已经结束流，真正的错误由 Recv 返回。
					return nil
				}
				return err
			}
		}
		return stream.CloseSend()
	})
	g.Go(func() error {
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if resp.Sequence == 0 || resp.Sequence > uint64(len(results)) {
				return fmt.Errorf("响应序号 %d 超出范围", resp.Sequence)
			}
			results[resp.Sequence-1] = resp
		}
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) GetPartition(ctx context.Context, req *model.GetPartitionRequest) (*model.Partition, error) {
	return retry(ctx, c.maxRetries, c.retryDelay, func() (*model.Partition, error) {
		resp, err := c.rpc.GetPartition(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Partition, checkStatus(resp.Status)
	})
}

func (c *Client) ListPartitions(ctx context.Context, req *model.ListPartitionsRequest) ([]*model.Partition, error) {
	return retry(ctx, c.maxRetries, c.retryDelay, func() ([]*model.Partition, error) {
		stream, err := c.rpc.ListPartitions(ctx, req)
		if err != nil {
			return nil, err
		}
		return collect(stream.Recv)
	})
}

func (c *Client) DropPartition(ctx context.Context, req *model.DropPartitionRequest) error {
	st, err := c.rpc.DropPartition(ctx, req)
	if err != nil {
		return err
	}
	return checkStatus(st)
}

// DropPartitions 通过客户端流批量删除；服务端以第一个请求的 namespace/db/table 为准。
func (c *Client) DropPartitions(ctx context.Context, reqs []*model.DropPartitionRequest) error {
	stream, err := c.rpc.DropPartitions(ctx)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		if err := stream.Send(req); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}
	st, err := stream.CloseAndRecv()
	if err != nil {
		return err
	}
	return checkStatus(st)
}
