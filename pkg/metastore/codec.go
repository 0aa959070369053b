// Package metastore 定义 Metastore gRPC 服务的契约：服务描述、客户端存根与服务端接口。
// 消息体使用 msgpack 编码，通过 gRPC content-subtype "msgpack" 协商。
package metastore

import (
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
)

const CodecName = "msgpack"

type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}

// DialOptions 返回连接 Metastore 所需的最小拨号参数：不加密通道 + msgpack 编码。
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
}
