package model

import "strings"

// Id 标识 database / table。Name 与 Id 至少有一个非空；Id 由服务端生成。
type Id struct {
	Name      string `msgpack:"name,omitempty" json:"name,omitempty"`
	Namespace string `msgpack:"namespace,omitempty" json:"namespace,omitempty"`
	Id        string `msgpack:"id,omitempty" json:"id,omitempty"`
}

func (i *Id) GetName() string {
	if i == nil {
		return ""
	}
	return i.Name
}

func (i *Id) GetId() string {
	if i == nil {
		return ""
	}
	return i.Id
}

// Empty 表示既没有名字也没有 Id。
func (i *Id) Empty() bool {
	return i.GetName() == "" && i.GetId() == ""
}

type Database struct {
	Id               *Id               `msgpack:"id,omitempty" json:"id,omitempty"`
	SeqId            uint64            `msgpack:"seq_id,omitempty" json:"seq_id,omitempty"`
	Location         string            `msgpack:"location,omitempty" json:"location,omitempty"`
	Parameters       map[string]string `msgpack:"parameters,omitempty" json:"parameters,omitempty"`
	SystemParameters map[string]string `msgpack:"system_parameters,omitempty" json:"system_parameters,omitempty"`
}

type FieldSchema struct {
	Name    string `msgpack:"name" json:"name"`
	Type    string `msgpack:"type" json:"type"`
	Comment string `msgpack:"comment,omitempty" json:"comment,omitempty"`
}

type Table struct {
	Id            *Id               `msgpack:"id,omitempty" json:"id,omitempty"`
	DbId          *Id               `msgpack:"db_id,omitempty" json:"db_id,omitempty"`
	SeqId         uint64            `msgpack:"seq_id,omitempty" json:"seq_id,omitempty"`
	Location      string            `msgpack:"location,omitempty" json:"location,omitempty"`
	Columns       []FieldSchema     `msgpack:"columns,omitempty" json:"columns,omitempty"`
	PartitionKeys []FieldSchema     `msgpack:"partition_keys,omitempty" json:"partition_keys,omitempty"`
	Parameters    map[string]string `msgpack:"parameters,omitempty" json:"parameters,omitempty"`
}

type Partition struct {
	Values     []string          `msgpack:"values,omitempty" json:"values,omitempty"`
	SeqId      uint64            `msgpack:"seq_id,omitempty" json:"seq_id,omitempty"`
	Location   string            `msgpack:"location,omitempty" json:"location,omitempty"`
	Parameters map[string]string `msgpack:"parameters,omitempty" json:"parameters,omitempty"`
}

// PartitionName 把分区值拼成存储键，例如 ["2024", "01"] -> "2024/01"。
func PartitionName(values []string) string {
	return strings.Join(values, "/")
}

// ParsePartitionName 是 PartitionName 的逆操作；空串返回 nil。
func ParsePartitionName(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, "/")
}
