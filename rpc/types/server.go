// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types rpc 服务端与插件之间的公共接口
package types

import (
	"net/rpc"

	"github.com/33cn/rps/types"
	"google.golang.org/grpc"
)

// API 节点对 rpc 提供的能力, 由 executor 实现
type API interface {
	Exec(tx *types.Transaction) (*types.Receipt, error)
	Query(execer, funcName string, params []byte) (interface{}, error)
}

// RPCServer interface
type RPCServer interface {
	GetAPI() API
	GRPC() *grpc.Server
	JRPC() *rpc.Server
}

// ChannelClient 插件 rpc 的基类
type ChannelClient struct {
	API
	grpc interface{}
	jrpc interface{}
}

// Init 注册插件的 jrpc 服务
func (c *ChannelClient) Init(name string, s RPCServer, jrpc, grpc interface{}) {
	if c.API == nil {
		c.API = s.GetAPI()
	}
	if jrpc != nil {
		err := s.JRPC().RegisterName(name, jrpc)
		if err != nil {
			panic(err)
		}
	}
	c.grpc = grpc
	c.jrpc = jrpc
}
