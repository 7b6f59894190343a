// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"context"

	"google.golang.org/protobuf/types/known/wrapperspb"

	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
)

// Grpc grpc 服务, 请求和返回都是 json 文档
type Grpc struct {
	api rpctypes.API
}

// SendTransaction in 为 json 格式的交易, 返回 json 格式的 ReplyTxResult
func (g *Grpc) SendTransaction(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	var tx types.Transaction
	if err := types.Decode(in.GetValue(), &tx); err != nil {
		return nil, err
	}
	reply, err := sendTx(g.api, &tx)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(types.Encode(reply)), nil
}

// Query in 为 json 格式的 types.Query
func (g *Grpc) Query(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	var req types.Query
	if err := types.Decode(in.GetValue(), &req); err != nil {
		return nil, err
	}
	reply, err := query(g.api, &req)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(types.Encode(reply)), nil
}
