// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/rps/common"
	"github.com/33cn/rps/common/version"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
)

// Node jsonrpc 服务, 方法名为 Node.<Method>
type Node struct {
	cli rpctypes.ChannelClient
}

// SendTransaction 执行交易, 返回交易哈希与回执
func (n *Node) SendTransaction(in *types.Transaction, result *interface{}) error {
	reply, err := sendTx(n.cli.API, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// Query 只读查询
func (n *Node) Query(in *types.Query, result *interface{}) error {
	reply, err := query(n.cli.API, in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetVersion 获取版本信息
func (n *Node) GetVersion(in *types.ReqNil, result *interface{}) error {
	*result = &types.VersionInfo{
		Title: rpcTitle,
		App:   version.GetVersion(),
	}
	return nil
}

// rpcTitle 由 SetTitle 设置, 默认为空
var rpcTitle string

// SetTitle 设置节点名称, 用于 GetVersion
func SetTitle(t string) {
	rpcTitle = t
}

func sendTx(api rpctypes.API, tx *types.Transaction) (*types.ReplyTxResult, error) {
	if tx == nil {
		return nil, types.ErrInvalidParam
	}
	receipt, err := api.Exec(tx)
	if err != nil {
		log.Debug("SendTransaction", "execer", tx.Execer, "err", err)
		return nil, err
	}
	return &types.ReplyTxResult{
		Hash:    common.ToHex(tx.Hash()),
		Receipt: receipt.Data(),
	}, nil
}

func query(api rpctypes.API, in *types.Query) (interface{}, error) {
	if in == nil || in.Execer == "" || in.FuncName == "" {
		return nil, types.ErrInvalidParam
	}
	return api.Query(in.Execer, in.FuncName, in.Payload)
}
