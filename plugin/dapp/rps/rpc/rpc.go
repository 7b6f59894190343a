// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/google/uuid"

	"github.com/33cn/rps/plugin/dapp/rps/executor"
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
)

func (c *channelClient) getGame(in *rpstypes.QueryGameInfo) (*rpstypes.ReplyGame, error) {
	reply, err := c.Query(rpstypes.RpsX, rpstypes.FuncNameGetGame, types.Encode(in))
	if err != nil {
		return nil, err
	}
	game, ok := reply.(*rpstypes.ReplyGame)
	if !ok {
		return nil, types.ErrDecode
	}
	return game, nil
}

// CreateRawStartPlayTx 构造未签名的 StartPlay 交易
func (c *Jrpc) CreateRawStartPlayTx(in *rpstypes.StartPlay, result *interface{}) error {
	if in == nil || in.Player1 == "" || in.Player2 == "" || in.AnswerHash == "" {
		return types.ErrInvalidParam
	}
	tx, err := rpstypes.CreateStartPlayTx(in)
	if err != nil {
		return err
	}
	*result = tx
	return nil
}

// CreateRawAnswerTx 构造未签名的 Answer 交易
func (c *Jrpc) CreateRawAnswerTx(in *rpstypes.Answer, result *interface{}) error {
	if in == nil || in.Player == "" || in.GameID == "" {
		return types.ErrInvalidParam
	}
	tx, err := rpstypes.CreateAnswerTx(in)
	if err != nil {
		return err
	}
	*result = tx
	return nil
}

// CommitHash 计算承诺摘要, 未提供盐值时生成随机盐值. 盐值需要自己保存, 揭示时使用
func (c *Jrpc) CommitHash(in *rpstypes.ReqCommitHash, result *interface{}) error {
	if in == nil || in.Value == "" {
		return types.ErrInvalidParam
	}
	salt := in.Salt
	if salt == "" {
		salt = uuid.New().String()
	}
	hashType := in.HashType
	if hashType == "" {
		hashType = executor.GetHashType()
	}
	hash, err := rpstypes.CommitHash(hashType, in.Value, salt)
	if err != nil {
		return err
	}
	*result = &rpstypes.ReplyCommitHash{Hash: hash, Salt: salt}
	return nil
}

// GetGame 查询游戏记录
func (c *Jrpc) GetGame(in *rpstypes.QueryGameInfo, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	game, err := c.cli.getGame(in)
	if err != nil {
		return err
	}
	*result = game
	return nil
}
