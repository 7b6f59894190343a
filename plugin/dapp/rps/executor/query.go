// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// Query_GetGame 按 id 查询游戏记录
func (r *Rps) Query_GetGame(in *rpstypes.QueryGameInfo) (interface{}, error) {
	id, err := parseGameID(in.GameID)
	if err != nil {
		return nil, err
	}
	return newGameDB(r.GetStateDB()).getGame(id)
}

// Query_FindGame 查询两个玩家之间未结算的游戏
func (r *Rps) Query_FindGame(in *rpstypes.QueryFindGame) (interface{}, error) {
	if in.Player1 == "" || in.Player2 == "" {
		return nil, types.ErrInvalidParam
	}
	id, ok, err := newGameDB(r.GetStateDB()).findGame(in.Player1, in.Player2)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &rpstypes.ReplyFindGame{}, nil
	}
	return &rpstypes.ReplyFindGame{Found: true, GameID: formatGameID(id)}, nil
}

// Query_GetGameCount 已分配的游戏数量
func (r *Rps) Query_GetGameCount(in *types.ReqNil) (interface{}, error) {
	n, err := newGameDB(r.GetStateDB()).gameCount()
	if err != nil {
		return nil, err
	}
	return &rpstypes.ReplyGameCount{Count: n}, nil
}
