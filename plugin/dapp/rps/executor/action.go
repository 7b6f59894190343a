// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/rps/common"
	"github.com/33cn/rps/common/address"
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// Action 一次调用的上下文
type Action struct {
	db        *gameDB
	txhash    string
	fromaddr  string
	committer *rpstypes.Committer
	witness   func(addr string) bool
	receipt   *types.Receipt
}

// NewAction 由交易生成 Action
func NewAction(r *Rps, tx *types.Transaction) *Action {
	return &Action{
		db:        newGameDB(r.GetStateDB()),
		txhash:    common.ToHex(tx.Hash()),
		fromaddr:  tx.From(),
		committer: r.committer,
		witness: func(addr string) bool {
			return r.CheckWitness(tx, addr)
		},
		receipt: &types.Receipt{Ty: types.ExecOk},
	}
}

func (a *Action) addLog(ty int32, log interface{}) {
	a.receipt.AddLog(ty, log)
}

func (a *Action) message(msg string) {
	a.addLog(rpstypes.TyLogMessage, &rpstypes.ReceiptMessage{Msg: msg})
}

// unauthorized 调用者不是声明的玩家: 返回 "0", 没有写入
func (a *Action) unauthorized(player string, msgs ...string) *types.Receipt {
	unauthorizedCounter.Inc(1)
	rlog.Error("unauthorized", "player", player, "from", a.fromaddr, "txhash", a.txhash)
	a.receipt = &types.Receipt{Ty: types.ExecPack, Ret: "0"}
	a.message(rpstypes.MsgNotAuthorized)
	for _, msg := range msgs {
		a.message(msg)
	}
	return a.receipt
}

func checkPlayer(addr string) error {
	if err := address.CheckAddress(addr); err != nil {
		rlog.Debug("checkPlayer", "addr", addr, "err", err)
		return rpstypes.ErrInvalidPlayer
	}
	return nil
}
