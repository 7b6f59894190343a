// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// StartPlay 没有活跃游戏时新建游戏, 否则作为玩家2的承诺
func (a *Action) StartPlay(start *rpstypes.StartPlay) (*types.Receipt, error) {
	if err := checkPlayer(start.Player1); err != nil {
		return nil, err
	}
	if err := checkPlayer(start.Player2); err != nil {
		return nil, err
	}
	if start.Player1 == start.Player2 {
		return nil, rpstypes.ErrSelfPlay
	}
	commitment, err := rpstypes.ParseCommitment(start.AnswerHash)
	if err != nil {
		return nil, err
	}
	// 先检查身份再分配id, 未授权的调用不会推进计数器
	if !a.witness(start.Player1) {
		return a.unauthorized(start.Player1, rpstypes.MsgStartPlayFail), nil
	}

	id, ok, err := a.db.findGame(start.Player1, start.Player2)
	if err != nil {
		return nil, err
	}
	if ok {
		err = a.commitSecond(id, start.Player1, commitment)
	} else {
		id, err = a.newGame(start.Player1, start.Player2, commitment)
	}
	if err != nil {
		return nil, err
	}
	gameID := formatGameID(id)
	a.receipt.Ret = gameID
	a.message(rpstypes.MsgStartPlayOk + gameID)
	rlog.Debug("StartPlay", "gameID", gameID, "player", start.Player1)
	return a.receipt, nil
}

func (a *Action) newGame(player1, player2 string, commitment []byte) (int64, error) {
	id, err := a.db.newGameID()
	if err != nil {
		return 0, err
	}
	if err := a.db.setField(id, playerField(1), []byte(player1)); err != nil {
		return 0, err
	}
	if err := a.db.setField(id, playerField(2), []byte(player2)); err != nil {
		return 0, err
	}
	if err := a.db.setField(id, answerHashField(1), commitment); err != nil {
		return 0, err
	}
	if err := a.db.link(player1, player2, id); err != nil {
		return 0, err
	}
	gameCreatedCounter.Inc(1)
	a.addLog(rpstypes.TyLogStartPlay, &rpstypes.ReceiptStartPlay{
		GameID:  formatGameID(id),
		Player1: player1,
		Player2: player2,
	})
	return id, nil
}

// commitSecond 只有记录中的玩家2可以提交, 且只能提交一次, 其他情况不做任何修改
func (a *Action) commitSecond(id int64, caller string, commitment []byte) error {
	player2, ok, err := a.db.getPlayer(id, 2)
	if err != nil {
		return err
	}
	if !ok || player2 != caller {
		rlog.Debug("commitSecond not player2", "id", id, "caller", caller)
		return nil
	}
	_, ok, err = a.db.getAnswerHash(id, 2)
	if err != nil {
		return err
	}
	if ok {
		rlog.Debug("commitSecond already committed", "id", id, "caller", caller)
		return nil
	}
	if err := a.db.setField(id, answerHashField(2), commitment); err != nil {
		return err
	}
	commitCounter.Inc(1)
	a.addLog(rpstypes.TyLogCommit, &rpstypes.ReceiptCommit{GameID: formatGameID(id), Player: caller})
	return nil
}
