// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"

	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// Answer 依次尝试玩家1和玩家2的位置, 返回记录的出拳, 都不适用时返回 "0"
func (a *Action) Answer(ans *rpstypes.Answer) (*types.Receipt, error) {
	id, err := parseGameID(ans.GameID)
	if err != nil {
		return nil, err
	}
	if err := checkPlayer(ans.Player); err != nil {
		return nil, err
	}
	if !a.witness(ans.Player) {
		return a.unauthorized(ans.Player), nil
	}
	move := rpstypes.MoveNone
	for slot := 1; slot <= 2 && move == rpstypes.MoveNone; slot++ {
		move, err = a.putAnswer(id, ans, slot)
		if err != nil {
			return nil, err
		}
	}
	if move == rpstypes.MoveNone {
		a.message(rpstypes.MsgAnswerNotApplied)
	}
	a.receipt.Ret = move.Code()
	return a.receipt, nil
}

// putAnswer 调用者不是该位置的玩家, 或者该位置还没有承诺时返回 MoveNone
func (a *Action) putAnswer(id int64, ans *rpstypes.Answer, slot int) (rpstypes.Move, error) {
	player, ok, err := a.db.getPlayer(id, slot)
	if err != nil {
		return rpstypes.MoveNone, err
	}
	if !ok || player != ans.Player {
		return rpstypes.MoveNone, nil
	}
	move, ok, err := a.db.getAnswer(id, slot)
	if err != nil || ok {
		return move, err
	}
	hash, ok, err := a.db.getAnswerHash(id, slot)
	if err != nil || !ok {
		return rpstypes.MoveNone, err
	}

	move = rpstypes.MoveInvalid
	if bytes.Equal(a.committer.Commit(ans.Value, ans.Salt), hash) {
		move = rpstypes.ParseMove(ans.Value)
	} else {
		rlog.Info("putAnswer commitment mismatch", "id", id, "slot", slot)
	}
	if err := a.db.setAnswer(id, slot, move); err != nil {
		return rpstypes.MoveNone, err
	}
	answerCounter.Inc(1)
	if move == rpstypes.MoveInvalid {
		invalidAnswerCounter.Inc(1)
	}
	a.addLog(rpstypes.TyLogAnswer, &rpstypes.ReceiptAnswer{
		GameID: formatGameID(id),
		Player: player,
		Slot:   slot,
		Move:   move,
	})
	if _, _, err := a.checkWinner(id); err != nil {
		return rpstypes.MoveNone, err
	}
	return move, nil
}
