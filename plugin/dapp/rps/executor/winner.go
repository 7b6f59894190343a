// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
)

// checkWinner 已有结果时直接返回, 双方都揭示后计算结果并删除配对索引.
// 返回的 bool 表示是否已经有结果
func (a *Action) checkWinner(id int64) (string, bool, error) {
	winner, ok, err := a.db.getWinner(id)
	if err != nil || ok {
		return winner, ok, err
	}
	m1, ok1, err := a.db.getAnswer(id, 1)
	if err != nil {
		return "", false, err
	}
	m2, ok2, err := a.db.getAnswer(id, 2)
	if err != nil {
		return "", false, err
	}
	if !ok1 || !ok2 {
		return "", false, nil
	}
	player1, _, err := a.db.getPlayer(id, 1)
	if err != nil {
		return "", false, err
	}
	player2, _, err := a.db.getPlayer(id, 2)
	if err != nil {
		return "", false, err
	}

	switch rpstypes.Resolve(m1, m2) {
	case rpstypes.OutcomePlayer1:
		winner = player1
	case rpstypes.OutcomePlayer2:
		winner = player2
	default:
		winner = rpstypes.DrawMarker
	}
	if err := a.db.setField(id, fieldWinner, []byte(winner)); err != nil {
		return "", false, err
	}
	if err := a.db.unlink(player1, player2); err != nil {
		return "", false, err
	}
	resolvedCounter.Inc(1)
	a.addLog(rpstypes.TyLogWinner, &rpstypes.ReceiptWinner{GameID: formatGameID(id), Winner: winner})
	rlog.Info("checkWinner", "id", id, "answer1", m1, "answer2", m2, "winner", winner)
	return winner, true, nil
}
