// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	"github.com/33cn/rps/common"
	dbm "github.com/33cn/rps/common/db"
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
)

// gameDB 状态数据库上的游戏记录, 所有读取都区分"不存在"和"值为零"
type gameDB struct {
	kv dbm.KV
}

func newGameDB(kv dbm.KV) *gameDB {
	return &gameDB{kv: kv}
}

func (g *gameDB) get(key []byte) ([]byte, bool, error) {
	v, err := g.kv.Get(key)
	if err == types.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (g *gameDB) getField(id int64, field string) ([]byte, bool, error) {
	return g.get(calcGameKey(id, field))
}

func (g *gameDB) setField(id int64, field string, value []byte) error {
	return g.kv.Set(calcGameKey(id, field), value)
}

func (g *gameDB) getPlayer(id int64, slot int) (string, bool, error) {
	v, ok, err := g.getField(id, playerField(slot))
	return string(v), ok, err
}

func (g *gameDB) getAnswerHash(id int64, slot int) ([]byte, bool, error) {
	return g.getField(id, answerHashField(slot))
}

func (g *gameDB) getAnswer(id int64, slot int) (rpstypes.Move, bool, error) {
	v, ok, err := g.getField(id, answerField(slot))
	if err != nil || !ok {
		return rpstypes.MoveNone, false, err
	}
	n, err := strconv.ParseInt(string(v), 10, 32)
	m := rpstypes.Move(n)
	if err != nil || (m != rpstypes.MoveInvalid && !m.Valid()) {
		rlog.Error("getAnswer", "id", id, "slot", slot, "value", string(v))
		return rpstypes.MoveNone, false, rpstypes.ErrStoredValue
	}
	return m, true, nil
}

func (g *gameDB) setAnswer(id int64, slot int, m rpstypes.Move) error {
	return g.setField(id, answerField(slot), []byte(m.Code()))
}

func (g *gameDB) getWinner(id int64) (string, bool, error) {
	v, ok, err := g.getField(id, fieldWinner)
	return string(v), ok, err
}

// getGame 读取整条记录, player1 不存在时游戏不存在
func (g *gameDB) getGame(id int64) (*rpstypes.ReplyGame, error) {
	player1, ok, err := g.getPlayer(id, 1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rpstypes.ErrGameNotFound
	}
	reply := &rpstypes.ReplyGame{GameID: formatGameID(id), Player1: player1}
	if reply.Player2, _, err = g.getPlayer(id, 2); err != nil {
		return nil, err
	}
	hashes := []*string{&reply.AnswerHash1, &reply.AnswerHash2}
	answers := []**rpstypes.Move{&reply.Answer1, &reply.Answer2}
	for slot := 1; slot <= 2; slot++ {
		hash, ok, err := g.getAnswerHash(id, slot)
		if err != nil {
			return nil, err
		}
		if ok {
			*hashes[slot-1] = common.ToHex(hash)
		}
		m, ok, err := g.getAnswer(id, slot)
		if err != nil {
			return nil, err
		}
		if ok {
			*answers[slot-1] = &m
		}
	}
	winner, ok, err := g.getWinner(id)
	if err != nil {
		return nil, err
	}
	if ok {
		reply.Winner = winner
		reply.Resolved = true
		reply.Draw = winner == rpstypes.DrawMarker
	}
	return reply, nil
}
