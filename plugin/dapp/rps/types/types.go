// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"time"

	log "github.com/inconshreveable/log15"

	"github.com/33cn/rps/common/address"
	"github.com/33cn/rps/types"
)

var tlog = log.New("module", RpsX)

// RpsAction 交易 payload, Operation 决定调用的 Exec_<Operation>
type RpsAction struct {
	Operation string     `json:"operation"`
	StartPlay *StartPlay `json:"startPlay,omitempty"`
	Answer    *Answer    `json:"answer,omitempty"`
}

// StartPlay 提交承诺, AnswerHash 为 hex 格式的 H(value||salt)
type StartPlay struct {
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
	AnswerHash string `json:"answerHash"`
}

// Answer 揭示
type Answer struct {
	Player string `json:"player"`
	GameID string `json:"gameId"`
	Value  string `json:"value"`
	Salt   string `json:"salt"`
}

// ReceiptStartPlay 新建游戏的日志
type ReceiptStartPlay struct {
	GameID  string `json:"gameId"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// ReceiptCommit 第二个玩家提交承诺的日志
type ReceiptCommit struct {
	GameID string `json:"gameId"`
	Player string `json:"player"`
}

// ReceiptAnswer 揭示的日志
type ReceiptAnswer struct {
	GameID string `json:"gameId"`
	Player string `json:"player"`
	Slot   int    `json:"slot"`
	Move   Move   `json:"move"`
}

// ReceiptWinner 结算的日志
type ReceiptWinner struct {
	GameID string `json:"gameId"`
	Winner string `json:"winner"`
}

// ReceiptMessage 可读的信息
type ReceiptMessage struct {
	Msg string `json:"msg"`
}

// QueryGameInfo 按 id 查询
type QueryGameInfo struct {
	GameID string `json:"gameId"`
}

// QueryFindGame 查询两个玩家之间的活跃游戏
type QueryFindGame struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// ReplyGame 游戏记录, 未设置的字段为空
type ReplyGame struct {
	GameID      string `json:"gameId"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	AnswerHash1 string `json:"answerHash1,omitempty"`
	AnswerHash2 string `json:"answerHash2,omitempty"`
	Answer1     *Move  `json:"answer1,omitempty"`
	Answer2     *Move  `json:"answer2,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Draw        bool   `json:"draw"`
	Resolved    bool   `json:"resolved"`
}

// ReplyFindGame FindGame 的返回
type ReplyFindGame struct {
	Found  bool   `json:"found"`
	GameID string `json:"gameId,omitempty"`
}

// ReplyGameCount 已分配的游戏数量
type ReplyGameCount struct {
	Count int64 `json:"count"`
}

// ReplyCommitHash CommitHash 的返回
type ReplyCommitHash struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// ReqCommitHash CommitHash 的请求, Salt 为空时由服务端生成
type ReqCommitHash struct {
	HashType string `json:"hashType,omitempty"`
	Value    string `json:"value"`
	Salt     string `json:"salt,omitempty"`
}

// CreateStartPlayTx 构造未签名的 StartPlay 交易
func CreateStartPlayTx(parm *StartPlay) (*types.Transaction, error) {
	if parm == nil {
		tlog.Error("CreateStartPlayTx", "parm", parm)
		return nil, types.ErrInvalidParam
	}
	action := &RpsAction{
		Operation: ActionStartPlay,
		StartPlay: parm,
	}
	return newTx(action), nil
}

// CreateAnswerTx 构造未签名的 Answer 交易
func CreateAnswerTx(parm *Answer) (*types.Transaction, error) {
	if parm == nil {
		tlog.Error("CreateAnswerTx", "parm", parm)
		return nil, types.ErrInvalidParam
	}
	action := &RpsAction{
		Operation: ActionAnswer,
		Answer:    parm,
	}
	return newTx(action), nil
}

func newTx(action *RpsAction) *types.Transaction {
	return &types.Transaction{
		Execer:  RpsX,
		Payload: types.Encode(action),
		To:      address.ExecAddress(RpsX),
		Nonce:   time.Now().UnixNano(),
	}
}
