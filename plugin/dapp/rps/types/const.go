// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 执行器名称
const (
	PackageName = "rps"
	RpsX        = "rps"
)

// rps action, 与执行器中 Exec_<action> 对应
const (
	ActionStartPlay = "StartPlay"
	ActionAnswer    = "Answer"
)

// log ty
const (
	TyLogStartPlay = 741
	TyLogCommit    = 742
	TyLogAnswer    = 743
	TyLogWinner    = 744
	TyLogMessage   = 745
)

// query func name, 与执行器中 Query_<func> 对应
const (
	FuncNameGetGame      = "GetGame"
	FuncNameFindGame     = "FindGame"
	FuncNameGetGameCount = "GetGameCount"
)

// CommitmentSize 承诺摘要的固定长度, 更长的摘要截断到该长度
const CommitmentSize = 32

// DrawMarker 平局时 winner 字段的值, 不是合法地址, 不会与玩家冲突
const DrawMarker = "draw"

// 对外的日志信息
const (
	MsgStartPlayOk      = "Successful start play invoke. Game id = "
	MsgStartPlayFail    = "Start play failed."
	MsgNotAuthorized    = "Not authorized"
	MsgNotImplemented   = "Method not implemented"
	MsgAnswerNotApplied = "Answer not applied"
)
