// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "strconv"

// Move 出拳编码
type Move int32

// 出拳编码. MoveNone 只用于返回值, 表示没有揭示或调用不适用, 不会写入数据库
const (
	MoveInvalid  Move = -1
	MoveNone     Move = 0
	MoveRock     Move = 1
	MoveScissors Move = 2
	MovePaper    Move = 3
)

// ParseMove 揭示的字符串转为编码, 未知的字符串为 MoveInvalid
func ParseMove(value string) Move {
	switch value {
	case "rock":
		return MoveRock
	case "scissors":
		return MoveScissors
	case "paper":
		return MovePaper
	}
	return MoveInvalid
}

// Valid 是否是有效的出拳
func (m Move) Valid() bool {
	return m >= MoveRock && m <= MovePaper
}

func (m Move) String() string {
	switch m {
	case MoveRock:
		return "rock"
	case MoveScissors:
		return "scissors"
	case MovePaper:
		return "paper"
	case MoveInvalid:
		return "invalid"
	}
	return "none"
}

// Code 十进制编码, 用于存储和返回值
func (m Move) Code() string {
	return strconv.FormatInt(int64(m), 10)
}

// Outcome 结果
type Outcome int

// 结果
const (
	OutcomeDraw    Outcome = 0
	OutcomePlayer1 Outcome = 1
	OutcomePlayer2 Outcome = 2
)

// Resolve 由双方的出拳计算结果.
// 一方无效则另一方获胜, 双方无效为平局,
// 否则 delta = (3 + m2 - m1) % 3: 0 平局, 1 玩家1胜, 2 玩家2胜
func Resolve(m1, m2 Move) Outcome {
	v1, v2 := m1.Valid(), m2.Valid()
	switch {
	case !v1 && !v2:
		return OutcomeDraw
	case !v1:
		return OutcomePlayer2
	case !v2:
		return OutcomePlayer1
	}
	return Outcome((3 + m2 - m1) % 3)
}
