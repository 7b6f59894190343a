// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	// ErrInvalidCommitment 承诺摘要不是合法hex或长度不足
	ErrInvalidCommitment = errors.New("ErrInvalidCommitment")
	// ErrInvalidPlayer 玩家地址不合法
	ErrInvalidPlayer = errors.New("ErrInvalidPlayer")
	// ErrSelfPlay 不能和自己玩
	ErrSelfPlay = errors.New("ErrSelfPlay")
	// ErrInvalidGameID 游戏id不是规范的正整数
	ErrInvalidGameID = errors.New("ErrInvalidGameID")
	// ErrGameNotFound 游戏不存在
	ErrGameNotFound = errors.New("ErrGameNotFound")
	// ErrHashType 不支持的摘要算法
	ErrHashType = errors.New("ErrHashType")
	// ErrStoredValue 状态数据库中的值无法解析
	ErrStoredValue = errors.New("ErrStoredValue")
)
