// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 执行结果类型
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// TyLogErr 执行出错时的日志类型
const TyLogErr = 1

// MaxTxSize 交易序列化后的最大字节数
const MaxTxSize = 100000

// MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100
