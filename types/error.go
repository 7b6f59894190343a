// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// 通用错误定义
var (
	ErrNotFound                = errors.New("ErrNotFound")
	ErrInvalidParam            = errors.New("ErrInvalidParam")
	ErrInvalidAddress          = errors.New("ErrInvalidAddress")
	ErrActionNotSupport        = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport         = errors.New("ErrQueryNotSupport")
	ErrUnRegistedDriver        = errors.New("ErrUnRegistedDriver")
	ErrExecNameNotAllow        = errors.New("ErrExecNameNotAllow")
	ErrToAddrNotSameToExecAddr = errors.New("ErrToAddrNotSameToExecAddr")
	ErrSign                    = errors.New("ErrSign")
	ErrNoSignature             = errors.New("ErrNoSignature")
	ErrDecode                  = errors.New("ErrDecode")
	ErrEmpty                   = errors.New("ErrEmpty")
	ErrUnauthorized            = errors.New("ErrUnauthorized")
)

// 执行器相关错误
var (
	ErrExecPanic        = errors.New("ErrExecPanic")
	ErrMethodReturnType = errors.New("ErrMethodReturnType")
	ErrTxSize           = errors.New("ErrTxSize")
)

// ErrNotAllowMemSetKey 只读的状态视图不允许写入
var ErrNotAllowMemSetKey = errors.New("ErrNotAllowMemSetKey")
