// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的公共部分, 各个 dapp 通过组合 DriverBase 实现 Driver
package dapp

import (
	"encoding/json"
	"reflect"

	dbm "github.com/33cn/rps/common/db"
	log "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/types"
)

var blog = log.New("module", "execs.base")

// Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	//执行器的名称
	GetName() string
	SetName(string)
	SetEnv(blocktime int64, signed bool)
	GetActionName(tx *types.Transaction) string
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	Query(funcName string, params []byte) (interface{}, error)
	GetFuncMap() map[string]reflect.Method
}

// DriverBase 执行器基类
type DriverBase struct {
	statedb    dbm.KV
	blocktime  int64
	signed     bool
	name       string
	child      Driver
	childValue reflect.Value
	funcmap    map[string]reflect.Method
}

// actionHeader 所有 dapp 的 payload 都带有 operation 字段
type actionHeader struct {
	Operation string `json:"operation"`
}

// SetChild 设置子类, 并缓存子类的 Exec_ 与 Query_ 方法
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
	d.funcmap = ListMethod(e)
}

// GetFuncMap 子类方法表
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	return d.funcmap
}

// SetEnv 设置执行环境, signed 表示交易签名已经通过校验
func (d *DriverBase) SetEnv(blocktime int64, signed bool) {
	d.blocktime = blocktime
	d.signed = signed
}

// GetBlockTime 执行时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

// CheckWitness 调用者是否为 addr 本人: 交易签名有效并且签名者地址等于 addr
func (d *DriverBase) CheckWitness(tx *types.Transaction, addr string) bool {
	if !d.signed || addr == "" {
		return false
	}
	return tx.From() == addr
}

// GetActionName 从 payload 中取出 operation
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	var header actionHeader
	if err := json.Unmarshal(tx.Payload, &header); err != nil {
		return "unknown"
	}
	return header.Operation
}

// Exec 根据 operation 调用子类的 Exec_<operation>, 找不到时返回 ErrActionNotSupport
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			blog.Error("call exec error", "tx.exec", tx.Execer, "info", r)
			err = types.ErrExecPanic
			receipt = nil
		}
	}()
	var header actionHeader
	if err := types.Decode(tx.Payload, &header); err != nil {
		return nil, err
	}
	funcname := ExecPrefix + header.Operation
	method, ok := d.funcmap[funcname]
	if !ok || header.Operation == "" {
		return nil, types.ErrActionNotSupport
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !isOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	if r := valueret[0].Interface(); r != nil {
		if receipt, ok = r.(*types.Receipt); !ok {
			return nil, types.ErrMethodReturnType
		}
	}
	return receipt, callError(valueret[1])
}

// Query 根据函数名调用子类的 Query_<funcName>, 参数为json
func (d *DriverBase) Query(funcname string, params []byte) (msg interface{}, err error) {
	funcname = QueryPrefix + funcname
	method, ok := d.funcmap[funcname]
	if !ok {
		blog.Error(funcname+" funcname not find", "func", funcname)
		return nil, types.ErrQueryNotSupport
	}
	ty := method.Type
	if ty.NumIn() != 2 {
		blog.Error(funcname+" err num in param", "num", ty.NumIn())
		return nil, types.ErrQueryNotSupport
	}
	paramin := ty.In(1)
	if paramin.Kind() != reflect.Ptr {
		blog.Error(funcname + "  param is not pointer")
		return nil, types.ErrQueryNotSupport
	}
	p := reflect.New(paramin.Elem())
	if len(params) > 0 {
		if err := types.Decode(params, p.Interface()); err != nil {
			return nil, err
		}
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, p})
	if !isOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	if err := callError(valueret[1]); err != nil {
		return nil, err
	}
	return valueret[0].Interface(), nil
}

// CheckTx 默认情况下，tx.To 地址指向合约地址
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if ExecAddress(tx.Execer) != tx.To {
		return types.ErrToAddrNotSameToExecAddr
	}
	return nil
}

// SetStateDB set db state
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
}

// GetStateDB set state db
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// GetName 获取名称
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

// SetName 设置名称
func (d *DriverBase) SetName(name string) {
	d.name = name
}
