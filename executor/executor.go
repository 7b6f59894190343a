// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 执行外部调用: 一次只执行一个调用, 调用内的写入全部成功或全部不生效
package executor

import (
	"sync"
	"time"

	dbm "github.com/33cn/rps/common/db"
	log "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/pluginmgr"
	drivers "github.com/33cn/rps/system/dapp"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
)

var elog = log.New("module", "execs")

var (
	execTxCounter   = metrics.GetOrRegisterCounter("execs/tx", nil)
	execErrCounter  = metrics.GetOrRegisterCounter("execs/err", nil)
	execTimer       = metrics.GetOrRegisterTimer("execs/time", nil)
	queryCounter    = metrics.GetOrRegisterCounter("execs/query", nil)
	commitErrCouter = metrics.GetOrRegisterCounter("execs/commit/err", nil)
)

// Executor 执行器
type Executor struct {
	mu  sync.Mutex
	db  dbm.DB
	cfg *types.Exec
	// 用于测试时固定时间
	now func() time.Time
}

// New new executor, 初始化所有插件的执行器
func New(cfg *types.Exec, sub map[string][]byte, db dbm.DB) *Executor {
	if cfg == nil {
		cfg = &types.Exec{}
	}
	pluginmgr.InitExec(sub)
	return &Executor{db: db, cfg: cfg, now: time.Now}
}

// Exec 执行一个调用. 返回错误时没有任何写入生效
func (exec *Executor) Exec(tx *types.Transaction) (*types.Receipt, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	defer execTimer.UpdateSince(time.Now())
	execTxCounter.Inc(1)

	receipt, err := exec.execTx(tx)
	if err != nil {
		execErrCounter.Inc(1)
		elog.Error("exec tx", "execer", tx.Execer, "err", err)
		return nil, err
	}
	return receipt, nil
}

func (exec *Executor) execTx(tx *types.Transaction) (*types.Receipt, error) {
	if tx.Size() > types.MaxTxSize {
		return nil, types.ErrTxSize
	}
	driver, err := drivers.LoadDriver(tx.Execer)
	if err != nil {
		return nil, err
	}
	if err := driver.CheckTx(tx, 0); err != nil {
		return nil, err
	}
	signed := tx.CheckSign()
	if !signed && !exec.cfg.AllowUnsigned {
		if tx.Signature == nil {
			return nil, types.ErrNoSignature
		}
		return nil, types.ErrSign
	}

	statedb := NewStateDB(exec.db)
	statedb.Begin()
	driver.SetStateDB(statedb)
	driver.SetEnv(exec.now().Unix(), signed)

	receipt, err := driver.Exec(tx, 0)
	if err != nil {
		statedb.Rollback()
		return nil, err
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	receipt.KV = statedb.GetSetKV()
	if err := statedb.Commit(); err != nil {
		commitErrCouter.Inc(1)
		return nil, errors.Wrap(err, "commit state")
	}
	elog.Debug("exec tx", "execer", tx.Execer, "action", driver.GetActionName(tx), "ty", receipt.Ty, "ret", receipt.Ret, "kvs", len(receipt.KV))
	return receipt, nil
}

// Query 只读查询, 不会写入任何数据
func (exec *Executor) Query(execer, funcName string, params []byte) (interface{}, error) {
	queryCounter.Inc(1)
	driver, err := drivers.LoadDriver(execer)
	if err != nil {
		return nil, err
	}
	driver.SetStateDB(NewStateDB(exec.db))
	return driver.Query(funcName, params)
}
