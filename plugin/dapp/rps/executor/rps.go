// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/rps/common/crypto"
	log "github.com/33cn/rps/common/log"
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	drivers "github.com/33cn/rps/system/dapp"
	"github.com/33cn/rps/types"
	"github.com/rcrowley/go-metrics"
)

var rlog = log.New("module", "execs.rps")

var driverName = rpstypes.RpsX

var (
	gameCreatedCounter   = metrics.GetOrRegisterCounter("rps/game/created", nil)
	commitCounter        = metrics.GetOrRegisterCounter("rps/commit", nil)
	answerCounter        = metrics.GetOrRegisterCounter("rps/answer", nil)
	invalidAnswerCounter = metrics.GetOrRegisterCounter("rps/answer/invalid", nil)
	resolvedCounter      = metrics.GetOrRegisterCounter("rps/game/resolved", nil)
	unauthorizedCounter  = metrics.GetOrRegisterCounter("rps/unauthorized", nil)
)

type subConfig struct {
	HashType string `json:"hashType"`
}

var (
	committer *rpstypes.Committer
	hashType  = crypto.HashSha256
)

func init() {
	c, err := rpstypes.NewCommitter("")
	if err != nil {
		panic(err)
	}
	committer = c
}

// Init 注册执行器, sub 为 [exec.sub.rps] 配置
func Init(name string, sub []byte) {
	var cfg subConfig
	types.MustDecode(sub, &cfg)
	c, err := rpstypes.NewCommitter(cfg.HashType)
	if err != nil {
		panic("rps: unsupported hashType " + cfg.HashType)
	}
	committer = c
	if cfg.HashType != "" {
		hashType = cfg.HashType
	}
	driverName = name
	drivers.Register(name, newRps)
}

// GetHashType 承诺使用的摘要算法
func GetHashType() string {
	return hashType
}

// GetName 获取执行器名
func GetName() string {
	return newRps().GetName()
}

// Rps 石头剪刀布执行器
type Rps struct {
	drivers.DriverBase
	committer *rpstypes.Committer
}

func newRps() drivers.Driver {
	r := &Rps{committer: committer}
	r.SetChild(r)
	return r
}

// GetDriverName 获取驱动名
func (r *Rps) GetDriverName() string {
	return driverName
}

// Exec 未知的操作不是错误, 返回 "Method not implemented" 且没有写入
func (r *Rps) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	receipt, err := r.DriverBase.Exec(tx, index)
	if err == types.ErrActionNotSupport {
		rlog.Error("exec", "action", r.GetActionName(tx), "err", err)
		receipt = &types.Receipt{Ty: types.ExecPack}
		receipt.AddLog(rpstypes.TyLogMessage, &rpstypes.ReceiptMessage{Msg: rpstypes.MsgNotImplemented})
		return receipt, nil
	}
	return receipt, err
}

func (r *Rps) decodeAction(tx *types.Transaction) (*rpstypes.RpsAction, error) {
	var action rpstypes.RpsAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return nil, err
	}
	return &action, nil
}
