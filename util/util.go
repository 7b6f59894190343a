// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 测试与命令行共用的工具函数
package util

import (
	"os"

	"github.com/33cn/rps/common"
	"github.com/33cn/rps/common/address"
	"github.com/33cn/rps/common/crypto"
	"github.com/33cn/rps/common/crypto/secp256k1"
	"github.com/33cn/rps/common/db"
	log "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/types"
)

var ulog = log.New("module", "util")

// SignType 默认的签名类型
const SignType = secp256k1.ID

// Genaddress : generate a address
func Genaddress() (string, crypto.PrivKey) {
	cr, err := crypto.New(secp256k1.Name)
	if err != nil {
		panic(err)
	}
	privto, err := cr.GenKey()
	if err != nil {
		panic(err)
	}
	addrto := address.PubKeyToAddress(privto.PubKey().Bytes())
	return addrto.String(), privto
}

// HexToPrivkey ： convert hex string to private key
func HexToPrivkey(key string) (crypto.PrivKey, error) {
	cr, err := crypto.New(secp256k1.Name)
	if err != nil {
		return nil, err
	}
	bkey, err := common.FromHex(key)
	if err != nil {
		return nil, err
	}
	return cr.PrivKeyFromBytes(bkey)
}

// PrivkeyToAddress 私钥对应的地址
func PrivkeyToAddress(priv crypto.PrivKey) string {
	return address.PubKeyToAddress(priv.PubKey().Bytes()).String()
}

// SignTx 使用默认签名算法签名
func SignTx(tx *types.Transaction, priv crypto.PrivKey) *types.Transaction {
	tx.Sign(SignType, priv)
	return tx
}

// CreateTestDB 创建一个测试数据库
func CreateTestDB() (string, db.DB) {
	dir, err := os.MkdirTemp("", "goleveldb")
	if err != nil {
		panic(err)
	}
	leveldb, err := db.NewGoLevelDB("goleveldb", dir, 16)
	if err != nil {
		panic(err)
	}
	return dir, leveldb
}

// CloseTestDB 关闭并删除测试数据库
func CloseTestDB(dir string, dbm db.DB) {
	dbm.Close()
	err := os.RemoveAll(dir)
	if err != nil {
		ulog.Info("RemoveAll ", "dir", dir, "err", err)
	}
}
