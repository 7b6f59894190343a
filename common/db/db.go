// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 持久化键值存储, 支持多种后端
package db

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/33cn/rps/common/log"
)

var dlog = log.New("module", "db")

// ErrNotFoundInDb key不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// KV 单次调用的状态视图, Set 的 value 为 nil 时表示删除
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
	BatchGet(keys [][]byte) (values [][]byte, err error)
	Begin()
	Rollback()
	Commit() error
}

// KVDB 只读写接口
type KVDB interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// DB 数据库接口
type DB interface {
	KVDB
	SetSync([]byte, []byte) error
	Delete([]byte) error
	DeleteSync([]byte) error
	Close()
	NewBatch(sync bool) Batch
	Stats() map[string]string
}

// Batch 批量写, Write 时原子提交
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

// 支持的后端
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
	GoRedisBackendStr    = "goredis"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var (
	backends   = map[string]dbCreator{}
	backendsMu sync.Mutex
)

func registerDBCreator(backend string, creator dbCreator, force bool) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 按后端名称创建数据库
func NewDB(name string, backend string, dir string, cache int32) (DB, error) {
	backendsMu.Lock()
	creator, ok := backends[backend]
	backendsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	db, err := creator(name, dir, int(cache))
	if err != nil {
		dlog.Error("NewDB", "backend", backend, "dir", dir, "err", err)
		return nil, err
	}
	return db, nil
}

func cloneByte(v []byte) []byte {
	if v == nil {
		return nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value
}
