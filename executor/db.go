// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
)

// StateDB 单次调用的状态视图: 写入先缓存在内存中, Commit 时一次性原子写入数据库
type StateDB struct {
	db      dbm.DB
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.DB) *StateDB {
	return &StateDB{
		db:      db,
		txcache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.resetTx()
	s.intx = true
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 将缓存的写入一次性提交, 要么全部成功要么全部失败
func (s *StateDB) Commit() error {
	if !s.intx {
		return nil
	}
	defer s.resetTx()
	if len(s.keys) == 0 {
		return nil
	}
	batch := s.db.NewBatch(true)
	for _, kv := range s.GetSetKV() {
		if kv.Value == nil {
			batch.Delete(kv.Key)
		} else {
			batch.Set(kv.Key, kv.Value)
		}
	}
	return batch.Write()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = make(map[string][]byte)
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if value, ok := s.txcache[skey]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return value, nil
	}
	value, err := s.db.Get(key)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	if err != nil {
		elog.Error("StateDB Get", "key", skey, "err", err)
		return nil, err
	}
	return value, nil
}

// Set set key value to state db, value 为 nil 时删除
func (s *StateDB) Set(key []byte, value []byte) error {
	if !s.intx {
		return types.ErrNotAllowMemSetKey
	}
	skey := string(key)
	if _, ok := s.txcache[skey]; !ok {
		s.keys = append(s.keys, skey)
	}
	if value == nil {
		s.txcache[skey] = nil
		return nil
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.txcache[skey] = v
	return nil
}

// BatchGet batch get keys from state db
func (s *StateDB) BatchGet(keys [][]byte) (values [][]byte, err error) {
	for _, key := range keys {
		v, err := s.Get(key)
		if err != nil && err != types.ErrNotFound {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// GetSetKV 当前事务中的写操作, 按第一次写入的顺序
func (s *StateDB) GetSetKV() []*types.KeyValue {
	kvs := make([]*types.KeyValue, 0, len(s.keys))
	for _, k := range s.keys {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: s.txcache[k]})
	}
	return kvs
}
