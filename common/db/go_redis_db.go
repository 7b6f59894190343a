// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoRedisDB(name, dir, cache)
	}
	registerDBCreator(GoRedisBackendStr, dbCreator, false)
}

const redisTimeout = 5 * time.Second

// GoRedisDB 以 redis 为后端, key 以 name 为前缀隔离
type GoRedisDB struct {
	client *redis.Client
	prefix string
}

// NewGoRedisDB dir 为 redis://[:password@]host:port[/db]
func NewGoRedisDB(name string, dir string, cache int) (*GoRedisDB, error) {
	opt, err := redis.ParseURL(dir)
	if err != nil {
		return nil, errors.Wrap(err, "NewGoRedisDB")
	}
	if cache > 0 {
		opt.PoolSize = cache
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "NewGoRedisDB ping")
	}
	return &GoRedisDB{client: client, prefix: name + ":"}, nil
}

func (db *GoRedisDB) key(key []byte) string {
	return db.prefix + string(key)
}

// Get get
func (db *GoRedisDB) Get(key []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	value, err := db.client.Get(ctx, db.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		dlog.Error("Get", "error", err)
		return nil, err
	}
	return value, nil
}

// Set set
func (db *GoRedisDB) Set(key []byte, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	err := db.client.Set(ctx, db.key(key), value, 0).Err()
	if err != nil {
		dlog.Error("Set", "error", err)
	}
	return err
}

// SetSync 持久化由 redis 的 appendfsync 决定, 同 Set
func (db *GoRedisDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete 删除
func (db *GoRedisDB) Delete(key []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	err := db.client.Del(ctx, db.key(key)).Err()
	if err != nil {
		dlog.Error("Delete", "error", err)
	}
	return err
}

// DeleteSync 同 Delete
func (db *GoRedisDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

// Close 关闭
func (db *GoRedisDB) Close() {
	err := db.client.Close()
	if err != nil {
		dlog.Error("Close", "error", err)
	}
}

// Stats 连接池统计
func (db *GoRedisDB) Stats() map[string]string {
	ps := db.client.PoolStats()
	return map[string]string{
		"database.type": "redis",
		"pool.hits":     fmt.Sprint(ps.Hits),
		"pool.misses":   fmt.Sprint(ps.Misses),
		"pool.total":    fmt.Sprint(ps.TotalConns),
		"pool.idle":     fmt.Sprint(ps.IdleConns),
	}
}

// NewBatch 批量写在 MULTI/EXEC 中提交
func (db *GoRedisDB) NewBatch(sync bool) Batch {
	return &goRedisBatch{db: db}
}

type goRedisBatch struct {
	db     *GoRedisDB
	writes []kv
	size   int
}

func (b *goRedisBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), cloneByte(value)})
	b.size += len(value)
}

func (b *goRedisBatch) Delete(key []byte) {
	b.writes = append(b.writes, kv{cloneByte(key), nil})
	b.size++
}

func (b *goRedisBatch) Write() error {
	if len(b.writes) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	_, err := b.db.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, kv := range b.writes {
			if kv.v == nil {
				pipe.Del(ctx, b.db.key(kv.k))
			} else {
				pipe.Set(ctx, b.db.key(kv.k), kv.v, 0)
			}
		}
		return nil
	})
	if err != nil {
		dlog.Error("Write", "error", err)
	}
	return err
}

func (b *goRedisBatch) ValueSize() int {
	return b.size
}

func (b *goRedisBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
