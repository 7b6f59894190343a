// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDBTx(t *testing.T) {
	db, err := dbm.NewDB("state", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	require.Nil(t, db.Set([]byte("a.b"), []byte("1")))

	s := NewStateDB(db)
	assert.Equal(t, types.ErrNotAllowMemSetKey, s.Set([]byte("x"), []byte("1")))

	s.Begin()
	require.Nil(t, s.Set([]byte("new_game_id"), []byte("1")))
	require.Nil(t, s.Set([]byte("new_game_id"), []byte("2")))
	require.Nil(t, s.Set([]byte("a.b"), nil))

	v, err := s.Get([]byte("new_game_id"))
	require.Nil(t, err)
	assert.Equal(t, []byte("2"), v)
	_, err = s.Get([]byte("a.b"))
	assert.Equal(t, types.ErrNotFound, err)

	values, err := s.BatchGet([][]byte{[]byte("new_game_id"), []byte("a.b")})
	require.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("2"), nil}, values)

	kvs := s.GetSetKV()
	require.Len(t, kvs, 2)
	assert.Equal(t, "new_game_id", string(kvs[0].Key))
	assert.Nil(t, kvs[1].Value)

	// nothing reaches the db before commit
	_, err = db.Get([]byte("new_game_id"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)

	require.Nil(t, s.Commit())
	v, err = db.Get([]byte("new_game_id"))
	require.Nil(t, err)
	assert.Equal(t, []byte("2"), v)
	_, err = db.Get([]byte("a.b"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)
}

func TestStateDBRollback(t *testing.T) {
	db, err := dbm.NewDB("state", dbm.MemDBBackendStr, "", 0)
	require.Nil(t, err)
	s := NewStateDB(db)
	s.Begin()
	require.Nil(t, s.Set([]byte("game.1.winner"), []byte("draw")))
	s.Rollback()
	_, err = s.Get([]byte("game.1.winner"))
	assert.Equal(t, types.ErrNotFound, err)
	require.Nil(t, s.Commit())
	_, err = db.Get([]byte("game.1.winner"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)
}
