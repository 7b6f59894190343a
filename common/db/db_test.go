// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDBBasic(t *testing.T, db DB) {
	_, err := db.Get([]byte("none"))
	require.Equal(t, ErrNotFoundInDb, err)

	require.Nil(t, db.Set([]byte("aaaaaa/1"), []byte("aaaaaa/1")))
	require.Nil(t, db.SetSync([]byte("my_key/1"), []byte("my_key/1")))
	v, err := db.Get([]byte("aaaaaa/1"))
	require.Nil(t, err)
	require.Equal(t, []byte("aaaaaa/1"), v)

	require.Nil(t, db.Delete([]byte("aaaaaa/1")))
	_, err = db.Get([]byte("aaaaaa/1"))
	require.Equal(t, ErrNotFoundInDb, err)
	require.Nil(t, db.DeleteSync([]byte("my_key/1")))
	require.Nil(t, db.Delete([]byte("my_key/1")))

	require.NotNil(t, db.Stats())
}

func testDBBatch(t *testing.T, db DB) {
	require.Nil(t, db.Set([]byte("old"), []byte("1")))

	batch := db.NewBatch(true)
	batch.Set([]byte("new_game_id"), []byte("1"))
	batch.Set([]byte("game.1.player1"), []byte("A"))
	batch.Delete([]byte("old"))
	require.Equal(t, 3, batch.ValueSize())

	_, err := db.Get([]byte("new_game_id"))
	require.Equal(t, ErrNotFoundInDb, err)

	require.Nil(t, batch.Write())
	v, err := db.Get([]byte("new_game_id"))
	require.Nil(t, err)
	require.Equal(t, []byte("1"), v)
	v, err = db.Get([]byte("game.1.player1"))
	require.Nil(t, err)
	require.Equal(t, []byte("A"), v)
	_, err = db.Get([]byte("old"))
	require.Equal(t, ErrNotFoundInDb, err)

	batch.Reset()
	require.Equal(t, 0, batch.ValueSize())
	require.Nil(t, batch.Write())
}

func TestGoMemDB(t *testing.T) {
	db, err := NewDB("test", MemDBBackendStr, "", 0)
	require.Nil(t, err)
	defer db.Close()
	testDBBasic(t, db)
	testDBBatch(t, db)
}

func TestGoLevelDB(t *testing.T) {
	dir, err := os.MkdirTemp("", "goleveldb")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoLevelDBBackendStr, dir, 16)
	require.Nil(t, err)
	defer db.Close()
	testDBBasic(t, db)
	testDBBatch(t, db)
}

func TestGoBadgerDB(t *testing.T) {
	dir, err := os.MkdirTemp("", "gobadgerdb")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoBadgerDBBackendStr, dir, 0)
	require.Nil(t, err)
	defer db.Close()
	testDBBasic(t, db)
	testDBBatch(t, db)
}

func TestGoRedisDB(t *testing.T) {
	url := os.Getenv("RPS_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	db, err := NewDB("rpstest", GoRedisBackendStr, url, 0)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer db.Close()
	testDBBasic(t, db)
	testDBBatch(t, db)
	require.Nil(t, db.Delete([]byte("new_game_id")))
	require.Nil(t, db.Delete([]byte("game.1.player1")))
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "cleveldb", "", 0)
	require.NotNil(t, err)
}
