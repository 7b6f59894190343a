// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, sub := InitCfgString(GetDefaultCfgstring())
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "leveldb", cfg.Store.Driver)
	assert.Equal(t, "localhost:8801", cfg.RPC.JrpcBindAddr)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.RPC.Whitelist)
	assert.Equal(t, "logs/rps.log", cfg.Log.LogFile)
	assert.False(t, cfg.Metrics.EnableMetrics)

	var rps struct {
		HashType string `json:"hashType"`
	}
	MustDecode(sub.Exec["rps"], &rps)
	assert.Equal(t, "sha256", rps.HashType)
	assert.NotNil(t, sub.Metrics["influxdb"])
}

func TestConfigDefaults(t *testing.T) {
	cfg, sub, err := ParseCfgString(`Title="test"`)
	require.Nil(t, err)
	assert.Equal(t, "leveldb", cfg.Store.Driver)
	assert.NotNil(t, cfg.RPC)
	assert.NotNil(t, cfg.Exec)
	assert.Len(t, sub.Exec, 0)

	_, _, err = ParseCfgString(`Title=`)
	assert.NotNil(t, err)
}

func TestReadCfg(t *testing.T) {
	dir, err := os.MkdirTemp("", "rpscfg")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "rps.toml")
	require.Nil(t, os.WriteFile(path, []byte(GetDefaultCfgstring()), 0600))
	cfg, _, err := ReadCfg(path)
	require.Nil(t, err)

	ResetDatadir(cfg, "/data")
	assert.Equal(t, "/data/logs/rps.log", cfg.Log.LogFile)
	assert.Equal(t, "/data/datadir/statedb", cfg.Store.DbPath)

	_, _, err = ReadCfg(filepath.Join(dir, "none.toml"))
	assert.NotNil(t, err)
}
