// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"os"
	"path/filepath"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ReadCfg 读取配置文件
func ReadCfg(path string) (*Config, *ConfigSubModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ReadCfg")
	}
	return ParseCfgString(string(data))
}

// ParseCfgString 解析配置字符串
func ParseCfgString(cfgstring string) (*Config, *ConfigSubModule, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, nil, errors.Wrap(err, "decode config")
	}
	sub, err := initSubModuleString(cfgstring)
	if err != nil {
		return nil, nil, err
	}
	fillDefault(&cfg)
	return &cfg, sub, nil
}

// InitCfg 初始化配置, 出错时panic
func InitCfg(path string) (*Config, *ConfigSubModule) {
	cfg, sub, err := ReadCfg(path)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

// InitCfgString 初始化配置, 出错时panic
func InitCfgString(cfgstring string) (*Config, *ConfigSubModule) {
	cfg, sub, err := ParseCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

// GetDefaultCfgstring 默认配置
func GetDefaultCfgstring() string {
	return cfgstring
}

// ResetDatadir 将相对路径重置到datadir下
func ResetDatadir(cfg *Config, datadir string) {
	if datadir == "" {
		return
	}
	if cfg.Log != nil && cfg.Log.LogFile != "" && !filepath.IsAbs(cfg.Log.LogFile) {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
	if cfg.Store != nil && cfg.Store.Driver != "goredis" && !filepath.IsAbs(cfg.Store.DbPath) {
		cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	}
}

func fillDefault(cfg *Config) {
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "leveldb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Exec == nil {
		cfg.Exec = &Exec{}
	}
	if cfg.RPC == nil {
		cfg.RPC = &RPC{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
}

// subModule 子模块结构体
type subModule struct {
	Store   map[string]interface{}
	Exec    map[string]interface{}
	Metrics map[string]interface{}
}

func initSubModuleString(cfgstring string) (*ConfigSubModule, error) {
	var cfg subModule
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode sub config")
	}
	var subcfg ConfigSubModule
	subcfg.Store = parseItem(cfg.Store)
	subcfg.Exec = parseItem(cfg.Exec)
	subcfg.Metrics = parseItem(cfg.Metrics)
	return &subcfg, nil
}

func parseItem(data map[string]interface{}) map[string][]byte {
	subconfig := make(map[string][]byte)
	if len(data) == 0 {
		return subconfig
	}
	subcfg, ok := data["sub"].(map[string]interface{})
	if !ok {
		return subconfig
	}
	for k := range subcfg {
		subconfig[k], _ = json.Marshal(subcfg[k])
	}
	return subconfig
}

// MustDecode 子配置解析, 出错时panic
func MustDecode(data []byte, v interface{}) {
	if data == nil {
		return
	}
	err := json.Unmarshal(data, v)
	if err != nil {
		panic(err)
	}
}
