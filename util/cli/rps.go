// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli RunRps 加载配置, 状态数据库, 执行器和 rpc 服务, 组合成节点程序.
// Run 为命令行客户端入口, 各插件的命令通过 pluginmgr 注册
package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/33cn/rps/common/db"
	clog "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/common/version"
	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/metrics"
	"github.com/33cn/rps/rpc"
	"github.com/33cn/rps/types"
)

var log = clog.New("module", "main")

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of rps, include logs and datas")
	versionCmd = flag.Bool("v", false, "version")
)

// RunRps : run rps node
func RunRps(name string) {
	flag.Parse()
	if *versionCmd {
		fmt.Println(version.GetVersion())
		return
	}
	if *configPath == "" {
		if name == "" {
			*configPath = "rps.toml"
		} else {
			*configPath = name + ".toml"
		}
	}
	cfg, sub := types.InitCfg(*configPath)
	if *datadir != "" {
		types.ResetDatadir(cfg, *datadir)
	}
	clog.SetFileLog(cfg.Log)
	log.Info("rps node", "title", cfg.Title, "version", version.GetVersion())

	//set watching
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()
	go func() {
		for range t.C {
			watching()
		}
	}()

	log.Info("loading store", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	statedb, err := db.NewDB("statedb", cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		panic(err)
	}

	log.Info("loading execs module")
	exec := executor.New(cfg.Exec, sub.Exec, statedb)

	log.Info("loading rpc module")
	rpc.SetTitle(cfg.Title)
	rpcapi := rpc.New(cfg.RPC, exec)
	grpcPort, jrpcPort, err := rpcapi.Listen()
	if err != nil {
		panic(err)
	}
	log.Info("rpc listen", "grpc", grpcPort, "jrpc", jrpcPort)

	metrics.StartMetrics(cfg.Metrics, sub.Metrics)

	defer func() {
		log.Info("begin close rpc module")
		rpcapi.Close()
		log.Info("begin close store")
		statedb.Close()
	}()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	sig := <-interrupt
	log.Info("receive signal, exit", "signal", sig)
}

func watching() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
	log.Info("info:", "Mem:", m.Sys/(1024*1024))
	log.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
}
