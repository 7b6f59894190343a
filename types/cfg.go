// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Config 节点配置
type Config struct {
	Title   string   `json:"title,omitempty"`
	Log     *Log     `json:"log,omitempty"`
	Store   *Store   `json:"store,omitempty"`
	Exec    *Exec    `json:"exec,omitempty"`
	RPC     *RPC     `json:"rpc,omitempty"`
	Metrics *Metrics `json:"metrics,omitempty"`
}

// ConfigSubModule 各模块的子配置, 以json保存, 由具体的模块解析
type ConfigSubModule struct {
	Store   map[string][]byte
	Exec    map[string][]byte
	Metrics map[string][]byte
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `json:"loglevel,omitempty"`
	LogConsoleLevel string `json:"logConsoleLevel,omitempty"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `json:"logFile,omitempty"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `json:"maxFileSize,omitempty"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `json:"maxBackups,omitempty"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `json:"maxAge,omitempty"`
	// 日志文件名是否使用本地事件（否则使用UTC时间）
	LocalTime bool `json:"localTime,omitempty"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `json:"compress,omitempty"`
	// 是否打印调用源文件和行号
	CallerFile bool `json:"callerFile,omitempty"`
	// 是否打印调用方法
	CallerFunction bool `json:"callerFunction,omitempty"`
}

// Store 状态数据库配置
type Store struct {
	// 数据存储格式名称，目前支持 memdb, leveldb, goleveldb, gobadgerdb, goredis
	Driver string `json:"driver,omitempty"`
	// 数据文件存储路径, goredis 时为 redis://host:port/db
	DbPath string `json:"dbPath,omitempty"`
	// Cache大小(MB)
	DbCache int32 `json:"dbCache,omitempty"`
}

// Exec 执行器配置
type Exec struct {
	// 是否允许未签名的交易进入执行器, 未签名的交易无法通过身份校验
	AllowUnsigned bool `json:"allowUnsigned,omitempty"`
}

// RPC 配置
type RPC struct {
	// jrpc绑定地址
	JrpcBindAddr string `json:"jrpcBindAddr,omitempty"`
	// grpc绑定地址
	GrpcBindAddr string `json:"grpcBindAddr,omitempty"`
	// 白名单列表，允许访问的IP地址，默认是“*”，允许所有IP访问
	Whitelist []string `json:"whitelist,omitempty"`
	// jrpc方法请求白名单，默认是“*”，允许访问所有RPC方法
	JrpcFuncWhitelist []string `json:"jrpcFuncWhitelist,omitempty"`
	// grpc方法请求白名单，默认是“*”，允许访问所有RPC方法
	GrpcFuncWhitelist []string `json:"grpcFuncWhitelist,omitempty"`
	// jrpc方法请求黑名单，禁止调用黑名单里配置的rpc方法
	JrpcFuncBlacklist []string `json:"jrpcFuncBlacklist,omitempty"`
	// grpc方法请求黑名单，禁止调用黑名单里配置的rpc方法
	GrpcFuncBlacklist []string `json:"grpcFuncBlacklist,omitempty"`
	// 最大并发连接数, 0 表示不限制
	MaxConnections int32 `json:"maxConnections,omitempty"`
	// 每个IP每秒允许的请求数, 0 表示不限制
	MaxRequestRate int32 `json:"maxRequestRate,omitempty"`
	// basic auth, 用户名为空时不校验
	JrpcUser     string `json:"jrpcUser,omitempty"`
	JrpcPassword string `json:"jrpcPassword,omitempty"`
	// prometheus 指标路径, 为空时不开启
	MetricsPath string `json:"metricsPath,omitempty"`
}

// Metrics 指标配置
type Metrics struct {
	EnableMetrics bool `json:"enableMetrics,omitempty"`
	// 目前支持 influxdb, log
	DataEmitMode string `json:"dataEmitMode,omitempty"`
}
