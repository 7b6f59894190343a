// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc 节点的 jsonrpc 与 grpc 服务
package rpc

import (
	"context"
	"net"
	"net/rpc"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/peer"

	rpslog "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/metrics"
	"github.com/33cn/rps/pluginmgr"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
)

var (
	remoteIPWhitelist = make(map[string]bool)
	rpcCfg            *types.RPC
	jrpcFuncWhitelist = make(map[string]bool)
	grpcFuncWhitelist = make(map[string]bool)
	jrpcFuncBlacklist = make(map[string]bool)
	grpcFuncBlacklist = make(map[string]bool)
	funcListLock      = sync.RWMutex{}
	log               = rpslog.New("module", "rpc")
)

// rpcMetrics rpc 模块的 prometheus 指标
type rpcMetrics struct {
	Requests *prometheus.CounterVec
	Rejected *prometheus.CounterVec
}

func newRPCMetrics() *rpcMetrics {
	return &rpcMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total rpc requests by method.",
		}, []string{"method"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "rpc",
			Name:      "rejected_total",
			Help:      "Total rpc requests rejected before dispatch.",
		}, []string{"reason"}),
	}
}

// Metrics 实现 metrics.Collector
func (m *rpcMetrics) Metrics() []prometheus.Collector {
	return metrics.PrometheusCollectorsFromFields(m)
}

// RPC 节点的 rpc 服务
type RPC struct {
	cfg     *types.RPC
	api     rpctypes.API
	gapi    *Grpcserver
	japi    *JSONRPCServer
	metrics *rpcMetrics
	ctx     context.Context
	cancel  context.CancelFunc
}

// InitCfg  interfaces
func InitCfg(rcfg *types.RPC) {
	rpcCfg = rcfg
	InitIPWhitelist(rcfg)
	InitJrpcFuncWhitelist(rcfg)
	InitGrpcFuncWhitelist(rcfg)
	InitJrpcFuncBlacklist(rcfg)
	InitGrpcFuncBlacklist(rcfg)
}

// New 创建 rpc 服务并注册插件的 rpc, 需要调用 Listen 才开始服务
func New(cfg *types.RPC, api rpctypes.API) *RPC {
	if cfg == nil {
		cfg = &types.RPC{}
	}
	InitCfg(cfg)
	r := &RPC{cfg: cfg, api: api, metrics: newRPCMetrics()}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	r.gapi = NewGRpcServer(api, r.metrics)
	r.japi = NewJSONRPCServer(api, r.metrics)
	//注册插件rpc
	pluginmgr.AddRPC(r)
	return r
}

// Listen rpc listen, 返回 grpc 端口与 jrpc 端口
func (r *RPC) Listen() (port1 int, port2 int, err error) {
	for i := 0; i < 10; i++ {
		port1, err = r.gapi.Listen()
		if err != nil {
			log.Error("Grpc Listen", "err", err)
			time.Sleep(time.Second)
			continue
		}
		break
	}
	if err != nil {
		return 0, 0, err
	}
	for i := 0; i < 10; i++ {
		port2, err = r.japi.Listen()
		if err != nil {
			log.Error("Jrpc Listen", "err", err)
			time.Sleep(time.Second)
			continue
		}
		break
	}
	if err != nil {
		return 0, 0, err
	}
	log.Info("rpc Listen port", "grpc", port1, "jrpc", port2)
	return port1, port2, nil
}

// GetAPI 实现 rpctypes.RPCServer
func (r *RPC) GetAPI() rpctypes.API {
	return r.api
}

// GRPC return grpc rpc
func (r *RPC) GRPC() *grpc.Server {
	return r.gapi.s
}

// JRPC return jrpc
func (r *RPC) JRPC() *rpc.Server {
	return r.japi.s
}

// Context get rpc context
func (r *RPC) Context() context.Context {
	return r.ctx
}

// Close rpc close
func (r *RPC) Close() {
	if r.gapi != nil {
		r.gapi.Close()
	}
	if r.japi != nil {
		r.japi.Close()
	}
	r.cancel()
}

// Grpcserver grpc 服务
type Grpcserver struct {
	grpc *Grpc
	s    *grpc.Server
	l    net.Listener
}

// NewGRpcServer new grpcserver object
func NewGRpcServer(api rpctypes.API, m *rpcMetrics) *Grpcserver {
	s := &Grpcserver{grpc: &Grpc{api: api}}
	var opts []grpc.ServerOption
	interceptor := func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		if err := auth(ctx, info); err != nil {
			m.Rejected.WithLabelValues("grpc").Inc()
			return nil, err
		}
		m.Requests.WithLabelValues(info.FullMethod).Inc()
		return handler(ctx, req)
	}
	opts = append(opts, grpc.UnaryInterceptor(interceptor))
	kp := keepalive.EnforcementPolicy{
		MinTime:             10 * time.Second,
		PermitWithoutStream: true,
	}
	opts = append(opts, grpc.KeepaliveEnforcementPolicy(kp))

	server := grpc.NewServer(opts...)
	s.s = server
	RegisterNodeServer(server, s.grpc)
	return s
}

// Listen 开始监听 grpc 端口
func (j *Grpcserver) Listen() (int, error) {
	listener, err := net.Listen("tcp", rpcCfg.GrpcBindAddr)
	if err != nil {
		return 0, err
	}
	if rpcCfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, int(rpcCfg.MaxConnections))
	}
	j.l = listener
	go func() {
		if err := j.s.Serve(listener); err != nil {
			log.Info("grpc Serve", "err", err)
		}
	}()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Close grpcserver close
func (j *Grpcserver) Close() {
	if j == nil {
		return
	}
	j.s.Stop()
}

func auth(ctx context.Context, info *grpc.UnaryServerInfo) error {
	getctx, ok := peer.FromContext(ctx)
	if !ok {
		return errNoPeer
	}
	remoteaddr := getctx.Addr.String()
	if host, _, err := net.SplitHostPort(remoteaddr); err == nil {
		remoteaddr = host
	}
	if !checkIPWhitelist(remoteaddr) {
		log.Error("grpc auth", "remote", remoteaddr, "err", types.ErrUnauthorized)
		return errIPNotAllowed(remoteaddr)
	}
	method := info.FullMethod[strings.LastIndex(info.FullMethod, "/")+1:]
	if !checkGrpcFuncValidity(method) {
		return errFuncNotAllowed(method)
	}
	return nil
}

func checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip.IsLoopback() {
		return true
	}
	ipv4 := ip.To4()
	if ipv4 != nil {
		addr = ipv4.String()
	}
	funcListLock.RLock()
	defer funcListLock.RUnlock()
	if _, ok := remoteIPWhitelist["0.0.0.0"]; ok {
		return true
	}
	if _, ok := remoteIPWhitelist[addr]; ok {
		return true
	}
	return false
}

func checkJrpcFuncValidity(funcName string) bool {
	funcListLock.RLock()
	defer funcListLock.RUnlock()
	if _, ok := jrpcFuncBlacklist[funcName]; ok {
		return false
	}
	if _, ok := jrpcFuncWhitelist["*"]; ok {
		return true
	}
	if _, ok := jrpcFuncWhitelist[funcName]; ok {
		return true
	}
	return false
}

func checkGrpcFuncValidity(funcName string) bool {
	funcListLock.RLock()
	defer funcListLock.RUnlock()
	if _, ok := grpcFuncBlacklist[funcName]; ok {
		return false
	}
	if _, ok := grpcFuncWhitelist["*"]; ok {
		return true
	}
	if _, ok := grpcFuncWhitelist[funcName]; ok {
		return true
	}
	return false
}

func resetList(m map[string]bool) {
	for k := range m {
		delete(m, k)
	}
}

// InitIPWhitelist init ip whitelist
func InitIPWhitelist(cfg *types.RPC) {
	funcListLock.Lock()
	defer funcListLock.Unlock()
	resetList(remoteIPWhitelist)
	if len(cfg.Whitelist) == 0 {
		remoteIPWhitelist["127.0.0.1"] = true
		return
	}
	if len(cfg.Whitelist) == 1 && cfg.Whitelist[0] == "*" {
		remoteIPWhitelist["0.0.0.0"] = true
		return
	}
	for _, addr := range cfg.Whitelist {
		remoteIPWhitelist[addr] = true
	}
}

// InitJrpcFuncWhitelist init jrpc function whitelist
func InitJrpcFuncWhitelist(cfg *types.RPC) {
	funcListLock.Lock()
	defer funcListLock.Unlock()
	resetList(jrpcFuncWhitelist)
	if len(cfg.JrpcFuncWhitelist) == 0 {
		jrpcFuncWhitelist["*"] = true
		return
	}
	for _, funcName := range cfg.JrpcFuncWhitelist {
		jrpcFuncWhitelist[funcName] = true
	}
}

// InitGrpcFuncWhitelist init grpc function whitelist
func InitGrpcFuncWhitelist(cfg *types.RPC) {
	funcListLock.Lock()
	defer funcListLock.Unlock()
	resetList(grpcFuncWhitelist)
	if len(cfg.GrpcFuncWhitelist) == 0 {
		grpcFuncWhitelist["*"] = true
		return
	}
	for _, funcName := range cfg.GrpcFuncWhitelist {
		grpcFuncWhitelist[funcName] = true
	}
}

// InitJrpcFuncBlacklist init jrpc function blacklist
func InitJrpcFuncBlacklist(cfg *types.RPC) {
	funcListLock.Lock()
	defer funcListLock.Unlock()
	resetList(jrpcFuncBlacklist)
	for _, funcName := range cfg.JrpcFuncBlacklist {
		jrpcFuncBlacklist[funcName] = true
	}
}

// InitGrpcFuncBlacklist init grpc function blacklist
func InitGrpcFuncBlacklist(cfg *types.RPC) {
	funcListLock.Lock()
	defer funcListLock.Unlock()
	resetList(grpcFuncBlacklist)
	for _, funcName := range cfg.GrpcFuncBlacklist {
		grpcFuncBlacklist[funcName] = true
	}
}
