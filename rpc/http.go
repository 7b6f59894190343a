// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	"github.com/kevinms/leakybucket-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/netutil"

	"github.com/33cn/rps/metrics"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
)

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	r   *http.Request
	in  io.Reader
	out io.Writer
}

// Read rewrite the read of http
func (c *HTTPConn) Read(p []byte) (n int, err error) { return c.in.Read(p) }

// Write rewrite the write of http
func (c *HTTPConn) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}

// Close rewrite the close of http
func (c *HTTPConn) Close() error { return nil }

// JSONRPCServer  a json rpcserver object
type JSONRPCServer struct {
	jrpc    *Node
	s       *rpc.Server
	l       net.Listener
	metrics *rpcMetrics
	limiter *leakybucket.Collector
}

// NewJSONRPCServer new json rpcserver object
func NewJSONRPCServer(api rpctypes.API, m *rpcMetrics) *JSONRPCServer {
	j := &JSONRPCServer{jrpc: &Node{}, metrics: m}
	j.jrpc.cli.API = api
	server := rpc.NewServer()
	j.s = server
	err := server.RegisterName("Node", j.jrpc)
	if err != nil {
		panic(err)
	}
	if rpcCfg.MaxRequestRate > 0 {
		rate := float64(rpcCfg.MaxRequestRate)
		j.limiter = leakybucket.NewCollector(rate, int64(rpcCfg.MaxRequestRate), true)
	}
	return j
}

// Listen jsonrpcserver listen
func (j *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", rpcCfg.JrpcBindAddr)
	if err != nil {
		return 0, err
	}
	if rpcCfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, int(rpcCfg.MaxConnections))
	}
	j.l = listener
	go func() {
		if err := http.Serve(listener, j.Handler()); err != nil {
			log.Info("jrpc Serve", "err", err)
		}
	}()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Handler http 处理: "/" 为 jsonrpc, metricsPath 为 prometheus 指标
func (j *JSONRPCServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", j.serveJSONRPC)
	if rpcCfg.MetricsPath != "" {
		reg := metrics.NewRegistry()
		reg.MustRegister(j.metrics.Metrics()...)
		mux.Handle(rpcCfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	co := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"*"},
	})
	return co.Handler(mux)
}

// Close json rpcserver close
func (j *JSONRPCServer) Close() {
	if j.l != nil {
		err := j.l.Close()
		if err != nil {
			log.Error("JSONRPCServer close", "err", err)
		}
	}
}

type clientRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     interface{}     `json:"id"`
}

func (j *JSONRPCServer) serveJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if !checkIPWhitelist(ip) {
		j.metrics.Rejected.WithLabelValues("whitelist").Inc()
		writeError(w, nil, errIPNotAllowed(ip).Error())
		return
	}
	if j.limiter != nil {
		if j.limiter.Remaining(ip) <= 0 {
			j.metrics.Rejected.WithLabelValues("ratelimit").Inc()
			writeError(w, nil, errRateLimit.Error())
			return
		}
		j.limiter.Add(ip, 1)
	}
	if !checkBasicAuth(r) {
		j.metrics.Rejected.WithLabelValues("auth").Inc()
		writeError(w, nil, errBasicAuth.Error())
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, nil, errJrpcRequest.Error())
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, types.MaxTxSize*2))
	if err != nil {
		writeError(w, nil, err.Error())
		return
	}
	var req clientRequest
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, nil, errJrpcRequest.Error())
		return
	}
	funcName := req.Method[strings.LastIndex(req.Method, ".")+1:]
	if !checkJrpcFuncValidity(funcName) {
		j.metrics.Rejected.WithLabelValues("func").Inc()
		writeError(w, req.ID, errFuncNotAllowed(funcName).Error())
		return
	}
	j.metrics.Requests.WithLabelValues(req.Method).Inc()

	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: bytes.NewReader(data), out: w, r: r})
	w.Header().Set("Content-type", "application/json")
	err = j.s.ServeRequest(serverCodec)
	if err != nil {
		log.Debug("Error while serving JSON request", "err", err)
	}
}

func checkBasicAuth(r *http.Request) bool {
	if rpcCfg.JrpcUser == "" && rpcCfg.JrpcPassword == "" {
		return true
	}
	s := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(s) != 2 {
		return false
	}
	b, err := base64.StdEncoding.DecodeString(s[1])
	if err != nil {
		return false
	}
	pair := strings.SplitN(string(b), ":", 2)
	if len(pair) != 2 {
		return false
	}
	return pair[0] == rpcCfg.JrpcUser && pair[1] == rpcCfg.JrpcPassword
}

func writeError(w http.ResponseWriter, id interface{}, errstr string) {
	w.Header().Set("Content-type", "application/json")
	resp := map[string]interface{}{
		"id":     id,
		"result": nil,
		"error":  errstr,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Debug("writeError", "err", err)
	}
}
