// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/33cn/rps/common/version"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
)

type mockAPI struct {
	execs int
}

func (m *mockAPI) Exec(tx *types.Transaction) (*types.Receipt, error) {
	if tx.Execer == "bad" {
		return nil, types.ErrUnRegistedDriver
	}
	m.execs++
	return &types.Receipt{Ty: types.ExecOk, Ret: "1", KV: []*types.KeyValue{{Key: []byte("k")}}}, nil
}

func (m *mockAPI) Query(execer, funcName string, params []byte) (interface{}, error) {
	return map[string]string{"execer": execer, "funcName": funcName, "params": string(params)}, nil
}

func newTestServer(t *testing.T, cfg *types.RPC) (*RPC, *httptest.Server, *mockAPI) {
	api := &mockAPI{}
	r := New(cfg, api)
	ts := httptest.NewServer(r.japi.Handler())
	t.Cleanup(ts.Close)
	return r, ts, api
}

func TestJSONRPC(t *testing.T) {
	SetTitle("local")
	_, ts, api := newTestServer(t, &types.RPC{MetricsPath: "/metrics"})
	client, err := jsonclient.NewJSONClient(ts.URL)
	require.Nil(t, err)

	var ver types.VersionInfo
	require.Nil(t, client.Call("GetVersion", &types.ReqNil{}, &ver))
	assert.Equal(t, "local", ver.Title)
	assert.Equal(t, version.GetVersion(), ver.App)

	tx := &types.Transaction{Execer: "rps", Payload: []byte(`{"operation":"StartPlay"}`)}
	var reply types.ReplyTxResult
	require.Nil(t, client.Call("Node.SendTransaction", tx, &reply))
	assert.Equal(t, "1", reply.Receipt.Ret)
	assert.NotEmpty(t, reply.Hash)
	assert.Equal(t, 1, api.execs)

	tx.Execer = "bad"
	err = client.Call("Node.SendTransaction", tx, &reply)
	require.NotNil(t, err)
	assert.Equal(t, types.ErrUnRegistedDriver.Error(), err.Error())

	var res map[string]string
	q := &types.Query{Execer: "rps", FuncName: "GetGameCount", Payload: []byte(`{}`)}
	require.Nil(t, client.Call("Node.Query", q, &res))
	assert.Equal(t, "GetGameCount", res["funcName"])
	assert.Equal(t, "{}", res["params"])

	err = client.Call("Node.Query", &types.Query{}, &res)
	assert.Equal(t, types.ErrInvalidParam.Error(), err.Error())

	resp, err := http.Get(ts.URL + "/metrics")
	require.Nil(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	assert.True(t, strings.Contains(string(body), "rps_rpc_requests_total"))
}

func TestJSONRPCFuncBlacklist(t *testing.T) {
	_, ts, _ := newTestServer(t, &types.RPC{JrpcFuncBlacklist: []string{"Query"}})
	client, err := jsonclient.NewJSONClient(ts.URL)
	require.Nil(t, err)

	var res interface{}
	err = client.Call("Node.Query", &types.Query{Execer: "rps", FuncName: "GetGameCount"}, &res)
	require.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "not authorized"))

	var ver types.VersionInfo
	assert.Nil(t, client.Call("Node.GetVersion", &types.ReqNil{}, &ver))
}

func TestJSONRPCBasicAuth(t *testing.T) {
	_, ts, _ := newTestServer(t, &types.RPC{JrpcUser: "user", JrpcPassword: "pass"})
	client, err := jsonclient.NewJSONClient(ts.URL)
	require.Nil(t, err)

	var ver types.VersionInfo
	err = client.Call("Node.GetVersion", &types.ReqNil{}, &ver)
	require.NotNil(t, err)
	assert.Equal(t, errBasicAuth.Error(), err.Error())

	client.SetBasicAuth("user", "pass")
	assert.Nil(t, client.Call("Node.GetVersion", &types.ReqNil{}, &ver))
}

func TestIPWhitelist(t *testing.T) {
	InitIPWhitelist(&types.RPC{Whitelist: []string{"192.168.1.1"}})
	assert.True(t, checkIPWhitelist("192.168.1.1"))
	assert.True(t, checkIPWhitelist("127.0.0.1"))
	assert.True(t, checkIPWhitelist("::1"))
	assert.False(t, checkIPWhitelist("10.0.0.1"))

	InitIPWhitelist(&types.RPC{Whitelist: []string{"*"}})
	assert.True(t, checkIPWhitelist("10.0.0.1"))

	InitIPWhitelist(&types.RPC{})
	assert.False(t, checkIPWhitelist("10.0.0.1"))
}

func TestFuncLists(t *testing.T) {
	InitGrpcFuncWhitelist(&types.RPC{GrpcFuncWhitelist: []string{"Query"}})
	InitGrpcFuncBlacklist(&types.RPC{})
	assert.True(t, checkGrpcFuncValidity("Query"))
	assert.False(t, checkGrpcFuncValidity("SendTransaction"))

	InitGrpcFuncWhitelist(&types.RPC{})
	InitGrpcFuncBlacklist(&types.RPC{GrpcFuncBlacklist: []string{"Query"}})
	assert.False(t, checkGrpcFuncValidity("Query"))
	assert.True(t, checkGrpcFuncValidity("SendTransaction"))

	InitJrpcFuncWhitelist(&types.RPC{JrpcFuncWhitelist: []string{"GetVersion"}})
	InitJrpcFuncBlacklist(&types.RPC{})
	assert.True(t, checkJrpcFuncValidity("GetVersion"))
	assert.False(t, checkJrpcFuncValidity("Query"))
}

func dialBufconn(t *testing.T, cfg *types.RPC) (*NodeClient, *mockAPI) {
	InitCfg(cfg)
	api := &mockAPI{}
	s := NewGRpcServer(api, newRPCMetrics())
	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = s.s.Serve(lis)
	}()
	t.Cleanup(s.Close)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.Nil(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewNodeClient(conn), api
}

func TestGrpc(t *testing.T) {
	client, api := dialBufconn(t, &types.RPC{Whitelist: []string{"*"}})
	ctx := context.Background()

	tx := &types.Transaction{Execer: "rps", Payload: []byte(`{}`)}
	out, err := client.SendTransaction(ctx, wrapperspb.Bytes(types.Encode(tx)))
	require.Nil(t, err)
	var reply types.ReplyTxResult
	require.Nil(t, types.Decode(out.GetValue(), &reply))
	assert.Equal(t, "1", reply.Receipt.Ret)
	assert.Equal(t, 1, api.execs)

	out, err = client.Query(ctx, wrapperspb.Bytes(types.Encode(&types.Query{Execer: "rps", FuncName: "GetGame"})))
	require.Nil(t, err)
	var res map[string]string
	require.Nil(t, types.Decode(out.GetValue(), &res))
	assert.Equal(t, "GetGame", res["funcName"])

	_, err = client.Query(ctx, wrapperspb.Bytes([]byte("not json")))
	assert.NotNil(t, err)
}

func TestGrpcWhitelist(t *testing.T) {
	client, _ := dialBufconn(t, &types.RPC{Whitelist: []string{"192.168.1.1"}})
	_, err := client.Query(context.Background(), wrapperspb.Bytes(types.Encode(&types.Query{Execer: "rps", FuncName: "GetGame"})))
	require.NotNil(t, err)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	client, _ = dialBufconn(t, &types.RPC{Whitelist: []string{"*"}, GrpcFuncBlacklist: []string{"SendTransaction"}})
	_, err = client.SendTransaction(context.Background(), wrapperspb.Bytes([]byte(`{}`)))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}
