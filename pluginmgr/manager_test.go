// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"net/rpc"
	"testing"

	"github.com/33cn/rps/rpc/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
)

type testServer struct{}

func (s *testServer) GetAPI() types.API  { return nil }
func (s *testServer) GRPC() *grpc.Server { return nil }
func (s *testServer) JRPC() *rpc.Server  { return nil }

var (
	execCalls int
	execSub   []byte
	rpcName   string
)

func init() {
	Register(&PluginBase{
		Name:     "demo",
		ExecName: "demoexec",
		Exec: func(name string, sub []byte) {
			execCalls++
			execSub = sub
		},
		Cmd: func() *cobra.Command {
			return &cobra.Command{Use: "demo"}
		},
		RPC: func(name string, s types.RPCServer) {
			rpcName = name
		},
	})
	Register(&PluginBase{Name: "empty"})
}

func TestRegister(t *testing.T) {
	assert.Panics(t, func() { Register(nil) })
	assert.Panics(t, func() { Register(&PluginBase{}) })
	assert.Panics(t, func() { Register(&PluginBase{Name: "demo"}) })
	assert.True(t, HasExec("demoexec"))
	assert.False(t, HasExec("demo"))
}

func TestInitExec(t *testing.T) {
	sub := map[string][]byte{"demoexec": []byte(`{"k":1}`)}
	InitExec(sub)
	InitExec(nil)
	assert.Equal(t, 1, execCalls)
	assert.Equal(t, []byte(`{"k":1}`), execSub)
}

func TestAddCmdAndRPC(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	AddCmd(root)
	assert.Len(t, root.Commands(), 1)
	assert.Equal(t, "demo", root.Commands()[0].Name())

	AddRPC(&testServer{})
	assert.Equal(t, "demoexec", rpcName)
}
