// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Callback 对返回结果做转换后再输出
type Callback func(res interface{}) (interface{}, error)

// RPCCtx 命令行中的一次调用: 发送请求, 转换结果, 以缩进的json输出
type RPCCtx struct {
	Addr   string
	Method string
	Params interface{}
	Res    interface{}

	user     string
	password string
	cb       Callback
	out      io.Writer
	errOut   io.Writer
}

// NewRPCCtx 结果输出到 stdout, 错误输出到 stderr
func NewRPCCtx(laddr, method string, params, res interface{}) *RPCCtx {
	return &RPCCtx{
		Addr:   laddr,
		Method: method,
		Params: params,
		Res:    res,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetBasicAuth 节点开启 basic auth 时使用
func (c *RPCCtx) SetBasicAuth(user, password string) {
	c.user = user
	c.password = password
}

// SetResultCb 设置结果转换
func (c *RPCCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

// SetOutput 设置输出
func (c *RPCCtx) SetOutput(out, errOut io.Writer) {
	c.out = out
	c.errOut = errOut
}

// RunResult 调用并返回转换后的结果
func (c *RPCCtx) RunResult() (interface{}, error) {
	client, err := NewJSONClient(c.Addr)
	if err != nil {
		return nil, err
	}
	if c.user != "" {
		client.SetBasicAuth(c.user, c.password)
	}
	if err := client.Call(c.Method, c.Params, c.Res); err != nil {
		return nil, err
	}
	if c.cb == nil {
		return c.Res, nil
	}
	return c.cb(c.Res)
}

// Run 调用并输出结果, 出错时输出错误并返回
func (c *RPCCtx) Run() error {
	result, err := c.RunResult()
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return err
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return err
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}
