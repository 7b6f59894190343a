// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "encoding/json"

// KeyValue 状态数据库的一次写操作, Value 为 nil 表示删除
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// ReceiptLog 执行日志
type ReceiptLog struct {
	Ty  int32           `json:"ty"`
	Log json.RawMessage `json:"log"`
}

// Receipt 执行回执
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv,omitempty"`
	Logs []*ReceiptLog `json:"logs,omitempty"`
	// 对外返回值
	Ret string `json:"ret"`
}

// ReceiptData 回执数据, 不含状态写集合
type ReceiptData struct {
	Ty   int32         `json:"ty"`
	Logs []*ReceiptLog `json:"logs,omitempty"`
	Ret  string        `json:"ret"`
}

// ReplyTxResult 交易执行结果
type ReplyTxResult struct {
	Hash    string       `json:"hash"`
	Receipt *ReceiptData `json:"receipt"`
}

// Query 只读查询
type Query struct {
	Execer   string          `json:"execer"`
	FuncName string          `json:"funcName"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// ReqNil 空请求
type ReqNil struct{}

// VersionInfo 版本信息
type VersionInfo struct {
	Title string `json:"title"`
	App   string `json:"app"`
}

// Data 返回 receipt 的对外部分
func (r *Receipt) Data() *ReceiptData {
	if r == nil {
		return nil
	}
	return &ReceiptData{Ty: r.Ty, Logs: r.Logs, Ret: r.Ret}
}

// AddLog 添加一条日志
func (r *Receipt) AddLog(ty int32, log interface{}) {
	r.Logs = append(r.Logs, &ReceiptLog{Ty: ty, Log: Encode(log)})
}
