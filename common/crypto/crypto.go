// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crypto 签名算法接口与注册表. 交易中只保存签名类型, 由类型找到算法验证签名
package crypto

import (
	"errors"
	"sync"

	pkgerr "github.com/pkg/errors"
)

// 错误
var (
	ErrUnknownDriver = errors.New("ErrUnknownDriver")
	ErrBadSignature  = errors.New("ErrBadSignature")
)

// PrivKey 私钥
type PrivKey interface {
	Bytes() []byte
	Sign(msg []byte) Signature
	PubKey() PubKey
	Equals(PrivKey) bool
}

// Signature 签名
type Signature interface {
	Bytes() []byte
	IsZero() bool
	String() string
	Equals(Signature) bool
}

// PubKey 公钥
type PubKey interface {
	Bytes() []byte
	KeyString() string
	VerifyBytes(msg []byte, sig Signature) bool
	Equals(PubKey) bool
}

// Crypto 签名算法
type Crypto interface {
	GenKey() (PrivKey, error)
	SignatureFromBytes([]byte) (Signature, error)
	PrivKeyFromBytes([]byte) (PrivKey, error)
	PubKeyFromBytes([]byte) (PubKey, error)
}

type driver struct {
	name string
	ty   int32
	c    Crypto
}

var (
	mu     sync.RWMutex
	byName = make(map[string]*driver)
	byType = make(map[int32]*driver)
)

// Register 注册签名算法, 名称和类型都不能重复
func Register(name string, ty int32, c Crypto) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		panic("crypto: Register driver is nil")
	}
	if _, dup := byName[name]; dup {
		panic("crypto: Register called twice for driver " + name)
	}
	if d, dup := byType[ty]; dup {
		panic("crypto: type of " + name + " already used by " + d.name)
	}
	d := &driver{name: name, ty: ty, c: c}
	byName[name] = d
	byType[ty] = d
}

// New 按名称获取算法
func New(name string) (Crypto, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := byName[name]
	if !ok {
		return nil, pkgerr.Wrap(ErrUnknownDriver, name)
	}
	return d.c, nil
}

// Load 按签名类型获取算法
func Load(ty int32) (Crypto, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := byType[ty]
	if !ok {
		return nil, pkgerr.Wrapf(ErrUnknownDriver, "ty %d", ty)
	}
	return d.c, nil
}

// GetName 类型对应的名称, 未注册时为 unknown
func GetName(ty int32) string {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := byType[ty]; ok {
		return d.name
	}
	return "unknown"
}

// GetType 名称对应的类型, 未注册时为 0
func GetType(name string) int32 {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := byName[name]; ok {
		return d.ty
	}
	return 0
}

// Verify 用 ty 对应的算法验证 msg 的签名
func Verify(ty int32, pubkey, msg, sig []byte) error {
	c, err := Load(ty)
	if err != nil {
		return err
	}
	pub, err := c.PubKeyFromBytes(pubkey)
	if err != nil {
		return pkgerr.Wrap(ErrBadSignature, err.Error())
	}
	s, err := c.SignatureFromBytes(sig)
	if err != nil {
		return pkgerr.Wrap(ErrBadSignature, err.Error())
	}
	if !pub.VerifyBytes(msg, s) {
		return ErrBadSignature
	}
	return nil
}
