// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/tjfoc/gmsm/sm3"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// hash 算法名称
const (
	HashSha256    = "sha256"
	HashSm3       = "sm3"
	HashKeccak256 = "keccak256"
)

// HashFunc 摘要函数
type HashFunc func([]byte) []byte

var hashes = map[string]HashFunc{
	HashSha256:    Sha256,
	HashSm3:       Sm3Hash,
	HashKeccak256: Keccak256,
}

// GetHashFunc 按名称获取摘要函数, 空名称返回sha256
func GetHashFunc(name string) (HashFunc, error) {
	if name == "" {
		name = HashSha256
	}
	h, ok := hashes[name]
	if !ok {
		return nil, fmt.Errorf("unknown hash %q", name)
	}
	return h, nil
}

// Sha256 加密算法
func Sha256(bytes []byte) []byte {
	hasher := sha256.New()
	hasher.Write(bytes)
	return hasher.Sum(nil)
}

// Ripemd160 加密算法
func Ripemd160(bytes []byte) []byte {
	hasher := ripemd160.New()
	hasher.Write(bytes)
	return hasher.Sum(nil)
}

// Sm3Hash 加密算法
func Sm3Hash(msg []byte) []byte {
	c := sm3.New()
	c.Write(msg)
	return c.Sum(nil)
}

// Keccak256 以太坊风格的keccak摘要
func Keccak256(msg []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(msg)
	return h.Sum(nil)
}
