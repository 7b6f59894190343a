// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/rps/common"
	"github.com/33cn/rps/common/crypto"
)

// Committer 计算承诺摘要
type Committer struct {
	hash crypto.HashFunc
}

// NewCommitter hashType 为空时使用 sha256
func NewCommitter(hashType string) (*Committer, error) {
	h, err := crypto.GetHashFunc(hashType)
	if err != nil {
		return nil, ErrHashType
	}
	return &Committer{hash: h}, nil
}

// Commit H(value || salt), 截断到 CommitmentSize
func (c *Committer) Commit(value, salt string) []byte {
	data := make([]byte, 0, len(value)+len(salt))
	data = append(data, value...)
	data = append(data, salt...)
	return Normalize(c.hash(data))
}

// CommitHex hex 格式的承诺摘要
func (c *Committer) CommitHex(value, salt string) string {
	return common.ToHex(c.Commit(value, salt))
}

// Normalize 截断到 CommitmentSize
func Normalize(digest []byte) []byte {
	if len(digest) > CommitmentSize {
		return digest[:CommitmentSize]
	}
	return digest
}

// ParseCommitment 解析提交的hex摘要, 长度不足时返回错误
func ParseCommitment(s string) ([]byte, error) {
	b, err := common.FromHex(s)
	if err != nil || len(b) < CommitmentSize {
		return nil, ErrInvalidCommitment
	}
	return Normalize(b), nil
}

// CommitHash 按 hashType 计算 hex 格式的承诺摘要
func CommitHash(hashType, value, salt string) (string, error) {
	c, err := NewCommitter(hashType)
	if err != nil {
		return "", err
	}
	return c.CommitHex(value, salt), nil
}
