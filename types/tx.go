// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/rps/common"
	"github.com/33cn/rps/common/address"
	"github.com/33cn/rps/common/crypto"
	// 注册交易签名算法
	_ "github.com/33cn/rps/common/crypto/secp256k1"
)

// Signature 交易签名
type Signature struct {
	Ty        int32  `json:"ty"`
	Pubkey    []byte `json:"pubkey"`
	Signature []byte `json:"signature"`
}

// Transaction 外部调用
type Transaction struct {
	Execer    string          `json:"execer"`
	Payload   json.RawMessage `json:"payload"`
	To        string          `json:"to,omitempty"`
	Nonce     int64           `json:"nonce"`
	Signature *Signature      `json:"signature,omitempty"`
}

// signBytes 签名的数据, 不含签名本身
func (tx *Transaction) signBytes() []byte {
	copytx := *tx
	copytx.Signature = nil
	return Encode(&copytx)
}

// Hash 交易哈希
func (tx *Transaction) Hash() []byte {
	return common.Sha256(tx.signBytes())
}

// Size 交易大小
func (tx *Transaction) Size() int {
	return len(Encode(tx))
}

// Sign 交易签名
func (tx *Transaction) Sign(ty int32, priv crypto.PrivKey) {
	tx.Signature = nil
	data := tx.signBytes()
	pub := priv.PubKey()
	sign := priv.Sign(data)
	tx.Signature = &Signature{
		Ty:        ty,
		Pubkey:    pub.Bytes(),
		Signature: sign.Bytes(),
	}
}

// CheckSign 检查签名是否正确
func (tx *Transaction) CheckSign() bool {
	if tx.Signature == nil {
		return false
	}
	err := crypto.Verify(tx.Signature.Ty, tx.Signature.Pubkey, tx.signBytes(), tx.Signature.Signature)
	if err != nil {
		tlog.Debug("CheckSign", "ty", tx.Signature.Ty, "err", err)
		return false
	}
	return true
}

// From 交易发起地址, 未签名时为空
func (tx *Transaction) From() string {
	if tx.Signature == nil {
		return ""
	}
	return address.PubKeyToAddress(tx.Signature.Pubkey).String()
}
