// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/33cn/rps/common/crypto"
	"github.com/33cn/rps/common/crypto/secp256k1"
	"github.com/stretchr/testify/require"
)

func TestSecp256k1(t *testing.T) {
	require := require.New(t)

	c, err := crypto.New(secp256k1.Name)
	require.Nil(err)

	priv, err := c.GenKey()
	require.Nil(err)

	priv2, err := c.PrivKeyFromBytes(priv.Bytes())
	require.Nil(err)
	require.True(priv.Equals(priv2))

	pub := priv.PubKey()
	pub2, err := c.PubKeyFromBytes(pub.Bytes())
	require.Nil(err)
	require.True(pub.Equals(pub2))

	msg := []byte("hello world")
	sign1 := priv.Sign(msg)
	sign2, err := c.SignatureFromBytes(sign1.Bytes())
	require.Nil(err)
	require.True(sign2.Equals(sign1))
	require.True(pub.VerifyBytes(msg, sign1))
	require.True(pub2.VerifyBytes(msg, sign2))
	require.False(pub.VerifyBytes([]byte("hello world!"), sign1))

	other, err := c.GenKey()
	require.Nil(err)
	require.False(other.PubKey().VerifyBytes(msg, sign1))
}

func TestUnknownDriver(t *testing.T) {
	_, err := crypto.New("none")
	require.True(t, errors.Is(err, crypto.ErrUnknownDriver))
	_, err = crypto.Load(99)
	require.True(t, errors.Is(err, crypto.ErrUnknownDriver))
	require.Equal(t, secp256k1.Name, crypto.GetName(secp256k1.ID))
	require.Equal(t, int32(secp256k1.ID), crypto.GetType(secp256k1.Name))
	require.Equal(t, "unknown", crypto.GetName(99))
	require.Equal(t, int32(0), crypto.GetType("none"))

	c, err := crypto.Load(secp256k1.ID)
	require.Nil(t, err)
	_, err = c.GenKey()
	require.Nil(t, err)

	require.Panics(t, func() { crypto.Register(secp256k1.Name, 100, secp256k1.Driver{}) })
	require.Panics(t, func() { crypto.Register("other", secp256k1.ID, secp256k1.Driver{}) })
	require.Panics(t, func() { crypto.Register("nil", 101, nil) })
}

func TestVerify(t *testing.T) {
	c, err := crypto.New(secp256k1.Name)
	require.Nil(t, err)
	priv, err := c.GenKey()
	require.Nil(t, err)
	msg := []byte("rock")
	sig := priv.Sign(msg).Bytes()
	pub := priv.PubKey().Bytes()

	require.Nil(t, crypto.Verify(secp256k1.ID, pub, msg, sig))
	require.Equal(t, crypto.ErrBadSignature, crypto.Verify(secp256k1.ID, pub, []byte("paper"), sig))
	require.True(t, errors.Is(crypto.Verify(secp256k1.ID, pub[:10], msg, sig), crypto.ErrBadSignature))
	require.True(t, errors.Is(crypto.Verify(99, pub, msg, sig), crypto.ErrUnknownDriver))
}

func TestHashFunc(t *testing.T) {
	h, err := crypto.GetHashFunc("")
	require.Nil(t, err)
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(h(nil)))

	h, err = crypto.GetHashFunc(crypto.HashKeccak256)
	require.Nil(t, err)
	require.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(h(nil)))

	h, err = crypto.GetHashFunc(crypto.HashSm3)
	require.Nil(t, err)
	require.Len(t, h([]byte("abc")), 32)

	_, err = crypto.GetHashFunc("md5")
	require.NotNil(t, err)
}
