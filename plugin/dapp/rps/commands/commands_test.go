// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/33cn/rps/common"
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
	"github.com/33cn/rps/util"
)

func TestCmd(t *testing.T) {
	cmd := Cmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"hash", "start", "answer", "game", "find", "count"} {
		assert.True(t, names[name], name)
	}
}

func TestBuildCommitHash(t *testing.T) {
	reply, err := buildCommitHash("", "rock", "s")
	require.Nil(t, err)
	assert.Equal(t, "s", reply.Salt)
	expect, _ := rpstypes.CommitHash("", "rock", "s")
	assert.Equal(t, expect, reply.Hash)

	reply, err = buildCommitHash("", "rock", "")
	require.Nil(t, err)
	assert.NotEmpty(t, reply.Salt)

	_, err = buildCommitHash("", "", "")
	assert.Equal(t, types.ErrInvalidParam, err)
}

func TestBuildTx(t *testing.T) {
	addrA, privA := util.Genaddress()
	addrB, _ := util.Genaddress()
	key := common.ToHex(privA.Bytes())

	tx, commit, err := buildStartPlayTx(key, "", addrB, "paper", "s", "")
	require.Nil(t, err)
	assert.Equal(t, "s", commit.Salt)
	assert.Equal(t, rpstypes.RpsX, tx.Execer)
	assert.Equal(t, addrA, tx.From())
	var action rpstypes.RpsAction
	require.Nil(t, types.Decode(tx.Payload, &action))
	require.NotNil(t, action.StartPlay)
	assert.Equal(t, addrA, action.StartPlay.Player1)
	assert.Equal(t, commit.Hash, action.StartPlay.AnswerHash)

	tx, err = buildAnswerTx(key, "1", "paper", "s")
	require.Nil(t, err)
	action = rpstypes.RpsAction{}
	require.Nil(t, types.Decode(tx.Payload, &action))
	require.NotNil(t, action.Answer)
	assert.Equal(t, addrA, action.Answer.Player)
	assert.Equal(t, "1", action.Answer.GameID)

	_, err = buildAnswerTx("zz", "1", "paper", "s")
	assert.NotNil(t, err)
}

func TestParseTxResult(t *testing.T) {
	reply := &types.ReplyTxResult{
		Hash: "0x01",
		Receipt: &types.ReceiptData{
			Ty:  types.ExecOk,
			Ret: "1",
			Logs: []*types.ReceiptLog{
				{Ty: rpstypes.TyLogStartPlay, Log: types.Encode(&rpstypes.ReceiptStartPlay{GameID: "1", Player1: "A", Player2: "B"})},
				{Ty: rpstypes.TyLogMessage, Log: types.Encode(&rpstypes.ReceiptMessage{Msg: "Successful start play invoke. Game id = 1"})},
				{Ty: 1, Log: []byte(`{}`)},
			},
		},
	}
	res, err := parseTxResult(reply)
	require.Nil(t, err)
	result := res.(*txResult)
	assert.Equal(t, "1", result.Ret)
	assert.Equal(t, []string{"Successful start play invoke. Game id = 1"}, result.Messages)
	require.Len(t, result.Logs, 2)
	assert.Equal(t, "StartPlay", result.Logs[0].Ty)
	assert.Equal(t, "B", result.Logs[0].Log.(*rpstypes.ReceiptStartPlay).Player2)
	assert.Equal(t, "1", result.Logs[1].Ty)

	reply.Receipt.Logs = []*types.ReceiptLog{{Ty: rpstypes.TyLogAnswer, Log: []byte("x")}}
	_, err = parseTxResult(reply)
	assert.NotNil(t, err)
	_, err = parseTxResult(&types.ReplyTxResult{})
	assert.Equal(t, types.ErrDecode, err)
}
