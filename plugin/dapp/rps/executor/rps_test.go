// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/33cn/rps/common/crypto"
	dbm "github.com/33cn/rps/common/db"
	execs "github.com/33cn/rps/executor"
	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/types"
	"github.com/33cn/rps/util"
)

func init() {
	Init(rpstypes.RpsX, nil)
}

type account struct {
	addr string
	priv crypto.PrivKey
}

func newAccount() *account {
	addr, priv := util.Genaddress()
	return &account{addr: addr, priv: priv}
}

type testEnv struct {
	t    *testing.T
	dir  string
	db   dbm.DB
	exec *execs.Executor
}

func newTestEnv(t *testing.T) *testEnv {
	dir, db := util.CreateTestDB()
	return &testEnv{t: t, dir: dir, db: db, exec: execs.New(&types.Exec{}, nil, db)}
}

func (env *testEnv) close() {
	util.CloseTestDB(env.dir, env.db)
}

func commit(t *testing.T, value, salt string) string {
	h, err := rpstypes.CommitHash("", value, salt)
	require.Nil(t, err)
	return h
}

func (env *testEnv) startPlay(signer *account, player1, player2, hash string) (*types.Receipt, error) {
	tx, err := rpstypes.CreateStartPlayTx(&rpstypes.StartPlay{Player1: player1, Player2: player2, AnswerHash: hash})
	require.Nil(env.t, err)
	return env.exec.Exec(util.SignTx(tx, signer.priv))
}

func (env *testEnv) answer(signer *account, player, gameID, value, salt string) (*types.Receipt, error) {
	tx, err := rpstypes.CreateAnswerTx(&rpstypes.Answer{Player: player, GameID: gameID, Value: value, Salt: salt})
	require.Nil(env.t, err)
	return env.exec.Exec(util.SignTx(tx, signer.priv))
}

// mustStart 自己作为玩家1 提交
func (env *testEnv) mustStart(signer *account, opponent *account, value, salt string) *types.Receipt {
	receipt, err := env.startPlay(signer, signer.addr, opponent.addr, commit(env.t, value, salt))
	require.Nil(env.t, err)
	return receipt
}

func (env *testEnv) mustAnswer(signer *account, gameID, value, salt string) *types.Receipt {
	receipt, err := env.answer(signer, signer.addr, gameID, value, salt)
	require.Nil(env.t, err)
	return receipt
}

func (env *testEnv) query(funcName string, in interface{}) interface{} {
	reply, err := env.exec.Query(rpstypes.RpsX, funcName, types.Encode(in))
	require.Nil(env.t, err)
	return reply
}

func (env *testEnv) getGame(gameID string) *rpstypes.ReplyGame {
	return env.query(rpstypes.FuncNameGetGame, &rpstypes.QueryGameInfo{GameID: gameID}).(*rpstypes.ReplyGame)
}

func (env *testEnv) findGame(a, b *account) *rpstypes.ReplyFindGame {
	return env.query(rpstypes.FuncNameFindGame, &rpstypes.QueryFindGame{Player1: a.addr, Player2: b.addr}).(*rpstypes.ReplyFindGame)
}

func (env *testEnv) gameCount() int64 {
	return env.query(rpstypes.FuncNameGetGameCount, &types.ReqNil{}).(*rpstypes.ReplyGameCount).Count
}

func (env *testEnv) rawGet(key string) string {
	v, err := env.db.Get([]byte(key))
	if err == dbm.ErrNotFoundInDb {
		return ""
	}
	require.Nil(env.t, err)
	return string(v)
}

func messages(t *testing.T, receipt *types.Receipt) []string {
	var msgs []string
	for _, l := range receipt.Logs {
		if l.Ty != rpstypes.TyLogMessage {
			continue
		}
		var m rpstypes.ReceiptMessage
		require.Nil(t, json.Unmarshal(l.Log, &m))
		msgs = append(msgs, m.Msg)
	}
	return msgs
}

func TestEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	receipt := env.mustStart(a, b, "rock", "s1")
	assert.Equal(t, "1", receipt.Ret)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	assert.Equal(t, []string{"Successful start play invoke. Game id = 1"}, messages(t, receipt))
	assert.Equal(t, a.addr, env.rawGet("game.1.player1"))
	assert.Equal(t, b.addr, env.rawGet("game.1.player2"))
	assert.Equal(t, "1", env.rawGet(a.addr+"."+b.addr))
	assert.Equal(t, "1", env.rawGet(b.addr+"."+a.addr))
	assert.Equal(t, "1", env.rawGet("new_game_id"))

	receipt = env.mustStart(b, a, "paper", "s2")
	assert.Equal(t, "1", receipt.Ret)
	game := env.getGame("1")
	assert.Equal(t, commit(t, "paper", "s2"), game.AnswerHash2)
	assert.Equal(t, commit(t, "rock", "s1"), game.AnswerHash1)

	receipt = env.mustAnswer(a, "1", "rock", "s1")
	assert.Equal(t, "1", receipt.Ret)
	game = env.getGame("1")
	require.NotNil(t, game.Answer1)
	assert.Equal(t, rpstypes.MoveRock, *game.Answer1)
	assert.Nil(t, game.Answer2)
	assert.False(t, game.Resolved)
	assert.True(t, env.findGame(a, b).Found)

	receipt = env.mustAnswer(b, "1", "paper", "s2")
	assert.Equal(t, "3", receipt.Ret)
	game = env.getGame("1")
	assert.True(t, game.Resolved)
	assert.False(t, game.Draw)
	assert.Equal(t, b.addr, game.Winner)
	assert.Equal(t, b.addr, env.rawGet("game.1.winner"))
	assert.Equal(t, "3", env.rawGet("game.1.answer2"))

	assert.False(t, env.findGame(a, b).Found)
	assert.False(t, env.findGame(b, a).Found)
	assert.Equal(t, "", env.rawGet(a.addr+"."+b.addr))
	assert.Equal(t, int64(1), env.gameCount())

	// 结算后同一对玩家开始新的游戏
	receipt = env.mustStart(b, a, "scissors", "s3")
	assert.Equal(t, "2", receipt.Ret)
	assert.Equal(t, b.addr, env.getGame("2").Player1)
}

func TestIdempotentCommit(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	env.mustStart(a, b, "rock", "s1")
	receipt := env.mustStart(b, a, "paper", "s2")
	assert.Equal(t, "1", receipt.Ret)
	assert.NotEmpty(t, receipt.KV)

	receipt = env.mustStart(b, a, "scissors", "s3")
	assert.Equal(t, "1", receipt.Ret)
	assert.Empty(t, receipt.KV)
	assert.Equal(t, commit(t, "paper", "s2"), env.getGame("1").AnswerHash2)

	// 玩家1 重复提交也不会修改
	receipt = env.mustStart(a, b, "paper", "s4")
	assert.Equal(t, "1", receipt.Ret)
	assert.Empty(t, receipt.KV)
	assert.Equal(t, commit(t, "rock", "s1"), env.getGame("1").AnswerHash1)
	assert.Equal(t, int64(1), env.gameCount())
}

func TestIdempotentReveal(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	env.mustStart(a, b, "rock", "s1")
	env.mustStart(b, a, "paper", "s2")
	assert.Equal(t, "1", env.mustAnswer(a, "1", "rock", "s1").Ret)

	receipt := env.mustAnswer(a, "1", "paper", "other")
	assert.Equal(t, "1", receipt.Ret)
	assert.Empty(t, receipt.KV)
	receipt = env.mustAnswer(a, "1", "rock", "s1")
	assert.Equal(t, "1", receipt.Ret)
	assert.Empty(t, receipt.KV)
}

func TestCommitmentBinding(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b, c := newAccount(), newAccount(), newAccount()

	env.mustStart(a, b, "rock", "s")
	assert.Equal(t, "-1", env.mustAnswer(a, "1", "rock", "x").Ret)

	env.mustStart(a, c, "rock", "s")
	assert.Equal(t, "1", env.mustAnswer(a, "2", "rock", "s").Ret)

	// 承诺一致但不是合法的出拳
	env.mustStart(b, c, "lizard", "s")
	assert.Equal(t, "-1", env.mustAnswer(b, "3", "lizard", "s").Ret)
}

func TestForfeitAndDraw(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b, c := newAccount(), newAccount(), newAccount()

	env.mustStart(a, b, "rock", "s1")
	env.mustStart(b, a, "scissors", "s2")
	assert.Equal(t, "-1", env.mustAnswer(a, "1", "rock", "bad").Ret)
	assert.Equal(t, "2", env.mustAnswer(b, "1", "scissors", "s2").Ret)
	assert.Equal(t, b.addr, env.getGame("1").Winner)

	env.mustStart(a, c, "paper", "s1")
	env.mustStart(c, a, "paper", "s2")
	assert.Equal(t, "-1", env.mustAnswer(c, "2", "paper", "bad").Ret)
	assert.Equal(t, "-1", env.mustAnswer(a, "2", "paper", "bad").Ret)
	game := env.getGame("2")
	assert.True(t, game.Draw)
	assert.Equal(t, rpstypes.DrawMarker, game.Winner)

	env.mustStart(b, c, "paper", "s1")
	env.mustStart(c, b, "paper", "s2")
	env.mustAnswer(b, "3", "paper", "s1")
	receipt := env.mustAnswer(c, "3", "paper", "s2")
	assert.Equal(t, "3", receipt.Ret)
	assert.Equal(t, rpstypes.DrawMarker, env.getGame("3").Winner)
	assert.False(t, env.findGame(b, c).Found)
}

func TestAnswerNotApplicable(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b, c := newAccount(), newAccount(), newAccount()

	env.mustStart(a, b, "rock", "s1")
	// b 还没有提交承诺
	receipt := env.mustAnswer(b, "1", "paper", "s2")
	assert.Equal(t, "0", receipt.Ret)
	assert.Empty(t, receipt.KV)
	assert.Equal(t, []string{rpstypes.MsgAnswerNotApplied}, messages(t, receipt))

	// 不是这局的玩家
	assert.Equal(t, "0", env.mustAnswer(c, "1", "rock", "s1").Ret)
	// 游戏不存在
	assert.Equal(t, "0", env.mustAnswer(a, "9", "rock", "s1").Ret)
}

// 对手提交承诺之前就可以揭示, 揭示的出拳对对手可见
func TestRevealBeforeOpponentCommit(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	env.mustStart(a, b, "rock", "s1")
	receipt := env.mustAnswer(a, "1", "rock", "s1")
	assert.Equal(t, "1", receipt.Ret)
	game := env.getGame("1")
	require.NotNil(t, game.Answer1)
	assert.Equal(t, rpstypes.MoveRock, *game.Answer1)
	assert.Equal(t, "", game.AnswerHash2)
	assert.False(t, game.Resolved)
	assert.Equal(t, "1", env.rawGet("game.1.answer1"))

	// b 看到 rock 之后再提交 paper
	env.mustStart(b, a, "paper", "s2")
	assert.Equal(t, "3", env.mustAnswer(b, "1", "paper", "s2").Ret)
	game = env.getGame("1")
	assert.True(t, game.Resolved)
	assert.Equal(t, b.addr, game.Winner)
}

func TestUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	receipt, err := env.startPlay(b, a.addr, b.addr, commit(t, "rock", "s"))
	require.Nil(t, err)
	assert.Equal(t, "0", receipt.Ret)
	assert.Equal(t, int32(types.ExecPack), receipt.Ty)
	assert.Empty(t, receipt.KV)
	assert.Equal(t, []string{rpstypes.MsgNotAuthorized, rpstypes.MsgStartPlayFail}, messages(t, receipt))
	assert.Equal(t, int64(0), env.gameCount())
	assert.Equal(t, "", env.rawGet("new_game_id"))
	assert.False(t, env.findGame(a, b).Found)

	env.mustStart(a, b, "rock", "s")
	receipt, err = env.answer(b, a.addr, "1", "rock", "s")
	require.Nil(t, err)
	assert.Equal(t, "0", receipt.Ret)
	assert.Empty(t, receipt.KV)
	assert.Equal(t, []string{rpstypes.MsgNotAuthorized}, messages(t, receipt))
	assert.Nil(t, env.getGame("1").Answer1)
}

func TestUnsignedIsUnauthorized(t *testing.T) {
	dir, db := util.CreateTestDB()
	defer util.CloseTestDB(dir, db)
	exec := execs.New(&types.Exec{AllowUnsigned: true}, nil, db)
	a, b := newAccount(), newAccount()

	tx, err := rpstypes.CreateStartPlayTx(&rpstypes.StartPlay{Player1: a.addr, Player2: b.addr, AnswerHash: commit(t, "rock", "s")})
	require.Nil(t, err)
	receipt, err := exec.Exec(tx)
	require.Nil(t, err)
	assert.Equal(t, "0", receipt.Ret)
	assert.Empty(t, receipt.KV)
}

func TestUnknownOperation(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a := newAccount()

	for _, payload := range []string{`{"operation":"Cancel"}`, `{}`} {
		tx, err := rpstypes.CreateAnswerTx(&rpstypes.Answer{})
		require.Nil(t, err)
		tx.Payload = json.RawMessage(payload)
		receipt, err := env.exec.Exec(util.SignTx(tx, a.priv))
		require.Nil(t, err)
		assert.Equal(t, int32(types.ExecPack), receipt.Ty)
		assert.Equal(t, "", receipt.Ret)
		assert.Empty(t, receipt.KV)
		assert.Equal(t, []string{rpstypes.MsgNotImplemented}, messages(t, receipt))
	}
}

func TestInvalidParams(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()
	hash := commit(t, "rock", "s")

	_, err := env.startPlay(a, a.addr, a.addr, hash)
	assert.Equal(t, rpstypes.ErrSelfPlay, err)
	_, err = env.startPlay(a, a.addr, "notanaddress", hash)
	assert.Equal(t, rpstypes.ErrInvalidPlayer, err)
	_, err = env.startPlay(a, a.addr, b.addr, hash[:40])
	assert.Equal(t, rpstypes.ErrInvalidCommitment, err)
	_, err = env.startPlay(a, a.addr, b.addr, "")
	assert.Equal(t, rpstypes.ErrInvalidCommitment, err)
	assert.Equal(t, int64(0), env.gameCount())

	env.mustStart(a, b, "rock", "s")
	for _, id := range []string{"01", "0", "-1", "+1", "x", ""} {
		_, err = env.answer(a, a.addr, id, "rock", "s")
		assert.Equal(t, rpstypes.ErrInvalidGameID, err, id)
	}

	tx, err := rpstypes.CreateStartPlayTx(&rpstypes.StartPlay{})
	require.Nil(t, err)
	tx.Payload = types.Encode(&rpstypes.RpsAction{Operation: rpstypes.ActionStartPlay})
	_, err = env.exec.Exec(util.SignTx(tx, a.priv))
	assert.Equal(t, types.ErrInvalidParam, err)
}

func TestCommitmentTruncated(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	receipt, err := env.startPlay(a, a.addr, b.addr, commit(t, "paper", "s")+"abcdef")
	require.Nil(t, err)
	assert.Equal(t, "1", receipt.Ret)
	assert.Equal(t, commit(t, "paper", "s"), env.getGame("1").AnswerHash1)
	assert.Equal(t, "3", env.mustAnswer(a, "1", "paper", "s").Ret)
}

func TestHashType(t *testing.T) {
	old := committer
	defer func() { committer = old }()
	c, err := rpstypes.NewCommitter(crypto.HashSm3)
	require.Nil(t, err)
	committer = c

	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	_, err = env.startPlay(a, a.addr, b.addr, c.CommitHex("rock", "s"))
	require.Nil(t, err)
	// sha256 的承诺在 sm3 下不匹配
	_, err = env.startPlay(b, b.addr, a.addr, commit(t, "rock", "s"))
	require.Nil(t, err)
	assert.Equal(t, "1", env.mustAnswer(a, "1", "rock", "s").Ret)
	assert.Equal(t, "-1", env.mustAnswer(b, "1", "rock", "s").Ret)
	assert.Equal(t, a.addr, env.getGame("1").Winner)
}

func TestQuery(t *testing.T) {
	env := newTestEnv(t)
	defer env.close()
	a, b := newAccount(), newAccount()

	_, err := env.exec.Query(rpstypes.RpsX, rpstypes.FuncNameGetGame, types.Encode(&rpstypes.QueryGameInfo{GameID: "1"}))
	assert.Equal(t, rpstypes.ErrGameNotFound, err)
	_, err = env.exec.Query(rpstypes.RpsX, rpstypes.FuncNameFindGame, types.Encode(&rpstypes.QueryFindGame{}))
	assert.Equal(t, types.ErrInvalidParam, err)
	_, err = env.exec.Query(rpstypes.RpsX, "GetAll", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)

	env.mustStart(a, b, "rock", "s")
	reply := env.findGame(b, a)
	assert.True(t, reply.Found)
	assert.Equal(t, "1", reply.GameID)
	count, err := env.exec.Query(rpstypes.RpsX, rpstypes.FuncNameGetGameCount, nil)
	require.Nil(t, err)
	assert.Equal(t, int64(1), count.(*rpstypes.ReplyGameCount).Count)
}
