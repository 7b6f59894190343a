// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands rps 命令行
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
	"github.com/33cn/rps/util"
)

// Cmd rps 命令
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rps",
		Short: "Rock paper scissors game",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		HashCmd(),
		StartPlayCmd(),
		AnswerCmd(),
		GameCmd(),
		FindCmd(),
		CountCmd(),
	)
	return cmd
}

// HashCmd 本地计算承诺摘要
func HashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Compute the commitment of a move",
		Run:   commitHash,
	}
	cmd.Flags().StringP("value", "v", "", "move: rock, paper or scissors")
	cmd.MarkFlagRequired("value")
	cmd.Flags().StringP("salt", "s", "", "salt, random if empty")
	cmd.Flags().StringP("hash_type", "t", "", "hash type, default sha256")
	return cmd
}

func commitHash(cmd *cobra.Command, args []string) {
	value, _ := cmd.Flags().GetString("value")
	salt, _ := cmd.Flags().GetString("salt")
	hashType, _ := cmd.Flags().GetString("hash_type")
	reply, err := buildCommitHash(hashType, value, salt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	printJSON(reply)
}

func buildCommitHash(hashType, value, salt string) (*rpstypes.ReplyCommitHash, error) {
	if value == "" {
		return nil, types.ErrInvalidParam
	}
	if salt == "" {
		salt = uuid.New().String()
	}
	hash, err := rpstypes.CommitHash(hashType, value, salt)
	if err != nil {
		return nil, err
	}
	return &rpstypes.ReplyCommitHash{Hash: hash, Salt: salt}, nil
}

// StartPlayCmd 开始游戏或者提交第二个承诺
func StartPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a game with a committed move",
		Run:   startPlay,
	}
	addKeyFlag(cmd)
	cmd.Flags().StringP("player1", "a", "", "first player, default the signer")
	cmd.Flags().StringP("player2", "b", "", "second player")
	cmd.MarkFlagRequired("player2")
	cmd.Flags().StringP("value", "v", "", "move: rock, paper or scissors")
	cmd.MarkFlagRequired("value")
	cmd.Flags().StringP("salt", "s", "", "salt, random if empty")
	cmd.Flags().StringP("hash_type", "t", "", "hash type, default sha256")
	return cmd
}

func startPlay(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	key, _ := cmd.Flags().GetString("key")
	player1, _ := cmd.Flags().GetString("player1")
	player2, _ := cmd.Flags().GetString("player2")
	value, _ := cmd.Flags().GetString("value")
	salt, _ := cmd.Flags().GetString("salt")
	hashType, _ := cmd.Flags().GetString("hash_type")

	tx, commit, err := buildStartPlayTx(key, player1, player2, value, salt, hashType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	// 盐值只打印一次, 揭示时需要
	fmt.Fprintln(os.Stderr, "salt:", commit.Salt)
	sendTx(rpcLaddr, tx)
}

func buildStartPlayTx(key, player1, player2, value, salt, hashType string) (*types.Transaction, *rpstypes.ReplyCommitHash, error) {
	priv, err := util.HexToPrivkey(key)
	if err != nil {
		return nil, nil, err
	}
	if player1 == "" {
		player1 = util.PrivkeyToAddress(priv)
	}
	commit, err := buildCommitHash(hashType, value, salt)
	if err != nil {
		return nil, nil, err
	}
	tx, err := rpstypes.CreateStartPlayTx(&rpstypes.StartPlay{
		Player1:    player1,
		Player2:    player2,
		AnswerHash: commit.Hash,
	})
	if err != nil {
		return nil, nil, err
	}
	return util.SignTx(tx, priv), commit, nil
}

// AnswerCmd 揭示出手
func AnswerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Reveal a committed move",
		Run:   answer,
	}
	addKeyFlag(cmd)
	cmd.Flags().StringP("game_id", "g", "", "game id")
	cmd.MarkFlagRequired("game_id")
	cmd.Flags().StringP("value", "v", "", "move: rock, paper or scissors")
	cmd.MarkFlagRequired("value")
	cmd.Flags().StringP("salt", "s", "", "salt used in the commitment")
	cmd.MarkFlagRequired("salt")
	return cmd
}

func answer(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	key, _ := cmd.Flags().GetString("key")
	gameID, _ := cmd.Flags().GetString("game_id")
	value, _ := cmd.Flags().GetString("value")
	salt, _ := cmd.Flags().GetString("salt")

	tx, err := buildAnswerTx(key, gameID, value, salt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(rpcLaddr, tx)
}

func buildAnswerTx(key, gameID, value, salt string) (*types.Transaction, error) {
	priv, err := util.HexToPrivkey(key)
	if err != nil {
		return nil, err
	}
	tx, err := rpstypes.CreateAnswerTx(&rpstypes.Answer{
		Player: util.PrivkeyToAddress(priv),
		GameID: gameID,
		Value:  value,
		Salt:   salt,
	})
	if err != nil {
		return nil, err
	}
	return util.SignTx(tx, priv), nil
}

// GameCmd 查询游戏
func GameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Show a game",
		Run:   showGame,
	}
	cmd.Flags().StringP("game_id", "g", "", "game id")
	cmd.MarkFlagRequired("game_id")
	return cmd
}

func showGame(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	gameID, _ := cmd.Flags().GetString("game_id")
	var res rpstypes.ReplyGame
	query(rpcLaddr, rpstypes.FuncNameGetGame, &rpstypes.QueryGameInfo{GameID: gameID}, &res)
}

// FindCmd 查询两个玩家之间未结束的游戏
func FindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the open game of two players",
		Run:   findGame,
	}
	cmd.Flags().StringP("player1", "a", "", "first player")
	cmd.MarkFlagRequired("player1")
	cmd.Flags().StringP("player2", "b", "", "second player")
	cmd.MarkFlagRequired("player2")
	return cmd
}

func findGame(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	player1, _ := cmd.Flags().GetString("player1")
	player2, _ := cmd.Flags().GetString("player2")
	var res rpstypes.ReplyFindGame
	query(rpcLaddr, rpstypes.FuncNameFindGame, &rpstypes.QueryFindGame{Player1: player1, Player2: player2}, &res)
}

// CountCmd 已创建的游戏数量
func CountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show the number of games",
		Run:   gameCount,
	}
}

func gameCount(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res rpstypes.ReplyGameCount
	query(rpcLaddr, rpstypes.FuncNameGetGameCount, nil, &res)
}

func addKeyFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "private key of the signer, hex")
	cmd.MarkFlagRequired("key")
}

func sendTx(rpcLaddr string, tx *types.Transaction) {
	var res types.ReplyTxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.SendTransaction", tx, &res)
	ctx.SetResultCb(parseTxResult)
	ctx.Run()
}

// txResult 命令行输出的交易结果, 日志按类型解码
type txResult struct {
	Hash     string      `json:"hash"`
	Ret      string      `json:"ret"`
	Messages []string    `json:"messages,omitempty"`
	Logs     []*txLogOut `json:"logs,omitempty"`
}

type txLogOut struct {
	Ty  string      `json:"ty"`
	Log interface{} `json:"log"`
}

func parseTxResult(res interface{}) (interface{}, error) {
	reply, ok := res.(*types.ReplyTxResult)
	if !ok || reply.Receipt == nil {
		return nil, types.ErrDecode
	}
	result := &txResult{Hash: reply.Hash, Ret: reply.Receipt.Ret}
	for _, l := range reply.Receipt.Logs {
		var (
			name string
			v    interface{}
		)
		switch l.Ty {
		case rpstypes.TyLogMessage:
			var m rpstypes.ReceiptMessage
			if err := types.Decode(l.Log, &m); err != nil {
				return nil, err
			}
			result.Messages = append(result.Messages, m.Msg)
			continue
		case rpstypes.TyLogStartPlay:
			name, v = "StartPlay", &rpstypes.ReceiptStartPlay{}
		case rpstypes.TyLogCommit:
			name, v = "Commit", &rpstypes.ReceiptCommit{}
		case rpstypes.TyLogAnswer:
			name, v = "Answer", &rpstypes.ReceiptAnswer{}
		case rpstypes.TyLogWinner:
			name, v = "Winner", &rpstypes.ReceiptWinner{}
		default:
			result.Logs = append(result.Logs, &txLogOut{Ty: fmt.Sprint(l.Ty), Log: l.Log})
			continue
		}
		if err := types.Decode(l.Log, v); err != nil {
			return nil, err
		}
		result.Logs = append(result.Logs, &txLogOut{Ty: name, Log: v})
	}
	return result, nil
}

func query(rpcLaddr, funcName string, params, res interface{}) {
	in := &types.Query{Execer: rpstypes.RpsX, FuncName: funcName}
	if params != nil {
		in.Payload = types.Encode(params)
	}
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.Query", in, res)
	ctx.Run()
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}
