// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/33cn/rps/common"
	clog "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/pluginmgr"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
	"github.com/33cn/rps/util"
)

var rootCmd = &cobra.Command{
	Use:   "rps-cli",
	Short: "rps client tools",
}

// VersionCmd 查询节点版本
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get node version",
		Run: func(cmd *cobra.Command, args []string) {
			rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
			var res types.VersionInfo
			ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.GetVersion", &types.ReqNil{}, &res)
			ctx.Run()
		},
	}
}

// AccountCmd 账户相关命令
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(genKeyCmd(), addrCmd())
	return cmd
}

type keyPair struct {
	Key     string `json:"key"`
	Address string `json:"address"`
}

func genKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genkey",
		Short: "Generate a secp256k1 private key and its address",
		Run: func(cmd *cobra.Command, args []string) {
			addr, priv := util.Genaddress()
			printJSON(&keyPair{Key: common.ToHex(priv.Bytes()), Address: addr})
		},
	}
}

func addrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Show the address of a private key",
		Run: func(cmd *cobra.Command, args []string) {
			key, _ := cmd.Flags().GetString("key")
			priv, err := util.HexToPrivkey(key)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			printJSON(&keyPair{Address: util.PrivkeyToAddress(priv)})
		},
	}
	cmd.Flags().StringP("key", "k", "", "private key, hex")
	cmd.MarkFlagRequired("key")
	return cmd
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

func init() {
	rootCmd.AddCommand(
		AccountCmd(),
		VersionCmd(),
	)
}

// Run :
func Run(RPCAddr string) {
	pluginmgr.AddCmd(rootCmd)
	clog.SetLogLevel("error")
	rootCmd.PersistentFlags().String("rpc_laddr", RPCAddr, "http url")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
