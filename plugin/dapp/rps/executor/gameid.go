// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	rpstypes "github.com/33cn/rps/plugin/dapp/rps/types"
)

func formatGameID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseGameID 只接受规范的十进制正整数, "01" "+1" 都不合法
func parseGameID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 || formatGameID(id) != s {
		return 0, rpstypes.ErrInvalidGameID
	}
	return id, nil
}

// gameCount 计数器不存在时为 0
func (g *gameDB) gameCount() (int64, error) {
	v, ok, err := g.get([]byte(gameIDKey))
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil || n < 0 {
		rlog.Error("gameCount", "value", string(v), "err", err)
		return 0, rpstypes.ErrStoredValue
	}
	return n, nil
}

// newGameID 计数器加一并写回, 第一个id为 1
func (g *gameDB) newGameID() (int64, error) {
	n, err := g.gameCount()
	if err != nil {
		return 0, err
	}
	n++
	if err := g.kv.Set([]byte(gameIDKey), []byte(formatGameID(n))); err != nil {
		return 0, err
	}
	return n, nil
}
