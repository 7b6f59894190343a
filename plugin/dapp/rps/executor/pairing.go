// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

// findGame a 与 b 之间未结算的游戏
func (g *gameDB) findGame(a, b string) (int64, bool, error) {
	v, ok, err := g.get(calcPairKey(a, b))
	if err != nil || !ok {
		return 0, false, err
	}
	id, err := parseGameID(string(v))
	if err != nil {
		rlog.Error("findGame", "a", a, "b", b, "value", string(v))
		return 0, false, err
	}
	return id, true, nil
}

func (g *gameDB) link(a, b string, id int64) error {
	value := []byte(formatGameID(id))
	if err := g.kv.Set(calcPairKey(a, b), value); err != nil {
		return err
	}
	return g.kv.Set(calcPairKey(b, a), value)
}

// unlink 删除两个方向的索引, 不存在时也不报错
func (g *gameDB) unlink(a, b string) error {
	for _, key := range [][]byte{calcPairKey(a, b), calcPairKey(b, a)} {
		_, ok, err := g.get(key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := g.kv.Set(key, nil); err != nil {
			return err
		}
	}
	return nil
}
