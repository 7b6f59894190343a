// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import "strconv"

const (
	gameIDKey  = "new_game_id"
	gamePrefix = "game."
)

// game 记录中的字段
const (
	fieldWinner = "winner"
)

func calcPairKey(a, b string) []byte {
	return []byte(a + "." + b)
}

func calcGameKey(id int64, field string) []byte {
	return []byte(gamePrefix + formatGameID(id) + "." + field)
}

func playerField(slot int) string {
	return "player" + strconv.Itoa(slot)
}

func answerHashField(slot int) string {
	return "answer_hash" + strconv.Itoa(slot)
}

func answerField(slot int) string {
	return "answer" + strconv.Itoa(slot)
}
