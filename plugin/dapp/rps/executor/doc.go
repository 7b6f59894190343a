// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
石头剪刀布, 先承诺后揭示:

StartPlay: 玩家1 提交 H(出拳||盐值), 对手为玩家2, 分配新的游戏id并建立双向的配对索引.
	同一对玩家再次调用 StartPlay 时视为玩家2 提交承诺, 每个承诺只能写入一次.

Answer: 玩家提交出拳和盐值, 与自己的承诺对比:
	一致则记录出拳(rock=1, scissors=2, paper=3, 其他字符串为 -1),
	不一致记录为 -1, 即放弃原来的出拳.
	每一方只能揭示一次, 之后的调用返回已记录的值.

结算: 双方都揭示后计算结果, 写入 winner(玩家地址或 draw), 删除配对索引.
	一方无效另一方获胜, 双方无效为平局, 否则 (3 + m2 - m1) % 3: 0 平局, 1 玩家1胜, 2 玩家2胜.

状态数据库:
	new_game_id                  已分配的最大id
	<a>.<b>                      配对索引, 两个方向各一条
	game.<id>.player1|player2    玩家
	game.<id>.answer_hash1|2     承诺
	game.<id>.answer1|2          出拳
	game.<id>.winner             结果

不支持超时, 只承诺不揭示的游戏会一直停留在未结算状态.
揭示不等待对手的承诺: 玩家2 提交承诺之前玩家1 就可以揭示, 此时出拳已经公开,
玩家2 可以据此选择出拳. 玩家应在对手提交承诺之后再揭示.
*/
