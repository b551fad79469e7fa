package main

import (
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/simulation"
)

// choosePlacement 简单的贪心策略
// 行：敌人最多的行，没有敌人时选单位最少的行；
// 列：该行最靠近基地的空格；
// 单位：买得起且冷却完毕的攻击单位中攻击力最高的一个。
func choosePlacement(snap simulation.Snapshot, catalog []config.UnitType) (row, col, index int, ok bool) {
	if !snap.Running {
		return 0, 0, 0, false
	}

	index = -1
	for i, unit := range catalog {
		if unit.Attack <= 0 || unit.Cost > snap.Currency {
			continue
		}
		if i < len(snap.Cooldowns) && snap.Cooldowns[i] > 0 {
			continue
		}
		if index < 0 || unit.Attack > catalog[index].Attack {
			index = i
		}
	}
	if index < 0 {
		return 0, 0, 0, false
	}

	enemies := make([]int, snap.Rows)
	for _, e := range snap.Enemies {
		if e.Row >= 0 && e.Row < snap.Rows {
			enemies[e.Row]++
		}
	}
	units := make([]int, snap.Rows)
	occupied := make(map[[2]int]bool, len(snap.Units))
	for _, u := range snap.Units {
		if u.Row >= 0 && u.Row < snap.Rows {
			units[u.Row]++
		}
		occupied[[2]int{u.Row, u.Col}] = true
	}

	bestRow := -1
	for r := 0; r < snap.Rows; r++ {
		if units[r] >= snap.Cols {
			continue
		}
		if bestRow < 0 || enemies[r] > enemies[bestRow] ||
			(enemies[r] == enemies[bestRow] && units[r] < units[bestRow]) {
			bestRow = r
		}
	}
	if bestRow < 0 {
		return 0, 0, 0, false
	}

	for c := 0; c < snap.Cols; c++ {
		if !occupied[[2]int{bestRow, c}] {
			return bestRow, c, index, true
		}
	}
	return 0, 0, 0, false
}
