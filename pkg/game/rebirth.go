package game

import (
	"fmt"

	"github.com/decker502/dragonguard/pkg/config"
)

// RebirthPolicy 转生条件与背包保留策略
// 两个规则集只在这里有所不同：按捕获数量或按波次判断
type RebirthPolicy struct {
	Requirement   config.RebirthRequirementKind
	Threshold     int
	KeepInventory bool
}

// NewRebirthPolicy 从规则集构造转生策略
func NewRebirthPolicy(rules config.RebirthRules) RebirthPolicy {
	return RebirthPolicy{
		Requirement:   rules.Requirement,
		Threshold:     rules.Threshold,
		KeepInventory: rules.KeepInventory,
	}
}

// Eligible 判断当前状态是否满足转生条件
func (p RebirthPolicy) Eligible(gs *GameState) bool {
	switch p.Requirement {
	case config.RebirthByWave:
		return gs.Wave >= p.Threshold
	default:
		return gs.Inventory.Total() >= p.Threshold
	}
}

// RequirementText 面向玩家的条件说明
func (p RebirthPolicy) RequirementText() string {
	switch p.Requirement {
	case config.RebirthByWave:
		return fmt.Sprintf("You need to reach wave %d to rebirth!", p.Threshold)
	default:
		return fmt.Sprintf("You need at least %d good dragons in your inventory to rebirth!", p.Threshold)
	}
}

// Check 校验转生条件，不满足时返回 *RebirthError
func (p RebirthPolicy) Check(gs *GameState) error {
	if !p.Eligible(gs) {
		return &RebirthError{Kind: ErrRequirementNotMet, Requirement: p.RequirementText()}
	}
	return nil
}

// ClearsInventory 判断一次重置是否应清空背包
// 普通重置总是清空；转生时由策略决定
func (p RebirthPolicy) ClearsInventory(isRebirth bool) bool {
	return !isRebirth || !p.KeepInventory
}

// RebirthMessage 转生成功提示
func RebirthMessage(bonusPercent int) string {
	return fmt.Sprintf("Rebirth successful! Permanent +%d%% coin bonus.", bonusPercent)
}
