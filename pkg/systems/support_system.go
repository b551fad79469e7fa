package systems

import (
	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
)

// SupportSystem 维修与治疗
//
// 带有辅助能力的单位每 tick 为切比雪夫距离 1 以内的其他存活单位恢复 supportRate 点生命值，
// 恢复后不超过被治疗单位自身类型的最大生命值。无冷却、无条件执行。
type SupportSystem struct {
	entityManager *ecs.EntityManager
	ruleset       *config.Ruleset
}

// NewSupportSystem 创建辅助系统
func NewSupportSystem(em *ecs.EntityManager, rs *config.Ruleset) *SupportSystem {
	return &SupportSystem{
		entityManager: em,
		ruleset:       rs,
	}
}

// Update 执行一次恢复结算
func (s *SupportSystem) Update() {
	unitIDs := ecs.GetEntitiesWith2[*components.UnitComponent, *components.HealthComponent](s.entityManager)

	for _, supporterID := range unitIDs {
		supporter, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, supporterID)
		supporterHealth, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, supporterID)
		if supporterHealth.IsDead() {
			continue
		}

		supporterType, ok := s.ruleset.UnitByName(supporter.TypeName)
		if !ok || supporterType.Support == config.SupportNone || supporterType.SupportRate <= 0 {
			continue
		}

		for _, otherID := range unitIDs {
			if otherID == supporterID {
				continue
			}
			other, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, otherID)
			if abs(other.GridRow-supporter.GridRow) > 1 || abs(other.GridCol-supporter.GridCol) > 1 {
				continue
			}
			otherHealth, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, otherID)
			if otherHealth.IsDead() {
				continue
			}

			otherType, ok := s.ruleset.UnitByName(other.TypeName)
			if !ok {
				continue
			}
			otherHealth.Current = min(otherHealth.Current+supporterType.SupportRate, otherType.HP)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
