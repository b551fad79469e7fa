package entities

import (
	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/game"
)

// NewEnemyEntity 创建敌人实体
// 生命值按波次缩放：round(baseHp * (1 + hpScale*(wave-1)))
//
// 参数:
//   - em: 实体管理器
//   - enemyType: 敌人类型（来自规则集）
//   - row: 所在行
//   - x: 出生位置（世界坐标）
//   - wave: 生成时的波次
//   - hpScale: 每波的生命值增幅
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID
func NewEnemyEntity(em *ecs.EntityManager, enemyType *config.EnemyType, row int, x float64, wave int, hpScale float64) ecs.EntityID {
	hp := game.ScaledEnemyHP(enemyType.HP, wave, hpScale)

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.EnemyComponent{
		TypeName: enemyType.Name,
		Row:      row,
		X:        x,
		Wave:     wave,
	})

	ecs.AddComponent(em, entityID, &components.HealthComponent{
		Current: hp,
		Max:     hp,
	})

	return entityID
}
