package entities

import (
	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
)

// NewUnitEntity 创建防御单位实体
// 只创建实体，不检查也不占用网格格子，调用方负责放置校验和网格写入
//
// 参数:
//   - em: 实体管理器
//   - unitType: 单位类型（来自规则集）
//   - typeIndex: 单位类型在规则集中的下标
//   - row: 网格行索引
//   - col: 网格列索引
//
// 返回:
//   - ecs.EntityID: 创建的单位实体ID
func NewUnitEntity(em *ecs.EntityManager, unitType *config.UnitType, typeIndex, row, col int) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.UnitComponent{
		TypeName:  unitType.Name,
		TypeIndex: typeIndex,
		GridRow:   row,
		GridCol:   col,
	})

	ecs.AddComponent(em, entityID, &components.HealthComponent{
		Current: unitType.HP,
		Max:     unitType.HP,
	})

	return entityID
}

// NewGridEntity 创建战场网格实体
func NewGridEntity(em *ecs.EntityManager, rows, cols int) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, components.NewGridComponent(rows, cols))
	return entityID
}
