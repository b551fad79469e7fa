package systems

import (
	"log"
	"math"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/game"
)

// BaseBreachedMessage 基地被突破时的提示文本
const BaseBreachedMessage = "Your base was breached! Game Over."

// EnemyBehaviorSystem 敌人移动、近战与基地突破检测
//
// 每个存活敌人先前进 speed * moveFactor，然后用前沿位置 (X - enemyReach) 计算所在列。
// 如果该列有存活单位则发生近战：单位先受伤，敌人再受到反击伤害。
// 单位死亡立即清空格子；敌人死亡则跳过本 tick 剩余的移动；双方都存活时敌人后退 speed * engagedPushback。
// 任一敌人 X < 0 时基地被突破，本次遍历立即结束。
type EnemyBehaviorSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	ruleset       *config.Ruleset
	grid          *GridSystem
	dispatcher    *game.Dispatcher
}

// NewEnemyBehaviorSystem 创建敌人行为系统
func NewEnemyBehaviorSystem(em *ecs.EntityManager, gs *game.GameState, rs *config.Ruleset, grid *GridSystem, dispatcher *game.Dispatcher) *EnemyBehaviorSystem {
	return &EnemyBehaviorSystem{
		entityManager: em,
		gameState:     gs,
		ruleset:       rs,
		grid:          grid,
		dispatcher:    dispatcher,
	}
}

// Update 执行一次移动与近战结算
// 返回：基地是否在本 tick 被突破
func (s *EnemyBehaviorSystem) Update() bool {
	combat := s.ruleset.Combat
	enemyIDs := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.entityManager)

	for _, enemyID := range enemyIDs {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, enemyID)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, enemyID)
		if health.IsDead() {
			continue
		}

		enemyType, ok := s.ruleset.EnemyByName(enemy.TypeName)
		if !ok {
			continue
		}

		enemy.X -= enemyType.Speed * combat.MoveFactor

		if s.engage(enemy, health, enemyType) {
			// 敌人在近战中死亡，跳过剩余移动
			continue
		}

		if enemy.X < 0 {
			s.breach(enemyID, enemy)
			return true
		}
	}

	return false
}

// engage 处理敌人前沿所在格子的近战
// 返回敌人是否在本次交锋中死亡
func (s *EnemyBehaviorSystem) engage(enemy *components.EnemyComponent, health *components.HealthComponent, enemyType *config.EnemyType) bool {
	combat := s.ruleset.Combat

	col := int(math.Floor((enemy.X - combat.EnemyReach) / s.grid.CellSize()))
	if !s.grid.InBounds(enemy.Row, col) {
		return false
	}
	unitID := s.grid.OccupantAt(enemy.Row, col)
	if unitID == 0 {
		return false
	}
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, unitID)
	if !ok {
		return false
	}
	unitHealth, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, unitID)
	if !ok || unitHealth.IsDead() {
		return false
	}

	unitAttack := 0.0
	if unitType, ok := s.ruleset.UnitByName(unit.TypeName); ok {
		unitAttack = unitType.Attack
	}

	unitHealth.Current -= enemyType.Attack * combat.MeleeUnitDamage
	health.Current -= unitAttack * combat.MeleeEnemyDamage

	if unitHealth.IsDead() {
		s.grid.ReleaseIfOccupiedBy(unit.GridRow, unit.GridCol, unitID)
		log.Printf("[EnemyBehaviorSystem] %s destroyed %s at (%d, %d)", enemy.TypeName, unit.TypeName, unit.GridRow, unit.GridCol)
	}
	if health.IsDead() {
		return true
	}
	if !unitHealth.IsDead() {
		enemy.X += enemyType.Speed * combat.EngagedPushback
	}
	return false
}

// breach 基地被突破：会话进入终止状态
func (s *EnemyBehaviorSystem) breach(enemyID ecs.EntityID, enemy *components.EnemyComponent) {
	gs := s.gameState
	gs.Running = false
	gs.Info = BaseBreachedMessage
	log.Printf("[EnemyBehaviorSystem] Base breached by %s (entity %d) in row %d at wave %d",
		enemy.TypeName, enemyID, enemy.Row, gs.Wave)
	s.dispatcher.Dispatch(gs.NewEvent(game.EventBaseBreached, enemyID))
}
