package systems

import (
	"log"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/game"
)

// CleanupResult 一次死亡清理的统计
type CleanupResult struct {
	UnitsRemoved   int
	EnemiesKilled  int
	EnemiesCaught  int
	RewardCredited int
}

// CleanupSystem tick 末尾的死亡清理
//
// 生命值 <= 0 的单位被移除（格子如果仍指向它则一并清空）。
// 每个死亡敌人：可捕获类型按 captureChance 判定是否加入背包；无论是否捕获都被移除。
// 规则集开启 killRewards 时，每次击杀额外发放 round(reward * (1 + bonus/100))。
type CleanupSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	ruleset       *config.Ruleset
	grid          *GridSystem
	rng           *game.RNG
	dispatcher    *game.Dispatcher
}

// NewCleanupSystem 创建清理系统
func NewCleanupSystem(em *ecs.EntityManager, gs *game.GameState, rs *config.Ruleset, grid *GridSystem, rng *game.RNG, dispatcher *game.Dispatcher) *CleanupSystem {
	return &CleanupSystem{
		entityManager: em,
		gameState:     gs,
		ruleset:       rs,
		grid:          grid,
		rng:           rng,
		dispatcher:    dispatcher,
	}
}

// Update 执行一次死亡清理
func (s *CleanupSystem) Update() CleanupResult {
	var result CleanupResult
	gs := s.gameState

	unitIDs := ecs.GetEntitiesWith2[*components.UnitComponent, *components.HealthComponent](s.entityManager)
	for _, unitID := range unitIDs {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, unitID)
		if !health.IsDead() {
			continue
		}
		unit, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, unitID)
		s.grid.ReleaseIfOccupiedBy(unit.GridRow, unit.GridCol, unitID)
		s.entityManager.DestroyEntity(unitID)
		result.UnitsRemoved++
		s.dispatcher.Dispatch(gs.NewEvent(game.EventUnitDestroyed, unitID))
	}

	enemyIDs := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.entityManager)
	for _, enemyID := range enemyIDs {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, enemyID)
		if !health.IsDead() {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, enemyID)
		result.EnemiesKilled++

		if enemyType, ok := s.ruleset.EnemyByName(enemy.TypeName); ok {
			if s.ruleset.Combat.KillRewards && enemyType.Reward > 0 {
				result.RewardCredited += gs.CreditWithBonus(float64(enemyType.Reward))
			}
			if enemyType.Capturable && s.rng.Chance(s.ruleset.Combat.CaptureChance) {
				count := gs.Inventory.Add(enemyType.Name, enemyType.IncomePerSec, enemyType.Color)
				result.EnemiesCaught++
				log.Printf("[CleanupSystem] Captured %s (now %d), income %d/s", enemyType.Name, count, gs.IncomePerSec())
				s.dispatcher.Dispatch(gs.NewEvent(game.EventEnemyCaptured, enemyType.Name))
			}
		}

		s.entityManager.DestroyEntity(enemyID)
		s.dispatcher.Dispatch(gs.NewEvent(game.EventEnemyKilled, enemyID))
	}

	s.entityManager.RemoveMarkedEntities()
	return result
}
