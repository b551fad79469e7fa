package systems

import (
	"log"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/game"
)

// LogOutputFrameInterval 每 tick 运行的系统每 N 个 tick 输出一次调试日志
const LogOutputFrameInterval = 100

// CombatSystem 单位的目标选择与射击
//
// 每个攻击力大于 0 的存活单位，在同一行中寻找位置仍在其列左边界右侧的敌人，
// 选择 X 最小者为目标；X 相同时选择最先创建的敌人。
// 目标选择不看生命值：同一 tick 内已被打死的敌人仍会吸收后续射击，直到清理阶段移除。
// 开火计时只在存在目标时累加，超过 speed * fireTicksPerSpeed 时造成一次伤害并归零。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	ruleset       *config.Ruleset
	grid          *GridSystem

	logFrameCounter int
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(em *ecs.EntityManager, gs *game.GameState, rs *config.Ruleset, grid *GridSystem) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		gameState:     gs,
		ruleset:       rs,
		grid:          grid,
	}
}

// Update 执行一次射击结算
// 返回本 tick 开火的次数
func (s *CombatSystem) Update() int {
	s.logFrameCounter++
	shots := 0

	enemyIDs := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.entityManager)
	unitIDs := ecs.GetEntitiesWith2[*components.UnitComponent, *components.HealthComponent](s.entityManager)

	for _, unitID := range unitIDs {
		unit, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, unitID)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, unitID)
		if health.IsDead() {
			continue
		}

		unitType, ok := s.ruleset.UnitByName(unit.TypeName)
		if !ok || unitType.Attack <= 0 {
			continue
		}

		target, targetHealth := s.findTarget(unit, enemyIDs)
		if target == 0 {
			continue
		}

		unit.FireTick++
		if float64(unit.FireTick) > unitType.Speed*s.ruleset.Combat.FireTicksPerSpeed {
			targetHealth.Current -= unitType.Attack
			unit.FireTick = 0
			shots++
		}
	}

	if shots > 0 && s.logFrameCounter%LogOutputFrameInterval == 1 {
		log.Printf("[CombatSystem] tick %d: %d shots fired, %d units, %d enemies",
			s.gameState.Tick, shots, len(unitIDs), len(enemyIDs))
	}

	return shots
}

// findTarget 在单位所在行寻找最近的敌人
// enemyIDs 按创建顺序排列，严格小于比较保证同 X 时先创建者胜出
func (s *CombatSystem) findTarget(unit *components.UnitComponent, enemyIDs []ecs.EntityID) (ecs.EntityID, *components.HealthComponent) {
	boundary := s.grid.ColumnBoundary(unit.GridCol)

	var (
		best       ecs.EntityID
		bestX      float64
		bestHealth *components.HealthComponent
	)
	for _, enemyID := range enemyIDs {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, enemyID)
		if enemy.Row != unit.GridRow || enemy.X <= boundary {
			continue
		}
		if best == 0 || enemy.X < bestX {
			best = enemyID
			bestX = enemy.X
			bestHealth, _ = ecs.GetComponent[*components.HealthComponent](s.entityManager, enemyID)
		}
	}
	return best, bestHealth
}
