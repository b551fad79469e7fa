package systems

import (
	"log"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/entities"
	"github.com/decker502/dragonguard/pkg/game"
)

// PlacementSystem 处理单位放置命令并维护放置冷却
//
// 校验顺序：会话运行中 → 单位类型有效 → 位置合法 → 格子为空 → 金币充足 → 冷却结束。
// 任一校验失败都返回 *game.PlacementError，且不修改任何状态。
type PlacementSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	ruleset       *config.Ruleset
	grid          *GridSystem
	dispatcher    *game.Dispatcher
}

// NewPlacementSystem 创建放置系统
func NewPlacementSystem(em *ecs.EntityManager, gs *game.GameState, rs *config.Ruleset, grid *GridSystem, dispatcher *game.Dispatcher) *PlacementSystem {
	return &PlacementSystem{
		entityManager: em,
		gameState:     gs,
		ruleset:       rs,
		grid:          grid,
		dispatcher:    dispatcher,
	}
}

// TryPlace 尝试在 (row, col) 放置下标为 unitIndex 的单位
//
// 返回:
//   - ecs.EntityID: 新单位实体ID
//   - error: 放置被拒绝时返回 *game.PlacementError
func (s *PlacementSystem) TryPlace(row, col, unitIndex int) (ecs.EntityID, error) {
	gs := s.gameState

	if !gs.Running {
		return 0, &game.PlacementError{Kind: game.ErrSessionNotRunning, Row: row, Col: col}
	}

	unitType, ok := s.ruleset.Unit(unitIndex)
	if !ok {
		return 0, &game.PlacementError{Kind: game.ErrUnknownUnitType, Row: row, Col: col}
	}

	reject := func(kind error) (ecs.EntityID, error) {
		return 0, &game.PlacementError{Kind: kind, Row: row, Col: col, Unit: unitType.Name}
	}

	if !s.grid.InBounds(row, col) {
		return reject(game.ErrOutOfBounds)
	}
	if s.grid.IsOccupied(row, col) {
		return reject(game.ErrCellOccupied)
	}
	if gs.Currency < unitType.Cost {
		return reject(game.ErrInsufficientFunds)
	}
	if gs.Cooldown(unitIndex) > 0 {
		return reject(game.ErrUnitOnCooldown)
	}

	gs.SpendCurrency(unitType.Cost)
	entityID := entities.NewUnitEntity(s.entityManager, unitType, unitIndex, row, col)
	if err := s.grid.OccupyCell(row, col, entityID); err != nil {
		// 上面已检查过格子为空，这里不应失败
		log.Printf("[PlacementSystem] Error: %v", err)
	}
	gs.Cooldowns[unitIndex] = unitType.Cooldown

	log.Printf("[PlacementSystem] Placed %s at (%d, %d), entity %d, currency left %d",
		unitType.Name, row, col, entityID, gs.Currency)
	s.dispatcher.Dispatch(gs.NewEvent(game.EventUnitPlaced, entityID))

	return entityID, nil
}

// Update 每 tick 调用一次：所有单位类型的放置冷却减 1
func (s *PlacementSystem) Update() {
	s.gameState.DecrementCooldowns()
}
