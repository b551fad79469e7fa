// Package simulation 组装一局完整的模拟
//
// Session 独占所有可变状态（实体、网格、经济、调度器），
// 前端只通过命令方法修改状态，通过 Snapshot 读取状态。
// Session 不是并发安全的：所有调用必须来自同一个 goroutine。
package simulation

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/entities"
	"github.com/decker502/dragonguard/pkg/game"
	"github.com/decker502/dragonguard/pkg/systems"
	"github.com/google/uuid"
)

// Options 创建会话的参数
type Options struct {
	Ruleset *config.Ruleset // 必填
	Seed    int64           // 随机种子，0 表示使用当前时间
}

// Session 一局模拟
type Session struct {
	ruleset    *config.Ruleset
	em         *ecs.EntityManager
	gameState  *game.GameState
	scheduler  *game.Scheduler
	rng        *game.RNG
	dispatcher *game.Dispatcher
	policy     game.RebirthPolicy

	grid      *systems.GridSystem
	placement *systems.PlacementSystem
	combat    *systems.CombatSystem
	support   *systems.SupportSystem
	enemies   *systems.EnemyBehaviorSystem
	cleanup   *systems.CleanupSystem
	spawner   *systems.WaveSpawnSystem
	level     *systems.LevelSystem
	income    *systems.IncomeSystem
}

// NewSession 创建会话并开始第一波
func NewSession(opts Options) (*Session, error) {
	if opts.Ruleset == nil {
		return nil, errors.New("simulation: ruleset is required")
	}
	rs := opts.Ruleset

	em := ecs.NewEntityManager()
	gs := game.NewGameState(len(rs.Units), rs.Rebirth.BonusPerRebirth)
	scheduler := game.NewScheduler()
	rng := game.NewRNG(opts.Seed)
	dispatcher := game.NewDispatcher()
	grid := systems.NewGridSystem(em, entities.NewGridEntity(em, rs.Grid.Rows, rs.Grid.Cols), rs.Grid.CellSize)

	s := &Session{
		ruleset:    rs,
		em:         em,
		gameState:  gs,
		scheduler:  scheduler,
		rng:        rng,
		dispatcher: dispatcher,
		policy:     game.NewRebirthPolicy(rs.Rebirth),
		grid:       grid,
	}
	s.placement = systems.NewPlacementSystem(em, gs, rs, grid, dispatcher)
	s.combat = systems.NewCombatSystem(em, gs, rs, grid)
	s.support = systems.NewSupportSystem(em, rs)
	s.enemies = systems.NewEnemyBehaviorSystem(em, gs, rs, grid, dispatcher)
	s.cleanup = systems.NewCleanupSystem(em, gs, rs, grid, rng, dispatcher)
	s.spawner = systems.NewWaveSpawnSystem(em, gs, rs, scheduler, rng, dispatcher)
	s.level = systems.NewLevelSystem(em, gs, rs, scheduler, s.spawner, dispatcher)
	s.income = systems.NewIncomeSystem(gs, rs, scheduler)

	log.Printf("[Session] Created with ruleset %q, seed %d", rs.Name, rng.Seed())
	s.reset(false)
	return s, nil
}

// Update 每帧回调：推进虚拟时间 dt（触发到期的定时器），然后执行一次 tick
func (s *Session) Update(dt time.Duration) {
	s.Advance(dt)
	s.Tick()
}

// Advance 只推进虚拟时间，不执行 tick
func (s *Session) Advance(dt time.Duration) {
	s.scheduler.Advance(dt)
}

// Tick 执行一次模拟步进
// 顺序：冷却 → 射击 → 维修/治疗 → 敌人移动与近战 → 死亡清理 → 清场检测。
// 会话停止后调用不产生任何变化。
func (s *Session) Tick() {
	gs := s.gameState
	if !gs.Running {
		return
	}
	gs.Tick++

	s.placement.Update()
	s.combat.Update()
	s.support.Update()
	breached := s.enemies.Update()
	s.cleanup.Update()

	if breached {
		// 终止状态：取消所有待触发的生成、推进和收入
		s.scheduler.CancelAll()
		s.spawner.Reset()
		s.level.Reset()
		return
	}

	s.level.Update()
}

// SelectUnitType 选择后续 PlaceAt 使用的单位类型
func (s *Session) SelectUnitType(index int) error {
	unitType, ok := s.ruleset.Unit(index)
	if !ok {
		return fmt.Errorf("select unit %d: %w", index, game.ErrUnknownUnitType)
	}
	s.gameState.SelectedUnit = index
	log.Printf("[Session] Selected %s", unitType.Name)
	return nil
}

// PlaceAt 用当前选择的单位类型在 (row, col) 放置
func (s *Session) PlaceAt(row, col int) (ecs.EntityID, error) {
	return s.TryPlace(row, col, s.gameState.SelectedUnit)
}

// TryPlace 在 (row, col) 放置下标为 unitIndex 的单位
// 被拒绝时设置提示文本并返回 *game.PlacementError
func (s *Session) TryPlace(row, col, unitIndex int) (ecs.EntityID, error) {
	id, err := s.placement.TryPlace(row, col, unitIndex)
	if err != nil {
		var placementErr *game.PlacementError
		if errors.As(err, &placementErr) {
			s.gameState.Info = placementErr.Message()
		}
		return 0, err
	}
	return id, nil
}

// RequestRebirth 请求转生
// 条件不满足时返回 *game.RebirthError，不修改任何状态（提示文本除外）
func (s *Session) RequestRebirth() error {
	gs := s.gameState
	if err := s.policy.Check(gs); err != nil {
		var rebirthErr *game.RebirthError
		if errors.As(err, &rebirthErr) {
			gs.Info = rebirthErr.Requirement
		}
		return err
	}

	gs.Rebirths++
	s.reset(true)
	gs.Info = game.RebirthMessage(gs.RebirthBonus())
	log.Printf("[Session] Rebirth #%d, bonus %d%%", gs.Rebirths, gs.RebirthBonus())
	s.dispatcher.Dispatch(gs.NewEvent(game.EventRebirth, gs.Rebirths))
	return nil
}

// Reset 普通重置：保留转生次数，清空背包
func (s *Session) Reset() {
	s.reset(false)
}

// reset 清空战场并回到第 1 波
func (s *Session) reset(isRebirth bool) {
	gs := s.gameState
	eco := s.ruleset.Economy

	s.scheduler.CancelAll()
	s.spawner.Reset()
	s.level.Reset()

	for _, id := range ecs.GetEntitiesWith1[*components.UnitComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()
	s.grid.Clear()

	gs.Generation++
	gs.Tick = 0
	gs.Wave = 1
	gs.Currency = game.StartingCurrency(eco.StartingCurrency, gs.Rebirths, eco.RebirthCurrencyFactor)
	gs.ClearCooldowns()
	gs.Running = true
	if s.policy.ClearsInventory(isRebirth) {
		gs.Inventory.Clear()
	}
	gs.Info = ""
	gs.SessionID = uuid.New().String()

	log.Printf("[Session] Reset (rebirth=%v) session %s: currency %d, inventory %d, income %d/s",
		isRebirth, gs.SessionID, gs.Currency, gs.Inventory.Total(), gs.IncomePerSec())
	s.dispatcher.Dispatch(gs.NewEvent(game.EventReset, isRebirth))

	s.income.Start()
	s.level.Start()
}

// Subscribe 订阅模拟事件
func (s *Session) Subscribe(eventType game.EventType, listener game.Listener) {
	s.dispatcher.Subscribe(eventType, listener)
}

// Catalog 单位类型列表（用于卡片显示）
func (s *Session) Catalog() []config.UnitType {
	out := make([]config.UnitType, len(s.ruleset.Units))
	copy(out, s.ruleset.Units)
	return out
}

// Ruleset 当前规则集
func (s *Session) Ruleset() *config.Ruleset {
	return s.ruleset
}

// Running 会话是否仍在运行
func (s *Session) Running() bool {
	return s.gameState.Running
}

// Phase 当前波次阶段
func (s *Session) Phase() systems.WavePhase {
	return s.level.Phase()
}

// Now 当前虚拟时间
func (s *Session) Now() time.Duration {
	return s.scheduler.Now()
}
