package systems

import (
	"log"
	"time"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/entities"
	"github.com/decker502/dragonguard/pkg/game"
)

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 为一波敌人调度 wave + extraSpawns 次生成事件，相邻事件间隔 spawnInterval
//   - 每次生成按出怪权重表随机选择敌人类型，随机分配行，按波次缩放生命值
//   - 记录尚未触发的生成事件数量，供 LevelSystem 判断波次阶段
//
// 架构说明：
//   - 作为 LevelSystem 的依赖，由 LevelSystem 在开局和波次推进时调用
//   - 使用敌人工厂函数创建实体（entities 包）
type WaveSpawnSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	ruleset       *config.Ruleset
	scheduler     *game.Scheduler
	rng           *game.RNG
	dispatcher    *game.Dispatcher

	spawnTable []game.WeightedEntry
	pending    int // 已调度但尚未触发的生成事件
}

// NewWaveSpawnSystem 创建波次生成系统
func NewWaveSpawnSystem(em *ecs.EntityManager, gs *game.GameState, rs *config.Ruleset, scheduler *game.Scheduler, rng *game.RNG, dispatcher *game.Dispatcher) *WaveSpawnSystem {
	table := make([]game.WeightedEntry, 0, len(rs.SpawnTable))
	for _, entry := range rs.SpawnTable {
		table = append(table, game.WeightedEntry{Name: entry.Enemy, Weight: entry.Weight})
	}

	return &WaveSpawnSystem{
		entityManager: em,
		gameState:     gs,
		ruleset:       rs,
		scheduler:     scheduler,
		rng:           rng,
		dispatcher:    dispatcher,
		spawnTable:    table,
	}
}

// SpawnWave 为当前波次调度一轮生成事件
// 第 i 个事件在 i * spawnInterval 之后触发，第一个事件在下一次时间推进时立即触发
//
// 返回：
//
//	调度的生成事件数量
func (s *WaveSpawnSystem) SpawnWave() int {
	gs := s.gameState
	wave := gs.Wave
	generation := gs.Generation
	count := wave + s.ruleset.Waves.ExtraSpawns
	interval := s.ruleset.Waves.SpawnInterval()

	for i := 0; i < count; i++ {
		s.pending++
		s.scheduler.After(time.Duration(i)*interval, func() {
			if gs.Generation != generation {
				return
			}
			s.pending--
			if !gs.Running {
				return
			}
			s.SpawnEnemy(wave)
		})
	}

	log.Printf("[WaveSpawnSystem] Wave %d: scheduled %d spawns every %v (session %s)", wave, count, interval, gs.SessionID)
	return count
}

// SpawnEnemy 立即生成一个敌人
// 参数：
//
//	wave - 用于生命值缩放的波次（调度时的波次）
func (s *WaveSpawnSystem) SpawnEnemy(wave int) ecs.EntityID {
	name := s.rng.ChooseWeighted(s.spawnTable)
	enemyType, ok := s.ruleset.EnemyByName(name)
	if !ok {
		log.Printf("[WaveSpawnSystem] Error: spawn table references unknown enemy %q", name)
		return 0
	}

	row := s.rng.Intn(s.ruleset.Grid.Rows)
	x := s.ruleset.Grid.BoardWidth() - s.ruleset.Combat.SpawnInset

	entityID := entities.NewEnemyEntity(s.entityManager, enemyType, row, x, wave, s.ruleset.Waves.HPScalePerWave)
	s.dispatcher.Dispatch(s.gameState.NewEvent(game.EventEnemySpawned, entityID))
	return entityID
}

// PendingSpawns 已调度但尚未触发的生成事件数量
func (s *WaveSpawnSystem) PendingSpawns() int {
	return s.pending
}

// Reset 丢弃所有待生成记录（调度器中的事件由调用方统一取消）
func (s *WaveSpawnSystem) Reset() {
	s.pending = 0
}
