package systems

import (
	"fmt"
	"log"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/game"
)

// WavePhase 波次状态机的阶段
type WavePhase int

const (
	// PhaseSpawning 本波还有生成事件未触发
	PhaseSpawning WavePhase = iota
	// PhaseWaitingForClear 生成完毕，等待场上敌人被清空
	PhaseWaitingForClear
	// PhaseAdvancing 已清场，下一波的推进事件已调度
	PhaseAdvancing
	// PhaseHalted 基地被突破，会话终止
	PhaseHalted
)

func (p WavePhase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseWaitingForClear:
		return "waiting"
	case PhaseAdvancing:
		return "advancing"
	case PhaseHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// LevelSystem 波次推进
//
// 阶段由状态推导而来，不单独保存：
//   - 会话已停止 → Halted
//   - 推进事件已调度 → Advancing
//   - 还有待触发的生成事件 → Spawning
//   - 否则 → WaitingForClear
//
// 只有在 WaitingForClear 阶段且场上没有敌人时才调度推进，每个清场的波次只调度一次。
type LevelSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	ruleset       *config.Ruleset
	scheduler     *game.Scheduler
	spawner       *WaveSpawnSystem
	dispatcher    *game.Dispatcher

	advanceTimer game.TimerID
}

// NewLevelSystem 创建关卡系统
func NewLevelSystem(em *ecs.EntityManager, gs *game.GameState, rs *config.Ruleset, scheduler *game.Scheduler, spawner *WaveSpawnSystem, dispatcher *game.Dispatcher) *LevelSystem {
	return &LevelSystem{
		entityManager: em,
		gameState:     gs,
		ruleset:       rs,
		scheduler:     scheduler,
		spawner:       spawner,
		dispatcher:    dispatcher,
	}
}

// Phase 当前波次阶段
func (s *LevelSystem) Phase() WavePhase {
	switch {
	case !s.gameState.Running:
		return PhaseHalted
	case s.advanceTimer != 0:
		return PhaseAdvancing
	case s.spawner.PendingSpawns() > 0:
		return PhaseSpawning
	default:
		return PhaseWaitingForClear
	}
}

// Start 开始第一波
func (s *LevelSystem) Start() {
	s.advanceTimer = 0
	s.spawner.SpawnWave()
	s.dispatcher.Dispatch(s.gameState.NewEvent(game.EventWaveStarted, s.gameState.Wave))
}

// Reset 丢弃已调度的推进（调度器中的事件由调用方统一取消）
func (s *LevelSystem) Reset() {
	s.advanceTimer = 0
}

// Update 清场检测，在战斗结算之后每 tick 调用一次
func (s *LevelSystem) Update() {
	if s.Phase() != PhaseWaitingForClear {
		return
	}
	if len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager)) > 0 {
		return
	}

	gs := s.gameState
	generation := gs.Generation
	log.Printf("[LevelSystem] Wave %d cleared, next wave in %v", gs.Wave, s.ruleset.Waves.AdvanceDelay())
	s.dispatcher.Dispatch(gs.NewEvent(game.EventWaveCleared, gs.Wave))

	s.advanceTimer = s.scheduler.After(s.ruleset.Waves.AdvanceDelay(), func() {
		if gs.Generation != generation {
			return
		}
		s.advanceTimer = 0
		if !gs.Running {
			return
		}
		s.advance()
	})
}

// advance 进入下一波：波次加一，发放奖励，调度生成
func (s *LevelSystem) advance() {
	gs := s.gameState
	gs.Wave++
	reward := game.WaveReward(gs.Wave, s.ruleset.Waves.RewardPerWave, gs.RebirthBonus())
	gs.AddCurrency(reward)
	s.spawner.SpawnWave()
	gs.Info = fmt.Sprintf("Wave %d!", gs.Wave)

	log.Printf("[LevelSystem] Wave %d started, reward %d, currency %d", gs.Wave, reward, gs.Currency)
	s.dispatcher.Dispatch(gs.NewEvent(game.EventWaveStarted, gs.Wave))
}
