package systems

import (
	"log"

	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/game"
)

// IncomeSystem 被动收入
// 在调度器上挂一个固定间隔的定时器，与 tick 解耦
type IncomeSystem struct {
	gameState *game.GameState
	ruleset   *config.Ruleset
	scheduler *game.Scheduler

	timer game.TimerID
}

// NewIncomeSystem 创建被动收入系统
func NewIncomeSystem(gs *game.GameState, rs *config.Ruleset, scheduler *game.Scheduler) *IncomeSystem {
	return &IncomeSystem{
		gameState: gs,
		ruleset:   rs,
		scheduler: scheduler,
	}
}

// Start 启动收入定时器（已启动时先取消旧的）
func (s *IncomeSystem) Start() {
	s.Stop()
	generation := s.gameState.Generation
	s.timer = s.scheduler.Every(s.ruleset.Economy.IncomeInterval(), func() {
		if s.gameState.Generation != generation {
			return
		}
		s.Credit()
	})
}

// Stop 取消收入定时器
func (s *IncomeSystem) Stop() {
	if s.timer != 0 {
		s.scheduler.Cancel(s.timer)
		s.timer = 0
	}
}

// Credit 结算一次被动收入
// 会话运行中且每秒收入大于 0 时，发放 round(income * (1 + bonus/100))
// 返回实际到账金额
func (s *IncomeSystem) Credit() int {
	gs := s.gameState
	if !gs.Running {
		return 0
	}
	income := gs.IncomePerSec()
	if income <= 0 {
		return 0
	}
	credited := gs.CreditWithBonus(float64(income))
	if gs.Tick%uint64(LogOutputFrameInterval) == 0 {
		log.Printf("[IncomeSystem] +%d coins (income %d/s, bonus %d%%)", credited, income, gs.RebirthBonus())
	}
	return credited
}
