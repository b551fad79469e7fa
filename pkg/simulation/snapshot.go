package simulation

import (
	"fmt"
	"strings"
	"time"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/game"
)

// UnitView 一个已放置单位的只读视图
type UnitView struct {
	ID    ecs.EntityID `yaml:"id"`
	Type  string       `yaml:"type"`
	Row   int          `yaml:"row"`
	Col   int          `yaml:"col"`
	HP    float64      `yaml:"hp"` // 已钳制为 >= 0
	MaxHP float64      `yaml:"maxHp"`
	Color string       `yaml:"color"`
}

// EnemyView 一个敌人的只读视图
type EnemyView struct {
	ID    ecs.EntityID `yaml:"id"`
	Type  string       `yaml:"type"`
	Row   int          `yaml:"row"`
	X     float64      `yaml:"x"`
	HP    float64      `yaml:"hp"` // 已钳制为 >= 0
	MaxHP float64      `yaml:"maxHp"`
	Color string       `yaml:"color"`
}

// Snapshot 某一时刻的完整只读状态
// 所有字段都是值拷贝，前端可以随意持有
type Snapshot struct {
	SessionID    string `yaml:"sessionId"`
	Ruleset      string `yaml:"ruleset"`
	Tick         uint64 `yaml:"tick"`
	Phase        string `yaml:"phase"`
	Running      bool   `yaml:"running"`
	Currency     int    `yaml:"currency"`
	Wave         int    `yaml:"wave"`
	Rebirths     int    `yaml:"rebirths"`
	RebirthBonus int    `yaml:"rebirthBonus"`
	IncomePerSec int    `yaml:"incomePerSec"`
	CanRebirth   bool   `yaml:"canRebirth"`
	Info         string `yaml:"info"`

	Rows         int   `yaml:"rows"`
	Cols         int   `yaml:"cols"`
	SelectedUnit int   `yaml:"selectedUnit"`
	Cooldowns    []int `yaml:"cooldowns"`

	Units     []UnitView            `yaml:"units"`
	Enemies   []EnemyView           `yaml:"enemies"`
	Inventory []game.InventoryEntry `yaml:"inventory"`

	Elapsed time.Duration `yaml:"-"`
}

// UnitAt 返回 (row, col) 处的单位视图
func (snap *Snapshot) UnitAt(row, col int) (UnitView, bool) {
	for _, u := range snap.Units {
		if u.Row == row && u.Col == col {
			return u, true
		}
	}
	return UnitView{}, false
}

// InventorySummary 背包的一行文字描述，如 "Captured: Tank Dragon x2 (+10/s)"
func (snap *Snapshot) InventorySummary() string {
	if len(snap.Inventory) == 0 {
		return "Captured: none"
	}
	parts := make([]string, 0, len(snap.Inventory))
	for _, entry := range snap.Inventory {
		parts = append(parts, fmt.Sprintf("%s x%d (+%d/s)", entry.Name, entry.Count, entry.Income()))
	}
	return "Captured: " + strings.Join(parts, ", ")
}

// Snapshot 生成当前状态的只读快照
func (s *Session) Snapshot() Snapshot {
	gs := s.gameState

	snap := Snapshot{
		SessionID:    gs.SessionID,
		Ruleset:      s.ruleset.Name,
		Tick:         gs.Tick,
		Phase:        s.level.Phase().String(),
		Running:      gs.Running,
		Currency:     gs.Currency,
		Wave:         gs.Wave,
		Rebirths:     gs.Rebirths,
		RebirthBonus: gs.RebirthBonus(),
		IncomePerSec: gs.IncomePerSec(),
		CanRebirth:   s.policy.Eligible(gs),
		Info:         gs.Info,
		Rows:         s.grid.Rows(),
		Cols:         s.grid.Cols(),
		SelectedUnit: gs.SelectedUnit,
		Cooldowns:    append([]int(nil), gs.Cooldowns...),
		Inventory:    gs.Inventory.Entries(),
		Elapsed:      s.scheduler.Now(),
	}

	for _, id := range ecs.GetEntitiesWith2[*components.UnitComponent, *components.HealthComponent](s.em) {
		unit, _ := ecs.GetComponent[*components.UnitComponent](s.em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		view := UnitView{
			ID:    id,
			Type:  unit.TypeName,
			Row:   unit.GridRow,
			Col:   unit.GridCol,
			HP:    health.Displayed(),
			MaxHP: health.Max,
		}
		if unitType, ok := s.ruleset.UnitByName(unit.TypeName); ok {
			view.Color = unitType.Color
		}
		snap.Units = append(snap.Units, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		view := EnemyView{
			ID:    id,
			Type:  enemy.TypeName,
			Row:   enemy.Row,
			X:     enemy.X,
			HP:    health.Displayed(),
			MaxHP: health.Max,
		}
		if enemyType, ok := s.ruleset.EnemyByName(enemy.TypeName); ok {
			view.Color = enemyType.Color
		}
		snap.Enemies = append(snap.Enemies, view)
	}

	return snap
}
