package systems

import (
	"testing"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
	"github.com/decker502/dragonguard/pkg/entities"
	"github.com/decker502/dragonguard/pkg/game"
)

// testRulesetYAML 测试用规则集
// 单位下标：0 Rifleman, 1 Sniper, 2 Wall, 3 Engineer, 4 Medic
const testRulesetYAML = `
name: test
units:
  - name: Rifleman
    cost: 50
    hp: 100
    atk: 20
    speed: 1
    cooldown: 80
  - name: Sniper
    cost: 100
    hp: 70
    atk: 60
    speed: 2.3
    cooldown: 150
  - name: Wall
    cost: 30
    hp: 200
    atk: 0
    speed: 0
    cooldown: 10
  - name: Engineer
    cost: 90
    hp: 80
    cooldown: 110
    support: repair
  - name: Medic
    cost: 75
    hp: 70
    cooldown: 100
    support: heal
enemies:
  - name: Infantry Dragon
    hp: 60
    atk: 10
    speed: 0.7
    reward: 15
    good: true
    coinsPerSec: 1
  - name: Tank Dragon
    hp: 220
    atk: 25
    speed: 0.35
    reward: 35
    good: true
    coinsPerSec: 5
  - name: Corrupted Dragon
    hp: 90
    atk: 20
    speed: 0.8
    reward: 18
    good: false
spawnTable:
  - enemy: Infantry Dragon
    weight: 1
`

// testWorld 组装好的一组系统，供各系统测试共享
type testWorld struct {
	em         *ecs.EntityManager
	gs         *game.GameState
	rs         *config.Ruleset
	scheduler  *game.Scheduler
	rng        *game.RNG
	dispatcher *game.Dispatcher
	grid       *GridSystem

	placement *PlacementSystem
	combat    *CombatSystem
	support   *SupportSystem
	enemies   *EnemyBehaviorSystem
	cleanup   *CleanupSystem
	spawner   *WaveSpawnSystem
	level     *LevelSystem
	income    *IncomeSystem
}

// newTestWorld 创建测试世界，mutate 可以在组装前修改规则集
func newTestWorld(t *testing.T, mutate func(rs *config.Ruleset)) *testWorld {
	t.Helper()

	rs, err := config.ParseRuleset([]byte(testRulesetYAML))
	if err != nil {
		t.Fatalf("ParseRuleset failed: %v", err)
	}
	if mutate != nil {
		mutate(rs)
	}

	em := ecs.NewEntityManager()
	gs := game.NewGameState(len(rs.Units), rs.Rebirth.BonusPerRebirth)
	gs.Currency = rs.Economy.StartingCurrency
	scheduler := game.NewScheduler()
	rng := game.NewRNG(1)
	dispatcher := game.NewDispatcher()
	grid := NewGridSystem(em, entities.NewGridEntity(em, rs.Grid.Rows, rs.Grid.Cols), rs.Grid.CellSize)

	w := &testWorld{
		em:         em,
		gs:         gs,
		rs:         rs,
		scheduler:  scheduler,
		rng:        rng,
		dispatcher: dispatcher,
		grid:       grid,
	}
	w.placement = NewPlacementSystem(em, gs, rs, grid, dispatcher)
	w.combat = NewCombatSystem(em, gs, rs, grid)
	w.support = NewSupportSystem(em, rs)
	w.enemies = NewEnemyBehaviorSystem(em, gs, rs, grid, dispatcher)
	w.cleanup = NewCleanupSystem(em, gs, rs, grid, rng, dispatcher)
	w.spawner = NewWaveSpawnSystem(em, gs, rs, scheduler, rng, dispatcher)
	w.level = NewLevelSystem(em, gs, rs, scheduler, w.spawner, dispatcher)
	w.income = NewIncomeSystem(gs, rs, scheduler)
	return w
}

// placeUnit 绕过金币和冷却直接放置单位
func (w *testWorld) placeUnit(t *testing.T, name string, row, col int) ecs.EntityID {
	t.Helper()
	for i := range w.rs.Units {
		if w.rs.Units[i].Name == name {
			id := entities.NewUnitEntity(w.em, &w.rs.Units[i], i, row, col)
			if err := w.grid.OccupyCell(row, col, id); err != nil {
				t.Fatalf("OccupyCell failed: %v", err)
			}
			return id
		}
	}
	t.Fatalf("unknown unit type %s", name)
	return 0
}

// spawnEnemyAt 在指定位置直接生成一个第 1 波的敌人
func (w *testWorld) spawnEnemyAt(t *testing.T, name string, row int, x float64) ecs.EntityID {
	t.Helper()
	enemyType, ok := w.rs.EnemyByName(name)
	if !ok {
		t.Fatalf("unknown enemy type %s", name)
	}
	return entities.NewEnemyEntity(w.em, enemyType, row, x, 1, w.rs.Waves.HPScalePerWave)
}

func (w *testWorld) health(t *testing.T, id ecs.EntityID) *components.HealthComponent {
	t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](w.em, id)
	if !ok {
		t.Fatalf("entity %d has no HealthComponent", id)
	}
	return h
}

func (w *testWorld) enemy(t *testing.T, id ecs.EntityID) *components.EnemyComponent {
	t.Helper()
	e, ok := ecs.GetComponent[*components.EnemyComponent](w.em, id)
	if !ok {
		t.Fatalf("entity %d has no EnemyComponent", id)
	}
	return e
}

func (w *testWorld) enemyCount() int {
	return len(ecs.GetEntitiesWith1[*components.EnemyComponent](w.em))
}

func (w *testWorld) unitCount() int {
	return len(ecs.GetEntitiesWith1[*components.UnitComponent](w.em))
}
