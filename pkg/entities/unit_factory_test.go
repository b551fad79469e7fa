package entities

import (
	"testing"

	"github.com/decker502/dragonguard/pkg/components"
	"github.com/decker502/dragonguard/pkg/config"
	"github.com/decker502/dragonguard/pkg/ecs"
)

func TestNewUnitEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	rifleman := &config.UnitType{Name: "Rifleman", Cost: 50, HP: 100, Attack: 20, Speed: 1, Cooldown: 80}

	id := NewUnitEntity(em, rifleman, 0, 2, 3)

	unit, ok := ecs.GetComponent[*components.UnitComponent](em, id)
	if !ok {
		t.Fatal("UnitComponent not found")
	}
	if unit.TypeName != "Rifleman" || unit.GridRow != 2 || unit.GridCol != 3 || unit.FireTick != 0 {
		t.Errorf("unexpected unit component: %+v", unit)
	}

	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		t.Fatal("HealthComponent not found")
	}
	if health.Current != 100 || health.Max != 100 {
		t.Errorf("unit hp should start at type hp, got %+v", health)
	}
}

func TestNewEnemyEntityScalesHP(t *testing.T) {
	em := ecs.NewEntityManager()
	infantry := &config.EnemyType{Name: "Infantry Dragon", HP: 60, Attack: 10, Speed: 0.7}

	tests := []struct {
		wave int
		want float64
	}{
		{1, 60},
		{2, 69},
		{3, 78},
	}

	for _, tt := range tests {
		id := NewEnemyEntity(em, infantry, 1, 638, tt.wave, 0.15)
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		if health.Current != tt.want || health.Max != tt.want {
			t.Errorf("wave %d: expected hp %v, got %+v", tt.wave, tt.want, health)
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		if enemy.Row != 1 || enemy.X != 638 || enemy.Wave != tt.wave {
			t.Errorf("unexpected enemy component: %+v", enemy)
		}
	}
}

func TestNewGridEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewGridEntity(em, 5, 9)

	grid, ok := ecs.GetComponent[*components.GridComponent](em, id)
	if !ok {
		t.Fatal("GridComponent not found")
	}
	if len(grid.Occupancy) != 5 || len(grid.Occupancy[0]) != 9 {
		t.Errorf("unexpected grid size %dx%d", len(grid.Occupancy), len(grid.Occupancy[0]))
	}
}
