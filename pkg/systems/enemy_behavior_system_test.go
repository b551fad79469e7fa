package systems

import (
	"testing"

	"github.com/decker502/dragonguard/pkg/game"
)

func TestEnemyAdvancesBySpeedTimesFactor(t *testing.T) {
	w := newTestWorld(t, nil)
	id := w.spawnEnemyAt(t, "Infantry Dragon", 0, 500)

	if breached := w.enemies.Update(); breached {
		t.Fatal("unexpected breach")
	}
	if x := w.enemy(t, id).X; !approxEqual(x, 498.6) {
		t.Errorf("X after one tick: expected 498.6, got %v", x)
	}
}

func TestMeleeExchangeAndPushback(t *testing.T) {
	w := newTestWorld(t, nil)
	// 列 3 覆盖 [216, 288)；前沿 = X - 24
	wall := w.placeUnit(t, "Wall", 0, 3)
	dragon := w.spawnEnemyAt(t, "Infantry Dragon", 0, 300)

	w.enemies.Update()

	if hp := w.health(t, wall).Current; !approxEqual(hp, 199) {
		t.Errorf("wall hp: expected 200 - 10*0.1 = 199, got %v", hp)
	}
	if hp := w.health(t, dragon).Current; hp != 60 {
		t.Errorf("zero-attack unit should deal no retaliation, got %v", hp)
	}
	// 300 - 1.4 + 0.91
	if x := w.enemy(t, dragon).X; !approxEqual(x, 299.51) {
		t.Errorf("engaged enemy should be pushed back to 299.51, got %v", x)
	}
}

func TestMeleeRetaliation(t *testing.T) {
	w := newTestWorld(t, nil)
	rifleman := w.placeUnit(t, "Rifleman", 1, 3)
	tank := w.spawnEnemyAt(t, "Tank Dragon", 1, 300)

	w.enemies.Update()

	if hp := w.health(t, rifleman).Current; !approxEqual(hp, 97.5) {
		t.Errorf("rifleman hp: expected 100 - 25*0.1 = 97.5, got %v", hp)
	}
	if hp := w.health(t, tank).Current; !approxEqual(hp, 216) {
		t.Errorf("tank hp: expected 220 - 20*0.2 = 216, got %v", hp)
	}
}

func TestUnitDeathClearsCellImmediately(t *testing.T) {
	w := newTestWorld(t, nil)
	rifleman := w.placeUnit(t, "Rifleman", 0, 3)
	w.health(t, rifleman).Current = 1
	dragon := w.spawnEnemyAt(t, "Infantry Dragon", 0, 300)

	w.enemies.Update()

	if w.grid.IsOccupied(0, 3) {
		t.Error("cell should be cleared as soon as the unit dies")
	}
	if !w.em.Exists(rifleman) {
		t.Error("dead unit entity is only removed by the cleanup pass")
	}
	if x := w.enemy(t, dragon).X; !approxEqual(x, 298.6) {
		t.Errorf("no pushback when the unit died, expected 298.6, got %v", x)
	}
}

func TestEnemyDeathSkipsRemainingMovement(t *testing.T) {
	w := newTestWorld(t, nil)
	w.placeUnit(t, "Rifleman", 0, 3)
	dragon := w.spawnEnemyAt(t, "Infantry Dragon", 0, 300)
	w.health(t, dragon).Current = 1

	w.enemies.Update()

	if !w.health(t, dragon).IsDead() {
		t.Fatal("dragon should die from retaliation (20 * 0.2 = 4)")
	}
	if x := w.enemy(t, dragon).X; !approxEqual(x, 298.6) {
		t.Errorf("dead enemy should not be pushed back, expected 298.6, got %v", x)
	}
}

func TestBaseBreachStopsPass(t *testing.T) {
	w := newTestWorld(t, nil)
	var breachedEvents int
	w.dispatcher.Subscribe(game.EventBaseBreached, game.ListenerFunc(func(game.Event) { breachedEvents++ }))

	w.spawnEnemyAt(t, "Infantry Dragon", 2, 1.0)
	later := w.spawnEnemyAt(t, "Infantry Dragon", 3, 500)

	if breached := w.enemies.Update(); !breached {
		t.Fatal("enemy crossing x < 0 should breach the base")
	}
	if w.gs.Running {
		t.Error("session should stop running after a breach")
	}
	if w.gs.Info != BaseBreachedMessage {
		t.Errorf("Info: expected %q, got %q", BaseBreachedMessage, w.gs.Info)
	}
	if x := w.enemy(t, later).X; x != 500 {
		t.Errorf("enemies after the breaching one should not move, got X=%v", x)
	}
	if breachedEvents != 1 {
		t.Errorf("expected 1 breach event, got %d", breachedEvents)
	}
}
