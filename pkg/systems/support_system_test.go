package systems

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRepairAffectsNeighboursOnly(t *testing.T) {
	w := newTestWorld(t, nil)
	engineer := w.placeUnit(t, "Engineer", 2, 2)
	adjacent := w.placeUnit(t, "Rifleman", 2, 3)
	diagonal := w.placeUnit(t, "Rifleman", 1, 1)
	distant := w.placeUnit(t, "Rifleman", 2, 4)

	w.health(t, engineer).Current = 40
	w.health(t, adjacent).Current = 50
	w.health(t, diagonal).Current = 50
	w.health(t, distant).Current = 50

	for i := 0; i < 10; i++ {
		w.support.Update()
	}

	if hp := w.health(t, adjacent).Current; !approxEqual(hp, 51) {
		t.Errorf("adjacent unit: expected 51, got %v", hp)
	}
	if hp := w.health(t, diagonal).Current; !approxEqual(hp, 51) {
		t.Errorf("diagonal unit: expected 51, got %v", hp)
	}
	if hp := w.health(t, distant).Current; hp != 50 {
		t.Errorf("unit at distance 2 should not be repaired, got %v", hp)
	}
	if hp := w.health(t, engineer).Current; hp != 40 {
		t.Errorf("engineer should not repair itself, got %v", hp)
	}
}

func TestHealClampsToHealedUnitMax(t *testing.T) {
	w := newTestWorld(t, nil)
	w.placeUnit(t, "Medic", 0, 0)
	rifleman := w.placeUnit(t, "Rifleman", 0, 1)
	w.health(t, rifleman).Current = 80

	// Medic 最大生命值 70，Rifleman 为 100：恢复上限取被治疗单位自己的类型
	for i := 0; i < 10; i++ {
		w.support.Update()
	}
	if hp := w.health(t, rifleman).Current; !approxEqual(hp, 82) {
		t.Errorf("rifleman healed by medic: expected 82, got %v", hp)
	}

	for i := 0; i < 1000; i++ {
		w.support.Update()
	}
	if hp := w.health(t, rifleman).Current; hp != 100 {
		t.Errorf("heal must clamp at the unit's max hp (100), got %v", hp)
	}
}

func TestSupportSkipsDeadUnits(t *testing.T) {
	w := newTestWorld(t, nil)
	medic := w.placeUnit(t, "Medic", 0, 0)
	dead := w.placeUnit(t, "Rifleman", 0, 1)
	w.health(t, dead).Current = 0

	w.support.Update()
	if hp := w.health(t, dead).Current; hp != 0 {
		t.Errorf("dead units should not be healed, got %v", hp)
	}

	w.health(t, medic).Current = -1
	w.health(t, dead).Current = 10
	w.support.Update()
	if hp := w.health(t, dead).Current; hp != 10 {
		t.Errorf("dead supporters should not heal, got %v", hp)
	}
}
