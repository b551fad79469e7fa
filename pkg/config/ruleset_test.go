package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/decker502/dragonguard/pkg/embedded"
)

const minimalRuleset = `
name: minimal
units:
  - name: Rifleman
    cost: 50
    hp: 100
    atk: 20
    speed: 1
    cooldown: 80
  - name: Engineer
    cost: 90
    hp: 80
    support: repair
enemies:
  - name: Infantry Dragon
    hp: 60
    atk: 10
    speed: 0.7
    good: true
    coinsPerSec: 1
spawnTable:
  - enemy: Infantry Dragon
    weight: 1
`

func TestParseRulesetDefaults(t *testing.T) {
	rs, err := ParseRuleset([]byte(minimalRuleset))
	if err != nil {
		t.Fatalf("ParseRuleset failed: %v", err)
	}

	if rs.Grid.Rows != 5 || rs.Grid.Cols != 9 || rs.Grid.CellSize != 72 {
		t.Errorf("grid defaults: got %+v", rs.Grid)
	}
	if rs.Waves.ExtraSpawns != 2 || rs.Waves.SpawnInterval() != 900*time.Millisecond {
		t.Errorf("wave defaults: got %+v", rs.Waves)
	}
	if rs.Waves.AdvanceDelay() != 900*time.Millisecond {
		t.Errorf("advance delay: expected 900ms, got %v", rs.Waves.AdvanceDelay())
	}
	if rs.Economy.IncomeInterval() != time.Second {
		t.Errorf("income interval: expected 1s, got %v", rs.Economy.IncomeInterval())
	}
	if rs.Combat.FireTicksPerSpeed != 24 || rs.Combat.MoveFactor != 2 {
		t.Errorf("combat defaults: got %+v", rs.Combat)
	}
	if rs.Combat.CaptureChance != 0.5 {
		t.Errorf("captureChance: expected 0.5, got %v", rs.Combat.CaptureChance)
	}
	if rs.Rebirth.Requirement != RebirthByCaptures || rs.Rebirth.Threshold != 3 {
		t.Errorf("rebirth defaults: got %+v", rs.Rebirth)
	}

	engineer, ok := rs.UnitByName("Engineer")
	if !ok {
		t.Fatal("Engineer not found")
	}
	if engineer.SupportRate != DefaultRepairRate {
		t.Errorf("Engineer supportRate: expected %v, got %v", DefaultRepairRate, engineer.SupportRate)
	}
	rifleman, _ := rs.UnitByName("Rifleman")
	if rifleman.SupportRate != 0 {
		t.Errorf("Rifleman should not have a support rate, got %v", rifleman.SupportRate)
	}
}

func TestParseRulesetValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "无效 YAML",
			mutate:  func(string) string { return "units: [" },
			wantErr: "failed to parse ruleset YAML",
		},
		{
			name: "重复单位",
			mutate: func(s string) string {
				return strings.Replace(s, "name: Engineer", "name: Rifleman", 1)
			},
			wantErr: "duplicate unit type",
		},
		{
			name: "未知辅助类型",
			mutate: func(s string) string {
				return strings.Replace(s, "support: repair", "support: teleport", 1)
			},
			wantErr: "unknown support class",
		},
		{
			name: "出怪表引用未知敌人",
			mutate: func(s string) string {
				return strings.Replace(s, "  - enemy: Infantry Dragon", "  - enemy: Ghost Dragon", 1)
			},
			wantErr: "unknown enemy",
		},
		{
			name: "负数花费",
			mutate: func(s string) string {
				return strings.Replace(s, "cost: 50", "cost: -5", 1)
			},
			wantErr: "cost cannot be negative",
		},
		{
			name: "未知转生条件",
			mutate: func(s string) string {
				return s + "rebirth:\n  requirement: luck\n"
			},
			wantErr: "rebirth.requirement",
		},
		{
			name: "捕获概率越界",
			mutate: func(s string) string {
				return s + "combat:\n  captureChance: 1.5\n"
			},
			wantErr: "captureChance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRuleset([]byte(tt.mutate(minimalRuleset)))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadRulesetFile(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("加载有效文件", func(t *testing.T) {
		path := filepath.Join(tempDir, "custom.yaml")
		if err := os.WriteFile(path, []byte(minimalRuleset), 0644); err != nil {
			t.Fatalf("Failed to write test ruleset: %v", err)
		}
		rs, err := LoadRulesetFile(path)
		if err != nil {
			t.Fatalf("LoadRulesetFile failed: %v", err)
		}
		if rs.Name != "minimal" {
			t.Errorf("Name: expected minimal, got %s", rs.Name)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadRulesetFile(filepath.Join(tempDir, "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestBuiltinRulesets(t *testing.T) {
	embedded.Init(os.DirFS(filepath.Join("..", "..")))

	t.Run("frontline", func(t *testing.T) {
		rs, err := LoadBuiltinRuleset(RulesetFrontline)
		if err != nil {
			t.Fatalf("LoadBuiltinRuleset failed: %v", err)
		}
		if len(rs.Units) != 6 || len(rs.Enemies) != 4 {
			t.Errorf("expected 6 units and 4 enemies, got %d and %d", len(rs.Units), len(rs.Enemies))
		}
		rifleman, ok := rs.Unit(0)
		if !ok || rifleman.Name != "Rifleman" || rifleman.Cost != 50 || rifleman.Cooldown != 80 {
			t.Errorf("unexpected first unit: %+v", rifleman)
		}
		if !rs.Rebirth.KeepInventory || rs.Rebirth.Requirement != RebirthByCaptures {
			t.Errorf("unexpected rebirth rules: %+v", rs.Rebirth)
		}
		if rs.Combat.KillRewards {
			t.Error("frontline should not grant kill rewards")
		}
		for _, u := range rs.Units {
			if u.Support == SupportHeal {
				t.Errorf("frontline should not contain a healer, found %s", u.Name)
			}
		}
	})

	t.Run("field-hospital", func(t *testing.T) {
		rs, err := LoadBuiltinRuleset(RulesetFieldHospital)
		if err != nil {
			t.Fatalf("LoadBuiltinRuleset failed: %v", err)
		}
		medic, ok := rs.UnitByName("Medic")
		if !ok {
			t.Fatal("Medic not found")
		}
		if medic.Support != SupportHeal || medic.SupportRate != DefaultHealRate {
			t.Errorf("unexpected Medic support: %s %v", medic.Support, medic.SupportRate)
		}
		if rs.Rebirth.Requirement != RebirthByWave || rs.Rebirth.KeepInventory {
			t.Errorf("unexpected rebirth rules: %+v", rs.Rebirth)
		}
		if rs.Waves.SpawnInterval() != 800*time.Millisecond {
			t.Errorf("spawn interval: expected 800ms, got %v", rs.Waves.SpawnInterval())
		}
	})

	t.Run("路径前缀错误", func(t *testing.T) {
		if _, err := LoadRuleset("rulesets/frontline.yaml"); err == nil {
			t.Error("expected error for path without data/ prefix")
		}
	})
}

func TestLookups(t *testing.T) {
	rs, err := ParseRuleset([]byte(minimalRuleset))
	if err != nil {
		t.Fatalf("ParseRuleset failed: %v", err)
	}
	if _, ok := rs.Unit(-1); ok {
		t.Error("Unit(-1) should not be found")
	}
	if _, ok := rs.Unit(len(rs.Units)); ok {
		t.Error("Unit(len) should not be found")
	}
	if _, ok := rs.EnemyByName("Ghost Dragon"); ok {
		t.Error("EnemyByName should not find unknown enemy")
	}
	if w := rs.Grid.BoardWidth(); w != 9*72 {
		t.Errorf("BoardWidth: expected %v, got %v", 9*72, w)
	}
}

func TestParseRulesetKeepsExplicitZeros(t *testing.T) {
	data := minimalRuleset + `
waves:
  extraSpawns: 0
  advanceDelayMs: 0
combat:
  captureChance: 0
  engagedPushback: 0
economy:
  rebirthCurrencyFactor: 0
rebirth:
  threshold: 0
`
	rs, err := ParseRuleset([]byte(data))
	if err != nil {
		t.Fatalf("ParseRuleset failed: %v", err)
	}

	if rs.Waves.ExtraSpawns != 0 || rs.Waves.AdvanceDelayMs != 0 {
		t.Errorf("explicit wave zeros were overwritten: %+v", rs.Waves)
	}
	if rs.Combat.CaptureChance != 0 || rs.Combat.EngagedPushback != 0 {
		t.Errorf("explicit combat zeros were overwritten: %+v", rs.Combat)
	}
	if rs.Economy.RebirthCurrencyFactor != 0 {
		t.Errorf("rebirthCurrencyFactor: expected 0, got %v", rs.Economy.RebirthCurrencyFactor)
	}
	if rs.Rebirth.Threshold != 0 {
		t.Errorf("rebirth threshold: expected 0, got %d", rs.Rebirth.Threshold)
	}

	// 同一段中未写出的键仍然使用默认值
	if rs.Waves.SpawnIntervalMs != 900 || rs.Combat.MoveFactor != 2 || rs.Economy.StartingCurrency != 100 {
		t.Errorf("absent keys should keep defaults: waves=%+v combat=%+v economy=%+v", rs.Waves, rs.Combat, rs.Economy)
	}
	if rs.Rebirth.Requirement != RebirthByCaptures || rs.Rebirth.BonusPerRebirth != 10 {
		t.Errorf("absent rebirth keys should keep defaults: %+v", rs.Rebirth)
	}
}
