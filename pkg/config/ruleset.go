package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/decker502/dragonguard/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SupportClass 单位的辅助能力类型
type SupportClass string

const (
	// SupportNone 无辅助能力
	SupportNone SupportClass = ""
	// SupportRepair 维修：每 tick 为周围单位恢复少量生命值（工程兵）
	SupportRepair SupportClass = "repair"
	// SupportHeal 治疗：每 tick 为周围单位恢复生命值，速率高于维修（医疗兵）
	SupportHeal SupportClass = "heal"
)

// 辅助能力的默认恢复速率（每 tick）
const (
	DefaultRepairRate = 0.1
	DefaultHealRate   = 0.2
)

// RebirthRequirementKind 转生条件类型
type RebirthRequirementKind string

const (
	// RebirthByCaptures 背包中捕获的敌人总数达到阈值
	RebirthByCaptures RebirthRequirementKind = "captures"
	// RebirthByWave 当前波次达到阈值
	RebirthByWave RebirthRequirementKind = "wave"
)

// UnitType 单个单位类型的静态属性
type UnitType struct {
	Name        string       `yaml:"name"`
	Cost        int          `yaml:"cost"`        // 放置花费
	HP          float64      `yaml:"hp"`          // 最大生命值
	Attack      float64      `yaml:"atk"`         // 攻击力，0 表示不攻击
	Speed       float64      `yaml:"speed"`       // 射速除数：开火间隔 = speed * fireTicksPerSpeed
	Cooldown    int          `yaml:"cooldown"`    // 放置冷却（tick）
	Color       string       `yaml:"color"`       // 显示颜色，如 "#4af"
	Description string       `yaml:"desc"`        // 卡片描述
	Support     SupportClass `yaml:"support"`     // 辅助能力类型
	SupportRate float64      `yaml:"supportRate"` // 每 tick 恢复量，0 表示使用默认值
}

// EnemyType 单个敌人类型的静态属性
type EnemyType struct {
	Name         string  `yaml:"name"`
	HP           float64 `yaml:"hp"`          // 基础生命值（第 1 波）
	Attack       float64 `yaml:"atk"`         // 攻击力
	Speed        float64 `yaml:"speed"`       // 移动倍率：每 tick 前进 speed * moveFactor
	Color        string  `yaml:"color"`       // 显示颜色
	Reward       int     `yaml:"reward"`      // 击杀奖励（仅在 killRewards 开启时发放）
	Capturable   bool    `yaml:"good"`        // 是否可捕获
	IncomePerSec int     `yaml:"coinsPerSec"` // 捕获后每只每秒产出的金币
}

// SpawnEntry 出怪权重表的一项
type SpawnEntry struct {
	Enemy  string  `yaml:"enemy"`
	Weight float64 `yaml:"weight"`
}

// GridConfig 战场网格配置
type GridConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	CellSize float64 `yaml:"cellSize"` // 每格边长（世界坐标）
}

// WaveRules 波次规则
type WaveRules struct {
	ExtraSpawns     int     `yaml:"extraSpawns"`     // 第 L 波生成 L + extraSpawns 个敌人
	SpawnIntervalMs int     `yaml:"spawnIntervalMs"` // 同一波相邻两次生成的间隔
	AdvanceDelayMs  int     `yaml:"advanceDelayMs"`  // 清场后进入下一波的延迟
	HPScalePerWave  float64 `yaml:"hpScalePerWave"`  // hp = round(base * (1 + scale*(wave-1)))
	RewardPerWave   int     `yaml:"rewardPerWave"`   // 进入新波次时奖励 round(wave * rewardPerWave * 倍率)
}

// CombatRules 战斗结算规则
type CombatRules struct {
	FireTicksPerSpeed float64 `yaml:"fireTicksPerSpeed"` // 开火阈值 = speed * fireTicksPerSpeed
	MoveFactor        float64 `yaml:"moveFactor"`        // 敌人每 tick 位移 = speed * moveFactor
	MeleeUnitDamage   float64 `yaml:"meleeUnitDamage"`   // 单位受到 enemy.atk * 该系数
	MeleeEnemyDamage  float64 `yaml:"meleeEnemyDamage"`  // 敌人受到 unit.atk * 该系数（反击）
	EngagedPushback   float64 `yaml:"engagedPushback"`   // 双方存活时敌人后退 speed * 该系数
	EnemyReach        float64 `yaml:"enemyReach"`        // 敌人前沿相对中心的偏移
	SpawnInset        float64 `yaml:"spawnInset"`        // 出生点距右边界的距离
	CaptureChance     float64 `yaml:"captureChance"`     // 击杀可捕获敌人时的捕获概率
	KillRewards       bool    `yaml:"killRewards"`       // 击杀时是否发放 reward
}

// EconomyRules 经济规则
type EconomyRules struct {
	StartingCurrency      int     `yaml:"startingCurrency"`      // 初始金币
	RebirthCurrencyFactor float64 `yaml:"rebirthCurrencyFactor"` // 初始金币 += floor(start * rebirths * factor)
	IncomeIntervalMs      int     `yaml:"incomeIntervalMs"`      // 被动收入结算间隔
}

// RebirthRules 转生规则
type RebirthRules struct {
	Requirement     RebirthRequirementKind `yaml:"requirement"`     // captures 或 wave
	Threshold       int                    `yaml:"threshold"`       // 条件阈值
	BonusPerRebirth int                    `yaml:"bonusPerRebirth"` // 每次转生增加的金币加成百分比
	KeepInventory   bool                   `yaml:"keepInventory"`   // 转生时是否保留背包
}

// Ruleset 一套完整的目录与规则
// 两个内置变体共享同一套核心机制，只在数据和调参上不同
type Ruleset struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Grid        GridConfig   `yaml:"grid"`
	Units       []UnitType   `yaml:"units"`
	Enemies     []EnemyType  `yaml:"enemies"`
	SpawnTable  []SpawnEntry `yaml:"spawnTable"`
	Waves       WaveRules    `yaml:"waves"`
	Combat      CombatRules  `yaml:"combat"`
	Economy     EconomyRules `yaml:"economy"`
	Rebirth     RebirthRules `yaml:"rebirth"`
}

// 内置规则集
const (
	RulesetFrontline     = "frontline"
	RulesetFieldHospital = "field-hospital"
)

// BuiltinRulesetPath 返回内置规则集在数据目录中的路径
func BuiltinRulesetPath(name string) string {
	return "data/rulesets/" + name + ".yaml"
}

// LoadRuleset 从嵌入的数据目录加载规则集
// 参数：
//
//	filepath - 以 "data/" 开头的路径
//
// 返回：
//
//	*Ruleset - 解析并校验后的规则集
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadRuleset(filepath string) (*Ruleset, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file %s: %w", filepath, err)
	}
	rs, err := ParseRuleset(data)
	if err != nil {
		return nil, fmt.Errorf("invalid ruleset %s: %w", filepath, err)
	}
	return rs, nil
}

// LoadBuiltinRuleset 按名称加载内置规则集
func LoadBuiltinRuleset(name string) (*Ruleset, error) {
	return LoadRuleset(BuiltinRulesetPath(name))
}

// LoadRulesetFile 从磁盘加载自定义规则集（命令行 -ruleset-file）
func LoadRulesetFile(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file %s: %w", path, err)
	}
	rs, err := ParseRuleset(data)
	if err != nil {
		return nil, fmt.Errorf("invalid ruleset %s: %w", path, err)
	}
	return rs, nil
}

// ParseRuleset 解析 YAML 数据，补齐默认值并校验
// 先填充默认值再解码：YAML 中没有写出的键保留默认值，显式写出的 0 会被保留
func ParseRuleset(data []byte) (*Ruleset, error) {
	rs := DefaultRuleset()
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset YAML: %w", err)
	}
	rs.applyUnitDefaults()
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// DefaultRuleset 返回只包含默认规则参数的规则集（没有单位和敌人）
// 默认值与原始规则一致，YAML 中只需写出与之不同的参数
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Grid: GridConfig{Rows: 5, Cols: 9, CellSize: 72},
		Waves: WaveRules{
			ExtraSpawns:     2,
			SpawnIntervalMs: 900,
			AdvanceDelayMs:  900,
			HPScalePerWave:  0.15,
			RewardPerWave:   25,
		},
		Combat: CombatRules{
			FireTicksPerSpeed: 24,
			MoveFactor:        2,
			MeleeUnitDamage:   0.10,
			MeleeEnemyDamage:  0.20,
			EngagedPushback:   1.3,
			EnemyReach:        24,
			SpawnInset:        10,
			CaptureChance:     0.5,
		},
		Economy: EconomyRules{
			StartingCurrency:      100,
			RebirthCurrencyFactor: 0.5,
			IncomeIntervalMs:      1000,
		},
		Rebirth: RebirthRules{
			Requirement:     RebirthByCaptures,
			Threshold:       3,
			BonusPerRebirth: 10,
		},
	}
}

// applyUnitDefaults 辅助单位未填写 supportRate 时使用该类型的默认速率
func (rs *Ruleset) applyUnitDefaults() {
	for i := range rs.Units {
		u := &rs.Units[i]
		if u.SupportRate == 0 {
			switch u.Support {
			case SupportRepair:
				u.SupportRate = DefaultRepairRate
			case SupportHeal:
				u.SupportRate = DefaultHealRate
			}
		}
	}
}

// Validate 验证规则集的完整性和合法性
func (rs *Ruleset) Validate() error {
	if rs.Grid.Rows < 1 || rs.Grid.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", rs.Grid.Rows, rs.Grid.Cols)
	}
	if rs.Grid.CellSize <= 0 {
		return fmt.Errorf("grid cellSize must be positive, got %.2f", rs.Grid.CellSize)
	}

	if len(rs.Units) == 0 {
		return fmt.Errorf("at least one unit type is required")
	}
	seenUnits := make(map[string]bool, len(rs.Units))
	for _, u := range rs.Units {
		if strings.TrimSpace(u.Name) == "" {
			return fmt.Errorf("unit name cannot be empty")
		}
		if seenUnits[u.Name] {
			return fmt.Errorf("duplicate unit type %q", u.Name)
		}
		seenUnits[u.Name] = true

		if u.Cost < 0 {
			return fmt.Errorf("unit %s: cost cannot be negative, got %d", u.Name, u.Cost)
		}
		if u.HP <= 0 {
			return fmt.Errorf("unit %s: hp must be positive, got %.2f", u.Name, u.HP)
		}
		if u.Attack < 0 {
			return fmt.Errorf("unit %s: atk cannot be negative, got %.2f", u.Name, u.Attack)
		}
		if u.Speed < 0 {
			return fmt.Errorf("unit %s: speed cannot be negative, got %.2f", u.Name, u.Speed)
		}
		if u.Cooldown < 0 {
			return fmt.Errorf("unit %s: cooldown cannot be negative, got %d", u.Name, u.Cooldown)
		}
		switch u.Support {
		case SupportNone, SupportRepair, SupportHeal:
		default:
			return fmt.Errorf("unit %s: unknown support class %q", u.Name, u.Support)
		}
		if u.SupportRate < 0 {
			return fmt.Errorf("unit %s: supportRate cannot be negative, got %.2f", u.Name, u.SupportRate)
		}
	}

	if len(rs.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}
	seenEnemies := make(map[string]bool, len(rs.Enemies))
	for _, e := range rs.Enemies {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("enemy name cannot be empty")
		}
		if seenEnemies[e.Name] {
			return fmt.Errorf("duplicate enemy type %q", e.Name)
		}
		seenEnemies[e.Name] = true

		if e.HP <= 0 {
			return fmt.Errorf("enemy %s: hp must be positive, got %.2f", e.Name, e.HP)
		}
		if e.Attack < 0 || e.Speed < 0 {
			return fmt.Errorf("enemy %s: atk and speed cannot be negative", e.Name)
		}
		if e.Reward < 0 || e.IncomePerSec < 0 {
			return fmt.Errorf("enemy %s: reward and coinsPerSec cannot be negative", e.Name)
		}
	}

	if len(rs.SpawnTable) == 0 {
		return fmt.Errorf("spawnTable cannot be empty")
	}
	totalWeight := 0.0
	for _, entry := range rs.SpawnTable {
		if !seenEnemies[entry.Enemy] {
			return fmt.Errorf("spawnTable references unknown enemy %q", entry.Enemy)
		}
		if entry.Weight < 0 {
			return fmt.Errorf("spawnTable weight for %s cannot be negative, got %.2f", entry.Enemy, entry.Weight)
		}
		totalWeight += entry.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("spawnTable total weight must be positive")
	}

	if rs.Waves.ExtraSpawns < 0 {
		return fmt.Errorf("waves.extraSpawns cannot be negative, got %d", rs.Waves.ExtraSpawns)
	}
	if rs.Waves.SpawnIntervalMs < 0 || rs.Waves.AdvanceDelayMs < 0 {
		return fmt.Errorf("waves delays cannot be negative")
	}
	if rs.Economy.IncomeIntervalMs <= 0 {
		return fmt.Errorf("economy.incomeIntervalMs must be positive, got %d", rs.Economy.IncomeIntervalMs)
	}
	if rs.Economy.StartingCurrency < 0 {
		return fmt.Errorf("economy.startingCurrency cannot be negative, got %d", rs.Economy.StartingCurrency)
	}
	if rs.Combat.FireTicksPerSpeed < 0 || rs.Combat.MoveFactor < 0 || rs.Combat.EngagedPushback < 0 {
		return fmt.Errorf("combat.fireTicksPerSpeed, moveFactor and engagedPushback cannot be negative")
	}
	if rs.Combat.CaptureChance < 0 || rs.Combat.CaptureChance > 1 {
		return fmt.Errorf("combat.captureChance must be within [0, 1], got %.2f", rs.Combat.CaptureChance)
	}

	switch rs.Rebirth.Requirement {
	case RebirthByCaptures, RebirthByWave:
	default:
		return fmt.Errorf("rebirth.requirement must be %q or %q, got %q", RebirthByCaptures, RebirthByWave, rs.Rebirth.Requirement)
	}
	if rs.Rebirth.Threshold < 0 {
		return fmt.Errorf("rebirth.threshold cannot be negative, got %d", rs.Rebirth.Threshold)
	}

	return nil
}

// Unit 按下标获取单位类型
func (rs *Ruleset) Unit(index int) (*UnitType, bool) {
	if index < 0 || index >= len(rs.Units) {
		return nil, false
	}
	return &rs.Units[index], true
}

// UnitByName 按名称获取单位类型
// 如果单位类型不存在，返回 nil 和 false
func (rs *Ruleset) UnitByName(name string) (*UnitType, bool) {
	for i := range rs.Units {
		if rs.Units[i].Name == name {
			return &rs.Units[i], true
		}
	}
	return nil, false
}

// EnemyByName 按名称获取敌人类型
// 如果敌人类型不存在，返回 nil 和 false
func (rs *Ruleset) EnemyByName(name string) (*EnemyType, bool) {
	for i := range rs.Enemies {
		if rs.Enemies[i].Name == name {
			return &rs.Enemies[i], true
		}
	}
	return nil, false
}

// SpawnInterval 同一波相邻生成事件的间隔
func (w WaveRules) SpawnInterval() time.Duration {
	return time.Duration(w.SpawnIntervalMs) * time.Millisecond
}

// AdvanceDelay 清场到下一波开始的延迟
func (w WaveRules) AdvanceDelay() time.Duration {
	return time.Duration(w.AdvanceDelayMs) * time.Millisecond
}

// IncomeInterval 被动收入结算间隔
func (e EconomyRules) IncomeInterval() time.Duration {
	return time.Duration(e.IncomeIntervalMs) * time.Millisecond
}

// BoardWidth 战场总宽度（世界坐标）
func (g GridConfig) BoardWidth() float64 {
	return float64(g.Cols) * g.CellSize
}
