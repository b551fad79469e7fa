package game

// GameState 一局游戏的经济与进度状态
//
// 网格、单位和敌人存放在 EntityManager 中，这里只保存数值状态。
// GameState 由 simulation.Session 独占持有并显式传递给各系统，不存在全局单例。
type GameState struct {
	Currency int // 当前金币，永不为负
	Wave     int // 当前波次，从 1 开始，一局内只增不减
	Rebirths int // 转生次数

	BonusPerRebirth int // 每次转生增加的加成百分比

	Cooldowns    []int // 每种单位类型剩余的放置冷却（tick），下标与规则集 Units 一致
	SelectedUnit int   // 当前选择的单位类型下标

	Running   bool       // 基地被突破后为 false
	Inventory *Inventory // 捕获背包
	Info      string     // 最近一次重要事件的提示文本
	SessionID string     // 日志关联用的会话 ID，每次重置重新生成

	Tick       uint64 // 本局已执行的 tick 数
	Generation uint64 // 重置代数，延迟回调据此判断自己是否已过期
}

// NewGameState 创建初始状态
// 参数：
//
//	unitTypes - 规则集中的单位类型数量
//	bonusPerRebirth - 每次转生增加的加成百分比
func NewGameState(unitTypes, bonusPerRebirth int) *GameState {
	return &GameState{
		Wave:            1,
		BonusPerRebirth: bonusPerRebirth,
		Cooldowns:       make([]int, unitTypes),
		Running:         true,
		Inventory:       NewInventory(),
	}
}

// RebirthBonus 当前转生加成百分比
// 永远等于 BonusPerRebirth * Rebirths
func (gs *GameState) RebirthBonus() int {
	return gs.BonusPerRebirth * gs.Rebirths
}

// AddCurrency 增加金币，负数被忽略
func (gs *GameState) AddCurrency(amount int) {
	if amount <= 0 {
		return
	}
	gs.Currency += amount
}

// SpendCurrency 扣除金币，如果金币不足返回 false
// 只有当金币充足时才会扣除，否则返回false表示操作失败
func (gs *GameState) SpendCurrency(amount int) bool {
	if gs.Currency < amount {
		return false
	}
	gs.Currency -= amount
	return true
}

// CreditWithBonus 按转生加成发放收益，返回实际到账金额
func (gs *GameState) CreditWithBonus(amount float64) int {
	credited := ApplyBonus(amount, gs.RebirthBonus())
	gs.AddCurrency(credited)
	return credited
}

// NewEvent 创建带有当前波次和 tick 的事件
func (gs *GameState) NewEvent(eventType EventType, data interface{}) Event {
	return Event{Type: eventType, Wave: gs.Wave, Tick: gs.Tick, Data: data}
}

// IncomePerSec 由背包推导的每秒被动收入
func (gs *GameState) IncomePerSec() int {
	return gs.Inventory.IncomePerSec()
}

// DecrementCooldowns 所有单位类型冷却减 1，最低为 0
func (gs *GameState) DecrementCooldowns() {
	for i, cd := range gs.Cooldowns {
		if cd > 0 {
			gs.Cooldowns[i] = cd - 1
		}
	}
}

// ClearCooldowns 清空所有冷却
func (gs *GameState) ClearCooldowns() {
	for i := range gs.Cooldowns {
		gs.Cooldowns[i] = 0
	}
}

// Cooldown 返回指定单位类型的剩余冷却
func (gs *GameState) Cooldown(index int) int {
	if index < 0 || index >= len(gs.Cooldowns) {
		return 0
	}
	return gs.Cooldowns[index]
}
