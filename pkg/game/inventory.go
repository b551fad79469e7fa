package game

// InventoryEntry 背包中一种被捕获敌人的记录
type InventoryEntry struct {
	Name  string // 敌人类型名称
	Count int    // 捕获数量
	Rate  int    // 每只每秒产出的金币
	Color string // 显示颜色
}

// Income 该条目每秒产出的金币
func (e InventoryEntry) Income() int {
	return e.Rate * e.Count
}

// Inventory 捕获背包
// 每种类型只有一个条目，按首次捕获顺序排列
type Inventory struct {
	entries []InventoryEntry
}

// NewInventory 创建空背包
func NewInventory() *Inventory {
	return &Inventory{}
}

// Add 记录一次捕获，返回该类型捕获后的数量
func (inv *Inventory) Add(name string, rate int, color string) int {
	for i := range inv.entries {
		if inv.entries[i].Name == name {
			inv.entries[i].Count++
			return inv.entries[i].Count
		}
	}
	inv.entries = append(inv.entries, InventoryEntry{Name: name, Count: 1, Rate: rate, Color: color})
	return 1
}

// Count 返回指定类型的捕获数量
func (inv *Inventory) Count(name string) int {
	for _, e := range inv.entries {
		if e.Name == name {
			return e.Count
		}
	}
	return 0
}

// Total 所有类型的捕获总数
func (inv *Inventory) Total() int {
	total := 0
	for _, e := range inv.entries {
		total += e.Count
	}
	return total
}

// IncomePerSec 每秒被动收入（未计转生加成）
func (inv *Inventory) IncomePerSec() int {
	income := 0
	for _, e := range inv.entries {
		income += e.Income()
	}
	return income
}

// Entries 返回条目副本
func (inv *Inventory) Entries() []InventoryEntry {
	out := make([]InventoryEntry, len(inv.entries))
	copy(out, inv.entries)
	return out
}

// Clear 清空背包
func (inv *Inventory) Clear() {
	inv.entries = inv.entries[:0]
}
