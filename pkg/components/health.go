package components

// HealthComponent 存储实体的生命值信息
// 用于单位和敌人等可被攻击的实体
//
// 生命值使用浮点数：近战伤害按攻击力的百分比结算，维修/治疗每 tick 只恢复零点几点
type HealthComponent struct {
	Current float64 // 当前生命值，可能因伤害变为负数
	Max     float64 // 最大生命值（单位为类型血量，敌人为按波次缩放后的出生血量）
}

// IsDead 判断实体是否已死亡（生命值 <= 0）
func (h *HealthComponent) IsDead() bool {
	return h.Current <= 0
}

// Ratio 返回用于显示的生命值比例，结果限制在 [0, 1]
func (h *HealthComponent) Ratio() float64 {
	if h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	if h.Current >= h.Max {
		return 1
	}
	return h.Current / h.Max
}

// Displayed 返回用于显示的生命值（负数钳制为 0）
func (h *HealthComponent) Displayed() float64 {
	if h.Current < 0 {
		return 0
	}
	return h.Current
}
