package game

import (
	"math/rand"
	"time"
)

// WeightedEntry 加权随机表的一项
type WeightedEntry struct {
	Name   string
	Weight float64
}

// RNG 可设置种子的随机数源
// 出怪类型、出怪行和捕获判定都从这里取随机数，固定种子即可复现一局
type RNG struct {
	seed int64
	rng  *rand.Rand
}

// NewRNG 创建随机数源
// 如果 seed 为 0，使用当前时间
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed 返回实际使用的种子
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn 返回 [0, n) 范围内的随机整数
func (r *RNG) Intn(n int) int {
	return r.rng.Intn(n)
}

// Float64 返回 [0.0, 1.0) 范围内的随机数
func (r *RNG) Float64() float64 {
	return r.rng.Float64()
}

// Chance 以概率 p 返回 true
func (r *RNG) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// ChooseWeighted 加权随机选择
// 按顺序累加权重，与 [0, total) 的均匀随机数比较，落在哪一段就选哪一项
func (r *RNG) ChooseWeighted(entries []WeightedEntry) string {
	if len(entries) == 0 {
		return ""
	}

	total := 0.0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return entries[0].Name
	}

	return PickWeighted(entries, r.rng.Float64()*total)
}

// PickWeighted 根据已抽取的值 x ∈ [0, total) 选择对应的项
func PickWeighted(entries []WeightedEntry, x float64) string {
	upto := 0.0
	for _, e := range entries {
		upto += e.Weight
		if x < upto {
			return e.Name
		}
	}
	return entries[len(entries)-1].Name
}
