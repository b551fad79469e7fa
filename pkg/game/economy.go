package game

import "math"

// ApplyBonus 对金币收益应用转生加成
// 结果为 round(amount * (1 + bonusPercent/100))，所有收益（波次奖励、被动收入、击杀奖励）都走这里
func ApplyBonus(amount float64, bonusPercent int) int {
	return int(math.Round(amount * (1 + float64(bonusPercent)/100)))
}

// WaveReward 进入第 wave 波时发放的奖励
func WaveReward(wave, rewardPerWave, bonusPercent int) int {
	return ApplyBonus(float64(wave*rewardPerWave), bonusPercent)
}

// StartingCurrency 重置后的初始金币
// start + floor(start * rebirths * factor)
func StartingCurrency(start, rebirths int, factor float64) int {
	return start + int(math.Floor(float64(start)*float64(rebirths)*factor))
}

// ScaledEnemyHP 第 wave 波生成的敌人生命值
// round(base * (1 + scale*(wave-1)))
func ScaledEnemyHP(base float64, wave int, scale float64) float64 {
	return math.Round(base * (1 + scale*float64(wave-1)))
}
