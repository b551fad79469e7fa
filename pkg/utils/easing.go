package utils

import "math"

// 缓动函数接受进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FadeIn 计算第 frame 帧的淡入透明度，从 from 缓出到 1
// 淡入结束后（或 frames <= 0 时）返回 1
func FadeIn(frame, frames int, from float64) float64 {
	if frames <= 0 || frame >= frames {
		return 1
	}
	return Lerp(from, 1, EaseOutCubic(float64(frame)/float64(frames)))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
