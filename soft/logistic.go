package soft

import "math"

// logisticClamp 是 sigmoid 的截断阈值：|x| 超过该值后 exp 已无精度意义，
// 直接返回 0/1，避免极端 alpha 下的指数溢出。
const logisticClamp = 500.0

// Logistic 是数值稳定的 sigmoid：1 / (1 + exp(-x))。
//
// 稳定性约定（全库唯一实现，所有算子共用）：
//   - x > +500 返回精确的 1.0；x < -500 返回精确的 0.0
//   - x >= 0 走 1/(1+exp(-x)) 分支；x < 0 走 exp(x)/(1+exp(x)) 分支，
//     两个分支都只对非正参数求 exp，不会上溢
//   - 对一切有限输入返回有限值，且单调不减、取值范围 [0, 1]
func Logistic(x float64) float64 {
	if x > logisticClamp {
		return 1.0
	}
	if x < -logisticClamp {
		return 0.0
	}
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// LogisticDeriv 是 sigmoid 的导数：σ(x)·(1-σ(x))。
// 截断区间外导数为 0（与 Logistic 的截断语义一致）。
func LogisticDeriv(x float64) float64 {
	s := Logistic(x)
	return s * (1.0 - s)
}

// NormalCDF 是标准正态分布函数 Φ(x)，用于 CDF 变体的比较核。
func NormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// normalPDF 是标准正态密度 φ(x)。
func normalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2.0*math.Pi)
}

// SafeDiv 是安全除法：分母为 0 时返回 fallback 而不是 Inf/NaN。
func SafeDiv(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}
