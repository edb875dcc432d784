package soft

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
)

// Rank 计算软排名（soft rank）：把离散的名次松弛为可微的连续值。
//
// 算法（sigmoid 变体，O(n²)）：
//
//	rank_i = (n-1) / valid_i * Σ_{j≠i} σ(alpha * (v_i - v_j))
//
// 其中 valid_i 是与 i 比较产生有限结果的次数。输出满足：
//   - 每个分量落在 [0, n-1]：唯一最小值在大 alpha 下趋于 0，唯一最大值趋于 n-1
//   - 全有限输入时 Σ rank ≈ n(n-1)/2，与 alpha 无关（σ(x)+σ(-x)=1）
//   - 并列元素的软排名趋于并列名次的平均值（σ(0)=0.5），不做任意 tiebreak
//
// 非有限元素处理：NaN/Inf 元素自身排名输出 NaN，且不计入其他元素的
// valid 比较数，不会把污染扩散到无关元素。有限元素若一次有效比较都没有
// （例如 n==1 或其余元素全部非有限），排名回退为 0。
//
// 输入不会被修改；空输入返回空输出。alpha 必须为有限正数，
// 否则返回 INVALID_REGULARIZATION 错误。
func Rank(values []float64, alpha float64) ([]float64, error) {
	return RankWithMethod(values, alpha, MethodSigmoid)
}

// RankWithMethod 按指定变体计算软排名。所有变体共享同一前向契约
// （取值范围、排名和、渐近收敛），只在比较核与有效比较计数上不同。
func RankWithMethod(values []float64, alpha float64, method Method) ([]float64, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, core.NewDomainError(core.ModuleSoft, core.ErrorCodeNotSupported,
			fmt.Sprintf("soft: unknown ranking method %q", method))
	}

	n := len(values)
	if n == 0 {
		return []float64{}, nil
	}
	if n == 1 {
		if !isFinite(values[0]) {
			return []float64{math.NaN()}, nil
		}
		return []float64{0.0}, nil
	}

	switch method {
	case MethodSigmoid:
		return rankPairwise(values, alpha, sigmoidKernel), nil
	case MethodCDF:
		return rankPairwise(values, alpha, cdfKernel), nil
	case MethodPermutation:
		return rankPermutation(values, alpha), nil
	case MethodWindowed:
		return rankWindowed(values, alpha, DefaultWindow), nil
	}
	// method.Valid() 已兜底，不可达
	return nil, core.NewDomainError(core.ModuleSoft, core.ErrorCodeNotSupported,
		fmt.Sprintf("soft: unknown ranking method %q", method))
}

// compareKernel 把带符号的分差 alpha*(v_i - v_j) 映射到 [0,1] 的胜率。
type compareKernel func(scaledDiff float64) float64

func sigmoidKernel(scaledDiff float64) float64 { return Logistic(scaledDiff) }

// cdfKernel 把比较建模为两个独立单位方差高斯噪声下的判断：
// P(v_i + ε_i > v_j + ε_j) = Φ(alpha·(v_i-v_j)/√2)。
func cdfKernel(scaledDiff float64) float64 { return NormalCDF(scaledDiff / math.Sqrt2) }

// rankPairwise 是 sigmoid / cdf 变体共用的 O(n²) 前向：
// 逐对比较、按有效比较数归一、再放缩到 [0, n-1]。
func rankPairwise(values []float64, alpha float64, kernel compareKernel) []float64 {
	n := len(values)
	ranks := make([]float64, n)

	for i := 0; i < n; i++ {
		if !isFinite(values[i]) {
			ranks[i] = math.NaN()
			continue
		}

		sum := 0.0
		valid := 0
		for j := 0; j < n; j++ {
			if j == i || !isFinite(values[j]) {
				continue
			}
			sum += kernel(alpha * (values[i] - values[j]))
			valid++
		}

		// 零有效比较：确定的中性回退，而不是报错
		ranks[i] = SafeDiv(float64(n-1)*sum, float64(valid), 0.0)
	}
	return ranks
}

func validateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
		return core.NewDomainError(core.ModuleSoft, core.ErrorCodeInvalidRegularization,
			fmt.Sprintf("soft: regularization alpha must be a finite positive number, got %v", alpha))
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
