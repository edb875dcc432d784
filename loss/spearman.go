package loss

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/soft"
)

// Spearman 计算基于软排名的 Spearman 相关性损失及其对 predictions 的梯度。
//
// 先分别对 predictions 与 targets 计算软排名，再取归一化的名次差平方和：
//
//	d_i  = softrank(pred)_i - softrank(target)_i
//	loss = 6·Σ d_i² / (n·(n²-1))
//
// 对精确离散名次，该量等于 1 - ρ（Spearman 相关系数），
// 完美一致时为 0，完全逆序时为 2。梯度经 prediction 侧的
// Jacobian 链式回传；targets 视为常量，不求梯度。
//
// 退化情形（确定回退，不报错、不产生 NaN）：
//   - n < 2：损失 0、零梯度
//   - predictions 零方差（全部相等）：返回定义的最大损失 1.0、零梯度
//   - 非有限元素：其软排名为 NaN，对应名次差从求和中剔除
func Spearman(predictions, targets []float64, alpha float64) (float64, []float64, error) {
	if len(predictions) != len(targets) {
		return 0, nil, core.NewDomainError(core.ModuleLoss, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("loss: predictions length %d != targets length %d", len(predictions), len(targets)))
	}

	n := len(predictions)
	grads := make([]float64, n)
	if n < 2 {
		if _, err := soft.Rank(predictions, alpha); err != nil {
			return 0, nil, err
		}
		return 0, grads, nil
	}

	if isConstant(predictions) {
		// 零方差：相关性无定义，按最大损失处理
		if err := validateViaRank(alpha); err != nil {
			return 0, nil, err
		}
		return 1.0, grads, nil
	}

	predRanks, err := soft.Rank(predictions, alpha)
	if err != nil {
		return 0, nil, err
	}
	targetRanks, err := soft.Rank(targets, alpha)
	if err != nil {
		return 0, nil, err
	}

	norm := float64(n) * (float64(n)*float64(n) - 1.0)

	diffs := make([]float64, n)
	sumSq := 0.0
	for i := 0; i < n; i++ {
		d := predRanks[i] - targetRanks[i]
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		diffs[i] = d
		sumSq += d * d
	}
	lossVal := 6.0 * sumSq / norm

	jac, err := soft.Gradient(predictions, alpha)
	if err != nil {
		return 0, nil, err
	}
	// ∂loss/∂p_k = 12/norm · Σ_i d_i · J[i][k]
	coef := 12.0 / norm
	for k := 0; k < n; k++ {
		acc := 0.0
		for i := 0; i < n; i++ {
			acc += diffs[i] * jac.At(i, k)
		}
		grads[k] = coef * acc
	}

	return lossVal, grads, nil
}

// validateViaRank 仅做 alpha 参数校验（零方差早退路径也不允许吞掉参数错误）。
func validateViaRank(alpha float64) error {
	_, err := soft.Rank([]float64{0}, alpha)
	return err
}

// isConstant 判断向量是否零方差（全部有限且相等）。
func isConstant(values []float64) bool {
	if len(values) == 0 {
		return true
	}
	first := values[0]
	if math.IsNaN(first) || math.IsInf(first, 0) {
		return false
	}
	for _, v := range values[1:] {
		if v != first {
			return false
		}
	}
	return true
}
