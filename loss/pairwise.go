package loss

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/soft"
)

// RankNet 计算 RankNet 式 logistic 成对损失及其对 scores 的梯度。
//
// 对每个相关性不同的有序 pair (high, low)，分差 Δ = s_high - s_low：
//
//	loss_pair = log(1 + exp(-σΔ))
//	∂loss/∂s_high = -σ·σ(-σΔ)，∂loss/∂s_low 为其相反数
//
// 损失与梯度都按有效 pair 数取均值，避免长列表主导。
// relevance 视为常量；没有任何相关性不同的 pair（全并列）时
// 退化为损失 0、零梯度（确定回退，不报错）。
func RankNet(scores, relevance []float64, sigma float64) (float64, []float64, error) {
	if len(scores) != len(relevance) {
		return 0, nil, core.NewDomainError(core.ModuleLoss, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("loss: scores length %d != relevance length %d", len(scores), len(relevance)))
	}
	if sigma <= 0 {
		sigma = 1.0
	}

	n := len(scores)
	grads := make([]float64, n)
	if n < 2 {
		return 0, grads, nil
	}

	validPairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(relevance[i]-relevance[j]) > relEps {
				validPairs++
			}
		}
	}
	if validPairs == 0 {
		return 0, grads, nil
	}
	mu := 1.0 / float64(validPairs)

	total := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			relDiff := relevance[i] - relevance[j]
			if math.Abs(relDiff) < relEps {
				continue
			}

			highIdx, lowIdx := i, j
			if relDiff < 0 {
				highIdx, lowIdx = j, i
			}

			delta := scores[highIdx] - scores[lowIdx]
			total += softplusStable(-sigma*delta) * mu

			g := sigma * soft.Logistic(-sigma*delta) * mu
			grads[highIdx] -= g
			grads[lowIdx] += g
		}
	}

	return total, grads, nil
}

// softplusStable 计算 log(1+exp(x))，大参数退化为 x 避免上溢。
func softplusStable(x float64) float64 {
	if x > 500 {
		return x
	}
	if x < -500 {
		return 0
	}
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}
