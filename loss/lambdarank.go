package loss

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/soft"
)

// relEps 是判定两个相关性标注“相同”的阈值；相同相关性的 pair 不产生梯度。
const relEps = 1e-10

// LambdaParams 是 LambdaRank 式梯度的参数。
type LambdaParams struct {
	// Sigma 成对 sigmoid 的锐度参数 σ
	Sigma float64

	// QueryNormalization 启用 query 归一化（Cao et al. 2006 的 μ 权重），
	// 防止 pair 数多的 query 主导训练
	QueryNormalization bool

	// CostSensitivity 启用代价敏感权重（τ 权重）：头部位置的错误代价更高
	CostSensitivity bool

	// ScoreNormalization 启用分数归一化（LightGBM 的 lambdarank_norm）：
	// 用分数距离归一 delta，防止大分差 pair 主导
	ScoreNormalization bool

	// ExponentialGain NDCG 使用指数增益 2^rel - 1；false 时用线性增益
	ExponentialGain bool
}

// DefaultLambdaParams 返回默认参数：σ=1.0，指数增益，
// 开启 query 归一化与代价敏感，关闭分数归一化。
func DefaultLambdaParams() LambdaParams {
	return LambdaParams{
		Sigma:              1.0,
		QueryNormalization: true,
		CostSensitivity:    true,
		ScoreNormalization: false,
		ExponentialGain:    true,
	}
}

// LambdaGradients 计算 LambdaRank 梯度（λ 值）。
//
// 对每个相关性不同的有序 pair (high, low)：
//
//	λ_ij = -σ / (1 + exp(σ·(s_high - s_low))) · |ΔNDCG@k| · τ · μ
//
// 其中 ΔNDCG 是交换两文档位置导致的 NDCG 变化（按 IDCG 归一），
// τ = 1/ln(minPos+2) 是位置代价权重，μ = 1/validPairs 是 query 归一权重。
// λ 累加到 high（正向，应升）与 low（负向，应降）。
// 最后按 XGBoost/LightGBM 风格做 log2(1+Σ|λ|)/Σ|λ| 的整体重标定。
//
// λ 的符号约定为“梯度上升”：λ_i > 0 表示应提高文档 i 的分数。
// relevance 视为常量。k <= 0 表示不截断。
func LambdaGradients(scores, relevance []float64, params LambdaParams, k int) ([]float64, error) {
	if len(scores) == 0 || len(relevance) == 0 {
		return nil, core.NewDomainError(core.ModuleLoss, core.ErrorCodeEmptyInput,
			"loss: lambda gradients of empty input")
	}
	if len(scores) != len(relevance) {
		return nil, core.NewDomainError(core.ModuleLoss, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("loss: scores length %d != relevance length %d", len(scores), len(relevance)))
	}

	sigma := params.Sigma
	if sigma <= 0 {
		sigma = 1.0
	}

	n := len(scores)
	kTrunc := k
	if kTrunc <= 0 || kTrunc > n {
		kTrunc = n
	}

	invIDCG := inverseIdealDCG(relevance, kTrunc, params.ExponentialGain)

	lambdas := make([]float64, n)
	sumLambdas := 0.0

	// 分数归一化需要分数值域
	scoreRange := 1.0
	if params.ScoreNormalization {
		minScore, maxScore := math.Inf(1), math.Inf(-1)
		for _, s := range scores {
			minScore = math.Min(minScore, s)
			maxScore = math.Max(maxScore, s)
		}
		if maxScore > minScore {
			scoreRange = maxScore - minScore
		}
	}

	// query 归一化的有效 pair 计数（μ 权重）
	validPairs := 0
	for i := 0; i < n && i < kTrunc; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(relevance[i]-relevance[j]) > relEps {
				validPairs++
			}
		}
	}
	mu := 1.0
	if params.QueryNormalization && validPairs > 0 {
		mu = 1.0 / float64(validPairs)
	}

	// 只考虑至少一端落在 kTrunc 内的 pair
	for i := 0; i < n && i < kTrunc; i++ {
		for j := i + 1; j < n; j++ {
			relDiff := relevance[i] - relevance[j]
			if math.Abs(relDiff) < relEps {
				continue
			}

			highIdx, lowIdx := i, j
			if relDiff < 0 {
				highIdx, lowIdx = j, i
			}

			delta := deltaNDCG(relevance, highIdx, lowIdx, kTrunc, params.ExponentialGain, invIDCG)

			// 代价敏感权重 τ：头部位置错误权重更高，按较前的位置取权
			tau := 1.0
			if params.CostSensitivity {
				minPos := highIdx
				if lowIdx < minPos {
					minPos = lowIdx
				}
				tau = 1.0 / math.Log(float64(minPos+2))
			}

			scoreDiff := scores[highIdx] - scores[lowIdx]

			normalizedDelta := math.Abs(delta)
			if params.ScoreNormalization {
				normalizedDelta = math.Abs(delta) / (0.01 + math.Abs(scoreDiff)/math.Max(scoreRange, 0.01))
			}

			// -σ/(1+exp(σΔ)) = -σ·σ(-σΔ)，走稳定分支
			lambdaIJ := -sigma * soft.Logistic(-sigma*scoreDiff) * normalizedDelta * tau * mu

			lambdas[highIdx] -= lambdaIJ // lambdaIJ 为负：high 端得到正向推力
			lambdas[lowIdx] += lambdaIJ

			sumLambdas += 2.0 * math.Abs(lambdaIJ)
		}
	}

	// λ 整体重标定（XGBoost/LightGBM 风格），防止 pair 数多的 query 主导
	if params.QueryNormalization && sumLambdas > 0 {
		normFactor := math.Log2(1.0+sumLambdas) / sumLambdas
		for i := range lambdas {
			lambdas[i] *= normFactor
		}
	}

	return lambdas, nil
}
