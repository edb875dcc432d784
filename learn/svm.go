package learn

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
)

// RankingSVMParams 是 Ranking SVM 的参数。
// Ranking SVM 把排序转化为文档 pair 展开空间上的二分类问题
// （Herbrich 1999/2000; Joachims 2002; Cao et al. 2006 的 μ/τ 加权）。
type RankingSVMParams struct {
	// C SVM 正则参数：间隔最大化与训练误差之间的权衡
	C float64

	// QueryNormalization 启用 query 归一化（μ 权重）
	QueryNormalization bool

	// CostSensitivity 启用代价敏感权重（τ 权重）：头部位置错误代价更高
	CostSensitivity bool

	// Epsilon 相关性比较的数值稳定阈值
	Epsilon float64
}

// DefaultRankingSVMParams 返回默认参数：C=1.0，开启 μ/τ 加权。
func DefaultRankingSVMParams() RankingSVMParams {
	return RankingSVMParams{
		C:                  1.0,
		QueryNormalization: true,
		CostSensitivity:    true,
		Epsilon:            1e-10,
	}
}

// PairwiseHingeLoss 计算单个 pair 的 hinge 损失：max(0, 1 - (scoreHigh - scoreLow))。
func PairwiseHingeLoss(scoreHigh, scoreLow float64) float64 {
	return math.Max(0, 1.0-(scoreHigh-scoreLow))
}

// RankingSVMTrainer 用 Ranking SVM 梯度训练排序模型。
type RankingSVMTrainer struct {
	Params RankingSVMParams
}

// NewRankingSVMTrainer 创建使用默认参数的 Ranking SVM 训练器。
func NewRankingSVMTrainer() *RankingSVMTrainer {
	return &RankingSVMTrainer{Params: DefaultRankingSVMParams()}
}

func (t *RankingSVMTrainer) Name() string { return "ranking_svm" }

// ComputeGradients 计算单个 query 的梯度。
//
// 对每个相关性不同的 pair (high, low)，若间隔被违反（scoreDiff < 1）：
// gradient[high] += C·μ·τ，gradient[low] -= C·μ·τ。
// 符号约定与 LambdaRank 一致：正梯度表示应提高该文档的分数。
func (t *RankingSVMTrainer) ComputeGradients(scores, relevance []float64) ([]float64, error) {
	if len(scores) == 0 || len(relevance) == 0 {
		return nil, core.NewDomainError(core.ModuleLearn, core.ErrorCodeEmptyInput,
			"learn: ranking svm gradients of empty input")
	}
	if len(scores) != len(relevance) {
		return nil, core.NewDomainError(core.ModuleLearn, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("learn: scores length %d != relevance length %d", len(scores), len(relevance)))
	}

	params := t.Params
	if params.C == 0 {
		params.C = 1.0
	}
	eps := params.Epsilon
	if eps <= 0 {
		eps = 1e-10
	}

	n := len(scores)
	gradients := make([]float64, n)

	validPairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(relevance[i]-relevance[j]) > eps {
				validPairs++
			}
		}
	}
	mu := 1.0
	if params.QueryNormalization && validPairs > 0 {
		mu = 1.0 / float64(validPairs)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			relDiff := relevance[i] - relevance[j]
			if math.Abs(relDiff) < eps {
				continue
			}

			highIdx, lowIdx := i, j
			if relDiff < 0 {
				highIdx, lowIdx = j, i
			}

			scoreDiff := scores[highIdx] - scores[lowIdx]
			if scoreDiff >= 1.0 {
				continue // 间隔已满足，无梯度贡献
			}

			tau := 1.0
			if params.CostSensitivity {
				minPos := highIdx
				if lowIdx < minPos {
					minPos = lowIdx
				}
				tau = 1.0 / math.Log(float64(minPos+2))
			}

			contribution := params.C * mu * tau
			gradients[highIdx] += contribution
			gradients[lowIdx] -= contribution
		}
	}

	return gradients, nil
}
