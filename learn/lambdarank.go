package learn

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/loss"
)

// LambdaRankTrainer 用 LambdaRank 梯度训练排序模型。
// 单 query 的 λ 计算委托给 loss.LambdaGradients；批量接口额外做
// 跨 query 的 μ 归一化（按各 query 的有效 pair 数相对 max pair 数加权）。
type LambdaRankTrainer struct {
	Params loss.LambdaParams

	// K 优化目标 NDCG@K；<=0 表示不截断
	K int
}

// NewLambdaRankTrainer 创建使用默认参数的 LambdaRank 训练器。
func NewLambdaRankTrainer() *LambdaRankTrainer {
	return &LambdaRankTrainer{Params: loss.DefaultLambdaParams()}
}

func (t *LambdaRankTrainer) Name() string { return "lambdarank" }

// ComputeGradients 计算单个 query 的 λ 梯度（λ_i > 0 表示应提高文档 i 的分数）。
func (t *LambdaRankTrainer) ComputeGradients(scores, relevance []float64) ([]float64, error) {
	return loss.LambdaGradients(scores, relevance, t.Params, t.K)
}

// ComputeGradientsBatch 计算一批 query 的 λ 梯度，并做跨 query 归一化：
// μ_q = pairs_q / maxPairs，pair 数多的 query 不会主导整批更新。
func (t *LambdaRankTrainer) ComputeGradientsBatch(batchScores, batchRelevance [][]float64) ([][]float64, error) {
	if len(batchScores) != len(batchRelevance) {
		return nil, core.NewDomainError(core.ModuleLearn, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("learn: batch scores length %d != batch relevance length %d",
				len(batchScores), len(batchRelevance)))
	}
	if len(batchScores) == 0 {
		return nil, core.NewDomainError(core.ModuleLearn, core.ErrorCodeEmptyInput,
			"learn: empty training batch")
	}

	pairsPerQuery := make([]int, len(batchScores))
	for qi := range batchScores {
		scores, relevance := batchScores[qi], batchRelevance[qi]
		if len(scores) != len(relevance) {
			return nil, core.NewDomainError(core.ModuleLearn, core.ErrorCodeLengthMismatch,
				fmt.Sprintf("learn: query %d scores length %d != relevance length %d",
					qi, len(scores), len(relevance)))
		}
		pairs := 0
		for i := 0; i < len(relevance); i++ {
			for j := i + 1; j < len(relevance); j++ {
				if math.Abs(relevance[i]-relevance[j]) > 1e-10 {
					pairs++
				}
			}
		}
		pairsPerQuery[qi] = pairs
	}

	maxPairs := 0
	for _, p := range pairsPerQuery {
		if p > maxPairs {
			maxPairs = p
		}
	}

	batchLambdas := make([][]float64, len(batchScores))
	for qi := range batchScores {
		lambdas, err := loss.LambdaGradients(batchScores[qi], batchRelevance[qi], t.Params, t.K)
		if err != nil {
			return nil, err
		}

		if t.Params.QueryNormalization && maxPairs > 0 {
			mu := float64(pairsPerQuery[qi]) / float64(maxPairs)
			for i := range lambdas {
				lambdas[i] *= mu
			}
		}
		batchLambdas[qi] = lambdas
	}
	return batchLambdas, nil
}
