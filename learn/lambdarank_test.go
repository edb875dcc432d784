package learn

import (
	"math"
	"testing"

	"github.com/rushteam/softrank/core"
)

func TestLambdaRankTrainerComputeGradients(t *testing.T) {
	trainer := NewLambdaRankTrainer()

	// 逆序：最相关文档应得到正向推力
	lambdas, err := trainer.ComputeGradients([]float64{1.0, 2.0, 3.0}, []float64{3.0, 2.0, 1.0})
	if err != nil {
		t.Fatalf("ComputeGradients() error = %v", err)
	}
	if lambdas[0] <= 0 {
		t.Errorf("最相关文档 λ = %v, 期望为正", lambdas[0])
	}
	if lambdas[2] >= 0 {
		t.Errorf("最不相关文档 λ = %v, 期望为负", lambdas[2])
	}
}

func TestLambdaRankTrainerBatch(t *testing.T) {
	trainer := NewLambdaRankTrainer()

	batchScores := [][]float64{
		{1.0, 2.0, 3.0},
		{3.0, 1.0},
	}
	batchRelevance := [][]float64{
		{3.0, 2.0, 1.0},
		{1.0, 0.0},
	}

	batchLambdas, err := trainer.ComputeGradientsBatch(batchScores, batchRelevance)
	if err != nil {
		t.Fatalf("ComputeGradientsBatch() error = %v", err)
	}
	if len(batchLambdas) != 2 {
		t.Fatalf("批量输出长度 = %d, want 2", len(batchLambdas))
	}
	for qi, lambdas := range batchLambdas {
		if len(lambdas) != len(batchScores[qi]) {
			t.Errorf("query %d λ 长度 = %d, want %d", qi, len(lambdas), len(batchScores[qi]))
		}
		for i, l := range lambdas {
			if math.IsNaN(l) || math.IsInf(l, 0) {
				t.Errorf("query %d λ[%d] = %v, 应为有限值", qi, i, l)
			}
		}
	}

	// 跨 query 归一：pair 数少的 query 2（1 pair）按 1/3 缩放
	// 相对 query 1（3 pair），其 λ 不应主导
	if math.Abs(batchLambdas[1][0]) >= math.Abs(batchLambdas[0][0])*10 {
		t.Errorf("跨 query 归一未生效: %v vs %v", batchLambdas[1][0], batchLambdas[0][0])
	}
}

func TestLambdaRankTrainerBatchErrors(t *testing.T) {
	trainer := NewLambdaRankTrainer()

	if _, err := trainer.ComputeGradientsBatch(nil, nil); !core.IsEmptyInput(err) {
		t.Errorf("空批次应返回 EMPTY_INPUT，实际 %v", err)
	}
	if _, err := trainer.ComputeGradientsBatch([][]float64{{1}}, nil); !core.IsLengthMismatch(err) {
		t.Errorf("批次长度不一致应返回 LENGTH_MISMATCH，实际 %v", err)
	}
	_, err := trainer.ComputeGradientsBatch([][]float64{{1, 2}}, [][]float64{{1}})
	if !core.IsLengthMismatch(err) {
		t.Errorf("query 内长度不一致应返回 LENGTH_MISMATCH，实际 %v", err)
	}
}
