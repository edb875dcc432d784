package loss

import (
	"math"
	"testing"

	"github.com/rushteam/softrank/core"
)

func TestNDCGAt(t *testing.T) {
	tests := []struct {
		name        string
		relevance   []float64
		k           int
		exponential bool
		want        float64
		tol         float64
	}{
		{"perfect ranking", []float64{3, 2, 1, 0}, 0, true, 1.0, 1e-12},
		{"perfect ranking linear gain", []float64{3, 2, 1}, 0, false, 1.0, 1e-12},
		{"all zero relevance", []float64{0, 0, 0}, 0, true, 0.0, 0},
		{"uniform relevance any order", []float64{1, 1, 1}, 0, true, 1.0, 1e-12},
		{"single doc", []float64{2}, 1, true, 1.0, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NDCGAt(tt.relevance, tt.k, tt.exponential)
			if err != nil {
				t.Fatalf("NDCGAt() error = %v", err)
			}
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("NDCGAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNDCGAtWorstOrdering(t *testing.T) {
	// 完全逆序排列的 NDCG 应严格小于 1
	got, err := NDCGAt([]float64{0, 1, 2, 3}, 0, true)
	if err != nil {
		t.Fatalf("NDCGAt() error = %v", err)
	}
	if got >= 1.0 || got <= 0.0 {
		t.Errorf("逆序 NDCG = %v, 期望落在 (0,1)", got)
	}

	best, err := NDCGAt([]float64{3, 2, 1, 0}, 0, true)
	if err != nil {
		t.Fatalf("NDCGAt() error = %v", err)
	}
	if got >= best {
		t.Errorf("逆序 NDCG %v 不应大于等于正序 %v", got, best)
	}
}

func TestNDCGAtTruncation(t *testing.T) {
	// @1 只看第一个位置：最高相关性在首位即为 1
	got, err := NDCGAt([]float64{3, 0, 0}, 1, true)
	if err != nil {
		t.Fatalf("NDCGAt() error = %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("NDCG@1 = %v, want 1.0", got)
	}

	// 最高相关性不在首位：@1 严格小于 1
	got, err = NDCGAt([]float64{1, 3, 0}, 1, true)
	if err != nil {
		t.Fatalf("NDCGAt() error = %v", err)
	}
	if got >= 1.0 {
		t.Errorf("NDCG@1 = %v, 期望小于 1", got)
	}
}

func TestNDCGAtErrors(t *testing.T) {
	if _, err := NDCGAt(nil, 0, true); !core.IsEmptyInput(err) {
		t.Errorf("空输入应返回 EMPTY_INPUT，实际 %v", err)
	}
	if _, err := NDCGAt([]float64{1, 2}, 3, true); !core.IsInvalidTopK(err) {
		t.Errorf("k 超长应返回 INVALID_TOPK，实际 %v", err)
	}
}

func TestGain(t *testing.T) {
	if got := Gain(3, true); math.Abs(got-7.0) > 1e-12 {
		t.Errorf("指数增益 Gain(3) = %v, want 7", got)
	}
	if got := Gain(3, false); got != 3.0 {
		t.Errorf("线性增益 Gain(3) = %v, want 3", got)
	}
	if got := Gain(0, true); got != 0.0 {
		t.Errorf("Gain(0) = %v, want 0", got)
	}
}

func TestDeltaNDCG(t *testing.T) {
	relevance := []float64{3, 1, 2, 0}
	inv := inverseIdealDCG(relevance, 4, true)

	// 交换同相关性位置：Δ = 0
	if d := deltaNDCG([]float64{2, 2, 1}, 0, 1, 3, true, inverseIdealDCG([]float64{2, 2, 1}, 3, true)); d != 0 {
		t.Errorf("同相关性交换 Δ = %v, want 0", d)
	}

	// 把低相关性换到更靠前 → NDCG 降低，Δ < 0
	if d := deltaNDCG(relevance, 0, 3, 4, true, inv); d >= 0 {
		t.Errorf("劣化交换 Δ = %v, 期望为负", d)
	}

	// 对称性：swap(i,j) == swap(j,i)
	if d1, d2 := deltaNDCG(relevance, 1, 2, 4, true, inv), deltaNDCG(relevance, 2, 1, 4, true, inv); d1 != d2 {
		t.Errorf("Δ 不对称: %v vs %v", d1, d2)
	}

	// 两个位置都在 k 之外：Δ = 0
	if d := deltaNDCG(relevance, 2, 3, 2, true, inv); d != 0 {
		t.Errorf("k 外交换 Δ = %v, want 0", d)
	}
}
