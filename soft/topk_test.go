package soft

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rushteam/softrank/core"
)

func TestTopKMaskValidation(t *testing.T) {
	scores := []float64{1, 2, 3}
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name string
		k    int
	}{
		{"k zero", 0},
		{"k negative", -1},
		{"k exceeds length", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TopKMask(scores, tt.k, TopKOptions{}, rng); !core.IsInvalidTopK(err) {
				t.Errorf("k=%d 应返回 INVALID_TOPK，实际 %v", tt.k, err)
			}
		})
	}

	t.Run("nil rng", func(t *testing.T) {
		_, err := TopKMask(scores, 1, TopKOptions{}, nil)
		if err == nil {
			t.Fatal("nil rng 应返回错误")
		}
	})
}

func TestTopKMaskBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	scores := []float64{0.1, 0.9, 0.3, 0.7, 0.5}

	mask, err := TopKMask(scores, 2, TopKOptions{Draws: 5}, rng)
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	if len(mask) != len(scores) {
		t.Fatalf("mask 长度 = %d, want %d", len(mask), len(scores))
	}
	for i, v := range mask {
		if v < 0 || v > 1 {
			t.Errorf("mask[%d] = %v 超出 [0,1]", i, v)
		}
	}
}

// 分差远大于 Gumbel 噪声时，质量确定地集中在 top-k 下标
func TestTopKMaskConcentration(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	scores := []float64{10.0, 90.0, 30.0, 70.0}

	mask, err := TopKMask(scores, 2, TopKOptions{}, rng)
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	if mask[1] < 0.9 || mask[3] < 0.9 {
		t.Errorf("top-2 下标质量不足: mask = %v", mask)
	}
	if mask[0] > 0.1 || mask[2] > 0.1 {
		t.Errorf("非 top-2 下标质量过高: mask = %v", mask)
	}
}

// 分差只有零点几时，默认单位幅度的 Gumbel 噪声会主导选择
// （Temperature 同比缩放信号与噪声，救不回来）；调小 NoiseScale 后
// 质量必须集中在真实的 top-2 下标上，且不得额外饱和第三个下标
func TestTopKMaskConcentrationSmallGaps(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.3, 0.7}
	opts := TopKOptions{Temperature: 0.1, NoiseScale: 0.05, Draws: 8}

	mask, err := TopKMask(scores, 2, opts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}

	if mask[1] < 0.9 || mask[3] < 0.8 {
		t.Errorf("top-2 下标质量不足: mask = %v", mask)
	}
	if mask[0] > 0.3 || mask[2] > 0.3 {
		t.Errorf("非 top-2 下标质量过高: mask = %v", mask)
	}
	for _, out := range []int{0, 2} {
		for _, in := range []int{1, 3} {
			if mask[out] >= mask[in] {
				t.Errorf("mask[%d]=%v 不应不低于 mask[%d]=%v: mask = %v",
					out, mask[out], in, mask[in], mask)
			}
		}
	}

	// 相同 seed 与参数必须逐位复现
	again, err := TopKMask(scores, 2, opts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	for i := range mask {
		if mask[i] != again[i] {
			t.Fatalf("相同 seed 结果不一致: %v vs %v", mask, again)
		}
	}
}

// 随机性完全由 rng 控制：相同 seed 产生相同 mask
func TestTopKMaskReproducible(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.3, 0.7}
	opts := TopKOptions{Temperature: 0.5, Draws: 3}

	a, err := TopKMask(scores, 2, opts, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	b, err := TopKMask(scores, 2, opts, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("相同 seed 结果不一致: %v vs %v", a, b)
		}
	}
}

func TestTopKMaskNonFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	scores := []float64{100.0, math.NaN(), 50.0, math.Inf(-1)}

	mask, err := TopKMask(scores, 2, TopKOptions{}, rng)
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	// 非有限分数被压到选择概率最低
	if mask[1] > 0.1 || mask[3] > 0.1 {
		t.Errorf("非有限分数不应被选中: mask = %v", mask)
	}
	if mask[0] < 0.9 || mask[2] < 0.9 {
		t.Errorf("有限 top-2 应被选中: mask = %v", mask)
	}
}

func TestTopKMaskKEqualsN(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	scores := []float64{1.0, 2.0, 3.0}
	mask, err := TopKMask(scores, 3, TopKOptions{}, rng)
	if err != nil {
		t.Fatalf("TopKMask() error = %v", err)
	}
	// k == n：每个元素都应分到可观的选择质量
	for i, v := range mask {
		if v < 0.2 {
			t.Errorf("k=n 时 mask[%d] = %v, 期望可观质量", i, v)
		}
	}
}
