package soft

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rushteam/softrank/core"
)

// TopKOptions 是随机化软 top-k 的配置。
type TopKOptions struct {
	// Temperature 松弛温度，越小 mask 越接近 0/1；<=0 时取默认值 1.0
	Temperature float64

	// NoiseScale Gumbel 噪声幅度（与分数同量纲）；<=0 时取默认值 1.0。
	// Temperature 同比缩放信号与噪声，只控制 mask 的软硬；
	// 噪声与分差的相对强弱由 NoiseScale 决定——分差远小于 1 时
	// 保持默认值会让噪声主导选择，应相应调小。
	NoiseScale float64

	// Draws 独立扰动采样次数 m，对各次结果逐元素取 max 以锐化 mask。
	// 增大 Draws 以 m 倍计算量换取更锐的选择；<=0 时取默认值 1
	Draws int
}

// TopKMask 计算可微的 top-k 选择 mask：对分数注入独立 Gumbel 噪声后做
// softmax 式松弛（软置换矩阵前 k 行按列求和），在 m 次独立采样间逐元素
// 取最大值。输出长度与 scores 相同，每个分量落在 [0, 1]，质量集中在
// 分数最大的 k 个下标上，温度趋零时逼近精确 0/1 选择。
//
// 随机性完全由调用方传入的 rng 控制：本函数不触碰任何全局随机状态，
// 相同的 seed 与参数产生完全相同的 mask（可复现性是调用方属性）。
//
// k 必须落在 [1, len(scores)]，否则返回 INVALID_TOPK；rng 不可为 nil。
func TopKMask(scores []float64, k int, opts TopKOptions, rng *rand.Rand) ([]float64, error) {
	n := len(scores)
	if k <= 0 || k > n {
		return nil, core.NewDomainError(core.ModuleSoft, core.ErrorCodeInvalidTopK,
			fmt.Sprintf("soft: top-k k=%d out of range [1, %d]", k, n))
	}
	if rng == nil {
		return nil, core.NewDomainError(core.ModuleSoft, core.ErrorCodeInvalidInput,
			"soft: top-k requires a caller-owned *rand.Rand (no global random state)")
	}

	temp := opts.Temperature
	if temp <= 0 {
		temp = 1.0
	}
	noise := opts.NoiseScale
	if noise <= 0 {
		noise = 1.0
	}
	draws := opts.Draws
	if draws <= 0 {
		draws = 1
	}

	mask := make([]float64, n)
	perturbed := make([]float64, n)
	khot := make([]float64, n)

	for d := 0; d < draws; d++ {
		for i, s := range scores {
			g := gumbel(rng)
			if !isFinite(s) {
				// 非有限分数：整列剔除，不污染其他元素
				perturbed[i] = math.NaN()
				continue
			}
			perturbed[i] = s + noise*g
		}

		relaxedKHot(perturbed, k, temp, khot)

		for i := range mask {
			if khot[i] > mask[i] {
				mask[i] = khot[i]
			}
		}
	}
	return mask, nil
}

// relaxedKHot 用软置换矩阵的前 k 行构造软 k-hot 向量并写入 khot：
// 第 p 行是“占据降序第 p 位”的 softmax 权重（与 rankPermutation 同一构造），
// 前 k 行按列求和即各元素进入 top-k 的软隶属度。每行在温度趋零时收敛到
// 精确的第 p 大元素，因此 khot 逼近离散的 k-hot 选择。
// 非有限元素权重恒为 0；khot 截断到 [0, 1]。
func relaxedKHot(values []float64, k int, temp float64, khot []float64) {
	n := len(values)
	for i := range khot {
		khot[i] = 0
	}

	finite := make([]int, 0, n)
	for i, v := range values {
		if isFinite(v) {
			finite = append(finite, i)
		}
	}
	m := len(finite)
	if m == 0 {
		return
	}
	if m == 1 {
		khot[finite[0]] = 1.0
		return
	}
	if k > m {
		k = m
	}

	// A[j] = Σ_k |v_j - v_k|（有限子集内）
	absSum := make([]float64, m)
	for a := 0; a < m; a++ {
		va := values[finite[a]]
		for b := 0; b < m; b++ {
			absSum[a] += math.Abs(va - values[finite[b]])
		}
	}

	logits := make([]float64, m)
	probs := make([]float64, m)
	for p := 0; p < k; p++ {
		coef := float64(m + 1 - 2*(p+1))
		for j := 0; j < m; j++ {
			logits[j] = (coef*values[finite[j]] - absSum[j]) / temp
		}
		softmaxStable(logits, probs)
		for j, idx := range finite {
			khot[idx] += probs[j]
		}
	}

	for i, v := range khot {
		if v > 1 {
			khot[i] = 1
		}
	}
}

// softmaxStable 是支持 -Inf logit 的稳定 softmax，结果写入 out。
func softmaxStable(logits, out []float64) {
	maxv := math.Inf(-1)
	for _, v := range logits {
		if v > maxv {
			maxv = v
		}
	}
	if math.IsInf(maxv, -1) {
		// 全部被抑制：退化为均匀分布
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return
	}
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - maxv)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
}

// gumbel 采样标准 Gumbel(0,1) 噪声：-ln(-ln(U))。
func gumbel(rng *rand.Rand) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return -math.Log(-math.Log(u))
}
