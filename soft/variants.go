package soft

import (
	"math"
	"sort"
)

// rankPermutation 是置换矩阵式松弛：构造一个行随机的软置换矩阵 P，
// P[p][j] 表示“元素 j 占据降序第 p 位”的权重（softmax 行归一），
// 元素的软排名取位置索引的期望。
//
//	c_p[j] = (m+1-2(p+1))·v_j - Σ_k |v_j - v_k|
//	P[p][j] = softmax_j(alpha · c_p[j])
//	rank_j  = Σ_p (m-1-p) · P[p][j]
//
// 每行权重和为 1，因此排名和恒为 m(m-1)/2，与 alpha 无关；
// 并列元素的列完全相同，软排名自然取并列名次的平均。
//
// P 只保证行随机而非列随机：中等 alpha 下一个元素可能在多个位置行上
// 同时占据可观权重，期望位置会溢出 [0, m-1]。输出在放缩前按列截断回
// [0, m-1]，截断触发时排名和对 m(m-1)/2 有微小偏离。
//
// 有效比较计数的差异：该变体对非有限元素的处理是整列剔除——
// 先在有限子集（m 个元素）上计算，再按 (n-1)/(m-1) 放缩回 [0, n-1]。
func rankPermutation(values []float64, alpha float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)

	finite := make([]int, 0, n)
	for i, v := range values {
		if isFinite(v) {
			finite = append(finite, i)
		} else {
			ranks[i] = math.NaN()
		}
	}

	m := len(finite)
	if m == 0 {
		return ranks
	}
	if m == 1 {
		ranks[finite[0]] = 0.0
		return ranks
	}

	// A[j] = Σ_k |v_j - v_k|（有限子集内）
	absSum := make([]float64, m)
	for a := 0; a < m; a++ {
		va := values[finite[a]]
		for b := 0; b < m; b++ {
			absSum[a] += math.Abs(va - values[finite[b]])
		}
	}

	soft := make([]float64, m)
	logits := make([]float64, m)
	for p := 0; p < m; p++ {
		coef := float64(m + 1 - 2*(p+1))
		for j := 0; j < m; j++ {
			logits[j] = alpha * (coef*values[finite[j]] - absSum[j])
		}
		softmaxInPlace(logits)
		pos := float64(m - 1 - p) // 降序第 p 位对应的升序名次
		for j := 0; j < m; j++ {
			soft[j] += pos * logits[j]
		}
	}

	for j := range soft {
		if soft[j] < 0 {
			soft[j] = 0
		} else if soft[j] > float64(m-1) {
			soft[j] = float64(m - 1)
		}
	}

	scale := 1.0
	if m > 1 && m != n {
		scale = float64(n-1) / float64(m-1)
	}
	for j, idx := range finite {
		ranks[idx] = soft[j] * scale
	}
	return ranks
}

// softmaxInPlace 对 logits 做数值稳定的 softmax（减最大值）。
func softmaxInPlace(logits []float64) {
	maxv := logits[0]
	for _, v := range logits[1:] {
		if v > maxv {
			maxv = v
		}
	}
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - maxv)
		logits[i] = e
		sum += e
	}
	for i := range logits {
		logits[i] /= sum
	}
}

// rankWindowed 是窗口平滑变体：先对有限元素做一次 argsort，
// 每个元素只与排序邻域 ±window 内的元素做精确 sigmoid 比较；
// 窗口下方的元素按比较结果 1 计入，窗口上方按 0 计入。
// 复杂度 O(n·log n + n·window)。
//
// 这是近似而非等价：窗口边界附近若分值分隔不充分（例如大量并列
// 或 alpha 很小），0/1 饱和假设不成立，误差随之增大。
func rankWindowed(values []float64, alpha float64, window int) []float64 {
	if window <= 0 {
		window = DefaultWindow
	}

	n := len(values)
	ranks := make([]float64, n)

	finite := make([]int, 0, n)
	for i, v := range values {
		if isFinite(v) {
			finite = append(finite, i)
		} else {
			ranks[i] = math.NaN()
		}
	}
	m := len(finite)
	if m == 0 {
		return ranks
	}

	order := make([]int, m) // 有限子集内的升序下标
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[finite[order[a]]] < values[finite[order[b]]]
	})

	windowedFromOrder(values, finite, order, alpha, window, float64(n-1), ranks)
	return ranks
}

// windowedFromOrder 在给定升序排列 order 上执行窗口化比较，结果写入 ranks。
// scale 为输出放缩系数（通常是 n-1）。
func windowedFromOrder(values []float64, finite, order []int, alpha float64, window int, scale float64, ranks []float64) {
	m := len(order)
	for p := 0; p < m; p++ {
		i := finite[order[p]]
		vi := values[i]

		lo := p - window
		if lo < 0 {
			lo = 0
		}
		hi := p + window
		if hi > m-1 {
			hi = m - 1
		}

		sum := float64(lo) // 窗口下方的元素全部按“胜出”计
		for q := lo; q <= hi; q++ {
			if q == p {
				continue
			}
			sum += Logistic(alpha * (vi - values[finite[order[q]]]))
		}

		ranks[i] = SafeDiv(scale*sum, float64(m-1), 0.0)
	}
}
