package loss

import (
	"fmt"
	"math"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/soft"
)

// ListNet 计算 listwise 的 softmax 交叉熵损失（ListNet top-1 形式）
// 及其对 scores 的梯度。
//
// 目标分布 q = softmax(relevance)，预测分布 p = softmax(scores)：
//
//	loss = -Σ q_i·log p_i
//	grad = p - q
//
// relevance 视为常量。空输入退化为损失 0、空梯度。
func ListNet(scores, relevance []float64) (float64, []float64, error) {
	if len(scores) != len(relevance) {
		return 0, nil, core.NewDomainError(core.ModuleLoss, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("loss: scores length %d != relevance length %d", len(scores), len(relevance)))
	}
	n := len(scores)
	if n == 0 {
		return 0, []float64{}, nil
	}

	p := softmaxVec(scores)
	q := softmaxVec(relevance)

	total := 0.0
	grads := make([]float64, n)
	for i := 0; i < n; i++ {
		// log p 用 log(p_i) 的稳定下界截断，避免 p_i 下溢到 0
		lp := math.Log(math.Max(p[i], 1e-300))
		total -= q[i] * lp
		grads[i] = p[i] - q[i]
	}
	return total, grads, nil
}

// SoftNDCG 计算基于软排名的平滑 NDCG 损失及其对 scores 的梯度。
//
// 软位置 pos_i = (n-1) - softrank(scores)_i（升序软排名转降序位置），
// 软 DCG 用连续位置折扣 1/log2(pos+2)：
//
//	softDCG = Σ gain_i / log2(pos_i + 2)
//	loss    = 1 - softDCG / IDCG
//
// IDCG 是离散理想排列的 DCG（常量）。alpha 越大软位置越接近离散位置，
// loss 越接近 1 - NDCG。全零相关性（IDCG=0）退化为损失 0、零梯度。
// 梯度经软排名 Jacobian 链式回传；relevance 视为常量。
func SoftNDCG(scores, relevance []float64, alpha float64) (float64, []float64, error) {
	if len(scores) != len(relevance) {
		return 0, nil, core.NewDomainError(core.ModuleLoss, core.ErrorCodeLengthMismatch,
			fmt.Sprintf("loss: scores length %d != relevance length %d", len(scores), len(relevance)))
	}
	n := len(scores)
	grads := make([]float64, n)
	if n == 0 {
		return 0, grads, nil
	}

	ranks, err := soft.Rank(scores, alpha)
	if err != nil {
		return 0, nil, err
	}

	idcg := idealDCG(relevance, n, true)
	if idcg == 0 {
		return 0, grads, nil
	}

	softDCG := 0.0
	// dDisc[i] = d(discount)/d(pos) 在软位置 pos_i 处的值
	dDisc := make([]float64, n)
	gains := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(ranks[i]) {
			continue
		}
		pos := float64(n-1) - ranks[i]
		gains[i] = Gain(relevance[i], true)
		l := math.Log(pos + 2.0)
		softDCG += gains[i] * math.Ln2 / l
		dDisc[i] = -math.Ln2 / ((pos + 2.0) * l * l)
	}

	lossVal := 1.0 - softDCG/idcg

	jac, err := soft.Gradient(scores, alpha)
	if err != nil {
		return 0, nil, err
	}
	// pos_i = (n-1) - rank_i ⇒ ∂pos_i/∂s_k = -J[i][k]
	// ∂loss/∂s_k = Σ_i gain_i·dDisc_i·J[i][k] / IDCG
	for k := 0; k < n; k++ {
		acc := 0.0
		for i := 0; i < n; i++ {
			acc += gains[i] * dDisc[i] * jac.At(i, k)
		}
		grads[k] = acc / idcg
	}

	return lossVal, grads, nil
}

// softmaxVec 是数值稳定的 softmax（减最大值），返回新切片。
func softmaxVec(values []float64) []float64 {
	out := make([]float64, len(values))
	maxv := values[0]
	for _, v := range values[1:] {
		if v > maxv {
			maxv = v
		}
	}
	sum := 0.0
	for i, v := range values {
		e := math.Exp(v - maxv)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
