// Package loss 提供构建在软排名算子之上的训练损失：
// Spearman 相关性损失、RankNet 式成对损失、LambdaRank 式 NDCG 加权梯度、
// 以及 listwise 代理损失。所有损失都把 relevance/target 视为常量，
// 只对 prediction 侧求梯度。
package loss

import (
	"fmt"
	"math"
	"sort"

	"github.com/rushteam/softrank/core"
)

// Gain 计算单个文档的增益：指数增益 2^rel - 1 或线性增益 rel。
func Gain(rel float64, exponential bool) float64 {
	if exponential {
		return math.Pow(2.0, rel) - 1.0
	}
	return rel
}

// positionDiscount 是位置折扣 1 / log2(pos + 2)，pos 从 0 开始。
func positionDiscount(pos int) float64 {
	return 1.0 / math.Log2(float64(pos+2))
}

// NDCGAt 计算 NDCG@k。
//
// 本库中 NDCG 的角色是给训练梯度加权（LambdaRank），不是评估报表；
// 评估口径的指标计算在调用方。
//
// k <= 0 表示对全列表计算；k 超过列表长度返回 INVALID_TOPK；
// 空 relevance 返回 EMPTY_INPUT；IDCG 为 0（全零相关性）时返回 0。
func NDCGAt(relevance []float64, k int, exponentialGain bool) (float64, error) {
	if len(relevance) == 0 {
		return 0, core.NewDomainError(core.ModuleLoss, core.ErrorCodeEmptyInput,
			"loss: ndcg of empty relevance")
	}
	if k > len(relevance) {
		return 0, core.NewDomainError(core.ModuleLoss, core.ErrorCodeInvalidTopK,
			fmt.Sprintf("loss: ndcg k=%d exceeds list length %d", k, len(relevance)))
	}
	if k <= 0 {
		k = len(relevance)
	}

	dcg := 0.0
	for i := 0; i < k; i++ {
		dcg += Gain(relevance[i], exponentialGain) * positionDiscount(i)
	}

	idcg := idealDCG(relevance, k, exponentialGain)
	if idcg == 0 {
		return 0, nil
	}
	return dcg / idcg, nil
}

// idealDCG 计算理想（按相关性降序）排列的 DCG@k。
func idealDCG(relevance []float64, k int, exponentialGain bool) float64 {
	ideal := make([]float64, len(relevance))
	copy(ideal, relevance)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))

	if k <= 0 || k > len(ideal) {
		k = len(ideal)
	}
	idcg := 0.0
	for i := 0; i < k; i++ {
		idcg += Gain(ideal[i], exponentialGain) * positionDiscount(i)
	}
	return idcg
}

// inverseIdealDCG 返回 1/IDCG@k；IDCG 为 0 时返回 0（全零相关性的确定回退）。
func inverseIdealDCG(relevance []float64, k int, exponentialGain bool) float64 {
	idcg := idealDCG(relevance, k, exponentialGain)
	if idcg > 0 {
		return 1.0 / idcg
	}
	return 0.0
}

// deltaNDCG 计算交换位置 posI 与 posJ 后 NDCG 的变化量。
//
// 采用高效公式，避免重算整个 NDCG：
//
//	ΔNDCG = -(gain_i - gain_j) · (discount_i - discount_j) / IDCG
//
// 交换前贡献 gain_i·disc_i + gain_j·disc_j，交换后两个 discount 互换，
// 差值即上式。k 截断下，位于 k 之外的位置 discount 记 0；
// 两个位置都在 k 之外时 Δ 恒为 0。
func deltaNDCG(relevance []float64, posI, posJ, k int, exponentialGain bool, invIDCG float64) float64 {
	if posI >= len(relevance) || posJ >= len(relevance) {
		return 0.0
	}
	if k <= 0 {
		k = len(relevance)
	}
	if posI >= k && posJ >= k {
		return 0.0
	}

	gainI := Gain(relevance[posI], exponentialGain)
	gainJ := Gain(relevance[posJ], exponentialGain)

	discI := 0.0
	if posI < k {
		discI = positionDiscount(posI)
	}
	discJ := 0.0
	if posJ < k {
		discJ = positionDiscount(posJ)
	}

	return -((gainI - gainJ) * (discI - discJ) * invIDCG)
}
