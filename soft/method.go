package soft

// Method 用于标记排序松弛的变体，是一个封闭集合（便于梯度引擎做穷尽分发）。
type Method string

const (
	// MethodSigmoid 成对 sigmoid 比较松弛（默认）。闭式梯度：有。
	MethodSigmoid Method = "sigmoid"
	// MethodPermutation 置换矩阵式松弛（行随机比较权重，软位置取期望）。
	// 闭式梯度：无，梯度引擎回退到数值微分。
	MethodPermutation Method = "permutation"
	// MethodCDF 概率式松弛：把每次比较建模为带高斯噪声的判断，
	// 比较核为 Φ(alpha·(v_i - v_j)/√2)。闭式梯度：有。
	MethodCDF Method = "cdf"
	// MethodWindowed 窗口平滑变体：只与排序邻域内的元素做精确比较，
	// 窗口外按 0/1 饱和近似。闭式梯度：无，梯度引擎回退到数值微分。
	MethodWindowed Method = "windowed"
)

// Valid 检查 Method 是否属于已知集合。
func (m Method) Valid() bool {
	switch m {
	case MethodSigmoid, MethodPermutation, MethodCDF, MethodWindowed:
		return true
	}
	return false
}

// DefaultWindow 是 MethodWindowed 与 RankSorted 的默认邻域宽度。
const DefaultWindow = 32
