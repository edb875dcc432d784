package soft

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/softrank/core"
)

// Gradient 计算软排名对输入值的解析 Jacobian（sigmoid 变体）：
//
//	J[i][k] = ∂rank_i / ∂v_k
//
// 闭式公式：
//
//	J[i][i] = (n-1)/valid_i · alpha · Σ_{j≠i} σ'(alpha·(v_i-v_j))
//	J[i][k] = -(n-1)/valid_i · alpha · σ'(alpha·(v_i-v_k))   (k≠i)
//
// 由构造保证的性质（测试覆盖）：
//   - 每行元素和为 0：对所有值做同一平移不改变任何排名（平移不变性的梯度表达）
//   - 对角元非负：抬高自身的值不会降低自身的排名
//
// 非有限元素的行与列全部置 0（该元素不参与任何有效比较，
// 其自身排名输出为 NaN，对应导数按“无定义取 0”的确定回退处理）。
//
// 空输入返回 EMPTY_INPUT 错误（0×0 矩阵不可构造）；调用方应当以与
// 前向完全一致的参数请求梯度，长度不一致属编程错误而非运行时条件。
func Gradient(values []float64, alpha float64) (*mat.Dense, error) {
	return GradientWithMethod(values, alpha, MethodSigmoid)
}

// GradientWithMethod 按变体计算 Jacobian，与 RankWithMethod 的前向一一对应。
// sigmoid 与 cdf 变体有闭式梯度；permutation 与 windowed 变体没有，
// 回退到中心差分数值微分（代价为 2n 次前向）。
func GradientWithMethod(values []float64, alpha float64, method Method) (*mat.Dense, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, core.NewDomainError(core.ModuleSoft, core.ErrorCodeNotSupported,
			"soft: unknown ranking method "+string(method))
	}
	n := len(values)
	if n == 0 {
		return nil, core.NewDomainError(core.ModuleSoft, core.ErrorCodeEmptyInput,
			"soft: gradient of empty input")
	}

	switch method {
	case MethodSigmoid:
		return analyticJacobian(values, alpha, sigmoidPairDeriv), nil
	case MethodCDF:
		return analyticJacobian(values, alpha, cdfPairDeriv), nil
	default:
		return numericalJacobian(values, alpha, method)
	}
}

// pairDeriv 返回 d/dv_i kernel(alpha·(v_i - v_j)) 在分差 d = v_i - v_j 处的值。
type pairDeriv func(alpha, d float64) float64

func sigmoidPairDeriv(alpha, d float64) float64 {
	return alpha * LogisticDeriv(alpha*d)
}

func cdfPairDeriv(alpha, d float64) float64 {
	return alpha / math.Sqrt2 * normalPDF(alpha*d/math.Sqrt2)
}

func analyticJacobian(values []float64, alpha float64, deriv pairDeriv) *mat.Dense {
	n := len(values)
	jac := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		if !isFinite(values[i]) {
			continue
		}
		valid := 0
		for j := 0; j < n; j++ {
			if j != i && isFinite(values[j]) {
				valid++
			}
		}
		if valid == 0 {
			continue
		}

		scale := float64(n-1) / float64(valid)
		diag := 0.0
		for k := 0; k < n; k++ {
			if k == i || !isFinite(values[k]) {
				continue
			}
			g := scale * deriv(alpha, values[i]-values[k])
			jac.Set(i, k, -g)
			diag += g
		}
		jac.Set(i, i, diag)
	}
	return jac
}

// numericalJacobian 用中心差分近似 Jacobian，供没有闭式梯度的变体使用。
func numericalJacobian(values []float64, alpha float64, method Method) (*mat.Dense, error) {
	n := len(values)
	jac := mat.NewDense(n, n, nil)
	probe := make([]float64, n)

	for k := 0; k < n; k++ {
		if !isFinite(values[k]) {
			continue
		}
		h := 1e-6 * math.Max(1.0, math.Abs(values[k]))

		copy(probe, values)
		probe[k] = values[k] + h
		plus, err := RankWithMethod(probe, alpha, method)
		if err != nil {
			return nil, err
		}

		probe[k] = values[k] - h
		minus, err := RankWithMethod(probe, alpha, method)
		if err != nil {
			return nil, err
		}

		for i := 0; i < n; i++ {
			d := (plus[i] - minus[i]) / (2 * h)
			if isFinite(d) {
				jac.Set(i, k, d)
			}
		}
	}
	return jac, nil
}

// SparseEntry 是稀疏 Jacobian 的单个非零项。
type SparseEntry struct {
	Row   int
	Col   int
	Value float64
}

// defaultSparseEps 是稀疏模式的默认过滤阈值。
const defaultSparseEps = 1e-12

// GradientSparse 以稀疏形式返回 sigmoid 变体的 Jacobian：
// 与 Gradient 完全相同的数值，只保留 |J[i][k]| > eps 的项
// （eps <= 0 时使用默认阈值）。大 n、大 alpha 时绝大多数成对项
// 已经饱和为 0，稠密矩阵非常浪费。
func GradientSparse(values []float64, alpha float64, eps float64) ([]SparseEntry, error) {
	jac, err := Gradient(values, alpha)
	if err != nil {
		return nil, err
	}
	if eps <= 0 {
		eps = defaultSparseEps
	}

	n := len(values)
	entries := make([]SparseEntry, 0, 4*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			if v := jac.At(i, k); math.Abs(v) > eps {
				entries = append(entries, SparseEntry{Row: i, Col: k, Value: v})
			}
		}
	}
	return entries, nil
}
