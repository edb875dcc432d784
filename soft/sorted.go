package soft

import "math"

// RankSorted 是已排序输入的快速近似路径：调用方保证 values 已按升序
// （或接近升序）排列时，每个元素只与 ±window 个邻居做精确比较，
// 窗口外按 0/1 饱和处理，复杂度 O(n·window) 而非 O(n²)。
//
// 这是显式 opt-in 的近似：
//   - 本库绝不会根据输入形态自动切换到该路径，选择权完全在调用方
//   - 与 Rank 不等价；当窗口边界附近的分值分隔不充分时误差增大，
//     期望误差界随 alpha·(相邻分差) 的减小而变差
//   - 输入若并未排序，结果没有意义（不做检测，属调用方契约）
//
// 非有限元素遵循与 Rank 相同的污染规则：自身输出 NaN，
// 并从其余元素的有效比较中剔除（有限子序列仍视为有序）。
func RankSorted(values []float64, alpha float64, window int) ([]float64, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultWindow
	}

	n := len(values)
	if n == 0 {
		return []float64{}, nil
	}

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
		return ranks, nil
	}
	if m == 1 {
		ranks[finite[0]] = 0.0
		return ranks, nil
	}

	order := make([]int, m) // 已排序输入：恒等排列
	for i := range order {
		order[i] = i
	}
	windowedFromOrder(values, finite, order, alpha, window, float64(n-1), ranks)
	return ranks, nil
}
