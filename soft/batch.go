package soft

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch 并发计算多行独立输入的软排名。各行之间没有任何共享状态，
// 属于“天然可并行”的批处理；单行语义与逐行调用 RankWithMethod 完全一致。
//
// 注意：这不是“批内独立性”保证——同一行内部，相同的值仍会因同行
// 其他元素不同而得到不同的软排名，这是值差松弛的结构性特征。
type Batch struct {
	// Method 排序变体；零值按 MethodSigmoid 处理
	Method Method

	// MaxConcurrent 最大并发数；<=0 一律视为无限制
	MaxConcurrent int
}

// Rank 逐行计算软排名，行顺序与输入一致。任何一行的参数错误都会
// 中止整批并返回该错误（参数校验错误不允许静默吞掉）。
func (b *Batch) Rank(ctx context.Context, rows [][]float64, alpha float64) ([][]float64, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	method := b.Method
	if method == "" {
		method = MethodSigmoid
	}
	if len(rows) == 0 {
		return [][]float64{}, nil
	}

	out := make([][]float64, len(rows))
	eg, ctx := errgroup.WithContext(ctx)

	// 限流：使用 semaphore 控制并发数；非正值不建 channel（make 负容量会 panic）
	var sem chan struct{}
	if b.MaxConcurrent > 0 {
		sem = make(chan struct{}, b.MaxConcurrent)
	}

	for idx, row := range rows {
		i, values := idx, row
		eg.Go(func() error {
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			ranks, err := RankWithMethod(values, alpha, method)
			if err != nil {
				return err
			}
			out[i] = ranks
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
