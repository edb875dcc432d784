package learn

import (
	"context"

	"github.com/rushteam/softrank/core"
)

// GradientFunc 是“分数梯度生产者”的统一形态：输入一个 query 的
// (scores, relevance)，输出对每个文档分数的梯度（正值表示应升分）。
// LambdaRankTrainer.ComputeGradients、RankingSVMTrainer.ComputeGradients
// 以及基于 loss 包的自定义闭包都可以直接作为 GradientFunc 使用。
type GradientFunc func(scores, relevance []float64) ([]float64, error)

// SGD 是面向 LinearModel 的随机梯度上升训练循环。
//
// 每个 epoch 遍历全部 Group：先用当前权重打分，再用 GradientFunc
// 计算文档级梯度 λ，按 w_f += lr·Σ_i λ_i·x_{i,f} 更新权重
//（bias 同理，x 恒为 1），随后做可选的 L2 权重衰减。
type SGD struct {
	// LearningRate 学习率；<=0 时取默认值 0.01
	LearningRate float64

	// Epochs 遍历训练集的轮数；<=0 时取默认值 10
	Epochs int

	// L2 权重衰减系数（0 表示关闭）
	L2 float64
}

// Fit 在 groups 上训练 model。单文档的 Group 没有可学习的 pair，
// 会被跳过而不是报错。ctx 取消时在 query 边界尽快退出。
func (s *SGD) Fit(ctx context.Context, model *LinearModel, groups []*core.Group, gradFn GradientFunc) error {
	if model == nil || gradFn == nil {
		return core.NewDomainError(core.ModuleLearn, core.ErrorCodeInvalidInput,
			"learn: sgd requires a model and a gradient function")
	}
	if model.Weights == nil {
		model.Weights = make(map[string]float64)
	}

	lr := s.LearningRate
	if lr <= 0 {
		lr = 0.01
	}
	epochs := s.Epochs
	if epochs <= 0 {
		epochs = 10
	}

	for epoch := 0; epoch < epochs; epoch++ {
		for _, g := range groups {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if g == nil || len(g.Docs) < 2 {
				continue
			}

			scores := make([]float64, len(g.Docs))
			for i, d := range g.Docs {
				if d == nil {
					continue
				}
				sc, err := model.Score(d.Features)
				if err != nil {
					return err
				}
				scores[i] = sc
			}

			lambdas, err := gradFn(scores, g.Relevances())
			if err != nil {
				return err
			}

			for i, d := range g.Docs {
				if d == nil || lambdas[i] == 0 {
					continue
				}
				step := lr * lambdas[i]
				model.Bias += step
				for f, x := range d.Features {
					model.Weights[f] += step * x
				}
			}

			if s.L2 > 0 {
				decay := 1.0 - lr*s.L2
				for f := range model.Weights {
					model.Weights[f] *= decay
				}
			}
		}
	}
	return nil
}
