package core

import "github.com/rushteam/softrank/pkg/utils"

// TrainContext 承载一次训练任务的上下文，贯穿整个 Pipeline 透传。
type TrainContext struct {
	// TaskID 训练任务标识（用于日志/观测）
	TaskID string

	// Labels 任务级标签，可驱动整个 Pipeline 行为
	// 例如：采样策略、数据版本等
	Labels map[string]utils.Label

	// Params 任务级参数，包含：
	// - 超参：alpha, sigma, ndcg_k 等
	// - 数据参数：feature_version, sample_rate 等
	Params map[string]any
}

// PutLabel 写入任务级 Label。
func (tctx *TrainContext) PutLabel(key string, lbl utils.Label) {
	if tctx.Labels == nil {
		tctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := tctx.Labels[key]; ok {
		tctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	tctx.Labels[key] = lbl
}

// GetLabel 获取任务级 Label。
func (tctx *TrainContext) GetLabel(key string) (utils.Label, bool) {
	if tctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := tctx.Labels[key]
	return lbl, ok
}

// GetParam 获取任务级参数；不存在时返回 (nil, false)。
func (tctx *TrainContext) GetParam(key string) (any, bool) {
	if tctx.Params == nil {
		return nil, false
	}
	v, ok := tctx.Params[key]
	return v, ok
}
