package core

import "context"

// FeatureSource 是特征获取的统一抽象：按 query / doc 维度批量拉取数值特征。
// 实现可以是本地表、HTTP 服务或 Feast Feature Store（见 feature 包）。
type FeatureSource interface {
	// Name 返回特征源名称（用于日志/标签）
	Name() string

	// GetDocFeatures 批量获取文档特征。
	// 返回 map：docID -> (featureName -> value)；缺失的 doc 在结果中缺席，不报错。
	GetDocFeatures(ctx context.Context, docIDs []string) (map[string]map[string]float64, error)
}
