package filter

import (
	"context"
	"math"

	"github.com/rushteam/softrank/core"
)

// RelevanceFilter 按相关性过滤样本：非有限的相关性标签或低于阈值的样本被移除。
// MinRelevance 为负数时只剔除非有限值。
type RelevanceFilter struct {
	MinRelevance float64
}

func NewRelevanceFilter(minRelevance float64) *RelevanceFilter {
	return &RelevanceFilter{MinRelevance: minRelevance}
}

func (f *RelevanceFilter) Name() string {
	return "filter.relevance"
}

func (f *RelevanceFilter) ShouldFilter(
	_ context.Context,
	_ *core.TrainContext,
	doc *core.Doc,
) (bool, error) {
	if doc == nil {
		return true, nil
	}
	if math.IsNaN(doc.Relevance) || math.IsInf(doc.Relevance, 0) {
		return true, nil
	}
	return doc.Relevance < f.MinRelevance, nil
}
