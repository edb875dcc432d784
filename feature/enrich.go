package feature

import (
	"context"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/pipeline"
	"github.com/rushteam/softrank/pkg/utils"
)

// EnrichNode 是特征注入节点，从 FeatureSource 批量拉取文档特征并合并到样本。
// 特征缺失的样本保留已有特征，不会被丢弃。
type EnrichNode struct {
	// Source 特征来源（feast、内存等），为 nil 时节点是 no-op。
	Source core.FeatureSource

	// Overwrite 为 true 时拉取到的特征覆盖样本已有的同名特征，
	// 默认保留样本原值（离线样本中记录的特征优先）。
	Overwrite bool
}

func (n *EnrichNode) Name() string {
	return "feature.enrich"
}

func (n *EnrichNode) Kind() pipeline.Kind {
	return pipeline.KindFeature
}

func (n *EnrichNode) Process(
	ctx context.Context,
	tctx *core.TrainContext,
	groups []*core.Group,
) ([]*core.Group, error) {
	if n.Source == nil || len(groups) == 0 {
		return groups, nil
	}

	// 跨 group 去重后批量拉取
	seen := make(map[string]struct{})
	docIDs := make([]string, 0)
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, doc := range g.Docs {
			if doc == nil || doc.ID == "" {
				continue
			}
			if _, ok := seen[doc.ID]; ok {
				continue
			}
			seen[doc.ID] = struct{}{}
			docIDs = append(docIDs, doc.ID)
		}
	}
	if len(docIDs) == 0 {
		return groups, nil
	}

	featuresByID, err := n.Source.GetDocFeatures(ctx, docIDs)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, doc := range g.Docs {
			if doc == nil {
				continue
			}
			features, ok := featuresByID[doc.ID]
			if !ok {
				continue
			}
			if doc.Features == nil {
				doc.Features = make(map[string]float64, len(features))
			}
			for k, v := range features {
				if _, exists := doc.Features[k]; exists && !n.Overwrite {
					continue
				}
				doc.Features[k] = v
			}
			doc.PutLabel("enriched", utils.Label{
				Value:  "true",
				Source: n.Source.Name(),
			})
		}
	}

	return groups, nil
}
