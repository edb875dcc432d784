package feature

import (
	"context"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/feast"
)

// FeastSource 是基于 Feast Feature Store 的特征来源。
// 按 doc_id 实体批量拉取在线特征，非数值特征被忽略。
type FeastSource struct {
	// Client Feast 客户端
	Client feast.Client

	// Features 要拉取的特征名称列表，例如 ["doc_stats:ctr"]
	Features []string

	// EntityKey 实体 key，默认 "doc_id"
	EntityKey string
}

func NewFeastSource(client feast.Client, features []string) *FeastSource {
	return &FeastSource{
		Client:    client,
		Features:  features,
		EntityKey: "doc_id",
	}
}

func (s *FeastSource) Name() string { return "feature.feast" }

func (s *FeastSource) GetDocFeatures(ctx context.Context, docIDs []string) (map[string]map[string]float64, error) {
	if len(docIDs) == 0 || len(s.Features) == 0 {
		return make(map[string]map[string]float64), nil
	}

	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "doc_id"
	}

	entityRows := make([]map[string]interface{}, len(docIDs))
	for i, id := range docIDs {
		entityRows[i] = map[string]interface{}{entityKey: id}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string]float64, len(docIDs))
	for i, vec := range resp.FeatureVectors {
		if i >= len(docIDs) {
			break
		}
		features := make(map[string]float64, len(vec.Values))
		for name, raw := range vec.Values {
			if f, ok := raw.(float64); ok {
				features[name] = f
			}
		}
		if len(features) > 0 {
			result[docIDs[i]] = features
		}
	}
	return result, nil
}

var _ core.FeatureSource = (*FeastSource)(nil)
