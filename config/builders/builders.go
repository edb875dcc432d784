package builders

import (
	"fmt"

	"github.com/rushteam/softrank/config"
	"github.com/rushteam/softrank/feast"
	"github.com/rushteam/softrank/feature"
	"github.com/rushteam/softrank/filter"
	"github.com/rushteam/softrank/learn"
	"github.com/rushteam/softrank/pipeline"
	"github.com/rushteam/softrank/pkg/conv"
	"github.com/rushteam/softrank/rank"
	"github.com/rushteam/softrank/rerank"
	"github.com/rushteam/softrank/soft"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("feature.enrich", BuildFeatureEnrichNode)
	config.Register("score.linear", BuildLinearScoreNode)
	config.Register("rank.soft", BuildSoftRankNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "relevance":
			min := conv.ConfigGetFloat64(filterMap, "min_relevance", 0.0)
			filters = append(filters, filter.NewRelevanceFilter(min))
		case "dsl":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("dsl filter requires expr")
			}
			f, err := filter.NewDSLFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("dsl filter: %w", err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{
		Filters: filters,
		MinDocs: conv.ConfigGetInt(cfg, "min_docs", 0),
	}, nil
}

func BuildFeatureEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourceType := conv.ConfigGet(cfg, "source", "")
	node := &feature.EnrichNode{
		Overwrite: conv.ConfigGet(cfg, "overwrite", false),
	}
	switch sourceType {
	case "feast":
		host := conv.ConfigGet(cfg, "host", "localhost")
		port := conv.ConfigGetInt(cfg, "port", 0)
		project := conv.ConfigGet(cfg, "project", "")
		features := conv.SliceAnyToString(cfg["features"])
		if len(features) == 0 {
			return nil, fmt.Errorf("feast source requires features")
		}
		client, err := feast.NewGrpcClient(host, port, project)
		if err != nil {
			return nil, fmt.Errorf("feast client: %w", err)
		}
		src := feature.NewFeastSource(client, features)
		if key := conv.ConfigGet(cfg, "entity_key", ""); key != "" {
			src.EntityKey = key
		}
		node.Source = src
	case "memory", "":
		node.Source = feature.NewMemorySource()
	default:
		return nil, fmt.Errorf("unknown feature source: %s", sourceType)
	}
	return node, nil
}

func BuildLinearScoreNode(cfg map[string]interface{}) (pipeline.Node, error) {
	weightsMap, ok := cfg["weights"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("weights not found")
	}
	weights := conv.MapToFloat64(weightsMap)
	bias := conv.ConfigGetFloat64(cfg, "bias", 0.0)
	model := &learn.LinearModel{Bias: bias, Weights: weights}
	return &rank.ScoreNode{Model: model}, nil
}

func BuildSoftRankNode(cfg map[string]interface{}) (pipeline.Node, error) {
	alpha := conv.ConfigGetFloat64(cfg, "alpha", 1.0)
	method := soft.Method(conv.ConfigGet(cfg, "method", string(soft.MethodSigmoid)))
	if !method.Valid() {
		return nil, fmt.Errorf("unknown rank method: %s", method)
	}
	return &rank.SoftRankNode{Alpha: alpha, Method: method}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
