package rerank

import (
	"context"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在打分排序后截取每个 Group 的前 N 个样本。
// 通常在 Score 节点之后使用，配合 NDCG@k 类截断指标控制训练样本规模。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.ScoreNode{...},     // 打分排序
//	        &rerank.TopNNode{N: 20},  // 截取 Top 20
//	    },
//	}
type TopNNode struct {
	// N 要保留的样本数量（Top N）
	// 如果 N <= 0，则不截断
	// 如果 N > len(docs)，则返回所有样本
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.TrainContext,
	groups []*core.Group,
) ([]*core.Group, error) {
	if n.N <= 0 {
		return groups, nil
	}

	for _, g := range groups {
		if g == nil || len(g.Docs) <= n.N {
			continue
		}
		g.Docs = g.Docs[:n.N]
	}
	return groups, nil
}
