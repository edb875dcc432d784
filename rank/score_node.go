package rank

import (
	"context"
	"sort"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/learn"
	"github.com/rushteam/softrank/pipeline"
	"github.com/rushteam/softrank/pkg/utils"
)

// ScoreNode 是打分节点，用 Scorer 给每个样本打分并按分数降序排序。
// - 写入 labels：score_model
// - 更新 doc.Score
type ScoreNode struct {
	Model learn.Scorer
}

func (n *ScoreNode) Name() string        { return "score.model" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *ScoreNode) Process(
	_ context.Context,
	_ *core.TrainContext,
	groups []*core.Group,
) ([]*core.Group, error) {
	if n.Model == nil || len(groups) == 0 {
		return groups, nil
	}

	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, doc := range g.Docs {
			if doc == nil {
				continue
			}
			score, err := n.Model.Score(doc.Features)
			if err != nil {
				return nil, err
			}
			doc.Score = score
			doc.PutLabel("score_model", utils.Label{Value: n.Model.Name(), Source: "score"})
		}

		sort.SliceStable(g.Docs, func(i, j int) bool {
			if g.Docs[i] == nil {
				return false
			}
			if g.Docs[j] == nil {
				return true
			}
			return g.Docs[i].Score > g.Docs[j].Score
		})
	}
	return groups, nil
}
