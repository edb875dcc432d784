package rank

import (
	"context"
	"strconv"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/pipeline"
	"github.com/rushteam/softrank/pkg/utils"
	"github.com/rushteam/softrank/soft"
)

// SoftRankNode 是平滑排名节点，对每个 Group 内的分数计算可微的软排名，
// 写入 labels：soft_rank。下游的列表级损失（Spearman、SoftNDCG）依赖这些排名。
type SoftRankNode struct {
	// Alpha 是平滑强度，必须为正且有限。
	Alpha float64

	// Method 排名近似方法，默认 sigmoid。
	Method soft.Method
}

func (n *SoftRankNode) Name() string        { return "rank.soft" }
func (n *SoftRankNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *SoftRankNode) Process(
	_ context.Context,
	_ *core.TrainContext,
	groups []*core.Group,
) ([]*core.Group, error) {
	if len(groups) == 0 {
		return groups, nil
	}

	method := n.Method
	if method == "" {
		method = soft.MethodSigmoid
	}

	for _, g := range groups {
		if g == nil || len(g.Docs) == 0 {
			continue
		}

		ranks, err := soft.RankWithMethod(g.Scores(), n.Alpha, method)
		if err != nil {
			return nil, err
		}

		for i, doc := range g.Docs {
			if doc == nil {
				continue
			}
			doc.PutLabel("soft_rank", utils.Label{
				Value:  strconv.FormatFloat(ranks[i], 'g', -1, 64),
				Source: string(method),
			})
		}
	}
	return groups, nil
}
