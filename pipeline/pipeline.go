package pipeline

import (
	"context"

	"github.com/rushteam/softrank/core"
)

// Pipeline 把训练数据准备逻辑拆成可组合的 Node 链
// （Filter → Feature → Score → ReRank），输出交给 learn 层消费。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	tctx *core.TrainContext,
	groups []*core.Group,
) ([]*core.Group, error) {
	cur := groups
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, tctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
