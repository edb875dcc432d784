package filter

import (
	"context"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/pipeline"
	"github.com/rushteam/softrank/pkg/utils"
)

// FilterNode 是样本过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该样本就会被过滤掉。
// 过滤后剩余样本数少于 MinDocs 的 Group 会被整组丢弃（无法构成有效排序）。
type FilterNode struct {
	Filters []Filter

	// MinDocs 是 Group 保留的最小样本数，默认 2（少于 2 无法比较）。
	MinDocs int
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	tctx *core.TrainContext,
	groups []*core.Group,
) ([]*core.Group, error) {
	if len(n.Filters) == 0 || len(groups) == 0 {
		return groups, nil
	}

	minDocs := n.MinDocs
	if minDocs <= 0 {
		minDocs = 2
	}

	out := make([]*core.Group, 0, len(groups))

	for _, g := range groups {
		if g == nil {
			continue
		}

		kept := make([]*core.Doc, 0, len(g.Docs))
		for _, doc := range g.Docs {
			if doc == nil {
				continue
			}

			shouldFilter := false
			filterReason := ""

			// 依次检查每个过滤器
			for _, f := range n.Filters {
				ok, err := f.ShouldFilter(ctx, tctx, doc)
				if err != nil {
					// 过滤器错误时记录但不中断流程
					continue
				}
				if ok {
					shouldFilter = true
					filterReason = f.Name()
					break
				}
			}

			if shouldFilter {
				// 记录过滤原因（可选，用于调试/观测）
				doc.PutLabel("filtered", utils.Label{
					Value:  "true",
					Source: filterReason,
				})
				continue
			}

			kept = append(kept, doc)
		}

		if len(kept) < minDocs {
			continue
		}
		g.Docs = kept
		out = append(out, g)
	}

	return out, nil
}
