package pipeline

import (
	"context"

	"github.com/rushteam/softrank/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindFilter  Kind = "filter"  // 过滤阶段：剔除不符合约束的样本
	KindFeature Kind = "feature" // 特征阶段：注入/补齐文档特征
	KindScore   Kind = "score"   // 打分阶段：对文档打分并排序
	KindReRank  Kind = "rerank"  // 重排阶段：截断/软排名标注等训练前修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 groups -> 输出 groups”的形态，方便 Filter 剔除、
// Feature 注入、Score 打分等操作串联。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		tctx *core.TrainContext,
		groups []*core.Group,
	) ([]*core.Group, error)
}
