package filter

import (
	"context"

	"github.com/rushteam/softrank/core"
	"github.com/rushteam/softrank/pkg/dsl"
)

// DSLFilter 使用 CEL 表达式过滤样本。
// 表达式描述"保留"条件：求值为 false 的样本被过滤。
//
// 示例表达式：
//   - `doc.relevance >= 1.0`
//   - `label.split == "train" && doc.score > 0.0`
type DSLFilter struct {
	Expr string

	eval *dsl.Eval
}

// NewDSLFilter 创建一个 CEL 过滤器，表达式在创建时编译。
func NewDSLFilter(expr string) (*DSLFilter, error) {
	eval, err := dsl.NewEval(expr)
	if err != nil {
		return nil, err
	}
	return &DSLFilter{Expr: expr, eval: eval}, nil
}

func (f *DSLFilter) Name() string {
	return "filter.dsl"
}

func (f *DSLFilter) ShouldFilter(
	_ context.Context,
	tctx *core.TrainContext,
	doc *core.Doc,
) (bool, error) {
	if doc == nil {
		return true, nil
	}
	keep, err := f.eval.Evaluate(doc, tctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
