package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/softrank/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("doc", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("tctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是样本筛选 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// CEL 是 Google 开发的表达式语言，具有类型安全、高性能、线程安全等特性。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.split == "train" / label.source != "implicit"
//   - 数值：doc.relevance > 0.0 / doc.score >= 0.5
//   - 逻辑：label.split == "train" && doc.relevance > 0.0
//   - 存在性：label.split != null
//   - 包含：label.source.contains("click") 或 "click" in label.source
//
// 示例：
//   - `doc.relevance >= 1.0` → 只保留有正反馈的样本
//   - `label.split == "train" && doc.score > 0.0` → 训练切分且有打分
//   - `label.source != null && label.source == "editorial"` → 人工标注样本
type Eval struct {
	expr string
	env  *cel.Env
	prg  cel.Program
}

// NewEval 创建一个新的 DSL 解释器。
// 表达式只编译一次，Evaluate 可以对多个 doc 重复调用。
func NewEval(expr string) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env error: %v", err)
	}

	e := &Eval{expr: expr, env: env}
	if expr == "" {
		return e, nil
	}

	// 编译表达式
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	e.prg = prg
	return e, nil
}

// Evaluate 对单个 doc 执行 DSL 表达式，返回布尔结果。
//
// 支持的语法：
//   - label.split == "train"
//   - doc.relevance > 0.0
//   - label.source == "click" && doc.score > 0.8
//   - label.split != null  (检查是否存在)
//
// 注意：has(label.key) 可以用 label.key != null 替代
func (e *Eval) Evaluate(doc *core.Doc, tctx *core.TrainContext) (bool, error) {
	if e.expr == "" {
		return true, nil
	}

	// 准备输入数据
	input := buildInput(doc, tctx)

	// 执行表达式
	out, _, err := e.prg.Eval(input)
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误
		// 用户应该使用 label.key != null 来检查存在性，而不是直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(d *core.Doc, tctx *core.TrainContext) map[string]interface{} {
	// 构建 label map
	labels := make(map[string]interface{})
	for k, v := range d.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
	}

	// 构建 doc map
	doc := map[string]interface{}{
		"id":        d.ID,
		"score":     d.Score,
		"relevance": d.Relevance,
		"features":  d.Features,
		"labels":    labels,
	}

	// 构建 tctx map
	ctxMap := map[string]interface{}{}
	if tctx != nil {
		ctxMap["task_id"] = tctx.TaskID
		ctxMap["params"] = tctx.Params
	}

	// 提供 label 作为顶层访问，例如 label.split 直接取 value
	// 注意：CEL 访问不存在的 key 会报错，所以使用 label.key != null 检查存在性
	labelAccessor := make(map[string]interface{})
	for k, v := range labels {
		labelAccessor[k] = v.(map[string]interface{})["value"]
	}

	return map[string]interface{}{
		"doc":   doc,
		"label": labelAccessor,
		"tctx":  ctxMap,
	}
}
