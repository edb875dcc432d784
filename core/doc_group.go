package core

import (
	"math"

	"github.com/rushteam/softrank/pkg/utils"
)

// Doc 是训练链路中的统一承载结构：特征、模型分数、相关性标注、标签。
// Score 由打分节点写入；Relevance 是标注的 ground truth，训练时视为常量。
type Doc struct {
	ID        string
	Score     float64
	Relevance float64
	Features  map[string]float64
	Labels    map[string]utils.Label
}

func NewDoc(id string) *Doc {
	return &Doc{
		ID:       id,
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (d *Doc) PutLabel(key string, lbl utils.Label) {
	if d.Labels == nil {
		d.Labels = make(map[string]utils.Label)
	}
	if old, ok := d.Labels[key]; ok {
		d.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	d.Labels[key] = lbl
}

// Group 是一个 query 及其候选文档列表，是 LTR 训练的最小单元。
// 同一 Group 内的 Doc 才构成可比较的 pair / list。
type Group struct {
	QueryID string
	Docs    []*Doc
}

func NewGroup(queryID string) *Group {
	return &Group{QueryID: queryID}
}

// Scores 按 Docs 顺序提取模型分数向量（nil Doc 记为 NaN 位，由算子按非有限元素处理）。
func (g *Group) Scores() []float64 {
	out := make([]float64, len(g.Docs))
	for i, d := range g.Docs {
		if d == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = d.Score
	}
	return out
}

// Relevances 按 Docs 顺序提取相关性标注向量。
func (g *Group) Relevances() []float64 {
	out := make([]float64, len(g.Docs))
	for i, d := range g.Docs {
		if d == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = d.Relevance
	}
	return out
}
