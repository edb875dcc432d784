// Package learn 提供消费 loss 层梯度的训练器：LambdaRank、Ranking SVM、
// 以及面向线性打分模型的 SGD 训练循环。
package learn

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rushteam/softrank/core"
)

// Scorer 是打分模型的最小抽象：输入特征，输出一个可比较的分数。
// 具体实现可以是本地线性模型，也可以由调用方自行扩展。
type Scorer interface {
	Name() string
	Score(features map[string]float64) (float64, error)
}

// LinearModel 是线性打分模型：score = Bias + Σ Weight_f · Feature_f。
//
// 它是 LTR 里最基础的打分函数形态；配合 LambdaRank / RankingSVM /
// Spearman 梯度做 SGD 更新即可端到端训练（见 SGD）。
// 输出是未压缩的实数分数（排序只关心相对大小，不做 sigmoid 变换）。
type LinearModel struct {
	Bias    float64            `json:"bias"`    // 偏置项
	Weights map[string]float64 `json:"weights"` // 特征权重
}

func NewLinearModel() *LinearModel {
	return &LinearModel{Weights: make(map[string]float64)}
}

func (m *LinearModel) Name() string { return "linear" }

func (m *LinearModel) Score(features map[string]float64) (float64, error) {
	score := m.Bias
	for k, v := range features {
		if w, ok := m.Weights[k]; ok {
			score += w * v
		}
	}
	return score, nil
}

// LoadLinearModel 从 JSON 文件加载模型。
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Weights == nil {
		m.Weights = make(map[string]float64)
	}
	return &m, nil
}

// SaveTo 将模型权重以 JSON 形式写入 Store（用于训练产物持久化）。
func (m *LinearModel) SaveTo(ctx context.Context, store core.Store, key string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data)
}

// LoadLinearModelFromStore 从 Store 读取模型权重；key 不存在时返回
// NOT_FOUND（可用 core.IsNotFound 判断）。
func LoadLinearModelFromStore(ctx context.Context, store core.Store, key string) (*LinearModel, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Weights == nil {
		m.Weights = make(map[string]float64)
	}
	return &m, nil
}
