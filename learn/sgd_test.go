package learn

import (
	"context"
	"testing"

	"github.com/rushteam/softrank/core"
)

// makeGroup 构造一个 query：相关性与特征 f1 正相关
func makeGroup(queryID string) *core.Group {
	g := core.NewGroup(queryID)
	for _, d := range []struct {
		id  string
		f1  float64
		rel float64
	}{
		{"d1", 3.0, 2.0},
		{"d2", 2.0, 1.0},
		{"d3", 1.0, 0.0},
	} {
		doc := core.NewDoc(queryID + ":" + d.id)
		doc.Features["f1"] = d.f1
		doc.Features["noise"] = 0.5
		doc.Relevance = d.rel
		g.Docs = append(g.Docs, doc)
	}
	return g
}

func TestSGDFitLearnsRanking(t *testing.T) {
	groups := []*core.Group{makeGroup("q1"), makeGroup("q2")}
	model := NewLinearModel()
	trainer := NewLambdaRankTrainer()

	sgd := &SGD{LearningRate: 0.1, Epochs: 50}
	if err := sgd.Fit(context.Background(), model, groups, trainer.ComputeGradients); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// f1 与相关性正相关：学到的权重应为正
	if model.Weights["f1"] <= 0 {
		t.Errorf("w[f1] = %v, 期望为正", model.Weights["f1"])
	}

	// 训练后模型应把高相关文档排在前面
	g := makeGroup("test")
	var scores []float64
	for _, d := range g.Docs {
		s, err := model.Score(d.Features)
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		scores = append(scores, s)
	}
	if !(scores[0] > scores[1] && scores[1] > scores[2]) {
		t.Errorf("训练后排序不正确: %v", scores)
	}
}

func TestSGDFitWithSVMGradients(t *testing.T) {
	groups := []*core.Group{makeGroup("q1")}
	model := NewLinearModel()
	trainer := NewRankingSVMTrainer()

	sgd := &SGD{LearningRate: 0.05, Epochs: 30, L2: 0.001}
	if err := sgd.Fit(context.Background(), model, groups, trainer.ComputeGradients); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if model.Weights["f1"] <= 0 {
		t.Errorf("w[f1] = %v, 期望为正", model.Weights["f1"])
	}
}

func TestSGDFitValidation(t *testing.T) {
	sgd := &SGD{}
	if err := sgd.Fit(context.Background(), nil, nil, nil); err == nil {
		t.Error("nil model 应返回错误")
	}
	trainer := NewLambdaRankTrainer()
	if err := sgd.Fit(context.Background(), NewLinearModel(), nil, trainer.ComputeGradients); err != nil {
		t.Errorf("空训练集不应报错，实际 %v", err)
	}
}

func TestSGDFitSkipsSmallGroups(t *testing.T) {
	g := core.NewGroup("q1")
	doc := core.NewDoc("only")
	doc.Features["f1"] = 1.0
	doc.Relevance = 2.0
	g.Docs = append(g.Docs, doc)

	model := NewLinearModel()
	trainer := NewLambdaRankTrainer()
	sgd := &SGD{Epochs: 1}
	// 单文档 Group 被跳过而不是报 EMPTY_INPUT
	if err := sgd.Fit(context.Background(), model, []*core.Group{g}, trainer.ComputeGradients); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if len(model.Weights) != 0 {
		t.Errorf("单文档 Group 不应产生更新: %v", model.Weights)
	}
}

func TestSGDFitContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := NewLinearModel()
	trainer := NewLambdaRankTrainer()
	sgd := &SGD{Epochs: 100}
	err := sgd.Fit(ctx, model, []*core.Group{makeGroup("q1")}, trainer.ComputeGradients)
	if err != context.Canceled {
		t.Errorf("已取消的 ctx 应返回 context.Canceled，实际 %v", err)
	}
}
