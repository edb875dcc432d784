package filter

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/softrank/core"
)

func makeGroup(queryID string, relevances ...float64) *core.Group {
	g := core.NewGroup(queryID)
	for i, rel := range relevances {
		doc := core.NewDoc(queryID + ":" + string(rune('a'+i)))
		doc.Relevance = rel
		g.Docs = append(g.Docs, doc)
	}
	return g
}

func TestRelevanceFilter(t *testing.T) {
	f := NewRelevanceFilter(1.0)
	ctx := context.Background()

	tests := []struct {
		name string
		rel  float64
		want bool
	}{
		{"above threshold", 2.0, false},
		{"at threshold", 1.0, false},
		{"below threshold", 0.5, true},
		{"nan relevance", math.NaN(), true},
		{"inf relevance", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := core.NewDoc("d")
			doc.Relevance = tt.rel
			got, err := f.ShouldFilter(ctx, nil, doc)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(rel=%v) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestFilterNodeProcess(t *testing.T) {
	node := &FilterNode{
		Filters: []Filter{NewRelevanceFilter(1.0)},
	}

	groups := []*core.Group{
		makeGroup("q1", 2.0, 0.0, 1.0), // 过滤后剩 2 个，保留
		makeGroup("q2", 0.0, 0.5),      // 过滤后剩 0 个，整组丢弃
	}

	out, err := node.Process(context.Background(), nil, groups)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("保留组数 = %d, want 1", len(out))
	}
	if out[0].QueryID != "q1" || len(out[0].Docs) != 2 {
		t.Errorf("q1 过滤结果不对: %d docs", len(out[0].Docs))
	}
}

func TestFilterNodeMinDocs(t *testing.T) {
	node := &FilterNode{
		Filters: []Filter{NewRelevanceFilter(1.0)},
		MinDocs: 3,
	}

	// 过滤后剩 2 个 < MinDocs=3：整组丢弃
	out, err := node.Process(context.Background(), nil, []*core.Group{makeGroup("q1", 2.0, 1.0, 0.0)})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("保留组数 = %d, want 0", len(out))
	}
}

func TestFilterNodeNoFilters(t *testing.T) {
	node := &FilterNode{}
	groups := []*core.Group{makeGroup("q1", 0.0)}
	out, err := node.Process(context.Background(), nil, groups)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("无过滤器时不应丢弃: %d", len(out))
	}
}

func TestDSLFilter(t *testing.T) {
	f, err := NewDSLFilter(`doc.relevance >= 1.0`)
	if err != nil {
		t.Fatalf("NewDSLFilter() error = %v", err)
	}

	keep := core.NewDoc("keep")
	keep.Relevance = 2.0
	drop := core.NewDoc("drop")
	drop.Relevance = 0.0

	ctx := context.Background()
	if got, err := f.ShouldFilter(ctx, nil, keep); err != nil || got {
		t.Errorf("满足表达式的样本不应被过滤: got=%v err=%v", got, err)
	}
	if got, err := f.ShouldFilter(ctx, nil, drop); err != nil || !got {
		t.Errorf("不满足表达式的样本应被过滤: got=%v err=%v", got, err)
	}
}

func TestDSLFilterCompileError(t *testing.T) {
	if _, err := NewDSLFilter(`doc.relevance >=`); err == nil {
		t.Error("非法表达式应在创建时报错")
	}
}
