package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "both non-empty",
			existing: Label{Value: "low_score", Source: "filter"},
			incoming: Label{Value: "blocked", Source: "rule"},
			want:     Label{Value: "low_score|blocked", Source: "filter,rule"},
		},
		{
			name:     "existing empty",
			existing: Label{},
			incoming: Label{Value: "a", Source: "s"},
			want:     Label{Value: "a", Source: "s"},
		},
		{
			name:     "incoming empty",
			existing: Label{Value: "a", Source: "s"},
			incoming: Label{},
			want:     Label{Value: "a", Source: "s"},
		},
		{
			name:     "incoming source empty",
			existing: Label{Value: "a", Source: "s"},
			incoming: Label{Value: "b"},
			want:     Label{Value: "a|b", Source: "s"},
		},
		{
			name:     "existing source empty",
			existing: Label{Value: "a"},
			incoming: Label{Value: "b", Source: "s2"},
			want:     Label{Value: "a|b", Source: "s2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeLabel(tt.existing, tt.incoming)
			if got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeLabelAccumulates(t *testing.T) {
	// 连续合并三次应保留全部历史
	l := Label{Value: "v1", Source: "s1"}
	l = MergeLabel(l, Label{Value: "v2", Source: "s2"})
	l = MergeLabel(l, Label{Value: "v3", Source: "s3"})
	if l.Value != "v1|v2|v3" {
		t.Errorf("Value = %q", l.Value)
	}
	if l.Source != "s1,s2,s3" {
		t.Errorf("Source = %q", l.Source)
	}
}
