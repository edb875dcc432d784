package conv

import "testing"

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 1.5, 1.5, true},
		{"float32", float32(2.5), 2.5, true},
		{"int", 3, 3.0, true},
		{"int64", int64(4), 4.0, true},
		{"int32", int32(5), 5.0, true},
		{"bool true", true, 1.0, true},
		{"bool false", false, 0.0, true},
		{"string", "1.5", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToFloat64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"int", 3, 3, true},
		{"int64", int64(4), 4, true},
		{"float64", 5.9, 5, true}, // 截断
		{"string", "3", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToInt(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMapToFloat64(t *testing.T) {
	in := map[string]any{
		"a": 1.5,
		"b": 2,
		"c": "skip",
	}
	got := MapToFloat64(in)
	if len(got) != 2 || got["a"] != 1.5 || got["b"] != 2.0 {
		t.Errorf("MapToFloat64() = %v", got)
	}
	if MapToFloat64(nil) != nil {
		t.Error("nil 输入应返回 nil")
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]any{"a", 1, "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SliceAnyToString() = %v", got)
	}
	if SliceAnyToString("not a slice") != nil {
		t.Error("非 []any 输入应返回 nil")
	}
}

func TestConfigGet(t *testing.T) {
	config := map[string]any{
		"name":  "demo",
		"alpha": 2.0,
		"topn":  10,
	}
	if got := ConfigGet(config, "name", "def"); got != "demo" {
		t.Errorf("ConfigGet(name) = %q", got)
	}
	if got := ConfigGet(config, "missing", "def"); got != "def" {
		t.Errorf("ConfigGet(missing) = %q", got)
	}
	// 类型不符走默认值
	if got := ConfigGet(config, "alpha", "def"); got != "def" {
		t.Errorf("ConfigGet 类型不符 = %q", got)
	}
	if got := ConfigGetFloat64(config, "topn", 0); got != 10.0 {
		t.Errorf("ConfigGetFloat64 应兼容 int: %v", got)
	}
	if got := ConfigGetInt(config, "alpha", 0); got != 2 {
		t.Errorf("ConfigGetInt 应兼容 float: %v", got)
	}
	if got := ConfigGetInt(nil, "any", 7); got != 7 {
		t.Errorf("nil config 应返回默认值: %v", got)
	}
}
