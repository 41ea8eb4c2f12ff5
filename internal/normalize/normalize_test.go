package normalize

import (
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	input := "第一章 安全教育 第二节 消防安全 第三节 交通安全 第四节 网络安全"
	result := Preview(input, 12)

	if len([]rune(result)) > 13 {
		t.Errorf("Preview result too long: %d runes", len([]rune(result)))
	}

	if !strings.HasSuffix(result, "…") {
		t.Errorf("Preview should end with …, got %q", result)
	}

	if got := Preview("短文本", 12); got != "短文本" {
		t.Errorf("Preview of short text = %q, want unchanged", got)
	}
}

func TestText(t *testing.T) {
	input := "\n\t 返回\u00A0\u00A0列表   \n"
	result := Text(input)

	if strings.Contains(result, "\u00A0") {
		t.Errorf("NBSP not replaced")
	}

	if result != "返回 列表" {
		t.Errorf("Text(%q) = %q, want %q", input, result, "返回 列表")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		text   string
		needle string
		want   bool
	}{
		{"返回列表", "返回列表", true},
		{"  返回列表 →", "返回列表", true},
		{"继续学习", "返回列表", false},
		{"", "返回列表", false},
	}

	for _, tt := range tests {
		if got := Contains(tt.text, tt.needle); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.text, tt.needle, got, tt.want)
		}
	}
}
