package scraper

import (
	"testing"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		input     string
		wantDone  int
		wantTotal int
		wantErr   bool
	}{
		{"3/5", 3, 5, false},
		{"5/5", 5, 5, false},
		{" 12 / 40 ", 12, 40, false},
		{"已完成 0/7 课", 0, 7, false},
		{"1/2 3/4", 1, 2, false},
		{"暂无", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		done, total, err := ParseProgress(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProgress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if done != tt.wantDone || total != tt.wantTotal {
			t.Errorf("ParseProgress(%q) = %d/%d, want %d/%d", tt.input, done, total, tt.wantDone, tt.wantTotal)
		}
	}
}

func TestNeedsExpand(t *testing.T) {
	tests := []struct {
		done, total int
		expected    bool
	}{
		{3, 5, true},
		{5, 5, false},
		{0, 1, true},
		{6, 5, false},
	}

	for _, tt := range tests {
		if result := NeedsExpand(tt.done, tt.total); result != tt.expected {
			t.Errorf("NeedsExpand(%d, %d) = %v, want %v", tt.done, tt.total, result, tt.expected)
		}
	}
}
