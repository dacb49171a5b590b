package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		path   string
		expect string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/.actionguard/audit.db", filepath.Join("/home/tester", ".actionguard", "audit.db")},
		{"/etc/actionguard.yaml", "/etc/actionguard.yaml"},
		{"./inputs//table.yaml", "inputs/table.yaml"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.path); got != tt.expect {
			t.Fatalf("ExpandPath(%q)=%q want %q", tt.path, got, tt.expect)
		}
	}
}
