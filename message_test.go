package foundationtest

import "testing"

func TestUnequalMessage(t *testing.T) {
	tests := []struct {
		name     string
		actual   []string
		expected []string
		want     string
	}{
		{"equal", []string{"a", "b"}, []string{"b", "a"}, ""},
		{"both empty", nil, nil, ""},
		{"unexpected and missing", []string{"a", "b", "c"}, []string{"b", "c", "d"}, "Found 1 unexpected method: a; 1 missing method: d"},
		{"unexpected only", []string{"a", "b"}, nil, "Found 2 unexpected methods: a, b"},
		{"missing only", nil, []string{"x", "y", "z"}, "Found 3 missing methods: x, y, z"},
		{"duplicates", []string{"a", "a"}, []string{"b"}, "Found 1 unexpected method: a; 1 missing method: b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unequalMessage(tt.actual, tt.expected); got != tt.want {
				t.Errorf("unequalMessage(%q, %q) = %q, want %q", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}
