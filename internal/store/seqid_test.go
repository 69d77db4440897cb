package store

import "testing"

func TestNextID(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		prefix string
		want   string
	}{
		{
			name:   "empty collection",
			ids:    nil,
			prefix: "CLI",
			want:   "CLI-001",
		},
		{
			name:   "sequential",
			ids:    []string{"TKT-001", "TKT-002"},
			prefix: "TKT",
			want:   "TKT-003",
		},
		{
			name:   "gaps use max not count",
			ids:    []string{"EQP-001", "EQP-007"},
			prefix: "EQP",
			want:   "EQP-008",
		},
		{
			name:   "malformed suffixes ignored",
			ids:    []string{"CLI-abc", "CLI-", "noprefix", "CLI-002"},
			prefix: "CLI",
			want:   "CLI-003",
		},
		{
			name:   "only malformed ids",
			ids:    []string{"CLI-abc", "weird"},
			prefix: "CLI",
			want:   "CLI-001",
		},
		{
			name:   "wide counters stop padding",
			ids:    []string{"REQ-999"},
			prefix: "REQ",
			want:   "REQ-1000",
		},
		{
			name:   "suffix after final hyphen wins",
			ids:    []string{"INS-2024-005"},
			prefix: "INS",
			want:   "INS-006",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.ids, tt.prefix); got != tt.want {
				t.Errorf("NextID(%v, %q) = %q, want %q", tt.ids, tt.prefix, got, tt.want)
			}
		})
	}
}
