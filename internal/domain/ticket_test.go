package domain

import (
	"testing"
	"time"
)

func TestFormatTicketNumber(t *testing.T) {
	day := time.Date(2025, 8, 31, 15, 4, 5, 0, time.UTC)
	tests := []struct {
		seq  int
		want string
	}{
		{1, "TPM-20250831-0001"},
		{42, "TPM-20250831-0042"},
		{9999, "TPM-20250831-9999"},
		{10000, "TPM-20250831-10000"},
	}
	for _, tc := range tests {
		if got := FormatTicketNumber(day, tc.seq); got != tc.want {
			t.Errorf("FormatTicketNumber(%d) = %q, want %q", tc.seq, got, tc.want)
		}
	}
}

func TestIsAssigned(t *testing.T) {
	name := "Siti"
	empty := ""
	sentinel := UnassignedMarker
	tests := []struct {
		name  string
		value *string
		want  bool
	}{
		{"nil", nil, false},
		{"empty", &empty, false},
		{"sentinel", &sentinel, false},
		{"named", &name, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAssigned(tc.value); got != tc.want {
				t.Errorf("IsAssigned = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidEnums(t *testing.T) {
	if !ValidStatus(TicketStatusRejected) || ValidStatus("resolved") {
		t.Fatal("ValidStatus mismatch")
	}
	if !ValidCategory(CategoryProcurement) || ValidCategory("misc") {
		t.Fatal("ValidCategory mismatch")
	}
	if !ValidPriority(TicketPriorityCritical) || ValidPriority("urgent") {
		t.Fatal("ValidPriority mismatch")
	}
}
