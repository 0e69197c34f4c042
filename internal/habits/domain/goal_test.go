package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDeriveGoalStatus(t *testing.T) {
	const today = "2026-10-19"

	tests := []struct {
		name      string
		total     int
		completed int
		deadline  *string
		want      domain.GoalStatus
	}{
		{"all steps done without deadline", 3, 3, nil, domain.GoalCompleted},
		{"all steps done past deadline", 2, 2, ptr("2026-01-01"), domain.GoalCompleted},
		{"half done deadline yesterday", 2, 1, ptr("2026-10-18"), domain.GoalOverdue},
		{"half done deadline today", 2, 1, ptr(today), domain.GoalInProgress},
		{"half done deadline tomorrow", 2, 1, ptr("2026-10-20"), domain.GoalInProgress},
		{"no steps", 0, 0, nil, domain.GoalInProgress},
		{"no steps past deadline", 0, 0, ptr("2025-12-31"), domain.GoalInProgress},
		{"empty deadline string", 1, 0, ptr(""), domain.GoalInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.DeriveGoalStatus(tt.total, tt.completed, tt.deadline, today))
		})
	}
}
