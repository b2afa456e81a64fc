package frames_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForgottenUmbrella/swayblur/internal/frames"
)

func TestSchedule(t *testing.T) {
	tests := []struct {
		name     string
		strength int
		duration int
		want     []int
	}{
		{
			name:     "even division",
			strength: 20,
			duration: 4,
			want:     []int{5, 10, 15, 20},
		},
		{
			name:     "single step",
			strength: 20,
			duration: 1,
			want:     []int{20},
		},
		{
			name:     "truncated step stays below strength",
			strength: 20,
			duration: 3,
			want:     []int{6, 12, 18},
		},
		{
			name:     "step of one",
			strength: 10,
			duration: 10,
			want:     []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frames.Schedule(tt.strength, tt.duration)
			assert.Equal(t, tt.want, got)

			require.Len(t, got, tt.duration)
			for i := 1; i < len(got); i++ {
				assert.Greater(t, got[i], got[i-1], "schedule must be strictly increasing")
			}
			assert.LessOrEqual(t, got[len(got)-1], tt.strength)
		})
	}
}
