package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
)

func TestWeeklyLimitProgress(t *testing.T) {
	goal := domain.Goal{ID: "g1", Type: domain.GoalWeeklyLimit, TargetValue: 2, IsActive: true}

	tests := []struct {
		name          string
		logs          []domain.DrinkLog
		wantRemaining int
		wantExceeded  bool
	}{
		{name: "no drinks", wantRemaining: 2},
		{
			name:          "one day",
			logs:          []domain.DrinkLog{newLog("2026-10-12", domain.DrinkBeer, 1)},
			wantRemaining: 1,
		},
		{
			name: "exceeded",
			logs: []domain.DrinkLog{
				newLog("2026-10-12", domain.DrinkBeer, 1),
				newLog("2026-10-13", domain.DrinkBeer, 1),
				newLog("2026-10-14", domain.DrinkSoju, 1),
			},
			wantRemaining: 0,
			wantExceeded:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := WeeklyLimitProgress(goal, Summarize(tt.logs, "2026-10-11", "2026-10-16"))
			assert.Equal(t, tt.wantRemaining, p.Remaining)
			assert.Equal(t, tt.wantExceeded, p.Exceeded)
			assert.Equal(t, len(tt.logs), p.DrinkDays)
		})
	}
}

func TestSoberChallengeProgress(t *testing.T) {
	goal := domain.Goal{ID: "g2", Type: domain.GoalSoberChallenge, TargetValue: 7, StartDate: "2026-10-10", IsActive: true}

	t.Run("in progress", func(t *testing.T) {
		p, err := SoberChallengeProgress(goal, nil, "2026-10-14")
		require.NoError(t, err)
		assert.Equal(t, 5, p.ElapsedDays)
		assert.Equal(t, 5, p.SoberDays)
		assert.Equal(t, 2, p.Remaining)
		assert.False(t, p.Completed)
		assert.False(t, p.Broken)
	})

	t.Run("completed", func(t *testing.T) {
		p, err := SoberChallengeProgress(goal, nil, "2026-10-16")
		require.NoError(t, err)
		assert.True(t, p.Completed)
		assert.Zero(t, p.Remaining)
	})

	t.Run("broken", func(t *testing.T) {
		logs := []domain.DrinkLog{
			newLog("2026-10-09", domain.DrinkSoju, 1), // before the challenge
			newLog("2026-10-13", domain.DrinkSoju, 1),
		}
		p, err := SoberChallengeProgress(goal, logs, "2026-10-16")
		require.NoError(t, err)
		assert.True(t, p.Broken)
		assert.False(t, p.Completed)
		assert.Equal(t, 1, p.DrinkDays)
		assert.Equal(t, 6, p.SoberDays)
	})

	t.Run("bad start date", func(t *testing.T) {
		bad := goal
		bad.StartDate = "10/10/2026"
		_, err := SoberChallengeProgress(bad, nil, "2026-10-16")
		assert.Error(t, err)
	})
}
