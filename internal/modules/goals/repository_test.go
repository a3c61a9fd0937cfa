package goals

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/domain"
)

func seedGoal(t *testing.T, repo *Repository, userID uuid.UUID, target *string, status domain.GoalStatus) Goal {
	g := Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Seed",
		Category:     domain.GoalSavings,
		TargetAmount: d("1000"),
		SavedAmount:  d("100"),
		Currency:     "BHD",
		Deadline:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority:     domain.PriorityMedium,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if target != nil {
		g.MonthlySavingsTarget = dp(*target)
	}
	require.NoError(t, repo.Create(g))
	return g
}

func strPtr(s string) *string { return &s }

func TestSumMonthlyTargets(t *testing.T) {
	repo := NewRepository(setupTestGoalsDB(t), zerolog.New(nil).Level(zerolog.Disabled))
	userID := uuid.New()

	seedGoal(t, repo, userID, strPtr("150.5"), domain.StatusOnTrack)
	seedGoal(t, repo, userID, strPtr("49.5"), domain.StatusAtRisk)
	// No rate set, contributes nothing.
	seedGoal(t, repo, userID, nil, domain.StatusOnTrack)
	// Completed goals no longer claim their rate.
	seedGoal(t, repo, userID, strPtr("300"), domain.StatusCompleted)
	// Another user's goal is out of scope.
	seedGoal(t, repo, uuid.New(), strPtr("500"), domain.StatusOnTrack)

	total, err := repo.SumMonthlyTargets(userID)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("200")), "got %s", total)
}

func TestGoalRoundTrip(t *testing.T) {
	repo := NewRepository(setupTestGoalsDB(t), zerolog.New(nil).Level(zerolog.Disabled))
	userID := uuid.New()

	created := seedGoal(t, repo, userID, strPtr("75.250"), domain.StatusOnTrack)

	got, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, got.TargetAmount.Equal(d("1000")))
	require.NotNil(t, got.MonthlySavingsTarget)
	assert.True(t, got.MonthlySavingsTarget.Equal(d("75.25")))
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), got.Deadline)
}

func TestDeleteMissingGoal(t *testing.T) {
	repo := NewRepository(setupTestGoalsDB(t), zerolog.New(nil).Level(zerolog.Disabled))
	assert.ErrorIs(t, repo.Delete(uuid.New()), ErrNotFound)
}

func TestListByUser_Empty(t *testing.T) {
	repo := NewRepository(setupTestGoalsDB(t), zerolog.New(nil).Level(zerolog.Disabled))
	goals, err := repo.ListByUser(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, goals)
}
