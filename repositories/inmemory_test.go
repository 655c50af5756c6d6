package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryUserRepositoryEmailConflict(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	first := &models.User{Email: "ref@padelscore.test", Role: models.RoleReferee, Status: models.UserStatusActive}
	require.NoError(t, repo.Create(ctx, first))

	duplicate := &models.User{Email: "ref@padelscore.test", Role: models.RoleReferee, Status: models.UserStatusActive}
	assert.ErrorIs(t, repo.Create(ctx, duplicate), ErrUserEmailConflict)

	other := &models.User{Email: "other@padelscore.test", Role: models.RoleReferee, Status: models.UserStatusActive}
	require.NoError(t, repo.Create(ctx, other))
	other.Email = "ref@padelscore.test"
	assert.ErrorIs(t, repo.Update(ctx, other), ErrUserEmailConflict)
}

func TestInMemoryUserRepositoryNotFoundSentinels(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, "ghost@padelscore.test")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.User{ID: 42}), ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), ErrUserNotFound)
}

func TestInMemoryMatchRepositoryReturnsCopies(t *testing.T) {
	teamRepo := NewInMemoryTeamRepository()
	tournamentRepo := NewInMemoryTournamentRepository()
	playerRepo := NewInMemoryPlayerRepository()
	userRepo := NewInMemoryUserRepository()
	repo := NewInMemoryMatchRepository(teamRepo, tournamentRepo, playerRepo, userRepo)
	ctx := context.Background()

	match := &models.Match{TournamentID: 1, Team1ID: 1, Team2ID: 2, Status: models.MatchStatusScheduled}
	require.NoError(t, repo.Create(ctx, match))

	loaded, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	loaded.Status = models.MatchStatusCancelled

	reloaded, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusScheduled, reloaded.Status, "mutating a loaded row must not touch the store")
}

func TestInMemoryMatchRepositoryListOrder(t *testing.T) {
	teamRepo := NewInMemoryTeamRepository()
	tournamentRepo := NewInMemoryTournamentRepository()
	playerRepo := NewInMemoryPlayerRepository()
	userRepo := NewInMemoryUserRepository()
	repo := NewInMemoryMatchRepository(teamRepo, tournamentRepo, playerRepo, userRepo)
	ctx := context.Background()

	tournament := &models.Tournament{Name: "Coast Open", Status: models.TournamentStatusActive}
	require.NoError(t, tournamentRepo.Create(ctx, tournament))
	team1 := &models.Team{Name: "A"}
	require.NoError(t, teamRepo.Create(ctx, team1))
	team2 := &models.Team{Name: "B"}
	require.NoError(t, teamRepo.Create(ctx, team2))

	later := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

	newMatch := func(at *time.Time) int {
		match := &models.Match{
			TournamentID: tournament.ID,
			Team1ID:      team1.ID,
			Team2ID:      team2.ID,
			Status:       models.MatchStatusScheduled,
			ScheduledAt:  at,
		}
		require.NoError(t, repo.Create(ctx, match))
		return match.ID
	}

	unscheduled := newMatch(nil)
	late := newMatch(&later)
	early := newMatch(&sooner)

	summaries, err := repo.List(ctx, models.MatchFilter{})
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Soonest first, unscheduled matches sort last.
	assert.Equal(t, early, summaries[0].ID)
	assert.Equal(t, late, summaries[1].ID)
	assert.Equal(t, unscheduled, summaries[2].ID)
}

func TestInMemoryMatchRepositoryCountByStatus(t *testing.T) {
	teamRepo := NewInMemoryTeamRepository()
	tournamentRepo := NewInMemoryTournamentRepository()
	playerRepo := NewInMemoryPlayerRepository()
	userRepo := NewInMemoryUserRepository()
	repo := NewInMemoryMatchRepository(teamRepo, tournamentRepo, playerRepo, userRepo)
	ctx := context.Background()

	for _, status := range []models.MatchStatus{
		models.MatchStatusScheduled,
		models.MatchStatusInProgress,
		models.MatchStatusInProgress,
		models.MatchStatusCompleted,
	} {
		require.NoError(t, repo.Create(ctx, &models.Match{TournamentID: 1, Team1ID: 1, Team2ID: 2, Status: status}))
	}

	total, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	inProgress := models.MatchStatusInProgress
	ongoing, err := repo.Count(ctx, &inProgress)
	require.NoError(t, err)
	assert.Equal(t, 2, ongoing)
}
