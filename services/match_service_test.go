package services

import (
	"context"
	"sync"
	"testing"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatchRejectsIdenticalTeams(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)

	_, err := service.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: f.tournamentID,
		Team1ID:      f.team1ID,
		Team2ID:      f.team1ID,
	})
	assert.ErrorIs(t, err, ErrMatchTeamsIdentical)
}

func TestCreateMatchRequiresAllIDs(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)

	_, err := service.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: f.tournamentID,
		Team1ID:      f.team1ID,
	})
	assert.ErrorIs(t, err, ErrMatchTeamsRequired)
}

func TestCreateMatchStartsScheduledWithoutScores(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)

	match := f.createMatch(t, service, nil)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
	assert.Nil(t, match.Team1ScoreSet1)
	assert.Nil(t, match.WinnerID)
	assert.NotZero(t, match.ID)
}

func TestUpdateScoreAppliesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	updated, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Team1ScoreSet1: intPtr(6),
		Status:         statusPtr(models.MatchStatusInProgress),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Team1ScoreSet1)
	assert.Equal(t, 6, *updated.Team1ScoreSet1)
	assert.Equal(t, models.MatchStatusInProgress, updated.Status)
	assert.Nil(t, updated.Team2ScoreSet1, "untouched fields stay unset")

	// Second sparse update leaves the first set intact.
	updated, err = service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Team2ScoreSet1: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, *updated.Team1ScoreSet1)
	assert.Equal(t, 4, *updated.Team2ScoreSet1)
}

func TestUpdateScoreUnknownMatch(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)

	_, err := service.UpdateScore(context.Background(), 9999, ScoreUpdateInput{Team1ScoreSet1: intPtr(1)})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestUpdateScoreRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status: statusPtr(models.MatchStatus("halftime")),
	})
	assert.ErrorIs(t, err, ErrMatchInvalidStatus)
}

func TestWinnerRequiresCompletedStatus(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		WinnerID: intPtr(f.team1ID),
	})
	assert.ErrorIs(t, err, ErrWinnerRequiresCompleted)

	updated, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status:   statusPtr(models.MatchStatusCompleted),
		WinnerID: intPtr(f.team1ID),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WinnerID)
	assert.Equal(t, f.team1ID, *updated.WinnerID)
}

func TestWinnerMustBeOneOfTheTeams(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status:   statusPtr(models.MatchStatusCompleted),
		WinnerID: intPtr(12345),
	})
	assert.ErrorIs(t, err, ErrWinnerNotParticipant)
}

func TestUpdateDetailsAssignsReferee(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	updated, err := service.UpdateDetails(context.Background(), match.ID, DetailsUpdateInput{
		RefereeID:   intPtr(f.referee.ID),
		CourtNumber: intPtr(2),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.RefereeID)
	assert.Equal(t, f.referee.ID, *updated.RefereeID)
	assert.Equal(t, 2, *updated.CourtNumber)
}

func TestListMatchesFiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	ctx := context.Background()

	first := f.createMatch(t, service, nil)
	second := f.createMatch(t, service, nil)
	_, err := service.UpdateScore(ctx, second.ID, ScoreUpdateInput{Status: statusPtr(models.MatchStatusInProgress)})
	require.NoError(t, err)

	all, err := service.ListMatches(ctx, models.MatchFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Baobab Smash", all[0].Team1Name)
	assert.Equal(t, "Nairobi Open", all[0].TournamentName)

	inProgress := models.MatchStatusInProgress
	filtered, err := service.ListMatches(ctx, models.MatchFilter{Status: &inProgress})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, second.ID, filtered[0].ID)

	otherTournament := 999
	none, err := service.ListMatches(ctx, models.MatchFilter{TournamentID: &otherTournament})
	require.NoError(t, err)
	assert.Empty(t, none)

	_ = first
}

func TestGetMatchExpandsNames(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, intPtr(f.referee.ID))

	detail, err := service.GetMatch(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, "Baobab Smash", detail.Team1Name)
	assert.Equal(t, "Savannah Spin", detail.Team2Name)
	require.NotNil(t, detail.RefereeFirstName)
	assert.Equal(t, "Rita", *detail.RefereeFirstName)
	require.Len(t, detail.Team1Players, 2)
	assert.Equal(t, "Amina", detail.Team1Players[0].FirstName)

	_, err = service.GetMatch(context.Background(), 424242)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestConcurrentScoreUpdatesToSameMatchAreSerialized(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
				Team1ScoreSet1: intPtr(score),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Last accepted write wins; whichever it was, the value is one of the
	// submitted scores and the record is consistent.
	final, err := f.matchRepo.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	require.NotNil(t, final.Team1ScoreSet1)
	assert.GreaterOrEqual(t, *final.Team1ScoreSet1, 0)
	assert.Less(t, *final.Team1ScoreSet1, 20)
}

func TestReopeningCompletedMatchClearsWinner(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status:   statusPtr(models.MatchStatusCompleted),
		WinnerID: intPtr(f.team1ID),
	})
	require.NoError(t, err)

	reopened, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status: statusPtr(models.MatchStatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusInProgress, reopened.Status)
	assert.Nil(t, reopened.WinnerID, "a match that is no longer completed has no winner")

	stored, err := f.matchRepo.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.WinnerID)
}

func TestDetailStatusChangeAwayFromCompletedClearsWinner(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status:   statusPtr(models.MatchStatusCompleted),
		WinnerID: intPtr(f.team2ID),
	})
	require.NoError(t, err)

	rescheduled, err := service.UpdateDetails(context.Background(), match.ID, DetailsUpdateInput{
		Status: statusPtr(models.MatchStatusScheduled),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusScheduled, rescheduled.Status)
	assert.Nil(t, rescheduled.WinnerID)
}

func TestCompletedStatusRestatedKeepsWinner(t *testing.T) {
	f := newFixture(t)
	service := NewMatchService(f.matchRepo)
	match := f.createMatch(t, service, nil)

	_, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status:   statusPtr(models.MatchStatusCompleted),
		WinnerID: intPtr(f.team1ID),
	})
	require.NoError(t, err)

	updated, err := service.UpdateScore(context.Background(), match.ID, ScoreUpdateInput{
		Status: statusPtr(models.MatchStatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WinnerID)
	assert.Equal(t, f.team1ID, *updated.WinnerID)
}
