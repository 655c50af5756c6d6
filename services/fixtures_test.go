package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/kenyapadelscore/padelscore/realtime"
	"github.com/kenyapadelscore/padelscore/repositories"
	"github.com/stretchr/testify/require"
)

// fixture wires the in-memory repositories with a seeded tournament, four
// players, two teams and two users (one admin, one referee).
type fixture struct {
	matchRepo      *repositories.InMemoryMatchRepository
	teamRepo       *repositories.InMemoryTeamRepository
	tournamentRepo *repositories.InMemoryTournamentRepository
	playerRepo     *repositories.InMemoryPlayerRepository
	userRepo       *repositories.InMemoryUserRepository

	admin   models.Principal
	referee models.Principal

	tournamentID int
	team1ID      int
	team2ID      int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		teamRepo:       repositories.NewInMemoryTeamRepository(),
		tournamentRepo: repositories.NewInMemoryTournamentRepository(),
		playerRepo:     repositories.NewInMemoryPlayerRepository(),
		userRepo:       repositories.NewInMemoryUserRepository(),
	}
	f.matchRepo = repositories.NewInMemoryMatchRepository(f.teamRepo, f.tournamentRepo, f.playerRepo, f.userRepo)

	tournament := &models.Tournament{Name: "Nairobi Open", Status: models.TournamentStatusActive}
	require.NoError(t, f.tournamentRepo.Create(ctx, tournament))
	f.tournamentID = tournament.ID

	playerIDs := make([]int, 0, 4)
	for _, name := range []string{"Amina", "Brian", "Cate", "David"} {
		player := &models.Player{FirstName: name, LastName: "Player", Ranking: 1000}
		require.NoError(t, f.playerRepo.Create(ctx, player))
		playerIDs = append(playerIDs, player.ID)
	}

	team1 := &models.Team{Name: "Baobab Smash", Player1ID: playerIDs[0], Player2ID: playerIDs[1], Ranking: 1000}
	require.NoError(t, f.teamRepo.Create(ctx, team1))
	team2 := &models.Team{Name: "Savannah Spin", Player1ID: playerIDs[2], Player2ID: playerIDs[3], Ranking: 1000}
	require.NoError(t, f.teamRepo.Create(ctx, team2))
	f.team1ID = team1.ID
	f.team2ID = team2.ID

	admin := &models.User{FirstName: "Ada", LastName: "Admin", Email: "ada@padelscore.test", Role: models.RoleAdmin, Status: models.UserStatusActive}
	require.NoError(t, f.userRepo.Create(ctx, admin))
	referee := &models.User{FirstName: "Rita", LastName: "Referee", Email: "rita@padelscore.test", Role: models.RoleReferee, Status: models.UserStatusActive}
	require.NoError(t, f.userRepo.Create(ctx, referee))
	f.admin = models.Principal{ID: admin.ID, Role: models.RoleAdmin}
	f.referee = models.Principal{ID: referee.ID, Role: models.RoleReferee}

	return f
}

func (f *fixture) createMatch(t *testing.T, service MatchService, refereeID *int) *models.Match {
	t.Helper()
	match, err := service.CreateMatch(context.Background(), CreateMatchInput{
		TournamentID: f.tournamentID,
		Team1ID:      f.team1ID,
		Team2ID:      f.team2ID,
		RefereeID:    refereeID,
	})
	require.NoError(t, err)
	return match
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type roomEvent struct {
	matchID int
	event   realtime.Event
}

// recordingBroadcaster captures fan-out calls instead of touching sockets.
type recordingBroadcaster struct {
	mu   sync.Mutex
	room []roomEvent
	all  []realtime.Event
}

func (b *recordingBroadcaster) BroadcastToRoom(matchID int, event realtime.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.room = append(b.room, roomEvent{matchID: matchID, event: event})
}

func (b *recordingBroadcaster) BroadcastAll(event realtime.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, event)
}

func (b *recordingBroadcaster) roomEvents() []roomEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]roomEvent(nil), b.room...)
}

func (b *recordingBroadcaster) allEvents() []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.Event(nil), b.all...)
}

type countingListener struct {
	mu    sync.Mutex
	calls int
}

func (l *countingListener) Notify() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
}

func (l *countingListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func intPtr(v int) *int { return &v }

func statusPtr(s models.MatchStatus) *models.MatchStatus { return &s }
