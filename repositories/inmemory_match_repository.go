package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/kenyapadelscore/padelscore/models"
)

// InMemoryMatchRepository keeps matches in process memory. Name expansion
// for summaries and details is resolved against sibling repositories, so
// it behaves like the postgres implementation's joins.
type InMemoryMatchRepository struct {
	mu      sync.RWMutex
	matches map[int]*models.Match
	nextID  int

	teams       TeamRepository
	tournaments TournamentRepository
	players     PlayerRepository
	users       UserRepository
}

func NewInMemoryMatchRepository(
	teams TeamRepository,
	tournaments TournamentRepository,
	players PlayerRepository,
	users UserRepository,
) *InMemoryMatchRepository {
	return &InMemoryMatchRepository{
		matches:     make(map[int]*models.Match),
		nextID:      1,
		teams:       teams,
		tournaments: tournaments,
		players:     players,
		users:       users,
	}
}

func (r *InMemoryMatchRepository) Create(_ context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match.ID = r.nextID
	r.nextID++
	match.CreatedAt = time.Now()
	stored := *match
	r.matches[match.ID] = &stored
	return nil
}

func (r *InMemoryMatchRepository) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	match, ok := r.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *InMemoryMatchRepository) GetDetailByID(ctx context.Context, id int) (*models.MatchDetail, error) {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := r.expand(ctx, match)
	if err != nil {
		return nil, err
	}

	detail := &models.MatchDetail{MatchSummary: *summary}
	team1, err := r.teams.GetByID(ctx, match.Team1ID)
	if err != nil {
		return nil, err
	}
	team2, err := r.teams.GetByID(ctx, match.Team2ID)
	if err != nil {
		return nil, err
	}
	if detail.Team1Players, err = r.playerNames(ctx, team1); err != nil {
		return nil, err
	}
	if detail.Team2Players, err = r.playerNames(ctx, team2); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *InMemoryMatchRepository) List(ctx context.Context, filter models.MatchFilter) ([]*models.MatchSummary, error) {
	r.mu.RLock()
	selected := make([]*models.Match, 0, len(r.matches))
	for _, match := range r.matches {
		if filter.Status != nil && match.Status != *filter.Status {
			continue
		}
		if filter.TournamentID != nil && match.TournamentID != *filter.TournamentID {
			continue
		}
		copied := *match
		selected = append(selected, &copied)
	}
	r.mu.RUnlock()

	sort.Slice(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		switch {
		case a.ScheduledAt == nil && b.ScheduledAt == nil:
			return a.ID < b.ID
		case a.ScheduledAt == nil:
			return false
		case b.ScheduledAt == nil:
			return true
		case a.ScheduledAt.Equal(*b.ScheduledAt):
			return a.ID < b.ID
		default:
			return a.ScheduledAt.Before(*b.ScheduledAt)
		}
	})

	summaries := make([]*models.MatchSummary, 0, len(selected))
	for _, match := range selected {
		summary, err := r.expand(ctx, match)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *InMemoryMatchRepository) Update(_ context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[match.ID]; !ok {
		return ErrMatchNotFound
	}
	stored := *match
	r.matches[match.ID] = &stored
	return nil
}

func (r *InMemoryMatchRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *InMemoryMatchRepository) Count(_ context.Context, status *models.MatchStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status == nil {
		return len(r.matches), nil
	}
	count := 0
	for _, match := range r.matches {
		if match.Status == *status {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryMatchRepository) expand(ctx context.Context, match *models.Match) (*models.MatchSummary, error) {
	summary := &models.MatchSummary{Match: *match}

	team1, err := r.teams.GetByID(ctx, match.Team1ID)
	if err != nil {
		return nil, err
	}
	summary.Team1Name = team1.Name

	team2, err := r.teams.GetByID(ctx, match.Team2ID)
	if err != nil {
		return nil, err
	}
	summary.Team2Name = team2.Name

	tournament, err := r.tournaments.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}
	summary.TournamentName = tournament.Name

	if match.RefereeID != nil {
		referee, err := r.users.GetByID(ctx, *match.RefereeID)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		if referee != nil {
			summary.RefereeFirstName = &referee.FirstName
			summary.RefereeLastName = &referee.LastName
		}
	}
	return summary, nil
}

func (r *InMemoryMatchRepository) playerNames(ctx context.Context, team *models.Team) ([]models.PlayerName, error) {
	names := make([]models.PlayerName, 0, 2)
	for _, playerID := range []int{team.Player1ID, team.Player2ID} {
		player, err := r.players.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		names = append(names, models.PlayerName{FirstName: player.FirstName, LastName: player.LastName})
	}
	return names, nil
}
