package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kenyapadelscore/padelscore/models"
)

// In-memory repository implementations. They satisfy the same interfaces
// as the postgres ones, so callers do not care which backing store an
// entity uses. The test suites run the full service stack against them;
// production wiring uses the postgres implementations.

type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int]*models.User
	nextID int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[int]*models.User), nextID: 1}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *InMemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return ErrUserEmailConflict
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *InMemoryUserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type InMemoryPlayerRepository struct {
	mu      sync.RWMutex
	players map[int]*models.Player
	nextID  int
}

func NewInMemoryPlayerRepository() *InMemoryPlayerRepository {
	return &InMemoryPlayerRepository{players: make(map[int]*models.Player), nextID: 1}
}

func (r *InMemoryPlayerRepository) Create(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player.ID = r.nextID
	r.nextID++
	player.CreatedAt = time.Now()
	stored := *player
	r.players[player.ID] = &stored
	return nil
}

func (r *InMemoryPlayerRepository) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (r *InMemoryPlayerRepository) List(_ context.Context) ([]*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := make([]*models.Player, 0, len(r.players))
	for _, player := range r.players {
		copied := *player
		players = append(players, &copied)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Ranking > players[j].Ranking })
	return players, nil
}

func (r *InMemoryPlayerRepository) Update(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.ID]; !ok {
		return ErrPlayerNotFound
	}
	stored := *player
	r.players[player.ID] = &stored
	return nil
}

func (r *InMemoryPlayerRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *InMemoryPlayerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players), nil
}

type InMemoryTeamRepository struct {
	mu     sync.RWMutex
	teams  map[int]*models.Team
	nextID int
}

func NewInMemoryTeamRepository() *InMemoryTeamRepository {
	return &InMemoryTeamRepository{teams: make(map[int]*models.Team), nextID: 1}
}

func (r *InMemoryTeamRepository) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team.ID = r.nextID
	r.nextID++
	team.CreatedAt = time.Now()
	stored := *team
	r.teams[team.ID] = &stored
	return nil
}

func (r *InMemoryTeamRepository) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *InMemoryTeamRepository) List(_ context.Context) ([]*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	teams := make([]*models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		copied := *team
		teams = append(teams, &copied)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Ranking > teams[j].Ranking })
	return teams, nil
}

func (r *InMemoryTeamRepository) Update(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return ErrTeamNotFound
	}
	stored := *team
	r.teams[team.ID] = &stored
	return nil
}

func (r *InMemoryTeamRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type InMemoryTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[int]*models.Tournament
	nextID      int
}

func NewInMemoryTournamentRepository() *InMemoryTournamentRepository {
	return &InMemoryTournamentRepository{tournaments: make(map[int]*models.Tournament), nextID: 1}
}

func (r *InMemoryTournamentRepository) Create(_ context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tournament.ID = r.nextID
	r.nextID++
	tournament.CreatedAt = time.Now()
	stored := *tournament
	r.tournaments[tournament.ID] = &stored
	return nil
}

func (r *InMemoryTournamentRepository) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	copied := *tournament
	return &copied, nil
}

func (r *InMemoryTournamentRepository) List(_ context.Context) ([]*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tournaments := make([]*models.Tournament, 0, len(r.tournaments))
	for _, tournament := range r.tournaments {
		copied := *tournament
		tournaments = append(tournaments, &copied)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	return tournaments, nil
}

func (r *InMemoryTournamentRepository) Update(_ context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return ErrTournamentNotFound
	}
	stored := *tournament
	r.tournaments[tournament.ID] = &stored
	return nil
}

func (r *InMemoryTournamentRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *InMemoryTournamentRepository) Count(_ context.Context, status *models.TournamentStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status == nil {
		return len(r.tournaments), nil
	}
	count := 0
	for _, tournament := range r.tournaments {
		if tournament.Status == *status {
			count++
		}
	}
	return count, nil
}
