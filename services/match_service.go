package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/kenyapadelscore/padelscore/repositories"
)

// MatchService owns the match lifecycle. It is the only component that
// mutates match records; the repositories persist whatever it hands them.
type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	UpdateScore(ctx context.Context, matchID int, input ScoreUpdateInput) (*models.Match, error)
	UpdateDetails(ctx context.Context, matchID int, input DetailsUpdateInput) (*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.MatchDetail, error)
	ListMatches(ctx context.Context, filter models.MatchFilter) ([]*models.MatchSummary, error)
}

type CreateMatchInput struct {
	TournamentID int        `json:"tournament_id"`
	Team1ID      int        `json:"team1_id"`
	Team2ID      int        `json:"team2_id"`
	RefereeID    *int       `json:"referee_id"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	CourtNumber  *int       `json:"court_number"`
}

// ScoreUpdateInput is a sparse update: nil fields are left untouched.
type ScoreUpdateInput struct {
	Team1ScoreSet1 *int                `json:"team1_score_set1"`
	Team1ScoreSet2 *int                `json:"team1_score_set2"`
	Team1ScoreSet3 *int                `json:"team1_score_set3"`
	Team2ScoreSet1 *int                `json:"team2_score_set1"`
	Team2ScoreSet2 *int                `json:"team2_score_set2"`
	Team2ScoreSet3 *int                `json:"team2_score_set3"`
	Status         *models.MatchStatus `json:"status"`
	WinnerID       *int                `json:"winner_id"`
}

type DetailsUpdateInput struct {
	RefereeID   *int                `json:"referee_id"`
	ScheduledAt *time.Time          `json:"scheduled_at"`
	CourtNumber *int                `json:"court_number"`
	Status      *models.MatchStatus `json:"status"`
}

// matchLocks hands out one mutex per match id: work on the same match is
// linearized, different matches proceed concurrently. The zero value is
// ready to use.
type matchLocks struct {
	mus sync.Map
}

func (l *matchLocks) lock(matchID int) func() {
	value, _ := l.mus.LoadOrStore(matchID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type matchService struct {
	matchRepo repositories.MatchRepository
	locks     matchLocks
}

func NewMatchService(matchRepo repositories.MatchRepository) MatchService {
	return &matchService{matchRepo: matchRepo}
}

func (s *matchService) lockMatch(matchID int) func() {
	return s.locks.lock(matchID)
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.TournamentID <= 0 || input.Team1ID <= 0 || input.Team2ID <= 0 {
		return nil, ErrMatchTeamsRequired
	}
	if input.Team1ID == input.Team2ID {
		return nil, ErrMatchTeamsIdentical
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Team1ID:      input.Team1ID,
		Team2ID:      input.Team2ID,
		RefereeID:    input.RefereeID,
		ScheduledAt:  input.ScheduledAt,
		CourtNumber:  input.CourtNumber,
		Status:       models.MatchStatusScheduled,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) UpdateScore(ctx context.Context, matchID int, input ScoreUpdateInput) (*models.Match, error) {
	unlock := s.lockMatch(matchID)
	defer unlock()

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	if input.Team1ScoreSet1 != nil {
		match.Team1ScoreSet1 = input.Team1ScoreSet1
	}
	if input.Team1ScoreSet2 != nil {
		match.Team1ScoreSet2 = input.Team1ScoreSet2
	}
	if input.Team1ScoreSet3 != nil {
		match.Team1ScoreSet3 = input.Team1ScoreSet3
	}
	if input.Team2ScoreSet1 != nil {
		match.Team2ScoreSet1 = input.Team2ScoreSet1
	}
	if input.Team2ScoreSet2 != nil {
		match.Team2ScoreSet2 = input.Team2ScoreSet2
	}
	if input.Team2ScoreSet3 != nil {
		match.Team2ScoreSet3 = input.Team2ScoreSet3
	}
	if input.Status != nil {
		if !models.ValidMatchStatus(*input.Status) {
			return nil, ErrMatchInvalidStatus
		}
		// No transition table is enforced here: any known status may
		// replace any other. Last accepted write wins.
		match.Status = *input.Status
		if match.Status != models.MatchStatusCompleted {
			// Reopening a decided match voids its result; winner_id is
			// only meaningful on a completed match.
			match.WinnerID = nil
		}
	}
	if input.WinnerID != nil {
		if match.Status != models.MatchStatusCompleted {
			return nil, ErrWinnerRequiresCompleted
		}
		if *input.WinnerID != match.Team1ID && *input.WinnerID != match.Team2ID {
			return nil, ErrWinnerNotParticipant
		}
		match.WinnerID = input.WinnerID
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) UpdateDetails(ctx context.Context, matchID int, input DetailsUpdateInput) (*models.Match, error) {
	unlock := s.lockMatch(matchID)
	defer unlock()

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	if input.RefereeID != nil {
		match.RefereeID = input.RefereeID
	}
	if input.ScheduledAt != nil {
		match.ScheduledAt = input.ScheduledAt
	}
	if input.CourtNumber != nil {
		match.CourtNumber = input.CourtNumber
	}
	if input.Status != nil {
		if !models.ValidMatchStatus(*input.Status) {
			return nil, ErrMatchInvalidStatus
		}
		match.Status = *input.Status
		if match.Status != models.MatchStatusCompleted {
			match.WinnerID = nil
		}
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.MatchDetail, error) {
	detail, err := s.matchRepo.GetDetailByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	return detail, nil
}

func (s *matchService) ListMatches(ctx context.Context, filter models.MatchFilter) ([]*models.MatchSummary, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []*models.MatchSummary{}, nil
	}
	return matches, nil
}

func mapMatchRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchTournamentInvalid),
		errors.Is(err, repositories.ErrMatchTeamInvalid),
		errors.Is(err, repositories.ErrMatchRefereeInvalid):
		return fmt.Errorf("%w: %v", ErrMatchInvalidReference, err)
	default:
		return err
	}
}
