package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/kenyapadelscore/padelscore/realtime"
	"github.com/kenyapadelscore/padelscore/repositories"
)

// Broadcaster fans accepted mutations out to observers.
type Broadcaster interface {
	BroadcastToRoom(matchID int, event realtime.Event)
	BroadcastAll(event realtime.Event)
}

// ChangeListener is poked after an accepted mutation so derived state can
// refresh early. Notify must never block.
type ChangeListener interface {
	Notify()
}

// ScoreGate is the sole path through which score and detail mutations
// reach the match service from network requests. It authorizes the
// principal, delegates, and fans out accepted score updates.
type ScoreGate struct {
	matches   MatchService
	matchRepo repositories.MatchRepository
	hub       Broadcaster
	dashboard ChangeListener
	logger    *slog.Logger

	// serializes update+publish per match, so room members receive
	// accepted updates in the order the registry accepted them.
	locks matchLocks
}

func NewScoreGate(
	matches MatchService,
	matchRepo repositories.MatchRepository,
	hub Broadcaster,
	dashboard ChangeListener,
	logger *slog.Logger,
) *ScoreGate {
	return &ScoreGate{
		matches:   matches,
		matchRepo: matchRepo,
		hub:       hub,
		dashboard: dashboard,
		logger:    logger,
	}
}

// SubmitScore authorizes and applies a score update. A referee may only
// touch matches they are assigned to; an authorization failure happens
// before any mutation, so nothing is persisted and nothing is broadcast.
func (g *ScoreGate) SubmitScore(ctx context.Context, principal models.Principal, matchID int, input ScoreUpdateInput) (*models.Match, error) {
	switch principal.Role {
	case models.RoleAdmin:
		// no ownership check
	case models.RoleReferee:
		match, err := g.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return nil, mapMatchRepoError(err)
		}
		if match.RefereeID == nil || *match.RefereeID != principal.ID {
			return nil, ErrRefereeNotAssigned
		}
	default:
		return nil, ErrForbiddenOperation
	}

	// Held across the mutation and the enqueue below: releasing between
	// the two would let a later writer's snapshot reach observers before
	// an earlier one.
	unlock := g.locks.lock(matchID)
	defer unlock()

	updated, err := g.matches.UpdateScore(ctx, matchID, input)
	if err != nil {
		return nil, err
	}

	// The mutation already succeeded; fan-out is best-effort and its
	// failures never reach the caller.
	g.hub.BroadcastToRoom(matchID, realtime.Event{
		Type: realtime.EventScoreUpdate,
		Payload: realtime.ScoreUpdatePayload{
			MatchID:   matchID,
			Match:     updated,
			Timestamp: time.Now().UTC(),
		},
	})
	g.hub.BroadcastAll(realtime.Event{Type: realtime.EventMatchUpdate})
	g.dashboard.Notify()

	g.logger.Info("score update accepted",
		slog.Int("match_id", matchID),
		slog.Int("principal_id", principal.ID),
		slog.String("role", string(principal.Role)),
	)
	return updated, nil
}

// UpdateDetails applies a detail update. Admin only; detail changes do not
// broadcast.
func (g *ScoreGate) UpdateDetails(ctx context.Context, principal models.Principal, matchID int, input DetailsUpdateInput) (*models.Match, error) {
	if principal.Role != models.RoleAdmin {
		return nil, ErrForbiddenOperation
	}
	return g.matches.UpdateDetails(ctx, matchID, input)
}
