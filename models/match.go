package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

// ValidMatchStatus reports whether s is one of the known lifecycle states.
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Match is the authoritative persisted record of a single match.
// Score fields stay NULL until the match leaves the scheduled state.
type Match struct {
	ID             int         `json:"id"`
	TournamentID   int         `json:"tournament_id"`
	Team1ID        int         `json:"team1_id"`
	Team2ID        int         `json:"team2_id"`
	RefereeID      *int        `json:"referee_id,omitempty"`
	ScheduledAt    *time.Time  `json:"scheduled_at,omitempty"`
	CourtNumber    *int        `json:"court_number,omitempty"`
	Status         MatchStatus `json:"status"`
	Team1ScoreSet1 *int        `json:"team1_score_set1,omitempty"`
	Team1ScoreSet2 *int        `json:"team1_score_set2,omitempty"`
	Team1ScoreSet3 *int        `json:"team1_score_set3,omitempty"`
	Team2ScoreSet1 *int        `json:"team2_score_set1,omitempty"`
	Team2ScoreSet2 *int        `json:"team2_score_set2,omitempty"`
	Team2ScoreSet3 *int        `json:"team2_score_set3,omitempty"`
	WinnerID       *int        `json:"winner_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// MatchSummary is a Match expanded with display names for list responses.
type MatchSummary struct {
	Match
	Team1Name        string  `json:"team1_name"`
	Team2Name        string  `json:"team2_name"`
	TournamentName   string  `json:"tournament_name"`
	RefereeFirstName *string `json:"referee_first_name"`
	RefereeLastName  *string `json:"referee_last_name"`
}

// MatchDetail additionally carries the player name pairs of both teams.
type MatchDetail struct {
	MatchSummary
	Team1Players []PlayerName `json:"team1_players"`
	Team2Players []PlayerName `json:"team2_players"`
}

type PlayerName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MatchFilter narrows match listings. Nil fields mean no filtering.
type MatchFilter struct {
	Status       *MatchStatus
	TournamentID *int
}
