package realtime

import (
	"time"

	"github.com/kenyapadelscore/padelscore/models"
)

// Event types pushed to observers. Inbound, clients only send join-match.
const (
	EventScoreUpdate     = "score-update"
	EventMatchUpdate     = "match-update"
	EventDashboardUpdate = "dashboard-update"

	eventJoinMatch = "join-match"
)

// Event is the wire envelope for every websocket message.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ScoreUpdatePayload carries an accepted score mutation to room members.
type ScoreUpdatePayload struct {
	MatchID   int           `json:"matchId"`
	Match     *models.Match `json:"match"`
	Timestamp time.Time     `json:"timestamp"`
}

// DashboardUpdatePayload carries the freshly recomputed summary.
type DashboardUpdatePayload struct {
	Stats models.DashboardStats `json:"stats"`
}
