package models

// DashboardStats is the cached aggregate summary shown on the admin
// dashboard. Field names follow the dashboard-update event payload.
type DashboardStats struct {
	ActiveTournaments int `json:"activeTournaments"`
	OngoingMatches    int `json:"ongoingMatches"`
	TotalPlayers      int `json:"totalPlayers"`
}
