package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrMatchRefereeInvalid    = errors.New("match referee conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetDetailByID(ctx context.Context, id int) (*models.MatchDetail, error)
	List(ctx context.Context, filter models.MatchFilter) ([]*models.MatchSummary, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, status *models.MatchStatus) (int, error)
}

type postgresMatchRepository struct {
	db SQLExecutor
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, team1_id, team2_id, referee_id, scheduled_at, court_number, status,
	team1_score_set1, team1_score_set2, team1_score_set3,
	team2_score_set1, team2_score_set2, team2_score_set3,
	winner_id, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, team1_id, team2_id, referee_id, scheduled_at, court_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.Team1ID,
		match.Team2ID,
		match.RefereeID,
		match.ScheduledAt,
		match.CourtNumber,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := scanMatch(r.db.QueryRowContext(ctx, query, id), match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) GetDetailByID(ctx context.Context, id int) (*models.MatchDetail, error) {
	query := `
		SELECT
			m.id, m.tournament_id, m.team1_id, m.team2_id, m.referee_id, m.scheduled_at, m.court_number, m.status,
			m.team1_score_set1, m.team1_score_set2, m.team1_score_set3,
			m.team2_score_set1, m.team2_score_set2, m.team2_score_set3,
			m.winner_id, m.created_at,
			t1.name, t2.name, tr.name,
			u.first_name, u.last_name,
			p11.first_name, p11.last_name, p12.first_name, p12.last_name,
			p21.first_name, p21.last_name, p22.first_name, p22.last_name
		FROM matches m
		JOIN teams t1 ON m.team1_id = t1.id
		JOIN teams t2 ON m.team2_id = t2.id
		JOIN tournaments tr ON m.tournament_id = tr.id
		JOIN players p11 ON t1.player1_id = p11.id
		JOIN players p12 ON t1.player2_id = p12.id
		JOIN players p21 ON t2.player1_id = p21.id
		JOIN players p22 ON t2.player2_id = p22.id
		LEFT JOIN users u ON m.referee_id = u.id
		WHERE m.id = $1`

	detail := &models.MatchDetail{}
	var p11, p12, p21, p22 models.PlayerName
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(
		&detail.ID, &detail.TournamentID, &detail.Team1ID, &detail.Team2ID,
		&detail.RefereeID, &detail.ScheduledAt, &detail.CourtNumber, &detail.Status,
		&detail.Team1ScoreSet1, &detail.Team1ScoreSet2, &detail.Team1ScoreSet3,
		&detail.Team2ScoreSet1, &detail.Team2ScoreSet2, &detail.Team2ScoreSet3,
		&detail.WinnerID, &detail.CreatedAt,
		&detail.Team1Name, &detail.Team2Name, &detail.TournamentName,
		&detail.RefereeFirstName, &detail.RefereeLastName,
		&p11.FirstName, &p11.LastName, &p12.FirstName, &p12.LastName,
		&p21.FirstName, &p21.LastName, &p22.FirstName, &p22.LastName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match detail for id %d: %w", id, err)
	}
	detail.Team1Players = []models.PlayerName{p11, p12}
	detail.Team2Players = []models.PlayerName{p21, p22}
	return detail, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter models.MatchFilter) ([]*models.MatchSummary, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			m.id, m.tournament_id, m.team1_id, m.team2_id, m.referee_id, m.scheduled_at, m.court_number, m.status,
			m.team1_score_set1, m.team1_score_set2, m.team1_score_set3,
			m.team2_score_set1, m.team2_score_set2, m.team2_score_set3,
			m.winner_id, m.created_at,
			t1.name, t2.name, tr.name,
			u.first_name, u.last_name
		FROM matches m
		JOIN teams t1 ON m.team1_id = t1.id
		JOIN teams t2 ON m.team2_id = t2.id
		JOIN tournaments tr ON m.tournament_id = tr.id
		LEFT JOIN users u ON m.referee_id = u.id
		WHERE 1=1`)

	args := []interface{}{}
	placeholderIndex := 1

	if filter.Status != nil {
		queryBuilder.WriteString(" AND m.status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Status)
		placeholderIndex++
	}

	if filter.TournamentID != nil {
		queryBuilder.WriteString(" AND m.tournament_id = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.TournamentID)
	}

	// NULLS LAST keeps unscheduled matches at the tail of the listing.
	queryBuilder.WriteString(" ORDER BY m.scheduled_at ASC NULLS LAST, m.id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.MatchSummary, 0)
	for rows.Next() {
		var m models.MatchSummary
		if scanErr := rows.Scan(
			&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID,
			&m.RefereeID, &m.ScheduledAt, &m.CourtNumber, &m.Status,
			&m.Team1ScoreSet1, &m.Team1ScoreSet2, &m.Team1ScoreSet3,
			&m.Team2ScoreSet1, &m.Team2ScoreSet2, &m.Team2ScoreSet3,
			&m.WinnerID, &m.CreatedAt,
			&m.Team1Name, &m.Team2Name, &m.TournamentName,
			&m.RefereeFirstName, &m.RefereeLastName,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			referee_id = $1, scheduled_at = $2, court_number = $3, status = $4,
			team1_score_set1 = $5, team1_score_set2 = $6, team1_score_set3 = $7,
			team2_score_set1 = $8, team2_score_set2 = $9, team2_score_set3 = $10,
			winner_id = $11
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		match.RefereeID,
		match.ScheduledAt,
		match.CourtNumber,
		match.Status,
		match.Team1ScoreSet1, match.Team1ScoreSet2, match.Team1ScoreSet3,
		match.Team2ScoreSet1, match.Team2ScoreSet2, match.Team2ScoreSet3,
		match.WinnerID,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Count(ctx context.Context, status *models.MatchStatus) (int, error) {
	query := `SELECT COUNT(*) FROM matches`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func scanMatch(row *sql.Row, match *models.Match) error {
	return row.Scan(
		&match.ID, &match.TournamentID, &match.Team1ID, &match.Team2ID,
		&match.RefereeID, &match.ScheduledAt, &match.CourtNumber, &match.Status,
		&match.Team1ScoreSet1, &match.Team1ScoreSet2, &match.Team1ScoreSet3,
		&match.Team2ScoreSet1, &match.Team2ScoreSet2, &match.Team2ScoreSet3,
		&match.WinnerID, &match.CreatedAt,
	)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_team1_id_fkey", "matches_team2_id_fkey", "matches_winner_id_fkey":
			return ErrMatchTeamInvalid
		case "matches_referee_id_fkey":
			return ErrMatchRefereeInvalid
		}
	}
	return err
}
