package services

import "errors"

// Sentinel errors shared across services and mapped once to HTTP statuses
// at the handler boundary.
var (
	// Not found
	ErrMatchNotFound      = errors.New("match not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrMatchTeamsRequired      = errors.New("tournament id, team1 id, and team2 id are required")
	ErrMatchTeamsIdentical     = errors.New("a team cannot play against itself")
	ErrMatchInvalidStatus      = errors.New("invalid match status provided")
	ErrMatchInvalidReference   = errors.New("referenced tournament, team, or referee does not exist")
	ErrWinnerRequiresCompleted = errors.New("winner can only be set on a completed match")
	ErrWinnerNotParticipant    = errors.New("winner must be one of the two competing teams")

	// Conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrRefereeNotAssigned     = errors.New("you can only update scores for matches you are refereeing")
)
