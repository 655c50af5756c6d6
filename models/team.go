package models

import "time"

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Player1ID int       `json:"player1_id"`
	Player2ID int       `json:"player2_id"`
	Ranking   int       `json:"ranking"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	CreatedAt time.Time `json:"created_at"`
}
