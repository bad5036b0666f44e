package session

import "github.com/rocketscienceinc/tictactoe-stepback/internal/entity"

type playerTurnMessage struct {
	PlayerTurn entity.Role `json:"playerTurn"`
}

type statusMessage struct {
	Status string `json:"status"`
}

type errorMessage struct {
	Error string `json:"error"`
}

type turnMessage struct {
	Turn entity.Role `json:"turn"`
}

type rewindMessage struct {
	Board entity.Board `json:"board"`
	Step  int          `json:"step"`
}

const statusConnected = "Connection established."

// Snapshot is a read-only view of the session.
type Snapshot struct {
	Board   entity.Board         `json:"board"`
	Turn    entity.Role          `json:"turn"`
	Rounds  int                  `json:"rounds"`
	Players map[entity.Role]bool `json:"players"`
}
