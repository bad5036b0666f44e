package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/entity"
)

var ErrMalformedPayload = errors.New("malformed payload")

// Command is either a Move or a Rewind.
type Command interface {
	command()
}

// Move places the player's mark at row, col.
type Move struct {
	Row    int
	Col    int
	Player entity.Role
}

// Rewind restores the board recorded at round Index.
type Rewind struct {
	Index int
}

func (Move) command()   {}
func (Rewind) command() {}

// request is the single shape clients send for both commands.
// Absent or null row and col read as 0.
type request struct {
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Player   *string `json:"player"`
	StepBack *int    `json:"stepBack"`
}

// DecodeCommand - parses a client payload. A present stepBack makes it a Rewind regardless of other fields.
// Unknown fields, and moves without a player, are malformed.
func DecodeCommand(raw []byte) (Command, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var req request
	if err := decoder.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if req.StepBack != nil {
		return Rewind{Index: *req.StepBack}, nil
	}

	if req.Player == nil {
		return nil, fmt.Errorf("%w: move without player", ErrMalformedPayload)
	}

	return Move{Row: req.Row, Col: req.Col, Player: entity.Role(*req.Player)}, nil
}
