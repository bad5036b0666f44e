package apperror

import "errors"

// The text of these errors is sent to clients as is.
var (
	ErrSessionFull   = errors.New("Only 2 players allowed") //nolint: stylecheck // wire text
	ErrInvalidPlayer = errors.New("Invalid player.")        //nolint: stylecheck // wire text
	ErrNotYourTurn   = errors.New("Not your turn.")         //nolint: stylecheck // wire text
	ErrInvalidMove   = errors.New("Invalid move.")          //nolint: stylecheck // wire text
	ErrCellOccupied  = errors.New("Cell already taken.")    //nolint: stylecheck // wire text
	ErrInvalidRound  = errors.New("Invalid round number.")  //nolint: stylecheck // wire text
)
