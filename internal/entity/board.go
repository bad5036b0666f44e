package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const BoardSize = 3

var ErrMalformedBoard = errors.New("malformed board")

// Board is a 3x3 grid. It is a value type: assigning or passing a Board copies every cell,
// so snapshots never alias the live board.
type Board [BoardSize][BoardSize]Role

// InBounds - reports whether row and col address a cell.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// IsEmpty - reports whether the cell holds no mark. Out of range cells are never empty.
func (that Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && that[row][col] == RoleNone
}

// Place - returns a copy of the board with the cell set to role.
func (that Board) Place(row, col int, role Role) Board {
	that[row][col] = role
	return that
}

// Marks - number of occupied cells.
func (that Board) Marks() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != RoleNone {
				count++
			}
		}
	}

	return count
}

// MarshalJSON encodes the board as a 3x3 array of nullable strings.
func (that Board) MarshalJSON() ([]byte, error) {
	var grid [BoardSize][BoardSize]*string

	for i, row := range that {
		for j, cell := range row {
			if cell == RoleNone {
				continue
			}

			mark := string(cell)
			grid[i][j] = &mark
		}
	}

	return json.Marshal(grid)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var grid [][]*string
	if err := json.Unmarshal(data, &grid); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBoard, err)
	}

	if len(grid) != BoardSize {
		return fmt.Errorf("%w: %d rows", ErrMalformedBoard, len(grid))
	}

	var board Board

	for i, row := range grid {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, i, len(row))
		}

		for j, cell := range row {
			if cell == nil {
				continue
			}

			role, err := ParseRole(*cell)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrMalformedBoard, err)
			}

			board[i][j] = role
		}
	}

	*that = board

	return nil
}
