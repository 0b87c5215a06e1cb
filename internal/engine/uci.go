package engine

import (
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// ParseMoveToken converts a coordinate move token such as "e2e4" or "e7e8q"
// into a Move. The promotion letter is case-insensitive and must name a
// knight, bishop, rook or queen.
func ParseMoveToken(token string) (chess.Move, error) {
	token = strings.TrimSpace(token)
	if len(token) != 4 && len(token) != 5 {
		return chess.Move{}, &errors.ParseError{
			Err: errors.ErrInvalidMoveToken, Input: token, Pos: -1,
			Expected: "4 or 5 characters",
		}
	}

	from, ok := chess.ParseSquare(token[0:2])
	if !ok {
		return chess.Move{}, &errors.ParseError{
			Err: errors.ErrInvalidMoveToken, Input: token, Pos: 0,
			Expected: "source square", Got: token[0:2],
		}
	}
	to, ok := chess.ParseSquare(token[2:4])
	if !ok {
		return chess.Move{}, &errors.ParseError{
			Err: errors.ErrInvalidMoveToken, Input: token, Pos: 2,
			Expected: "destination square", Got: token[2:4],
		}
	}

	move := chess.NewMove(from, to)
	if len(token) == 5 {
		kind := chess.KindFromLetter(token[4])
		if !kind.IsPromotionTarget() {
			return chess.Move{}, &errors.ParseError{
				Err: errors.ErrInvalidMoveToken, Input: token, Pos: 4,
				Expected: "promotion letter q, r, b or n", Got: token[4:],
			}
		}
		move.Promotion = kind
	}
	return move, nil
}
