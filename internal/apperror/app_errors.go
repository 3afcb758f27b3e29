package apperror

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrMalformedBoard   = errors.New("malformed board")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrGameNotFound     = errors.New("game not found")
	ErrUnknownGameType  = errors.New("unknown game type")
	ErrUnknownMark      = errors.New("unknown player mark")
)
