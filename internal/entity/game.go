package entity

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

const (
	WithBotType = "bot"
	LocalType   = "local"
)

type Game struct {
	ID        string             `json:"id"`
	Board     tictactoe.Board    `json:"board"`
	Winner    string             `json:"winner"`
	Status    string             `json:"status"`
	Turn      tictactoe.Cell     `json:"player_turn"`
	Type      string             `json:"type"`
	HumanMark tictactoe.Cell     `json:"human_mark,omitempty"`
	BotMark   tictactoe.Cell     `json:"bot_mark,omitempty"`
	Moves     []tictactoe.Action `json:"moves"`
}

func NewGame(id, gameType string) *Game {
	board := tictactoe.InitialState()

	return &Game{
		ID:     id,
		Board:  board,
		Turn:   board.Player(),
		Status: StatusOngoing,
		Type:   gameType,
		Moves:  []tictactoe.Action{},
	}
}

// DetermineGameResult - returns the winning mark, PlayerTie for a full board, or "" while the game goes on.
func (that *Game) DetermineGameResult() string {
	if winner := that.Board.Winner(); winner != tictactoe.Empty {
		return string(winner)
	}

	if that.Board.Terminal() {
		return PlayerTie
	}

	return ""
}

func (that *Game) UpdateGameState() {
	switch result := that.DetermineGameResult(); result {
	// one player wins or tie
	case string(tictactoe.X), string(tictactoe.O), PlayerTie:
		that.Winner = result
		that.Status = StatusFinished
		that.Turn = tictactoe.Empty
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = that.Board.Player()
	}
}

// MakeTurn - plays action for mark. The board is replaced by the successor board.
func (that *Game) MakeTurn(mark tictactoe.Cell, action tictactoe.Action) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	next, err := that.Board.Result(action)
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", action, err)
	}

	that.Board = next
	that.Moves = append(that.Moves, action)
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("unknown game status: %s", that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// IsBotTurn - reports whether the bot should move next.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark
}

// AssignMarks - gives the human the requested mark and the bot the other one.
// An empty mark is drawn at random.
func (that *Game) AssignMarks(humanMark tictactoe.Cell) error {
	switch humanMark {
	case tictactoe.X, tictactoe.O:
	case tictactoe.Empty:
		humanMark, _ = that.GetRandomMarks()
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMark, humanMark)
	}

	that.HumanMark = humanMark
	if that.IsWithBot() {
		that.BotMark = humanMark.Opponent()
	}

	return nil
}

func (that *Game) GetRandomMarks() (tictactoe.Cell, tictactoe.Cell) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return tictactoe.X, tictactoe.O
	}
	return tictactoe.O, tictactoe.X
}
