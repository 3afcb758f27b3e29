package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
	Suggest(board tictactoe.Board) tictactoe.Analysis
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn - plays the minimax move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	analysis := that.Suggest(game.Board)
	if !analysis.Found {
		return apperror.ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.BotMark, analysis.Action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// Suggest - searches the board for the side to move.
func (that *botService) Suggest(board tictactoe.Board) tictactoe.Analysis {
	analysis := tictactoe.Analyze(board)

	that.logger.Debug("search finished",
		"player", board.Player(),
		"nodes", analysis.Nodes,
		"value", analysis.Value,
		"row", analysis.Action.Row,
		"col", analysis.Action.Col,
	)

	return analysis
}
