package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context, gameType string, humanMark tictactoe.Cell) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (tictactoe.Analysis, error)

	Stats(ctx context.Context) (*repository.Summary, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type historyRepo interface {
	Save(ctx context.Context, record *repository.Record) error
	Summary(ctx context.Context) (*repository.Summary, error)
}

type gameService struct {
	logger *slog.Logger

	gameRepo    gameRepo
	historyRepo historyRepo
	botService  BotService

	now func() time.Time
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, historyRepo historyRepo, botService BotService) GameService {
	return &gameService{
		logger:      logger.With("component", "game"),
		gameRepo:    gameRepo,
		historyRepo: historyRepo,
		botService:  botService,
		now:         time.Now,
	}
}

// CreateGame - starts a new game. In a bot game the bot opens when it holds X.
func (that *gameService) CreateGame(ctx context.Context, gameType string, humanMark tictactoe.Cell) (*entity.Game, error) {
	if gameType != entity.WithBotType && gameType != entity.LocalType {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}

	game := entity.NewGame(uuid.NewString(), gameType)

	if game.IsWithBot() {
		if err := game.AssignMarks(humanMark); err != nil {
			return nil, fmt.Errorf("failed to assign marks: %w", err)
		}

		if game.IsBotTurn() {
			if err := that.botService.MakeTurn(game); err != nil {
				return nil, fmt.Errorf("bot failed to make first turn: %w", err)
			}
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "type", game.Type, "humanMark", game.HumanMark)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// MakeTurn - plays action for the side to move and, in a bot game, the bot's reply.
func (that *gameService) MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	mark := game.Turn
	if game.IsWithBot() {
		mark = game.HumanMark
	}

	if err = game.MakeTurn(mark, action); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.recordFinished(ctx, game)
	}

	return game, nil
}

// Hint - analysis of the current position for the side to move.
func (that *gameService) Hint(ctx context.Context, gameID string) (tictactoe.Analysis, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return tictactoe.Analysis{}, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return tictactoe.Analysis{}, err
	}

	return that.botService.Suggest(game.Board), nil
}

func (that *gameService) Stats(ctx context.Context) (*repository.Summary, error) {
	summary, err := that.historyRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return summary, nil
}

// recordFinished - history is best effort; the game itself is already stored.
func (that *gameService) recordFinished(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordFinished", "gameID", game.ID)

	if err := that.historyRepo.Save(ctx, repository.NewRecord(game, that.now())); err != nil {
		log.Error("failed to save game record", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner, "moves", len(game.Moves))
}
