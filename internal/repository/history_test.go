package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solver/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedGame(id, gameType, winner string, human, bot tictactoe.Cell) *entity.Game {
	game := entity.NewGame(id, gameType)
	game.Status = entity.StatusFinished
	game.Winner = winner
	game.HumanMark = human
	game.BotMark = bot
	game.Moves = make([]tictactoe.Action, 7)

	return game
}

func TestNewRecord(t *testing.T) {
	// Given: a finished bot game
	game := finishedGame("g1", entity.WithBotType, "O", tictactoe.X, tictactoe.O)
	finishedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	// When: turning it into a record
	record := NewRecord(game, finishedAt)

	// Then: the record carries the outcome and a UTC timestamp
	assert.Equal(t, &Record{
		ID:         "g1",
		Type:       entity.WithBotType,
		Winner:     "O",
		HumanMark:  "X",
		BotMark:    "O",
		Moves:      7,
		FinishedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}, record)
}

func TestHistoryRepository_Summary(t *testing.T) {
	t.Run("Empty history", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		historyRepo := NewHistoryRepository(db.Connection)

		// When: summarizing an empty table
		summary, err := historyRepo.Summary(ctx)

		// Then: every counter is zero
		require.NoError(t, err)
		assert.Equal(t, &Summary{}, summary)
	})

	t.Run("Counts outcomes", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		historyRepo := NewHistoryRepository(db.Connection)
		now := time.Now()

		// Given: a mix of bot and local games
		games := []*entity.Game{
			finishedGame("a", entity.WithBotType, "O", tictactoe.X, tictactoe.O),
			finishedGame("b", entity.WithBotType, entity.PlayerTie, tictactoe.O, tictactoe.X),
			finishedGame("c", entity.WithBotType, "X", tictactoe.O, tictactoe.X),
			finishedGame("d", entity.LocalType, "X", tictactoe.X, tictactoe.Empty),
			finishedGame("e", entity.LocalType, entity.PlayerTie, tictactoe.Empty, tictactoe.Empty),
		}
		for _, game := range games {
			require.NoError(t, historyRepo.Save(ctx, NewRecord(game, now)))
		}

		// When: summarizing
		summary, err := historyRepo.Summary(ctx)

		// Then: outcomes are counted per mark and per side of the bot games
		require.NoError(t, err)
		assert.Equal(t, &Summary{
			Games:     5,
			XWins:     2,
			OWins:     1,
			Ties:      2,
			BotWins:   2,
			HumanWins: 0,
		}, summary)
	})

	t.Run("Saving the same game twice keeps one record", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)

		historyRepo := NewHistoryRepository(db.Connection)
		record := NewRecord(finishedGame("a", entity.WithBotType, "X", tictactoe.X, tictactoe.O), time.Now())

		require.NoError(t, historyRepo.Save(ctx, record))
		require.NoError(t, historyRepo.Save(ctx, record))

		summary, err := historyRepo.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Games)
		assert.Equal(t, 1, summary.HumanWins)
	})
}
