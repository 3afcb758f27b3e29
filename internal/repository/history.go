package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// Record is a finished game as kept in the history table.
type Record struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Winner     string    `json:"winner"`
	HumanMark  string    `json:"human_mark"`
	BotMark    string    `json:"bot_mark"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewRecord(game *entity.Game, finishedAt time.Time) *Record {
	return &Record{
		ID:         game.ID,
		Type:       game.Type,
		Winner:     game.Winner,
		HumanMark:  string(game.HumanMark),
		BotMark:    string(game.BotMark),
		Moves:      len(game.Moves),
		FinishedAt: finishedAt.UTC(),
	}
}

// Summary counts finished games by outcome.
type Summary struct {
	Games     int `json:"games"`
	XWins     int `json:"x_wins"`
	OWins     int `json:"o_wins"`
	Ties      int `json:"ties"`
	BotWins   int `json:"bot_wins"`
	HumanWins int `json:"human_wins"`
}

type HistoryRepository interface {
	Save(ctx context.Context, record *Record) error
	Summary(ctx context.Context) (*Summary, error)
}

type dbHistory struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &dbHistory{
		conn: conn,
	}
}

func (that *dbHistory) Save(ctx context.Context, record *Record) error {
	query := `INSERT OR REPLACE INTO games (id, type, winner, human_mark, bot_mark, moves, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		record.ID, record.Type, record.Winner, record.HumanMark, record.BotMark, record.Moves, record.FinishedAt.Unix())
	if err != nil {
		return fmt.Errorf("can't save game record: %w", err)
	}

	return nil
}

func (that *dbHistory) Summary(ctx context.Context) (*Summary, error) {
	query := `SELECT
		COUNT(*),
		COALESCE(SUM(winner = 'X'), 0),
		COALESCE(SUM(winner = 'O'), 0),
		COALESCE(SUM(winner = ?), 0),
		COALESCE(SUM(type = ? AND bot_mark != '' AND winner = bot_mark), 0),
		COALESCE(SUM(type = ? AND human_mark != '' AND winner = human_mark), 0)
	FROM games`

	var summary Summary

	err := that.conn.QueryRowContext(ctx, query, entity.PlayerTie, entity.WithBotType, entity.WithBotType).Scan(
		&summary.Games,
		&summary.XWins,
		&summary.OWins,
		&summary.Ties,
		&summary.BotWins,
		&summary.HumanWins,
	)
	if err != nil {
		return nil, fmt.Errorf("can't summarize games: %w", err)
	}

	return &summary, nil
}
