package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (that *mockHistoryRepo) Save(ctx context.Context, record *repository.Record) error {
	args := that.Called(ctx, record)
	return args.Error(0)
}

func (that *mockHistoryRepo) Summary(ctx context.Context) (*repository.Summary, error) {
	args := that.Called(ctx)
	summary, _ := args.Get(0).(*repository.Summary)
	return summary, args.Error(1)
}
