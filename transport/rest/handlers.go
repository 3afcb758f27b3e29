package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const maxBodyBytes = 1 << 12

type gameService interface {
	CreateGame(ctx context.Context, gameType string, humanMark tictactoe.Cell) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, gameID string, action tictactoe.Action) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (tictactoe.Analysis, error)

	Stats(ctx context.Context) (*repository.Summary, error)
}

type solver interface {
	Suggest(board tictactoe.Board) tictactoe.Analysis
}

type handlers struct {
	logger      *slog.Logger
	gameService gameService
	solver      solver
}

type solveRequest struct {
	Board tictactoe.Board `json:"board"`
}

type solveResponse struct {
	Player   tictactoe.Cell    `json:"player"`
	Terminal bool              `json:"terminal"`
	Winner   tictactoe.Cell    `json:"winner"`
	Value    tictactoe.Utility `json:"value"`
	Nodes    int               `json:"nodes"`
	Action   *tictactoe.Action `json:"action"`
}

type createGameRequest struct {
	Type string         `json:"type"`
	Mark tictactoe.Cell `json:"mark"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter - builds the HTTP API.
func NewRouter(logger *slog.Logger, gameService gameService, solver solver) http.Handler {
	h := &handlers{
		logger:      logger.With("component", "rest"),
		gameService: gameService,
		solver:      solver,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Post("/solve", h.solve)
	r.Get("/stats", h.stats)

	r.Post("/games", h.createGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.getGame)
		r.Delete("/", h.deleteGame)
		r.Post("/turns", h.makeTurn)
		r.Get("/hint", h.hint)
	})

	return r
}

func (that *handlers) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	if err := req.Board.Validate(); err != nil {
		that.writeError(w, r, err)
		return
	}

	analysis := that.solver.Suggest(req.Board)

	resp := solveResponse{
		Player:   req.Board.Player(),
		Terminal: req.Board.Terminal(),
		Winner:   req.Board.Winner(),
		Value:    analysis.Value,
		Nodes:    analysis.Nodes,
	}
	if analysis.Found {
		resp.Action = &analysis.Action
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	// an empty body starts a bot game with a random mark
	req := createGameRequest{Type: entity.WithBotType}
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, r, err)
		return
	}

	game, err := that.gameService.CreateGame(r.Context(), req.Type, req.Mark)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/games/"+game.ID)
	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var action tictactoe.Action
	if err := decodeJSON(w, r, &action); err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) hint(w http.ResponseWriter, r *http.Request) {
	analysis, err := that.gameService.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func (that *handlers) stats(w http.ResponseWriter, r *http.Request) {
	summary, err := that.gameService.Stats(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, summary)
}

var errBadRequestBody = errors.New("bad request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequestBody, err)
	}

	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrMalformedBoard),
		errors.Is(err, apperror.ErrUnknownGameType),
		errors.Is(err, apperror.ErrUnknownMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}
