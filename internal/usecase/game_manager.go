package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CP468/tictactoe/internal/apperror"
	"github.com/CP468/tictactoe/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type movePicker interface {
	SelectMove(board *entity.Board) (int, int, error)
}

// GameManager is the boundary the presentation layer talks to: it owns
// game creation, move application, AI move requests and persistence of
// the current game.
type GameManager struct {
	logger *slog.Logger

	gameRepo  gameRepo
	engine    movePicker
	boardSize int
	players   []*entity.Player
	aiMark    entity.Mark
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, engine movePicker, boardSize int, players []*entity.Player, aiMark entity.Mark) *GameManager {
	return &GameManager{
		logger: logger,

		gameRepo:  gameRepo,
		engine:    engine,
		boardSize: boardSize,
		players:   players,
		aiMark:    aiMark,
	}
}

// StartGame creates and persists a fresh game.
func (that *GameManager) StartGame(ctx context.Context) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), that.boardSize, that.players...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return game, nil
}

// ResumeGame loads a previously started game by ID.
func (that *GameManager) ResumeGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// AttemptMove applies one move for the given mark. Illegal moves surface
// the apperror sentinels unchanged and leave the stored game untouched,
// so the caller can simply ignore the interaction.
func (that *GameManager) AttemptMove(ctx context.Context, id string, move entity.Move) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ApplyMove(move); err != nil {
		return game, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// RequestAIMove asks the engine for the best cell, applies it and
// persists the result. It must only be called while the game is ongoing
// and it is the AI's turn.
func (that *GameManager) RequestAIMove(ctx context.Context, id string) (*entity.Game, *entity.Move, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsFinished() {
		return game, nil, apperror.ErrGameFinished
	}

	row, col, err := that.engine.SelectMove(game.Board)
	if err != nil {
		return game, nil, fmt.Errorf("engine failed to select move: %w", err)
	}

	move := entity.Move{Row: row, Col: col, Mark: that.aiMark}
	if err = game.ApplyMove(move); err != nil {
		return game, nil, fmt.Errorf("failed to apply engine move: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, &move, nil
}

// ResetGame clears the board for a rematch on the same game ID.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Reset()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// CleanupGame removes the stored game when the session ends. No game
// history is kept.
func (that *GameManager) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "CleanupGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}
}
