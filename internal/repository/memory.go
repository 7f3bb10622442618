package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/CP468/tictactoe/internal/apperror"
	"github.com/CP468/tictactoe/internal/entity"
)

// memoryGame is the storage fallback when Redis is disabled: games live
// only as long as the process. It stores the same JSON encoding as the
// Redis repository, so both paths exercise the identical codec.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewInMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string][]byte),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	that.games[game.ID] = gameJSON
	that.mu.Unlock()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	gameJSON, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	var existingGame entity.Game
	if err := json.Unmarshal(gameJSON, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	delete(that.games, id)
	that.mu.Unlock()

	return nil
}
