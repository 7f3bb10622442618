package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/CP468/tictactoe/internal/config"
	"github.com/CP468/tictactoe/internal/engine"
	"github.com/CP468/tictactoe/internal/entity"
	"github.com/CP468/tictactoe/internal/repository"
	"github.com/CP468/tictactoe/internal/repository/storage"
	"github.com/CP468/tictactoe/internal/transport/console"
	"github.com/CP468/tictactoe/internal/usecase"
)

var ErrSameMarks = errors.New("human and AI must use different marks")

// RunApp wires the engine, storage and the console session together and
// blocks until the session ends or a shutdown signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	humanMark, aiMark, err := parseMarks(conf)
	if err != nil {
		return err
	}

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	players := orderedPlayers(conf, humanMark, aiMark)

	searchEngine := engine.New(aiMark, humanMark, engine.Config{
		BaseDepth:   conf.Engine.BaseDepth,
		DepthGrowth: conf.Engine.DepthGrowth,
	})

	gameManager := usecase.NewGameManager(logger, gameRepo, searchEngine, conf.Game.BoardSize, players, aiMark)

	session := console.New(logger, gameManager, humanMark, os.Stdin, os.Stdout)

	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx, conf.ResumeGameID)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("console session error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newGameRepository picks Redis when enabled in config and falls back to
// the in-process store otherwise. Resume across sessions needs Redis.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewInMemoryGameRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeRepo := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage.Connection), closeRepo, nil
}

func parseMarks(conf *config.Config) (entity.Mark, entity.Mark, error) {
	humanMark := entity.Mark(conf.Game.HumanMark)
	aiMark := entity.Mark(conf.Game.AIMark)

	for _, mark := range []entity.Mark{humanMark, aiMark} {
		if mark != entity.PlayerX && mark != entity.PlayerO {
			return "", "", fmt.Errorf("unsupported mark %q: use %q or %q", mark, entity.PlayerX, entity.PlayerO)
		}
	}

	if humanMark == aiMark {
		return "", "", ErrSameMarks
	}

	return humanMark, aiMark, nil
}

// orderedPlayers builds the turn order with X first, keeping the
// first-move invariant no matter which side the human picked.
func orderedPlayers(conf *config.Config, humanMark, aiMark entity.Mark) []*entity.Player {
	human := &entity.Player{Mark: humanMark, Color: conf.Game.HumanColor}
	ai := &entity.Player{Mark: aiMark, Color: conf.Game.AIColor}

	if humanMark == entity.PlayerX {
		return []*entity.Player{human, ai}
	}
	return []*entity.Player{ai, human}
}
