// Package console is the presentation adapter: it renders the game to a
// terminal and translates typed coordinates into engine move requests.
// All rules live behind the GameManager; illegal input never changes
// game state.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/CP468/tictactoe/internal/apperror"
	"github.com/CP468/tictactoe/internal/entity"
)

var errMalformedInput = errors.New("expected two numbers: row col")

type gameManager interface {
	StartGame(ctx context.Context) (*entity.Game, error)
	ResumeGame(ctx context.Context, id string) (*entity.Game, error)
	AttemptMove(ctx context.Context, id string, move entity.Move) (*entity.Game, error)
	RequestAIMove(ctx context.Context, id string) (*entity.Game, *entity.Move, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)
}

type Console struct {
	logger *slog.Logger

	games     gameManager
	humanMark entity.Mark
	in        *bufio.Scanner
	out       io.Writer
}

func New(logger *slog.Logger, games gameManager, humanMark entity.Mark, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:    logger,
		games:     games,
		humanMark: humanMark,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run drives one interactive session: new game (or resume by ID), turns
// alternating between typed human moves and engine moves, rematch
// prompts after a terminal state. Quitting keeps the game stored so it
// can be resumed; declining a rematch deletes it.
func (that *Console) Run(ctx context.Context, resumeID string) error {
	game, err := that.openGame(ctx, resumeID)
	if err != nil {
		return err
	}

	log := that.logger.With("component", "console", "gameID", game.ID)
	log.Debug("session started")
	defer log.Debug("session ended")

	fmt.Fprintf(that.out, "game %s (set GAME_ID=%s to resume a quit session)\n", game.ID, game.ID)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(that.out, that.renderBoard(game))

		if game.IsFinished() {
			that.announceOutcome(game)

			again, ok := that.promptRematch()
			if !ok || !again {
				that.games.CleanupGame(ctx, game)
				return nil
			}

			if game, err = that.games.ResetGame(ctx, game.ID); err != nil {
				return fmt.Errorf("failed to reset game: %w", err)
			}
			continue
		}

		if game.CurrentPlayer().Mark == that.humanMark {
			game, err = that.humanTurn(ctx, game)
		} else {
			game, err = that.aiTurn(ctx, game)
		}
		if err != nil {
			return err
		}
		if game == nil {
			// quit mid-game; stored state stays resumable
			return nil
		}
	}
}

func (that *Console) openGame(ctx context.Context, resumeID string) (*entity.Game, error) {
	if resumeID == "" {
		game, err := that.games.StartGame(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to start game: %w", err)
		}
		return game, nil
	}

	game, err := that.games.ResumeGame(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resume game: %w", err)
	}
	return game, nil
}

func (that *Console) humanTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	fmt.Fprintf(that.out, "%s's turn, enter: row col (or q to quit)\n", game.CurrentPlayer().Mark)

	line, ok := that.readLine()
	if !ok || line == "q" || line == "quit" {
		return nil, nil
	}

	row, col, err := parseMove(line)
	if err != nil {
		fmt.Fprintf(that.out, "%v\n", err)
		return game, nil
	}

	move := entity.Move{Row: row, Col: col, Mark: that.humanMark}

	updated, err := that.games.AttemptMove(ctx, game.ID, move)
	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		// recovered locally: the interaction is ignored
		fmt.Fprintf(that.out, "illegal move: %v\n", err)
		return game, nil
	case err != nil:
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return updated, nil
}

func (that *Console) aiTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	updated, move, err := that.games.RequestAIMove(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to request AI move: %w", err)
	}

	fmt.Fprintf(that.out, "%s plays (%d,%d)\n", move.Mark, move.Row, move.Col)

	return updated, nil
}

func (that *Console) announceOutcome(game *entity.Game) {
	outcome := game.Outcome()

	if outcome.IsTie() {
		fmt.Fprintln(that.out, "Tied game!")
		return
	}

	cells := make([]string, 0, len(outcome.WinningLine))
	for _, index := range outcome.WinningLine {
		row, col := game.Board.RowCol(index)
		cells = append(cells, fmt.Sprintf("(%d,%d)", row, col))
	}

	fmt.Fprintf(that.out, "Player %q won! line: %s\n", string(outcome.Winner), strings.Join(cells, " "))
}

func (that *Console) promptRematch() (again, ok bool) {
	fmt.Fprint(that.out, "play again? [y/n] ")

	line, ok := that.readLine()
	if !ok {
		return false, false
	}

	return line == "y" || line == "yes", true
}

func (that *Console) readLine() (string, bool) {
	if !that.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(strings.ToLower(that.in.Text())), true
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errMalformedInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errMalformedInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errMalformedInput
	}

	return row, col, nil
}

func (that *Console) renderBoard(game *entity.Game) string {
	var builder strings.Builder

	size := game.Board.Size()

	builder.WriteString("  ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&builder, " %d", col)
	}
	builder.WriteByte('\n')

	for row := 0; row < size; row++ {
		fmt.Fprintf(&builder, " %d", row)
		for col := 0; col < size; col++ {
			mark := game.Board.At(row, col)
			if mark == entity.EmptyCell {
				builder.WriteString(" .")
				continue
			}
			fmt.Fprintf(&builder, " %s", string(mark))
		}
		builder.WriteByte('\n')
	}

	return builder.String()
}
