package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
)

const sendBufferSize = 16

// session plays one match over one connection. Everything touching the match runs on
// the goroutine of run, so moves are applied strictly one at a time.
type session struct {
	logger *slog.Logger
	match  *usecase.Match
	conn   *websocket.Conn
	send   chan []byte

	computerDelay time.Duration
	resetDelay    time.Duration
	computerTimer <-chan time.Time
	resetTimer    <-chan time.Time

	handlers map[string]func(ctx context.Context, message *Message) error
}

func newSession(logger *slog.Logger, match *usecase.Match, conn *websocket.Conn, computerDelay, resetDelay time.Duration) *session {
	sess := &session{
		logger:        logger,
		match:         match,
		conn:          conn,
		send:          make(chan []byte, sendBufferSize),
		computerDelay: computerDelay,
		resetDelay:    resetDelay,
	}

	sess.handlers = map[string]func(context.Context, *Message) error{
		actionMatchState: sess.handleMatchState,
		actionGameTurn:   sess.handleGameTurn,
		actionGameReset:  sess.handleGameReset,
		actionMatchReset: sess.handleMatchReset,
		actionError:      sess.handleMalformed,
	}

	return sess
}

func (that *session) run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- writeWithHeartbeat(that.conn, that.send)
		cancel()
	}()
	defer close(that.send)

	inbox := make(chan Message)
	readErr := make(chan error, 1)
	go that.readMessages(ctx, inbox, readErr)

	that.publish(ctx, actionMatchState, that.match.State())

	for {
		select {
		case <-ctx.Done():
			select {
			case err := <-writeErr:
				return err
			default:
				return ctx.Err()
			}
		case err := <-readErr:
			return err
		case message := <-inbox:
			that.dispatch(ctx, &message)
		case <-that.computerTimer:
			that.computerTimer = nil
			that.computerTurn(ctx)
		case <-that.resetTimer:
			that.resetTimer = nil
			that.publish(ctx, actionAutoReset, that.match.ResetGame())
		}
	}
}

// readMessages - forwards decoded client messages until the connection fails.
func (that *session) readMessages(ctx context.Context, inbox chan<- Message, readErr chan<- error) {
	log := that.logger.With("method", "readMessages")

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			message = Message{Action: actionError}
		}

		select {
		case inbox <- message:
		case <-ctx.Done():
			return
		}
	}
}

func (that *session) dispatch(ctx context.Context, message *Message) {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Error("error processing message", "error", apperror.ErrUnknownAction)
		that.sendError(ctx, message.Action, apperror.ErrUnknownAction)
		return
	}

	if err := handler(ctx, message); err != nil {
		log.Error("error processing message", "error", err)
	}
}

// handleMalformed - answers frames that could not be decoded.
func (that *session) handleMalformed(ctx context.Context, message *Message) error {
	that.sendError(ctx, message.Action, apperror.ErrInvalidMessage)
	return apperror.ErrInvalidMessage
}

func (that *session) handleMatchState(ctx context.Context, message *Message) error {
	that.publish(ctx, message.Action, that.match.State())
	return nil
}

func (that *session) handleGameTurn(ctx context.Context, message *Message) error {
	var payload TurnPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil || payload.Cell == nil {
		that.sendError(ctx, message.Action, apperror.ErrInvalidMessage)
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidMessage)
	}

	state, err := that.match.PlayerMove(ctx, *payload.Cell)
	if errors.Is(err, apperror.ErrInvalidCell) {
		that.sendError(ctx, message.Action, apperror.ErrInvalidCell)
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.publish(ctx, message.Action, state)
	that.schedule(&state)

	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *session) handleGameReset(ctx context.Context, message *Message) error {
	that.stopTimers()
	that.publish(ctx, message.Action, that.match.ResetGame())

	return nil
}

func (that *session) handleMatchReset(ctx context.Context, message *Message) error {
	that.stopTimers()

	state, err := that.match.ResetAll(ctx)
	that.publish(ctx, message.Action, state)

	if err != nil {
		return fmt.Errorf("failed to reset match: %w", err)
	}

	return nil
}

func (that *session) computerTurn(ctx context.Context) {
	state, err := that.match.ComputerMove(ctx)
	if err != nil {
		that.logger.Error("computer turn failed", "error", err)
	}

	that.publish(ctx, actionComputerTurn, state)
	that.schedule(&state)
}

// schedule - delays the computer's reply and the automatic reset after a finished game.
func (that *session) schedule(state *entity.MatchState) {
	if state.ComputerToMove() && that.computerTimer == nil {
		that.computerTimer = time.After(that.computerDelay)
	}

	if state.Game.IsFinished() && that.resetTimer == nil {
		that.resetTimer = time.After(that.resetDelay)
	}
}

func (that *session) stopTimers() {
	that.computerTimer = nil
	that.resetTimer = nil
}

func (that *session) publish(ctx context.Context, action string, state entity.MatchState) {
	that.write(ctx, action, ResponsePayload{
		State:   &state,
		Status:  presenter.Status(&state),
		Score:   presenter.Score(state.Tally),
		Verdict: presenter.Verdict(state.Verdict),
	})
}

func (that *session) sendError(ctx context.Context, action string, err error) {
	that.write(ctx, actionError, ResponsePayload{Error: fmt.Sprintf("%s: %s", action, err)})
}

func (that *session) write(ctx context.Context, action string, payload ResponsePayload) {
	response, err := json.Marshal(Message{Action: action, Payload: mustMarshal(payload)})
	if err != nil {
		that.logger.Error("failed to marshal response", "error", err)
		return
	}

	select {
	case that.send <- response:
	case <-ctx.Done():
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
