package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
)

// MatchFactory - builds the match of a browser session with its stored tally restored.
type MatchFactory func(ctx context.Context, sessionID string) (*usecase.Match, error)

type Server struct {
	logger   *slog.Logger
	newMatch MatchFactory
	upgrader websocket.Upgrader

	computerDelay time.Duration
	resetDelay    time.Duration
}

func New(logger *slog.Logger, newMatch MatchFactory, computerDelay, resetDelay time.Duration) *Server {
	return &Server{
		logger:   logger.With("component", "websocket"),
		newMatch: newMatch,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		computerDelay: computerDelay,
		resetDelay:    resetDelay,
	}
}

// ServeHTTP - upgrades the connection and plays the session's match until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID, header := that.sessionCookie(req)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := req.Context()

	match, err := that.newMatch(ctx, sessionID)
	if err != nil {
		log.Error("failed to start match", "session", sessionID, "error", err)
		_ = conn.WriteJSON(Message{
			Action:  actionError,
			Payload: mustMarshal(ResponsePayload{Error: "failed to start match"}),
		})
		return
	}

	log.Info("WebSocket connection established", "session", sessionID)

	sess := newSession(that.logger.With("session", sessionID), match, conn, that.computerDelay, that.resetDelay)
	if err = sess.run(ctx); err != nil {
		log.Info("session closed", "session", sessionID, "reason", err)
	}
}

// sessionCookie - reuses the user_session cookie or issues a new one.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		if _, err = uuid.Parse(cookie.Value); err == nil {
			return cookie.Value, nil
		}
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    uuid.NewString(),
		MaxAge:   sessionCookieMaxAge,
		Path:     "/",
		HttpOnly: true,
	}

	that.logger.Info("session cookie not found, new one created", "cookie", cookie.Value)

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}
