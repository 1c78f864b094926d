package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

const (
	actionMatchState    = "match:state"
	actionMatchReset    = "match:reset"
	actionGameTurn      = "game:turn"
	actionGameReset     = "game:reset"
	actionComputerTurn  = "game:computer_turn"
	actionAutoReset     = "game:auto_reset"
	actionError         = "error"
	sessionCookieName   = "user_session"
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type TurnPayload struct {
	Cell *int `json:"cell"`
}

type ResponsePayload struct {
	State   *entity.MatchState `json:"state,omitempty"`
	Status  string             `json:"status,omitempty"`
	Score   string             `json:"score,omitempty"`
	Verdict string             `json:"verdict,omitempty"`
	Error   string             `json:"error,omitempty"`
}
