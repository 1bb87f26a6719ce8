// Package ws carries the real-time protocol: the event envelope, every
// inbound/outbound payload shape, and the hub that fans events out to the
// connected clients.
package ws

import (
	"github.com/y122132/pet-trainer-sub000/internal/battle"
	"github.com/y122132/pet-trainer-sub000/internal/storage"
)

// Event is the outbound envelope written to a websocket connection.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ClientCommand is the inbound frame sent by a client.
type ClientCommand struct {
	Action string `json:"action"`
	MoveID int    `json:"move_id,omitempty"`
}

type MatchFoundPayload struct {
	RoomID     string `json:"room_id"`
	OpponentID string `json:"opponent_id"`
}

type JoinPayload struct {
	UserID         string   `json:"user_id"`
	CurrentPlayers []string `json:"current_players"`
}

type LeavePayload struct {
	UserID string `json:"user_id"`
}

// MoveInfo is one usable move with its remaining PP.
type MoveInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	PP    int    `json:"pp"`
	MaxPP int    `json:"max_pp"`
}

// CombatantIntro introduces one side at battle start.
type CombatantIntro struct {
	UserID  string     `json:"user_id"`
	PetName string     `json:"pet_name"`
	Species string     `json:"species"`
	HP      int        `json:"hp"`
	MaxHP   int        `json:"max_hp"`
	Moves   []MoveInfo `json:"moves"`
}

type BattleStartPayload struct {
	RoomID     string           `json:"room_id"`
	Combatants []CombatantIntro `json:"combatants"`
}

type WaitingPayload struct {
	Message string `json:"message"`
}

// CombatantSnapshot is the per-combatant view inside a turn result.
type CombatantSnapshot struct {
	HP          int         `json:"hp"`
	MaxHP       int         `json:"max_hp"`
	Status      string      `json:"status"`
	StatusTurns int         `json:"status_turns"`
	PP          map[int]int `json:"pp"`
}

type TurnResultPayload struct {
	Turn       int                          `json:"turn"`
	Entries    []battle.LogEntry            `json:"entries"`
	Combatants map[string]CombatantSnapshot `json:"combatants"`
	IsGameOver bool                         `json:"is_game_over"`
}

type GameOverPayload struct {
	Result string                 `json:"result"`
	Winner string                 `json:"winner,omitempty"`
	Reward *storage.RewardResult  `json:"reward,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClientError is an error the read loop reports back to the offending
// connection as an ERROR event instead of logging it server-side.
type ClientError struct {
	Code    string
	Message string
}

func (e *ClientError) Error() string { return e.Code + ": " + e.Message }

// NewClientError builds a user-visible error.
func NewClientError(code, message string) *ClientError {
	return &ClientError{Code: code, Message: message}
}
