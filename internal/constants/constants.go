package constants

// Centralized constants for env keys, redis keys, routes and event names.
const (
	// Environment variable keys
	EnvConfigPath = "PET_TRAINER_CONFIG"
	EnvDBPath     = "PET_TRAINER_DB"
	EnvRedisAddr  = "PET_TRAINER_REDIS_ADDR"
	EnvRedisPass  = "PET_TRAINER_REDIS_PASSWORD"

	// Redis key prefixes. Every per-room key is derived from one of these
	// plus the room id so TTL-based cleanup removes the whole room.
	RedisKeyRoom       = "battle:room:"
	RedisKeyPlayers    = "battle:players:"
	RedisKeySelections = "battle:select:"
	RedisKeyTurnLock   = "battle:lock:"
	RedisKeyUserRoom   = "battle:index:user:"
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteWebsocket   = "/ws"
	RouteHealth      = "/healthz"
	RouteLeaderboard = "/leaderboard"
	RoutePlayerStats = "/player-stats"
)

// Websocket event type names (outbound unless noted).
const (
	EventMatchFound  = "MATCH_FOUND"
	EventJoin        = "JOIN"
	EventLeave       = "LEAVE"
	EventBattleStart = "BATTLE_START"
	EventWaiting     = "WAITING"
	EventTurnResult  = "TURN_RESULT"
	EventGameOver    = "GAME_OVER"
	EventError       = "ERROR"

	// Inbound actions carried in client frames.
	ActionQueue     = "queue"
	ActionCancel    = "cancel"
	ActionMove      = "move"
	ActionSurrender = "surrender"
)

// Game-over results
const (
	ResultWin  = "WIN"
	ResultLose = "LOSE"
	ResultDraw = "DRAW"
)

// BotUserID is the reserved combatant identifier for scripted opponents.
// It can never collide with a real user id because ids are UUIDs.
const BotUserID = "__bot__"

// Error codes sent on ERROR events.
const (
	ErrCodeValidation = "VALIDATION"
	ErrCodeState      = "STATE"
	ErrCodeInternal   = "INTERNAL"
)

// Common error messages used across handlers and the driver.
const (
	ErrInvalidRequest     = "Invalid request"
	ErrRoomNotFound       = "Battle room not found"
	ErrNotInRoom          = "You are not part of this battle"
	ErrUnknownMove        = "Unknown move"
	ErrMoveNotLearned     = "Your pet has not learned that move"
	ErrMoveOutOfPP        = "That move is out of PP"
	ErrCombatStateMissing = "Battle state is missing; please rejoin the battle"
	ErrCharacterMissing   = "No pet found for this account"
	ErrAlreadyQueued      = "Already waiting for an opponent"
	ErrNotQueued          = "Not waiting for an opponent"
	ErrUserParamRequired  = "user query parameter is required"
	ErrFailedFetchStats   = "Failed to fetch stats"
	ErrFailedLeaderboard  = "Failed to fetch leaderboard"
)

// Logging field names
const (
	LogFieldRoomID = "room_id"
	LogFieldUserID = "user_id"
	LogFieldMoveID = "move_id"
	LogFieldTurn   = "turn"
	LogFieldAddr   = "addr"
	LogFieldEvent  = "event"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)
