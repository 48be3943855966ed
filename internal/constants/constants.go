package constants

// Centralized constants for routes, env keys, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "POKENET_CONFIG"
	EnvDBPath     = "POKENET_DB"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteHealth      = "/health"
	RouteVersion     = "/version"
	RouteBattles     = "/battles"
	RouteBattlesJoin = "/battles/join"
	RouteBattleByID  = "/battles/:battleCode"
	RouteBattleAct   = "/battles/:battleCode/actions"
	RouteBattleFlee  = "/battles/:battleCode/flee"
	RouteBattleEvent = "/battles/:battleCode/events"
	RouteLeaderboard = "/leaderboard"
	RouteTrainer     = "/trainers/:trainerName"
)

// Common JSON response keys
const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidBattleCode    = "Invalid battle code"
	ErrBattleNotFound       = "Battle not found"
	ErrBattleConcluded      = "Battle already concluded"
	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedStoreAction    = "Failed to store action"
	ErrCombatantNotInBattle = "Combatant not in this battle"
	ErrInvalidMoveSelection = "Invalid move selection"
	ErrTrainerNotFound      = "Trainer not found"
	ErrFailedUpgrade        = "Failed to upgrade connection"
)

// Logging field names
const (
	LogFieldBattleCode = "battle_code"
	LogFieldEntityID   = "entity_id"
	LogFieldMoveID     = "move_id"
	LogFieldSpeciesID  = "species_id"
	LogFieldTurn       = "turn"
	LogFieldSide       = "side"
	LogFieldAddr       = "addr"
)
